package enums

import "fmt"

// SortOption orders catalog listings.
type SortOption string

const (
	SortNewest    SortOption = "newest"
	SortPriceAsc  SortOption = "price-asc"
	SortPriceDesc SortOption = "price-desc"
	SortName      SortOption = "name"
)

var validSortOptions = []SortOption{
	SortNewest,
	SortPriceAsc,
	SortPriceDesc,
	SortName,
}

// String implements fmt.Stringer.
func (s SortOption) String() string {
	return string(s)
}

// IsValid reports whether the value is a known SortOption.
func (s SortOption) IsValid() bool {
	for _, candidate := range validSortOptions {
		if candidate == s {
			return true
		}
	}
	return false
}

// ParseSortOption converts raw input into a SortOption. Empty input yields newest.
func ParseSortOption(value string) (SortOption, error) {
	if value == "" {
		return SortNewest, nil
	}
	for _, candidate := range validSortOptions {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid sort option %q", value)
}
