package enums

import (
	"fmt"
	"strings"
)

// ProductType is the top-level kind of catalog item.
type ProductType string

const (
	ProductTypeBike ProductType = "bike"
	ProductTypePart ProductType = "part"
	ProductTypeGear ProductType = "gear"
)

var validProductTypes = []ProductType{
	ProductTypeBike,
	ProductTypePart,
	ProductTypeGear,
}

// String implements fmt.Stringer.
func (t ProductType) String() string {
	return string(t)
}

// IsValid reports whether the value is a known ProductType.
func (t ProductType) IsValid() bool {
	for _, candidate := range validProductTypes {
		if candidate == t {
			return true
		}
	}
	return false
}

// ParseProductType converts raw input into a ProductType.
func ParseProductType(value string) (ProductType, error) {
	for _, candidate := range validProductTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid product type %q", value)
}

// StockStatus reports whether a product can currently be bought.
type StockStatus string

const (
	StockStatusAvailable   StockStatus = "available"
	StockStatusUnavailable StockStatus = "unavailable"
)

var validStockStatuses = []StockStatus{
	StockStatusAvailable,
	StockStatusUnavailable,
}

// String implements fmt.Stringer.
func (s StockStatus) String() string {
	return string(s)
}

// IsValid reports whether the value is a known StockStatus.
func (s StockStatus) IsValid() bool {
	for _, candidate := range validStockStatuses {
		if candidate == s {
			return true
		}
	}
	return false
}

// ParseStockStatus converts raw input into a StockStatus.
func ParseStockStatus(value string) (StockStatus, error) {
	for _, candidate := range validStockStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid stock status %q", value)
}

// ProductStatus gates customer visibility.
type ProductStatus string

const (
	ProductStatusPublished ProductStatus = "published"
	ProductStatusHidden    ProductStatus = "hidden"

	// productStatusDraft is only accepted on ingestion.
	productStatusDraft = "draft"
)

var validProductStatuses = []ProductStatus{
	ProductStatusPublished,
	ProductStatusHidden,
}

// String implements fmt.Stringer.
func (s ProductStatus) String() string {
	return string(s)
}

// IsValid reports whether the value is a known ProductStatus.
func (s ProductStatus) IsValid() bool {
	for _, candidate := range validProductStatuses {
		if candidate == s {
			return true
		}
	}
	return false
}

// ParseProductStatus converts raw input into a ProductStatus. The legacy
// "draft" value maps to hidden.
func ParseProductStatus(value string) (ProductStatus, error) {
	if strings.EqualFold(strings.TrimSpace(value), productStatusDraft) {
		return ProductStatusHidden, nil
	}
	for _, candidate := range validProductStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid product status %q", value)
}

// NormalizeProductStatus maps legacy values onto the canonical set and leaves
// anything else untouched for validation to reject.
func NormalizeProductStatus(value ProductStatus) ProductStatus {
	if parsed, err := ParseProductStatus(string(value)); err == nil {
		return parsed
	}
	return value
}
