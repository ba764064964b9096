package enums

import (
	"fmt"
	"strings"
)

// ProviderSource names a data provider backend.
type ProviderSource string

const (
	ProviderSourceLocal    ProviderSource = "local"
	ProviderSourceDocument ProviderSource = "document"
	ProviderSourceAPI      ProviderSource = "api"
)

var validProviderSources = []ProviderSource{
	ProviderSourceLocal,
	ProviderSourceDocument,
	ProviderSourceAPI,
}

var providerSourceAliases = map[string]ProviderSource{
	"remote-document": ProviderSourceDocument,
	"firestore":       ProviderSourceDocument,
	"mongo":           ProviderSourceDocument,
	"mongodb":         ProviderSourceDocument,
	"remote-api":      ProviderSourceAPI,
}

// String implements fmt.Stringer.
func (p ProviderSource) String() string {
	return string(p)
}

// IsValid reports whether the value is a known ProviderSource.
func (p ProviderSource) IsValid() bool {
	for _, candidate := range validProviderSources {
		if candidate == p {
			return true
		}
	}
	return false
}

// ParseProviderSource converts raw input into a ProviderSource, accepting the
// historical aliases.
func ParseProviderSource(value string) (ProviderSource, error) {
	normalized := strings.ToLower(strings.TrimSpace(value))
	if alias, ok := providerSourceAliases[normalized]; ok {
		return alias, nil
	}
	for _, candidate := range validProviderSources {
		if string(candidate) == normalized {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid provider source %q", value)
}
