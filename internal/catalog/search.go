package catalog

import (
	"strings"

	"golang.org/x/text/cases"

	"github.com/soft99/storefront-backend/pkg/models"
)

// textMatcher does case-folded substring matching. A Caser carries state, so
// a matcher is built per query and never shared across goroutines.
type textMatcher struct {
	fold  cases.Caser
	query string
}

// newTextMatcher returns false when the query is empty after trimming.
func newTextMatcher(query string) (*textMatcher, bool) {
	trimmed := strings.TrimSpace(query)
	if trimmed == "" {
		return nil, false
	}
	fold := cases.Fold()
	return &textMatcher{fold: fold, query: fold.String(trimmed)}, true
}

func (m *textMatcher) contains(value string) bool {
	if value == "" {
		return false
	}
	return strings.Contains(m.fold.String(value), m.query)
}

func (m *textMatcher) matchesProduct(p models.Product) bool {
	if m.contains(p.NameAr) ||
		m.contains(p.NameEn) ||
		m.contains(p.Description) ||
		m.contains(p.SKU) ||
		m.contains(p.Model()) {
		return true
	}
	for _, alias := range p.Aliases {
		if m.contains(alias) {
			return true
		}
	}
	return false
}

// SearchProducts matches query against the product text fields and the name
// of the product's brand. An empty query returns every product.
func SearchProducts(products []models.Product, query string, brands []models.Brand) []models.Product {
	m, ok := newTextMatcher(query)
	if !ok {
		return append([]models.Product(nil), products...)
	}

	brandNames := make(map[string]string, len(brands))
	for _, b := range brands {
		brandNames[b.ID] = b.Name
	}

	out := make([]models.Product, 0, len(products))
	for _, p := range products {
		if m.matchesProduct(p) {
			out = append(out, p)
			continue
		}
		if p.BrandID != "" && m.contains(brandNames[p.BrandID]) {
			out = append(out, p)
		}
	}
	return out
}
