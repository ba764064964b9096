package catalog

import (
	"github.com/soft99/storefront-backend/pkg/models"
)

// FilterProducts keeps the products satisfying every specified filter, in
// their original order.
func FilterProducts(products []models.Product, filters *models.ProductFilters) []models.Product {
	out := make([]models.Product, 0, len(products))
	if filters == nil {
		return append(out, products...)
	}

	var search *textMatcher
	if filters.Search != nil {
		search, _ = newTextMatcher(*filters.Search)
	}

	for _, p := range products {
		if matchesFilters(p, filters, search) {
			out = append(out, p)
		}
	}
	return out
}

// MatchesFilters reports whether a single product satisfies filters.
func MatchesFilters(p models.Product, filters *models.ProductFilters) bool {
	if filters == nil {
		return true
	}
	var search *textMatcher
	if filters.Search != nil {
		search, _ = newTextMatcher(*filters.Search)
	}
	return matchesFilters(p, filters, search)
}

func matchesFilters(p models.Product, f *models.ProductFilters, search *textMatcher) bool {
	if f.Status != nil && p.Status != *f.Status {
		return false
	}
	if f.IsFeatured != nil && p.IsFeatured != *f.IsFeatured {
		return false
	}
	if f.IsNew != nil && p.IsNew != *f.IsNew {
		return false
	}
	if f.Category != nil && p.CategoryID != *f.Category {
		return false
	}
	if f.Brand != nil && p.BrandID != *f.Brand {
		return false
	}
	if f.Type != nil && p.Type != *f.Type {
		return false
	}
	if f.MinPrice != nil && p.Price < *f.MinPrice {
		return false
	}
	if f.MaxPrice != nil && p.Price > *f.MaxPrice {
		return false
	}
	if f.StockStatus != nil && p.StockStatus != *f.StockStatus {
		return false
	}
	if search != nil && !search.matchesProduct(p) {
		return false
	}
	return true
}
