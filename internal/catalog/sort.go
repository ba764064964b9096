package catalog

import (
	"slices"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/soft99/storefront-backend/pkg/enums"
	"github.com/soft99/storefront-backend/pkg/models"
)

// SortProducts returns a sorted copy. Empty means newest; an unknown option
// keeps the original order.
func SortProducts(products []models.Product, option enums.SortOption) []models.Product {
	sorted := append([]models.Product(nil), products...)
	if option == "" {
		option = enums.SortNewest
	}

	switch option {
	case enums.SortNewest:
		slices.SortStableFunc(sorted, func(a, b models.Product) int {
			return b.CreatedAt.Compare(a.CreatedAt)
		})
	case enums.SortPriceAsc:
		slices.SortStableFunc(sorted, func(a, b models.Product) int {
			return comparePrice(a.Price, b.Price)
		})
	case enums.SortPriceDesc:
		slices.SortStableFunc(sorted, func(a, b models.Product) int {
			return comparePrice(b.Price, a.Price)
		})
	case enums.SortName:
		// a Collator holds scratch buffers; one per call
		col := collate.New(language.Arabic)
		slices.SortStableFunc(sorted, func(a, b models.Product) int {
			return col.CompareString(a.DisplayName(), b.DisplayName())
		})
	}
	return sorted
}

func comparePrice(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}
