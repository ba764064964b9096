package catalog

import (
	"github.com/samber/lo"

	"github.com/soft99/storefront-backend/pkg/enums"
	"github.com/soft99/storefront-backend/pkg/models"
	"github.com/soft99/storefront-backend/pkg/pagination"
)

// UnknownBrand groups products without a brand.
const UnknownBrand = "unknown"

const DefaultRelatedLimit = 4

type PriceRange struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// PaginateProducts returns one page of products. The page is clamped to the
// available range.
func PaginateProducts(products []models.Product, page, perPage int) pagination.Page[models.Product] {
	return pagination.Paginate(products, page, perPage)
}

// GetRelatedProducts returns up to limit published products, other than the
// seed product, sharing its category or brand.
func GetRelatedProducts(product models.Product, all []models.Product, limit int) []models.Product {
	out := []models.Product{}
	if limit <= 0 {
		return out
	}
	for _, p := range all {
		if len(out) == limit {
			break
		}
		if p.ID == product.ID || !p.IsPublished() {
			continue
		}
		sameCategory := product.CategoryID != "" && p.CategoryID == product.CategoryID
		sameBrand := product.BrandID != "" && p.BrandID == product.BrandID
		if sameCategory || sameBrand {
			out = append(out, p)
		}
	}
	return out
}

func GetPriceRange(products []models.Product) PriceRange {
	if len(products) == 0 {
		return PriceRange{}
	}
	r := PriceRange{Min: products[0].Price, Max: products[0].Price}
	for _, p := range products[1:] {
		if p.Price < r.Min {
			r.Min = p.Price
		}
		if p.Price > r.Max {
			r.Max = p.Price
		}
	}
	return r
}

// GetAvailableBrands returns the brands referenced by products, in brand order.
func GetAvailableBrands(products []models.Product, brands []models.Brand) []models.Brand {
	referenced := map[string]struct{}{}
	for _, p := range products {
		if p.BrandID != "" {
			referenced[p.BrandID] = struct{}{}
		}
	}
	out := []models.Brand{}
	for _, b := range brands {
		if _, ok := referenced[b.ID]; ok {
			out = append(out, b)
		}
	}
	return out
}

func GroupProductsByCategory(products []models.Product) map[string][]models.Product {
	return lo.GroupBy(products, func(p models.Product) string { return p.CategoryID })
}

func GroupProductsByBrand(products []models.Product) map[string][]models.Product {
	return lo.GroupBy(products, func(p models.Product) string {
		return lo.Ternary(p.BrandID == "", UnknownBrand, p.BrandID)
	})
}

func GetFeaturedProducts(products []models.Product) []models.Product {
	return lo.Filter(products, func(p models.Product, _ int) bool { return p.IsFeatured })
}

func GetNewProducts(products []models.Product) []models.Product {
	return lo.Filter(products, func(p models.Product, _ int) bool { return p.IsNew })
}

// GetAvailableProducts accepts any of the three availability signals.
func GetAvailableProducts(products []models.Product) []models.Product {
	return lo.Filter(products, func(p models.Product, _ int) bool {
		return p.IsAvailable || p.StockStatus == enums.StockStatusAvailable || p.StockQuantity > 0
	})
}

func GetPublishedProducts(products []models.Product) []models.Product {
	return lo.Filter(products, func(p models.Product, _ int) bool { return p.IsPublished() })
}
