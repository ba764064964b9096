package catalog

import (
	"context"
	"fmt"

	"github.com/soft99/storefront-backend/internal/providers"
	"github.com/soft99/storefront-backend/pkg/enums"
	pkgerrors "github.com/soft99/storefront-backend/pkg/errors"
	"github.com/soft99/storefront-backend/pkg/logger"
	"github.com/soft99/storefront-backend/pkg/models"
	"github.com/soft99/storefront-backend/pkg/pagination"
)

// Service answers storefront catalog reads. Only published products are ever
// returned.
type Service interface {
	Browse(ctx context.Context, input BrowseInput) (pagination.Page[models.Product], error)
	Product(ctx context.Context, id string) (*models.Product, error)
	Related(ctx context.Context, id string, limit int) ([]models.Product, error)
	Search(ctx context.Context, query string, page, perPage int) (pagination.Page[models.Product], error)
	Facets(ctx context.Context, filters *models.ProductFilters) (Facets, error)
	Featured(ctx context.Context, limit int) ([]models.Product, error)
	NewArrivals(ctx context.Context, limit int) ([]models.Product, error)
	Categories(ctx context.Context) ([]models.Category, error)
	Category(ctx context.Context, id string) (*models.Category, error)
	Brands(ctx context.Context) ([]models.Brand, error)
	Brand(ctx context.Context, id string) (*models.Brand, error)
}

// BrowseInput is a filtered, sorted and paginated listing request.
type BrowseInput struct {
	Filters *models.ProductFilters
	Sort    enums.SortOption
	Page    int
	PerPage int
}

// Facets summarizes a filtered listing for the filter sidebar.
type Facets struct {
	PriceRange     PriceRange     `json:"priceRange"`
	Brands         []models.Brand `json:"brands"`
	CategoryCounts map[string]int `json:"categoryCounts"`
	BrandCounts    map[string]int `json:"brandCounts"`
	TotalItems     int            `json:"totalItems"`
}

type service struct {
	providers providers.Getter
	logg      *logger.Logger
}

func NewService(p providers.Getter, logg *logger.Logger) (Service, error) {
	if p == nil {
		return nil, fmt.Errorf("provider getter required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &service{providers: p, logg: logg}, nil
}

// published lists published products matching filters. Provider failures are
// logged and read as an empty catalog.
func (s *service) published(ctx context.Context, filters *models.ProductFilters) []models.Product {
	p := s.providers.Get()
	scoped := filters.WithStatus(enums.ProductStatusPublished)
	products, err := p.ListProducts(ctx, scoped)
	if err != nil {
		s.logg.Error(s.logg.WithProvider(ctx, p.Name()), "catalog.list_products_failed", err)
		return []models.Product{}
	}
	// providers may push only part of the filter down
	return FilterProducts(products, scoped)
}

func (s *service) Browse(ctx context.Context, input BrowseInput) (pagination.Page[models.Product], error) {
	products := s.published(ctx, input.Filters)
	return PaginateProducts(SortProducts(products, input.Sort), input.Page, input.PerPage), nil
}

func (s *service) Product(ctx context.Context, id string) (*models.Product, error) {
	p := s.providers.Get()
	product, err := p.GetProduct(ctx, id)
	if err != nil {
		s.logg.Error(s.logg.WithProvider(ctx, p.Name()), "catalog.get_product_failed", err)
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
	}
	if product == nil || !product.IsPublished() {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
	}
	return product, nil
}

func (s *service) Related(ctx context.Context, id string, limit int) ([]models.Product, error) {
	product, err := s.Product(ctx, id)
	if err != nil {
		return nil, err
	}
	return GetRelatedProducts(*product, s.published(ctx, nil), limit), nil
}

func (s *service) Search(ctx context.Context, query string, page, perPage int) (pagination.Page[models.Product], error) {
	products := s.published(ctx, nil)
	brands, _ := s.Brands(ctx)
	matched := SearchProducts(products, query, brands)
	return PaginateProducts(matched, page, perPage), nil
}

func (s *service) Facets(ctx context.Context, filters *models.ProductFilters) (Facets, error) {
	products := s.published(ctx, filters)
	brands, _ := s.Brands(ctx)

	facets := Facets{
		PriceRange:     GetPriceRange(products),
		Brands:         GetAvailableBrands(products, brands),
		CategoryCounts: map[string]int{},
		BrandCounts:    map[string]int{},
		TotalItems:     len(products),
	}
	for category, items := range GroupProductsByCategory(products) {
		facets.CategoryCounts[category] = len(items)
	}
	for brand, items := range GroupProductsByBrand(products) {
		facets.BrandCounts[brand] = len(items)
	}
	return facets, nil
}

func (s *service) Featured(ctx context.Context, limit int) ([]models.Product, error) {
	return firstN(SortProducts(GetFeaturedProducts(s.published(ctx, nil)), enums.SortNewest), limit), nil
}

func (s *service) NewArrivals(ctx context.Context, limit int) ([]models.Product, error) {
	return firstN(SortProducts(GetNewProducts(s.published(ctx, nil)), enums.SortNewest), limit), nil
}

func (s *service) Categories(ctx context.Context) ([]models.Category, error) {
	p := s.providers.Get()
	categories, err := p.ListCategories(ctx)
	if err != nil {
		s.logg.Error(s.logg.WithProvider(ctx, p.Name()), "catalog.list_categories_failed", err)
		return []models.Category{}, nil
	}
	return categories, nil
}

func (s *service) Category(ctx context.Context, id string) (*models.Category, error) {
	p := s.providers.Get()
	category, err := p.GetCategory(ctx, id)
	if err != nil {
		s.logg.Error(s.logg.WithProvider(ctx, p.Name()), "catalog.get_category_failed", err)
	}
	if err != nil || category == nil {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "category not found")
	}
	return category, nil
}

func (s *service) Brands(ctx context.Context) ([]models.Brand, error) {
	p := s.providers.Get()
	brands, err := p.ListBrands(ctx)
	if err != nil {
		s.logg.Error(s.logg.WithProvider(ctx, p.Name()), "catalog.list_brands_failed", err)
		return []models.Brand{}, nil
	}
	return brands, nil
}

func (s *service) Brand(ctx context.Context, id string) (*models.Brand, error) {
	p := s.providers.Get()
	brand, err := p.GetBrand(ctx, id)
	if err != nil {
		s.logg.Error(s.logg.WithProvider(ctx, p.Name()), "catalog.get_brand_failed", err)
	}
	if err != nil || brand == nil {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "brand not found")
	}
	return brand, nil
}

func firstN(products []models.Product, limit int) []models.Product {
	if limit <= 0 || limit >= len(products) {
		return products
	}
	return products[:limit]
}
