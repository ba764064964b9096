package catalog

import (
	"context"
	"fmt"

	"github.com/soft99/storefront-backend/internal/providers"
	pkgerrors "github.com/soft99/storefront-backend/pkg/errors"
	"github.com/soft99/storefront-backend/pkg/logger"
	"github.com/soft99/storefront-backend/pkg/models"
	"github.com/soft99/storefront-backend/pkg/pagination"
)

// AdminService is the back-office view of the catalog. Unlike Service it
// sees every status and surfaces provider failures to the caller.
type AdminService interface {
	ProviderName() string

	Products(ctx context.Context, input BrowseInput) (pagination.Page[models.Product], error)
	Product(ctx context.Context, id string) (*models.Product, error)
	CreateProduct(ctx context.Context, product models.Product) (*models.Product, error)
	UpdateProduct(ctx context.Context, id string, patch models.ProductPatch) (*models.Product, error)
	DeleteProduct(ctx context.Context, id string) error

	Categories(ctx context.Context) ([]models.Category, error)
	Category(ctx context.Context, id string) (*models.Category, error)
	CreateCategory(ctx context.Context, category models.Category) (*models.Category, error)
	UpdateCategory(ctx context.Context, id string, patch models.CategoryPatch) (*models.Category, error)
	DeleteCategory(ctx context.Context, id string) error

	Brands(ctx context.Context) ([]models.Brand, error)
	Brand(ctx context.Context, id string) (*models.Brand, error)
	CreateBrand(ctx context.Context, brand models.Brand) (*models.Brand, error)
	UpdateBrand(ctx context.Context, id string, patch models.BrandPatch) (*models.Brand, error)
	DeleteBrand(ctx context.Context, id string) error
}

type adminService struct {
	providers providers.Getter
	logg      *logger.Logger
}

func NewAdminService(p providers.Getter, logg *logger.Logger) (AdminService, error) {
	if p == nil {
		return nil, fmt.Errorf("provider getter required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &adminService{providers: p, logg: logg}, nil
}

func (s *adminService) ProviderName() string {
	return s.providers.Get().Name()
}

func (s *adminService) Products(ctx context.Context, input BrowseInput) (pagination.Page[models.Product], error) {
	const op = "catalog.AdminProducts"
	products, err := s.providers.Get().ListProducts(ctx, input.Filters)
	if err != nil {
		return pagination.Page[models.Product]{}, fmt.Errorf("%s: %w", op, err)
	}
	products = FilterProducts(products, input.Filters)
	return PaginateProducts(SortProducts(products, input.Sort), input.Page, input.PerPage), nil
}

func (s *adminService) Product(ctx context.Context, id string) (*models.Product, error) {
	product, err := s.providers.Get().GetProduct(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("catalog.AdminProduct: %w", err)
	}
	if product == nil {
		return nil, providers.NotFound("product", id)
	}
	return product, nil
}

func (s *adminService) CreateProduct(ctx context.Context, product models.Product) (*models.Product, error) {
	p := s.providers.Get()
	created, err := p.CreateProduct(ctx, product)
	if err != nil {
		return nil, fmt.Errorf("catalog.CreateProduct: %w", err)
	}
	s.logg.Info(s.logg.WithFields(ctx, map[string]any{"product_id": created.ID, "provider": p.Name()}), "admin.product_created")
	return created, nil
}

func (s *adminService) UpdateProduct(ctx context.Context, id string, patch models.ProductPatch) (*models.Product, error) {
	if err := models.ValidatePatch(patch); err != nil {
		return nil, err
	}
	updated, err := s.providers.Get().UpdateProduct(ctx, id, patch)
	if err != nil {
		return nil, fmt.Errorf("catalog.UpdateProduct: %w", err)
	}
	return updated, nil
}

func (s *adminService) DeleteProduct(ctx context.Context, id string) error {
	p := s.providers.Get()
	ok, err := p.DeleteProduct(ctx, id)
	if err != nil {
		return fmt.Errorf("catalog.DeleteProduct: %w", err)
	}
	if !ok {
		return providers.NotFound("product", id)
	}
	s.logg.Info(s.logg.WithFields(ctx, map[string]any{"product_id": id, "provider": p.Name()}), "admin.product_deleted")
	return nil
}

func (s *adminService) Categories(ctx context.Context) ([]models.Category, error) {
	categories, err := s.providers.Get().ListCategories(ctx)
	if err != nil {
		return nil, fmt.Errorf("catalog.AdminCategories: %w", err)
	}
	return categories, nil
}

func (s *adminService) Category(ctx context.Context, id string) (*models.Category, error) {
	category, err := s.providers.Get().GetCategory(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("catalog.AdminCategory: %w", err)
	}
	if category == nil {
		return nil, providers.NotFound("category", id)
	}
	return category, nil
}

func (s *adminService) CreateCategory(ctx context.Context, category models.Category) (*models.Category, error) {
	created, err := s.providers.Get().CreateCategory(ctx, category)
	if err != nil {
		return nil, fmt.Errorf("catalog.CreateCategory: %w", err)
	}
	return created, nil
}

func (s *adminService) UpdateCategory(ctx context.Context, id string, patch models.CategoryPatch) (*models.Category, error) {
	if err := models.ValidatePatch(patch); err != nil {
		return nil, err
	}
	updated, err := s.providers.Get().UpdateCategory(ctx, id, patch)
	if err != nil {
		return nil, fmt.Errorf("catalog.UpdateCategory: %w", err)
	}
	return updated, nil
}

// DeleteCategory refuses while published or hidden products still point at
// the category.
func (s *adminService) DeleteCategory(ctx context.Context, id string) error {
	p := s.providers.Get()
	inUse, err := p.ListProducts(ctx, &models.ProductFilters{Category: &id})
	if err != nil {
		return fmt.Errorf("catalog.DeleteCategory: %w", err)
	}
	if len(inUse) > 0 {
		return pkgerrors.New(pkgerrors.CodeStateConflict, "category still has products").
			WithDetails(map[string]any{"product_count": len(inUse)})
	}
	ok, err := p.DeleteCategory(ctx, id)
	if err != nil {
		return fmt.Errorf("catalog.DeleteCategory: %w", err)
	}
	if !ok {
		return providers.NotFound("category", id)
	}
	return nil
}

func (s *adminService) Brands(ctx context.Context) ([]models.Brand, error) {
	brands, err := s.providers.Get().ListBrands(ctx)
	if err != nil {
		return nil, fmt.Errorf("catalog.AdminBrands: %w", err)
	}
	return brands, nil
}

func (s *adminService) Brand(ctx context.Context, id string) (*models.Brand, error) {
	brand, err := s.providers.Get().GetBrand(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("catalog.AdminBrand: %w", err)
	}
	if brand == nil {
		return nil, providers.NotFound("brand", id)
	}
	return brand, nil
}

func (s *adminService) CreateBrand(ctx context.Context, brand models.Brand) (*models.Brand, error) {
	created, err := s.providers.Get().CreateBrand(ctx, brand)
	if err != nil {
		return nil, fmt.Errorf("catalog.CreateBrand: %w", err)
	}
	return created, nil
}

func (s *adminService) UpdateBrand(ctx context.Context, id string, patch models.BrandPatch) (*models.Brand, error) {
	if err := models.ValidatePatch(patch); err != nil {
		return nil, err
	}
	updated, err := s.providers.Get().UpdateBrand(ctx, id, patch)
	if err != nil {
		return nil, fmt.Errorf("catalog.UpdateBrand: %w", err)
	}
	return updated, nil
}

func (s *adminService) DeleteBrand(ctx context.Context, id string) error {
	ok, err := s.providers.Get().DeleteBrand(ctx, id)
	if err != nil {
		return fmt.Errorf("catalog.DeleteBrand: %w", err)
	}
	if !ok {
		return providers.NotFound("brand", id)
	}
	return nil
}
