package apistub

import (
	"context"

	pkgerrors "github.com/soft99/storefront-backend/pkg/errors"
	"github.com/soft99/storefront-backend/pkg/models"
)

// Provider is the placeholder for a future REST backend. Every call fails with
// NOT_IMPLEMENTED naming the method.
type Provider struct{}

func New() *Provider {
	return &Provider{}
}

func (p *Provider) Name() string { return "api" }

func notImplemented(method string) error {
	return pkgerrors.Newf(pkgerrors.CodeNotImplemented, "api provider: %s is not implemented", method).
		WithDetails(map[string]string{"method": method})
}

func (p *Provider) ListProducts(context.Context, *models.ProductFilters) ([]models.Product, error) {
	return nil, notImplemented("ListProducts")
}

func (p *Provider) GetProduct(context.Context, string) (*models.Product, error) {
	return nil, notImplemented("GetProduct")
}

func (p *Provider) CreateProduct(context.Context, models.Product) (*models.Product, error) {
	return nil, notImplemented("CreateProduct")
}

func (p *Provider) UpdateProduct(context.Context, string, models.ProductPatch) (*models.Product, error) {
	return nil, notImplemented("UpdateProduct")
}

func (p *Provider) DeleteProduct(context.Context, string) (bool, error) {
	return false, notImplemented("DeleteProduct")
}

func (p *Provider) ListCategories(context.Context) ([]models.Category, error) {
	return nil, notImplemented("ListCategories")
}

func (p *Provider) GetCategory(context.Context, string) (*models.Category, error) {
	return nil, notImplemented("GetCategory")
}

func (p *Provider) CreateCategory(context.Context, models.Category) (*models.Category, error) {
	return nil, notImplemented("CreateCategory")
}

func (p *Provider) UpdateCategory(context.Context, string, models.CategoryPatch) (*models.Category, error) {
	return nil, notImplemented("UpdateCategory")
}

func (p *Provider) DeleteCategory(context.Context, string) (bool, error) {
	return false, notImplemented("DeleteCategory")
}

func (p *Provider) ListBrands(context.Context) ([]models.Brand, error) {
	return nil, notImplemented("ListBrands")
}

func (p *Provider) GetBrand(context.Context, string) (*models.Brand, error) {
	return nil, notImplemented("GetBrand")
}

func (p *Provider) CreateBrand(context.Context, models.Brand) (*models.Brand, error) {
	return nil, notImplemented("CreateBrand")
}

func (p *Provider) UpdateBrand(context.Context, string, models.BrandPatch) (*models.Brand, error) {
	return nil, notImplemented("UpdateBrand")
}

func (p *Provider) DeleteBrand(context.Context, string) (bool, error) {
	return false, notImplemented("DeleteBrand")
}

func (p *Provider) ListOrders(context.Context, string) ([]models.Order, error) {
	return nil, notImplemented("ListOrders")
}

func (p *Provider) GetOrder(context.Context, string) (*models.Order, error) {
	return nil, notImplemented("GetOrder")
}

func (p *Provider) CreateOrder(context.Context, models.Order) (*models.Order, error) {
	return nil, notImplemented("CreateOrder")
}

func (p *Provider) UpdateOrder(context.Context, string, models.OrderPatch) (*models.Order, error) {
	return nil, notImplemented("UpdateOrder")
}

func (p *Provider) DeleteOrder(context.Context, string) (bool, error) {
	return false, notImplemented("DeleteOrder")
}
