package providers

import (
	"context"

	"github.com/soft99/storefront-backend/pkg/models"
)

// ProductStore is the product half of a data provider. Get returns (nil, nil)
// when the id does not exist.
type ProductStore interface {
	ListProducts(ctx context.Context, filters *models.ProductFilters) ([]models.Product, error)
	GetProduct(ctx context.Context, id string) (*models.Product, error)
	CreateProduct(ctx context.Context, product models.Product) (*models.Product, error)
	UpdateProduct(ctx context.Context, id string, patch models.ProductPatch) (*models.Product, error)
	DeleteProduct(ctx context.Context, id string) (bool, error)
}

type CategoryStore interface {
	ListCategories(ctx context.Context) ([]models.Category, error)
	GetCategory(ctx context.Context, id string) (*models.Category, error)
	CreateCategory(ctx context.Context, category models.Category) (*models.Category, error)
	UpdateCategory(ctx context.Context, id string, patch models.CategoryPatch) (*models.Category, error)
	DeleteCategory(ctx context.Context, id string) (bool, error)
}

type BrandStore interface {
	ListBrands(ctx context.Context) ([]models.Brand, error)
	GetBrand(ctx context.Context, id string) (*models.Brand, error)
	CreateBrand(ctx context.Context, brand models.Brand) (*models.Brand, error)
	UpdateBrand(ctx context.Context, id string, patch models.BrandPatch) (*models.Brand, error)
	DeleteBrand(ctx context.Context, id string) (bool, error)
}

// OrderStore lists every order when userID is empty.
type OrderStore interface {
	ListOrders(ctx context.Context, userID string) ([]models.Order, error)
	GetOrder(ctx context.Context, id string) (*models.Order, error)
	CreateOrder(ctx context.Context, order models.Order) (*models.Order, error)
	UpdateOrder(ctx context.Context, id string, patch models.OrderPatch) (*models.Order, error)
	DeleteOrder(ctx context.Context, id string) (bool, error)
}

// Provider is a complete storefront backend.
type Provider interface {
	ProductStore
	CategoryStore
	BrandStore
	OrderStore
	Name() string
}

// Getter hands out the active provider.
type Getter interface {
	Get() Provider
}
