package document

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/soft99/storefront-backend/internal/catalog"
	"github.com/soft99/storefront-backend/internal/images"
	"github.com/soft99/storefront-backend/internal/providers"
	"github.com/soft99/storefront-backend/pkg/models"
)

func (p *Provider) ListProducts(ctx context.Context, filters *models.ProductFilters) ([]models.Product, error) {
	ctx, cancel := p.opContext(ctx)
	defer cancel()

	all, err := findAll(ctx, p.products, "list products", BuildProductFilter(filters), ProductToModel)
	if err != nil {
		return nil, err
	}
	return catalog.FilterProducts(all, filters), nil
}

func (p *Provider) GetProduct(ctx context.Context, id string) (*models.Product, error) {
	ctx, cancel := p.opContext(ctx)
	defer cancel()
	return findByID(ctx, p.products, "get product", id, ProductToModel)
}

func (p *Provider) CreateProduct(ctx context.Context, product models.Product) (*models.Product, error) {
	created, err := providers.PrepareProduct(product, p.now())
	if err != nil {
		return nil, err
	}
	ctx, cancel := p.opContext(ctx)
	defer cancel()
	if err := insert(ctx, p.products, "create product", ProductFromModel(created)); err != nil {
		return nil, err
	}
	return &created, nil
}

func (p *Provider) UpdateProduct(ctx context.Context, id string, patch models.ProductPatch) (*models.Product, error) {
	ctx, cancel := p.opContext(ctx)
	defer cancel()

	existing, err := findByID(ctx, p.products, "get product", id, ProductToModel)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, providers.NotFound("product", id)
	}
	next, err := providers.PatchProduct(*existing, patch, p.now())
	if err != nil {
		return nil, err
	}
	if err := replace(ctx, p.products, "product", id, ProductFromModel(next)); err != nil {
		return nil, err
	}
	return &next, nil
}

// DeleteProduct removes the document and then releases its images
// best-effort.
func (p *Provider) DeleteProduct(ctx context.Context, id string) (bool, error) {
	opCtx, cancel := p.opContext(ctx)
	defer cancel()

	var ent ProductEntity
	err := p.products.FindOneAndDelete(opCtx, bson.M{"_id": id}).Decode(&ent)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return false, nil
	}
	if err != nil {
		return false, providers.BackendError("delete product", err)
	}
	removed := ProductToModel(&ent)
	images.ReleaseBestEffort(ctx, p.releaser, p.logg, p.metrics, id, removed.ImageRefs())
	return true, nil
}

func (p *Provider) ImportProducts(ctx context.Context, batch []models.Product) error {
	ctx, cancel := p.opContext(ctx)
	defer cancel()
	return upsertMany(ctx, p.products, "import products", batch,
		func(pr models.Product) string { return pr.ID },
		func(pr models.Product) any { return ProductFromModel(pr) })
}
