package local

import (
	"context"

	"github.com/soft99/storefront-backend/internal/catalog"
	"github.com/soft99/storefront-backend/internal/images"
	"github.com/soft99/storefront-backend/internal/providers"
	"github.com/soft99/storefront-backend/pkg/models"
)

func (p *Provider) ListProducts(ctx context.Context, filters *models.ProductFilters) ([]models.Product, error) {
	all, err := read(ctx, p, &p.products)
	if err != nil {
		return nil, err
	}
	return catalog.FilterProducts(all, filters), nil
}

func (p *Provider) GetProduct(ctx context.Context, id string) (*models.Product, error) {
	all, err := read(ctx, p, &p.products)
	if err != nil {
		return nil, err
	}
	if i := indexOf(all, func(item models.Product) bool { return item.ID == id }); i >= 0 {
		return &all[i], nil
	}
	return nil, nil
}

func (p *Provider) CreateProduct(ctx context.Context, product models.Product) (*models.Product, error) {
	created, err := providers.PrepareProduct(product, p.now())
	if err != nil {
		return nil, err
	}
	err = mutate(ctx, p, &p.products, func(items []models.Product) ([]models.Product, error) {
		return append(items, created), nil
	})
	if err != nil {
		return nil, err
	}
	out := created.Clone()
	return &out, nil
}

func (p *Provider) UpdateProduct(ctx context.Context, id string, patch models.ProductPatch) (*models.Product, error) {
	var updated models.Product
	err := mutate(ctx, p, &p.products, func(items []models.Product) ([]models.Product, error) {
		i := indexOf(items, func(item models.Product) bool { return item.ID == id })
		if i < 0 {
			return nil, providers.NotFound("product", id)
		}
		next, err := providers.PatchProduct(items[i], patch, p.now())
		if err != nil {
			return nil, err
		}
		items[i] = next
		updated = next.Clone()
		return items, nil
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// DeleteProduct removes the product and then releases its images; image
// failures never fail the delete.
func (p *Provider) DeleteProduct(ctx context.Context, id string) (bool, error) {
	var removed *models.Product
	err := mutate(ctx, p, &p.products, func(items []models.Product) ([]models.Product, error) {
		i := indexOf(items, func(item models.Product) bool { return item.ID == id })
		if i < 0 {
			return nil, errUnchanged
		}
		gone := items[i]
		removed = &gone
		return append(items[:i], items[i+1:]...), nil
	})
	if err != nil {
		return false, err
	}
	if removed == nil {
		return false, nil
	}
	images.ReleaseBestEffort(ctx, p.releaser, p.logg, p.metrics, id, removed.ImageRefs())
	return true, nil
}
