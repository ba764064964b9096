package local

import (
	"context"

	"github.com/soft99/storefront-backend/pkg/models"
)

// ImportBrands upserts brands by id into the brand snapshot.
func (p *Provider) ImportBrands(ctx context.Context, batch []models.Brand) error {
	return importBatch(ctx, p, &p.brands, batch, func(b models.Brand) string { return b.ID })
}

func (p *Provider) ImportCategories(ctx context.Context, batch []models.Category) error {
	return importBatch(ctx, p, &p.categories, batch, func(c models.Category) string { return c.ID })
}

func (p *Provider) ImportProducts(ctx context.Context, batch []models.Product) error {
	return importBatch(ctx, p, &p.products, batch, func(pr models.Product) string { return pr.ID })
}

func importBatch[T any](ctx context.Context, p *Provider, c *collection[T], batch []T, id func(T) string) error {
	return mutate(ctx, p, c, func(items []T) ([]T, error) {
		pos := make(map[string]int, len(items))
		for i, item := range items {
			pos[id(item)] = i
		}
		for _, rec := range batch {
			rec = c.clone(rec)
			if i, ok := pos[id(rec)]; ok {
				items[i] = rec
				continue
			}
			pos[id(rec)] = len(items)
			items = append(items, rec)
		}
		return items, nil
	})
}
