package local

import (
	"context"

	"github.com/soft99/storefront-backend/internal/providers"
	"github.com/soft99/storefront-backend/pkg/models"
)

func (p *Provider) ListCategories(ctx context.Context) ([]models.Category, error) {
	return read(ctx, p, &p.categories)
}

func (p *Provider) GetCategory(ctx context.Context, id string) (*models.Category, error) {
	all, err := read(ctx, p, &p.categories)
	if err != nil {
		return nil, err
	}
	if i := indexOf(all, func(c models.Category) bool { return c.ID == id }); i >= 0 {
		return &all[i], nil
	}
	return nil, nil
}

func (p *Provider) CreateCategory(ctx context.Context, category models.Category) (*models.Category, error) {
	created, err := providers.PrepareCategory(category, p.now())
	if err != nil {
		return nil, err
	}
	err = mutate(ctx, p, &p.categories, func(items []models.Category) ([]models.Category, error) {
		return append(items, created), nil
	})
	if err != nil {
		return nil, err
	}
	return &created, nil
}

func (p *Provider) UpdateCategory(ctx context.Context, id string, patch models.CategoryPatch) (*models.Category, error) {
	var updated models.Category
	err := mutate(ctx, p, &p.categories, func(items []models.Category) ([]models.Category, error) {
		i := indexOf(items, func(c models.Category) bool { return c.ID == id })
		if i < 0 {
			return nil, providers.NotFound("category", id)
		}
		next, err := providers.PatchCategory(items[i], patch)
		if err != nil {
			return nil, err
		}
		items[i] = next
		updated = next
		return items, nil
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

func (p *Provider) DeleteCategory(ctx context.Context, id string) (bool, error) {
	removed := false
	err := mutate(ctx, p, &p.categories, func(items []models.Category) ([]models.Category, error) {
		i := indexOf(items, func(c models.Category) bool { return c.ID == id })
		if i < 0 {
			return nil, errUnchanged
		}
		removed = true
		return append(items[:i], items[i+1:]...), nil
	})
	if err != nil {
		return false, err
	}
	return removed, nil
}

func (p *Provider) ListBrands(ctx context.Context) ([]models.Brand, error) {
	return read(ctx, p, &p.brands)
}

func (p *Provider) GetBrand(ctx context.Context, id string) (*models.Brand, error) {
	all, err := read(ctx, p, &p.brands)
	if err != nil {
		return nil, err
	}
	if i := indexOf(all, func(b models.Brand) bool { return b.ID == id }); i >= 0 {
		return &all[i], nil
	}
	return nil, nil
}

func (p *Provider) CreateBrand(ctx context.Context, brand models.Brand) (*models.Brand, error) {
	created, err := providers.PrepareBrand(brand, p.now())
	if err != nil {
		return nil, err
	}
	err = mutate(ctx, p, &p.brands, func(items []models.Brand) ([]models.Brand, error) {
		return append(items, created), nil
	})
	if err != nil {
		return nil, err
	}
	return &created, nil
}

func (p *Provider) UpdateBrand(ctx context.Context, id string, patch models.BrandPatch) (*models.Brand, error) {
	var updated models.Brand
	err := mutate(ctx, p, &p.brands, func(items []models.Brand) ([]models.Brand, error) {
		i := indexOf(items, func(b models.Brand) bool { return b.ID == id })
		if i < 0 {
			return nil, providers.NotFound("brand", id)
		}
		next, err := providers.PatchBrand(items[i], patch)
		if err != nil {
			return nil, err
		}
		items[i] = next
		updated = next
		return items, nil
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

func (p *Provider) DeleteBrand(ctx context.Context, id string) (bool, error) {
	removed := false
	err := mutate(ctx, p, &p.brands, func(items []models.Brand) ([]models.Brand, error) {
		i := indexOf(items, func(b models.Brand) bool { return b.ID == id })
		if i < 0 {
			return nil, errUnchanged
		}
		removed = true
		return append(items[:i], items[i+1:]...), nil
	})
	if err != nil {
		return false, err
	}
	return removed, nil
}
