package document

import (
	"context"

	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/soft99/storefront-backend/internal/providers"
	"github.com/soft99/storefront-backend/pkg/models"
)

func (p *Provider) ListCategories(ctx context.Context) ([]models.Category, error) {
	ctx, cancel := p.opContext(ctx)
	defer cancel()
	return findAll(ctx, p.categories, "list categories", bson.M{}, CategoryToModel)
}

func (p *Provider) GetCategory(ctx context.Context, id string) (*models.Category, error) {
	ctx, cancel := p.opContext(ctx)
	defer cancel()
	return findByID(ctx, p.categories, "get category", id, CategoryToModel)
}

func (p *Provider) CreateCategory(ctx context.Context, category models.Category) (*models.Category, error) {
	created, err := providers.PrepareCategory(category, p.now())
	if err != nil {
		return nil, err
	}
	ctx, cancel := p.opContext(ctx)
	defer cancel()
	if err := insert(ctx, p.categories, "create category", CategoryFromModel(created)); err != nil {
		return nil, err
	}
	return &created, nil
}

func (p *Provider) UpdateCategory(ctx context.Context, id string, patch models.CategoryPatch) (*models.Category, error) {
	ctx, cancel := p.opContext(ctx)
	defer cancel()

	existing, err := findByID(ctx, p.categories, "get category", id, CategoryToModel)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, providers.NotFound("category", id)
	}
	next, err := providers.PatchCategory(*existing, patch)
	if err != nil {
		return nil, err
	}
	if err := replace(ctx, p.categories, "category", id, CategoryFromModel(next)); err != nil {
		return nil, err
	}
	return &next, nil
}

func (p *Provider) DeleteCategory(ctx context.Context, id string) (bool, error) {
	ctx, cancel := p.opContext(ctx)
	defer cancel()
	return deleteByID(ctx, p.categories, "delete category", id)
}

func (p *Provider) ImportCategories(ctx context.Context, batch []models.Category) error {
	ctx, cancel := p.opContext(ctx)
	defer cancel()
	return upsertMany(ctx, p.categories, "import categories", batch,
		func(c models.Category) string { return c.ID },
		func(c models.Category) any { return CategoryFromModel(c) })
}

func (p *Provider) ListBrands(ctx context.Context) ([]models.Brand, error) {
	ctx, cancel := p.opContext(ctx)
	defer cancel()
	return findAll(ctx, p.brands, "list brands", bson.M{}, BrandToModel)
}

func (p *Provider) GetBrand(ctx context.Context, id string) (*models.Brand, error) {
	ctx, cancel := p.opContext(ctx)
	defer cancel()
	return findByID(ctx, p.brands, "get brand", id, BrandToModel)
}

func (p *Provider) CreateBrand(ctx context.Context, brand models.Brand) (*models.Brand, error) {
	created, err := providers.PrepareBrand(brand, p.now())
	if err != nil {
		return nil, err
	}
	ctx, cancel := p.opContext(ctx)
	defer cancel()
	if err := insert(ctx, p.brands, "create brand", BrandFromModel(created)); err != nil {
		return nil, err
	}
	return &created, nil
}

func (p *Provider) UpdateBrand(ctx context.Context, id string, patch models.BrandPatch) (*models.Brand, error) {
	ctx, cancel := p.opContext(ctx)
	defer cancel()

	existing, err := findByID(ctx, p.brands, "get brand", id, BrandToModel)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, providers.NotFound("brand", id)
	}
	next, err := providers.PatchBrand(*existing, patch)
	if err != nil {
		return nil, err
	}
	if err := replace(ctx, p.brands, "brand", id, BrandFromModel(next)); err != nil {
		return nil, err
	}
	return &next, nil
}

func (p *Provider) DeleteBrand(ctx context.Context, id string) (bool, error) {
	ctx, cancel := p.opContext(ctx)
	defer cancel()
	return deleteByID(ctx, p.brands, "delete brand", id)
}

func (p *Provider) ImportBrands(ctx context.Context, batch []models.Brand) error {
	ctx, cancel := p.opContext(ctx)
	defer cancel()
	return upsertMany(ctx, p.brands, "import brands", batch,
		func(b models.Brand) string { return b.ID },
		func(b models.Brand) any { return BrandFromModel(b) })
}
