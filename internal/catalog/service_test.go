package catalog

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/soft99/storefront-backend/internal/providers"
	"github.com/soft99/storefront-backend/pkg/enums"
	pkgerrors "github.com/soft99/storefront-backend/pkg/errors"
	"github.com/soft99/storefront-backend/pkg/logger"
	"github.com/soft99/storefront-backend/pkg/models"
)

type stubProvider struct {
	providers.Provider
	products   []models.Product
	brands     []models.Brand
	categories []models.Category
	err        error
}

func (s *stubProvider) Name() string { return "stub" }

func (s *stubProvider) ListProducts(_ context.Context, filters *models.ProductFilters) ([]models.Product, error) {
	if s.err != nil {
		return nil, s.err
	}
	// mimic a backend that only pushes down status
	var pushed *models.ProductFilters
	if filters != nil {
		pushed = &models.ProductFilters{Status: filters.Status}
	}
	return FilterProducts(s.products, pushed), nil
}

func (s *stubProvider) GetProduct(_ context.Context, id string) (*models.Product, error) {
	if s.err != nil {
		return nil, s.err
	}
	for _, p := range s.products {
		if p.ID == id {
			out := p.Clone()
			return &out, nil
		}
	}
	return nil, nil
}

func (s *stubProvider) ListBrands(context.Context) ([]models.Brand, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.brands, nil
}

func (s *stubProvider) GetBrand(_ context.Context, id string) (*models.Brand, error) {
	for _, b := range s.brands {
		if b.ID == id {
			out := b
			return &out, nil
		}
	}
	return nil, nil
}

func (s *stubProvider) ListCategories(context.Context) ([]models.Category, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.categories, nil
}

func (s *stubProvider) GetCategory(_ context.Context, id string) (*models.Category, error) {
	if s.err != nil {
		return nil, s.err
	}
	for _, c := range s.categories {
		if c.ID == id {
			out := c
			return &out, nil
		}
	}
	return nil, nil
}

func newTestService(t *testing.T, p providers.Provider) Service {
	t.Helper()
	svc, err := NewService(providers.NewRegistry(p), logger.Nop())
	require.NoError(t, err)
	return svc
}

func storefrontFixture() *stubProvider {
	products := catalogFixture()
	hidden := products[0]
	hidden.ID = "4"
	hidden.NameAr = "دراجة مخفية"
	hidden.Status = enums.ProductStatusHidden
	products = append(products, hidden)
	return &stubProvider{
		products:   products,
		brands:     []models.Brand{{ID: "brand-1", Name: "Yamaha"}, {ID: "brand-2", Name: "Honda"}},
		categories: []models.Category{{ID: "cat-1", NameAr: "دراجات"}},
	}
}

func TestBrowseOnlyPublishedFilteredSortedPaged(t *testing.T) {
	svc := newTestService(t, storefrontFixture())

	page, err := svc.Browse(context.Background(), BrowseInput{
		Filters: &models.ProductFilters{Category: models.Ptr("cat-1")},
		Sort:    enums.SortPriceAsc,
		Page:    1,
		PerPage: 1,
	})
	require.NoError(t, err)
	assert.Equal(t, 2, page.TotalItems)
	assert.Equal(t, 2, page.TotalPages)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "2", page.Items[0].ID)

	all, err := svc.Browse(context.Background(), BrowseInput{Filters: &models.ProductFilters{Status: models.Ptr(enums.ProductStatusHidden)}})
	require.NoError(t, err)
	for _, p := range all.Items {
		assert.NotEqual(t, "4", p.ID, "hidden product leaked")
	}
}

func TestProductHidesUnpublished(t *testing.T) {
	svc := newTestService(t, storefrontFixture())

	p, err := svc.Product(context.Background(), "1")
	require.NoError(t, err)
	assert.Equal(t, "1", p.ID)

	_, err = svc.Product(context.Background(), "4")
	assert.True(t, pkgerrors.IsNotFound(err))

	_, err = svc.Product(context.Background(), "missing")
	assert.True(t, pkgerrors.IsNotFound(err))
}

func TestRelatedAndSearch(t *testing.T) {
	svc := newTestService(t, storefrontFixture())

	related, err := svc.Related(context.Background(), "1", 4)
	require.NoError(t, err)
	equalIDs(t, related, "2")

	page, err := svc.Search(context.Background(), "honda", 1, 20)
	require.NoError(t, err)
	equalIDs(t, page.Items, "3")
}

func TestFacets(t *testing.T) {
	svc := newTestService(t, storefrontFixture())

	facets, err := svc.Facets(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, PriceRange{Min: 800, Max: 1500}, facets.PriceRange)
	assert.Equal(t, 3, facets.TotalItems)
	assert.Equal(t, 2, facets.CategoryCounts["cat-1"])
	assert.Equal(t, 1, facets.BrandCounts["brand-2"])
	assert.Len(t, facets.Brands, 2)
}

func TestFeaturedAndNewArrivals(t *testing.T) {
	stub := storefrontFixture()
	stub.products[2].IsNew = true
	stub.products[3].IsNew = true
	svc := newTestService(t, stub)

	featured, err := svc.Featured(context.Background(), 8)
	require.NoError(t, err)
	equalIDs(t, featured, "2")

	arrivals, err := svc.NewArrivals(context.Background(), 8)
	require.NoError(t, err)
	equalIDs(t, arrivals, "3")
}

func TestProviderFailuresDegrade(t *testing.T) {
	svc := newTestService(t, &stubProvider{err: errors.New("backend down")})

	page, err := svc.Browse(context.Background(), BrowseInput{})
	require.NoError(t, err)
	assert.Equal(t, 0, page.TotalItems)

	categories, err := svc.Categories(context.Background())
	require.NoError(t, err)
	assert.Empty(t, categories)

	_, err = svc.Product(context.Background(), "1")
	assert.True(t, pkgerrors.IsNotFound(err))

	_, err = svc.Category(context.Background(), "cat-1")
	assert.True(t, pkgerrors.IsNotFound(err))
}

func TestTaxonomyLookups(t *testing.T) {
	svc := newTestService(t, storefrontFixture())

	brand, err := svc.Brand(context.Background(), "brand-2")
	require.NoError(t, err)
	assert.Equal(t, "Honda", brand.Name)

	_, err = svc.Brand(context.Background(), "nope")
	assert.True(t, pkgerrors.IsNotFound(err))

	category, err := svc.Category(context.Background(), "cat-1")
	require.NoError(t, err)
	assert.Equal(t, "دراجات", category.NameAr)
}
