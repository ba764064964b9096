package catalog

import (
	"encoding/json"
	"slices"
	"testing"
	"time"

	"github.com/brianvoe/gofakeit/v7"

	"github.com/soft99/storefront-backend/pkg/enums"
	"github.com/soft99/storefront-backend/pkg/models"
)

func day(s string) time.Time {
	ts, err := time.Parse(time.RFC3339, s)
	if err != nil {
		panic(err)
	}
	return ts
}

// catalogFixture is the three-bike catalog used across the engine tests.
func catalogFixture() []models.Product {
	base := models.Product{
		ID:          "1",
		CategoryID:  "cat-1",
		BrandID:     "brand-1",
		Type:        enums.ProductTypeBike,
		Price:       1200,
		Currency:    "SAR",
		Description: "دراجة رياضية",
		CreatedAt:   day("2024-01-01T00:00:00Z"),
		UpdatedAt:   day("2024-01-01T00:00:00Z"),
		NameAr:      "دراجة 1",
		Status:      enums.ProductStatusPublished,
	}
	second := base
	second.ID = "2"
	second.Price = 800
	second.NameAr = "دراجة 2"
	second.IsFeatured = true
	second.CreatedAt = day("2024-02-01T00:00:00Z")

	third := base
	third.ID = "3"
	third.Price = 1500
	third.BrandID = "brand-2"
	third.CategoryID = "cat-2"
	third.NameAr = "دراجة 3"
	third.CreatedAt = day("2024-03-01T00:00:00Z")

	return []models.Product{base, second, third}
}

func ids(products []models.Product) []string {
	out := make([]string, len(products))
	for i, p := range products {
		out[i] = p.ID
	}
	return out
}

func equalIDs(t *testing.T, got []models.Product, want ...string) {
	t.Helper()
	g := ids(got)
	if len(g) != len(want) {
		t.Fatalf("ids = %v, want %v", g, want)
	}
	for i := range want {
		if g[i] != want[i] {
			t.Fatalf("ids = %v, want %v", g, want)
		}
	}
}

func TestFilterProductsStatusAndSearch(t *testing.T) {
	got := FilterProducts(catalogFixture(), &models.ProductFilters{
		Status: models.Ptr(enums.ProductStatusPublished),
		Search: models.Ptr("3"),
	})
	equalIDs(t, got, "3")
}

func TestFilterProductsFeatured(t *testing.T) {
	equalIDs(t, FilterProducts(catalogFixture(), &models.ProductFilters{IsFeatured: models.Ptr(true)}), "2")
	equalIDs(t, FilterProducts(catalogFixture(), &models.ProductFilters{IsFeatured: models.Ptr(false)}), "1", "3")
}

func TestFilterProductsAndLogic(t *testing.T) {
	products := catalogFixture()
	products[0].StockStatus = enums.StockStatusAvailable
	products[2].StockStatus = enums.StockStatusAvailable

	tests := []struct {
		name    string
		filters *models.ProductFilters
		want    []string
	}{
		{name: "nil filters keep all", filters: nil, want: []string{"1", "2", "3"}},
		{name: "empty filters keep all", filters: &models.ProductFilters{}, want: []string{"1", "2", "3"}},
		{name: "category", filters: &models.ProductFilters{Category: models.Ptr("cat-1")}, want: []string{"1", "2"}},
		{name: "brand and category", filters: &models.ProductFilters{Category: models.Ptr("cat-1"), Brand: models.Ptr("brand-2")}, want: []string{}},
		{name: "inclusive price bounds", filters: &models.ProductFilters{MinPrice: models.Ptr(800.0), MaxPrice: models.Ptr(1200.0)}, want: []string{"1", "2"}},
		{name: "stock status ignores missing", filters: &models.ProductFilters{StockStatus: models.Ptr(enums.StockStatusAvailable)}, want: []string{"1", "3"}},
		{name: "type", filters: &models.ProductFilters{Type: models.Ptr(enums.ProductTypeGear)}, want: []string{}},
		{name: "whitespace search", filters: &models.ProductFilters{Search: models.Ptr("   ")}, want: []string{"1", "2", "3"}},
		{name: "isNew false", filters: &models.ProductFilters{IsNew: models.Ptr(false)}, want: []string{"1", "2", "3"}},
		{name: "hidden status", filters: &models.ProductFilters{Status: models.Ptr(enums.ProductStatusHidden)}, want: []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			equalIDs(t, FilterProducts(products, tt.filters), tt.want...)
		})
	}
}

func TestFilterProductsDoesNotMutateInput(t *testing.T) {
	products := catalogFixture()
	out := FilterProducts(products, &models.ProductFilters{})
	out[0].NameAr = "changed"
	if products[0].NameAr != "دراجة 1" {
		t.Fatal("filter result aliases input")
	}
}

func TestSearchMatchesFieldsCaseInsensitively(t *testing.T) {
	products := []models.Product{
		{ID: "a", NameEn: "Motul 7100 4T", Status: enums.ProductStatusPublished},
		{ID: "b", SKU: "NGK-CR9E", Status: enums.ProductStatusPublished},
		{ID: "c", Specifications: map[string]string{"model": "RX-450"}, Status: enums.ProductStatusPublished},
		{ID: "d", Description: "Synthetic OIL for racing", Status: enums.ProductStatusPublished},
		{ID: "e", NameAr: "خوذة", BrandID: "shoei", Status: enums.ProductStatusPublished},
	}

	equalIDs(t, FilterProducts(products, &models.ProductFilters{Search: models.Ptr(" MOTUL ")}), "a")
	equalIDs(t, FilterProducts(products, &models.ProductFilters{Search: models.Ptr("ngk-cr9e")}), "b")
	equalIDs(t, FilterProducts(products, &models.ProductFilters{Search: models.Ptr("rx-4")}), "c")
	equalIDs(t, FilterProducts(products, &models.ProductFilters{Search: models.Ptr("oil")}), "d")
	equalIDs(t, FilterProducts(products, &models.ProductFilters{Search: models.Ptr("خوذ")}), "e")

	brands := []models.Brand{{ID: "shoei", Name: "Shoei"}}
	equalIDs(t, SearchProducts(products, "shoei", brands), "e")
	equalIDs(t, FilterProducts(products, &models.ProductFilters{Search: models.Ptr("shoei")}))
	equalIDs(t, SearchProducts(products, "  ", nil), "a", "b", "c", "d", "e")
}

func TestSearchMatchesLegacyNameAlias(t *testing.T) {
	raw := `{"id":"oil","name_ar":"زيت محرك","name_en":"Engine oil","name":"Motul 7100","category_id":"c1","type":"part","price":45}`
	var p models.Product
	if err := json.Unmarshal([]byte(raw), &p); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	products := []models.Product{p, {ID: "other", NameEn: "Chain lube", Status: enums.ProductStatusPublished}}

	equalIDs(t, FilterProducts(products, &models.ProductFilters{Search: models.Ptr("motul")}), "oil")
	equalIDs(t, SearchProducts(products, "7100", nil), "oil")
	equalIDs(t, FilterProducts(products, &models.ProductFilters{Search: models.Ptr("engine")}), "oil")
}

func TestFilterProductsIsIdempotent(t *testing.T) {
	products := catalogFixture()
	products[1].StockStatus = enums.StockStatusAvailable
	filters := []*models.ProductFilters{
		nil,
		{Category: models.Ptr("cat-1")},
		{MinPrice: models.Ptr(900.0), Search: models.Ptr("دراجة")},
		{IsFeatured: models.Ptr(false), StockStatus: models.Ptr(enums.StockStatusAvailable)},
	}
	for _, f := range filters {
		once := FilterProducts(products, f)
		equalIDs(t, FilterProducts(once, f), ids(once)...)
	}
}

func TestSortPriceDescMirrorsAscWithUniquePrices(t *testing.T) {
	products := make([]models.Product, 0, 30)
	seen := map[float64]bool{}
	for len(products) < 30 {
		price := float64(gofakeit.IntRange(1, 100000))
		if seen[price] {
			continue
		}
		seen[price] = true
		products = append(products, models.Product{ID: gofakeit.UUID(), Price: price})
	}

	asc := ids(SortProducts(products, enums.SortPriceAsc))
	slices.Reverse(asc)
	equalIDs(t, SortProducts(products, enums.SortPriceDesc), asc...)
}

func TestSortProducts(t *testing.T) {
	products := catalogFixture()

	byPriceDesc := SortProducts(products, enums.SortPriceDesc)
	if byPriceDesc[0].Price != 1500 || byPriceDesc[len(byPriceDesc)-1].Price != 800 {
		t.Fatalf("unexpected price-desc order %v", ids(byPriceDesc))
	}
	equalIDs(t, SortProducts(products, enums.SortPriceAsc), "2", "1", "3")
	equalIDs(t, SortProducts(products, enums.SortNewest), "3", "2", "1")
	equalIDs(t, SortProducts(products, ""), "3", "2", "1")
	equalIDs(t, SortProducts(products, "rating"), "1", "2", "3")
	equalIDs(t, products, "1", "2", "3")
}

func TestSortProductsStable(t *testing.T) {
	products := []models.Product{
		{ID: "a", Price: 10},
		{ID: "b", Price: 5},
		{ID: "c", Price: 10},
		{ID: "d", Price: 5},
	}
	equalIDs(t, SortProducts(products, enums.SortPriceAsc), "b", "d", "a", "c")
	equalIDs(t, SortProducts(products, enums.SortPriceDesc), "a", "c", "b", "d")
}

func TestSortProductsByArabicName(t *testing.T) {
	products := []models.Product{
		{ID: "ya", NameAr: "يماها"},
		{ID: "alif", NameAr: "أبريليا"},
		{ID: "ba", NameAr: "بي إم دبليو"},
		{ID: "kaf", NameAr: "كاواساكي"},
	}
	equalIDs(t, SortProducts(products, enums.SortName), "alif", "ba", "kaf", "ya")
}

func TestPaginateProducts(t *testing.T) {
	products := make([]models.Product, 0, 45)
	for i := 0; i < 45; i++ {
		products = append(products, models.Product{ID: gofakeit.UUID(), Price: gofakeit.Price(1, 1000)})
	}

	page := PaginateProducts(products, 99, 20)
	if page.CurrentPage != 3 || page.TotalPages != 3 || page.TotalItems != 45 || len(page.Items) != 5 {
		t.Fatalf("unexpected page %+v", page)
	}
	if page.Items[0].ID != products[40].ID {
		t.Fatal("last page should start at item 41")
	}

	for _, requested := range []int{0, -1, -100} {
		first := PaginateProducts(products, requested, 20)
		if first.CurrentPage != 1 || len(first.Items) != 20 || first.Items[0].ID != products[0].ID {
			t.Fatalf("page %d should clamp to the first page, got %+v", requested, first)
		}
	}

	empty := PaginateProducts(nil, 0, 20)
	if empty.CurrentPage != 1 || empty.TotalPages != 0 || len(empty.Items) != 0 {
		t.Fatalf("unexpected empty page %+v", empty)
	}
}

func TestGetRelatedProducts(t *testing.T) {
	products := catalogFixture()
	related := GetRelatedProducts(products[0], products, 2)
	equalIDs(t, related, "2")

	products[2].BrandID = "brand-1"
	equalIDs(t, GetRelatedProducts(products[0], products, 5), "2", "3")
	equalIDs(t, GetRelatedProducts(products[0], products, 1), "2")
	equalIDs(t, GetRelatedProducts(products[0], products, 0))

	products[1].Status = enums.ProductStatusHidden
	equalIDs(t, GetRelatedProducts(products[0], products, 5), "3")

	noBrandSeed := models.Product{ID: "x", CategoryID: "none"}
	noBrand := []models.Product{{ID: "y", CategoryID: "other", Status: enums.ProductStatusPublished}}
	equalIDs(t, GetRelatedProducts(noBrandSeed, noBrand, 5))

	uncategorized := models.Product{ID: "u1"}
	pool := []models.Product{
		{ID: "u2", Status: enums.ProductStatusPublished},
		{ID: "u3", BrandID: "brand-1", Status: enums.ProductStatusPublished},
	}
	equalIDs(t, GetRelatedProducts(uncategorized, pool, 5))
	uncategorized.BrandID = "brand-1"
	equalIDs(t, GetRelatedProducts(uncategorized, pool, 5), "u3")
}

func TestViews(t *testing.T) {
	products := catalogFixture()
	products[0].IsNew = true
	products[1].StockQuantity = 3
	products[2].BrandID = ""
	products[2].Status = enums.ProductStatusHidden

	if r := GetPriceRange(products); r.Min != 800 || r.Max != 1500 {
		t.Fatalf("unexpected price range %+v", r)
	}
	if r := GetPriceRange(nil); r.Min != 0 || r.Max != 0 {
		t.Fatalf("empty range should be zero, got %+v", r)
	}

	brands := []models.Brand{{ID: "brand-2"}, {ID: "brand-1"}, {ID: "brand-9"}}
	available := GetAvailableBrands(products, brands)
	if len(available) != 1 || available[0].ID != "brand-1" {
		t.Fatalf("unexpected available brands %+v", available)
	}

	byBrand := GroupProductsByBrand(products)
	if len(byBrand[UnknownBrand]) != 1 || len(byBrand["brand-1"]) != 2 {
		t.Fatalf("unexpected brand groups %v", byBrand)
	}
	byCategory := GroupProductsByCategory(products)
	if len(byCategory["cat-1"]) != 2 || len(byCategory["cat-2"]) != 1 {
		t.Fatalf("unexpected category groups %v", byCategory)
	}

	equalIDs(t, GetFeaturedProducts(products), "2")
	equalIDs(t, GetNewProducts(products), "1")
	equalIDs(t, GetAvailableProducts(products), "2")
	equalIDs(t, GetPublishedProducts(products), "1", "2")
}
