package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/soft99/storefront-backend/pkg/enums"
	pkgerrors "github.com/soft99/storefront-backend/pkg/errors"
)

func TestProductUnmarshalNormalizesLegacyFields(t *testing.T) {
	raw := `{
		"id": "p1",
		"name": "زيت موتول",
		"category_id": "c1",
		"type": "part",
		"price": 45.5,
		"status": "draft",
		"specs": {"model": "7100", "viscosity": "10W40", "empty": ""},
		"specifications": {"viscosity": "10W50", "volume": 1},
		"created_at": "2024-01-15",
		"updated_at": "2024-01-15T10:20:30.123Z"
	}`

	var p Product
	if err := json.Unmarshal([]byte(raw), &p); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if p.NameAr != "زيت موتول" {
		t.Fatalf("legacy name should fill name_ar, got %q", p.NameAr)
	}
	if p.Status != enums.ProductStatusHidden {
		t.Fatalf("draft should normalize to hidden, got %q", p.Status)
	}
	if p.Specifications["viscosity"] != "10W50" {
		t.Fatalf("canonical specification should win, got %q", p.Specifications["viscosity"])
	}
	if p.Model() != "7100" {
		t.Fatalf("legacy model should merge, got %q", p.Model())
	}
	if p.Specifications["volume"] != "1" {
		t.Fatalf("numeric spec should stringify, got %q", p.Specifications["volume"])
	}
	if _, ok := p.Specifications["empty"]; ok {
		t.Fatalf("empty spec entries should be dropped")
	}
	if !p.CreatedAt.Equal(time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected created_at %v", p.CreatedAt)
	}
	if p.UpdatedAt.Nanosecond() != 123000000 {
		t.Fatalf("fractional seconds lost: %v", p.UpdatedAt)
	}
	if p.Currency != DefaultCurrency {
		t.Fatalf("expected default currency, got %q", p.Currency)
	}

	out, err := json.Marshal(p)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var generic map[string]any
	if err := json.Unmarshal(out, &generic); err != nil {
		t.Fatalf("unmarshal generic: %v", err)
	}
	if _, ok := generic["name"]; ok {
		t.Fatalf("legacy name must not be emitted")
	}
	if _, ok := generic["specs"]; ok {
		t.Fatalf("legacy specs must not be emitted")
	}
}

func TestNormalizeProductLegacyNameToEnglish(t *testing.T) {
	p := Product{NameAr: "خوذة"}
	NormalizeProduct(&p, "Helmet", nil)
	if p.NameEn != "Helmet" {
		t.Fatalf("expected name_en from legacy name, got %q", p.NameEn)
	}

	same := Product{NameAr: "خوذة"}
	NormalizeProduct(&same, "خوذة", nil)
	if same.NameEn != "" {
		t.Fatalf("identical legacy name should not populate name_en")
	}

	if p.Status != enums.ProductStatusPublished {
		t.Fatalf("missing status should default to published, got %q", p.Status)
	}
}

func TestNormalizeProductKeepsLegacyNameAsAlias(t *testing.T) {
	var p Product
	raw := `{"id":"p1","name_ar":"زيت محرك","name_en":"Engine oil","name":"Motul 7100"}`
	if err := json.Unmarshal([]byte(raw), &p); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if p.NameAr != "زيت محرك" || p.NameEn != "Engine oil" {
		t.Fatalf("canonical names changed: %q %q", p.NameAr, p.NameEn)
	}
	if len(p.Aliases) != 1 || p.Aliases[0] != "Motul 7100" {
		t.Fatalf("legacy name should be kept as alias, got %v", p.Aliases)
	}

	NormalizeProduct(&p, "motul 7100", nil)
	NormalizeProduct(&p, "Engine oil", nil)
	if len(p.Aliases) != 1 {
		t.Fatalf("aliases should not repeat, got %v", p.Aliases)
	}

	c := p.Clone()
	c.Aliases[0] = "changed"
	if p.Aliases[0] != "Motul 7100" {
		t.Fatal("clone shares aliases")
	}
}

func TestTimestampRejectsGarbage(t *testing.T) {
	var p Product
	if err := json.Unmarshal([]byte(`{"created_at":"yesterday"}`), &p); err == nil {
		t.Fatal("expected invalid timestamp to fail")
	}
	if err := json.Unmarshal([]byte(`{"created_at":""}`), &p); err != nil {
		t.Fatalf("empty timestamp should decode: %v", err)
	}
	if !p.CreatedAt.IsZero() {
		t.Fatalf("expected zero time")
	}
}

func TestCloneIsDeep(t *testing.T) {
	p := Product{Images: []string{"a"}, Specifications: map[string]string{"model": "x"}}
	c := p.Clone()
	c.Images[0] = "b"
	c.Specifications["model"] = "y"
	if p.Images[0] != "a" || p.Model() != "x" {
		t.Fatal("clone shares state with original")
	}

	o := Order{Items: []OrderItem{{ProductID: "1", Quantity: 1}}}
	oc := o.Clone()
	oc.Items[0].Quantity = 9
	if o.Items[0].Quantity != 1 {
		t.Fatal("order clone shares items")
	}
}

func TestImageRefsDeduplicates(t *testing.T) {
	p := Product{Images: []string{"gs://b/a.jpg", " gs://b/b.jpg "}, ImageURL: "gs://b/a.jpg"}
	refs := p.ImageRefs()
	if len(refs) != 2 {
		t.Fatalf("expected 2 refs, got %v", refs)
	}
}

func TestProductPatchApply(t *testing.T) {
	created := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	p := Product{ID: "p1", NameAr: "قديم", Price: 10, CreatedAt: created, Status: enums.ProductStatusPublished}
	patch := ProductPatch{
		Price:          Ptr(25.0),
		Status:         Ptr(enums.ProductStatus("draft")),
		Specifications: &map[string]string{"model": "A1", "blank": ""},
	}
	patch.Apply(&p)

	if p.Price != 25 || p.NameAr != "قديم" {
		t.Fatalf("unexpected merge result %+v", p)
	}
	if p.Status != enums.ProductStatusHidden {
		t.Fatalf("patched draft should become hidden, got %q", p.Status)
	}
	if len(p.Specifications) != 1 || p.Model() != "A1" {
		t.Fatalf("unexpected specifications %v", p.Specifications)
	}
	if p.ID != "p1" || !p.CreatedAt.Equal(created) {
		t.Fatal("patch must not touch identity fields")
	}
}

func TestValidateProduct(t *testing.T) {
	valid := Product{NameAr: "زيت", CategoryID: "c1", Type: enums.ProductTypePart, Price: 10, Status: enums.ProductStatusPublished}
	if err := ValidateProduct(valid); err != nil {
		t.Fatalf("expected valid product, got %v", err)
	}

	invalid := valid
	invalid.Price = -1
	invalid.Type = "car"
	err := ValidateProduct(invalid)
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
	details, ok := typed.Details().(map[string]string)
	if !ok {
		t.Fatalf("expected details map, got %T", typed.Details())
	}
	if _, ok := details["price"]; !ok {
		t.Fatalf("expected price detail, got %v", details)
	}
	if _, ok := details["type"]; !ok {
		t.Fatalf("expected type detail, got %v", details)
	}
}

func TestValidateOrderItems(t *testing.T) {
	o := Order{
		CustomerName:  "Ali",
		CustomerEmail: "ali@example.com",
		CustomerPhone: "0500000000",
		Items:         []OrderItem{{ProductID: "p1", Quantity: 0}},
	}
	err := ValidateOrder(o)
	typed := pkgerrors.As(err)
	if typed == nil {
		t.Fatalf("expected validation error for zero quantity")
	}
	details := typed.Details().(map[string]string)
	if _, ok := details["items[0].quantity"]; !ok {
		t.Fatalf("expected nested quantity detail, got %v", details)
	}
}

func TestValidatePatchRules(t *testing.T) {
	if err := ValidatePatch(CategoryPatch{NameAr: Ptr("x")}); err == nil {
		t.Fatal("expected short category name to fail")
	}
	if err := ValidatePatch(BrandPatch{Name: Ptr("Motul")}); err != nil {
		t.Fatalf("unexpected error %v", err)
	}
}

func TestFiltersHelpers(t *testing.T) {
	var nilFilters *ProductFilters
	if !nilFilters.IsEmpty() {
		t.Fatal("nil filters should be empty")
	}
	blank := &ProductFilters{Search: Ptr("   ")}
	if !blank.IsEmpty() {
		t.Fatal("whitespace search should count as empty")
	}
	scoped := blank.WithStatus(enums.ProductStatusPublished)
	if scoped.Status == nil || *scoped.Status != enums.ProductStatusPublished || blank.Status != nil {
		t.Fatal("WithStatus should return a modified copy")
	}
}
