package models

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/soft99/storefront-backend/pkg/enums"
)

const DefaultCurrency = "SAR"

// Product is a catalog item as stored by every provider.
type Product struct {
	ID               string              `json:"id"`
	SKU              string              `json:"sku,omitempty"`
	NameAr           string              `json:"name_ar" validate:"required"`
	NameEn           string              `json:"name_en,omitempty"`
	Aliases          []string            `json:"aliases,omitempty"`
	CategoryID       string              `json:"category_id" validate:"required"`
	BrandID          string              `json:"brand_id,omitempty"`
	Type             enums.ProductType   `json:"type" validate:"required,oneof=bike part gear"`
	Price            float64             `json:"price" validate:"gte=0"`
	Currency         string              `json:"currency"`
	IsNew            bool                `json:"is_new"`
	IsFeatured       bool                `json:"is_featured"`
	IsAvailable      bool                `json:"is_available"`
	StockStatus      enums.StockStatus   `json:"stock_status,omitempty" validate:"omitempty,oneof=available unavailable"`
	StockQuantity    int                 `json:"stock_quantity" validate:"gte=0"`
	Status           enums.ProductStatus `json:"status" validate:"required,oneof=published hidden"`
	Specifications   map[string]string   `json:"specifications,omitempty"`
	Description      string              `json:"description"`
	ShortDescription string              `json:"short_description,omitempty"`
	Images           []string            `json:"images,omitempty"`
	ImageURL         string              `json:"image_url,omitempty"`
	RemoteImageURL   string              `json:"remoteImageUrl,omitempty"`
	SallaURL         string              `json:"salla_url,omitempty"`
	CreatedAt        time.Time           `json:"created_at"`
	UpdatedAt        time.Time           `json:"updated_at"`
}

type productAlias Product

type productWire struct {
	productAlias
	Name           string         `json:"name"`
	Specs          map[string]any `json:"specs"`
	Specifications map[string]any `json:"specifications"`
	CreatedAt      flexTime       `json:"created_at"`
	UpdatedAt      flexTime       `json:"updated_at"`
}

// UnmarshalJSON decodes a product and folds legacy fields into the canonical
// ones.
func (p *Product) UnmarshalJSON(data []byte) error {
	var wire productWire
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}
	*p = Product(wire.productAlias)
	p.CreatedAt = wire.CreatedAt.Time()
	p.UpdatedAt = wire.UpdatedAt.Time()
	p.Specifications = stringifySpecs(wire.Specifications)
	NormalizeProduct(p, wire.Name, stringifySpecs(wire.Specs))
	return nil
}

// NormalizeProduct applies the ingestion rules. The legacy name fills the
// missing canonical name or, when both are set, is kept as a search alias.
// Legacy specs merge under canonical ones, empty specs are dropped and legacy
// statuses are mapped.
func NormalizeProduct(p *Product, legacyName string, legacySpecs map[string]string) {
	if p == nil {
		return
	}
	name := strings.TrimSpace(legacyName)
	switch {
	case name == "":
	case p.NameAr == "":
		p.NameAr = name
	case name == p.NameAr || name == p.NameEn:
	case p.NameEn == "":
		p.NameEn = name
	default:
		p.AddAlias(name)
	}

	if len(legacySpecs) > 0 {
		merged := make(map[string]string, len(legacySpecs)+len(p.Specifications))
		for k, v := range legacySpecs {
			merged[k] = v
		}
		for k, v := range p.Specifications {
			merged[k] = v
		}
		p.Specifications = merged
	}
	for k, v := range p.Specifications {
		if strings.TrimSpace(v) == "" {
			delete(p.Specifications, k)
		}
	}
	if len(p.Specifications) == 0 {
		p.Specifications = nil
	}

	if p.Status == "" {
		p.Status = enums.ProductStatusPublished
	}
	p.Status = enums.NormalizeProductStatus(p.Status)
	if p.Currency == "" {
		p.Currency = DefaultCurrency
	}
}

func stringifySpecs(in map[string]any) map[string]string {
	if len(in) == 0 {
		return nil
	}
	out := make(map[string]string, len(in))
	for k, v := range in {
		switch typed := v.(type) {
		case nil:
			continue
		case string:
			out[k] = typed
		default:
			out[k] = fmt.Sprint(typed)
		}
	}
	return out
}

// Model returns the model number specification used by search.
func (p Product) Model() string {
	return p.Specifications["model"]
}

// DisplayName prefers the Arabic name.
func (p Product) DisplayName() string {
	if p.NameAr != "" {
		return p.NameAr
	}
	return p.NameEn
}

// ImageRefs lists every stored image reference, primary image included, without
// duplicates.
func (p Product) ImageRefs() []string {
	seen := map[string]struct{}{}
	var refs []string
	for _, ref := range append(append([]string{}, p.Images...), p.ImageURL) {
		ref = strings.TrimSpace(ref)
		if ref == "" {
			continue
		}
		if _, ok := seen[ref]; ok {
			continue
		}
		seen[ref] = struct{}{}
		refs = append(refs, ref)
	}
	return refs
}

// AddAlias records an extra search name, ignoring blanks and duplicates.
func (p *Product) AddAlias(alias string) {
	alias = strings.TrimSpace(alias)
	if alias == "" {
		return
	}
	for _, existing := range p.Aliases {
		if strings.EqualFold(existing, alias) {
			return
		}
	}
	p.Aliases = append(p.Aliases, alias)
}

func (p Product) IsPublished() bool {
	return p.Status == enums.ProductStatusPublished
}

func (p Product) Clone() Product {
	out := p
	if p.Images != nil {
		out.Images = append([]string(nil), p.Images...)
	}
	if p.Aliases != nil {
		out.Aliases = append([]string(nil), p.Aliases...)
	}
	if p.Specifications != nil {
		out.Specifications = make(map[string]string, len(p.Specifications))
		for k, v := range p.Specifications {
			out.Specifications[k] = v
		}
	}
	return out
}

