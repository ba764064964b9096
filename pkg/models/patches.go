package models

import (
	"github.com/soft99/storefront-backend/pkg/enums"
)

// ProductPatch carries the fields of a partial product update.
type ProductPatch struct {
	SKU              *string              `json:"sku,omitempty"`
	NameAr           *string              `json:"name_ar,omitempty" validate:"omitempty,min=3,max=200"`
	NameEn           *string              `json:"name_en,omitempty" validate:"omitempty,max=200"`
	CategoryID       *string              `json:"category_id,omitempty" validate:"omitempty,min=1"`
	BrandID          *string              `json:"brand_id,omitempty"`
	Type             *enums.ProductType   `json:"type,omitempty" validate:"omitempty,oneof=bike part gear"`
	Price            *float64             `json:"price,omitempty" validate:"omitempty,gte=0,lte=1000000"`
	Currency         *string              `json:"currency,omitempty" validate:"omitempty,len=3"`
	IsNew            *bool                `json:"is_new,omitempty"`
	IsFeatured       *bool                `json:"is_featured,omitempty"`
	IsAvailable      *bool                `json:"is_available,omitempty"`
	StockStatus      *enums.StockStatus   `json:"stock_status,omitempty" validate:"omitempty,oneof=available unavailable"`
	StockQuantity    *int                 `json:"stock_quantity,omitempty" validate:"omitempty,gte=0"`
	Status           *enums.ProductStatus `json:"status,omitempty" validate:"omitempty,oneof=published hidden draft"`
	Specifications   *map[string]string   `json:"specifications,omitempty"`
	Description      *string              `json:"description,omitempty" validate:"omitempty,min=10,max=5000"`
	ShortDescription *string              `json:"short_description,omitempty" validate:"omitempty,max=500"`
	Images           *[]string            `json:"images,omitempty" validate:"omitempty,dive,url"`
	ImageURL         *string              `json:"image_url,omitempty" validate:"omitempty,url"`
	RemoteImageURL   *string              `json:"remoteImageUrl,omitempty" validate:"omitempty,url"`
	SallaURL         *string              `json:"salla_url,omitempty" validate:"omitempty,url"`
}

// Apply merges the non-nil fields into p.
func (patch ProductPatch) Apply(p *Product) {
	if p == nil {
		return
	}
	setIf(&p.SKU, patch.SKU)
	setIf(&p.NameAr, patch.NameAr)
	setIf(&p.NameEn, patch.NameEn)
	setIf(&p.CategoryID, patch.CategoryID)
	setIf(&p.BrandID, patch.BrandID)
	setIf(&p.Type, patch.Type)
	setIf(&p.Price, patch.Price)
	setIf(&p.Currency, patch.Currency)
	setIf(&p.IsNew, patch.IsNew)
	setIf(&p.IsFeatured, patch.IsFeatured)
	setIf(&p.IsAvailable, patch.IsAvailable)
	setIf(&p.StockStatus, patch.StockStatus)
	setIf(&p.StockQuantity, patch.StockQuantity)
	if patch.Status != nil {
		p.Status = enums.NormalizeProductStatus(*patch.Status)
	}
	if patch.Specifications != nil {
		p.Specifications = nil
		for k, v := range *patch.Specifications {
			if v == "" {
				continue
			}
			if p.Specifications == nil {
				p.Specifications = map[string]string{}
			}
			p.Specifications[k] = v
		}
	}
	setIf(&p.Description, patch.Description)
	setIf(&p.ShortDescription, patch.ShortDescription)
	if patch.Images != nil {
		p.Images = append([]string(nil), (*patch.Images)...)
	}
	setIf(&p.ImageURL, patch.ImageURL)
	setIf(&p.RemoteImageURL, patch.RemoteImageURL)
	setIf(&p.SallaURL, patch.SallaURL)
}

type CategoryPatch struct {
	NameAr      *string            `json:"name_ar,omitempty" validate:"omitempty,min=2,max=100"`
	NameEn      *string            `json:"name_en,omitempty" validate:"omitempty,max=100"`
	Type        *enums.ProductType `json:"type,omitempty" validate:"omitempty,oneof=bike part gear"`
	Icon        *string            `json:"icon,omitempty"`
	Description *string            `json:"description,omitempty" validate:"omitempty,max=1000"`
}

func (patch CategoryPatch) Apply(c *Category) {
	if c == nil {
		return
	}
	setIf(&c.NameAr, patch.NameAr)
	setIf(&c.NameEn, patch.NameEn)
	setIf(&c.Type, patch.Type)
	setIf(&c.Icon, patch.Icon)
	setIf(&c.Description, patch.Description)
}

type BrandPatch struct {
	Name        *string `json:"name,omitempty" validate:"omitempty,min=2,max=100"`
	NameAr      *string `json:"name_ar,omitempty" validate:"omitempty,max=100"`
	NameEn      *string `json:"name_en,omitempty" validate:"omitempty,max=100"`
	LogoURL     *string `json:"logo_url,omitempty" validate:"omitempty,url"`
	Description *string `json:"description,omitempty" validate:"omitempty,max=1000"`
}

func (patch BrandPatch) Apply(b *Brand) {
	if b == nil {
		return
	}
	setIf(&b.Name, patch.Name)
	setIf(&b.NameAr, patch.NameAr)
	setIf(&b.NameEn, patch.NameEn)
	setIf(&b.LogoURL, patch.LogoURL)
	setIf(&b.Description, patch.Description)
}

// OrderPatch never touches items or totals; those are fixed at checkout.
type OrderPatch struct {
	Status        *enums.OrderStatus `json:"status,omitempty" validate:"omitempty,oneof=pending confirmed processing shipped delivered cancelled"`
	CustomerName  *string            `json:"customer_name,omitempty" validate:"omitempty,min=2,max=100"`
	CustomerEmail *string            `json:"customer_email,omitempty" validate:"omitempty,email"`
	CustomerPhone *string            `json:"customer_phone,omitempty" validate:"omitempty,min=6,max=20"`
	Notes         *string            `json:"notes,omitempty" validate:"omitempty,max=1000"`
}

func (patch OrderPatch) Apply(o *Order) {
	if o == nil {
		return
	}
	setIf(&o.Status, patch.Status)
	setIf(&o.CustomerName, patch.CustomerName)
	setIf(&o.CustomerEmail, patch.CustomerEmail)
	setIf(&o.CustomerPhone, patch.CustomerPhone)
	setIf(&o.Notes, patch.Notes)
}

func setIf[T any](dst *T, src *T) {
	if src != nil {
		*dst = *src
	}
}
