package models

import (
	"encoding/json"
	"time"

	"github.com/soft99/storefront-backend/pkg/enums"
)

type Category struct {
	ID          string            `json:"id"`
	NameAr      string            `json:"name_ar" validate:"required"`
	NameEn      string            `json:"name_en,omitempty"`
	Type        enums.ProductType `json:"type" validate:"omitempty,oneof=bike part gear"`
	Icon        string            `json:"icon,omitempty"`
	Description string            `json:"description,omitempty"`
	CreatedAt   time.Time         `json:"created_at"`
}

type categoryAlias Category

type categoryWire struct {
	categoryAlias
	Name      string   `json:"name"`
	CreatedAt flexTime `json:"created_at"`
}

func (c *Category) UnmarshalJSON(data []byte) error {
	var wire categoryWire
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}
	*c = Category(wire.categoryAlias)
	c.CreatedAt = wire.CreatedAt.Time()
	if c.NameAr == "" {
		c.NameAr = wire.Name
	}
	return nil
}

type Brand struct {
	ID          string    `json:"id"`
	Name        string    `json:"name" validate:"required"`
	NameAr      string    `json:"name_ar,omitempty"`
	NameEn      string    `json:"name_en,omitempty"`
	LogoURL     string    `json:"logo_url,omitempty"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

type brandAlias Brand

type brandWire struct {
	brandAlias
	CreatedAt flexTime `json:"created_at"`
}

func (b *Brand) UnmarshalJSON(data []byte) error {
	var wire brandWire
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}
	*b = Brand(wire.brandAlias)
	b.CreatedAt = wire.CreatedAt.Time()
	if b.Name == "" {
		if b.NameEn != "" {
			b.Name = b.NameEn
		} else {
			b.Name = b.NameAr
		}
	}
	return nil
}
