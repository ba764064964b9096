package models

import (
	"strings"

	"github.com/soft99/storefront-backend/pkg/enums"
)

// ProductFilters narrows a product listing. Nil fields are unspecified.
type ProductFilters struct {
	Category    *string              `json:"category,omitempty"`
	Brand       *string              `json:"brand,omitempty"`
	Type        *enums.ProductType   `json:"type,omitempty"`
	MinPrice    *float64             `json:"minPrice,omitempty"`
	MaxPrice    *float64             `json:"maxPrice,omitempty"`
	StockStatus *enums.StockStatus   `json:"stockStatus,omitempty"`
	IsNew       *bool                `json:"isNew,omitempty"`
	IsFeatured  *bool                `json:"isFeatured,omitempty"`
	Search      *string              `json:"search,omitempty"`
	Status      *enums.ProductStatus `json:"status,omitempty"`
}

// IsEmpty reports whether no constraint is set.
func (f *ProductFilters) IsEmpty() bool {
	if f == nil {
		return true
	}
	return f.Category == nil && f.Brand == nil && f.Type == nil &&
		f.MinPrice == nil && f.MaxPrice == nil && f.StockStatus == nil &&
		f.IsNew == nil && f.IsFeatured == nil && f.Status == nil &&
		(f.Search == nil || strings.TrimSpace(*f.Search) == "")
}

// WithStatus returns a copy constrained to status.
func (f *ProductFilters) WithStatus(status enums.ProductStatus) *ProductFilters {
	out := ProductFilters{}
	if f != nil {
		out = *f
	}
	out.Status = &status
	return &out
}

func Ptr[T any](v T) *T {
	return &v
}
