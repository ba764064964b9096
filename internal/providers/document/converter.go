package document

import (
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/soft99/storefront-backend/pkg/enums"
	"github.com/soft99/storefront-backend/pkg/models"
)

func ProductToModel(e *ProductEntity) *models.Product {
	if e == nil {
		return nil
	}
	out := &models.Product{
		ID:               e.ID,
		SKU:              e.SKU,
		NameAr:           e.NameAr,
		NameEn:           e.NameEn,
		Aliases:          e.Aliases,
		CategoryID:       e.CategoryID,
		BrandID:          e.BrandID,
		Type:             enums.ProductType(e.Type),
		Price:            e.Price,
		Currency:         e.Currency,
		IsNew:            e.IsNew,
		IsFeatured:       e.IsFeatured,
		IsAvailable:      e.IsAvailable,
		StockStatus:      enums.StockStatus(e.StockStatus),
		StockQuantity:    e.StockQuantity,
		Status:           enums.ProductStatus(e.Status),
		Specifications:   stringify(e.Specifications),
		Description:      e.Description,
		ShortDescription: e.ShortDescription,
		Images:           e.Images,
		ImageURL:         e.ImageURL,
		RemoteImageURL:   e.RemoteImageURL,
		SallaURL:         e.SallaURL,
		CreatedAt:        decodeTime(e.CreatedAt),
		UpdatedAt:        decodeTime(e.UpdatedAt),
	}
	models.NormalizeProduct(out, e.LegacyName, stringify(e.LegacySpecs))
	return out
}

// ProductFromModel writes canonical fields only; legacy name and specs are
// dropped on the next write.
func ProductFromModel(p models.Product) *ProductEntity {
	return &ProductEntity{
		ID:               p.ID,
		SKU:              p.SKU,
		NameAr:           p.NameAr,
		NameEn:           p.NameEn,
		Aliases:          p.Aliases,
		CategoryID:       p.CategoryID,
		BrandID:          p.BrandID,
		Type:             p.Type.String(),
		Price:            p.Price,
		Currency:         p.Currency,
		IsNew:            p.IsNew,
		IsFeatured:       p.IsFeatured,
		IsAvailable:      p.IsAvailable,
		StockStatus:      string(p.StockStatus),
		StockQuantity:    p.StockQuantity,
		Status:           p.Status.String(),
		Specifications:   anyMap(p.Specifications),
		Description:      p.Description,
		ShortDescription: p.ShortDescription,
		Images:           p.Images,
		ImageURL:         p.ImageURL,
		RemoteImageURL:   p.RemoteImageURL,
		SallaURL:         p.SallaURL,
		CreatedAt:        storedTime(p.CreatedAt),
		UpdatedAt:        storedTime(p.UpdatedAt),
	}
}

func CategoryToModel(e *CategoryEntity) *models.Category {
	if e == nil {
		return nil
	}
	out := &models.Category{
		ID:          e.ID,
		NameAr:      e.NameAr,
		NameEn:      e.NameEn,
		Type:        enums.ProductType(e.Type),
		Icon:        e.Icon,
		Description: e.Description,
		CreatedAt:   decodeTime(e.CreatedAt),
	}
	if out.NameAr == "" {
		out.NameAr = e.LegacyName
	}
	return out
}

func CategoryFromModel(c models.Category) *CategoryEntity {
	return &CategoryEntity{
		ID:          c.ID,
		NameAr:      c.NameAr,
		NameEn:      c.NameEn,
		Type:        string(c.Type),
		Icon:        c.Icon,
		Description: c.Description,
		CreatedAt:   storedTime(c.CreatedAt),
	}
}

func BrandToModel(e *BrandEntity) *models.Brand {
	if e == nil {
		return nil
	}
	out := &models.Brand{
		ID:          e.ID,
		Name:        e.Name,
		NameAr:      e.NameAr,
		NameEn:      e.NameEn,
		LogoURL:     e.LogoURL,
		Description: e.Description,
		CreatedAt:   decodeTime(e.CreatedAt),
	}
	if out.Name == "" {
		if out.NameEn != "" {
			out.Name = out.NameEn
		} else {
			out.Name = out.NameAr
		}
	}
	return out
}

func BrandFromModel(b models.Brand) *BrandEntity {
	return &BrandEntity{
		ID:          b.ID,
		Name:        b.Name,
		NameAr:      b.NameAr,
		NameEn:      b.NameEn,
		LogoURL:     b.LogoURL,
		Description: b.Description,
		CreatedAt:   storedTime(b.CreatedAt),
	}
}

func OrderToModel(e *OrderEntity) *models.Order {
	if e == nil {
		return nil
	}
	out := &models.Order{
		ID:            e.ID,
		UserID:        e.UserID,
		CustomerName:  e.CustomerName,
		CustomerEmail: e.CustomerEmail,
		CustomerPhone: e.CustomerPhone,
		Subtotal:      e.Subtotal,
		Tax:           e.Tax,
		Shipping:      e.Shipping,
		Total:         e.Total,
		Status:        enums.OrderStatus(e.Status),
		Notes:         e.Notes,
		CreatedAt:     decodeTime(e.CreatedAt),
		UpdatedAt:     decodeTime(e.UpdatedAt),
	}
	for _, item := range e.Items {
		out.Items = append(out.Items, models.OrderItem{
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			Quantity:    item.Quantity,
			Price:       item.Price,
			Total:       item.Total,
		})
	}
	return out
}

func OrderFromModel(o models.Order) *OrderEntity {
	out := &OrderEntity{
		ID:            o.ID,
		UserID:        o.UserID,
		CustomerName:  o.CustomerName,
		CustomerEmail: o.CustomerEmail,
		CustomerPhone: o.CustomerPhone,
		Subtotal:      o.Subtotal,
		Tax:           o.Tax,
		Shipping:      o.Shipping,
		Total:         o.Total,
		Status:        o.Status.String(),
		Notes:         o.Notes,
		CreatedAt:     storedTime(o.CreatedAt),
		UpdatedAt:     storedTime(o.UpdatedAt),
		Items:         make([]OrderItemEntity, 0, len(o.Items)),
	}
	for _, item := range o.Items {
		out.Items = append(out.Items, OrderItemEntity{
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			Quantity:    item.Quantity,
			Price:       item.Price,
			Total:       item.Total,
		})
	}
	return out
}

// BuildProductFilter pushes the exact-match constraints to the server. Search,
// price and stock are always applied in memory.
func BuildProductFilter(f *models.ProductFilters) bson.M {
	q := bson.M{}
	if f == nil {
		return q
	}
	if f.Category != nil && *f.Category != "" {
		q["category_id"] = *f.Category
	}
	if f.Brand != nil && *f.Brand != "" {
		q["brand_id"] = *f.Brand
	}
	if f.Type != nil && *f.Type != "" {
		q["type"] = f.Type.String()
	}
	if f.Status != nil && *f.Status != "" {
		q["status"] = statusFilter(*f.Status)
	}
	if f.IsFeatured != nil {
		q["is_featured"] = flagFilter(*f.IsFeatured)
	}
	if f.IsNew != nil {
		q["is_new"] = flagFilter(*f.IsNew)
	}
	return q
}

// flagFilter treats a missing or null flag as false, matching the in-memory
// filter.
func flagFilter(want bool) any {
	if want {
		return true
	}
	return bson.M{"$ne": true}
}

// statusFilter also matches the legacy spellings the converter normalizes.
func statusFilter(status enums.ProductStatus) bson.M {
	if enums.NormalizeProductStatus(status) == enums.ProductStatusHidden {
		return bson.M{"$in": bson.A{"hidden", "draft"}}
	}
	return bson.M{"$in": bson.A{status.String(), "", nil}}
}

func decodeTime(v any) time.Time {
	switch typed := v.(type) {
	case bson.DateTime:
		return typed.Time().UTC()
	case time.Time:
		return typed.UTC()
	case string:
		t, err := models.ParseTimestamp(typed)
		if err != nil {
			return time.Time{}
		}
		return t
	case int64:
		return time.UnixMilli(typed).UTC()
	default:
		return time.Time{}
	}
}

func stringify(in map[string]any) map[string]string {
	if len(in) == 0 {
		return nil
	}
	out := make(map[string]string, len(in))
	for k, v := range in {
		switch typed := v.(type) {
		case nil:
		case string:
			out[k] = typed
		default:
			out[k] = fmt.Sprint(typed)
		}
	}
	return out
}

func anyMap(in map[string]string) map[string]any {
	if len(in) == 0 {
		return nil
	}
	out := make(map[string]any, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
