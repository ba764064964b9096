package document

import "time"

// Timestamps are stored as BSON dates, but older documents carry strings, so
// reads decode into any and the converters normalize.

type ProductEntity struct {
	ID               string         `bson:"_id"`
	SKU              string         `bson:"sku,omitempty"`
	NameAr           string         `bson:"name_ar,omitempty"`
	NameEn           string         `bson:"name_en,omitempty"`
	Aliases          []string       `bson:"aliases,omitempty"`
	LegacyName       string         `bson:"name,omitempty"`
	CategoryID       string         `bson:"category_id"`
	BrandID          string         `bson:"brand_id,omitempty"`
	Type             string         `bson:"type"`
	Price            float64        `bson:"price"`
	Currency         string         `bson:"currency,omitempty"`
	IsNew            bool           `bson:"is_new"`
	IsFeatured       bool           `bson:"is_featured"`
	IsAvailable      bool           `bson:"is_available"`
	StockStatus      string         `bson:"stock_status,omitempty"`
	StockQuantity    int            `bson:"stock_quantity"`
	Status           string         `bson:"status"`
	Specifications   map[string]any `bson:"specifications,omitempty"`
	LegacySpecs      map[string]any `bson:"specs,omitempty"`
	Description      string         `bson:"description,omitempty"`
	ShortDescription string         `bson:"short_description,omitempty"`
	Images           []string       `bson:"images,omitempty"`
	ImageURL         string         `bson:"image_url,omitempty"`
	RemoteImageURL   string         `bson:"remote_image_url,omitempty"`
	SallaURL         string         `bson:"salla_url,omitempty"`
	CreatedAt        any            `bson:"created_at,omitempty"`
	UpdatedAt        any            `bson:"updated_at,omitempty"`
}

type CategoryEntity struct {
	ID          string `bson:"_id"`
	NameAr      string `bson:"name_ar,omitempty"`
	NameEn      string `bson:"name_en,omitempty"`
	LegacyName  string `bson:"name,omitempty"`
	Type        string `bson:"type,omitempty"`
	Icon        string `bson:"icon,omitempty"`
	Description string `bson:"description,omitempty"`
	CreatedAt   any    `bson:"created_at,omitempty"`
}

type BrandEntity struct {
	ID          string `bson:"_id"`
	Name        string `bson:"name"`
	NameAr      string `bson:"name_ar,omitempty"`
	NameEn      string `bson:"name_en,omitempty"`
	LogoURL     string `bson:"logo_url,omitempty"`
	Description string `bson:"description,omitempty"`
	CreatedAt   any    `bson:"created_at,omitempty"`
}

type OrderItemEntity struct {
	ProductID   string  `bson:"product_id"`
	ProductName string  `bson:"product_name"`
	Quantity    int     `bson:"quantity"`
	Price       float64 `bson:"price"`
	Total       float64 `bson:"total"`
}

type OrderEntity struct {
	ID            string            `bson:"_id"`
	UserID        string            `bson:"user_id,omitempty"`
	CustomerName  string            `bson:"customer_name"`
	CustomerEmail string            `bson:"customer_email"`
	CustomerPhone string            `bson:"customer_phone"`
	Items         []OrderItemEntity `bson:"items"`
	Subtotal      float64           `bson:"subtotal"`
	Tax           float64           `bson:"tax"`
	Shipping      float64           `bson:"shipping"`
	Total         float64           `bson:"total"`
	Status        string            `bson:"status"`
	Notes         string            `bson:"notes,omitempty"`
	CreatedAt     any               `bson:"created_at,omitempty"`
	UpdatedAt     any               `bson:"updated_at,omitempty"`
}

func storedTime(t time.Time) any {
	if t.IsZero() {
		return nil
	}
	return t.UTC()
}
