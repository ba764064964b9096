package models

import (
	"encoding/json"
	"time"

	"github.com/soft99/storefront-backend/pkg/enums"
)

type OrderItem struct {
	ProductID   string  `json:"product_id" validate:"required"`
	ProductName string  `json:"product_name"`
	Quantity    int     `json:"quantity" validate:"gt=0"`
	Price       float64 `json:"price" validate:"gte=0"`
	Total       float64 `json:"total" validate:"gte=0"`
}

type Order struct {
	ID            string            `json:"id"`
	UserID        string            `json:"user_id,omitempty"`
	CustomerName  string            `json:"customer_name" validate:"required"`
	CustomerEmail string            `json:"customer_email" validate:"required,email"`
	CustomerPhone string            `json:"customer_phone" validate:"required"`
	Items         []OrderItem       `json:"items" validate:"required,min=1,dive"`
	Subtotal      float64           `json:"subtotal" validate:"gte=0"`
	Tax           float64           `json:"tax" validate:"gte=0"`
	Shipping      float64           `json:"shipping" validate:"gte=0"`
	Total         float64           `json:"total" validate:"gte=0"`
	Status        enums.OrderStatus `json:"status" validate:"omitempty,oneof=pending confirmed processing shipped delivered cancelled"`
	Notes         string            `json:"notes,omitempty"`
	CreatedAt     time.Time         `json:"created_at"`
	UpdatedAt     time.Time         `json:"updated_at"`
}

type orderAlias Order

type orderWire struct {
	orderAlias
	CreatedAt flexTime `json:"created_at"`
	UpdatedAt flexTime `json:"updated_at"`
}

func (o *Order) UnmarshalJSON(data []byte) error {
	var wire orderWire
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}
	*o = Order(wire.orderAlias)
	o.CreatedAt = wire.CreatedAt.Time()
	o.UpdatedAt = wire.UpdatedAt.Time()
	return nil
}

func (o Order) Clone() Order {
	out := o
	if o.Items != nil {
		out.Items = append([]OrderItem(nil), o.Items...)
	}
	return out
}
