package orders

import (
	"github.com/shopspring/decimal"

	"github.com/soft99/storefront-backend/internal/cart"
	"github.com/soft99/storefront-backend/pkg/config"
	"github.com/soft99/storefront-backend/pkg/models"
)

// Pricing holds the checkout constants.
type Pricing struct {
	TaxRate               decimal.Decimal
	FlatShipping          decimal.Decimal
	FreeShippingThreshold decimal.Decimal
	Currency              string
}

func DefaultPricing() Pricing {
	return Pricing{
		TaxRate:               decimal.RequireFromString("0.15"),
		FlatShipping:          decimal.NewFromInt(25),
		FreeShippingThreshold: decimal.NewFromInt(500),
		Currency:              "SAR",
	}
}

func PricingFromConfig(cfg config.CheckoutConfig) Pricing {
	p := Pricing{
		TaxRate:               decimal.NewFromFloat(cfg.TaxRate),
		FlatShipping:          decimal.NewFromFloat(cfg.FlatShipping),
		FreeShippingThreshold: decimal.NewFromFloat(cfg.FreeShippingThreshold),
		Currency:              cfg.Currency,
	}
	if p.Currency == "" {
		p.Currency = DefaultPricing().Currency
	}
	return p
}

// Totals is the priced breakdown of an order.
type Totals struct {
	Items    []models.OrderItem
	Subtotal decimal.Decimal
	Tax      decimal.Decimal
	Shipping decimal.Decimal
	Total    decimal.Decimal
}

// Price computes order lines and totals for a cart. Every amount is rounded
// to cents before it is summed.
func (p Pricing) Price(c *cart.Cart) Totals {
	var t Totals
	for _, item := range c.Items {
		line := item.LineTotal()
		t.Items = append(t.Items, models.OrderItem{
			ProductID:   item.Product.ID,
			ProductName: item.Product.DisplayName(),
			Quantity:    item.Quantity,
			Price:       item.Product.Price,
			Total:       line.InexactFloat64(),
		})
		t.Subtotal = t.Subtotal.Add(line)
	}
	t.Tax = t.Subtotal.Mul(p.TaxRate).Round(2)
	t.Shipping = p.FlatShipping.Round(2)
	if t.Subtotal.GreaterThanOrEqual(p.FreeShippingThreshold) {
		t.Shipping = decimal.Zero
	}
	t.Total = t.Subtotal.Add(t.Tax).Add(t.Shipping)
	return t
}

// Apply copies the totals onto an order.
func (t Totals) Apply(o *models.Order) {
	o.Items = t.Items
	o.Subtotal = t.Subtotal.InexactFloat64()
	o.Tax = t.Tax.InexactFloat64()
	o.Shipping = t.Shipping.InexactFloat64()
	o.Total = t.Total.InexactFloat64()
}
