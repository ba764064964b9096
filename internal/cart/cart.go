package cart

import (
	"github.com/shopspring/decimal"

	"github.com/soft99/storefront-backend/pkg/models"
)

type Item struct {
	Product  models.Product `json:"product"`
	Quantity int            `json:"quantity"`
}

// LineTotal is unit price times quantity, rounded to cents.
func (i Item) LineTotal() decimal.Decimal {
	return decimal.NewFromFloat(i.Product.Price).Mul(decimal.NewFromInt(int64(i.Quantity))).Round(2)
}

// Cart holds one line per product id.
type Cart struct {
	Items []Item `json:"items"`
}

func (c *Cart) index(productID string) int {
	for i, item := range c.Items {
		if item.Product.ID == productID {
			return i
		}
	}
	return -1
}

// Add merges qty into the product's line. Non-positive quantities are ignored.
func (c *Cart) Add(product models.Product, qty int) {
	if qty <= 0 {
		return
	}
	if i := c.index(product.ID); i >= 0 {
		c.Items[i].Quantity += qty
		return
	}
	c.Items = append(c.Items, Item{Product: product.Clone(), Quantity: qty})
}

// UpdateQuantity sets the line quantity; qty <= 0 removes the line.
func (c *Cart) UpdateQuantity(productID string, qty int) {
	if qty <= 0 {
		c.Remove(productID)
		return
	}
	if i := c.index(productID); i >= 0 {
		c.Items[i].Quantity = qty
	}
}

func (c *Cart) Remove(productID string) {
	if i := c.index(productID); i >= 0 {
		c.Items = append(c.Items[:i], c.Items[i+1:]...)
	}
}

func (c *Cart) Clear() {
	c.Items = nil
}

func (c *Cart) Contains(productID string) bool {
	return c.index(productID) >= 0
}

func (c *Cart) TotalItems() int {
	total := 0
	for _, item := range c.Items {
		total += item.Quantity
	}
	return total
}

// Subtotal sums the line totals exactly.
func (c *Cart) Subtotal() decimal.Decimal {
	sum := decimal.Zero
	for _, item := range c.Items {
		sum = sum.Add(item.LineTotal())
	}
	return sum
}

func (c *Cart) TotalPrice() float64 {
	return c.Subtotal().InexactFloat64()
}

func (c *Cart) Clone() *Cart {
	out := &Cart{}
	if c == nil {
		return out
	}
	for _, item := range c.Items {
		out.Items = append(out.Items, Item{Product: item.Product.Clone(), Quantity: item.Quantity})
	}
	return out
}
