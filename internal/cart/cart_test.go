package cart

import (
	"testing"

	"github.com/soft99/storefront-backend/pkg/models"
)

func product(id string, price float64) models.Product {
	return models.Product{ID: id, NameAr: "منتج " + id, Price: price}
}

func TestAddMergesByProductID(t *testing.T) {
	var c Cart
	c.Add(product("p1", 10), 1)
	c.Add(product("p1", 10), 2)
	c.Add(product("p2", 5), 1)
	c.Add(product("p3", 5), 0)
	c.Add(product("p3", 5), -4)

	if len(c.Items) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(c.Items))
	}
	if c.Items[0].Quantity != 3 {
		t.Fatalf("expected merged quantity 3, got %d", c.Items[0].Quantity)
	}
	if c.Contains("p3") {
		t.Fatalf("non-positive quantity must be ignored")
	}
	if got := c.TotalItems(); got != 4 {
		t.Fatalf("expected 4 items, got %d", got)
	}
}

func TestUpdateQuantityAndRemove(t *testing.T) {
	var c Cart
	c.Add(product("p1", 10), 1)
	c.Add(product("p2", 20), 1)

	c.UpdateQuantity("p1", 5)
	if c.Items[0].Quantity != 5 {
		t.Fatalf("expected quantity 5, got %d", c.Items[0].Quantity)
	}
	c.UpdateQuantity("missing", 3)
	if len(c.Items) != 2 {
		t.Fatalf("updating a missing line must not add it")
	}
	c.UpdateQuantity("p1", 0)
	if c.Contains("p1") {
		t.Fatalf("quantity 0 should remove the line")
	}
	c.Remove("p2")
	if len(c.Items) != 0 {
		t.Fatalf("expected empty cart, got %+v", c.Items)
	}
	c.Remove("p2")
}

func TestTotalPriceIsExact(t *testing.T) {
	var c Cart
	c.Add(product("p1", 0.1), 3)
	c.Add(product("p2", 0.2), 1)
	if got := c.TotalPrice(); got != 0.5 {
		t.Fatalf("expected 0.5, got %v", got)
	}
	c.Add(product("p3", 19.99), 3)
	if got := c.Subtotal().StringFixed(2); got != "60.47" {
		t.Fatalf("expected 60.47, got %s", got)
	}
	c.Clear()
	if c.TotalPrice() != 0 || c.TotalItems() != 0 {
		t.Fatalf("clear should empty the cart")
	}
}

func TestCloneIsIndependent(t *testing.T) {
	var c Cart
	c.Add(models.Product{ID: "p1", Price: 1, Images: []string{"a"}}, 1)
	cp := c.Clone()
	cp.Items[0].Quantity = 9
	cp.Items[0].Product.Images[0] = "b"
	if c.Items[0].Quantity != 1 || c.Items[0].Product.Images[0] != "a" {
		t.Fatalf("clone shares state with the original")
	}
	var nilCart *Cart
	if got := nilCart.Clone(); got == nil || len(got.Items) != 0 {
		t.Fatalf("nil clone should be an empty cart")
	}
}
