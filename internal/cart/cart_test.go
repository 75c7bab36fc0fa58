package cart

import (
	"testing"

	"github.com/artisanwoodcraft/storefront-go/internal/catalog"
)

func product(id string, price float64) catalog.Product {
	return catalog.Product{ID: id, Name: "p-" + id, Price: price}
}

func TestAdd_NewAndIncrement(t *testing.T) {
	c := New()
	c.Add(product("1", 120))
	c.Add(product("2", 35))
	c.Add(product("2", 35))

	items := c.Items()
	if len(items) != 2 {
		t.Fatalf("expected 2 distinct items, got %d", len(items))
	}
	if items[0].Quantity != 1 || items[1].Quantity != 2 {
		t.Fatalf("unexpected quantities: %+v", items)
	}
}

func TestDerivedValues(t *testing.T) {
	c := New()
	c.Add(product("1", 120))
	c.Add(product("2", 35))
	c.Add(product("2", 35))

	if got := c.ItemCount(); got != 3 {
		t.Fatalf("expected item count 3, got %d", got)
	}
	if got := c.Total(); got != 190.00 {
		t.Fatalf("expected total 190.00, got %v", got)
	}
}

func TestSetQuantity(t *testing.T) {
	c := New()
	c.Add(product("1", 10))

	c.SetQuantity("1", 5)
	if got := c.ItemCount(); got != 5 {
		t.Fatalf("expected quantity 5, got %d", got)
	}

	// unknown product is a no-op
	c.SetQuantity("missing", 3)
	if got := len(c.Items()); got != 1 {
		t.Fatalf("expected 1 item, got %d", got)
	}
}

func TestSetQuantity_ZeroAndNegativeRemove(t *testing.T) {
	for _, qty := range []int{0, -1} {
		c := New()
		c.Add(product("1", 10))
		c.SetQuantity("1", qty)
		if got := len(c.Items()); got != 0 {
			t.Fatalf("qty %d: expected item removed, got %d items", qty, got)
		}
	}
}

func TestRemoveAndClear(t *testing.T) {
	c := New()
	c.Add(product("1", 10))
	c.Add(product("2", 20))

	c.Remove("1")
	if items := c.Items(); len(items) != 1 || items[0].Product.ID != "2" {
		t.Fatalf("unexpected items after remove: %+v", items)
	}

	c.Clear()
	if c.ItemCount() != 0 || c.Total() != 0 {
		t.Fatalf("expected empty cart after clear")
	}
}

func TestStore_SessionsAreIsolated(t *testing.T) {
	s := NewStore()
	s.Get("a").Add(product("1", 10))

	if got := s.Get("b").ItemCount(); got != 0 {
		t.Fatalf("expected empty cart for new session, got %d", got)
	}
	if got := s.Get("a").ItemCount(); got != 1 {
		t.Fatalf("expected session cart to persist, got %d", got)
	}

	s.Drop("a")
	if got := s.Get("a").ItemCount(); got != 0 {
		t.Fatalf("expected dropped cart to be empty, got %d", got)
	}
}
