package cart

import (
	"errors"
	"testing"

	"pointify-pos/internal/database"
	"pointify-pos/internal/models"
)

// fakeProducts serves live stock reads without a database.
type fakeProducts map[uint]*models.Product

func (f fakeProducts) GetProduct(id uint) (*models.Product, error) {
	p, ok := f[id]
	if !ok {
		return nil, database.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func soapStore() fakeProducts {
	return fakeProducts{
		1: {ID: 1, Name: "Soap", Price: 10, CostPrice: 6, Stock: 5},
	}
}

func TestAddLineOutOfStock(t *testing.T) {
	products := fakeProducts{1: {ID: 1, Name: "Soap", Price: 10, CostPrice: 6, Stock: 0}}
	c := New(products)

	if err := c.AddLine(1); !errors.Is(err, ErrOutOfStock) {
		t.Fatalf("AddLine = %v, want ErrOutOfStock", err)
	}
	if !c.IsEmpty() {
		t.Error("cart should remain empty after refused add")
	}
}

func TestAddLineIncrementsExisting(t *testing.T) {
	c := New(soapStore())

	if err := c.AddLine(1); err != nil {
		t.Fatalf("first add: %v", err)
	}
	if err := c.AddLine(1); err != nil {
		t.Fatalf("second add: %v", err)
	}

	lines := c.Lines()
	if len(lines) != 1 {
		t.Fatalf("got %d lines, want 1", len(lines))
	}
	if lines[0].Qty != 2 {
		t.Errorf("qty = %d, want 2", lines[0].Qty)
	}
}

func TestAddLineMaxStock(t *testing.T) {
	products := fakeProducts{1: {ID: 1, Name: "Soap", Price: 10, CostPrice: 6, Stock: 2}}
	c := New(products)

	c.AddLine(1)
	c.AddLine(1)
	if err := c.AddLine(1); !errors.Is(err, ErrMaxStockReached) {
		t.Fatalf("third add = %v, want ErrMaxStockReached", err)
	}
	if got := c.Lines()[0].Qty; got != 2 {
		t.Errorf("qty = %d, want 2", got)
	}
}

func TestChangeQtyRespectsLiveStock(t *testing.T) {
	products := soapStore()
	c := New(products)
	c.AddLine(1)

	// Stock drops between mutations; the cart must see the new figure
	products[1].Stock = 1

	if _, err := c.ChangeQty(1, 1); !errors.Is(err, ErrMaxStockReached) {
		t.Fatalf("ChangeQty = %v, want ErrMaxStockReached", err)
	}
}

func TestChangeQtyRemovesAtZero(t *testing.T) {
	c := New(soapStore())
	c.AddLine(1)

	change, err := c.ChangeQty(1, -1)
	if err != nil {
		t.Fatalf("ChangeQty: %v", err)
	}
	if !change.Removed {
		t.Error("expected the line to be removed")
	}
	if !c.IsEmpty() {
		t.Error("cart should be empty")
	}
}

func TestDiscountRejectedBelowCost(t *testing.T) {
	c := New(soapStore())
	c.AddLine(1)

	// qty 1: 10 - 5 = 5 <= cost 6, must be refused
	if err := c.ApplyDiscount(1, 5); !errors.Is(err, ErrDiscountExceedsMargin) {
		t.Fatalf("ApplyDiscount = %v, want ErrDiscountExceedsMargin", err)
	}
	if got := c.Lines()[0].Discount; got != 0 {
		t.Errorf("discount = %v, want unset", got)
	}
}

func TestDiscountInvalidInput(t *testing.T) {
	c := New(soapStore())
	c.AddLine(1)

	if err := c.ApplyDiscount(1, -1); !errors.Is(err, ErrInvalidDiscount) {
		t.Errorf("negative discount = %v, want ErrInvalidDiscount", err)
	}
}

func TestDiscountAccepted(t *testing.T) {
	c := New(soapStore())
	c.AddLine(1)
	c.AddLine(1) // qty 2: total 20, cost 12

	if err := c.ApplyDiscount(1, 7); err != nil {
		t.Fatalf("ApplyDiscount: %v", err)
	}
	if got := c.Total(); got != 13 {
		t.Errorf("total = %v, want 13", got)
	}
}

func TestQtyChangeClampsDiscount(t *testing.T) {
	c := New(soapStore())
	c.AddLine(1)
	c.AddLine(1) // qty 2: total 20, cost 12
	if err := c.ApplyDiscount(1, 7); err != nil {
		t.Fatalf("ApplyDiscount: %v", err)
	}

	// Dropping to qty 1 makes 10 - 7 = 3 <= cost 6: the discount must
	// shrink to 10 - 6 - 1 = 3, not fail the quantity change
	change, err := c.ChangeQty(1, -1)
	if err != nil {
		t.Fatalf("ChangeQty: %v", err)
	}
	if !change.DiscountAdjusted {
		t.Fatal("expected an informational discount adjustment")
	}
	if change.NewDiscount != 3 {
		t.Errorf("clamped discount = %v, want 3", change.NewDiscount)
	}

	line := c.Lines()[0]
	if line.Discount != 3 {
		t.Errorf("line discount = %v, want 3", line.Discount)
	}
	// Profit floor holds strictly
	if line.Total() <= line.CostPrice*float64(line.Qty) {
		t.Errorf("line total %v does not clear cost basis", line.Total())
	}
}

func TestSubtotalEqualsTotal(t *testing.T) {
	c := New(soapStore())
	c.AddLine(1)
	c.AddLine(1)

	if c.Subtotal() != c.Total() {
		t.Errorf("subtotal %v != total %v; there is no tax step", c.Subtotal(), c.Total())
	}
	if c.Total() != 20 {
		t.Errorf("total = %v, want 20", c.Total())
	}
}

func TestClear(t *testing.T) {
	c := New(soapStore())
	c.AddLine(1)
	c.Clear()
	if !c.IsEmpty() {
		t.Error("cart not empty after Clear")
	}
}

func TestManagerIsolatesSessions(t *testing.T) {
	m := NewManager(soapStore())

	m.Get("alice").AddLine(1)
	if !m.Get("bob").IsEmpty() {
		t.Error("bob sees alice's cart")
	}

	m.Drop("alice")
	if !m.Get("alice").IsEmpty() {
		t.Error("cart survived Drop")
	}
}
