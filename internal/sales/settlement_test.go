package sales

import (
	"errors"
	"path/filepath"
	"testing"

	"pointify-pos/internal/cart"
	"pointify-pos/internal/database"
	"pointify-pos/internal/models"
)

func setup(t *testing.T) (*database.Store, *Settler, *cart.Cart, *models.Product) {
	t.Helper()
	store, err := database.Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	soap := &models.Product{Name: "Soap", Price: 10, CostPrice: 6, Stock: 5}
	if err := store.AddProduct(soap); err != nil {
		t.Fatalf("add product: %v", err)
	}
	return store, NewSettler(store), cart.New(store), soap
}

func TestCheckoutEmptyCart(t *testing.T) {
	_, settler, c, _ := setup(t)

	if _, err := settler.Checkout(c, "", "CASH", "alice"); !errors.Is(err, ErrEmptyCart) {
		t.Fatalf("empty checkout = %v, want ErrEmptyCart", err)
	}
}

func TestCheckoutHappyPath(t *testing.T) {
	store, settler, c, soap := setup(t)
	if err := c.AddLine(soap.ID); err != nil {
		t.Fatalf("add line: %v", err)
	}
	if _, err := c.ChangeQty(soap.ID, 1); err != nil {
		t.Fatalf("bump qty: %v", err)
	}

	sale, err := settler.Checkout(c, "", "CASH", "alice")
	if err != nil {
		t.Fatalf("checkout: %v", err)
	}

	if sale.ID == 0 {
		t.Error("sale was not persisted")
	}
	if sale.Customer != DefaultCustomer {
		t.Errorf("customer = %q, want default", sale.Customer)
	}
	if sale.Cashier != "alice" || sale.PaymentMethod != "CASH" {
		t.Errorf("attribution = %q/%q", sale.Cashier, sale.PaymentMethod)
	}
	if sale.Total != 20 || sale.NetProfit != 8 {
		t.Errorf("totals = %v/%v, want 20/8", sale.Total, sale.NetProfit)
	}
	if !c.IsEmpty() {
		t.Error("cart should be cleared after settlement")
	}

	got, err := store.GetProduct(soap.ID)
	if err != nil {
		t.Fatalf("reload product: %v", err)
	}
	if got.Stock != 3 {
		t.Errorf("stock = %d, want 3", got.Stock)
	}
}

func TestCheckoutKeepsCustomerName(t *testing.T) {
	_, settler, c, soap := setup(t)
	c.AddLine(soap.ID)

	sale, err := settler.Checkout(c, "Fatima", "MPESA", "alice")
	if err != nil {
		t.Fatalf("checkout: %v", err)
	}
	if sale.Customer != "Fatima" {
		t.Errorf("customer = %q, want Fatima", sale.Customer)
	}
}

func TestCheckoutFailureLeavesCart(t *testing.T) {
	store, settler, c, soap := setup(t)
	if err := c.AddLine(soap.ID); err != nil {
		t.Fatalf("add line: %v", err)
	}

	// Product vanishes between carting and settlement
	if err := store.DeleteProduct(soap.ID); err != nil {
		t.Fatalf("delete product: %v", err)
	}

	if _, err := settler.Checkout(c, "", "CASH", "alice"); !errors.Is(err, database.ErrTransactionFailed) {
		t.Fatalf("checkout = %v, want ErrTransactionFailed", err)
	}

	if c.IsEmpty() {
		t.Error("cart must survive a failed settlement")
	}
	salesList, _ := store.GetAllSales()
	if len(salesList) != 0 {
		t.Errorf("got %d sales, want 0", len(salesList))
	}
}
