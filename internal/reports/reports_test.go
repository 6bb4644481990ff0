package reports

import (
	"path/filepath"
	"strings"
	"testing"
	"time"

	"pointify-pos/internal/auth"
	"pointify-pos/internal/database"
	"pointify-pos/internal/models"
)

// seededAggregator builds a store holding three sales and pins the
// clock to 2026-02-10 noon local time:
//
//	alice  2026-02-10  CASH   2x Soap           total 20, profit  8
//	alice  2026-02-04  MPESA  1x Tea            total  4, profit  2
//	bob    2026-01-15  CASH   1x Soap + 1x Tea  total 14, profit  6
func seededAggregator(t *testing.T) *Aggregator {
	t.Helper()
	store, err := database.Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}

	soap := &models.Product{Name: "Soap", Price: 10, CostPrice: 6, Stock: 50}
	tea := &models.Product{Name: "Tea", Price: 4, CostPrice: 2, Stock: 50}
	store.AddProduct(soap)
	store.AddProduct(tea)

	commit := func(date time.Time, cashier, method string, items ...models.SaleItem) {
		t.Helper()
		sale := &models.Sale{Date: date, Customer: "Walk-in Customer", Cashier: cashier, PaymentMethod: method, Items: items}
		if err := store.CommitSale(sale); err != nil {
			t.Fatalf("commit sale: %v", err)
		}
	}

	commit(time.Date(2026, 2, 10, 9, 0, 0, 0, time.Local), "alice", "CASH",
		models.SaleItem{ProductID: soap.ID, Name: "Soap", Price: 10, CostPrice: 6, Qty: 2})
	commit(time.Date(2026, 2, 4, 9, 0, 0, 0, time.Local), "alice", "MPESA",
		models.SaleItem{ProductID: tea.ID, Name: "Tea", Price: 4, CostPrice: 2, Qty: 1})
	commit(time.Date(2026, 1, 15, 9, 0, 0, 0, time.Local), "bob", "CASH",
		models.SaleItem{ProductID: soap.ID, Name: "Soap", Price: 10, CostPrice: 6, Qty: 1},
		models.SaleItem{ProductID: tea.ID, Name: "Tea", Price: 4, CostPrice: 2, Qty: 1})

	agg := NewAggregator(store)
	agg.Now = func() time.Time { return time.Date(2026, 2, 10, 12, 0, 0, 0, time.Local) }
	return agg
}

func TestGenerateStoreScope(t *testing.T) {
	agg := seededAggregator(t)

	r, err := agg.Generate(Query{Window: WindowAll, Scope: auth.ScopeStore, Username: "alice"})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	if r.Orders != 3 {
		t.Errorf("orders = %d, want 3", r.Orders)
	}
	if r.Revenue != 38 {
		t.Errorf("revenue = %v, want 38", r.Revenue)
	}
	if r.NetProfit == nil || *r.NetProfit != 16 {
		t.Errorf("netProfit = %v, want 16", r.NetProfit)
	}
	if r.Payments == nil {
		t.Fatal("payments missing in store scope")
	}
	if r.Payments.Cash != 34 || r.Payments.Electronic != 4 {
		t.Errorf("cash/electronic = %v/%v, want 34/4", r.Payments.Cash, r.Payments.Electronic)
	}
	if r.Payments.ByMethod["MPESA"] != 4 {
		t.Errorf("MPESA bucket = %v, want 4", r.Payments.ByMethod["MPESA"])
	}

	if len(r.Employees) != 2 {
		t.Fatalf("got %d employees, want 2", len(r.Employees))
	}
	// Sorted by name: alice first
	if r.Employees[0].Cashier != "alice" || r.Employees[0].Orders != 2 || r.Employees[0].Revenue != 24 {
		t.Errorf("alice rollup = %+v", r.Employees[0])
	}
	if r.Employees[1].Cashier != "bob" || r.Employees[1].ItemsSold != 2 {
		t.Errorf("bob rollup = %+v", r.Employees[1])
	}

	// Newest first
	if len(r.Sales) != 3 || r.Sales[0].Cashier != "alice" || r.Sales[2].Cashier != "bob" {
		t.Errorf("sale ordering = %+v", r.Sales)
	}
	if r.Sales[0].NetProfit != 8 {
		t.Errorf("row profit = %v, want 8", r.Sales[0].NetProfit)
	}
}

func TestGenerateSelfScope(t *testing.T) {
	agg := seededAggregator(t)

	r, err := agg.Generate(Query{Window: WindowAll, Scope: auth.ScopeSelf, Username: "alice"})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	if r.Orders != 2 || r.Revenue != 24 {
		t.Errorf("orders/revenue = %d/%v, want 2/24", r.Orders, r.Revenue)
	}
	if r.NetProfit != nil {
		t.Error("netProfit leaked into self scope")
	}
	if r.Payments != nil {
		t.Error("payment breakdown leaked into self scope")
	}
	if r.Employees != nil {
		t.Error("employee rollup leaked into self scope")
	}
	if r.ItemsSold == nil || *r.ItemsSold != 3 {
		t.Errorf("itemsSold = %v, want 3", r.ItemsSold)
	}
	for _, row := range r.Sales {
		if row.NetProfit != 0 {
			t.Errorf("row profit leaked: %+v", row)
		}
	}
}

func TestGenerateWindows(t *testing.T) {
	agg := seededAggregator(t)

	tests := []struct {
		window Window
		orders int
	}{
		{WindowToday, 1},
		{WindowLast7Days, 2},
		{WindowThisMonth, 2},
		{WindowThisYear, 3},
		{WindowAll, 3},
	}
	for _, tt := range tests {
		r, err := agg.Generate(Query{Window: tt.window, Scope: auth.ScopeStore})
		if err != nil {
			t.Fatalf("%s: %v", tt.window, err)
		}
		if r.Orders != tt.orders {
			t.Errorf("%s: orders = %d, want %d", tt.window, r.Orders, tt.orders)
		}
	}
}

func TestGenerateItemFilter(t *testing.T) {
	agg := seededAggregator(t)

	// Case-insensitive partial match. Bob's mixed sale matches on its
	// Tea line only, so its figures shrink to that line.
	r, err := agg.Generate(Query{Window: WindowAll, Scope: auth.ScopeStore, ItemFilter: "tEa"})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if r.Orders != 2 {
		t.Fatalf("orders = %d, want 2", r.Orders)
	}
	if r.Revenue != 8 {
		t.Errorf("revenue = %v, want 8", r.Revenue)
	}
	if r.NetProfit == nil || *r.NetProfit != 4 {
		t.Errorf("netProfit = %v, want 4", r.NetProfit)
	}
	for _, row := range r.Sales {
		if row.ItemsCount != 1 {
			t.Errorf("row items = %d, want matched lines only", row.ItemsCount)
		}
	}

	none, _ := agg.Generate(Query{Window: WindowAll, Scope: auth.ScopeStore, ItemFilter: "nonsense"})
	if none.Orders != 0 || len(none.Sales) != 0 {
		t.Errorf("no-match report = %+v", none)
	}
}

func TestWindowStartBoundaries(t *testing.T) {
	now := time.Date(2026, 2, 10, 12, 0, 0, 0, time.Local)

	if _, bounded := windowStart(now, WindowAll); bounded {
		t.Error("all window must be unbounded")
	}
	if start, _ := windowStart(now, WindowToday); !start.Equal(time.Date(2026, 2, 10, 0, 0, 0, 0, time.Local)) {
		t.Errorf("today start = %v", start)
	}
	if start, _ := windowStart(now, WindowLast7Days); !start.Equal(time.Date(2026, 2, 4, 0, 0, 0, 0, time.Local)) {
		t.Errorf("last7days start = %v", start)
	}
	if start, _ := windowStart(now, WindowThisMonth); !start.Equal(time.Date(2026, 2, 1, 0, 0, 0, 0, time.Local)) {
		t.Errorf("thisMonth start = %v", start)
	}
	if start, _ := windowStart(now, WindowThisYear); !start.Equal(time.Date(2026, 1, 1, 0, 0, 0, 0, time.Local)) {
		t.Errorf("thisYear start = %v", start)
	}
}

func TestWriteCSVScopes(t *testing.T) {
	agg := seededAggregator(t)

	storeReport, _ := agg.Generate(Query{Window: WindowAll, Scope: auth.ScopeStore})
	out, err := WriteCSV(storeReport)
	if err != nil {
		t.Fatalf("write csv: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(out)), "\n")
	if len(lines) != 4 {
		t.Fatalf("got %d lines, want header plus 3 rows", len(lines))
	}
	if lines[0] != "Date,Order ID,Cashier,Payment Method,Items Count,Total,Net Profit" {
		t.Errorf("store header = %q", lines[0])
	}
	if !strings.HasSuffix(lines[1], ",20.00,8.00") {
		t.Errorf("first row = %q", lines[1])
	}
	if _, err := time.Parse(time.RFC3339, strings.SplitN(lines[1], ",", 2)[0]); err != nil {
		t.Errorf("date column is not RFC 3339: %v", err)
	}

	selfReport, _ := agg.Generate(Query{Window: WindowAll, Scope: auth.ScopeSelf, Username: "alice"})
	out, err = WriteCSV(selfReport)
	if err != nil {
		t.Fatalf("write csv self: %v", err)
	}
	lines = strings.Split(strings.TrimSpace(string(out)), "\n")
	if lines[0] != "Date,Order ID,Cashier,Payment Method,Items Count,Total" {
		t.Errorf("self header = %q", lines[0])
	}
	for _, line := range lines[1:] {
		if strings.Count(line, ",") != 5 {
			t.Errorf("self row has extra column: %q", line)
		}
	}
}
