package reports

import (
	"sort"
	"strings"
	"time"

	"pointify-pos/internal/auth"
	"pointify-pos/internal/database"
	"pointify-pos/internal/models"
)

// Window is the report time filter, computed against wall-clock "now"
// using calendar boundaries in local time.
type Window string

const (
	WindowAll       Window = "all"
	WindowToday     Window = "today"
	WindowLast7Days Window = "last7days"
	WindowThisMonth Window = "thisMonth"
	WindowThisYear  Window = "thisYear"
)

// Query describes one report request after scope resolution.
type Query struct {
	Window     Window
	Scope      auth.Scope
	Username   string // acting user; the filter key for self scope
	ItemFilter string // optional free-text item-name filter
}

// SaleRow is one matched sale in the filtered result set. When an
// item filter is active the figures reflect only the matched lines.
type SaleRow struct {
	ID            uint      `json:"id"`
	Date          time.Time `json:"date"`
	Cashier       string    `json:"cashier"`
	PaymentMethod string    `json:"paymentMethod"`
	ItemsCount    int       `json:"itemsCount"`
	Total         float64   `json:"total"`
	NetProfit     float64   `json:"netProfit"`
}

// EmployeeStat is the per-cashier rollup, store-wide scopes only.
type EmployeeStat struct {
	Cashier   string  `json:"cashier"`
	Orders    int     `json:"orders"`
	ItemsSold int     `json:"itemsSold"`
	Revenue   float64 `json:"revenue"`
}

// PaymentBreakdown groups sale totals by payment method. CASH is its
// own bucket; every other label counts as electronic.
type PaymentBreakdown struct {
	ByMethod   map[string]float64 `json:"byMethod"`
	Cash       float64            `json:"cash"`
	Electronic float64            `json:"electronic"`
}

// Report is the derived view. Profit, payment breakdown and the
// employee rollup are deliberately withheld from self-restricted
// scopes; the self scope carries an items-sold count instead.
type Report struct {
	Window    Window            `json:"window"`
	Scope     auth.Scope        `json:"scope"`
	Revenue   float64           `json:"revenue"`
	Orders    int               `json:"orders"`
	NetProfit *float64          `json:"netProfit,omitempty"`
	ItemsSold *int              `json:"itemsSold,omitempty"`
	Payments  *PaymentBreakdown `json:"payments,omitempty"`
	Employees []EmployeeStat    `json:"employees,omitempty"`
	Sales     []SaleRow         `json:"sales"`
}

// Aggregator produces read-only derived views over the sales
// collection. Now is a field so tests can pin the clock.
type Aggregator struct {
	store *database.Store
	Now   func() time.Time
}

func NewAggregator(store *database.Store) *Aggregator {
	return &Aggregator{store: store, Now: time.Now}
}

// windowStart returns the inclusive lower bound for a window, or
// ok=false when the window is unbounded.
func windowStart(now time.Time, w Window) (time.Time, bool) {
	startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	switch w {
	case WindowToday:
		return startOfDay, true
	case WindowLast7Days:
		return startOfDay.AddDate(0, 0, -6), true
	case WindowThisMonth:
		return time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()), true
	case WindowThisYear:
		return time.Date(now.Year(), 1, 1, 0, 0, 0, 0, now.Location()), true
	default:
		return time.Time{}, false
	}
}

// matchedItems returns the sale's lines that pass the item filter. A
// sale can partially match; with no filter every line matches.
func matchedItems(sale models.Sale, filter string) []models.SaleItem {
	if filter == "" {
		return sale.Items
	}
	needle := strings.ToLower(filter)
	var out []models.SaleItem
	for _, item := range sale.Items {
		if strings.Contains(strings.ToLower(item.Name), needle) {
			out = append(out, item)
		}
	}
	return out
}

// Generate scans persisted sales and computes the report for the
// query. It re-reads the store every time; nothing is cached.
func (a *Aggregator) Generate(q Query) (*Report, error) {
	allSales, err := a.store.GetAllSales()
	if err != nil {
		return nil, err
	}

	start, bounded := windowStart(a.Now(), q.Window)

	report := &Report{Window: q.Window, Scope: q.Scope, Sales: []SaleRow{}}
	storeWide := q.Scope == auth.ScopeStore

	var netProfit float64
	var itemsSold int
	payments := &PaymentBreakdown{ByMethod: make(map[string]float64)}
	perEmployee := make(map[string]*EmployeeStat)

	for _, sale := range allSales {
		if bounded && sale.Date.Before(start) {
			continue
		}
		if !storeWide && sale.Cashier != q.Username {
			continue
		}

		items := matchedItems(sale, q.ItemFilter)
		if len(items) == 0 {
			continue
		}

		var total, profit float64
		var count int
		for _, item := range items {
			lineTotal := item.LineTotal()
			total += lineTotal
			profit += lineTotal - item.CostPrice*float64(item.Qty)
			count += item.Qty
		}

		report.Revenue += total
		report.Orders++
		netProfit += profit
		itemsSold += count

		payments.ByMethod[sale.PaymentMethod] += total
		if sale.PaymentMethod == "CASH" {
			payments.Cash += total
		} else {
			payments.Electronic += total
		}

		stat, ok := perEmployee[sale.Cashier]
		if !ok {
			stat = &EmployeeStat{Cashier: sale.Cashier}
			perEmployee[sale.Cashier] = stat
		}
		stat.Orders++
		stat.ItemsSold += count
		stat.Revenue += total

		report.Sales = append(report.Sales, SaleRow{
			ID:            sale.ID,
			Date:          sale.Date,
			Cashier:       sale.Cashier,
			PaymentMethod: sale.PaymentMethod,
			ItemsCount:    count,
			Total:         total,
			NetProfit:     profit,
		})
	}

	sort.Slice(report.Sales, func(i, j int) bool {
		return report.Sales[i].Date.After(report.Sales[j].Date)
	})

	if storeWide {
		report.NetProfit = &netProfit
		report.Payments = payments
		for _, stat := range perEmployee {
			report.Employees = append(report.Employees, *stat)
		}
		sort.Slice(report.Employees, func(i, j int) bool {
			return report.Employees[i].Cashier < report.Employees[j].Cashier
		})
	} else {
		report.ItemsSold = &itemsSold
		// Per-row profit is a privileged figure too
		for i := range report.Sales {
			report.Sales[i].NetProfit = 0
		}
	}

	return report, nil
}
