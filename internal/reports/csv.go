package reports

import (
	"bytes"
	"encoding/csv"
	"strconv"
	"time"

	"pointify-pos/internal/auth"
)

// WriteCSV serializes the report's filtered result set to flat
// tabular text. The rows mirror exactly what the report holds, so an
// export always matches the on-screen state it was taken from. Dates
// are RFC 3339, a stable parseable form rather than locale text. The
// Net Profit column is omitted in self scope, where that figure is
// withheld.
func WriteCSV(r *Report) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	storeWide := r.Scope == auth.ScopeStore

	header := []string{"Date", "Order ID", "Cashier", "Payment Method", "Items Count", "Total"}
	if storeWide {
		header = append(header, "Net Profit")
	}
	if err := w.Write(header); err != nil {
		return nil, err
	}

	for _, row := range r.Sales {
		record := []string{
			row.Date.Format(time.RFC3339),
			strconv.FormatUint(uint64(row.ID), 10),
			row.Cashier,
			row.PaymentMethod,
			strconv.Itoa(row.ItemsCount),
			strconv.FormatFloat(row.Total, 'f', 2, 64),
		}
		if storeWide {
			record = append(record, strconv.FormatFloat(row.NetProfit, 'f', 2, 64))
		}
		if err := w.Write(record); err != nil {
			return nil, err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
