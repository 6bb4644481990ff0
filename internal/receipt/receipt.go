package receipt

import (
	"bytes"
	"fmt"

	"pointify-pos/internal/models"
	"pointify-pos/internal/settings"

	"github.com/jung-kurt/gofpdf/v2"
)

// Render produces a printable PDF receipt for a persisted sale. The
// layout mirrors the till printout: store header, order metadata, one
// block per line with any discount shown, grand total, payment info.
func Render(sale *models.Sale, profile *settings.Profile) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A7", "")
	pdf.SetMargins(5, 5, 5)
	pdf.AddPage()

	sym := profile.CurrencySymbol

	// Store header
	pdf.SetFont("Courier", "B", 12)
	pdf.CellFormat(64, 6, profile.StoreName, "", 1, "C", false, 0, "")
	pdf.SetFont("Courier", "", 7)
	if profile.StoreAddress != "" {
		pdf.CellFormat(64, 3.5, profile.StoreAddress, "", 1, "C", false, 0, "")
	}
	if profile.StorePhone != "" {
		pdf.CellFormat(64, 3.5, "Tel: "+profile.StorePhone, "", 1, "C", false, 0, "")
	}
	pdf.Ln(2)

	// Order metadata
	pdf.CellFormat(64, 3.5, sale.Date.Format("02 Jan 2006 15:04"), "", 1, "C", false, 0, "")
	pdf.CellFormat(64, 3.5, fmt.Sprintf("Order: #%d", sale.ID), "", 1, "C", false, 0, "")
	pdf.CellFormat(64, 3.5, "Cashier: "+sale.Cashier, "", 1, "C", false, 0, "")
	pdf.CellFormat(64, 3.5, "Customer: "+sale.Customer, "", 1, "C", false, 0, "")
	pdf.Ln(1)
	pdf.CellFormat(64, 2, "--------------------------------", "", 1, "C", false, 0, "")

	// Line items
	for _, item := range sale.Items {
		pdf.SetFont("Courier", "B", 8)
		pdf.CellFormat(64, 4, item.Name, "", 1, "L", false, 0, "")
		pdf.SetFont("Courier", "", 7)
		pdf.CellFormat(40, 3.5, fmt.Sprintf("%d x %s%.2f", item.Qty, sym, item.Price), "", 0, "L", false, 0, "")
		pdf.CellFormat(24, 3.5, fmt.Sprintf("%s%.2f", sym, item.Price*float64(item.Qty)), "", 1, "R", false, 0, "")
		if item.Discount > 0 {
			pdf.CellFormat(40, 3.5, "Discount", "", 0, "L", false, 0, "")
			pdf.CellFormat(24, 3.5, fmt.Sprintf("-%s%.2f", sym, item.Discount), "", 1, "R", false, 0, "")
		}
		pdf.SetFont("Courier", "B", 7)
		pdf.CellFormat(40, 3.5, "Item Total", "", 0, "L", false, 0, "")
		pdf.CellFormat(24, 3.5, fmt.Sprintf("%s%.2f", sym, item.LineTotal()), "", 1, "R", false, 0, "")
	}

	pdf.SetFont("Courier", "", 7)
	pdf.CellFormat(64, 2, "--------------------------------", "", 1, "C", false, 0, "")

	// Total + payment
	pdf.SetFont("Courier", "B", 11)
	pdf.CellFormat(32, 6, "TOTAL", "", 0, "L", false, 0, "")
	pdf.CellFormat(32, 6, fmt.Sprintf("%s%.2f", sym, sale.Total), "", 1, "R", false, 0, "")
	pdf.SetFont("Courier", "B", 8)
	pdf.CellFormat(64, 4, "Payment: "+sale.PaymentMethod, "", 1, "L", false, 0, "")

	pdf.SetFont("Courier", "", 7)
	for _, detail := range paymentDetails(sale.PaymentMethod, profile) {
		pdf.CellFormat(64, 3.5, detail, "", 1, "L", false, 0, "")
	}

	pdf.Ln(3)
	pdf.CellFormat(64, 3.5, "Thank you for your shopping!", "", 1, "C", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render receipt: %w", err)
	}
	return buf.Bytes(), nil
}

// paymentDetails lists the configured account identifiers a customer
// needs to settle via the chosen method.
func paymentDetails(method string, p *settings.Profile) []string {
	var out []string
	add := func(label, value string) {
		if value != "" {
			out = append(out, label+": "+value)
		}
	}

	switch method {
	case "MPESA":
		add("Paybill", p.MpesaPaybill)
		add("Account", p.MpesaAccount)
		add("Buy Goods", p.MpesaBuyGoods)
		add("Agent No", p.MpesaAgent)
		if p.MpesaAgent != "" {
			add("Store No", p.MpesaStoreNumber)
		}
	case "EVC Plus":
		add("EVC+", p.SomaliaEVC)
	case "Jeeb":
		add("Jeeb", p.SomaliaJeeb)
	case "e-Dahab":
		add("e-Dahab", p.SomaliaEdahab)
	case "Salaam":
		add("Salaam Acc", p.SomaliaSalaam)
	case "Merchant":
		add("Merchant", p.SomaliaMerchant)
	case "Airtel Money":
		add("Airtel Merch", p.UgandaAirtel)
	case "MTN MoMo":
		add("MTN Merch", p.UgandaMTN)
	case "Other":
		add("Info", p.UgandaOther)
	}
	return out
}
