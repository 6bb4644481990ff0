package handlers

import (
	"net/http"

	"pointify-pos/internal/auth"
	"pointify-pos/internal/reports"

	"github.com/gin-gonic/gin"
)

// reportQuery builds the aggregator query from the request, resolving
// the effective scope from the acting role. A cashier can ask for
// scope=store all day long; ReportScope still pins them to self.
func (h *Handlers) reportQuery(c *gin.Context) reports.Query {
	window := reports.Window(c.DefaultQuery("window", string(reports.WindowAll)))
	switch window {
	case reports.WindowAll, reports.WindowToday, reports.WindowLast7Days,
		reports.WindowThisMonth, reports.WindowThisYear:
	default:
		window = reports.WindowAll
	}

	requested := auth.Scope(c.Query("scope"))
	return reports.Query{
		Window:     window,
		Scope:      auth.ReportScope(c.GetString("role"), requested),
		Username:   c.GetString("username"),
		ItemFilter: c.Query("item"),
	}
}

// --- GET: /api/reports ---
func (h *Handlers) GetSalesReport(c *gin.Context) {
	report, err := h.Reports.Generate(h.reportQuery(c))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}

// --- GET: /api/reports/export.csv ---
// Serializes the exact same filter/scope state the report view shows.
func (h *Handlers) ExportSalesReport(c *gin.Context) {
	report, err := h.Reports.Generate(h.reportQuery(c))
	if err != nil {
		fail(c, err)
		return
	}

	data, err := reports.WriteCSV(report)
	if err != nil {
		fail(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="sales-report.csv"`)
	c.Data(http.StatusOK, "text/csv", data)
}
