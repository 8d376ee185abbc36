package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/tealeg/xlsx"
	"github.com/verdantly/plantora-api/services"
)

// parseReportRange reads optional start/end query params (YYYY-MM-DD). The
// end date is inclusive through end of day.
func parseReportRange(ctx *gin.Context) (start, end *time.Time, ok bool) {
	if s := ctx.Query("start"); s != "" {
		parsed, err := time.Parse("2006-01-02", s)
		if err != nil {
			respondWithError(ctx, http.StatusBadRequest, "Invalid start date", err)
			return nil, nil, false
		}
		start = &parsed
	}
	if e := ctx.Query("end"); e != "" {
		parsed, err := time.Parse("2006-01-02", e)
		if err != nil {
			respondWithError(ctx, http.StatusBadRequest, "Invalid end date", err)
			return nil, nil, false
		}
		endOfDay := parsed.Add(24*time.Hour - time.Nanosecond)
		end = &endOfDay
	}
	return start, end, true
}

// ExportSalesReport streams the per-plant sales report as a spreadsheet,
// optionally limited to orders placed inside the date range.
func ExportSalesReport(report *services.ReportService) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		start, end, ok := parseReportRange(ctx)
		if !ok {
			return
		}

		rows, err := report.SalesReport(start, end)
		if err != nil {
			respondWithError(ctx, http.StatusInternalServerError, "Failed to build sales report", err)
			return
		}

		file := xlsx.NewFile()
		sheet, err := file.AddSheet("Sales Report")
		if err != nil {
			respondWithError(ctx, http.StatusInternalServerError, "Failed to create Excel sheet", err)
			return
		}

		// Header row
		headers := []string{
			"Plant", "Country", "Add Qty", "Current Stock", "Sold Qty",
			"Price", "Discount %", "Units Sold", "Revenue",
			"Potential Revenue", "Discount Loss", "Estimated Cost",
		}
		headerRow := sheet.AddRow()
		for _, h := range headers {
			headerRow.AddCell().SetValue(h)
		}

		// Data rows
		for _, r := range rows {
			row := sheet.AddRow()
			row.AddCell().SetValue(r.PlantName)
			row.AddCell().SetValue(r.Country)
			row.AddCell().SetValue(r.AddedQuantity)
			row.AddCell().SetValue(r.CurrentQuantity)
			row.AddCell().SetValue(r.SoldQuantity)
			row.AddCell().SetValue(r.Price)
			row.AddCell().SetValue(r.Discount)
			row.AddCell().SetValue(r.TotalSold)
			row.AddCell().SetValue(r.ActualRevenue)
			row.AddCell().SetValue(r.PotentialRevenue)
			row.AddCell().SetValue(r.DiscountLoss)
			row.AddCell().SetValue(r.EstimatedCost)
		}

		// Set response headers for download
		ctx.Header("Content-Disposition", "attachment; filename=sales-report.xlsx")
		ctx.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		ctx.Header("Content-Transfer-Encoding", "binary")
		ctx.Header("Expires", "0")

		if err := file.Write(ctx.Writer); err != nil {
			respondWithError(ctx, http.StatusInternalServerError, "Failed to write Excel file", err)
			return
		}
	}
}

// GetSalesReport returns the same rows as JSON for dashboard views.
func GetSalesReport(report *services.ReportService) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		start, end, ok := parseReportRange(ctx)
		if !ok {
			return
		}

		rows, err := report.SalesReport(start, end)
		if err != nil {
			respondWithError(ctx, http.StatusInternalServerError, "Failed to build sales report", err)
			return
		}

		ctx.JSON(http.StatusOK, gin.H{"report": rows})
	}
}
