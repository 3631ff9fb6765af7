package report

import (
	"strings"

	"github.com/alexanderramin/jobwbs/internal/domain"
	"github.com/shopspring/decimal"
)

// Column pairs a line item field with its display header.
type Column struct {
	Field  domain.Field
	Header string
}

// Columns is the display and export column order.
var Columns = []Column{
	{domain.FieldServiceLine, "Service Line"},
	{domain.FieldWBSTask, "WBS Task"},
	{domain.FieldWBSSubtask, "WBS Subtask"},
	{domain.FieldQty, "QTY"},
	{domain.FieldUnitOfMeasure, "Unit of Measure"},
	{domain.FieldContractVsCO, "Contract vs CO"},
	{domain.FieldFPAType, "FPA Type"},
	{domain.FieldFPASubtype, "FPA Subtype"},
	{domain.FieldBudgetedRevenue, "Budgeted Revenue"},
	{domain.FieldBudgetedHours, "Budgeted Hours"},
	{domain.FieldBudgetedCost, "Budgeted Cost"},
}

// Headers returns the display header row.
func Headers() []string {
	h := make([]string, len(Columns))
	for i, c := range Columns {
		h[i] = c.Header
	}
	return h
}

// FormatNumber renders n in plain decimal notation without grouping or
// currency symbols, e.g. 20000, 12.5.
func FormatNumber(n float64) string {
	return decimal.NewFromFloat(n).String()
}

// Cell renders one field of li for export.
func Cell(li *domain.LineItem, f domain.Field) string {
	if f.IsNumeric() {
		switch f {
		case domain.FieldQty:
			return FormatNumber(li.Qty)
		case domain.FieldBudgetedRevenue:
			return FormatNumber(li.BudgetedRevenue)
		case domain.FieldBudgetedHours:
			return FormatNumber(li.BudgetedHours)
		case domain.FieldBudgetedCost:
			return FormatNumber(li.BudgetedCost)
		}
	}
	return li.Get(f)
}

// fieldForHeader resolves an import header by display name or column name.
func fieldForHeader(h string) (domain.Field, bool) {
	h = strings.TrimSpace(h)
	for _, c := range Columns {
		if strings.EqualFold(h, c.Header) || strings.EqualFold(h, string(c.Field)) {
			return c.Field, true
		}
	}
	if strings.EqualFold(h, "quantity") {
		return domain.FieldQty, true
	}
	return "", false
}
