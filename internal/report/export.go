package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/alexanderramin/jobwbs/internal/domain"
	"github.com/xuri/excelize/v2"
)

const sheetName = "WBS"

// ExportFileName builds the download name used for a filtered export,
// e.g. wbs_data_20725_Coatings_All.csv.
func ExportFileName(jobNumber string, f Filter, ext string) string {
	sl, task := f.ServiceLine, f.Task
	if sl == "" {
		sl = All
	}
	if task == "" {
		task = All
	}
	name := fmt.Sprintf("wbs_data_%s_%s_%s.%s", jobNumber, sl, task, strings.TrimPrefix(ext, "."))
	return strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', ':', '*', '?', '"', '<', '>', '|', ' ':
			return '_'
		}
		return r
	}, name)
}

// WriteCSV writes a header row and one row per item.
func WriteCSV(w io.Writer, items []*domain.LineItem) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Headers()); err != nil {
		return fmt.Errorf("writing csv header: %w", err)
	}
	for i, li := range items {
		row := make([]string, len(Columns))
		for j, c := range Columns {
			row[j] = Cell(li, c.Field)
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("writing csv row %d: %w", i+1, err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flushing csv: %w", err)
	}
	return nil
}

// WriteXLSX writes the items as a single-sheet workbook with a bold header
// row. Numeric columns are stored as numbers.
func WriteXLSX(w io.Writer, items []*domain.LineItem) error {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(sheetName)
	if err != nil {
		return fmt.Errorf("creating sheet: %w", err)
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return fmt.Errorf("removing default sheet: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E6F3FF"}, Pattern: 1},
	})
	if err != nil {
		return fmt.Errorf("creating header style: %w", err)
	}

	headers := Headers()
	header := make([]any, len(headers))
	for i, h := range headers {
		header[i] = h
	}
	if err := f.SetSheetRow(sheetName, "A1", &header); err != nil {
		return fmt.Errorf("writing xlsx header: %w", err)
	}
	last, err := excelize.CoordinatesToCellName(len(headers), 1)
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(sheetName, "A1", last, headerStyle); err != nil {
		return fmt.Errorf("styling xlsx header: %w", err)
	}

	for i, li := range items {
		row := make([]any, len(Columns))
		for j, c := range Columns {
			row[j] = xlsxValue(li, c.Field)
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheetName, cell, &row); err != nil {
			return fmt.Errorf("writing xlsx row %d: %w", i+1, err)
		}
	}

	for i := range headers {
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return err
		}
		if err := f.SetColWidth(sheetName, col, col, 18); err != nil {
			return fmt.Errorf("sizing column %s: %w", col, err)
		}
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("writing xlsx: %w", err)
	}
	return nil
}

func xlsxValue(li *domain.LineItem, f domain.Field) any {
	switch f {
	case domain.FieldQty:
		return li.Qty
	case domain.FieldBudgetedRevenue:
		return li.BudgetedRevenue
	case domain.FieldBudgetedHours:
		return li.BudgetedHours
	case domain.FieldBudgetedCost:
		return li.BudgetedCost
	}
	return li.Get(f)
}
