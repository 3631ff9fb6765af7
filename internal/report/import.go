package report

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/alexanderramin/jobwbs/internal/domain"
	"github.com/xuri/excelize/v2"
)

// ErrUnsupportedFormat is returned for import files that are neither CSV nor XLSX.
var ErrUnsupportedFormat = errors.New("unsupported import format")

// Row is one parsed import row: the field values keyed by field, in the
// order the file lists them. Values are applied through the same coercion
// as interactive edits.
type Row struct {
	Line   int
	Values map[domain.Field]string
}

// ReadFile dispatches on the file extension.
func ReadFile(path string, r io.Reader) ([]Row, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return ReadCSV(r)
	case ".xlsx", ".xlsm":
		return ReadXLSX(r)
	default:
		return nil, fmt.Errorf("%s: %w", path, ErrUnsupportedFormat)
	}
}

// ReadCSV parses a CSV file whose header uses display names or column names.
func ReadCSV(r io.Reader) ([]Row, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading csv: %w", err)
	}
	return parseRecords(records)
}

// ReadXLSX parses the first sheet of a workbook.
func ReadXLSX(r io.Reader) ([]Row, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("opening xlsx: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, nil
	}
	records, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("reading sheet %s: %w", sheets[0], err)
	}
	return parseRecords(records)
}

func parseRecords(records [][]string) ([]Row, error) {
	if len(records) == 0 {
		return nil, nil
	}

	fields := make([]domain.Field, len(records[0]))
	var haveLine, haveTask bool
	for i, h := range records[0] {
		f, ok := fieldForHeader(h)
		if !ok {
			continue
		}
		fields[i] = f
		haveLine = haveLine || f == domain.FieldServiceLine
		haveTask = haveTask || f == domain.FieldWBSTask
	}
	if !haveLine || !haveTask {
		return nil, fmt.Errorf("header must include %q and %q", "Service Line", "WBS Task")
	}

	var rows []Row
	for n, rec := range records[1:] {
		row := Row{Line: n + 2, Values: make(map[domain.Field]string)}
		for i, v := range rec {
			if i >= len(fields) || fields[i] == "" {
				continue
			}
			row.Values[fields[i]] = v
		}
		rows = append(rows, row)
	}
	return rows, nil
}
