package cli

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/alexanderramin/jobwbs/internal/domain"
	"github.com/alexanderramin/jobwbs/internal/report"
)

// parseIndex converts a 1-based row number as shown to users into a
// session index. Range checking is left to the session.
func parseIndex(s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("row must be a number, got %q", s)
	}
	return n - 1, nil
}

// resolveField accepts a column name (budgeted_revenue), its dashed form
// (budgeted-revenue) or a display header ("Budgeted Revenue").
func resolveField(s string) (domain.Field, error) {
	norm := strings.ToLower(strings.TrimSpace(s))
	norm = strings.NewReplacer("-", "_", " ", "_").Replace(norm)
	if f, err := domain.ParseField(norm); err == nil {
		return f, nil
	}
	for _, c := range report.Columns {
		if strings.EqualFold(strings.TrimSpace(s), c.Header) {
			return c.Field, nil
		}
	}
	switch norm {
	case "task":
		return domain.FieldWBSTask, nil
	case "subtask":
		return domain.FieldWBSSubtask, nil
	case "uom":
		return domain.FieldUnitOfMeasure, nil
	case "contract", "contract_vs_co":
		return domain.FieldContractVsCO, nil
	case "revenue":
		return domain.FieldBudgetedRevenue, nil
	case "hours":
		return domain.FieldBudgetedHours, nil
	case "cost":
		return domain.FieldBudgetedCost, nil
	}
	return "", fmt.Errorf("%q: %w (fields: %s)", s, domain.ErrUnknownField, fieldList())
}

func fieldList() string {
	names := make([]string, len(domain.EditableFields))
	for i, f := range domain.EditableFields {
		names[i] = string(f)
	}
	return strings.Join(names, ", ")
}

// rowErr restates an index error in the 1-based row numbers users see.
func rowErr(err error) error {
	var ie *domain.IndexError
	if errors.As(err, &ie) {
		return fmt.Errorf("row %d does not exist, the job has %d row(s): %w", ie.Index+1, ie.Len, domain.ErrIndexOutOfRange)
	}
	return err
}
