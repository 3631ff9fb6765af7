package domain

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Field names a line item column. Values match the storage column names.
type Field string

const (
	FieldServiceLine     Field = "service_line"
	FieldWBSTask         Field = "wbs_task"
	FieldWBSSubtask      Field = "wbs_subtask"
	FieldQty             Field = "qty"
	FieldUnitOfMeasure   Field = "unit_of_measure"
	FieldContractVsCO    Field = "contract_vs_co"
	FieldFPAType         Field = "fpa_type"
	FieldFPASubtype      Field = "fpa_subtype"
	FieldBudgetedRevenue Field = "budgeted_revenue"
	FieldBudgetedHours   Field = "budgeted_hours"
	FieldBudgetedCost    Field = "budgeted_cost"
)

// EditableFields lists every user-editable field in display order.
var EditableFields = []Field{
	FieldServiceLine, FieldWBSTask, FieldWBSSubtask,
	FieldQty, FieldUnitOfMeasure, FieldContractVsCO,
	FieldFPAType, FieldFPASubtype,
	FieldBudgetedRevenue, FieldBudgetedHours, FieldBudgetedCost,
}

// ParseField resolves a storage column name into a Field.
func ParseField(s string) (Field, error) {
	f := Field(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range EditableFields {
		if f == known {
			return f, nil
		}
	}
	return "", fmt.Errorf("%q: %w", s, ErrUnknownField)
}

// IsNumeric reports whether the field holds a float value.
func (f Field) IsNumeric() bool {
	switch f {
	case FieldQty, FieldBudgetedRevenue, FieldBudgetedHours, FieldBudgetedCost:
		return true
	}
	return false
}

// LineItem is one WBS budget line. ID is nil until the item has been
// persisted; every save assigns fresh ids.
type LineItem struct {
	ID              *int64
	JobNumber       string
	ServiceLine     string
	WBSTask         string
	WBSSubtask      string
	Qty             float64
	UnitOfMeasure   string
	ContractVsCO    ContractType
	FPAType         FPAType
	FPASubtype      FPASubtype
	BudgetedRevenue float64
	BudgetedHours   float64
	BudgetedCost    float64
}

// NewLineItem returns an unsaved item for jobNumber with every field at its
// zero value.
func NewLineItem(jobNumber string) *LineItem {
	return &LineItem{JobNumber: jobNumber}
}

// Clone returns a deep copy, including the id pointer.
func (li *LineItem) Clone() *LineItem {
	c := *li
	if li.ID != nil {
		id := *li.ID
		c.ID = &id
	}
	return &c
}

// Persisted reports whether the item carries a store-assigned id.
func (li *LineItem) Persisted() bool {
	return li.ID != nil
}

// IsBlank reports whether service line, task and subtask are all empty.
// Blank items are skipped on save.
func (li *LineItem) IsBlank() bool {
	return strings.TrimSpace(li.ServiceLine) == "" &&
		strings.TrimSpace(li.WBSTask) == "" &&
		strings.TrimSpace(li.WBSSubtask) == ""
}

// Set assigns value to field with coercion. Text fields accept any string;
// numeric fields accept numbers or numeric strings (empty or nil means 0) and
// reject negatives; enumerated fields reject values outside their set.
func (li *LineItem) Set(field Field, value any) error {
	if field.IsNumeric() {
		n, err := coerceFloat(field, value)
		if err != nil {
			return err
		}
		*li.numeric(field) = n
		return nil
	}

	s, err := coerceString(field, value)
	if err != nil {
		return err
	}
	switch field {
	case FieldServiceLine:
		li.ServiceLine = s
	case FieldWBSTask:
		li.WBSTask = s
	case FieldWBSSubtask:
		li.WBSSubtask = s
	case FieldUnitOfMeasure:
		li.UnitOfMeasure = s
	case FieldContractVsCO:
		v, err := ParseContractType(s)
		if err != nil {
			return err
		}
		li.ContractVsCO = v
	case FieldFPAType:
		v, err := ParseFPAType(s)
		if err != nil {
			return err
		}
		li.FPAType = v
	case FieldFPASubtype:
		v, err := ParseFPASubtype(s)
		if err != nil {
			return err
		}
		li.FPASubtype = v
	default:
		return fmt.Errorf("%q: %w", field, ErrUnknownField)
	}
	return nil
}

// Get returns the field rendered as a string. Numbers use the shortest
// decimal representation.
func (li *LineItem) Get(field Field) string {
	switch field {
	case FieldServiceLine:
		return li.ServiceLine
	case FieldWBSTask:
		return li.WBSTask
	case FieldWBSSubtask:
		return li.WBSSubtask
	case FieldUnitOfMeasure:
		return li.UnitOfMeasure
	case FieldContractVsCO:
		return string(li.ContractVsCO)
	case FieldFPAType:
		return string(li.FPAType)
	case FieldFPASubtype:
		return string(li.FPASubtype)
	}
	if field.IsNumeric() {
		return strconv.FormatFloat(*li.numeric(field), 'f', -1, 64)
	}
	return ""
}

// Validate re-checks the invariants Set enforces. Items built without Set
// (imports, direct struct literals) pass through here before saving.
func (li *LineItem) Validate() error {
	for _, f := range []Field{FieldQty, FieldBudgetedRevenue, FieldBudgetedHours, FieldBudgetedCost} {
		if _, err := checkFloat(f, *li.numeric(f)); err != nil {
			return err
		}
	}
	if _, err := ParseContractType(string(li.ContractVsCO)); err != nil {
		return err
	}
	if _, err := ParseFPAType(string(li.FPAType)); err != nil {
		return err
	}
	if _, err := ParseFPASubtype(string(li.FPASubtype)); err != nil {
		return err
	}
	return nil
}

func (li *LineItem) numeric(field Field) *float64 {
	switch field {
	case FieldQty:
		return &li.Qty
	case FieldBudgetedRevenue:
		return &li.BudgetedRevenue
	case FieldBudgetedHours:
		return &li.BudgetedHours
	default:
		return &li.BudgetedCost
	}
}

func coerceString(field Field, value any) (string, error) {
	switch v := value.(type) {
	case nil:
		return "", nil
	case string:
		return strings.TrimSpace(v), nil
	case ContractType:
		return string(v), nil
	case FPAType:
		return string(v), nil
	case FPASubtype:
		return string(v), nil
	case fmt.Stringer:
		return strings.TrimSpace(v.String()), nil
	default:
		return "", fmt.Errorf("%s: unsupported value type %T", field, value)
	}
}

func coerceFloat(field Field, value any) (float64, error) {
	switch v := value.(type) {
	case nil:
		return 0, nil
	case float64:
		return checkFloat(field, v)
	case float32:
		return checkFloat(field, float64(v))
	case int:
		return checkFloat(field, float64(v))
	case int64:
		return checkFloat(field, float64(v))
	case string:
		s := strings.TrimSpace(strings.ReplaceAll(v, ",", ""))
		if s == "" {
			return 0, nil
		}
		n, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, fmt.Errorf("%s: %q: %w", field, v, ErrInvalidNumber)
		}
		return checkFloat(field, n)
	default:
		return 0, fmt.Errorf("%s: unsupported value type %T: %w", field, value, ErrInvalidNumber)
	}
}

func checkFloat(field Field, n float64) (float64, error) {
	if math.IsNaN(n) || math.IsInf(n, 0) {
		return 0, fmt.Errorf("%s: non-finite value: %w", field, ErrInvalidNumber)
	}
	if n < 0 {
		return 0, fmt.Errorf("%s: negative value %v: %w", field, n, ErrInvalidNumber)
	}
	return n, nil
}
