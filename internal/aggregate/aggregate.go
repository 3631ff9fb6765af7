// Package aggregate computes totals, distinct-value counts and top-N rankings
// over line items. Every function is pure and treats nil input as empty.
package aggregate

import (
	"fmt"
	"sort"

	"github.com/alexanderramin/jobwbs/internal/domain"
	"github.com/shopspring/decimal"
)

// Totals holds the budget sums of a set of line items.
type Totals struct {
	Revenue float64
	Hours   float64
	Cost    float64
}

// Count is one (value, occurrences) pair of a grouping.
type Count struct {
	Value string
	Count int
}

// SumTotals adds revenue, hours and cost across items. Sums are accumulated
// in decimal so that currency amounts do not drift.
func SumTotals(items []*domain.LineItem) Totals {
	var revenue, hours, cost decimal.Decimal
	for _, li := range items {
		if li == nil {
			continue
		}
		revenue = revenue.Add(decimal.NewFromFloat(li.BudgetedRevenue))
		hours = hours.Add(decimal.NewFromFloat(li.BudgetedHours))
		cost = cost.Add(decimal.NewFromFloat(li.BudgetedCost))
	}
	return Totals{
		Revenue: revenue.InexactFloat64(),
		Hours:   hours.InexactFloat64(),
		Cost:    cost.InexactFloat64(),
	}
}

// CountBy maps each distinct value of field to its number of occurrences.
// Only text fields group meaningfully; service_line and wbs_task are the
// ones reports use.
func CountBy(items []*domain.LineItem, field domain.Field) (map[string]int, error) {
	if err := checkGroupable(field); err != nil {
		return nil, err
	}
	counts := make(map[string]int)
	for _, li := range items {
		if li == nil {
			continue
		}
		counts[li.Get(field)]++
	}
	return counts, nil
}

// TopN returns the n most frequent values of field, descending by count.
// Ties keep the order in which values first appear in items. n <= 0
// returns no entries.
func TopN(items []*domain.LineItem, field domain.Field, n int) ([]Count, error) {
	if err := checkGroupable(field); err != nil {
		return nil, err
	}
	if n <= 0 {
		return []Count{}, nil
	}

	index := make(map[string]int)
	var ranked []Count
	for _, li := range items {
		if li == nil {
			continue
		}
		v := li.Get(field)
		if i, ok := index[v]; ok {
			ranked[i].Count++
			continue
		}
		index[v] = len(ranked)
		ranked = append(ranked, Count{Value: v, Count: 1})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Count > ranked[j].Count
	})
	if len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked, nil
}

// Distinct returns the number of distinct values of field across items.
func Distinct(items []*domain.LineItem, field domain.Field) int {
	seen := make(map[string]struct{})
	for _, li := range items {
		if li == nil {
			continue
		}
		seen[li.Get(field)] = struct{}{}
	}
	return len(seen)
}

func checkGroupable(field domain.Field) error {
	if field.IsNumeric() {
		return fmt.Errorf("cannot group by numeric field %s", field)
	}
	if _, err := domain.ParseField(string(field)); err != nil {
		return err
	}
	return nil
}
