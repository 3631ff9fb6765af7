// Package report narrows line items for display and converts them to and
// from CSV and XLSX.
package report

import (
	"sort"

	"github.com/alexanderramin/jobwbs/internal/domain"
)

// All is the filter sentinel that matches every value.
const All = "All"

// Filter selects line items by service line and task. Empty fields behave
// like All.
type Filter struct {
	ServiceLine string
	Task        string
}

// IsAll reports whether the filter matches everything.
func (f Filter) IsAll() bool {
	return isAll(f.ServiceLine) && isAll(f.Task)
}

// Matches reports whether li passes both predicates.
func (f Filter) Matches(li *domain.LineItem) bool {
	if !isAll(f.ServiceLine) && li.ServiceLine != f.ServiceLine {
		return false
	}
	if !isAll(f.Task) && li.WBSTask != f.Task {
		return false
	}
	return true
}

// Apply returns the items matching both predicates in their original order.
func Apply(items []*domain.LineItem, serviceLine, task string) []*domain.LineItem {
	f := Filter{ServiceLine: serviceLine, Task: task}
	out := make([]*domain.LineItem, 0, len(items))
	for _, li := range items {
		if f.Matches(li) {
			out = append(out, li)
		}
	}
	return out
}

// AvailableServiceLines returns the sorted distinct service lines. Blank
// values are omitted since an empty selection means All.
func AvailableServiceLines(items []*domain.LineItem) []string {
	return distinctSorted(items, func(li *domain.LineItem) (string, bool) {
		return li.ServiceLine, true
	})
}

// AvailableTasks returns the sorted distinct tasks, restricted to
// serviceLine unless it is All.
func AvailableTasks(items []*domain.LineItem, serviceLine string) []string {
	return distinctSorted(items, func(li *domain.LineItem) (string, bool) {
		return li.WBSTask, isAll(serviceLine) || li.ServiceLine == serviceLine
	})
}

// WithAll prepends the All sentinel, producing a selection option list.
func WithAll(options []string) []string {
	return append([]string{All}, options...)
}

// SortForDisplay returns a copy ordered by service line, task, subtask.
// Ties keep id order.
func SortForDisplay(items []*domain.LineItem) []*domain.LineItem {
	out := make([]*domain.LineItem, len(items))
	copy(out, items)
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.ServiceLine != b.ServiceLine {
			return a.ServiceLine < b.ServiceLine
		}
		if a.WBSTask != b.WBSTask {
			return a.WBSTask < b.WBSTask
		}
		return a.WBSSubtask < b.WBSSubtask
	})
	return out
}

func isAll(v string) bool {
	return v == "" || v == All
}

func distinctSorted(items []*domain.LineItem, pick func(*domain.LineItem) (string, bool)) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, li := range items {
		v, ok := pick(li)
		if !ok || v == "" {
			continue
		}
		if _, dup := seen[v]; dup {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}
