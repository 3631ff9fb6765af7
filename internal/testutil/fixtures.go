package testutil

import (
	"fmt"
	"sync/atomic"

	"github.com/alexanderramin/jobwbs/internal/domain"
)

var testJobCounter atomic.Int64

// Job options
type JobOption func(*domain.Job)

func WithJobNumber(n string) JobOption {
	return func(j *domain.Job) {
		j.JobNumber = n
	}
}

func WithBranch(b string) JobOption {
	return func(j *domain.Job) {
		j.BranchNumber = b
	}
}

func WithSalesforceID(id string) JobOption {
	return func(j *domain.Job) {
		j.SalesforceID = id
	}
}

// NewTestJob returns a valid job with a unique job number.
func NewTestJob(name string, opts ...JobOption) *domain.Job {
	n := testJobCounter.Add(1)
	j := &domain.Job{
		JobNumber:    fmt.Sprintf("T%05d", n),
		BranchNumber: "0508",
		JobName:      name,
	}
	for _, opt := range opts {
		opt(j)
	}
	return j
}

// LineItem options
type LineItemOption func(*domain.LineItem)

func WithSubtask(s string) LineItemOption {
	return func(li *domain.LineItem) {
		li.WBSSubtask = s
	}
}

func WithQty(q float64, uom string) LineItemOption {
	return func(li *domain.LineItem) {
		li.Qty = q
		li.UnitOfMeasure = uom
	}
}

func WithBudget(revenue, hours, cost float64) LineItemOption {
	return func(li *domain.LineItem) {
		li.BudgetedRevenue = revenue
		li.BudgetedHours = hours
		li.BudgetedCost = cost
	}
}

func WithClassification(c domain.ContractType, t domain.FPAType, st domain.FPASubtype) LineItemOption {
	return func(li *domain.LineItem) {
		li.ContractVsCO = c
		li.FPAType = t
		li.FPASubtype = st
	}
}

// NewTestLineItem returns an unsaved item for jobNumber.
func NewTestLineItem(jobNumber, serviceLine, task string, opts ...LineItemOption) *domain.LineItem {
	li := &domain.LineItem{
		JobNumber:   jobNumber,
		ServiceLine: serviceLine,
		WBSTask:     task,
	}
	for _, opt := range opts {
		opt(li)
	}
	return li
}

// ServiceLines builds one item per entry, each with the given service line
// and a task derived from its position.
func ServiceLines(jobNumber string, lines ...string) []*domain.LineItem {
	items := make([]*domain.LineItem, 0, len(lines))
	for i, sl := range lines {
		items = append(items, NewTestLineItem(jobNumber, sl, fmt.Sprintf("Task %d", i+1)))
	}
	return items
}
