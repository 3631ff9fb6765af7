package repository

import (
	"context"

	"github.com/alexanderramin/jobwbs/internal/domain"
)

// JobRepo persists registered jobs.
type JobRepo interface {
	Create(ctx context.Context, j *domain.Job) error
	Get(ctx context.Context, jobNumber string) (*domain.Job, error)
	List(ctx context.Context) ([]*domain.Job, error)
}

// LineItemRepo persists WBS line items with replace-per-job semantics.
type LineItemRepo interface {
	// ListByJob returns a job's items in insertion (id) order.
	ListByJob(ctx context.Context, jobNumber string) ([]*domain.LineItem, error)
	// ReplaceForJob atomically deletes every item of jobNumber and inserts
	// items with fresh ids. It returns the number of rows written.
	ReplaceForJob(ctx context.Context, jobNumber string, items []*domain.LineItem) (int, error)
	// ListAll returns every item across jobs in id order.
	ListAll(ctx context.Context) ([]*domain.LineItem, error)
}
