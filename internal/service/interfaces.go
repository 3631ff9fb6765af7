package service

import (
	"context"

	"github.com/alexanderramin/jobwbs/internal/contract"
	"github.com/alexanderramin/jobwbs/internal/domain"
)

// JobService is the job registry. Jobs are registered once and never
// updated or deleted.
type JobService interface {
	Register(ctx context.Context, j *domain.Job) error
	Get(ctx context.Context, jobNumber string) (*domain.Job, error)
	List(ctx context.Context) ([]*domain.Job, error)
}

type ReportService interface {
	JobReport(ctx context.Context, req contract.JobReportRequest) (*contract.JobReportResponse, error)
	GlobalSummary(ctx context.Context, req contract.GlobalSummaryRequest) (*contract.GlobalSummaryResponse, error)
}

type SeedService interface {
	Seed(ctx context.Context) (*SeedResult, error)
}

// SaveResult holds the outcome of an edit session save.
type SaveResult struct {
	Written int
	Skipped int
}

// SeedResult holds the outcome of sample data seeding.
type SeedResult struct {
	JobsCreated  int
	JobsSkipped  []string
	ItemsWritten int
}
