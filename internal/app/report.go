package app

import (
	"github.com/alexanderramin/jobwbs/internal/aggregate"
	"github.com/alexanderramin/jobwbs/internal/domain"
)

// AllFilter matches every service line or task.
const AllFilter = "All"

type JobReportRequest struct {
	JobNumber   string
	ServiceLine string
	Task        string
}

func NewJobReportRequest(jobNumber string) JobReportRequest {
	return JobReportRequest{
		JobNumber:   jobNumber,
		ServiceLine: AllFilter,
		Task:        AllFilter,
	}
}

type JobReportResponse struct {
	Job *domain.Job
	// Items are the filtered items, ordered by service line, task, subtask.
	Items []*domain.LineItem
	// Summary covers the filtered items.
	Summary aggregate.JobSummary
	// ServiceLineOptions and TaskOptions start with AllFilter. TaskOptions
	// is narrowed to the requested service line.
	ServiceLineOptions []string
	TaskOptions        []string
	ServiceLine        string
	Task               string
}

type GlobalSummaryRequest struct {
	TopN int
}

func NewGlobalSummaryRequest() GlobalSummaryRequest {
	return GlobalSummaryRequest{TopN: 5}
}

type GlobalSummaryResponse struct {
	JobsRegistered int
	Summary        aggregate.GlobalSummary
}
