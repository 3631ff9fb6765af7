package service

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/jobwbs/internal/aggregate"
	"github.com/alexanderramin/jobwbs/internal/contract"
	"github.com/alexanderramin/jobwbs/internal/report"
	"github.com/alexanderramin/jobwbs/internal/repository"
)

type reportService struct {
	jobs     repository.JobRepo
	items    repository.LineItemRepo
	observer UseCaseObserver
}

func NewReportService(jobs repository.JobRepo, items repository.LineItemRepo, observers ...UseCaseObserver) ReportService {
	return &reportService{
		jobs:     jobs,
		items:    items,
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *reportService) JobReport(ctx context.Context, req contract.JobReportRequest) (resp *contract.JobReportResponse, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{
		"job_number":   req.JobNumber,
		"service_line": req.ServiceLine,
		"task":         req.Task,
	}
	defer func() {
		if resp != nil {
			fields["items"] = len(resp.Items)
		}
		s.observer.ObserveUseCase(ctx, UseCaseEvent{
			Name:      "job-report",
			StartedAt: startedAt,
			Duration:  time.Since(startedAt),
			Success:   err == nil,
			Err:       err,
			Fields:    fields,
		})
	}()

	job, err := s.jobs.Get(ctx, req.JobNumber)
	if err != nil {
		return nil, err
	}
	items, err := s.items.ListByJob(ctx, req.JobNumber)
	if err != nil {
		return nil, err
	}

	serviceLine := orAll(req.ServiceLine)
	task := orAll(req.Task)
	filtered := report.SortForDisplay(report.Apply(items, serviceLine, task))

	return &contract.JobReportResponse{
		Job:                job,
		Items:              filtered,
		Summary:            aggregate.SummarizeJob(filtered),
		ServiceLineOptions: report.WithAll(report.AvailableServiceLines(items)),
		TaskOptions:        report.WithAll(report.AvailableTasks(items, serviceLine)),
		ServiceLine:        serviceLine,
		Task:               task,
	}, nil
}

func (s *reportService) GlobalSummary(ctx context.Context, req contract.GlobalSummaryRequest) (resp *contract.GlobalSummaryResponse, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"top_n": req.TopN}
	defer func() {
		s.observer.ObserveUseCase(ctx, UseCaseEvent{
			Name:      "global-summary",
			StartedAt: startedAt,
			Duration:  time.Since(startedAt),
			Success:   err == nil,
			Err:       err,
			Fields:    fields,
		})
	}()

	if req.TopN < 0 {
		return nil, fmt.Errorf("top must not be negative, got %d", req.TopN)
	}

	jobs, err := s.jobs.List(ctx)
	if err != nil {
		return nil, err
	}
	items, err := s.items.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	fields["items"] = len(items)

	return &contract.GlobalSummaryResponse{
		JobsRegistered: len(jobs),
		Summary:        aggregate.SummarizeAll(items, req.TopN),
	}, nil
}

func orAll(v string) string {
	if v == "" {
		return contract.AllFilter
	}
	return v
}
