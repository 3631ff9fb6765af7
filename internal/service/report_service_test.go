package service

import (
	"context"
	"testing"

	"github.com/alexanderramin/jobwbs/internal/aggregate"
	"github.com/alexanderramin/jobwbs/internal/contract"
	"github.com/alexanderramin/jobwbs/internal/domain"
	"github.com/alexanderramin/jobwbs/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReportService_JobReportAll(t *testing.T) {
	_, jobs, items, uow := setupRepos(t)
	ctx := context.Background()
	_, err := NewSeedService(uow).Seed(ctx)
	require.NoError(t, err)

	svc := NewReportService(jobs, items)
	resp, err := svc.JobReport(ctx, contract.NewJobReportRequest("20725"))
	require.NoError(t, err)

	assert.Equal(t, "SCVWA Filters", resp.Job.JobName)
	assert.Equal(t, aggregate.JobSummary{
		Items: 5, ServiceLines: 3, Tasks: 5,
		Totals: aggregate.Totals{Revenue: 58000, Hours: 305, Cost: 31500},
	}, resp.Summary)
	assert.Equal(t, []string{contract.AllFilter, "Coatings", "Equipment", "Materials"}, resp.ServiceLineOptions)
	assert.Len(t, resp.TaskOptions, 6)

	require.Len(t, resp.Items, 5)
	assert.Equal(t, "1st Fl Coating", resp.Items[0].WBSTask)
	assert.Equal(t, "Equipment", resp.Items[3].ServiceLine)
	assert.Equal(t, "Materials", resp.Items[4].ServiceLine)
}

func TestReportService_JobReportFiltered(t *testing.T) {
	_, jobs, items, uow := setupRepos(t)
	ctx := context.Background()
	_, err := NewSeedService(uow).Seed(ctx)
	require.NoError(t, err)

	svc := NewReportService(jobs, items)
	req := contract.NewJobReportRequest("20725")
	req.ServiceLine = "Coatings"
	resp, err := svc.JobReport(ctx, req)
	require.NoError(t, err)

	require.Len(t, resp.Items, 3)
	for _, li := range resp.Items {
		assert.Equal(t, "Coatings", li.ServiceLine)
	}
	assert.Equal(t, []string{contract.AllFilter, "1st Fl Coating", "2nd Fl Coating", "3rd Fl Coating"}, resp.TaskOptions)
	assert.Equal(t, aggregate.Totals{Revenue: 45000, Hours: 245, Cost: 24500}, resp.Summary.Totals)

	req.Task = "2nd Fl Coating"
	resp, err = svc.JobReport(ctx, req)
	require.NoError(t, err)
	require.Len(t, resp.Items, 1)
	assert.Equal(t, domain.ContractChangeOrder, resp.Items[0].ContractVsCO)
}

func TestReportService_JobReportEmptyJob(t *testing.T) {
	_, jobs, items, _ := setupRepos(t)
	ctx := context.Background()
	job := registerJob(t, jobs, testutil.NewTestJob("Empty"))

	resp, err := NewReportService(jobs, items).JobReport(ctx, contract.JobReportRequest{JobNumber: job.JobNumber})
	require.NoError(t, err)
	assert.Empty(t, resp.Items)
	assert.Equal(t, aggregate.Totals{}, resp.Summary.Totals)
	assert.Equal(t, contract.AllFilter, resp.ServiceLine)
	assert.Equal(t, []string{contract.AllFilter}, resp.ServiceLineOptions)
}

func TestReportService_JobReportUnknownJob(t *testing.T) {
	_, jobs, items, _ := setupRepos(t)
	obs := &recordingObserver{}
	_, err := NewReportService(jobs, items, obs).JobReport(context.Background(), contract.NewJobReportRequest("nope"))
	assert.ErrorIs(t, err, domain.ErrJobNotFound)
	assert.Equal(t, "job-report", obs.last().Name)
	assert.False(t, obs.last().Success)
}

func TestReportService_GlobalSummary(t *testing.T) {
	_, jobs, items, uow := setupRepos(t)
	ctx := context.Background()
	_, err := NewSeedService(uow).Seed(ctx)
	require.NoError(t, err)

	resp, err := NewReportService(jobs, items).GlobalSummary(ctx, contract.GlobalSummaryRequest{TopN: 2})
	require.NoError(t, err)

	assert.Equal(t, 5, resp.JobsRegistered)
	assert.Equal(t, 2, resp.Summary.JobsWithWBS)
	assert.Equal(t, 8, resp.Summary.Items)
	assert.Equal(t, 3, resp.Summary.ServiceLines)
	assert.Equal(t, []aggregate.Count{{Value: "Coatings", Count: 5}, {Value: "Materials", Count: 2}}, resp.Summary.TopServiceLines)
	assert.Len(t, resp.Summary.TopTasks, 2)
	assert.Equal(t, 98000.0, resp.Summary.Totals.Revenue)
}

func TestReportService_GlobalSummaryEmptyStore(t *testing.T) {
	_, jobs, items, _ := setupRepos(t)
	resp, err := NewReportService(jobs, items).GlobalSummary(context.Background(), contract.NewGlobalSummaryRequest())
	require.NoError(t, err)
	assert.Equal(t, 0, resp.JobsRegistered)
	assert.Equal(t, aggregate.GlobalSummary{}, resp.Summary)
}

func TestReportService_GlobalSummaryNegativeTop(t *testing.T) {
	_, jobs, items, _ := setupRepos(t)
	_, err := NewReportService(jobs, items).GlobalSummary(context.Background(), contract.GlobalSummaryRequest{TopN: -1})
	assert.Error(t, err)
}
