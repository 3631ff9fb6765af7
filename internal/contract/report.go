package contract

import "github.com/alexanderramin/jobwbs/internal/app"

const AllFilter = app.AllFilter

type JobReportRequest = app.JobReportRequest

func NewJobReportRequest(jobNumber string) JobReportRequest {
	return app.NewJobReportRequest(jobNumber)
}

type JobReportResponse = app.JobReportResponse

type GlobalSummaryRequest = app.GlobalSummaryRequest

func NewGlobalSummaryRequest() GlobalSummaryRequest {
	return app.NewGlobalSummaryRequest()
}

type GlobalSummaryResponse = app.GlobalSummaryResponse
