package aggregate

import "github.com/alexanderramin/jobwbs/internal/domain"

// JobSummary describes the line items of one job.
type JobSummary struct {
	Items        int
	ServiceLines int
	Tasks        int
	Totals       Totals
}

// SummarizeJob computes the item count, distinct service lines and tasks,
// and budget totals of one job's items.
func SummarizeJob(items []*domain.LineItem) JobSummary {
	return JobSummary{
		Items:        len(items),
		ServiceLines: Distinct(items, domain.FieldServiceLine),
		Tasks:        Distinct(items, domain.FieldWBSTask),
		Totals:       SumTotals(items),
	}
}

// GlobalSummary describes line items across every job.
type GlobalSummary struct {
	JobsWithWBS     int
	Items           int
	ServiceLines    int
	Tasks           int
	Totals          Totals
	TopServiceLines []Count
	TopTasks        []Count
}

// SummarizeAll computes the cross-job summary with the top n service lines
// and tasks.
func SummarizeAll(items []*domain.LineItem, n int) GlobalSummary {
	jobs := make(map[string]struct{})
	for _, li := range items {
		if li != nil {
			jobs[li.JobNumber] = struct{}{}
		}
	}

	// Both fields are groupable text fields, so TopN cannot fail here.
	topLines, _ := TopN(items, domain.FieldServiceLine, n)
	topTasks, _ := TopN(items, domain.FieldWBSTask, n)

	return GlobalSummary{
		JobsWithWBS:     len(jobs),
		Items:           len(items),
		ServiceLines:    Distinct(items, domain.FieldServiceLine),
		Tasks:           Distinct(items, domain.FieldWBSTask),
		Totals:          SumTotals(items),
		TopServiceLines: topLines,
		TopTasks:        topTasks,
	}
}
