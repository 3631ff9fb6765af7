package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/jobwbs/internal/aggregate"
	"github.com/alexanderramin/jobwbs/internal/domain"
)

// FormatJobList renders the job registry inside a bordered box.
func FormatJobList(jobs []*domain.Job) string {
	headers := []string{"JOB", "BRANCH", "NAME", "SALESFORCE ID"}
	rows := make([][]string, 0, len(jobs))
	for _, j := range jobs {
		rows = append(rows, []string{
			Bold(j.JobNumber),
			j.BranchNumber,
			j.JobName,
			salesforceID(j.SalesforceID),
		})
	}
	return RenderBox("Jobs", RenderTable(headers, rows))
}

// FormatJobCard renders one job with its WBS summary metrics.
func FormatJobCard(j *domain.Job, s aggregate.JobSummary) string {
	var b strings.Builder
	b.WriteString(Bold(j.Label()) + "\n\n")
	fmt.Fprintf(&b, "%s  %s\n", StyleDim.Render("JOB NUMBER   "), j.JobNumber)
	fmt.Fprintf(&b, "%s  %s\n", StyleDim.Render("BRANCH       "), j.BranchNumber)
	fmt.Fprintf(&b, "%s  %s\n", StyleDim.Render("JOB NAME     "), j.JobName)
	fmt.Fprintf(&b, "%s  %s\n\n", StyleDim.Render("SALESFORCE ID"), salesforceID(j.SalesforceID))
	b.WriteString(Cards(
		Card("WBS ITEMS", fmt.Sprint(s.Items)),
		Card("SERVICE LINES", fmt.Sprint(s.ServiceLines)),
		Card("TASKS", fmt.Sprint(s.Tasks)),
	))
	b.WriteString("\n")
	b.WriteString(FormatTotals(s.Totals))
	return RenderBox("Job", b.String())
}

func salesforceID(id string) string {
	if strings.TrimSpace(id) == "" {
		return Dim("N/A")
	}
	return id
}
