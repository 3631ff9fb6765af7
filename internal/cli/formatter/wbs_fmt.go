package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/jobwbs/internal/aggregate"
	"github.com/alexanderramin/jobwbs/internal/domain"
)

var wbsHeaders = []string{
	"#", "SERVICE LINE", "TASK", "SUBTASK", "QTY", "UOM",
	"CONTRACT", "FPA TYPE", "FPA SUBTYPE", "REVENUE", "HOURS", "COST",
}

var wbsAligns = []Align{
	AlignRight, AlignLeft, AlignLeft, AlignLeft, AlignRight, AlignLeft,
	AlignLeft, AlignLeft, AlignLeft, AlignRight, AlignRight, AlignRight,
}

// Page describes one page of a longer listing. Number is 1-based.
type Page struct {
	Number int
	Size   int
}

// Bounds returns the half-open item range of the page within total items,
// clamping the page number into range.
func (p Page) Bounds(total int) (start, end, number, pages int) {
	size := p.Size
	if size <= 0 {
		size = total
	}
	if size == 0 {
		return 0, 0, 1, 1
	}
	pages = (total + size - 1) / size
	if pages == 0 {
		pages = 1
	}
	number = p.Number
	if number < 1 {
		number = 1
	}
	if number > pages {
		number = pages
	}
	start = (number - 1) * size
	end = start + size
	if end > total {
		end = total
	}
	return start, end, number, pages
}

// FormatLineItems renders a page of line items. Row numbers are 1-based
// positions in items, so they can be passed back to wbs set and wbs rm.
func FormatLineItems(items []*domain.LineItem, page Page) string {
	if len(items) == 0 {
		return Dim("No WBS line items.")
	}

	start, end, number, pages := page.Bounds(len(items))
	rows := make([][]string, 0, end-start)
	for i := start; i < end; i++ {
		li := items[i]
		rows = append(rows, []string{
			Dim(fmt.Sprint(i + 1)),
			Text(li.ServiceLine),
			Text(li.WBSTask),
			Text(li.WBSSubtask),
			Quantity(li.Qty),
			Text(li.UnitOfMeasure),
			ContractBadge(string(li.ContractVsCO)),
			Text(string(li.FPAType)),
			Text(string(li.FPASubtype)),
			Money(li.BudgetedRevenue),
			Hours(li.BudgetedHours),
			Money(li.BudgetedCost),
		})
	}

	out := RenderTable(wbsHeaders, rows, wbsAligns...)
	if pages > 1 {
		out += Dim(fmt.Sprintf("Showing %d-%d of %d (page %d/%d)", start+1, end, len(items), number, pages)) + "\n"
	}
	return out
}

// FormatTotals renders revenue, hours and cost as metric cards.
func FormatTotals(t aggregate.Totals) string {
	return Cards(
		Card("BUDGETED REVENUE", Money(t.Revenue)),
		Card("BUDGETED HOURS", Hours(t.Hours)),
		Card("BUDGETED COST", Money(t.Cost)),
	)
}

// ReportData is everything the report view shows for one job.
type ReportData struct {
	Job         *domain.Job
	ServiceLine string
	Task        string
	Items       []*domain.LineItem
	Summary     aggregate.JobSummary
	Page        Page
}

// FormatReport renders the filtered WBS report for a job.
func FormatReport(d ReportData) string {
	var b strings.Builder
	b.WriteString(Bold(d.Job.Label()) + "\n")
	fmt.Fprintf(&b, "%s %s   %s %s\n\n",
		StyleDim.Render("Service line:"), d.ServiceLine,
		StyleDim.Render("Task:"), d.Task)
	b.WriteString(FormatLineItems(d.Items, d.Page))
	b.WriteString("\n")
	b.WriteString(Cards(
		Card("ITEMS", fmt.Sprint(d.Summary.Items)),
		Card("SERVICE LINES", fmt.Sprint(d.Summary.ServiceLines)),
		Card("TASKS", fmt.Sprint(d.Summary.Tasks)),
	))
	b.WriteString("\n")
	b.WriteString(FormatTotals(d.Summary.Totals))
	return RenderBox("WBS Report", b.String())
}

// FormatGlobalSummary renders cross-job statistics with the most frequent
// service lines and tasks.
func FormatGlobalSummary(jobsRegistered int, s aggregate.GlobalSummary) string {
	var b strings.Builder
	b.WriteString(Cards(
		Card("JOBS", fmt.Sprint(jobsRegistered)),
		Card("JOBS WITH WBS", fmt.Sprint(s.JobsWithWBS)),
		Card("WBS ITEMS", fmt.Sprint(s.Items)),
		Card("SERVICE LINES", fmt.Sprint(s.ServiceLines)),
		Card("TASKS", fmt.Sprint(s.Tasks)),
	))
	b.WriteString("\n")
	b.WriteString(FormatTotals(s.Totals))
	b.WriteString("\n\n")
	b.WriteString(Header("Top service lines") + "\n")
	b.WriteString(formatCounts(s.TopServiceLines, s.Items))
	b.WriteString("\n")
	b.WriteString(Header("Top tasks") + "\n")
	b.WriteString(formatCounts(s.TopTasks, s.Items))
	return RenderBox("Summary", b.String())
}

// formatCounts ranks counts with each one's share of total items.
func formatCounts(counts []aggregate.Count, total int) string {
	if len(counts) == 0 {
		return Dim("None") + "\n"
	}
	rows := make([][]string, 0, len(counts))
	for _, c := range counts {
		rows = append(rows, []string{
			Text(c.Value),
			fmt.Sprint(c.Count),
			ShareBar(float64(c.Count), float64(total), 12),
		})
	}
	return RenderTable([]string{"VALUE", "ITEMS", "SHARE"}, rows, AlignLeft, AlignRight, AlignLeft)
}
