package aggregate

import (
	"testing"

	"github.com/alexanderramin/jobwbs/internal/domain"
	"github.com/alexanderramin/jobwbs/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSumTotals_Empty(t *testing.T) {
	assert.Equal(t, Totals{}, SumTotals(nil))
	assert.Equal(t, Totals{}, SumTotals([]*domain.LineItem{}))
}

func TestSumTotals(t *testing.T) {
	items := []*domain.LineItem{
		testutil.NewTestLineItem("20725", "Coatings", "A", testutil.WithBudget(20000, 100, 0)),
		testutil.NewTestLineItem("20725", "Coatings", "B", testutil.WithBudget(10000, 65, 0)),
	}
	assert.Equal(t, Totals{Revenue: 30000, Hours: 165, Cost: 0}, SumTotals(items))
}

func TestSumTotals_NoFloatDrift(t *testing.T) {
	var items []*domain.LineItem
	for i := 0; i < 10; i++ {
		items = append(items, testutil.NewTestLineItem("J", "S", "T", testutil.WithBudget(0.1, 0, 0.2)))
	}
	totals := SumTotals(items)
	assert.Equal(t, 1.0, totals.Revenue)
	assert.Equal(t, 2.0, totals.Cost)
}

func TestCountBy(t *testing.T) {
	items := testutil.ServiceLines("J", "A", "A", "B")
	counts, err := CountBy(items, domain.FieldServiceLine)
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"A": 2, "B": 1}, counts)

	_, err = CountBy(items, domain.FieldBudgetedCost)
	assert.Error(t, err)
}

func TestTopN(t *testing.T) {
	items := testutil.ServiceLines("J", "A", "A", "B", "B", "B", "C")

	top, err := TopN(items, domain.FieldServiceLine, 2)
	require.NoError(t, err)
	assert.Equal(t, []Count{{"B", 3}, {"A", 2}}, top)
}

func TestTopN_TiesKeepFirstSeenOrder(t *testing.T) {
	items := testutil.ServiceLines("J", "C", "A", "B", "A", "C", "B")

	top, err := TopN(items, domain.FieldServiceLine, 3)
	require.NoError(t, err)
	assert.Equal(t, []Count{{"C", 2}, {"A", 2}, {"B", 2}}, top)
}

func TestTopN_ZeroIsEmpty(t *testing.T) {
	items := testutil.ServiceLines("J", "A", "A", "B", "B", "B", "C")

	top, err := TopN(items, domain.FieldServiceLine, 0)
	require.NoError(t, err)
	assert.NotNil(t, top)
	assert.Empty(t, top)

	s := SummarizeAll(items, 0)
	assert.Empty(t, s.TopServiceLines)
	assert.Empty(t, s.TopTasks)
	assert.Equal(t, 3, s.ServiceLines, "distinct counts ignore n")
}

func TestTopN_FewerValuesThanN(t *testing.T) {
	top, err := TopN(testutil.ServiceLines("J", "A"), domain.FieldWBSTask, 5)
	require.NoError(t, err)
	assert.Equal(t, []Count{{"Task 1", 1}}, top)
}

func TestSummarizeAll(t *testing.T) {
	items := append(testutil.ServiceLines("20725", "Coatings", "Coatings", "Materials"),
		testutil.ServiceLines("20726", "Coatings")...)

	s := SummarizeAll(items, 5)
	assert.Equal(t, 2, s.JobsWithWBS)
	assert.Equal(t, 4, s.Items)
	assert.Equal(t, 2, s.ServiceLines)
	assert.Equal(t, 3, s.Tasks, "Task 1..Task 3 across both jobs")
	assert.Equal(t, []Count{{"Coatings", 3}, {"Materials", 1}}, s.TopServiceLines)
}

func TestSummarizeJob(t *testing.T) {
	items := testutil.ServiceLines("20725", "Coatings", "Coatings")
	s := SummarizeJob(items)
	assert.Equal(t, JobSummary{Items: 2, ServiceLines: 1, Tasks: 2}, s)
}
