package report

import (
	"bytes"
	"strings"
	"testing"

	"github.com/alexanderramin/jobwbs/internal/domain"
	"github.com/alexanderramin/jobwbs/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadCSV_DisplayHeaders(t *testing.T) {
	in := "Service Line,WBS Task,QTY,Budgeted Revenue,Notes\n" +
		"Coatings,Surface Prep,\"1,200\",20000,ignored\n" +
		"Coatings,Application,,10000\n"

	rows, err := ReadCSV(strings.NewReader(in))
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, 2, rows[0].Line)
	assert.Equal(t, map[domain.Field]string{
		domain.FieldServiceLine:     "Coatings",
		domain.FieldWBSTask:         "Surface Prep",
		domain.FieldQty:             "1,200",
		domain.FieldBudgetedRevenue: "20000",
	}, rows[0].Values)
	assert.Equal(t, 3, rows[1].Line)
	assert.Equal(t, "10000", rows[1].Values[domain.FieldBudgetedRevenue])
}

func TestReadCSV_ColumnNameHeaders(t *testing.T) {
	in := "service_line,wbs_task,fpa_type\nCoatings,Prep,Services\n"
	rows, err := ReadCSV(strings.NewReader(in))
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Services", rows[0].Values[domain.FieldFPAType])
}

func TestReadCSV_RequiresKeyHeaders(t *testing.T) {
	_, err := ReadCSV(strings.NewReader("Service Line,QTY\nCoatings,1\n"))
	assert.ErrorContains(t, err, "WBS Task")
}

func TestReadCSV_Empty(t *testing.T) {
	rows, err := ReadCSV(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestReadFile_UnsupportedExtension(t *testing.T) {
	_, err := ReadFile("budget.json", strings.NewReader("{}"))
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestCSVRoundTrip(t *testing.T) {
	items := []*domain.LineItem{
		testutil.NewTestLineItem("20725", "Coatings", "Surface Prep",
			testutil.WithQty(12.5, "SF"),
			testutil.WithClassification(domain.ContractChangeOrder, domain.FPAMaterials, domain.FPAOther),
			testutil.WithBudget(20000, 100, 7500.25)),
	}

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, items))

	rows, err := ReadFile("wbs.csv", &buf)
	require.NoError(t, err)
	require.Len(t, rows, 1)

	li := domain.NewLineItem("20725")
	for f, v := range rows[0].Values {
		require.NoError(t, li.Set(f, v))
	}
	assert.Equal(t, items[0], li)
}

func TestXLSXRoundTrip(t *testing.T) {
	items := []*domain.LineItem{
		testutil.NewTestLineItem("20725", "Coatings", "Surface Prep",
			testutil.WithQty(12.5, "SF"),
			testutil.WithClassification(domain.ContractOriginal, domain.FPAServices, domain.FPALabor),
			testutil.WithBudget(20000, 100, 0)),
		testutil.NewTestLineItem("20725", "Insulation", "Pipe", testutil.WithSubtask("Elbows")),
	}

	var buf bytes.Buffer
	require.NoError(t, WriteXLSX(&buf, items))

	rows, err := ReadFile("wbs_data_20725_All_All.xlsx", &buf)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, "Coatings", rows[0].Values[domain.FieldServiceLine])
	assert.Equal(t, "12.5", rows[0].Values[domain.FieldQty])
	assert.Equal(t, "20000", rows[0].Values[domain.FieldBudgetedRevenue])
	assert.Equal(t, "Labor", rows[0].Values[domain.FieldFPASubtype])
	assert.Equal(t, "Elbows", rows[1].Values[domain.FieldWBSSubtask])
}
