package repository

import (
	"context"
	"fmt"
	"testing"

	"github.com/alexanderramin/jobwbs/internal/db"
	"github.com/alexanderramin/jobwbs/internal/domain"
	"github.com/alexanderramin/jobwbs/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newLineItemRepo(t *testing.T) (*SQLiteLineItemRepo, func() int) {
	t.Helper()
	database := testutil.NewTestDB(t)
	repo := NewSQLiteLineItemRepo(database, testutil.NewTestUoW(database))
	count := func() int {
		var n int
		require.NoError(t, database.QueryRow(`SELECT COUNT(*) FROM wbs`).Scan(&n))
		return n
	}
	return repo, count
}

func stripIDs(items []*domain.LineItem) []domain.LineItem {
	out := make([]domain.LineItem, 0, len(items))
	for _, li := range items {
		c := *li
		c.ID = nil
		out = append(out, c)
	}
	return out
}

func TestLineItemRepo_ReplaceAndListByJob(t *testing.T) {
	repo, _ := newLineItemRepo(t)
	ctx := context.Background()

	items := []*domain.LineItem{
		testutil.NewTestLineItem("20725", "Coatings", "1st Fl Coating",
			testutil.WithSubtask("1st Fl Small Pipe"),
			testutil.WithQty(5000, "Linear Ft"),
			testutil.WithClassification(domain.ContractOriginal, domain.FPAServices, domain.FPALabor),
			testutil.WithBudget(20000, 100, 10000)),
		testutil.NewTestLineItem("20725", "Materials", "Surface Prep",
			testutil.WithClassification(domain.ContractChangeOrder, domain.FPAMaterials, domain.FPAOther)),
	}

	n, err := repo.ReplaceForJob(ctx, "20725", items)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	loaded, err := repo.ListByJob(ctx, "20725")
	require.NoError(t, err)
	require.Len(t, loaded, 2)
	for _, li := range loaded {
		require.NotNil(t, li.ID)
	}
	assert.Less(t, *loaded[0].ID, *loaded[1].ID, "items load in insertion order")
	assert.Equal(t, stripIDs(items), stripIDs(loaded))
}

func TestLineItemRepo_ReplaceIsIdempotentAndAssignsFreshIDs(t *testing.T) {
	repo, count := newLineItemRepo(t)
	ctx := context.Background()

	items := testutil.ServiceLines("20725", "A", "B", "C")
	_, err := repo.ReplaceForJob(ctx, "20725", items)
	require.NoError(t, err)
	first, err := repo.ListByJob(ctx, "20725")
	require.NoError(t, err)

	_, err = repo.ReplaceForJob(ctx, "20725", items)
	require.NoError(t, err)
	second, err := repo.ListByJob(ctx, "20725")
	require.NoError(t, err)

	assert.Equal(t, 3, count())
	assert.Equal(t, stripIDs(first), stripIDs(second))
	for i := range first {
		assert.NotEqual(t, *first[i].ID, *second[i].ID, "no item survives a save with its original id")
	}
}

func TestLineItemRepo_ReplaceOnlyTouchesOwnJob(t *testing.T) {
	repo, _ := newLineItemRepo(t)
	ctx := context.Background()

	_, err := repo.ReplaceForJob(ctx, "20725", testutil.ServiceLines("20725", "A", "B"))
	require.NoError(t, err)
	_, err = repo.ReplaceForJob(ctx, "20726", testutil.ServiceLines("20726", "C"))
	require.NoError(t, err)

	_, err = repo.ReplaceForJob(ctx, "20725", nil)
	require.NoError(t, err)

	gone, err := repo.ListByJob(ctx, "20725")
	require.NoError(t, err)
	assert.Empty(t, gone)

	kept, err := repo.ListByJob(ctx, "20726")
	require.NoError(t, err)
	require.Len(t, kept, 1)
	assert.Equal(t, "C", kept[0].ServiceLine)
}

func TestLineItemRepo_ReplaceRollsBackOnInsertFailure(t *testing.T) {
	database := testutil.NewTestDB(t)
	seed := NewSQLiteLineItemRepo(database, testutil.NewTestUoW(database))
	ctx := context.Background()

	_, err := seed.ReplaceForJob(ctx, "20725", testutil.ServiceLines("20725", "Old1", "Old2"))
	require.NoError(t, err)

	// Exec #1 deletes, #2 inserts the first item, #3 fails on the second.
	failUoW := &testutil.FailOnNthExecUoW{
		DB:     database,
		FailOn: 3,
		Err:    fmt.Errorf("injected insert failure"),
	}
	repo := NewSQLiteLineItemRepo(database, failUoW)

	_, err = repo.ReplaceForJob(ctx, "20725", testutil.ServiceLines("20725", "New1", "New2", "New3"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "injected insert failure")
	assert.Contains(t, err.Error(), "20725")

	loaded, err := seed.ListByJob(ctx, "20725")
	require.NoError(t, err)
	require.Len(t, loaded, 2, "prior rows survive a failed replace")
	assert.Equal(t, "Old1", loaded[0].ServiceLine)
	assert.Equal(t, "Old2", loaded[1].ServiceLine)
}

func TestLineItemRepo_ListAllAcrossJobs(t *testing.T) {
	repo, _ := newLineItemRepo(t)
	ctx := context.Background()

	_, err := repo.ReplaceForJob(ctx, "20726", testutil.ServiceLines("20726", "B"))
	require.NoError(t, err)
	_, err = repo.ReplaceForJob(ctx, "20725", testutil.ServiceLines("20725", "A", "A"))
	require.NoError(t, err)

	all, err := repo.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "20726", all[0].JobNumber)
	assert.Equal(t, "20725", all[2].JobNumber)
}

func TestLineItemRepo_NullNumericsReadAsZero(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := NewSQLiteLineItemRepo(database, nil)
	ctx := context.Background()

	_, err := database.Exec(`INSERT INTO wbs (job_number, service_line, wbs_task) VALUES ('20725', 'Coatings', 'Prep')`)
	require.NoError(t, err)

	loaded, err := repo.ListByJob(ctx, "20725")
	require.NoError(t, err)
	require.Len(t, loaded, 1)
	li := loaded[0]
	assert.Equal(t, "", li.WBSSubtask)
	assert.Zero(t, li.Qty)
	assert.Zero(t, li.BudgetedRevenue)
	assert.Zero(t, li.BudgetedHours)
	assert.Zero(t, li.BudgetedCost)
	assert.Equal(t, domain.ContractType(""), li.ContractVsCO)
}

func TestLineItemRepo_StoredEnumOutsideSetIsReported(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := NewSQLiteLineItemRepo(database, nil)

	_, err := database.Exec(`INSERT INTO wbs (job_number, service_line, wbs_task, contract_vs_co) VALUES ('20725', 'Coatings', 'Prep', 'Change Order')`)
	require.NoError(t, err)

	_, err = repo.ListByJob(context.Background(), "20725")
	require.ErrorIs(t, err, domain.ErrInvalidEnumValue)
	assert.Contains(t, err.Error(), "Change Order")
}

func TestLineItemRepo_TxScopedRepoUsesCallerTransaction(t *testing.T) {
	database := testutil.NewTestDB(t)
	uow := testutil.NewTestUoW(database)
	ctx := context.Background()

	err := uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txRepo := NewSQLiteLineItemRepo(tx, nil)
		if _, err := txRepo.ReplaceForJob(ctx, "20725", testutil.ServiceLines("20725", "A")); err != nil {
			return err
		}
		return fmt.Errorf("abort")
	})
	require.Error(t, err)

	repo := NewSQLiteLineItemRepo(database, nil)
	loaded, err := repo.ListByJob(ctx, "20725")
	require.NoError(t, err)
	assert.Empty(t, loaded)
}

func TestLineItemRepo_ReplaceWithoutUoWRequiresTransaction(t *testing.T) {
	database := testutil.NewTestDB(t)
	ctx := context.Background()

	seed := NewSQLiteLineItemRepo(database, testutil.NewTestUoW(database))
	_, err := seed.ReplaceForJob(ctx, "20725", testutil.ServiceLines("20725", "Old"))
	require.NoError(t, err)

	repo := NewSQLiteLineItemRepo(database, nil)
	n, err := repo.ReplaceForJob(ctx, "20725", testutil.ServiceLines("20725", "New1", "New2"))
	require.ErrorIs(t, err, errNoTx)
	assert.Zero(t, n)
	assert.Contains(t, err.Error(), "20725")

	loaded, err := seed.ListByJob(ctx, "20725")
	require.NoError(t, err)
	require.Len(t, loaded, 1)
	assert.Equal(t, "Old", loaded[0].ServiceLine)
}
