package repository

import (
	"context"
	"testing"

	"github.com/alexanderramin/jobwbs/internal/domain"
	"github.com/alexanderramin/jobwbs/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJobRepo_CreateAndGet(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteJobRepo(db)
	ctx := context.Background()

	job := &domain.Job{JobNumber: "20725", BranchNumber: "0508", JobName: "SCVWA Filters", SalesforceID: ""}
	require.NoError(t, repo.Create(ctx, job))

	fetched, err := repo.Get(ctx, "20725")
	require.NoError(t, err)
	assert.Equal(t, job, fetched)
}

func TestJobRepo_DuplicateKey(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteJobRepo(db)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &domain.Job{JobNumber: "20725", BranchNumber: "0508", JobName: "First"}))
	err := repo.Create(ctx, &domain.Job{JobNumber: "20725", BranchNumber: "0999", JobName: "Second"})
	require.ErrorIs(t, err, domain.ErrDuplicateKey)
	assert.Contains(t, err.Error(), "20725")

	fetched, err := repo.Get(ctx, "20725")
	require.NoError(t, err)
	assert.Equal(t, "First", fetched.JobName)
	assert.Equal(t, "0508", fetched.BranchNumber)
}

func TestJobRepo_GetNotFound(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteJobRepo(db)

	_, err := repo.Get(context.Background(), "2072")
	assert.ErrorIs(t, err, domain.ErrJobNotFound)
}

func TestJobRepo_ListSortedByJobNumber(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteJobRepo(db)
	ctx := context.Background()

	for _, n := range []string{"20729", "20725", "20727"} {
		require.NoError(t, repo.Create(ctx, testutil.NewTestJob("Job "+n, testutil.WithJobNumber(n))))
	}

	jobs, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, jobs, 3)
	assert.Equal(t, "20725", jobs[0].JobNumber)
	assert.Equal(t, "20727", jobs[1].JobNumber)
	assert.Equal(t, "20729", jobs[2].JobNumber)
}

func TestJobRepo_NullColumnsReadAsEmpty(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteJobRepo(db)
	ctx := context.Background()

	_, err := db.Exec(`INSERT INTO jobs (job_number, branch_number, job_name) VALUES ('20800', '0510', 'Legacy')`)
	require.NoError(t, err)

	fetched, err := repo.Get(ctx, "20800")
	require.NoError(t, err)
	assert.Equal(t, "", fetched.SalesforceID)
}
