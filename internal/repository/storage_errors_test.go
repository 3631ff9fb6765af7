package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/alexanderramin/jobwbs/internal/db"
	"github.com/alexanderramin/jobwbs/internal/domain"
	"github.com/alexanderramin/jobwbs/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupMockDB(t *testing.T) (sqlmock.Sqlmock, *SQLiteLineItemRepo, *SQLiteJobRepo) {
	t.Helper()
	conn, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	items := NewSQLiteLineItemRepo(conn, db.NewSQLiteUnitOfWork(conn))
	jobs := NewSQLiteJobRepo(conn)
	return mock, items, jobs
}

func TestStorage_DiskErrorIsUnavailable(t *testing.T) {
	mock, items, _ := setupMockDB(t)

	mock.ExpectQuery(`SELECT id, job_number`).
		WithArgs("20725").
		WillReturnError(errors.New("disk I/O error"))

	_, err := items.ListByJob(context.Background(), "20725")
	require.ErrorIs(t, err, domain.ErrStorageUnavailable)
	assert.Contains(t, err.Error(), "20725")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStorage_ClosedDatabaseIsUnavailable(t *testing.T) {
	conn, _, err := sqlmock.New()
	require.NoError(t, err)
	jobs := NewSQLiteJobRepo(conn)
	_ = conn.Close()

	_, err = jobs.List(context.Background())
	assert.ErrorIs(t, err, domain.ErrStorageUnavailable)
}

func TestStorage_MissingTableReadsAsEmpty(t *testing.T) {
	mock, items, jobs := setupMockDB(t)

	mock.ExpectQuery(`SELECT id, job_number`).WillReturnError(errors.New("SQL logic error: no such table: wbs (1)"))
	mock.ExpectQuery(`SELECT job_number`).WillReturnError(errors.New("SQL logic error: no such table: jobs (1)"))

	all, err := items.ListAll(context.Background())
	require.NoError(t, err)
	assert.Empty(t, all)

	list, err := jobs.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestStorage_MissingColumnIsSchemaMismatch(t *testing.T) {
	mock, items, _ := setupMockDB(t)

	mock.ExpectQuery(`SELECT id, job_number`).WillReturnError(errors.New("SQL logic error: no such column: qty (1)"))

	_, err := items.ListAll(context.Background())
	require.ErrorIs(t, err, domain.ErrSchemaMismatch)
	assert.NotErrorIs(t, err, domain.ErrStorageUnavailable)
}

func TestStorage_ReplaceRollsBackWhenInsertFails(t *testing.T) {
	mock, items, _ := setupMockDB(t)

	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM wbs`).WithArgs("20725").WillReturnResult(sqlmock.NewResult(0, 4))
	mock.ExpectExec(`INSERT INTO wbs`).WillReturnResult(sqlmock.NewResult(10, 1))
	mock.ExpectExec(`INSERT INTO wbs`).WillReturnError(errors.New("database is locked"))
	mock.ExpectRollback()

	_, err := items.ReplaceForJob(context.Background(), "20725", testutil.ServiceLines("20725", "A", "B"))
	require.ErrorIs(t, err, domain.ErrStorageUnavailable)
	assert.Contains(t, err.Error(), "inserting item 1")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStorage_ReplaceCommitFailureIsUnavailable(t *testing.T) {
	mock, items, _ := setupMockDB(t)

	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM wbs`).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(`INSERT INTO wbs`).WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit().WillReturnError(errors.New("commit refused"))

	_, err := items.ReplaceForJob(context.Background(), "20725", testutil.ServiceLines("20725", "A"))
	assert.ErrorIs(t, err, domain.ErrStorageUnavailable)
}
