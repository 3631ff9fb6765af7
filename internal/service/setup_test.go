package service

import (
	"context"
	"database/sql"
	"testing"

	"github.com/alexanderramin/jobwbs/internal/db"
	"github.com/alexanderramin/jobwbs/internal/domain"
	"github.com/alexanderramin/jobwbs/internal/repository"
	"github.com/alexanderramin/jobwbs/internal/testutil"
	"github.com/stretchr/testify/require"
)

func setupRepos(t *testing.T) (*sql.DB, repository.JobRepo, repository.LineItemRepo, db.UnitOfWork) {
	database := testutil.NewTestDB(t)
	uow := testutil.NewTestUoW(database)
	return database,
		repository.NewSQLiteJobRepo(database),
		repository.NewSQLiteLineItemRepo(database, uow),
		uow
}

func registerJob(t *testing.T, jobs repository.JobRepo, j *domain.Job) *domain.Job {
	t.Helper()
	require.NoError(t, NewJobService(jobs).Register(context.Background(), j))
	return j
}

type recordingObserver struct {
	events []UseCaseEvent
}

func (r *recordingObserver) ObserveUseCase(_ context.Context, e UseCaseEvent) {
	r.events = append(r.events, e)
}

func (r *recordingObserver) last() UseCaseEvent {
	return r.events[len(r.events)-1]
}
