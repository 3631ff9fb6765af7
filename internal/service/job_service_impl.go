package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/jobwbs/internal/domain"
	"github.com/alexanderramin/jobwbs/internal/repository"
)

type jobService struct {
	jobs     repository.JobRepo
	observer UseCaseObserver
}

func NewJobService(jobs repository.JobRepo, observers ...UseCaseObserver) JobService {
	return &jobService{
		jobs:     jobs,
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *jobService) Register(ctx context.Context, j *domain.Job) (err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"job_number": j.JobNumber}
	defer func() {
		s.observer.ObserveUseCase(ctx, UseCaseEvent{
			Name:      "register-job",
			StartedAt: startedAt,
			Duration:  time.Since(startedAt),
			Success:   err == nil,
			Err:       err,
			Fields:    fields,
		})
	}()

	if err = j.Validate(); err != nil {
		return fmt.Errorf("registering job: %w", err)
	}

	_, err = s.jobs.Get(ctx, j.JobNumber)
	switch {
	case err == nil:
		return fmt.Errorf("job %s already exists: %w", j.JobNumber, domain.ErrDuplicateKey)
	case !errors.Is(err, domain.ErrJobNotFound):
		return err
	}

	if err = s.jobs.Create(ctx, j); err != nil {
		return err
	}
	return nil
}

func (s *jobService) Get(ctx context.Context, jobNumber string) (*domain.Job, error) {
	return s.jobs.Get(ctx, jobNumber)
}

func (s *jobService) List(ctx context.Context) ([]*domain.Job, error) {
	return s.jobs.List(ctx)
}
