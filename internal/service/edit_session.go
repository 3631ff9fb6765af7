package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/jobwbs/internal/domain"
	"github.com/alexanderramin/jobwbs/internal/report"
	"github.com/alexanderramin/jobwbs/internal/repository"
	"github.com/google/uuid"
)

// EditSession holds the line items of one job while they are being edited.
// Nothing reaches the store until Save. A session is owned by one caller and
// is not safe for concurrent use.
type EditSession struct {
	jobs     repository.JobRepo
	items    repository.LineItemRepo
	observer UseCaseObserver

	id    string
	job   *domain.Job
	buf   []*domain.LineItem
	dirty bool
}

func NewEditSession(jobs repository.JobRepo, items repository.LineItemRepo, observers ...UseCaseObserver) *EditSession {
	return &EditSession{
		jobs:     jobs,
		items:    items,
		observer: useCaseObserverOrNoop(observers),
	}
}

// ID identifies the current open session in logs. It changes on every Open.
func (s *EditSession) ID() string { return s.id }

// Job returns the open job, or nil.
func (s *EditSession) Job() *domain.Job { return s.job }

func (s *EditSession) JobNumber() string {
	if s.job == nil {
		return ""
	}
	return s.job.JobNumber
}

// Dirty reports whether the buffer has edits not yet saved.
func (s *EditSession) Dirty() bool { return s.dirty }

func (s *EditSession) Len() int { return len(s.buf) }

// Items returns copies of the buffered items in buffer order.
func (s *EditSession) Items() []*domain.LineItem {
	out := make([]*domain.LineItem, len(s.buf))
	for i, li := range s.buf {
		out[i] = li.Clone()
	}
	return out
}

// Item returns a copy of the item at index.
func (s *EditSession) Item(index int) (*domain.LineItem, error) {
	if err := s.checkIndex(index); err != nil {
		return nil, err
	}
	return s.buf[index].Clone(), nil
}

// Open selects jobNumber and loads its persisted items, discarding the
// previous buffer including any unsaved edits. If the job does not exist the
// previous session is left as it was.
func (s *EditSession) Open(ctx context.Context, jobNumber string) (err error) {
	startedAt := time.Now().UTC()
	sessionID := uuid.NewString()
	fields := map[string]any{
		"job_number": jobNumber,
		"session_id": sessionID,
	}
	defer func() {
		s.observer.ObserveUseCase(ctx, UseCaseEvent{
			Name:      "open-session",
			StartedAt: startedAt,
			Duration:  time.Since(startedAt),
			Success:   err == nil,
			Err:       err,
			Fields:    fields,
		})
	}()

	job, err := s.jobs.Get(ctx, jobNumber)
	if err != nil {
		return err
	}
	loaded, err := s.items.ListByJob(ctx, jobNumber)
	if err != nil {
		return err
	}
	if s.dirty {
		fields["discarded_job"] = s.JobNumber()
	}
	fields["items_loaded"] = len(loaded)

	s.id = sessionID
	s.job = job
	s.buf = loaded
	s.dirty = false
	return nil
}

// AddItem appends a new empty item and returns its index.
func (s *EditSession) AddItem() (int, error) {
	if err := s.checkOpen(); err != nil {
		return 0, err
	}
	s.buf = append(s.buf, domain.NewLineItem(s.job.JobNumber))
	s.dirty = true
	return len(s.buf) - 1, nil
}

// UpdateItem coerces value into field of the item at index. A rejected value
// leaves the item unchanged.
func (s *EditSession) UpdateItem(index int, field domain.Field, value any) error {
	if err := s.checkIndex(index); err != nil {
		return err
	}
	if err := s.buf[index].Set(field, value); err != nil {
		return fmt.Errorf("item %d: %w", index, err)
	}
	s.dirty = true
	return nil
}

// RemoveItem drops the item at index from the buffer.
func (s *EditSession) RemoveItem(index int) error {
	if err := s.checkIndex(index); err != nil {
		return err
	}
	s.buf = append(s.buf[:index], s.buf[index+1:]...)
	s.dirty = true
	return nil
}

// Clear empties the buffer. Saving afterwards deletes the job's items.
func (s *EditSession) Clear() error {
	if err := s.checkOpen(); err != nil {
		return err
	}
	if len(s.buf) > 0 {
		s.dirty = true
	}
	s.buf = nil
	return nil
}

// Import appends one item per row, or replaces the buffer when replace is
// set. Rows pass through the same coercion as UpdateItem; the first bad row
// aborts the import and the buffer is left untouched.
func (s *EditSession) Import(ctx context.Context, rows []report.Row, replace bool) (n int, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{
		"job_number": s.JobNumber(),
		"session_id": s.id,
		"replace":    replace,
	}
	defer func() {
		fields["items_imported"] = n
		s.observer.ObserveUseCase(ctx, UseCaseEvent{
			Name:      "import",
			StartedAt: startedAt,
			Duration:  time.Since(startedAt),
			Success:   err == nil,
			Err:       err,
			Fields:    fields,
		})
	}()

	if err = s.checkOpen(); err != nil {
		return 0, err
	}

	imported := make([]*domain.LineItem, 0, len(rows))
	for _, row := range rows {
		li := domain.NewLineItem(s.job.JobNumber)
		for _, f := range domain.EditableFields {
			v, ok := row.Values[f]
			if !ok {
				continue
			}
			if err = li.Set(f, v); err != nil {
				return 0, fmt.Errorf("line %d: %w", row.Line, err)
			}
		}
		imported = append(imported, li)
	}

	if replace {
		s.buf = imported
	} else {
		s.buf = append(s.buf, imported...)
	}
	if replace || len(imported) > 0 {
		s.dirty = true
	}
	return len(imported), nil
}

// Save replaces the job's persisted items with the buffer. Fully blank items
// are skipped; numeric fields are already 0 when unset. On success the
// buffer is reloaded so store-assigned ids are visible. On failure the
// buffer is left exactly as it was.
func (s *EditSession) Save(ctx context.Context) (result SaveResult, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{
		"job_number": s.JobNumber(),
		"session_id": s.id,
	}
	defer func() {
		fields["items_written"] = result.Written
		fields["items_skipped"] = result.Skipped
		s.observer.ObserveUseCase(ctx, UseCaseEvent{
			Name:      "save-session",
			StartedAt: startedAt,
			Duration:  time.Since(startedAt),
			Success:   err == nil,
			Err:       err,
			Fields:    fields,
		})
	}()

	if err = s.checkOpen(); err != nil {
		return SaveResult{}, err
	}

	keep := make([]*domain.LineItem, 0, len(s.buf))
	skipped := 0
	for i, li := range s.buf {
		if li.IsBlank() {
			skipped++
			continue
		}
		if strings.TrimSpace(li.ServiceLine) == "" || strings.TrimSpace(li.WBSTask) == "" {
			return SaveResult{}, fmt.Errorf("item %d needs a service line and a WBS task: %w", i, domain.ErrIncompleteItem)
		}
		if err = li.Validate(); err != nil {
			return SaveResult{}, fmt.Errorf("item %d: %w", i, err)
		}
		keep = append(keep, li)
	}

	written, err := s.items.ReplaceForJob(ctx, s.job.JobNumber, keep)
	if err != nil {
		return SaveResult{}, err
	}
	result = SaveResult{Written: written, Skipped: skipped}

	reloaded, err := s.items.ListByJob(ctx, s.job.JobNumber)
	if err != nil {
		// The write committed; only the refresh failed.
		s.dirty = false
		return result, fmt.Errorf("reloading after save: %w", err)
	}
	s.buf = reloaded
	s.dirty = false
	return result, nil
}

func (s *EditSession) checkOpen() error {
	if s.job == nil {
		return fmt.Errorf("no job open: %w", domain.ErrJobNotFound)
	}
	return nil
}

func (s *EditSession) checkIndex(index int) error {
	if err := s.checkOpen(); err != nil {
		return err
	}
	if index < 0 || index >= len(s.buf) {
		return &domain.IndexError{Index: index, Len: len(s.buf)}
	}
	return nil
}
