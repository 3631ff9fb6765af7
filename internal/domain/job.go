package domain

import (
	"fmt"
	"strings"
)

// Job is a registered construction/service job. JobNumber is immutable once
// registered; jobs are never updated or deleted.
type Job struct {
	JobNumber    string
	BranchNumber string
	JobName      string
	SalesforceID string // optional, stored as-is
}

// Validate checks that every required field is non-empty.
func (j *Job) Validate() error {
	switch {
	case strings.TrimSpace(j.JobNumber) == "":
		return fmt.Errorf("job_number: %w", ErrMissingField)
	case strings.TrimSpace(j.BranchNumber) == "":
		return fmt.Errorf("branch_number: %w", ErrMissingField)
	case strings.TrimSpace(j.JobName) == "":
		return fmt.Errorf("job_name: %w", ErrMissingField)
	}
	return nil
}

// Label renders the job as shown in selection lists, e.g. "20725 - SCVWA Filters".
func (j *Job) Label() string {
	return j.JobNumber + " - " + j.JobName
}
