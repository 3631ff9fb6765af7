package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/alexanderramin/jobwbs/internal/db"
	"github.com/alexanderramin/jobwbs/internal/domain"
)

const jobColumns = `job_number, branch_number, job_name, salesforce_id`

// SQLiteJobRepo implements JobRepo using a SQLite database.
type SQLiteJobRepo struct {
	db db.DBTX
}

// NewSQLiteJobRepo creates a new SQLiteJobRepo.
func NewSQLiteJobRepo(conn db.DBTX) *SQLiteJobRepo {
	return &SQLiteJobRepo{db: conn}
}

func (r *SQLiteJobRepo) Create(ctx context.Context, j *domain.Job) error {
	query := `INSERT INTO jobs (` + jobColumns + `) VALUES (?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		j.JobNumber,
		j.BranchNumber,
		j.JobName,
		j.SalesforceID,
	)
	if err != nil {
		return storageErr(fmt.Sprintf("inserting job %s", j.JobNumber), err)
	}
	return nil
}

func (r *SQLiteJobRepo) Get(ctx context.Context, jobNumber string) (*domain.Job, error) {
	query := `SELECT ` + jobColumns + ` FROM jobs WHERE job_number = ?`
	row := r.db.QueryRowContext(ctx, query, jobNumber)

	j, err := scanJob(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) || isMissingTable(err) {
			return nil, fmt.Errorf("job %s: %w", jobNumber, domain.ErrJobNotFound)
		}
		return nil, storageErr(fmt.Sprintf("loading job %s", jobNumber), err)
	}
	return j, nil
}

func (r *SQLiteJobRepo) List(ctx context.Context) ([]*domain.Job, error) {
	query := `SELECT ` + jobColumns + ` FROM jobs ORDER BY job_number`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		if isMissingTable(err) {
			return nil, nil
		}
		return nil, storageErr("listing jobs", err)
	}
	defer rows.Close()

	var jobs []*domain.Job
	for rows.Next() {
		j, err := scanJob(rows)
		if err != nil {
			return nil, storageErr("scanning job row", err)
		}
		jobs = append(jobs, j)
	}
	if err := rows.Err(); err != nil {
		return nil, storageErr("iterating jobs", err)
	}
	return jobs, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanJob(s rowScanner) (*domain.Job, error) {
	var j domain.Job
	var branch, name, sfID sql.NullString
	if err := s.Scan(&j.JobNumber, &branch, &name, &sfID); err != nil {
		return nil, err
	}
	j.BranchNumber = textOrEmpty(branch)
	j.JobName = textOrEmpty(name)
	j.SalesforceID = textOrEmpty(sfID)
	return &j, nil
}
