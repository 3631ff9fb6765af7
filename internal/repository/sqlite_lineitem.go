package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/alexanderramin/jobwbs/internal/db"
	"github.com/alexanderramin/jobwbs/internal/domain"
)

// lineItemColumns is the canonical column list for wbs, excluding id.
const lineItemColumns = `job_number, service_line, wbs_task, wbs_subtask,
		qty, unit_of_measure, contract_vs_co, fpa_type, fpa_subtype,
		budgeted_revenue, budgeted_hours, budgeted_cost`

var errNoTx = errors.New("repo without a unit of work must run on a transaction")

// SQLiteLineItemRepo implements LineItemRepo using a SQLite database.
// ReplaceForJob runs inside uow; a repo built on a *sql.Tx passes a nil uow
// and reuses the caller's transaction. A nil uow on a *sql.DB is rejected
// since the replace would not be atomic.
type SQLiteLineItemRepo struct {
	db  db.DBTX
	uow db.UnitOfWork
}

// NewSQLiteLineItemRepo creates a new SQLiteLineItemRepo.
func NewSQLiteLineItemRepo(conn db.DBTX, uow db.UnitOfWork) *SQLiteLineItemRepo {
	return &SQLiteLineItemRepo{db: conn, uow: uow}
}

func (r *SQLiteLineItemRepo) ListByJob(ctx context.Context, jobNumber string) ([]*domain.LineItem, error) {
	query := `SELECT id, ` + lineItemColumns + ` FROM wbs WHERE job_number = ? ORDER BY id`
	items, err := r.query(ctx, query, jobNumber)
	if err != nil {
		return nil, fmt.Errorf("loading wbs for job %s: %w", jobNumber, err)
	}
	return items, nil
}

func (r *SQLiteLineItemRepo) ListAll(ctx context.Context) ([]*domain.LineItem, error) {
	query := `SELECT id, ` + lineItemColumns + ` FROM wbs ORDER BY id`
	items, err := r.query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("loading all wbs: %w", err)
	}
	return items, nil
}

func (r *SQLiteLineItemRepo) ReplaceForJob(ctx context.Context, jobNumber string, items []*domain.LineItem) (int, error) {
	if r.uow == nil {
		if _, ok := r.db.(*sql.DB); ok {
			return 0, fmt.Errorf("replacing wbs for job %s: %w", jobNumber, errNoTx)
		}
		return replaceForJob(ctx, r.db, jobNumber, items)
	}

	var written int
	err := r.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		n, err := replaceForJob(ctx, tx, jobNumber, items)
		written = n
		return err
	})
	if err != nil {
		return 0, fmt.Errorf("replacing wbs for job %s: %w", jobNumber, err)
	}
	return written, nil
}

func replaceForJob(ctx context.Context, conn db.DBTX, jobNumber string, items []*domain.LineItem) (int, error) {
	if _, err := conn.ExecContext(ctx, `DELETE FROM wbs WHERE job_number = ?`, jobNumber); err != nil {
		return 0, storageErr("deleting existing items", err)
	}

	insert := `INSERT INTO wbs (` + lineItemColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	for i, li := range items {
		_, err := conn.ExecContext(ctx, insert,
			jobNumber,
			li.ServiceLine,
			li.WBSTask,
			li.WBSSubtask,
			li.Qty,
			li.UnitOfMeasure,
			string(li.ContractVsCO),
			string(li.FPAType),
			string(li.FPASubtype),
			li.BudgetedRevenue,
			li.BudgetedHours,
			li.BudgetedCost,
		)
		if err != nil {
			return 0, storageErr(fmt.Sprintf("inserting item %d", i), err)
		}
	}
	return len(items), nil
}

func (r *SQLiteLineItemRepo) query(ctx context.Context, query string, args ...any) ([]*domain.LineItem, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		if isMissingTable(err) {
			return nil, nil
		}
		return nil, storageErr("querying wbs", err)
	}
	defer rows.Close()

	var items []*domain.LineItem
	for rows.Next() {
		li, err := scanLineItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, li)
	}
	if err := rows.Err(); err != nil {
		return nil, storageErr("iterating wbs", err)
	}
	return items, nil
}

// scanLineItem reads one row. NULL text reads as empty and NULL numbers as 0.
// A stored enum value outside its allowed set is reported, not defaulted.
func scanLineItem(rows *sql.Rows) (*domain.LineItem, error) {
	var (
		id                              int64
		jobNumber                       string
		serviceLine, task, subtask, uom sql.NullString
		contract, fpaType, fpaSubtype   sql.NullString
		qty, revenue, hours, cost       sql.NullFloat64
	)
	err := rows.Scan(
		&id, &jobNumber,
		&serviceLine, &task, &subtask,
		&qty, &uom, &contract, &fpaType, &fpaSubtype,
		&revenue, &hours, &cost,
	)
	if err != nil {
		return nil, storageErr("scanning wbs row", err)
	}

	li := &domain.LineItem{
		ID:              &id,
		JobNumber:       jobNumber,
		ServiceLine:     textOrEmpty(serviceLine),
		WBSTask:         textOrEmpty(task),
		WBSSubtask:      textOrEmpty(subtask),
		Qty:             realOrZero(qty),
		UnitOfMeasure:   textOrEmpty(uom),
		BudgetedRevenue: realOrZero(revenue),
		BudgetedHours:   realOrZero(hours),
		BudgetedCost:    realOrZero(cost),
	}

	if li.ContractVsCO, err = domain.ParseContractType(textOrEmpty(contract)); err != nil {
		return nil, fmt.Errorf("wbs row %d: %w", id, err)
	}
	if li.FPAType, err = domain.ParseFPAType(textOrEmpty(fpaType)); err != nil {
		return nil, fmt.Errorf("wbs row %d: %w", id, err)
	}
	if li.FPASubtype, err = domain.ParseFPASubtype(textOrEmpty(fpaSubtype)); err != nil {
		return nil, fmt.Errorf("wbs row %d: %w", id, err)
	}
	return li, nil
}
