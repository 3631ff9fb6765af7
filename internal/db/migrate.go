package db

import (
	"context"
	"database/sql"
	"fmt"
	"sort"
	"strings"

	"github.com/alexanderramin/jobwbs/internal/domain"
)

// Column is one expected column of a table.
type Column struct {
	Name string
	Type string
}

// TableSchema is the canonical column set of a table.
type TableSchema struct {
	Name    string
	Columns []Column
}

// Schema is the canonical layout both tables must match.
var Schema = []TableSchema{
	{
		Name: "jobs",
		Columns: []Column{
			{"job_number", "TEXT"},
			{"branch_number", "TEXT"},
			{"job_name", "TEXT"},
			{"salesforce_id", "TEXT"},
		},
	},
	{
		Name: "wbs",
		Columns: []Column{
			{"id", "INTEGER"},
			{"job_number", "TEXT"},
			{"service_line", "TEXT"},
			{"wbs_task", "TEXT"},
			{"wbs_subtask", "TEXT"},
			{"qty", "REAL"},
			{"unit_of_measure", "TEXT"},
			{"contract_vs_co", "TEXT"},
			{"fpa_type", "TEXT"},
			{"fpa_subtype", "TEXT"},
			{"budgeted_revenue", "REAL"},
			{"budgeted_hours", "REAL"},
			{"budgeted_cost", "REAL"},
		},
	},
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS jobs (
		job_number    TEXT PRIMARY KEY,
		branch_number TEXT,
		job_name      TEXT,
		salesforce_id TEXT
	)`,

	`CREATE TABLE IF NOT EXISTS wbs (
		id               INTEGER PRIMARY KEY AUTOINCREMENT,
		job_number       TEXT,
		service_line     TEXT,
		wbs_task         TEXT,
		wbs_subtask      TEXT,
		qty              REAL,
		unit_of_measure  TEXT,
		contract_vs_co   TEXT,
		fpa_type         TEXT,
		fpa_subtype      TEXT,
		budgeted_revenue REAL,
		budgeted_hours   REAL,
		budgeted_cost    REAL
	)`,
}

// indexes run after validation so a legacy table fails with a schema
// mismatch instead of an index error.
var indexes = []string{
	`CREATE INDEX IF NOT EXISTS idx_wbs_job_number ON wbs(job_number)`,
}

// Migrate creates absent tables and verifies existing ones. It is idempotent.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("migration %d: %w: %w", i, domain.ErrStorageUnavailable, err)
		}
	}
	if err := ValidateSchema(context.Background(), db); err != nil {
		return err
	}
	for i, stmt := range indexes {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("index %d: %w: %w", i, domain.ErrStorageUnavailable, err)
		}
	}
	return nil
}

// ValidateSchema compares every table in Schema against PRAGMA table_info.
// A table that does not exist is not an error: callers treat it as empty.
func ValidateSchema(ctx context.Context, conn DBTX) error {
	for _, table := range Schema {
		actual, err := tableColumns(ctx, conn, table.Name)
		if err != nil {
			return err
		}
		if len(actual) == 0 {
			continue
		}
		if diff := diffColumns(table.Columns, actual); diff != "" {
			return fmt.Errorf("table %s: %s: %w", table.Name, diff, domain.ErrSchemaMismatch)
		}
	}
	return nil
}

func tableColumns(ctx context.Context, conn DBTX, table string) (map[string]string, error) {
	rows, err := conn.QueryContext(ctx, fmt.Sprintf("PRAGMA table_info(%s)", table))
	if err != nil {
		return nil, fmt.Errorf("reading %s schema: %w: %w", table, domain.ErrStorageUnavailable, err)
	}
	defer rows.Close()

	cols := make(map[string]string)
	for rows.Next() {
		var (
			cid     int
			name    string
			colType string
			notNull int
			dflt    sql.NullString
			pk      int
		)
		if err := rows.Scan(&cid, &name, &colType, &notNull, &dflt, &pk); err != nil {
			return nil, fmt.Errorf("scanning %s schema: %w", table, err)
		}
		cols[strings.ToLower(name)] = strings.ToUpper(colType)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating %s schema: %w", table, err)
	}
	return cols, nil
}

func diffColumns(expected []Column, actual map[string]string) string {
	var missing, wrongType, unexpected []string
	seen := make(map[string]bool, len(expected))
	for _, c := range expected {
		seen[c.Name] = true
		got, ok := actual[c.Name]
		switch {
		case !ok:
			missing = append(missing, c.Name)
		case got != c.Type:
			wrongType = append(wrongType, fmt.Sprintf("%s is %s, want %s", c.Name, got, c.Type))
		}
	}
	for name := range actual {
		if !seen[name] {
			unexpected = append(unexpected, name)
		}
	}
	sort.Strings(unexpected)

	var parts []string
	if len(missing) > 0 {
		parts = append(parts, "missing columns "+strings.Join(missing, ", "))
	}
	if len(unexpected) > 0 {
		parts = append(parts, "unexpected columns "+strings.Join(unexpected, ", "))
	}
	if len(wrongType) > 0 {
		parts = append(parts, strings.Join(wrongType, ", "))
	}
	return strings.Join(parts, "; ")
}
