package tablestore

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	_ "github.com/tursodatabase/libsql-client-go/libsql"
	_ "modernc.org/sqlite"
)

// SQLite implements Store over a database/sql handle. Writes are
// serialized with a mutex so concurrent loaders sharing one store
// cannot interleave their upsert transactions.
type SQLite struct {
	db *sql.DB
	mu sync.Mutex
}

func NewSQLite(db *sql.DB) *SQLite {
	return &SQLite{db: db}
}

func (s *SQLite) CreateTableIfAbsent(ctx context.Context, table string, columns []Column, primaryKey []string) error {
	defs := make([]string, 0, len(columns)+1)
	for _, c := range columns {
		defs = append(defs, fmt.Sprintf("%s %s", c.Name, c.Type))
	}
	if len(primaryKey) > 0 {
		defs = append(defs, fmt.Sprintf("CONSTRAINT pk PRIMARY KEY (%s)", strings.Join(primaryKey, ", ")))
	}

	stmt := fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s (%s);", table, strings.Join(defs, ", "))
	slog.DebugContext(ctx, "create table", "sql", stmt)

	_, err := s.db.ExecContext(ctx, stmt)
	return err
}

func (s *SQLite) Upsert(ctx context.Context, table string, rows [][]any) error {
	if len(rows) == 0 {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	columns, err := s.columnNames(ctx, table)
	if err != nil {
		return err
	}

	quoted := make([]string, len(columns))
	params := make([]string, len(columns))
	for i, c := range columns {
		quoted[i] = fmt.Sprintf("%q", c)
		params[i] = "?"
	}
	stmt := fmt.Sprintf(
		"INSERT OR REPLACE INTO %s (%s) VALUES (%s);",
		table, strings.Join(quoted, ", "), strings.Join(params, ", "),
	)
	slog.DebugContext(ctx, "upsert", "sql", stmt, "rows", len(rows))

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	prepared, err := tx.PrepareContext(ctx, stmt)
	if err != nil {
		return err
	}
	defer prepared.Close()

	for _, row := range rows {
		if len(row) != len(columns) {
			return fmt.Errorf("upsert into %s: row has %d values, table has %d columns", table, len(row), len(columns))
		}
		if _, err := prepared.ExecContext(ctx, row...); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func (s *SQLite) Query(ctx context.Context, query string) ([][]any, error) {
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, err
	}

	var out [][]any
	for rows.Next() {
		values := make([]any, len(columns))
		pointers := make([]any, len(columns))
		for i := range values {
			pointers[i] = &values[i]
		}
		if err := rows.Scan(pointers...); err != nil {
			return nil, err
		}
		out = append(out, values)
	}
	return out, rows.Err()
}

func (s *SQLite) columnNames(ctx context.Context, table string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, fmt.Sprintf("SELECT * FROM %s LIMIT 0;", table))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return rows.Columns()
}
