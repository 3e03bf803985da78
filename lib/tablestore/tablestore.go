// Package tablestore exposes the narrow relational surface the ingestion
// pipeline writes through: idempotent table creation, keyed upserts and
// plain SQL reads. Callers receive a Store so the backing connection is
// always passed in explicitly, never looked up through a global.
package tablestore

import "context"

type Column struct {
	Name string
	Type string
}

type Store interface {
	// creates the table when it does not exist yet; a repeat call with
	// the same shape is a no-op
	CreateTableIfAbsent(ctx context.Context, table string, columns []Column, primaryKey []string) error
	// inserts rows, replacing any existing row that shares the table's
	// primary key (last write wins)
	Upsert(ctx context.Context, table string, rows [][]any) error
	// runs a plain SQL query and returns positional rows
	Query(ctx context.Context, query string) ([][]any, error)
}
