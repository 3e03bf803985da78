package tablestore

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	_ "modernc.org/sqlite"
)

func setupSQLite(t *testing.T) (context.Context, *SQLite) {
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { db.Close() })

	ctx, cancel := context.WithTimeout(context.Background(), time.Second*5)
	t.Cleanup(cancel)

	return ctx, NewSQLite(db)
}

func TestCreateTableIfAbsent(t *testing.T) {
	ctx, store := setupSQLite(t)

	columns := []Column{
		{Name: "website", Type: "TEXT"},
		{Name: "snapshot_date", Type: "TEXT"},
		{Name: "global_rank", Type: "INTEGER"},
	}
	pk := []string{"website", "snapshot_date"}

	require.NoError(t, store.CreateTableIfAbsent(ctx, "ranks", columns, pk))
	// repeat creation is a no-op
	require.NoError(t, store.CreateTableIfAbsent(ctx, "ranks", columns, pk))
}

func TestUpsertReplacesOnPrimaryKey(t *testing.T) {
	ctx, store := setupSQLite(t)

	require.NoError(t, store.CreateTableIfAbsent(ctx, "ranks", []Column{
		{Name: "website", Type: "TEXT"},
		{Name: "snapshot_date", Type: "TEXT"},
		{Name: "global_rank", Type: "INTEGER"},
	}, []string{"website", "snapshot_date"}))

	require.NoError(t, store.Upsert(ctx, "ranks", [][]any{
		{"example.com", "2024-05-20", int64(100)},
		{"example.com", "2024-04-20", int64(105)},
	}))
	// same key, new value: last write wins
	require.NoError(t, store.Upsert(ctx, "ranks", [][]any{
		{"example.com", "2024-05-20", int64(90)},
	}))

	rows, err := store.Query(ctx, "SELECT snapshot_date, global_rank FROM ranks ORDER BY snapshot_date;")
	require.NoError(t, err)
	require.Equal(t, [][]any{
		{"2024-04-20", int64(105)},
		{"2024-05-20", int64(90)},
	}, rows)
}

func TestUpsertNilBecomesNull(t *testing.T) {
	ctx, store := setupSQLite(t)

	require.NoError(t, store.CreateTableIfAbsent(ctx, "ranks", []Column{
		{Name: "website", Type: "TEXT"},
		{Name: "global_rank", Type: "INTEGER"},
	}, []string{"website"}))
	require.NoError(t, store.Upsert(ctx, "ranks", [][]any{{"example.com", nil}}))

	rows, err := store.Query(ctx, "SELECT global_rank FROM ranks;")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	require.Nil(t, rows[0][0])
}

func TestUpsertRejectsColumnMismatch(t *testing.T) {
	ctx, store := setupSQLite(t)

	require.NoError(t, store.CreateTableIfAbsent(ctx, "ranks", []Column{
		{Name: "website", Type: "TEXT"},
		{Name: "global_rank", Type: "INTEGER"},
	}, []string{"website"}))

	err := store.Upsert(ctx, "ranks", [][]any{{"example.com"}})
	require.Error(t, err)
}
