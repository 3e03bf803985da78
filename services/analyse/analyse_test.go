package analyse

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"sitepulse-backend/lib/tablestore"
	"sitepulse-backend/lib/testutil"
)

func seedVisits(t *testing.T) (context.Context, tablestore.Store) {
	setup, cleanup := testutil.SetupService(t, testutil.ServiceParams{
		Name: "services/analyse",
	})
	t.Cleanup(cleanup)
	t.Cleanup(func() { setup.DB.Close() })

	ctx, cancel := context.WithTimeout(context.Background(), time.Second*5)
	t.Cleanup(cancel)

	store := tablestore.NewSQLite(setup.DB)
	require.NoError(t, store.CreateTableIfAbsent(ctx, "website_total_visits", []tablestore.Column{
		{Name: "website", Type: "TEXT"},
		{Name: "snapshot_date", Type: "TEXT"},
		{Name: "total_visits", Type: "INTEGER"},
	}, []string{"website", "snapshot_date"}))
	require.NoError(t, store.Upsert(ctx, "website_total_visits", [][]any{
		{"example.com", "2024-03-20", int64(1000)},
		{"example.com", "2024-04-20", int64(1500)},
		{"example.com", "2024-05-20", int64(1800)},
		{"other.net", "2024-03-20", int64(1000)},
		{"other.net", "2024-04-20", int64(1100)},
		{"other.net", "2024-05-20", int64(1210)},
	}))
	return ctx, store
}

func TestMonthOnMonthGrowth(t *testing.T) {
	ctx, store := seedVisits(t)

	rows, err := TotalVisitsGrowth(ctx, store)
	require.NoError(t, err)
	require.Len(t, rows, 4)

	require.Equal(t, "example.com", rows[0].Website)
	require.Equal(t, "2024-04-20", rows[0].SnapshotDate)
	require.InDelta(t, 50, rows[0].ChangePct, 1e-9)

	require.Equal(t, "example.com", rows[1].Website)
	require.InDelta(t, 20, rows[1].ChangePct, 1e-9)

	require.Equal(t, "other.net", rows[2].Website)
	require.InDelta(t, 10, rows[2].ChangePct, 1e-9)
	require.InDelta(t, 10, rows[3].ChangePct, 1e-9)
}

func TestRankByRelativeGrowth(t *testing.T) {
	ctx, store := seedVisits(t)

	rows, err := RankByRelativeGrowth(ctx, store)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	require.Equal(t, "example.com", rows[0].Website)
	require.Equal(t, int64(1), rows[0].Rank)
	require.InDelta(t, 80, rows[0].GrowthPct, 1e-9)

	require.Equal(t, "other.net", rows[1].Website)
	require.Equal(t, int64(2), rows[1].Rank)
	require.InDelta(t, 21, rows[1].GrowthPct, 1e-9)
}

func TestRenderRanking(t *testing.T) {
	ctx, store := seedVisits(t)

	rows, err := RankByRelativeGrowth(ctx, store)
	require.NoError(t, err)

	var buf bytes.Buffer
	RenderRanking(&buf, rows)
	out := buf.String()
	require.Contains(t, out, "example.com")
	require.Contains(t, out, "other.net")
	require.Contains(t, out, "+80.00%")
}
