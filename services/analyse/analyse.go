// Package analyse runs the SQL window-function analyses over the tables
// the transform stage populates: month-on-month growth per website and
// a ranking of websites by relative traffic growth.
package analyse

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"sitepulse-backend/lib/tablestore"
)

var tracer = otel.Tracer("services/analyse")

type GrowthRow struct {
	Website      string
	SnapshotDate string
	Value        float64
	Previous     float64
	ChangePct    float64
}

// MonthOnMonthGrowth computes the percentage change of column between
// consecutive snapshots of each website, using LAG over the snapshot
// order. Rows without a previous snapshot are excluded.
func MonthOnMonthGrowth(ctx context.Context, store tablestore.Store, table, column string) ([]GrowthRow, error) {
	ctx, span := tracer.Start(ctx, "MonthOnMonthGrowth")
	defer span.End()

	query := fmt.Sprintf(`
	SELECT
		website,
		snapshot_date,
		val,
		prev_val,
		(val - prev_val) * 100.0 / prev_val AS val_change_percentage
	FROM (
		SELECT
			website,
			snapshot_date,
			%s AS val,
			LAG(%s) OVER (PARTITION BY website ORDER BY snapshot_date) AS prev_val
		FROM %s
	)
	WHERE
		prev_val IS NOT NULL
	ORDER BY
		website,
		snapshot_date;
	`, column, column, table)

	rows, err := store.Query(ctx, query)
	if err != nil {
		return nil, err
	}

	out := make([]GrowthRow, len(rows))
	for i, row := range rows {
		out[i] = GrowthRow{
			Website:      asString(row[0]),
			SnapshotDate: asString(row[1]),
			Value:        asFloat(row[2]),
			Previous:     asFloat(row[3]),
			ChangePct:    asFloat(row[4]),
		}
	}
	return out, nil
}

func GlobalRankGrowth(ctx context.Context, store tablestore.Store) ([]GrowthRow, error) {
	return MonthOnMonthGrowth(ctx, store, "website_global_rank", "global_rank")
}

func TotalVisitsGrowth(ctx context.Context, store tablestore.Store) ([]GrowthRow, error) {
	return MonthOnMonthGrowth(ctx, store, "website_total_visits", "total_visits")
}

type RankRow struct {
	Website   string
	GrowthPct float64
	Rank      int64
}

// RankByRelativeGrowth ranks websites on the growth between their first
// and last recorded total-visits snapshots, best growth first.
func RankByRelativeGrowth(ctx context.Context, store tablestore.Store) ([]RankRow, error) {
	ctx, span := tracer.Start(ctx, "RankByRelativeGrowth")
	defer span.End()

	query := `
	WITH ranked_visits AS (
		SELECT
			website,
			snapshot_date,
			total_visits,
			ROW_NUMBER() OVER (PARTITION BY website ORDER BY snapshot_date) AS row_num_asc,
			ROW_NUMBER() OVER (PARTITION BY website ORDER BY snapshot_date DESC) AS row_num_desc
		FROM website_total_visits
	),
	visit_changes AS (
		SELECT
			r1.website,
			r1.total_visits AS first_visits,
			r2.total_visits AS last_visits
		FROM ranked_visits r1
		JOIN ranked_visits r2 ON r1.website = r2.website AND r1.row_num_asc = 1 AND r2.row_num_desc = 1
	),
	growth_calculations AS (
		SELECT
			website,
			(last_visits - first_visits) * 100.0 / first_visits AS growth_percentage
		FROM visit_changes
		WHERE first_visits IS NOT NULL AND last_visits IS NOT NULL
	)
	SELECT
		website,
		growth_percentage,
		RANK() OVER (ORDER BY growth_percentage DESC) AS rank
	FROM growth_calculations
	ORDER BY rank;
	`

	rows, err := store.Query(ctx, query)
	if err != nil {
		return nil, err
	}

	out := make([]RankRow, len(rows))
	for i, row := range rows {
		out[i] = RankRow{
			Website:   asString(row[0]),
			GrowthPct: asFloat(row[1]),
			Rank:      asInt(row[2]),
		}
	}
	return out, nil
}

func asString(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case []byte:
		return string(t)
	default:
		return fmt.Sprint(t)
	}
}

func asFloat(v any) float64 {
	switch t := v.(type) {
	case float64:
		return t
	case int64:
		return float64(t)
	default:
		return 0
	}
}

func asInt(v any) int64 {
	switch t := v.(type) {
	case int64:
		return t
	case float64:
		return int64(t)
	default:
		return 0
	}
}
