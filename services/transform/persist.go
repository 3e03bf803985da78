package transform

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"sitepulse-backend/lib/tablestore"
)

const dateFormat = "2006-01-02"

// Persist fans one validated snapshot out across the five destination
// tables, creating each table on first use. Every write is an upsert on
// the table's primary key, so re-ingesting a snapshot is idempotent.
func Persist(ctx context.Context, store tablestore.Store, s *Snapshot) error {
	ctx, span := tracer.Start(ctx, "Persist")
	defer span.End()
	span.SetAttributes(
		attribute.String("website", s.Domain),
		attribute.String("snapshot_date", s.SnapshotDate.Format(dateFormat)),
	)

	steps := []func(context.Context, tablestore.Store, *Snapshot) error{
		toWebsiteScrapes,
		toWebsiteGlobalRank,
		toWebsiteTotalVisits,
		toTopCountries,
		toAgeDistribution,
	}
	for _, step := range steps {
		if err := step(ctx, store, s); err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			return err
		}
	}
	return nil
}

func toWebsiteScrapes(ctx context.Context, store tablestore.Store, s *Snapshot) error {
	err := store.CreateTableIfAbsent(ctx, "website_scrapes", []tablestore.Column{
		{Name: "website", Type: "TEXT"},
		{Name: "snapshot_date", Type: "TEXT"},
		{Name: "global_rank", Type: "INTEGER"},
		{Name: "total_visits", Type: "INTEGER"},
		{Name: "bounce_rate", Type: "REAL"},
		{Name: "pages_per_visit", Type: "REAL"},
		{Name: "avg_visit_duration", Type: "INTEGER"},
		{Name: "last_month_change_in_traffic", Type: "REAL"},
	}, []string{"website", "snapshot_date"})
	if err != nil {
		return err
	}
	return store.Upsert(ctx, "website_scrapes", [][]any{{
		s.Domain,
		s.SnapshotDate.Format(dateFormat),
		s.GlobalRank,
		s.TotalVisits,
		s.BounceRate,
		s.PagesPerVisit,
		s.AvgVisitDuration,
		s.LastMonthChangeInTraffic,
	}})
}

func toWebsiteGlobalRank(ctx context.Context, store tablestore.Store, s *Snapshot) error {
	err := store.CreateTableIfAbsent(ctx, "website_global_rank", []tablestore.Column{
		{Name: "website", Type: "TEXT"},
		{Name: "snapshot_date", Type: "TEXT"},
		{Name: "global_rank", Type: "INTEGER"},
	}, []string{"website", "snapshot_date"})
	if err != nil {
		return err
	}

	// the source reports only the current rank plus two deltas, so the
	// two prior months are reconstructed here into a 3-point series.
	// the sign asymmetry (add one-month, subtract two-month) mirrors how
	// the provider encodes the two deltas and must stay as is.
	oneMonthPrior := monthsBefore(s.SnapshotDate, 1)
	twoMonthsPrior := monthsBefore(s.SnapshotDate, 2)
	return store.Upsert(ctx, "website_global_rank", [][]any{
		{s.Domain, s.SnapshotDate.Format(dateFormat), s.GlobalRank},
		{s.Domain, oneMonthPrior.Format(dateFormat), derivedRank(s.GlobalRank, s.OneMonthRankChange, +1)},
		{s.Domain, twoMonthsPrior.Format(dateFormat), derivedRank(s.GlobalRank, s.TwoMonthRankChange, -1)},
	})
}

func toWebsiteTotalVisits(ctx context.Context, store tablestore.Store, s *Snapshot) error {
	err := store.CreateTableIfAbsent(ctx, "website_total_visits", []tablestore.Column{
		{Name: "website", Type: "TEXT"},
		{Name: "snapshot_date", Type: "TEXT"},
		{Name: "total_visits", Type: "INTEGER"},
	}, []string{"website", "snapshot_date"})
	if err != nil {
		return err
	}
	rows := make([][]any, 0, len(s.VisitsHistory))
	for date, count := range s.VisitsHistory {
		rows = append(rows, []any{s.Domain, date, count})
	}
	return store.Upsert(ctx, "website_total_visits", rows)
}

func toTopCountries(ctx context.Context, store tablestore.Store, s *Snapshot) error {
	err := store.CreateTableIfAbsent(ctx, "top_countries", []tablestore.Column{
		{Name: "website", Type: "TEXT"},
		{Name: "snapshot_date", Type: "TEXT"},
		{Name: "country", Type: "TEXT"},
	}, []string{"website", "snapshot_date", "country"})
	if err != nil {
		return err
	}
	rows := make([][]any, 0, len(s.TopCountries))
	for _, country := range s.TopCountries {
		rows = append(rows, []any{s.Domain, s.SnapshotDate.Format(dateFormat), country})
	}
	return store.Upsert(ctx, "top_countries", rows)
}

func toAgeDistribution(ctx context.Context, store tablestore.Store, s *Snapshot) error {
	err := store.CreateTableIfAbsent(ctx, "age_distribution", []tablestore.Column{
		{Name: "website", Type: "TEXT"},
		{Name: "snapshot_date", Type: "TEXT"},
		{Name: "age_group_label", Type: "TEXT"},
		{Name: "value", Type: "REAL"},
	}, []string{"website", "snapshot_date", "age_group_label"})
	if err != nil {
		return err
	}
	rows := make([][]any, 0, len(s.AgeDistribution))
	for label, value := range s.AgeDistribution {
		rows = append(rows, []any{s.Domain, s.SnapshotDate.Format(dateFormat), label, value})
	}
	return store.Upsert(ctx, "age_distribution", rows)
}

// reconstructed prior-month rank; NULL when either operand is absent
func derivedRank(rank, change *int64, sign int64) any {
	if rank == nil || change == nil {
		return nil
	}
	return *rank + sign*(*change)
}

// calendar-month subtraction that clamps the day to the target month's
// length, so 2024-05-31 minus one month is 2024-04-30 rather than the
// normalized date AddDate would produce.
func monthsBefore(t time.Time, months int) time.Time {
	first := time.Date(t.Year(), t.Month()-time.Month(months), 1, 0, 0, 0, 0, t.Location())
	day := t.Day()
	if last := first.AddDate(0, 1, -1).Day(); day > last {
		day = last
	}
	return time.Date(first.Year(), first.Month(), day, 0, 0, 0, 0, t.Location())
}
