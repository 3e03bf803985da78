package transform

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func fullRow() Row {
	return Row{
		"domain":                       "example.com",
		"snapshot_date":                "2024-05-20",
		"global_rank":                  "100",
		"total_visits":                 "250000",
		"bounce_rate":                  "30%",
		"pages_per_visit":              "3.4",
		"avg_visit_duration":           "0:05:30",
		"one_month_rank_change":        "5",
		"two_month_rank_change":        "-3",
		"visits_history":               `{"2024-04-01": 5000, "2024-04-02": 5500}`,
		"last_month_change_in_traffic": "0.12",
		"top_countries":                `[{"countryAlpha2Code": "US", "countryUrlCode": "united-states", "visitsShare": 0.4, "visitsShareChange": 0.01}]`,
		"age_distribution":             `[{"minAge": 18, "maxAge": 34, "value": 0.25}, {"minAge": 55, "value": 0.5}]`,
	}
}

func TestNewSnapshot(t *testing.T) {
	s, err := NewSnapshot(fullRow())
	require.NoError(t, err)

	require.Equal(t, "example.com", s.Domain)
	require.Equal(t, time.Date(2024, time.May, 20, 0, 0, 0, 0, time.UTC), s.SnapshotDate)
	require.Equal(t, int64(100), *s.GlobalRank)
	require.Equal(t, int64(250000), *s.TotalVisits)
	require.InDelta(t, 0.3, *s.BounceRate, 1e-9)
	require.Equal(t, 3.4, *s.PagesPerVisit)
	require.Equal(t, int64(330), *s.AvgVisitDuration)
	require.Equal(t, int64(5), *s.OneMonthRankChange)
	require.Equal(t, int64(-3), *s.TwoMonthRankChange)
	require.Equal(t, map[string]int64{"2024-04-01": 5000, "2024-04-02": 5500}, s.VisitsHistory)
	require.Equal(t, 0.12, *s.LastMonthChangeInTraffic)
	require.Equal(t, []string{"US"}, s.TopCountries)
	require.Equal(t, map[string]float64{"18 - 34": 0.25, "55+": 0.5}, s.AgeDistribution)
}

func TestNewSnapshotOptionalFieldsAbsent(t *testing.T) {
	s, err := NewSnapshot(Row{
		"domain":        "example.com",
		"snapshot_date": "2024-05-20",
	})
	require.NoError(t, err)

	require.Nil(t, s.GlobalRank)
	require.Nil(t, s.TotalVisits)
	require.Nil(t, s.BounceRate)
	require.Nil(t, s.PagesPerVisit)
	require.Nil(t, s.AvgVisitDuration)
	require.Nil(t, s.LastMonthChangeInTraffic)
	require.Empty(t, s.VisitsHistory)
	require.Empty(t, s.TopCountries)
	require.Empty(t, s.AgeDistribution)
}

func TestDomainValidation(t *testing.T) {
	for _, domain := range []string{"example.com", "sub.example.co.uk", "my-site.io"} {
		row := fullRow()
		row["domain"] = domain
		_, err := NewSnapshot(row)
		require.NoError(t, err, domain)
	}

	for _, domain := range []string{"not a domain", "-bad.com", "bad-.com", "nodot", ""} {
		row := fullRow()
		row["domain"] = domain
		_, err := NewSnapshot(row)
		var verr *ValidationError
		require.ErrorAs(t, err, &verr, domain)
		var derr *DomainError
		require.ErrorAs(t, err, &derr, domain)
	}
}

func TestSnapshotDateValidation(t *testing.T) {
	expected := time.Date(2024, time.May, 20, 0, 0, 0, 0, time.UTC)
	for _, input := range []string{"2024-05-20", "2024-05-20T14:30:00", "2024-05-20 14:30:00"} {
		row := fullRow()
		row["snapshot_date"] = input
		s, err := NewSnapshot(row)
		require.NoError(t, err, input)
		require.Equal(t, expected, s.SnapshotDate, input)
	}

	for _, input := range []string{"20/05/2024", "yesterday", ""} {
		row := fullRow()
		row["snapshot_date"] = input
		_, err := NewSnapshot(row)
		var derr *DateError
		require.ErrorAs(t, err, &derr, input)
	}
}

func TestRecordAbortsOnAnyFieldFailure(t *testing.T) {
	row := fullRow()
	row["top_countries"] = `[{"countryAlpha2Code": "US", "countryUrlCode": "united-states", "visitsShareChange": 0.01}]`

	_, err := NewSnapshot(row)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	require.Equal(t, "top_countries", verr.Field)
	var serr *SchemaError
	require.ErrorAs(t, err, &serr)
}

func TestRecordRejectsNonStringValue(t *testing.T) {
	row := fullRow()
	row["global_rank"] = 100

	_, err := NewSnapshot(row)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	var terr *TypeMismatchError
	require.ErrorAs(t, err, &terr)
}
