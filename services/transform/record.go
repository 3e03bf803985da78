// Package transform turns raw website-analytics snapshot rows into
// validated records and fans them out across the denormalized
// time-series tables downstream analysis reads from.
package transform

import (
	"regexp"
	"time"
)

var domainPattern = regexp.MustCompile(`^[a-zA-Z0-9][a-zA-Z0-9-]{0,61}[a-zA-Z0-9](\.[a-zA-Z]{2,})+$`)

// layouts accepted for snapshot_date; time-of-day is discarded
var dateLayouts = []string{
	"2006-01-02T15:04:05Z07:00",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// Row is one tabular input row, column name to raw value. Values coming
// off the CSV transport are strings; the empty string marks an absent
// value since CSV cannot express NULL.
type Row = map[string]any

// Snapshot is one validated analytics reading for one website at one
// date. Validation and coercion happen exactly once, in NewSnapshot;
// after that the record is immutable and is consumed once by Persist.
type Snapshot struct {
	Domain                   string
	SnapshotDate             time.Time
	GlobalRank               *int64
	TotalVisits              *int64
	BounceRate               *float64
	PagesPerVisit            *float64
	AvgVisitDuration         *int64
	OneMonthRankChange       *int64
	TwoMonthRankChange       *int64
	VisitsHistory            map[string]int64
	LastMonthChangeInTraffic *float64
	TopCountries             []string
	AgeDistribution          map[string]float64
}

type fieldValidator struct {
	name   string
	assign func(s *Snapshot, raw string, present bool) error
}

// the per-field validation pipeline, iterated in declaration order.
// domain and snapshot_date are handled before this table runs because
// their failure aborts the record before anything else is looked at.
var fieldValidators = []fieldValidator{
	{"global_rank", func(s *Snapshot, raw string, present bool) error {
		if !present {
			return nil
		}
		v, err := CoerceInt(raw)
		if err != nil {
			return err
		}
		s.GlobalRank = &v
		return nil
	}},
	{"total_visits", func(s *Snapshot, raw string, present bool) error {
		if !present {
			return nil
		}
		v, err := CoerceInt(raw)
		if err != nil {
			return err
		}
		s.TotalVisits = &v
		return nil
	}},
	{"bounce_rate", func(s *Snapshot, raw string, present bool) error {
		if !present {
			return nil
		}
		v, err := PercentToFraction(raw)
		if err != nil {
			return err
		}
		s.BounceRate = &v
		return nil
	}},
	{"pages_per_visit", func(s *Snapshot, raw string, present bool) error {
		if !present {
			return nil
		}
		v, err := CoerceFloat(raw)
		if err != nil {
			return err
		}
		s.PagesPerVisit = &v
		return nil
	}},
	{"avg_visit_duration", func(s *Snapshot, raw string, present bool) error {
		if !present {
			return nil
		}
		v, err := DurationSeconds(raw)
		if err != nil {
			return err
		}
		s.AvgVisitDuration = &v
		return nil
	}},
	{"one_month_rank_change", func(s *Snapshot, raw string, present bool) error {
		if !present {
			return nil
		}
		v, err := CoerceInt(raw)
		if err != nil {
			return err
		}
		s.OneMonthRankChange = &v
		return nil
	}},
	{"two_month_rank_change", func(s *Snapshot, raw string, present bool) error {
		if !present {
			return nil
		}
		v, err := CoerceInt(raw)
		if err != nil {
			return err
		}
		s.TwoMonthRankChange = &v
		return nil
	}},
	{"visits_history", func(s *Snapshot, raw string, _ bool) error {
		v, err := ParseVisitsHistory(raw)
		if err != nil {
			return err
		}
		s.VisitsHistory = v
		return nil
	}},
	{"last_month_change_in_traffic", func(s *Snapshot, raw string, present bool) error {
		if !present {
			return nil
		}
		v, err := CoerceFloat(raw)
		if err != nil {
			return err
		}
		s.LastMonthChangeInTraffic = &v
		return nil
	}},
	{"top_countries", func(s *Snapshot, raw string, _ bool) error {
		v, err := ParseTopCountries(raw)
		if err != nil {
			return err
		}
		s.TopCountries = v
		return nil
	}},
	{"age_distribution", func(s *Snapshot, raw string, _ bool) error {
		v, err := ParseAgeDistribution(raw)
		if err != nil {
			return err
		}
		s.AgeDistribution = v
		return nil
	}},
}

// NewSnapshot validates and coerces one raw row into a Snapshot. Any
// single field failing aborts the whole record with a *ValidationError;
// there is no field-level recovery.
func NewSnapshot(row Row) (*Snapshot, error) {
	domain, _, err := stringValue(row, "domain")
	if err != nil {
		return nil, &ValidationError{Field: "domain", Err: err}
	}
	if !domainPattern.MatchString(domain) {
		return nil, &ValidationError{Field: "domain", Err: &DomainError{Value: domain}}
	}

	rawDate, present, err := stringValue(row, "snapshot_date")
	if err != nil {
		return nil, &ValidationError{Field: "snapshot_date", Err: err}
	}
	if !present {
		return nil, &ValidationError{Field: "snapshot_date", Err: &DateError{Value: rawDate}}
	}
	date, err := parseSnapshotDate(rawDate)
	if err != nil {
		return nil, &ValidationError{Field: "snapshot_date", Err: err}
	}

	s := &Snapshot{
		Domain:       domain,
		SnapshotDate: date,
	}
	for _, validator := range fieldValidators {
		raw, present, err := stringValue(row, validator.name)
		if err == nil {
			err = validator.assign(s, raw, present)
		}
		if err != nil {
			return nil, &ValidationError{Field: validator.name, Err: err}
		}
	}
	return s, nil
}

// pulls a raw column out of the row; nil or missing is reported as
// absent, anything other than a string is a TypeMismatchError
func stringValue(row Row, name string) (value string, present bool, err error) {
	v, ok := row[name]
	if !ok || v == nil {
		return "", false, nil
	}
	s, ok := v.(string)
	if !ok {
		return "", false, &TypeMismatchError{Value: v}
	}
	if s == "" {
		return "", false, nil
	}
	return s, true, nil
}

func parseSnapshotDate(raw string) (time.Time, error) {
	for _, layout := range dateLayouts {
		t, err := time.Parse(layout, raw)
		if err != nil {
			continue
		}
		return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
	}
	return time.Time{}, &DateError{Value: raw}
}
