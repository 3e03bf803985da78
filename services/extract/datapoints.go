package extract

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Columns is the tabular layout of an extracted snapshot, in CSV order.
var Columns = []string{
	"domain",
	"snapshot_date",
	"global_rank",
	"total_visits",
	"bounce_rate",
	"pages_per_visit",
	"avg_visit_duration",
	"one_month_rank_change",
	"two_month_rank_change",
	"visits_history",
	"last_month_change_in_traffic",
	"top_countries",
	"age_distribution",
}

type appData struct {
	Layout struct {
		Data struct {
			Domain       string         `json:"domain"`
			SnapshotDate string         `json:"snapshotDate"`
			Overview     map[string]any `json:"overview"`
			Ranking      map[string]any `json:"ranking"`
			Traffic      struct {
				VisitsHistory          json.RawMessage `json:"visitsHistory"`
				VisitsTotalCountChange any             `json:"visitsTotalCountChange"`
			} `json:"traffic"`
			Geography struct {
				TopCountriesTraffics json.RawMessage `json:"topCountriesTraffics"`
			} `json:"geography"`
			Demographics struct {
				AgeDistribution json.RawMessage `json:"ageDistribution"`
			} `json:"demographics"`
		} `json:"data"`
	} `json:"layout"`
}

// DataPoints flattens one app-data payload into a column name to string
// value row. Scalars keep their source rendering (numbers are decoded
// with UseNumber so nothing is reformatted), sub-documents stay as JSON
// strings, and absent values become the empty string.
func DataPoints(payload string) (map[string]string, error) {
	var doc appData
	decoder := json.NewDecoder(strings.NewReader(payload))
	decoder.UseNumber()
	if err := decoder.Decode(&doc); err != nil {
		return nil, fmt.Errorf("parse app data: %w", err)
	}

	data := doc.Layout.Data
	if data.Domain == "" {
		return nil, errors.New("app data carries no domain")
	}

	row := map[string]string{
		"domain":                       data.Domain,
		"snapshot_date":                data.SnapshotDate,
		"global_rank":                  scalarString(data.Overview["globalRank"]),
		"total_visits":                 scalarString(data.Overview["visitsTotalCount"]),
		"bounce_rate":                  scalarString(data.Overview["bounceRateFormatted"]),
		"pages_per_visit":              scalarString(data.Overview["pagesPerVisit"]),
		"avg_visit_duration":           scalarString(data.Overview["visitsAvgDurationFormatted"]),
		"one_month_rank_change":        scalarString(data.Overview["globalRankChange"]),
		"two_month_rank_change":        scalarString(data.Ranking["globalRankChange"]),
		"visits_history":               subDocument(data.Traffic.VisitsHistory, "{}"),
		"last_month_change_in_traffic": scalarString(data.Traffic.VisitsTotalCountChange),
		"top_countries":                subDocument(data.Geography.TopCountriesTraffics, "[]"),
		"age_distribution":             subDocument(data.Demographics.AgeDistribution, "[]"),
	}
	return row, nil
}

func scalarString(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case json.Number:
		return t.String()
	case bool:
		return strconv.FormatBool(t)
	default:
		return fmt.Sprint(t)
	}
}

func subDocument(raw json.RawMessage, empty string) string {
	if len(raw) == 0 || string(raw) == "null" {
		return empty
	}
	return string(raw)
}
