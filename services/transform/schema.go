package transform

import (
	"encoding/json"
	"fmt"
	"strings"

	_ "embed"

	"github.com/xeipuuv/gojsonschema"
)

//go:embed schema/visits_history.json
var visitsHistorySchemaJSON []byte

//go:embed schema/top_countries.json
var topCountriesSchemaJSON []byte

//go:embed schema/age_distribution.json
var ageDistributionSchemaJSON []byte

var (
	visitsHistorySchema   = mustCompileSchema(visitsHistorySchemaJSON)
	topCountriesSchema    = mustCompileSchema(topCountriesSchemaJSON)
	ageDistributionSchema = mustCompileSchema(ageDistributionSchemaJSON)
)

func mustCompileSchema(raw []byte) *gojsonschema.Schema {
	schema, err := gojsonschema.NewSchema(gojsonschema.NewBytesLoader(raw))
	if err != nil {
		panic(err)
	}
	return schema
}

// runs the document through the schema, folding both JSON parse errors
// and structural violations into a SchemaError
func validateDocument(schema *gojsonschema.Schema, doc string) error {
	result, err := schema.Validate(gojsonschema.NewStringLoader(doc))
	if err != nil {
		return &SchemaError{Detail: err.Error()}
	}
	if !result.Valid() {
		details := make([]string, len(result.Errors()))
		for i, violation := range result.Errors() {
			details[i] = violation.String()
		}
		return &SchemaError{Detail: strings.Join(details, "; ")}
	}
	return nil
}

// ParseVisitsHistory validates a visits-history JSON object and returns
// it as a date string to visit count mapping. The empty string maps to
// an empty history without touching the schema.
func ParseVisitsHistory(doc string) (map[string]int64, error) {
	if doc == "" {
		return map[string]int64{}, nil
	}
	if err := validateDocument(visitsHistorySchema, doc); err != nil {
		return nil, err
	}
	out := map[string]int64{}
	if err := json.Unmarshal([]byte(doc), &out); err != nil {
		return nil, &SchemaError{Detail: err.Error()}
	}
	return out, nil
}

type countryTraffic struct {
	CountryAlpha2Code string  `json:"countryAlpha2Code"`
	CountryUrlCode    string  `json:"countryUrlCode"`
	VisitsShare       float64 `json:"visitsShare"`
	VisitsShareChange float64 `json:"visitsShareChange"`
}

// ParseTopCountries validates a top-countries JSON array and projects it
// down to the ordered list of alpha-2 country codes. Input order is the
// "top" ranking and is preserved.
func ParseTopCountries(doc string) ([]string, error) {
	if doc == "" {
		return []string{}, nil
	}
	if err := validateDocument(topCountriesSchema, doc); err != nil {
		return nil, err
	}
	var entries []countryTraffic
	if err := json.Unmarshal([]byte(doc), &entries); err != nil {
		return nil, &SchemaError{Detail: err.Error()}
	}
	codes := make([]string, len(entries))
	for i, entry := range entries {
		codes[i] = entry.CountryAlpha2Code
	}
	return codes, nil
}

type ageBucket struct {
	MinAge int64   `json:"minAge"`
	MaxAge *int64  `json:"maxAge"`
	Value  float64 `json:"value"`
}

// a bucket with both bounds labels as "min - max", otherwise "min+".
// maxAge 0 counts as an open bucket, matching the data provider.
func (b ageBucket) label() string {
	if b.MaxAge != nil && *b.MaxAge > 0 {
		return fmt.Sprintf("%d - %d", b.MinAge, *b.MaxAge)
	}
	return fmt.Sprintf("%d+", b.MinAge)
}

// ParseAgeDistribution validates an age-distribution JSON array and
// projects it into a bucket label to fraction mapping.
func ParseAgeDistribution(doc string) (map[string]float64, error) {
	if doc == "" {
		return map[string]float64{}, nil
	}
	if err := validateDocument(ageDistributionSchema, doc); err != nil {
		return nil, err
	}
	var buckets []ageBucket
	if err := json.Unmarshal([]byte(doc), &buckets); err != nil {
		return nil, &SchemaError{Detail: err.Error()}
	}
	out := make(map[string]float64, len(buckets))
	for _, bucket := range buckets {
		out[bucket.label()] = bucket.Value
	}
	return out, nil
}
