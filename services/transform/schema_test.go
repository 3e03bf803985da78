package transform

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseVisitsHistory(t *testing.T) {
	history, err := ParseVisitsHistory(`{"2024-04-01": 5000, "2024-04-02": 5500}`)
	require.NoError(t, err)
	require.Equal(t, map[string]int64{
		"2024-04-01": 5000,
		"2024-04-02": 5500,
	}, history)

	history, err = ParseVisitsHistory("")
	require.NoError(t, err)
	require.Empty(t, history)

	var serr *SchemaError
	for _, input := range []string{
		`{"april": 5000}`,
		`{"2024-04-01": -1}`,
		`{"2024-04-01": "5000"}`,
		`{"2024-04-01": 1.5}`,
		`not json`,
	} {
		_, err := ParseVisitsHistory(input)
		require.ErrorAs(t, err, &serr, input)
	}
}

func TestParseTopCountries(t *testing.T) {
	codes, err := ParseTopCountries(`[
		{"countryAlpha2Code": "US", "countryUrlCode": "united-states", "visitsShare": 0.4, "visitsShareChange": 0.01},
		{"countryAlpha2Code": "DE", "countryUrlCode": "germany", "visitsShare": 0.2, "visitsShareChange": -0.02}
	]`)
	require.NoError(t, err)
	require.Equal(t, []string{"US", "DE"}, codes)

	codes, err = ParseTopCountries("")
	require.NoError(t, err)
	require.Empty(t, codes)

	var serr *SchemaError
	for _, input := range []string{
		// missing visitsShare
		`[{"countryAlpha2Code": "US", "countryUrlCode": "united-states", "visitsShareChange": 0.01}]`,
		// lowercase alpha-2 code
		`[{"countryAlpha2Code": "us", "countryUrlCode": "united-states", "visitsShare": 0.4, "visitsShareChange": 0.01}]`,
		// unknown property
		`[{"countryAlpha2Code": "US", "countryUrlCode": "united-states", "visitsShare": 0.4, "visitsShareChange": 0.01, "extra": 1}]`,
	} {
		_, err := ParseTopCountries(input)
		require.ErrorAs(t, err, &serr, input)
	}
}

func TestParseAgeDistribution(t *testing.T) {
	buckets, err := ParseAgeDistribution(`[
		{"minAge": 18, "maxAge": 34, "value": 0.25},
		{"minAge": 55, "value": 0.5}
	]`)
	require.NoError(t, err)
	require.Equal(t, map[string]float64{
		"18 - 34": 0.25,
		"55+":     0.5,
	}, buckets)

	// maxAge 0 counts as an open-ended bucket
	buckets, err = ParseAgeDistribution(`[{"minAge": 65, "maxAge": 0, "value": 0.1}]`)
	require.NoError(t, err)
	require.Equal(t, map[string]float64{"65+": 0.1}, buckets)

	buckets, err = ParseAgeDistribution("")
	require.NoError(t, err)
	require.Empty(t, buckets)

	var serr *SchemaError
	for _, input := range []string{
		`[{"maxAge": 34, "value": 0.25}]`,
		`[{"minAge": -1, "value": 0.25}]`,
		`[{"minAge": 18}]`,
	} {
		_, err := ParseAgeDistribution(input)
		require.ErrorAs(t, err, &serr, input)
	}
}
