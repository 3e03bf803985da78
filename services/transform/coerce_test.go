package transform

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPercentToFraction(t *testing.T) {
	cases := []struct {
		input  string
		expect float64
	}{
		{"30%", 0.3},
		{"7.5%", 0.075},
		{"100%", 1},
		{"0%", 0},
		{"-2.5%", -0.025},
		{"42", 0.42},
	}
	for _, test := range cases {
		got, err := PercentToFraction(test.input)
		require.NoError(t, err, test.input)
		require.InDelta(t, test.expect, got, 1e-9, test.input)
	}

	for _, input := range []string{"abc%", "", "12x%", "%"} {
		_, err := PercentToFraction(input)
		var cerr *CoercionError
		require.ErrorAs(t, err, &cerr, input)
	}
}

func TestDurationSeconds(t *testing.T) {
	cases := []struct {
		input  string
		expect int64
	}{
		{"0:05:30", 330},
		{"1:00:00", 3600},
		{"00:00:01", 1},
		{"25:00:01", 90001},
		// components are deliberately not range checked
		{"0:61:00", 3660},
	}
	for _, test := range cases {
		got, err := DurationSeconds(test.input)
		require.NoError(t, err, test.input)
		require.Equal(t, test.expect, got, test.input)
	}

	for _, input := range []string{"5:30", "1:2:3:4", "a:b:c", "1:xx:00", ""} {
		_, err := DurationSeconds(input)
		var cerr *CoercionError
		require.ErrorAs(t, err, &cerr, input)
	}
}

func TestCoerceScalars(t *testing.T) {
	v, err := CoerceInt("-12345")
	require.NoError(t, err)
	require.Equal(t, int64(-12345), v)

	_, err = CoerceInt("3.5")
	var cerr *CoercionError
	require.ErrorAs(t, err, &cerr)

	f, err := CoerceFloat("3.5")
	require.NoError(t, err)
	require.Equal(t, 3.5, f)

	_, err = CoerceFloat("many")
	require.True(t, errors.As(err, &cerr))
}
