package transform

import (
	"strconv"
	"strings"
)

// PercentToFraction converts a percentage string like "30%" into the
// fraction 0.3. The "%" suffix is optional in the source data.
func PercentToFraction(s string) (float64, error) {
	f, err := strconv.ParseFloat(strings.TrimSuffix(s, "%"), 64)
	if err != nil {
		return 0, &CoercionError{Value: s, Target: "percentage"}
	}
	return f / 100, nil
}

// DurationSeconds converts an "h:mm:ss" duration string into seconds.
// Hours are unbounded and no component is range checked, matching the
// upstream provider's formatting.
func DurationSeconds(s string) (int64, error) {
	parts := strings.Split(s, ":")
	if len(parts) != 3 {
		return 0, &CoercionError{Value: s, Target: "h:mm:ss duration"}
	}
	var components [3]int64
	for i, p := range parts {
		v, err := strconv.ParseInt(p, 10, 64)
		if err != nil {
			return 0, &CoercionError{Value: s, Target: "h:mm:ss duration"}
		}
		components[i] = v
	}
	return components[0]*3600 + components[1]*60 + components[2], nil
}

func CoerceInt(s string) (int64, error) {
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, &CoercionError{Value: s, Target: "integer"}
	}
	return v, nil
}

func CoerceFloat(s string) (float64, error) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, &CoercionError{Value: s, Target: "number"}
	}
	return v, nil
}
