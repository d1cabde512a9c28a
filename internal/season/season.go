// Package season maps the raw season values found in match records to a
// canonical starting year.
package season

import (
	"math"
	"strconv"
	"strings"
)

// Normalize returns the canonical year for a raw season value. Split seasons
// such as "2007/08" resolve to their first year. Anything that cannot be read
// as a year yields 0.
func Normalize(v any) int {
	switch s := v.(type) {
	case string:
		return fromString(s)
	case int:
		return s
	case int32:
		return int(s)
	case int64:
		return int(s)
	case float64:
		if math.IsNaN(s) || math.IsInf(s, 0) || s != math.Trunc(s) {
			return 0
		}
		return int(s)
	default:
		return 0
	}
}

func fromString(s string) int {
	if i := strings.Index(s, "/"); i >= 0 {
		s = s[:i]
	}
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0
	}
	return n
}
