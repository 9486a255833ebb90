package graph

import (
	"math"
	"strings"
	"time"

	"github.com/alfredjeanlab/maintgraph/internal/model"
)

var dateLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04",
	"2006-01-02",
	"02/01/2006",
}

// parseDate accepts ISO-8601 strings, French dd/mm/yyyy dates, and numeric
// Unix milliseconds.
func parseDate(v any) (time.Time, bool) {
	switch x := v.(type) {
	case string:
		s := strings.TrimSpace(x)
		if s == "" {
			return time.Time{}, false
		}
		for _, layout := range dateLayouts {
			if t, err := time.Parse(layout, s); err == nil {
				return t, true
			}
		}
	case float64:
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return time.Time{}, false
		}
		return time.UnixMilli(int64(x)).UTC(), true
	case time.Time:
		return x, !x.IsZero()
	}
	return time.Time{}, false
}

// firstDate returns the first field, in priority order, that holds a parsable date.
func firstDate(rec model.Record, fields []string) (time.Time, bool) {
	for _, f := range fields {
		if t, ok := parseDate(rec[f]); ok {
			return t, true
		}
	}
	return time.Time{}, false
}

// midnight strips the time of day, keeping the calendar date as written.
func midnight(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// dayDistance is the absolute number of calendar days between a and b.
func dayDistance(a, b time.Time) int {
	h := midnight(a).Sub(midnight(b)).Hours()
	return int(math.Round(math.Abs(h) / 24))
}
