package graph

import (
	"testing"
	"time"
)

func TestParseDate(t *testing.T) {
	tests := []struct {
		in   any
		want string // YYYY-MM-DD, empty for a rejected value
	}{
		{"2024-03-01", "2024-03-01"},
		{"2024-03-01T10:30:00Z", "2024-03-01"},
		{"2024-03-01T10:30:00.123+02:00", "2024-03-01"},
		{"2024-03-01T10:30:00", "2024-03-01"},
		{"2024-03-01 10:30:00", "2024-03-01"},
		{"2024-03-01T10:30", "2024-03-01"},
		{"15/04/2024", "2024-04-15"},
		{float64(1709251200000), "2024-03-01"},
		{"  2024-03-01  ", "2024-03-01"},
		{"", ""},
		{"demain", ""},
		{nil, ""},
		{true, ""},
	}
	for _, tt := range tests {
		got, ok := parseDate(tt.in)
		if tt.want == "" {
			if ok {
				t.Errorf("parseDate(%#v) = %v, want rejection", tt.in, got)
			}
			continue
		}
		if !ok {
			t.Errorf("parseDate(%#v) rejected, want %s", tt.in, tt.want)
			continue
		}
		if s := got.Format("2006-01-02"); s != tt.want {
			t.Errorf("parseDate(%#v) = %s, want %s", tt.in, s, tt.want)
		}
	}
}

func TestDayDistance(t *testing.T) {
	d := func(s string) time.Time {
		v, err := time.Parse(time.RFC3339, s)
		if err != nil {
			t.Fatal(err)
		}
		return v
	}
	tests := []struct {
		a, b string
		want int
	}{
		{"2024-03-01T00:00:00Z", "2024-03-01T23:59:59Z", 0},
		{"2024-03-01T23:59:00Z", "2024-03-02T00:01:00Z", 1},
		{"2024-03-08T00:00:00Z", "2024-03-01T12:00:00Z", 7},
		// Across the DST change in Europe; calendar dates are compared.
		{"2024-03-30T12:00:00+01:00", "2024-04-01T12:00:00+02:00", 2},
	}
	for _, tt := range tests {
		if got := dayDistance(d(tt.a), d(tt.b)); got != tt.want {
			t.Errorf("dayDistance(%s, %s) = %d, want %d", tt.a, tt.b, got, tt.want)
		}
	}
}
