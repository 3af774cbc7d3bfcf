package utils

import "testing"

func TestFormatDuration(t *testing.T) {
	cases := []struct {
		seconds float64
		want    string
	}{
		{0, "0m"},
		{59, "0m"},
		{60, "1m"},
		{1200, "20m"},
		{3600, "1h 0m"},
		{5400, "1h 30m"},
		{90000, "25h 0m"},
		{-10, "0m"},
	}
	for _, c := range cases {
		if got := FormatDuration(c.seconds); got != c.want {
			t.Errorf("FormatDuration(%f) = %q, want %q", c.seconds, got, c.want)
		}
	}
}

func TestFormatDistanceKm(t *testing.T) {
	cases := []struct {
		km   float64
		want string
	}{
		{0.04, "40 m"},
		{0.999, "999 m"},
		{1.0, "1.00 km"},
		{1.256, "1.26 km"},
		{12.5, "12.50 km"},
	}
	for _, c := range cases {
		if got := FormatDistanceKm(c.km); got != c.want {
			t.Errorf("FormatDistanceKm(%f) = %q, want %q", c.km, got, c.want)
		}
	}
}
