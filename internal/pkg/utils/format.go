package utils

import (
	"fmt"
	"math"
)

// FormatDuration renders a duration in seconds as "Xh Ym", or "Ym" when the
// duration is under one hour.
func FormatDuration(seconds float64) string {
	if seconds < 0 {
		seconds = 0
	}
	hours := int(math.Floor(seconds / 3600))
	minutes := int(math.Floor(seconds/60)) % 60
	if hours > 0 {
		return fmt.Sprintf("%dh %dm", hours, minutes)
	}
	return fmt.Sprintf("%dm", minutes)
}

// FormatDistanceKm renders a distance for display: meters below one
// kilometer, kilometers with two decimals otherwise.
func FormatDistanceKm(km float64) string {
	if km < 1.0 {
		return fmt.Sprintf("%.0f m", km*1000)
	}
	return fmt.Sprintf("%.2f km", km)
}
