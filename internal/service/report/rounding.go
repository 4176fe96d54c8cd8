package report

import (
	"math"
	"time"
)

// roundHalfUp rounds to the nearest integer, ties toward positive infinity.
func roundHalfUp(x float64) int {
	return int(math.Floor(x + 0.5))
}

func roundTo(x float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Floor(x*p+0.5) / p
}

func hours(netMinutes int) float64 {
	return float64(netMinutes) / 60
}

// daySpan is the inclusive number of calendar days between from and to.
func daySpan(from, to time.Time) int {
	days := int(math.Round(to.Sub(from).Hours()/24)) + 1
	if days < 1 {
		return 1
	}
	return days
}
