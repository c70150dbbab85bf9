// rounding.go - Rounding policy and hour formatting.
//
// Rounding is applied per day, after bucketing, before summing into
// totals. Totals are sums of already-rounded days and will generally NOT
// equal round(sum of raw days); payroll consistency with historical data
// depends on preserving that exactly.
package engine

import (
	"fmt"
	"math"
)

// RoundMinutes applies the rounding policy to a raw minute count.
// step == 0 rounds to 2 decimal places with no bucketing. step > 0 snaps
// to the nearest multiple of step, half away from zero.
func RoundMinutes(raw float64, step int) float64 {
	if step <= 0 {
		return round2(raw)
	}
	return math.Round(raw/float64(step)) * float64(step)
}

// HoursDecimal converts minutes to decimal hours, 2 places.
func HoursDecimal(minutes float64) float64 {
	return round2(minutes / 60)
}

// FormatHours renders minutes as H:MM. Negative totals should not occur,
// but the floor/mod rule handles them without panicking (-90 → "-2:30").
func FormatHours(minutes float64) string {
	r := math.Round(minutes)
	h := int(math.Floor(r / 60))
	m := int(math.Abs(r)) % 60
	return fmt.Sprintf("%d:%02d", h, m)
}

func round2(x float64) float64 {
	return math.Round(x*100) / 100
}
