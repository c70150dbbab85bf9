/*
payroll.go - Weekly overtime split and pay computation

PURPOSE:
  Groups daily minutes into weeks anchored to a configurable start
  weekday, splits each week into regular and overtime minutes against the
  weekly threshold, and computes pay at the employee's hourly rate with a
  fixed 1.5x overtime multiplier.

WEEK ANCHORING:
  A day's week key is found by walking back (weekday - weekStartsOn + 7)
  mod 7 days from its date. Weeks are anchored to the configured start
  weekday regardless of the report window's own boundaries, so a window
  that cuts across a week produces a partial bucket for it.

MONEY:
  Pay uses decimal.Decimal throughout and is rounded to cents only at the
  end of each component. regular + overtime minutes always reassemble the
  week's total minutes.
*/
package engine

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

var sixty = decimal.NewFromInt(60)

// overtimeRate is OvertimeMultiplier as a decimal for pay math.
var overtimeRate = decimal.NewFromFloat(OvertimeMultiplier)

// WeekStartKey returns the local day key of the configured week-start day
// for the week containing the given day key. weekStartsOn is 0 for
// Sunday, 1 for Monday.
func WeekStartKey(dayKey string, weekStartsOn int) string {
	day, err := time.ParseInLocation(DayKeyLayout, dayKey, time.UTC)
	if err != nil {
		return dayKey
	}
	back := (int(day.Weekday()) - weekStartsOn + 7) % 7
	return day.AddDate(0, 0, -back).Format(DayKeyLayout)
}

// BuildWeekBuckets groups an employee's ordered day summaries into week
// buckets, sorted ascending by week-start key, each split into regular
// and overtime minutes with pay at the given hourly rate.
func BuildWeekBuckets(days []DaySummary, weekStartsOn int, thresholdHours float64, hourlyRate decimal.Decimal) []WeekPayBucket {
	weekMinutes := make(map[string]float64)
	for _, d := range days {
		weekMinutes[WeekStartKey(d.Date, weekStartsOn)] += d.Minutes
	}

	keys := make([]string, 0, len(weekMinutes))
	for k := range weekMinutes {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	thresholdMinutes := thresholdHours * 60

	buckets := make([]WeekPayBucket, 0, len(keys))
	for _, k := range keys {
		minutes := weekMinutes[k]
		regular := minutes
		overtime := 0.0
		if regular > thresholdMinutes {
			regular = thresholdMinutes
			overtime = minutes - thresholdMinutes
		}

		regularPay := minutesToHours(regular).Mul(hourlyRate).Round(2)
		overtimePay := minutesToHours(overtime).Mul(hourlyRate).Mul(overtimeRate).Round(2)

		buckets = append(buckets, WeekPayBucket{
			WeekStart:       k,
			Minutes:         minutes,
			RegularMinutes:  regular,
			OvertimeMinutes: overtime,
			RegularPay:      regularPay,
			OvertimePay:     overtimePay,
			TotalPay:        regularPay.Add(overtimePay),
		})
	}
	return buckets
}

// TotalPay sums the total pay across week buckets.
func TotalPay(buckets []WeekPayBucket) decimal.Decimal {
	total := decimal.Zero
	for _, b := range buckets {
		total = total.Add(b.TotalPay)
	}
	return total
}

func minutesToHours(minutes float64) decimal.Decimal {
	return decimal.NewFromFloat(minutes).Div(sixty)
}
