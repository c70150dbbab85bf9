/*
window.go - Report window parsing and local-day arithmetic

PURPOSE:
  A report is requested in local calendar dates ("2025-03-01".."2025-03-15")
  plus a fixed signed UTC offset. This file converts that request into the
  absolute [Start, End) instant pair the rest of the engine works with, and
  holds the local-day helpers shared by the bucketer and the payroll
  aggregator.

OFFSET MODEL:
  local = UTC + TZOffsetMinutes. Deliberately a fixed minute offset rather
  than an IANA zone: no daylight-saving transitions are modeled. Callers
  supply the offset for the reporting instant they care about.

ROUNDING COERCION:
  Rounding steps outside {0,5,10,15,20,30} are silently coerced to 0 rather
  than rejected. Existing payroll data was produced under that rule, so the
  engine preserves it.

SEE ALSO:
  - bucket.go: Uses LocalDayKey / nextLocalMidnight
  - errors.go: InvalidWindowError returned by NewReportWindow
*/
package engine

import "time"

// DayKeyLayout is the YYYY-MM-DD format used for all date-only values.
const DayKeyLayout = "2006-01-02"

// DefaultOvertimeThresholdHours is the weekly hour count above which the
// overtime multiplier applies, absent an explicit override.
const DefaultOvertimeThresholdHours = 40.0

// allowedRoundingSteps is the enumerated set of valid rounding steps.
var allowedRoundingSteps = map[int]bool{0: true, 5: true, 10: true, 15: true, 20: true, 30: true}

// ReportWindow is the fully-resolved input configuration for one report.
type ReportWindow struct {
	// FromKey and ToKey echo the requested local date range.
	FromKey string
	ToKey   string

	// Start and End are the absolute instants of the window: local
	// midnight opening FromKey and local midnight after ToKey. End is
	// exclusive.
	Start time.Time
	End   time.Time

	TZOffsetMinutes        int
	RoundMinutes           int
	WeekStartsOn           int // 0 = Sunday, 1 = Monday
	OvertimeThresholdHours float64
}

// NewReportWindow validates a local date range and resolves it against the
// given offset. Returns an InvalidWindowError (unwrapping to
// ErrInvalidWindow) for missing or malformed dates or from > to.
func NewReportWindow(fromKey, toKey string, offsetMinutes int) (ReportWindow, error) {
	if fromKey == "" || toKey == "" {
		return ReportWindow{}, &InvalidWindowError{From: fromKey, To: toKey, Reason: "from and to are required"}
	}

	from, err := time.ParseInLocation(DayKeyLayout, fromKey, time.UTC)
	if err != nil {
		return ReportWindow{}, &InvalidWindowError{From: fromKey, To: toKey, Reason: "from is not a valid YYYY-MM-DD date"}
	}
	to, err := time.ParseInLocation(DayKeyLayout, toKey, time.UTC)
	if err != nil {
		return ReportWindow{}, &InvalidWindowError{From: fromKey, To: toKey, Reason: "to is not a valid YYYY-MM-DD date"}
	}
	if from.After(to) {
		return ReportWindow{}, &InvalidWindowError{From: fromKey, To: toKey, Reason: "from is after to"}
	}

	offset := time.Duration(offsetMinutes) * time.Minute
	return ReportWindow{
		FromKey:                fromKey,
		ToKey:                  toKey,
		Start:                  from.Add(-offset),
		End:                    to.AddDate(0, 0, 1).Add(-offset),
		TZOffsetMinutes:        offsetMinutes,
		WeekStartsOn:           0,
		OvertimeThresholdHours: DefaultOvertimeThresholdHours,
	}, nil
}

// CoerceRounding returns step if it is one of the allowed values, else 0.
func CoerceRounding(step int) int {
	if allowedRoundingSteps[step] {
		return step
	}
	return 0
}

// LocalDayKey returns the YYYY-MM-DD key of the local calendar day that
// contains the absolute instant t under the given offset.
func LocalDayKey(t time.Time, offsetMinutes int) string {
	return t.UTC().Add(time.Duration(offsetMinutes) * time.Minute).Format(DayKeyLayout)
}

// nextLocalMidnight returns the absolute instant of the first local
// midnight strictly after t. Computed by shifting t into local time,
// truncating to the date, advancing one day, and shifting back.
func nextLocalMidnight(t time.Time, offsetMinutes int) time.Time {
	offset := time.Duration(offsetMinutes) * time.Minute
	local := t.UTC().Add(offset)
	nextDay := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, time.UTC).AddDate(0, 0, 1)
	return nextDay.Add(-offset)
}
