/*
Package engine provides the core time ledger reconstruction and payroll
aggregation engine.

PURPOSE:
  This package turns a raw, possibly-gapped stream of clock events
  (IN/OUT/BREAK/LUNCH) into bounded worked-time intervals, buckets those
  intervals into local calendar days under a fixed UTC offset, applies the
  configured rounding policy, and aggregates the result into hours, daily,
  and weekly-overtime/payroll summaries.

KEY CONCEPTS IN THIS FILE (types.go):
  - PunchEvent:   An immutable clock event at an absolute instant
  - WorkInterval: A reconstructed [start, end) span of continuous IN status
  - Employee:     Directory record with the hourly rate used for payroll
  - TenantSettings: Per-tenant reporting configuration

DESIGN PRINCIPLES:
  1. Purity: Every function in this package is deterministic and
     side-effect-free. Same punches + same settings = same report.
  2. Immutability: Punches are facts. The engine only reads them;
     corrections happen upstream, never here.
  3. Precision: Money uses decimal.Decimal. Minutes stay in float64
     because the upstream system stored them that way and payroll
     totals must reproduce its numbers exactly.
  4. Explicit inputs: No settings lookup, no clock access, no store
     access. Callers pass everything in.

USAGE:
  intervals := engine.ReconstructIntervals(carryIn, punches, win.Start, win.End)
  days := engine.BuildDaySummaries(intervals, punches, win, false)
  weeks := engine.BuildWeekBuckets(days, win.WeekStartsOn, win.OvertimeThresholdHours, rate)

SEE ALSO:
  - interval.go: Interval reconstruction from the punch stream
  - bucket.go:   Local-day splitting and first-in/last-out extraction
  - rounding.go: Rounding policy and hour formatting
  - payroll.go:  Weekly overtime split and pay computation
*/
package engine

import (
	"time"

	"github.com/shopspring/decimal"
)

// =============================================================================
// PUNCH EVENTS - Immutable clock facts
// =============================================================================

// PunchType is the kind of clock event a worker recorded.
type PunchType string

const (
	PunchIn    PunchType = "IN"
	PunchOut   PunchType = "OUT"
	PunchBreak PunchType = "BREAK"
	PunchLunch PunchType = "LUNCH"
)

// IsWorking reports whether this punch type opens a worked interval.
// Only IN does: OUT, BREAK and LUNCH all terminate one. Break and lunch
// time is not tracked separately as paid or unpaid.
func (t PunchType) IsWorking() bool { return t == PunchIn }

// Valid reports whether t is one of the four known punch types.
func (t PunchType) Valid() bool {
	switch t {
	case PunchIn, PunchOut, PunchBreak, PunchLunch:
		return true
	}
	return false
}

// PunchEvent is a single clock event. Punches are immutable facts created
// by the clock-in surface; the engine only ever reads them.
type PunchEvent struct {
	ID         string
	EmployeeID string
	Type       PunchType
	OccurredAt time.Time // absolute instant, always UTC
	Notes      string
}

// =============================================================================
// WORK INTERVALS - Derived spans of continuous IN status
// =============================================================================

// WorkInterval is a reconstructed [Start, End) span of continuous work.
// Invariant: End.After(Start). Intervals are ephemeral: recomputed on every
// request, clipped to the report window, never persisted.
type WorkInterval struct {
	Start time.Time
	End   time.Time
}

// Minutes returns the interval duration in minutes.
func (w WorkInterval) Minutes() float64 {
	return w.End.Sub(w.Start).Minutes()
}

// =============================================================================
// EMPLOYEES & SETTINGS - Collaborator-supplied inputs
// =============================================================================

// Employee is the directory record the engine needs for reporting:
// identity for display, hourly rate for payroll, office/group for audit.
type Employee struct {
	ID         string
	Name       string
	HourlyRate decimal.Decimal
	Office     string
	Group      string
}

// TenantSettings is the per-tenant reporting configuration bundle.
// The engine never fetches it; callers resolve it and pass it in.
type TenantSettings struct {
	// TZOffsetMinutes is the signed offset such that local = UTC + offset.
	// A fixed offset, not a zone name: the engine does not consult a
	// timezone database and models no daylight-saving transitions.
	TZOffsetMinutes int

	// RoundingMinutes is the default rounding step for reports.
	RoundingMinutes int

	// ReportsEnabled gates all report generation for the tenant.
	// Callers must refuse before invoking the engine when false.
	ReportsEnabled bool
}

// =============================================================================
// SUMMARIES - Derived report rows
// =============================================================================

// DaySummary is one local calendar day of worked time, post-rounding.
// FirstIn/LastOut are the literal first IN punch and last non-IN punch of
// the day, taken from the raw punch list, not from reconstructed intervals.
type DaySummary struct {
	Date           string // local day key, YYYY-MM-DD
	Minutes        float64
	HoursDecimal   float64
	HoursFormatted string
	FirstIn        *time.Time
	LastOut        *time.Time
}

// EmployeeHoursSummary is the per-employee rollup of a report window.
// TotalMinutes is the sum of already-rounded daily minutes: rounding is
// applied per day, never to the total.
type EmployeeHoursSummary struct {
	EmployeeID   string
	Name         string
	Days         []DaySummary
	TotalMinutes float64
}

// TotalHoursDecimal returns the total as decimal hours, 2 places.
func (s EmployeeHoursSummary) TotalHoursDecimal() float64 {
	return HoursDecimal(s.TotalMinutes)
}

// TotalHoursFormatted returns the total in H:MM form.
func (s EmployeeHoursSummary) TotalHoursFormatted() string {
	return FormatHours(s.TotalMinutes)
}

// =============================================================================
// PAYROLL - Weekly overtime buckets
// =============================================================================

// OvertimeMultiplier is the pay multiplier applied to overtime hours.
// Fixed policy, not per-tenant configuration.
const OvertimeMultiplier = 1.5

// WeekPayBucket is one week of minutes split into regular and overtime
// against the weekly threshold, with pay computed at the employee's rate.
type WeekPayBucket struct {
	WeekStart       string // local day key of the configured week-start day
	Minutes         float64
	RegularMinutes  float64
	OvertimeMinutes float64
	RegularPay      decimal.Decimal
	OvertimePay     decimal.Decimal
	TotalPay        decimal.Decimal
}
