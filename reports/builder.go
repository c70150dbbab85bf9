/*
builder.go - Hours, daily and payroll report assembly

PURPOSE:
  Resolves a report request against tenant settings, fetches one
  immutable snapshot (employees, punches in range, carry-in punches),
  and runs the engine per employee.

REQUEST RESOLUTION:
  - Timezone offset and rounding step default from tenant settings;
    callers may override per request.
  - Rounding steps outside the allowed set are coerced to 0, week-start
    values other than Monday coerce to Sunday, a zero overtime threshold
    takes the 40h default. Preserved behavior of the system this engine
    reconstructs; invalid values never fail a request.
  - A tenant with reports disabled fails fast with ErrReportsDisabled
    before any punch is fetched.

EMPTY SELECTION:
  No matching employees is not an error: the report carries an empty
  employee list with the range and rounding echo fields intact.
*/
package reports

import (
	"context"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/crewops/timeledger/engine"
)

// =============================================================================
// REQUEST / REPORT SHAPES
// =============================================================================

// Request holds the caller-supplied parameters shared by all reports.
type Request struct {
	TenantID string
	From     string // local day key, YYYY-MM-DD
	To       string // local day key, YYYY-MM-DD

	// TZOffsetMinutes overrides the tenant's offset when non-nil.
	TZOffsetMinutes *int
	// RoundMinutes overrides the tenant's rounding step when non-nil.
	RoundMinutes *int

	// WeekStartsOn is 0 for Sunday, 1 for Monday (payroll only).
	WeekStartsOn int
	// OvertimeThresholdHours is the weekly overtime threshold; 0 means
	// the 40h default (payroll only).
	OvertimeThresholdHours float64

	// Employee selection. Empty means every employee of the tenant.
	EmployeeIDs []string
	Office      string
	Group       string
}

// DateRange echoes the requested local date range.
type DateRange struct {
	From string
	To   string
}

// HoursReport is the hours and daily view: one summary per employee.
// The daily variant populates FirstIn/LastOut on each day.
type HoursReport struct {
	Range        DateRange
	RoundMinutes int
	Employees    []engine.EmployeeHoursSummary
}

// PayrollEmployee is one employee's payroll rollup.
type PayrollEmployee struct {
	EmployeeID   string
	Name         string
	HourlyRate   decimal.Decimal
	Days         []engine.DaySummary
	TotalMinutes float64
	Weeks        []engine.WeekPayBucket
	TotalPay     decimal.Decimal
}

// PayrollReport is the weekly-overtime payroll view.
type PayrollReport struct {
	Range              DateRange
	RoundMinutes       int
	WeekStartsOn       int
	OvertimeThreshold  float64
	OvertimeMultiplier float64
	Employees          []PayrollEmployee
}

// =============================================================================
// BUILDER
// =============================================================================

// Builder generates reports from the collaborator sources. Stateless;
// safe for concurrent use.
type Builder struct {
	Punches   PunchSource
	Employees Directory
	Settings  SettingsSource
}

func NewBuilder(punches PunchSource, employees Directory, settings SettingsSource) *Builder {
	return &Builder{Punches: punches, Employees: employees, Settings: settings}
}

// Hours builds the hours report: per-employee day summaries and totals.
func (b *Builder) Hours(ctx context.Context, req Request) (*HoursReport, error) {
	return b.hours(ctx, req, false)
}

// Daily builds the daily report: the hours report with first-in and
// last-out instants populated per day.
func (b *Builder) Daily(ctx context.Context, req Request) (*HoursReport, error) {
	return b.hours(ctx, req, true)
}

func (b *Builder) hours(ctx context.Context, req Request, includeInOut bool) (*HoursReport, error) {
	win, employees, err := b.resolve(ctx, req)
	if err != nil {
		return nil, err
	}

	summaries, err := b.buildSummaries(ctx, req.TenantID, employees, win, includeInOut)
	if err != nil {
		return nil, err
	}

	return &HoursReport{
		Range:        DateRange{From: win.FromKey, To: win.ToKey},
		RoundMinutes: win.RoundMinutes,
		Employees:    summaries,
	}, nil
}

// Payroll builds the weekly-overtime payroll report.
func (b *Builder) Payroll(ctx context.Context, req Request) (*PayrollReport, error) {
	win, employees, err := b.resolve(ctx, req)
	if err != nil {
		return nil, err
	}

	win.WeekStartsOn = coerceWeekStart(req.WeekStartsOn)
	if req.OvertimeThresholdHours > 0 {
		win.OvertimeThresholdHours = req.OvertimeThresholdHours
	}

	summaries, err := b.buildSummaries(ctx, req.TenantID, employees, win, false)
	if err != nil {
		return nil, err
	}

	rows := make([]PayrollEmployee, len(summaries))
	for i, s := range summaries {
		weeks := engine.BuildWeekBuckets(s.Days, win.WeekStartsOn, win.OvertimeThresholdHours, employees[i].HourlyRate)
		rows[i] = PayrollEmployee{
			EmployeeID:   s.EmployeeID,
			Name:         s.Name,
			HourlyRate:   employees[i].HourlyRate,
			Days:         s.Days,
			TotalMinutes: s.TotalMinutes,
			Weeks:        weeks,
			TotalPay:     engine.TotalPay(weeks),
		}
	}

	return &PayrollReport{
		Range:              DateRange{From: win.FromKey, To: win.ToKey},
		RoundMinutes:       win.RoundMinutes,
		WeekStartsOn:       win.WeekStartsOn,
		OvertimeThreshold:  win.OvertimeThresholdHours,
		OvertimeMultiplier: engine.OvertimeMultiplier,
		Employees:          rows,
	}, nil
}

// =============================================================================
// SNAPSHOT FETCH
// =============================================================================

// resolve checks the tenant gate, resolves the window against settings,
// and lists the selected employees.
func (b *Builder) resolve(ctx context.Context, req Request) (engine.ReportWindow, []engine.Employee, error) {
	settings, err := b.Settings.TenantSettings(ctx, req.TenantID)
	if err != nil {
		return engine.ReportWindow{}, nil, err
	}
	if !settings.ReportsEnabled {
		return engine.ReportWindow{}, nil, engine.ErrReportsDisabled
	}

	offset := settings.TZOffsetMinutes
	if req.TZOffsetMinutes != nil {
		offset = *req.TZOffsetMinutes
	}

	win, err := engine.NewReportWindow(req.From, req.To, offset)
	if err != nil {
		return engine.ReportWindow{}, nil, err
	}

	round := settings.RoundingMinutes
	if req.RoundMinutes != nil {
		round = *req.RoundMinutes
	}
	win.RoundMinutes = engine.CoerceRounding(round)

	employees, err := b.Employees.ListEmployees(ctx, req.TenantID, EmployeeFilter{
		IDs:    req.EmployeeIDs,
		Office: req.Office,
		Group:  req.Group,
	})
	if err != nil {
		return engine.ReportWindow{}, nil, err
	}
	sort.Slice(employees, func(i, j int) bool { return employees[i].Name < employees[j].Name })

	return win, employees, nil
}

// buildSummaries fetches the punch snapshot in two bulk queries and runs
// the engine per employee. Employees with no punches in range still get
// a zero-filled summary.
func (b *Builder) buildSummaries(ctx context.Context, tenantID string, employees []engine.Employee, win engine.ReportWindow, includeInOut bool) ([]engine.EmployeeHoursSummary, error) {
	summaries := make([]engine.EmployeeHoursSummary, 0, len(employees))
	if len(employees) == 0 {
		return summaries, nil
	}

	ids := make([]string, len(employees))
	for i, e := range employees {
		ids[i] = e.ID
	}

	punches, err := b.Punches.ListPunchesInRange(ctx, tenantID, ids, win.Start, win.End)
	if err != nil {
		return nil, err
	}
	carryIns, err := b.Punches.LastPunchBefore(ctx, tenantID, ids, win.Start)
	if err != nil {
		return nil, err
	}

	byEmployee := make(map[string][]engine.PunchEvent)
	for _, p := range punches {
		byEmployee[p.EmployeeID] = append(byEmployee[p.EmployeeID], p)
	}

	for _, emp := range employees {
		var carryIn *engine.PunchType
		if prior, ok := carryIns[emp.ID]; ok {
			t := prior.Type
			carryIn = &t
		}
		summaries = append(summaries, engine.BuildEmployeeSummary(emp, carryIn, byEmployee[emp.ID], win, includeInOut))
	}
	return summaries, nil
}

func coerceWeekStart(v int) int {
	if v == 1 {
		return 1
	}
	return 0
}
