/*
dto.go - Data Transfer Objects for API requests and responses

PURPOSE:
  Defines the JSON structures for API communication. These types decouple
  the internal domain model from the external API contract.

NAMING CONVENTION:
  - *DTO: Response types returned to clients
  - *Request: Request body types from clients

SERIALIZATION RULES:
  - Instants: ISO-8601 UTC (RFC 3339)
  - Date-only values and week keys: YYYY-MM-DD
  - Timezone offsets: signed minutes (local = UTC + offset)
  - Money: numbers rounded to cents

VALIDATION:
  Request bodies carry validator tags and are checked in handlers with
  go-playground/validator. Query parameters are parsed and validated by
  hand; out-of-range rounding steps are coerced, not rejected.

SEE ALSO:
  - handlers.go: Uses these types
  - reports/builder.go: The domain shapes these project
*/
package api

import (
	"time"

	"github.com/crewops/timeledger/engine"
	"github.com/crewops/timeledger/reports"
)

// =============================================================================
// REQUEST TYPES
// =============================================================================

// RecordPunchRequest is the request to record a clock event.
type RecordPunchRequest struct {
	EmployeeID string `json:"employee_id" validate:"required"`
	Type       string `json:"type" validate:"required,oneof=IN OUT BREAK LUNCH"`
	OccurredAt string `json:"occurred_at" validate:"required"` // RFC 3339
	Notes      string `json:"notes" validate:"max=500"`
}

// CreateEmployeeRequest is the request to create or update an employee.
type CreateEmployeeRequest struct {
	ID         string  `json:"id"`
	Name       string  `json:"name" validate:"required"`
	HourlyRate float64 `json:"hourly_rate" validate:"gte=0"`
	Office     string  `json:"office"`
	Group      string  `json:"group"`
}

// CreateLocationRequest is the request to register a location.
type CreateLocationRequest struct {
	ID   string `json:"id"`
	Name string `json:"name" validate:"required"`
}

// TenantSettingsRequest updates a tenant's reporting settings.
type TenantSettingsRequest struct {
	Name            string `json:"name" validate:"required"`
	TZOffsetMinutes int    `json:"tz_offset_minutes" validate:"gte=-840,lte=840"`
	RoundingMinutes int    `json:"rounding_minutes"`
	ReportsEnabled  bool   `json:"reports_enabled"`
}

// =============================================================================
// RESPONSE TYPES
// =============================================================================

// ErrorResponse is the JSON error envelope.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// PunchDTO represents a recorded punch.
type PunchDTO struct {
	ID         string `json:"id"`
	EmployeeID string `json:"employee_id"`
	Type       string `json:"type"`
	OccurredAt string `json:"occurred_at"`
	Notes      string `json:"notes,omitempty"`
}

// EmployeeDTO represents an employee in API responses.
type EmployeeDTO struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	HourlyRate float64 `json:"hourly_rate"`
	Office     string  `json:"office,omitempty"`
	Group      string  `json:"group,omitempty"`
}

// RangeDTO echoes the requested local date range.
type RangeDTO struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// DayDTO is one local calendar day of worked time.
type DayDTO struct {
	Date           string  `json:"date"`
	Minutes        float64 `json:"minutes"`
	HoursDecimal   float64 `json:"hours_decimal"`
	HoursFormatted string  `json:"hours_formatted"`
	FirstIn        *string `json:"first_in,omitempty"`
	LastOut        *string `json:"last_out,omitempty"`
}

// HoursEmployeeDTO is one employee row of the hours/daily report.
type HoursEmployeeDTO struct {
	ID                  string   `json:"id"`
	Name                string   `json:"name"`
	TotalMinutes        float64  `json:"total_minutes"`
	TotalHoursDecimal   float64  `json:"total_hours_decimal"`
	TotalHoursFormatted string   `json:"total_hours_formatted"`
	Days                []DayDTO `json:"days"`
}

// HoursReportDTO is the hours/daily report envelope.
type HoursReportDTO struct {
	Range        RangeDTO           `json:"range"`
	RoundMinutes int                `json:"round_minutes"`
	Employees    []HoursEmployeeDTO `json:"employees"`
}

// WeekDTO is one payroll week bucket.
type WeekDTO struct {
	WeekStart       string  `json:"week_start"`
	Minutes         float64 `json:"minutes"`
	RegularMinutes  float64 `json:"regular_minutes"`
	OvertimeMinutes float64 `json:"overtime_minutes"`
	RegularPay      float64 `json:"regular_pay"`
	OvertimePay     float64 `json:"overtime_pay"`
	TotalPay        float64 `json:"total_pay"`
}

// PayrollEmployeeDTO is one employee row of the payroll report.
type PayrollEmployeeDTO struct {
	ID                  string    `json:"id"`
	Name                string    `json:"name"`
	HourlyRate          float64   `json:"hourly_rate"`
	TotalMinutes        float64   `json:"total_minutes"`
	TotalHoursDecimal   float64   `json:"total_hours_decimal"`
	TotalHoursFormatted string    `json:"total_hours_formatted"`
	Days                []DayDTO  `json:"days"`
	Weeks               []WeekDTO `json:"weeks"`
	TotalPay            float64   `json:"total_pay"`
}

// PayrollReportDTO is the payroll report envelope.
type PayrollReportDTO struct {
	Range              RangeDTO             `json:"range"`
	RoundMinutes       int                  `json:"round_minutes"`
	WeekStartsOn       int                  `json:"week_starts_on"`
	OvertimeThreshold  float64              `json:"overtime_threshold"`
	OvertimeMultiplier float64              `json:"overtime_multiplier"`
	Employees          []PayrollEmployeeDTO `json:"employees"`
}

// AuditRecordDTO is one raw punch in the audit report.
type AuditRecordDTO struct {
	ID           string `json:"id"`
	EmployeeID   string `json:"employee_id"`
	EmployeeName string `json:"employee_name"`
	Office       string `json:"office,omitempty"`
	Group        string `json:"group,omitempty"`
	Type         string `json:"type"`
	OccurredAt   string `json:"occurred_at"`
	Notes        string `json:"notes,omitempty"`
}

// AuditReportDTO is the audit report envelope.
type AuditReportDTO struct {
	Range   RangeDTO         `json:"range"`
	Records []AuditRecordDTO `json:"records"`
}

// =============================================================================
// PROJECTIONS - Domain -> DTO
// =============================================================================

func toDayDTOs(days []engine.DaySummary) []DayDTO {
	dtos := make([]DayDTO, len(days))
	for i, d := range days {
		dtos[i] = DayDTO{
			Date:           d.Date,
			Minutes:        d.Minutes,
			HoursDecimal:   d.HoursDecimal,
			HoursFormatted: d.HoursFormatted,
			FirstIn:        formatInstant(d.FirstIn),
			LastOut:        formatInstant(d.LastOut),
		}
	}
	return dtos
}

func toHoursReportDTO(report *reports.HoursReport) HoursReportDTO {
	employees := make([]HoursEmployeeDTO, len(report.Employees))
	for i, e := range report.Employees {
		employees[i] = HoursEmployeeDTO{
			ID:                  e.EmployeeID,
			Name:                e.Name,
			TotalMinutes:        e.TotalMinutes,
			TotalHoursDecimal:   e.TotalHoursDecimal(),
			TotalHoursFormatted: e.TotalHoursFormatted(),
			Days:                toDayDTOs(e.Days),
		}
	}
	return HoursReportDTO{
		Range:        RangeDTO{From: report.Range.From, To: report.Range.To},
		RoundMinutes: report.RoundMinutes,
		Employees:    employees,
	}
}

func toPayrollReportDTO(report *reports.PayrollReport) PayrollReportDTO {
	employees := make([]PayrollEmployeeDTO, len(report.Employees))
	for i, e := range report.Employees {
		weeks := make([]WeekDTO, len(e.Weeks))
		for j, w := range e.Weeks {
			weeks[j] = WeekDTO{
				WeekStart:       w.WeekStart,
				Minutes:         w.Minutes,
				RegularMinutes:  w.RegularMinutes,
				OvertimeMinutes: w.OvertimeMinutes,
				RegularPay:      w.RegularPay.InexactFloat64(),
				OvertimePay:     w.OvertimePay.InexactFloat64(),
				TotalPay:        w.TotalPay.InexactFloat64(),
			}
		}
		employees[i] = PayrollEmployeeDTO{
			ID:                  e.EmployeeID,
			Name:                e.Name,
			HourlyRate:          e.HourlyRate.InexactFloat64(),
			TotalMinutes:        e.TotalMinutes,
			TotalHoursDecimal:   engine.HoursDecimal(e.TotalMinutes),
			TotalHoursFormatted: engine.FormatHours(e.TotalMinutes),
			Days:                toDayDTOs(e.Days),
			Weeks:               weeks,
			TotalPay:            e.TotalPay.InexactFloat64(),
		}
	}
	return PayrollReportDTO{
		Range:              RangeDTO{From: report.Range.From, To: report.Range.To},
		RoundMinutes:       report.RoundMinutes,
		WeekStartsOn:       report.WeekStartsOn,
		OvertimeThreshold:  report.OvertimeThreshold,
		OvertimeMultiplier: report.OvertimeMultiplier,
		Employees:          employees,
	}
}

func toAuditReportDTO(report *reports.AuditReport) AuditReportDTO {
	records := make([]AuditRecordDTO, len(report.Records))
	for i, rec := range report.Records {
		records[i] = AuditRecordDTO{
			ID:           rec.ID,
			EmployeeID:   rec.EmployeeID,
			EmployeeName: rec.EmployeeName,
			Office:       rec.Office,
			Group:        rec.Group,
			Type:         string(rec.Type),
			OccurredAt:   rec.OccurredAt.UTC().Format(time.RFC3339),
			Notes:        rec.Notes,
		}
	}
	return AuditReportDTO{
		Range:   RangeDTO{From: report.Range.From, To: report.Range.To},
		Records: records,
	}
}

func formatInstant(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.UTC().Format(time.RFC3339)
	return &s
}
