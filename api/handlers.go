/*
handlers.go - HTTP API handlers for the time ledger service

PURPOSE:
  Exposes punch recording, the registry, and the reporting engine via
  REST. Handles HTTP request/response, JSON serialization, and delegates
  to the reports builder and the store.

ENDPOINTS:
  Punches:
    POST   /api/tenants/{tenantID}/punches           Record a clock event

  Registry:
    GET    /api/tenants/{tenantID}/employees         List employees
    POST   /api/tenants/{tenantID}/employees         Create/update employee
    GET    /api/tenants/{tenantID}/employees/{id}    Get employee
    GET    /api/tenants/{tenantID}/locations         List locations
    POST   /api/tenants/{tenantID}/locations         Create location
    GET    /api/tenants/{tenantID}/settings          Get reporting settings
    PUT    /api/tenants/{tenantID}/settings          Update reporting settings

  Reports:
    GET    /api/tenants/{tenantID}/reports/hours     Hours report
    GET    /api/tenants/{tenantID}/reports/daily     Daily report (first-in/last-out)
    GET    /api/tenants/{tenantID}/reports/payroll   Weekly overtime payroll
    GET    /api/tenants/{tenantID}/reports/audit     Raw punch audit view

REPORT QUERY PARAMETERS:
  from, to              Local date range, YYYY-MM-DD (required)
  tz_offset             Signed minutes, local = UTC + offset (default: tenant)
  round                 Rounding step 0/5/10/15/20/30 (default: tenant;
                        other values coerce to 0)
  employee_ids          Comma-separated employee selection
  office, group         Directory filters
  week_starts_on        0 Sunday, 1 Monday (payroll)
  overtime_threshold    Weekly hours before overtime (payroll, default 40)
  type                  Punch type filter (audit)
  limit                 Page size, default 200, capped at 1000 (audit)

ERROR HANDLING:
  - 400: Invalid window, malformed body, validation failure
  - 403: Tenant has reports disabled
  - 404: Unknown tenant or employee
  - 500: Store failures

SEE ALSO:
  - dto.go: Request/response data structures
  - server.go: Router setup and middleware
  - reports/builder.go: Report assembly
*/
package api

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/crewops/timeledger/engine"
	"github.com/crewops/timeledger/logging"
	"github.com/crewops/timeledger/reports"
	"github.com/crewops/timeledger/store/sqlite"
)

// =============================================================================
// HANDLER CONTEXT
// =============================================================================

// Handler holds all dependencies for HTTP handlers.
type Handler struct {
	Store    *sqlite.Store
	Reports  *reports.Builder
	Validate *validator.Validate

	log *logging.Logger
}

// NewHandler creates a handler backed by the given store. The store
// serves as all three report sources.
func NewHandler(store *sqlite.Store, log *logging.Logger) *Handler {
	return &Handler{
		Store:    store,
		Reports:  reports.NewBuilder(store, store, store),
		Validate: validator.New(),
		log:      log.WithComponent("api"),
	}
}

// =============================================================================
// PUNCH HANDLERS
// =============================================================================

// RecordPunch records a single clock event.
func (h *Handler) RecordPunch(w http.ResponseWriter, r *http.Request) {
	tenantID := chi.URLParam(r, "tenantID")

	var req RecordPunchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if err := h.Validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, "Validation failed", err)
		return
	}

	occurredAt, err := time.Parse(time.RFC3339, req.OccurredAt)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid occurred_at (use RFC 3339)", err)
		return
	}

	if _, err := h.Store.GetEmployee(r.Context(), tenantID, req.EmployeeID); err != nil {
		h.writeDomainError(w, err)
		return
	}

	punch, err := h.Store.RecordPunch(r.Context(), tenantID, engine.PunchEvent{
		EmployeeID: req.EmployeeID,
		Type:       engine.PunchType(req.Type),
		OccurredAt: occurredAt,
		Notes:      req.Notes,
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to record punch", err)
		return
	}

	writeJSON(w, http.StatusCreated, PunchDTO{
		ID:         punch.ID,
		EmployeeID: punch.EmployeeID,
		Type:       string(punch.Type),
		OccurredAt: punch.OccurredAt.UTC().Format(time.RFC3339),
		Notes:      punch.Notes,
	})
}

// =============================================================================
// REGISTRY HANDLERS
// =============================================================================

// ListEmployees returns the tenant's employees.
func (h *Handler) ListEmployees(w http.ResponseWriter, r *http.Request) {
	tenantID := chi.URLParam(r, "tenantID")

	employees, err := h.Store.ListEmployees(r.Context(), tenantID, reports.EmployeeFilter{
		Office: r.URL.Query().Get("office"),
		Group:  r.URL.Query().Get("group"),
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list employees", err)
		return
	}

	dtos := make([]EmployeeDTO, len(employees))
	for i, e := range employees {
		dtos[i] = toEmployeeDTO(e)
	}
	writeJSON(w, http.StatusOK, dtos)
}

// GetEmployee returns a single employee.
func (h *Handler) GetEmployee(w http.ResponseWriter, r *http.Request) {
	tenantID := chi.URLParam(r, "tenantID")
	id := chi.URLParam(r, "id")

	emp, err := h.Store.GetEmployee(r.Context(), tenantID, id)
	if err != nil {
		h.writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toEmployeeDTO(emp))
}

// CreateEmployee creates or updates an employee.
func (h *Handler) CreateEmployee(w http.ResponseWriter, r *http.Request) {
	tenantID := chi.URLParam(r, "tenantID")

	var req CreateEmployeeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if err := h.Validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, "Validation failed", err)
		return
	}

	emp, err := h.Store.SaveEmployee(r.Context(), tenantID, engine.Employee{
		ID:         req.ID,
		Name:       req.Name,
		HourlyRate: decimal.NewFromFloat(req.HourlyRate),
		Office:     req.Office,
		Group:      req.Group,
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to save employee", err)
		return
	}
	writeJSON(w, http.StatusCreated, toEmployeeDTO(emp))
}

// ListLocations returns the tenant's locations.
func (h *Handler) ListLocations(w http.ResponseWriter, r *http.Request) {
	tenantID := chi.URLParam(r, "tenantID")

	locations, err := h.Store.ListLocations(r.Context(), tenantID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list locations", err)
		return
	}
	writeJSON(w, http.StatusOK, locations)
}

// CreateLocation registers a location.
func (h *Handler) CreateLocation(w http.ResponseWriter, r *http.Request) {
	tenantID := chi.URLParam(r, "tenantID")

	var req CreateLocationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if err := h.Validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, "Validation failed", err)
		return
	}

	loc, err := h.Store.SaveLocation(r.Context(), sqlite.Location{
		ID:       req.ID,
		TenantID: tenantID,
		Name:     req.Name,
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to save location", err)
		return
	}
	writeJSON(w, http.StatusCreated, loc)
}

// GetSettings returns the tenant's reporting settings.
func (h *Handler) GetSettings(w http.ResponseWriter, r *http.Request) {
	tenantID := chi.URLParam(r, "tenantID")

	settings, err := h.Store.TenantSettings(r.Context(), tenantID)
	if err != nil {
		h.writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, settings)
}

// UpdateSettings updates the tenant's reporting settings.
func (h *Handler) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	tenantID := chi.URLParam(r, "tenantID")

	var req TenantSettingsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if err := h.Validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, "Validation failed", err)
		return
	}

	tenant, err := h.Store.SaveTenant(r.Context(), sqlite.Tenant{
		ID:              tenantID,
		Name:            req.Name,
		TZOffsetMinutes: req.TZOffsetMinutes,
		RoundingMinutes: engine.CoerceRounding(req.RoundingMinutes),
		ReportsEnabled:  req.ReportsEnabled,
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to save settings", err)
		return
	}
	writeJSON(w, http.StatusOK, tenant)
}

// =============================================================================
// REPORT HANDLERS
// =============================================================================

// HoursReport returns per-employee rounded daily minutes and totals.
func (h *Handler) HoursReport(w http.ResponseWriter, r *http.Request) {
	req := parseReportRequest(r)
	report, err := h.Reports.Hours(r.Context(), req)
	if err != nil {
		h.writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toHoursReportDTO(report))
}

// DailyReport is the hours report with first-in/last-out per day.
func (h *Handler) DailyReport(w http.ResponseWriter, r *http.Request) {
	req := parseReportRequest(r)
	report, err := h.Reports.Daily(r.Context(), req)
	if err != nil {
		h.writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toHoursReportDTO(report))
}

// PayrollReport returns the weekly-overtime payroll view.
func (h *Handler) PayrollReport(w http.ResponseWriter, r *http.Request) {
	req := parseReportRequest(r)
	q := r.URL.Query()
	if v, err := strconv.Atoi(q.Get("week_starts_on")); err == nil {
		req.WeekStartsOn = v
	}
	if v, err := strconv.ParseFloat(q.Get("overtime_threshold"), 64); err == nil {
		req.OvertimeThresholdHours = v
	}

	report, err := h.Reports.Payroll(r.Context(), req)
	if err != nil {
		h.writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toPayrollReportDTO(report))
}

// AuditReport returns raw punches, newest first, for compliance review.
func (h *Handler) AuditReport(w http.ResponseWriter, r *http.Request) {
	req := reports.AuditRequest{Request: parseReportRequest(r)}
	q := r.URL.Query()
	if t := engine.PunchType(q.Get("type")); t.Valid() {
		req.Type = &t
	}
	if v, err := strconv.Atoi(q.Get("limit")); err == nil {
		req.Limit = v
	}

	report, err := h.Reports.Audit(r.Context(), req)
	if err != nil {
		h.writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toAuditReportDTO(report))
}

// =============================================================================
// HELPERS
// =============================================================================

// parseReportRequest extracts the shared report parameters from the
// query string. Unknown or malformed optional values fall back to the
// tenant defaults.
func parseReportRequest(r *http.Request) reports.Request {
	q := r.URL.Query()
	req := reports.Request{
		TenantID: chi.URLParam(r, "tenantID"),
		From:     q.Get("from"),
		To:       q.Get("to"),
		Office:   q.Get("office"),
		Group:    q.Get("group"),
	}

	if v, err := strconv.Atoi(q.Get("tz_offset")); err == nil {
		req.TZOffsetMinutes = &v
	}
	if v, err := strconv.Atoi(q.Get("round")); err == nil {
		req.RoundMinutes = &v
	}
	if ids := q.Get("employee_ids"); ids != "" {
		for _, id := range strings.Split(ids, ",") {
			if id = strings.TrimSpace(id); id != "" {
				req.EmployeeIDs = append(req.EmployeeIDs, id)
			}
		}
	}
	return req
}

func toEmployeeDTO(e engine.Employee) EmployeeDTO {
	return EmployeeDTO{
		ID:         e.ID,
		Name:       e.Name,
		HourlyRate: e.HourlyRate.InexactFloat64(),
		Office:     e.Office,
		Group:      e.Group,
	}
}

// writeDomainError maps engine errors to HTTP statuses.
func (h *Handler) writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case engine.IsClientError(err):
		writeError(w, http.StatusBadRequest, "Invalid report request", err)
	case engine.IsPermissionError(err):
		writeError(w, http.StatusForbidden, "Reports are disabled for this tenant", nil)
	case engine.IsNotFound(err):
		writeError(w, http.StatusNotFound, "Not found", err)
	default:
		h.log.Error().Err(err).Msg("report generation failed")
		writeError(w, http.StatusInternalServerError, "Internal error", err)
	}
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string, err error) {
	resp := ErrorResponse{Error: message}
	if err != nil {
		resp.Details = err.Error()
	}
	writeJSON(w, status, resp)
}
