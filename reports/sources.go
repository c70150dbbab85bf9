/*
Package reports orchestrates report generation.

PURPOSE:
  The engine package is pure: it never touches a store. This package owns
  the collaborator interfaces (punch stream, employee directory, tenant
  settings), fetches an immutable snapshot per request, and runs the
  engine over it to produce the hours, daily, payroll and audit reports.

KEY INTERFACES (sources.go):
  PunchSource:    Bulk punch queries plus carry-in lookup
  Directory:      Employee listing with filters
  SettingsSource: Per-tenant reporting configuration

CONCURRENCY:
  Builders hold no mutable state. Each request operates on its own
  fetched snapshot, so report requests run concurrently without
  coordination. Cancellation is the caller's: every fetch takes a
  context.Context.

SEE ALSO:
  - builder.go: Hours / daily / payroll report assembly
  - audit.go:   Raw punch audit view (bypasses reconstruction)
  - source:     In-memory implementations for tests and dev seeding
  - store/sqlite: Production implementation
*/
package reports

import (
	"context"
	"time"

	"github.com/crewops/timeledger/engine"
)

// =============================================================================
// COLLABORATOR INTERFACES
// =============================================================================

// PunchSource supplies the punch stream for a window. Implementations
// should answer each call with a single bulk query, not per-employee
// round trips.
type PunchSource interface {
	// ListPunchesInRange returns punches for the given employees with
	// start <= OccurredAt < end, ascending by time. An empty employeeIDs
	// slice means all employees of the tenant.
	ListPunchesInRange(ctx context.Context, tenantID string, employeeIDs []string, start, end time.Time) ([]engine.PunchEvent, error)

	// LastPunchBefore returns, per employee, the single latest punch
	// strictly before start. Employees with no prior punch are absent
	// from the map.
	LastPunchBefore(ctx context.Context, tenantID string, employeeIDs []string, start time.Time) (map[string]engine.PunchEvent, error)
}

// EmployeeFilter narrows a directory listing. Zero value selects all.
type EmployeeFilter struct {
	IDs    []string
	Office string
	Group  string
}

// Directory lists the employees a report covers.
type Directory interface {
	ListEmployees(ctx context.Context, tenantID string, filter EmployeeFilter) ([]engine.Employee, error)
}

// SettingsSource resolves the tenant's reporting configuration.
type SettingsSource interface {
	TenantSettings(ctx context.Context, tenantID string) (engine.TenantSettings, error)
}
