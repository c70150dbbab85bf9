/*
Package sqlite provides a SQLite-backed implementation of the report
source interfaces.

PURPOSE:
  Implements reports.PunchSource, reports.Directory and
  reports.SettingsSource over sqlx + SQLite, plus the write paths the
  surrounding system needs (punch recording, employee and location
  registry, tenant settings). In production the same patterns apply to
  PostgreSQL - only minor SQL dialect differences.

APPEND-ONLY PUNCHES:
  Punches are immutable facts. The store exposes no update or delete for
  them; a bad punch is corrected upstream by recording a compensating
  one. Reports therefore always replay exactly what was recorded.

KEY TABLES:
  tenants:    Reporting settings per tenant (offset, rounding, flag)
  employees:  Directory records with hourly rate and office/group
  locations:  Office registry (display names for audit)
  punches:    Append-only clock event log

TIME STORAGE:
  Punch instants are stored as integer Unix milliseconds. Ordering is
  (occurred_at_ms, rowid): same-instant punches keep their recorded
  order, which the interval reconstructor relies on.

CONCURRENCY:
  SQLite is opened in WAL mode; multiple readers don't block and report
  queries run against a consistent snapshot.

USAGE:
  store, err := sqlite.New("./data/timeledger.db")
  if err != nil {
      log.Fatal(err)
  }
  defer store.Close()

  builder := reports.NewBuilder(store, store, store)

SEE ALSO:
  - reports/sources.go: Interface definitions
  - reports/source/memory.go: In-memory implementation for testing
*/
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
	"github.com/shopspring/decimal"

	"github.com/crewops/timeledger/engine"
	"github.com/crewops/timeledger/reports"
)

// Store implements the report source interfaces using SQLite.
type Store struct {
	db *sqlx.DB
}

// New creates a new SQLite store with the given database path.
// Use ":memory:" for an in-memory database.
func New(dbPath string) (*Store, error) {
	db, err := sqlx.Open("sqlite3", dbPath+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// SQLite allows a single writer; one pooled connection also keeps
	// :memory: databases on the connection that ran the migration.
	db.SetMaxOpenConns(1)

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return store, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// migrate creates the database schema.
func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS tenants (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		tz_offset_minutes INTEGER NOT NULL DEFAULT 0,
		rounding_minutes INTEGER NOT NULL DEFAULT 0,
		reports_enabled INTEGER NOT NULL DEFAULT 1,
		created_at TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS employees (
		id TEXT PRIMARY KEY,
		tenant_id TEXT NOT NULL REFERENCES tenants(id),
		name TEXT NOT NULL,
		hourly_rate TEXT NOT NULL DEFAULT '0',
		office TEXT NOT NULL DEFAULT '',
		group_name TEXT NOT NULL DEFAULT '',
		created_at TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_employees_tenant
		ON employees(tenant_id);

	CREATE TABLE IF NOT EXISTS locations (
		id TEXT PRIMARY KEY,
		tenant_id TEXT NOT NULL REFERENCES tenants(id),
		name TEXT NOT NULL,
		created_at TEXT NOT NULL
	);

	-- Punches (append-only clock event log)
	CREATE TABLE IF NOT EXISTS punches (
		id TEXT PRIMARY KEY,
		tenant_id TEXT NOT NULL REFERENCES tenants(id),
		employee_id TEXT NOT NULL REFERENCES employees(id),
		punch_type TEXT NOT NULL CHECK (punch_type IN ('IN','OUT','BREAK','LUNCH')),
		occurred_at_ms INTEGER NOT NULL,
		notes TEXT NOT NULL DEFAULT '',
		created_at TEXT NOT NULL
	);

	-- Hot path: window scans for reports
	CREATE INDEX IF NOT EXISTS idx_punches_tenant_time
		ON punches(tenant_id, occurred_at_ms);
	-- Carry-in lookup per employee
	CREATE INDEX IF NOT EXISTS idx_punches_employee_time
		ON punches(tenant_id, employee_id, occurred_at_ms);
	`
	_, err := s.db.Exec(schema)
	return err
}

// =============================================================================
// ROW TYPES
// =============================================================================

type punchRow struct {
	ID           string `db:"id"`
	TenantID     string `db:"tenant_id"`
	EmployeeID   string `db:"employee_id"`
	PunchType    string `db:"punch_type"`
	OccurredAtMS int64  `db:"occurred_at_ms"`
	Notes        string `db:"notes"`
	CreatedAt    string `db:"created_at"`
}

func (r punchRow) toEvent() engine.PunchEvent {
	return engine.PunchEvent{
		ID:         r.ID,
		EmployeeID: r.EmployeeID,
		Type:       engine.PunchType(r.PunchType),
		OccurredAt: time.UnixMilli(r.OccurredAtMS).UTC(),
		Notes:      r.Notes,
	}
}

type employeeRow struct {
	ID         string          `db:"id"`
	TenantID   string          `db:"tenant_id"`
	Name       string          `db:"name"`
	HourlyRate decimal.Decimal `db:"hourly_rate"`
	Office     string          `db:"office"`
	GroupName  string          `db:"group_name"`
	CreatedAt  string          `db:"created_at"`
}

func (r employeeRow) toEmployee() engine.Employee {
	return engine.Employee{
		ID:         r.ID,
		Name:       r.Name,
		HourlyRate: r.HourlyRate,
		Office:     r.Office,
		Group:      r.GroupName,
	}
}

// Tenant is a stored tenant with its reporting settings.
type Tenant struct {
	ID              string `db:"id"`
	Name            string `db:"name"`
	TZOffsetMinutes int    `db:"tz_offset_minutes"`
	RoundingMinutes int    `db:"rounding_minutes"`
	ReportsEnabled  bool   `db:"reports_enabled"`
	CreatedAt       string `db:"created_at"`
}

// Location is a stored office/location record.
type Location struct {
	ID        string `db:"id"`
	TenantID  string `db:"tenant_id"`
	Name      string `db:"name"`
	CreatedAt string `db:"created_at"`
}

// =============================================================================
// PUNCH SOURCE (reports.PunchSource)
// =============================================================================

// RecordPunch appends a clock event. The ID is generated when empty.
// There is no update or delete: punches are immutable facts.
func (s *Store) RecordPunch(ctx context.Context, tenantID string, p engine.PunchEvent) (engine.PunchEvent, error) {
	if !p.Type.Valid() {
		return engine.PunchEvent{}, fmt.Errorf("invalid punch type %q", p.Type)
	}
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	p.OccurredAt = p.OccurredAt.UTC()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO punches (id, tenant_id, employee_id, punch_type, occurred_at_ms, notes, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		p.ID, tenantID, p.EmployeeID, string(p.Type), p.OccurredAt.UnixMilli(), p.Notes,
		time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return engine.PunchEvent{}, fmt.Errorf("failed to record punch: %w", err)
	}
	return p, nil
}

// ListPunchesInRange returns punches with start <= occurred < end,
// ascending by time, same-instant punches in recorded order.
func (s *Store) ListPunchesInRange(ctx context.Context, tenantID string, employeeIDs []string, start, end time.Time) ([]engine.PunchEvent, error) {
	query := `
		SELECT id, tenant_id, employee_id, punch_type, occurred_at_ms, notes, created_at
		FROM punches
		WHERE tenant_id = ? AND occurred_at_ms >= ? AND occurred_at_ms < ?`
	args := []any{tenantID, start.UnixMilli(), end.UnixMilli()}

	if len(employeeIDs) > 0 {
		in, inArgs, err := sqlx.In(` AND employee_id IN (?)`, employeeIDs)
		if err != nil {
			return nil, err
		}
		query += in
		args = append(args, inArgs...)
	}
	query += ` ORDER BY occurred_at_ms ASC, rowid ASC`

	var rows []punchRow
	if err := s.db.SelectContext(ctx, &rows, s.db.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("failed to list punches: %w", err)
	}

	events := make([]engine.PunchEvent, len(rows))
	for i, r := range rows {
		events[i] = r.toEvent()
	}
	return events, nil
}

// LastPunchBefore returns, per employee, the latest punch strictly
// before start.
func (s *Store) LastPunchBefore(ctx context.Context, tenantID string, employeeIDs []string, start time.Time) (map[string]engine.PunchEvent, error) {
	query := `
		SELECT id, tenant_id, employee_id, punch_type, occurred_at_ms, notes, created_at
		FROM punches
		WHERE tenant_id = ? AND occurred_at_ms < ?`
	args := []any{tenantID, start.UnixMilli()}

	if len(employeeIDs) > 0 {
		in, inArgs, err := sqlx.In(` AND employee_id IN (?)`, employeeIDs)
		if err != nil {
			return nil, err
		}
		query += in
		args = append(args, inArgs...)
	}
	query += ` ORDER BY occurred_at_ms DESC, rowid DESC`

	var rows []punchRow
	if err := s.db.SelectContext(ctx, &rows, s.db.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("failed to load carry-in punches: %w", err)
	}

	// First row seen per employee is the latest one.
	result := make(map[string]engine.PunchEvent)
	for _, r := range rows {
		if _, ok := result[r.EmployeeID]; !ok {
			result[r.EmployeeID] = r.toEvent()
		}
	}
	return result, nil
}

// =============================================================================
// DIRECTORY (reports.Directory)
// =============================================================================

// SaveEmployee inserts or replaces an employee record.
func (s *Store) SaveEmployee(ctx context.Context, tenantID string, e engine.Employee) (engine.Employee, error) {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO employees (id, tenant_id, name, hourly_rate, office, group_name, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			hourly_rate = excluded.hourly_rate,
			office = excluded.office,
			group_name = excluded.group_name`,
		e.ID, tenantID, e.Name, e.HourlyRate.String(), e.Office, e.Group,
		time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return engine.Employee{}, fmt.Errorf("failed to save employee: %w", err)
	}
	return e, nil
}

// GetEmployee returns one employee or engine.ErrEmployeeNotFound.
func (s *Store) GetEmployee(ctx context.Context, tenantID, id string) (engine.Employee, error) {
	var row employeeRow
	err := s.db.GetContext(ctx, &row, `
		SELECT id, tenant_id, name, hourly_rate, office, group_name, created_at
		FROM employees WHERE tenant_id = ? AND id = ?`, tenantID, id)
	if errors.Is(err, sql.ErrNoRows) {
		return engine.Employee{}, engine.ErrEmployeeNotFound
	}
	if err != nil {
		return engine.Employee{}, fmt.Errorf("failed to get employee: %w", err)
	}
	return row.toEmployee(), nil
}

// ListEmployees returns the tenant's employees matching the filter,
// ordered by name.
func (s *Store) ListEmployees(ctx context.Context, tenantID string, filter reports.EmployeeFilter) ([]engine.Employee, error) {
	query := `
		SELECT id, tenant_id, name, hourly_rate, office, group_name, created_at
		FROM employees WHERE tenant_id = ?`
	args := []any{tenantID}

	if len(filter.IDs) > 0 {
		in, inArgs, err := sqlx.In(` AND id IN (?)`, filter.IDs)
		if err != nil {
			return nil, err
		}
		query += in
		args = append(args, inArgs...)
	}
	if filter.Office != "" {
		query += ` AND office = ?`
		args = append(args, filter.Office)
	}
	if filter.Group != "" {
		query += ` AND group_name = ?`
		args = append(args, filter.Group)
	}
	query += ` ORDER BY name ASC`

	var rows []employeeRow
	if err := s.db.SelectContext(ctx, &rows, s.db.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}

	employees := make([]engine.Employee, len(rows))
	for i, r := range rows {
		employees[i] = r.toEmployee()
	}
	return employees, nil
}

// =============================================================================
// LOCATIONS
// =============================================================================

// SaveLocation inserts or replaces a location record.
func (s *Store) SaveLocation(ctx context.Context, loc Location) (Location, error) {
	if loc.ID == "" {
		loc.ID = uuid.NewString()
	}
	if loc.CreatedAt == "" {
		loc.CreatedAt = time.Now().UTC().Format(time.RFC3339)
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO locations (id, tenant_id, name, created_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET name = excluded.name`,
		loc.ID, loc.TenantID, loc.Name, loc.CreatedAt)
	if err != nil {
		return Location{}, fmt.Errorf("failed to save location: %w", err)
	}
	return loc, nil
}

// ListLocations returns the tenant's locations ordered by name.
func (s *Store) ListLocations(ctx context.Context, tenantID string) ([]Location, error) {
	var rows []Location
	err := s.db.SelectContext(ctx, &rows, `
		SELECT id, tenant_id, name, created_at
		FROM locations WHERE tenant_id = ? ORDER BY name ASC`, tenantID)
	if err != nil {
		return nil, fmt.Errorf("failed to list locations: %w", err)
	}
	return rows, nil
}

// =============================================================================
// TENANT SETTINGS (reports.SettingsSource)
// =============================================================================

// SaveTenant inserts or replaces a tenant and its settings.
func (s *Store) SaveTenant(ctx context.Context, t Tenant) (Tenant, error) {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	if t.CreatedAt == "" {
		t.CreatedAt = time.Now().UTC().Format(time.RFC3339)
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO tenants (id, name, tz_offset_minutes, rounding_minutes, reports_enabled, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			tz_offset_minutes = excluded.tz_offset_minutes,
			rounding_minutes = excluded.rounding_minutes,
			reports_enabled = excluded.reports_enabled`,
		t.ID, t.Name, t.TZOffsetMinutes, t.RoundingMinutes, t.ReportsEnabled, t.CreatedAt)
	if err != nil {
		return Tenant{}, fmt.Errorf("failed to save tenant: %w", err)
	}
	return t, nil
}

// TenantSettings returns the tenant's reporting configuration or
// engine.ErrTenantNotFound.
func (s *Store) TenantSettings(ctx context.Context, tenantID string) (engine.TenantSettings, error) {
	var t Tenant
	err := s.db.GetContext(ctx, &t, `
		SELECT id, name, tz_offset_minutes, rounding_minutes, reports_enabled, created_at
		FROM tenants WHERE id = ?`, tenantID)
	if errors.Is(err, sql.ErrNoRows) {
		return engine.TenantSettings{}, engine.ErrTenantNotFound
	}
	if err != nil {
		return engine.TenantSettings{}, fmt.Errorf("failed to load tenant settings: %w", err)
	}
	return engine.TenantSettings{
		TZOffsetMinutes: t.TZOffsetMinutes,
		RoundingMinutes: t.RoundingMinutes,
		ReportsEnabled:  t.ReportsEnabled,
	}, nil
}
