// Package source provides in-memory report source implementations
// (for testing/dev).
package source

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/crewops/timeledger/engine"
	"github.com/crewops/timeledger/reports"
)

// =============================================================================
// MEMORY SOURCE - In-memory implementation (for testing/dev)
// =============================================================================

// Memory implements PunchSource, Directory and SettingsSource in memory.
type Memory struct {
	mu        sync.RWMutex
	punches   map[string][]engine.PunchEvent // tenantID -> punches ascending by time
	employees map[string][]engine.Employee   // tenantID -> employees
	settings  map[string]engine.TenantSettings
}

func NewMemory() *Memory {
	return &Memory{
		punches:   make(map[string][]engine.PunchEvent),
		employees: make(map[string][]engine.Employee),
		settings:  make(map[string]engine.TenantSettings),
	}
}

// AddPunch inserts a punch keeping ascending time order. Equal instants
// keep insertion order, matching how a store would return them.
func (m *Memory) AddPunch(tenantID string, p engine.PunchEvent) {
	m.mu.Lock()
	defer m.mu.Unlock()

	ps := m.punches[tenantID]
	i := sort.Search(len(ps), func(i int) bool {
		return ps[i].OccurredAt.After(p.OccurredAt)
	})
	ps = append(ps, engine.PunchEvent{})
	copy(ps[i+1:], ps[i:])
	ps[i] = p
	m.punches[tenantID] = ps
}

// AddEmployee registers an employee for a tenant.
func (m *Memory) AddEmployee(tenantID string, e engine.Employee) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.employees[tenantID] = append(m.employees[tenantID], e)
}

// SetSettings sets a tenant's reporting configuration.
func (m *Memory) SetSettings(tenantID string, s engine.TenantSettings) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.settings[tenantID] = s
}

// =============================================================================
// PUNCH SOURCE
// =============================================================================

func (m *Memory) ListPunchesInRange(_ context.Context, tenantID string, employeeIDs []string, start, end time.Time) ([]engine.PunchEvent, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	selected := idSet(employeeIDs)
	var result []engine.PunchEvent
	for _, p := range m.punches[tenantID] {
		if p.OccurredAt.Before(start) || !p.OccurredAt.Before(end) {
			continue
		}
		if selected != nil && !selected[p.EmployeeID] {
			continue
		}
		result = append(result, p)
	}
	return result, nil
}

func (m *Memory) LastPunchBefore(_ context.Context, tenantID string, employeeIDs []string, start time.Time) (map[string]engine.PunchEvent, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	selected := idSet(employeeIDs)
	result := make(map[string]engine.PunchEvent)
	for _, p := range m.punches[tenantID] {
		if !p.OccurredAt.Before(start) {
			break
		}
		if selected != nil && !selected[p.EmployeeID] {
			continue
		}
		result[p.EmployeeID] = p // ascending order: later entries win
	}
	return result, nil
}

// =============================================================================
// DIRECTORY
// =============================================================================

func (m *Memory) ListEmployees(_ context.Context, tenantID string, filter reports.EmployeeFilter) ([]engine.Employee, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	selected := idSet(filter.IDs)
	var result []engine.Employee
	for _, e := range m.employees[tenantID] {
		if selected != nil && !selected[e.ID] {
			continue
		}
		if filter.Office != "" && e.Office != filter.Office {
			continue
		}
		if filter.Group != "" && e.Group != filter.Group {
			continue
		}
		result = append(result, e)
	}
	return result, nil
}

// =============================================================================
// SETTINGS
// =============================================================================

func (m *Memory) TenantSettings(_ context.Context, tenantID string) (engine.TenantSettings, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	s, ok := m.settings[tenantID]
	if !ok {
		return engine.TenantSettings{}, engine.ErrTenantNotFound
	}
	return s, nil
}

func idSet(ids []string) map[string]bool {
	if len(ids) == 0 {
		return nil
	}
	set := make(map[string]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return set
}
