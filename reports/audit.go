/*
audit.go - Raw punch audit view

PURPOSE:
  Lets compliance reviewers see exactly what was recorded, as a
  cross-check against the computed summaries. Deliberately bypasses the
  engine: no interval reconstruction, no rounding, just the raw punches
  newest-first with display fields denormalized from the directory.
*/
package reports

import (
	"context"
	"sort"
	"time"

	"github.com/crewops/timeledger/engine"
)

const (
	// DefaultAuditLimit applies when the caller does not ask for one.
	DefaultAuditLimit = 200
	// MaxAuditLimit is the hard cap on a single audit page.
	MaxAuditLimit = 1000
)

// AuditRequest selects the punches to review. Type narrows to one punch
// type when non-nil.
type AuditRequest struct {
	Request
	Type  *engine.PunchType
	Limit int
}

// AuditRecord is one raw punch annotated with employee display fields.
type AuditRecord struct {
	ID           string
	EmployeeID   string
	EmployeeName string
	Office       string
	Group        string
	Type         engine.PunchType
	OccurredAt   time.Time
	Notes        string
}

// AuditReport is the compliance view of a window.
type AuditReport struct {
	Range   DateRange
	Records []AuditRecord
}

// Audit returns raw punches in the window, most recent first, capped at
// the requested limit.
func (b *Builder) Audit(ctx context.Context, req AuditRequest) (*AuditReport, error) {
	win, employees, err := b.resolve(ctx, req.Request)
	if err != nil {
		return nil, err
	}

	limit := req.Limit
	if limit <= 0 {
		limit = DefaultAuditLimit
	}
	if limit > MaxAuditLimit {
		limit = MaxAuditLimit
	}

	report := &AuditReport{
		Range:   DateRange{From: win.FromKey, To: win.ToKey},
		Records: []AuditRecord{},
	}
	if len(employees) == 0 {
		return report, nil
	}

	byID := make(map[string]engine.Employee, len(employees))
	ids := make([]string, len(employees))
	for i, e := range employees {
		byID[e.ID] = e
		ids[i] = e.ID
	}

	punches, err := b.Punches.ListPunchesInRange(ctx, req.TenantID, ids, win.Start, win.End)
	if err != nil {
		return nil, err
	}

	// Newest first. The source returns ascending order; a stable sort
	// keeps same-instant punches in their recorded order.
	sort.SliceStable(punches, func(i, j int) bool {
		return punches[i].OccurredAt.After(punches[j].OccurredAt)
	})

	for _, p := range punches {
		if req.Type != nil && p.Type != *req.Type {
			continue
		}
		emp := byID[p.EmployeeID]
		report.Records = append(report.Records, AuditRecord{
			ID:           p.ID,
			EmployeeID:   p.EmployeeID,
			EmployeeName: emp.Name,
			Office:       emp.Office,
			Group:        emp.Group,
			Type:         p.Type,
			OccurredAt:   p.OccurredAt,
			Notes:        p.Notes,
		})
		if len(report.Records) >= limit {
			break
		}
	}

	return report, nil
}
