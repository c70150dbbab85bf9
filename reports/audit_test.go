package reports_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crewops/timeledger/engine"
	"github.com/crewops/timeledger/reports"
)

func auditRequest(from, to string) reports.AuditRequest {
	return reports.AuditRequest{Request: hoursRequest(from, to)}
}

func TestAudit_NewestFirstWithEmployeeFields(t *testing.T) {
	// GIVEN: Three punches recorded in chronological order
	// WHEN: Requesting the audit view
	// THEN: Records come back newest first, annotated with the
	//       employee's display fields

	b, mem := newFixture()
	mem.AddEmployee(tenant, engine.Employee{ID: "emp-1", Name: "Ana", Office: "HQ", Group: "Kitchen"})
	addPunch(mem, "emp-1", engine.PunchIn, utc(10, 9, 0))
	addPunch(mem, "emp-1", engine.PunchLunch, utc(10, 12, 0))
	addPunch(mem, "emp-1", engine.PunchOut, utc(10, 17, 0))

	report, err := b.Audit(context.Background(), auditRequest("2025-03-10", "2025-03-10"))
	require.NoError(t, err)

	require.Len(t, report.Records, 3)
	assert.Equal(t, engine.PunchOut, report.Records[0].Type)
	assert.Equal(t, engine.PunchLunch, report.Records[1].Type)
	assert.Equal(t, engine.PunchIn, report.Records[2].Type)
	assert.Equal(t, "Ana", report.Records[0].EmployeeName)
	assert.Equal(t, "HQ", report.Records[0].Office)
	assert.Equal(t, "Kitchen", report.Records[0].Group)
}

func TestAudit_TypeFilter(t *testing.T) {
	b, mem := newFixture()
	addEmployee(mem, "emp-1", "Ana", 20)
	addPunch(mem, "emp-1", engine.PunchIn, utc(10, 9, 0))
	addPunch(mem, "emp-1", engine.PunchBreak, utc(10, 11, 0))
	addPunch(mem, "emp-1", engine.PunchIn, utc(10, 11, 15))
	addPunch(mem, "emp-1", engine.PunchOut, utc(10, 17, 0))

	req := auditRequest("2025-03-10", "2025-03-10")
	in := engine.PunchIn
	req.Type = &in

	report, err := b.Audit(context.Background(), req)
	require.NoError(t, err)

	require.Len(t, report.Records, 2)
	for _, r := range report.Records {
		assert.Equal(t, engine.PunchIn, r.Type)
	}
}

func TestAudit_LimitDefaultAndCap(t *testing.T) {
	// GIVEN: More punches than the default page size
	// WHEN: Requesting with no limit, a small limit, and an oversized one
	// THEN: The default, the small limit, and the hard cap apply

	b, mem := newFixture()
	addEmployee(mem, "emp-1", "Ana", 20)
	for i := 0; i < reports.DefaultAuditLimit+50; i++ {
		typ := engine.PunchIn
		if i%2 == 1 {
			typ = engine.PunchOut
		}
		mem.AddPunch(tenant, engine.PunchEvent{
			ID:         fmt.Sprintf("p-%d", i),
			EmployeeID: "emp-1",
			Type:       typ,
			OccurredAt: utc(10, 0, 0).Add(time.Duration(i) * time.Minute),
		})
	}

	report, err := b.Audit(context.Background(), auditRequest("2025-03-10", "2025-03-10"))
	require.NoError(t, err)
	assert.Len(t, report.Records, reports.DefaultAuditLimit)

	req := auditRequest("2025-03-10", "2025-03-10")
	req.Limit = 10
	report, err = b.Audit(context.Background(), req)
	require.NoError(t, err)
	assert.Len(t, report.Records, 10)

	req.Limit = reports.MaxAuditLimit + 500
	report, err = b.Audit(context.Background(), req)
	require.NoError(t, err)
	assert.LessOrEqual(t, len(report.Records), reports.MaxAuditLimit)
}

func TestAudit_EmptySelection(t *testing.T) {
	b, _ := newFixture()
	report, err := b.Audit(context.Background(), auditRequest("2025-03-10", "2025-03-10"))
	require.NoError(t, err)
	assert.Empty(t, report.Records)
	assert.Equal(t, "2025-03-10", report.Range.From)
}

func TestAudit_ReportsDisabled(t *testing.T) {
	b, mem := newFixture()
	mem.SetSettings(tenant, engine.TenantSettings{ReportsEnabled: false})

	_, err := b.Audit(context.Background(), auditRequest("2025-03-10", "2025-03-10"))
	assert.True(t, errors.Is(err, engine.ErrReportsDisabled))
}
