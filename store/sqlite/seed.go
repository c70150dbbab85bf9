/*
seed.go - Demo tenant loader

PURPOSE:
  Loads a small, deterministic dataset for local development and demos:
  a tenant on US Eastern standard time with 15-minute rounding, three
  employees, and a punch history that exercises the interesting engine
  paths — an overnight shift across local midnight, a week that tips
  into overtime, a forgotten clock-out, and a stray break punch.
*/
package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/crewops/timeledger/engine"
)

// DemoTenantID is the tenant created by SeedDemo.
const DemoTenantID = "demo"

// SeedDemo loads the demo tenant. Idempotent on the tenant and
// employees; punches are only loaded when the tenant is new.
func (s *Store) SeedDemo(ctx context.Context) error {
	if _, err := s.TenantSettings(ctx, DemoTenantID); err == nil {
		return nil // already seeded
	}

	if _, err := s.SaveTenant(ctx, Tenant{
		ID:              DemoTenantID,
		Name:            "Demo Restaurant Group",
		TZOffsetMinutes: -300, // US Eastern standard time
		RoundingMinutes: 15,
		ReportsEnabled:  true,
	}); err != nil {
		return err
	}

	employees := []engine.Employee{
		{ID: "emp-ana", Name: "Ana Reyes", HourlyRate: decimal.NewFromFloat(20), Office: "Downtown", Group: "Kitchen"},
		{ID: "emp-ben", Name: "Ben Okafor", HourlyRate: decimal.NewFromFloat(18.50), Office: "Downtown", Group: "Front of House"},
		{ID: "emp-caro", Name: "Caro Lindqvist", HourlyRate: decimal.NewFromFloat(24), Office: "Riverside", Group: "Bar"},
	}
	for _, e := range employees {
		if _, err := s.SaveEmployee(ctx, DemoTenantID, e); err != nil {
			return err
		}
	}

	for _, loc := range []string{"Downtown", "Riverside"} {
		if _, err := s.SaveLocation(ctx, Location{TenantID: DemoTenantID, Name: loc}); err != nil {
			return err
		}
	}

	// Week of Monday 2025-03-03, local time is UTC-5.
	punch := func(emp string, t time.Time, typ engine.PunchType, notes string) engine.PunchEvent {
		return engine.PunchEvent{EmployeeID: emp, Type: typ, OccurredAt: t, Notes: notes}
	}
	day := func(d, hour, min int) time.Time {
		return time.Date(2025, time.March, d, hour, min, 0, 0, time.UTC)
	}

	var punches []engine.PunchEvent

	// Ana: five 9h days -> 45h, tips into overtime.
	for d := 3; d <= 7; d++ {
		punches = append(punches,
			punch("emp-ana", day(d, 13, 0), engine.PunchIn, ""),    // 08:00 local
			punch("emp-ana", day(d, 17, 0), engine.PunchLunch, ""), // 12:00 local
			punch("emp-ana", day(d, 17, 30), engine.PunchIn, ""),
			punch("emp-ana", day(d, 22, 30), engine.PunchOut, ""), // 17:30 local
		)
	}

	// Ben: evening shifts crossing local midnight.
	punches = append(punches,
		punch("emp-ben", day(4, 23, 0), engine.PunchIn, ""),  // 18:00 local Tue
		punch("emp-ben", day(5, 7, 0), engine.PunchOut, ""),  // 02:00 local Wed
		punch("emp-ben", day(6, 23, 0), engine.PunchIn, ""),  // Thu evening
		punch("emp-ben", day(7, 6, 30), engine.PunchOut, ""), // 01:30 local Fri
	)

	// Caro: a stray break with no prior IN, and a forgotten clock-out on
	// Thursday (the open interval clips at the report window end).
	punches = append(punches,
		punch("emp-caro", day(5, 14, 0), engine.PunchIn, ""),
		punch("emp-caro", day(5, 22, 0), engine.PunchOut, ""),
		punch("emp-caro", day(6, 15, 0), engine.PunchBreak, "no prior IN that day"),
		punch("emp-caro", day(6, 16, 0), engine.PunchIn, ""),
	)

	for _, p := range punches {
		if _, err := s.RecordPunch(ctx, DemoTenantID, p); err != nil {
			return fmt.Errorf("failed to seed punch: %w", err)
		}
	}
	return nil
}
