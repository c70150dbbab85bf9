package engine_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crewops/timeledger/engine"
)

func window(t *testing.T, from, to string, offset int) engine.ReportWindow {
	t.Helper()
	win, err := engine.NewReportWindow(from, to, offset)
	require.NoError(t, err)
	return win
}

// =============================================================================
// FULL PIPELINE
// =============================================================================

func TestBuildEmployeeSummary_SingleShift(t *testing.T) {
	// GIVEN: IN @ 09:00Z, OUT @ 17:00Z, offset 0, round 0
	// WHEN: Building the summary
	// THEN: One day, 480 minutes, 8.00 hours, "8:00"

	win := window(t, "2025-03-10", "2025-03-10", 0)
	punches := []engine.PunchEvent{
		punch(engine.PunchIn, at(10, 9, 0)),
		punch(engine.PunchOut, at(10, 17, 0)),
	}

	s := engine.BuildEmployeeSummary(engine.Employee{ID: "emp-1", Name: "Ana"}, nil, punches, win, false)

	require.Len(t, s.Days, 1)
	assert.Equal(t, "2025-03-10", s.Days[0].Date)
	assert.Equal(t, 480.0, s.Days[0].Minutes)
	assert.Equal(t, 8.0, s.Days[0].HoursDecimal)
	assert.Equal(t, "8:00", s.Days[0].HoursFormatted)
	assert.Equal(t, 480.0, s.TotalMinutes)
	assert.Equal(t, 8.0, s.TotalHoursDecimal())
	assert.Equal(t, "8:00", s.TotalHoursFormatted())
}

func TestBuildEmployeeSummary_CarryInFullDay(t *testing.T) {
	// GIVEN: Carry-in IN before the window, no punches inside, window is
	//        one full local day at offset 0
	// WHEN: Building the summary
	// THEN: A single day with the full 1440 minutes worked

	win := window(t, "2025-03-10", "2025-03-10", 0)
	in := engine.PunchIn

	s := engine.BuildEmployeeSummary(engine.Employee{ID: "emp-1"}, &in, nil, win, false)

	require.Len(t, s.Days, 1)
	assert.Equal(t, "2025-03-10", s.Days[0].Date)
	assert.Equal(t, 1440.0, s.Days[0].Minutes)
	assert.Equal(t, 1440.0, s.TotalMinutes)
}

func TestBuildEmployeeSummary_NoPunches_ZeroFilled(t *testing.T) {
	win := window(t, "2025-03-10", "2025-03-14", 0)
	s := engine.BuildEmployeeSummary(engine.Employee{ID: "emp-1", Name: "Ana"}, nil, nil, win, false)

	assert.Equal(t, "emp-1", s.EmployeeID)
	assert.Empty(t, s.Days)
	assert.Equal(t, 0.0, s.TotalMinutes)
	assert.Equal(t, "0:00", s.TotalHoursFormatted())
}

func TestBuildEmployeeSummary_TotalIsSumOfRoundedDays(t *testing.T) {
	// GIVEN: Two days of 37 raw minutes each with a 15-minute step
	// WHEN: Building the summary
	// THEN: Each day rounds to 30 and the total is 60 - the sum of
	//       rounded days, NOT round(74) = 75

	win := window(t, "2025-03-10", "2025-03-11", 0)
	win.RoundMinutes = 15
	punches := []engine.PunchEvent{
		punch(engine.PunchIn, at(10, 9, 0)),
		punch(engine.PunchOut, at(10, 9, 37)),
		punch(engine.PunchIn, at(11, 9, 0)),
		punch(engine.PunchOut, at(11, 9, 37)),
	}

	s := engine.BuildEmployeeSummary(engine.Employee{ID: "emp-1"}, nil, punches, win, false)

	require.Len(t, s.Days, 2)
	assert.Equal(t, 30.0, s.Days[0].Minutes)
	assert.Equal(t, 30.0, s.Days[1].Minutes)
	assert.Equal(t, 60.0, s.TotalMinutes)

	sum := 0.0
	for _, d := range s.Days {
		sum += d.Minutes
	}
	assert.Equal(t, s.TotalMinutes, sum)
}

func TestBuildDaySummaries_InOutTimesFromRawPunches(t *testing.T) {
	// GIVEN: A shift whose trailing BREAK closed the interval
	// WHEN: Building day summaries with includeInOut
	// THEN: FirstIn/LastOut reflect the literal punches

	win := window(t, "2025-03-10", "2025-03-10", 0)
	punches := []engine.PunchEvent{
		punch(engine.PunchIn, at(10, 9, 0)),
		punch(engine.PunchBreak, at(10, 17, 0)),
	}
	intervals := engine.ReconstructIntervals(nil, punches, win.Start, win.End)

	days := engine.BuildDaySummaries(intervals, punches, win, true)

	require.Len(t, days, 1)
	require.NotNil(t, days[0].FirstIn)
	require.NotNil(t, days[0].LastOut)
	assert.Equal(t, at(10, 9, 0), *days[0].FirstIn)
	assert.Equal(t, at(10, 17, 0), *days[0].LastOut)
}

func TestBuildDaySummaries_EdgeOnlyDayAppearsWithInOut(t *testing.T) {
	// A day holding only a stray BREAK has no worked minutes but still
	// shows up in the daily view when in/out times are requested.
	win := window(t, "2025-03-10", "2025-03-11", 0)
	punches := []engine.PunchEvent{
		punch(engine.PunchBreak, at(10, 8, 0)),
		punch(engine.PunchIn, at(11, 9, 0)),
		punch(engine.PunchOut, at(11, 10, 0)),
	}
	intervals := engine.ReconstructIntervals(nil, punches, win.Start, win.End)

	withInOut := engine.BuildDaySummaries(intervals, punches, win, true)
	require.Len(t, withInOut, 2)
	assert.Equal(t, "2025-03-10", withInOut[0].Date)
	assert.Equal(t, 0.0, withInOut[0].Minutes)

	withoutInOut := engine.BuildDaySummaries(intervals, punches, win, false)
	require.Len(t, withoutInOut, 1)
	assert.Equal(t, "2025-03-11", withoutInOut[0].Date)
}

func TestBuildEmployeeSummary_OvernightShiftSplits(t *testing.T) {
	// GIVEN: IN @ 23:30Z, OUT @ 00:30Z next day, offset 0
	// WHEN: Building the summary
	// THEN: Two day buckets, 30 minutes each

	win := window(t, "2025-03-10", "2025-03-11", 0)
	punches := []engine.PunchEvent{
		punch(engine.PunchIn, at(10, 23, 30)),
		punch(engine.PunchOut, at(11, 0, 30)),
	}

	s := engine.BuildEmployeeSummary(engine.Employee{ID: "emp-1"}, nil, punches, win, false)

	require.Len(t, s.Days, 2)
	assert.Equal(t, 30.0, s.Days[0].Minutes)
	assert.Equal(t, 30.0, s.Days[1].Minutes)
	assert.Equal(t, 60.0, s.TotalMinutes)
}
