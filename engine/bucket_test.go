package engine_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crewops/timeledger/engine"
)

// =============================================================================
// DAY SPLITTING TESTS
// =============================================================================

func TestSplitByLocalDay_WithinOneDay(t *testing.T) {
	// GIVEN: An interval fully inside one local day, offset 0
	// WHEN: Splitting at local midnights
	// THEN: A single portion carrying the full duration

	portions := engine.SplitByLocalDay(engine.WorkInterval{
		Start: at(10, 9, 0),
		End:   at(10, 17, 0),
	}, 0)

	require.Len(t, portions, 1)
	assert.Equal(t, "2025-03-10", portions[0].Date)
	assert.Equal(t, 480.0, portions[0].Minutes)
}

func TestSplitByLocalDay_CrossesMidnight(t *testing.T) {
	// GIVEN: IN 23:30Z, OUT 00:30Z next day, offset 0
	// WHEN: Splitting at local midnights
	// THEN: Two day buckets with 30 minutes each

	portions := engine.SplitByLocalDay(engine.WorkInterval{
		Start: at(10, 23, 30),
		End:   at(11, 0, 30),
	}, 0)

	require.Len(t, portions, 2)
	assert.Equal(t, "2025-03-10", portions[0].Date)
	assert.Equal(t, 30.0, portions[0].Minutes)
	assert.Equal(t, "2025-03-11", portions[1].Date)
	assert.Equal(t, 30.0, portions[1].Minutes)
}

func TestSplitByLocalDay_NegativeOffsetShiftsBoundary(t *testing.T) {
	// GIVEN: An interval over UTC midnight with offset -300 (UTC-5)
	// WHEN: Splitting at local midnights
	// THEN: The whole span stays on one local day: local midnight is 05:00Z

	portions := engine.SplitByLocalDay(engine.WorkInterval{
		Start: at(10, 22, 0),
		End:   at(11, 3, 0),
	}, -300)

	require.Len(t, portions, 1)
	assert.Equal(t, "2025-03-10", portions[0].Date)
	assert.Equal(t, 300.0, portions[0].Minutes)
}

func TestSplitByLocalDay_PositiveOffset(t *testing.T) {
	// GIVEN: Offset +120 (UTC+2); local midnight is 22:00Z
	// WHEN: An interval spans 21:00Z to 23:00Z
	// THEN: One hour on each local day

	portions := engine.SplitByLocalDay(engine.WorkInterval{
		Start: at(10, 21, 0),
		End:   at(10, 23, 0),
	}, 120)

	require.Len(t, portions, 2)
	assert.Equal(t, "2025-03-10", portions[0].Date)
	assert.Equal(t, 60.0, portions[0].Minutes)
	assert.Equal(t, "2025-03-11", portions[1].Date)
	assert.Equal(t, 60.0, portions[1].Minutes)
}

func TestSplitByLocalDay_MinuteConservation(t *testing.T) {
	// GIVEN: Intervals of varying length and offsets
	// WHEN: Splitting at local midnights
	// THEN: Portion minutes sum exactly to the interval duration

	intervals := []engine.WorkInterval{
		{Start: at(10, 9, 0), End: at(10, 9, 1)},
		{Start: at(10, 23, 59), End: at(11, 0, 1)},
		{Start: at(10, 6, 0), End: at(13, 18, 30)}, // multi-day
		{Start: at(10, 0, 0), End: at(11, 0, 0)},   // exactly one day
	}
	offsets := []int{0, -300, -330, 60, 120, 840, -840}

	for _, iv := range intervals {
		for _, offset := range offsets {
			total := 0.0
			for _, p := range engine.SplitByLocalDay(iv, offset) {
				total += p.Minutes
			}
			assert.Equal(t, iv.Minutes(), total,
				"interval %v..%v offset %d", iv.Start, iv.End, offset)
		}
	}
}

func TestBucketMinutesByDay_AccumulatesAcrossIntervals(t *testing.T) {
	// GIVEN: Two intervals on the same local day
	// WHEN: Bucketing minutes
	// THEN: Their minutes accumulate into one bucket

	minutes := engine.BucketMinutesByDay([]engine.WorkInterval{
		{Start: at(10, 9, 0), End: at(10, 12, 0)},
		{Start: at(10, 13, 0), End: at(10, 17, 0)},
	}, 0)

	require.Len(t, minutes, 1)
	assert.Equal(t, 420.0, minutes["2025-03-10"])
}

// =============================================================================
// FIRST-IN / LAST-OUT EXTRACTION
// =============================================================================

func TestExtractDayEdges_LiteralPunches(t *testing.T) {
	// GIVEN: A day with a double IN and a trailing BREAK
	// WHEN: Extracting edges from the raw punch list
	// THEN: First IN is the literal first IN punch; last out is the
	//       literal last non-IN punch, even though the interval
	//       reconstructor ignored the second IN

	punches := []engine.PunchEvent{
		punch(engine.PunchIn, at(10, 9, 0)),
		punch(engine.PunchIn, at(10, 9, 30)),
		punch(engine.PunchOut, at(10, 12, 0)),
		punch(engine.PunchIn, at(10, 13, 0)),
		punch(engine.PunchBreak, at(10, 17, 0)),
	}

	edges := engine.ExtractDayEdges(punches, 0)
	require.Contains(t, edges, "2025-03-10")

	e := edges["2025-03-10"]
	require.NotNil(t, e.FirstIn)
	require.NotNil(t, e.LastOut)
	assert.Equal(t, at(10, 9, 0), e.FirstIn.OccurredAt)
	assert.Equal(t, at(10, 17, 0), e.LastOut.OccurredAt)
	assert.Equal(t, engine.PunchBreak, e.LastOut.Type)
}

func TestExtractDayEdges_GroupsByLocalDay(t *testing.T) {
	// GIVEN: Punches around local midnight with offset -300
	// WHEN: Extracting edges
	// THEN: A 03:00Z punch belongs to the previous local day

	punches := []engine.PunchEvent{
		punch(engine.PunchIn, at(10, 22, 0)),  // 17:00 local Mar 10
		punch(engine.PunchOut, at(11, 3, 0)),  // 22:00 local Mar 10
		punch(engine.PunchIn, at(11, 13, 0)),  // 08:00 local Mar 11
		punch(engine.PunchOut, at(11, 21, 0)), // 16:00 local Mar 11
	}

	edges := engine.ExtractDayEdges(punches, -300)
	require.Len(t, edges, 2)
	assert.Equal(t, at(10, 22, 0), edges["2025-03-10"].FirstIn.OccurredAt)
	assert.Equal(t, at(11, 3, 0), edges["2025-03-10"].LastOut.OccurredAt)
	assert.Equal(t, at(11, 13, 0), edges["2025-03-11"].FirstIn.OccurredAt)
}

func TestExtractDayEdges_OnlyNonInPunches(t *testing.T) {
	// GIVEN: A day with only an OUT punch
	// WHEN: Extracting edges
	// THEN: FirstIn is nil, LastOut is set

	edges := engine.ExtractDayEdges([]engine.PunchEvent{
		punch(engine.PunchOut, at(10, 8, 0)),
	}, 0)

	e := edges["2025-03-10"]
	assert.Nil(t, e.FirstIn)
	require.NotNil(t, e.LastOut)
}

// =============================================================================
// LOCAL DAY KEY
// =============================================================================

func TestLocalDayKey(t *testing.T) {
	cases := []struct {
		instant time.Time
		offset  int
		want    string
	}{
		{at(10, 12, 0), 0, "2025-03-10"},
		{at(10, 1, 0), -300, "2025-03-09"},  // 20:00 local previous day
		{at(10, 23, 30), 60, "2025-03-11"},  // 00:30 local next day
		{at(10, 23, 30), -60, "2025-03-10"},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, engine.LocalDayKey(c.instant, c.offset),
			"%v at offset %d", c.instant, c.offset)
	}
}
