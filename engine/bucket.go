/*
bucket.go - Local-day splitting and first-in/last-out extraction

PURPOSE:
  Attributes each worked interval's minutes to local calendar days by
  splitting it at local midnights, and extracts the display-only
  first-in/last-out instants per day.

MINUTE CONSERVATION:
  For any interval, the minutes across its day portions sum to exactly
  (end - start) in minutes. No loss or double-count at midnight
  boundaries: each segment runs [cursor, min(end, nextMidnight)).

FIRST-IN / LAST-OUT:
  Deliberately NOT derived from reconstructed intervals. The fields report
  the literal first punch with type IN and the literal last punch with a
  non-IN type on each local day, whether or not those punches were
  consumed into an interval. They are a raw-data convenience for the
  daily view, not worked-minutes math.
*/
package engine

// DayPortion is the share of one interval falling on one local day.
type DayPortion struct {
	Date    string // local day key, YYYY-MM-DD
	Minutes float64
}

// SplitByLocalDay splits a worked interval at local-midnight boundaries
// under the given fixed offset. Portions are emitted in chronological
// order and their minutes sum to the interval's duration.
func SplitByLocalDay(iv WorkInterval, offsetMinutes int) []DayPortion {
	var portions []DayPortion

	cursor := iv.Start
	for cursor.Before(iv.End) {
		boundary := nextLocalMidnight(cursor, offsetMinutes)
		segEnd := boundary
		if iv.End.Before(boundary) {
			segEnd = iv.End
		}
		portions = append(portions, DayPortion{
			Date:    LocalDayKey(cursor, offsetMinutes),
			Minutes: segEnd.Sub(cursor).Minutes(),
		})
		cursor = segEnd
	}

	return portions
}

// BucketMinutesByDay accumulates raw (pre-rounding) minutes per local day
// across all intervals.
func BucketMinutesByDay(intervals []WorkInterval, offsetMinutes int) map[string]float64 {
	minutes := make(map[string]float64)
	for _, iv := range intervals {
		for _, p := range SplitByLocalDay(iv, offsetMinutes) {
			minutes[p.Date] += p.Minutes
		}
	}
	return minutes
}

// DayEdges holds the literal first IN and last non-IN punch instants of
// one local day.
type DayEdges struct {
	FirstIn *PunchEvent
	LastOut *PunchEvent
}

// ExtractDayEdges scans the raw punch list and records, per local day,
// the first IN punch and the last non-IN punch. Punches must be in
// ascending time order.
func ExtractDayEdges(punches []PunchEvent, offsetMinutes int) map[string]DayEdges {
	edges := make(map[string]DayEdges)
	for i := range punches {
		p := punches[i]
		day := LocalDayKey(p.OccurredAt, offsetMinutes)
		e := edges[day]
		if p.Type.IsWorking() {
			if e.FirstIn == nil {
				e.FirstIn = &punches[i]
			}
		} else {
			e.LastOut = &punches[i]
		}
		edges[day] = e
	}
	return edges
}
