/*
interval.go - Worked interval reconstruction from the punch stream

PURPOSE:
  Turns an ordered punch list plus the carry-in state into [start, end)
  worked intervals, clipped to the report window.

STATE MACHINE:
  Only IN opens an interval. OUT, BREAK and LUNCH all close one; break and
  lunch time is not tracked separately. A second IN while already in is a
  no-op: the first IN opens the interval and later INs before a closer are
  ignored (NOT "last IN wins"). A closer with nothing open is a no-op.

CARRY-IN:
  The loader supplies the single latest punch strictly before the window.
  If it was an IN, work was already in progress at window start and the
  first interval opens at the window's start instant.

WINDOW CLIPPING:
  An interval still open after the last punch closes at the window end.
  A worker who clocked in before the window and never out within it yields
  exactly [windowStart, windowEnd]. Because the engine sees only one punch
  of history, adjacent windows' reports are each independently capped at
  their own bounds and are not required to sum consistently across the
  boundary. That truncation is an accepted approximation: changing it
  would alter historical payroll totals.
*/
package engine

import "time"

// ReconstructIntervals consumes punches sorted ascending by OccurredAt
// (all within [windowStart, windowEnd]) plus the carry-in punch type, and
// returns the worked intervals for the window. Zero-duration intervals
// are dropped silently.
func ReconstructIntervals(carryIn *PunchType, punches []PunchEvent, windowStart, windowEnd time.Time) []WorkInterval {
	var intervals []WorkInterval
	var openStart *time.Time

	if carryIn != nil && carryIn.IsWorking() {
		s := windowStart
		openStart = &s
	}

	for _, p := range punches {
		if p.Type.IsWorking() {
			if openStart == nil {
				s := p.OccurredAt
				openStart = &s
			}
			continue
		}
		if openStart != nil {
			if p.OccurredAt.After(*openStart) {
				intervals = append(intervals, WorkInterval{Start: *openStart, End: p.OccurredAt})
			}
			openStart = nil
		}
	}

	// Still clocked in at the end of the window: clip to the window.
	if openStart != nil && windowEnd.After(*openStart) {
		intervals = append(intervals, WorkInterval{Start: *openStart, End: windowEnd})
	}

	return intervals
}
