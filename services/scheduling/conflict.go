package scheduling

import (
	"sort"
	"time"

	"climaedu/models"
)

type busyInterval struct {
	start time.Time
	end   time.Time
}

// mergeBusy sorts blocking sessions by start and merges overlapping ones so
// the subtraction walk sees disjoint busy blocks. Malformed overlapping
// bookings should not exist, but merging keeps the sweep correct if they do.
func mergeBusy(sessions []models.BookedSession) []busyInterval {
	var busy []busyInterval
	for _, sess := range sessions {
		if !sess.Blocking() {
			continue
		}
		if !sess.ScheduledStart.Before(sess.ScheduledEnd) {
			continue
		}
		busy = append(busy, busyInterval{start: sess.ScheduledStart, end: sess.ScheduledEnd})
	}
	sort.Slice(busy, func(i, j int) bool {
		return busy[i].start.Before(busy[j].start)
	})

	var merged []busyInterval
	for _, b := range busy {
		if n := len(merged); n > 0 && !b.start.After(merged[n-1].end) {
			if b.end.After(merged[n-1].end) {
				merged[n-1].end = b.end
			}
			continue
		}
		merged = append(merged, b)
	}
	return merged
}

// FreeIntervals subtracts a tutor's blocking sessions from the availability
// windows, producing the disjoint free sub-intervals of each window. Half-open
// [start, end) semantics throughout: a session ending exactly at a window
// boundary, or exactly where another begins, does not overlap it.
func FreeIntervals(windows []models.ConcreteTimeWindow, sessions []models.BookedSession) []models.FreeInterval {
	busy := mergeBusy(sessions)

	var free []models.FreeInterval
	for _, w := range windows {
		cursor := w.Start
		for _, b := range busy {
			if !b.end.After(w.Start) || !b.start.Before(w.End) {
				continue // no overlap with this window
			}
			if b.start.After(cursor) {
				free = append(free, models.FreeInterval{Window: w, Start: cursor, End: b.start})
			}
			if b.end.After(cursor) {
				cursor = b.end
			}
			if !cursor.Before(w.End) {
				break
			}
		}
		if cursor.Before(w.End) {
			free = append(free, models.FreeInterval{Window: w, Start: cursor, End: w.End})
		}
	}
	return free
}
