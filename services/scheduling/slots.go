package scheduling

import (
	"sort"
	"time"

	"climaedu/models"
)

// CandidateStarts enumerates the bookable start times within the free
// intervals: granularity-stepped offsets from each interval start, keeping
// only candidates whose full duration fits before the interval end. Results
// are ascending. Pure computation; no external state.
func CandidateStarts(free []models.FreeInterval, durationMinutes, granularityMinutes int) []time.Time {
	duration := time.Duration(durationMinutes) * time.Minute
	step := time.Duration(granularityMinutes) * time.Minute

	var candidates []time.Time
	for _, interval := range free {
		for t := interval.Start; !t.Add(duration).After(interval.End); t = t.Add(step) {
			candidates = append(candidates, t)
		}
	}
	sort.Slice(candidates, func(i, j int) bool {
		return candidates[i].Before(candidates[j])
	})
	return candidates
}
