package scheduling

import (
	"testing"
	"time"

	"climaedu/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCandidateStartsSpansFreeIntervals(t *testing.T) {
	// Monday window 09:00-12:00 with a confirmed 10:00-10:30 session,
	// duration 30, granularity 30: the last candidate is 11:30 because the
	// window end is exclusive.
	w := mondayWindow(9, 12)
	sessions := []models.BookedSession{
		blocking(at(2026, time.March, 9, 10, 0), at(2026, time.March, 9, 10, 30)),
	}
	free := FreeIntervals([]models.ConcreteTimeWindow{w}, sessions)

	candidates := CandidateStarts(free, 30, 30)
	expected := []time.Time{
		at(2026, time.March, 9, 9, 0),
		at(2026, time.March, 9, 9, 30),
		at(2026, time.March, 9, 10, 30),
		at(2026, time.March, 9, 11, 0),
		at(2026, time.March, 9, 11, 30),
	}
	assert.Equal(t, expected, candidates)
}

func TestCandidateStartsFinerGranularity(t *testing.T) {
	w := mondayWindow(9, 12)
	sessions := []models.BookedSession{
		blocking(at(2026, time.March, 9, 10, 0), at(2026, time.March, 9, 10, 30)),
	}
	free := FreeIntervals([]models.ConcreteTimeWindow{w}, sessions)

	candidates := CandidateStarts(free, 30, 15)
	// 09:00..09:30 from the first interval, then every 15 minutes from 10:30.
	assert.Contains(t, candidates, at(2026, time.March, 9, 10, 45))
	assert.Contains(t, candidates, at(2026, time.March, 9, 11, 30))
	assert.NotContains(t, candidates, at(2026, time.March, 9, 10, 0))
	assert.NotContains(t, candidates, at(2026, time.March, 9, 11, 45))
}

func TestCandidateStartsIntervalTooShort(t *testing.T) {
	free := []models.FreeInterval{
		{
			Window: mondayWindow(9, 12),
			Start:  at(2026, time.March, 9, 9, 0),
			End:    at(2026, time.March, 9, 9, 20),
		},
	}
	assert.Empty(t, CandidateStarts(free, 30, 15))
}

func TestCandidateStartsExactFit(t *testing.T) {
	free := []models.FreeInterval{
		{
			Window: mondayWindow(9, 12),
			Start:  at(2026, time.March, 9, 9, 0),
			End:    at(2026, time.March, 9, 9, 30),
		},
	}
	candidates := CandidateStarts(free, 30, 15)
	require.Len(t, candidates, 1)
	assert.Equal(t, at(2026, time.March, 9, 9, 0), candidates[0])
}

func TestCandidateStartsAscending(t *testing.T) {
	morning := mondayWindow(9, 10)
	afternoon := mondayWindow(14, 15)
	free := FreeIntervals([]models.ConcreteTimeWindow{afternoon, morning}, nil)

	candidates := CandidateStarts(free, 30, 30)
	for i := 1; i < len(candidates); i++ {
		assert.True(t, candidates[i-1].Before(candidates[i]))
	}
}
