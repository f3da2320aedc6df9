package scheduling

import (
	"context"
	"testing"
	"time"

	"climaedu/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func searchFixture(granularityMinutes int) (*DefaultSchedulingService, *fakeSessionRepo) {
	sessions := newFakeSessionRepo()
	roster := &fakeRosterRepo{tutors: map[string][]string{
		"course-1": {"tutor-1"},
	}}
	svc := newTestService(mondayTemplates(), sessions, roster, granularityMinutes)
	return svc, sessions
}

func TestSearchExcludesBookedInterval(t *testing.T) {
	svc, sessions := searchFixture(30)
	taken := blocking(at(2026, time.March, 9, 10, 0), at(2026, time.March, 9, 10, 30))
	taken.ID = "existing"
	require.NoError(t, sessions.TryCommit(context.Background(), &taken))

	results, err := svc.Search(context.Background(), models.AvailabilityQuery{
		CourseID:        "course-1",
		Date:            "2026-03-09",
		DurationMinutes: 30,
	})
	require.NoError(t, err)
	require.Len(t, results, 1)

	assert.Equal(t, "tutor-1", results[0].TutorID)
	assert.Equal(t, "2026-03-09", results[0].Window.Date)
	expected := []time.Time{
		at(2026, time.March, 9, 9, 0),
		at(2026, time.March, 9, 9, 30),
		at(2026, time.March, 9, 10, 30),
		at(2026, time.March, 9, 11, 0),
		at(2026, time.March, 9, 11, 30),
	}
	assert.Equal(t, expected, results[0].CandidateStarts)
}

func TestSearchCandidatesFitWindow(t *testing.T) {
	svc, _ := searchFixture(15)

	results, err := svc.Search(context.Background(), models.AvailabilityQuery{
		CourseID:        "course-1",
		Date:            "2026-03-09",
		DurationMinutes: 120,
	})
	require.NoError(t, err)
	require.Len(t, results, 1)

	duration := 120 * time.Minute
	for _, c := range results[0].CandidateStarts {
		assert.False(t, c.Add(duration).After(results[0].Window.End))
	}
}

func TestSearchIsIdempotent(t *testing.T) {
	svc, sessions := searchFixture(15)
	taken := blocking(at(2026, time.March, 9, 9, 0), at(2026, time.March, 9, 10, 0))
	taken.ID = "existing"
	require.NoError(t, sessions.TryCommit(context.Background(), &taken))

	query := models.AvailabilityQuery{CourseID: "course-1", Date: "2026-03-09", DurationMinutes: 60}
	first, err := svc.Search(context.Background(), query)
	require.NoError(t, err)
	second, err := svc.Search(context.Background(), query)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestSearchRejectsWeekend(t *testing.T) {
	svc, _ := searchFixture(15)

	_, err := svc.Search(context.Background(), models.AvailabilityQuery{
		CourseID:        "course-1",
		Date:            "2026-03-07", // Saturday
		DurationMinutes: 30,
	})
	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, ReasonWeekendDate, vErr.Reason)
}

func TestSearchRejectsPastDate(t *testing.T) {
	svc, _ := searchFixture(15)

	_, err := svc.Search(context.Background(), models.AvailabilityQuery{
		CourseID:        "course-1",
		Date:            "2026-02-27",
		DurationMinutes: 30,
	})
	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, ReasonPastDate, vErr.Reason)
}

func TestSearchRejectsDateBeyondHorizon(t *testing.T) {
	svc, _ := searchFixture(15)

	_, err := svc.Search(context.Background(), models.AvailabilityQuery{
		CourseID:        "course-1",
		Date:            "2026-09-07", // a Monday well past the 90-day horizon
		DurationMinutes: 30,
	})
	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, ReasonBeyondHorizon, vErr.Reason)
}

func TestSearchRejectsMalformedDate(t *testing.T) {
	svc, _ := searchFixture(15)

	_, err := svc.Search(context.Background(), models.AvailabilityQuery{
		CourseID:        "course-1",
		Date:            "09-03-2026",
		DurationMinutes: 30,
	})
	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, ReasonBadDate, vErr.Reason)
}

func TestSearchRejectsDisallowedDuration(t *testing.T) {
	svc, _ := searchFixture(15)

	_, err := svc.Search(context.Background(), models.AvailabilityQuery{
		CourseID:        "course-1",
		Date:            "2026-03-09",
		DurationMinutes: 45,
	})
	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, ReasonDisallowedDuration, vErr.Reason)
}

func TestSearchEmptyRosterReturnsEmptyResult(t *testing.T) {
	svc, _ := searchFixture(15)

	results, err := svc.Search(context.Background(), models.AvailabilityQuery{
		CourseID:        "course-without-tutors",
		Date:            "2026-03-09",
		DurationMinutes: 30,
	})
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestSearchTutorWithoutTemplatesYieldsNothing(t *testing.T) {
	roster := &fakeRosterRepo{tutors: map[string][]string{
		"course-1": {"tutor-without-availability"},
	}}
	svc := newTestService(nil, nil, roster, 15)

	results, err := svc.Search(context.Background(), models.AvailabilityQuery{
		CourseID:        "course-1",
		Date:            "2026-03-09",
		DurationMinutes: 30,
	})
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestSearchMultipleTutorsSorted(t *testing.T) {
	templates := &fakeTemplateRepo{templates: map[string][]models.WeeklyAvailabilityTemplate{
		"tutor-1": {{ID: "t1", TutorID: "tutor-1", DayOfWeek: time.Monday, Start: 540, End: 660}},
		"tutor-2": {{ID: "t2", TutorID: "tutor-2", DayOfWeek: time.Monday, Start: 600, End: 720}},
	}}
	roster := &fakeRosterRepo{tutors: map[string][]string{
		"course-1": {"tutor-2", "tutor-1"},
	}}
	svc := newTestService(templates, nil, roster, 15)

	results, err := svc.Search(context.Background(), models.AvailabilityQuery{
		CourseID:        "course-1",
		Date:            "2026-03-09",
		DurationMinutes: 60,
	})
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, "tutor-1", results[0].TutorID)
	assert.Equal(t, "tutor-2", results[1].TutorID)
}

func TestSearchFullDayBookedReturnsNoCandidates(t *testing.T) {
	svc, sessions := searchFixture(15)
	taken := blocking(at(2026, time.March, 9, 9, 0), at(2026, time.March, 9, 12, 0))
	taken.ID = "full-day"
	require.NoError(t, sessions.TryCommit(context.Background(), &taken))

	results, err := svc.Search(context.Background(), models.AvailabilityQuery{
		CourseID:        "course-1",
		Date:            "2026-03-09",
		DurationMinutes: 30,
	})
	require.NoError(t, err)
	assert.Empty(t, results)
}
