package scheduling

import (
	"context"
	"sort"
	"sync"
	"time"

	"climaedu/models"

	"go.uber.org/zap"
)

// Search computes the bookable slots every tutor of a course offers on a
// date. Results are advisory: availability keeps changing as other students
// book, so Book re-validates against the store before committing. Per-tutor
// work fans out concurrently; the interval arithmetic itself is synchronous
// and holds no locks across store calls.
func (s *DefaultSchedulingService) Search(ctx context.Context, query models.AvailabilityQuery) ([]models.AvailableSlotResult, error) {
	if !s.Policy.DurationAllowed(query.DurationMinutes) {
		return nil, newValidationError(ReasonDisallowedDuration,
			"duration %d is not offered; allowed durations are %v", query.DurationMinutes, s.Policy.AllowedDurations)
	}
	day, err := s.Policy.ParseDate(query.Date)
	if err != nil {
		return nil, err
	}
	if err := s.Policy.ValidateDate(day, s.now()); err != nil {
		return nil, err
	}

	tutorIDs, err := s.listTutors(ctx, query.CourseID)
	if err != nil {
		return nil, err
	}
	if len(tutorIDs) == 0 {
		return []models.AvailableSlotResult{}, nil
	}

	var (
		mu      sync.Mutex
		results []models.AvailableSlotResult
		errs    []error
		wg      sync.WaitGroup
	)
	for _, tutorID := range tutorIDs {
		wg.Add(1)
		go func(tutorID string) {
			defer wg.Done()
			tutorResults, err := s.slotsForTutor(ctx, tutorID, day, query.DurationMinutes)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				errs = append(errs, err)
				return
			}
			results = append(results, tutorResults...)
		}(tutorID)
	}
	wg.Wait()

	if len(errs) > 0 {
		return nil, errs[0]
	}

	sort.Slice(results, func(i, j int) bool {
		if results[i].TutorID != results[j].TutorID {
			return results[i].TutorID < results[j].TutorID
		}
		return results[i].Window.Start.Before(results[j].Window.Start)
	})

	s.Logger.Debug("availability search complete",
		zap.String("courseId", query.CourseID),
		zap.String("date", query.Date),
		zap.Int("tutors", len(tutorIDs)),
		zap.Int("windows", len(results)))
	return results, nil
}

// slotsForTutor runs the full per-tutor pipeline: expand templates into
// windows, subtract blocking sessions, enumerate candidates per window.
func (s *DefaultSchedulingService) slotsForTutor(ctx context.Context, tutorID string, day time.Time, durationMinutes int) ([]models.AvailableSlotResult, error) {
	windows, err := s.windowsFor(ctx, tutorID, day)
	if err != nil {
		return nil, err
	}
	if len(windows) == 0 {
		return nil, nil
	}

	sessions, err := s.blockingSessions(ctx, tutorID, day)
	if err != nil {
		return nil, err
	}
	free := FreeIntervals(windows, sessions)

	var results []models.AvailableSlotResult
	for _, w := range windows {
		var windowFree []models.FreeInterval
		for _, f := range free {
			if f.Window == w {
				windowFree = append(windowFree, f)
			}
		}
		candidates := CandidateStarts(windowFree, durationMinutes, s.Policy.GranularityMinutes)
		if len(candidates) == 0 {
			continue
		}
		results = append(results, models.AvailableSlotResult{
			TutorID:         tutorID,
			Window:          w,
			CandidateStarts: candidates,
		})
	}
	return results, nil
}

// blockingSessions reads the tutor's pending and confirmed sessions for the
// calendar day containing day (midnight in the policy timezone).
func (s *DefaultSchedulingService) blockingSessions(ctx context.Context, tutorID string, day time.Time) ([]models.BookedSession, error) {
	dayEnd := day.AddDate(0, 0, 1)
	var sessions []models.BookedSession
	err := s.withStoreRetry(ctx, "list sessions", func() error {
		var err error
		sessions, err = s.SessionRepo.ListSessionsOnDate(ctx, tutorID, day, dayEnd)
		return err
	})
	if err != nil {
		return nil, err
	}
	return sessions, nil
}

func (s *DefaultSchedulingService) listTutors(ctx context.Context, courseID string) ([]string, error) {
	var tutorIDs []string
	err := s.withStoreRetry(ctx, "list course tutors", func() error {
		var err error
		tutorIDs, err = s.RosterRepo.ListTutorsForCourse(ctx, courseID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return tutorIDs, nil
}
