package scheduling

import (
	"context"
	"time"

	"climaedu/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Book commits a student's chosen candidate. It never trusts the search
// result the student is holding: availability is re-derived from the
// freshest store read, and the session store's conditional commit is the
// final arbiter between racing bookings. On conflict or failure no partial
// session is left behind.
//
// Request lifecycle: requested -> validating -> {confirmed | conflict | failed}.
func (s *DefaultSchedulingService) Book(ctx context.Context, req models.BookingRequest) (*models.BookedSession, error) {
	logger := s.Logger.With(
		zap.String("tutorId", req.TutorID),
		zap.String("studentId", req.StudentID),
		zap.Time("start", req.Start),
		zap.Int("durationMinutes", req.DurationMinutes),
	)
	logger.Debug("booking requested")

	// Validate the request shape before touching the store.
	if !s.Policy.DurationAllowed(req.DurationMinutes) {
		return nil, newValidationError(ReasonDisallowedDuration,
			"duration %d is not offered; allowed durations are %v", req.DurationMinutes, s.Policy.AllowedDurations)
	}

	now := s.now()
	start := req.Start.In(s.Policy.Location)
	end := start.Add(time.Duration(req.DurationMinutes) * time.Minute)
	if !start.After(now) {
		return nil, newValidationError(ReasonPastStart, "start %s is not in the future", start.Format(time.RFC3339))
	}

	day := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, s.Policy.Location)
	if err := s.Policy.ValidateDate(day, now); err != nil {
		return nil, err
	}

	// Validating: re-derive the tutor's windows and verify the chosen start
	// against them. This defends against stale or fabricated client slots.
	windows, err := s.windowsFor(ctx, req.TutorID, day)
	if err != nil {
		return nil, err
	}
	window, ok := containingWindow(windows, start, end)
	if !ok {
		return nil, newValidationError(ReasonOutsideWindow,
			"interval [%s, %s) is outside the tutor's availability on %s",
			start.Format("15:04"), end.Format("15:04"), day.Format("2006-01-02"))
	}
	if offset := start.Sub(window.Start); offset%(time.Duration(s.Policy.GranularityMinutes)*time.Minute) != 0 {
		return nil, newValidationError(ReasonMisalignedStart,
			"start %s is not aligned to the %d-minute granularity of its window", start.Format("15:04"), s.Policy.GranularityMinutes)
	}

	// Advisory conflict pre-check against the freshest session read. The
	// authoritative check repeats inside TryCommit.
	sessions, err := s.blockingSessions(ctx, req.TutorID, day)
	if err != nil {
		return nil, err
	}
	if !intervalFree(FreeIntervals(windows, sessions), start, end) {
		logger.Info("booking pre-check found the interval taken")
		return nil, &ConflictError{TutorID: req.TutorID, Message: "interval is no longer free"}
	}

	session := &models.BookedSession{
		ID:             uuid.New().String(),
		TutorID:        req.TutorID,
		StudentID:      req.StudentID,
		CourseID:       req.CourseID,
		ScheduledStart: start.UTC(),
		ScheduledEnd:   end.UTC(),
		Status:         models.SessionStatusPending,
		Version:        1,
		CreatedAt:      now.UTC(),
		SlotKeys:       models.ComputeSlotKeys(start, end, s.Policy.GranularityMinutes),
	}

	// Commit: conditional insert in pending status. A lost race surfaces as
	// ConflictError here; no retry, the student must re-search.
	if err := s.SessionRepo.TryCommit(ctx, session); err != nil {
		taxErr := s.asTaxonomyError(req.TutorID, "commit session", err)
		if _, isConflict := taxErr.(*ConflictError); isConflict {
			logger.Info("booking lost the commit race")
		} else {
			logger.Error("booking commit failed", zap.Error(err))
		}
		return nil, taxErr
	}

	// Confirm the pending session. If confirmation fails the pending row is
	// rolled back so the slot is released immediately; the sweeper covers the
	// crash case where even the rollback is lost.
	if err := s.SessionRepo.ConfirmSession(ctx, session.ID, session.Version); err != nil {
		logger.Error("session confirmation failed, rolling back", zap.String("sessionId", session.ID), zap.Error(err))
		if cancelErr := s.SessionRepo.CancelSession(context.WithoutCancel(ctx), session.ID); cancelErr != nil {
			logger.Warn("rollback of pending session failed; sweeper will release it",
				zap.String("sessionId", session.ID), zap.Error(cancelErr))
		}
		return nil, &StoreUnavailableError{Op: "confirm session", Err: err}
	}
	session.Status = models.SessionStatusConfirmed
	session.Version++

	logger.Info("booking confirmed", zap.String("sessionId", session.ID))
	return session, nil
}

// containingWindow finds the window that fully contains [start, end), if any.
func containingWindow(windows []models.ConcreteTimeWindow, start, end time.Time) (models.ConcreteTimeWindow, bool) {
	for _, w := range windows {
		if !start.Before(w.Start) && !end.After(w.End) {
			return w, true
		}
	}
	return models.ConcreteTimeWindow{}, false
}

// intervalFree reports whether [start, end) lies entirely inside one of the
// free intervals.
func intervalFree(free []models.FreeInterval, start, end time.Time) bool {
	for _, f := range free {
		if !start.Before(f.Start) && !end.After(f.End) {
			return true
		}
	}
	return false
}
