package scheduling

import (
	"context"
	"time"

	rosterRepo "climaedu/database/repository/roster"
	sessionRepo "climaedu/database/repository/session"
	templateRepo "climaedu/database/repository/template"
	"climaedu/models"

	"go.uber.org/zap"
)

// SchedulingService computes bookable tutoring slots and commits bookings.
type SchedulingService interface {
	// Search computes the conflict-free candidate start times every tutor of a
	// course offers on a date for the requested duration. Read-only, idempotent,
	// safe to retry. An empty result means no availability, not an error.
	Search(ctx context.Context, query models.AvailabilityQuery) ([]models.AvailableSlotResult, error)
	// Book re-validates a chosen candidate against the freshest store state and
	// commits it atomically. Returns the confirmed session, or a typed
	// ValidationError, ConflictError or StoreUnavailableError.
	Book(ctx context.Context, req models.BookingRequest) (*models.BookedSession, error)
}

// DefaultSchedulingService is the production implementation.
type DefaultSchedulingService struct {
	TemplateRepo templateRepo.TemplateRepository
	SessionRepo  sessionRepo.SessionRepository
	RosterRepo   rosterRepo.CourseRosterRepository
	Policy       *Policy
	Logger       *zap.Logger

	// Now is the clock used for policy checks; overridable in tests.
	Now func() time.Time
}

func (s *DefaultSchedulingService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}
