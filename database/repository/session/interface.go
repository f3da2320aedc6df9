package sessionRepo

import (
	"context"
	"errors"
	"time"

	"climaedu/models"
)

// ErrSessionConflict is returned when a commit loses the race for a tutor
// interval: another pending or confirmed session already occupies part of it.
var ErrSessionConflict = errors.New("session conflict: interval already booked")

// ErrVersionMismatch is returned when a conditional update finds a different
// version than expected.
var ErrVersionMismatch = errors.New("session version mismatch")

// SessionRepository defines the data access methods used by the booking
// coordinator. TryCommit is the single arbiter between racing bookings:
// whichever commit the store accepts first wins.
type SessionRepository interface {
	// ListSessionsOnDate retrieves a tutor's blocking (pending or confirmed)
	// sessions that overlap [dayStart, dayEnd).
	ListSessionsOnDate(ctx context.Context, tutorID string, dayStart, dayEnd time.Time) ([]models.BookedSession, error)
	// GetSessionByID retrieves a session by its unique ID.
	GetSessionByID(ctx context.Context, sessionID string) (*models.BookedSession, error)
	// TryCommit atomically inserts the session in pending status after
	// verifying no blocking session overlaps it. Returns ErrSessionConflict
	// when the interval is taken.
	TryCommit(ctx context.Context, session *models.BookedSession) error
	// ConfirmSession transitions a pending session to confirmed, conditional
	// on the expected version.
	ConfirmSession(ctx context.Context, sessionID string, expectedVersion int) error
	// CancelSession marks a session cancelled and releases its slot keys.
	CancelSession(ctx context.Context, sessionID string) error
	// ExpireStalePending cancels pending sessions created before the cutoff.
	// Used by the background sweeper to release slots orphaned by a crash.
	ExpireStalePending(ctx context.Context, cutoff time.Time) (int64, error)
	// EnsureIndexes creates the indexes backing conflict detection.
	EnsureIndexes() error
}
