package scheduling

import (
	"context"
	"errors"
	"time"

	sessionRepo "climaedu/database/repository/session"

	"go.uber.org/zap"
)

const (
	maxStoreAttempts  = 3
	storeRetryBackoff = 200 * time.Millisecond
)

// withStoreRetry runs a store read with bounded exponential backoff.
// Exhausting the attempts surfaces a StoreUnavailableError. Never used for
// TryCommit: a commit that timed out may still have landed, so retrying it
// is the caller's decision after a fresh search.
func (s *DefaultSchedulingService) withStoreRetry(ctx context.Context, op string, fn func() error) error {
	var lastErr error
	for attempt := 1; attempt <= maxStoreAttempts; attempt++ {
		lastErr = fn()
		if lastErr == nil {
			return nil
		}
		if errors.Is(lastErr, context.Canceled) {
			return &StoreUnavailableError{Op: op, Err: lastErr}
		}
		if attempt < maxStoreAttempts {
			s.Logger.Warn("store call failed, retrying",
				zap.String("op", op),
				zap.Int("attempt", attempt),
				zap.Error(lastErr))
			select {
			case <-ctx.Done():
				return &StoreUnavailableError{Op: op, Err: ctx.Err()}
			case <-time.After(time.Duration(attempt) * storeRetryBackoff):
			}
		}
	}
	return &StoreUnavailableError{Op: op, Err: lastErr}
}

// asTaxonomyError maps a raw commit error onto the scheduling error taxonomy.
func (s *DefaultSchedulingService) asTaxonomyError(tutorID, op string, err error) error {
	if errors.Is(err, sessionRepo.ErrSessionConflict) {
		return &ConflictError{TutorID: tutorID, Message: "interval was booked by another student"}
	}
	return &StoreUnavailableError{Op: op, Err: err}
}
