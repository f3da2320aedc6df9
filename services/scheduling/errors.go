package scheduling

import "fmt"

// Validation reason codes surfaced to callers.
const (
	ReasonWeekendDate        = "weekendDate"
	ReasonPastDate           = "pastDate"
	ReasonBeyondHorizon      = "beyondHorizon"
	ReasonBadDate            = "badDate"
	ReasonDisallowedDuration = "disallowedDuration"
	ReasonMisalignedStart    = "misalignedStart"
	ReasonPastStart          = "pastStart"
	ReasonOutsideWindow      = "outsideAvailability"
)

// ValidationError marks a malformed or policy-violating request. Not
// retryable; the caller must fix the request.
type ValidationError struct {
	Reason  string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Reason, e.Message)
}

func newValidationError(reason, format string, args ...interface{}) error {
	return &ValidationError{Reason: reason, Message: fmt.Sprintf(format, args...)}
}

// ConflictError marks a booking that lost the race for its interval. The
// caller must re-run Search for a fresh view rather than retry Book.
type ConflictError struct {
	TutorID string
	Message string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("booking conflict for tutor %s: %s", e.TutorID, e.Message)
}

// StoreUnavailableError marks a transient store failure on read or write.
// Safe to retry with backoff, unlike ConflictError.
type StoreUnavailableError struct {
	Op  string
	Err error
}

func (e *StoreUnavailableError) Error() string {
	return fmt.Sprintf("store unavailable during %s: %v", e.Op, e.Err)
}

func (e *StoreUnavailableError) Unwrap() error {
	return e.Err
}
