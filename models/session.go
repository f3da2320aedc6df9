package models

import "time"

// Session status values. Cancelled sessions never block availability.
const (
	SessionStatusPending   = "pending"
	SessionStatusConfirmed = "confirmed"
	SessionStatusCancelled = "cancelled"
)

// BookedSession represents a committed tutoring reservation.
type BookedSession struct {
	ID             string    `bson:"id" json:"id"`
	TutorID        string    `bson:"tutorId" json:"tutorId"`
	StudentID      string    `bson:"studentId" json:"studentId"`
	CourseID       string    `bson:"courseId" json:"courseId"`
	ScheduledStart time.Time `bson:"scheduledStart" json:"scheduledStart"`
	ScheduledEnd   time.Time `bson:"scheduledEnd" json:"scheduledEnd"`
	Status         string    `bson:"status" json:"status"`
	Version        int       `bson:"version" json:"version"`
	CreatedAt      time.Time `bson:"createdAt" json:"createdAt"`
	// SlotKeys holds one key per granularity quantum covered by
	// [ScheduledStart, ScheduledEnd). A unique index on (tutorId, slotKeys)
	// makes overlapping commits collide at the store layer. Cleared when the
	// session is cancelled.
	SlotKeys []string `bson:"slotKeys,omitempty" json:"-"`
}

// Blocking reports whether the session occupies tutor time for conflict checks.
func (s *BookedSession) Blocking() bool {
	return s.Status == SessionStatusPending || s.Status == SessionStatusConfirmed
}

// ComputeSlotKeys derives the quantum keys for an interval. Keys are UTC
// timestamps at granularity steps, so any two overlapping aligned intervals
// for the same tutor share at least one key.
func ComputeSlotKeys(start, end time.Time, granularityMinutes int) []string {
	step := time.Duration(granularityMinutes) * time.Minute
	var keys []string
	for t := start.UTC(); t.Before(end.UTC()); t = t.Add(step) {
		keys = append(keys, t.Format("200601021504"))
	}
	return keys
}
