package models

import "time"

// WeeklyAvailabilityTemplate is a tutor's recurring weekly offer of time,
// independent of any specific calendar date. Start and End are minutes from
// midnight in the institution timezone (e.g., 540 for 9:00 AM).
type WeeklyAvailabilityTemplate struct {
	ID        string       `bson:"id" json:"id"`
	TutorID   string       `bson:"tutorId" json:"tutorId"`
	DayOfWeek time.Weekday `bson:"dayOfWeek" json:"dayOfWeek"` // 0 (Sunday) through 6 (Saturday)
	Start     int          `bson:"start" json:"start"`
	End       int          `bson:"end" json:"end"`
}

// ConcreteTimeWindow is a template instantiated onto one real date. It is
// computed per request and never persisted.
type ConcreteTimeWindow struct {
	TutorID string    `json:"tutorId"`
	Date    string    `json:"date"` // "2006-01-02"
	Start   time.Time `json:"start"`
	End     time.Time `json:"end"`
}

// FreeInterval is a continuous block inside a window that no pending or
// confirmed session occupies, tagged with its originating window.
type FreeInterval struct {
	Window ConcreteTimeWindow `json:"window"`
	Start  time.Time          `json:"start"`
	End    time.Time          `json:"end"`
}
