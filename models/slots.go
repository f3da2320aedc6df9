package models

import "time"

// AvailabilityQuery is a student's search request.
type AvailabilityQuery struct {
	CourseID        string `json:"courseId" binding:"required"`
	Date            string `json:"date" binding:"required"` // "2006-01-02"
	DurationMinutes int    `json:"durationMinutes" binding:"required"`
}

// AvailableSlotResult is one tutor window's answer to an availability query.
// CandidateStarts are ascending and every candidate plus the requested
// duration fits within the window. Computed per request, never stored.
type AvailableSlotResult struct {
	TutorID         string             `json:"tutorId"`
	Window          ConcreteTimeWindow `json:"window"`
	CandidateStarts []time.Time        `json:"candidateStarts"`
}

// BookingRequest carries a student's chosen candidate into the coordinator.
type BookingRequest struct {
	TutorID         string    `json:"tutorId"`
	StudentID       string    `json:"studentId"`
	CourseID        string    `json:"courseId"`
	Start           time.Time `json:"start"`
	DurationMinutes int       `json:"durationMinutes"`
}
