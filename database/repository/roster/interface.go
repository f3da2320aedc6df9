package rosterRepo

import "context"

// CourseRosterRepository resolves which tutors teach a course. Roster
// membership is stable, so reads may be cached briefly; availability derived
// from it is always recomputed per request.
type CourseRosterRepository interface {
	// ListTutorsForCourse returns the IDs of tutors assigned to a course.
	ListTutorsForCourse(ctx context.Context, courseID string) ([]string, error)
}
