package templateRepo

import (
	"context"

	"climaedu/models"
)

// TemplateRepository defines read access to tutors' recurring weekly
// availability templates. Templates are edited by tutor-management flows;
// the scheduler only reads them.
type TemplateRepository interface {
	// ListTemplates retrieves all weekly availability templates for a tutor.
	ListTemplates(ctx context.Context, tutorID string) ([]models.WeeklyAvailabilityTemplate, error)
	// EnsureIndexes creates the indexes backing the template queries.
	EnsureIndexes() error
}
