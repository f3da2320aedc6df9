package scheduling

import (
	"context"
	"sort"
	"time"

	"climaedu/models"
)

// MaterializeWindows instantiates the templates matching day's weekday into
// absolute time windows on that date. day must be midnight in the policy
// timezone. A tutor with zero matching templates yields an empty list.
func MaterializeWindows(templates []models.WeeklyAvailabilityTemplate, day time.Time) []models.ConcreteTimeWindow {
	dayStr := day.Format("2006-01-02")
	var windows []models.ConcreteTimeWindow
	for _, t := range templates {
		if t.DayOfWeek != day.Weekday() {
			continue
		}
		if t.Start >= t.End {
			// Malformed template row; skip rather than emit a negative window.
			continue
		}
		windows = append(windows, models.ConcreteTimeWindow{
			TutorID: t.TutorID,
			Date:    dayStr,
			Start:   day.Add(time.Duration(t.Start) * time.Minute),
			End:     day.Add(time.Duration(t.End) * time.Minute),
		})
	}
	sort.Slice(windows, func(i, j int) bool {
		return windows[i].Start.Before(windows[j].Start)
	})
	return windows
}

// windowsFor expands a tutor's recurring templates onto one calendar date.
// Pure apart from the template store read; date policy is enforced by the
// callers before this point.
func (s *DefaultSchedulingService) windowsFor(ctx context.Context, tutorID string, day time.Time) ([]models.ConcreteTimeWindow, error) {
	var templates []models.WeeklyAvailabilityTemplate
	err := s.withStoreRetry(ctx, "list templates", func() error {
		var err error
		templates, err = s.TemplateRepo.ListTemplates(ctx, tutorID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return MaterializeWindows(templates, day), nil
}
