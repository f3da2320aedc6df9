package scheduling

import (
	"fmt"
	"time"

	"climaedu/config"
)

// Policy holds the institution's scheduling rules: timezone, candidate
// granularity, allowed session durations and the booking horizon.
type Policy struct {
	Location           *time.Location
	GranularityMinutes int
	AllowedDurations   []int
	HorizonDays        int
}

// NewPolicyFromConfig builds a Policy from the loaded application config.
func NewPolicyFromConfig() (*Policy, error) {
	loc, err := time.LoadLocation(config.AppConfig.SchedulingTimezone)
	if err != nil {
		return nil, fmt.Errorf("invalid scheduling timezone %q: %w", config.AppConfig.SchedulingTimezone, err)
	}
	return &Policy{
		Location:           loc,
		GranularityMinutes: config.AppConfig.SlotGranularityMin,
		AllowedDurations:   config.AppConfig.AllowedDurationsMin,
		HorizonDays:        config.AppConfig.BookingHorizonDays,
	}, nil
}

// ParseDate parses a "2006-01-02" date as midnight in the policy timezone.
func (p *Policy) ParseDate(date string) (time.Time, error) {
	day, err := time.ParseInLocation("2006-01-02", date, p.Location)
	if err != nil {
		return time.Time{}, newValidationError(ReasonBadDate, "date %q is not in YYYY-MM-DD form", date)
	}
	return day, nil
}

// ValidateDate enforces the weekday-only rule and the bounded booking
// horizon. day must be midnight in the policy timezone.
func (p *Policy) ValidateDate(day, now time.Time) error {
	switch day.Weekday() {
	case time.Saturday, time.Sunday:
		return newValidationError(ReasonWeekendDate, "tutoring sessions run on weekdays only, got %s", day.Weekday())
	}

	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, p.Location)
	if day.Before(today) {
		return newValidationError(ReasonPastDate, "date %s is in the past", day.Format("2006-01-02"))
	}
	if p.HorizonDays > 0 && day.After(today.AddDate(0, 0, p.HorizonDays)) {
		return newValidationError(ReasonBeyondHorizon, "date %s is more than %d days ahead", day.Format("2006-01-02"), p.HorizonDays)
	}
	return nil
}

// DurationAllowed reports whether the requested session length is offered.
func (p *Policy) DurationAllowed(durationMinutes int) bool {
	for _, d := range p.AllowedDurations {
		if d == durationMinutes {
			return true
		}
	}
	return false
}
