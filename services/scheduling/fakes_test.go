package scheduling

import (
	"context"
	"errors"
	"sync"
	"time"

	sessionRepo "climaedu/database/repository/session"
	"climaedu/models"

	"go.uber.org/zap"
)

// fakeTemplateRepo serves templates from memory and can fail a configured
// number of calls to exercise the retry path.
type fakeTemplateRepo struct {
	mu        sync.Mutex
	templates map[string][]models.WeeklyAvailabilityTemplate
	failCalls int
}

func (f *fakeTemplateRepo) ListTemplates(ctx context.Context, tutorID string) ([]models.WeeklyAvailabilityTemplate, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failCalls > 0 {
		f.failCalls--
		return nil, errors.New("template store down")
	}
	return append([]models.WeeklyAvailabilityTemplate(nil), f.templates[tutorID]...), nil
}

func (f *fakeTemplateRepo) EnsureIndexes() error { return nil }

// fakeSessionRepo is an in-memory SessionRepository whose TryCommit holds a
// mutex across the overlap check and insert, mirroring the store-side
// conditional write that arbitrates races.
type fakeSessionRepo struct {
	mu          sync.Mutex
	sessions    map[string]*models.BookedSession
	failList    int
	failConfirm bool
}

func newFakeSessionRepo() *fakeSessionRepo {
	return &fakeSessionRepo{sessions: make(map[string]*models.BookedSession)}
}

func (f *fakeSessionRepo) ListSessionsOnDate(ctx context.Context, tutorID string, dayStart, dayEnd time.Time) ([]models.BookedSession, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failList > 0 {
		f.failList--
		return nil, errors.New("session store down")
	}
	var out []models.BookedSession
	for _, s := range f.sessions {
		if s.TutorID == tutorID && s.Blocking() &&
			s.ScheduledStart.Before(dayEnd) && s.ScheduledEnd.After(dayStart) {
			out = append(out, *s)
		}
	}
	return out, nil
}

func (f *fakeSessionRepo) GetSessionByID(ctx context.Context, sessionID string) (*models.BookedSession, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	s, ok := f.sessions[sessionID]
	if !ok {
		return nil, errors.New("session not found")
	}
	cp := *s
	return &cp, nil
}

func (f *fakeSessionRepo) TryCommit(ctx context.Context, session *models.BookedSession) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, s := range f.sessions {
		if s.TutorID == session.TutorID && s.Blocking() &&
			s.ScheduledStart.Before(session.ScheduledEnd) && s.ScheduledEnd.After(session.ScheduledStart) {
			return sessionRepo.ErrSessionConflict
		}
	}
	cp := *session
	f.sessions[session.ID] = &cp
	return nil
}

func (f *fakeSessionRepo) ConfirmSession(ctx context.Context, sessionID string, expectedVersion int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failConfirm {
		return errors.New("session store down")
	}
	s, ok := f.sessions[sessionID]
	if !ok || s.Status != models.SessionStatusPending || s.Version != expectedVersion {
		return sessionRepo.ErrVersionMismatch
	}
	s.Status = models.SessionStatusConfirmed
	s.Version++
	return nil
}

func (f *fakeSessionRepo) CancelSession(ctx context.Context, sessionID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	s, ok := f.sessions[sessionID]
	if !ok {
		return errors.New("session not found")
	}
	s.Status = models.SessionStatusCancelled
	s.SlotKeys = nil
	s.Version++
	return nil
}

func (f *fakeSessionRepo) ExpireStalePending(ctx context.Context, cutoff time.Time) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var released int64
	for _, s := range f.sessions {
		if s.Status == models.SessionStatusPending && s.CreatedAt.Before(cutoff) {
			s.Status = models.SessionStatusCancelled
			s.SlotKeys = nil
			s.Version++
			released++
		}
	}
	return released, nil
}

func (f *fakeSessionRepo) EnsureIndexes() error { return nil }

// confirmedSessions returns a snapshot of all confirmed sessions.
func (f *fakeSessionRepo) confirmedSessions() []models.BookedSession {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.BookedSession
	for _, s := range f.sessions {
		if s.Status == models.SessionStatusConfirmed {
			out = append(out, *s)
		}
	}
	return out
}

// fakeRosterRepo serves course rosters from memory.
type fakeRosterRepo struct {
	tutors map[string][]string
}

func (f *fakeRosterRepo) ListTutorsForCourse(ctx context.Context, courseID string) ([]string, error) {
	return append([]string(nil), f.tutors[courseID]...), nil
}

// Fixed clock for all scheduling tests: Monday 2026-03-02 08:00 UTC.
var testNow = time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC)

func testPolicy(granularityMinutes int) *Policy {
	return &Policy{
		Location:           time.UTC,
		GranularityMinutes: granularityMinutes,
		AllowedDurations:   []int{30, 60, 90, 120},
		HorizonDays:        90,
	}
}

func newTestService(templates *fakeTemplateRepo, sessions *fakeSessionRepo, roster *fakeRosterRepo, granularityMinutes int) *DefaultSchedulingService {
	if templates == nil {
		templates = &fakeTemplateRepo{templates: map[string][]models.WeeklyAvailabilityTemplate{}}
	}
	if sessions == nil {
		sessions = newFakeSessionRepo()
	}
	if roster == nil {
		roster = &fakeRosterRepo{tutors: map[string][]string{}}
	}
	return &DefaultSchedulingService{
		TemplateRepo: templates,
		SessionRepo:  sessions,
		RosterRepo:   roster,
		Policy:       testPolicy(granularityMinutes),
		Logger:       zap.NewNop(),
		Now:          func() time.Time { return testNow },
	}
}

// at builds a timestamp on the given date (UTC) at hour:minute.
func at(year int, month time.Month, day, hour, minute int) time.Time {
	return time.Date(year, month, day, hour, minute, 0, 0, time.UTC)
}
