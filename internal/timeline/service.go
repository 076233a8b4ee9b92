// Package timeline merges the precomputed rotation schedule with
// persisted club records into the assembled timeline view, and exposes
// the month-level operations built on top of it.
package timeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/movieclubhq/backend/internal/cache"
	"github.com/movieclubhq/backend/internal/metrics"
	"github.com/movieclubhq/backend/internal/models"
	"github.com/movieclubhq/backend/internal/rotation"
	"github.com/movieclubhq/backend/internal/storage"
)

// Configuration errors for the create paths. Read-only paths degrade
// with logged warnings instead; only operations with persistence side
// effects fail loudly on bad configuration.
var (
	ErrNoStartDate    = errors.New("club start date is not configured")
	ErrNoParticipants = errors.New("no participants are configured")
)

// Service owns the rotation cache and the merge with persisted records.
type Service struct {
	store   storage.Store
	cache   *cache.Cache
	metrics *metrics.Collector

	// now is injectable for tests; calendar-month granularity only.
	now func() time.Time
}

// NewService creates a Service over the given store and cache.
func NewService(store storage.Store, c *cache.Cache, m *metrics.Collector) *Service {
	return &Service{
		store:   store,
		cache:   c,
		metrics: m,
		now:     time.Now,
	}
}

// Refresh rebuilds the rotation cache from current participants and
// settings. It runs at startup and after settings changes. A missing
// start date degrades to the current month with a warning; an empty
// participant list installs an empty schedule.
func (s *Service) Refresh(ctx context.Context) error {
	participants, err := s.store.ListParticipants(ctx)
	if err != nil {
		return fmt.Errorf("failed to load participants: %w", err)
	}

	cs, err := s.clubSettings(ctx)
	if err != nil {
		return err
	}

	start := cs.StartDate
	if !cs.HasStartDate {
		start = rotation.FirstOfMonth(s.now())
		slog.Warn("club start date not set, defaulting to current month", "start", start.Format("2006-01"))
	}

	mode := rotation.ModeSequential
	if !cs.RespectOrder {
		mode = rotation.ModeRandomized
	}

	s.cache.Initialize(participants, start, mode, cs.Award)
	s.metrics.CacheRefreshes.Inc()
	s.metrics.CachedAssignments.Set(float64(s.cache.Size()))

	slog.Info("rotation cache refreshed",
		"participants", len(participants),
		"assignments", s.cache.Size(),
		"sequential", cs.RespectOrder,
		"awards_enabled", cs.Award.Enabled,
	)

	return nil
}

// GetPersonForMonth answers who is responsible for the month containing
// t: a host assignment or an awards slot. ok is false for months before
// the club start or beyond the schedule horizon.
func (s *Service) GetPersonForMonth(t time.Time) (rotation.Assignment, bool) {
	return s.cache.Lookup(t)
}

// GetOrCreatePhase returns the persisted phase record covering the
// month containing t, creating it on first request. Creation requires a
// configured start date and at least one participant; it fails with
// ErrNoStartDate or ErrNoParticipants otherwise.
func (s *Service) GetOrCreatePhase(ctx context.Context, t time.Time) (*models.Phase, error) {
	cs, err := s.clubSettings(ctx)
	if err != nil {
		return nil, err
	}
	if !cs.HasStartDate {
		return nil, ErrNoStartDate
	}

	participants, err := s.store.ListParticipants(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load participants: %w", err)
	}
	if len(participants) == 0 {
		return nil, ErrNoParticipants
	}

	number := s.phaseNumberFor(t, cs.StartDate, len(participants))

	phases, err := s.store.ListPhases(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load phases: %w", err)
	}
	for i := range phases {
		if phases[i].Number == number {
			return &phases[i], nil
		}
	}

	startMonth, endMonth := rotation.PhaseBounds(cs.StartDate, number, len(participants))
	names := orderedNames(participants)

	phase := &models.Phase{
		Number:       number,
		StartMonth:   startMonth,
		EndMonth:     endMonth,
		Participants: names,
	}
	if err := s.store.CreatePhase(ctx, phase); err != nil {
		return nil, fmt.Errorf("failed to create phase %d: %w", number, err)
	}
	s.metrics.PhasesCreated.Inc()

	slog.Info("phase created",
		"number", number,
		"start", startMonth.Format("2006-01"),
		"end", endMonth.Format("2006-01"),
	)

	return phase, nil
}

// GetOrCreateConfirmedEventForMonth returns the confirmed event for the
// month containing t, creating one from the cached assignment if none
// exists. Awards months never get an event: the return is (nil, nil).
// Months outside the schedule report storage.ErrNotFound.
func (s *Service) GetOrCreateConfirmedEventForMonth(ctx context.Context, t time.Time) (*models.ConfirmedEvent, error) {
	month := rotation.FirstOfMonth(t)

	existing, err := s.store.ListEventsByDateRange(ctx, month, month)
	if err != nil {
		return nil, fmt.Errorf("failed to load events: %w", err)
	}
	if len(existing) > 0 {
		return &existing[0], nil
	}

	assignment, ok := s.cache.Lookup(month)
	if !ok {
		return nil, fmt.Errorf("no assignment for %s: %w", month.Format("2006-01"), storage.ErrNotFound)
	}
	if assignment.IsAward() {
		return nil, nil
	}

	phase, err := s.GetOrCreatePhase(ctx, month)
	if err != nil {
		return nil, err
	}

	event := &models.ConfirmedEvent{
		Month:       month,
		Person:      assignment.Person,
		PhaseNumber: phase.Number,
	}
	if err := s.store.CreateEvent(ctx, event); err != nil {
		return nil, fmt.Errorf("failed to create event: %w", err)
	}
	s.metrics.EventsCreated.Inc()

	slog.Info("confirmed event created",
		"month", month.Format("2006-01"),
		"person", event.Person,
		"phase", event.PhaseNumber,
	)

	return event, nil
}

// phaseNumberFor prefers the generator's phase attribution, which stays
// correct once awards months shift the calendar; the plain calendar
// formula covers months outside the cached schedule.
func (s *Service) phaseNumberFor(t, clubStart time.Time, participantCount int) int {
	if a, ok := s.cache.Lookup(t); ok {
		if a.Phase >= 1 {
			return a.Phase
		}
		return 1
	}
	return rotation.NumberForMonth(t, clubStart, participantCount)
}

func (s *Service) clubSettings(ctx context.Context) (models.ClubSettings, error) {
	raw, err := s.store.GetSettings(ctx)
	if err != nil {
		return models.ClubSettings{}, fmt.Errorf("failed to load settings: %w", err)
	}
	return models.ParseClubSettings(raw), nil
}

func orderedNames(participants []models.Participant) []string {
	ordered := make([]models.Participant, len(participants))
	copy(ordered, participants)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Order < ordered[j].Order
	})
	names := make([]string, len(ordered))
	for i, p := range ordered {
		names[i] = p.Name
	}
	return names
}
