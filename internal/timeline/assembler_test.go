package timeline

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/movieclubhq/backend/internal/cache"
	"github.com/movieclubhq/backend/internal/metrics"
	"github.com/movieclubhq/backend/internal/models"
	"github.com/movieclubhq/backend/internal/storage"
	"github.com/movieclubhq/backend/internal/storage/sqlite"
)

var clubStart = time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)

type fixture struct {
	store storage.Store
	svc   *Service
}

// newFixture builds a Service over a temp sqlite store with the clock
// pinned to now.
func newFixture(t *testing.T, now time.Time) *fixture {
	t.Helper()
	store, err := sqlite.New(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	svc := NewService(store, cache.New(), metrics.NewNopCollector())
	svc.now = func() time.Time { return now }
	return &fixture{store: store, svc: svc}
}

func (f *fixture) seed(t *testing.T, names []string, settings map[string]string) {
	t.Helper()
	ctx := context.Background()
	for i, name := range names {
		require.NoError(t, f.store.CreateParticipant(ctx, &models.Participant{Name: name, Order: i + 1}))
	}
	for key, value := range settings {
		require.NoError(t, f.store.SetSetting(ctx, key, value))
	}
	require.NoError(t, f.svc.Refresh(ctx))
}

func defaultSettings() map[string]string {
	return map[string]string{
		models.SettingClubStartDate:        "2024-01-01",
		models.SettingRespectRotationOrder: "true",
	}
}

func TestGetPersonForMonth(t *testing.T) {
	f := newFixture(t, clubStart)
	f.seed(t, []string{"Alice", "Bob", "Charlie"}, defaultSettings())

	a, ok := f.svc.GetPersonForMonth(clubStart.AddDate(0, 1, 0))
	require.True(t, ok)
	assert.Equal(t, "Bob", a.Person)

	_, ok = f.svc.GetPersonForMonth(clubStart.AddDate(0, -1, 0))
	assert.False(t, ok, "months before the club start have no assignment")
}

func TestBuildTimelinePersistedWins(t *testing.T) {
	f := newFixture(t, clubStart)
	f.seed(t, []string{"Alice", "Bob", "Charlie"}, defaultSettings())
	ctx := context.Background()

	// The cache predicts Alice for January; a confirmed event says Bob.
	a, ok := f.svc.GetPersonForMonth(clubStart)
	require.True(t, ok)
	require.Equal(t, "Alice", a.Person)

	require.NoError(t, f.store.CreateEvent(ctx, &models.ConfirmedEvent{
		Month:       clubStart,
		Person:      "Bob",
		PhaseNumber: 1,
		MovieTitle:  "Stalker",
	}))

	timeline, err := f.svc.BuildTimeline(ctx)
	require.NoError(t, err)
	require.NotNil(t, timeline.Current)

	item := timeline.Current.Items[0]
	assert.Equal(t, "Bob", item.Person)
	assert.NotEmpty(t, item.ConfirmedEventID)
	assert.Equal(t, "Stalker", item.MovieTitle)

	// The override is display-only: the cache still predicts Alice.
	a, _ = f.svc.GetPersonForMonth(clubStart)
	assert.Equal(t, "Alice", a.Person)
}

func TestBuildTimelineEmpty(t *testing.T) {
	f := newFixture(t, clubStart)
	f.seed(t, nil, defaultSettings())

	timeline, err := f.svc.BuildTimeline(context.Background())
	require.NoError(t, err)
	assert.Nil(t, timeline.Current)
	assert.Empty(t, timeline.Past)
	assert.Empty(t, timeline.Future)
}

func TestBuildTimelineTemporalSplit(t *testing.T) {
	// Three participants, club started 2024-01, "now" is 2024-05:
	// phase 1 (Jan-Mar) past, phase 2 (Apr-Jun) current, rest future.
	f := newFixture(t, time.Date(2024, time.May, 20, 15, 0, 0, 0, time.UTC))
	f.seed(t, []string{"Alice", "Bob", "Charlie"}, defaultSettings())

	timeline, err := f.svc.BuildTimeline(context.Background())
	require.NoError(t, err)

	require.Len(t, timeline.Past, 1)
	assert.Equal(t, 1, timeline.Past[0].Number)
	for _, item := range timeline.Past[0].Items {
		assert.Equal(t, models.StatePast, item.State)
	}

	require.NotNil(t, timeline.Current)
	assert.Equal(t, 2, timeline.Current.Number)
	states := make(map[models.TemporalState]int)
	for _, item := range timeline.Current.Items {
		states[item.State]++
	}
	assert.Equal(t, 1, states[models.StateCurrent], "exactly one current month")

	require.NotEmpty(t, timeline.Future)
	assert.Equal(t, 3, timeline.Future[0].Number)

	// Items inside every bucket are in increasing month order.
	for _, bucket := range append(append(timeline.Past, *timeline.Current), timeline.Future...) {
		for i := 1; i < len(bucket.Items); i++ {
			assert.True(t, bucket.Items[i-1].Month.Before(bucket.Items[i].Month))
		}
	}
}

func TestBuildTimelineAwardsBucket(t *testing.T) {
	settings := defaultSettings()
	settings[models.SettingAwardConfig] = `{"enabled":true,"phases_before_award":2}`

	f := newFixture(t, clubStart)
	f.seed(t, []string{"Alice", "Bob", "Charlie"}, settings)

	timeline, err := f.svc.BuildTimeline(context.Background())
	require.NoError(t, err)

	// Phases 1-2 fill months 0-5, the awards month lands at month 6,
	// phase 3 follows. The awards bucket stands alone and regular
	// numbering stays sequential around it.
	all := append([]models.TimelinePhase{*timeline.Current}, timeline.Future...)
	require.GreaterOrEqual(t, len(all), 4)

	assert.Equal(t, 1, all[0].Number)
	assert.Equal(t, 2, all[1].Number)

	awards := all[2]
	assert.True(t, awards.IsAwards)
	assert.Equal(t, 0, awards.Number)
	require.Len(t, awards.Items, 1)
	assert.True(t, awards.Items[0].IsAwardsEvent)
	assert.Equal(t, 1, awards.Items[0].AwardsEventNumber)
	assert.True(t, awards.Items[0].Month.Equal(clubStart.AddDate(0, 6, 0)))

	assert.Equal(t, 3, all[3].Number)
	assert.False(t, all[3].IsAwards)
}

// countingStore wraps a Store and counts phase creations.
type countingStore struct {
	storage.Store
	phaseCreates int
}

func (c *countingStore) CreatePhase(ctx context.Context, phase *models.Phase) error {
	c.phaseCreates++
	return c.Store.CreatePhase(ctx, phase)
}

func TestGetOrCreatePhaseIdempotent(t *testing.T) {
	f := newFixture(t, clubStart)
	f.seed(t, []string{"Alice", "Bob", "Charlie"}, defaultSettings())
	ctx := context.Background()

	counting := &countingStore{Store: f.store}
	f.svc.store = counting

	target := clubStart.AddDate(0, 4, 0) // phase 2

	first, err := f.svc.GetOrCreatePhase(ctx, target)
	require.NoError(t, err)
	assert.Equal(t, 2, first.Number)
	assert.True(t, first.StartMonth.Equal(clubStart.AddDate(0, 3, 0)))
	assert.True(t, first.EndMonth.Equal(clubStart.AddDate(0, 5, 0)))
	assert.Equal(t, []string{"Alice", "Bob", "Charlie"}, first.Participants)

	second, err := f.svc.GetOrCreatePhase(ctx, target)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, 1, counting.phaseCreates, "exactly one Create call for two requests")
}

func TestGetOrCreatePhaseConfigErrors(t *testing.T) {
	ctx := context.Background()

	t.Run("no start date", func(t *testing.T) {
		f := newFixture(t, clubStart)
		f.seed(t, []string{"Alice"}, map[string]string{})
		_, err := f.svc.GetOrCreatePhase(ctx, clubStart)
		assert.ErrorIs(t, err, ErrNoStartDate)
	})

	t.Run("no participants", func(t *testing.T) {
		f := newFixture(t, clubStart)
		f.seed(t, nil, defaultSettings())
		_, err := f.svc.GetOrCreatePhase(ctx, clubStart)
		assert.ErrorIs(t, err, ErrNoParticipants)
	})
}

func TestGetOrCreateConfirmedEvent(t *testing.T) {
	settings := defaultSettings()
	settings[models.SettingAwardConfig] = `{"enabled":true,"phases_before_award":1}`

	f := newFixture(t, clubStart)
	f.seed(t, []string{"Alice", "Bob", "Charlie"}, settings)
	ctx := context.Background()

	t.Run("creates from cache assignment", func(t *testing.T) {
		month := clubStart.AddDate(0, 1, 0)
		event, err := f.svc.GetOrCreateConfirmedEventForMonth(ctx, month)
		require.NoError(t, err)
		require.NotNil(t, event)
		assert.Equal(t, "Bob", event.Person)
		assert.Equal(t, 1, event.PhaseNumber)
		assert.NotEmpty(t, event.ID)

		again, err := f.svc.GetOrCreateConfirmedEventForMonth(ctx, month)
		require.NoError(t, err)
		assert.Equal(t, event.ID, again.ID)

		events, err := f.store.ListEvents(ctx)
		require.NoError(t, err)
		assert.Len(t, events, 1)
	})

	t.Run("awards month gets no event", func(t *testing.T) {
		// Phase 1 fills months 0-2; awards after every phase puts the
		// first awards month at month 3.
		event, err := f.svc.GetOrCreateConfirmedEventForMonth(ctx, clubStart.AddDate(0, 3, 0))
		require.NoError(t, err)
		assert.Nil(t, event)

		events, err := f.store.ListEvents(ctx)
		require.NoError(t, err)
		assert.Len(t, events, 1, "no event row for the awards month")
	})

	t.Run("month outside schedule", func(t *testing.T) {
		_, err := f.svc.GetOrCreateConfirmedEventForMonth(ctx, clubStart.AddDate(0, -2, 0))
		assert.ErrorIs(t, err, storage.ErrNotFound)
	})
}

func TestRefreshDefaultsStartDate(t *testing.T) {
	now := time.Date(2025, time.February, 10, 0, 0, 0, 0, time.UTC)
	f := newFixture(t, now)
	f.seed(t, []string{"Alice", "Bob"}, map[string]string{})

	// With no configured start date the schedule anchors on the current
	// month rather than failing.
	a, ok := f.svc.GetPersonForMonth(now)
	require.True(t, ok)
	assert.Equal(t, "Alice", a.Person)
}
