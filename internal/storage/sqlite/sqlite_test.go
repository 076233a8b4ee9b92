package sqlite

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/movieclubhq/backend/internal/models"
	"github.com/movieclubhq/backend/internal/storage"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	store, err := New(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err, "failed to create store")
	t.Cleanup(func() { store.Close() })
	return store
}

func TestParticipants(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	t.Run("create generates ID and order", func(t *testing.T) {
		p := &models.Participant{Name: "Alice"}
		require.NoError(t, store.CreateParticipant(ctx, p))
		assert.NotEmpty(t, p.ID)
		assert.Equal(t, 1, p.Order)
		assert.NotZero(t, p.CreatedAt)

		q := &models.Participant{Name: "Bob"}
		require.NoError(t, store.CreateParticipant(ctx, q))
		assert.Equal(t, 2, q.Order)
	})

	t.Run("list returns rotation order", func(t *testing.T) {
		require.NoError(t, store.CreateParticipant(ctx, &models.Participant{Name: "Zoe", Order: 1}))

		participants, err := store.ListParticipants(ctx)
		require.NoError(t, err)
		require.Len(t, participants, 3)
		// Order ties break on name.
		assert.Equal(t, "Alice", participants[0].Name)
		assert.Equal(t, "Zoe", participants[1].Name)
		assert.Equal(t, "Bob", participants[2].Name)
	})

	t.Run("duplicate name fails", func(t *testing.T) {
		err := store.CreateParticipant(ctx, &models.Participant{Name: "Alice"})
		assert.Error(t, err)
	})

	t.Run("delete", func(t *testing.T) {
		participants, err := store.ListParticipants(ctx)
		require.NoError(t, err)
		require.NoError(t, store.DeleteParticipant(ctx, participants[0].ID))

		err = store.DeleteParticipant(ctx, "nonexistent-id")
		assert.ErrorIs(t, err, storage.ErrNotFound)
	})
}

func TestSettings(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	settings, err := store.GetSettings(ctx)
	require.NoError(t, err)
	assert.Empty(t, settings)

	require.NoError(t, store.SetSetting(ctx, models.SettingClubStartDate, "2024-03-01"))
	require.NoError(t, store.SetSetting(ctx, models.SettingRespectRotationOrder, "true"))
	// Upsert overwrites.
	require.NoError(t, store.SetSetting(ctx, models.SettingRespectRotationOrder, "false"))

	settings, err = store.GetSettings(ctx)
	require.NoError(t, err)
	assert.Equal(t, "2024-03-01", settings[models.SettingClubStartDate])
	assert.Equal(t, "false", settings[models.SettingRespectRotationOrder])
}

func TestPhases(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	phase := &models.Phase{
		Number:       1,
		StartMonth:   time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC),
		EndMonth:     time.Date(2024, time.August, 1, 0, 0, 0, 0, time.UTC),
		Participants: []string{"Alice", "Bob", "Charlie"},
	}
	require.NoError(t, store.CreatePhase(ctx, phase))
	assert.NotEmpty(t, phase.ID)

	phases, err := store.ListPhases(ctx)
	require.NoError(t, err)
	require.Len(t, phases, 1)
	assert.Equal(t, 1, phases[0].Number)
	assert.True(t, phases[0].StartMonth.Equal(phase.StartMonth))
	assert.True(t, phases[0].EndMonth.Equal(phase.EndMonth))
	assert.Equal(t, []string{"Alice", "Bob", "Charlie"}, phases[0].Participants)

	// Phase numbers are unique; a second record for the same phase fails.
	err = store.CreatePhase(ctx, &models.Phase{
		Number:     1,
		StartMonth: phase.StartMonth,
		EndMonth:   phase.EndMonth,
	})
	assert.Error(t, err)
}

func TestEvents(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	march := time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)

	event := &models.ConfirmedEvent{
		Month:       march,
		Person:      "Alice",
		PhaseNumber: 1,
		MovieTitle:  "Brazil",
	}
	require.NoError(t, store.CreateEvent(ctx, event))
	assert.NotEmpty(t, event.ID)

	require.NoError(t, store.CreateEvent(ctx, &models.ConfirmedEvent{
		Month:       march.AddDate(0, 3, 0),
		Person:      "Bob",
		PhaseNumber: 1,
	}))

	t.Run("month is unique", func(t *testing.T) {
		err := store.CreateEvent(ctx, &models.ConfirmedEvent{Month: march, Person: "Bob", PhaseNumber: 1})
		assert.Error(t, err)
	})

	t.Run("list all", func(t *testing.T) {
		events, err := store.ListEvents(ctx)
		require.NoError(t, err)
		require.Len(t, events, 2)
		assert.Equal(t, "Alice", events[0].Person)
		assert.Equal(t, "Brazil", events[0].MovieTitle)
		assert.Empty(t, events[1].MovieTitle)
	})

	t.Run("date range is inclusive", func(t *testing.T) {
		events, err := store.ListEventsByDateRange(ctx, march, march.AddDate(0, 3, 0))
		require.NoError(t, err)
		assert.Len(t, events, 2)

		events, err = store.ListEventsByDateRange(ctx, march.AddDate(0, 1, 0), march.AddDate(0, 2, 0))
		require.NoError(t, err)
		assert.Empty(t, events)
	})

	t.Run("mid-month dates normalize", func(t *testing.T) {
		events, err := store.ListEventsByDateRange(ctx,
			time.Date(2024, time.March, 15, 10, 0, 0, 0, time.UTC),
			time.Date(2024, time.March, 20, 0, 0, 0, 0, time.UTC),
		)
		require.NoError(t, err)
		assert.Len(t, events, 1)
	})
}
