// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"
	"errors"
	"time"

	"github.com/movieclubhq/backend/internal/models"
)

// ErrNotFound is returned when a requested record does not exist.
// Callers check it with errors.Is.
var ErrNotFound = errors.New("not found")

// ParticipantStore manages club members. The rotation core only reads
// participants; mutation exists for the admin API.
type ParticipantStore interface {
	ListParticipants(ctx context.Context) ([]models.Participant, error)
	CreateParticipant(ctx context.Context, p *models.Participant) error
	DeleteParticipant(ctx context.Context, id string) error
}

// SettingsStore holds club-level settings as a string key/value map.
type SettingsStore interface {
	GetSettings(ctx context.Context) (map[string]string, error)
	SetSetting(ctx context.Context, key, value string) error
}

// PhaseStore persists lazily created phase records.
type PhaseStore interface {
	ListPhases(ctx context.Context) ([]models.Phase, error)
	CreatePhase(ctx context.Context, phase *models.Phase) error
}

// EventStore persists confirmed movie nights.
type EventStore interface {
	ListEvents(ctx context.Context) ([]models.ConfirmedEvent, error)
	ListEventsByDateRange(ctx context.Context, start, end time.Time) ([]models.ConfirmedEvent, error)
	CreateEvent(ctx context.Context, event *models.ConfirmedEvent) error
}

// Store combines all storage concerns. This abstraction allows swapping
// storage backends (SQLite, PostgreSQL, etc.) without changing the
// service layer.
type Store interface {
	ParticipantStore
	SettingsStore
	PhaseStore
	EventStore

	// Close releases any resources held by the store.
	Close() error
}
