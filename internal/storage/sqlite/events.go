package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/movieclubhq/backend/internal/models"
)

// ListEvents returns all confirmed events in chronological order.
func (s *SQLiteStore) ListEvents(ctx context.Context) ([]models.ConfirmedEvent, error) {
	return s.queryEvents(ctx,
		"SELECT id, month, person, phase_number, movie_title, created_at FROM events ORDER BY month",
	)
}

// ListEventsByDateRange returns confirmed events whose month falls in
// [start, end], inclusive, in chronological order.
func (s *SQLiteStore) ListEventsByDateRange(ctx context.Context, start, end time.Time) ([]models.ConfirmedEvent, error) {
	return s.queryEvents(ctx,
		"SELECT id, month, person, phase_number, movie_title, created_at FROM events WHERE month >= ? AND month <= ? ORDER BY month",
		monthToDB(start), monthToDB(end),
	)
}

func (s *SQLiteStore) queryEvents(ctx context.Context, query string, args ...any) ([]models.ConfirmedEvent, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}
	defer rows.Close()

	var events []models.ConfirmedEvent
	for rows.Next() {
		var event models.ConfirmedEvent
		var month string
		var movieTitle sql.NullString
		if err := rows.Scan(&event.ID, &month, &event.Person, &event.PhaseNumber, &movieTitle, &event.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan event: %w", err)
		}
		if event.Month, err = monthFromDB(month); err != nil {
			return nil, err
		}
		if movieTitle.Valid {
			event.MovieTitle = movieTitle.String
		}
		events = append(events, event)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate events: %w", err)
	}

	return events, nil
}

// CreateEvent persists a new confirmed event. The month column is
// unique: a second event for the same month fails.
func (s *SQLiteStore) CreateEvent(ctx context.Context, event *models.ConfirmedEvent) error {
	if event.ID == "" {
		event.ID = uuid.New().String()
	}
	if event.CreatedAt == 0 {
		event.CreatedAt = time.Now().Unix()
	}

	var movieTitle any
	if event.MovieTitle != "" {
		movieTitle = event.MovieTitle
	}

	_, err := s.db.ExecContext(ctx,
		"INSERT INTO events (id, month, person, phase_number, movie_title, created_at) VALUES (?, ?, ?, ?, ?, ?)",
		event.ID, monthToDB(event.Month), event.Person, event.PhaseNumber, movieTitle, event.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert event: %w", err)
	}

	return nil
}
