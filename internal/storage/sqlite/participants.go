package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/movieclubhq/backend/internal/models"
	"github.com/movieclubhq/backend/internal/storage"
)

// ListParticipants returns all participants in rotation order.
func (s *SQLiteStore) ListParticipants(ctx context.Context) ([]models.Participant, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, name, sort_order, created_at FROM participants ORDER BY sort_order, name",
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list participants: %w", err)
	}
	defer rows.Close()

	var participants []models.Participant
	for rows.Next() {
		var p models.Participant
		if err := rows.Scan(&p.ID, &p.Name, &p.Order, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan participant: %w", err)
		}
		participants = append(participants, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate participants: %w", err)
	}

	return participants, nil
}

// CreateParticipant persists a new participant. The ID and CreatedAt
// fields are populated if unset; an unset Order is placed after the
// current last participant.
func (s *SQLiteStore) CreateParticipant(ctx context.Context, p *models.Participant) error {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	if p.CreatedAt == 0 {
		p.CreatedAt = time.Now().Unix()
	}
	if p.Order == 0 {
		var max sql.NullInt64
		err := s.db.QueryRowContext(ctx, "SELECT MAX(sort_order) FROM participants").Scan(&max)
		if err != nil {
			return fmt.Errorf("failed to compute rotation order: %w", err)
		}
		p.Order = int(max.Int64) + 1
	}

	_, err := s.db.ExecContext(ctx,
		"INSERT INTO participants (id, name, sort_order, created_at) VALUES (?, ?, ?, ?)",
		p.ID, p.Name, p.Order, p.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert participant: %w", err)
	}

	return nil
}

// DeleteParticipant removes a participant by ID.
func (s *SQLiteStore) DeleteParticipant(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM participants WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete participant: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("participant %s: %w", id, storage.ErrNotFound)
	}
	return nil
}
