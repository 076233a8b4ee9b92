package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/movieclubhq/backend/internal/models"
)

// ListPhases returns all persisted phases, ordered by number, each with
// its participant snapshot in rotation order.
func (s *SQLiteStore) ListPhases(ctx context.Context) ([]models.Phase, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, number, start_month, end_month, created_at FROM phases ORDER BY number",
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list phases: %w", err)
	}
	defer rows.Close()

	var phases []models.Phase
	for rows.Next() {
		var phase models.Phase
		var startMonth, endMonth string
		if err := rows.Scan(&phase.ID, &phase.Number, &startMonth, &endMonth, &phase.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan phase: %w", err)
		}
		if phase.StartMonth, err = monthFromDB(startMonth); err != nil {
			return nil, err
		}
		if phase.EndMonth, err = monthFromDB(endMonth); err != nil {
			return nil, err
		}
		phases = append(phases, phase)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate phases: %w", err)
	}

	for i := range phases {
		names, err := s.phaseParticipants(ctx, phases[i].ID)
		if err != nil {
			return nil, err
		}
		phases[i].Participants = names
	}

	return phases, nil
}

func (s *SQLiteStore) phaseParticipants(ctx context.Context, phaseID string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT name FROM phase_participants WHERE phase_id = ? ORDER BY position",
		phaseID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get phase participants: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("failed to scan phase participant: %w", err)
		}
		names = append(names, name)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate phase participants: %w", err)
	}

	return names, nil
}

// CreatePhase persists a new phase with its participant snapshot.
func (s *SQLiteStore) CreatePhase(ctx context.Context, phase *models.Phase) error {
	if phase.ID == "" {
		phase.ID = uuid.New().String()
	}
	if phase.CreatedAt == 0 {
		phase.CreatedAt = time.Now().Unix()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		"INSERT INTO phases (id, number, start_month, end_month, created_at) VALUES (?, ?, ?, ?, ?)",
		phase.ID, phase.Number, monthToDB(phase.StartMonth), monthToDB(phase.EndMonth), phase.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert phase: %w", err)
	}

	for i, name := range phase.Participants {
		_, err = tx.ExecContext(ctx,
			"INSERT INTO phase_participants (phase_id, name, position) VALUES (?, ?, ?)",
			phase.ID, name, i,
		)
		if err != nil {
			return fmt.Errorf("failed to insert phase participant: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}
