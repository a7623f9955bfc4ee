package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/lahah11/finale-anesp-sub001/internal/models"
)

// ValidationActionRepository reads the append-only approval trail. Writes
// happen inside MissionRepository.Advance so the record and the status
// change commit together.
type ValidationActionRepository struct {
	db *sqlx.DB
}

// NewValidationActionRepository constructs the repository.
func NewValidationActionRepository(db *sqlx.DB) *ValidationActionRepository {
	return &ValidationActionRepository{db: db}
}

// ListByMission returns the mission's full approval trail, oldest first.
func (r *ValidationActionRepository) ListByMission(ctx context.Context, missionID string) ([]models.ValidationAction, error) {
	const query = `SELECT id, mission_id, actor_id, actor_role, from_status, to_status, action, rejection_reason, created_at
	FROM validation_actions WHERE mission_id = $1 ORDER BY created_at ASC`
	var actions []models.ValidationAction
	if err := r.db.SelectContext(ctx, &actions, query, missionID); err != nil {
		return nil, fmt.Errorf("list validation actions: %w", err)
	}
	return actions, nil
}
