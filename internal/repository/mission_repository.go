package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/lahah11/finale-anesp-sub001/internal/models"
	appErrors "github.com/lahah11/finale-anesp-sub001/pkg/errors"
)

// MissionRepository persists mission orders and owns the transactional
// boundary of every workflow mutation: status writes, the append-only
// validation trail, and the employee exclusivity flags always move together.
type MissionRepository struct {
	db *sqlx.DB
}

// NewMissionRepository constructs the repository.
func NewMissionRepository(db *sqlx.DB) *MissionRepository {
	return &MissionRepository{db: db}
}

// Create inserts a new mission and claims its participants in one
// transaction. The claim is all-or-nothing: when any participant is already
// on a mission the whole creation fails with EMPLOYEE_UNAVAILABLE.
func (r *MissionRepository) Create(ctx context.Context, mission *models.Mission) (err error) {
	if mission.ID == "" {
		mission.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if mission.CreatedAt.IsZero() {
		mission.CreatedAt = now
	}
	mission.UpdatedAt = now

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin mission create: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	const insertQuery = `INSERT INTO missions
	(id, reference, institution_id, created_by, object, departure_date, return_date, status, current_step, estimated_costs, participant_ids, created_at, updated_at)
	VALUES (:id, :reference, :institution_id, :created_by, :object, :departure_date, :return_date, :status, :current_step, :estimated_costs, :participant_ids, :created_at, :updated_at)`
	if _, err = tx.NamedExecContext(ctx, insertQuery, mission); err != nil {
		return fmt.Errorf("insert mission: %w", err)
	}

	const claimQuery = `UPDATE employees
	SET status = $1, current_mission_id = $2, updated_at = $3
	WHERE id = ANY($4) AND status = $5`
	result, err := tx.ExecContext(ctx, claimQuery,
		models.EmployeeStatusOnMission, mission.ID, now,
		pq.Array([]string(mission.ParticipantIDs)), models.EmployeeStatusAvailable)
	if err != nil {
		return fmt.Errorf("claim mission participants: %w", err)
	}
	claimed, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("check claimed participants: %w", err)
	}
	if claimed != int64(len(mission.ParticipantIDs)) {
		err = appErrors.ErrEmployeeUnavailable
		return err
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit mission create: %w", err)
	}
	return nil
}

// GetByID fetches a mission by identifier.
func (r *MissionRepository) GetByID(ctx context.Context, id string) (*models.Mission, error) {
	const query = `SELECT id, reference, institution_id, created_by, object, departure_date, return_date,
       status, current_step, estimated_costs, participant_ids, created_at, updated_at
	FROM missions WHERE id = $1`
	var mission models.Mission
	if err := r.db.GetContext(ctx, &mission, query, id); err != nil {
		return nil, err
	}
	return &mission, nil
}

// List returns missions matching the filter, latest first.
func (r *MissionRepository) List(ctx context.Context, filter models.MissionFilter) ([]models.Mission, error) {
	builder := strings.Builder{}
	args := make([]interface{}, 0, 4)
	builder.WriteString(`SELECT id, reference, institution_id, created_by, object, departure_date, return_date,
       status, current_step, estimated_costs, participant_ids, created_at, updated_at FROM missions`)

	conditions := make([]string, 0, 3)
	if filter.InstitutionID != "" {
		args = append(args, filter.InstitutionID)
		conditions = append(conditions, fmt.Sprintf("institution_id = $%d", len(args)))
	}
	if len(filter.Status) > 0 {
		placeholders := make([]string, len(filter.Status))
		for i, status := range filter.Status {
			args = append(args, status)
			placeholders[i] = fmt.Sprintf("$%d", len(args))
		}
		conditions = append(conditions, fmt.Sprintf("status IN (%s)", strings.Join(placeholders, ",")))
	}
	if filter.CreatedBy != "" {
		args = append(args, filter.CreatedBy)
		conditions = append(conditions, fmt.Sprintf("created_by = $%d", len(args)))
	}
	if len(conditions) > 0 {
		builder.WriteString(" WHERE ")
		builder.WriteString(strings.Join(conditions, " AND "))
	}
	builder.WriteString(" ORDER BY created_at DESC")

	pageSize := filter.PageSize
	if pageSize <= 0 || pageSize > 200 {
		pageSize = 50
	}
	page := filter.Page
	if page < 1 {
		page = 1
	}
	builder.WriteString(fmt.Sprintf(" LIMIT %d OFFSET %d", pageSize, (page-1)*pageSize))

	var missions []models.Mission
	if err := r.db.SelectContext(ctx, &missions, builder.String(), args...); err != nil {
		return nil, fmt.Errorf("list missions: %w", err)
	}
	return missions, nil
}

// AdvanceParams groups everything one workflow transition persists.
type AdvanceParams struct {
	MissionID        string
	FromStatus       models.MissionStatus
	ToStatus         models.MissionStatus
	ToStep           int
	Action           models.ValidationAction
	ReleaseEmployees bool
	EstimatedCosts   *float64
}

// Advance applies one transition atomically: the status write is guarded by
// the expected current status, the validation record is appended, and the
// participants are released when the destination drops the exclusivity lock.
// A guard miss surfaces as STALE_TRANSITION; concurrent losers never observe
// partial state.
func (r *MissionRepository) Advance(ctx context.Context, params AdvanceParams) (err error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin mission advance: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	now := time.Now().UTC()

	setParts := []string{"status = $1", "current_step = $2", "updated_at = $3"}
	args := []interface{}{params.ToStatus, params.ToStep, now}
	if params.EstimatedCosts != nil {
		args = append(args, *params.EstimatedCosts)
		setParts = append(setParts, fmt.Sprintf("estimated_costs = $%d", len(args)))
	}
	args = append(args, params.MissionID, params.FromStatus)
	query := fmt.Sprintf("UPDATE missions SET %s WHERE id = $%d AND status = $%d",
		strings.Join(setParts, ", "), len(args)-1, len(args))

	result, err := tx.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update mission status: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("check mission status update: %w", err)
	}
	if rows == 0 {
		err = appErrors.ErrStaleTransition
		return err
	}

	action := params.Action
	if action.ID == "" {
		action.ID = uuid.NewString()
	}
	if action.CreatedAt.IsZero() {
		action.CreatedAt = now
	}
	const appendQuery = `INSERT INTO validation_actions
	(id, mission_id, actor_id, actor_role, from_status, to_status, action, rejection_reason, created_at)
	VALUES (:id, :mission_id, :actor_id, :actor_role, :from_status, :to_status, :action, :rejection_reason, :created_at)`
	if _, err = sqlx.NamedExecContext(ctx, tx, appendQuery, action); err != nil {
		return fmt.Errorf("append validation action: %w", err)
	}

	if params.ReleaseEmployees {
		const releaseQuery = `UPDATE employees
		SET status = $1, current_mission_id = NULL, updated_at = $2
		WHERE current_mission_id = $3`
		if _, err = tx.ExecContext(ctx, releaseQuery, models.EmployeeStatusAvailable, now, params.MissionID); err != nil {
			return fmt.Errorf("release mission participants: %w", err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit mission advance: %w", err)
	}
	return nil
}

// CountByStatus aggregates an institution's missions for the dashboard.
func (r *MissionRepository) CountByStatus(ctx context.Context, institutionID string) ([]models.StatusCount, error) {
	const query = `SELECT status, COUNT(*) AS count FROM missions WHERE institution_id = $1 GROUP BY status`
	var counts []models.StatusCount
	if err := r.db.SelectContext(ctx, &counts, query, institutionID); err != nil {
		return nil, fmt.Errorf("count missions by status: %w", err)
	}
	return counts, nil
}

// GetDocument returns the rendered-order marker for a mission, if any.
func (r *MissionRepository) GetDocument(ctx context.Context, missionID string) (*models.MissionDocument, error) {
	const query = `SELECT mission_id, rel_path, generated_at FROM mission_documents WHERE mission_id = $1`
	var doc models.MissionDocument
	if err := r.db.GetContext(ctx, &doc, query, missionID); err != nil {
		return nil, err
	}
	return &doc, nil
}

// SaveDocument records that the order PDF exists on disk. Upserting keeps a
// redundant trigger fire harmless.
func (r *MissionRepository) SaveDocument(ctx context.Context, doc *models.MissionDocument) error {
	if doc.GeneratedAt.IsZero() {
		doc.GeneratedAt = time.Now().UTC()
	}
	const query = `INSERT INTO mission_documents (mission_id, rel_path, generated_at)
	VALUES ($1, $2, $3)
	ON CONFLICT (mission_id) DO UPDATE SET rel_path = EXCLUDED.rel_path, generated_at = EXCLUDED.generated_at`
	if _, err := r.db.ExecContext(ctx, query, doc.MissionID, doc.RelPath, doc.GeneratedAt); err != nil {
		return fmt.Errorf("save mission document: %w", err)
	}
	return nil
}
