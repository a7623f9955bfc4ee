package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/lahah11/finale-anesp-sub001/internal/models"
	appErrors "github.com/lahah11/finale-anesp-sub001/pkg/errors"
)

// EmployeeRepository persists employees and their exclusivity flags.
// Claiming and bulk release live on MissionRepository because they move in
// the same transaction as the mission row; this repository covers reads,
// roster management, and the single-employee early release.
type EmployeeRepository struct {
	db *sqlx.DB
}

// NewEmployeeRepository constructs the repository.
func NewEmployeeRepository(db *sqlx.DB) *EmployeeRepository {
	return &EmployeeRepository{db: db}
}

// Create inserts an employee in the AVAILABLE state.
func (r *EmployeeRepository) Create(ctx context.Context, employee *models.Employee) error {
	if employee.ID == "" {
		employee.ID = uuid.NewString()
	}
	if employee.Status == "" {
		employee.Status = models.EmployeeStatusAvailable
	}
	now := time.Now().UTC()
	if employee.CreatedAt.IsZero() {
		employee.CreatedAt = now
	}
	employee.UpdatedAt = now

	const query = `INSERT INTO employees
	(id, institution_id, matricule, full_name, position, email, status, current_mission_id, created_at, updated_at)
	VALUES (:id, :institution_id, :matricule, :full_name, :position, :email, :status, :current_mission_id, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, employee); err != nil {
		return fmt.Errorf("create employee: %w", err)
	}
	return nil
}

// GetByID fetches an employee by identifier.
func (r *EmployeeRepository) GetByID(ctx context.Context, id string) (*models.Employee, error) {
	const query = `SELECT id, institution_id, matricule, full_name, position, email, status, current_mission_id, created_at, updated_at
	FROM employees WHERE id = $1`
	var employee models.Employee
	if err := r.db.GetContext(ctx, &employee, query, id); err != nil {
		return nil, err
	}
	return &employee, nil
}

// List returns employees matching the filter, ordered by matricule.
func (r *EmployeeRepository) List(ctx context.Context, filter models.EmployeeFilter) ([]models.Employee, error) {
	builder := strings.Builder{}
	args := make([]interface{}, 0, 4)
	builder.WriteString(`SELECT id, institution_id, matricule, full_name, position, email, status, current_mission_id, created_at, updated_at FROM employees`)

	conditions := make([]string, 0, 3)
	if filter.InstitutionID != "" {
		args = append(args, filter.InstitutionID)
		conditions = append(conditions, fmt.Sprintf("institution_id = $%d", len(args)))
	}
	if filter.Status != nil {
		args = append(args, *filter.Status)
		conditions = append(conditions, fmt.Sprintf("status = $%d", len(args)))
	}
	if filter.Search != "" {
		args = append(args, "%"+filter.Search+"%")
		conditions = append(conditions, fmt.Sprintf("(full_name ILIKE $%d OR matricule ILIKE $%d)", len(args), len(args)))
	}
	if len(conditions) > 0 {
		builder.WriteString(" WHERE ")
		builder.WriteString(strings.Join(conditions, " AND "))
	}
	builder.WriteString(" ORDER BY matricule ASC")

	pageSize := filter.PageSize
	if pageSize <= 0 || pageSize > 200 {
		pageSize = 50
	}
	page := filter.Page
	if page < 1 {
		page = 1
	}
	builder.WriteString(fmt.Sprintf(" LIMIT %d OFFSET %d", pageSize, (page-1)*pageSize))

	var employees []models.Employee
	if err := r.db.SelectContext(ctx, &employees, builder.String(), args...); err != nil {
		return nil, fmt.Errorf("list employees: %w", err)
	}
	return employees, nil
}

// ListByIDs loads the given employees (participant details for documents).
func (r *EmployeeRepository) ListByIDs(ctx context.Context, ids []string) ([]models.Employee, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	query, args, err := sqlx.In(`SELECT id, institution_id, matricule, full_name, position, email, status, current_mission_id, created_at, updated_at
	FROM employees WHERE id IN (?) ORDER BY matricule ASC`, ids)
	if err != nil {
		return nil, fmt.Errorf("build employee ids query: %w", err)
	}
	query = r.db.Rebind(query)
	var employees []models.Employee
	if err := r.db.SelectContext(ctx, &employees, query, args...); err != nil {
		return nil, fmt.Errorf("list employees by ids: %w", err)
	}
	return employees, nil
}

// ReleaseFromMission frees one employee from their current mission (early
// return). The guard on current_mission_id keeps the release idempotent and
// race-safe: a concurrent release or mission change loses cleanly.
func (r *EmployeeRepository) ReleaseFromMission(ctx context.Context, employeeID, missionID string) error {
	const query = `UPDATE employees
	SET status = $1, current_mission_id = NULL, updated_at = $2
	WHERE id = $3 AND current_mission_id = $4`
	result, err := r.db.ExecContext(ctx, query, models.EmployeeStatusAvailable, time.Now().UTC(), employeeID, missionID)
	if err != nil {
		return fmt.Errorf("release employee: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("check employee release: %w", err)
	}
	if rows == 0 {
		return appErrors.ErrStaleTransition
	}
	return nil
}
