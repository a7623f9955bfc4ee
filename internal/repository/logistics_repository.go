package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/lahah11/finale-anesp-sub001/internal/models"
	appErrors "github.com/lahah11/finale-anesp-sub001/pkg/errors"
)

// LogisticsRepository persists the fleet rosters and mission assignments.
type LogisticsRepository struct {
	db *sqlx.DB
}

// NewLogisticsRepository constructs the repository.
func NewLogisticsRepository(db *sqlx.DB) *LogisticsRepository {
	return &LogisticsRepository{db: db}
}

// CreateVehicle adds a vehicle to the fleet.
func (r *LogisticsRepository) CreateVehicle(ctx context.Context, vehicle *models.Vehicle) error {
	if vehicle.ID == "" {
		vehicle.ID = uuid.NewString()
	}
	if vehicle.CreatedAt.IsZero() {
		vehicle.CreatedAt = time.Now().UTC()
	}
	vehicle.Active = true
	const query = `INSERT INTO vehicles (id, institution_id, registration, model, active, created_at)
	VALUES (:id, :institution_id, :registration, :model, :active, :created_at)`
	if _, err := r.db.NamedExecContext(ctx, query, vehicle); err != nil {
		return fmt.Errorf("create vehicle: %w", err)
	}
	return nil
}

// CreateDriver adds a driver to the roster.
func (r *LogisticsRepository) CreateDriver(ctx context.Context, driver *models.Driver) error {
	if driver.ID == "" {
		driver.ID = uuid.NewString()
	}
	if driver.CreatedAt.IsZero() {
		driver.CreatedAt = time.Now().UTC()
	}
	driver.Active = true
	const query = `INSERT INTO drivers (id, institution_id, full_name, license_no, active, created_at)
	VALUES (:id, :institution_id, :full_name, :license_no, :active, :created_at)`
	if _, err := r.db.NamedExecContext(ctx, query, driver); err != nil {
		return fmt.Errorf("create driver: %w", err)
	}
	return nil
}

// ListVehicles returns the active fleet of an institution.
func (r *LogisticsRepository) ListVehicles(ctx context.Context, institutionID string) ([]models.Vehicle, error) {
	const query = `SELECT id, institution_id, registration, model, active, created_at
	FROM vehicles WHERE institution_id = $1 AND active ORDER BY registration ASC`
	var vehicles []models.Vehicle
	if err := r.db.SelectContext(ctx, &vehicles, query, institutionID); err != nil {
		return nil, fmt.Errorf("list vehicles: %w", err)
	}
	return vehicles, nil
}

// ListDrivers returns the active drivers of an institution.
func (r *LogisticsRepository) ListDrivers(ctx context.Context, institutionID string) ([]models.Driver, error) {
	const query = `SELECT id, institution_id, full_name, license_no, active, created_at
	FROM drivers WHERE institution_id = $1 AND active ORDER BY full_name ASC`
	var drivers []models.Driver
	if err := r.db.SelectContext(ctx, &drivers, query, institutionID); err != nil {
		return nil, fmt.Errorf("list drivers: %w", err)
	}
	return drivers, nil
}

// GetVehicle fetches one vehicle.
func (r *LogisticsRepository) GetVehicle(ctx context.Context, id string) (*models.Vehicle, error) {
	const query = `SELECT id, institution_id, registration, model, active, created_at FROM vehicles WHERE id = $1`
	var vehicle models.Vehicle
	if err := r.db.GetContext(ctx, &vehicle, query, id); err != nil {
		return nil, err
	}
	return &vehicle, nil
}

// GetDriver fetches one driver.
func (r *LogisticsRepository) GetDriver(ctx context.Context, id string) (*models.Driver, error) {
	const query = `SELECT id, institution_id, full_name, license_no, active, created_at FROM drivers WHERE id = $1`
	var driver models.Driver
	if err := r.db.GetContext(ctx, &driver, query, id); err != nil {
		return nil, err
	}
	return &driver, nil
}

// GetByMission returns the mission's current assignment, nil when none.
func (r *LogisticsRepository) GetByMission(ctx context.Context, missionID string) (*models.LogisticsAssignment, error) {
	const query = `SELECT id, mission_id, vehicle_id, driver_id, ticket_ref, assigned_by, created_at, updated_at
	FROM logistics_assignments WHERE mission_id = $1`
	var assignment models.LogisticsAssignment
	if err := r.db.GetContext(ctx, &assignment, query, missionID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get logistics assignment: %w", err)
	}
	return &assignment, nil
}

// AssignParams describes one assignment (or re-assignment) request.
type AssignParams struct {
	MissionID     string
	VehicleID     *string
	DriverID      *string
	TicketRef     *string
	AssignedBy    string
	DepartureDate time.Time
	ReturnDate    time.Time
}

// Assign binds the vehicle/driver to the mission, replacing any prior
// binding atomically. A vehicle or driver already committed to a different
// mission whose travel interval overlaps (bounds inclusive: same-day
// handoffs are conflicts) aborts the transaction with RESOURCE_CONFLICT.
// Only assignments of missions still holding resources count: rejected,
// archived, and closed missions do not block.
func (r *LogisticsRepository) Assign(ctx context.Context, params AssignParams) (assignment *models.LogisticsAssignment, err error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin logistics assign: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	// Postgres rejects FOR UPDATE combined with aggregates, so lock the
	// conflicting rows themselves and test for emptiness.
	const conflictQuery = `SELECT la.id FROM logistics_assignments la
	JOIN missions m ON m.id = la.mission_id
	WHERE la.mission_id <> $1
	  AND m.status NOT IN ($2, $3, $4)
	  AND m.departure_date <= $5 AND m.return_date >= $6
	  AND (($7::text IS NOT NULL AND la.vehicle_id = $7) OR ($8::text IS NOT NULL AND la.driver_id = $8))
	FOR UPDATE OF la`
	var conflicting []string
	if err = tx.SelectContext(ctx, &conflicting, conflictQuery,
		params.MissionID,
		models.MissionStatusRejected, models.MissionStatusArchived, models.MissionStatusClosed,
		params.ReturnDate, params.DepartureDate,
		params.VehicleID, params.DriverID,
	); err != nil {
		return nil, fmt.Errorf("check resource conflicts: %w", err)
	}
	if len(conflicting) > 0 {
		err = appErrors.ErrResourceConflict
		return nil, err
	}

	if _, err = tx.ExecContext(ctx, `DELETE FROM logistics_assignments WHERE mission_id = $1`, params.MissionID); err != nil {
		return nil, fmt.Errorf("release prior assignment: %w", err)
	}

	now := time.Now().UTC()
	assignment = &models.LogisticsAssignment{
		ID:         uuid.NewString(),
		MissionID:  params.MissionID,
		VehicleID:  params.VehicleID,
		DriverID:   params.DriverID,
		TicketRef:  params.TicketRef,
		AssignedBy: params.AssignedBy,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if assignment.VehicleID != nil || assignment.DriverID != nil || assignment.TicketRef != nil {
		const insertQuery = `INSERT INTO logistics_assignments
		(id, mission_id, vehicle_id, driver_id, ticket_ref, assigned_by, created_at, updated_at)
		VALUES (:id, :mission_id, :vehicle_id, :driver_id, :ticket_ref, :assigned_by, :created_at, :updated_at)`
		if _, err = sqlx.NamedExecContext(ctx, tx, insertQuery, assignment); err != nil {
			return nil, fmt.Errorf("insert logistics assignment: %w", err)
		}
	} else {
		assignment = nil
	}

	if err = tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit logistics assign: %w", err)
	}
	return assignment, nil
}
