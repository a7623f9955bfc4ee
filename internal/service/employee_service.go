package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/lahah11/finale-anesp-sub001/internal/dto"
	"github.com/lahah11/finale-anesp-sub001/internal/models"
	appErrors "github.com/lahah11/finale-anesp-sub001/pkg/errors"
)

type employeeStore interface {
	Create(ctx context.Context, employee *models.Employee) error
	GetByID(ctx context.Context, id string) (*models.Employee, error)
	List(ctx context.Context, filter models.EmployeeFilter) ([]models.Employee, error)
	ReleaseFromMission(ctx context.Context, employeeID, missionID string) error
}

// EmployeeService manages the employee roster and early mission releases.
type EmployeeService struct {
	repo      employeeStore
	audit     auditLogger
	validator *validator.Validate
	logger    *zap.Logger
}

// NewEmployeeService constructs the service.
func NewEmployeeService(repo employeeStore, audit auditLogger, validate *validator.Validate, logger *zap.Logger) *EmployeeService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	return &EmployeeService{repo: repo, audit: audit, validator: validate, logger: logger}
}

// Create registers a new employee in the actor's institution.
func (s *EmployeeService) Create(ctx context.Context, req dto.CreateEmployeeRequest, actor models.Actor) (*models.Employee, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid employee payload")
	}
	if actor.Role != models.RoleHRAdmin && actor.Role != models.RoleSuperAdmin {
		return nil, appErrors.ErrForbidden
	}
	if actor.InstitutionID == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "actor has no institution scope")
	}

	employee := &models.Employee{
		InstitutionID: actor.InstitutionID,
		Matricule:     req.Matricule,
		FullName:      req.FullName,
		Position:      req.Position,
		Email:         req.Email,
		Status:        models.EmployeeStatusAvailable,
	}
	if err := s.repo.Create(ctx, employee); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create employee")
	}
	return employee, nil
}

// Get returns one employee enforcing institution scope.
func (s *EmployeeService) Get(ctx context.Context, id string, actor models.Actor) (*models.Employee, error) {
	employee, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.ErrNotFound
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load employee")
	}
	if actor.Role != models.RoleSuperAdmin && actor.InstitutionID != employee.InstitutionID {
		return nil, appErrors.ErrForbidden
	}
	return employee, nil
}

// List returns employees visible to the actor.
func (s *EmployeeService) List(ctx context.Context, filter models.EmployeeFilter, actor models.Actor) ([]models.Employee, error) {
	if actor.Role != models.RoleSuperAdmin {
		if actor.InstitutionID == "" {
			return nil, appErrors.ErrForbidden
		}
		filter.InstitutionID = actor.InstitutionID
	}
	employees, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list employees")
	}
	return employees, nil
}

// EndMission releases one employee from their current mission early. The
// mission itself keeps its status; only this participant's exclusivity flag
// is dropped. Because participants are claimed at mission creation, the
// mission may still be in DRAFT here: releasing from a draft is allowed and
// simply removes the employee before the order is ever submitted.
func (s *EmployeeService) EndMission(ctx context.Context, id string, req dto.EndMissionRequest, actor models.Actor) (*models.Employee, error) {
	if actor.Role != models.RoleHRAdmin && actor.Role != models.RoleSuperAdmin {
		return nil, appErrors.ErrForbidden
	}

	employee, err := s.Get(ctx, id, actor)
	if err != nil {
		return nil, err
	}
	if employee.Status != models.EmployeeStatusOnMission || employee.CurrentMissionID == nil {
		return nil, appErrors.Clone(appErrors.ErrInvalidAction, "employee is not on a mission")
	}

	missionID := *employee.CurrentMissionID
	if err := s.repo.ReleaseFromMission(ctx, id, missionID); err != nil {
		if appErrors.Is(err, appErrors.ErrStaleTransition) {
			return nil, err
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to release employee")
	}

	if s.audit != nil {
		log := &models.AuditLog{
			UserID:     &actor.UserID,
			Action:     models.AuditActionEmployeeRelease,
			Resource:   "employee",
			ResourceID: &id,
			NewValues:  []byte(fmt.Sprintf(`{"mission_id":%q,"reason":%q}`, missionID, req.Reason)),
			IPAddress:  "system",
			UserAgent:  "employee-service",
		}
		if err := s.audit.CreateAuditLog(ctx, log); err != nil {
			s.logger.Warn("failed to persist audit log", zap.Error(err))
		}
	}

	employee.Status = models.EmployeeStatusAvailable
	employee.CurrentMissionID = nil
	return employee, nil
}
