package service

import (
	"context"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/lahah11/finale-anesp-sub001/internal/dto"
	"github.com/lahah11/finale-anesp-sub001/internal/models"
	appErrors "github.com/lahah11/finale-anesp-sub001/pkg/errors"
)

type fleetStore interface {
	CreateVehicle(ctx context.Context, vehicle *models.Vehicle) error
	CreateDriver(ctx context.Context, driver *models.Driver) error
	ListVehicles(ctx context.Context, institutionID string) ([]models.Vehicle, error)
	ListDrivers(ctx context.Context, institutionID string) ([]models.Driver, error)
}

// FleetService manages the vehicle and driver rosters that logistics
// validators assign to missions.
type FleetService struct {
	repo      fleetStore
	validator *validator.Validate
	logger    *zap.Logger
}

// NewFleetService constructs the service.
func NewFleetService(repo fleetStore, validate *validator.Validate, logger *zap.Logger) *FleetService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	return &FleetService{repo: repo, validator: validate, logger: logger}
}

func (s *FleetService) scope(actor models.Actor) (string, error) {
	switch actor.Role {
	case models.RoleLogistics, models.RoleHRAdmin, models.RoleSuperAdmin:
	default:
		return "", appErrors.ErrForbidden
	}
	if actor.InstitutionID == "" {
		return "", appErrors.Clone(appErrors.ErrValidation, "actor has no institution scope")
	}
	return actor.InstitutionID, nil
}

// CreateVehicle adds a vehicle to the actor's institution fleet.
func (s *FleetService) CreateVehicle(ctx context.Context, req dto.CreateVehicleRequest, actor models.Actor) (*models.Vehicle, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid vehicle payload")
	}
	institutionID, err := s.scope(actor)
	if err != nil {
		return nil, err
	}
	vehicle := &models.Vehicle{
		InstitutionID: institutionID,
		Registration:  req.Registration,
		Model:         req.Model,
	}
	if err := s.repo.CreateVehicle(ctx, vehicle); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create vehicle")
	}
	return vehicle, nil
}

// CreateDriver adds a driver to the actor's institution roster.
func (s *FleetService) CreateDriver(ctx context.Context, req dto.CreateDriverRequest, actor models.Actor) (*models.Driver, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid driver payload")
	}
	institutionID, err := s.scope(actor)
	if err != nil {
		return nil, err
	}
	driver := &models.Driver{
		InstitutionID: institutionID,
		FullName:      req.FullName,
		LicenseNo:     req.LicenseNo,
	}
	if err := s.repo.CreateDriver(ctx, driver); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create driver")
	}
	return driver, nil
}

// ListVehicles returns the actor's institution fleet.
func (s *FleetService) ListVehicles(ctx context.Context, actor models.Actor) ([]models.Vehicle, error) {
	institutionID, err := s.scope(actor)
	if err != nil {
		return nil, err
	}
	vehicles, err := s.repo.ListVehicles(ctx, institutionID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list vehicles")
	}
	return vehicles, nil
}

// ListDrivers returns the actor's institution drivers.
func (s *FleetService) ListDrivers(ctx context.Context, actor models.Actor) ([]models.Driver, error) {
	institutionID, err := s.scope(actor)
	if err != nil {
		return nil, err
	}
	drivers, err := s.repo.ListDrivers(ctx, institutionID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list drivers")
	}
	return drivers, nil
}
