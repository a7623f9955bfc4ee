package service

import (
	"context"
	"database/sql"
	"errors"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/lahah11/finale-anesp-sub001/internal/dto"
	"github.com/lahah11/finale-anesp-sub001/internal/models"
	appErrors "github.com/lahah11/finale-anesp-sub001/pkg/errors"
)

type adminUserStore interface {
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	Create(ctx context.Context, user *models.User) error
	List(ctx context.Context, filter models.UserFilter) ([]models.User, int, error)
	Deactivate(ctx context.Context, id string) error
	CreateAuditLog(ctx context.Context, log *models.AuditLog) error
}

type institutionStore interface {
	Create(ctx context.Context, institution *models.Institution) error
	GetByID(ctx context.Context, id string) (*models.Institution, error)
	List(ctx context.Context) ([]models.Institution, error)
}

// AdminService covers SUPERADMIN provisioning: institutions and user
// accounts with their workflow roles.
type AdminService struct {
	users        adminUserStore
	institutions institutionStore
	validator    *validator.Validate
	logger       *zap.Logger
}

// NewAdminService constructs the service.
func NewAdminService(users adminUserStore, institutions institutionStore, validate *validator.Validate, logger *zap.Logger) *AdminService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	return &AdminService{users: users, institutions: institutions, validator: validate, logger: logger}
}

var knownRoles = map[models.UserRole]bool{
	models.RoleSuperAdmin: true,
	models.RoleHRAdmin:    true,
	models.RoleTechnical:  true,
	models.RoleLogistics:  true,
	models.RoleFinance:    true,
	models.RoleDG:         true,
	models.RoleMSGG:       true,
}

// CreateUser provisions an account bound to an institution and role.
func (s *AdminService) CreateUser(ctx context.Context, req dto.CreateUserRequest, actor models.Actor) (*models.User, error) {
	if actor.Role != models.RoleSuperAdmin {
		return nil, appErrors.ErrForbidden
	}
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid user payload")
	}
	if !knownRoles[req.Role] {
		return nil, appErrors.Clone(appErrors.ErrValidation, "unknown role")
	}
	if _, err := s.institutions.GetByID(ctx, req.InstitutionID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "institution not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load institution")
	}
	if existing, err := s.users.FindByEmail(ctx, req.Email); err == nil && existing != nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, "email is already registered")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to hash password")
	}

	user := &models.User{
		Email:         req.Email,
		PasswordHash:  string(hash),
		FullName:      req.FullName,
		Role:          req.Role,
		InstitutionID: req.InstitutionID,
		Active:        true,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create user")
	}

	if err := s.users.CreateAuditLog(ctx, &models.AuditLog{
		UserID:     &actor.UserID,
		Action:     models.AuditActionUserCreate,
		Resource:   "user",
		ResourceID: &user.ID,
	}); err != nil {
		s.logger.Warn("failed to persist audit log", zap.Error(err))
	}
	return user, nil
}

// ListUsers returns user accounts. SUPERADMIN sees everything; others see
// only their own institution.
func (s *AdminService) ListUsers(ctx context.Context, filter models.UserFilter, actor models.Actor) ([]models.User, int, error) {
	if actor.Role != models.RoleSuperAdmin {
		if actor.InstitutionID == "" {
			return nil, 0, appErrors.ErrForbidden
		}
		filter.InstitutionID = actor.InstitutionID
	}
	users, total, err := s.users.List(ctx, filter)
	if err != nil {
		return nil, 0, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list users")
	}
	return users, total, nil
}

// DeactivateUser soft-deletes an account.
func (s *AdminService) DeactivateUser(ctx context.Context, id string, actor models.Actor) error {
	if actor.Role != models.RoleSuperAdmin {
		return appErrors.ErrForbidden
	}
	if err := s.users.Deactivate(ctx, id); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to deactivate user")
	}
	return nil
}

// CreateInstitution registers a new owning scope.
func (s *AdminService) CreateInstitution(ctx context.Context, req dto.CreateInstitutionRequest, actor models.Actor) (*models.Institution, error) {
	if actor.Role != models.RoleSuperAdmin {
		return nil, appErrors.ErrForbidden
	}
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid institution payload")
	}
	institution := &models.Institution{
		Name:  req.Name,
		Kind:  req.Kind,
		Email: req.Email,
	}
	if err := s.institutions.Create(ctx, institution); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create institution")
	}
	return institution, nil
}

// ListInstitutions returns all institutions.
func (s *AdminService) ListInstitutions(ctx context.Context, actor models.Actor) ([]models.Institution, error) {
	if actor.Role != models.RoleSuperAdmin {
		return nil, appErrors.ErrForbidden
	}
	institutions, err := s.institutions.List(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list institutions")
	}
	return institutions, nil
}
