package dto

import "github.com/lahah11/finale-anesp-sub001/internal/models"

// CreateUserRequest registers an application user (SUPERADMIN only).
type CreateUserRequest struct {
	Email         string          `json:"email" validate:"required,email"`
	Password      string          `json:"password" validate:"required,min=8"`
	FullName      string          `json:"full_name" validate:"required"`
	Role          models.UserRole `json:"role" validate:"required"`
	InstitutionID string          `json:"institution_id" validate:"required"`
}

// CreateInstitutionRequest registers an owning scope.
type CreateInstitutionRequest struct {
	Name  string                 `json:"name" validate:"required"`
	Kind  models.InstitutionKind `json:"kind" validate:"required,oneof=AGENCY MINISTRY"`
	Email string                 `json:"email,omitempty" validate:"omitempty,email"`
}

// CreateVehicleRequest adds a vehicle to the institution fleet.
type CreateVehicleRequest struct {
	Registration string `json:"registration" validate:"required"`
	Model        string `json:"model,omitempty"`
}

// CreateDriverRequest adds a driver to the institution roster.
type CreateDriverRequest struct {
	FullName  string `json:"full_name" validate:"required"`
	LicenseNo string `json:"license_no" validate:"required"`
}
