package dto

// CreateEmployeeRequest registers a new employee for an institution.
type CreateEmployeeRequest struct {
	Matricule string `json:"matricule" validate:"required"`
	FullName  string `json:"full_name" validate:"required"`
	Position  string `json:"position" validate:"required"`
	Email     string `json:"email,omitempty" validate:"omitempty,email"`
}

// EndMissionRequest administratively closes an employee's participation in
// their current mission (early return). The mission itself is untouched.
type EndMissionRequest struct {
	Reason string `json:"reason,omitempty"`
}
