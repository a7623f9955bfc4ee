package models

import "time"

// EmployeeStatus tracks mission availability.
type EmployeeStatus string

const (
	EmployeeStatusAvailable EmployeeStatus = "AVAILABLE"
	EmployeeStatusOnMission EmployeeStatus = "ON_MISSION"
)

// Employee is a person who can be nominated as a mission participant.
// CurrentMissionID is non-nil exactly when Status is ON_MISSION.
type Employee struct {
	ID               string         `db:"id" json:"id"`
	InstitutionID    string         `db:"institution_id" json:"institution_id"`
	Matricule        string         `db:"matricule" json:"matricule"`
	FullName         string         `db:"full_name" json:"full_name"`
	Position         string         `db:"position" json:"position"`
	Email            string         `db:"email" json:"email,omitempty"`
	Status           EmployeeStatus `db:"status" json:"status"`
	CurrentMissionID *string        `db:"current_mission_id" json:"current_mission_id,omitempty"`
	CreatedAt        time.Time      `db:"created_at" json:"created_at"`
	UpdatedAt        time.Time      `db:"updated_at" json:"updated_at"`
}

// EmployeeFilter constrains employee listing queries.
type EmployeeFilter struct {
	InstitutionID string
	Status        *EmployeeStatus
	Search        string
	Page          int
	PageSize      int
}
