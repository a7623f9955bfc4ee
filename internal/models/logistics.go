package models

import "time"

// Vehicle belongs to an institution's fleet.
type Vehicle struct {
	ID            string    `db:"id" json:"id"`
	InstitutionID string    `db:"institution_id" json:"institution_id"`
	Registration  string    `db:"registration" json:"registration"`
	Model         string    `db:"model" json:"model"`
	Active        bool      `db:"active" json:"active"`
	CreatedAt     time.Time `db:"created_at" json:"created_at"`
}

// Driver is an institution driver assignable to missions.
type Driver struct {
	ID            string    `db:"id" json:"id"`
	InstitutionID string    `db:"institution_id" json:"institution_id"`
	FullName      string    `db:"full_name" json:"full_name"`
	LicenseNo     string    `db:"license_no" json:"license_no"`
	Active        bool      `db:"active" json:"active"`
	CreatedAt     time.Time `db:"created_at" json:"created_at"`
}

// LogisticsAssignment binds a vehicle and/or driver and/or ticket to one
// mission. At most one assignment row exists per mission; replacing it is
// atomic with releasing the prior binding.
type LogisticsAssignment struct {
	ID         string    `db:"id" json:"id"`
	MissionID  string    `db:"mission_id" json:"mission_id"`
	VehicleID  *string   `db:"vehicle_id" json:"vehicle_id,omitempty"`
	DriverID   *string   `db:"driver_id" json:"driver_id,omitempty"`
	TicketRef  *string   `db:"ticket_ref" json:"ticket_ref,omitempty"`
	AssignedBy string    `db:"assigned_by" json:"assigned_by"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
	UpdatedAt  time.Time `db:"updated_at" json:"updated_at"`
}
