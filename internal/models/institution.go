package models

import "time"

// InstitutionKind distinguishes which final validator signs mission orders:
// agencies report to their DG, ministry bodies to the MSGG.
type InstitutionKind string

const (
	InstitutionAgency   InstitutionKind = "AGENCY"
	InstitutionMinistry InstitutionKind = "MINISTRY"
)

// Institution is an owning scope for users, employees, and missions.
type Institution struct {
	ID        string          `db:"id" json:"id"`
	Name      string          `db:"name" json:"name"`
	Kind      InstitutionKind `db:"kind" json:"kind"`
	Email     string          `db:"email" json:"email,omitempty"`
	CreatedAt time.Time       `db:"created_at" json:"created_at"`
}
