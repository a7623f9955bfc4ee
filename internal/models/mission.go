package models

import (
	"time"

	"github.com/lib/pq"
)

// MissionStatus is the closed set of workflow states for a mission order.
type MissionStatus string

const (
	MissionStatusDraft            MissionStatus = "DRAFT"
	MissionStatusPendingTechnical MissionStatus = "PENDING_TECHNICAL"
	MissionStatusPendingLogistics MissionStatus = "PENDING_LOGISTICS"
	MissionStatusPendingFinance   MissionStatus = "PENDING_FINANCE"
	MissionStatusPendingDG        MissionStatus = "PENDING_DG"
	MissionStatusValidated        MissionStatus = "VALIDATED"
	MissionStatusRejected         MissionStatus = "REJECTED"
	MissionStatusArchived         MissionStatus = "ARCHIVED"
	MissionStatusCompleted        MissionStatus = "COMPLETED"
	MissionStatusClosed           MissionStatus = "CLOSED"
)

// IsTerminal reports whether no approval transition can leave the status.
func (s MissionStatus) IsTerminal() bool {
	switch s {
	case MissionStatusRejected, MissionStatusArchived, MissionStatusClosed:
		return true
	}
	return false
}

// IsActive reports whether the status holds employee exclusivity locks.
// Rejected and fully closed missions no longer tie up their participants.
func (s MissionStatus) IsActive() bool {
	switch s {
	case MissionStatusDraft, MissionStatusPendingTechnical, MissionStatusPendingLogistics,
		MissionStatusPendingFinance, MissionStatusPendingDG, MissionStatusValidated,
		MissionStatusCompleted:
		return true
	}
	return false
}

// Mission is a travel-authorization record.
type Mission struct {
	ID             string         `db:"id" json:"id"`
	Reference      string         `db:"reference" json:"reference"`
	InstitutionID  string         `db:"institution_id" json:"institution_id"`
	CreatedBy      string         `db:"created_by" json:"created_by"`
	Object         string         `db:"object" json:"object"`
	DepartureDate  time.Time      `db:"departure_date" json:"departure_date"`
	ReturnDate     time.Time      `db:"return_date" json:"return_date"`
	Status         MissionStatus  `db:"status" json:"status"`
	CurrentStep    int            `db:"current_step" json:"current_step"`
	EstimatedCosts *float64       `db:"estimated_costs" json:"estimated_costs,omitempty"`
	ParticipantIDs pq.StringArray `db:"participant_ids" json:"participant_ids"`
	CreatedAt      time.Time      `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time      `db:"updated_at" json:"updated_at"`
}

// MissionFilter constrains mission listing queries.
type MissionFilter struct {
	InstitutionID string
	Status        []MissionStatus
	CreatedBy     string
	Page          int
	PageSize      int
}

// MissionDocument marks a rendered order on disk. One row per mission keeps
// the validated trigger idempotent for the document worker.
type MissionDocument struct {
	MissionID   string    `db:"mission_id" json:"mission_id"`
	RelPath     string    `db:"rel_path" json:"rel_path"`
	GeneratedAt time.Time `db:"generated_at" json:"generated_at"`
}

// StatusCount aggregates missions by status for the dashboard.
type StatusCount struct {
	Status MissionStatus `db:"status" json:"status"`
	Count  int           `db:"count" json:"count"`
}
