package models

import "time"

// ValidationActionKind is the decision recorded for one transition attempt.
type ValidationActionKind string

const (
	ValidationActionApprove ValidationActionKind = "APPROVE"
	ValidationActionReject  ValidationActionKind = "REJECT"
)

// ValidationAction is the immutable audit record of one workflow transition.
// Rows are append-only; the ordered sequence per mission forms its history.
type ValidationAction struct {
	ID              string               `db:"id" json:"id"`
	MissionID       string               `db:"mission_id" json:"mission_id"`
	ActorID         string               `db:"actor_id" json:"actor_id"`
	ActorRole       UserRole             `db:"actor_role" json:"actor_role"`
	FromStatus      MissionStatus        `db:"from_status" json:"from_status"`
	ToStatus        MissionStatus        `db:"to_status" json:"to_status"`
	Action          ValidationActionKind `db:"action" json:"action"`
	RejectionReason *string              `db:"rejection_reason" json:"rejection_reason,omitempty"`
	CreatedAt       time.Time            `db:"created_at" json:"created_at"`
}
