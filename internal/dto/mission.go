package dto

import "github.com/lahah11/finale-anesp-sub001/internal/models"

// CreateMissionRequest starts a new mission order in DRAFT.
type CreateMissionRequest struct {
	Object         string   `json:"object" validate:"required"`
	DepartureDate  string   `json:"departure_date" validate:"required"` // YYYY-MM-DD
	ReturnDate     string   `json:"return_date" validate:"required"`    // YYYY-MM-DD
	ParticipantIDs []string `json:"participant_ids" validate:"required,min=1"`
	EstimatedCosts *float64 `json:"estimated_costs,omitempty" validate:"omitempty,gte=0"`
}

// ValidationRequest carries an approve/reject decision for the current step.
type ValidationRequest struct {
	Action models.ValidationActionKind `json:"action" validate:"required,oneof=APPROVE REJECT"`
	Reason string                      `json:"reason,omitempty"`
	// EstimatedCosts may be set by the finance validator while approving.
	EstimatedCosts *float64 `json:"estimated_costs,omitempty" validate:"omitempty,gte=0"`
}

// AssignLogisticsRequest binds a vehicle and/or driver and/or ticket to a
// mission sitting at the logistics step. All fields are optional; an empty
// request clears the current assignment.
type AssignLogisticsRequest struct {
	VehicleID *string `json:"vehicle_id,omitempty"`
	DriverID  *string `json:"driver_id,omitempty"`
	TicketRef *string `json:"ticket_ref,omitempty"`
}

// MissionQuery filters the mission listing.
type MissionQuery struct {
	Status   []models.MissionStatus
	Page     int
	PageSize int
}

// MissionHistoryEntry is one row of the audit trail view.
type MissionHistoryEntry struct {
	ActorID         string                      `json:"actor_id"`
	ActorRole       models.UserRole             `json:"actor_role"`
	FromStatus      models.MissionStatus        `json:"from_status"`
	ToStatus        models.MissionStatus        `json:"to_status"`
	Action          models.ValidationActionKind `json:"action"`
	RejectionReason *string                     `json:"rejection_reason,omitempty"`
	Timestamp       string                      `json:"timestamp"`
}

// DashboardSummary aggregates missions by status for one institution.
type DashboardSummary struct {
	InstitutionID string                       `json:"institution_id"`
	Total         int                          `json:"total"`
	ByStatus      map[models.MissionStatus]int `json:"by_status"`
}
