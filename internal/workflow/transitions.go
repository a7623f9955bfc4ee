// Package workflow contains the pure rules of the mission approval chain:
// the transition table and the authorization gate. No I/O happens here; the
// service layer owns persistence and side effects.
package workflow

import (
	"github.com/lahah11/finale-anesp-sub001/internal/models"
	appErrors "github.com/lahah11/finale-anesp-sub001/pkg/errors"
)

// Action is a requested operation against a mission's current status.
type Action string

const (
	ActionApprove  Action = "APPROVE"
	ActionReject   Action = "REJECT"
	ActionArchive  Action = "ARCHIVE"
	ActionComplete Action = "COMPLETE"
	ActionClose    Action = "CLOSE"
)

// approvalOrder is the single forward path of the chain. Each status maps to
// exactly one successor; anything else is stale or invalid.
var approvalOrder = map[models.MissionStatus]models.MissionStatus{
	models.MissionStatusDraft:            models.MissionStatusPendingTechnical,
	models.MissionStatusPendingTechnical: models.MissionStatusPendingLogistics,
	models.MissionStatusPendingLogistics: models.MissionStatusPendingFinance,
	models.MissionStatusPendingFinance:   models.MissionStatusPendingDG,
	models.MissionStatusPendingDG:        models.MissionStatusValidated,
}

// stepForStatus mirrors status as the 1-6 step counter kept on the mission.
var stepForStatus = map[models.MissionStatus]int{
	models.MissionStatusDraft:            1,
	models.MissionStatusPendingTechnical: 2,
	models.MissionStatusPendingLogistics: 3,
	models.MissionStatusPendingFinance:   4,
	models.MissionStatusPendingDG:        5,
	models.MissionStatusValidated:        6,
	// Housekeeping states keep the final step.
	models.MissionStatusRejected:  0,
	models.MissionStatusArchived:  6,
	models.MissionStatusCompleted: 6,
	models.MissionStatusClosed:    6,
}

// housekeeping lists the post-validation lifecycle moves.
var housekeeping = map[models.MissionStatus]map[Action]models.MissionStatus{
	models.MissionStatusValidated: {
		ActionArchive:  models.MissionStatusArchived,
		ActionComplete: models.MissionStatusCompleted,
	},
	models.MissionStatusCompleted: {
		ActionClose: models.MissionStatusClosed,
	},
}

// StepFor returns the step counter for a status. Rejected missions report 0.
func StepFor(status models.MissionStatus) int {
	return stepForStatus[status]
}

// NextPending returns the successor of an approval step, when one exists.
func NextPending(status models.MissionStatus) (models.MissionStatus, bool) {
	next, ok := approvalOrder[status]
	return next, ok
}

// isPending reports whether a status accepts approve/reject decisions.
func isPending(status models.MissionStatus) bool {
	switch status {
	case models.MissionStatusPendingTechnical, models.MissionStatusPendingLogistics,
		models.MissionStatusPendingFinance, models.MissionStatusPendingDG:
		return true
	}
	return false
}

// Resolve maps (current status, action) to the destination status. It never
// mutates anything; callers decide whether the mission is actually in the
// status they observed (the stale check happens at persist time too).
func Resolve(current models.MissionStatus, action Action) (models.MissionStatus, error) {
	switch action {
	case ActionApprove:
		next, ok := approvalOrder[current]
		if !ok {
			return "", appErrors.ErrInvalidAction
		}
		return next, nil
	case ActionReject:
		if !isPending(current) {
			return "", appErrors.ErrInvalidAction
		}
		return models.MissionStatusRejected, nil
	case ActionArchive, ActionComplete, ActionClose:
		targets, ok := housekeeping[current]
		if !ok {
			return "", appErrors.ErrInvalidAction
		}
		to, ok := targets[action]
		if !ok {
			return "", appErrors.ErrInvalidAction
		}
		return to, nil
	default:
		return "", appErrors.ErrInvalidAction
	}
}

// Transition identifies one edge of the workflow for authorization purposes.
type Transition struct {
	From   models.MissionStatus
	Action Action
}

// ReleasesEmployees reports whether entering the status frees the
// exclusivity locks held by the mission's participants.
func ReleasesEmployees(to models.MissionStatus) bool {
	switch to {
	case models.MissionStatusRejected, models.MissionStatusArchived, models.MissionStatusClosed:
		return true
	}
	return false
}

// EmitsDocumentTrigger reports whether entering the status notifies the
// document rendering collaborator.
func EmitsDocumentTrigger(to models.MissionStatus) bool {
	return to == models.MissionStatusValidated
}
