package workflow

import (
	"github.com/lahah11/finale-anesp-sub001/internal/models"
	appErrors "github.com/lahah11/finale-anesp-sub001/pkg/errors"
)

// gateTable is the fixed role-to-step mapping. A transition absent from the
// table is denied for everyone; the gate fails closed.
var gateTable = map[Transition][]models.UserRole{
	{From: models.MissionStatusDraft, Action: ActionApprove}: {models.RoleHRAdmin, models.RoleSuperAdmin},

	{From: models.MissionStatusPendingTechnical, Action: ActionApprove}: {models.RoleTechnical},
	{From: models.MissionStatusPendingTechnical, Action: ActionReject}:  {models.RoleTechnical},

	{From: models.MissionStatusPendingLogistics, Action: ActionApprove}: {models.RoleLogistics},
	{From: models.MissionStatusPendingLogistics, Action: ActionReject}:  {models.RoleLogistics},

	{From: models.MissionStatusPendingFinance, Action: ActionApprove}: {models.RoleFinance},
	{From: models.MissionStatusPendingFinance, Action: ActionReject}:  {models.RoleFinance},

	// The final step accepts either signature authority; agencies route to
	// their DG, ministry bodies to the MSGG.
	{From: models.MissionStatusPendingDG, Action: ActionApprove}: {models.RoleDG, models.RoleMSGG},
	{From: models.MissionStatusPendingDG, Action: ActionReject}:  {models.RoleDG, models.RoleMSGG},

	{From: models.MissionStatusValidated, Action: ActionArchive}:  {models.RoleHRAdmin, models.RoleSuperAdmin},
	{From: models.MissionStatusValidated, Action: ActionComplete}: {models.RoleHRAdmin, models.RoleSuperAdmin},
	{From: models.MissionStatusCompleted, Action: ActionClose}:    {models.RoleHRAdmin, models.RoleSuperAdmin},
}

// Authorize confirms the actor's role and institution scope permit the
// requested transition. It is read-only and safe to call repeatedly before
// any mutating call. SUPERADMIN is exempt from institution scoping only;
// the role-to-step mapping still applies to it.
func Authorize(actor models.Actor, mission *models.Mission, t Transition) error {
	if mission == nil || actor.UserID == "" || actor.Role == "" {
		return appErrors.ErrForbidden
	}

	allowed, ok := gateTable[t]
	if !ok {
		return appErrors.ErrForbidden
	}

	roleOK := false
	for _, role := range allowed {
		if actor.Role == role {
			roleOK = true
			break
		}
	}
	if !roleOK {
		return appErrors.ErrForbidden
	}

	if actor.Role != models.RoleSuperAdmin {
		if actor.InstitutionID == "" || actor.InstitutionID != mission.InstitutionID {
			return appErrors.ErrForbidden
		}
	}

	return nil
}

// AuthorizeAssignment gates the vehicle/driver assignment operation, which
// is only meaningful while the mission sits at the logistics step.
func AuthorizeAssignment(actor models.Actor, mission *models.Mission) error {
	if mission == nil || actor.UserID == "" {
		return appErrors.ErrForbidden
	}
	if actor.Role != models.RoleLogistics && actor.Role != models.RoleSuperAdmin {
		return appErrors.ErrForbidden
	}
	if actor.Role != models.RoleSuperAdmin {
		if actor.InstitutionID == "" || actor.InstitutionID != mission.InstitutionID {
			return appErrors.ErrForbidden
		}
	}
	return nil
}
