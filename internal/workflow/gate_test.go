package workflow

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/lahah11/finale-anesp-sub001/internal/models"
	appErrors "github.com/lahah11/finale-anesp-sub001/pkg/errors"
)

func gateMission() *models.Mission {
	return &models.Mission{
		ID:            "mission-1",
		InstitutionID: "inst-1",
		Status:        models.MissionStatusPendingTechnical,
	}
}

func TestGateRoleStepMapping(t *testing.T) {
	mission := gateMission()

	cases := []struct {
		name  string
		actor models.Actor
		t     Transition
		allow bool
	}{
		{
			name:  "technical validator approves technical step",
			actor: models.Actor{UserID: "u1", Role: models.RoleTechnical, InstitutionID: "inst-1"},
			t:     Transition{From: models.MissionStatusPendingTechnical, Action: ActionApprove},
			allow: true,
		},
		{
			name:  "finance cannot approve technical step",
			actor: models.Actor{UserID: "u2", Role: models.RoleFinance, InstitutionID: "inst-1"},
			t:     Transition{From: models.MissionStatusPendingTechnical, Action: ActionApprove},
			allow: false,
		},
		{
			name:  "hr submits draft",
			actor: models.Actor{UserID: "u3", Role: models.RoleHRAdmin, InstitutionID: "inst-1"},
			t:     Transition{From: models.MissionStatusDraft, Action: ActionApprove},
			allow: true,
		},
		{
			name:  "dg signs final step",
			actor: models.Actor{UserID: "u4", Role: models.RoleDG, InstitutionID: "inst-1"},
			t:     Transition{From: models.MissionStatusPendingDG, Action: ActionApprove},
			allow: true,
		},
		{
			name:  "msgg signs final step",
			actor: models.Actor{UserID: "u5", Role: models.RoleMSGG, InstitutionID: "inst-1"},
			t:     Transition{From: models.MissionStatusPendingDG, Action: ActionApprove},
			allow: true,
		},
		{
			name:  "logistics rejects its step",
			actor: models.Actor{UserID: "u6", Role: models.RoleLogistics, InstitutionID: "inst-1"},
			t:     Transition{From: models.MissionStatusPendingLogistics, Action: ActionReject},
			allow: true,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := Authorize(tc.actor, mission, tc.t)
			if tc.allow {
				require.NoError(t, err)
			} else {
				require.True(t, appErrors.Is(err, appErrors.ErrForbidden))
			}
		})
	}
}

func TestGateInstitutionScoping(t *testing.T) {
	mission := gateMission()
	transition := Transition{From: models.MissionStatusPendingTechnical, Action: ActionApprove}

	outsider := models.Actor{UserID: "u1", Role: models.RoleTechnical, InstitutionID: "inst-2"}
	require.True(t, appErrors.Is(Authorize(outsider, mission, transition), appErrors.ErrForbidden))

	// SUPERADMIN is exempt from institution scoping but still bound to the
	// role table: it may archive, not validate a technical step.
	super := models.Actor{UserID: "root", Role: models.RoleSuperAdmin, InstitutionID: "other"}
	require.Error(t, Authorize(super, mission, transition))
	require.NoError(t, Authorize(super, mission, Transition{From: models.MissionStatusValidated, Action: ActionArchive}))
}

func TestGateFailsClosed(t *testing.T) {
	mission := gateMission()

	// Missing role.
	err := Authorize(models.Actor{UserID: "u1", InstitutionID: "inst-1"}, mission,
		Transition{From: models.MissionStatusPendingTechnical, Action: ActionApprove})
	require.True(t, appErrors.Is(err, appErrors.ErrForbidden))

	// Missing institution on a scoped role.
	err = Authorize(models.Actor{UserID: "u1", Role: models.RoleTechnical}, mission,
		Transition{From: models.MissionStatusPendingTechnical, Action: ActionApprove})
	require.True(t, appErrors.Is(err, appErrors.ErrForbidden))

	// Unknown transition.
	err = Authorize(models.Actor{UserID: "u1", Role: models.RoleTechnical, InstitutionID: "inst-1"}, mission,
		Transition{From: models.MissionStatusRejected, Action: ActionApprove})
	require.True(t, appErrors.Is(err, appErrors.ErrForbidden))

	// Nil mission.
	err = Authorize(models.Actor{UserID: "u1", Role: models.RoleTechnical, InstitutionID: "inst-1"}, nil,
		Transition{From: models.MissionStatusPendingTechnical, Action: ActionApprove})
	require.True(t, appErrors.Is(err, appErrors.ErrForbidden))
}

func TestGateAssignment(t *testing.T) {
	mission := gateMission()

	require.NoError(t, AuthorizeAssignment(models.Actor{UserID: "u1", Role: models.RoleLogistics, InstitutionID: "inst-1"}, mission))
	require.Error(t, AuthorizeAssignment(models.Actor{UserID: "u1", Role: models.RoleLogistics, InstitutionID: "inst-2"}, mission))
	require.Error(t, AuthorizeAssignment(models.Actor{UserID: "u1", Role: models.RoleFinance, InstitutionID: "inst-1"}, mission))
	require.NoError(t, AuthorizeAssignment(models.Actor{UserID: "root", Role: models.RoleSuperAdmin}, mission))
}
