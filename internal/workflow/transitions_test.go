package workflow

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/lahah11/finale-anesp-sub001/internal/models"
	appErrors "github.com/lahah11/finale-anesp-sub001/pkg/errors"
)

func TestApprovalPathIsTotalAndOrdered(t *testing.T) {
	expected := []models.MissionStatus{
		models.MissionStatusDraft,
		models.MissionStatusPendingTechnical,
		models.MissionStatusPendingLogistics,
		models.MissionStatusPendingFinance,
		models.MissionStatusPendingDG,
		models.MissionStatusValidated,
	}

	current := expected[0]
	for i := 1; i < len(expected); i++ {
		next, err := Resolve(current, ActionApprove)
		require.NoError(t, err)
		require.Equal(t, expected[i], next)
		require.Equal(t, i+1, StepFor(next), "step must mirror status")
		current = next
	}

	// VALIDATED has no approval successor.
	_, err := Resolve(current, ActionApprove)
	require.Error(t, err)
	require.True(t, appErrors.Is(err, appErrors.ErrInvalidAction))
}

func TestRejectOnlyFromPendingStates(t *testing.T) {
	for _, status := range []models.MissionStatus{
		models.MissionStatusPendingTechnical,
		models.MissionStatusPendingLogistics,
		models.MissionStatusPendingFinance,
		models.MissionStatusPendingDG,
	} {
		to, err := Resolve(status, ActionReject)
		require.NoError(t, err, status)
		require.Equal(t, models.MissionStatusRejected, to)
	}

	for _, status := range []models.MissionStatus{
		models.MissionStatusDraft,
		models.MissionStatusValidated,
		models.MissionStatusRejected,
		models.MissionStatusArchived,
		models.MissionStatusCompleted,
		models.MissionStatusClosed,
	} {
		_, err := Resolve(status, ActionReject)
		require.Error(t, err, status)
	}
}

func TestHousekeepingTransitions(t *testing.T) {
	to, err := Resolve(models.MissionStatusValidated, ActionArchive)
	require.NoError(t, err)
	require.Equal(t, models.MissionStatusArchived, to)

	to, err = Resolve(models.MissionStatusValidated, ActionComplete)
	require.NoError(t, err)
	require.Equal(t, models.MissionStatusCompleted, to)

	to, err = Resolve(models.MissionStatusCompleted, ActionClose)
	require.NoError(t, err)
	require.Equal(t, models.MissionStatusClosed, to)

	// No re-approval out of terminal states.
	_, err = Resolve(models.MissionStatusRejected, ActionApprove)
	require.Error(t, err)
	_, err = Resolve(models.MissionStatusClosed, ActionClose)
	require.Error(t, err)
	_, err = Resolve(models.MissionStatusArchived, ActionComplete)
	require.Error(t, err)
}

func TestUnknownActionRejected(t *testing.T) {
	_, err := Resolve(models.MissionStatusPendingTechnical, Action("SIGN"))
	require.True(t, appErrors.Is(err, appErrors.ErrInvalidAction))
}

func TestReleaseAndTriggerMarkers(t *testing.T) {
	require.True(t, ReleasesEmployees(models.MissionStatusRejected))
	require.True(t, ReleasesEmployees(models.MissionStatusClosed))
	require.True(t, ReleasesEmployees(models.MissionStatusArchived))
	require.False(t, ReleasesEmployees(models.MissionStatusValidated))
	require.False(t, ReleasesEmployees(models.MissionStatusCompleted))

	require.True(t, EmitsDocumentTrigger(models.MissionStatusValidated))
	require.False(t, EmitsDocumentTrigger(models.MissionStatusPendingDG))
}
