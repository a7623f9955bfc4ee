package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"

	appErrors "github.com/lahah11/finale-anesp-sub001/pkg/errors"
)

func strPtr(s string) *string { return &s }

func TestLogisticsRepositoryAssign(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()

	repo := NewLogisticsRepository(db)
	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("SELECT la.id FROM logistics_assignments la")).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM logistics_assignments")).
		WithArgs("mission-1").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO logistics_assignments")).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	assignment, err := repo.Assign(context.Background(), AssignParams{
		MissionID:     "mission-1",
		VehicleID:     strPtr("veh-1"),
		DriverID:      strPtr("drv-1"),
		AssignedBy:    "user-4",
		DepartureDate: time.Now().Add(24 * time.Hour),
		ReturnDate:    time.Now().Add(72 * time.Hour),
	})
	require.NoError(t, err)
	require.NotNil(t, assignment)
	require.Equal(t, "veh-1", *assignment.VehicleID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestLogisticsRepositoryAssignConflict(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()

	repo := NewLogisticsRepository(db)
	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("SELECT la.id FROM logistics_assignments la")).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("assign-9"))
	mock.ExpectRollback()

	_, err := repo.Assign(context.Background(), AssignParams{
		MissionID:     "mission-1",
		VehicleID:     strPtr("veh-1"),
		AssignedBy:    "user-4",
		DepartureDate: time.Now().Add(24 * time.Hour),
		ReturnDate:    time.Now().Add(72 * time.Hour),
	})
	require.True(t, appErrors.Is(err, appErrors.ErrResourceConflict))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestLogisticsRepositoryAssignTicketOnly(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()

	repo := NewLogisticsRepository(db)
	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("SELECT la.id FROM logistics_assignments la")).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM logistics_assignments")).
		WithArgs("mission-1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO logistics_assignments")).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	assignment, err := repo.Assign(context.Background(), AssignParams{
		MissionID:     "mission-1",
		TicketRef:     strPtr("TK-4412"),
		AssignedBy:    "user-4",
		DepartureDate: time.Now().Add(24 * time.Hour),
		ReturnDate:    time.Now().Add(72 * time.Hour),
	})
	require.NoError(t, err)
	require.NotNil(t, assignment)
	require.Nil(t, assignment.VehicleID)
	require.NoError(t, mock.ExpectationsWereMet())
}
