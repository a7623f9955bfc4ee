package service

import (
	"context"
	"database/sql"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/lahah11/finale-anesp-sub001/internal/dto"
	"github.com/lahah11/finale-anesp-sub001/internal/models"
	"github.com/lahah11/finale-anesp-sub001/internal/repository"
	"github.com/lahah11/finale-anesp-sub001/pkg/config"
	appErrors "github.com/lahah11/finale-anesp-sub001/pkg/errors"
)

type missionRepoStub struct {
	missions  map[string]*models.Mission
	docs      map[string]*models.MissionDocument
	actions   []models.ValidationAction
	released  map[string]bool
	counts    []models.StatusCount
	createErr error
}

func newMissionRepoStub() *missionRepoStub {
	return &missionRepoStub{
		missions: make(map[string]*models.Mission),
		docs:     make(map[string]*models.MissionDocument),
		released: make(map[string]bool),
	}
}

func (m *missionRepoStub) Create(ctx context.Context, mission *models.Mission) error {
	if m.createErr != nil {
		return m.createErr
	}
	if mission.ID == "" {
		mission.ID = "mission-" + mission.Reference
	}
	stored := *mission
	m.missions[mission.ID] = &stored
	return nil
}

func (m *missionRepoStub) GetByID(ctx context.Context, id string) (*models.Mission, error) {
	mission, ok := m.missions[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	copy := *mission
	return &copy, nil
}

func (m *missionRepoStub) List(ctx context.Context, filter models.MissionFilter) ([]models.Mission, error) {
	result := make([]models.Mission, 0, len(m.missions))
	for _, mission := range m.missions {
		if filter.InstitutionID != "" && mission.InstitutionID != filter.InstitutionID {
			continue
		}
		result = append(result, *mission)
	}
	return result, nil
}

func (m *missionRepoStub) Advance(ctx context.Context, params repository.AdvanceParams) error {
	mission, ok := m.missions[params.MissionID]
	if !ok || mission.Status != params.FromStatus {
		return appErrors.ErrStaleTransition
	}
	mission.Status = params.ToStatus
	mission.CurrentStep = params.ToStep
	if params.EstimatedCosts != nil {
		mission.EstimatedCosts = params.EstimatedCosts
	}
	m.actions = append(m.actions, params.Action)
	if params.ReleaseEmployees {
		m.released[params.MissionID] = true
	}
	return nil
}

func (m *missionRepoStub) CountByStatus(ctx context.Context, institutionID string) ([]models.StatusCount, error) {
	return m.counts, nil
}

func (m *missionRepoStub) GetDocument(ctx context.Context, missionID string) (*models.MissionDocument, error) {
	if doc, ok := m.docs[missionID]; ok {
		return doc, nil
	}
	return nil, sql.ErrNoRows
}

func (m *missionRepoStub) SaveDocument(ctx context.Context, doc *models.MissionDocument) error {
	m.docs[doc.MissionID] = doc
	return nil
}

type employeesStub struct {
	employees map[string]*models.Employee
}

func (e *employeesStub) ListByIDs(ctx context.Context, ids []string) ([]models.Employee, error) {
	result := make([]models.Employee, 0, len(ids))
	for _, id := range ids {
		if employee, ok := e.employees[id]; ok {
			result = append(result, *employee)
		}
	}
	return result, nil
}

type assignmentsStub struct {
	assignment *models.LogisticsAssignment
	assignErr  error
	vehicles   map[string]*models.Vehicle
	drivers    map[string]*models.Driver
}

func (a *assignmentsStub) Assign(ctx context.Context, params repository.AssignParams) (*models.LogisticsAssignment, error) {
	if a.assignErr != nil {
		return nil, a.assignErr
	}
	a.assignment = &models.LogisticsAssignment{
		ID:         "assignment-1",
		MissionID:  params.MissionID,
		VehicleID:  params.VehicleID,
		DriverID:   params.DriverID,
		TicketRef:  params.TicketRef,
		AssignedBy: params.AssignedBy,
	}
	return a.assignment, nil
}

func (a *assignmentsStub) GetByMission(ctx context.Context, missionID string) (*models.LogisticsAssignment, error) {
	return a.assignment, nil
}

func (a *assignmentsStub) GetVehicle(ctx context.Context, id string) (*models.Vehicle, error) {
	if vehicle, ok := a.vehicles[id]; ok {
		return vehicle, nil
	}
	return nil, sql.ErrNoRows
}

func (a *assignmentsStub) GetDriver(ctx context.Context, id string) (*models.Driver, error) {
	if driver, ok := a.drivers[id]; ok {
		return driver, nil
	}
	return nil, sql.ErrNoRows
}

type trailStub struct {
	actions []models.ValidationAction
}

func (t *trailStub) ListByMission(ctx context.Context, missionID string) ([]models.ValidationAction, error) {
	return t.actions, nil
}

type triggerStub struct {
	ids []string
}

func (t *triggerStub) MissionValidated(missionID string) error {
	t.ids = append(t.ids, missionID)
	return nil
}

func workflowTestConfig() config.WorkflowConfig {
	return config.WorkflowConfig{
		AllowEmptyLogistics: true,
		LockWait:            50 * time.Millisecond,
		BusyRetries:         1,
		CacheTTL:            time.Minute,
	}
}

type missionFixture struct {
	svc         *MissionService
	repo        *missionRepoStub
	employees   *employeesStub
	assignments *assignmentsStub
	trail       *trailStub
	trigger     *triggerStub
	audit       *auditStub
}

type auditStub struct {
	logs []*models.AuditLog
}

func (a *auditStub) CreateAuditLog(ctx context.Context, log *models.AuditLog) error {
	a.logs = append(a.logs, log)
	return nil
}

func newMissionFixture(cfg config.WorkflowConfig) *missionFixture {
	repo := newMissionRepoStub()
	employees := &employeesStub{employees: map[string]*models.Employee{
		"emp-1": {ID: "emp-1", InstitutionID: "inst-1", Matricule: "MAT-001", FullName: "Aminata Sow", Position: "Inspector", Status: models.EmployeeStatusAvailable},
		"emp-2": {ID: "emp-2", InstitutionID: "inst-1", Matricule: "MAT-002", FullName: "Oumar Ba", Position: "Analyst", Status: models.EmployeeStatusAvailable},
	}}
	assignments := &assignmentsStub{
		vehicles: map[string]*models.Vehicle{
			"veh-1": {ID: "veh-1", InstitutionID: "inst-1", Registration: "4412 AB", Active: true},
		},
		drivers: map[string]*models.Driver{
			"drv-1": {ID: "drv-1", InstitutionID: "inst-1", FullName: "Moussa Diallo", Active: true},
		},
	}
	trail := &trailStub{}
	trigger := &triggerStub{}
	audit := &auditStub{}
	svc := NewMissionService(repo, employees, assignments, trail, nil, nil, cfg,
		WithDocumentTrigger(trigger),
		WithMissionAudit(audit),
	)
	return &missionFixture{svc: svc, repo: repo, employees: employees, assignments: assignments, trail: trail, trigger: trigger, audit: audit}
}

func (f *missionFixture) seedMission(status models.MissionStatus) *models.Mission {
	mission := &models.Mission{
		ID:             "mission-1",
		Reference:      "OM-2026-0a1b2c",
		InstitutionID:  "inst-1",
		CreatedBy:      "hr-1",
		Object:         "field audit",
		DepartureDate:  time.Now().UTC().Add(48 * time.Hour),
		ReturnDate:     time.Now().UTC().Add(96 * time.Hour),
		Status:         status,
		ParticipantIDs: []string{"emp-1", "emp-2"},
	}
	f.repo.missions[mission.ID] = mission
	return mission
}

var (
	hrActor        = models.Actor{UserID: "hr-1", Role: models.RoleHRAdmin, InstitutionID: "inst-1"}
	technicalActor = models.Actor{UserID: "tech-1", Role: models.RoleTechnical, InstitutionID: "inst-1"}
	logisticsActor = models.Actor{UserID: "log-1", Role: models.RoleLogistics, InstitutionID: "inst-1"}
	financeActor   = models.Actor{UserID: "fin-1", Role: models.RoleFinance, InstitutionID: "inst-1"}
	dgActor        = models.Actor{UserID: "dg-1", Role: models.RoleDG, InstitutionID: "inst-1"}
	superActor     = models.Actor{UserID: "root-1", Role: models.RoleSuperAdmin}
)

func createRequest() dto.CreateMissionRequest {
	departure := time.Now().UTC().Add(72 * time.Hour).Format("2006-01-02")
	ret := time.Now().UTC().Add(120 * time.Hour).Format("2006-01-02")
	return dto.CreateMissionRequest{
		Object:         "field audit",
		DepartureDate:  departure,
		ReturnDate:     ret,
		ParticipantIDs: []string{"emp-1", "emp-2"},
	}
}

func TestMissionServiceCreate(t *testing.T) {
	f := newMissionFixture(workflowTestConfig())

	mission, err := f.svc.Create(context.Background(), createRequest(), hrActor)
	require.NoError(t, err)
	require.Equal(t, models.MissionStatusDraft, mission.Status)
	require.Equal(t, 1, mission.CurrentStep)
	require.True(t, strings.HasPrefix(mission.Reference, "OM-"))
	require.Len(t, mission.ParticipantIDs, 2)
	require.Len(t, f.audit.logs, 1)
}

func TestMissionServiceCreateRejectsNonHR(t *testing.T) {
	f := newMissionFixture(workflowTestConfig())

	_, err := f.svc.Create(context.Background(), createRequest(), technicalActor)
	require.True(t, appErrors.Is(err, appErrors.ErrForbidden))
}

func TestMissionServiceCreateBusyParticipant(t *testing.T) {
	f := newMissionFixture(workflowTestConfig())
	f.employees.employees["emp-2"].Status = models.EmployeeStatusOnMission

	_, err := f.svc.Create(context.Background(), createRequest(), hrActor)
	require.True(t, appErrors.Is(err, appErrors.ErrEmployeeUnavailable))
}

func TestMissionServiceCreateUnknownParticipant(t *testing.T) {
	f := newMissionFixture(workflowTestConfig())

	req := createRequest()
	req.ParticipantIDs = append(req.ParticipantIDs, "emp-404")
	_, err := f.svc.Create(context.Background(), req, hrActor)
	require.True(t, appErrors.Is(err, appErrors.ErrNotFound))
}

func TestMissionServiceCreateDateOrdering(t *testing.T) {
	f := newMissionFixture(workflowTestConfig())

	req := createRequest()
	req.ReturnDate = time.Now().UTC().Add(24 * time.Hour).Format("2006-01-02")
	_, err := f.svc.Create(context.Background(), req, hrActor)
	require.True(t, appErrors.Is(err, appErrors.ErrValidation))
}

func TestMissionServiceCreateRejectsSameDayDeparture(t *testing.T) {
	f := newMissionFixture(workflowTestConfig())

	req := createRequest()
	req.DepartureDate = time.Now().UTC().Format("2006-01-02")
	_, err := f.svc.Create(context.Background(), req, hrActor)
	require.True(t, appErrors.Is(err, appErrors.ErrValidation))
}

func TestMissionServiceFullApprovalChain(t *testing.T) {
	f := newMissionFixture(workflowTestConfig())
	mission := f.seedMission(models.MissionStatusDraft)

	_, err := f.svc.Submit(context.Background(), mission.ID, hrActor)
	require.NoError(t, err)

	approve := dto.ValidationRequest{Action: models.ValidationActionApprove}
	_, err = f.svc.Decide(context.Background(), mission.ID, models.MissionStatusPendingTechnical, approve, technicalActor)
	require.NoError(t, err)
	_, err = f.svc.Decide(context.Background(), mission.ID, models.MissionStatusPendingLogistics, approve, logisticsActor)
	require.NoError(t, err)

	costs := 1500.0
	_, err = f.svc.Decide(context.Background(), mission.ID, models.MissionStatusPendingFinance,
		dto.ValidationRequest{Action: models.ValidationActionApprove, EstimatedCosts: &costs}, financeActor)
	require.NoError(t, err)

	final, err := f.svc.Decide(context.Background(), mission.ID, models.MissionStatusPendingDG, approve, dgActor)
	require.NoError(t, err)
	require.Equal(t, models.MissionStatusValidated, final.Status)
	require.Equal(t, 6, final.CurrentStep)

	stored := f.repo.missions[mission.ID]
	require.Equal(t, models.MissionStatusValidated, stored.Status)
	require.NotNil(t, stored.EstimatedCosts)
	require.Equal(t, costs, *stored.EstimatedCosts)
	require.Len(t, f.repo.actions, 5)
	require.Equal(t, []string{mission.ID}, f.trigger.ids)
	require.False(t, f.repo.released[mission.ID])
}

func TestMissionServiceMSGGCanSignFinalStep(t *testing.T) {
	f := newMissionFixture(workflowTestConfig())
	mission := f.seedMission(models.MissionStatusPendingDG)

	msgg := models.Actor{UserID: "msgg-1", Role: models.RoleMSGG, InstitutionID: "inst-1"}
	final, err := f.svc.Decide(context.Background(), mission.ID, models.MissionStatusPendingDG,
		dto.ValidationRequest{Action: models.ValidationActionApprove}, msgg)
	require.NoError(t, err)
	require.Equal(t, models.MissionStatusValidated, final.Status)
}

func TestMissionServiceRejectRequiresReason(t *testing.T) {
	f := newMissionFixture(workflowTestConfig())
	mission := f.seedMission(models.MissionStatusPendingTechnical)

	_, err := f.svc.Decide(context.Background(), mission.ID, models.MissionStatusPendingTechnical,
		dto.ValidationRequest{Action: models.ValidationActionReject, Reason: "   "}, technicalActor)
	require.True(t, appErrors.Is(err, appErrors.ErrMissingRejectionReason))
}

func TestMissionServiceRejectReleasesParticipants(t *testing.T) {
	f := newMissionFixture(workflowTestConfig())
	mission := f.seedMission(models.MissionStatusPendingFinance)

	rejected, err := f.svc.Decide(context.Background(), mission.ID, models.MissionStatusPendingFinance,
		dto.ValidationRequest{Action: models.ValidationActionReject, Reason: "budget exceeded"}, financeActor)
	require.NoError(t, err)
	require.Equal(t, models.MissionStatusRejected, rejected.Status)
	require.Equal(t, 0, rejected.CurrentStep)
	require.True(t, f.repo.released[mission.ID])
	require.Empty(t, f.trigger.ids)

	last := f.repo.actions[len(f.repo.actions)-1]
	require.Equal(t, models.ValidationActionReject, last.Action)
	require.NotNil(t, last.RejectionReason)
	require.Equal(t, "budget exceeded", *last.RejectionReason)
}

func TestMissionServiceGateDeniesWrongRole(t *testing.T) {
	f := newMissionFixture(workflowTestConfig())
	mission := f.seedMission(models.MissionStatusPendingTechnical)

	_, err := f.svc.Decide(context.Background(), mission.ID, models.MissionStatusPendingTechnical,
		dto.ValidationRequest{Action: models.ValidationActionApprove}, financeActor)
	require.True(t, appErrors.Is(err, appErrors.ErrForbidden))
}

func TestMissionServiceGateDeniesCrossInstitution(t *testing.T) {
	f := newMissionFixture(workflowTestConfig())
	mission := f.seedMission(models.MissionStatusPendingTechnical)

	outsider := models.Actor{UserID: "tech-9", Role: models.RoleTechnical, InstitutionID: "inst-2"}
	_, err := f.svc.Decide(context.Background(), mission.ID, models.MissionStatusPendingTechnical,
		dto.ValidationRequest{Action: models.ValidationActionApprove}, outsider)
	require.True(t, appErrors.Is(err, appErrors.ErrForbidden))
}

func TestMissionServiceSuperAdminIsRoleBound(t *testing.T) {
	f := newMissionFixture(workflowTestConfig())
	mission := f.seedMission(models.MissionStatusPendingTechnical)

	// exempt from institution scoping, but not from the role table
	_, err := f.svc.Decide(context.Background(), mission.ID, models.MissionStatusPendingTechnical,
		dto.ValidationRequest{Action: models.ValidationActionApprove}, superActor)
	require.True(t, appErrors.Is(err, appErrors.ErrForbidden))

	f.seedMission(models.MissionStatusValidated)
	archived, err := f.svc.Archive(context.Background(), mission.ID, superActor)
	require.NoError(t, err)
	require.Equal(t, models.MissionStatusArchived, archived.Status)
}

func TestMissionServiceStaleTransition(t *testing.T) {
	f := newMissionFixture(workflowTestConfig())
	mission := f.seedMission(models.MissionStatusPendingTechnical)

	_, err := f.svc.Submit(context.Background(), mission.ID, hrActor)
	require.True(t, appErrors.Is(err, appErrors.ErrStaleTransition))
}

func TestMissionServiceConcurrentSubmitSingleWinner(t *testing.T) {
	cfg := workflowTestConfig()
	cfg.LockWait = time.Second
	f := newMissionFixture(cfg)
	mission := f.seedMission(models.MissionStatusDraft)

	errs := make(chan error, 2)
	var wg sync.WaitGroup
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.svc.Submit(context.Background(), mission.ID, hrActor)
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	var won, stale int
	for err := range errs {
		switch {
		case err == nil:
			won++
		case appErrors.Is(err, appErrors.ErrStaleTransition):
			stale++
		default:
			t.Fatalf("unexpected submit error: %v", err)
		}
	}
	require.Equal(t, 1, won)
	require.Equal(t, 1, stale)
	require.Equal(t, models.MissionStatusPendingTechnical, f.repo.missions[mission.ID].Status)
}

func TestMissionServiceLogisticsRequiredWhenConfigured(t *testing.T) {
	cfg := workflowTestConfig()
	cfg.AllowEmptyLogistics = false
	f := newMissionFixture(cfg)
	mission := f.seedMission(models.MissionStatusPendingLogistics)

	approve := dto.ValidationRequest{Action: models.ValidationActionApprove}
	_, err := f.svc.Decide(context.Background(), mission.ID, models.MissionStatusPendingLogistics, approve, logisticsActor)
	require.True(t, appErrors.Is(err, appErrors.ErrInvalidAction))

	vehicleID := "veh-1"
	_, err = f.svc.AssignLogistics(context.Background(), mission.ID, dto.AssignLogisticsRequest{VehicleID: &vehicleID}, logisticsActor)
	require.NoError(t, err)

	advanced, err := f.svc.Decide(context.Background(), mission.ID, models.MissionStatusPendingLogistics, approve, logisticsActor)
	require.NoError(t, err)
	require.Equal(t, models.MissionStatusPendingFinance, advanced.Status)
}

func TestMissionServiceAssignLogistics(t *testing.T) {
	f := newMissionFixture(workflowTestConfig())
	mission := f.seedMission(models.MissionStatusPendingLogistics)

	vehicleID, driverID := "veh-1", "drv-1"
	assignment, err := f.svc.AssignLogistics(context.Background(), mission.ID,
		dto.AssignLogisticsRequest{VehicleID: &vehicleID, DriverID: &driverID}, logisticsActor)
	require.NoError(t, err)
	require.Equal(t, "log-1", assignment.AssignedBy)
}

func TestMissionServiceAssignLogisticsConflict(t *testing.T) {
	f := newMissionFixture(workflowTestConfig())
	mission := f.seedMission(models.MissionStatusPendingLogistics)
	f.assignments.assignErr = appErrors.ErrResourceConflict

	vehicleID := "veh-1"
	_, err := f.svc.AssignLogistics(context.Background(), mission.ID,
		dto.AssignLogisticsRequest{VehicleID: &vehicleID}, logisticsActor)
	require.True(t, appErrors.Is(err, appErrors.ErrResourceConflict))
}

func TestMissionServiceAssignLogisticsWrongStatus(t *testing.T) {
	f := newMissionFixture(workflowTestConfig())
	mission := f.seedMission(models.MissionStatusPendingFinance)

	vehicleID := "veh-1"
	_, err := f.svc.AssignLogistics(context.Background(), mission.ID,
		dto.AssignLogisticsRequest{VehicleID: &vehicleID}, logisticsActor)
	require.True(t, appErrors.Is(err, appErrors.ErrInvalidAction))
}

func TestMissionServiceAssignLogisticsLocksResources(t *testing.T) {
	cfg := workflowTestConfig()
	cfg.LockWait = 10 * time.Millisecond
	f := newMissionFixture(cfg)
	mission := f.seedMission(models.MissionStatusPendingLogistics)

	// a competing assignment holding the vehicle keeps first-time claims out
	require.True(t, f.svc.locks.Acquire("veh-1"))
	defer f.svc.locks.Release("veh-1")

	vehicleID, driverID := "veh-1", "drv-1"
	_, err := f.svc.AssignLogistics(context.Background(), mission.ID,
		dto.AssignLogisticsRequest{VehicleID: &vehicleID}, logisticsActor)
	require.True(t, appErrors.Is(err, appErrors.ErrBusy))

	// the driver alone is uncontended
	assignment, err := f.svc.AssignLogistics(context.Background(), mission.ID,
		dto.AssignLogisticsRequest{DriverID: &driverID}, logisticsActor)
	require.NoError(t, err)
	require.Equal(t, "drv-1", *assignment.DriverID)
}

func TestMissionServiceHousekeeping(t *testing.T) {
	f := newMissionFixture(workflowTestConfig())
	mission := f.seedMission(models.MissionStatusValidated)

	completed, err := f.svc.Complete(context.Background(), mission.ID, hrActor)
	require.NoError(t, err)
	require.Equal(t, models.MissionStatusCompleted, completed.Status)
	require.False(t, f.repo.released[mission.ID])

	closed, err := f.svc.Close(context.Background(), mission.ID, hrActor)
	require.NoError(t, err)
	require.Equal(t, models.MissionStatusClosed, closed.Status)
	require.True(t, f.repo.released[mission.ID])

	// no further transitions from CLOSED
	_, err = f.svc.Archive(context.Background(), mission.ID, hrActor)
	require.True(t, appErrors.Is(err, appErrors.ErrStaleTransition))
}

func TestMissionServiceBusyWhenLocked(t *testing.T) {
	cfg := workflowTestConfig()
	cfg.LockWait = 10 * time.Millisecond
	cfg.BusyRetries = 0
	f := newMissionFixture(cfg)
	mission := f.seedMission(models.MissionStatusDraft)

	require.True(t, f.svc.locks.Acquire(mission.ID))
	defer f.svc.locks.Release(mission.ID)

	_, err := f.svc.Submit(context.Background(), mission.ID, hrActor)
	require.True(t, appErrors.Is(err, appErrors.ErrBusy))
}

func TestMissionServiceGetScoping(t *testing.T) {
	f := newMissionFixture(workflowTestConfig())
	mission := f.seedMission(models.MissionStatusDraft)

	_, err := f.svc.Get(context.Background(), mission.ID, hrActor)
	require.NoError(t, err)

	outsider := models.Actor{UserID: "hr-9", Role: models.RoleHRAdmin, InstitutionID: "inst-2"}
	_, err = f.svc.Get(context.Background(), mission.ID, outsider)
	require.True(t, appErrors.Is(err, appErrors.ErrForbidden))

	_, err = f.svc.Get(context.Background(), mission.ID, superActor)
	require.NoError(t, err)

	_, err = f.svc.Get(context.Background(), "mission-404", hrActor)
	require.True(t, appErrors.Is(err, appErrors.ErrNotFound))
}

func TestMissionServiceHistory(t *testing.T) {
	f := newMissionFixture(workflowTestConfig())
	mission := f.seedMission(models.MissionStatusPendingLogistics)
	f.trail.actions = []models.ValidationAction{
		{MissionID: mission.ID, ActorID: "hr-1", ActorRole: models.RoleHRAdmin, FromStatus: models.MissionStatusDraft, ToStatus: models.MissionStatusPendingTechnical, Action: models.ValidationActionApprove, CreatedAt: time.Now()},
		{MissionID: mission.ID, ActorID: "tech-1", ActorRole: models.RoleTechnical, FromStatus: models.MissionStatusPendingTechnical, ToStatus: models.MissionStatusPendingLogistics, Action: models.ValidationActionApprove, CreatedAt: time.Now()},
	}

	history, err := f.svc.History(context.Background(), mission.ID, hrActor)
	require.NoError(t, err)
	require.Len(t, history, 2)
	require.Equal(t, models.MissionStatusDraft, history[0].FromStatus)
	require.Equal(t, models.MissionStatusPendingLogistics, history[1].ToStatus)
}

func TestMissionServiceDashboard(t *testing.T) {
	f := newMissionFixture(workflowTestConfig())
	f.repo.counts = []models.StatusCount{
		{Status: models.MissionStatusDraft, Count: 2},
		{Status: models.MissionStatusValidated, Count: 3},
	}

	summary, err := f.svc.Dashboard(context.Background(), "", hrActor)
	require.NoError(t, err)
	require.Equal(t, "inst-1", summary.InstitutionID)
	require.Equal(t, 5, summary.Total)
	require.Equal(t, 3, summary.ByStatus[models.MissionStatusValidated])
}
