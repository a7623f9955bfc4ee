package handler

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/lahah11/finale-anesp-sub001/internal/middleware"
	"github.com/lahah11/finale-anesp-sub001/internal/models"
	"github.com/lahah11/finale-anesp-sub001/internal/repository"
	"github.com/lahah11/finale-anesp-sub001/internal/service"
	"github.com/lahah11/finale-anesp-sub001/pkg/config"
	appErrors "github.com/lahah11/finale-anesp-sub001/pkg/errors"
)

type memMissionStore struct {
	missions map[string]*models.Mission
	actions  map[string][]models.ValidationAction
	seq      int
}

func (m *memMissionStore) Create(ctx context.Context, mission *models.Mission) error {
	m.seq++
	mission.ID = fmt.Sprintf("mission-%d", m.seq)
	mission.CreatedAt = time.Now().UTC()
	stored := *mission
	m.missions[mission.ID] = &stored
	return nil
}

func (m *memMissionStore) GetByID(ctx context.Context, id string) (*models.Mission, error) {
	mission, ok := m.missions[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	copy := *mission
	return &copy, nil
}

func (m *memMissionStore) List(ctx context.Context, filter models.MissionFilter) ([]models.Mission, error) {
	result := make([]models.Mission, 0, len(m.missions))
	for _, mission := range m.missions {
		if filter.InstitutionID != "" && mission.InstitutionID != filter.InstitutionID {
			continue
		}
		result = append(result, *mission)
	}
	return result, nil
}

func (m *memMissionStore) Advance(ctx context.Context, params repository.AdvanceParams) error {
	mission, ok := m.missions[params.MissionID]
	if !ok {
		return sql.ErrNoRows
	}
	if mission.Status != params.FromStatus {
		return appErrors.ErrStaleTransition
	}
	mission.Status = params.ToStatus
	mission.CurrentStep = params.ToStep
	if params.EstimatedCosts != nil {
		mission.EstimatedCosts = params.EstimatedCosts
	}
	m.actions[params.MissionID] = append(m.actions[params.MissionID], params.Action)
	return nil
}

func (m *memMissionStore) CountByStatus(ctx context.Context, institutionID string) ([]models.StatusCount, error) {
	counts := map[models.MissionStatus]int{}
	for _, mission := range m.missions {
		if mission.InstitutionID == institutionID {
			counts[mission.Status]++
		}
	}
	result := make([]models.StatusCount, 0, len(counts))
	for status, n := range counts {
		result = append(result, models.StatusCount{Status: status, Count: n})
	}
	return result, nil
}

type memParticipantStore struct {
	employees map[string]*models.Employee
}

func (m *memParticipantStore) ListByIDs(ctx context.Context, ids []string) ([]models.Employee, error) {
	result := make([]models.Employee, 0, len(ids))
	for _, id := range ids {
		if employee, ok := m.employees[id]; ok {
			result = append(result, *employee)
		}
	}
	return result, nil
}

type memAssignmentStore struct{}

func (memAssignmentStore) Assign(ctx context.Context, params repository.AssignParams) (*models.LogisticsAssignment, error) {
	return &models.LogisticsAssignment{MissionID: params.MissionID}, nil
}
func (memAssignmentStore) GetByMission(ctx context.Context, missionID string) (*models.LogisticsAssignment, error) {
	return nil, nil
}
func (memAssignmentStore) GetVehicle(ctx context.Context, id string) (*models.Vehicle, error) {
	return nil, sql.ErrNoRows
}
func (memAssignmentStore) GetDriver(ctx context.Context, id string) (*models.Driver, error) {
	return nil, sql.ErrNoRows
}

type memTrailStore struct {
	store *memMissionStore
}

func (m *memTrailStore) ListByMission(ctx context.Context, missionID string) ([]models.ValidationAction, error) {
	return m.store.actions[missionID], nil
}

type memAuthStore struct {
	users map[string]*models.User
}

func (m *memAuthStore) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	for _, user := range m.users {
		if user.Email == email {
			copy := *user
			return &copy, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (m *memAuthStore) FindByID(ctx context.Context, id string) (*models.User, error) {
	if user, ok := m.users[id]; ok {
		copy := *user
		return &copy, nil
	}
	return nil, sql.ErrNoRows
}

func (m *memAuthStore) UpdateLastLogin(ctx context.Context, id string, ts time.Time) error { return nil }
func (m *memAuthStore) CreateAuditLog(ctx context.Context, log *models.AuditLog) error     { return nil }

type missionRouterFixture struct {
	router *gin.Engine
	store  *memMissionStore
	tokens map[models.UserRole]string
}

func newMissionRouterFixture(t *testing.T) *missionRouterFixture {
	t.Helper()
	gin.SetMode(gin.TestMode)

	hash, err := bcrypt.GenerateFromPassword([]byte("pass"), bcrypt.MinCost)
	require.NoError(t, err)

	authStore := &memAuthStore{users: map[string]*models.User{}}
	roles := []models.UserRole{
		models.RoleHRAdmin, models.RoleTechnical, models.RoleLogistics,
		models.RoleFinance, models.RoleDG,
	}
	for i, role := range roles {
		id := fmt.Sprintf("user-%d", i+1)
		authStore.users[id] = &models.User{
			ID: id, Email: fmt.Sprintf("%s@test.mr", role), PasswordHash: string(hash),
			Role: role, InstitutionID: "inst-1", Active: true,
		}
	}

	authService := service.NewAuthService(authStore, nil, nil, service.AuthConfig{
		Secret: "router-test-secret",
		Expiry: time.Hour,
	})

	store := &memMissionStore{
		missions: map[string]*models.Mission{},
		actions:  map[string][]models.ValidationAction{},
	}
	participants := &memParticipantStore{employees: map[string]*models.Employee{
		"emp-1": {ID: "emp-1", InstitutionID: "inst-1", Status: models.EmployeeStatusAvailable},
	}}
	missionService := service.NewMissionService(
		store, participants, memAssignmentStore{}, &memTrailStore{store: store},
		nil, nil,
		config.WorkflowConfig{AllowEmptyLogistics: true, LockWait: 100 * time.Millisecond},
	)

	missionHandler := NewMissionHandler(missionService)

	router := gin.New()
	api := router.Group("/api/v1")
	api.POST("/auth/login", NewAuthHandler(authService).Login)

	authed := api.Group("")
	authed.Use(middleware.JWT(authService))
	authed.POST("/missions", middleware.RequireRoles(models.RoleHRAdmin, models.RoleSuperAdmin), missionHandler.Create)
	authed.GET("/missions/:id", missionHandler.Get)
	authed.POST("/missions/:id/submit", middleware.RequireRoles(models.RoleHRAdmin, models.RoleSuperAdmin), missionHandler.Submit)
	authed.POST("/missions/:id/validate/technical", missionHandler.Decide(models.MissionStatusPendingTechnical))
	authed.POST("/missions/:id/validate/logistics", missionHandler.Decide(models.MissionStatusPendingLogistics))
	authed.POST("/missions/:id/validate/finance", missionHandler.Decide(models.MissionStatusPendingFinance))
	authed.POST("/missions/:id/validate/dg", missionHandler.Decide(models.MissionStatusPendingDG))

	tokens := make(map[models.UserRole]string, len(roles))
	for _, role := range roles {
		body, _ := json.Marshal(map[string]string{
			"email":    fmt.Sprintf("%s@test.mr", role),
			"password": "pass",
		})
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", bytes.NewReader(body))
		router.ServeHTTP(rec, req)
		require.Equal(t, http.StatusOK, rec.Code)

		var envelope struct {
			Data models.LoginResponse `json:"data"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
		tokens[role] = envelope.Data.AccessToken
	}

	return &missionRouterFixture{router: router, store: store, tokens: tokens}
}

func (f *missionRouterFixture) do(method, path string, payload interface{}, role models.UserRole) *httptest.ResponseRecorder {
	var body *bytes.Reader
	if payload != nil {
		raw, _ := json.Marshal(payload)
		body = bytes.NewReader(raw)
	} else {
		body = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, body)
	if role != "" {
		req.Header.Set("Authorization", "Bearer "+f.tokens[role])
	}
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)
	return rec
}

func TestMissionRoutesRequireAuth(t *testing.T) {
	f := newMissionRouterFixture(t)

	rec := f.do(http.MethodPost, "/api/v1/missions", gin.H{}, "")
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestMissionRoutesRBACGate(t *testing.T) {
	f := newMissionRouterFixture(t)

	rec := f.do(http.MethodPost, "/api/v1/missions", gin.H{}, models.RoleTechnical)
	require.Equal(t, http.StatusForbidden, rec.Code)
}

func TestMissionCreateAndValidateFlow(t *testing.T) {
	f := newMissionRouterFixture(t)
	departure := time.Now().UTC().AddDate(0, 0, 7).Format("2006-01-02")
	ret := time.Now().UTC().AddDate(0, 0, 10).Format("2006-01-02")

	rec := f.do(http.MethodPost, "/api/v1/missions", gin.H{
		"object":          "Field inspection",
		"departure_date":  departure,
		"return_date":     ret,
		"participant_ids": []string{"emp-1"},
	}, models.RoleHRAdmin)
	require.Equal(t, http.StatusCreated, rec.Code)

	var created struct {
		Data models.Mission `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	id := created.Data.ID
	require.NotEmpty(t, id)
	require.Equal(t, models.MissionStatusDraft, created.Data.Status)

	rec = f.do(http.MethodPost, "/api/v1/missions/"+id+"/submit", nil, models.RoleHRAdmin)
	require.Equal(t, http.StatusOK, rec.Code)

	steps := []struct {
		path string
		role models.UserRole
	}{
		{"/validate/technical", models.RoleTechnical},
		{"/validate/logistics", models.RoleLogistics},
		{"/validate/finance", models.RoleFinance},
		{"/validate/dg", models.RoleDG},
	}
	for _, step := range steps {
		rec = f.do(http.MethodPost, "/api/v1/missions/"+id+step.path, gin.H{"action": "APPROVE"}, step.role)
		require.Equal(t, http.StatusOK, rec.Code, "step %s", step.path)
	}

	rec = f.do(http.MethodGet, "/api/v1/missions/"+id, nil, models.RoleHRAdmin)
	require.Equal(t, http.StatusOK, rec.Code)
	var final struct {
		Data models.Mission `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &final))
	require.Equal(t, models.MissionStatusValidated, final.Data.Status)
}

func TestMissionValidateOutOfOrderIsStale(t *testing.T) {
	f := newMissionRouterFixture(t)
	departure := time.Now().UTC().AddDate(0, 0, 7).Format("2006-01-02")
	ret := time.Now().UTC().AddDate(0, 0, 10).Format("2006-01-02")

	rec := f.do(http.MethodPost, "/api/v1/missions", gin.H{
		"object":          "Field inspection",
		"departure_date":  departure,
		"return_date":     ret,
		"participant_ids": []string{"emp-1"},
	}, models.RoleHRAdmin)
	require.Equal(t, http.StatusCreated, rec.Code)
	var created struct {
		Data models.Mission `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))

	// finance decision against a DRAFT mission fails as a stale transition
	rec = f.do(http.MethodPost, "/api/v1/missions/"+created.Data.ID+"/validate/finance", gin.H{"action": "APPROVE"}, models.RoleFinance)
	require.Equal(t, http.StatusConflict, rec.Code)
}
