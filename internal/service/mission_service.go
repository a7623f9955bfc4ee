package service

import (
	"context"
	"crypto/rand"
	"database/sql"
	"encoding/hex"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/lahah11/finale-anesp-sub001/internal/dto"
	"github.com/lahah11/finale-anesp-sub001/internal/models"
	"github.com/lahah11/finale-anesp-sub001/internal/repository"
	"github.com/lahah11/finale-anesp-sub001/internal/workflow"
	"github.com/lahah11/finale-anesp-sub001/pkg/config"
	appErrors "github.com/lahah11/finale-anesp-sub001/pkg/errors"
	"github.com/lahah11/finale-anesp-sub001/pkg/locking"
)

type missionStore interface {
	Create(ctx context.Context, mission *models.Mission) error
	GetByID(ctx context.Context, id string) (*models.Mission, error)
	List(ctx context.Context, filter models.MissionFilter) ([]models.Mission, error)
	Advance(ctx context.Context, params repository.AdvanceParams) error
	CountByStatus(ctx context.Context, institutionID string) ([]models.StatusCount, error)
}

type participantStore interface {
	ListByIDs(ctx context.Context, ids []string) ([]models.Employee, error)
}

type assignmentStore interface {
	Assign(ctx context.Context, params repository.AssignParams) (*models.LogisticsAssignment, error)
	GetByMission(ctx context.Context, missionID string) (*models.LogisticsAssignment, error)
	GetVehicle(ctx context.Context, id string) (*models.Vehicle, error)
	GetDriver(ctx context.Context, id string) (*models.Driver, error)
}

type trailStore interface {
	ListByMission(ctx context.Context, missionID string) ([]models.ValidationAction, error)
}

type missionCache interface {
	Get(ctx context.Context, key string, dest interface{}) error
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	DeleteByPattern(ctx context.Context, pattern string) error
}

type auditLogger interface {
	CreateAuditLog(ctx context.Context, log *models.AuditLog) error
}

type workflowMetrics interface {
	RecordTransition(action, toStatus string)
	RecordConflict(kind string)
	RecordBusy()
	RecordDocumentQueued()
	RecordCacheOperation(hit bool)
}

// DocumentTrigger is notified after a mission reaches VALIDATED. Delivery is
// at-least-once; the consumer tolerates duplicates.
type DocumentTrigger interface {
	MissionValidated(missionID string) error
}

// MissionService orchestrates the mission order approval workflow: drafts,
// step validations, logistics assignment, and post-validation housekeeping.
type MissionService struct {
	repo        missionStore
	employees   participantStore
	assignments assignmentStore
	trail       trailStore
	cache       missionCache
	audit       auditLogger
	metrics     workflowMetrics
	trigger     DocumentTrigger
	locks       *locking.KeyedLock
	validator   *validator.Validate
	logger      *zap.Logger
	cfg         config.WorkflowConfig
}

// MissionServiceOption configures optional collaborators.
type MissionServiceOption func(*MissionService)

// WithMissionMetrics wires the workflow counters.
func WithMissionMetrics(metrics workflowMetrics) MissionServiceOption {
	return func(s *MissionService) { s.metrics = metrics }
}

// WithDocumentTrigger wires the render notification sink.
func WithDocumentTrigger(trigger DocumentTrigger) MissionServiceOption {
	return func(s *MissionService) { s.trigger = trigger }
}

// WithMissionCache wires the Redis-backed read cache.
func WithMissionCache(cache missionCache) MissionServiceOption {
	return func(s *MissionService) { s.cache = cache }
}

// WithMissionAudit wires the audit trail sink.
func WithMissionAudit(audit auditLogger) MissionServiceOption {
	return func(s *MissionService) { s.audit = audit }
}

// NewMissionService constructs the service.
func NewMissionService(
	repo missionStore,
	employees participantStore,
	assignments assignmentStore,
	trail trailStore,
	validate *validator.Validate,
	logger *zap.Logger,
	cfg config.WorkflowConfig,
	opts ...MissionServiceOption,
) *MissionService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	svc := &MissionService{
		repo:        repo,
		employees:   employees,
		assignments: assignments,
		trail:       trail,
		locks:       locking.New(cfg.LockWait),
		validator:   validate,
		logger:      logger,
		cfg:         cfg,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(svc)
		}
	}
	return svc
}

const missionDateLayout = "2006-01-02"

// Create opens a new mission order in DRAFT and claims every participant
// atomically. Any participant already on a mission fails the whole request.
func (s *MissionService) Create(ctx context.Context, req dto.CreateMissionRequest, actor models.Actor) (*models.Mission, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid mission payload")
	}
	if actor.Role != models.RoleHRAdmin && actor.Role != models.RoleSuperAdmin {
		return nil, appErrors.ErrForbidden
	}
	if actor.InstitutionID == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "actor has no institution scope")
	}

	departure, err := time.Parse(missionDateLayout, req.DepartureDate)
	if err != nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, "departure_date must be YYYY-MM-DD")
	}
	ret, err := time.Parse(missionDateLayout, req.ReturnDate)
	if err != nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, "return_date must be YYYY-MM-DD")
	}
	today := time.Now().UTC().Truncate(24 * time.Hour)
	if !departure.After(today) {
		return nil, appErrors.Clone(appErrors.ErrValidation, "departure_date must be in the future")
	}
	if ret.Before(departure) {
		return nil, appErrors.Clone(appErrors.ErrValidation, "return_date cannot precede departure_date")
	}

	participantIDs := dedupe(req.ParticipantIDs)
	employees, err := s.employees.ListByIDs(ctx, participantIDs)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load participants")
	}
	if len(employees) != len(participantIDs) {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "one or more participants do not exist")
	}
	for _, employee := range employees {
		if employee.InstitutionID != actor.InstitutionID {
			return nil, appErrors.Clone(appErrors.ErrForbidden, "participant belongs to another institution")
		}
		// friendly precheck; the claim query is the authoritative guard
		if employee.Status != models.EmployeeStatusAvailable {
			s.recordConflict("employee")
			return nil, appErrors.ErrEmployeeUnavailable
		}
	}

	reference, err := generateReference()
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to generate reference")
	}

	mission := &models.Mission{
		Reference:      reference,
		InstitutionID:  actor.InstitutionID,
		CreatedBy:      actor.UserID,
		Object:         strings.TrimSpace(req.Object),
		DepartureDate:  departure,
		ReturnDate:     ret,
		Status:         models.MissionStatusDraft,
		CurrentStep:    workflow.StepFor(models.MissionStatusDraft),
		EstimatedCosts: req.EstimatedCosts,
		ParticipantIDs: participantIDs,
	}

	lockKeys := append([]string(nil), participantIDs...)
	sort.Strings(lockKeys)
	if !s.locks.AcquireAll(lockKeys) {
		s.recordBusy()
		return nil, appErrors.ErrBusy
	}
	defer s.locks.ReleaseAll(lockKeys)

	if err := s.repo.Create(ctx, mission); err != nil {
		if appErrors.Is(err, appErrors.ErrEmployeeUnavailable) {
			s.recordConflict("employee")
			return nil, err
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create mission")
	}

	s.invalidateCache(ctx, mission.ID)
	s.emitAudit(ctx, actor, models.AuditActionMissionCreate, mission.ID,
		[]byte(fmt.Sprintf(`{"reference":%q,"participants":%d}`, mission.Reference, len(participantIDs))))
	s.logger.Info("mission created",
		zap.String("mission_id", mission.ID),
		zap.String("reference", mission.Reference),
		zap.Int("participants", len(participantIDs)))
	return mission, nil
}

// Get returns one mission enforcing institution scope.
func (s *MissionService) Get(ctx context.Context, id string, actor models.Actor) (*models.Mission, error) {
	mission, err := s.loadMission(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.canView(actor, mission); err != nil {
		return nil, err
	}
	return mission, nil
}

// List returns missions visible to the actor. Everyone is scoped to their
// own institution except SUPERADMIN, who sees across institutions.
func (s *MissionService) List(ctx context.Context, query dto.MissionQuery, actor models.Actor) ([]models.Mission, error) {
	filter := models.MissionFilter{
		Status:   query.Status,
		Page:     query.Page,
		PageSize: query.PageSize,
	}
	if actor.Role != models.RoleSuperAdmin {
		if actor.InstitutionID == "" {
			return nil, appErrors.ErrForbidden
		}
		filter.InstitutionID = actor.InstitutionID
	}
	missions, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list missions")
	}
	return missions, nil
}

// History returns the mission's ordered validation trail.
func (s *MissionService) History(ctx context.Context, id string, actor models.Actor) ([]dto.MissionHistoryEntry, error) {
	mission, err := s.loadMission(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.canView(actor, mission); err != nil {
		return nil, err
	}

	cacheKey := "missions:history:" + id
	if s.cache != nil {
		var cached []dto.MissionHistoryEntry
		if err := s.cache.Get(ctx, cacheKey, &cached); err == nil {
			s.recordCache(true)
			return cached, nil
		}
		s.recordCache(false)
	}

	actions, err := s.trail.ListByMission(ctx, id)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load mission history")
	}
	entries := make([]dto.MissionHistoryEntry, 0, len(actions))
	for _, action := range actions {
		entries = append(entries, dto.MissionHistoryEntry{
			ActorID:         action.ActorID,
			ActorRole:       action.ActorRole,
			FromStatus:      action.FromStatus,
			ToStatus:        action.ToStatus,
			Action:          action.Action,
			RejectionReason: action.RejectionReason,
			Timestamp:       action.CreatedAt.UTC().Format(time.RFC3339),
		})
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, cacheKey, entries, s.cfg.CacheTTL); err != nil {
			s.logger.Warn("failed to cache mission history", zap.Error(err))
		}
	}
	return entries, nil
}

// Submit moves a draft into the approval chain.
func (s *MissionService) Submit(ctx context.Context, id string, actor models.Actor) (*models.Mission, error) {
	return s.transition(ctx, id, models.MissionStatusDraft, workflow.ActionApprove, nil, nil, actor)
}

// Decide applies an approve/reject decision at the given pending step.
func (s *MissionService) Decide(ctx context.Context, id string, step models.MissionStatus, req dto.ValidationRequest, actor models.Actor) (*models.Mission, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid validation payload")
	}

	var action workflow.Action
	var reason *string
	var costs *float64
	switch req.Action {
	case models.ValidationActionApprove:
		action = workflow.ActionApprove
		if step == models.MissionStatusPendingFinance {
			costs = req.EstimatedCosts
		}
	case models.ValidationActionReject:
		action = workflow.ActionReject
		trimmed := strings.TrimSpace(req.Reason)
		if trimmed == "" {
			return nil, appErrors.ErrMissingRejectionReason
		}
		reason = &trimmed
	default:
		return nil, appErrors.Clone(appErrors.ErrValidation, "action must be APPROVE or REJECT")
	}

	return s.transition(ctx, id, step, action, reason, costs, actor)
}

// Archive parks a validated mission.
func (s *MissionService) Archive(ctx context.Context, id string, actor models.Actor) (*models.Mission, error) {
	return s.transition(ctx, id, models.MissionStatusValidated, workflow.ActionArchive, nil, nil, actor)
}

// Complete marks a validated mission as carried out.
func (s *MissionService) Complete(ctx context.Context, id string, actor models.Actor) (*models.Mission, error) {
	return s.transition(ctx, id, models.MissionStatusValidated, workflow.ActionComplete, nil, nil, actor)
}

// Close finishes a completed mission and frees its participants.
func (s *MissionService) Close(ctx context.Context, id string, actor models.Actor) (*models.Mission, error) {
	return s.transition(ctx, id, models.MissionStatusCompleted, workflow.ActionClose, nil, nil, actor)
}

// AssignLogistics binds a vehicle/driver/ticket to a mission sitting at the
// logistics step. Overlapping bookings of the same vehicle or driver on
// another active mission are refused as RESOURCE_CONFLICT.
func (s *MissionService) AssignLogistics(ctx context.Context, id string, req dto.AssignLogisticsRequest, actor models.Actor) (*models.LogisticsAssignment, error) {
	// Lock the resources alongside the mission: the repository's row locks
	// only cover assignments that already exist, so two first-time claims of
	// the same vehicle or driver would otherwise both see zero conflicts.
	lockKeys := []string{id}
	if req.VehicleID != nil {
		lockKeys = append(lockKeys, *req.VehicleID)
	}
	if req.DriverID != nil {
		lockKeys = append(lockKeys, *req.DriverID)
	}
	sort.Strings(lockKeys)
	if !s.locks.AcquireAll(lockKeys) {
		s.recordBusy()
		return nil, appErrors.ErrBusy
	}
	defer s.locks.ReleaseAll(lockKeys)

	mission, err := s.loadMission(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := workflow.AuthorizeAssignment(actor, mission); err != nil {
		return nil, err
	}
	if mission.Status != models.MissionStatusPendingLogistics {
		return nil, appErrors.Clone(appErrors.ErrInvalidAction, "logistics can only be assigned while the mission awaits logistics validation")
	}

	if req.VehicleID != nil {
		vehicle, err := s.assignments.GetVehicle(ctx, *req.VehicleID)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return nil, appErrors.Clone(appErrors.ErrNotFound, "vehicle not found")
			}
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load vehicle")
		}
		if !vehicle.Active || vehicle.InstitutionID != mission.InstitutionID {
			return nil, appErrors.Clone(appErrors.ErrValidation, "vehicle is not available to this institution")
		}
	}
	if req.DriverID != nil {
		driver, err := s.assignments.GetDriver(ctx, *req.DriverID)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return nil, appErrors.Clone(appErrors.ErrNotFound, "driver not found")
			}
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load driver")
		}
		if !driver.Active || driver.InstitutionID != mission.InstitutionID {
			return nil, appErrors.Clone(appErrors.ErrValidation, "driver is not available to this institution")
		}
	}

	assignment, err := s.assignments.Assign(ctx, repository.AssignParams{
		MissionID:     mission.ID,
		VehicleID:     req.VehicleID,
		DriverID:      req.DriverID,
		TicketRef:     req.TicketRef,
		AssignedBy:    actor.UserID,
		DepartureDate: mission.DepartureDate,
		ReturnDate:    mission.ReturnDate,
	})
	if err != nil {
		if appErrors.Is(err, appErrors.ErrResourceConflict) {
			s.recordConflict("resource")
			return nil, err
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to assign logistics")
	}

	s.invalidateCache(ctx, mission.ID)
	s.emitAudit(ctx, actor, models.AuditActionLogisticsAssign, mission.ID, nil)
	return assignment, nil
}

// Dashboard aggregates the institution's missions by status.
func (s *MissionService) Dashboard(ctx context.Context, institutionID string, actor models.Actor) (*dto.DashboardSummary, error) {
	if actor.Role != models.RoleSuperAdmin {
		institutionID = actor.InstitutionID
	}
	if institutionID == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "institution_id is required")
	}

	cacheKey := "missions:dashboard:" + institutionID
	if s.cache != nil {
		var cached dto.DashboardSummary
		if err := s.cache.Get(ctx, cacheKey, &cached); err == nil {
			s.recordCache(true)
			return &cached, nil
		}
		s.recordCache(false)
	}

	counts, err := s.repo.CountByStatus(ctx, institutionID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to aggregate missions")
	}
	summary := &dto.DashboardSummary{
		InstitutionID: institutionID,
		ByStatus:      make(map[models.MissionStatus]int, len(counts)),
	}
	for _, count := range counts {
		summary.ByStatus[count.Status] = count.Count
		summary.Total += count.Count
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, cacheKey, summary, s.cfg.CacheTTL); err != nil {
			s.logger.Warn("failed to cache dashboard summary", zap.Error(err))
		}
	}
	return summary, nil
}

// transition applies one workflow edge under the per-mission lock. The
// expectedFrom guard surfaces concurrent status changes as STALE_TRANSITION
// before any write; the guarded UPDATE in the repository backstops it.
func (s *MissionService) transition(
	ctx context.Context,
	missionID string,
	expectedFrom models.MissionStatus,
	action workflow.Action,
	reason *string,
	estimatedCosts *float64,
	actor models.Actor,
) (*models.Mission, error) {
	if !s.acquireWithRetries(missionID) {
		return nil, appErrors.ErrBusy
	}
	defer s.locks.Release(missionID)

	mission, err := s.loadMission(ctx, missionID)
	if err != nil {
		return nil, err
	}
	if mission.Status != expectedFrom {
		s.recordConflict("stale")
		return nil, appErrors.ErrStaleTransition
	}

	to, err := workflow.Resolve(mission.Status, action)
	if err != nil {
		return nil, err
	}
	if err := workflow.Authorize(actor, mission, workflow.Transition{From: mission.Status, Action: action}); err != nil {
		return nil, err
	}

	if mission.Status == models.MissionStatusPendingLogistics && action == workflow.ActionApprove && !s.cfg.AllowEmptyLogistics {
		assignment, err := s.assignments.GetByMission(ctx, mission.ID)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load logistics assignment")
		}
		if assignment == nil {
			return nil, appErrors.Clone(appErrors.ErrInvalidAction, "a logistics assignment is required before approval")
		}
	}

	kind := models.ValidationActionApprove
	if action == workflow.ActionReject {
		kind = models.ValidationActionReject
	}
	err = s.repo.Advance(ctx, repository.AdvanceParams{
		MissionID:        mission.ID,
		FromStatus:       mission.Status,
		ToStatus:         to,
		ToStep:           workflow.StepFor(to),
		ReleaseEmployees: workflow.ReleasesEmployees(to),
		EstimatedCosts:   estimatedCosts,
		Action: models.ValidationAction{
			MissionID:       mission.ID,
			ActorID:         actor.UserID,
			ActorRole:       actor.Role,
			FromStatus:      mission.Status,
			ToStatus:        to,
			Action:          kind,
			RejectionReason: reason,
		},
	})
	if err != nil {
		if appErrors.Is(err, appErrors.ErrStaleTransition) {
			s.recordConflict("stale")
			return nil, err
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to apply transition")
	}

	if s.metrics != nil {
		s.metrics.RecordTransition(string(action), string(to))
	}
	if workflow.EmitsDocumentTrigger(to) && s.trigger != nil {
		if err := s.trigger.MissionValidated(mission.ID); err != nil {
			// the mission stays VALIDATED; rendering catches up on retry
			s.logger.Error("failed to enqueue document render", zap.String("mission_id", mission.ID), zap.Error(err))
		} else if s.metrics != nil {
			s.metrics.RecordDocumentQueued()
		}
	}

	s.invalidateCache(ctx, mission.ID)
	s.emitAudit(ctx, actor, models.AuditActionMissionTransition, mission.ID,
		[]byte(fmt.Sprintf(`{"from":%q,"to":%q,"action":%q}`, mission.Status, to, action)))
	s.logger.Info("mission transition applied",
		zap.String("mission_id", mission.ID),
		zap.String("from", string(mission.Status)),
		zap.String("to", string(to)),
		zap.String("actor", actor.UserID))

	mission.Status = to
	mission.CurrentStep = workflow.StepFor(to)
	if estimatedCosts != nil {
		mission.EstimatedCosts = estimatedCosts
	}
	mission.UpdatedAt = time.Now().UTC()
	return mission, nil
}

func (s *MissionService) acquireWithRetries(key string) bool {
	attempts := s.cfg.BusyRetries + 1
	if attempts < 1 {
		attempts = 1
	}
	for i := 0; i < attempts; i++ {
		if s.locks.Acquire(key) {
			return true
		}
	}
	s.recordBusy()
	return false
}

func (s *MissionService) loadMission(ctx context.Context, id string) (*models.Mission, error) {
	mission, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.ErrNotFound
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load mission")
	}
	return mission, nil
}

func (s *MissionService) canView(actor models.Actor, mission *models.Mission) error {
	if actor.Role == models.RoleSuperAdmin {
		return nil
	}
	if actor.InstitutionID == "" || actor.InstitutionID != mission.InstitutionID {
		return appErrors.ErrForbidden
	}
	return nil
}

func (s *MissionService) invalidateCache(ctx context.Context, missionID string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.DeleteByPattern(ctx, "missions:*"); err != nil {
		s.logger.Warn("failed to invalidate mission cache", zap.String("mission_id", missionID), zap.Error(err))
	}
}

func (s *MissionService) emitAudit(ctx context.Context, actor models.Actor, action, missionID string, values []byte) {
	if s.audit == nil {
		return
	}
	log := &models.AuditLog{
		UserID:     &actor.UserID,
		Action:     action,
		Resource:   "mission",
		ResourceID: &missionID,
		NewValues:  values,
		IPAddress:  "system",
		UserAgent:  "mission-service",
	}
	if err := s.audit.CreateAuditLog(ctx, log); err != nil {
		s.logger.Warn("failed to persist audit log", zap.Error(err))
	}
}

func (s *MissionService) recordConflict(kind string) {
	if s.metrics != nil {
		s.metrics.RecordConflict(kind)
	}
}

func (s *MissionService) recordBusy() {
	if s.metrics != nil {
		s.metrics.RecordBusy()
	}
}

func (s *MissionService) recordCache(hit bool) {
	if s.metrics != nil {
		s.metrics.RecordCacheOperation(hit)
	}
}

func dedupe(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

func generateReference() (string, error) {
	buf := make([]byte, 3)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return fmt.Sprintf("OM-%d-%s", time.Now().UTC().Year(), hex.EncodeToString(buf)), nil
}
