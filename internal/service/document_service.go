package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/lahah11/finale-anesp-sub001/internal/models"
	"github.com/lahah11/finale-anesp-sub001/pkg/config"
	appErrors "github.com/lahah11/finale-anesp-sub001/pkg/errors"
	"github.com/lahah11/finale-anesp-sub001/pkg/export"
	"github.com/lahah11/finale-anesp-sub001/pkg/jobs"
	"github.com/lahah11/finale-anesp-sub001/pkg/storage"
)

type documentMissionStore interface {
	GetByID(ctx context.Context, id string) (*models.Mission, error)
	GetDocument(ctx context.Context, missionID string) (*models.MissionDocument, error)
	SaveDocument(ctx context.Context, doc *models.MissionDocument) error
}

type userDirectory interface {
	FindByID(ctx context.Context, id string) (*models.User, error)
}

type documentFiles interface {
	Save(relPath string, data []byte) (string, error)
	Open(relPath string) (*os.File, error)
	Exists(relPath string) bool
}

type orderRenderer interface {
	Render(data export.MissionOrderData) ([]byte, error)
}

type orderMailer interface {
	SendMissionOrder(to []string, reference string, pdf []byte) error
}

const jobTypeRenderOrder = "render_mission_order"

// DocumentService renders the official mission order once a mission reaches
// VALIDATED, stores the PDF, records it, and emails it out. The trigger is
// at-least-once, so every step here is idempotent.
type DocumentService struct {
	missions     documentMissionStore
	employees    participantStore
	assignments  assignmentStore
	trail        trailStore
	institutions institutionStore
	users        userDirectory
	renderer     orderRenderer
	files        documentFiles
	signer       *storage.SignedURLSigner
	mailer       orderMailer
	queue        *jobs.Queue
	logger       *zap.Logger
}

// NewDocumentService constructs the service and its worker queue.
func NewDocumentService(
	missions documentMissionStore,
	employees participantStore,
	assignments assignmentStore,
	trail trailStore,
	institutions institutionStore,
	users userDirectory,
	renderer orderRenderer,
	files documentFiles,
	signer *storage.SignedURLSigner,
	mailer orderMailer,
	cfg config.DocumentsConfig,
	logger *zap.Logger,
) *DocumentService {
	if logger == nil {
		logger = zap.NewNop()
	}
	svc := &DocumentService{
		missions:     missions,
		employees:    employees,
		assignments:  assignments,
		trail:        trail,
		institutions: institutions,
		users:        users,
		renderer:     renderer,
		files:        files,
		signer:       signer,
		mailer:       mailer,
		logger:       logger,
	}
	svc.queue = jobs.NewQueue("documents", svc.handleJob, jobs.QueueConfig{
		Workers:    cfg.WorkerConcurrency,
		MaxRetries: cfg.WorkerRetries,
		Logger:     logger,
	})
	return svc
}

// Start begins background rendering.
func (s *DocumentService) Start(ctx context.Context) { s.queue.Start(ctx) }

// Stop drains the worker pool.
func (s *DocumentService) Stop() { s.queue.Stop() }

// MissionValidated implements DocumentTrigger.
func (s *DocumentService) MissionValidated(missionID string) error {
	return s.queue.Enqueue(jobs.Job{
		ID:      uuid.NewString(),
		Type:    jobTypeRenderOrder,
		Payload: missionID,
	})
}

func (s *DocumentService) handleJob(ctx context.Context, job jobs.Job) error {
	if job.Type != jobTypeRenderOrder {
		s.logger.Warn("unknown job type", zap.String("type", job.Type))
		return nil
	}
	missionID, ok := job.Payload.(string)
	if !ok || missionID == "" {
		s.logger.Warn("render job without mission id", zap.String("job_id", job.ID))
		return nil
	}
	return s.render(ctx, missionID)
}

func (s *DocumentService) render(ctx context.Context, missionID string) error {
	mission, err := s.missions.GetByID(ctx, missionID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			s.logger.Warn("render trigger for unknown mission", zap.String("mission_id", missionID))
			return nil
		}
		return fmt.Errorf("load mission %s: %w", missionID, err)
	}
	switch mission.Status {
	case models.MissionStatusValidated, models.MissionStatusArchived,
		models.MissionStatusCompleted, models.MissionStatusClosed:
	default:
		// stale trigger, the mission left VALIDATED before we got here
		return nil
	}

	relPath := documentPath(mission)
	if existing, err := s.missions.GetDocument(ctx, missionID); err == nil && s.files.Exists(existing.RelPath) {
		return nil
	}

	employees, err := s.employees.ListByIDs(ctx, []string(mission.ParticipantIDs))
	if err != nil {
		return fmt.Errorf("load participants: %w", err)
	}
	institution, err := s.institutions.GetByID(ctx, mission.InstitutionID)
	if err != nil {
		return fmt.Errorf("load institution: %w", err)
	}
	actions, err := s.trail.ListByMission(ctx, missionID)
	if err != nil {
		return fmt.Errorf("load validation trail: %w", err)
	}

	data := export.MissionOrderData{
		Reference:       mission.Reference,
		InstitutionName: institution.Name,
		Object:          mission.Object,
		DepartureDate:   mission.DepartureDate,
		ReturnDate:      mission.ReturnDate,
		EstimatedCosts:  mission.EstimatedCosts,
		ValidatedAt:     time.Now().UTC(),
	}
	for _, employee := range employees {
		data.Participants = append(data.Participants, export.MissionOrderParticipant{
			Matricule: employee.Matricule,
			FullName:  employee.FullName,
			Position:  employee.Position,
		})
	}
	for _, action := range actions {
		if action.Action != models.ValidationActionApprove {
			continue
		}
		name := action.ActorID
		if user, err := s.users.FindByID(ctx, action.ActorID); err == nil {
			name = user.FullName
		}
		data.Validations = append(data.Validations, export.MissionOrderValidation{
			Role:      string(action.ActorRole),
			ActorName: name,
			Date:      action.CreatedAt,
		})
		if action.ToStatus == models.MissionStatusValidated {
			data.ValidatedAt = action.CreatedAt
		}
	}
	if assignment, err := s.assignments.GetByMission(ctx, missionID); err == nil && assignment != nil {
		if assignment.VehicleID != nil {
			if vehicle, err := s.assignments.GetVehicle(ctx, *assignment.VehicleID); err == nil {
				data.Vehicle = vehicle.Registration
			}
		}
		if assignment.DriverID != nil {
			if driver, err := s.assignments.GetDriver(ctx, *assignment.DriverID); err == nil {
				data.Driver = driver.FullName
			}
		}
		if assignment.TicketRef != nil {
			data.TicketRef = *assignment.TicketRef
		}
	}

	pdf, err := s.renderer.Render(data)
	if err != nil {
		return fmt.Errorf("render mission order %s: %w", mission.Reference, err)
	}
	if _, err := s.files.Save(relPath, pdf); err != nil {
		return fmt.Errorf("store mission order %s: %w", mission.Reference, err)
	}
	if err := s.missions.SaveDocument(ctx, &models.MissionDocument{
		MissionID: missionID,
		RelPath:   relPath,
	}); err != nil {
		return fmt.Errorf("record mission order %s: %w", mission.Reference, err)
	}

	recipients := make([]string, 0, len(employees)+1)
	if institution.Email != "" {
		recipients = append(recipients, institution.Email)
	}
	for _, employee := range employees {
		if employee.Email != "" {
			recipients = append(recipients, employee.Email)
		}
	}
	if s.mailer != nil {
		if err := s.mailer.SendMissionOrder(recipients, mission.Reference, pdf); err != nil {
			// the document is stored; delivery failures must not requeue a re-render
			s.logger.Error("failed to email mission order",
				zap.String("reference", mission.Reference), zap.Error(err))
		}
	}

	s.logger.Info("mission order rendered",
		zap.String("mission_id", missionID),
		zap.String("reference", mission.Reference),
		zap.String("path", relPath))
	return nil
}

// SignedDownloadURL returns a time-limited token for fetching the PDF.
func (s *DocumentService) SignedDownloadURL(ctx context.Context, missionID string, actor models.Actor) (string, time.Time, error) {
	mission, err := s.missions.GetByID(ctx, missionID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", time.Time{}, appErrors.ErrNotFound
		}
		return "", time.Time{}, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load mission")
	}
	if actor.Role != models.RoleSuperAdmin && actor.InstitutionID != mission.InstitutionID {
		return "", time.Time{}, appErrors.ErrForbidden
	}

	doc, err := s.missions.GetDocument(ctx, missionID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", time.Time{}, appErrors.Clone(appErrors.ErrNotFound, "mission order has not been generated yet")
		}
		return "", time.Time{}, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load document record")
	}

	token, expiresAt, err := s.signer.Generate(missionID, doc.RelPath)
	if err != nil {
		return "", time.Time{}, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to sign download url")
	}
	return token, expiresAt, nil
}

// OpenByToken validates a signed token and opens the referenced PDF.
func (s *DocumentService) OpenByToken(token string) (string, *os.File, error) {
	missionID, relPath, _, err := s.signer.Parse(token)
	if err != nil {
		return "", nil, appErrors.Wrap(err, appErrors.ErrForbidden.Code, appErrors.ErrForbidden.Status, "invalid download token")
	}
	file, err := s.files.Open(relPath)
	if err != nil {
		return "", nil, appErrors.Clone(appErrors.ErrNotFound, "mission order file not found")
	}
	return missionID, file, nil
}

func documentPath(mission *models.Mission) string {
	return fmt.Sprintf("%d/%s.pdf", mission.CreatedAt.UTC().Year(), mission.Reference)
}
