package handler

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/lahah11/finale-anesp-sub001/internal/dto"
	"github.com/lahah11/finale-anesp-sub001/internal/models"
	"github.com/lahah11/finale-anesp-sub001/internal/service"
	appErrors "github.com/lahah11/finale-anesp-sub001/pkg/errors"
	"github.com/lahah11/finale-anesp-sub001/pkg/response"
)

// MissionHandler wires HTTP endpoints to the mission workflow service.
type MissionHandler struct {
	service *service.MissionService
}

// NewMissionHandler creates a new handler.
func NewMissionHandler(svc *service.MissionService) *MissionHandler {
	return &MissionHandler{service: svc}
}

// Create godoc
// @Summary Create mission order
// @Description Create a mission order in DRAFT and claim its participants
// @Tags Missions
// @Accept json
// @Produce json
// @Param payload body dto.CreateMissionRequest true "Mission payload"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /missions [post]
func (h *MissionHandler) Create(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	var req dto.CreateMissionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid mission payload"))
		return
	}

	mission, err := h.service.Create(c.Request.Context(), req, claims.Actor())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, mission)
}

// List godoc
// @Summary List mission orders
// @Description List mission orders visible to the caller
// @Tags Missions
// @Produce json
// @Param status query string false "Comma-separated status filter"
// @Param page query int false "Page"
// @Param page_size query int false "Page size"
// @Success 200 {object} response.Envelope
// @Router /missions [get]
func (h *MissionHandler) List(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	query := dto.MissionQuery{}
	if raw := c.Query("status"); raw != "" {
		for _, s := range strings.Split(raw, ",") {
			if s = strings.TrimSpace(s); s != "" {
				query.Status = append(query.Status, models.MissionStatus(s))
			}
		}
	}
	query.Page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	query.PageSize, _ = strconv.Atoi(c.DefaultQuery("page_size", "20"))

	missions, err := h.service.List(c.Request.Context(), query, claims.Actor())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, missions, nil)
}

// Get godoc
// @Summary Get mission order
// @Tags Missions
// @Produce json
// @Param id path string true "Mission ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /missions/{id} [get]
func (h *MissionHandler) Get(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	mission, err := h.service.Get(c.Request.Context(), c.Param("id"), claims.Actor())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, mission, nil)
}

// History godoc
// @Summary Mission validation trail
// @Description Chronological approve/reject history for a mission
// @Tags Missions
// @Produce json
// @Param id path string true "Mission ID"
// @Success 200 {object} response.Envelope
// @Router /missions/{id}/history [get]
func (h *MissionHandler) History(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	trail, err := h.service.History(c.Request.Context(), c.Param("id"), claims.Actor())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, trail, nil)
}

// Dashboard godoc
// @Summary Mission dashboard
// @Description Mission counts by status for the caller's institution
// @Tags Missions
// @Produce json
// @Param institution_id query string false "Institution (SUPERADMIN only)"
// @Success 200 {object} response.Envelope
// @Router /missions/dashboard [get]
func (h *MissionHandler) Dashboard(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	institutionID := c.Query("institution_id")
	if institutionID == "" {
		institutionID = claims.InstitutionID
	}

	summary, err := h.service.Dashboard(c.Request.Context(), institutionID, claims.Actor())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, summary, nil)
}

// Submit godoc
// @Summary Submit mission for validation
// @Description Move a DRAFT mission into the technical validation step
// @Tags Missions
// @Produce json
// @Param id path string true "Mission ID"
// @Success 200 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /missions/{id}/submit [post]
func (h *MissionHandler) Submit(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	mission, err := h.service.Submit(c.Request.Context(), c.Param("id"), claims.Actor())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, mission, nil)
}

// Decide returns a handler resolving the approve/reject decision for one
// fixed validation step. Each route is bound to the status it validates, so
// a decision posted against a mission that has already moved on fails as a
// stale transition rather than acting on the wrong step.
func (h *MissionHandler) Decide(step models.MissionStatus) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := claimsFromContext(c)
		if claims == nil {
			response.Error(c, appErrors.ErrUnauthorized)
			return
		}

		var req dto.ValidationRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid validation payload"))
			return
		}

		mission, err := h.service.Decide(c.Request.Context(), c.Param("id"), step, req, claims.Actor())
		if err != nil {
			response.Error(c, err)
			return
		}
		response.JSON(c, http.StatusOK, mission, nil)
	}
}

// AssignLogistics godoc
// @Summary Assign logistics resources
// @Description Bind a vehicle, driver, or ticket to a mission at the logistics step
// @Tags Missions
// @Accept json
// @Produce json
// @Param id path string true "Mission ID"
// @Param payload body dto.AssignLogisticsRequest true "Assignment payload"
// @Success 200 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /missions/{id}/logistics [put]
func (h *MissionHandler) AssignLogistics(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	var req dto.AssignLogisticsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid assignment payload"))
		return
	}

	assignment, err := h.service.AssignLogistics(c.Request.Context(), c.Param("id"), req, claims.Actor())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, assignment, nil)
}

// Archive godoc
// @Summary Archive mission
// @Tags Missions
// @Produce json
// @Param id path string true "Mission ID"
// @Success 200 {object} response.Envelope
// @Router /missions/{id}/archive [post]
func (h *MissionHandler) Archive(c *gin.Context) {
	h.housekeeping(c, h.service.Archive)
}

// Complete godoc
// @Summary Mark mission completed
// @Tags Missions
// @Produce json
// @Param id path string true "Mission ID"
// @Success 200 {object} response.Envelope
// @Router /missions/{id}/complete [post]
func (h *MissionHandler) Complete(c *gin.Context) {
	h.housekeeping(c, h.service.Complete)
}

// Close godoc
// @Summary Close mission
// @Tags Missions
// @Produce json
// @Param id path string true "Mission ID"
// @Success 200 {object} response.Envelope
// @Router /missions/{id}/close [post]
func (h *MissionHandler) Close(c *gin.Context) {
	h.housekeeping(c, h.service.Close)
}

func (h *MissionHandler) housekeeping(c *gin.Context, fn func(ctx context.Context, id string, actor models.Actor) (*models.Mission, error)) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	mission, err := fn(c.Request.Context(), c.Param("id"), claims.Actor())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, mission, nil)
}
