package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/lahah11/finale-anesp-sub001/internal/dto"
	"github.com/lahah11/finale-anesp-sub001/internal/service"
	appErrors "github.com/lahah11/finale-anesp-sub001/pkg/errors"
	"github.com/lahah11/finale-anesp-sub001/pkg/response"
)

// FleetHandler manages the vehicle and driver rosters.
type FleetHandler struct {
	service *service.FleetService
}

// NewFleetHandler creates a new handler.
func NewFleetHandler(svc *service.FleetService) *FleetHandler {
	return &FleetHandler{service: svc}
}

// CreateVehicle godoc
// @Summary Add vehicle
// @Tags Fleet
// @Accept json
// @Produce json
// @Param payload body dto.CreateVehicleRequest true "Vehicle payload"
// @Success 201 {object} response.Envelope
// @Router /fleet/vehicles [post]
func (h *FleetHandler) CreateVehicle(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	var req dto.CreateVehicleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid vehicle payload"))
		return
	}

	vehicle, err := h.service.CreateVehicle(c.Request.Context(), req, claims.Actor())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, vehicle)
}

// ListVehicles godoc
// @Summary List vehicles
// @Tags Fleet
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /fleet/vehicles [get]
func (h *FleetHandler) ListVehicles(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	vehicles, err := h.service.ListVehicles(c.Request.Context(), claims.Actor())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, vehicles, nil)
}

// CreateDriver godoc
// @Summary Add driver
// @Tags Fleet
// @Accept json
// @Produce json
// @Param payload body dto.CreateDriverRequest true "Driver payload"
// @Success 201 {object} response.Envelope
// @Router /fleet/drivers [post]
func (h *FleetHandler) CreateDriver(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	var req dto.CreateDriverRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid driver payload"))
		return
	}

	driver, err := h.service.CreateDriver(c.Request.Context(), req, claims.Actor())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, driver)
}

// ListDrivers godoc
// @Summary List drivers
// @Tags Fleet
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /fleet/drivers [get]
func (h *FleetHandler) ListDrivers(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	drivers, err := h.service.ListDrivers(c.Request.Context(), claims.Actor())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, drivers, nil)
}
