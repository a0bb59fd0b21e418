package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/campusboard/portal-api/internal/service"
	appErrors "github.com/campusboard/portal-api/pkg/errors"
	"github.com/campusboard/portal-api/pkg/response"
)

// RoutineHandler wires HTTP endpoints to the routine service.
type RoutineHandler struct {
	service *service.RoutineService
}

// NewRoutineHandler creates a new handler.
func NewRoutineHandler(svc *service.RoutineService) *RoutineHandler {
	return &RoutineHandler{service: svc}
}

// List godoc
// @Summary List routines
// @Tags Routines
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /routines [get]
func (h *RoutineHandler) List(c *gin.Context) {
	rows, err := h.service.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, rows, nil)
}

// Get godoc
// @Summary Get a routine
// @Tags Routines
// @Produce json
// @Param id path int true "Routine ID"
// @Success 200 {object} response.Envelope
// @Router /routines/{id} [get]
func (h *RoutineHandler) Get(c *gin.Context) {
	id, err := idParam(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	routine, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, routine, nil)
}

// Create godoc
// @Summary Create a routine
// @Tags Routines
// @Accept json
// @Produce json
// @Param payload body service.RoutineRequest true "Routine payload"
// @Success 201 {object} response.Envelope
// @Failure 423 {object} response.Envelope
// @Router /routines [post]
func (h *RoutineHandler) Create(c *gin.Context) {
	var req service.RoutineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid routine payload"))
		return
	}
	routine, err := h.service.Create(c.Request.Context(), currentClaims(c), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, routine)
}

// Update godoc
// @Summary Update a routine
// @Tags Routines
// @Accept json
// @Produce json
// @Param id path int true "Routine ID"
// @Param payload body service.RoutineRequest true "Routine payload"
// @Success 200 {object} response.Envelope
// @Failure 423 {object} response.Envelope
// @Router /routines/{id} [put]
func (h *RoutineHandler) Update(c *gin.Context) {
	id, err := idParam(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	var req service.RoutineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid routine payload"))
		return
	}
	routine, err := h.service.Update(c.Request.Context(), currentClaims(c), id, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, routine, nil)
}

// Delete godoc
// @Summary Delete a routine
// @Tags Routines
// @Produce json
// @Param id path int true "Routine ID"
// @Success 204 {object} response.Envelope
// @Failure 423 {object} response.Envelope
// @Router /routines/{id} [delete]
func (h *RoutineHandler) Delete(c *gin.Context) {
	id, err := idParam(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	if err := h.service.Delete(c.Request.Context(), currentClaims(c), id); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
