package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/campusboard/portal-api/internal/service"
	appErrors "github.com/campusboard/portal-api/pkg/errors"
	"github.com/campusboard/portal-api/pkg/response"
)

// ClassTimeHandler wires HTTP endpoints to the class time service.
type ClassTimeHandler struct {
	service *service.ClassTimeService
}

// NewClassTimeHandler creates a new handler.
func NewClassTimeHandler(svc *service.ClassTimeService) *ClassTimeHandler {
	return &ClassTimeHandler{service: svc}
}

// List godoc
// @Summary List class times
// @Tags ClassTimes
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /class-times [get]
func (h *ClassTimeHandler) List(c *gin.Context) {
	rows, err := h.service.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, rows, nil)
}

// Get godoc
// @Summary Get a class time slot
// @Tags ClassTimes
// @Produce json
// @Param id path int true "Slot ID"
// @Success 200 {object} response.Envelope
// @Router /class-times/{id} [get]
func (h *ClassTimeHandler) Get(c *gin.Context) {
	id, err := idParam(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	slot, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, slot, nil)
}

// Create godoc
// @Summary Create a class time slot
// @Tags ClassTimes
// @Accept json
// @Produce json
// @Param payload body service.ClassTimeRequest true "Slot payload"
// @Success 201 {object} response.Envelope
// @Failure 423 {object} response.Envelope
// @Router /class-times [post]
func (h *ClassTimeHandler) Create(c *gin.Context) {
	var req service.ClassTimeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid class time payload"))
		return
	}
	slot, err := h.service.Create(c.Request.Context(), currentClaims(c), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, slot)
}

// Update godoc
// @Summary Update a class time slot
// @Tags ClassTimes
// @Accept json
// @Produce json
// @Param id path int true "Slot ID"
// @Param payload body service.ClassTimeRequest true "Slot payload"
// @Success 200 {object} response.Envelope
// @Failure 423 {object} response.Envelope
// @Router /class-times/{id} [put]
func (h *ClassTimeHandler) Update(c *gin.Context) {
	id, err := idParam(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	var req service.ClassTimeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid class time payload"))
		return
	}
	slot, err := h.service.Update(c.Request.Context(), currentClaims(c), id, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, slot, nil)
}

// Delete godoc
// @Summary Delete a class time slot
// @Tags ClassTimes
// @Produce json
// @Param id path int true "Slot ID"
// @Success 204 {object} response.Envelope
// @Failure 423 {object} response.Envelope
// @Router /class-times/{id} [delete]
func (h *ClassTimeHandler) Delete(c *gin.Context) {
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
