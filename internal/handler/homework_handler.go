package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/campusboard/portal-api/internal/service"
	appErrors "github.com/campusboard/portal-api/pkg/errors"
	"github.com/campusboard/portal-api/pkg/response"
)

// HomeworkHandler wires HTTP endpoints to the homework service.
type HomeworkHandler struct {
	service *service.HomeworkService
}

// NewHomeworkHandler creates a new handler.
func NewHomeworkHandler(svc *service.HomeworkService) *HomeworkHandler {
	return &HomeworkHandler{service: svc}
}

// List godoc
// @Summary List homework
// @Tags Homework
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /homework [get]
func (h *HomeworkHandler) List(c *gin.Context) {
	rows, err := h.service.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, rows, nil)
}

// Get godoc
// @Summary Get a homework entry
// @Tags Homework
// @Produce json
// @Param id path int true "Homework ID"
// @Success 200 {object} response.Envelope
// @Router /homework/{id} [get]
func (h *HomeworkHandler) Get(c *gin.Context) {
	id, err := idParam(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	hw, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, hw, nil)
}

// Create godoc
// @Summary Create a homework entry
// @Tags Homework
// @Accept json
// @Produce json
// @Param payload body service.HomeworkRequest true "Homework payload"
// @Success 201 {object} response.Envelope
// @Failure 423 {object} response.Envelope
// @Router /homework [post]
func (h *HomeworkHandler) Create(c *gin.Context) {
	var req service.HomeworkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid homework payload"))
		return
	}
	hw, err := h.service.Create(c.Request.Context(), currentClaims(c), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, hw)
}

// Update godoc
// @Summary Update a homework entry
// @Tags Homework
// @Accept json
// @Produce json
// @Param id path int true "Homework ID"
// @Param payload body service.HomeworkRequest true "Homework payload"
// @Success 200 {object} response.Envelope
// @Failure 423 {object} response.Envelope
// @Router /homework/{id} [put]
func (h *HomeworkHandler) Update(c *gin.Context) {
	id, err := idParam(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	var req service.HomeworkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid homework payload"))
		return
	}
	hw, err := h.service.Update(c.Request.Context(), currentClaims(c), id, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, hw, nil)
}

// Delete godoc
// @Summary Delete a homework entry
// @Tags Homework
// @Produce json
// @Param id path int true "Homework ID"
// @Success 204 {object} response.Envelope
// @Failure 423 {object} response.Envelope
// @Router /homework/{id} [delete]
func (h *HomeworkHandler) Delete(c *gin.Context) {
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
