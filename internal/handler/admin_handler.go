package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/campusboard/portal-api/internal/models"
	"github.com/campusboard/portal-api/internal/service"
	appErrors "github.com/campusboard/portal-api/pkg/errors"
	"github.com/campusboard/portal-api/pkg/response"
)

// AdminHandler exposes the account-management side of the admin console.
type AdminHandler struct {
	service *service.AdminService
}

// NewAdminHandler creates a new handler.
func NewAdminHandler(svc *service.AdminService) *AdminHandler {
	return &AdminHandler{service: svc}
}

// ListApplications godoc
// @Summary List student applications
// @Tags Admin
// @Produce json
// @Param status query string false "Filter: pending, approved or rejected"
// @Success 200 {object} response.Envelope
// @Router /admin/applications [get]
func (h *AdminHandler) ListApplications(c *gin.Context) {
	var status *models.ApprovalStatus
	if raw := c.Query("status"); raw != "" {
		switch models.ApprovalStatus(raw) {
		case models.ApprovalPending, models.ApprovalApproved, models.ApprovalRejected:
			s := models.ApprovalStatus(raw)
			status = &s
		default:
			response.Error(c, appErrors.Clone(appErrors.ErrValidation, "status must be pending, approved or rejected"))
			return
		}
	}

	apps, err := h.service.ListApplications(c.Request.Context(), status)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, apps, nil)
}

type reviewRequest struct {
	Approve *bool `json:"approve" binding:"required"`
}

// ReviewApplication godoc
// @Summary Approve or reject an application
// @Tags Admin
// @Accept json
// @Produce json
// @Param id path string true "Application ID"
// @Param payload body reviewRequest true "Review decision"
// @Success 200 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /admin/applications/{id}/review [post]
func (h *AdminHandler) ReviewApplication(c *gin.Context) {
	var req reviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "approve is required"))
		return
	}

	app, err := h.service.ReviewApplication(c.Request.Context(), currentClaims(c), c.Param("id"), *req.Approve)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, app, nil)
}

// ListStudents godoc
// @Summary List approved students
// @Tags Admin
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /admin/students [get]
func (h *AdminHandler) ListStudents(c *gin.Context) {
	students, err := h.service.ListStudents(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, students, nil)
}

// Promote godoc
// @Summary Promote a student to editor
// @Tags Admin
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /admin/students/{id}/promote [post]
func (h *AdminHandler) Promote(c *gin.Context) {
	user, err := h.service.PromoteToEditor(c.Request.Context(), currentClaims(c), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, user, nil)
}

// Demote godoc
// @Summary Demote an editor back to student
// @Tags Admin
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /admin/students/{id}/demote [post]
func (h *AdminHandler) Demote(c *gin.Context) {
	user, err := h.service.DemoteToStudent(c.Request.Context(), currentClaims(c), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, user, nil)
}
