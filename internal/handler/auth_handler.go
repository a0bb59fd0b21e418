package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/campusboard/portal-api/internal/middleware"
	"github.com/campusboard/portal-api/internal/models"
	"github.com/campusboard/portal-api/internal/service"
	"github.com/campusboard/portal-api/internal/session"
	appErrors "github.com/campusboard/portal-api/pkg/errors"
	"github.com/campusboard/portal-api/pkg/response"
)

// AuthHandler wires HTTP endpoints to the auth service.
type AuthHandler struct {
	service  *service.AuthService
	sessions *session.Manager
}

// NewAuthHandler creates a new handler.
func NewAuthHandler(svc *service.AuthService, sessions *session.Manager) *AuthHandler {
	return &AuthHandler{service: svc, sessions: sessions}
}

// VisitorLogin godoc
// @Summary Visitor login
// @Description Issue a read-only token for a display name
// @Tags Authentication
// @Accept json
// @Produce json
// @Param payload body models.VisitorLoginRequest true "Visitor payload"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /auth/visitor [post]
func (h *AuthHandler) VisitorLogin(c *gin.Context) {
	var req models.VisitorLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid visitor payload"))
		return
	}

	res, err := h.service.VisitorLogin(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, res, nil)
}

// AdminLogin godoc
// @Summary Administrator login
// @Description Authenticate an administrator by username and password
// @Tags Authentication
// @Accept json
// @Produce json
// @Param payload body models.LoginRequest true "Login payload"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Router /auth/admin/login [post]
func (h *AuthHandler) AdminLogin(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid login payload"))
		return
	}
	req.IP = c.ClientIP()
	req.UserAgent = c.GetHeader("User-Agent")

	res, err := h.service.AdminLogin(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, res, nil)
}

// StudentLogin godoc
// @Summary Student login
// @Description Authenticate a student; the outcome reports pending or rejected accounts
// @Tags Authentication
// @Accept json
// @Produce json
// @Param payload body models.LoginRequest true "Login payload"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /auth/student/login [post]
func (h *AuthHandler) StudentLogin(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid login payload"))
		return
	}
	req.IP = c.ClientIP()
	req.UserAgent = c.GetHeader("User-Agent")

	res, err := h.service.StudentLogin(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, res, nil)
}

// Apply godoc
// @Summary Submit a student application
// @Description Register a pending student account for admin review
// @Tags Authentication
// @Accept json
// @Produce json
// @Param payload body models.ApplicationRequest true "Application payload"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /auth/apply [post]
func (h *AuthHandler) Apply(c *gin.Context) {
	var req models.ApplicationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid application payload"))
		return
	}

	app, err := h.service.SubmitApplication(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, app)
}

// Logout godoc
// @Summary Logout
// @Description Clear the persisted session
// @Tags Authentication
// @Produce json
// @Success 204 {object} response.Envelope
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	claims, _ := middleware.CurrentUser(c)
	h.service.Logout(c.Request.Context(), claims)
	response.NoContent(c)
}

// Session godoc
// @Summary Current session
// @Description Report the persisted session and where the caller belongs
// @Tags Authentication
// @Produce json
// @Param route query string false "Route class: entry, home or admin"
// @Success 200 {object} response.Envelope
// @Router /auth/session [get]
func (h *AuthHandler) Session(c *gin.Context) {
	rec := h.sessions.Current()

	route := session.RouteHome
	switch c.Query("route") {
	case "entry":
		route = session.RouteEntry
	case "admin":
		route = session.RouteAdmin
	case "", "home":
	default:
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "route must be entry, home or admin"))
		return
	}

	decision := session.Resolve(rec.Role, route)
	response.JSON(c, http.StatusOK, gin.H{
		"session":  rec,
		"decision": decision,
	}, nil)
}
