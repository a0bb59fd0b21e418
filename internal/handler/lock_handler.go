package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/campusboard/portal-api/internal/models"
	"github.com/campusboard/portal-api/internal/service"
	appErrors "github.com/campusboard/portal-api/pkg/errors"
	"github.com/campusboard/portal-api/pkg/response"
)

// LockHandler exposes lock snapshots to everyone and lock transitions to the
// admin console.
type LockHandler struct {
	locks   *service.LockService
	watcher *service.LockWatcher
}

// NewLockHandler creates a new handler.
func NewLockHandler(locks *service.LockService, watcher *service.LockWatcher) *LockHandler {
	return &LockHandler{locks: locks, watcher: watcher}
}

type lockStateRequest struct {
	Locked *bool `json:"locked" binding:"required"`
}

func sectionParam(c *gin.Context) (models.Section, error) {
	section, ok := models.ParseSection(c.Param("section"))
	if !ok {
		return "", appErrors.Clone(appErrors.ErrValidation, "unknown section")
	}
	return section, nil
}

// Overview godoc
// @Summary Full lock state
// @Description Master, section and item locks for the admin console
// @Tags Locks
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /admin/locks [get]
func (h *LockHandler) Overview(c *gin.Context) {
	overview, err := h.locks.Overview(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, overview, nil)
}

// Snapshot godoc
// @Summary Section lock snapshot
// @Description The shared lock view readers poll for one section
// @Tags Locks
// @Produce json
// @Param section path string true "Section name"
// @Success 200 {object} response.Envelope
// @Router /locks/{section} [get]
func (h *LockHandler) Snapshot(c *gin.Context) {
	section, err := sectionParam(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	// Serve the watcher's warm entry when it has one.
	if h.watcher != nil {
		if snap, ok := h.watcher.Current(section); ok {
			response.JSON(c, http.StatusOK, snap, nil)
			return
		}
	}

	snap, err := h.locks.Snapshot(c.Request.Context(), section)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, snap, nil)
}

// SetMaster godoc
// @Summary Set the master lock
// @Tags Locks
// @Accept json
// @Produce json
// @Param payload body lockStateRequest true "Lock state"
// @Success 200 {object} response.Envelope
// @Router /admin/locks/master [put]
func (h *LockHandler) SetMaster(c *gin.Context) {
	var req lockStateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "locked is required"))
		return
	}
	if err := h.locks.SetMaster(c.Request.Context(), *req.Locked, currentClaims(c)); err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"master": *req.Locked}, nil)
}

// SetSection godoc
// @Summary Set a section lock
// @Tags Locks
// @Accept json
// @Produce json
// @Param section path string true "Section name"
// @Param payload body lockStateRequest true "Lock state"
// @Success 200 {object} response.Envelope
// @Router /admin/locks/{section} [put]
func (h *LockHandler) SetSection(c *gin.Context) {
	section, err := sectionParam(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	var req lockStateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "locked is required"))
		return
	}
	if err := h.locks.SetSection(c.Request.Context(), section, *req.Locked, currentClaims(c)); err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"section": section, "locked": *req.Locked}, nil)
}

// SetItem godoc
// @Summary Set an item lock
// @Tags Locks
// @Accept json
// @Produce json
// @Param section path string true "Section name"
// @Param id path int true "Item ID"
// @Param payload body lockStateRequest true "Lock state"
// @Success 200 {object} response.Envelope
// @Router /admin/locks/{section}/{id} [put]
func (h *LockHandler) SetItem(c *gin.Context) {
	section, err := sectionParam(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	id, err := idParam(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	var req lockStateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "locked is required"))
		return
	}
	if err := h.locks.SetItem(c.Request.Context(), section, id, *req.Locked, currentClaims(c)); err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"section": section, "item_id": id, "locked": *req.Locked}, nil)
}

// Retry godoc
// @Summary Resume paused lock polling
// @Description Resumes a section whose polling paused after a backend outage
// @Tags Locks
// @Produce json
// @Param section path string true "Section name"
// @Success 204 {object} response.Envelope
// @Router /locks/{section}/retry [post]
func (h *LockHandler) Retry(c *gin.Context) {
	section, err := sectionParam(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	if h.watcher != nil {
		h.watcher.Retry(section)
	}
	response.NoContent(c)
}
