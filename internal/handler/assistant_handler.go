package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/campusboard/portal-api/internal/assistant"
	appErrors "github.com/campusboard/portal-api/pkg/errors"
	"github.com/campusboard/portal-api/pkg/response"
)

// AssistantHandler exposes the canned-response helper.
type AssistantHandler struct {
	assistant *assistant.Assistant
}

// NewAssistantHandler creates a new handler.
func NewAssistantHandler(a *assistant.Assistant) *AssistantHandler {
	return &AssistantHandler{assistant: a}
}

type askRequest struct {
	Question string `json:"question" binding:"required"`
}

// Ask godoc
// @Summary Ask the portal assistant
// @Tags Assistant
// @Accept json
// @Produce json
// @Param payload body askRequest true "Question"
// @Success 200 {object} response.Envelope
// @Router /assistant/ask [post]
func (h *AssistantHandler) Ask(c *gin.Context) {
	var req askRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "question is required"))
		return
	}
	response.JSON(c, http.StatusOK, h.assistant.Ask(req.Question), nil)
}
