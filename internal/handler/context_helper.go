package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/campusboard/portal-api/internal/middleware"
	"github.com/campusboard/portal-api/internal/models"
	appErrors "github.com/campusboard/portal-api/pkg/errors"
)

func idParam(c *gin.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, appErrors.Clone(appErrors.ErrValidation, "invalid id")
	}
	return id, nil
}

func currentClaims(c *gin.Context) *models.JWTClaims {
	claims, _ := middleware.CurrentUser(c)
	return claims
}
