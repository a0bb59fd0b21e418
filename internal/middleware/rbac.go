package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/campusboard/portal-api/internal/models"
	appErrors "github.com/campusboard/portal-api/pkg/errors"
	"github.com/campusboard/portal-api/pkg/response"
)

// RequireRoles enforces role-based access control for routes. The role comes
// from the validated token, never from the request body.
func RequireRoles(roles ...models.Role) gin.HandlerFunc {
	allowed := make(map[models.Role]struct{}, len(roles))
	for _, r := range roles {
		allowed[r] = struct{}{}
	}

	return func(c *gin.Context) {
		claims, ok := CurrentUser(c)
		if !ok {
			response.Error(c, appErrors.ErrUnauthorized)
			c.Abort()
			return
		}

		if _, ok := allowed[claims.Role]; !ok {
			response.Error(c, appErrors.ErrForbidden)
			c.Abort()
			return
		}
		c.Next()
	}
}

// RequireAdmin is shorthand for the admin console routes.
func RequireAdmin() gin.HandlerFunc {
	return RequireRoles(models.RoleAdmin)
}

// RequireEditor allows the roles that may attempt content mutations. The lock
// gate still decides per request; this only rejects roles that can never
// edit.
func RequireEditor() gin.HandlerFunc {
	return RequireRoles(models.RoleStudentEditor, models.RoleAdmin)
}
