package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/campusboard/portal-api/internal/models"
)

type auditSinkStub struct {
	logs []*models.AuditLog
	err  error
}

func (s *auditSinkStub) CreateAuditLog(ctx context.Context, log *models.AuditLog) error {
	if s.err != nil {
		return s.err
	}
	s.logs = append(s.logs, log)
	return nil
}

func auditTestRouter(sink *auditSinkStub, status int, claims *models.JWTClaims) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/admin/ping",
		func(c *gin.Context) {
			if claims != nil {
				c.Set(ContextUserKey, claims)
			}
		},
		Audit(sink, zap.NewNop(), models.AuditActionAdminRequest, "admin"),
		func(c *gin.Context) {
			c.Status(status)
		},
	)
	return r
}

func TestAuditRecordsSuccessfulRequests(t *testing.T) {
	sink := &auditSinkStub{}
	claims := &models.JWTClaims{UserID: "admin-1", Username: "admin", Role: models.RoleAdmin}
	r := auditTestRouter(sink, http.StatusOK, claims)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/admin/ping", nil))

	require.Equal(t, http.StatusOK, w.Code)
	require.Len(t, sink.logs, 1)
	entry := sink.logs[0]
	assert.Equal(t, models.AuditActionAdminRequest, entry.Action)
	assert.Equal(t, "admin", entry.Resource)
	require.NotNil(t, entry.UserID)
	assert.Equal(t, "admin-1", *entry.UserID)
}

func TestAuditSkipsFailedRequests(t *testing.T) {
	sink := &auditSinkStub{}
	r := auditTestRouter(sink, http.StatusForbidden, nil)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/admin/ping", nil))

	assert.Empty(t, sink.logs)
}

func TestAuditSinkFailureDoesNotAffectResponse(t *testing.T) {
	sink := &auditSinkStub{err: assert.AnError}
	r := auditTestRouter(sink, http.StatusOK, nil)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/admin/ping", nil))

	assert.Equal(t, http.StatusOK, w.Code)
}
