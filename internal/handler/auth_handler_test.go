package handler

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/campusboard/portal-api/internal/models"
	"github.com/campusboard/portal-api/internal/service"
	"github.com/campusboard/portal-api/internal/session"
)

type authRepoMock struct {
	users map[string]*models.User
	apps  map[string]*models.StudentApplication
}

func newAuthRepoMock() *authRepoMock {
	return &authRepoMock{
		users: make(map[string]*models.User),
		apps:  make(map[string]*models.StudentApplication),
	}
}

func (m *authRepoMock) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	u, ok := m.users[username]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return u, nil
}

func (m *authRepoMock) Create(ctx context.Context, user *models.User) error {
	user.ID = "u-" + user.Username
	m.users[user.Username] = user
	return nil
}

func (m *authRepoMock) UpdateLastLogin(ctx context.Context, id string, ts time.Time) error {
	return nil
}

func (m *authRepoMock) CreateApplication(ctx context.Context, app *models.StudentApplication) error {
	app.ID = "app-" + app.Username
	app.Status = models.ApprovalPending
	m.apps[app.Username] = app
	return nil
}

func (m *authRepoMock) CreateAuditLog(ctx context.Context, log *models.AuditLog) error {
	return nil
}

func authRouter(repo *authRepoMock) (*gin.Engine, *session.Manager) {
	gin.SetMode(gin.TestMode)
	sessions := session.NewManager(nil)
	svc := service.NewAuthService(repo, sessions, nil, nil, service.AuthConfig{
		AccessTokenSecret: "test-secret",
		AccessTokenExpiry: time.Hour,
		Issuer:            "portal-test",
	})
	h := NewAuthHandler(svc, sessions)

	r := gin.New()
	r.POST("/auth/visitor", h.VisitorLogin)
	r.POST("/auth/student/login", h.StudentLogin)
	r.POST("/auth/apply", h.Apply)
	r.GET("/auth/session", h.Session)
	return r, sessions
}

func postJSON(r *gin.Engine, path, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPost, path, bytes.NewReader([]byte(body)))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	return w
}

func TestVisitorLoginEndpoint(t *testing.T) {
	r, sessions := authRouter(newAuthRepoMock())

	w := postJSON(r, "/auth/visitor", `{"display_name":"guest"}`)

	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), "access_token")
	require.Equal(t, models.RoleVisitor, sessions.Role())
}

func TestStudentLoginPendingOutcome(t *testing.T) {
	repo := newAuthRepoMock()
	hash, _ := bcrypt.GenerateFromPassword([]byte("correct-horse"), bcrypt.MinCost)
	repo.users["rafi"] = &models.User{
		ID: "u-rafi", Username: "rafi", PasswordHash: string(hash),
		Role: models.RoleStudent, Approval: models.ApprovalPending,
	}
	r, _ := authRouter(repo)

	w := postJSON(r, "/auth/student/login", `{"username":"rafi","password":"correct-horse"}`)

	require.Equal(t, http.StatusOK, w.Code)

	var envelope struct {
		Data models.StudentLoginResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	require.Equal(t, models.StudentLoginPending, envelope.Data.Outcome)
	require.Nil(t, envelope.Data.Login)
}

func TestApplyThenSessionGatesPendingToEntry(t *testing.T) {
	r, sessions := authRouter(newAuthRepoMock())

	w := postJSON(r, "/auth/apply", `{"username":"newkid","password":"longenough","full_name":"New Kid","class_name":"Nine","class_section":"B"}`)
	require.Equal(t, http.StatusCreated, w.Code)
	require.Equal(t, models.RolePending, sessions.Role())

	// A pending session is turned away from the home routes.
	get := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/auth/session?route=home", nil)
	r.ServeHTTP(get, req)

	require.Equal(t, http.StatusOK, get.Code)
	var envelope struct {
		Data struct {
			Decision session.Decision `json:"decision"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(get.Body.Bytes(), &envelope))
	require.False(t, envelope.Data.Decision.Allowed)
	require.Equal(t, session.EntryPath, envelope.Data.Decision.RedirectTo)
}

func TestSessionRejectsUnknownRoute(t *testing.T) {
	r, _ := authRouter(newAuthRepoMock())

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/auth/session?route=cafeteria", nil)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusBadRequest, w.Code)
}
