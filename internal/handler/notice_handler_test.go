package handler

import (
	"bytes"
	"context"
	"database/sql"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	internalmiddleware "github.com/campusboard/portal-api/internal/middleware"
	"github.com/campusboard/portal-api/internal/models"
	"github.com/campusboard/portal-api/internal/service"
	appErrors "github.com/campusboard/portal-api/pkg/errors"
)

type noticeRepoMock struct {
	notices map[int64]*models.Notice
	nextID  int64
}

func newNoticeRepoMock() *noticeRepoMock {
	return &noticeRepoMock{notices: make(map[int64]*models.Notice), nextID: 1}
}

func (m *noticeRepoMock) List(ctx context.Context) ([]models.Notice, error) {
	out := make([]models.Notice, 0, len(m.notices))
	for _, n := range m.notices {
		out = append(out, *n)
	}
	return out, nil
}

func (m *noticeRepoMock) GetByID(ctx context.Context, id int64) (*models.Notice, error) {
	n, ok := m.notices[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return n, nil
}

func (m *noticeRepoMock) Create(ctx context.Context, notice *models.Notice) error {
	notice.ID = m.nextID
	m.nextID++
	m.notices[notice.ID] = notice
	return nil
}

func (m *noticeRepoMock) Update(ctx context.Context, notice *models.Notice) error {
	m.notices[notice.ID] = notice
	return nil
}

func (m *noticeRepoMock) Delete(ctx context.Context, id int64) error {
	delete(m.notices, id)
	return nil
}

type gateMock struct{ err error }

func (g *gateMock) Authorize(ctx context.Context, role models.Role, section models.Section, itemID *int64) error {
	return g.err
}

func (g *gateMock) CollectItemLock(ctx context.Context, section models.Section, itemID int64) {}

func noticeRouter(gate *gateMock, claims *models.JWTClaims) *gin.Engine {
	gin.SetMode(gin.TestMode)
	svc := service.NewNoticeService(newNoticeRepoMock(), gate, nil, nil, nil)
	h := NewNoticeHandler(svc)

	r := gin.New()
	if claims != nil {
		r.Use(func(c *gin.Context) {
			c.Set(internalmiddleware.ContextUserKey, claims)
			c.Next()
		})
	}
	r.GET("/notices", h.List)
	r.POST("/notices", internalmiddleware.RequireEditor(), h.Create)
	return r
}

func TestNoticeCreateSuccess(t *testing.T) {
	r := noticeRouter(&gateMock{}, &models.JWTClaims{UserID: "u-1", Username: "rafi", Role: models.RoleStudentEditor})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPost, "/notices", bytes.NewReader([]byte(`{"title":"Exam week","content":"Starts Sunday"}`)))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusCreated, w.Code)
	require.Contains(t, w.Body.String(), "Exam week")
}

func TestNoticeCreateLockedReturns423(t *testing.T) {
	gate := &gateMock{err: appErrors.Clone(appErrors.ErrLocked, "content is locked by an administrator")}
	r := noticeRouter(gate, &models.JWTClaims{UserID: "u-1", Role: models.RoleStudentEditor})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPost, "/notices", bytes.NewReader([]byte(`{"title":"t","content":"c"}`)))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusLocked, w.Code)
	require.Contains(t, w.Body.String(), appErrors.ErrLocked.Code)
}

func TestNoticeCreateUnauthorizedWithoutToken(t *testing.T) {
	r := noticeRouter(&gateMock{}, nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPost, "/notices", bytes.NewReader([]byte(`{"title":"t","content":"c"}`)))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestNoticeCreateForbiddenForStudents(t *testing.T) {
	r := noticeRouter(&gateMock{}, &models.JWTClaims{UserID: "u-2", Role: models.RoleStudent})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPost, "/notices", bytes.NewReader([]byte(`{"title":"t","content":"c"}`)))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusForbidden, w.Code)
}

func TestNoticeListIsPublic(t *testing.T) {
	r := noticeRouter(&gateMock{}, nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/notices", nil)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
}
