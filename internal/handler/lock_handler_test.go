package handler

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	internalmiddleware "github.com/campusboard/portal-api/internal/middleware"
	"github.com/campusboard/portal-api/internal/models"
	"github.com/campusboard/portal-api/internal/service"
)

type lockStoreMock struct {
	master   bool
	sections map[models.Section]bool
	items    map[models.Section][]models.ItemLock
}

func newLockStoreMock() *lockStoreMock {
	return &lockStoreMock{
		sections: make(map[models.Section]bool),
		items:    make(map[models.Section][]models.ItemLock),
	}
}

func (m *lockStoreMock) MasterLocked(ctx context.Context) (bool, error) { return m.master, nil }

func (m *lockStoreMock) SetMasterLock(ctx context.Context, state bool, updatedBy *string) error {
	m.master = state
	return nil
}

func (m *lockStoreMock) SectionLocks(ctx context.Context) (map[models.Section]bool, error) {
	return m.sections, nil
}

func (m *lockStoreMock) SectionLocked(ctx context.Context, section models.Section) (bool, error) {
	return m.sections[section], nil
}

func (m *lockStoreMock) SetSectionLock(ctx context.Context, section models.Section, state bool, updatedBy *string) error {
	m.sections[section] = state
	return nil
}

func (m *lockStoreMock) ItemLocksBySection(ctx context.Context, section models.Section) ([]models.ItemLock, error) {
	return m.items[section], nil
}

func (m *lockStoreMock) SetItemLock(ctx context.Context, section models.Section, itemID int64, state bool, updatedBy *string) error {
	m.items[section] = append(m.items[section], models.ItemLock{Section: section, ItemID: itemID, Locked: state})
	return nil
}

func (m *lockStoreMock) DeleteItemLock(ctx context.Context, section models.Section, itemID int64) error {
	return nil
}

func lockRouter(store *lockStoreMock) *gin.Engine {
	gin.SetMode(gin.TestMode)
	locks := service.NewLockService(store, nil, nil, nil, nil, 0)
	h := NewLockHandler(locks, nil)

	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set(internalmiddleware.ContextUserKey, &models.JWTClaims{UserID: "admin-1", Role: models.RoleAdmin})
		c.Next()
	})
	r.GET("/locks/:section", h.Snapshot)
	r.PUT("/admin/locks/master", h.SetMaster)
	r.PUT("/admin/locks/:section", h.SetSection)
	r.PUT("/admin/locks/:section/:id", h.SetItem)
	return r
}

func TestLockSnapshot(t *testing.T) {
	store := newLockStoreMock()
	store.sections[models.SectionNotices] = true
	r := lockRouter(store)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/locks/notices", nil)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), `"locked":true`)
}

func TestLockSnapshotUnknownSection(t *testing.T) {
	r := lockRouter(newLockStoreMock())

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/locks/grades", nil)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSetMasterLock(t *testing.T) {
	store := newLockStoreMock()
	r := lockRouter(store)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPut, "/admin/locks/master", bytes.NewReader([]byte(`{"locked":true}`)))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	require.True(t, store.master)
}

func TestSetMasterLockRequiresBody(t *testing.T) {
	r := lockRouter(newLockStoreMock())

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPut, "/admin/locks/master", bytes.NewReader([]byte(`{}`)))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSetItemLock(t *testing.T) {
	store := newLockStoreMock()
	r := lockRouter(store)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPut, "/admin/locks/homework/7", bytes.NewReader([]byte(`{"locked":true}`)))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	require.Len(t, store.items[models.SectionHomework], 1)
}
