package service

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campusboard/portal-api/internal/models"
	appErrors "github.com/campusboard/portal-api/pkg/errors"
)

type stubNoticeRepo struct {
	notices map[int64]*models.Notice
	nextID  int64
	deleted []int64
}

func newStubNoticeRepo() *stubNoticeRepo {
	return &stubNoticeRepo{notices: make(map[int64]*models.Notice), nextID: 1}
}

func (r *stubNoticeRepo) List(ctx context.Context) ([]models.Notice, error) {
	out := make([]models.Notice, 0, len(r.notices))
	for _, n := range r.notices {
		out = append(out, *n)
	}
	return out, nil
}

func (r *stubNoticeRepo) GetByID(ctx context.Context, id int64) (*models.Notice, error) {
	n, ok := r.notices[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	copied := *n
	return &copied, nil
}

func (r *stubNoticeRepo) Create(ctx context.Context, notice *models.Notice) error {
	notice.ID = r.nextID
	r.nextID++
	r.notices[notice.ID] = notice
	return nil
}

func (r *stubNoticeRepo) Update(ctx context.Context, notice *models.Notice) error {
	r.notices[notice.ID] = notice
	return nil
}

func (r *stubNoticeRepo) Delete(ctx context.Context, id int64) error {
	delete(r.notices, id)
	r.deleted = append(r.deleted, id)
	return nil
}

type stubGate struct {
	err       error
	collected []int64
	calls     []models.Section
}

func (g *stubGate) Authorize(ctx context.Context, role models.Role, section models.Section, itemID *int64) error {
	g.calls = append(g.calls, section)
	return g.err
}

func (g *stubGate) CollectItemLock(ctx context.Context, section models.Section, itemID int64) {
	g.collected = append(g.collected, itemID)
}

func editorClaims() *models.JWTClaims {
	return &models.JWTClaims{UserID: "u-1", Username: "rafi", Role: models.RoleStudentEditor}
}

func TestNoticeServiceCreate(t *testing.T) {
	repo := newStubNoticeRepo()
	gate := &stubGate{}
	svc := NewNoticeService(repo, gate, nil, nil, nil)

	notice, err := svc.Create(context.Background(), editorClaims(), NoticeRequest{Title: "Exam week", Content: "Starts Sunday"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), notice.ID)
	assert.Equal(t, "rafi", notice.Author)
	assert.Equal(t, []models.Section{models.SectionNotices}, gate.calls)
}

func TestNoticeServiceCreateBlockedByGate(t *testing.T) {
	repo := newStubNoticeRepo()
	gate := &stubGate{err: appErrors.Clone(appErrors.ErrLocked, "content is locked by an administrator")}
	svc := NewNoticeService(repo, gate, nil, nil, nil)

	_, err := svc.Create(context.Background(), editorClaims(), NoticeRequest{Title: "t", Content: "c"})
	var appErr *appErrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, appErrors.ErrLocked.Code, appErr.Code)
	assert.Empty(t, repo.notices, "nothing persisted when the gate refuses")
}

func TestNoticeServiceCreateValidation(t *testing.T) {
	svc := NewNoticeService(newStubNoticeRepo(), &stubGate{}, nil, nil, nil)

	_, err := svc.Create(context.Background(), editorClaims(), NoticeRequest{Title: "", Content: ""})
	var appErr *appErrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, appErrors.ErrValidation.Code, appErr.Code)
}

func TestNoticeServiceUpdateNotFound(t *testing.T) {
	svc := NewNoticeService(newStubNoticeRepo(), &stubGate{}, nil, nil, nil)

	_, err := svc.Update(context.Background(), editorClaims(), 99, NoticeRequest{Title: "t", Content: "c"})
	var appErr *appErrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErr.Code)
}

func TestNoticeServiceDeleteCollectsItemLock(t *testing.T) {
	repo := newStubNoticeRepo()
	gate := &stubGate{}
	svc := NewNoticeService(repo, gate, nil, nil, nil)

	notice, err := svc.Create(context.Background(), editorClaims(), NoticeRequest{Title: "old", Content: "x"})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), editorClaims(), notice.ID))
	assert.Equal(t, []int64{notice.ID}, repo.deleted)
	assert.Equal(t, []int64{notice.ID}, gate.collected)
}
