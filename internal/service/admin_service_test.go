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

type stubAdminRepo struct {
	usersByID map[string]*models.User
	apps      map[string]*models.StudentApplication
	logs      []*models.AuditLog
}

func newStubAdminRepo() *stubAdminRepo {
	return &stubAdminRepo{
		usersByID: make(map[string]*models.User),
		apps:      make(map[string]*models.StudentApplication),
	}
}

func (r *stubAdminRepo) FindByID(ctx context.Context, id string) (*models.User, error) {
	u, ok := r.usersByID[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return u, nil
}

func (r *stubAdminRepo) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	for _, u := range r.usersByID {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (r *stubAdminRepo) UpdateRole(ctx context.Context, id string, role models.Role) error {
	r.usersByID[id].Role = role
	return nil
}

func (r *stubAdminRepo) UpdateApproval(ctx context.Context, id string, status models.ApprovalStatus) error {
	r.usersByID[id].Approval = status
	return nil
}

func (r *stubAdminRepo) ListStudents(ctx context.Context) ([]models.User, error) {
	var out []models.User
	for _, u := range r.usersByID {
		if u.Role != models.RoleAdmin {
			out = append(out, *u)
		}
	}
	return out, nil
}

func (r *stubAdminRepo) ListApplications(ctx context.Context, status *models.ApprovalStatus) ([]models.StudentApplication, error) {
	var out []models.StudentApplication
	for _, a := range r.apps {
		if status == nil || a.Status == *status {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (r *stubAdminRepo) FindApplicationByID(ctx context.Context, id string) (*models.StudentApplication, error) {
	a, ok := r.apps[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return a, nil
}

func (r *stubAdminRepo) ReviewApplication(ctx context.Context, id string, status models.ApprovalStatus, reviewedBy string) error {
	r.apps[id].Status = status
	return nil
}

func (r *stubAdminRepo) CreateAuditLog(ctx context.Context, log *models.AuditLog) error {
	r.logs = append(r.logs, log)
	return nil
}

func seedApplicant(repo *stubAdminRepo, username string, status models.ApprovalStatus) {
	repo.usersByID["u-"+username] = &models.User{
		ID: "u-" + username, Username: username,
		Role: models.RoleStudent, Approval: status,
	}
	repo.apps["app-"+username] = &models.StudentApplication{
		ID: "app-" + username, Username: username, Status: status,
	}
}

func TestReviewApplicationApprove(t *testing.T) {
	repo := newStubAdminRepo()
	seedApplicant(repo, "rafi", models.ApprovalPending)
	svc := NewAdminService(repo, nil)

	app, err := svc.ReviewApplication(context.Background(), adminClaims(), "app-rafi", true)
	require.NoError(t, err)
	assert.Equal(t, models.ApprovalApproved, app.Status)
	assert.Equal(t, models.ApprovalApproved, repo.usersByID["u-rafi"].Approval)
	require.Len(t, repo.logs, 1)
	assert.Equal(t, models.AuditActionApproval, repo.logs[0].Action)
}

func TestReviewApplicationReject(t *testing.T) {
	repo := newStubAdminRepo()
	seedApplicant(repo, "rafi", models.ApprovalPending)
	svc := NewAdminService(repo, nil)

	app, err := svc.ReviewApplication(context.Background(), adminClaims(), "app-rafi", false)
	require.NoError(t, err)
	assert.Equal(t, models.ApprovalRejected, app.Status)
	assert.Equal(t, models.ApprovalRejected, repo.usersByID["u-rafi"].Approval)
}

func TestReviewApplicationAlreadyReviewed(t *testing.T) {
	repo := newStubAdminRepo()
	seedApplicant(repo, "rafi", models.ApprovalApproved)
	svc := NewAdminService(repo, nil)

	_, err := svc.ReviewApplication(context.Background(), adminClaims(), "app-rafi", true)
	var appErr *appErrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, appErrors.ErrConflict.Code, appErr.Code)
}

func TestPromoteAndDemote(t *testing.T) {
	repo := newStubAdminRepo()
	seedApplicant(repo, "rafi", models.ApprovalApproved)
	svc := NewAdminService(repo, nil)

	user, err := svc.PromoteToEditor(context.Background(), adminClaims(), "u-rafi")
	require.NoError(t, err)
	assert.Equal(t, models.RoleStudentEditor, user.Role)

	// Promoting an editor again is a conflict.
	_, err = svc.PromoteToEditor(context.Background(), adminClaims(), "u-rafi")
	var appErr *appErrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, appErrors.ErrConflict.Code, appErr.Code)

	user, err = svc.DemoteToStudent(context.Background(), adminClaims(), "u-rafi")
	require.NoError(t, err)
	assert.Equal(t, models.RoleStudent, user.Role)
}

func TestPromoteRequiresApprovedAccount(t *testing.T) {
	repo := newStubAdminRepo()
	seedApplicant(repo, "rafi", models.ApprovalPending)
	svc := NewAdminService(repo, nil)

	_, err := svc.PromoteToEditor(context.Background(), adminClaims(), "u-rafi")
	var appErr *appErrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, appErrors.ErrConflict.Code, appErr.Code)
}
