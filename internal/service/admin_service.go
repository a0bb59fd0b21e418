package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/campusboard/portal-api/internal/models"
	appErrors "github.com/campusboard/portal-api/pkg/errors"
)

type adminUserRepository interface {
	FindByID(ctx context.Context, id string) (*models.User, error)
	FindByUsername(ctx context.Context, username string) (*models.User, error)
	UpdateRole(ctx context.Context, id string, role models.Role) error
	UpdateApproval(ctx context.Context, id string, status models.ApprovalStatus) error
	ListStudents(ctx context.Context) ([]models.User, error)
	ListApplications(ctx context.Context, status *models.ApprovalStatus) ([]models.StudentApplication, error)
	FindApplicationByID(ctx context.Context, id string) (*models.StudentApplication, error)
	ReviewApplication(ctx context.Context, id string, status models.ApprovalStatus, reviewedBy string) error
	CreateAuditLog(ctx context.Context, log *models.AuditLog) error
}

// AdminService implements the account-management side of the admin console:
// reviewing applications and moving students between the student and editor
// roles.
type AdminService struct {
	repo   adminUserRepository
	logger *zap.Logger
}

// NewAdminService constructs the service.
func NewAdminService(repo adminUserRepository, logger *zap.Logger) *AdminService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AdminService{repo: repo, logger: logger}
}

// ListApplications returns applications, optionally filtered by status.
func (s *AdminService) ListApplications(ctx context.Context, status *models.ApprovalStatus) ([]models.StudentApplication, error) {
	apps, err := s.repo.ListApplications(ctx, status)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list applications")
	}
	return apps, nil
}

// ListStudents returns every approved student account.
func (s *AdminService) ListStudents(ctx context.Context) ([]models.User, error) {
	students, err := s.repo.ListStudents(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list students")
	}
	return students, nil
}

// ReviewApplication approves or rejects a pending application and moves the
// matching account to the same state. Already-reviewed applications are
// rejected with a conflict.
func (s *AdminService) ReviewApplication(ctx context.Context, actor *models.JWTClaims, id string, approve bool) (*models.StudentApplication, error) {
	app, err := s.repo.FindApplicationByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "application not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load application")
	}
	if app.Status != models.ApprovalPending {
		return nil, appErrors.Clone(appErrors.ErrConflict, "application has already been reviewed")
	}

	status := models.ApprovalRejected
	if approve {
		status = models.ApprovalApproved
	}

	reviewedBy := ""
	if actor != nil {
		reviewedBy = actor.UserID
	}
	if err := s.repo.ReviewApplication(ctx, id, status, reviewedBy); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to review application")
	}

	user, err := s.repo.FindByUsername(ctx, app.Username)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load applicant account")
	}
	if err := s.repo.UpdateApproval(ctx, user.ID, status); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update applicant account")
	}

	s.audit(ctx, actor, models.AuditActionApproval, "applications", app.ID,
		fmt.Sprintf(`{"status":%q}`, status))

	app.Status = status
	app.ReviewedBy = &reviewedBy
	return app, nil
}

// PromoteToEditor grants a student editing rights.
func (s *AdminService) PromoteToEditor(ctx context.Context, actor *models.JWTClaims, userID string) (*models.User, error) {
	return s.changeRole(ctx, actor, userID, models.RoleStudent, models.RoleStudentEditor)
}

// DemoteToStudent revokes a student editor's editing rights.
func (s *AdminService) DemoteToStudent(ctx context.Context, actor *models.JWTClaims, userID string) (*models.User, error) {
	return s.changeRole(ctx, actor, userID, models.RoleStudentEditor, models.RoleStudent)
}

func (s *AdminService) changeRole(ctx context.Context, actor *models.JWTClaims, userID string, from, to models.Role) (*models.User, error) {
	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "student not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load student")
	}
	if user.Role != from {
		return nil, appErrors.Clone(appErrors.ErrConflict, fmt.Sprintf("account is not a %s", from))
	}
	if user.Approval != models.ApprovalApproved {
		return nil, appErrors.Clone(appErrors.ErrConflict, "account is not approved")
	}

	if err := s.repo.UpdateRole(ctx, userID, to); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to change role")
	}

	s.audit(ctx, actor, models.AuditActionRoleChange, "users", userID,
		fmt.Sprintf(`{"from":%q,"to":%q}`, from, to))

	user.Role = to
	return user, nil
}

func (s *AdminService) audit(ctx context.Context, actor *models.JWTClaims, action, resource, resourceID, values string) {
	log := &models.AuditLog{
		Action:     action,
		Resource:   resource,
		ResourceID: &resourceID,
		NewValues:  []byte(values),
	}
	if actor != nil {
		log.UserID = &actor.UserID
	}
	if err := s.repo.CreateAuditLog(ctx, log); err != nil {
		s.logger.Warn("failed to record admin audit log", zap.Error(err))
	}
}
