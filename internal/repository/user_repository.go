package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/campusboard/portal-api/internal/models"
)

// UserRepository provides persistence for portal accounts, applications and
// audit logs.
type UserRepository struct {
	db *sqlx.DB
}

// NewUserRepository creates the repository.
func NewUserRepository(db *sqlx.DB) *UserRepository {
	return &UserRepository{db: db}
}

// FindByUsername returns an account by its unique username.
func (r *UserRepository) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	const query = `SELECT id, username, password_hash, full_name, role, approval, class_name, class_section, last_login, created_at, updated_at
FROM users WHERE username = $1`
	var user models.User
	if err := r.db.GetContext(ctx, &user, query, username); err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByID returns an account by id.
func (r *UserRepository) FindByID(ctx context.Context, id string) (*models.User, error) {
	const query = `SELECT id, username, password_hash, full_name, role, approval, class_name, class_section, last_login, created_at, updated_at
FROM users WHERE id = $1`
	var user models.User
	if err := r.db.GetContext(ctx, &user, query, id); err != nil {
		return nil, err
	}
	return &user, nil
}

// Create inserts a new account.
func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	user.CreatedAt = now
	user.UpdatedAt = now
	const query = `INSERT INTO users (id, username, password_hash, full_name, role, approval, class_name, class_section, created_at, updated_at)
VALUES (:id, :username, :password_hash, :full_name, :role, :approval, :class_name, :class_section, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, user); err != nil {
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}

// UpdateRole changes the role of an account (promote/demote editor).
func (r *UserRepository) UpdateRole(ctx context.Context, id string, role models.Role) error {
	const query = `UPDATE users SET role = $1, updated_at = $2 WHERE id = $3`
	if _, err := r.db.ExecContext(ctx, query, role, time.Now().UTC(), id); err != nil {
		return fmt.Errorf("update user role: %w", err)
	}
	return nil
}

// UpdateApproval moves an account through the review state machine.
func (r *UserRepository) UpdateApproval(ctx context.Context, id string, status models.ApprovalStatus) error {
	const query = `UPDATE users SET approval = $1, updated_at = $2 WHERE id = $3`
	if _, err := r.db.ExecContext(ctx, query, status, time.Now().UTC(), id); err != nil {
		return fmt.Errorf("update user approval: %w", err)
	}
	return nil
}

// UpdateLastLogin stamps a successful login.
func (r *UserRepository) UpdateLastLogin(ctx context.Context, id string, ts time.Time) error {
	const query = `UPDATE users SET last_login = $1 WHERE id = $2`
	if _, err := r.db.ExecContext(ctx, query, ts, id); err != nil {
		return fmt.Errorf("update last login: %w", err)
	}
	return nil
}

// ListStudents returns approved student accounts (both roles).
func (r *UserRepository) ListStudents(ctx context.Context) ([]models.User, error) {
	const query = `SELECT id, username, password_hash, full_name, role, approval, class_name, class_section, last_login, created_at, updated_at
FROM users WHERE role IN ($1, $2) AND approval = $3 ORDER BY full_name ASC`
	var users []models.User
	if err := r.db.SelectContext(ctx, &users, query, models.RoleStudent, models.RoleStudentEditor, models.ApprovalApproved); err != nil {
		return nil, fmt.Errorf("list students: %w", err)
	}
	return users, nil
}

// CreateApplication records a submitted student application.
func (r *UserRepository) CreateApplication(ctx context.Context, app *models.StudentApplication) error {
	if app.ID == "" {
		app.ID = uuid.NewString()
	}
	if app.SubmittedAt.IsZero() {
		app.SubmittedAt = time.Now().UTC()
	}
	app.Status = models.ApprovalPending
	const query = `INSERT INTO applications (id, username, full_name, class_name, class_section, status, submitted_at)
VALUES (:id, :username, :full_name, :class_name, :class_section, :status, :submitted_at)`
	if _, err := r.db.NamedExecContext(ctx, query, app); err != nil {
		return fmt.Errorf("create application: %w", err)
	}
	return nil
}

// ListApplications returns applications, optionally filtered by status.
func (r *UserRepository) ListApplications(ctx context.Context, status *models.ApprovalStatus) ([]models.StudentApplication, error) {
	query := `SELECT id, username, full_name, class_name, class_section, status, submitted_at, reviewed_by, reviewed_at
FROM applications`
	args := []interface{}{}
	if status != nil {
		query += ` WHERE status = $1`
		args = append(args, *status)
	}
	query += ` ORDER BY submitted_at ASC`
	var apps []models.StudentApplication
	if err := r.db.SelectContext(ctx, &apps, query, args...); err != nil {
		return nil, fmt.Errorf("list applications: %w", err)
	}
	return apps, nil
}

// FindApplicationByID returns a single application.
func (r *UserRepository) FindApplicationByID(ctx context.Context, id string) (*models.StudentApplication, error) {
	const query = `SELECT id, username, full_name, class_name, class_section, status, submitted_at, reviewed_by, reviewed_at
FROM applications WHERE id = $1`
	var app models.StudentApplication
	if err := r.db.GetContext(ctx, &app, query, id); err != nil {
		return nil, err
	}
	return &app, nil
}

// FindApplicationByUsername returns the latest application for a username.
func (r *UserRepository) FindApplicationByUsername(ctx context.Context, username string) (*models.StudentApplication, error) {
	const query = `SELECT id, username, full_name, class_name, class_section, status, submitted_at, reviewed_by, reviewed_at
FROM applications WHERE username = $1 ORDER BY submitted_at DESC LIMIT 1`
	var app models.StudentApplication
	if err := r.db.GetContext(ctx, &app, query, username); err != nil {
		return nil, err
	}
	return &app, nil
}

// ReviewApplication stamps an approval decision.
func (r *UserRepository) ReviewApplication(ctx context.Context, id string, status models.ApprovalStatus, reviewedBy string) error {
	const query = `UPDATE applications SET status = $1, reviewed_by = $2, reviewed_at = $3 WHERE id = $4`
	if _, err := r.db.ExecContext(ctx, query, status, reviewedBy, time.Now().UTC(), id); err != nil {
		return fmt.Errorf("review application: %w", err)
	}
	return nil
}

// CreateAuditLog records an audit entry.
func (r *UserRepository) CreateAuditLog(ctx context.Context, log *models.AuditLog) error {
	if log.ID == "" {
		log.ID = uuid.NewString()
	}
	if log.CreatedAt.IsZero() {
		log.CreatedAt = time.Now().UTC()
	}
	const query = `INSERT INTO audit_logs (id, user_id, action, resource, resource_id, new_values, ip_address, user_agent, created_at)
VALUES (:id, :user_id, :action, :resource, :resource_id, :new_values, :ip_address, :user_agent, :created_at)`
	if _, err := r.db.NamedExecContext(ctx, query, log); err != nil {
		return fmt.Errorf("create audit log: %w", err)
	}
	return nil
}
