package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/campusboard/portal-api/internal/models"
	"github.com/campusboard/portal-api/internal/session"
	appErrors "github.com/campusboard/portal-api/pkg/errors"
)

type authUserRepository interface {
	FindByUsername(ctx context.Context, username string) (*models.User, error)
	Create(ctx context.Context, user *models.User) error
	UpdateLastLogin(ctx context.Context, id string, ts time.Time) error
	CreateApplication(ctx context.Context, app *models.StudentApplication) error
	CreateAuditLog(ctx context.Context, log *models.AuditLog) error
}

// AuthConfig defines configuration for authentication flows.
type AuthConfig struct {
	AccessTokenSecret string
	AccessTokenExpiry time.Duration
	Issuer            string
}

// AuthService provides the portal's login flows. Visitors get a token without
// a stored account; students and admins authenticate against the users table.
// The session manager mirrors every successful transition so the role survives
// restarts.
type AuthService struct {
	repo      authUserRepository
	sessions  *session.Manager
	validator *validator.Validate
	logger    *zap.Logger
	config    AuthConfig
}

// NewAuthService constructs an AuthService instance.
func NewAuthService(repo authUserRepository, sessions *session.Manager, validate *validator.Validate, logger *zap.Logger, config AuthConfig) *AuthService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	return &AuthService{repo: repo, sessions: sessions, validator: validate, logger: logger, config: config}
}

// VisitorLogin issues a read-only token for a display name. No account row is
// created.
func (s *AuthService) VisitorLogin(ctx context.Context, req models.VisitorLoginRequest) (*models.LoginResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid visitor payload")
	}

	visitor := &models.User{ID: uuid.NewString(), Username: req.DisplayName, Role: models.RoleVisitor}
	resp, err := s.issueLogin(visitor)
	if err != nil {
		return nil, err
	}

	if err := s.repo.CreateAuditLog(ctx, &models.AuditLog{
		Action:     models.AuditActionLogin,
		Resource:   "auth",
		ResourceID: &visitor.ID,
		NewValues:  []byte(`{"role":"visitor"}`),
	}); err != nil {
		s.logger.Warn("failed to record visitor login audit log", zap.Error(err))
	}
	return resp, nil
}

// AdminLogin authenticates an administrator account.
func (s *AuthService) AdminLogin(ctx context.Context, req models.LoginRequest) (*models.LoginResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid login payload")
	}

	user, err := s.repo.FindByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrInvalidCredentials, "invalid username or password")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to fetch user")
	}
	if user.Role != models.RoleAdmin {
		return nil, appErrors.Clone(appErrors.ErrInvalidCredentials, "invalid username or password")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, appErrors.Clone(appErrors.ErrInvalidCredentials, "invalid username or password")
	}

	resp, err := s.issueLogin(user)
	if err != nil {
		return nil, err
	}
	s.afterLogin(ctx, user, req)
	return resp, nil
}

// StudentLogin authenticates a student account. The outcome is always one of
// pending, approved, rejected or invalidCredentials; only approved carries a
// token. An unknown username and a wrong password are indistinguishable.
func (s *AuthService) StudentLogin(ctx context.Context, req models.LoginRequest) (*models.StudentLoginResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid login payload")
	}

	user, err := s.repo.FindByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return &models.StudentLoginResponse{Outcome: models.StudentLoginInvalidCredentials}, nil
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to fetch user")
	}
	if user.Role == models.RoleAdmin {
		return &models.StudentLoginResponse{Outcome: models.StudentLoginInvalidCredentials}, nil
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return &models.StudentLoginResponse{Outcome: models.StudentLoginInvalidCredentials}, nil
	}

	switch user.Approval {
	case models.ApprovalPending:
		if s.sessions != nil {
			s.sessions.Login(models.RolePending, user.Username)
		}
		return &models.StudentLoginResponse{Outcome: models.StudentLoginPending}, nil
	case models.ApprovalRejected:
		return &models.StudentLoginResponse{Outcome: models.StudentLoginRejected}, nil
	case models.ApprovalApproved:
		resp, err := s.issueLogin(user)
		if err != nil {
			return nil, err
		}
		s.afterLogin(ctx, user, req)
		return &models.StudentLoginResponse{Outcome: models.StudentLoginApproved, Login: resp}, nil
	default:
		return &models.StudentLoginResponse{Outcome: models.StudentLoginInvalidCredentials}, nil
	}
}

// SubmitApplication registers a student signup. The account is created in the
// pending state; the application row is what the admin console reviews.
func (s *AuthService) SubmitApplication(ctx context.Context, req models.ApplicationRequest) (*models.StudentApplication, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid application payload")
	}

	if _, err := s.repo.FindByUsername(ctx, req.Username); err == nil {
		return nil, appErrors.Clone(appErrors.ErrConflict, "username is already taken")
	} else if !errors.Is(err, sql.ErrNoRows) {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check username")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to hash password")
	}

	user := &models.User{
		Username:     req.Username,
		PasswordHash: string(hash),
		FullName:     req.FullName,
		Role:         models.RoleStudent,
		Approval:     models.ApprovalPending,
		ClassName:    req.ClassName,
		ClassSection: req.ClassSection,
	}
	if err := s.repo.Create(ctx, user); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create account")
	}

	app := &models.StudentApplication{
		Username:     req.Username,
		FullName:     req.FullName,
		ClassName:    req.ClassName,
		ClassSection: req.ClassSection,
	}
	if err := s.repo.CreateApplication(ctx, app); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to submit application")
	}

	if s.sessions != nil {
		s.sessions.Login(models.RolePending, req.Username)
	}

	if err := s.repo.CreateAuditLog(ctx, &models.AuditLog{
		UserID:     &user.ID,
		Action:     models.AuditActionApplicationNew,
		Resource:   "applications",
		ResourceID: &app.ID,
	}); err != nil {
		s.logger.Warn("failed to record application audit log", zap.Error(err))
	}
	return app, nil
}

// Logout clears the persisted session. Tokens are short-lived and simply
// expire.
func (s *AuthService) Logout(ctx context.Context, actor *models.JWTClaims) {
	if s.sessions != nil {
		s.sessions.Logout()
	}
	if actor == nil {
		return
	}
	if err := s.repo.CreateAuditLog(ctx, &models.AuditLog{
		UserID:     &actor.UserID,
		Action:     models.AuditActionLogout,
		Resource:   "auth",
		ResourceID: &actor.UserID,
	}); err != nil {
		s.logger.Warn("failed to record logout audit log", zap.Error(err))
	}
}

// ValidateToken parses and validates an access token returning the claims.
func (s *AuthService) ValidateToken(tokenString string) (*models.JWTClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &models.JWTClaims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.config.AccessTokenSecret), nil
	})
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrUnauthorized.Code, appErrors.ErrUnauthorized.Status, "invalid token")
	}

	claims, ok := token.Claims.(*models.JWTClaims)
	if !ok || !token.Valid {
		return nil, appErrors.Clone(appErrors.ErrUnauthorized, "invalid token claims")
	}
	return claims, nil
}

func (s *AuthService) issueLogin(user *models.User) (*models.LoginResponse, error) {
	token, err := s.generateAccessToken(user)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create access token")
	}

	var rec session.Record
	if s.sessions != nil {
		rec, _ = s.sessions.Login(user.Role, user.Username)
	} else {
		rec = session.Record{Role: user.Role, Username: user.Username, CreatedAt: time.Now().UTC()}
	}

	return &models.LoginResponse{
		AccessToken: token,
		ExpiresIn:   int64(s.config.AccessTokenExpiry.Seconds()),
		IssuedAt:    time.Now().UTC(),
		Session:     rec,
	}, nil
}

func (s *AuthService) afterLogin(ctx context.Context, user *models.User, req models.LoginRequest) {
	if err := s.repo.UpdateLastLogin(ctx, user.ID, time.Now().UTC()); err != nil {
		s.logger.Warn("failed to update last login", zap.Error(err))
	}
	if err := s.repo.CreateAuditLog(ctx, &models.AuditLog{
		UserID:     &user.ID,
		Action:     models.AuditActionLogin,
		Resource:   "auth",
		ResourceID: &user.ID,
		NewValues:  []byte(fmt.Sprintf(`{"role":%q}`, user.Role)),
		IPAddress:  req.IP,
		UserAgent:  req.UserAgent,
	}); err != nil {
		s.logger.Warn("failed to record login audit log", zap.Error(err))
	}
}

func (s *AuthService) generateAccessToken(user *models.User) (string, error) {
	issuedAt := time.Now().UTC()
	claims := &models.JWTClaims{
		UserID:   user.ID,
		Username: user.Username,
		Role:     user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.config.Issuer,
			Subject:   user.ID,
			ExpiresAt: jwt.NewNumericDate(issuedAt.Add(s.config.AccessTokenExpiry)),
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			NotBefore: jwt.NewNumericDate(issuedAt),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.config.AccessTokenSecret))
}
