package service

import (
	"context"
	"database/sql"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/campusboard/portal-api/internal/models"
	appErrors "github.com/campusboard/portal-api/pkg/errors"
)

// editGate decides whether a role may mutate content in a section, and
// collects the item lock row of deleted entities.
type editGate interface {
	Authorize(ctx context.Context, role models.Role, section models.Section, itemID *int64) error
	CollectItemLock(ctx context.Context, section models.Section, itemID int64)
}

type noticeRepository interface {
	List(ctx context.Context) ([]models.Notice, error)
	GetByID(ctx context.Context, id int64) (*models.Notice, error)
	Create(ctx context.Context, notice *models.Notice) error
	Update(ctx context.Context, notice *models.Notice) error
	Delete(ctx context.Context, id int64) error
}

// NoticeService handles notice workflows. Reads are open to everyone;
// mutations pass through the lock gate first.
type NoticeService struct {
	repo      noticeRepository
	gate      editGate
	cache     *CacheService
	validator *validator.Validate
	logger    *zap.Logger
}

// NewNoticeService constructs the service.
func NewNoticeService(repo noticeRepository, gate editGate, cache *CacheService, validate *validator.Validate, logger *zap.Logger) *NoticeService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &NoticeService{repo: repo, gate: gate, cache: cache, validator: validate, logger: logger}
}

const noticeListCacheKey = "content:notices:list"

// NoticeRequest describes create and update payloads.
type NoticeRequest struct {
	Title   string `json:"title" validate:"required,max=200"`
	Content string `json:"content" validate:"required"`
}

// List returns all notices, newest first.
func (s *NoticeService) List(ctx context.Context) ([]models.Notice, error) {
	var cached []models.Notice
	if s.cache != nil {
		if hit, err := s.cache.Get(ctx, noticeListCacheKey, &cached); err == nil && hit {
			return cached, nil
		}
	}
	rows, err := s.repo.List(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list notices")
	}
	if s.cache != nil {
		_ = s.cache.Set(ctx, noticeListCacheKey, rows, 5*time.Minute)
	}
	return rows, nil
}

// Get returns a notice by id.
func (s *NoticeService) Get(ctx context.Context, id int64) (*models.Notice, error) {
	notice, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "notice not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to get notice")
	}
	return notice, nil
}

// Create registers a new notice.
func (s *NoticeService) Create(ctx context.Context, actor *models.JWTClaims, req NoticeRequest) (*models.Notice, error) {
	if err := s.gate.Authorize(ctx, actorRole(actor), models.SectionNotices, nil); err != nil {
		return nil, err
	}
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid payload")
	}
	notice := &models.Notice{Title: req.Title, Content: req.Content, Author: actorName(actor)}
	if err := s.repo.Create(ctx, notice); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create notice")
	}
	s.invalidate(ctx)
	return notice, nil
}

// Update modifies an existing notice.
func (s *NoticeService) Update(ctx context.Context, actor *models.JWTClaims, id int64, req NoticeRequest) (*models.Notice, error) {
	if err := s.gate.Authorize(ctx, actorRole(actor), models.SectionNotices, &id); err != nil {
		return nil, err
	}
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid payload")
	}
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "notice not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load notice")
	}
	existing.Title = req.Title
	existing.Content = req.Content
	if err := s.repo.Update(ctx, existing); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update notice")
	}
	s.invalidate(ctx)
	return existing, nil
}

// Delete removes a notice and collects its lock row.
func (s *NoticeService) Delete(ctx context.Context, actor *models.JWTClaims, id int64) error {
	if err := s.gate.Authorize(ctx, actorRole(actor), models.SectionNotices, &id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete notice")
	}
	s.gate.CollectItemLock(ctx, models.SectionNotices, id)
	s.invalidate(ctx)
	return nil
}

func (s *NoticeService) invalidate(ctx context.Context) {
	if s.cache != nil {
		if err := s.cache.Invalidate(ctx, noticeListCacheKey); err != nil {
			s.logger.Warn("notice cache invalidation failed", zap.Error(err))
		}
	}
}

func actorRole(actor *models.JWTClaims) models.Role {
	if actor == nil {
		return models.RoleUnauthenticated
	}
	return actor.Role
}

func actorName(actor *models.JWTClaims) string {
	if actor == nil {
		return ""
	}
	return actor.Username
}
