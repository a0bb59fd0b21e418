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

type homeworkRepository interface {
	List(ctx context.Context) ([]models.Homework, error)
	GetByID(ctx context.Context, id int64) (*models.Homework, error)
	Create(ctx context.Context, hw *models.Homework) error
	Update(ctx context.Context, hw *models.Homework) error
	Delete(ctx context.Context, id int64) error
}

// HomeworkService handles homework workflows.
type HomeworkService struct {
	repo      homeworkRepository
	gate      editGate
	cache     *CacheService
	validator *validator.Validate
	logger    *zap.Logger
}

// NewHomeworkService constructs the service.
func NewHomeworkService(repo homeworkRepository, gate editGate, cache *CacheService, validate *validator.Validate, logger *zap.Logger) *HomeworkService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &HomeworkService{repo: repo, gate: gate, cache: cache, validator: validate, logger: logger}
}

const homeworkListCacheKey = "content:homework:list"

// HomeworkRequest describes create and update payloads.
type HomeworkRequest struct {
	Title   string `json:"title" validate:"required,max=200"`
	Content string `json:"content" validate:"required"`
	Subject string `json:"subject" validate:"required,max=100"`
	Teacher string `json:"teacher" validate:"required,max=100"`
	DueDate string `json:"due_date" validate:"required,datetime=2006-01-02"`
}

// List returns all homework entries.
func (s *HomeworkService) List(ctx context.Context) ([]models.Homework, error) {
	var cached []models.Homework
	if s.cache != nil {
		if hit, err := s.cache.Get(ctx, homeworkListCacheKey, &cached); err == nil && hit {
			return cached, nil
		}
	}
	rows, err := s.repo.List(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list homework")
	}
	if s.cache != nil {
		_ = s.cache.Set(ctx, homeworkListCacheKey, rows, 5*time.Minute)
	}
	return rows, nil
}

// Get returns a homework entry by id.
func (s *HomeworkService) Get(ctx context.Context, id int64) (*models.Homework, error) {
	hw, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "homework not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to get homework")
	}
	return hw, nil
}

// Create registers a new homework entry.
func (s *HomeworkService) Create(ctx context.Context, actor *models.JWTClaims, req HomeworkRequest) (*models.Homework, error) {
	if err := s.gate.Authorize(ctx, actorRole(actor), models.SectionHomework, nil); err != nil {
		return nil, err
	}
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid payload")
	}
	hw := &models.Homework{
		Title:   req.Title,
		Content: req.Content,
		Subject: req.Subject,
		Teacher: req.Teacher,
		DueDate: req.DueDate,
		Author:  actorName(actor),
	}
	if err := s.repo.Create(ctx, hw); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create homework")
	}
	s.invalidate(ctx)
	return hw, nil
}

// Update modifies an existing homework entry.
func (s *HomeworkService) Update(ctx context.Context, actor *models.JWTClaims, id int64, req HomeworkRequest) (*models.Homework, error) {
	if err := s.gate.Authorize(ctx, actorRole(actor), models.SectionHomework, &id); err != nil {
		return nil, err
	}
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid payload")
	}
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "homework not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load homework")
	}
	existing.Title = req.Title
	existing.Content = req.Content
	existing.Subject = req.Subject
	existing.Teacher = req.Teacher
	existing.DueDate = req.DueDate
	if err := s.repo.Update(ctx, existing); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update homework")
	}
	s.invalidate(ctx)
	return existing, nil
}

// Delete removes a homework entry and collects its lock row.
func (s *HomeworkService) Delete(ctx context.Context, actor *models.JWTClaims, id int64) error {
	if err := s.gate.Authorize(ctx, actorRole(actor), models.SectionHomework, &id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete homework")
	}
	s.gate.CollectItemLock(ctx, models.SectionHomework, id)
	s.invalidate(ctx)
	return nil
}

func (s *HomeworkService) invalidate(ctx context.Context) {
	if s.cache != nil {
		if err := s.cache.Invalidate(ctx, homeworkListCacheKey); err != nil {
			s.logger.Warn("homework cache invalidation failed", zap.Error(err))
		}
	}
}
