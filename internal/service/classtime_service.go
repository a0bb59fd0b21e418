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

type classTimeRepository interface {
	List(ctx context.Context) ([]models.ClassTimeSlot, error)
	GetByID(ctx context.Context, id int64) (*models.ClassTimeSlot, error)
	Create(ctx context.Context, slot *models.ClassTimeSlot) error
	Update(ctx context.Context, slot *models.ClassTimeSlot) error
	Delete(ctx context.Context, id int64) error
}

// ClassTimeService handles class time schedule workflows.
type ClassTimeService struct {
	repo      classTimeRepository
	gate      editGate
	cache     *CacheService
	validator *validator.Validate
	logger    *zap.Logger
}

// NewClassTimeService constructs the service.
func NewClassTimeService(repo classTimeRepository, gate editGate, cache *CacheService, validate *validator.Validate, logger *zap.Logger) *ClassTimeService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ClassTimeService{repo: repo, gate: gate, cache: cache, validator: validate, logger: logger}
}

const classTimeListCacheKey = "content:classTime:list"

// ClassTimeRequest describes create and update payloads.
type ClassTimeRequest struct {
	WeekDay   string `json:"week_day" validate:"required,oneof=Sunday Monday Tuesday Wednesday Thursday Friday Saturday"`
	StartTime string `json:"start_time" validate:"required,datetime=15:04"`
	EndTime   string `json:"end_time" validate:"required,datetime=15:04"`
	Subject   string `json:"subject" validate:"required,max=100"`
	Teacher   string `json:"teacher" validate:"required,max=100"`
}

// List returns the full schedule.
func (s *ClassTimeService) List(ctx context.Context) ([]models.ClassTimeSlot, error) {
	var cached []models.ClassTimeSlot
	if s.cache != nil {
		if hit, err := s.cache.Get(ctx, classTimeListCacheKey, &cached); err == nil && hit {
			return cached, nil
		}
	}
	rows, err := s.repo.List(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list class times")
	}
	if s.cache != nil {
		_ = s.cache.Set(ctx, classTimeListCacheKey, rows, 5*time.Minute)
	}
	return rows, nil
}

// Get returns a schedule slot by id.
func (s *ClassTimeService) Get(ctx context.Context, id int64) (*models.ClassTimeSlot, error) {
	slot, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "class time not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to get class time")
	}
	return slot, nil
}

// Create registers a new schedule slot.
func (s *ClassTimeService) Create(ctx context.Context, actor *models.JWTClaims, req ClassTimeRequest) (*models.ClassTimeSlot, error) {
	if err := s.gate.Authorize(ctx, actorRole(actor), models.SectionClassTime, nil); err != nil {
		return nil, err
	}
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid payload")
	}
	if req.EndTime <= req.StartTime {
		return nil, appErrors.Clone(appErrors.ErrValidation, "end_time must be after start_time")
	}
	slot := &models.ClassTimeSlot{
		WeekDay:   req.WeekDay,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
		Subject:   req.Subject,
		Teacher:   req.Teacher,
		Author:    actorName(actor),
	}
	if err := s.repo.Create(ctx, slot); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create class time")
	}
	s.invalidate(ctx)
	return slot, nil
}

// Update modifies an existing schedule slot.
func (s *ClassTimeService) Update(ctx context.Context, actor *models.JWTClaims, id int64, req ClassTimeRequest) (*models.ClassTimeSlot, error) {
	if err := s.gate.Authorize(ctx, actorRole(actor), models.SectionClassTime, &id); err != nil {
		return nil, err
	}
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid payload")
	}
	if req.EndTime <= req.StartTime {
		return nil, appErrors.Clone(appErrors.ErrValidation, "end_time must be after start_time")
	}
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "class time not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load class time")
	}
	existing.WeekDay = req.WeekDay
	existing.StartTime = req.StartTime
	existing.EndTime = req.EndTime
	existing.Subject = req.Subject
	existing.Teacher = req.Teacher
	if err := s.repo.Update(ctx, existing); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update class time")
	}
	s.invalidate(ctx)
	return existing, nil
}

// Delete removes a schedule slot and collects its lock row.
func (s *ClassTimeService) Delete(ctx context.Context, actor *models.JWTClaims, id int64) error {
	if err := s.gate.Authorize(ctx, actorRole(actor), models.SectionClassTime, &id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete class time")
	}
	s.gate.CollectItemLock(ctx, models.SectionClassTime, id)
	s.invalidate(ctx)
	return nil
}

func (s *ClassTimeService) invalidate(ctx context.Context) {
	if s.cache != nil {
		if err := s.cache.Invalidate(ctx, classTimeListCacheKey); err != nil {
			s.logger.Warn("class time cache invalidation failed", zap.Error(err))
		}
	}
}
