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

type routineRepository interface {
	List(ctx context.Context) ([]models.RoutineSet, error)
	GetByID(ctx context.Context, id int64) (*models.RoutineSet, error)
	Create(ctx context.Context, routine *models.RoutineSet) error
	Update(ctx context.Context, routine *models.RoutineSet) error
	Delete(ctx context.Context, id int64) error
}

// RoutineService handles weekly routine workflows.
type RoutineService struct {
	repo      routineRepository
	gate      editGate
	cache     *CacheService
	validator *validator.Validate
	logger    *zap.Logger
}

// NewRoutineService constructs the service.
func NewRoutineService(repo routineRepository, gate editGate, cache *CacheService, validate *validator.Validate, logger *zap.Logger) *RoutineService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RoutineService{repo: repo, gate: gate, cache: cache, validator: validate, logger: logger}
}

const routineListCacheKey = "content:routine:list"

// RoutineRequest describes create and update payloads.
type RoutineRequest struct {
	Days models.RoutineDays `json:"days" validate:"required,min=1,max=7,dive"`
}

func (s *RoutineService) validateDays(days models.RoutineDays) error {
	seen := make(map[string]bool, len(days))
	for _, day := range days {
		if day.DayName == "" {
			return appErrors.Clone(appErrors.ErrValidation, "day_name is required")
		}
		if seen[day.DayName] {
			return appErrors.Clone(appErrors.ErrValidation, "duplicate day "+day.DayName)
		}
		seen[day.DayName] = true
	}
	return nil
}

// List returns all routine sets.
func (s *RoutineService) List(ctx context.Context) ([]models.RoutineSet, error) {
	var cached []models.RoutineSet
	if s.cache != nil {
		if hit, err := s.cache.Get(ctx, routineListCacheKey, &cached); err == nil && hit {
			return cached, nil
		}
	}
	rows, err := s.repo.List(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list routines")
	}
	if s.cache != nil {
		_ = s.cache.Set(ctx, routineListCacheKey, rows, 5*time.Minute)
	}
	return rows, nil
}

// Get returns a routine set by id.
func (s *RoutineService) Get(ctx context.Context, id int64) (*models.RoutineSet, error) {
	routine, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "routine not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to get routine")
	}
	return routine, nil
}

// Create registers a new routine set.
func (s *RoutineService) Create(ctx context.Context, actor *models.JWTClaims, req RoutineRequest) (*models.RoutineSet, error) {
	if err := s.gate.Authorize(ctx, actorRole(actor), models.SectionRoutine, nil); err != nil {
		return nil, err
	}
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid payload")
	}
	if err := s.validateDays(req.Days); err != nil {
		return nil, err
	}
	routine := &models.RoutineSet{Days: req.Days, Author: actorName(actor)}
	if err := s.repo.Create(ctx, routine); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create routine")
	}
	s.invalidate(ctx)
	return routine, nil
}

// Update replaces the days of an existing routine set.
func (s *RoutineService) Update(ctx context.Context, actor *models.JWTClaims, id int64, req RoutineRequest) (*models.RoutineSet, error) {
	if err := s.gate.Authorize(ctx, actorRole(actor), models.SectionRoutine, &id); err != nil {
		return nil, err
	}
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid payload")
	}
	if err := s.validateDays(req.Days); err != nil {
		return nil, err
	}
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "routine not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load routine")
	}
	existing.Days = req.Days
	if err := s.repo.Update(ctx, existing); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update routine")
	}
	s.invalidate(ctx)
	return existing, nil
}

// Delete removes a routine set and collects its lock row.
func (s *RoutineService) Delete(ctx context.Context, actor *models.JWTClaims, id int64) error {
	if err := s.gate.Authorize(ctx, actorRole(actor), models.SectionRoutine, &id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete routine")
	}
	s.gate.CollectItemLock(ctx, models.SectionRoutine, id)
	s.invalidate(ctx)
	return nil
}

func (s *RoutineService) invalidate(ctx context.Context) {
	if s.cache != nil {
		if err := s.cache.Invalidate(ctx, routineListCacheKey); err != nil {
			s.logger.Warn("routine cache invalidation failed", zap.Error(err))
		}
	}
}
