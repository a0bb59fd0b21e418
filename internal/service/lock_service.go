package service

import (
	"context"
	"encoding/json"
	"time"

	"go.uber.org/zap"

	"github.com/campusboard/portal-api/internal/lock"
	"github.com/campusboard/portal-api/internal/models"
	appErrors "github.com/campusboard/portal-api/pkg/errors"
)

type lockStore interface {
	MasterLocked(ctx context.Context) (bool, error)
	SetMasterLock(ctx context.Context, state bool, updatedBy *string) error
	SectionLocks(ctx context.Context) (map[models.Section]bool, error)
	SectionLocked(ctx context.Context, section models.Section) (bool, error)
	SetSectionLock(ctx context.Context, section models.Section, state bool, updatedBy *string) error
	ItemLocksBySection(ctx context.Context, section models.Section) ([]models.ItemLock, error)
	SetItemLock(ctx context.Context, section models.Section, itemID int64, state bool, updatedBy *string) error
	DeleteItemLock(ctx context.Context, section models.Section, itemID int64) error
}

type auditLogger interface {
	CreateAuditLog(ctx context.Context, log *models.AuditLog) error
}

// Cache key layout. Master invalidation sweeps every section snapshot since
// the master flag short-circuits everything below it.
const (
	lockCachePrefix     = "locks:section:"
	lockCacheAllPattern = "locks:*"
)

func sectionCacheKey(section models.Section) string {
	return lockCachePrefix + string(section)
}

// LockService owns lock snapshots and admin lock transitions. A transition is
// applied at the store first; caches are only invalidated after the store
// acknowledges, so a failed mutation never leaves a speculative state behind.
type LockService struct {
	store    lockStore
	cache    *CacheService
	metrics  *MetricsService
	audit    auditLogger
	logger   *zap.Logger
	cacheTTL time.Duration
}

// NewLockService constructs the service.
func NewLockService(store lockStore, cache *CacheService, metrics *MetricsService, audit auditLogger, logger *zap.Logger, cacheTTL time.Duration) *LockService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cacheTTL <= 0 {
		cacheTTL = 30 * time.Second
	}
	return &LockService{store: store, cache: cache, metrics: metrics, audit: audit, logger: logger, cacheTTL: cacheTTL}
}

// Snapshot returns the shared per-section lock view, served from cache when
// possible. Every consumer of a section reads this one entry.
func (s *LockService) Snapshot(ctx context.Context, section models.Section) (models.SectionSnapshot, error) {
	var snap models.SectionSnapshot
	if s.cache != nil {
		if hit, err := s.cache.Get(ctx, sectionCacheKey(section), &snap); err == nil && hit {
			return snap, nil
		}
	}

	snap, err := s.buildSnapshot(ctx, section)
	if err != nil {
		return models.SectionSnapshot{}, err
	}

	if s.cache != nil {
		_ = s.cache.Set(ctx, sectionCacheKey(section), snap, s.cacheTTL)
	}
	return snap, nil
}

func (s *LockService) buildSnapshot(ctx context.Context, section models.Section) (models.SectionSnapshot, error) {
	master, err := s.store.MasterLocked(ctx)
	if err != nil {
		return models.SectionSnapshot{}, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load master lock")
	}
	sectionLocked, err := s.store.SectionLocked(ctx, section)
	if err != nil {
		return models.SectionSnapshot{}, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load section lock")
	}
	items, err := s.store.ItemLocksBySection(ctx, section)
	if err != nil {
		return models.SectionSnapshot{}, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load item locks")
	}

	itemFlags := make(map[int64]bool, len(items))
	for _, item := range items {
		if item.Locked {
			itemFlags[item.ItemID] = true
		}
	}

	return models.SectionSnapshot{
		Section:     section,
		Master:      master,
		Locked:      sectionLocked,
		Items:       itemFlags,
		RefreshedAt: time.Now().UTC(),
	}, nil
}

// Overview aggregates the full lock state for the admin console.
func (s *LockService) Overview(ctx context.Context) (*models.LockOverview, error) {
	master, err := s.store.MasterLocked(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load master lock")
	}
	sections, err := s.store.SectionLocks(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load section locks")
	}
	items := make(map[models.Section][]models.ItemLock, len(sections))
	for _, section := range models.Sections() {
		rows, err := s.store.ItemLocksBySection(ctx, section)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load item locks")
		}
		items[section] = rows
	}
	return &models.LockOverview{Master: master, Sections: sections, Items: items}, nil
}

// Authorize decides whether the caller may run a mutating operation against
// the given item (or the section itself when itemID is nil). The evaluator is
// the single source of the verdict; the error only refines why it failed.
func (s *LockService) Authorize(ctx context.Context, role models.Role, section models.Section, itemID *int64) error {
	snap, err := s.Snapshot(ctx, section)
	if err != nil {
		return err
	}

	allowed := false
	if itemID == nil {
		allowed = lock.CanEditSection(role, snap.Master, snap.Locked)
	} else {
		allowed = lock.Verdict(role, snap, *itemID)
	}
	if allowed {
		return nil
	}
	if !role.EditorCapable() {
		return appErrors.Clone(appErrors.ErrForbidden, "editing requires editor access")
	}
	return appErrors.Clone(appErrors.ErrLocked, "content is locked by an administrator")
}

// SetMaster flips the master lock. Since the master flag short-circuits every
// subordinate check, success invalidates every cached section snapshot.
func (s *LockService) SetMaster(ctx context.Context, state bool, actor *models.JWTClaims) error {
	if err := s.store.SetMasterLock(ctx, state, actorID(actor)); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to set master lock")
	}
	s.afterTransition(ctx, actor, "master", "", nil, state, lockCacheAllPattern)
	return nil
}

// SetSection flips one section lock and invalidates that section's snapshot.
func (s *LockService) SetSection(ctx context.Context, section models.Section, state bool, actor *models.JWTClaims) error {
	if err := s.store.SetSectionLock(ctx, section, state, actorID(actor)); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to set section lock")
	}
	s.afterTransition(ctx, actor, "section", section, nil, state, sectionCacheKey(section))
	return nil
}

// SetItem flips one item lock. Only the owning section's snapshot changes.
func (s *LockService) SetItem(ctx context.Context, section models.Section, itemID int64, state bool, actor *models.JWTClaims) error {
	if err := s.store.SetItemLock(ctx, section, itemID, state, actorID(actor)); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to set item lock")
	}
	s.afterTransition(ctx, actor, "item", section, &itemID, state, sectionCacheKey(section))
	return nil
}

// CollectItemLock removes the lock row of a deleted entity. Failures are
// logged, not surfaced: an orphaned row is harmless, the delete already
// succeeded.
func (s *LockService) CollectItemLock(ctx context.Context, section models.Section, itemID int64) {
	if err := s.store.DeleteItemLock(ctx, section, itemID); err != nil {
		s.logger.Warn("failed to garbage-collect item lock",
			zap.String("section", string(section)), zap.Int64("item_id", itemID), zap.Error(err))
		return
	}
	if s.cache != nil {
		_ = s.cache.Invalidate(ctx, sectionCacheKey(section))
	}
}

func (s *LockService) afterTransition(ctx context.Context, actor *models.JWTClaims, tier string, section models.Section, itemID *int64, state bool, pattern string) {
	if s.metrics != nil {
		s.metrics.RecordLockTransition(tier, state)
	}
	if s.cache != nil {
		if err := s.cache.Invalidate(ctx, pattern); err != nil {
			s.logger.Warn("lock cache invalidation failed", zap.String("pattern", pattern), zap.Error(err))
		}
	}
	if s.audit != nil {
		values, _ := json.Marshal(map[string]interface{}{
			"tier":    tier,
			"section": section,
			"item_id": itemID,
			"locked":  state,
		})
		resourceID := tier
		if section != "" {
			resourceID = string(section)
		}
		if err := s.audit.CreateAuditLog(ctx, &models.AuditLog{
			UserID:     actorID(actor),
			Action:     models.AuditActionLockChange,
			Resource:   "locks",
			ResourceID: &resourceID,
			NewValues:  values,
		}); err != nil {
			s.logger.Warn("failed to record lock audit log", zap.Error(err))
		}
	}
}

func actorID(actor *models.JWTClaims) *string {
	if actor == nil {
		return nil
	}
	id := actor.UserID
	return &id
}
