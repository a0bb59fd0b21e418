package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/campusboard/portal-api/internal/models"
)

// LockRepository persists the three lock tiers. Absent rows mean unlocked;
// rows are created on first write and toggled afterwards.
type LockRepository struct {
	db *sqlx.DB
}

// NewLockRepository constructs the repository.
func NewLockRepository(db *sqlx.DB) *LockRepository {
	return &LockRepository{db: db}
}

// MasterLocked reports the global flag.
func (r *LockRepository) MasterLocked(ctx context.Context) (bool, error) {
	const query = `SELECT locked FROM master_lock WHERE singleton = TRUE`
	var locked bool
	if err := r.db.GetContext(ctx, &locked, query); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("get master lock: %w", err)
	}
	return locked, nil
}

// SetMasterLock upserts the global flag. Idempotent.
func (r *LockRepository) SetMasterLock(ctx context.Context, state bool, updatedBy *string) error {
	const query = `INSERT INTO master_lock (singleton, locked, updated_by, updated_at)
VALUES (TRUE, $1, $2, $3)
ON CONFLICT (singleton)
DO UPDATE SET locked = EXCLUDED.locked, updated_by = EXCLUDED.updated_by, updated_at = EXCLUDED.updated_at`
	if _, err := r.db.ExecContext(ctx, query, state, updatedBy, time.Now().UTC()); err != nil {
		return fmt.Errorf("set master lock: %w", err)
	}
	return nil
}

// SectionLocks returns the flag for every known section, defaulting missing
// rows to unlocked.
func (r *LockRepository) SectionLocks(ctx context.Context) (map[models.Section]bool, error) {
	const query = `SELECT section, locked, updated_by, updated_at FROM section_locks`
	var rows []models.SectionLock
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("list section locks: %w", err)
	}
	locks := make(map[models.Section]bool, len(models.Sections()))
	for _, section := range models.Sections() {
		locks[section] = false
	}
	for _, row := range rows {
		locks[row.Section] = row.Locked
	}
	return locks, nil
}

// SectionLocked reports a single section flag.
func (r *LockRepository) SectionLocked(ctx context.Context, section models.Section) (bool, error) {
	const query = `SELECT locked FROM section_locks WHERE section = $1`
	var locked bool
	if err := r.db.GetContext(ctx, &locked, query, section); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("get section lock %s: %w", section, err)
	}
	return locked, nil
}

// SetSectionLock upserts a section flag. Idempotent.
func (r *LockRepository) SetSectionLock(ctx context.Context, section models.Section, state bool, updatedBy *string) error {
	const query = `INSERT INTO section_locks (section, locked, updated_by, updated_at)
VALUES ($1, $2, $3, $4)
ON CONFLICT (section)
DO UPDATE SET locked = EXCLUDED.locked, updated_by = EXCLUDED.updated_by, updated_at = EXCLUDED.updated_at`
	if _, err := r.db.ExecContext(ctx, query, section, state, updatedBy, time.Now().UTC()); err != nil {
		return fmt.Errorf("set section lock %s: %w", section, err)
	}
	return nil
}

// ItemLocksBySection returns every item lock row in the section.
func (r *LockRepository) ItemLocksBySection(ctx context.Context, section models.Section) ([]models.ItemLock, error) {
	const query = `SELECT section, item_id, locked, updated_by, updated_at
FROM item_locks WHERE section = $1 ORDER BY item_id ASC`
	var rows []models.ItemLock
	if err := r.db.SelectContext(ctx, &rows, query, section); err != nil {
		return nil, fmt.Errorf("list item locks %s: %w", section, err)
	}
	return rows, nil
}

// SetItemLock upserts an item flag. Repeating the same state is a no-op at
// the store, never a toggle.
func (r *LockRepository) SetItemLock(ctx context.Context, section models.Section, itemID int64, state bool, updatedBy *string) error {
	const query = `INSERT INTO item_locks (section, item_id, locked, updated_by, updated_at)
VALUES ($1, $2, $3, $4, $5)
ON CONFLICT (section, item_id)
DO UPDATE SET locked = EXCLUDED.locked, updated_by = EXCLUDED.updated_by, updated_at = EXCLUDED.updated_at`
	if _, err := r.db.ExecContext(ctx, query, section, itemID, state, updatedBy, time.Now().UTC()); err != nil {
		return fmt.Errorf("set item lock %s/%d: %w", section, itemID, err)
	}
	return nil
}

// DeleteItemLock garbage-collects the lock row of a deleted entity.
func (r *LockRepository) DeleteItemLock(ctx context.Context, section models.Section, itemID int64) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM item_locks WHERE section = $1 AND item_id = $2`, section, itemID); err != nil {
		return fmt.Errorf("delete item lock %s/%d: %w", section, itemID, err)
	}
	return nil
}
