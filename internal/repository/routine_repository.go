package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/campusboard/portal-api/internal/models"
)

// RoutineRepository provides persistence for weekly class routines.
type RoutineRepository struct {
	db *sqlx.DB
}

// NewRoutineRepository creates the repository.
func NewRoutineRepository(db *sqlx.DB) *RoutineRepository {
	return &RoutineRepository{db: db}
}

// List returns routines newest first.
func (r *RoutineRepository) List(ctx context.Context) ([]models.RoutineSet, error) {
	const query = `SELECT id, days, author, created_at, updated_at
FROM routines ORDER BY created_at DESC`
	var routines []models.RoutineSet
	if err := r.db.SelectContext(ctx, &routines, query); err != nil {
		return nil, fmt.Errorf("list routines: %w", err)
	}
	return routines, nil
}

// GetByID returns a routine by identifier.
func (r *RoutineRepository) GetByID(ctx context.Context, id int64) (*models.RoutineSet, error) {
	const query = `SELECT id, days, author, created_at, updated_at FROM routines WHERE id = $1`
	var routine models.RoutineSet
	if err := r.db.GetContext(ctx, &routine, query, id); err != nil {
		return nil, err
	}
	return &routine, nil
}

// Create inserts a new routine; the store assigns the id.
func (r *RoutineRepository) Create(ctx context.Context, routine *models.RoutineSet) error {
	now := time.Now().UTC()
	routine.CreatedAt = now
	routine.UpdatedAt = now
	const query = `INSERT INTO routines (days, author, created_at, updated_at)
VALUES ($1, $2, $3, $4) RETURNING id`
	if err := r.db.GetContext(ctx, &routine.ID, query, routine.Days, routine.Author, routine.CreatedAt, routine.UpdatedAt); err != nil {
		return fmt.Errorf("create routine: %w", err)
	}
	return nil
}

// Update replaces the day grid of an existing routine.
func (r *RoutineRepository) Update(ctx context.Context, routine *models.RoutineSet) error {
	routine.UpdatedAt = time.Now().UTC()
	const query = `UPDATE routines SET days = $1, updated_at = $2 WHERE id = $3`
	if _, err := r.db.ExecContext(ctx, query, routine.Days, routine.UpdatedAt, routine.ID); err != nil {
		return fmt.Errorf("update routine: %w", err)
	}
	return nil
}

// Delete removes a routine.
func (r *RoutineRepository) Delete(ctx context.Context, id int64) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM routines WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete routine: %w", err)
	}
	return nil
}
