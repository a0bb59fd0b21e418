package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/campusboard/portal-api/internal/models"
)

// ClassTimeRepository provides persistence for class time schedule slots.
type ClassTimeRepository struct {
	db *sqlx.DB
}

// NewClassTimeRepository creates the repository.
func NewClassTimeRepository(db *sqlx.DB) *ClassTimeRepository {
	return &ClassTimeRepository{db: db}
}

// List returns slots ordered by week day then start time.
func (r *ClassTimeRepository) List(ctx context.Context) ([]models.ClassTimeSlot, error) {
	const query = `SELECT id, week_day, start_time, end_time, subject, teacher, author, created_at, updated_at
FROM class_times ORDER BY week_day ASC, start_time ASC`
	var slots []models.ClassTimeSlot
	if err := r.db.SelectContext(ctx, &slots, query); err != nil {
		return nil, fmt.Errorf("list class times: %w", err)
	}
	return slots, nil
}

// GetByID returns a slot by identifier.
func (r *ClassTimeRepository) GetByID(ctx context.Context, id int64) (*models.ClassTimeSlot, error) {
	const query = `SELECT id, week_day, start_time, end_time, subject, teacher, author, created_at, updated_at
FROM class_times WHERE id = $1`
	var slot models.ClassTimeSlot
	if err := r.db.GetContext(ctx, &slot, query, id); err != nil {
		return nil, err
	}
	return &slot, nil
}

// Create inserts a new slot; the store assigns the id.
func (r *ClassTimeRepository) Create(ctx context.Context, slot *models.ClassTimeSlot) error {
	now := time.Now().UTC()
	slot.CreatedAt = now
	slot.UpdatedAt = now
	const query = `INSERT INTO class_times (week_day, start_time, end_time, subject, teacher, author, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8) RETURNING id`
	if err := r.db.GetContext(ctx, &slot.ID, query, slot.WeekDay, slot.StartTime, slot.EndTime, slot.Subject, slot.Teacher, slot.Author, slot.CreatedAt, slot.UpdatedAt); err != nil {
		return fmt.Errorf("create class time: %w", err)
	}
	return nil
}

// Update modifies an existing slot.
func (r *ClassTimeRepository) Update(ctx context.Context, slot *models.ClassTimeSlot) error {
	slot.UpdatedAt = time.Now().UTC()
	const query = `UPDATE class_times SET week_day = :week_day, start_time = :start_time, end_time = :end_time,
subject = :subject, teacher = :teacher, updated_at = :updated_at WHERE id = :id`
	if _, err := r.db.NamedExecContext(ctx, query, slot); err != nil {
		return fmt.Errorf("update class time: %w", err)
	}
	return nil
}

// Delete removes a slot.
func (r *ClassTimeRepository) Delete(ctx context.Context, id int64) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM class_times WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete class time: %w", err)
	}
	return nil
}
