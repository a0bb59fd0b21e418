package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/campusboard/portal-api/internal/models"
)

// HomeworkRepository provides persistence for homework entries.
type HomeworkRepository struct {
	db *sqlx.DB
}

// NewHomeworkRepository creates the repository.
func NewHomeworkRepository(db *sqlx.DB) *HomeworkRepository {
	return &HomeworkRepository{db: db}
}

// List returns homework entries newest first.
func (r *HomeworkRepository) List(ctx context.Context) ([]models.Homework, error) {
	const query = `SELECT id, title, content, subject, teacher, due_date, author, created_at, updated_at
FROM homework ORDER BY created_at DESC`
	var entries []models.Homework
	if err := r.db.SelectContext(ctx, &entries, query); err != nil {
		return nil, fmt.Errorf("list homework: %w", err)
	}
	return entries, nil
}

// GetByID returns a homework entry by identifier.
func (r *HomeworkRepository) GetByID(ctx context.Context, id int64) (*models.Homework, error) {
	const query = `SELECT id, title, content, subject, teacher, due_date, author, created_at, updated_at
FROM homework WHERE id = $1`
	var hw models.Homework
	if err := r.db.GetContext(ctx, &hw, query, id); err != nil {
		return nil, err
	}
	return &hw, nil
}

// Create inserts a new homework entry; the store assigns the id.
func (r *HomeworkRepository) Create(ctx context.Context, hw *models.Homework) error {
	now := time.Now().UTC()
	hw.CreatedAt = now
	hw.UpdatedAt = now
	const query = `INSERT INTO homework (title, content, subject, teacher, due_date, author, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8) RETURNING id`
	if err := r.db.GetContext(ctx, &hw.ID, query, hw.Title, hw.Content, hw.Subject, hw.Teacher, hw.DueDate, hw.Author, hw.CreatedAt, hw.UpdatedAt); err != nil {
		return fmt.Errorf("create homework: %w", err)
	}
	return nil
}

// Update modifies an existing homework entry.
func (r *HomeworkRepository) Update(ctx context.Context, hw *models.Homework) error {
	hw.UpdatedAt = time.Now().UTC()
	const query = `UPDATE homework SET title = :title, content = :content, subject = :subject,
teacher = :teacher, due_date = :due_date, updated_at = :updated_at WHERE id = :id`
	if _, err := r.db.NamedExecContext(ctx, query, hw); err != nil {
		return fmt.Errorf("update homework: %w", err)
	}
	return nil
}

// Delete removes a homework entry.
func (r *HomeworkRepository) Delete(ctx context.Context, id int64) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM homework WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete homework: %w", err)
	}
	return nil
}
