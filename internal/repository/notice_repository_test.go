package repository

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campusboard/portal-api/internal/models"
)

func TestNoticeRepositoryList(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()

	repo := NewNoticeRepository(db)
	rows := sqlmock.NewRows([]string{"id", "title", "content", "author", "created_at", "updated_at"}).
		AddRow(int64(2), "Sports day", "Friday", "admin", time.Now(), time.Now()).
		AddRow(int64(1), "Exam schedule", "Next week", "admin", time.Now(), time.Now())
	mock.ExpectQuery("SELECT id, title, content").WillReturnRows(rows)

	notices, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, notices, 2)
	assert.Equal(t, int64(2), notices[0].ID)
}

func TestNoticeRepositoryCreateReturnsID(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()

	repo := NewNoticeRepository(db)
	mock.ExpectQuery("INSERT INTO notices").
		WithArgs("Holiday", "School closed Monday", "nadia", sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(7)))

	notice := &models.Notice{Title: "Holiday", Content: "School closed Monday", Author: "nadia"}
	require.NoError(t, repo.Create(context.Background(), notice))
	assert.Equal(t, int64(7), notice.ID)
}

func TestNoticeRepositoryUpdate(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()

	repo := NewNoticeRepository(db)
	mock.ExpectExec("UPDATE notices SET").
		WillReturnResult(sqlmock.NewResult(0, 1))

	notice := &models.Notice{ID: 7, Title: "Holiday", Content: "Updated"}
	require.NoError(t, repo.Update(context.Background(), notice))
}

func TestNoticeRepositoryDelete(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()

	repo := NewNoticeRepository(db)
	mock.ExpectExec("DELETE FROM notices").
		WithArgs(int64(7)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.Delete(context.Background(), 7))
}
