package repository

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campusboard/portal-api/internal/models"
)

func newRepoMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	sqlxDB := sqlx.NewDb(db, "postgres")
	return sqlxDB, mock, func() {
		sqlxDB.Close()
		db.Close()
	}
}

func TestLockRepositoryMasterLockedDefaultsFalse(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()

	repo := NewLockRepository(db)
	mock.ExpectQuery("SELECT locked FROM master_lock").
		WillReturnRows(sqlmock.NewRows([]string{"locked"}))

	locked, err := repo.MasterLocked(context.Background())
	require.NoError(t, err)
	assert.False(t, locked)
}

func TestLockRepositoryMasterLocked(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()

	repo := NewLockRepository(db)
	mock.ExpectQuery("SELECT locked FROM master_lock").
		WillReturnRows(sqlmock.NewRows([]string{"locked"}).AddRow(true))

	locked, err := repo.MasterLocked(context.Background())
	require.NoError(t, err)
	assert.True(t, locked)
}

func TestLockRepositorySetMasterLock(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()

	repo := NewLockRepository(db)
	admin := "admin"
	mock.ExpectExec("INSERT INTO master_lock").
		WithArgs(true, &admin, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.SetMasterLock(context.Background(), true, &admin))
}

func TestLockRepositorySectionLocksFillMissing(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()

	repo := NewLockRepository(db)
	rows := sqlmock.NewRows([]string{"section", "locked", "updated_by", "updated_at"}).
		AddRow("homework", true, nil, time.Now())
	mock.ExpectQuery("SELECT section, locked").WillReturnRows(rows)

	locks, err := repo.SectionLocks(context.Background())
	require.NoError(t, err)
	assert.Len(t, locks, 4)
	assert.True(t, locks[models.SectionHomework])
	assert.False(t, locks[models.SectionNotices])
	assert.False(t, locks[models.SectionRoutine])
	assert.False(t, locks[models.SectionClassTime])
}

func TestLockRepositorySetItemLockIdempotent(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()

	repo := NewLockRepository(db)
	// Two identical upserts are two no-op conflicts at the store, never a
	// double toggle.
	for i := 0; i < 2; i++ {
		mock.ExpectExec("INSERT INTO item_locks").
			WithArgs("homework", int64(5), true, nil, sqlmock.AnyArg()).
			WillReturnResult(sqlmock.NewResult(0, 1))
	}

	require.NoError(t, repo.SetItemLock(context.Background(), models.SectionHomework, 5, true, nil))
	require.NoError(t, repo.SetItemLock(context.Background(), models.SectionHomework, 5, true, nil))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestLockRepositoryItemLocksBySection(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()

	repo := NewLockRepository(db)
	rows := sqlmock.NewRows([]string{"section", "item_id", "locked", "updated_by", "updated_at"}).
		AddRow("notices", int64(1), true, nil, time.Now()).
		AddRow("notices", int64(3), false, nil, time.Now())
	mock.ExpectQuery("SELECT section, item_id").
		WithArgs(models.SectionNotices).
		WillReturnRows(rows)

	locks, err := repo.ItemLocksBySection(context.Background(), models.SectionNotices)
	require.NoError(t, err)
	require.Len(t, locks, 2)
	assert.Equal(t, int64(1), locks[0].ItemID)
	assert.True(t, locks[0].Locked)
}

func TestLockRepositoryDeleteItemLock(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()

	repo := NewLockRepository(db)
	mock.ExpectExec("DELETE FROM item_locks").
		WithArgs(models.SectionHomework, int64(9)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.DeleteItemLock(context.Background(), models.SectionHomework, 9))
}
