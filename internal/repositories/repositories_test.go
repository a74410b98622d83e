package repositories

import (
	"testing"
	"time"

	"quickgig/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	return db, mock
}

func TestApplicationRepository_CreateOrGet_Created(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewApplicationRepository()

	mock.ExpectQuery(`INSERT INTO "applications" .* ON CONFLICT \("shift_id","worker_id"\) DO NOTHING`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(9))

	app := &models.Application{ShiftID: 3, WorkerID: 4, Status: models.ApplicationStatusPending}
	result, created, err := repo.CreateOrGet(db, app)

	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, uint(9), result.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestApplicationRepository_CreateOrGet_ReturnsExisting(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewApplicationRepository()

	mock.ExpectQuery(`INSERT INTO "applications"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	now := time.Now()
	mock.ExpectQuery(`SELECT \* FROM "applications" WHERE shift_id = \$1 AND worker_id = \$2`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at", "shift_id", "worker_id", "status", "message"}).
			AddRow(5, now, now, 3, 4, "accepted", nil))

	app := &models.Application{ShiftID: 3, WorkerID: 4, Status: models.ApplicationStatusPending}
	result, created, err := repo.CreateOrGet(db, app)

	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, uint(5), result.ID)
	assert.Equal(t, models.ApplicationStatusAccepted, result.Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestApplicationRepository_CountByShifts(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewApplicationRepository()

	mock.ExpectQuery(`SELECT shift_id, status, COUNT\(\*\) AS total FROM "applications" WHERE shift_id IN \(\$1,\$2\) GROUP BY shift_id, status`).
		WithArgs(1, 2).
		WillReturnRows(sqlmock.NewRows([]string{"shift_id", "status", "total"}).
			AddRow(1, "pending", 2).
			AddRow(1, "accepted", 1).
			AddRow(2, "rejected", 3))

	counts, err := repo.CountByShifts(db, []uint{1, 2})
	require.NoError(t, err)

	assert.Equal(t, StatusCounts{Total: 3, Pending: 2, Accepted: 1}, counts[1])
	assert.Equal(t, StatusCounts{Total: 3, Rejected: 3}, counts[2])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestApplicationRepository_CountByShifts_EmptyInput(t *testing.T) {
	db, mock := newMockDB(t)

	counts, err := NewApplicationRepository().CountByShifts(db, nil)
	require.NoError(t, err)
	assert.Empty(t, counts)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReviewRepository_RatingFor(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewReviewRepository()

	mock.ExpectQuery(`SELECT COALESCE\(AVG\(rating\), 0\) AS avg_rating, COUNT\(\*\) AS reviews_count FROM "reviews" WHERE to_user_id = \$1`).
		WithArgs(7).
		WillReturnRows(sqlmock.NewRows([]string{"avg_rating", "reviews_count"}).AddRow(4.5, 2))

	row, err := repo.RatingFor(db, 7)
	require.NoError(t, err)
	assert.Equal(t, uint(7), row.ToUserID)
	assert.InDelta(t, 4.5, row.AvgRating, 0.0001)
	assert.Equal(t, int64(2), row.ReviewsCount)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReviewRepository_RatingsFor(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewReviewRepository()

	mock.ExpectQuery(`SELECT to_user_id, AVG\(rating\) AS avg_rating, COUNT\(\*\) AS reviews_count FROM "reviews" WHERE to_user_id IN \(\$1,\$2\) GROUP BY`).
		WithArgs(1, 2).
		WillReturnRows(sqlmock.NewRows([]string{"to_user_id", "avg_rating", "reviews_count"}).AddRow(1, 3.0, 1))

	rows, err := repo.RatingsFor(db, []uint{1, 2})
	require.NoError(t, err)

	require.Contains(t, rows, uint(1))
	assert.Equal(t, int64(1), rows[1].ReviewsCount)
	assert.NotContains(t, rows, uint(2))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_FindByID_NotFound(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectQuery(`SELECT \* FROM "users" WHERE "users"."id" = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := NewUserRepository().FindByID(db, 42)
	assert.ErrorIs(t, err, ErrUserNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAccessTokenRepository_DeleteByID(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewAccessTokenRepository()

	mock.ExpectExec(`DELETE FROM "access_tokens" WHERE "access_tokens"."id" = \$1`).
		WithArgs(3).
		WillReturnResult(sqlmock.NewResult(0, 1))
	require.NoError(t, repo.DeleteByID(db, 3))

	mock.ExpectExec(`DELETE FROM "access_tokens"`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	assert.ErrorIs(t, repo.DeleteByID(db, 3), ErrAccessTokenNotFound)

	assert.NoError(t, mock.ExpectationsWereMet())
}
