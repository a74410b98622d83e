package database

import (
	"testing"
	"time"

	"quickgig/internal/auth"
	"quickgig/internal/config"
	"quickgig/internal/logger"
	"quickgig/internal/models"
	"quickgig/internal/repositories/memory"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeedDemo(t *testing.T) {
	logger.Init("test")
	repos := memory.NewStore().Repositories()
	now := time.Date(2024, 5, 10, 15, 30, 0, 0, time.UTC)

	require.NoError(t, SeedDemo(nil, repos, now))

	count, err := repos.Users.Count(nil)
	require.NoError(t, err)
	assert.EqualValues(t, 2, count)

	employer, err := repos.Users.FindByPhone(nil, "380671112233")
	require.NoError(t, err)
	assert.Equal(t, models.UserRoleEmployer, employer.Role)
	assert.True(t, auth.CheckPasswordHash(DemoPassword, employer.PasswordHash))

	open, err := repos.Shifts.ListOpen(nil)
	require.NoError(t, err)
	require.Len(t, open, 3)
	assert.Equal(t, time.Date(2024, 5, 11, 8, 0, 0, 0, time.UTC), open[0].StartAt)

	rating, err := repos.Reviews.RatingFor(nil, employer.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, rating.ReviewsCount)

	// повторный запуск ничего не добавляет
	require.NoError(t, SeedDemo(nil, repos, now))
	count, err = repos.Users.Count(nil)
	require.NoError(t, err)
	assert.EqualValues(t, 2, count)
}

func TestOpenMemoryDriver(t *testing.T) {
	cfg := configWithDriver(DriverMemory)
	db, err := Open(cfg)
	require.NoError(t, err)
	assert.Nil(t, db)
	assert.NoError(t, AutoMigrate(nil))
}

func TestOpenUnknownDriver(t *testing.T) {
	_, err := Open(configWithDriver("sqlite"))
	assert.Error(t, err)
}

func configWithDriver(driver string) *config.Config {
	cfg := config.Default()
	cfg.Database.Driver = driver
	return cfg
}
