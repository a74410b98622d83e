package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_FromEnvironment(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://u:p@localhost:5432/quickgig_test?sslmode=disable")
	t.Setenv("SERVER_PORT", "4001")
	t.Setenv("SERVER_ENV", "test")
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("DATABASE_AUTO_MIGRATE", "false")

	LoadConfig()
	cfg := AppConfig

	assert.Equal(t, "postgres", cfg.Database.Driver)
	assert.False(t, cfg.Database.AutoMigrate)
	assert.Equal(t, 4001, cfg.Server.Port)
	assert.Equal(t, "test", cfg.Server.Env)
	assert.Equal(t, "/api", cfg.Server.APIPrefix)
	assert.Equal(t, "380", cfg.Identity.PhoneCountryCode)
	assert.Equal(t, "phone.quickgig.local", cfg.Identity.EmailDomain)
	assert.False(t, cfg.IsDevelopment())
}

func TestLoadConfig_FromYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	yamlBody := `
server:
  port: 9000
  env: development
database:
  driver: mysql
  url: "user:pass@tcp(localhost:3306)/quickgig"
jwt:
  secret: abc
  ttl: 30
identity:
  phone_country_code: "7"
`
	require.NoError(t, os.WriteFile(path, []byte(yamlBody), 0o600))
	t.Setenv("DATABASE_URL", "")
	t.Setenv("CONFIG_PATH", path)

	LoadConfig()
	cfg := AppConfig

	assert.Equal(t, 9000, cfg.Server.Port)
	assert.Equal(t, "mysql", cfg.Database.Driver)
	assert.Equal(t, 30, cfg.JWT.TTL)
	assert.Equal(t, "7", cfg.Identity.PhoneCountryCode)
	assert.Equal(t, 5.0, cfg.Server.RateLimit.RPS)
	assert.True(t, cfg.IsDevelopment())
}

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, 8000, cfg.Server.Port)
	assert.Equal(t, []string{"*"}, cfg.Server.CORSOrigins)
	assert.Equal(t, 10, cfg.Server.RateLimit.Burst)
	assert.Equal(t, "QuickGig", cfg.Email.FromName)
}
