package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func validConfig() Config {
	return Config{
		DatabaseURL:        "postgres://localhost/hrportal",
		Environment:        "development",
		LogFormat:          "json",
		MaxBodyBytes:       1048576,
		RateLimitPerMinute: 60,
		RateLimitStorage:   "memory",
	}
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("APP_ADDR", "")
	t.Setenv("APP_ENV", "")
	t.Setenv("RUN_MIGRATIONS", "")
	t.Setenv("RATE_LIMIT_PER_MINUTE", "not-a-number")
	t.Setenv("RUN_SEED", "false")

	cfg := Load()
	require.Equal(t, ":8080", cfg.Addr)
	require.Equal(t, 120, cfg.RateLimitPerMinute)
	require.False(t, cfg.RunSeed)
	require.True(t, cfg.RunMigrations)
}

func TestSchemaSetupDefaultsOffOutsideDevelopment(t *testing.T) {
	t.Setenv("RUN_MIGRATIONS", "")
	t.Setenv("RUN_SEED", "")

	t.Setenv("APP_ENV", "production")
	cfg := Load()
	require.False(t, cfg.RunMigrations)
	require.False(t, cfg.RunSeed)

	t.Setenv("APP_ENV", "staging")
	t.Setenv("RUN_MIGRATIONS", "true")
	cfg = Load()
	require.True(t, cfg.RunMigrations)
	require.False(t, cfg.RunSeed)

	t.Setenv("APP_ENV", "development")
	t.Setenv("RUN_MIGRATIONS", "")
	cfg = Load()
	require.True(t, cfg.RunMigrations)
	require.True(t, cfg.RunSeed)
}

func TestValidate(t *testing.T) {
	require.NoError(t, validConfig().Validate())

	cfg := validConfig()
	cfg.DatabaseURL = " "
	require.ErrorContains(t, cfg.Validate(), "DATABASE_URL")

	cfg = validConfig()
	cfg.Environment = "production"
	require.ErrorContains(t, cfg.Validate(), "JWT_SECRET")

	cfg = validConfig()
	cfg.RateLimitStorage = "redis"
	require.ErrorContains(t, cfg.Validate(), "RATE_LIMIT_REDIS_URL")

	cfg = validConfig()
	cfg.LogFormat = "xml"
	require.Error(t, cfg.Validate())
}

func TestAdminDatabaseURLFallsBack(t *testing.T) {
	cfg := validConfig()
	require.Equal(t, cfg.DatabaseURL, cfg.AdminDatabaseURL())

	cfg.ServiceDatabaseURL = "postgres://service@localhost/hrportal"
	require.Equal(t, cfg.ServiceDatabaseURL, cfg.AdminDatabaseURL())
}

func TestLoadEnvFilesKeepsProcessEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(path, []byte("HRPORTAL_TEST_A=from-file\nHRPORTAL_TEST_B=from-file\n"), 0o600))

	t.Setenv("HRPORTAL_TEST_A", "from-env")
	t.Cleanup(func() { _ = os.Unsetenv("HRPORTAL_TEST_B") })

	require.NoError(t, LoadEnvFiles(path, filepath.Join(dir, "missing.env")))
	require.Equal(t, "from-env", os.Getenv("HRPORTAL_TEST_A"))
	require.Equal(t, "from-file", os.Getenv("HRPORTAL_TEST_B"))
}
