package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"KANBAN_CONFIG", "DB_DRIVER", "DB_HOST", "DB_PORT", "DB_PATH", "API_PREFIX",
		"REQUIRE_AUTH", "CORS_ALLOWED_ORIGINS", "SESSION_STORE", "LOG_LEVEL",
	} {
		t.Setenv(key, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "mysql", cfg.DBDriver)
	assert.Equal(t, "3306", cfg.DBPort)
	assert.Equal(t, "/api/v1", cfg.APIPrefix)
	assert.Equal(t, "cookie", cfg.SessionStore)
	assert.False(t, cfg.RequireAuth)
	assert.Equal(t, []string{"*"}, cfg.CORSOrigins)
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("DB_DRIVER", "Postgres")
	t.Setenv("API_PREFIX", "/api/")
	t.Setenv("REQUIRE_AUTH", "true")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, https://b.example")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "postgres", cfg.DBDriver)
	assert.Equal(t, "/api", cfg.APIPrefix)
	assert.True(t, cfg.RequireAuth)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSOrigins)
}

func TestLoad_FileThenEnvironment(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "kanban.toml")
	content := `
db_driver = "sqlite"
db_path = "/tmp/board.db"
db_port = 5433
require_auth = true
cors_allowed_origins = ["https://one.example", "https://two.example"]
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	t.Setenv("KANBAN_CONFIG", path)
	t.Setenv("DB_PORT", "6000")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "sqlite", cfg.DBDriver)
	assert.Equal(t, "/tmp/board.db", cfg.DSN())
	assert.Equal(t, "6000", cfg.DBPort, "environment wins over the file")
	assert.True(t, cfg.RequireAuth)
	assert.Equal(t, []string{"https://one.example", "https://two.example"}, cfg.CORSOrigins)
}

func TestLoad_FileWithNestedTable(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "kanban.toml")
	require.NoError(t, os.WriteFile(path, []byte("[database]\nhost = \"x\"\n"), 0o600))
	t.Setenv("KANBAN_CONFIG", path)

	_, err := Load()
	assert.Error(t, err)
}

func TestConfig_DSN(t *testing.T) {
	cfg := &Config{DBDriver: "mysql", DBUser: "u", DBPassword: "p", DBHost: "h", DBPort: "3306", DBName: "kanban"}
	assert.Equal(t, "u:p@tcp(h:3306)/kanban?charset=utf8mb4&parseTime=True&loc=UTC", cfg.DSN())

	cfg.DBDriver = "postgres"
	cfg.DBPort = "5432"
	assert.Contains(t, cfg.DSN(), "host=h user=u password=p dbname=kanban port=5432")
}
