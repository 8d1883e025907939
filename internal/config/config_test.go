package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDefaults(t *testing.T) {
	cfg, err := New()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.HTTPPort)
	assert.Equal(t, "sqlite", cfg.DBDriver)
	assert.Equal(t, "data/somnologia.db", cfg.SQLitePath)
	assert.Equal(t, "artemidorus", cfg.Interpreter)
	assert.Equal(t, 30*time.Second, cfg.InterpreterTimeout)
	assert.Equal(t, 3, cfg.DashboardRecent)
	assert.Equal(t, ":8080", cfg.GetHTTPAddr())
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("SOMNOLOGIA_HTTP_PORT", "9090")
	t.Setenv("SOMNOLOGIA_DB_DRIVER", "postgres")
	t.Setenv("SOMNOLOGIA_POSTGRES_DSN", "postgres://localhost/somnologia")
	t.Setenv("SOMNOLOGIA_DASHBOARD_RECENT", "5")

	cfg, err := New()
	require.NoError(t, err)
	assert.Equal(t, 9090, cfg.HTTPPort)
	assert.Equal(t, "postgres", cfg.DBDriver)
	assert.Equal(t, 5, cfg.DashboardRecent)
	assert.Equal(t, ":9090", cfg.GetHTTPAddr())
}

func TestValidate(t *testing.T) {
	base := Config{
		DBDriver:        "sqlite",
		SQLitePath:      "x.db",
		Interpreter:     "artemidorus",
		DashboardRecent: 3,
	}
	require.NoError(t, base.Validate())

	c := base
	c.DBDriver = "mysql"
	assert.Error(t, c.Validate())

	c = base
	c.DBDriver = "postgres"
	assert.Error(t, c.Validate(), "postgres requires a DSN")
	c.PostgresDSN = "postgres://localhost/somnologia"
	assert.NoError(t, c.Validate())

	c = base
	c.Interpreter = "remote"
	assert.Error(t, c.Validate(), "remote requires a URL")
	c.InterpreterURL = "http://localhost:9000"
	assert.NoError(t, c.Validate())

	c = base
	c.Interpreter = "oracle"
	assert.Error(t, c.Validate())

	c = base
	c.DashboardRecent = 0
	assert.Error(t, c.Validate())
}
