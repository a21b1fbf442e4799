package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_DefaultsAndOverrides(t *testing.T) {
	t.Setenv("APP_PORT", "9090")
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("DB_PATH", "/tmp/dash.db")
	t.Setenv("STATUS_PROBE_TIMEOUT", "not-a-duration")
	t.Setenv("STATUS_PROBE_CONCURRENCY", "0")
	t.Setenv("SLACK_CHANNEL", "#ops")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.Equal(t, "/tmp/dash.db", cfg.Database.Path)
	assert.Equal(t, 5*time.Second, cfg.Status.Timeout)
	assert.Equal(t, 1, cfg.Status.Concurrency)
	assert.Equal(t, 2*time.Minute, cfg.Redis.DedupeTTL)
	assert.Equal(t, "0 */15 * * * *", cfg.Watch.Spec)
	assert.Equal(t, "#ops", cfg.Alert.SlackChannel)
}

func TestDatabaseConfig_DSN(t *testing.T) {
	d := &DatabaseConfig{User: "dash", Pass: "secret", Host: "db", Port: "3306", Name: "control", Charset: "utf8mb4"}

	assert.Equal(t, "dash:secret@tcp(db:3306)/control?charset=utf8mb4&parseTime=True&loc=Local", d.DSN())
	assert.Equal(t, "u:p@tcp(h:1)/n?charset=utf8mb4&parseTime=True&loc=Local", MySQLDSN("u", "p", "h:1", "n", ""))
}

func TestServerConfig_Location(t *testing.T) {
	assert.Equal(t, time.Local, ServerConfig{}.Location())
	assert.Equal(t, time.Local, ServerConfig{Timezone: "Mars/Olympus"}.Location())
	assert.Equal(t, time.UTC, ServerConfig{Timezone: "UTC"}.Location())
	assert.True(t, ServerConfig{Env: "development"}.Development())
	assert.False(t, ServerConfig{Env: "production"}.Development())
}
