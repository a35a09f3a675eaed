package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sample = `
[server]
http_port = 8081

[database]
host = "localhost"
user = "orders"
password = "from-file"
dbname = "orders"

[logs]
level = "debug"

[metrics]
enabled = true

[redis]
addr = "localhost:6379"

[branch_service]
url = "http://branch-service:8080"
timeout = 3

[admission]
volume_timeout_ms = 250
fail_policy = "open"
volume_backend = "redis"

[schedule_cache]
enabled = true
ttl_seconds = 30

[availability]
default_timezone = "Europe/London"
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad(t *testing.T) {
	cfg, err := Load(writeConfig(t, sample))
	require.NoError(t, err)

	assert.Equal(t, 8081, cfg.Server.HTTPPort)
	assert.Equal(t, 10, cfg.Server.ReadTimeout)
	assert.Equal(t, "host=localhost port=5432 user=orders password=from-file dbname=orders sslmode=disable", cfg.Database.DSN())
	assert.Equal(t, "/metrics", cfg.Metrics.Path)
	assert.Equal(t, 250*time.Millisecond, cfg.Admission.VolumeTimeout())
	assert.Equal(t, "open", cfg.Admission.FailPolicy)
	assert.Equal(t, 24*time.Hour, cfg.Admission.Retention())
	assert.Equal(t, 30*time.Second, cfg.ScheduleCache.TTL())
	assert.True(t, cfg.UsesRedis())
}

func TestLoad_EnvironmentOverridesFile(t *testing.T) {
	t.Setenv("DATABASE_PASSWORD", "secret")
	t.Setenv("ADMISSION_FAIL_POLICY", "closed")

	cfg, err := Load(writeConfig(t, sample))
	require.NoError(t, err)

	assert.Equal(t, "secret", cfg.Database.Password)
	assert.Equal(t, "closed", cfg.Admission.FailPolicy)
	assert.Equal(t, "localhost", cfg.Database.Host)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		replace [2]string
	}{
		{name: "fail policy", replace: [2]string{`fail_policy = "open"`, `fail_policy = "maybe"`}},
		{name: "volume backend", replace: [2]string{`volume_backend = "redis"`, `volume_backend = "kafka"`}},
		{name: "timezone", replace: [2]string{`"Europe/London"`, `"Mars/Olympus"`}},
		{name: "redis address", replace: [2]string{`addr = "localhost:6379"`, `addr = ""`}},
		{name: "branch service url", replace: [2]string{`url = "http://branch-service:8080"`, `url = ""`}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			content := strings.Replace(sample, tt.replace[0], tt.replace[1], 1)
			_, err := Load(writeConfig(t, content))
			assert.Error(t, err)
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	assert.Error(t, err)
}
