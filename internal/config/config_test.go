package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"PORT", "DASHBOARD_API_URL", "FETCH_TIMEOUT", "OTHER_THRESHOLD", "TOP_SKILLS", "CORS_ORIGINS", "LOG_FILE"} {
		t.Setenv(key, "")
	}

	cfg := Load()

	assert.Equal(t, "8090", cfg.Port)
	assert.Equal(t, "http://localhost:8000", cfg.DashboardAPIURL)
	assert.Equal(t, 15*time.Second, cfg.FetchTimeout)
	assert.Equal(t, 5.0, cfg.OtherThreshold)
	assert.Equal(t, 10, cfg.TopSkills)
	assert.Equal(t, []string{"*"}, cfg.CORSOrigins)
	assert.Empty(t, cfg.LogFile)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("DASHBOARD_API_URL", "http://stats.internal:9000/")
	t.Setenv("FETCH_TIMEOUT", "3")
	t.Setenv("OTHER_THRESHOLD", "2.5")
	t.Setenv("CORS_ORIGINS", "http://a.test, ,http://b.test")

	cfg := Load()

	assert.Equal(t, "http://stats.internal:9000", cfg.DashboardAPIURL)
	assert.Equal(t, 3*time.Second, cfg.FetchTimeout)
	assert.Equal(t, 2.5, cfg.OtherThreshold)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.CORSOrigins)
}

func TestGetEnvDuration(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  time.Duration
	}{
		{"go syntax", "250ms", 250 * time.Millisecond},
		{"seconds", "7", 7 * time.Second},
		{"garbage falls back", "soon", time.Minute},
		{"unset falls back", "", time.Minute},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("TEST_DURATION", tt.value)
			assert.Equal(t, tt.want, GetEnvDuration("TEST_DURATION", time.Minute))
		})
	}
}
