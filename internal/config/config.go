package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all application configuration.
type Config struct {
	Port string
	Host string

	// Statistics API the dashboard reads from
	DashboardAPIURL string
	FetchTimeout    time.Duration

	// Chart shaping
	OtherThreshold float64
	TopSkills      int

	RefreshRatePerMin int
	CORSOrigins       []string

	LogLevel  string
	LogFormat string
	LogFile   string
}

// Load loads configuration from environment variables.
func Load() *Config {
	return &Config{
		Port:              GetEnv("PORT", "8090"),
		Host:              GetEnv("HOST", "0.0.0.0"),
		DashboardAPIURL:   strings.TrimSuffix(GetEnv("DASHBOARD_API_URL", "http://localhost:8000"), "/"),
		FetchTimeout:      GetEnvDuration("FETCH_TIMEOUT", 15*time.Second),
		OtherThreshold:    GetEnvFloat("OTHER_THRESHOLD", 5),
		TopSkills:         GetEnvInt("TOP_SKILLS", 10),
		RefreshRatePerMin: GetEnvInt("REFRESH_RATE_PER_MIN", 30),
		CORSOrigins:       GetEnvList("CORS_ORIGINS", []string{"*"}),
		LogLevel:          GetEnv("LOG_LEVEL", "INFO"),
		LogFormat:         GetEnv("LOG_FORMAT", "json"),
		LogFile:           GetEnv("LOG_FILE", ""),
	}
}

// GetEnv returns the value of an environment variable or a default value.
func GetEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// GetEnvInt returns the integer value of an environment variable or a default value.
func GetEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

// GetEnvFloat returns the float value of an environment variable or a default value.
func GetEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return defaultValue
}

// GetEnvDuration accepts Go duration syntax ("15s") or a bare number of seconds.
func GetEnvDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	if d, err := time.ParseDuration(value); err == nil {
		return d
	}
	if secs, err := strconv.Atoi(value); err == nil {
		return time.Duration(secs) * time.Second
	}
	return defaultValue
}

// GetEnvList splits a comma-separated variable, dropping empty entries.
func GetEnvList(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}
