package logger

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	log := New(&Config{Level: LevelWarn, Format: FormatJSON, Output: &buf})

	log.Info("dropped")
	log.Warn("kept", "job_name", "Python")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 1)

	var entry map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &entry))
	assert.Equal(t, "kept", entry["msg"])
	assert.Equal(t, "Python", entry["job_name"])
}

func TestWithComponentAddsAttribute(t *testing.T) {
	var buf bytes.Buffer
	log := New(&Config{Level: LevelInfo, Format: FormatText, Output: &buf})

	log.WithComponent("fetch").Info("hello")

	assert.Contains(t, buf.String(), "component=fetch")
}

func TestFileSinkOnlyReceivesWarnings(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "dashboard.log")
	var buf bytes.Buffer
	log := New(&Config{Level: LevelDebug, Format: FormatText, Output: &buf, File: path})

	log.Info("console only")
	log.Error("both sinks")
	require.NoError(t, log.Close())

	assert.Contains(t, buf.String(), "console only")
	assert.Contains(t, buf.String(), "both sinks")

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(content), "console only")
	assert.Contains(t, string(content), "both sinks")
}
