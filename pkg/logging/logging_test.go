package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want zerolog.Level
	}{
		{"trace", zerolog.TraceLevel},
		{"debug", zerolog.DebugLevel},
		{"info", zerolog.InfoLevel},
		{"WARN", zerolog.WarnLevel},
		{"warning", zerolog.WarnLevel},
		{"error", zerolog.ErrorLevel},
		{"", zerolog.InfoLevel},
		{"nonsense", zerolog.InfoLevel},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ParseLevel(tt.in), "level %q", tt.in)
	}
}

func TestNewWithFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "holocron.log")

	logger, closer, err := New("debug", path)
	require.NoError(t, err)

	logger.Info().Str("query", "Luke Skywalker").Msg("search complete")
	closer()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "search complete")
	assert.Contains(t, string(data), "Luke Skywalker")
}

func TestNewBadFile(t *testing.T) {
	_, _, err := New("info", filepath.Join(t.TempDir(), "missing", "dir", "holocron.log"))
	require.Error(t, err)
}

func TestNewTestLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := NewTestLogger(&buf)

	logger.Warn().Int("status", 504).Msg("upstream unavailable")

	assert.Contains(t, buf.String(), "upstream unavailable")
	assert.Contains(t, buf.String(), `"status":504`)
}
