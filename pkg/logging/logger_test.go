package logging

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRespectsLevel(t *testing.T) {
	t.Setenv("DEBUG", "")
	t.Setenv("PRETTY", "")

	var buf bytes.Buffer
	logger := New(Options{Level: "warn", Out: &buf})
	assert.Equal(t, zerolog.WarnLevel, logger.GetLevel())

	logger.Info().Msg("dropped")
	assert.Zero(t, buf.Len())

	logger.Warn().Str("index", "by_age").Msg("kept")
	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "kept", line["message"])
	assert.Equal(t, "by_age", line["index"])
	assert.Contains(t, line, "time")
}

func TestNewFallsBackToInfo(t *testing.T) {
	t.Setenv("DEBUG", "")
	assert.Equal(t, zerolog.InfoLevel, New(Options{Level: "chatty"}).GetLevel())
	assert.Equal(t, zerolog.InfoLevel, New(Options{}).GetLevel())
}

func TestDebugEnvOverrides(t *testing.T) {
	t.Setenv("DEBUG", "1")
	assert.Equal(t, zerolog.DebugLevel, New(Options{Level: "error"}).GetLevel())
}
