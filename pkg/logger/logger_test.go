package logger

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInit_WritesJSON(t *testing.T) {
	t.Cleanup(Reset)
	var buf bytes.Buffer

	log := Init(Options{Level: "debug", Output: &buf})
	log.Info().Str("component", "test").Msg("hello")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "hello", entry["message"])
	assert.Equal(t, "test", entry["component"])
	assert.Equal(t, "info", entry["level"])
	assert.Equal(t, "twittoo-api", entry["service"])
}

func TestInit_IsSingleton(t *testing.T) {
	t.Cleanup(Reset)
	var first, second bytes.Buffer

	Init(Options{Output: &first})
	Init(Options{Output: &second})
	log := Get()
	log.Info().Msg("once")

	assert.NotZero(t, first.Len())
	assert.Zero(t, second.Len())
}

func TestInit_FileSink(t *testing.T) {
	t.Cleanup(Reset)
	var buf bytes.Buffer
	path := filepath.Join(t.TempDir(), "api.log")

	Init(Options{Output: &buf, File: path})
	log := Get()
	log.Warn().Msg("to both")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "to both")
	assert.Contains(t, buf.String(), "to both")
}

func TestComponent_TagsEntries(t *testing.T) {
	var buf bytes.Buffer
	parent := zerolog.New(&buf)

	child := Component(parent, "seed")
	child.Info().Msg("loaded")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "seed", entry["component"])
}

func TestGet_PanicsBeforeInit(t *testing.T) {
	Reset()
	assert.Panics(t, func() { Get() })
}

func TestParseLevel(t *testing.T) {
	cases := map[string]zerolog.Level{
		"trace":   zerolog.TraceLevel,
		"DEBUG":   zerolog.DebugLevel,
		" warn ":  zerolog.WarnLevel,
		"warning": zerolog.WarnLevel,
		"error":   zerolog.ErrorLevel,
		"":        zerolog.InfoLevel,
		"bogus":   zerolog.InfoLevel,
	}
	for in, want := range cases {
		assert.Equal(t, want, parseLevel(in), strings.TrimSpace(in))
	}
}
