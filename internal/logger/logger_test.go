package logger

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestStringFields(t *testing.T) {
	fields := StringFields(
		StringField{Key: "  provider  ", Value: "  Gemini  "},
		StringField{Key: "ignored", Value: "   "},
		StringField{Key: "   ", Value: "empty key"},
	)

	require.Len(t, fields, 1)
	assert.Equal(t, "provider", fields[0].Key)
	assert.Equal(t, "Gemini", fields[0].String)

	assert.Empty(t, StringFields())
}

func TestWithFields(t *testing.T) {
	core, observed := observer.New(zapcore.InfoLevel)
	log := zap.New(core)

	WithFields(log, zap.String("foo", "bar")).Info("test log")

	entries := observed.All()
	require.Len(t, entries, 1)
	assert.Equal(t, "bar", entries[0].ContextMap()["foo"])

	fallback := WithFields(nil, zap.String("baz", "qux"))
	require.NotNil(t, fallback)
	fallback.Info("another log")
}

func TestAIFields(t *testing.T) {
	fields := AIFields("  Gemini  ", "model-v1")
	require.Len(t, fields, 2)
	assert.Equal(t, FieldProvider, fields[0].Key)
	assert.Equal(t, "Gemini", fields[0].String)
	assert.Equal(t, FieldModel, fields[1].Key)
	assert.Equal(t, "model-v1", fields[1].String)

	assert.Empty(t, AIFields("", ""))
}

func TestWithAIFields(t *testing.T) {
	core, observed := observer.New(zapcore.DebugLevel)

	WithAIFields(zap.New(core), "gemini", "").Debug("review")

	ctx := observed.All()[0].ContextMap()
	assert.Equal(t, "gemini", ctx[FieldProvider])
	assert.NotContains(t, ctx, FieldModel)
}

func TestAnalysisFields(t *testing.T) {
	fields := AnalysisFields("DevOps Engineer", "title")
	require.Len(t, fields, 2)
	assert.Equal(t, FieldJobTitle, fields[0].Key)
	assert.Equal(t, "title", fields[1].String)

	assert.Len(t, AnalysisFields("", "provided"), 1)
}

func TestTruncateForLog(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		input  string
		limit  int
		expect string
	}{
		{name: "returns empty when limit non-positive", input: "hello world", limit: 0, expect: ""},
		{name: "shorter than limit", input: "hello", limit: 10, expect: "hello"},
		{name: "truncates and adds ellipsis", input: "hello world", limit: 5, expect: "hello..."},
		{name: "trims surrounding whitespace", input: "  spaced  ", limit: 5, expect: "space..."},
		{name: "counts runes", input: "résumé text", limit: 6, expect: "résumé..."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expect, TruncateForLog(tt.input, tt.limit))
		})
	}
}

func TestNew(t *testing.T) {
	log, err := New(Options{JSON: true, Debug: true, Outputs: []string{"stderr"}})
	require.NoError(t, err)
	assert.True(t, log.Core().Enabled(zapcore.DebugLevel))

	log, err = New(Options{})
	require.NoError(t, err)
	assert.False(t, log.Core().Enabled(zapcore.DebugLevel))
	assert.True(t, log.Core().Enabled(zapcore.InfoLevel))
}

func TestNewAttachesApp(t *testing.T) {
	path := filepath.Join(t.TempDir(), "log.json")

	log, err := New(Options{App: " resume-matcher ", JSON: true, Outputs: []string{path}})
	require.NoError(t, err)
	log.Info("ranking")
	require.NoError(t, log.Sync())

	raw, err := os.ReadFile(path)
	require.NoError(t, err)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(raw, &entry))
	assert.Equal(t, "resume-matcher", entry[FieldApp])
	assert.Equal(t, "ranking", entry["step"])
	assert.Equal(t, "info", entry["level"])
}

func TestNewRejectsBadOutput(t *testing.T) {
	_, err := New(Options{Outputs: []string{filepath.Join(t.TempDir(), "missing", "dir", "log")}})
	assert.Error(t, err)
}
