package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestNew(t *testing.T) {
	for _, tc := range []struct {
		json, debug bool
	}{{false, false}, {true, false}, {false, true}, {true, true}} {
		log, err := New(tc.json, tc.debug)
		require.NoError(t, err)
		assert.Equal(t, tc.debug, log.Core().Enabled(zapcore.DebugLevel))
		assert.True(t, log.Core().Enabled(zapcore.InfoLevel))
	}
}

func TestWithProvider(t *testing.T) {
	core, observed := observer.New(zapcore.InfoLevel)
	log := zap.New(core)

	WithProvider(log, " gemini ", "gemini-2.5-flash").Info("turn")
	WithProvider(log, "", "").Info("bare")

	entries := observed.All()
	require.Len(t, entries, 2)
	assert.Equal(t, "gemini", entries[0].ContextMap()[FieldProvider])
	assert.Equal(t, "gemini-2.5-flash", entries[0].ContextMap()[FieldModel])
	assert.Empty(t, entries[1].ContextMap())

	assert.NotPanics(t, func() { WithProvider(nil, "anthropic", "").Info("nop") })
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "hello", Truncate("  hello  ", 10))
	assert.Equal(t, "hel...", Truncate("hello", 3))
	assert.Equal(t, "çağ...", Truncate("çağrı", 3))
	assert.Equal(t, "", Truncate("hello", 0))
}
