package log

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestLoggerWritesTypedFields(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	l := NewFromZap(zap.New(core))

	l.With(String("component", "driver")).Info("ready",
		Int("tick", 3), Float64("energy", 99.5), Bool("follow", true), Error(errors.New("boom")))

	entries := logs.All()
	require.Len(t, entries, 1)
	ctx := entries[0].ContextMap()
	assert.Equal(t, "ready", entries[0].Message)
	assert.Equal(t, "driver", ctx["component"])
	assert.EqualValues(t, 3, ctx["tick"])
	assert.Equal(t, 99.5, ctx["energy"])
	assert.Equal(t, true, ctx["follow"])
	assert.Equal(t, "boom", ctx["error"])
}

func TestSetLevelFiltersDerivedLoggers(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	l := NewFromZap(zap.New(core))
	child := l.With(String("component", "camera"))

	l.SetLevel(LevelWarn)
	child.Debug("hidden")
	child.Info("hidden")
	child.Warn("shown")

	require.Equal(t, 1, logs.Len())
	assert.Equal(t, LevelWarn, l.GetLevel())
}

func TestWithContextAddsSession(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	l := NewFromZap(zap.New(core))

	l.WithContext(ContextWithSession(context.Background(), "abc")).Info("hello")
	l.WithContext(context.Background()).Info("plain")

	entries := logs.All()
	require.Len(t, entries, 2)
	assert.Equal(t, "abc", entries[0].ContextMap()["session"])
	assert.NotContains(t, entries[1].ContextMap(), "session")
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, LevelDebug, ParseLevel("debug"))
	assert.Equal(t, LevelWarn, ParseLevel("warning"))
	assert.Equal(t, LevelError, ParseLevel("error"))
	assert.Equal(t, LevelInfo, ParseLevel("verbose"))
	assert.Equal(t, "warn", LevelWarn.String())
}
