package logging_test

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/shshemi/tipping/internal/logging"
)

func TestLogger_With_PresetFieldsAppearInEntries(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	l := logging.NewLoggerFromCore(core)

	child := l.With(logging.String("component", "parse"), logging.Int("workers", 4))
	child.Info("hello from child")

	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, "hello from child", entry.Message)

	fieldMap := make(map[string]interface{})
	for _, f := range entry.Context {
		fieldMap[f.Key] = f.String
	}
	assert.Equal(t, "parse", fieldMap["component"])
}

func TestLogger_With_DoesNotMutateParent(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	l := logging.NewLoggerFromCore(core)

	child := l.With(logging.String("child_field", "yes"))
	_ = child

	l.Info("parent message")

	require.Equal(t, 1, logs.Len())
	for _, f := range logs.All()[0].Context {
		assert.NotEqual(t, "child_field", f.Key)
	}
}

func TestLogger_DebugFilteredAtInfoLevel(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	l := logging.NewLoggerFromCore(core)

	l.Debug("should be filtered")
	l.Info("should appear")

	assert.Equal(t, 1, logs.Len())
	assert.Equal(t, "should appear", logs.All()[0].Message)
}

func TestLogger_ErrorEntryLevel(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	l := logging.NewLoggerFromCore(core)

	l.Error("something broke", logging.Err(errors.New("disk full")))

	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, zapcore.ErrorLevel, entry.Level)
	assert.Equal(t, "something broke", entry.Message)
}

func TestLogger_AllFieldTypesDoNotPanic(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	l := logging.NewLoggerFromCore(core)

	assert.NotPanics(t, func() {
		l.Info("all-types",
			logging.String("s", "hello"),
			logging.Int("i", 1),
			logging.Float64("f", 3.14),
			logging.Duration("d", 250*time.Millisecond),
			logging.Err(errors.New("e")),
			logging.Err(nil),
		)
	})
	require.Equal(t, 1, logs.Len())
	assert.NotEmpty(t, logs.All()[0].Context)
}

func TestNopLogger_AllMethodsAreNoop(t *testing.T) {
	l := logging.NewNopLogger()
	require.NotNil(t, l)

	assert.NotPanics(t, func() { l.Debug("d") })
	assert.NotPanics(t, func() { l.Info("i") })
	assert.NotPanics(t, func() { l.Warn("w") })
	assert.NotPanics(t, func() { l.Error("e") })
}

func TestNopLogger_WithReturnsUsableLogger(t *testing.T) {
	l := logging.NewNopLogger()
	child := l.With(logging.String("k", "v"))
	require.NotNil(t, child)
	assert.NotPanics(t, func() { child.Info("child info") })
}

func TestNopLogger_SatisfiesInterface(t *testing.T) {
	var _ logging.Logger = logging.NewNopLogger()
}

func TestField_Err(t *testing.T) {
	f := logging.Err(errors.New("disk full"))
	assert.Equal(t, "error", f.Key)
	assert.Equal(t, "disk full", f.Value)

	f = logging.Err(nil)
	assert.Equal(t, "<nil>", f.Value)
}
