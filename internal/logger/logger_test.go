package logger

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestWrap_WritesStructuredFields(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	l := Wrap(zap.New(core))

	l.Debug("hidden")
	l.Error("storage failure", String("op", "list"), Int("n", 2), Error(errors.New("boom")))

	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, "storage failure", entry.Message)
	fields := entry.ContextMap()
	assert.Equal(t, "list", fields["op"])
	assert.Equal(t, int64(2), fields["n"])
	assert.Equal(t, "boom", fields["error"])
}

func TestNew_UnknownLevelFallsBackToInfo(t *testing.T) {
	l, err := New("loud", false)
	require.NoError(t, err)
	assert.NotNil(t, l)
}
