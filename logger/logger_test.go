package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestInitializeConsole(t *testing.T) {
	err := Initialize(false, VerbosityInfo)
	require.NoError(t, err)
	require.NotNil(t, Logger)
	assert.False(t, JSONOutput)
}

func TestInitializeJSON(t *testing.T) {
	err := Initialize(true, VerbosityDebug)
	require.NoError(t, err)
	require.NotNil(t, Logger)
	assert.True(t, JSONOutput)
}

func TestVerbosityToLevel(t *testing.T) {
	assert.Equal(t, zapcore.WarnLevel, VerbosityToLevel(VerbosityUser))
	assert.Equal(t, zapcore.InfoLevel, VerbosityToLevel(VerbosityInfo))
	assert.Equal(t, zapcore.DebugLevel, VerbosityToLevel(VerbosityDebug))
	assert.Equal(t, zapcore.DebugLevel, VerbosityToLevel(7))
}

func TestLevelName(t *testing.T) {
	assert.Equal(t, "User", LevelName(0))
	assert.Equal(t, "Info (-v)", LevelName(1))
	assert.Equal(t, "Debug (-vv)", LevelName(2))
	assert.Equal(t, "Debug (-vv+)", LevelName(5))
}

func TestHelpersDoNotPanicBeforeInitialize(t *testing.T) {
	// The package-level no-op logger must absorb calls safely.
	assert.NotPanics(t, func() {
		Infow("msg", "k", "v")
		Warnw("msg")
		Errorw("msg", FieldError, "boom")
		Debugw("msg")
		PlanInfow("msg")
		DBDebugw("msg")
	})
}

func TestComponentLogger(t *testing.T) {
	require.NoError(t, Initialize(false, VerbosityInfo))
	l := ComponentLogger("plan.scheduler")
	require.NotNil(t, l)
	assert.NotPanics(t, func() { l.Infow("started") })
}
