package logger

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func newTestLogger(level LogLevel) (*Logger, *bytes.Buffer, *bytes.Buffer) {
	var out, errOut bytes.Buffer
	l := &Logger{level: level}
	l.SetOutput(&out)
	l.SetErrorOutput(&errOut)
	return l, &out, &errOut
}

func TestParseLogLevel(t *testing.T) {
	level, err := ParseLogLevel(" DEBUG ")
	require.NoError(t, err)
	require.Equal(t, LogLevelDebug, level)

	level, err = ParseLogLevel("")
	require.NoError(t, err)
	require.Equal(t, LogLevelInfo, level)

	_, err = ParseLogLevel("verbose")
	require.ErrorContains(t, err, "invalid log level")
}

func TestInfoAppendsNewline(t *testing.T) {
	l, out, _ := newTestLogger(LogLevelInfo)

	l.Info("Executing query: %s", "SELECT 1;")
	l.Info("already terminated\n")

	require.Equal(t, "Executing query: SELECT 1;\nalready terminated\n", out.String())
}

func TestErrorGoesToErrorOutput(t *testing.T) {
	l, out, errOut := newTestLogger(LogLevelInfo)

	l.Error("boom: %d", 7)

	require.Empty(t, out.String())
	require.Equal(t, "boom: 7\n", errOut.String())
}

func TestDebugRespectsLevel(t *testing.T) {
	l, out, _ := newTestLogger(LogLevelInfo)
	l.Debug("hidden")
	require.Empty(t, out.String())

	l, out, _ = newTestLogger(LogLevelDebug)
	l.Debug("shown")
	require.Contains(t, out.String(), "shown")
	require.Contains(t, out.String(), iconDebug)
}
