package log

import (
	"bytes"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

type recordingLogger struct {
	lines []string
}

func (r *recordingLogger) Log(level Level, format string, args ...any) {
	r.lines = append(r.lines, level.String()+" "+fmt.Sprintf(format, args...))
}

func TestLogfWithoutLogger(t *testing.T) {
	SetLogger(nil)
	defer SetLogger(nil)

	require.NotPanics(t, func() { Infof("nobody is listening: %d", 42) })
}

func TestLevelledFunctions(t *testing.T) {
	recorder := &recordingLogger{}

	SetLogger(recorder)
	defer SetLogger(nil)

	Tracef("(Test) %s", "trace")
	Debugf("(Test) %s", "debug")
	Infof("(Test) %s", "info")
	Warnf("(Test) %s", "warn")
	Errorf("(Test) %s", "error")

	expected := []string{
		"TRAC (Test) trace",
		"DEBU (Test) debug",
		"INFO (Test) info",
		"WARN (Test) warn",
		"ERRO (Test) error",
	}

	require.Equal(t, expected, recorder.lines)
}

func TestLevelString(t *testing.T) {
	require.Equal(t, "TRAC", LevelTrace.String())
	require.Equal(t, "UNKN", Level(42).String())
}

func TestStdoutLogger(t *testing.T) {
	var (
		buffer bytes.Buffer
		logger = &StdoutLogger{MinLevel: LevelInfo, Output: &buffer}
	)

	logger.Log(LevelDebug, "skipped %d", 1)
	logger.Log(LevelWarning, "printed %d", 2)

	lines := strings.Split(strings.TrimSpace(buffer.String()), "\n")
	require.Len(t, lines, 1)
	require.True(t, strings.HasSuffix(lines[0], " WARN: printed 2"))
}
