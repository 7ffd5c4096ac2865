// Package log provides an interface to setup logging for the priority store backends.
package log

import "sync/atomic"

// Level is used to indicate the verbosity of a log statement.
type Level uint8

const (
	// LevelTrace is the most verbose log level including finer grained informational events than debug level.
	LevelTrace Level = iota

	// LevelDebug includes fine-grained informational events such as the number of items persisted/restored.
	LevelDebug

	// LevelInfo includes informational messages, for example configuration overrides picked up from the environment.
	LevelInfo

	// LevelWarning includes expected but potentially harmful/interesting events such as retrying a locked database.
	LevelWarning

	// LevelError includes error events which may still allow the library to continue running.
	LevelError
)

// String returns the short, fixed width, prefix used when printing the level.
func (l Level) String() string {
	switch l {
	case LevelTrace:
		return "TRAC"
	case LevelDebug:
		return "DEBU"
	case LevelInfo:
		return "INFO"
	case LevelWarning:
		return "WARN"
	case LevelError:
		return "ERRO"
	}

	return "UNKN"
}

// Logger interface which allows applications to provide custom logger implementations.
type Logger interface {
	Log(level Level, format string, args ...any)
}

// holder allows storing the interface in an 'atomic.Value' which requires a consistent concrete type.
type holder struct {
	Logger
}

// logger is the logger which is used internally by the library.
var logger atomic.Value

// SetLogger sets the logger which will be used by the library, a <nil> logger disables logging.
func SetLogger(l Logger) {
	logger.Store(holder{Logger: l})
}

// Logf allows raw access to the underlying logger, most use cases should be through the functions below.
//
// NOTE: If no logger has been set using 'SetLogger' all logging information is omitted.
func Logf(level Level, format string, args ...any) {
	h, _ := logger.Load().(holder)
	if h.Logger == nil {
		return
	}

	h.Log(level, format, args...)
}

// Tracef logs the provided information at the trace level.
func Tracef(format string, args ...any) {
	Logf(LevelTrace, format, args...)
}

// Debugf logs the provided information at the debug level.
func Debugf(format string, args ...any) {
	Logf(LevelDebug, format, args...)
}

// Infof logs the provided information at the info level.
func Infof(format string, args ...any) {
	Logf(LevelInfo, format, args...)
}

// Warnf logs the provided information at the warn level.
func Warnf(format string, args ...any) {
	Logf(LevelWarning, format, args...)
}

// Errorf logs the provided information at the error level.
func Errorf(format string, args ...any) {
	Logf(LevelError, format, args...)
}
