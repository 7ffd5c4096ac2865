package log

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"
)

// StdoutLogger prints every log statement, prefixed with a timestamp and its level, to standard output.
type StdoutLogger struct {
	// MinLevel is the least severe level which will be printed.
	MinLevel Level

	// Output overrides the destination, defaults to 'os.Stdout'.
	Output io.Writer

	lock sync.Mutex
}

// Log writes the formatted message on its own line.
func (s *StdoutLogger) Log(level Level, format string, args ...any) {
	if level < s.MinLevel {
		return
	}

	out := s.Output
	if out == nil {
		out = os.Stdout
	}

	s.lock.Lock()
	defer s.lock.Unlock()

	fmt.Fprintf(out, "%s %s: %s\n", time.Now().Format(time.RFC3339Nano), level, fmt.Sprintf(format, args...))
}
