package packet

import (
	"fmt"
	"io"
	"strings"
	"sync"
)

// Logger receives trace output from the solver and status lines from the
// watcher. Values are joined with single spaces.
type Logger interface {
	Log(values ...any)
	LogLine(values ...any)
}

// DefaultLogger discards everything. The CLI swaps in a WriterLogger for
// --verbose.
var DefaultLogger Logger = NullLogger()

type writerLogger struct {
	w io.Writer
}

// WriterLogger returns a logger that writes straight to w.
func WriterLogger(w io.Writer) Logger {
	return &writerLogger{w: w}
}

func (l *writerLogger) Log(values ...any) {
	fmt.Fprint(l.w, joinValues(values))
}

func (l *writerLogger) LogLine(values ...any) {
	fmt.Fprintln(l.w, joinValues(values))
}

// BufferedLogger keeps everything it is given in memory. It is safe to share
// between the watcher goroutine and a reader.
type BufferedLogger struct {
	mu  sync.Mutex
	buf strings.Builder
}

func NewBufferedLogger() *BufferedLogger {
	return &BufferedLogger{}
}

func (l *BufferedLogger) Log(values ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.buf.WriteString(joinValues(values))
}

func (l *BufferedLogger) LogLine(values ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.buf.WriteString(joinValues(values))
	l.buf.WriteByte('\n')
}

func (l *BufferedLogger) String() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.buf.String()
}

type nullLogger struct{}

func (nullLogger) Log(...any)     {}
func (nullLogger) LogLine(...any) {}

// NullLogger returns a logger that drops everything.
func NullLogger() Logger {
	return nullLogger{}
}

func joinValues(values []any) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = fmt.Sprint(v)
	}
	return strings.Join(parts, " ")
}
