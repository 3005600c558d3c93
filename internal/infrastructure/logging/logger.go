// Package logging provides the renderer's error and debug loggers.
//
// Standard output belongs to the controller protocol, so every logger writes
// to stderr (and optionally a log file).
package logging

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"time"

	"golang.org/x/time/rate"
)

// Logger writes error lines always and debug lines when enabled.
// It is not safe for concurrent use of Once; the render loop owns it.
type Logger struct {
	errorLogger *log.Logger
	debugLogger *log.Logger

	seen map[string]struct{}

	limiter    *rate.Limiter
	suppressed int
}

// New creates a logger writing to w. A nil w means stderr.
func New(w io.Writer, debug bool) *Logger {
	if w == nil {
		w = os.Stderr
	}
	l := &Logger{
		errorLogger: log.New(w, "", log.LstdFlags),
		seen:        make(map[string]struct{}),
		limiter:     rate.NewLimiter(rate.Every(time.Second), 5),
	}
	if debug {
		l.debugLogger = log.New(w, "debug: ", log.LstdFlags)
	}
	return l
}

// Open creates a logger writing to stderr and, when dir is not empty, to a
// timestamped file inside dir. The returned closer releases the file.
func Open(dir string, debug bool) (*Logger, io.Closer, error) {
	if dir == "" {
		return New(os.Stderr, debug), io.NopCloser(nil), nil
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, nil, fmt.Errorf("create log directory: %w", err)
	}
	ts := time.Now().Format("20060102-150405")
	f, err := os.Create(filepath.Join(dir, fmt.Sprintf("puppet-%s.log", ts)))
	if err != nil {
		return nil, nil, fmt.Errorf("create log file: %w", err)
	}
	return New(io.MultiWriter(os.Stderr, f), debug), f, nil
}

// Errorf logs an error line
func (l *Logger) Errorf(format string, v ...any) {
	l.errorLogger.Printf(format, v...)
}

// Debugf logs a debug line when debug logging is enabled
func (l *Logger) Debugf(format string, v ...any) {
	if l.debugLogger != nil {
		l.debugLogger.Printf(format, v...)
	}
}

// DebugEnabled reports whether debug lines are written
func (l *Logger) DebugEnabled() bool {
	return l.debugLogger != nil
}

// Once logs an error line the first time key is seen and reports whether it
// did.
func (l *Logger) Once(key string, format string, v ...any) bool {
	if _, ok := l.seen[key]; ok {
		return false
	}
	l.seen[key] = struct{}{}
	l.errorLogger.Printf(format, v...)
	return true
}

// Limited logs an error line unless the burst budget is spent. Dropped lines
// are counted and reported with the next line that gets through.
func (l *Logger) Limited(format string, v ...any) {
	if !l.limiter.Allow() {
		l.suppressed++
		return
	}
	if l.suppressed > 0 {
		l.errorLogger.Printf("(%d similar messages suppressed)", l.suppressed)
		l.suppressed = 0
	}
	l.errorLogger.Printf(format, v...)
}
