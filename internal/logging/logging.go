// Package logging is a small leveled wrapper over the standard library logger.
package logging

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"sync"
)

type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
	LevelNone
)

func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	case LevelNone:
		return "NONE"
	default:
		return "UNKNOWN"
	}
}

// ParseLevel accepts debug, info, warn, error and none in any case.
func ParseLevel(s string) (Level, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "DEBUG":
		return LevelDebug, nil
	case "INFO", "":
		return LevelInfo, nil
	case "WARN", "WARNING":
		return LevelWarn, nil
	case "ERROR":
		return LevelError, nil
	case "NONE", "OFF":
		return LevelNone, nil
	default:
		return LevelInfo, fmt.Errorf("unknown log level %q", s)
	}
}

type Logger struct {
	mu     sync.Mutex
	logger *log.Logger
	level  Level
}

func New(out io.Writer, level Level) *Logger {
	return &Logger{
		logger: log.New(out, "", log.LstdFlags|log.Lmicroseconds),
		level:  level,
	}
}

// Discard returns a logger that drops everything.
func Discard() *Logger {
	return New(io.Discard, LevelNone)
}

// OpenFile returns a logger appending to path together with the file so the
// caller can close it.
func OpenFile(path string, level Level) (*Logger, io.Closer, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	return New(f, level), f, nil
}

func (l *Logger) logf(level Level, format string, v ...any) {
	if l == nil {
		return
	}
	l.mu.Lock()
	enabled := l.level <= level
	l.mu.Unlock()
	if !enabled {
		return
	}
	l.logger.Printf(level.String()+": "+format, v...)
}

func (l *Logger) Debugf(format string, v ...any) { l.logf(LevelDebug, format, v...) }

func (l *Logger) Infof(format string, v ...any) { l.logf(LevelInfo, format, v...) }

func (l *Logger) Warnf(format string, v ...any) { l.logf(LevelWarn, format, v...) }

func (l *Logger) Errorf(format string, v ...any) { l.logf(LevelError, format, v...) }

func (l *Logger) SetLevel(level Level) {
	l.mu.Lock()
	l.level = level
	l.mu.Unlock()
}

func (l *Logger) Level() Level {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.level
}

// Enabled reports whether messages at level would be written.
func (l *Logger) Enabled(level Level) bool {
	return l != nil && l.Level() <= level && level != LevelNone
}
