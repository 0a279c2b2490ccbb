// Package logger provides the leveled, error-returning logger used
// throughout the pipeline, matching the call shape the teacher
// repo's generator.go exercises: GetLogger().Debug/Info/Warning(format,
// args...) error.
package logger

import (
	"log"
	"os"
	"sync"
)

// Level is a logging severity.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarning
)

func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarning:
		return "WARNING"
	default:
		return "UNKNOWN"
	}
}

// Logger is a minimal leveled wrapper over the standard library
// logger. Every method returns an error only if the underlying write
// fails, mirroring the teacher's "err := log.Debug(...); if err !=
// nil { return errors.Wrap(err, ...) }" idiom.
type Logger struct {
	mu       sync.Mutex
	std      *log.Logger
	minLevel Level
}

var (
	instance *Logger
	once     sync.Once
)

// GetLogger returns the process-wide logger, creating it on first
// use. Minimum level defaults to LevelInfo; set BRAILLESTL_DEBUG=1 to
// also emit Debug lines.
func GetLogger() *Logger {
	once.Do(func() {
		minLevel := LevelInfo
		if os.Getenv("BRAILLESTL_DEBUG") != "" {
			minLevel = LevelDebug
		}
		instance = &Logger{
			std:      log.New(os.Stderr, "", log.LstdFlags),
			minLevel: minLevel,
		}
	})
	return instance
}

func (l *Logger) log(level Level, format string, args ...any) error {
	if level < l.minLevel {
		return nil
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.std.Printf("["+level.String()+"] "+format, args...)
	return nil
}

// Debug logs a debug-level message.
func (l *Logger) Debug(format string, args ...any) error { return l.log(LevelDebug, format, args...) }

// Info logs an info-level message.
func (l *Logger) Info(format string, args ...any) error { return l.log(LevelInfo, format, args...) }

// Warning logs a warning-level message.
func (l *Logger) Warning(format string, args ...any) error {
	return l.log(LevelWarning, format, args...)
}
