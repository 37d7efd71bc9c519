// Package logging provides leveled, structured key=value logging for whirl.
// It wraps the standard log package; output goes to stderr so it never
// interleaves with the spinner display on stdout.
package logging

import (
	"fmt"
	"log"
	"os"
	"sort"
	"strings"
	"sync"
)

// Level represents a log level.
type Level int

const (
	// LevelDebug is for verbose diagnostics.
	LevelDebug Level = iota
	// LevelInfo is for general informational messages.
	LevelInfo
	// LevelWarn is for recoverable problems.
	LevelWarn
	// LevelError is for significant failures.
	LevelError
)

var levelNames = map[Level]string{
	LevelDebug: "DEBUG",
	LevelInfo:  "INFO",
	LevelWarn:  "WARN",
	LevelError: "ERROR",
}

// Logger writes leveled messages with attached context fields.
type Logger struct {
	mu       sync.RWMutex
	minLevel Level
	fields   map[string]any
	output   *log.Logger
}

var defaultLogger = New()

// New creates a Logger that writes to stderr at warn level and above.
func New() *Logger {
	return &Logger{
		minLevel: LevelWarn,
		fields:   make(map[string]any),
		output:   log.New(os.Stderr, "", log.LstdFlags),
	}
}

// SetLevel sets the minimum level that will be written.
func (l *Logger) SetLevel(level Level) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.minLevel = level
}

// SetOutput replaces the underlying output logger.
func (l *Logger) SetOutput(output *log.Logger) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.output = output
}

// With returns a child Logger carrying an additional context field.
func (l *Logger) With(key string, value any) *Logger {
	l.mu.RLock()
	defer l.mu.RUnlock()

	fields := make(map[string]any, len(l.fields)+1)
	for k, v := range l.fields {
		fields[k] = v
	}
	fields[key] = value

	return &Logger{
		minLevel: l.minLevel,
		fields:   fields,
		output:   l.output,
	}
}

func (l *Logger) log(level Level, msg string, keyVals ...any) {
	l.mu.RLock()
	minLevel := l.minLevel
	output := l.output
	base := l.fields
	l.mu.RUnlock()

	if level < minLevel {
		return
	}

	fields := make(map[string]any, len(base)+len(keyVals)/2)
	for k, v := range base {
		fields[k] = v
	}
	for i := 0; i+1 < len(keyVals); i += 2 {
		if key, ok := keyVals[i].(string); ok {
			fields[key] = keyVals[i+1]
		}
	}

	var sb strings.Builder
	sb.WriteString(levelNames[level])
	sb.WriteString(": ")
	sb.WriteString(msg)

	if len(fields) > 0 {
		// Sorted so output is stable across runs.
		keys := make([]string, 0, len(fields))
		for k := range fields {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		sb.WriteString(" |")
		for _, k := range keys {
			sb.WriteString(" ")
			sb.WriteString(k)
			sb.WriteString("=")
			sb.WriteString(formatValue(fields[k]))
		}
	}

	output.Print(sb.String())
}

func formatValue(v any) string {
	switch val := v.(type) {
	case string:
		if strings.ContainsAny(val, " \t\n") {
			return fmt.Sprintf("%q", val)
		}
		return val
	case error:
		return fmt.Sprintf("%q", val.Error())
	default:
		return fmt.Sprint(v)
	}
}

// Debug logs at debug level.
func (l *Logger) Debug(msg string, keyVals ...any) { l.log(LevelDebug, msg, keyVals...) }

// Info logs at info level.
func (l *Logger) Info(msg string, keyVals ...any) { l.log(LevelInfo, msg, keyVals...) }

// Warn logs at warn level.
func (l *Logger) Warn(msg string, keyVals ...any) { l.log(LevelWarn, msg, keyVals...) }

// Error logs at error level.
func (l *Logger) Error(msg string, keyVals ...any) { l.log(LevelError, msg, keyVals...) }

// Package-level functions using the default logger.

// SetLevel sets the minimum level on the default logger.
func SetLevel(level Level) { defaultLogger.SetLevel(level) }

// SetOutput replaces the default logger's output.
func SetOutput(output *log.Logger) { defaultLogger.SetOutput(output) }

// With returns a child of the default logger with one extra field.
func With(key string, value any) *Logger { return defaultLogger.With(key, value) }

// Debug logs at debug level on the default logger.
func Debug(msg string, keyVals ...any) { defaultLogger.Debug(msg, keyVals...) }

// Info logs at info level on the default logger.
func Info(msg string, keyVals ...any) { defaultLogger.Info(msg, keyVals...) }

// Warn logs at warn level on the default logger.
func Warn(msg string, keyVals ...any) { defaultLogger.Warn(msg, keyVals...) }

// Error logs at error level on the default logger.
func Error(msg string, keyVals ...any) { defaultLogger.Error(msg, keyVals...) }
