// Package logging provides structured logging for tuplemap.
package logging

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"sync"
	"time"
)

// Level represents the logging level.
type Level int

const (
	// LevelDebug is the most verbose level.
	LevelDebug Level = iota
	// LevelInfo is for informational messages.
	LevelInfo
	// LevelWarn is for warning messages.
	LevelWarn
	// LevelError is for error messages.
	LevelError
)

// String returns the string representation of the log level.
func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "debug"
	case LevelInfo:
		return "info"
	case LevelWarn:
		return "warn"
	case LevelError:
		return "error"
	default:
		return "unknown"
	}
}

// ParseLevel parses a string into a Level.
func ParseLevel(s string) Level {
	switch s {
	case "debug":
		return LevelDebug
	case "info":
		return LevelInfo
	case "warn":
		return LevelWarn
	case "error":
		return LevelError
	default:
		return LevelInfo
	}
}

// Format represents the log output format.
type Format int

const (
	// FormatText outputs logs in human-readable text format.
	FormatText Format = iota
	// FormatJSON outputs logs in JSON format.
	FormatJSON
)

// ParseFormat parses a string into a Format.
func ParseFormat(s string) Format {
	if s == "json" {
		return FormatJSON
	}
	return FormatText
}

// Logger is the interface for structured logging.
type Logger interface {
	// Debug logs a debug message with optional key-value pairs.
	Debug(msg string, keysAndValues ...interface{})
	// Info logs an info message with optional key-value pairs.
	Info(msg string, keysAndValues ...interface{})
	// Warn logs a warning message with optional key-value pairs.
	Warn(msg string, keysAndValues ...interface{})
	// Error logs an error message with optional key-value pairs.
	Error(msg string, keysAndValues ...interface{})
	// WithFields returns a new logger carrying the given fields on every entry.
	WithFields(keysAndValues ...interface{}) Logger
	// Enabled reports whether entries at level would be written.
	Enabled(level Level) bool
}

// Config holds the logger configuration.
type Config struct {
	Level  string
	Format string
	Output string
}

type logger struct {
	level  Level
	format Format
	output io.Writer
	fields map[string]interface{}
	mu     *sync.Mutex
}

// New creates a new Logger with the given configuration.
// An unusable Output path falls back to stderr.
func New(cfg Config) Logger {
	var output io.Writer
	switch cfg.Output {
	case "", "stderr":
		output = os.Stderr
	case "stdout":
		output = os.Stdout
	default:
		f, err := os.OpenFile(cfg.Output, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
		if err != nil {
			output = os.Stderr
		} else {
			output = f
		}
	}

	return NewWriter(output, ParseLevel(cfg.Level), ParseFormat(cfg.Format))
}

// NewWriter creates a Logger that writes to w.
func NewWriter(w io.Writer, level Level, format Format) Logger {
	return &logger{
		level:  level,
		format: format,
		output: w,
		fields: make(map[string]interface{}),
		mu:     &sync.Mutex{},
	}
}

// NewNop creates a no-op logger that discards all output.
func NewNop() Logger {
	return nopLogger{}
}

func (l *logger) Debug(msg string, keysAndValues ...interface{}) {
	l.log(LevelDebug, msg, keysAndValues...)
}

func (l *logger) Info(msg string, keysAndValues ...interface{}) {
	l.log(LevelInfo, msg, keysAndValues...)
}

func (l *logger) Warn(msg string, keysAndValues ...interface{}) {
	l.log(LevelWarn, msg, keysAndValues...)
}

func (l *logger) Error(msg string, keysAndValues ...interface{}) {
	l.log(LevelError, msg, keysAndValues...)
}

func (l *logger) Enabled(level Level) bool {
	return level >= l.level
}

func (l *logger) WithFields(keysAndValues ...interface{}) Logger {
	fields := make(map[string]interface{}, len(l.fields)+len(keysAndValues)/2)
	for k, v := range l.fields {
		fields[k] = v
	}
	addPairs(fields, keysAndValues)

	// Children share the parent's writer, so they share its lock too.
	return &logger{
		level:  l.level,
		format: l.format,
		output: l.output,
		fields: fields,
		mu:     l.mu,
	}
}

func (l *logger) log(level Level, msg string, keysAndValues ...interface{}) {
	if level < l.level {
		return
	}

	entry := make(map[string]interface{}, 3+len(l.fields)+len(keysAndValues)/2)
	for k, v := range l.fields {
		entry[k] = v
	}
	addPairs(entry, keysAndValues)
	entry["ts"] = time.Now().UTC().Format(time.RFC3339)
	entry["level"] = level.String()
	entry["msg"] = msg

	var line string
	if l.format == FormatJSON {
		data, err := json.Marshal(entry)
		if err != nil {
			line = fmt.Sprintf(`{"ts":%q,"level":"error","msg":"failed to marshal log entry"}`, entry["ts"])
		} else {
			line = string(data)
		}
	} else {
		line = formatText(entry)
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintln(l.output, line)
}

// formatText renders "ts [level] msg k=v ..." with fields in key order so
// output is stable across runs.
func formatText(entry map[string]interface{}) string {
	result := fmt.Sprintf("%s [%s] %s", entry["ts"], entry["level"], entry["msg"])

	keys := make([]string, 0, len(entry))
	for k := range entry {
		if k == "ts" || k == "level" || k == "msg" {
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		result += fmt.Sprintf(" %s=%v", k, entry[k])
	}
	return result
}

func addPairs(dst map[string]interface{}, keysAndValues []interface{}) {
	for i := 0; i < len(keysAndValues)-1; i += 2 {
		if key, ok := keysAndValues[i].(string); ok {
			dst[key] = keysAndValues[i+1]
		}
	}
}

type nopLogger struct{}

func (nopLogger) Debug(_ string, _ ...interface{})     {}
func (nopLogger) Info(_ string, _ ...interface{})      {}
func (nopLogger) Warn(_ string, _ ...interface{})      {}
func (nopLogger) Error(_ string, _ ...interface{})     {}
func (n nopLogger) WithFields(_ ...interface{}) Logger { return n }
func (nopLogger) Enabled(_ Level) bool                 { return false }
