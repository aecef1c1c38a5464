package app

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"
)

// LogLevel orders message severities. Messages below a logger's
// configured level are dropped.
type LogLevel int

// Severities, least to most severe.
const (
	LogLevelDebug LogLevel = iota
	LogLevelInfo
	LogLevelWarn
	LogLevelError
)

var logLevelNames = [...]string{"DEBUG", "INFO", "WARN", "ERROR"}

// String returns the level's uppercase name.
func (l LogLevel) String() string {
	if l < 0 || int(l) >= len(logLevelNames) {
		return "UNKNOWN"
	}
	return logLevelNames[l]
}

// ParseLogLevel maps a level name to its LogLevel, ignoring case.
// Unknown names fall back to info.
func ParseLogLevel(s string) LogLevel {
	switch strings.ToLower(s) {
	case "debug":
		return LogLevelDebug
	case "warn", "warning":
		return LogLevelWarn
	case "error":
		return LogLevelError
	default:
		return LogLevelInfo
	}
}

// logField is one key=value annotation. Fields render in attachment
// order, so lines from the same subsystem stay visually aligned.
type logField struct {
	key string
	val any
}

// Logger provides leveled logging for the application. When the
// terminal backend owns the screen, log output must go to a writer
// that does not fight it for stdout; stderr or a file both work.
// WithField and WithComponent derive child loggers; a Logger that has
// been handed out is never mutated.
type Logger struct {
	mu       sync.Mutex
	level    LogLevel
	output   io.Writer
	prefix   string
	fields   []logField
	disabled bool
}

// LoggerConfig configures the logger.
type LoggerConfig struct {
	// Level is the minimum severity written.
	Level LogLevel
	// Output receives log lines. Defaults to os.Stderr.
	Output io.Writer
	// Prefix names the program in every line.
	Prefix string
}

// DefaultLoggerConfig returns the stderr configuration used when the
// application is not handed a logger.
func DefaultLoggerConfig() LoggerConfig {
	return LoggerConfig{
		Level:  LogLevelInfo,
		Output: os.Stderr,
		Prefix: "stagehand",
	}
}

// NewLogger creates a logger from cfg.
func NewLogger(cfg LoggerConfig) *Logger {
	out := cfg.Output
	if out == nil {
		out = os.Stderr
	}
	return &Logger{
		level:  cfg.Level,
		output: out,
		prefix: cfg.Prefix,
	}
}

// WithField returns a child logger that annotates every line with
// key=value. Reusing a key replaces the value in place rather than
// appending a duplicate.
func (l *Logger) WithField(key string, value any) *Logger {
	child := l.child(1)
	for i := range child.fields {
		if child.fields[i].key == key {
			child.fields[i].val = value
			return child
		}
	}
	child.fields = append(child.fields, logField{key: key, val: value})
	return child
}

// WithComponent returns a child logger tagged with the subsystem name.
func (l *Logger) WithComponent(component string) *Logger {
	return l.WithField("component", component)
}

// child copies the logger with room for extra fields. The copy gets
// its own mutex and its own fields slice.
func (l *Logger) child(extra int) *Logger {
	c := &Logger{
		level:    l.level,
		output:   l.output,
		prefix:   l.prefix,
		fields:   make([]logField, len(l.fields), len(l.fields)+extra),
		disabled: l.disabled,
	}
	copy(c.fields, l.fields)
	return c
}

// Debug logs at debug level. msg is a Printf format when args are
// given; the same holds for the other level methods.
func (l *Logger) Debug(msg string, args ...any) {
	l.log(LogLevelDebug, msg, args...)
}

// Info logs at info level.
func (l *Logger) Info(msg string, args ...any) {
	l.log(LogLevelInfo, msg, args...)
}

// Warn logs at warn level.
func (l *Logger) Warn(msg string, args ...any) {
	l.log(LogLevelWarn, msg, args...)
}

// Error logs at error level.
func (l *Logger) Error(msg string, args ...any) {
	l.log(LogLevelError, msg, args...)
}

func (l *Logger) log(level LogLevel, msg string, args ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.disabled || level < l.level || l.output == nil {
		return
	}
	if len(args) > 0 {
		msg = fmt.Sprintf(msg, args...)
	}

	var b strings.Builder
	b.WriteString(time.Now().Format("2006-01-02T15:04:05.000"))
	b.WriteString(" [")
	b.WriteString(level.String())
	b.WriteString("] ")
	if l.prefix != "" {
		b.WriteString(l.prefix)
		b.WriteString(": ")
	}
	b.WriteString(msg)
	for i, f := range l.fields {
		if i == 0 {
			b.WriteString(" {")
		} else {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "%s=%v", f.key, f.val)
	}
	if len(l.fields) > 0 {
		b.WriteByte('}')
	}
	b.WriteByte('\n')

	_, _ = io.WriteString(l.output, b.String())
}

// NullLogger discards everything. Tests hand it to New to keep loop
// output quiet.
var NullLogger = &Logger{disabled: true}
