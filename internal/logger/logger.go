package logger

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"
)

// Color represents a lipgloss color ID
type Color string

const (
	// Standard colors
	ColorInfo    Color = "6"   // Cyan (ANSI 36)
	ColorDebug   Color = "248" // Light gray (ANSI 90)
	ColorSuccess Color = "46"  // Bright green (ANSI 32)
	ColorWarning Color = "220" // Yellow/Orange (ANSI 33)
	ColorError   Color = "1"   // Red (ANSI 31)

	// Gray scale
	ColorDarkGray  Color = "240" // Dark gray
	ColorLightGray Color = "248" // Light gray
)

// String returns the color ID as a string
func (c Color) String() string {
	return string(c)
}

// LogLevel represents the logging level
type LogLevel string

const (
	LogLevelDebug LogLevel = "debug"
	LogLevelInfo  LogLevel = "info"
)

// ParseLogLevel normalizes a configured level. An empty string is info.
func ParseLogLevel(s string) (LogLevel, error) {
	level := LogLevel(strings.ToLower(strings.TrimSpace(s)))
	switch level {
	case "":
		return LogLevelInfo, nil
	case LogLevelDebug, LogLevelInfo:
		return level, nil
	default:
		return "", fmt.Errorf("invalid log level: %v", s)
	}
}

var (
	iconDebug = "⚙"

	colorDebugStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorDebug))
)

// Logger is a simple logger wrapper around fmt.Fprintf
type Logger struct {
	mu     sync.Mutex
	level  LogLevel
	out    io.Writer
	errOut io.Writer
}

var globalLogger *Logger

// InitLogger initializes the global logger with the given level
func InitLogger(level LogLevel) {
	globalLogger = &Logger{
		level:  level,
		out:    os.Stdout,
		errOut: os.Stderr,
	}
}

// GetLogger returns the global logger instance
func GetLogger() *Logger {
	if globalLogger == nil {
		InitLogger(LogLevelInfo)
	}
	return globalLogger
}

// SetOutput redirects non-error messages. Machine-readable output modes
// send diagnostics to stderr so stdout stays parseable.
func (l *Logger) SetOutput(w io.Writer) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.out = w
}

// Output returns the writer non-error messages go to.
func (l *Logger) Output() io.Writer {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.out
}

// SetErrorOutput redirects error messages.
func (l *Logger) SetErrorOutput(w io.Writer) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.errOut = w
}

func (l *Logger) write(toErr bool, prefix, format string, args ...any) {
	message := fmt.Sprintf(format, args...)

	l.mu.Lock()
	defer l.mu.Unlock()

	w := l.out
	if toErr {
		w = l.errOut
	}

	if prefix != "" {
		fmt.Fprintf(w, "%s %s", prefix, message)
	} else {
		fmt.Fprintf(w, "%s", message)
	}
	if !strings.HasSuffix(message, "\n") {
		fmt.Fprintln(w)
	}
}

// Info logs an info message
func (l *Logger) Info(format string, args ...any) {
	l.write(false, "", format, args...)
}

// Debug logs a debug message (only if log level is debug)
func (l *Logger) Debug(format string, args ...any) {
	if l.level != LogLevelDebug {
		return
	}
	l.write(false, colorDebugStyle.Render(iconDebug), format, args...)
}

// Success logs a success message
func (l *Logger) Success(format string, args ...any) {
	l.write(false, "", format, args...)
}

// Error logs an error message
func (l *Logger) Error(format string, args ...any) {
	l.write(true, "", format, args...)
}

// Warning logs a warning message
func (l *Logger) Warning(format string, args ...any) {
	l.write(false, "", format, args...)
}

// Package-level convenience functions that use the global logger

// Info logs an info message using the global logger
func Info(format string, args ...any) {
	GetLogger().Info(format, args...)
}

// Debug logs a debug message using the global logger
func Debug(format string, args ...any) {
	GetLogger().Debug(format, args...)
}

// Success logs a success message using the global logger
func Success(format string, args ...any) {
	GetLogger().Success(format, args...)
}

// Error logs an error message using the global logger
func Error(format string, args ...any) {
	GetLogger().Error(format, args...)
}

// Warning logs a warning message using the global logger
func Warning(format string, args ...any) {
	GetLogger().Warning(format, args...)
}
