// Package logger wraps log/slog with the component and request helpers the
// API uses everywhere.
package logger

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

// LogLevel represents logging levels
type LogLevel string

const (
	LevelDebug LogLevel = "debug"
	LevelInfo  LogLevel = "info"
	LevelWarn  LogLevel = "warn"
	LevelError LogLevel = "error"
)

type Config struct {
	Level       LogLevel `mapstructure:"level"`
	Format      string   `mapstructure:"format"` // "json" or "text"
	Component   string   `mapstructure:"component"`
	Environment string   `mapstructure:"environment"`
}

// Logger wraps slog.Logger
type Logger struct {
	*slog.Logger
}

// New builds a logger writing to stdout
func New(config Config) *Logger {
	return NewWithWriter(config, os.Stdout)
}

func NewWithWriter(config Config, w io.Writer) *Logger {
	opts := &slog.HandlerOptions{Level: parseLevel(config.Level)}

	var handler slog.Handler
	if strings.EqualFold(config.Format, "text") {
		handler = slog.NewTextHandler(w, opts)
	} else {
		handler = slog.NewJSONHandler(w, opts)
	}

	l := slog.New(handler)
	if config.Component != "" {
		l = l.With("component", config.Component)
	}
	if config.Environment != "" {
		l = l.With("environment", config.Environment)
	}
	return &Logger{Logger: l}
}

// Discard returns a logger that drops everything, for tests
func Discard() *Logger {
	return NewWithWriter(Config{Level: LevelError}, io.Discard)
}

func parseLevel(level LogLevel) slog.Level {
	switch LogLevel(strings.ToLower(string(level))) {
	case LevelDebug:
		return slog.LevelDebug
	case LevelWarn:
		return slog.LevelWarn
	case LevelError:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// WithContext creates a new logger with additional key/value pairs
func (l *Logger) WithContext(args ...interface{}) *Logger {
	return &Logger{Logger: l.Logger.With(args...)}
}

func (l *Logger) WithComponent(component string) *Logger {
	return l.WithContext("component", component)
}

// Error logs at error level and appends the caller's file and line
func (l *Logger) Error(msg string, args ...interface{}) {
	if _, file, line, ok := runtime.Caller(1); ok {
		args = append(args, "caller", fmt.Sprintf("%s:%d", filepath.Base(file), line))
	}
	l.Logger.Error(msg, args...)
}

// GinMiddleware logs one line per request once the handler chain returns
func (l *Logger) GinMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		args := []interface{}{
			"method", c.Request.Method,
			"path", c.FullPath(),
			"status", status,
			"duration_ms", time.Since(start).Milliseconds(),
			"remote_addr", c.ClientIP(),
		}
		if len(c.Errors) > 0 {
			args = append(args, "errors", c.Errors.String())
		}

		switch {
		case status >= 500:
			l.Logger.Error("HTTP request failed", args...)
		case status >= 400:
			l.Warn("HTTP request rejected", args...)
		default:
			l.Info("HTTP request completed", args...)
		}
	}
}
