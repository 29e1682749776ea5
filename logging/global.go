// Package logging wraps log/slog with a process-wide logger that writes
// text to the console and JSON to a weekly rotating file.
package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"
)

// Options configures the global logger. An empty Dir logs to the console only.
type Options struct {
	Dir            string
	Level          string
	RetentionWeeks int
	MaxFileSize    int64
	Console        io.Writer // defaults to os.Stdout
}

type LoggingService struct {
	Logger *slog.Logger
	writer *RotatingWriter
}

var (
	DefaultLoggingService *LoggingService
	mu                    sync.Mutex
)

// ParseLevel maps a LOG_LEVEL value to a slog level. Unknown values mean info.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// InitLogger initializes the global logger at info level with a 4 week
// retention in logDir. Tests pass "" to log to the console only.
func InitLogger(logDir string) {
	if err := Init(Options{Dir: logDir, RetentionWeeks: 4}); err != nil {
		Error("Failed to initialize file logging, using console only", "error", err)
	}
}

// Init replaces the global logger. If the log file cannot be opened the
// console logger is still installed and the error returned.
func Init(opts Options) error {
	console := opts.Console
	if console == nil {
		console = os.Stdout
	}
	level := ParseLevel(opts.Level)

	handlers := []slog.Handler{
		slog.NewTextHandler(console, &slog.HandlerOptions{Level: level}),
	}

	var (
		writer *RotatingWriter
		err    error
	)
	if opts.Dir != "" {
		writer, err = NewRotatingWriter(opts.Dir, opts.RetentionWeeks, opts.MaxFileSize)
		if err == nil {
			// the file keeps debug records even when the console is quieter
			handlers = append(handlers, slog.NewJSONHandler(writer, &slog.HandlerOptions{Level: slog.LevelDebug}))
		}
	}

	service := &LoggingService{Logger: slog.New(&multiHandler{handlers: handlers}), writer: writer}

	mu.Lock()
	previous := DefaultLoggingService
	DefaultLoggingService = service
	mu.Unlock()

	slog.SetDefault(service.Logger)
	if previous != nil && previous.writer != nil {
		previous.writer.Close()
	}
	return err
}

// Close flushes and closes the log file, if any
func Close() error {
	mu.Lock()
	defer mu.Unlock()

	if DefaultLoggingService == nil || DefaultLoggingService.writer == nil {
		return nil
	}
	return DefaultLoggingService.writer.Close()
}

func logger() *slog.Logger {
	mu.Lock()
	defer mu.Unlock()

	if DefaultLoggingService == nil || DefaultLoggingService.Logger == nil {
		return slog.Default()
	}
	return DefaultLoggingService.Logger
}

func Info(msg string, args ...any)  { logger().Info(msg, args...) }
func Error(msg string, args ...any) { logger().Error(msg, args...) }
func Warn(msg string, args ...any)  { logger().Warn(msg, args...) }
func Debug(msg string, args ...any) { logger().Debug(msg, args...) }
