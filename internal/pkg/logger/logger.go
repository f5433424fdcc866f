package logger

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/fatih/color"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Rotation limits for the JSON log file.
const (
	MaxSizeMB  = 100
	MaxBackups = 5
	MaxAgeDays = 28
)

// ConsoleHandler writes every record as JSON to the log file and mirrors a
// colored single-line rendering to the console.
type ConsoleHandler struct {
	json    slog.Handler
	console io.Writer
	attrs   []slog.Attr
	mu      *sync.Mutex
}

func NewConsoleHandler(console io.Writer, file io.Writer, level slog.Level) *ConsoleHandler {
	json := slog.NewJSONHandler(file, &slog.HandlerOptions{
		Level: level,
		ReplaceAttr: func(_ []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey {
				return slog.String("timestamp", a.Value.Time().Format(time.RFC3339))
			}
			return a
		},
	})
	return &ConsoleHandler{json: json, console: console, mu: &sync.Mutex{}}
}

func (h *ConsoleHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.json.Enabled(ctx, level)
}

func (h *ConsoleHandler) Handle(ctx context.Context, r slog.Record) error {
	if err := h.json.Handle(ctx, r); err != nil {
		return err
	}

	var colorFn func(format string, a ...interface{}) string
	switch {
	case r.Level >= slog.LevelError:
		colorFn = color.New(color.FgRed).Sprintf
	case r.Level >= slog.LevelWarn:
		colorFn = color.New(color.FgYellow).Sprintf
	case r.Level >= slog.LevelInfo:
		colorFn = color.New(color.FgGreen).Sprintf
	default:
		colorFn = color.New(color.FgCyan).Sprintf
	}

	parts := make([]string, 0, len(h.attrs)+r.NumAttrs())
	for _, a := range h.attrs {
		parts = append(parts, fmt.Sprintf("%s=%v", a.Key, a.Value))
	}
	r.Attrs(func(a slog.Attr) bool {
		parts = append(parts, fmt.Sprintf("%s=%v", a.Key, a.Value))
		return true
	})

	message := r.Message
	if len(parts) > 0 {
		message = message + " " + strings.Join(parts, " ")
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := fmt.Fprintf(h.console, "%s %s %s\n",
		color.New(color.FgBlue).Sprint(r.Time.Format("2006-01-02 15:04:05.000")),
		colorFn("%-5s", r.Level.String()),
		message,
	)
	return err
}

func (h *ConsoleHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &ConsoleHandler{
		json:    h.json.WithAttrs(attrs),
		console: h.console,
		attrs:   append(append([]slog.Attr{}, h.attrs...), attrs...),
		mu:      h.mu,
	}
}

func (h *ConsoleHandler) WithGroup(name string) slog.Handler {
	return &ConsoleHandler{
		json:    h.json.WithGroup(name),
		console: h.console,
		attrs:   h.attrs,
		mu:      h.mu,
	}
}

// ParseLevel maps a LOG_LEVEL value to a slog level, defaulting to info.
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

// Setup builds the process logger and installs it as the slog default.
// The returned closer flushes and closes the rotating file.
func Setup(logFilePath string, level slog.Level) (*slog.Logger, io.Closer) {
	file := &lumberjack.Logger{
		Filename:   logFilePath,
		MaxSize:    MaxSizeMB,
		MaxBackups: MaxBackups,
		MaxAge:     MaxAgeDays,
		Compress:   true,
	}
	logger := slog.New(NewConsoleHandler(os.Stdout, file, level))
	slog.SetDefault(logger)
	return logger, file
}
