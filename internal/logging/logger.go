package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"study/internal/config"
)

// Options describes logger construction parameters.
type Options struct {
	// Level and Format apply to the log file.
	Level    string
	Format   string
	FilePath string

	// Console receives human-oriented output at ConsoleLevel. Nil disables it.
	Console      io.Writer
	ConsoleLevel string

	// InvocationID is attached to every record; a random ID is used when empty.
	InvocationID string
}

// New constructs a slog logger using the provided options.
func New(opts Options) (*slog.Logger, error) {
	format := strings.ToLower(strings.TrimSpace(opts.Format))
	if format == "" {
		format = "console"
	}
	if format != "console" && format != "json" {
		return nil, fmt.Errorf("log format: unsupported value %q", opts.Format)
	}

	var handlers []slog.Handler
	if path := strings.TrimSpace(opts.FilePath); path != "" {
		file, err := openLogFile(path)
		if err != nil {
			return nil, err
		}
		level := levelVar(opts.Level)
		addSource := level.Level() <= slog.LevelDebug
		if format == "json" {
			handlers = append(handlers, newJSONHandler(file, level, addSource))
		} else {
			handlers = append(handlers, newPrettyHandler(file, level, addSource))
		}
	}
	if opts.Console != nil {
		consoleLevel := opts.ConsoleLevel
		if strings.TrimSpace(consoleLevel) == "" {
			consoleLevel = "warn"
		}
		handlers = append(handlers, newPrettyHandler(opts.Console, levelVar(consoleLevel), false))
	}

	invocationID := strings.TrimSpace(opts.InvocationID)
	if invocationID == "" {
		invocationID = uuid.NewString()
	}
	return slog.New(newInvocationHandler(newFanoutHandler(handlers...), invocationID)), nil
}

// NewFromConfig creates the CLI logger: a file in the state directory using
// the configured format and level, plus stderr output that shows warnings, or
// everything when verbose is set.
func NewFromConfig(cfg *config.Config, stderr io.Writer, verbose bool) (*slog.Logger, error) {
	if cfg == nil {
		return New(Options{Console: stderr, ConsoleLevel: "warn"})
	}
	consoleLevel := "warn"
	if verbose {
		consoleLevel = "debug"
	}
	return New(Options{
		Level:        cfg.Logging.Level,
		Format:       cfg.Logging.Format,
		FilePath:     cfg.LogPath(),
		Console:      stderr,
		ConsoleLevel: consoleLevel,
	})
}

func levelVar(level string) *slog.LevelVar {
	v := new(slog.LevelVar)
	v.Set(parseLevel(level))
	return v
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
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

func openLogFile(path string) (io.Writer, error) {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("ensure log directory: %w", err)
		}
	}
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log file %s: %w", path, err)
	}
	return file, nil
}

func newJSONHandler(w io.Writer, lvl *slog.LevelVar, addSource bool) slog.Handler {
	opts := slog.HandlerOptions{
		Level:     lvl,
		AddSource: addSource,
		ReplaceAttr: func(groups []string, attr slog.Attr) slog.Attr {
			switch attr.Key {
			case slog.TimeKey:
				attr.Key = "ts"
				if attr.Value.Kind() == slog.KindTime {
					attr.Value = slog.StringValue(attr.Value.Time().UTC().Format(time.RFC3339))
				}
			case slog.LevelKey:
				attr.Value = slog.StringValue(strings.ToLower(attr.Value.String()))
			case slog.SourceKey:
				if src, ok := attr.Value.Any().(*slog.Source); ok && src != nil {
					attr.Value = slog.StringValue(fmt.Sprintf("%s:%d", filepath.Base(src.File), src.Line))
				}
			}
			return attr
		},
	}
	return slog.NewJSONHandler(w, &opts)
}
