package logger

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/phsym/console-slog"
)

// Setup installs the process-wide default logger. It panics on an unknown
// level or format, which config validation rules out.
func Setup(level, format, env string) {
	slog.SetDefault(slog.New(NewHandler(os.Stdout, level, format, env)))
}

// NewHandler builds the handler used by Setup, writing to w.
func NewHandler(w io.Writer, level, format, env string) slog.Handler {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		panic(err)
	}

	opts := &slog.HandlerOptions{
		Level:       lvl,
		AddSource:   true,
		ReplaceAttr: replaceAttr,
	}

	var handler slog.Handler
	switch format {
	case "json":
		handler = slog.NewJSONHandler(w, opts)
	case "text":
		if env == "dev" {
			handler = console.NewHandler(w, &console.HandlerOptions{
				Level:     lvl,
				AddSource: true,
			})
		} else {
			handler = slog.NewTextHandler(w, opts)
		}
	default:
		panic("invalid log format: " + format)
	}

	return handler
}

func replaceAttr(_ []string, a slog.Attr) slog.Attr {
	switch a.Key {
	case slog.TimeKey:
		if t, ok := a.Value.Any().(time.Time); ok {
			a.Value = slog.StringValue(t.UTC().Format(time.RFC3339))
		}
	case slog.SourceKey:
		if src, ok := a.Value.Any().(*slog.Source); ok {
			src.File = shortenSourcePath(src.File)
		}
	}
	return a
}

func shortenSourcePath(path string) string {
	prefixes := []string{
		"/go/pkg/mod/",
		"/build/",
		"/licensegate/",
		"/projects/licensegate/",
	}

	for _, prefix := range prefixes {
		if _, after, ok := strings.Cut(path, prefix); ok {
			shortened := after
			if atIdx := strings.Index(shortened, "@"); atIdx != -1 {
				if slashIdx := strings.Index(shortened[atIdx:], "/"); slashIdx != -1 {
					shortened = shortened[:atIdx] + shortened[atIdx+slashIdx:]
				}
			}
			return shortened
		}
	}

	return filepath.Base(path)
}
