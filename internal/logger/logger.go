package logger

import (
	"io"
	"log/slog"
	"os"

	"github.com/polkiloo/ecocoleta/internal/config"
)

const serviceName = "ecocoleta"

// New creates a preconfigured slog.Logger writing JSON to stdout.
func New(cfg *config.Config) *slog.Logger {
	return newWithWriter(os.Stdout, cfg.LogLevel)
}

func newWithWriter(w io.Writer, level slog.Leveler) *slog.Logger {
	handler := slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level})
	return slog.New(handler).With(slog.String("service", serviceName))
}
