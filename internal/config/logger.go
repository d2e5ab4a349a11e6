package config

import (
	"io"
	"log/slog"
	"os"
)

// SetupLogger builds the JSON logger shared by every service.
func SetupLogger(cfg *Config) *slog.Logger {
	return newLogger(os.Stdout, cfg)
}

func newLogger(w io.Writer, cfg *Config) *slog.Logger {
	opts := &slog.HandlerOptions{}
	if cfg.IsDevelopment() {
		opts.Level = slog.LevelDebug
	}

	return slog.New(slog.NewJSONHandler(w, opts)).With(
		slog.String("service", "talentscout"),
		slog.String("env", cfg.Server.Env),
	)
}
