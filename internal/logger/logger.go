// Package logger builds the process logger: everything goes to stdout and
// errors are additionally appended to a file.
package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
)

const (
	EnvLocal = "local"
	EnvDev   = "dev"
	EnvProd  = "prod"
)

type dualHandler struct {
	coreHandler  slog.Handler
	errorHandler slog.Handler
}

func (h *dualHandler) Enabled(ctx context.Context, lvl slog.Level) bool {
	return h.coreHandler.Enabled(ctx, lvl) || h.errorHandler.Enabled(ctx, lvl)
}

func (h *dualHandler) Handle(ctx context.Context, r slog.Record) error {
	var err error

	if h.coreHandler.Enabled(ctx, r.Level) {
		if err = h.coreHandler.Handle(ctx, r); err != nil {
			return err
		}
	}

	if r.Level >= slog.LevelError && h.errorHandler.Enabled(ctx, r.Level) {
		// the error file is best effort
		_ = h.errorHandler.Handle(ctx, r.Clone())
	}

	return err
}

func (h *dualHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &dualHandler{
		coreHandler:  h.coreHandler.WithAttrs(attrs),
		errorHandler: h.errorHandler.WithAttrs(attrs),
	}
}

func (h *dualHandler) WithGroup(name string) slog.Handler {
	return &dualHandler{
		coreHandler:  h.coreHandler.WithGroup(name),
		errorHandler: h.errorHandler.WithGroup(name),
	}
}

// New returns a logger for env writing to out. Errors are also appended to
// errorLog when it can be opened; an empty errorLog disables the file.
func New(env string, out io.Writer, errorLog string) *slog.Logger {
	level := slog.LevelDebug
	if env == EnvProd {
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}

	var core slog.Handler
	switch env {
	case EnvDev:
		core = slog.NewJSONHandler(out, opts)
	default:
		core = slog.NewTextHandler(out, opts)
	}

	if errorLog == "" {
		return slog.New(core)
	}

	errorFile, err := os.OpenFile(errorLog, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		l := slog.New(core)
		l.Warn("cannot open error log file", slog.String("path", errorLog), slog.String("error", err.Error()))
		return l
	}

	return slog.New(&dualHandler{
		coreHandler:  core,
		errorHandler: slog.NewTextHandler(errorFile, &slog.HandlerOptions{Level: slog.LevelError}),
	})
}
