package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"renza-entrega/internal/app"
	"renza-entrega/internal/config"
	"renza-entrega/internal/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg := config.MustConfig()

	log := logger.New(cfg.Env, os.Stdout, cfg.ErrorLog)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	deps, err := app.New(ctx, cfg, log)
	if err != nil {
		log.Error("failed to init app", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer func() {
		if err := deps.Close(); err != nil {
			log.Error("failed to close storage", slog.String("error", err.Error()))
		}
	}()

	srv := &http.Server{
		Addr:         cfg.Address,
		Handler:      routes(*cfg, log, deps),
		ReadTimeout:  cfg.HTTPServer.Timeout,
		WriteTimeout: cfg.HTTPServer.Timeout,
		IdleTimeout:  cfg.HTTPServer.IdleTimeout,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info("server started", slog.String("address", cfg.Address), slog.String("env", cfg.Env))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		// warm the letterhead logo so the first report already has it
		if err := deps.Logo.Refresh(gctx); err != nil {
			log.Warn("logo prefetch failed", slog.String("error", err.Error()))
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Error("server stopped", slog.String("error", err.Error()))
		return
	}

	log.Info("server stopped")
}
