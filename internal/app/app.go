// Package app assembles stores and services from the configuration. It is
// shared by the HTTP server and the report CLI.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"renza-entrega/internal/config"
	"renza-entrega/internal/metrics"
	"renza-entrega/internal/service/agenda"
	"renza-entrega/internal/service/auth"
	"renza-entrega/internal/service/contracts"
	generate_excel "renza-entrega/internal/service/generate-excel"
	generate_pdf "renza-entrega/internal/service/generate-pdf"
	"renza-entrega/internal/service/logo"
	"renza-entrega/internal/storage"
	"renza-entrega/internal/storage/memory"
	"renza-entrega/internal/storage/minio"
	"renza-entrega/internal/storage/mysql"
	"renza-entrega/internal/storage/seed"
)

// ContractStore is implemented by the memory and mysql stores.
type ContractStore interface {
	Contracts(ctx context.Context) ([]storage.Contract, error)
	Contract(ctx context.Context, id string) (storage.Contract, error)
	UpdateContract(ctx context.Context, id string, fn func(*storage.Contract) error) (storage.Contract, error)
}

type MediaStore interface {
	Put(ctx context.Context, up storage.Upload) (storage.StoredMedia, error)
}

type App struct {
	Store     ContractStore
	Media     MediaStore
	Metrics   *metrics.Metrics
	Logo      *logo.Fetcher
	Renderer  *generate_pdf.Renderer
	Reports   *generate_pdf.ReportService
	Checklist *contracts.Service
	Auth      *auth.Service
	Agenda    *agenda.Service
	Excel     *generate_excel.GenerateExcelService

	closers []func() error
}

// New opens the configured stores and builds every service on top of them.
func New(ctx context.Context, cfg *config.Config, log *slog.Logger) (*App, error) {
	const op = "app.New"

	a := &App{}

	store, err := a.openStore(ctx, cfg.Storage, log)
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	a.Store = store

	media, err := openMedia(ctx, cfg.Media)
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	a.Media = media

	m, err := metrics.New()
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	a.Metrics = m

	a.Logo = logo.New(log, cfg.Logo.URL, cfg.Logo.Timeout, cfg.Logo.TTL,
		logo.WithRetryAfter(cfg.Logo.RetryAfter),
	)
	a.Renderer = generate_pdf.New(log, letterhead(cfg.Company),
		generate_pdf.WithLogo(a.Logo),
		generate_pdf.WithMetrics(m),
	)
	a.Reports = generate_pdf.NewReportService(store, a.Renderer)
	a.Checklist = contracts.New(log, store, media)
	a.Auth = auth.New(memory.NewUsers(), cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	a.Agenda = agenda.New(store)
	a.Excel = generate_excel.NewGenerateService(store)

	return a, nil
}

// Close releases the stores. It is safe to call more than once.
func (a *App) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	return errors.Join(errs...)
}

func (a *App) openStore(ctx context.Context, cfg config.Storage, log *slog.Logger) (ContractStore, error) {
	seeds, err := seed.Load(cfg.SeedPath)
	if err != nil {
		return nil, err
	}

	switch cfg.Driver {
	case "mysql":
		db, err := mysql.New(cfg)
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, db.Close)

		if err := db.EnsureSchema(ctx); err != nil {
			return nil, err
		}

		n, err := db.SeedContracts(ctx, seeds)
		if err != nil {
			return nil, err
		}
		if n > 0 {
			log.Info("seeded contracts", slog.Int("count", n))
		}

		return db, nil
	default:
		return memory.New(seeds)
	}
}

func openMedia(ctx context.Context, cfg config.Media) (MediaStore, error) {
	if cfg.Driver != "minio" {
		return memory.NewMedia(cfg.LocalPrefix), nil
	}

	m, err := minio.New(cfg)
	if err != nil {
		return nil, err
	}
	if err := m.EnsureBucket(ctx); err != nil {
		return nil, err
	}

	return m, nil
}

func letterhead(c config.Company) generate_pdf.Company {
	return generate_pdf.Company{
		Name:     c.Name,
		CNPJ:     c.CNPJ,
		Phone:    c.Phone,
		Address1: c.Address1,
		Address2: c.Address2,
		Address3: c.Address3,
	}
}
