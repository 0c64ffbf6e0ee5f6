// Package logo keeps the letterhead logo available to the report renderer
// without ever making a render wait on the network.
package logo

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	generate_pdf "renza-entrega/internal/service/generate-pdf"
)

const (
	maxLogoBytes      = 5 << 20
	defaultRetryAfter = 5 * time.Minute
)

type Fetcher struct {
	log        *slog.Logger
	client     *http.Client
	url        string
	timeout    time.Duration
	ttl        time.Duration
	retryAfter time.Duration
	now        func() time.Time

	group singleflight.Group

	mu          sync.Mutex
	raster      *generate_pdf.Raster
	fetchedAt   time.Time
	attemptedAt time.Time
}

type Option func(*Fetcher)

// WithRetryAfter sets how long to wait after a download attempt before
// trying again.
func WithRetryAfter(d time.Duration) Option {
	return func(f *Fetcher) {
		if d > 0 {
			f.retryAfter = d
		}
	}
}

func WithClock(now func() time.Time) Option {
	return func(f *Fetcher) { f.now = now }
}

func New(log *slog.Logger, url string, timeout, ttl time.Duration, opts ...Option) *Fetcher {
	f := &Fetcher{
		log:        log,
		client:     &http.Client{},
		url:        url,
		timeout:    timeout,
		ttl:        ttl,
		retryAfter: defaultRetryAfter,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Current returns the cached logo, or nil when none has been fetched yet.
// A missing or stale cache entry starts a background refresh, at most once
// per retry interval.
func (f *Fetcher) Current() *generate_pdf.Raster {
	if f.url == "" {
		return nil
	}

	now := f.now()

	f.mu.Lock()
	raster := f.raster
	due := f.due(now)
	if due {
		f.attemptedAt = now
	}
	f.mu.Unlock()

	if due {
		go func() {
			_ = f.Refresh(context.Background())
		}()
	}

	return raster
}

// due must be called with mu held.
func (f *Fetcher) due(now time.Time) bool {
	if !f.attemptedAt.IsZero() && now.Sub(f.attemptedAt) < f.retryAfter {
		return false
	}
	if f.fetchedAt.IsZero() {
		return true
	}
	return f.ttl > 0 && now.Sub(f.fetchedAt) > f.ttl
}

// Refresh downloads the logo once even when called concurrently. A failed
// download keeps the previous raster.
func (f *Fetcher) Refresh(ctx context.Context) error {
	const op = "service.logo.Refresh"

	if f.url == "" {
		return nil
	}

	_, err, _ := f.group.Do(f.url, func() (any, error) {
		f.mu.Lock()
		f.attemptedAt = f.now()
		f.mu.Unlock()

		raster, err := f.fetch(ctx)
		if err != nil {
			return nil, err
		}

		f.mu.Lock()
		f.raster = raster
		f.fetchedAt = f.now()
		f.mu.Unlock()

		return raster, nil
	})
	if err != nil {
		f.log.Error("failed to fetch logo", slog.String("op", op), slog.String("url", f.url), slog.String("error", err.Error()))
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

func (f *Fetcher) fetch(ctx context.Context) (*generate_pdf.Raster, error) {
	if f.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, f.timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.url, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("get: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxLogoBytes))
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}

	return generate_pdf.DecodeRaster(data)
}
