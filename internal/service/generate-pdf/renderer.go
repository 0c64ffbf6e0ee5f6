package generate_pdf

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"time"

	"renza-entrega/internal/storage"
)

// LogoSource hands out the letterhead logo. Current must not block; nil
// means no logo is available right now.
type LogoSource interface {
	Current() *Raster
}

// Recorder receives render statistics.
type Recorder interface {
	ObserveRender(pages int, d time.Duration)
	ImageFailed(kind string)
}

type noopRecorder struct{}

func (noopRecorder) ObserveRender(int, time.Duration) {}
func (noopRecorder) ImageFailed(string)               {}

// Renderer lays out the delivery receipt of a contract.
type Renderer struct {
	log        *slog.Logger
	company    Company
	logo       LogoSource
	now        func() time.Time
	newSurface func(created time.Time) (Surface, error)
	metrics    Recorder
}

type Option func(*Renderer)

func WithClock(now func() time.Time) Option {
	return func(r *Renderer) { r.now = now }
}

func WithLogo(src LogoSource) Option {
	return func(r *Renderer) { r.logo = src }
}

// WithSurfaceFactory replaces the fpdf backed surface, mostly for tests.
func WithSurfaceFactory(f func(created time.Time) (Surface, error)) Option {
	return func(r *Renderer) { r.newSurface = f }
}

func WithMetrics(m Recorder) Option {
	return func(r *Renderer) { r.metrics = m }
}

func New(log *slog.Logger, company Company, opts ...Option) *Renderer {
	r := &Renderer{
		log:        log,
		company:    company,
		now:        time.Now,
		newSurface: NewPDFSurface,
		metrics:    noopRecorder{},
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// FileName is the download name of the receipt.
func FileName(c *storage.Contract) string {
	number := c.Number
	if number == "" {
		number = "SN"
	}
	return fmt.Sprintf("contrato_renza_%s.pdf", number)
}

// Render draws the contract and serializes the document.
func (r *Renderer) Render(ctx context.Context, c *storage.Contract) ([]byte, error) {
	const op = "service.generate_pdf.Render"

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	start := time.Now()

	s, err := r.Draw(c)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	var buf bytes.Buffer
	if err := s.Output(&buf); err != nil {
		return nil, fmt.Errorf("%s: output: %w", op, err)
	}

	r.metrics.ObserveRender(s.PageCount(), time.Since(start))

	return buf.Bytes(), nil
}

// Draw lays the contract out on a fresh surface. Page one holds the header,
// the first nine items, the declaration and the signature. A declaration
// too long for page one continues on the following pages, further items
// continue after that, and a finalized contract with pending items gets the
// pending list last.
func (r *Renderer) Draw(c *storage.Contract) (Surface, error) {
	now := r.now()

	s, err := r.newSurface(now)
	if err != nil {
		return nil, fmt.Errorf("new surface: %w", err)
	}
	p := newPainter(s)

	var logo *Raster
	if r.logo != nil {
		logo = r.logo.Current()
	}
	sig := r.signatureRaster(c)

	itemPages := chunk(c.Items, rowsPerTable)
	if len(itemPages) == 0 {
		itemPages = [][]storage.ContractItem{nil}
	}

	y := r.drawHeader(p, pageMargin, c, logo)
	y = r.drawItemsTable(p, y, itemPages[0])
	y, rest := r.drawDeclaration(p, y, p.pageH-footerReserve-signatureBlockHeight, declarationLines(p, c))
	r.drawSignatureBlock(p, y, c, sig)

	for len(rest) > 0 {
		s.AddPage()
		y = r.drawHeader(p, pageMargin, c, logo)
		_, rest = r.drawDeclaration(p, y, p.pageH-footerReserve, rest)
	}

	for _, items := range itemPages[1:] {
		s.AddPage()
		y = r.drawHeader(p, pageMargin, c, logo)
		r.drawItemsTable(p, y, items)
	}

	if c.Finalized() && len(c.PendingItems) > 0 {
		for _, pending := range chunk(c.PendingItems, rowsPerTable) {
			s.AddPage()
			y = r.drawHeader(p, pageMargin, c, logo)
			r.drawPendingPage(p, y, c, pending, sig)
		}
	}

	r.drawFooters(p, generatedAt(c, now))

	return s, nil
}

func (r *Renderer) signatureRaster(c *storage.Contract) *Raster {
	if !c.HasGenuineSignature() {
		return nil
	}

	sig, err := DecodeRaster(c.Signature.Image)
	if err != nil {
		r.log.Error("failed to decode signature, skipping",
			slog.String("contract", c.ID),
			slog.String("error", err.Error()),
		)
		r.metrics.ImageFailed("signature")
		return nil
	}

	return sig
}

func chunk[T any](items []T, size int) [][]T {
	var out [][]T
	for len(items) > 0 {
		n := min(size, len(items))
		out = append(out, items[:n])
		items = items[n:]
	}
	return out
}
