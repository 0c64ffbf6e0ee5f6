package generate_pdf

import (
	"bytes"
	"fmt"
	"io"
	"time"

	"github.com/go-pdf/fpdf"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
)

// Surface is the set of drawing primitives the report layout needs.
// Coordinates are millimetres from the top-left corner of the active page.
type Surface interface {
	SetFont(style string, size float64)
	SetFillColor(r, g, b int)
	Text(x, y float64, s string)
	StringWidth(s string) float64
	Rect(x, y, w, h float64, style string)
	Line(x1, y1, x2, y2 float64)
	Image(name string, img *Raster, x, y, w, h float64) error
	AddPage()
	PageCount() int
	SetPage(n int)
	PageSize() (w, h float64)
	Output(w io.Writer) error
}

const fontFamily = "Helvetica"

// pdfSurface draws on an A4 portrait fpdf document. Core fonts only know
// Windows-1252, so every string is transcoded before it reaches fpdf.
type pdfSurface struct {
	pdf *fpdf.Fpdf
	enc *encoding.Encoder
}

// NewPDFSurface creates a one-page A4 document in millimetres.
func NewPDFSurface(created time.Time) (Surface, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(pageMargin, pageMargin, pageMargin)
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetCreationDate(created)
	pdf.SetFont(fontFamily, "", 8)
	pdf.SetLineWidth(lineThickness)
	pdf.SetDrawColor(0, 0, 0)
	pdf.SetTextColor(0, 0, 0)
	pdf.AddPage()

	if pdf.Err() {
		return nil, fmt.Errorf("create pdf surface: %w", pdf.Error())
	}

	return &pdfSurface{
		pdf: pdf,
		enc: encoding.ReplaceUnsupported(charmap.Windows1252.NewEncoder()),
	}, nil
}

func (p *pdfSurface) encode(s string) string {
	out, err := p.enc.String(s)
	if err != nil {
		return s
	}
	return out
}

func (p *pdfSurface) SetFont(style string, size float64) {
	p.pdf.SetFont(fontFamily, style, size)
}

func (p *pdfSurface) SetFillColor(r, g, b int) {
	p.pdf.SetFillColor(r, g, b)
}

func (p *pdfSurface) Text(x, y float64, s string) {
	p.pdf.Text(x, y, p.encode(s))
}

func (p *pdfSurface) StringWidth(s string) float64 {
	return p.pdf.GetStringWidth(p.encode(s))
}

func (p *pdfSurface) Rect(x, y, w, h float64, style string) {
	p.pdf.Rect(x, y, w, h, style)
}

func (p *pdfSurface) Line(x1, y1, x2, y2 float64) {
	p.pdf.Line(x1, y1, x2, y2)
}

// Image embeds a raster. A broken image leaves the document usable: the
// fpdf error is returned and cleared.
func (p *pdfSurface) Image(name string, img *Raster, x, y, w, h float64) error {
	opts := fpdf.ImageOptions{ImageType: img.Format}

	p.pdf.RegisterImageOptionsReader(name, opts, bytes.NewReader(img.Data))
	if p.pdf.Err() {
		err := p.pdf.Error()
		p.pdf.ClearError()
		return fmt.Errorf("register image %s: %w", name, err)
	}

	p.pdf.ImageOptions(name, x, y, w, h, false, opts, 0, "")
	if p.pdf.Err() {
		err := p.pdf.Error()
		p.pdf.ClearError()
		return fmt.Errorf("draw image %s: %w", name, err)
	}

	return nil
}

func (p *pdfSurface) AddPage() {
	p.pdf.AddPage()
}

func (p *pdfSurface) PageCount() int {
	return p.pdf.PageCount()
}

func (p *pdfSurface) SetPage(n int) {
	p.pdf.SetPage(n)
}

func (p *pdfSurface) PageSize() (float64, float64) {
	return p.pdf.GetPageSize()
}

func (p *pdfSurface) Output(w io.Writer) error {
	if p.pdf.Err() {
		return p.pdf.Error()
	}
	return p.pdf.Output(w)
}
