package generate_pdf

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"io"
	"strings"
	"testing"
	"time"
	"unicode/utf8"
)

type drawOp struct {
	kind  string
	page  int
	x, y  float64
	w, h  float64
	style string
	text  string
	name  string
}

// recordingSurface remembers every primitive drawn, per page.
type recordingSurface struct {
	ops       []drawOp
	page      int
	pages     int
	fontSize  float64
	imageErr  error
	outputErr error
}

func newRecordingSurface() *recordingSurface {
	return &recordingSurface{page: 1, pages: 1, fontSize: 8}
}

func (s *recordingSurface) SetFont(style string, size float64) { s.fontSize = size }
func (s *recordingSurface) SetFillColor(r, g, b int)           {}

func (s *recordingSurface) Text(x, y float64, text string) {
	s.ops = append(s.ops, drawOp{kind: "text", page: s.page, x: x, y: y, text: text})
}

// StringWidth approximates Helvetica at half an em per rune.
func (s *recordingSurface) StringWidth(text string) float64 {
	return float64(utf8.RuneCountInString(text)) * s.fontSize * 0.5 / ptPerMM
}

func (s *recordingSurface) Rect(x, y, w, h float64, style string) {
	s.ops = append(s.ops, drawOp{kind: "rect", page: s.page, x: x, y: y, w: w, h: h, style: style})
}

func (s *recordingSurface) Line(x1, y1, x2, y2 float64) {
	s.ops = append(s.ops, drawOp{kind: "line", page: s.page, x: x1, y: y1, w: x2 - x1, h: y2 - y1})
}

func (s *recordingSurface) Image(name string, img *Raster, x, y, w, h float64) error {
	if s.imageErr != nil {
		return s.imageErr
	}
	s.ops = append(s.ops, drawOp{kind: "image", page: s.page, name: name, x: x, y: y, w: w, h: h})
	return nil
}

func (s *recordingSurface) AddPage() {
	s.pages++
	s.page = s.pages
}

func (s *recordingSurface) PageCount() int               { return s.pages }
func (s *recordingSurface) SetPage(n int)                { s.page = n }
func (s *recordingSurface) PageSize() (float64, float64) { return 210, 297 }

func (s *recordingSurface) Output(w io.Writer) error {
	if s.outputErr != nil {
		return s.outputErr
	}
	_, err := io.WriteString(w, "%PDF-fake")
	return err
}

func (s *recordingSurface) filter(page int, kind string) []drawOp {
	var out []drawOp
	for _, op := range s.ops {
		if op.page == page && op.kind == kind {
			out = append(out, op)
		}
	}
	return out
}

func (s *recordingSurface) pageText(page int) string {
	var parts []string
	for _, op := range s.filter(page, "text") {
		parts = append(parts, op.text)
	}
	return strings.Join(parts, "\n")
}

func (s *recordingSurface) images(name string) []drawOp {
	var out []drawOp
	for _, op := range s.ops {
		if op.kind == "image" && op.name == name {
			out = append(out, op)
		}
	}
	return out
}

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		img.Set(x, h/2, color.Black)
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

var errBrokenImage = errors.New("broken image")

func fixedClock() time.Time {
	return time.Date(2025, 3, 5, 14, 7, 9, 0, time.UTC)
}
