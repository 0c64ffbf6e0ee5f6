package generate_pdf

import (
	"log/slog"
	"math"

	"renza-entrega/internal/storage"
)

func declarationLines(p *painter, c *storage.Contract) []string {
	text := c.Declaration
	if text == "" {
		text = DefaultDeclaration
	}

	p.font("", 6)
	return p.wrap(text, p.contentW-2)
}

// drawDeclaration boxes as many lines as fit above bottom, at least one,
// and returns the cursor below the box and the lines left for another page.
func (r *Renderer) drawDeclaration(p *painter, y, bottom float64, lines []string) (float64, []string) {
	fit := max(int((bottom-y-2)/declarationLineHeight), 1)
	n := min(len(lines), fit)
	h := math.Max(declarationMinHeight, float64(n)*declarationLineHeight+2)

	p.font("", 6)
	p.s.Rect(pageMargin, y, p.contentW, h, "D")
	for i, line := range lines[:n] {
		p.text(pageMargin+1, y+2.5+float64(i)*declarationLineHeight, line)
	}

	return y + h + 2, lines[n:]
}

type signerFields struct {
	signedAt, name, cpf string
}

func signer(c *storage.Contract) signerFields {
	if c.Signature == nil {
		return signerFields{}
	}
	return signerFields{c.Signature.SignedAt, c.Signature.SignerName, c.Signature.SignerCPF}
}

// drawSignerStrip draws the date/name/CPF columns with their rules. valueY is
// the baseline of the values relative to y.
func drawSignerStrip(p *painter, y, valueY float64, f signerFields) float64 {
	col := p.contentW / 3
	labelY := y + 2
	lineY := y + 6

	cells := []struct {
		label, value string
		lineEnd      float64
	}{
		{"DATA E HORA", f.signedAt, col - 1},
		{"NOME COMPLETO", f.name, 2*col - 1},
		{"CPF", f.cpf, 3 * col},
	}

	for i, cell := range cells {
		x := pageMargin + float64(i)*col
		p.font("", labelFontSize)
		p.text(x+1, labelY, cell.label)
		p.s.Line(x, lineY, pageMargin+cell.lineEnd, lineY)
		if cell.value != "" {
			p.font("", 7)
			p.block(x+1, y+valueY, cell.value, col-2, lineY)
		}
	}

	return lineY + 2
}

// drawSignatureBox draws the ASSINATURA label and rule, embedding the
// signature when the contract carries a captured one.
func (r *Renderer) drawSignatureBox(p *painter, y float64, sig *Raster) float64 {
	p.font("", labelFontSize)
	p.text(pageMargin+1, y+2, "ASSINATURA")

	boxY := y + 3
	p.s.Line(pageMargin, boxY+signatureBoxHeight, pageMargin+p.contentW, boxY+signatureBoxHeight)

	if sig != nil && sig.Height > 0 {
		h := signatureBoxHeight - 1
		w := math.Min(float64(sig.Width)*h/float64(sig.Height), p.contentW-2)
		x := pageMargin + (p.contentW-w)/2
		if err := p.s.Image("signature", sig, x, boxY+0.5, w, h); err != nil {
			r.log.Error("failed to add signature to pdf, skipping", slog.String("error", err.Error()))
			r.metrics.ImageFailed("signature")
		}
	}

	return boxY + signatureBoxHeight + 2
}

func (r *Renderer) drawSignatureBlock(p *painter, y float64, c *storage.Contract, sig *Raster) float64 {
	y = drawSignerStrip(p, y, 5, signer(c))
	return r.drawSignatureBox(p, y, sig)
}
