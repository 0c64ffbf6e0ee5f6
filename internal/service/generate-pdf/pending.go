package generate_pdf

import (
	"renza-entrega/internal/storage"
)

// drawPendingPage fills a page listing items left for technical assistance.
// The second column stays blank as on the paper form.
func (r *Renderer) drawPendingPage(p *painter, y float64, c *storage.Contract, pending []storage.PendingItem, sig *Raster) float64 {
	y += 2
	p.font("B", 9)
	p.centered(p.pageW/2, y, pendingTitle, 0)
	y += 6

	widths := []float64{p.contentW * pendingColumns[0], p.contentW * pendingColumns[1]}
	y = tableHeader(p, y, widths, pendingHeaders[:], 7)

	for i := 0; i < rowsPerTable; i++ {
		x := pageMargin
		p.s.Rect(x, y, widths[0], tableRowHeight, "D")
		if i < len(pending) {
			p.font("", 6.5)
			p.block(x+1.5, y+tableRowHeight/2+1, pending[i].Area, widths[0]-2, y+tableRowHeight-0.5)
		}
		x += widths[0]
		p.s.Rect(x, y, widths[1], tableRowHeight, "D")
		y += tableRowHeight
	}
	y += 3

	y = drawSignerStrip(p, y, 5, signer(c))
	return r.drawSignatureBox(p, y, sig)
}
