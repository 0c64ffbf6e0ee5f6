package generate_pdf

import (
	"fmt"
	"time"

	"renza-entrega/internal/storage"
)

func generatedAt(c *storage.Contract, now time.Time) string {
	if c.GeneratedAt != "" {
		return c.GeneratedAt
	}
	return "GERADO EM " + now.Format("02/01/2006") + " ÀS " + now.Format("15:04:05")
}

// drawFooters stamps every page once the final page count is known.
func (r *Renderer) drawFooters(p *painter, stamp string) {
	total := p.s.PageCount()
	for i := 1; i <= total; i++ {
		p.s.SetPage(i)
		p.font("", 6)
		p.text(pageMargin, p.pageH-4, stamp)
		p.text(p.pageW-22, p.pageH-4, fmt.Sprintf("Página %d/%d", i, total))
	}
}
