package generate_pdf

import (
	"renza-entrega/internal/storage"
)

// tableHeader draws a filled header row and returns the cursor below it.
func tableHeader(p *painter, y float64, widths []float64, titles []string, size float64) float64 {
	x := pageMargin
	p.font("B", size)
	p.s.SetFillColor(headerFill[0], headerFill[1], headerFill[2])
	for i, title := range titles {
		p.s.Rect(x, y, widths[i], tableHeaderHeight, "FD")
		p.centered(x+widths[i]/2, y+3.5, title, widths[i]-1)
		x += widths[i]
	}
	p.font("", size)
	return y + tableHeaderHeight
}

func itemText(it *storage.ContractItem) string {
	text := it.VerifiedItems
	if it.Outcome == storage.OutcomeNotOK && it.Protocol != "" {
		text += " (PROTOCOLO: " + it.Protocol + ")"
	}
	return text
}

// drawItemsTable draws the checklist with exactly rowsPerTable body rows.
// Rows past the end of items are left blank.
func (r *Renderer) drawItemsTable(p *painter, y float64, items []storage.ContractItem) float64 {
	widths := make([]float64, len(itemColumns))
	for i, f := range itemColumns {
		widths[i] = p.contentW * f
	}

	y = tableHeader(p, y, widths, itemHeaders[:], 6)

	for i := 0; i < rowsPerTable; i++ {
		var item *storage.ContractItem
		if i < len(items) {
			item = &items[i]
		}
		r.drawItemRow(p, y, widths, item)
		y += tableRowHeight
	}

	return y + 1
}

func (r *Renderer) drawItemRow(p *painter, y float64, widths []float64, item *storage.ContractItem) {
	x := pageMargin
	bottom := y + tableRowHeight - 0.5

	p.s.Rect(x, y, widths[0], tableRowHeight, "D")
	if item != nil {
		p.font("", 7)
		p.centered(x+widths[0]/2, y+tableRowHeight/2+2, item.Code, 0)
	}
	x += widths[0]

	p.s.Rect(x, y, widths[1], tableRowHeight, "D")
	if item != nil {
		p.font("", 6.5)
		p.block(x+1.5, y+4, item.Area, widths[1]-2, bottom)
	}
	x += widths[1]

	p.s.Rect(x, y, widths[2], tableRowHeight, "D")
	if item != nil {
		p.font("", 6)
		p.block(x+1.5, y+3.5, itemText(item), widths[2]-2, bottom)
	}
	x += widths[2]

	p.s.Rect(x, y, widths[3], tableRowHeight, "D")
	if item != nil {
		drawOutcome(p, x, y, item.Outcome)
	}
}

// drawOutcome draws the SIM/NÃO checkbox pair; the one matching the outcome
// is filled.
func drawOutcome(p *painter, cellX, cellY float64, outcome storage.Outcome) {
	boxX := cellX + 3
	simY := cellY + 2
	naoY := simY + checkboxSize + 1.5

	p.font("", 6)
	p.s.SetFillColor(0, 0, 0)

	p.s.Rect(boxX, simY, checkboxSize, checkboxSize, "D")
	p.text(boxX+checkboxSize+1, simY+checkboxTextOffsetY, "SIM")
	if outcome == storage.OutcomeOK {
		p.s.Rect(boxX, simY, checkboxSize, checkboxSize, "F")
	}

	p.s.Rect(boxX, naoY, checkboxSize, checkboxSize, "D")
	p.text(boxX+checkboxSize+1, naoY+checkboxTextOffsetY, "NÃO")
	if outcome == storage.OutcomeNotOK {
		p.s.Rect(boxX, naoY, checkboxSize, checkboxSize, "F")
	}
}
