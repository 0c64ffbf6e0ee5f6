package generate_pdf

import (
	"log/slog"

	"renza-entrega/internal/storage"
)

// Company is the letterhead printed in the top-right corner of every page.
type Company struct {
	Name     string
	CNPJ     string
	Phone    string
	Address1 string
	Address2 string
	Address3 string
}

type infoCell struct {
	label string
	value string
	width float64
}

// drawHeader draws letterhead, title row and contract info grid starting at
// y and returns the cursor below it. The block always has the same height.
func (r *Renderer) drawHeader(p *painter, y float64, c *storage.Contract, logo *Raster) float64 {
	top := y

	if logo != nil && logo.Height > 0 {
		w := float64(logo.Width) * logoHeight / float64(logo.Height)
		if err := p.s.Image("logo", logo, pageMargin, top, w, logoHeight); err != nil {
			r.log.Error("failed to add logo to pdf, skipping", slog.String("error", err.Error()))
			r.metrics.ImageFailed("logo")
		}
	}

	x := p.pageW - pageMargin - companyColumnW
	cy := top
	p.font("B", 6.5)
	p.block(x, cy, r.company.Name, companyMaxW, 0)
	p.font("", 6.5)
	for _, line := range []string{
		"CNPJ " + r.company.CNPJ,
		"Fone: " + r.company.Phone,
		r.company.Address1,
		r.company.Address2,
		r.company.Address3,
	} {
		cy += companyLineStep
		p.block(x, cy, line, companyMaxW, 0)
	}

	y = top + logoHeight + 4

	// date | title | assembly start
	third := p.contentW / 3
	p.s.Rect(pageMargin, y, third, headerBoxHeight, "D")
	p.font("", labelFontSize)
	p.text(pageMargin+1, y+2.5, "DATA DO CONTRATO")
	p.font("", 8)
	p.centered(pageMargin+third/2, y+6, c.ContractDate, 0)

	p.s.Rect(pageMargin+third, y, third, headerBoxHeight, "D")
	p.font("B", 7)
	p.centered(pageMargin+third+third/2, y+4.5, formTitle, third-2)

	p.s.Rect(pageMargin+2*third, y, third, headerBoxHeight, "D")
	p.font("", labelFontSize)
	p.text(pageMargin+2*third+1, y+2.5, "INÍCIO DA MONTAGEM")
	p.font("", 8)
	p.centered(pageMargin+2*third+third/2, y+6, c.AssemblyStart, 0)
	y += headerBoxHeight

	w := p.contentW
	col1, col2, col3, col4 := w*0.45, w*0.18, w*0.18, w*0.19

	y = r.drawInfoRow(p, y, []infoCell{
		{"NOME CONTRATO", c.ClientName, col1},
		{"CONTRATO Nº", c.Number, col2},
		{"FINAL MONTAGEM", c.AssemblyEnd, col3},
		{"TÉCNICO RESPONSÁVEL", c.Technician, col4},
	})
	y = r.drawInfoRow(p, y, []infoCell{
		{"RESPONSÁVEL P/ ENTREGA E MONTAGEM", c.DeliveryResponsible, col1},
		{"", "", col2 + col3},
		{"TELEFONE", c.Phone, col4},
	})
	y = r.drawInfoRow(p, y, []infoCell{
		{"ENDEREÇO DE ENTREGA", c.Address.Street, w},
	})
	y = r.drawInfoRow(p, y, []infoCell{
		{"BAIRRO", c.Address.Neighborhood, w * 0.45},
		{"CIDADE", c.Address.City, w * 0.25},
		{"UF", c.Address.State, w * 0.08},
		{"CEP", c.Address.PostalCode, w * 0.22},
	})

	return y + 1
}

// drawInfoRow draws bordered cells with a small label and a value clipped to
// the cell.
func (r *Renderer) drawInfoRow(p *painter, y float64, cells []infoCell) float64 {
	x := pageMargin
	for _, cell := range cells {
		p.s.Rect(x, y, cell.width, fieldHeight, "D")
		if cell.label != "" {
			p.font("", labelFontSize)
			p.text(x+1, y+labelOffsetY, cell.label)
		}
		p.font("", valueFontSize)
		p.block(x+1, y+valueOffsetY, cell.value, cell.width-2, y+fieldHeight)
		x += cell.width
	}
	return y + fieldHeight
}
