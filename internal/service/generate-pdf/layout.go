package generate_pdf

import (
	"strings"
	"unicode/utf8"
)

const (
	pageMargin    = 7.0
	lineThickness = 0.2

	logoHeight      = 18.0
	companyColumnW  = 45.0
	companyMaxW     = 40.0
	companyLineStep = 2.5

	headerBoxHeight = 8.0
	fieldHeight     = 7.0
	labelOffsetY    = 2.0
	valueOffsetY    = 5.0

	labelFontSize = 6.0
	valueFontSize = 7.5

	tableHeaderHeight = 5.0
	tableRowHeight    = 10.0
	rowsPerTable      = 9

	checkboxSize        = 2.5
	checkboxTextOffsetY = 1.8

	declarationMinHeight  = 12.0
	declarationLineHeight = 2.2

	signatureBoxHeight = 12.0
	// signer strip plus signature box as drawn by drawSignatureBlock
	signatureBlockHeight = 8 + 3 + signatureBoxHeight + 2
	footerReserve        = 10.0

	formTitle    = "TERMO DE ENTREGA - MÓVEIS PLANEJADOS"
	pendingTitle = "DESCRITIVO DE ITENS PENDENTES"

	ptPerMM = 72.0 / 25.4
)

// DefaultDeclaration is printed when a contract carries no declaration text.
const DefaultDeclaration = `DECLARO PARA OS DEVIDOS FINS E EFEITOS, QUE OS AMBIENTES LISTADOS NESTE TERMO DE ENTREGA, QUE ESTÃO IDENTIFICADOS NA LISTAGEM ACIMA COMO "SIM" NA COLUNA "ITENS OK", ESTÃO EM CONDIÇÕES ADEQUADAS E FORAM ENTREGUES DE ACORDO COM O CONTRATO, CONFORME CONSTA NAS ESPECIFICAÇÕES E IMAGENS, SEM APRESENTAR QUALQUER DEFEITO OU VÍCIO DO PRODUTO. OS AMBIENTES QUE ESTÃO IDENTIFICADOS NA LISTAGEM ACIMA COMO "NÃO" NA COLUNA "ITENS OK", DEVEM ESTAR LISTADOS NO DESCRITIVO DE ITENS PENDENTES.`

var (
	headerFill = [3]int{0xF3, 0xF4, 0xF6}

	itemColumns    = [4]float64{0.07, 0.23, 0.55, 0.15}
	itemHeaders    = [4]string{"CÓD", "AMBIENTE", "ITENS VERIFICADOS", "ITENS OK"}
	pendingColumns = [2]float64{0.40, 0.60}
	pendingHeaders = [2]string{"AMBIENTE", "ITENS PARA ENCAMINHAMENTO DE ASSISTÊNCIA TÉCNICA"}
)

// lineHeight matches the default 1.15 leading of the paper form, in mm.
func lineHeight(fontSize float64) float64 {
	return fontSize * 1.15 / ptPerMM
}

// painter keeps the current font size next to the surface so text helpers
// can compute leading.
type painter struct {
	s        Surface
	fontSize float64

	pageW, pageH float64
	contentW     float64
}

func newPainter(s Surface) *painter {
	w, h := s.PageSize()
	return &painter{s: s, pageW: w, pageH: h, contentW: w - 2*pageMargin}
}

func (p *painter) font(style string, size float64) {
	p.fontSize = size
	p.s.SetFont(style, size)
}

func (p *painter) text(x, y float64, s string) {
	if s == "" {
		return
	}
	p.s.Text(x, y, s)
}

func (p *painter) centered(cx, y float64, s string, maxW float64) {
	for i, line := range p.wrap(s, maxW) {
		p.text(cx-p.s.StringWidth(line)/2, y+float64(i)*lineHeight(p.fontSize), line)
	}
}

// block draws s wrapped to maxW starting at baseline y. Lines whose baseline
// would fall below bottom are dropped; bottom <= 0 disables clipping.
func (p *painter) block(x, y float64, s string, maxW, bottom float64) int {
	step := lineHeight(p.fontSize)
	drawn := 0
	for i, line := range p.wrap(s, maxW) {
		baseline := y + float64(i)*step
		if bottom > 0 && baseline > bottom {
			break
		}
		p.text(x, baseline, line)
		drawn++
	}
	return drawn
}

// wrap splits s into lines no wider than maxW, breaking on spaces and, for
// words longer than a line, inside the word.
func (p *painter) wrap(s string, maxW float64) []string {
	if maxW <= 0 {
		return []string{s}
	}

	var lines []string
	for _, para := range strings.Split(s, "\n") {
		words := strings.Fields(para)
		if len(words) == 0 {
			lines = append(lines, "")
			continue
		}

		cur := ""
		for _, w := range words {
			candidate := w
			if cur != "" {
				candidate = cur + " " + w
			}
			if p.s.StringWidth(candidate) <= maxW {
				cur = candidate
				continue
			}
			if cur != "" {
				lines = append(lines, cur)
			}
			for p.s.StringWidth(w) > maxW {
				cut := p.fit(w, maxW)
				lines = append(lines, w[:cut])
				w = w[cut:]
			}
			cur = w
		}
		lines = append(lines, cur)
	}

	return lines
}

// fit returns the byte length of the longest rune prefix of w that fits in
// maxW, never less than one rune.
func (p *painter) fit(w string, maxW float64) int {
	end := 0
	for i := range w {
		if i > 0 && p.s.StringWidth(w[:i]) > maxW {
			break
		}
		end = i
	}
	if end == 0 {
		_, size := utf8.DecodeRuneInString(w)
		return size
	}
	if p.s.StringWidth(w) <= maxW {
		return len(w)
	}
	return end
}
