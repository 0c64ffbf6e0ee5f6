package generate_excel

import (
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"

	"renza-entrega/internal/storage"
)

const sheetName = "Contratos"

type GenerateExcelStorage interface {
	Contracts(ctx context.Context) ([]storage.Contract, error)
}

type GenerateExcelService struct {
	storage GenerateExcelStorage
}

func NewGenerateService(storage GenerateExcelStorage) *GenerateExcelService {
	return &GenerateExcelService{storage: storage}
}

var headers = []string{
	"Nº Contrato", "Cliente", "Data do Contrato", "Início Montagem", "Final Montagem",
	"Técnico", "Cidade", "Itens", "SIM", "NÃO", "Sem Resposta", "Status", "Pendências", "Assinado em",
}

// GenerateExcel builds the contract history workbook, one row per contract.
func (g *GenerateExcelService) GenerateExcel(ctx context.Context) ([]byte, error) {
	const op = "service.generate_excel.GenerateExcel"

	contracts, err := g.storage.Contracts(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: fetch data: %w", op, err)
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:   &excelize.Font{Bold: true},
		Fill:   excelize.Fill{Type: "pattern", Color: []string{"F3F4F6"}, Pattern: 1},
		Border: []excelize.Border{{Type: "bottom", Color: "000000", Style: 2}},
	})
	if err != nil {
		return nil, fmt.Errorf("%s: header style: %w", op, err)
	}

	for i, name := range headers {
		f.SetCellValue(sheetName, cellName(i+1, 1), name)
	}
	f.SetCellStyle(sheetName, "A1", cellName(len(headers), 1), headerStyle)

	for i, c := range contracts {
		row := i + 2
		ok, notOK, unset := countOutcomes(c.Items)

		status := "PENDENTE"
		signedAt := ""
		if c.Finalized() {
			status = "FINALIZADO"
			signedAt = c.Signature.SignedAt
		}

		values := []any{
			c.Number,
			c.ClientName,
			c.ContractDate,
			c.AssemblyStart,
			c.AssemblyEnd,
			c.Technician,
			c.Address.City,
			len(c.Items),
			ok,
			notOK,
			unset,
			status,
			len(c.PendingItems),
			signedAt,
		}
		for col, v := range values {
			f.SetCellValue(sheetName, cellName(col+1, row), v)
		}
	}

	f.SetPanes(sheetName, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	})
	f.SetColWidth(sheetName, "A", "B", 24)
	f.SetColWidth(sheetName, "C", "N", 15)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return buf.Bytes(), nil
}

func countOutcomes(items []storage.ContractItem) (ok, notOK, unset int) {
	for _, it := range items {
		switch it.Outcome {
		case storage.OutcomeOK:
			ok++
		case storage.OutcomeNotOK:
			notOK++
		default:
			unset++
		}
	}
	return ok, notOK, unset
}

func cellName(col, row int) string {
	name, _ := excelize.CoordinatesToCellName(col, row)
	return name
}
