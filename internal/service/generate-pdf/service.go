package generate_pdf

import (
	"context"
	"fmt"

	"renza-entrega/internal/storage"
)

type ContractGetter interface {
	Contract(ctx context.Context, id string) (storage.Contract, error)
}

// ReportService renders the receipt of a stored contract.
type ReportService struct {
	contracts ContractGetter
	renderer  *Renderer
}

func NewReportService(contracts ContractGetter, renderer *Renderer) *ReportService {
	return &ReportService{contracts: contracts, renderer: renderer}
}

// ContractReport returns the file name and PDF bytes for contract id. A
// missing contract surfaces as storage.ErrContractNotFound before anything
// is drawn.
func (s *ReportService) ContractReport(ctx context.Context, id string) (string, []byte, error) {
	const op = "service.generate_pdf.ContractReport"

	c, err := s.contracts.Contract(ctx, id)
	if err != nil {
		return "", nil, fmt.Errorf("%s: %w", op, err)
	}

	data, err := s.renderer.Render(ctx, &c)
	if err != nil {
		return "", nil, fmt.Errorf("%s: %w", op, err)
	}

	return FileName(&c), data, nil
}
