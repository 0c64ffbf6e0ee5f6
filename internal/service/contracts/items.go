package contracts

import (
	"context"
	"fmt"
	"strconv"

	"renza-entrega/internal/storage"
)

type ItemChange struct {
	Contract storage.Contract
	Item     storage.ContractItem
	Message  string
}

// SetItemOutcome records the SIM/NÃO answer for one item. A NÃO answer gets
// a protocol code unless the item already has one; a SIM answer drops it.
func (s *Service) SetItemOutcome(ctx context.Context, contractID, itemCode string, ok bool) (ItemChange, error) {
	const op = "service.contracts.SetItemOutcome"

	var change ItemChange

	updated, err := s.store.UpdateContract(ctx, contractID, func(c *storage.Contract) error {
		if c.Finalized() {
			return storage.ErrContractFinalized
		}

		idx := c.Item(itemCode)
		if idx < 0 {
			return storage.ErrItemNotFound
		}
		item := &c.Items[idx]

		switch {
		case !ok && item.Protocol == "":
			item.Protocol = s.protocol(c.Number, item.Code)
			change.Message = fmt.Sprintf("Item %q marcado como PENDENTE. Protocolo gerado: %s.", item.Area, item.Protocol)
		case !ok:
			change.Message = fmt.Sprintf("Item %q continua PENDENTE. Protocolo existente: %s.", item.Area, item.Protocol)
		case item.Protocol != "":
			change.Message = fmt.Sprintf("Item %q marcado como OK. Protocolo %s removido pois o item não está mais pendente.", item.Area, item.Protocol)
			item.Protocol = ""
		default:
			change.Message = fmt.Sprintf("Item %q marcado como OK.", item.Area)
		}

		item.Outcome = storage.OutcomeFromBool(ok)
		change.Item = *item

		return nil
	})
	if err != nil {
		return ItemChange{}, fmt.Errorf("%s: %w", op, err)
	}

	change.Contract = updated

	return change, nil
}

// protocol builds PROT-<contract number>-<item code>-<last six digits of the
// unix time in milliseconds>.
func (s *Service) protocol(number, code string) string {
	millis := strconv.FormatInt(s.now().UnixMilli(), 10)
	if len(millis) > 6 {
		millis = millis[len(millis)-6:]
	}
	return fmt.Sprintf("PROT-%s-%s-%s", number, code, millis)
}

const (
	StepCapture   = "capture"
	StepSignature = "signature"
)

// NextStep tells the client where the checklist continues.
type NextStep struct {
	Step     string `json:"step"`
	ItemCode string `json:"item_code,omitempty"`
	Area     string `json:"ambiente,omitempty"`
}

// BeginSignature closes the checklist. The first NÃO item is routed to
// evidence capture, otherwise the client goes straight to signing.
func (s *Service) BeginSignature(ctx context.Context, contractID string) (NextStep, error) {
	const op = "service.contracts.BeginSignature"

	c, err := s.store.Contract(ctx, contractID)
	if err != nil {
		return NextStep{}, fmt.Errorf("%s: %w", op, err)
	}

	if c.Finalized() {
		return NextStep{}, fmt.Errorf("%s: %w", op, storage.ErrContractFinalized)
	}
	if !c.AllItemsMarked() {
		return NextStep{}, fmt.Errorf("%s: %w", op, ErrItemsUnmarked)
	}

	for _, it := range c.Items {
		if it.Outcome == storage.OutcomeNotOK {
			return NextStep{Step: StepCapture, ItemCode: it.Code, Area: it.Area}, nil
		}
	}

	return NextStep{Step: StepSignature}, nil
}
