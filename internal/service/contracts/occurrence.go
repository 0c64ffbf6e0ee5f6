package contracts

import (
	"context"
	"fmt"
	"log/slog"
	"path"
	"strings"

	"renza-entrega/internal/storage"
)

// Occurrence is a problem reported by the technician for one item.
type Occurrence struct {
	ContractID  string
	ItemCode    string
	Description string
	Photo       *File
}

type OccurrenceReceipt struct {
	ID       string `json:"id"`
	PhotoURL string `json:"photo_url,omitempty"`
}

func (s *Service) SubmitOccurrence(ctx context.Context, o Occurrence) (OccurrenceReceipt, error) {
	const op = "service.contracts.SubmitOccurrence"

	if strings.TrimSpace(o.Description) == "" {
		return OccurrenceReceipt{}, fmt.Errorf("%s: %w", op, ErrDescriptionRequired)
	}

	c, err := s.store.Contract(ctx, o.ContractID)
	if err != nil {
		return OccurrenceReceipt{}, fmt.Errorf("%s: %w", op, err)
	}
	if c.Item(o.ItemCode) < 0 {
		return OccurrenceReceipt{}, fmt.Errorf("%s: %w", op, storage.ErrItemNotFound)
	}

	receipt := OccurrenceReceipt{ID: s.newID()}

	if o.Photo != nil {
		key := path.Join("contracts", c.ID, "occurrences", receipt.ID+"_"+path.Base(o.Photo.Name))
		stored, err := s.upload(ctx, key, *o.Photo)
		if err != nil {
			return OccurrenceReceipt{}, fmt.Errorf("%s: upload photo: %w", op, err)
		}
		receipt.PhotoURL = stored.URL
	}

	s.log.Info("occurrence registered",
		slog.String("id", receipt.ID),
		slog.String("contract", c.ID),
		slog.String("item", o.ItemCode),
	)

	return receipt, nil
}
