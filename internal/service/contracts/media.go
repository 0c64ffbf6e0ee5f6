package contracts

import (
	"context"
	"fmt"
	"log/slog"
	"path"

	"renza-entrega/internal/storage"
)

// MediaSet is the evidence required for an item answered NÃO.
type MediaSet struct {
	Close *File
	Far   *File
	Video *File
}

type MediaReceipt struct {
	ItemCode string                `json:"item_code"`
	Protocol string                `json:"protocolo,omitempty"`
	Files    []storage.StoredMedia `json:"files"`
	Message  string                `json:"message"`
}

func (s *Service) SubmitItemMedia(ctx context.Context, contractID, itemCode string, set MediaSet) (MediaReceipt, error) {
	const op = "service.contracts.SubmitItemMedia"

	if set.Close == nil || set.Far == nil || set.Video == nil {
		return MediaReceipt{}, fmt.Errorf("%s: %w", op, ErrMediaIncomplete)
	}

	c, err := s.store.Contract(ctx, contractID)
	if err != nil {
		return MediaReceipt{}, fmt.Errorf("%s: %w", op, err)
	}
	idx := c.Item(itemCode)
	if idx < 0 {
		return MediaReceipt{}, fmt.Errorf("%s: %w", op, storage.ErrItemNotFound)
	}
	item := c.Items[idx]

	receipt := MediaReceipt{ItemCode: item.Code, Protocol: item.Protocol}

	for _, f := range []struct {
		kind string
		file *File
	}{
		{"perto", set.Close},
		{"longe", set.Far},
		{"video", set.Video},
	} {
		key := path.Join("contracts", c.ID, "items", item.Code, f.kind+"_"+path.Base(f.file.Name))
		stored, err := s.upload(ctx, key, *f.file)
		if err != nil {
			return MediaReceipt{}, fmt.Errorf("%s: upload %s: %w", op, f.kind, err)
		}
		receipt.Files = append(receipt.Files, stored)
	}

	protocol := item.Protocol
	if protocol == "" {
		protocol = "N/A"
	}
	receipt.Message = fmt.Sprintf("Mídia registrada para o item %q (Cód: %s). Protocolo: %s.", item.Area, item.Code, protocol)

	s.log.Info("item media stored",
		slog.String("contract", c.ID),
		slog.String("item", item.Code),
		slog.Int("files", len(receipt.Files)),
	)

	return receipt, nil
}

// SubmitMedia stores files captured outside of any contract.
func (s *Service) SubmitMedia(ctx context.Context, files []File) ([]storage.StoredMedia, error) {
	const op = "service.contracts.SubmitMedia"

	if len(files) == 0 {
		return nil, fmt.Errorf("%s: %w", op, ErrNoFiles)
	}

	out := make([]storage.StoredMedia, 0, len(files))
	for _, f := range files {
		key := path.Join("media", s.newID()+"_"+path.Base(f.Name))
		stored, err := s.upload(ctx, key, f)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		out = append(out, stored)
	}

	return out, nil
}
