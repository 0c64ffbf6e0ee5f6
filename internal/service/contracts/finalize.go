package contracts

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"path"
	"regexp"
	"strings"

	generate_pdf "renza-entrega/internal/service/generate-pdf"
	"renza-entrega/internal/storage"
)

var cpfPattern = regexp.MustCompile(`^\d{3}\.?\d{3}\.?\d{3}-?\d{2}$`)

const (
	maxDocumentPhotos    = 2
	maxDocumentPhotoSize = 5 << 20
)

type FinalizeRequest struct {
	SignatureImage []byte
	SignerName     string
	SignerCPF      string
	DocumentPhotos []File
}

// NormalizeCPF validates a CPF typed with or without punctuation and returns
// its eleven digits.
func NormalizeCPF(cpf string) (string, error) {
	cpf = strings.TrimSpace(cpf)
	if !cpfPattern.MatchString(cpf) {
		return "", ErrInvalidCPF
	}
	return strings.NewReplacer(".", "", "-", "").Replace(cpf), nil
}

// readDocumentPhoto loads a document photo into memory and checks that it is
// an image of at most 5MB.
func readDocumentPhoto(f File) (File, error) {
	if f.Size > maxDocumentPhotoSize {
		return File{}, fmt.Errorf("%w: %s", ErrDocumentPhotoSize, f.Name)
	}
	if f.Body == nil {
		return File{}, fmt.Errorf("%w: %s", ErrDocumentPhotoType, f.Name)
	}

	data, err := io.ReadAll(io.LimitReader(f.Body, maxDocumentPhotoSize+1))
	if err != nil {
		return File{}, fmt.Errorf("read %s: %w", f.Name, err)
	}
	if len(data) > maxDocumentPhotoSize {
		return File{}, fmt.Errorf("%w: %s", ErrDocumentPhotoSize, f.Name)
	}
	if _, err := generate_pdf.DecodeRaster(data); err != nil {
		return File{}, fmt.Errorf("%w: %s: %v", ErrDocumentPhotoType, f.Name, err)
	}

	f.Size = int64(len(data))
	f.Body = bytes.NewReader(data)
	return f, nil
}

func (r FinalizeRequest) validate() (string, error) {
	if len(r.SignatureImage) == 0 {
		return "", ErrSignatureRequired
	}
	if _, err := generate_pdf.DecodeRaster(r.SignatureImage); err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidSignature, err)
	}
	if strings.TrimSpace(r.SignerName) == "" {
		return "", ErrSignerNameRequired
	}
	cpf, err := NormalizeCPF(r.SignerCPF)
	if err != nil {
		return "", err
	}
	if len(r.DocumentPhotos) == 0 || len(r.DocumentPhotos) > maxDocumentPhotos {
		return "", ErrDocumentPhotos
	}
	return cpf, nil
}

// Finalize stores the client's signature and identity document photos and
// freezes the pending item list. The contract cannot be changed afterwards.
func (s *Service) Finalize(ctx context.Context, contractID string, req FinalizeRequest) (storage.Contract, error) {
	const op = "service.contracts.Finalize"

	cpf, err := req.validate()
	if err != nil {
		return storage.Contract{}, fmt.Errorf("%s: %w", op, err)
	}

	photos := make([]File, 0, len(req.DocumentPhotos))
	for _, photo := range req.DocumentPhotos {
		checked, err := readDocumentPhoto(photo)
		if err != nil {
			return storage.Contract{}, fmt.Errorf("%s: %w", op, err)
		}
		photos = append(photos, checked)
	}

	current, err := s.store.Contract(ctx, contractID)
	if err != nil {
		return storage.Contract{}, fmt.Errorf("%s: %w", op, err)
	}
	if current.Finalized() {
		return storage.Contract{}, fmt.Errorf("%s: %w", op, storage.ErrContractFinalized)
	}

	photoURLs := make([]string, 0, len(photos))
	for i, photo := range photos {
		key := path.Join("contracts", contractID, "documents", fmt.Sprintf("doc_%d_%s", i+1, path.Base(photo.Name)))
		stored, err := s.upload(ctx, key, photo)
		if err != nil {
			return storage.Contract{}, fmt.Errorf("%s: upload document %d: %w", op, i+1, err)
		}
		photoURLs = append(photoURLs, stored.URL)
	}

	signedAt := s.now().Format("02/01/2006 15:04:05")

	updated, err := s.store.UpdateContract(ctx, contractID, func(c *storage.Contract) error {
		if c.Finalized() {
			return storage.ErrContractFinalized
		}

		c.Signature = &storage.Signature{
			SignedAt:   signedAt,
			SignerName: strings.TrimSpace(req.SignerName),
			SignerCPF:  cpf,
			Image:      req.SignatureImage,
			Captured:   true,
		}
		c.DocumentPhotos = photoURLs
		c.PendingItems = c.BuildPendingItems()

		return nil
	})
	if err != nil {
		return storage.Contract{}, fmt.Errorf("%s: %w", op, err)
	}

	s.log.Info("contract finalized",
		slog.String("contract", updated.ID),
		slog.Int("pending", len(updated.PendingItems)),
		slog.Int("document_photos", len(photoURLs)),
	)

	return updated, nil
}
