// Package contracts implements the field checklist: marking items, routing
// failed items to evidence capture, occurrences and the final signature.
package contracts

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"renza-entrega/internal/storage"
)

var (
	ErrItemsUnmarked       = errors.New("every item must be marked SIM or NÃO")
	ErrMediaIncomplete     = errors.New("close photo, far photo and video are required")
	ErrNoFiles             = errors.New("no files")
	ErrDescriptionRequired = errors.New("description is required")
	ErrSignatureRequired   = errors.New("signature is required")
	ErrInvalidSignature    = errors.New("signature is not a readable image")
	ErrSignerNameRequired  = errors.New("signer name is required")
	ErrInvalidCPF          = errors.New("invalid cpf")
	ErrDocumentPhotos      = errors.New("one or two document photos are required")
	ErrDocumentPhotoType   = errors.New("document photo is not an image")
	ErrDocumentPhotoSize   = errors.New("document photo is larger than 5MB")
)

type ContractStore interface {
	Contracts(ctx context.Context) ([]storage.Contract, error)
	Contract(ctx context.Context, id string) (storage.Contract, error)
	UpdateContract(ctx context.Context, id string, fn func(*storage.Contract) error) (storage.Contract, error)
}

type MediaStore interface {
	Put(ctx context.Context, up storage.Upload) (storage.StoredMedia, error)
}

// File is an uploaded file as received from the client.
type File struct {
	Name        string
	ContentType string
	Size        int64
	Body        io.Reader
}

type Service struct {
	log   *slog.Logger
	store ContractStore
	media MediaStore
	now   func() time.Time
	newID func() string
}

type Option func(*Service)

func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

func WithIDGenerator(newID func() string) Option {
	return func(s *Service) { s.newID = newID }
}

func New(log *slog.Logger, store ContractStore, media MediaStore, opts ...Option) *Service {
	s := &Service{
		log:   log,
		store: store,
		media: media,
		now:   time.Now,
		newID: uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Service) Contracts(ctx context.Context) ([]storage.Contract, error) {
	return s.store.Contracts(ctx)
}

func (s *Service) Contract(ctx context.Context, id string) (storage.Contract, error) {
	return s.store.Contract(ctx, id)
}

func (s *Service) upload(ctx context.Context, key string, f File) (storage.StoredMedia, error) {
	return s.media.Put(ctx, storage.Upload{
		Key:         key,
		Name:        f.Name,
		ContentType: f.ContentType,
		Size:        f.Size,
		Body:        f.Body,
	})
}
