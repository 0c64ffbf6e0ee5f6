package memory

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"sync"

	"renza-entrega/internal/storage"
)

// Media simulates an object store. Objects are kept in memory and addressed
// under a local path prefix.
type Media struct {
	mu      sync.RWMutex
	prefix  string
	objects map[string][]byte
}

func NewMedia(prefix string) *Media {
	if prefix == "" {
		prefix = "simulated_local_path"
	}
	return &Media{prefix: prefix, objects: make(map[string][]byte)}
}

func (m *Media) Put(ctx context.Context, up storage.Upload) (storage.StoredMedia, error) {
	const op = "storage.memory.Media.Put"

	if err := ctx.Err(); err != nil {
		return storage.StoredMedia{}, err
	}

	var buf bytes.Buffer
	n, err := io.Copy(&buf, up.Body)
	if err != nil {
		return storage.StoredMedia{}, fmt.Errorf("%s: read %s: %w", op, up.Key, err)
	}

	m.mu.Lock()
	m.objects[up.Key] = buf.Bytes()
	m.mu.Unlock()

	return storage.StoredMedia{
		Key:         up.Key,
		URL:         m.prefix + "/" + up.Key,
		ContentType: up.ContentType,
		Size:        n,
	}, nil
}

// Object returns a stored object, mainly for inspection in tests.
func (m *Media) Object(key string) ([]byte, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	data, ok := m.objects[key]
	return data, ok
}
