package storage

import "io"

// Upload is one file handed to a media store.
type Upload struct {
	Key         string
	Name        string
	ContentType string
	Size        int64
	Body        io.Reader
}

type StoredMedia struct {
	Key         string `json:"key"`
	URL         string `json:"url"`
	ContentType string `json:"content_type"`
	Size        int64  `json:"size"`
}
