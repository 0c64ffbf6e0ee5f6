// Package upload turns multipart form files into service file handles.
package upload

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"

	"renza-entrega/internal/service/contracts"
)

const maxMemory = 32 << 20

// Form is a parsed multipart request. Close releases every file opened
// through it together with the temporary files of the form.
type Form struct {
	r      *http.Request
	opened []io.Closer
}

// Parse reads a multipart request. The returned Form must be closed even
// when err is not nil.
func Parse(r *http.Request) (*Form, error) {
	form := &Form{r: r}
	if err := r.ParseMultipartForm(maxMemory); err != nil {
		return form, fmt.Errorf("parse multipart form: %w", err)
	}
	return form, nil
}

// File opens the first file sent under field, or returns nil.
func (f *Form) File(field string) (*contracts.File, error) {
	files, err := f.Files(field)
	if err != nil || len(files) == 0 {
		return nil, err
	}
	return &files[0], nil
}

// Files opens every file sent under field.
func (f *Form) Files(field string) ([]contracts.File, error) {
	if f.r.MultipartForm == nil {
		return nil, nil
	}

	headers := f.r.MultipartForm.File[field]
	out := make([]contracts.File, 0, len(headers))
	for _, h := range headers {
		file, err := f.open(h)
		if err != nil {
			return nil, err
		}
		out = append(out, file)
	}
	return out, nil
}

func (f *Form) Close() error {
	var errs []error
	for _, c := range f.opened {
		errs = append(errs, c.Close())
	}
	f.opened = nil

	if f.r.MultipartForm != nil {
		errs = append(errs, f.r.MultipartForm.RemoveAll())
	}
	return errors.Join(errs...)
}

func (f *Form) open(h *multipart.FileHeader) (contracts.File, error) {
	body, err := h.Open()
	if err != nil {
		return contracts.File{}, fmt.Errorf("open %s: %w", h.Filename, err)
	}
	f.opened = append(f.opened, body)

	return contracts.File{
		Name:        h.Filename,
		ContentType: h.Header.Get("Content-Type"),
		Size:        h.Size,
		Body:        body,
	}, nil
}
