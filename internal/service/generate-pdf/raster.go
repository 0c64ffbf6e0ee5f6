package generate_pdf

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"
	"strings"

	_ "golang.org/x/image/webp"
)

var ErrUnsupportedImage = errors.New("unsupported image")

// Raster is an image ready to be embedded in the report.
type Raster struct {
	Data   []byte
	Format string // fpdf image type: PNG, JPG or GIF
	Width  int
	Height int
}

// DecodeRaster inspects an encoded image. WebP is re-encoded as PNG since
// the PDF writer cannot embed it directly.
func DecodeRaster(data []byte) (*Raster, error) {
	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedImage, err)
	}
	if cfg.Width == 0 || cfg.Height == 0 {
		return nil, fmt.Errorf("%w: empty image", ErrUnsupportedImage)
	}

	switch format {
	case "png":
		return &Raster{Data: data, Format: "PNG", Width: cfg.Width, Height: cfg.Height}, nil
	case "jpeg":
		return &Raster{Data: data, Format: "JPG", Width: cfg.Width, Height: cfg.Height}, nil
	case "gif":
		return &Raster{Data: data, Format: "GIF", Width: cfg.Width, Height: cfg.Height}, nil
	case "webp":
		img, _, err := image.Decode(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrUnsupportedImage, err)
		}
		var buf bytes.Buffer
		if err := png.Encode(&buf, img); err != nil {
			return nil, fmt.Errorf("re-encode webp: %w", err)
		}
		return &Raster{Data: buf.Bytes(), Format: "PNG", Width: cfg.Width, Height: cfg.Height}, nil
	}

	return nil, fmt.Errorf("%w: %s", ErrUnsupportedImage, format)
}

// DecodeDataURL extracts the payload of a base64 data URL such as the ones
// produced by a browser canvas. Plain base64 without the prefix is accepted.
func DecodeDataURL(s string) ([]byte, error) {
	payload := strings.TrimSpace(s)
	if strings.HasPrefix(payload, "data:") {
		comma := strings.IndexByte(payload, ',')
		if comma < 0 {
			return nil, fmt.Errorf("malformed data url")
		}
		if !strings.HasSuffix(payload[:comma], ";base64") {
			return nil, fmt.Errorf("data url is not base64")
		}
		payload = payload[comma+1:]
	}

	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, fmt.Errorf("decode base64: %w", err)
	}

	return data, nil
}
