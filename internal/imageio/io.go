// Package imageio decodes image sources for grob.Image.
//
// Besides the standard library formats (PNG, JPEG, GIF) it registers the
// BMP, TIFF and WebP decoders from golang.org/x/image.
package imageio

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif"  // register GIF
	_ "image/jpeg" // register JPEG
	_ "image/png"  // register PNG
	"io"
	"os"
	"path/filepath"

	_ "golang.org/x/image/bmp"  // register BMP
	_ "golang.org/x/image/tiff" // register TIFF
	_ "golang.org/x/image/webp" // register WebP
)

// ErrEmptyData is returned when image data is empty.
var ErrEmptyData = errors.New("imageio: empty data")

// Load decodes the image file at path, auto-detecting the format.
func Load(path string) (image.Image, string, error) {
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return nil, "", fmt.Errorf("imageio: open file: %w", err)
	}
	defer func() { _ = f.Close() }()

	return Decode(f)
}

// LoadBytes decodes an image from a byte slice, auto-detecting the format.
func LoadBytes(data []byte) (image.Image, string, error) {
	if len(data) == 0 {
		return nil, "", ErrEmptyData
	}
	return Decode(bytes.NewReader(data))
}

// Decode decodes an image from r, auto-detecting the format.
func Decode(r io.Reader) (image.Image, string, error) {
	img, format, err := image.Decode(r)
	if err != nil {
		return nil, "", fmt.Errorf("imageio: decode: %w", err)
	}
	return img, format, nil
}
