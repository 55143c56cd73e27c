// Package qrx renders QR codes as PNG images.
package qrx

import (
	"fmt"
	"image/png"
	"io"

	"github.com/boombuler/barcode"
	"github.com/boombuler/barcode/qr"
)

// DefaultSize is the rendered edge length in pixels.
const DefaultSize = 256

// EncodePNG writes content as a QR code PNG of size x size pixels. A
// non-positive size falls back to DefaultSize.
func EncodePNG(w io.Writer, content string, size int) error {
	if content == "" {
		return fmt.Errorf("qrx: empty content")
	}
	if size <= 0 {
		size = DefaultSize
	}

	code, err := qr.Encode(content, qr.M, qr.Auto)
	if err != nil {
		return fmt.Errorf("qrx: encode: %w", err)
	}

	scaled, err := barcode.Scale(code, size, size)
	if err != nil {
		return fmt.Errorf("qrx: scale: %w", err)
	}

	if err := png.Encode(w, scaled); err != nil {
		return fmt.Errorf("qrx: write png: %w", err)
	}
	return nil
}
