// Package obscure degrades images so their content is hard to recognise.
package obscure

import (
	"bytes"
	"fmt"
	"image"

	"github.com/disintegration/imaging"
)

const DefaultSigma = 10.0

// Blur applies a gaussian blur and re-encodes the image in its original format.
func Blur(raw []byte, sigma float64) ([]byte, error) {
	if sigma <= 0 {
		sigma = DefaultSigma
	}
	_, name, err := image.DecodeConfig(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("decode image config: %w", err)
	}
	format, err := imaging.FormatFromExtension(name)
	if err != nil {
		return nil, fmt.Errorf("unsupported image format %q: %w", name, err)
	}
	img, err := imaging.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}

	var buf bytes.Buffer
	if err = imaging.Encode(&buf, imaging.Blur(img, sigma), format); err != nil {
		return nil, fmt.Errorf("encode image: %w", err)
	}
	return buf.Bytes(), nil
}

// Blurrer binds a sigma to Blur.
func Blurrer(sigma float64) func([]byte) ([]byte, error) {
	return func(raw []byte) ([]byte, error) {
		return Blur(raw, sigma)
	}
}
