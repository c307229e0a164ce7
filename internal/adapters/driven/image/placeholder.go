package image

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"strings"

	"github.com/libris-ai/libris/internal/core/ports/driven"
)

var _ driven.ImageService = (*Placeholder)(nil)

// Default placeholder geometry.
const (
	defaultWidth  = 1024
	defaultHeight = 1024
)

// Placeholder draws a simple local cover: a dark vertical gradient with a
// teal title block. It never calls out to the network.
type Placeholder struct{}

// NewPlaceholder creates the local placeholder generator.
func NewPlaceholder() *Placeholder {
	return &Placeholder{}
}

// Generate renders the placeholder PNG for the requested size.
func (p *Placeholder) Generate(_ context.Context, req driven.ImageRequest) (driven.Image, error) {
	w, h := parseSize(req.Size)
	img := image.NewRGBA(image.Rect(0, 0, w, h))

	// Vertical gradient over a near-black base.
	for y := 0; y < h; y++ {
		blend := 255 * y / max(1, h-1)
		c := color.RGBA{R: 24, G: 26, B: uint8(27 + blend/6), A: 255}
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, c)
		}
	}

	// Teal title block across the upper third.
	pad := int(float64(min(w, h)) * 0.06)
	blockBottom := pad + int(float64(h)*0.34)
	accent := color.RGBA{R: 46, G: 196, B: 182, A: 255}
	for y := pad; y < blockBottom && y < h; y++ {
		for x := pad; x < w-pad; x++ {
			img.SetRGBA(x, y, accent)
		}
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return driven.Image{}, fmt.Errorf("encode placeholder: %w", err)
	}

	return driven.Image{Bytes: buf.Bytes(), MIME: "image/png"}, nil
}

// parseSize parses "1024x1024", falling back to the default on bad input.
func parseSize(size string) (int, int) {
	parts := strings.SplitN(strings.ToLower(size), "x", 2)
	if len(parts) != 2 {
		return defaultWidth, defaultHeight
	}
	var w, h int
	if _, err := fmt.Sscanf(parts[0], "%d", &w); err != nil || w <= 0 {
		return defaultWidth, defaultHeight
	}
	if _, err := fmt.Sscanf(parts[1], "%d", &h); err != nil || h <= 0 {
		return defaultWidth, defaultHeight
	}
	return w, h
}
