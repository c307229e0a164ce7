// Package image provides the book illustration provider chain and the
// local placeholder generator used when no provider succeeds.
package image

import (
	"context"

	"github.com/libris-ai/libris/internal/core/ports/driven"
	"github.com/libris-ai/libris/internal/logger"
)

var _ driven.ImageService = (*Chain)(nil)

// Chain tries each provider in order, then the placeholder generator.
// Total failure degrades to an empty payload instead of an error.
type Chain struct {
	providers   []driven.ImageService
	placeholder *Placeholder
}

// NewChain creates a provider chain ending in the local placeholder.
// Nil providers are skipped.
func NewChain(providers ...driven.ImageService) *Chain {
	kept := make([]driven.ImageService, 0, len(providers))
	for _, p := range providers {
		if p != nil {
			kept = append(kept, p)
		}
	}
	return &Chain{providers: kept, placeholder: NewPlaceholder()}
}

// Generate renders an illustration with the first provider that succeeds,
// falling back to a locally drawn placeholder.
func (c *Chain) Generate(ctx context.Context, req driven.ImageRequest) (driven.Image, error) {
	var prompt string
	for _, p := range c.providers {
		img, err := p.Generate(ctx, req)
		if img.Prompt != "" {
			prompt = img.Prompt
		}
		if err != nil {
			logger.Debug("Image provider failed: %v", err)
			continue
		}
		if !img.Empty() {
			return img, nil
		}
	}

	logger.Debug("Falling back to placeholder image")
	img, err := c.placeholder.Generate(ctx, req)
	if err != nil {
		return driven.Image{MIME: "image/png", Prompt: prompt}, nil
	}
	if img.Prompt == "" {
		img.Prompt = prompt
	}
	return img, nil
}
