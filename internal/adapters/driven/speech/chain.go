// Package speech provides the text-to-speech provider chain.
package speech

import (
	"context"
	"strings"

	"github.com/libris-ai/libris/internal/core/ports/driven"
	"github.com/libris-ai/libris/internal/logger"
)

var _ driven.SpeechService = (*Chain)(nil)

// Chain tries each provider in order and returns the first synthesised
// audio. Total failure degrades to an empty payload instead of an error, so
// a missing TTS capability never breaks an answer.
type Chain struct {
	providers []driven.SpeechService
}

// NewChain creates a provider chain. Nil providers are skipped.
func NewChain(providers ...driven.SpeechService) *Chain {
	kept := make([]driven.SpeechService, 0, len(providers))
	for _, p := range providers {
		if p != nil {
			kept = append(kept, p)
		}
	}
	return &Chain{providers: kept}
}

// Synthesize renders text with the first provider that succeeds.
func (c *Chain) Synthesize(ctx context.Context, text, voice string) (driven.Audio, error) {
	if strings.TrimSpace(text) == "" {
		return driven.Audio{MIME: "audio/mp3"}, nil
	}

	for _, p := range c.providers {
		audio, err := p.Synthesize(ctx, text, voice)
		if err != nil {
			logger.Debug("Speech provider failed: %v", err)
			continue
		}
		if !audio.Empty() {
			return audio, nil
		}
	}

	logger.Debug("All speech providers failed, returning empty audio")
	return driven.Audio{MIME: "audio/mp3"}, nil
}
