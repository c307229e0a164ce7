package tui

import (
	"errors"

	"github.com/libris-ai/libris/internal/core/ports/driven"
	"github.com/libris-ai/libris/internal/core/ports/driving"
)

// ErrNoRecommender is returned when the app is built without a recommender.
var ErrNoRecommender = errors.New("tui: recommender is required")

// Ports bundles the core services the TUI drives.
type Ports struct {
	// Recommender runs the retrieval and composition pipeline.
	Recommender driving.Recommender

	// Speech synthesises answers. Optional; nil disables read-aloud.
	Speech driven.SpeechService
}

// Validate checks that the required ports are present.
func (p *Ports) Validate() error {
	if p == nil || p.Recommender == nil {
		return ErrNoRecommender
	}
	return nil
}
