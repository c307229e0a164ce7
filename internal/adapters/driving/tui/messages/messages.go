// Package messages defines Bubbletea message types for the TUI.
// Messages represent events that flow through the Elm architecture.
package messages

import (
	"github.com/libris-ai/libris/internal/core/domain"
)

// AskCompleted carries the composed answer back to the model.
type AskCompleted struct {
	Answer *domain.Answer
	Err    error
}

// SpeechCompleted signals the answer was synthesised and saved.
type SpeechCompleted struct {
	Path string
	Err  error
}

// SuggestionsRefreshed carries a new set of suggestion chips.
type SuggestionsRefreshed struct {
	Suggestions []string
}

// ErrorOccurred signals that an error happened.
type ErrorOccurred struct {
	Err error
}
