package driven

import "context"

// Audio is a synthesised speech payload. Empty Bytes means the capability is
// unavailable; callers degrade gracefully rather than treating it as an error.
type Audio struct {
	// Bytes is the encoded audio, empty on failure.
	Bytes []byte

	// MIME is the payload type, e.g. "audio/mp3".
	MIME string
}

// Empty reports whether no audio was produced.
func (a Audio) Empty() bool { return len(a.Bytes) == 0 }

// SpeechService synthesises speech from text.
// Providers return an error on failure; the provider chain converts total
// failure into an empty Audio.
type SpeechService interface {
	// Synthesize renders text with the given voice.
	Synthesize(ctx context.Context, text, voice string) (Audio, error)
}
