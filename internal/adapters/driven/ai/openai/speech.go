package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/libris-ai/libris/internal/core/ports/driven"
)

// Ensure SpeechService implements the interface.
var _ driven.SpeechService = (*SpeechService)(nil)

// Default speech configuration values.
const (
	DefaultSpeechModel = "gpt-4o-mini-tts"
	DefaultVoice       = "alloy"
)

// SpeechConfig holds configuration for the OpenAI text-to-speech service.
type SpeechConfig struct {
	// APIKey is the OpenAI API key (required).
	APIKey string

	// BaseURL is the API base URL (default: https://api.openai.com/v1).
	BaseURL string

	// Model is the TTS model to use (default: gpt-4o-mini-tts).
	Model string

	// Timeout is the request timeout (default: 60s).
	Timeout time.Duration
}

// SpeechService synthesises speech using the OpenAI audio API.
type SpeechService struct {
	client *client
	model  string
}

type speechRequest struct {
	Model string `json:"model"`
	Voice string `json:"voice"`
	Input string `json:"input"`
}

// NewSpeechService creates a new OpenAI text-to-speech service.
func NewSpeechService(cfg SpeechConfig) (*SpeechService, error) {
	c, err := newClient(cfg.APIKey, cfg.BaseURL, cfg.Timeout)
	if err != nil {
		return nil, err
	}
	if cfg.Model == "" {
		cfg.Model = DefaultSpeechModel
	}
	return &SpeechService{client: c, model: cfg.Model}, nil
}

// Synthesize renders text as MP3 audio. The response body is the raw audio
// stream, not JSON.
func (s *SpeechService) Synthesize(ctx context.Context, text, voice string) (driven.Audio, error) {
	if voice == "" {
		voice = DefaultVoice
	}

	if err := s.client.limiter.Wait(ctx); err != nil {
		return driven.Audio{}, fmt.Errorf("rate limit wait: %w", err)
	}

	jsonBody, err := json.Marshal(speechRequest{Model: s.model, Voice: voice, Input: text})
	if err != nil {
		return driven.Audio{}, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(
		ctx, http.MethodPost, s.client.baseURL+"/audio/speech", bytes.NewReader(jsonBody))
	if err != nil {
		return driven.Audio{}, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.client.apiKey)

	resp, err := s.client.http.Do(req)
	if err != nil {
		return driven.Audio{}, fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return driven.Audio{}, fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return driven.Audio{}, fmt.Errorf("openai error (status %d): %s", resp.StatusCode, string(body))
	}

	return driven.Audio{Bytes: body, MIME: "audio/mp3"}, nil
}
