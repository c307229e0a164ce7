package openai

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/libris-ai/libris/internal/core/ports/driven"
)

func TestNewEmbeddingServiceDefaults(t *testing.T) {
	svc, err := NewEmbeddingService(EmbeddingConfig{APIKey: "test-key"})
	require.NoError(t, err)
	assert.Equal(t, DefaultEmbeddingModel, svc.ModelName())
	assert.Equal(t, 1536, svc.Dimensions())
}

func TestNewEmbeddingServiceRequiresAPIKey(t *testing.T) {
	_, err := NewEmbeddingService(EmbeddingConfig{})
	assert.Error(t, err)
}

func TestEmbedBatchOrdersByIndex(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/embeddings", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		var req embeddingRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Len(t, req.Input, 2)

		// Respond out of order; the adapter must reorder by index.
		json.NewEncoder(w).Encode(map[string]any{
			"data": []map[string]any{
				{"embedding": []float64{0.4, 0.5}, "index": 1},
				{"embedding": []float64{0.1, 0.2}, "index": 0},
			},
		})
	}))
	defer server.Close()

	svc, err := NewEmbeddingService(EmbeddingConfig{APIKey: "test-key", BaseURL: server.URL, Dimensions: 2})
	require.NoError(t, err)

	got, err := svc.EmbedBatch(context.Background(), []string{"unu", "doi"})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, []float32{0.1, 0.2}, got[0])
	assert.Equal(t, []float32{0.4, 0.5}, got[1])
}

func TestEmbedSurfacesAPIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]any{
			"error": map[string]string{"message": "invalid api key", "type": "auth"},
		})
	}))
	defer server.Close()

	svc, err := NewEmbeddingService(EmbeddingConfig{APIKey: "bad-key", BaseURL: server.URL})
	require.NoError(t, err)

	_, err = svc.Embed(context.Background(), "text")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid api key")
}

func TestChatSendsMessagesAndTemperature(t *testing.T) {
	var captured chatCompletionRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))
		json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{
				{"message": map[string]string{"content": "Îți recomand Dune."}},
			},
		})
	}))
	defer server.Close()

	svc, err := NewLLMService(LLMConfig{APIKey: "test-key", BaseURL: server.URL})
	require.NoError(t, err)

	answer, err := svc.Chat(context.Background(), []driven.ChatMessage{
		{Role: "system", Content: "ești un asistent"},
		{Role: "user", Content: "o carte SF"},
	}, driven.ChatOptions{Temperature: 0.35})
	require.NoError(t, err)
	assert.Equal(t, "Îți recomand Dune.", answer)
	assert.Equal(t, DefaultLLMModel, captured.Model)
	require.Len(t, captured.Messages, 2)
	assert.Equal(t, "system", captured.Messages[0].Role)
	assert.InDelta(t, 0.35, captured.Temperature, 1e-9)
}

func TestChatNoChoices(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"choices": []any{}})
	}))
	defer server.Close()

	svc, err := NewLLMService(LLMConfig{APIKey: "test-key", BaseURL: server.URL})
	require.NoError(t, err)

	_, err = svc.Chat(context.Background(), []driven.ChatMessage{{Role: "user", Content: "hi"}}, driven.ChatOptions{})
	assert.Error(t, err)
}

func TestSynthesizeReturnsRawAudio(t *testing.T) {
	audio := []byte("mp3-bytes")
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/audio/speech", r.URL.Path)

		var req speechRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, DefaultSpeechModel, req.Model)
		assert.Equal(t, "alloy", req.Voice, "empty voice falls back to the default")
		assert.Equal(t, "Îți recomand Dune.", req.Input)

		w.Write(audio)
	}))
	defer server.Close()

	svc, err := NewSpeechService(SpeechConfig{APIKey: "test-key", BaseURL: server.URL})
	require.NoError(t, err)

	got, err := svc.Synthesize(context.Background(), "Îți recomand Dune.", "")
	require.NoError(t, err)
	assert.Equal(t, audio, got.Bytes)
	assert.Equal(t, "audio/mp3", got.MIME)
	assert.False(t, got.Empty())
}

func TestGenerateDecodesBase64Image(t *testing.T) {
	png := []byte{0x89, 'P', 'N', 'G'}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/images/generations", r.URL.Path)

		var req imageRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, DefaultImageModel, req.Model)
		assert.Equal(t, "1024x1024", req.Size)
		assert.Equal(t, "high", req.Quality)
		assert.Contains(t, req.Prompt, `"Dune"`)

		json.NewEncoder(w).Encode(map[string]any{
			"data": []map[string]string{{"b64_json": base64.StdEncoding.EncodeToString(png)}},
		})
	}))
	defer server.Close()

	svc, err := NewImageService(ImageConfig{APIKey: "test-key", BaseURL: server.URL})
	require.NoError(t, err)

	got, err := svc.Generate(context.Background(), driven.ImageRequest{
		Title: "Dune", Author: "Frank Herbert", Themes: "politică", Summary: "Arrakis.",
	})
	require.NoError(t, err)
	assert.Equal(t, png, got.Bytes)
	assert.Equal(t, "image/png", got.MIME)
	assert.NotEmpty(t, got.Prompt)
}

func TestBuildPrompt(t *testing.T) {
	prompt := BuildPrompt(driven.ImageRequest{
		Title:   "Hobbitul",
		Author:  "J.R.R. Tolkien",
		Themes:  "aventură, curaj",
		Summary: strings.Repeat("ă", 600),
		Style:   "scenă cinematică",
	})

	assert.Contains(t, prompt, `"Hobbitul" by J.R.R. Tolkien`)
	assert.Contains(t, prompt, "cinematic wide scene")
	assert.Contains(t, prompt, "avoid text or logos")
	// Summary context is capped at 450 characters.
	assert.LessOrEqual(t, strings.Count(prompt, "ă"), 452)

	fallback := BuildPrompt(driven.ImageRequest{Title: "X", Style: "stil necunoscut"})
	assert.Contains(t, fallback, "minimalist book cover")
}
