package speech

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/libris-ai/libris/internal/core/ports/driven"
)

type stubProvider struct {
	audio driven.Audio
	err   error
	calls int
}

func (s *stubProvider) Synthesize(_ context.Context, _, _ string) (driven.Audio, error) {
	s.calls++
	return s.audio, s.err
}

func TestChainFirstProviderWins(t *testing.T) {
	first := &stubProvider{audio: driven.Audio{Bytes: []byte("mp3"), MIME: "audio/mp3"}}
	second := &stubProvider{audio: driven.Audio{Bytes: []byte("wav"), MIME: "audio/wav"}}
	chain := NewChain(first, second)

	got, err := chain.Synthesize(context.Background(), "salut", "alloy")
	require.NoError(t, err)
	assert.Equal(t, []byte("mp3"), got.Bytes)
	assert.Zero(t, second.calls, "fallback must not run when the first provider succeeds")
}

func TestChainFallsBackOnError(t *testing.T) {
	first := &stubProvider{err: errors.New("api down")}
	second := &stubProvider{audio: driven.Audio{Bytes: []byte("wav"), MIME: "audio/wav"}}
	chain := NewChain(first, second)

	got, err := chain.Synthesize(context.Background(), "salut", "")
	require.NoError(t, err)
	assert.Equal(t, "audio/wav", got.MIME)
	assert.Equal(t, 1, first.calls)
	assert.Equal(t, 1, second.calls)
}

func TestChainTotalFailureIsEmptyNotError(t *testing.T) {
	chain := NewChain(
		&stubProvider{err: errors.New("api down")},
		&stubProvider{err: errors.New("also down")},
	)

	got, err := chain.Synthesize(context.Background(), "salut", "")
	require.NoError(t, err)
	assert.True(t, got.Empty())
	assert.Equal(t, "audio/mp3", got.MIME)
}

func TestChainBlankTextShortCircuits(t *testing.T) {
	provider := &stubProvider{audio: driven.Audio{Bytes: []byte("mp3")}}
	chain := NewChain(provider)

	got, err := chain.Synthesize(context.Background(), "   ", "")
	require.NoError(t, err)
	assert.True(t, got.Empty())
	assert.Zero(t, provider.calls)
}

func TestChainSkipsNilProviders(t *testing.T) {
	chain := NewChain(nil, &stubProvider{audio: driven.Audio{Bytes: []byte("mp3"), MIME: "audio/mp3"}})

	got, err := chain.Synthesize(context.Background(), "salut", "")
	require.NoError(t, err)
	assert.False(t, got.Empty())
}
