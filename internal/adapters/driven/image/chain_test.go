package image

import (
	"bytes"
	"context"
	"errors"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/libris-ai/libris/internal/core/ports/driven"
)

type stubProvider struct {
	img   driven.Image
	err   error
	calls int
}

func (s *stubProvider) Generate(_ context.Context, _ driven.ImageRequest) (driven.Image, error) {
	s.calls++
	return s.img, s.err
}

func TestChainFirstProviderWins(t *testing.T) {
	first := &stubProvider{img: driven.Image{Bytes: []byte("png"), MIME: "image/png", Prompt: "p"}}
	chain := NewChain(first)

	got, err := chain.Generate(context.Background(), driven.ImageRequest{Title: "Dune"})
	require.NoError(t, err)
	assert.Equal(t, []byte("png"), got.Bytes)
	assert.Equal(t, "p", got.Prompt)
}

func TestChainFallsBackToPlaceholder(t *testing.T) {
	failing := &stubProvider{err: errors.New("api down"), img: driven.Image{Prompt: "used prompt"}}
	chain := NewChain(failing)

	got, err := chain.Generate(context.Background(), driven.ImageRequest{Title: "Dune", Size: "64x48"})
	require.NoError(t, err)
	require.False(t, got.Empty())
	assert.Equal(t, "image/png", got.MIME)
	// Prompt from the failed provider is preserved for display.
	assert.Equal(t, "used prompt", got.Prompt)

	cfg, err := png.DecodeConfig(bytes.NewReader(got.Bytes))
	require.NoError(t, err)
	assert.Equal(t, 64, cfg.Width)
	assert.Equal(t, 48, cfg.Height)
}

func TestPlaceholderDefaultSize(t *testing.T) {
	p := NewPlaceholder()

	got, err := p.Generate(context.Background(), driven.ImageRequest{Size: "nonsense"})
	require.NoError(t, err)

	cfg, err := png.DecodeConfig(bytes.NewReader(got.Bytes))
	require.NoError(t, err)
	assert.Equal(t, 1024, cfg.Width)
	assert.Equal(t, 1024, cfg.Height)
}

func TestParseSize(t *testing.T) {
	w, h := parseSize("512x256")
	assert.Equal(t, 512, w)
	assert.Equal(t, 256, h)

	for _, bad := range []string{"", "512", "0x100", "-1x5", "axb"} {
		w, h = parseSize(bad)
		assert.Equal(t, 1024, w, "size %q", bad)
		assert.Equal(t, 1024, h, "size %q", bad)
	}
}
