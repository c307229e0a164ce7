package openai

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"time"

	"github.com/libris-ai/libris/internal/core/ports/driven"
)

// Ensure ImageService implements the interface.
var _ driven.ImageService = (*ImageService)(nil)

// Default image configuration values.
const (
	DefaultImageModel = "gpt-image-1"
	DefaultImageSize  = "1024x1024"
	DefaultStyle      = "copertă minimală"

	// summaryContextLimit bounds how much synopsis goes into the prompt.
	summaryContextLimit = 450
)

// styleHints maps the art direction presets to prompt fragments.
var styleHints = map[string]string{
	"copertă minimală":    "minimalist book cover, modern graphic shapes, clean typography, high contrast, subtle texture",
	"scenă cinematică":    "cinematic wide scene, dramatic lighting, volumetric fog, detailed environment",
	"ilustrație acquarela": "watercolor illustration, soft edges, paper texture, gentle palette",
	"poster vintage":      "vintage poster, retro print textures, bold typography, grainy look",
}

// ImageConfig holds configuration for the OpenAI image generation service.
type ImageConfig struct {
	// APIKey is the OpenAI API key (required).
	APIKey string

	// BaseURL is the API base URL (default: https://api.openai.com/v1).
	BaseURL string

	// Model is the image model to use (default: gpt-image-1).
	Model string

	// Timeout is the request timeout (default: 120s).
	Timeout time.Duration
}

// ImageService generates book illustrations using the OpenAI images API.
type ImageService struct {
	client *client
	model  string
}

type imageRequest struct {
	Model   string `json:"model"`
	Prompt  string `json:"prompt"`
	Size    string `json:"size"`
	Quality string `json:"quality"`
}

type imageResponse struct {
	Data []struct {
		B64JSON string `json:"b64_json"`
	} `json:"data"`
	Error *apiError `json:"error,omitempty"`
}

// NewImageService creates a new OpenAI image generation service.
func NewImageService(cfg ImageConfig) (*ImageService, error) {
	if cfg.Timeout == 0 {
		cfg.Timeout = 120 * time.Second
	}
	c, err := newClient(cfg.APIKey, cfg.BaseURL, cfg.Timeout)
	if err != nil {
		return nil, err
	}
	if cfg.Model == "" {
		cfg.Model = DefaultImageModel
	}
	return &ImageService{client: c, model: cfg.Model}, nil
}

// Generate renders a representative illustration for the book.
func (s *ImageService) Generate(ctx context.Context, req driven.ImageRequest) (driven.Image, error) {
	prompt := BuildPrompt(req)
	size := req.Size
	if size == "" {
		size = DefaultImageSize
	}

	body, err := s.client.postJSON(ctx, "/images/generations", imageRequest{
		Model:   s.model,
		Prompt:  prompt,
		Size:    size,
		Quality: "high",
	})
	if err != nil {
		return driven.Image{Prompt: prompt}, err
	}

	var imgResp imageResponse
	if err := json.Unmarshal(body, &imgResp); err != nil {
		return driven.Image{Prompt: prompt}, fmt.Errorf("decode response: %w", err)
	}
	if imgResp.Error != nil {
		return driven.Image{Prompt: prompt}, fmt.Errorf("openai error: %s", imgResp.Error.Message)
	}
	if len(imgResp.Data) == 0 {
		return driven.Image{Prompt: prompt}, fmt.Errorf("openai: no image returned")
	}

	raw, err := base64.StdEncoding.DecodeString(imgResp.Data[0].B64JSON)
	if err != nil {
		return driven.Image{Prompt: prompt}, fmt.Errorf("decode image data: %w", err)
	}

	return driven.Image{Bytes: raw, MIME: "image/png", Prompt: prompt}, nil
}

// BuildPrompt composes the generation prompt. It stays brief and steers the
// model toward original, suggestive art without text or logos.
func BuildPrompt(req driven.ImageRequest) string {
	styleHint, ok := styleHints[req.Style]
	if !ok {
		styleHint = styleHints[DefaultStyle]
	}
	summary := req.Summary
	if runes := []rune(summary); len(runes) > summaryContextLimit {
		summary = string(runes[:summaryContextLimit])
	}
	return fmt.Sprintf(`Create an original, copyright-safe illustration inspired by the book below.
Focus on atmosphere and themes, avoid text or logos, no copyrighted covers.
Book: %q by %s. Themes: %s.
Short context: %s
Art direction: %s. Highly detailed, professional quality, coherent composition.
`, req.Title, req.Author, req.Themes, summary, styleHint)
}

// Styles lists the supported art direction presets.
func Styles() []string {
	return []string{"copertă minimală", "scenă cinematică", "ilustrație acquarela", "poster vintage"}
}
