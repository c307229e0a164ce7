package driven

import "context"

// ImageRequest describes the book illustration to generate.
type ImageRequest struct {
	// Title, Author, Themes and Summary describe the book.
	Title   string
	Author  string
	Themes  string
	Summary string

	// Style is one of the art direction presets (e.g. "copertă minimală").
	Style string

	// Size is the pixel size, e.g. "1024x1024".
	Size string
}

// Image is a generated illustration. Empty Bytes means the capability is
// unavailable; callers degrade gracefully rather than treating it as an error.
type Image struct {
	// Bytes is the encoded image, empty on failure.
	Bytes []byte

	// MIME is the payload type, e.g. "image/png".
	MIME string

	// Prompt is the prompt actually sent to the generator.
	Prompt string
}

// Empty reports whether no image was produced.
func (i Image) Empty() bool { return len(i.Bytes) == 0 }

// ImageService generates a representative cover/scene for a book.
// Providers return an error on failure; the provider chain converts total
// failure into an empty Image.
type ImageService interface {
	// Generate renders an illustration for the request.
	Generate(ctx context.Context, req ImageRequest) (Image, error)
}
