package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/libris-ai/libris/internal/adapters/driven/ai/openai"
	"github.com/libris-ai/libris/internal/core/domain"
	"github.com/libris-ai/libris/internal/core/ports/driven"
)

var (
	imageStyle string
	imageSize  string
	imageOut   string
)

var imageCmd = &cobra.Command{
	Use:   "image [title]",
	Short: "Generate an illustration for a catalogued book",
	Long: `Looks up a book by title and generates a representative, copyright-safe
illustration. Falls back to a locally drawn placeholder when no image
provider is available.

Styles: ` + fmt.Sprintf("%v", openai.Styles()),
	Args: cobra.ExactArgs(1),
	RunE: runImage,
}

func init() {
	imageCmd.Flags().StringVar(&imageStyle, "style", openai.DefaultStyle, "art direction preset")
	imageCmd.Flags().StringVar(&imageSize, "size", openai.DefaultImageSize, "image size, e.g. 1024x1024")
	imageCmd.Flags().StringVar(&imageOut, "out", "cover.png", "output file")
	rootCmd.AddCommand(imageCmd)
}

func runImage(cmd *cobra.Command, args []string) error {
	a, err := buildApp()
	if err != nil {
		return err
	}
	defer a.Close()

	ctx := cmd.Context()
	if err := ensureIndexed(ctx, a); err != nil {
		return err
	}

	// Resolve the book through the title matcher so partial titles work.
	candidates, err := a.recommender.Retrieve(ctx, domain.Query{
		Text: args[0],
		Mode: domain.SearchModeTitleContains,
	})
	if err != nil {
		return err
	}
	if len(candidates) == 0 {
		return fmt.Errorf("%w: no book titled %q", domain.ErrNotFound, args[0])
	}
	book := candidates[0]

	img, err := a.image.Generate(ctx, driven.ImageRequest{
		Title:   book.Title,
		Author:  book.Author,
		Themes:  book.Themes,
		Summary: book.Summary,
		Style:   imageStyle,
		Size:    imageSize,
	})
	if err != nil {
		return fmt.Errorf("image generation: %w", err)
	}
	if img.Empty() {
		cmd.Println("Imagine indisponibilă.")
		return nil
	}

	if err := os.WriteFile(imageOut, img.Bytes, 0644); err != nil {
		return fmt.Errorf("writing image: %w", err)
	}
	cmd.Printf("Imagine pentru %q salvată în %s (%s)\n", book.Title, imageOut, img.MIME)
	return nil
}
