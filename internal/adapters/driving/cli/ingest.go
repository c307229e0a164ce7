package cli

import (
	"github.com/spf13/cobra"
)

var ingestCmd = &cobra.Command{
	Use:   "ingest",
	Short: "Embed and index the book catalogue",
	Long: `Reads every catalogued book, derives its embeddable document, embeds
the documents in one batch and upserts them into the vector store.
Document ids are stable, so re-running overwrites instead of duplicating.`,
	RunE: runIngest,
}

func init() {
	rootCmd.AddCommand(ingestCmd)
}

func runIngest(cmd *cobra.Command, _ []string) error {
	a, err := buildApp()
	if err != nil {
		return err
	}
	defer a.Close()

	ctx := cmd.Context()

	// An empty catalogue is almost always a missed seed step.
	count, err := a.books.Count(ctx)
	if err != nil {
		return err
	}
	if count == 0 {
		if _, err := a.books.Seed(ctx); err != nil {
			return err
		}
	}

	n, err := a.ingestor.Ingest(ctx)
	if err != nil {
		return err
	}

	cmd.Printf("Indexed %d books (%s, %d dimensions)\n", n, a.embedder.ModelName(), a.embedder.Dimensions())
	return nil
}
