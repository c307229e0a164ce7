package cli

import (
	"github.com/spf13/cobra"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load the starter book catalogue",
	Long: `Loads the embedded starter catalogue of 20 books into the local
SQLite store. Re-running updates existing titles in place.`,
	RunE: runSeed,
}

func init() {
	rootCmd.AddCommand(seedCmd)
}

func runSeed(cmd *cobra.Command, _ []string) error {
	books, err := sqliteStore()
	if err != nil {
		return err
	}
	defer books.Close()

	n, err := books.Seed(cmd.Context())
	if err != nil {
		return err
	}

	cmd.Printf("Seeded %d books into %s\n", n, books.Path())
	return nil
}
