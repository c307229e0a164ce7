// Package cli provides the libris command line interface.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/libris-ai/libris/internal/logger"
)

// version is set at build time via ldflags.
var version = "dev"

var (
	flagVerbose   bool
	flagConfigDir string
	flagDataDir   string
)

var rootCmd = &cobra.Command{
	Use:   "libris",
	Short: "Book recommendations over a semantic index",
	Long: `libris is a retrieval-augmented book recommendation assistant.

It keeps a catalogue of books with short Romanian summaries, indexes them in
a vector store and answers natural-language requests with an LLM, grounded
strictly in the indexed catalogue.

Typical flow:
  libris seed     # load the starter catalogue
  libris ingest   # embed and index the catalogue
  libris ask "o carte despre prietenie și magie"
  libris chat     # interactive terminal UI`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(flagVerbose)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&flagConfigDir, "config-dir", "", "config directory (default ~/.libris)")
	rootCmd.PersistentFlags().StringVar(&flagDataDir, "data-dir", "", "data directory (default ~/.libris/data)")
	rootCmd.Version = version
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}
