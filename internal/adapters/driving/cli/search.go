package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/libris-ai/libris/internal/core/domain"
)

var (
	searchMode    string
	searchK       int
	searchShowAll bool
	searchNoAuto  bool
	searchJSON    bool
)

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search the indexed catalogue",
	Long: `Searches the semantic index and prints the ranked candidates.

Modes:
  free_context    semantic search over the whole request (default)
  theme_hint      semantic search biased towards a theme
  title_exact     exact title lookup (ignores case and diacritics)
  title_contains  substring title lookup`,
	Args: cobra.ExactArgs(1),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().StringVarP(&searchMode, "mode", "m", "free_context", "search mode")
	searchCmd.Flags().IntVarP(&searchK, "k", "k", domain.DefaultK, "maximum number of results")
	searchCmd.Flags().BoolVar(&searchShowAll, "show-all", false, "rank the entire catalogue")
	searchCmd.Flags().BoolVar(&searchNoAuto, "no-auto-title", false, "disable the fuzzy title shortcut")
	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "output results as JSON")
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	mode, ok := domain.ParseSearchMode(searchMode)
	if !ok {
		return fmt.Errorf("unknown search mode: %s", searchMode)
	}

	a, err := buildApp()
	if err != nil {
		return err
	}
	defer a.Close()

	ctx := cmd.Context()
	if err := ensureIndexed(ctx, a); err != nil {
		return err
	}

	candidates, err := a.recommender.Retrieve(ctx, domain.Query{
		Text:      args[0],
		Mode:      mode,
		K:         searchK,
		ShowAll:   searchShowAll,
		AutoTitle: !searchNoAuto && mode.IsSemantic(),
	})
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	if searchJSON {
		data, err := json.MarshalIndent(candidates, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal results: %w", err)
		}
		cmd.Println(string(data))
		return nil
	}

	printCandidates(cmd, candidates)
	return nil
}

// printCandidates renders the ranked list for terminal output.
func printCandidates(cmd *cobra.Command, candidates []domain.Candidate) {
	if len(candidates) == 0 {
		cmd.Println("Nicio potrivire.")
		return
	}

	cmd.Println("Rezultate:")
	cmd.Println()
	for i, c := range candidates {
		header := c.Title
		if c.Author != "" {
			header += " - " + c.Author
		}
		if c.Year != 0 {
			header += fmt.Sprintf(" (%d)", c.Year)
		}
		cmd.Printf("  [%d] %s  %.2f\n", i+1, header, c.Score)
		if c.Themes != "" {
			cmd.Printf("      Teme: %s\n", c.Themes)
		}
		if c.Summary != "" {
			cmd.Printf("      %s\n", firstLine(c.Summary))
		}
		cmd.Println()
	}
}

// firstLine keeps terminal output to one synopsis line per candidate.
func firstLine(s string) string {
	line, _, _ := strings.Cut(s, "\n")
	return strings.TrimSpace(line)
}
