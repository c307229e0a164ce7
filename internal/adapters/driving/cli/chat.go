package cli

import (
	"github.com/spf13/cobra"

	"github.com/libris-ai/libris/internal/adapters/driving/tui"
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Interactive chat in the terminal",
	Long: `Opens the interactive librarian. Type a request, pick a search mode
with tab and read the ranked recommendations; the recommended book is
always the first card.`,
	RunE: runChat,
}

func init() {
	rootCmd.AddCommand(chatCmd)
}

func runChat(cmd *cobra.Command, _ []string) error {
	a, err := buildApp()
	if err != nil {
		return err
	}
	defer a.Close()

	ctx := cmd.Context()
	if err := ensureIndexed(ctx, a); err != nil {
		return err
	}

	app, err := tui.NewApp(&tui.Ports{
		Recommender: a.recommender,
		Speech:      a.speech,
	})
	if err != nil {
		return err
	}
	return app.WithContext(ctx).Run()
}
