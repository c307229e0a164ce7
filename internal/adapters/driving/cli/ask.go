package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/libris-ai/libris/internal/core/domain"
)

var (
	askMode     string
	askK        int
	askSpeak    bool
	askVoice    string
	askAudioOut string
)

var askCmd = &cobra.Command{
	Use:   "ask [question]",
	Short: "Ask for a book recommendation",
	Long: `Runs the full pipeline for one question: content filter, retrieval,
LLM composition and recommendation-aware reranking. The recommended book
is listed first.`,
	Args: cobra.ExactArgs(1),
	RunE: runAsk,
}

func init() {
	askCmd.Flags().StringVarP(&askMode, "mode", "m", "free_context", "search mode")
	askCmd.Flags().IntVarP(&askK, "k", "k", domain.DefaultK, "number of candidates")
	askCmd.Flags().BoolVar(&askSpeak, "speak", false, "synthesise the answer as speech")
	askCmd.Flags().StringVar(&askVoice, "voice", "alloy", "TTS voice")
	askCmd.Flags().StringVar(&askAudioOut, "audio-out", "answer.mp3", "audio output file (with --speak)")
	rootCmd.AddCommand(askCmd)
}

func runAsk(cmd *cobra.Command, args []string) error {
	mode, ok := domain.ParseSearchMode(askMode)
	if !ok {
		return fmt.Errorf("unknown search mode: %s", askMode)
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

	answer, err := a.recommender.Ask(ctx, domain.Query{
		Text:      args[0],
		Mode:      mode,
		K:         askK,
		AutoTitle: mode.IsSemantic(),
	})
	if err != nil {
		return err
	}

	if answer.Blocked {
		cmd.Println(answer.Notice)
		return nil
	}

	cmd.Println(answer.Text)
	if len(answer.Candidates) > 0 {
		cmd.Println()
		printCandidates(cmd, answer.Candidates)
	}

	if askSpeak {
		audio, err := a.speech.Synthesize(ctx, answer.Text, askVoice)
		if err != nil {
			return fmt.Errorf("speech synthesis: %w", err)
		}
		if audio.Empty() {
			cmd.Println("Audio indisponibil.")
			return nil
		}
		if err := os.WriteFile(askAudioOut, audio.Bytes, 0644); err != nil {
			return fmt.Errorf("writing audio: %w", err)
		}
		cmd.Printf("Audio salvat în %s (%s)\n", askAudioOut, audio.MIME)
	}

	return nil
}
