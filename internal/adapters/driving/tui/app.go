// Package tui implements the interactive chat interface.
// It follows the Elm architecture via Bubbletea: the App model reacts to
// messages and renders the transcript, never calling services directly
// from the view.
package tui

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/libris-ai/libris/internal/adapters/driving/tui/messages"
	"github.com/libris-ai/libris/internal/adapters/driving/tui/styles"
	"github.com/libris-ai/libris/internal/core/domain"
)

// audioOutPath is where read-aloud answers are saved.
const audioOutPath = "answer.mp3"

// modeCycle is the tab-key rotation order for search modes.
var modeCycle = []domain.SearchMode{
	domain.SearchModeFreeContext,
	domain.SearchModeThemeHint,
	domain.SearchModeTitleExact,
	domain.SearchModeTitleContains,
}

// App is the chat TUI application. It implements tea.Model.
type App struct {
	ports  *Ports
	ctx    context.Context
	styles *styles.Styles

	input   textinput.Model
	spinner spinner.Model

	mode        domain.SearchMode
	suggestions []string

	// answer holds the last completed exchange; each query replaces it.
	answer   *domain.Answer
	asking   bool
	speaking bool
	status   string
	err      error

	width  int
	height int
	ready  bool
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// NewApp creates the chat application with the given ports.
func NewApp(ports *Ports) (*App, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}

	s := styles.DefaultStyles()

	input := textinput.New()
	input.Placeholder = "Ex: Hobbitul 1937 / Vreau o carte de aventură"
	input.Prompt = "> "
	input.Focus()

	sp := spinner.New(
		spinner.WithSpinner(spinner.Dot),
		spinner.WithStyle(s.Subtitle),
	)

	return &App{
		ports:       ports,
		ctx:         context.Background(),
		styles:      s,
		input:       input,
		spinner:     sp,
		mode:        domain.SearchModeFreeContext,
		suggestions: sampleSuggestions(suggestionCount),
	}, nil
}

// WithContext sets the context for the app.
func (a *App) WithContext(ctx context.Context) *App {
	a.ctx = ctx
	return a
}

// Init implements tea.Model.
func (a *App) Init() tea.Cmd {
	return tea.Batch(
		tea.EnterAltScreen,
		tea.SetWindowTitle("libris - Your Personal Librarian"),
		textinput.Blink,
	)
}

// Update implements tea.Model.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.input.Width = max(20, msg.Width-8)
		a.ready = true
		return a, nil

	case tea.KeyMsg:
		return a.handleKeyMsg(msg)

	case spinner.TickMsg:
		if !a.asking && !a.speaking {
			return a, nil
		}
		var cmd tea.Cmd
		a.spinner, cmd = a.spinner.Update(msg)
		return a, cmd

	case messages.AskCompleted:
		a.asking = false
		if msg.Err != nil {
			a.err = msg.Err
			return a, nil
		}
		a.err = nil
		a.answer = msg.Answer
		a.status = ""
		return a, nil

	case messages.SpeechCompleted:
		a.speaking = false
		if msg.Err != nil {
			a.err = msg.Err
			return a, nil
		}
		if msg.Path == "" {
			a.status = "Audio indisponibil."
			return a, nil
		}
		a.status = "Audio salvat în " + msg.Path
		return a, nil

	case messages.SuggestionsRefreshed:
		a.suggestions = msg.Suggestions
		return a, nil

	case messages.ErrorOccurred:
		a.err = msg.Err
		return a, nil
	}

	var cmd tea.Cmd
	a.input, cmd = a.input.Update(msg)
	return a, cmd
}

// handleKeyMsg processes keyboard input.
func (a *App) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "esc":
		return a, tea.Quit

	case "enter":
		query := strings.TrimSpace(a.input.Value())
		if query == "" || a.asking {
			return a, nil
		}
		a.asking = true
		a.err = nil
		a.status = ""
		return a, tea.Batch(a.spinner.Tick, a.performAsk(query))

	case "tab":
		a.mode = nextMode(a.mode)
		return a, nil

	case "ctrl+t":
		a.styles = a.styles.Toggle()
		a.spinner.Style = a.styles.Subtitle
		return a, nil

	case "ctrl+r":
		return a, func() tea.Msg {
			return messages.SuggestionsRefreshed{Suggestions: sampleSuggestions(suggestionCount)}
		}

	case "ctrl+s":
		return a.speakAnswer()

	case "alt+1", "alt+2", "alt+3":
		idx := int(msg.String()[4] - '1')
		if idx >= 0 && idx < len(a.suggestions) {
			a.input.SetValue(a.suggestions[idx])
			a.input.CursorEnd()
		}
		return a, nil
	}

	var cmd tea.Cmd
	a.input, cmd = a.input.Update(msg)
	return a, cmd
}

// performAsk runs the full pipeline off the update loop.
func (a *App) performAsk(query string) tea.Cmd {
	return func() tea.Msg {
		answer, err := a.ports.Recommender.Ask(a.ctx, domain.Query{
			Text:      query,
			Mode:      a.mode,
			K:         domain.DefaultK,
			AutoTitle: a.mode.IsSemantic(),
		})
		return messages.AskCompleted{Answer: answer, Err: err}
	}
}

// speakAnswer synthesises the last answer and writes it next to the binary.
func (a *App) speakAnswer() (tea.Model, tea.Cmd) {
	if a.answer == nil || a.answer.Blocked || a.speaking {
		return a, nil
	}
	if a.ports.Speech == nil {
		a.status = "Audio indisponibil."
		return a, nil
	}

	text := a.answer.Text
	a.speaking = true
	a.status = ""
	return a, tea.Batch(a.spinner.Tick, func() tea.Msg {
		audio, err := a.ports.Speech.Synthesize(a.ctx, text, "")
		if err != nil {
			return messages.SpeechCompleted{Err: err}
		}
		if audio.Empty() {
			return messages.SpeechCompleted{}
		}
		if err := os.WriteFile(audioOutPath, audio.Bytes, 0644); err != nil {
			return messages.SpeechCompleted{Err: err}
		}
		return messages.SpeechCompleted{Path: audioOutPath}
	})
}

// nextMode returns the mode after m in the tab rotation.
func nextMode(m domain.SearchMode) domain.SearchMode {
	for i, mode := range modeCycle {
		if mode == m {
			return modeCycle[(i+1)%len(modeCycle)]
		}
	}
	return modeCycle[0]
}

// View implements tea.Model.
func (a *App) View() string {
	if !a.ready {
		return "Initialising..."
	}

	sections := make([]string, 0, 12)

	title := a.styles.Title.Render("libris") + "  " +
		a.styles.Muted.Render("bibliotecarul tău personal")
	sections = append(sections, title)
	sections = append(sections, a.styles.Subtitle.Render("Mod: "+a.mode.Description()))
	sections = append(sections, "")

	sections = append(sections, a.viewSuggestions(), "")
	sections = append(sections, a.styles.InputField.Render(a.input.View()), "")

	if a.asking {
		sections = append(sections, a.spinner.View()+a.styles.Muted.Render(" Caut în bibliotecă..."))
	} else if a.speaking {
		sections = append(sections, a.spinner.View()+a.styles.Muted.Render(" Generez audio..."))
	}

	if a.err != nil {
		sections = append(sections, a.styles.Error.Render("Eroare: "+a.err.Error()), "")
	}

	if a.answer != nil && !a.asking {
		sections = append(sections, a.viewAnswer())
	}

	if a.status != "" {
		sections = append(sections, a.styles.Muted.Render(a.status))
	}

	sections = append(sections, "", a.viewHelp())
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// viewSuggestions renders the example-prompt chips.
func (a *App) viewSuggestions() string {
	chips := make([]string, 0, len(a.suggestions))
	for i, s := range a.suggestions {
		chips = append(chips, a.styles.Chip.Render(fmt.Sprintf("%d. %s", i+1, s)))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, chips...)
}

// viewAnswer renders the composed answer and its candidate cards.
func (a *App) viewAnswer() string {
	ans := a.answer

	sections := make([]string, 0, len(ans.Candidates)+4)
	sections = append(sections, a.styles.UserMsg.Render("Tu: ")+a.styles.Normal.Render(ans.Query))

	if ans.Blocked {
		sections = append(sections, a.styles.Warning.Render(ans.Notice))
		return lipgloss.JoinVertical(lipgloss.Left, sections...)
	}

	sections = append(sections, a.styles.AssistantMsg.Render(ans.Text), "")

	for i, c := range ans.Candidates {
		sections = append(sections, a.viewCandidate(i, c))
	}
	if len(ans.Candidates) == 0 {
		sections = append(sections, a.styles.Muted.Render("Nicio potrivire."))
	}

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// viewCandidate renders one result card. The first card carries the
// recommendation badge because candidates arrive recommendation-first.
func (a *App) viewCandidate(i int, c domain.Candidate) string {
	header := c.Title
	if c.Author != "" {
		header += " - " + c.Author
	}
	if c.Year != 0 {
		header += fmt.Sprintf(" (%d)", c.Year)
	}

	lines := make([]string, 0, 4)
	headerLine := a.styles.Subtitle.Render(header)
	if i == 0 {
		headerLine = a.styles.Badge.Render("Recomandat") + " " + headerLine
	}
	lines = append(lines, headerLine)
	lines = append(lines, a.styles.ScoreBar.Render(scoreBar(c.Score))+
		a.styles.Muted.Render(fmt.Sprintf(" %.2f", c.Score)))
	if c.Themes != "" {
		lines = append(lines, a.styles.Muted.Render("Teme: "+c.Themes))
	}
	if c.Summary != "" {
		lines = append(lines, a.styles.Normal.Render(firstLine(c.Summary)))
	}

	return a.styles.Card.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

// scoreBarWidth is the character width of the relevance bar.
const scoreBarWidth = 20

// scoreBar renders a filled/empty bar proportional to a score in [0,1].
func scoreBar(score float64) string {
	if score < 0 {
		score = 0
	}
	if score > 1 {
		score = 1
	}
	filled := int(score*scoreBarWidth + 0.5)
	return strings.Repeat("█", filled) + strings.Repeat("░", scoreBarWidth-filled)
}

// firstLine keeps each card to one synopsis line.
func firstLine(s string) string {
	line, _, _ := strings.Cut(s, "\n")
	return strings.TrimSpace(line)
}

// viewHelp renders the keybinding hints.
func (a *App) viewHelp() string {
	return a.styles.Help.Render(
		"enter caută · tab mod · alt+1..3 sugestie · ctrl+r alte sugestii · " +
			"ctrl+s audio · ctrl+t temă · esc ieșire")
}

// Run starts the TUI application.
func (a *App) Run() error {
	p := tea.NewProgram(a, tea.WithAltScreen())
	_, err := p.Run()
	return err
}

// Mode returns the active search mode.
func (a *App) Mode() domain.SearchMode {
	return a.mode
}

// Answer returns the last completed answer.
func (a *App) Answer() *domain.Answer {
	return a.answer
}

// Suggestions returns the current suggestion chips.
func (a *App) Suggestions() []string {
	return a.suggestions
}

// Err returns the last error that occurred.
func (a *App) Err() error {
	return a.err
}

// Ready returns whether the app has received its dimensions.
func (a *App) Ready() bool {
	return a.ready
}

// SetDimensions sets the terminal dimensions (for testing).
func (a *App) SetDimensions(width, height int) {
	a.width = width
	a.height = height
	a.ready = true
}
