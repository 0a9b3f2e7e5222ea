package workflow

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/alkime/podcurate/internal/content"
	"github.com/alkime/podcurate/internal/tui/components/phases"
	"github.com/alkime/podcurate/internal/tui/style"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/editor"
)

// DefaultEditorLauncher opens files with $EDITOR, or the platform default.
type DefaultEditorLauncher struct{}

// Launch suspends the TUI while the editor runs.
func (DefaultEditorLauncher) Launch(filePath string) tea.Cmd {
	cmd, err := editor.Command("curate", filePath)
	if err != nil {
		return func() tea.Msg { return editorCompleteMsg{err: err} }
	}

	return tea.ExecProcess(cmd, func(err error) tea.Msg {
		return editorCompleteMsg{err: err}
	})
}

type startEditorMsg struct{}

type editorCompleteMsg struct {
	err error
}

type reviewKeyMap struct {
	Reopen key.Binding
}

// reviewPhase opens the script in an editor and checks it still parses
// before narration.
type reviewPhase struct {
	scriptPath string
	launcher   EditorLauncher
	keys       reviewKeyMap
	err        error
}

func NewReviewPhase(launcher EditorLauncher, scriptPath string) tea.Model {
	return &reviewPhase{
		scriptPath: scriptPath,
		launcher:   launcher,
		keys: reviewKeyMap{
			Reopen: key.NewBinding(
				key.WithKeys("e"),
				key.WithHelp("e", "edit again"),
			),
		},
	}
}

func (rp *reviewPhase) Init() tea.Cmd {
	rp.err = nil
	// give the renderer a frame before ExecProcess suspends the program
	return tea.Tick(250*time.Millisecond, func(time.Time) tea.Msg {
		return startEditorMsg{}
	})
}

func (rp *reviewPhase) Update(teaMsg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := teaMsg.(type) {
	case startEditorMsg:
		return rp, rp.launcher.Launch(rp.scriptPath)

	case editorCompleteMsg:
		if msg.err != nil {
			slog.Error("Editor closed with error", "error", msg.err)
		}

		if err := rp.validate(); err != nil {
			rp.err = err
			return rp, nil
		}

		return rp, phases.NextPhaseCmd

	case tea.KeyMsg:
		if rp.err != nil && key.Matches(msg, rp.keys.Reopen) {
			rp.err = nil
			return rp, rp.launcher.Launch(rp.scriptPath)
		}
	}

	return rp, nil
}

func (rp *reviewPhase) validate() error {
	md, err := os.ReadFile(rp.scriptPath)
	if err != nil {
		return fmt.Errorf("failed to read script: %w", err)
	}

	if _, err := content.ParseScript(string(md)); err != nil {
		return fmt.Errorf("script is not narratable: %w", err)
	}

	return nil
}

func (rp *reviewPhase) View() string {
	if rp.err == nil {
		return "Opening editor..."
	}

	var sb strings.Builder
	sb.WriteString(style.Error.Render(rp.err.Error()))
	sb.WriteString("\n\n")
	sb.WriteString(style.Muted.Render("Each segment starts with **Speaker**: text"))
	sb.WriteString("\n\n")
	sb.WriteString(renderKeyHelp(rp.keys.Reopen, "\n"))
	sb.WriteString(renderGlobalKeyHelp())

	return sb.String()
}
