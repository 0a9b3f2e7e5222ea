package workflow

import (
	"strings"

	"github.com/alkime/podcurate/internal/tui/style"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

type donePhase struct {
	quit        key.Binding
	scriptPath  string
	episodePath string
}

// NewDonePhase lists the files produced by the run.
func NewDonePhase(scriptPath, episodePath string) tea.Model {
	return &donePhase{
		quit: key.NewBinding(
			key.WithKeys("q", "enter"),
			key.WithHelp("q/enter", "quit"),
		),
		scriptPath:  scriptPath,
		episodePath: episodePath,
	}
}

func (d *donePhase) Init() tea.Cmd {
	return nil
}

func (d *donePhase) Update(teaMsg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := teaMsg.(tea.KeyMsg); ok && key.Matches(keyMsg, d.quit) {
		return d, tea.Quit
	}

	return d, nil
}

func (d *donePhase) View() string {
	var sb strings.Builder

	sb.WriteString(style.Success.Render("✓ Episode ready"))
	sb.WriteString("\n\n")
	sb.WriteString(style.Label.Render("Script:  "))
	sb.WriteString(style.Muted.Render(d.scriptPath))
	sb.WriteString("\n")
	sb.WriteString(style.Label.Render("Episode: "))
	sb.WriteString(style.Muted.Render(d.episodePath))
	sb.WriteString("\n\n")
	sb.WriteString(renderKeyHelp(d.quit, "\n"))

	return sb.String()
}
