// Package labeledspinner shows a spinner next to a title, with a subtitle,
// an optional detail line and a help line below.
package labeledspinner

import (
	"strings"

	"github.com/alkime/podcurate/internal/tui/style"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

// Model is shared by the long-running phases (script writing, narration).
type Model struct {
	Spinner  spinner.Model
	Title    string
	Subtitle string
	// Detail is rendered under the subtitle when set, e.g. a step counter.
	Detail string
	Help   string
}

func New(s spinner.Spinner, title, subtitle, help string) Model {
	sp := spinner.New()
	sp.Spinner = s

	return Model{
		Spinner:  sp,
		Title:    title,
		Subtitle: subtitle,
		Help:     help,
	}
}

func (ls Model) Init() tea.Cmd {
	return ls.Spinner.Tick
}

// Update only reacts to spinner ticks.
func (ls Model) Update(teaMsg tea.Msg) (Model, tea.Cmd) {
	tickMsg, ok := teaMsg.(spinner.TickMsg)
	if !ok {
		return ls, nil
	}

	var cmd tea.Cmd
	ls.Spinner, cmd = ls.Spinner.Update(tickMsg)

	return ls, cmd
}

func (ls Model) View() string {
	var sb strings.Builder

	sb.WriteString(ls.Spinner.View())
	sb.WriteString(" ")
	sb.WriteString(style.Title.Render(ls.Title))
	sb.WriteString("\n\n")

	sb.WriteString(style.Subtitle.Render(ls.Subtitle))
	sb.WriteString("\n\n")

	if ls.Detail != "" {
		sb.WriteString(ls.Detail)
		sb.WriteString("\n\n")
	}

	sb.WriteString(style.Help.Render(ls.Help))

	return sb.String()
}
