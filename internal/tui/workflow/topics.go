package workflow

import (
	"strings"

	"github.com/alkime/podcurate/internal/tui/style"
	"github.com/alkime/podcurate/internal/wizard"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// topicsStep lists topic tags followed by focus areas in one cursor list.
type topicsStep struct {
	state  *wizard.State
	keys   listKeyMap
	cursor int
}

func newTopicsStep(state *wizard.State) *topicsStep {
	return &topicsStep{
		state: state,
		keys:  defaultListKeyMap("select"),
	}
}

func (ts *topicsStep) rows() int {
	return len(ts.state.Catalog.Topics) + len(ts.state.Catalog.FocusAreas)
}

func (ts *topicsStep) Init() tea.Cmd { return nil }

func (ts *topicsStep) Update(msg tea.Msg) (step, tea.Cmd) {
	km, ok := msg.(tea.KeyMsg)
	if !ok {
		return ts, nil
	}

	switch {
	case key.Matches(km, ts.keys.Up):
		ts.cursor = moveCursor(ts.cursor, -1, ts.rows())
	case key.Matches(km, ts.keys.Down):
		ts.cursor = moveCursor(ts.cursor, 1, ts.rows())
	case key.Matches(km, ts.keys.Toggle):
		ts.toggle()
	}

	return ts, nil
}

func (ts *topicsStep) toggle() {
	topics := ts.state.Catalog.Topics
	if ts.cursor < len(topics) {
		_, _ = ts.state.ToggleTopic(topics[ts.cursor].ID)
		return
	}

	if i := ts.cursor - len(topics); i < len(ts.state.Catalog.FocusAreas) {
		_, _ = ts.state.ToggleFocusArea(ts.state.Catalog.FocusAreas[i].ID)
	}
}

func (ts *topicsStep) View() string {
	var sb strings.Builder

	sb.WriteString(style.Label.Render("主題標籤"))
	sb.WriteString("\n")
	for i, tag := range ts.state.Catalog.Topics {
		sb.WriteString(cursorMark(i == ts.cursor))
		sb.WriteString(checkMark(ts.state.Topics[tag.ID], tag.Label))
		sb.WriteString("\n")
	}

	sb.WriteString("\n")
	sb.WriteString(style.Label.Render("關注點"))
	sb.WriteString("\n")
	offset := len(ts.state.Catalog.Topics)
	for i, tag := range ts.state.Catalog.FocusAreas {
		sb.WriteString(cursorMark(offset+i == ts.cursor))
		sb.WriteString(checkMark(ts.state.FocusAreas[tag.ID], tag.Label))
		sb.WriteString("\n")
	}

	return strings.TrimRight(sb.String(), "\n")
}

func (ts *topicsStep) Help() []key.Binding {
	return []key.Binding{ts.keys.Up, ts.keys.Down, ts.keys.Toggle}
}
