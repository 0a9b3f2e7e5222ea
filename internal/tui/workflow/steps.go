package workflow

import (
	"github.com/alkime/podcurate/internal/tui/style"
	"github.com/alkime/podcurate/pkg/collections"
	"github.com/charmbracelet/bubbles/key"
)

// listKeyMap is shared by the steps that present a vertical list.
type listKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Toggle key.Binding
}

func defaultListKeyMap(toggleHelp string) listKeyMap {
	return listKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Toggle: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("space", toggleHelp),
		),
	}
}

// cursorMark renders the row prefix for the focused row.
func cursorMark(focused bool) string {
	if focused {
		return style.Cursor.Render("▸ ")
	}

	return "  "
}

func checkMark(selected bool, label string) string {
	if selected {
		return style.Selected.Render("● " + label)
	}

	return "○ " + label
}

// moveCursor wraps pos by delta within n rows.
func moveCursor(pos, delta, n int) int {
	return collections.Wrap(pos+delta, n)
}
