package workflow

import (
	"strings"

	"github.com/alkime/podcurate/internal/tui/style"
	"github.com/charmbracelet/bubbles/key"
)

// KeyMap holds the bindings shared by every phase.
type KeyMap struct {
	Next      key.Binding
	Back      key.Binding
	ForceQuit key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Next: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "下一步"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "回上一步"),
		),
		ForceQuit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "quit"),
		),
	}
}

func renderKeyHelp(keyBinding key.Binding, suffix ...string) string {
	s := style.Help.Render("[") + style.Key.Render(keyBinding.Help().Key) +
		style.Help.Render("] ") +
		style.Help.Render(keyBinding.Help().Desc)

	return s + strings.Join(suffix, "")
}

// renderHelpLine renders bindings separated by spaces, ending in a newline.
func renderHelpLine(bindings ...key.Binding) string {
	var sb strings.Builder
	for i, b := range bindings {
		if i > 0 {
			sb.WriteString(" ")
		}
		sb.WriteString(renderKeyHelp(b))
	}
	sb.WriteString("\n")

	return sb.String()
}

func renderGlobalKeyHelp() string {
	return renderKeyHelp(DefaultKeyMap().ForceQuit, "\n")
}
