package workflow

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/alkime/podcurate/internal/tui/style"
	"github.com/charmbracelet/bubbles/key"
)

type priorOutputKeyMap struct {
	Keep key.Binding
	Redo key.Binding
}

// priorOutput describes an output file left in the working directory by an
// earlier run. Phases that find one offer to keep it instead of paying for
// another API call.
type priorOutput struct {
	found   bool
	what    string
	path    string
	size    int64
	modTime time.Time
	keys    priorOutputKeyMap
}

// checkPriorOutput looks for a non-empty file at path.
func checkPriorOutput(path, what string) priorOutput {
	p := priorOutput{
		what: what,
		path: path,
		keys: priorOutputKeyMap{
			Keep: key.NewBinding(
				key.WithKeys("enter", "y"),
				key.WithHelp("enter/y", "use existing"),
			),
			Redo: key.NewBinding(
				key.WithKeys("r"),
				key.WithHelp("r", "redo"),
			),
		},
	}

	if info, err := os.Stat(path); err == nil && info.Size() > 0 {
		p.found = true
		p.size = info.Size()
		p.modTime = info.ModTime()
	}

	return p
}

func (p priorOutput) View() string {
	var sb strings.Builder

	sb.WriteString(style.Success.Render("✓ " + p.what + " already exists"))
	sb.WriteString("\n\n")
	sb.WriteString(style.Label.Render("File: "))
	sb.WriteString(style.Muted.Render(p.path))
	sb.WriteString("\n")
	sb.WriteString(style.Muted.Render(fmt.Sprintf("      %s, written %s",
		humanSize(p.size), p.modTime.Format(time.DateTime))))
	sb.WriteString("\n\n")
	sb.WriteString(renderHelpLine(p.keys.Keep, p.keys.Redo))
	sb.WriteString(renderGlobalKeyHelp())

	return sb.String()
}

func humanSize(n int64) string {
	switch {
	case n >= 1<<20:
		return fmt.Sprintf("%.1f MB", float64(n)/(1<<20))
	case n >= 1<<10:
		return fmt.Sprintf("%.1f KB", float64(n)/(1<<10))
	default:
		return fmt.Sprintf("%d B", n)
	}
}
