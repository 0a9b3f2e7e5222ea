package workflow

import (
	"errors"
	"fmt"
	"strings"

	"github.com/alkime/podcurate/internal/tui/style"
	"github.com/alkime/podcurate/internal/wizard"
	"github.com/alkime/podcurate/pkg/uictl"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

type newsKeyMap struct {
	listKeyMap
	Delete key.Binding
}

type newsStep struct {
	state  *wizard.State
	keys   newsKeyMap
	cursor int
	status string
}

func newNewsStep(state *wizard.State) *newsStep {
	return &newsStep{
		state: state,
		keys: newsKeyMap{
			listKeyMap: defaultListKeyMap("like"),
			Delete: key.NewBinding(
				key.WithKeys("d", "delete"),
				key.WithHelp("d", "delete"),
			),
		},
	}
}

func (ns *newsStep) Init() tea.Cmd {
	ns.cursor = min(ns.cursor, max(len(ns.state.Catalog.News)-1, 0))
	return nil
}

func (ns *newsStep) Update(msg tea.Msg) (step, tea.Cmd) {
	km, ok := msg.(tea.KeyMsg)
	if !ok {
		return ns, nil
	}

	items := ns.state.Catalog.News
	ns.status = ""

	switch {
	case key.Matches(km, ns.keys.Up):
		ns.cursor = moveCursor(ns.cursor, -1, len(items))
	case key.Matches(km, ns.keys.Down):
		ns.cursor = moveCursor(ns.cursor, 1, len(items))
	case key.Matches(km, ns.keys.Toggle) && len(items) > 0:
		_, err := ns.state.ToggleLiked(items[ns.cursor].ID)
		if errors.Is(err, wizard.ErrCapacityExceeded) {
			ns.status = fmt.Sprintf("最多只能選擇 %d 則新聞", ns.state.MaxLiked)
		}
	case key.Matches(km, ns.keys.Delete) && len(items) > 0:
		ns.state.DeleteItem(items[ns.cursor].ID)
		ns.cursor = min(ns.cursor, max(len(ns.state.Catalog.News)-1, 0))
	}

	return ns, nil
}

func (ns *newsStep) View() string {
	var sb strings.Builder

	sb.WriteString(style.Subtitle.Render("以下為根據調查所關對的新聞"))
	sb.WriteString("\n\n")

	dial := ns.state.LikedDial()
	sb.WriteString(segmentBar(dial))
	sb.WriteString(" ")
	num, maxValue := dial.Cap()
	sb.WriteString(style.Label.Render(fmt.Sprintf("%02d/%02d", num, maxValue)))
	sb.WriteString("\n\n")

	if len(ns.state.Catalog.News) == 0 {
		sb.WriteString(style.Muted.Render("沒有新聞"))
	}

	for i, item := range ns.state.Catalog.News {
		sb.WriteString(cursorMark(i == ns.cursor))

		heart := "♡ "
		title := item.Title
		if item.Liked {
			heart = style.Error.Render("♥ ")
			title = style.Selected.Render(title)
		}
		sb.WriteString(heart)
		sb.WriteString(title)
		sb.WriteString("\n    ")
		sb.WriteString(style.Muted.Render(fmt.Sprintf("%s · %d 分鐘 · #%s", item.Source, item.Minutes, item.Category)))
		sb.WriteString("\n")
	}

	if ns.status != "" {
		sb.WriteString("\n")
		sb.WriteString(style.Warning.Render(ns.status))
	}

	return strings.TrimRight(sb.String(), "\n")
}

func (ns *newsStep) Help() []key.Binding {
	return []key.Binding{ns.keys.Up, ns.keys.Down, ns.keys.Toggle, ns.keys.Delete}
}

// segmentBar draws one cell per capacity slot, filled for used slots.
func segmentBar(d uictl.CappedDial[int]) string {
	num, maxValue := d.Cap()
	if maxValue <= 0 {
		return ""
	}

	filled := min(num, maxValue)

	return style.Error.Render(strings.Repeat("■", filled)) +
		style.Muted.Render(strings.Repeat("□", maxValue-filled))
}
