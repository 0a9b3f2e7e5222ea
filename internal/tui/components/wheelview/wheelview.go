// Package wheelview renders a value wheel as a three-row picker and feeds it
// mouse drags, arrow keys and momentum frames.
package wheelview

import (
	"strings"
	"sync/atomic"
	"time"

	"github.com/alkime/podcurate/internal/tui/style"
	"github.com/alkime/podcurate/internal/wheel"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const (
	frameInterval = 16 * time.Millisecond
	// DefaultRowHeight is the drag distance, in wheel units, of one
	// terminal row.
	DefaultRowHeight = 30
)

var lastID atomic.Int64

// TickMsg drives one momentum frame of the wheel with the matching id.
type TickMsg struct {
	id int
	at time.Time
}

// KeyMap holds the stepping keys of a focused wheel.
type KeyMap struct {
	Up   key.Binding
	Down key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "previous value"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "next value"),
		),
	}
}

// Model is a picker over one wheel. Label(n) must return the text of the
// value n positions away from the current one.
type Model struct {
	Keys      KeyMap
	RowHeight float64

	id      int
	title   string
	surface wheel.Surface
	label   func(n int) string
	width   int

	focused  bool
	dragging bool
	originY  int
}

func New(title string, surface wheel.Surface, label func(n int) string) Model {
	return Model{
		Keys:      DefaultKeyMap(),
		RowHeight: DefaultRowHeight,
		id:        int(lastID.Add(1)),
		title:     title,
		surface:   surface,
		label:     label,
		width:     max(lipgloss.Width(title), lipgloss.Width(label(0))) + 4,
	}
}

func (m Model) Focus() Model {
	m.focused = true
	return m
}

// Blur drops focus and ends any drag in progress.
func (m Model) Blur() (Model, tea.Cmd) {
	m.focused = false
	if !m.dragging {
		return m, nil
	}

	return m.release(time.Now())
}

func (m Model) Focused() bool {
	return m.focused
}

// Busy reports whether a drag or a momentum animation is in progress.
func (m Model) Busy() bool {
	return m.dragging || m.surface.Decelerating()
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case TickMsg:
		if msg.id != m.id {
			return m, nil
		}

		m.surface.Tick(msg.at)
		if m.surface.Decelerating() {
			return m, m.tick()
		}

		return m, nil

	case tea.KeyMsg:
		if !m.focused {
			return m, nil
		}

		switch {
		case key.Matches(msg, m.Keys.Up):
			m.surface.Step(-1)
		case key.Matches(msg, m.Keys.Down):
			m.surface.Step(1)
		}

	case tea.MouseMsg:
		if !m.focused || msg.Button != tea.MouseButtonLeft && msg.Action != tea.MouseActionRelease {
			return m, nil
		}

		return m.mouse(msg)
	}

	return m, nil
}

func (m Model) mouse(msg tea.MouseMsg) (Model, tea.Cmd) {
	now := time.Now()

	switch msg.Action {
	case tea.MouseActionPress:
		m.dragging = true
		m.originY = msg.Y

	case tea.MouseActionMotion:
		if !m.dragging {
			return m, nil
		}
		// dragging upwards brings later values into the middle row
		m.surface.Drag(wheel.Sample{
			Translation: float64(m.originY-msg.Y) * m.RowHeight,
			At:          now,
		})

	case tea.MouseActionRelease:
		if !m.dragging {
			return m, nil
		}

		return m.release(now)
	}

	return m, nil
}

func (m Model) release(at time.Time) (Model, tea.Cmd) {
	m.dragging = false
	m.surface.Release(at)

	if m.surface.Decelerating() {
		return m, m.tick()
	}

	return m, nil
}

func (m Model) tick() tea.Cmd {
	id := m.id
	return tea.Tick(frameInterval, func(t time.Time) tea.Msg {
		return TickMsg{id: id, at: t}
	})
}

func (m Model) View() string {
	center := lipgloss.NewStyle().Width(m.width).Align(lipgloss.Center)

	marker := style.Muted
	if m.focused {
		marker = style.Cursor
	}

	rows := []string{
		center.Render(style.Subtitle.Render(m.title)),
		center.Render(style.Muted.Render(m.label(-1))),
		center.Render(marker.Render("▸ ") + style.Selected.Render(m.label(0)) + marker.Render(" ◂")),
		center.Render(style.Muted.Render(m.label(1))),
	}

	return strings.Join(rows, "\n")
}
