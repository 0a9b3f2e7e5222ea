// Package waveform renders a live level meter of the narration audio.
package waveform

import (
	"math"
	"strings"
	"time"

	"github.com/alkime/podcurate/internal/tui/style"
	"github.com/alkime/podcurate/pkg/uictl"
	tea "github.com/charmbracelet/bubbletea"
)

// eighths are the partial block glyphs, empty to full.
var eighths = []rune(" ▁▂▃▄▅▆▇█")

const (
	frameRate = 50 * time.Millisecond
	fullScale = 32767.0
)

// TickMsg triggers a redraw.
type TickMsg struct{}

// Model draws one column per bucket of recent samples, oldest on the left.
// While no audio is flowing it shows a slow ripple instead.
type Model struct {
	levels uictl.Levels[int16]
	width  int
	height int
	frame  int
}

// New creates a meter width columns wide and height rows tall.
func New(levels uictl.Levels[int16], width, height int) Model {
	return Model{
		levels: levels,
		width:  max(width, 1),
		height: max(height, 1),
	}
}

func (m Model) Init() tea.Cmd {
	return tick()
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if _, ok := msg.(TickMsg); ok {
		m.frame++
		return m, tick()
	}

	return m, nil
}

func (m Model) View() string {
	var samples []int16
	if m.levels != nil {
		samples = m.levels.Read()
	}

	if len(samples) == 0 {
		return style.Muted.Render(m.render(m.ripple()))
	}

	return style.Progress.Render(m.render(m.columns(samples)))
}

func tick() tea.Cmd {
	return tea.Tick(frameRate, func(time.Time) tea.Msg { return TickMsg{} })
}

// columns converts samples to per-column heights in eighths of a row.
func (m Model) columns(samples []int16) []int {
	cols := make([]int, m.width)
	bucket := max(1, len(samples)/m.width)
	top := m.height * 8

	for c := range cols {
		start := c * bucket
		if start >= len(samples) {
			break
		}

		peak := rms(samples[start:min(start+bucket, len(samples))])
		// square root lifts quiet speech into view
		cols[c] = min(int(math.Sqrt(peak/fullScale)*float64(top)), top)
	}

	return cols
}

// ripple is a single travelling bump on the bottom row.
func (m Model) ripple() []int {
	cols := make([]int, m.width)
	for c := range cols {
		cols[c] = 1
	}

	pos := m.frame % m.width
	cols[pos] = 4

	return cols
}

func (m Model) render(cols []int) string {
	rows := make([]string, m.height)

	for r := range rows {
		floor := (m.height - 1 - r) * 8

		var sb strings.Builder
		for _, h := range cols {
			sb.WriteRune(eighths[min(max(h-floor, 0), 8)])
		}
		rows[r] = sb.String()
	}

	return strings.Join(rows, "\n")
}

func rms(samples []int16) float64 {
	var sum float64
	for _, s := range samples {
		v := float64(s)
		sum += v * v
	}

	return math.Sqrt(sum / float64(len(samples)))
}
