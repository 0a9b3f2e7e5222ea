package labeledspinner_test

import (
	"testing"

	"github.com/alkime/podcurate/internal/tui/components/labeledspinner"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
)

//nolint:gochecknoinits // recommend for CI by bubbletea folks
func init() {
	lipgloss.SetColorProfile(termenv.Ascii)
}

func TestLabeledSpinner(t *testing.T) {
	m := labeledspinner.New(spinner.Dot, "Writing script", "Claude is drafting", "ctrl+c to abort")

	v0 := m.View()
	t.Run("view output", func(t *testing.T) {
		assert.Contains(t, v0, "Writing script")
		assert.Contains(t, v0, "Claude is drafting")
		assert.Contains(t, v0, "ctrl+c to abort")
		assert.Contains(t, v0, spinner.Dot.Frames[0])
	})

	t.Run("detail line", func(t *testing.T) {
		d := m
		d.Detail = "segment 2/5"
		assert.Contains(t, d.View(), "segment 2/5")
		assert.NotContains(t, v0, "segment")
	})

	t.Run("ticks advance frames", func(t *testing.T) {
		m, _ = m.Update(spinner.TickMsg{})
		assert.Contains(t, m.View(), spinner.Dot.Frames[1])
		m, _ = m.Update(spinner.TickMsg{})
		assert.Contains(t, m.View(), spinner.Dot.Frames[2])
	})

	t.Run("other messages are ignored", func(t *testing.T) {
		before := m.View()
		next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
		assert.Nil(t, cmd)
		assert.Equal(t, before, next.View())
	})
}
