// Package phases sequences full-screen TUI models.
package phases

import (
	tea "github.com/charmbracelet/bubbletea"
)

// NextPhaseMsg signals the phases container to advance to the next phase.
type NextPhaseMsg struct{}

// PrevPhaseMsg signals the phases container to go back to the previous phase.
type PrevPhaseMsg struct{}

// NextPhaseCmd is a tea.Cmd producing NextPhaseMsg.
func NextPhaseCmd() tea.Msg { return NextPhaseMsg{} }

// PrevPhaseCmd is a tea.Cmd producing PrevPhaseMsg.
func PrevPhaseCmd() tea.Msg { return PrevPhaseMsg{} }

// Phase is a named model shown while it is current.
type Phase struct {
	Name string
	mdl  tea.Model
}

func NewPhase(name string, mdl tea.Model) Phase {
	return Phase{
		Name: name,
		mdl:  mdl,
	}
}

func (p Phase) Init() tea.Cmd {
	return p.mdl.Init()
}

func (p Phase) Update(msg tea.Msg) (Phase, tea.Cmd) {
	updatedMdl, cmd := p.mdl.Update(msg)
	p.mdl = updatedMdl
	return p, cmd
}

func (p Phase) View() string {
	return p.mdl.View()
}

// Model owns the phases and forwards every message to the current one.
// Entering a phase, forwards or backwards, runs its Init again.
type Model struct {
	phases []Phase
	curr   int
}

func New(phases []Phase) Model {
	return Model{phases: phases}
}

func (m Model) currentPhase() Phase {
	return m.phases[m.curr]
}

func (m Model) Init() tea.Cmd {
	if len(m.phases) == 0 {
		return nil
	}

	return m.currentPhase().Init()
}

func (m Model) Update(teaMsg tea.Msg) (tea.Model, tea.Cmd) {
	if len(m.phases) == 0 {
		return m, nil
	}

	switch teaMsg.(type) {
	case NextPhaseMsg:
		if m.curr >= len(m.phases)-1 {
			return m, nil
		}
		m.curr++
		return m, m.currentPhase().Init()

	case PrevPhaseMsg:
		if m.curr <= 0 {
			return m, nil
		}
		m.curr--
		return m, m.currentPhase().Init()
	}

	ph, cmd := m.currentPhase().Update(teaMsg)
	m.phases[m.curr] = ph

	return m, cmd
}

func (m Model) View() string {
	if len(m.phases) == 0 {
		return ""
	}

	return m.currentPhase().View()
}

// CurrentPhaseName returns the name of the current phase.
func (m Model) CurrentPhaseName() string {
	if len(m.phases) == 0 {
		return ""
	}

	return m.currentPhase().Name
}

// Position returns the 1-based index of the current phase and the count.
func (m Model) Position() (int, int) {
	return m.curr + 1, len(m.phases)
}
