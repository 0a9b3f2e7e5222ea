// Package tui assembles the workflow phases into the curate program.
package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/alkime/podcurate/internal/tui/components/phases"
	"github.com/alkime/podcurate/internal/tui/style"
	"github.com/alkime/podcurate/internal/tui/workflow"
	"github.com/alkime/podcurate/internal/wheel"
	"github.com/alkime/podcurate/internal/wizard"
	"github.com/alkime/podcurate/internal/workdir"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

const (
	ScriptFile  = "script.md"
	EpisodeFile = "episode.mp3"
)

// Config carries the collaborators of one run. A nil Auth skips sign-in and
// a nil Editor skips the review phase.
type Config struct {
	Cancel      context.CancelFunc
	WorkingName string
	Dir         workdir.Dir
	Flow        *wizard.Flow
	Wheel       wheel.Config
	Handoff     wizard.Handoff

	Auth     workflow.Authenticator
	Writer   workflow.Writer
	Narrator workflow.Narrator
	Editor   workflow.EditorLauncher
}

type KeyMap struct {
	ForceQuit key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{ForceQuit: workflow.DefaultKeyMap().ForceQuit}
}

type model struct {
	config Config
	keys   KeyMap
	phases phases.Model
}

// New creates the program model. ctx is handed to the phases that call out
// to remote services.
func New(ctx context.Context, config Config) tea.Model {
	scriptPath := config.Dir.FilePath(config.WorkingName, ScriptFile)
	episodePath := config.Dir.FilePath(config.WorkingName, EpisodeFile)

	var list []phases.Phase
	if config.Auth != nil {
		list = append(list, phases.NewPhase("Sign in", workflow.NewLoginPhase(ctx, config.Auth)))
	}

	list = append(list,
		phases.NewPhase("Curate", workflow.NewWizardPhase(ctx, config.Flow, config.Wheel, config.Handoff)),
		phases.NewPhase("Script", workflow.NewScriptPhase(ctx, config.Writer, config.Flow, scriptPath)),
	)

	if config.Editor != nil {
		list = append(list, phases.NewPhase("Review", workflow.NewReviewPhase(config.Editor, scriptPath)))
	}

	list = append(list,
		phases.NewPhase("Narration", workflow.NewNarrationPhase(ctx, config.Narrator, config.Flow, scriptPath, episodePath)),
		phases.NewPhase("Done", workflow.NewDonePhase(scriptPath, episodePath)),
	)

	return &model{
		config: config,
		keys:   DefaultKeyMap(),
		phases: phases.New(list),
	}
}

func (m *model) Init() tea.Cmd {
	return m.phases.Init()
}

func (m *model) Update(teaMsg tea.Msg) (tea.Model, tea.Cmd) {
	if km, ok := teaMsg.(tea.KeyMsg); ok && key.Matches(km, m.keys.ForceQuit) {
		if m.config.Cancel != nil {
			m.config.Cancel()
		}

		return m, tea.Quit
	}

	updatedPhases, cmd := m.phases.Update(teaMsg)
	m.phases = updatedPhases.(phases.Model) //nolint:forcetypeassert // phases.Model always returns phases.Model

	return m, cmd
}

func (m *model) View() string {
	var sb strings.Builder

	pos, total := m.phases.Position()
	sb.WriteString(style.Subtitle.Render(fmt.Sprintf("Phase: %s (%d/%d)", m.phases.CurrentPhaseName(), pos, total)))
	sb.WriteString("\n\n")
	sb.WriteString(m.phases.View())

	return sb.String()
}
