package workflow

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/alkime/podcurate/internal/content"
	"github.com/alkime/podcurate/internal/tui/components/labeledspinner"
	"github.com/alkime/podcurate/internal/tui/components/phases"
	"github.com/alkime/podcurate/internal/tui/components/waveform"
	"github.com/alkime/podcurate/internal/tui/style"
	"github.com/alkime/podcurate/internal/wizard"
	"github.com/alkime/podcurate/pkg/uictl"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/stopwatch"
	tea "github.com/charmbracelet/bubbletea"
)

type narrationDoneMsg struct {
	err error
}

// narrationPhase voices the reviewed script into an MP3.
type narrationPhase struct {
	ctx         context.Context //nolint:containedctx // cancels synthesis on quit
	narrator    Narrator
	flow        *wizard.Flow
	scriptPath  string
	episodePath string
	spinner     labeledspinner.Model
	stopwatch   stopwatch.Model
	progress    progress.Model
	meter       waveform.Model
	prior       priorOutput
	running     bool
	err         error
}

func NewNarrationPhase(
	ctx context.Context,
	narrator Narrator,
	flow *wizard.Flow,
	scriptPath, episodePath string,
) tea.Model {
	return &narrationPhase{
		ctx:         ctx,
		narrator:    narrator,
		flow:        flow,
		scriptPath:  scriptPath,
		episodePath: episodePath,
		spinner: labeledspinner.New(
			spinner.Points,
			"Narrating episode...",
			"Voicing each segment with the selected presenters",
			"",
		),
		stopwatch: stopwatch.NewWithInterval(time.Second),
		progress: progress.New(
			progress.WithDefaultGradient(),
			progress.WithWidth(40),
			progress.WithoutPercentage(),
		),
		meter: waveform.New(narrator.Levels(), 40, 3),
		prior: checkPriorOutput(episodePath, "Episode"),
	}
}

func (np *narrationPhase) Init() tea.Cmd {
	if np.prior.found {
		return nil
	}

	return np.start()
}

func (np *narrationPhase) start() tea.Cmd {
	np.err = nil
	np.running = true

	return tea.Batch(
		np.spinner.Init(),
		np.stopwatch.Reset(),
		np.stopwatch.Start(),
		np.meter.Init(),
		np.narrateCmd(),
	)
}

func (np *narrationPhase) Update(teaMsg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := teaMsg.(type) {
	case tea.KeyMsg:
		if np.running {
			return np, nil
		}

		switch {
		case np.prior.found && key.Matches(msg, np.prior.keys.Keep):
			return np, phases.NextPhaseCmd
		case key.Matches(msg, np.prior.keys.Redo):
			np.prior.found = false
			return np, np.start()
		}

		return np, nil

	case narrationDoneMsg:
		np.running = false
		if msg.err != nil {
			np.err = msg.err
			return np, np.stopwatch.Stop()
		}

		return np, phases.NextPhaseCmd

	case waveform.TickMsg:
		if !np.running {
			return np, nil
		}

		var cmd tea.Cmd
		np.meter, cmd = np.meter.Update(msg)
		cmds = append(cmds, cmd, np.progress.SetPercent(uictl.Fraction(np.narrator.Progress())))

	case progress.FrameMsg:
		progressModel, cmd := np.progress.Update(msg)
		np.progress = progressModel.(progress.Model) //nolint:forcetypeassert // bubbles library contract
		cmds = append(cmds, cmd)
	}

	var cmd tea.Cmd
	np.spinner, cmd = np.spinner.Update(teaMsg)
	cmds = append(cmds, cmd)

	np.stopwatch, cmd = np.stopwatch.Update(teaMsg)
	cmds = append(cmds, cmd)

	return np, tea.Batch(cmds...)
}

func (np *narrationPhase) View() string {
	if np.prior.found {
		return np.prior.View()
	}

	if np.err != nil {
		var sb strings.Builder
		sb.WriteString(style.Error.Render("Narration failed"))
		sb.WriteString("\n\n")
		sb.WriteString(style.Muted.Render(np.err.Error()))
		sb.WriteString("\n\n")
		sb.WriteString(renderKeyHelp(np.prior.keys.Redo, "\n"))
		sb.WriteString(renderGlobalKeyHelp())

		return sb.String()
	}

	done, total := np.narrator.Progress().Cap()

	ls := np.spinner
	ls.Detail = fmt.Sprintf("%s segment %d/%d  %s",
		style.Label.Render("Progress:"), done, total, style.Muted.Render(np.stopwatch.View()))
	ls.Help = np.progress.View() + "\n\n" + np.meter.View()

	return ls.View()
}

func (np *narrationPhase) narrateCmd() tea.Cmd {
	return func() tea.Msg {
		md, err := os.ReadFile(np.scriptPath)
		if err != nil {
			return narrationDoneMsg{err: fmt.Errorf("failed to read script: %w", err)}
		}

		script, err := content.ParseScript(string(md))
		if err != nil {
			return narrationDoneMsg{err: err}
		}

		cast := content.NewBrief(np.flow.State().Summary(), time.Now()).Cast()

		f, err := os.Create(np.episodePath)
		if err != nil {
			return narrationDoneMsg{err: fmt.Errorf("failed to create episode file: %w", err)}
		}
		defer f.Close()

		if err := np.narrator.Narrate(np.ctx, script, cast, f); err != nil {
			slog.Error("Narration failed", "error", err)
			return narrationDoneMsg{err: err}
		}

		slog.Info("Episode written", "path", np.episodePath, "segments", len(script.Segments))

		return narrationDoneMsg{}
	}
}
