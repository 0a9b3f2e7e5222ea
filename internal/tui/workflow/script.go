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
	"github.com/alkime/podcurate/internal/tui/style"
	"github.com/alkime/podcurate/internal/wizard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

type scriptFailedMsg struct {
	err error
}

type scriptPhase struct {
	ctx        context.Context //nolint:containedctx // cancels the API call on quit
	spinner    labeledspinner.Model
	flow       *wizard.Flow
	writer     Writer
	scriptPath string
	prior      priorOutput
	err        error
}

// NewScriptPhase writes the episode script for the completed flow to
// scriptPath. An existing script can be reused instead.
func NewScriptPhase(ctx context.Context, writer Writer, flow *wizard.Flow, scriptPath string) tea.Model {
	return &scriptPhase{
		ctx: ctx,
		spinner: labeledspinner.New(
			spinner.Pulse,
			"Writing episode script...",
			"Claude is turning your selections into a script",
			"This may take a moment",
		),
		flow:       flow,
		writer:     writer,
		scriptPath: scriptPath,
		prior:      checkPriorOutput(scriptPath, "Script"),
	}
}

func (sp *scriptPhase) Init() tea.Cmd {
	if sp.prior.found {
		return nil
	}

	return sp.start()
}

func (sp *scriptPhase) start() tea.Cmd {
	sp.err = nil
	return tea.Batch(sp.spinner.Init(), sp.generateCmd())
}

func (sp *scriptPhase) Update(teaMsg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := teaMsg.(tea.KeyMsg); ok && (sp.prior.found || sp.err != nil) {
		switch {
		case sp.prior.found && key.Matches(keyMsg, sp.prior.keys.Keep):
			return sp, phases.NextPhaseCmd
		case key.Matches(keyMsg, sp.prior.keys.Redo):
			sp.prior.found = false
			return sp, sp.start()
		}

		return sp, nil
	}

	if msg, ok := teaMsg.(scriptFailedMsg); ok {
		sp.err = msg.err
		return sp, nil
	}

	var cmd tea.Cmd
	sp.spinner, cmd = sp.spinner.Update(teaMsg)

	return sp, cmd
}

func (sp *scriptPhase) View() string {
	switch {
	case sp.prior.found:
		return sp.prior.View()
	case sp.err != nil:
		var sb strings.Builder
		sb.WriteString(style.Error.Render("Script generation failed"))
		sb.WriteString("\n\n")
		sb.WriteString(style.Muted.Render(sp.err.Error()))
		sb.WriteString("\n\n")
		sb.WriteString(renderKeyHelp(sp.prior.keys.Redo, "\n"))
		sb.WriteString(renderGlobalKeyHelp())

		return sb.String()
	default:
		return sp.spinner.View()
	}
}

func (sp *scriptPhase) generateCmd() tea.Cmd {
	return func() tea.Msg {
		brief := content.NewBrief(sp.flow.State().Summary(), time.Now())

		script, err := sp.writer.Write(sp.ctx, brief)
		if err != nil {
			slog.Error("Script generation failed", "error", err)
			return scriptFailedMsg{err: err}
		}

		//nolint:gosec // scripts are meant to be read and edited
		if err := os.WriteFile(sp.scriptPath, []byte(script.Markdown()), 0o644); err != nil {
			slog.Error("Failed to write script", "error", err, "path", sp.scriptPath)
			return scriptFailedMsg{err: fmt.Errorf("failed to write script: %w", err)}
		}

		slog.Info("Script written", "path", sp.scriptPath, "title", script.Title, "segments", len(script.Segments))

		return phases.NextPhaseMsg{}
	}
}
