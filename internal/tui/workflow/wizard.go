// Package workflow provides the TUI phases: sign-in, the curation wizard,
// script writing, review, narration and the final screen.
package workflow

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/alkime/podcurate/internal/tui/components/phases"
	"github.com/alkime/podcurate/internal/tui/style"
	"github.com/alkime/podcurate/internal/wheel"
	"github.com/alkime/podcurate/internal/wizard"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

const noLikedWarning = "請至少選擇一則你喜歡的新聞"

// step is one screen of the wizard. Steps edit the shared state directly.
type step interface {
	Init() tea.Cmd
	Update(msg tea.Msg) (step, tea.Cmd)
	View() string
	Help() []key.Binding
}

// busyStep is implemented by steps that must not be left mid-gesture.
type busyStep interface {
	Busy() bool
}

type wizardPhase struct {
	ctx     context.Context //nolint:containedctx // handed to the completion collaborator
	flow    *wizard.Flow
	handoff wizard.Handoff
	keys    KeyMap
	steps   map[wizard.Step]step
	warning string
}

// NewWizardPhase creates the five-step curation wizard over flow. Completing
// the summary step hands the summary to handoff and advances the phase.
func NewWizardPhase(ctx context.Context, flow *wizard.Flow, wheelCfg wheel.Config, handoff wizard.Handoff) tea.Model {
	st := flow.State()

	return &wizardPhase{
		ctx:     ctx,
		flow:    flow,
		handoff: handoff,
		keys:    DefaultKeyMap(),
		steps: map[wizard.Step]step{
			wizard.StepTopics:     newTopicsStep(st),
			wizard.StepNews:       newNewsStep(st),
			wizard.StepSchedule:   newScheduleStep(st, wheelCfg),
			wizard.StepPresenters: newPresentersStep(st),
			wizard.StepSummary:    newSummaryStep(st),
		},
	}
}

func (wp *wizardPhase) current() step {
	return wp.steps[wp.flow.Step()]
}

func (wp *wizardPhase) Init() tea.Cmd {
	if s := wp.current(); s != nil {
		return s.Init()
	}

	return nil
}

func (wp *wizardPhase) Update(teaMsg tea.Msg) (tea.Model, tea.Cmd) {
	if km, ok := teaMsg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(km, wp.keys.Next):
			return wp, wp.next()
		case key.Matches(km, wp.keys.Back):
			if wp.busy() {
				return wp, nil
			}
			wp.warning = ""
			wp.flow.Back()
			return wp, wp.Init()
		}
	}

	s := wp.current()
	if s == nil {
		return wp, nil
	}

	updated, cmd := s.Update(teaMsg)
	wp.steps[wp.flow.Step()] = updated

	// step-level feedback replaces a stale navigation warning
	if _, ok := teaMsg.(tea.KeyMsg); ok {
		wp.warning = ""
	}

	return wp, cmd
}

func (wp *wizardPhase) busy() bool {
	b, ok := wp.current().(busyStep)
	return ok && b.Busy()
}

func (wp *wizardPhase) next() tea.Cmd {
	if wp.busy() {
		return nil
	}

	if wp.flow.Step() == wizard.StepSummary {
		if err := wp.flow.Complete(wp.ctx, wp.handoff); err != nil {
			slog.Error("failed to complete flow", "error", err)
			wp.warning = "無法完成設定：" + err.Error()

			return nil
		}

		return phases.NextPhaseCmd
	}

	err := wp.flow.Next()
	switch {
	case errors.Is(err, wizard.ErrNoLikedItems):
		wp.warning = noLikedWarning
		return nil
	case err != nil:
		wp.warning = err.Error()
		return nil
	}

	wp.warning = ""

	return wp.Init()
}

func (wp *wizardPhase) View() string {
	var sb strings.Builder

	stepNum := int(wp.flow.Step())
	sb.WriteString(style.Title.Render(fmt.Sprintf("%d/%d %s", stepNum, int(wizard.StepSummary), stepTitle(wp.flow.Step()))))
	sb.WriteString("\n\n")

	if s := wp.current(); s != nil {
		sb.WriteString(s.View())
		sb.WriteString("\n\n")
	}

	if wp.warning != "" {
		sb.WriteString(style.Warning.Render("提示：" + wp.warning))
		sb.WriteString("\n\n")
	}

	if s := wp.current(); s != nil && len(s.Help()) > 0 {
		sb.WriteString(renderHelpLine(s.Help()...))
	}

	next := wp.keys.Next
	if wp.flow.Step() == wizard.StepSummary {
		next.SetHelp("enter", "完成")
	}

	if wp.flow.Step() > wizard.StepTopics {
		sb.WriteString(renderHelpLine(wp.keys.Back, next))
	} else {
		sb.WriteString(renderHelpLine(next))
	}
	sb.WriteString(renderGlobalKeyHelp())

	return sb.String()
}

func stepTitle(s wizard.Step) string {
	switch s {
	case wizard.StepTopics:
		return "主題標籤"
	case wizard.StepNews:
		return "請標註你喜歡的新聞"
	case wizard.StepSchedule:
		return "推送時間"
	case wizard.StepPresenters:
		return "角色"
	case wizard.StepSummary:
		return "最後一步"
	default:
		return s.String()
	}
}
