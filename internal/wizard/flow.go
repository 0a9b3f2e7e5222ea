package wizard

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
)

// Step is a position in the flow. Steps are strictly linear.
type Step int

const (
	StepTopics Step = iota + 1
	StepNews
	StepSchedule
	StepPresenters
	StepSummary
)

var stepNames = map[Step]string{
	StepTopics:     "topics",
	StepNews:       "news",
	StepSchedule:   "schedule",
	StepPresenters: "presenters",
	StepSummary:    "summary",
}

func (s Step) String() string {
	if name, ok := stepNames[s]; ok {
		return name
	}

	return fmt.Sprintf("step(%d)", int(s))
}

var (
	ErrNoLikedItems  = errors.New("like at least one news item to continue")
	ErrLastStep      = errors.New("already at the last step")
	ErrNotAtSummary  = errors.New("flow can only complete from the summary step")
	ErrFlowCompleted = errors.New("flow already completed")
)

// Handoff receives the finished summary, typically to generate an episode.
type Handoff func(ctx context.Context, summary Summary) error

// Flow sequences a State through the five steps.
type Flow struct {
	state *State
	done  bool
}

func NewFlow(state *State) *Flow {
	return &Flow{state: state}
}

func (f *Flow) State() *State {
	return f.state
}

func (f *Flow) Step() Step {
	return Step(f.state.CurrentStep)
}

func (f *Flow) Done() bool {
	return f.done
}

// Next advances one step. Leaving the news step requires at least one liked item.
func (f *Flow) Next() error {
	if f.done {
		return ErrFlowCompleted
	}

	switch step := f.Step(); {
	case step == StepNews && f.state.LikedCount() == 0:
		return ErrNoLikedItems
	case step >= StepSummary:
		return ErrLastStep
	}

	f.state.Advance()
	slog.Debug("flow advanced", "step", f.Step().String())

	return nil
}

// Back retreats one step; a no-op at the first step.
func (f *Flow) Back() {
	if f.done {
		return
	}

	f.state.Retreat()
}

// Complete hands the summary off and ends the flow. A failed handoff leaves
// the flow open so it can be retried.
func (f *Flow) Complete(ctx context.Context, handoff Handoff) error {
	if f.done {
		return ErrFlowCompleted
	}

	if f.Step() != StepSummary {
		return fmt.Errorf("at %s: %w", f.Step(), ErrNotAtSummary)
	}

	if handoff != nil {
		if err := handoff(ctx, f.state.Summary()); err != nil {
			return fmt.Errorf("handoff: %w", err)
		}
	}

	f.done = true
	slog.Info("flow completed", "liked", f.state.LikedCount())

	return nil
}
