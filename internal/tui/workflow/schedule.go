package workflow

import (
	"fmt"
	"log/slog"
	"slices"
	"strconv"
	"strings"

	"github.com/alkime/podcurate/internal/tui/components/wheelview"
	"github.com/alkime/podcurate/internal/tui/style"
	"github.com/alkime/podcurate/internal/wheel"
	"github.com/alkime/podcurate/internal/wizard"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type scheduleField int

const (
	fieldDuration scheduleField = iota
	fieldScheduleType
	fieldHour
	fieldMinute
	fieldMeridiem
	fieldFrequency
	fieldDays
	fieldCount
)

type scheduleKeyMap struct {
	NextField key.Binding
	PrevField key.Binding
	Left      key.Binding
	Right     key.Binding
	Toggle    key.Binding
}

func defaultScheduleKeyMap() scheduleKeyMap {
	return scheduleKeyMap{
		NextField: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next field"),
		),
		PrevField: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("shift+tab", "previous field"),
		),
		Left: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←/h", "previous"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→/l", "next"),
		),
		Toggle: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("space", "toggle day"),
		),
	}
}

// scheduleStep edits duration, schedule type, time and frequency. The time
// is picked with three wheels whose changes land in the state immediately.
type scheduleStep struct {
	state *wizard.State
	keys  scheduleKeyMap

	hour     *wheel.Wheel[int]
	minute   *wheel.Wheel[int]
	meridiem *wheel.Binary[wizard.Meridiem]
	wheels   map[scheduleField]wheelview.Model

	focus     scheduleField
	dayCursor int
}

func newScheduleStep(state *wizard.State, cfg wheel.Config) *scheduleStep {
	if err := cfg.WithDefaults().Validate(); err != nil {
		slog.Warn("invalid wheel config, using defaults", "error", err)
		cfg = wheel.DefaultConfig()
	}

	t := &state.ScheduleTime
	ss := &scheduleStep{state: state, keys: defaultScheduleKeyMap()}

	// errors are impossible here: the config is valid and the domains are
	// non-empty
	ss.hour, _ = wheel.New(cfg, wheel.Range(1, 12), t.Hour,
		wheel.WithOnChange(func(ch wheel.Change[int]) { t.Hour = ch.To }))
	ss.minute, _ = wheel.New(cfg, wheel.Range(0, 59), t.Minute,
		wheel.WithOnChange(func(ch wheel.Change[int]) { t.Minute = ch.To }))
	ss.meridiem, _ = wheel.NewBinary(cfg, wizard.AM, wizard.PM, t.Meridiem,
		wheel.WithOnChange(func(ch wheel.Change[wizard.Meridiem]) { t.Meridiem = ch.To }))

	ss.wheels = map[scheduleField]wheelview.Model{
		fieldHour: wheelview.New("時", wheel.SurfaceOf(ss.hour), func(n int) string {
			return strconv.Itoa(ss.hour.Neighbor(n))
		}),
		fieldMinute: wheelview.New("分", wheel.SurfaceOf(ss.minute), func(n int) string {
			return fmt.Sprintf("%02d", ss.minute.Neighbor(n))
		}),
		fieldMeridiem: wheelview.New("", wheel.BinarySurfaceOf(ss.meridiem), func(n int) string {
			if n%2 == 0 {
				return string(ss.meridiem.Value())
			}
			return string(ss.meridiem.Other())
		}),
	}

	return ss
}

// Init re-reads the time in case it was changed while the step was hidden.
func (ss *scheduleStep) Init() tea.Cmd {
	t := ss.state.ScheduleTime
	ss.hour.Set(t.Hour)
	ss.minute.Set(t.Minute)
	ss.meridiem.Set(t.Meridiem)

	return nil
}

func (ss *scheduleStep) Busy() bool {
	for _, w := range ss.wheels {
		if w.Busy() {
			return true
		}
	}

	return false
}

func (ss *scheduleStep) Update(msg tea.Msg) (step, tea.Cmd) {
	if km, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(km, ss.keys.NextField):
			return ss, ss.moveFocus(1)
		case key.Matches(km, ss.keys.PrevField):
			return ss, ss.moveFocus(-1)
		case key.Matches(km, ss.keys.Left):
			ss.adjust(-1)
			return ss, nil
		case key.Matches(km, ss.keys.Right):
			ss.adjust(1)
			return ss, nil
		case key.Matches(km, ss.keys.Toggle) && ss.focus == fieldDays:
			_, _ = ss.state.ToggleDay(wizard.Weekdays()[ss.dayCursor])
			return ss, nil
		}
	}

	var cmds []tea.Cmd
	for f, w := range ss.wheels {
		var cmd tea.Cmd
		ss.wheels[f], cmd = w.Update(msg)
		cmds = append(cmds, cmd)
	}

	return ss, tea.Batch(cmds...)
}

func (ss *scheduleStep) visible(f scheduleField) bool {
	return f != fieldDays || ss.state.Frequency == wizard.FrequencyWeekly
}

func (ss *scheduleStep) moveFocus(delta int) tea.Cmd {
	var cmd tea.Cmd
	if w, ok := ss.wheels[ss.focus]; ok {
		ss.wheels[ss.focus], cmd = w.Blur()
	}

	next := ss.focus
	for {
		next = scheduleField(moveCursor(int(next), delta, int(fieldCount)))
		if ss.visible(next) {
			break
		}
	}
	ss.focus = next

	if w, ok := ss.wheels[ss.focus]; ok {
		ss.wheels[ss.focus] = w.Focus()
	}

	return cmd
}

func (ss *scheduleStep) adjust(delta int) {
	st := ss.state

	switch ss.focus {
	case fieldDuration:
		durations := wizard.Durations()
		i := max(slices.Index(durations, st.ContentDuration), 0)
		_ = st.SetDuration(durations[moveCursor(i, delta, len(durations))])
	case fieldScheduleType:
		if st.ScheduleType == wizard.ScheduleRoutine {
			_ = st.SetScheduleType(wizard.ScheduleOneTime)
		} else {
			_ = st.SetScheduleType(wizard.ScheduleRoutine)
		}
	case fieldFrequency:
		if st.Frequency == wizard.FrequencyWeekly {
			_ = st.SetFrequency(wizard.FrequencyDaily)
		} else {
			_ = st.SetFrequency(wizard.FrequencyWeekly)
		}
	case fieldDays:
		ss.dayCursor = moveCursor(ss.dayCursor, delta, len(wizard.Weekdays()))
	case fieldHour, fieldMinute, fieldMeridiem, fieldCount:
	}
}

func (ss *scheduleStep) View() string {
	st := ss.state
	var sb strings.Builder

	row := func(f scheduleField, label, value string) {
		sb.WriteString(cursorMark(ss.focus == f))
		sb.WriteString(style.Label.Render(label))
		sb.WriteString("  ◀ ")
		sb.WriteString(style.Selected.Render(value))
		sb.WriteString(" ▶\n")
	}

	row(fieldDuration, "內容時長", st.ContentDuration.Label())
	row(fieldScheduleType, "排程", st.ScheduleType.Label())

	sb.WriteString("\n")
	colon := lipgloss.NewStyle().PaddingTop(2).Render(":")
	sb.WriteString(lipgloss.JoinHorizontal(lipgloss.Top,
		ss.wheels[fieldHour].View(),
		colon,
		ss.wheels[fieldMinute].View(),
		" ",
		ss.wheels[fieldMeridiem].View(),
	))
	sb.WriteString("\n\n")

	row(fieldFrequency, "頻率", st.Frequency.Label())

	if ss.visible(fieldDays) {
		sb.WriteString(cursorMark(ss.focus == fieldDays))
		sb.WriteString(style.Label.Render("星期"))
		sb.WriteString(" ")
		for i, d := range wizard.Weekdays() {
			label := d.Label()
			if st.ScheduleDays[d] {
				label = style.Selected.Render(label)
			}
			if ss.focus == fieldDays && i == ss.dayCursor {
				label = "[" + label + "]"
			} else {
				label = " " + label + " "
			}
			sb.WriteString(label)
		}
		sb.WriteString("\n")
	}

	sb.WriteString("\n")
	sb.WriteString(style.Muted.Render(st.ScheduleDescription()))

	return sb.String()
}

func (ss *scheduleStep) Help() []key.Binding {
	bindings := []key.Binding{ss.keys.NextField, ss.keys.Left, ss.keys.Right}

	if w, ok := ss.wheels[ss.focus]; ok {
		bindings = append(bindings, w.Keys.Up, w.Keys.Down)
	}

	if ss.focus == fieldDays {
		bindings = append(bindings, ss.keys.Toggle)
	}

	return bindings
}
