package workflow

import (
	"slices"
	"strings"

	"github.com/alkime/podcurate/internal/tui/style"
	"github.com/alkime/podcurate/internal/wizard"
	"github.com/alkime/podcurate/pkg/collections"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

type presenterRow int

const (
	rowMode presenterRow = iota
	rowName1
	rowStyle1
	rowName2
	rowStyle2
)

type presentersKeyMap struct {
	Up    key.Binding
	Down  key.Binding
	Left  key.Binding
	Right key.Binding
}

// presentersStep picks the dialog mode and a character and style for each
// narrator. The second narrator is hidden in single-presenter mode.
type presentersStep struct {
	state  *wizard.State
	keys   presentersKeyMap
	cursor presenterRow
}

func newPresentersStep(state *wizard.State) *presentersStep {
	list := defaultListKeyMap("")
	sched := defaultScheduleKeyMap()

	return &presentersStep{
		state: state,
		keys: presentersKeyMap{
			Up:    list.Up,
			Down:  list.Down,
			Left:  sched.Left,
			Right: sched.Right,
		},
	}
}

func (ps *presentersStep) rows() int {
	if ps.state.DialogMode == wizard.DialogSinglePresenter {
		return int(rowStyle1) + 1
	}

	return int(rowStyle2) + 1
}

func (ps *presentersStep) Init() tea.Cmd { return nil }

func (ps *presentersStep) Update(msg tea.Msg) (step, tea.Cmd) {
	km, ok := msg.(tea.KeyMsg)
	if !ok {
		return ps, nil
	}

	switch {
	case key.Matches(km, ps.keys.Up):
		ps.cursor = presenterRow(moveCursor(int(ps.cursor), -1, ps.rows()))
	case key.Matches(km, ps.keys.Down):
		ps.cursor = presenterRow(moveCursor(int(ps.cursor), 1, ps.rows()))
	case key.Matches(km, ps.keys.Left):
		ps.adjust(-1)
	case key.Matches(km, ps.keys.Right):
		ps.adjust(1)
	}

	return ps, nil
}

func (ps *presentersStep) adjust(delta int) {
	st := ps.state

	switch ps.cursor {
	case rowMode:
		if st.DialogMode == wizard.DialogConversational {
			_ = st.SetDialogMode(wizard.DialogSinglePresenter)
		} else {
			_ = st.SetDialogMode(wizard.DialogConversational)
		}
	case rowName1:
		p := st.Presenter1
		_ = st.SetPresenter(wizard.SlotFirst, cycle(wizard.Characters, p.Name, delta), p.Style)
	case rowStyle1:
		p := st.Presenter1
		_ = st.SetPresenter(wizard.SlotFirst, p.Name, cycle(wizard.Styles, p.Style, delta))
	case rowName2:
		p := st.Presenter2
		_ = st.SetPresenter(wizard.SlotSecond, cycle(wizard.Characters, p.Name, delta), p.Style)
	case rowStyle2:
		p := st.Presenter2
		_ = st.SetPresenter(wizard.SlotSecond, p.Name, cycle(wizard.Styles, p.Style, delta))
	}
}

// cycle returns the option delta positions from current. An unset current
// starts from the first option.
func cycle(options []string, current string, delta int) string {
	i := slices.Index(options, current)
	if i < 0 {
		return options[0]
	}

	return options[collections.Wrap(i+delta, len(options))]
}

func (ps *presentersStep) View() string {
	st := ps.state
	var sb strings.Builder

	row := func(r presenterRow, label, value string) {
		if value == "" {
			value = style.Muted.Render("未選擇")
		} else {
			value = style.Selected.Render(value)
		}

		sb.WriteString(cursorMark(ps.cursor == r))
		sb.WriteString(style.Label.Render(label))
		sb.WriteString("  ◀ ")
		sb.WriteString(value)
		sb.WriteString(" ▶\n")
	}

	row(rowMode, "模式選擇", st.DialogMode.Label())
	row(rowName1, "讀者1", st.Presenter1.Name)
	row(rowStyle1, "讀者1風格", st.Presenter1.Style)

	if st.DialogMode != wizard.DialogSinglePresenter {
		row(rowName2, "讀者2", st.Presenter2.Name)
		row(rowStyle2, "讀者2風格", st.Presenter2.Style)
	}

	return strings.TrimRight(sb.String(), "\n")
}

func (ps *presentersStep) Help() []key.Binding {
	return []key.Binding{ps.keys.Up, ps.keys.Down, ps.keys.Left, ps.keys.Right}
}
