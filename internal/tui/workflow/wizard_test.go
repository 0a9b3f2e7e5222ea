package workflow

import (
	"context"
	"errors"
	"testing"

	"github.com/alkime/podcurate/internal/wheel"
	"github.com/alkime/podcurate/internal/wizard"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type wizardDriver struct {
	t     *testing.T
	model tea.Model
}

func (d *wizardDriver) press(keys ...string) tea.Cmd {
	d.t.Helper()

	var cmd tea.Cmd
	for _, k := range keys {
		d.model, cmd = d.model.Update(keyPress(k))
	}

	return cmd
}

func newWizardDriver(t *testing.T, flow *wizard.Flow, handoff wizard.Handoff) *wizardDriver {
	t.Helper()

	m := NewWizardPhase(context.Background(), flow, wheel.DefaultConfig(), handoff)
	m.Init()

	return &wizardDriver{t: t, model: m}
}

func TestWizardPhase_HappyPath(t *testing.T) {
	flow := newTestFlow()

	var got wizard.Summary
	calls := 0
	d := newWizardDriver(t, flow, func(_ context.Context, s wizard.Summary) error {
		calls++
		got = s
		return nil
	})

	assert.Contains(t, d.model.View(), "1/5 主題標籤")

	d.press("enter")
	require.Equal(t, wizard.StepNews, flow.Step())
	assert.Contains(t, d.model.View(), "00/20")

	t.Run("news step needs a like", func(t *testing.T) {
		d.press("enter")
		assert.Equal(t, wizard.StepNews, flow.Step())
		assert.Contains(t, d.model.View(), "提示："+noLikedWarning)
	})

	d.press("space")
	assert.Equal(t, 1, flow.State().LikedCount())
	view := d.model.View()
	assert.Contains(t, view, "01/20")
	assert.NotContains(t, view, noLikedWarning)

	d.press("enter", "enter", "enter")
	require.Equal(t, wizard.StepSummary, flow.Step())
	view = d.model.View()
	assert.Contains(t, view, "5/5 最後一步")
	assert.Contains(t, view, "已選擇 1 則新聞")
	assert.Contains(t, view, "完成")

	cmd := d.press("enter")
	assert.True(t, isNextPhase(cmd))
	assert.True(t, flow.Done())
	assert.Equal(t, 1, calls)
	assert.Equal(t, 1, got.LikedCount)
	assert.Equal(t, "8:00 PM", got.Time)
}

func TestWizardPhase_Back(t *testing.T) {
	flow := newTestFlow()
	d := newWizardDriver(t, flow, nil)

	d.press("esc")
	assert.Equal(t, wizard.StepTopics, flow.Step())

	d.press("enter")
	require.Equal(t, wizard.StepNews, flow.Step())
	assert.Contains(t, d.model.View(), "回上一步")

	d.press("esc")
	assert.Equal(t, wizard.StepTopics, flow.Step())
	assert.NotContains(t, d.model.View(), "回上一步")
}

func TestWizardPhase_HandoffFailureStaysOnSummary(t *testing.T) {
	flow := newTestFlow()
	d := newWizardDriver(t, flow, func(context.Context, wizard.Summary) error {
		return errors.New("disk full")
	})

	d.press("enter", "space", "enter", "enter", "enter")
	require.Equal(t, wizard.StepSummary, flow.Step())

	cmd := d.press("enter")
	assert.False(t, isNextPhase(cmd))
	assert.False(t, flow.Done())
	assert.Contains(t, d.model.View(), "無法完成設定")
}

func TestTopicsStep_Toggle(t *testing.T) {
	st := wizard.NewState(wizard.Config{}, wizard.DefaultCatalog())
	ts := newTopicsStep(st)
	first := st.Catalog.Topics[0]
	before := st.Topics[first.ID]

	s, _ := ts.Update(keyPress("space"))
	assert.Equal(t, !before, st.Topics[first.ID])

	// the cursor runs from the topics into the focus areas
	for range st.Catalog.Topics {
		s, _ = s.Update(keyPress("down"))
	}
	area := st.Catalog.FocusAreas[0]
	areaBefore := st.FocusAreas[area.ID]
	s.Update(keyPress("space"))
	assert.Equal(t, !areaBefore, st.FocusAreas[area.ID])
}

func TestNewsStep(t *testing.T) {
	t.Run("capacity", func(t *testing.T) {
		st := wizard.NewState(wizard.Config{MaxLiked: 1}, wizard.DefaultCatalog())
		var ns step = newNewsStep(st)

		ns, _ = ns.Update(keyPress("space"))
		ns, _ = ns.Update(keyPress("down"))
		ns, _ = ns.Update(keyPress("space"))

		assert.Equal(t, 1, st.LikedCount())
		assert.Contains(t, ns.View(), "最多只能選擇 1 則新聞")
		assert.Contains(t, ns.View(), "01/01")
	})

	t.Run("delete", func(t *testing.T) {
		st := wizard.NewState(wizard.Config{}, wizard.DefaultCatalog())
		total := len(st.Catalog.News)
		last := st.Catalog.News[total-1]
		var ns step = newNewsStep(st)

		ns, _ = ns.Update(keyPress("up"))
		ns, _ = ns.Update(keyPress("d"))

		assert.Len(t, st.Catalog.News, total-1)
		assert.NotContains(t, ns.View(), last.Title)
	})
}

func TestScheduleStep(t *testing.T) {
	st := wizard.NewState(wizard.Config{}, wizard.DefaultCatalog())
	var ss step = newScheduleStep(st, wheel.DefaultConfig())
	ss.Init()

	press := func(keys ...string) {
		for _, k := range keys {
			ss, _ = ss.Update(keyPress(k))
		}
	}

	press("right")
	assert.Equal(t, wizard.DurationDeep, st.ContentDuration)

	// focus the hour wheel
	press("tab", "tab", "down")
	assert.Equal(t, 9, st.ScheduleTime.Hour)

	press("tab", "up")
	assert.Equal(t, 59, st.ScheduleTime.Minute)

	press("tab", "down")
	assert.Equal(t, wizard.AM, st.ScheduleTime.Meridiem)
	assert.Contains(t, ss.View(), "9:59 AM")

	// frequency, then the weekday row
	press("tab", "tab", "right", "space")
	assert.True(t, st.ScheduleDays[wizard.Tuesday])
	assert.Equal(t, []string{"一", "二"}, st.SelectedDayNames())

	press("shift+tab", "right")
	assert.Equal(t, wizard.FrequencyDaily, st.Frequency)
	assert.Empty(t, st.SelectedDayNames())

	// the weekday row is skipped while daily
	press("tab")
	assert.NotContains(t, ss.View(), "星期")
}

func TestPresentersStep(t *testing.T) {
	st := wizard.NewState(wizard.Config{}, wizard.DefaultCatalog())
	var ps step = newPresentersStep(st)

	assert.Contains(t, ps.View(), "未選擇")

	ps, _ = ps.Update(keyPress("down"))
	ps, _ = ps.Update(keyPress("right"))
	assert.Equal(t, wizard.Characters[0], st.Presenter1.Name)

	ps, _ = ps.Update(keyPress("right"))
	assert.Equal(t, wizard.Characters[1], st.Presenter1.Name)

	ps, _ = ps.Update(keyPress("down"))
	ps, _ = ps.Update(keyPress("left"))
	assert.Equal(t, wizard.Styles[0], st.Presenter1.Style)

	assert.Contains(t, ps.View(), "讀者2")

	// switching to a single presenter hides the second slot
	ps, _ = ps.Update(keyPress("up"))
	ps, _ = ps.Update(keyPress("up"))
	ps, _ = ps.Update(keyPress("right"))
	assert.Equal(t, wizard.DialogSinglePresenter, st.DialogMode)
	assert.NotContains(t, ps.View(), "讀者2")
}
