package workflow

import (
	"fmt"
	"strings"
	"time"

	"github.com/alkime/podcurate/internal/tui/style"
	"github.com/alkime/podcurate/internal/wizard"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// clockMsg carries the generation of the clock that scheduled it, so a
// re-entered summary keeps a single ticking chain.
type clockMsg struct {
	gen int
	at  time.Time
}

// summaryStep shows every selection read-only with a running clock.
type summaryStep struct {
	state *wizard.State
	now   time.Time
	gen   int
}

func newSummaryStep(state *wizard.State) *summaryStep {
	return &summaryStep{state: state, now: time.Now()}
}

func (ss *summaryStep) clockTick() tea.Cmd {
	gen := ss.gen
	return tea.Every(time.Second, func(t time.Time) tea.Msg { return clockMsg{gen: gen, at: t} })
}

func (ss *summaryStep) Init() tea.Cmd {
	ss.now = time.Now()
	ss.gen++

	return ss.clockTick()
}

func (ss *summaryStep) Update(msg tea.Msg) (step, tea.Cmd) {
	if m, ok := msg.(clockMsg); ok && m.gen == ss.gen {
		ss.now = m.at
		return ss, ss.clockTick()
	}

	return ss, nil
}

func (ss *summaryStep) View() string {
	sum := ss.state.Summary()
	var sb strings.Builder

	line := func(label, value string) {
		sb.WriteString(style.Label.Render(label + "："))
		sb.WriteString(value)
		sb.WriteString("\n")
	}

	sb.WriteString(style.Muted.Render(ss.now.Format("2006-01-02 15:04:05")))
	sb.WriteString("\n\n")

	sb.WriteString(style.Label.Render(fmt.Sprintf("已選擇 %d 則新聞", sum.LikedCount)))
	sb.WriteString("\n")
	for _, item := range sum.News {
		sb.WriteString(style.Bullet.Render("  • "))
		sb.WriteString(item.Title)
		sb.WriteString("\n")
	}
	sb.WriteString("\n")

	if len(sum.Topics) > 0 {
		line("主題", strings.Join(sum.Topics, ", "))
	}
	if len(sum.FocusAreas) > 0 {
		line("關注點", strings.Join(sum.FocusAreas, ", "))
	}

	line("內容時長", sum.Duration.Label())
	line("時間", sum.Time)
	if len(sum.Days) > 0 {
		line("星期", strings.Join(sum.Days, ", "))
	}
	line("頻率", sum.Frequency.Label())
	line("排程", sum.Schedule)
	line("模式", sum.DialogMode.Label())

	for i, p := range sum.Presenters {
		value := style.Muted.Render("未選擇")
		if p.Name != "" {
			value = p.Name
			if p.Style != "" {
				value += "（" + p.Style + "）"
			}
		}
		line(fmt.Sprintf("讀者%d", i+1), value)
	}

	return strings.TrimRight(sb.String(), "\n")
}

func (ss *summaryStep) Help() []key.Binding { return nil }
