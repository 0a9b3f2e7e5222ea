package workflow

import (
	"bytes"
	"context"
	"io"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alkime/podcurate/internal/content"
	"github.com/alkime/podcurate/internal/tui/components/phases"
	"github.com/alkime/podcurate/internal/wizard"
	"github.com/alkime/podcurate/pkg/uictl"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/exp/teatest"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
)

func init() {
	lipgloss.SetColorProfile(termenv.Ascii)
}

// outputChecker provides helpers for testing teatest output.
type outputChecker struct {
	intervl, timeout time.Duration
}

func defaultChecker() outputChecker {
	return outputChecker{
		intervl: 100 * time.Millisecond,
		timeout: 3 * time.Second,
	}
}

func (o outputChecker) check(t *testing.T, tm *teatest.TestModel, checkFunc func(buf []byte) bool) {
	t.Helper()
	teatest.WaitFor(t, tm.Output(), checkFunc,
		teatest.WithCheckInterval(o.intervl),
		teatest.WithDuration(o.timeout))
}

func (o outputChecker) checkString(t *testing.T, tm *teatest.TestModel, substr string) {
	t.Helper()
	o.check(t, tm, func(buf []byte) bool {
		return bytes.Contains(buf, []byte(substr))
	})
}

func keyPress(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "shift+tab":
		return tea.KeyMsg{Type: tea.KeyShiftTab}
	case "space":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
}

// isNextPhase runs cmd and reports whether it asks for the next phase.
func isNextPhase(cmd tea.Cmd) bool {
	if cmd == nil {
		return false
	}

	_, ok := cmd().(phases.NextPhaseMsg)

	return ok
}

func newTestFlow() *wizard.Flow {
	return wizard.NewFlow(wizard.NewState(wizard.Config{}, wizard.DefaultCatalog()))
}

// mockAuth implements Authenticator for testing.
type mockAuth struct {
	ok          bool
	emailCalls  atomic.Int32
	googleCalls atomic.Int32

	mu       sync.Mutex
	email    string
	password string
}

func (m *mockAuth) SignInWithEmail(_ context.Context, email, password string) bool {
	m.emailCalls.Add(1)
	m.mu.Lock()
	m.email, m.password = email, password
	m.mu.Unlock()

	return m.ok
}

func (m *mockAuth) SignInWithGoogle(context.Context) bool {
	m.googleCalls.Add(1)
	return false
}

// mockWriter implements Writer for testing.
type mockWriter struct {
	script *content.Script
	err    error
	called atomic.Bool
}

func (m *mockWriter) Write(context.Context, content.Brief) (*content.Script, error) {
	m.called.Store(true)
	return m.script, m.err
}

// mockEditorLauncher implements EditorLauncher for testing.
type mockEditorLauncher struct {
	launches atomic.Int32
	filePath atomic.Value
	err      error
}

func (m *mockEditorLauncher) Launch(filePath string) tea.Cmd {
	m.launches.Add(1)
	m.filePath.Store(filePath)

	return func() tea.Msg {
		return editorCompleteMsg{err: m.err}
	}
}

// fixedDial implements uictl.CappedDial[int] for testing.
type fixedDial struct {
	num, max int
}

func (d fixedDial) Read() int        { return d.num }
func (d fixedDial) Cap() (int, int) { return d.num, d.max }

// mockLevels implements uictl.Levels[int16] for testing.
type mockLevels struct {
	samples []int16
}

func (m mockLevels) Read() []int16 { return m.samples }

// mockNarrator implements Narrator for testing.
type mockNarrator struct {
	audio    []byte
	err      error
	segments atomic.Int32
	cast     atomic.Int32
}

func (m *mockNarrator) Narrate(_ context.Context, script content.Script, cast []wizard.Presenter, out io.Writer) error {
	m.segments.Store(int32(len(script.Segments))) //nolint:gosec // test scripts are tiny
	m.cast.Store(int32(len(cast)))                //nolint:gosec // at most two presenters
	if m.err != nil {
		return m.err
	}

	_, err := out.Write(m.audio)

	return err
}

func (m *mockNarrator) Progress() uictl.CappedDial[int] { return fixedDial{num: 1, max: 2} }
func (m *mockNarrator) Levels() uictl.Levels[int16]     { return mockLevels{samples: []int16{0, 16000, -16000}} }

func TestKeyHelp(t *testing.T) {
	km := DefaultKeyMap()
	line := renderHelpLine(km.Back, km.Next)

	assert.Contains(t, line, "[esc] 回上一步")
	assert.Contains(t, line, "[enter] 下一步")
	assert.True(t, strings.HasSuffix(line, "\n"))
	assert.Contains(t, renderGlobalKeyHelp(), "[ctrl+c] quit")
}

func TestHumanSize(t *testing.T) {
	assert.Equal(t, "512 B", humanSize(512))
	assert.Equal(t, "1.5 KB", humanSize(1536))
	assert.Equal(t, "2.0 MB", humanSize(2<<20))
}
