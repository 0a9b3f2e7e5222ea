package workflow

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/alkime/podcurate/internal/wizard"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/exp/teatest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTestScript(t *testing.T, dir string) string {
	t.Helper()

	scriptPath := filepath.Join(dir, "script.md")
	//nolint:gosec // test file
	require.NoError(t, os.WriteFile(scriptPath, []byte(testScript().Markdown()), 0o644))

	return scriptPath
}

func TestNarrationPhase_HappyPath(t *testing.T) {
	dir := t.TempDir()
	scriptPath := writeTestScript(t, dir)
	episodePath := filepath.Join(dir, "episode.mp3")

	flow := newTestFlow()
	st := flow.State()
	require.NoError(t, st.SetPresenter(wizard.SlotFirst, "SHIRO", "輕鬆"))
	require.NoError(t, st.SetPresenter(wizard.SlotSecond, "小美", "專業"))

	narrator := &mockNarrator{audio: []byte("ID3 fake mp3")}
	phase := NewNarrationPhase(context.Background(), narrator, flow, scriptPath, episodePath)
	tm := teatest.NewTestModel(t, phase, teatest.WithInitialTermSize(80, 24))
	checker := defaultChecker()

	checker.checkString(t, tm, "segment 1/2")

	require.Eventually(t, func() bool {
		data, err := os.ReadFile(episodePath)
		return err == nil && string(data) == "ID3 fake mp3"
	}, checker.timeout, checker.intervl, "episode should be written")

	assert.Equal(t, int32(2), narrator.segments.Load())
	assert.Equal(t, int32(2), narrator.cast.Load())
}

func TestNarrationPhase_Failure(t *testing.T) {
	dir := t.TempDir()
	scriptPath := writeTestScript(t, dir)
	episodePath := filepath.Join(dir, "episode.mp3")

	narrator := &mockNarrator{err: errors.New("tts unavailable")}
	phase := NewNarrationPhase(context.Background(), narrator, newTestFlow(), scriptPath, episodePath)
	np := phase.(*narrationPhase)
	np.running = true

	m, cmd := phase.Update(np.narrateCmd()())
	assert.False(t, isNextPhase(cmd))
	assert.Contains(t, m.View(), "tts unavailable")
	assert.Contains(t, m.View(), "[r] redo")
}

func TestNarrationPhase_ExistingOutput(t *testing.T) {
	dir := t.TempDir()
	scriptPath := writeTestScript(t, dir)
	episodePath := filepath.Join(dir, "episode.mp3")
	//nolint:gosec // test file
	require.NoError(t, os.WriteFile(episodePath, []byte("old"), 0o644))

	narrator := &mockNarrator{}
	phase := NewNarrationPhase(context.Background(), narrator, newTestFlow(), scriptPath, episodePath)

	assert.Nil(t, phase.Init())
	assert.Contains(t, phase.View(), "Episode already exists")

	_, cmd := phase.Update(keyPress("y"))
	assert.True(t, isNextPhase(cmd))
	assert.Zero(t, narrator.segments.Load())
}

func TestDonePhase(t *testing.T) {
	phase := NewDonePhase("/tmp/x/script.md", "/tmp/x/episode.mp3")

	view := phase.View()
	assert.Contains(t, view, "Episode ready")
	assert.Contains(t, view, "/tmp/x/episode.mp3")

	_, cmd := phase.Update(keyPress("q"))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}
