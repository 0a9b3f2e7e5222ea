package workflow

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/charmbracelet/x/exp/teatest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReviewPhase_HappyPath(t *testing.T) {
	scriptPath := filepath.Join(t.TempDir(), "script.md")
	//nolint:gosec // test file
	require.NoError(t, os.WriteFile(scriptPath, []byte(testScript().Markdown()), 0o644))

	launcher := &mockEditorLauncher{}
	tm := teatest.NewTestModel(t, NewReviewPhase(launcher, scriptPath), teatest.WithInitialTermSize(80, 24))
	checker := defaultChecker()

	checker.checkString(t, tm, "Opening editor")

	// the editor opens after a short delay
	require.Eventually(t, func() bool {
		return launcher.launches.Load() == 1
	}, time.Second, 50*time.Millisecond, "editor should be launched")

	assert.Equal(t, scriptPath, launcher.filePath.Load())
}

func TestReviewPhase_RejectsUnparsableScript(t *testing.T) {
	scriptPath := filepath.Join(t.TempDir(), "script.md")
	//nolint:gosec // test file
	require.NoError(t, os.WriteFile(scriptPath, []byte("# only a title\n"), 0o644))

	launcher := &mockEditorLauncher{}
	phase := NewReviewPhase(launcher, scriptPath)

	m, cmd := phase.Update(startEditorMsg{})
	require.NotNil(t, cmd)

	m, cmd = m.Update(cmd())
	assert.False(t, isNextPhase(cmd))
	assert.Contains(t, m.View(), "script is not narratable")

	// fix the file and reopen
	//nolint:gosec // test file
	require.NoError(t, os.WriteFile(scriptPath, []byte(testScript().Markdown()), 0o644))

	m, cmd = m.Update(keyPress("e"))
	require.NotNil(t, cmd)
	assert.Equal(t, int32(2), launcher.launches.Load())

	_, cmd = m.Update(cmd())
	assert.True(t, isNextPhase(cmd))
}
