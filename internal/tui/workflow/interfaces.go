package workflow

import (
	"context"
	"io"

	"github.com/alkime/podcurate/internal/content"
	"github.com/alkime/podcurate/internal/wizard"
	"github.com/alkime/podcurate/pkg/uictl"
	tea "github.com/charmbracelet/bubbletea"
)

// Authenticator signs the user in. Failures are reported as false.
type Authenticator interface {
	SignInWithEmail(ctx context.Context, email, password string) bool
	SignInWithGoogle(ctx context.Context) bool
}

// Writer generates an episode script from a brief.
type Writer interface {
	Write(ctx context.Context, brief content.Brief) (*content.Script, error)
}

// Narrator speaks a script into an MP3 stream and exposes its progress.
type Narrator interface {
	Narrate(ctx context.Context, script content.Script, cast []wizard.Presenter, out io.Writer) error
	Progress() uictl.CappedDial[int]
	Levels() uictl.Levels[int16]
}

// EditorLauncher opens files in an external editor.
type EditorLauncher interface {
	Launch(filePath string) tea.Cmd
}
