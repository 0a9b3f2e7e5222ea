package workflow

import (
	"context"
	"strings"

	"github.com/alkime/podcurate/internal/tui/components/phases"
	"github.com/alkime/podcurate/internal/tui/style"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

type loginKeyMap struct {
	Switch key.Binding
	Submit key.Binding
	Google key.Binding
	Skip   key.Binding
}

func defaultLoginKeyMap() loginKeyMap {
	return loginKeyMap{
		Switch: key.NewBinding(
			key.WithKeys("tab", "shift+tab"),
			key.WithHelp("tab", "switch field"),
		),
		Submit: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "Continue with Email"),
		),
		Google: key.NewBinding(
			key.WithKeys("ctrl+g"),
			key.WithHelp("ctrl+g", "Continue with Google"),
		),
		Skip: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "skip"),
		),
	}
}

type loginResultMsg struct {
	ok     bool
	google bool
}

type loginPhase struct {
	ctx      context.Context //nolint:containedctx // used by sign-in commands
	auth     Authenticator
	keys     loginKeyMap
	email    textinput.Model
	password textinput.Model
	pending  bool
	status   string
}

// NewLoginPhase asks for email credentials. A failed sign-in stays on the
// screen with a message; skipping continues without an account.
func NewLoginPhase(ctx context.Context, auth Authenticator) tea.Model {
	email := textinput.New()
	email.Placeholder = "email"
	email.Prompt = "Email    "
	email.Focus()

	password := textinput.New()
	password.Placeholder = "password"
	password.Prompt = "Password "
	password.EchoMode = textinput.EchoPassword
	password.EchoCharacter = '•'

	return &loginPhase{
		ctx:      ctx,
		auth:     auth,
		keys:     defaultLoginKeyMap(),
		email:    email,
		password: password,
	}
}

func (lp *loginPhase) Init() tea.Cmd {
	return textinput.Blink
}

func (lp *loginPhase) Update(teaMsg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := teaMsg.(type) {
	case loginResultMsg:
		lp.pending = false
		if msg.ok {
			return lp, phases.NextPhaseCmd
		}

		if msg.google {
			lp.status = "Google 登入無法在終端機中使用"
		} else {
			lp.status = "登入失敗，請確認帳號密碼"
		}

		return lp, nil

	case tea.KeyMsg:
		if lp.pending {
			return lp, nil
		}

		switch {
		case key.Matches(msg, lp.keys.Skip):
			return lp, phases.NextPhaseCmd
		case key.Matches(msg, lp.keys.Switch):
			return lp, lp.switchField()
		case key.Matches(msg, lp.keys.Google):
			return lp, lp.signIn(true)
		case key.Matches(msg, lp.keys.Submit):
			if lp.email.Focused() {
				return lp, lp.switchField()
			}
			return lp, lp.signIn(false)
		}
	}

	var cmd tea.Cmd
	if lp.email.Focused() {
		lp.email, cmd = lp.email.Update(teaMsg)
	} else {
		lp.password, cmd = lp.password.Update(teaMsg)
	}

	return lp, cmd
}

func (lp *loginPhase) switchField() tea.Cmd {
	if lp.email.Focused() {
		lp.email.Blur()
		return lp.password.Focus()
	}

	lp.password.Blur()

	return lp.email.Focus()
}

func (lp *loginPhase) signIn(google bool) tea.Cmd {
	lp.pending = true
	lp.status = ""

	email := strings.TrimSpace(lp.email.Value())
	password := lp.password.Value()

	return func() tea.Msg {
		if google {
			return loginResultMsg{ok: lp.auth.SignInWithGoogle(lp.ctx), google: true}
		}

		return loginResultMsg{ok: lp.auth.SignInWithEmail(lp.ctx, email, password)}
	}
}

func (lp *loginPhase) View() string {
	var sb strings.Builder

	sb.WriteString(style.Title.Render("NewsTune"))
	sb.WriteString("\n")
	sb.WriteString(style.Subtitle.Render("回應你獨有的好奇。"))
	sb.WriteString("\n\n")

	sb.WriteString(lp.email.View())
	sb.WriteString("\n")
	sb.WriteString(lp.password.View())
	sb.WriteString("\n\n")

	switch {
	case lp.pending:
		sb.WriteString(style.Muted.Render("登入中..."))
		sb.WriteString("\n\n")
	case lp.status != "":
		sb.WriteString(style.Error.Render(lp.status))
		sb.WriteString("\n\n")
	}

	sb.WriteString(renderHelpLine(lp.keys.Submit, lp.keys.Google))
	sb.WriteString(renderHelpLine(lp.keys.Switch, lp.keys.Skip))
	sb.WriteString(renderGlobalKeyHelp())

	return sb.String()
}
