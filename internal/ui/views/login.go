package views

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"

	"taskdesk/internal/models"
	"taskdesk/internal/service"
	"taskdesk/internal/ui/keys"
	"taskdesk/internal/ui/styles"
)

// LoggedIn signals a successful sign-in to the application shell.
type LoggedIn struct {
	Identity models.Identity
}

type loginResultMsg struct {
	identity *models.Identity
	err      error
}

// LoginView collects credentials and verifies them through the auth
// service. The busy flag blocks a second attempt while one is in flight.
type LoginView struct {
	auth   *service.AuthService
	styles *styles.Styles
	keys   keys.KeyMap
	log    zerolog.Logger

	login    textinput.Model
	password textinput.Model
	focusIdx int // 0=login, 1=password, 2=sign-in button

	busy    bool
	errText string

	width  int
	height int
}

func NewLoginView(auth *service.AuthService, log zerolog.Logger) *LoginView {
	login := textinput.New()
	login.Placeholder = "Login"
	login.CharLimit = 100
	login.Focus()

	password := textinput.New()
	password.Placeholder = "Password"
	password.CharLimit = 100
	password.EchoMode = textinput.EchoPassword
	password.EchoCharacter = '•'

	return &LoginView{
		auth:     auth,
		styles:   styles.NewStyles(),
		keys:     keys.DefaultKeyMap(),
		log:      log,
		login:    login,
		password: password,
	}
}

func (v *LoginView) Init() tea.Cmd {
	return textinput.Blink
}

func (v *LoginView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.width = msg.Width
		v.height = msg.Height
		return v, nil

	case loginResultMsg:
		v.busy = false
		if msg.err != nil {
			v.log.Error().Err(msg.err).Msg("login failed")
			v.errText = "Sign-in failed. Try again."
			return v, nil
		}
		if msg.identity == nil {
			v.errText = "Incorrect login or password."
			return v, nil
		}
		identity := *msg.identity
		return v, func() tea.Msg { return LoggedIn{Identity: identity} }

	case tea.KeyMsg:
		switch {
		case msg.Type == tea.KeyCtrlC:
			return v, tea.Quit

		case key.Matches(msg, v.keys.Back):
			return v, tea.Quit

		case key.Matches(msg, v.keys.Tab), key.Matches(msg, v.keys.Down):
			v.cycleFocus(1)
			return v, textinput.Blink

		case msg.String() == "shift+tab", key.Matches(msg, v.keys.Up):
			v.cycleFocus(-1)
			return v, textinput.Blink

		case key.Matches(msg, v.keys.Enter):
			if v.focusIdx == 0 {
				v.cycleFocus(1)
				return v, textinput.Blink
			}
			return v, v.submit()
		}

		var cmd tea.Cmd
		switch v.focusIdx {
		case 0:
			v.login, cmd = v.login.Update(msg)
		case 1:
			v.password, cmd = v.password.Update(msg)
		}
		return v, cmd
	}

	return v, nil
}

func (v *LoginView) cycleFocus(dir int) {
	v.login.Blur()
	v.password.Blur()

	v.focusIdx = (v.focusIdx + dir + 3) % 3
	switch v.focusIdx {
	case 0:
		v.login.Focus()
	case 1:
		v.password.Focus()
	}
}

func (v *LoginView) submit() tea.Cmd {
	if v.busy {
		return nil
	}

	v.errText = ""
	v.busy = true

	login := strings.TrimSpace(v.login.Value())
	password := v.password.Value()

	return func() tea.Msg {
		identity, err := v.auth.Login(context.Background(), login, password)
		return loginResultMsg{identity: identity, err: err}
	}
}

func (v *LoginView) View() string {
	s := v.styles
	contentWidth := styles.ContentWidth(v.width)
	inputWidth := min(max(contentWidth-10, 20), 40)

	loginStyle := s.Input
	passStyle := s.Input
	btnStyle := s.Button
	switch v.focusIdx {
	case 0:
		loginStyle = s.InputFocused
	case 1:
		passStyle = s.InputFocused
	case 2:
		btnStyle = s.ButtonFocused
	}

	btnLabel := " Sign in "
	if v.busy {
		btnLabel = " Signing in… "
	}

	parts := []string{
		s.Title.Render("Taskdesk"),
		"",
		"Login:",
		loginStyle.Width(inputWidth).Render(v.login.View()),
		"",
		"Password:",
		passStyle.Width(inputWidth).Render(v.password.View()),
		"",
		btnStyle.Render(btnLabel),
	}
	if v.errText != "" {
		parts = append(parts, "", s.ErrorText.Render(v.errText))
	}
	parts = append(parts, "", s.TitleMuted.Render("Tab: next • ↵: sign in • Esc: quit"))

	form := lipgloss.JoinVertical(lipgloss.Left, parts...)
	if v.width > 0 {
		return lipgloss.Place(v.width, v.height, lipgloss.Center, lipgloss.Center, form)
	}
	return form
}
