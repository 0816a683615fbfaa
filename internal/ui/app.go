package ui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"taskdesk/internal/models"
	"taskdesk/internal/service"
	"taskdesk/internal/session"
	"taskdesk/internal/ui/views"
)

// Currently active view
type View int

const (
	ViewLogin View = iota
	ViewTasks
	ViewUsers
)

// App is the shell: it owns the session, dispatches a capability set once
// per login, and routes messages to the active view.
type App struct {
	auth    *service.AuthService
	users   *service.UserService
	tasks   *service.TaskService
	session *session.Session
	log     zerolog.Logger

	currentView View
	login       *views.LoginView
	taskList    *views.TaskListView
	userList    *views.UserListView

	width  int
	height int
}

// NewApp creates a new application starting at the login screen.
func NewApp(
	auth *service.AuthService,
	users *service.UserService,
	tasks *service.TaskService,
	sess *session.Session,
	log zerolog.Logger,
) *App {
	return &App{
		auth:    auth,
		users:   users,
		tasks:   tasks,
		session: sess,
		log:     log,
		login:   views.NewLoginView(auth, log),
	}
}

func (a *App) Init() tea.Cmd {
	return a.login.Init()
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		// Every live view tracks the size, whichever one is showing.
		a.login.Update(msg)
		if a.taskList != nil {
			a.taskList.Update(msg)
		}
		if a.userList != nil {
			a.userList.Update(msg)
		}
		return a, nil

	case views.LoggedIn:
		return a, a.openSession(msg.Identity)

	case views.LoggedOut:
		a.session.Clear()
		a.log.Info().Msg("session cleared")
		a.taskList = nil
		a.userList = nil
		a.login = views.NewLoginView(a.auth, a.log)
		a.currentView = ViewLogin
		return a, tea.Batch(a.login.Init(), a.replaySize())

	case views.ShowUsers:
		if a.userList != nil {
			a.currentView = ViewUsers
			return a, tea.Batch(a.userList.Init(), a.replaySize())
		}
		return a, nil

	case views.ShowTasks:
		a.currentView = ViewTasks
		return a, tea.Batch(a.taskList.Init(), a.replaySize())
	}

	var cmd tea.Cmd
	switch a.currentView {
	case ViewLogin:
		_, cmd = a.login.Update(msg)
	case ViewTasks:
		_, cmd = a.taskList.Update(msg)
	case ViewUsers:
		_, cmd = a.userList.Update(msg)
	}

	return a, cmd
}

// openSession captures the identity and builds the role's views. The
// capability set is selected here, once, and never re-examined.
func (a *App) openSession(identity models.Identity) tea.Cmd {
	a.session.Set(identity)
	a.log.Info().
		Int64("user_id", identity.ID).
		Str("login", identity.Login).
		Str("role", identity.Role.String()).
		Msg("session opened")

	caps := models.CapabilitiesFor(identity.Role)
	a.taskList = views.NewTaskListView(a.tasks, a.users, a.session, caps, a.log)
	a.userList = nil
	if caps.ManageUsers {
		a.userList = views.NewUserListView(a.users, a.log)
	}

	a.currentView = ViewTasks
	return tea.Batch(a.taskList.Init(), a.replaySize())
}

// replaySize re-delivers the window size so a freshly built view can lay
// itself out.
func (a *App) replaySize() tea.Cmd {
	width, height := a.width, a.height
	return func() tea.Msg {
		return tea.WindowSizeMsg{Width: width, Height: height}
	}
}

func (a *App) View() string {
	switch a.currentView {
	case ViewTasks:
		if a.taskList != nil {
			return a.taskList.View()
		}
	case ViewUsers:
		if a.userList != nil {
			return a.userList.View()
		}
	}
	return a.login.View()
}
