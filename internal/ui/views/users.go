package views

import (
	"context"
	"errors"
	"fmt"
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

// ShowTasks asks the shell to switch back to the task view.
type ShowTasks struct{}

type usersLoadedMsg struct {
	users []models.User
	err   error
}

type userSavedMsg struct {
	err error
}

type userDeletedMsg struct {
	err error
}

var roles = []models.Role{models.RoleAdmin, models.RoleManager, models.RoleUser}

// UserListView is the admin screen for registering, editing and removing
// accounts.
type UserListView struct {
	userSvc *service.UserService
	styles  *styles.Styles
	keys    keys.KeyMap
	log     zerolog.Logger

	width  int
	height int

	users   []models.User
	visible []models.User
	cursor  int
	scrollY int

	searching   bool
	searchInput textinput.Model

	busy    bool
	errText string

	// Create/edit form. On edit, a blank password keeps the stored one.
	editing      bool
	editingNew   bool
	editUserID   int64
	editName     textinput.Model
	editLogin    textinput.Model
	editPassword textinput.Model
	editRoleIdx  int
	editFocusIdx int // 0=name, 1=login, 2=password, 3=role, 4=save

	confirmingDelete bool
	deleteTargetID   int64
	deleteTarget     string
}

func NewUserListView(userSvc *service.UserService, log zerolog.Logger) *UserListView {
	search := textinput.New()
	search.Placeholder = "Search users..."
	search.CharLimit = 100

	name := textinput.New()
	name.Placeholder = "Display name"
	name.CharLimit = 100

	login := textinput.New()
	login.Placeholder = "Login"
	login.CharLimit = 100

	password := textinput.New()
	password.Placeholder = "Password"
	password.CharLimit = 100
	password.EchoMode = textinput.EchoPassword
	password.EchoCharacter = '•'

	return &UserListView{
		userSvc:      userSvc,
		styles:       styles.NewStyles(),
		keys:         keys.DefaultKeyMap(),
		log:          log,
		searchInput:  search,
		editName:     name,
		editLogin:    login,
		editPassword: password,
	}
}

// Init loads the user list.
func (v *UserListView) Init() tea.Cmd {
	v.busy = true
	return v.loadUsers
}

func (v *UserListView) loadUsers() tea.Msg {
	users, err := v.userSvc.All(context.Background())
	return usersLoadedMsg{users: users, err: err}
}

func (v *UserListView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.width = msg.Width
		v.height = msg.Height
		return v, nil

	case usersLoadedMsg:
		v.busy = false
		if msg.err != nil {
			v.log.Error().Err(msg.err).Msg("load users")
			v.errText = "Could not load users."
			return v, nil
		}
		v.users = msg.users
		v.applyFilter()
		return v, nil

	case userSavedMsg:
		v.busy = false
		if msg.err != nil {
			v.log.Error().Err(msg.err).Msg("save user")
			v.errText = saveUserErrText(msg.err)
			return v, nil
		}
		v.closeForm()
		v.busy = true
		return v, v.loadUsers

	case userDeletedMsg:
		v.busy = false
		if msg.err != nil {
			v.log.Error().Err(msg.err).Msg("delete user")
			v.errText = deleteUserErrText(msg.err)
			return v, nil
		}
		v.busy = true
		return v, v.loadUsers

	case tea.KeyMsg:
		if v.confirmingDelete {
			return v.updateConfirmDelete(msg)
		}
		if v.editing {
			return v.updateEditing(msg)
		}
		if v.searching {
			return v.updateSearching(msg)
		}
		return v.updateNormal(msg)
	}

	return v, nil
}

func saveUserErrText(err error) string {
	switch {
	case errors.Is(err, models.ErrDuplicateLogin):
		return "That login is already registered."
	case errors.Is(err, models.ErrInvalidArgument):
		return "Name, login and password are required."
	}
	return "Could not save the user."
}

func deleteUserErrText(err error) string {
	if errors.Is(err, models.ErrUserHasTasks) {
		return "Cannot delete: the user still authors tasks."
	}
	return "Could not delete the user."
}

func (v *UserListView) updateNormal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, v.keys.Quit):
		return v, tea.Quit

	case key.Matches(msg, v.keys.Logout):
		return v, func() tea.Msg { return LoggedOut{} }

	case key.Matches(msg, v.keys.Tasks), key.Matches(msg, v.keys.Back):
		return v, func() tea.Msg { return ShowTasks{} }

	case key.Matches(msg, v.keys.Up):
		if v.cursor > 0 {
			v.cursor--
			v.ensureVisible()
		}
		return v, nil

	case key.Matches(msg, v.keys.Down):
		if v.cursor < len(v.visible)-1 {
			v.cursor++
			v.ensureVisible()
		}
		return v, nil

	case key.Matches(msg, v.keys.Search):
		v.searching = true
		v.searchInput.Focus()
		return v, textinput.Blink

	case key.Matches(msg, v.keys.Reload):
		if v.busy {
			return v, nil
		}
		v.errText = ""
		v.busy = true
		return v, v.loadUsers

	case key.Matches(msg, v.keys.New):
		if !v.busy {
			v.startCreate()
			return v, textinput.Blink
		}
		return v, nil

	case key.Matches(msg, v.keys.Edit), key.Matches(msg, v.keys.Enter):
		if len(v.visible) > 0 && !v.busy {
			v.startEdit(v.visible[v.cursor])
			return v, textinput.Blink
		}
		return v, nil

	case key.Matches(msg, v.keys.Delete):
		if len(v.visible) > 0 && !v.busy {
			v.confirmingDelete = true
			v.deleteTargetID = v.visible[v.cursor].ID
			v.deleteTarget = v.visible[v.cursor].Login
		}
		return v, nil
	}

	return v, nil
}

func (v *UserListView) updateSearching(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, v.keys.Back), key.Matches(msg, v.keys.Enter):
		v.searching = false
		v.searchInput.Blur()
		return v, nil
	}

	var cmd tea.Cmd
	v.searchInput, cmd = v.searchInput.Update(msg)
	v.applyFilter()
	return v, cmd
}

func (v *UserListView) updateConfirmDelete(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		v.confirmingDelete = false
		v.errText = ""
		v.busy = true
		id := v.deleteTargetID
		return v, func() tea.Msg {
			return userDeletedMsg{err: v.userSvc.Delete(context.Background(), id)}
		}
	case "n", "N", "esc":
		v.confirmingDelete = false
		return v, nil
	}
	return v, nil
}

func (v *UserListView) updateEditing(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, v.keys.Back):
		v.closeForm()
		return v, nil

	case msg.String() == "ctrl+s":
		return v, v.saveUser()

	case key.Matches(msg, v.keys.Tab):
		v.editFocusIdx = (v.editFocusIdx + 1) % 5
		v.updateFormFocus()
		return v, nil

	case msg.String() == "shift+tab":
		v.editFocusIdx = (v.editFocusIdx + 4) % 5
		v.updateFormFocus()
		return v, nil

	case key.Matches(msg, v.keys.Enter):
		if v.editFocusIdx == 4 {
			return v, v.saveUser()
		}
		v.editFocusIdx++
		v.updateFormFocus()
		return v, nil

	case msg.String() == "left", msg.String() == "right":
		if v.editFocusIdx == 3 {
			n := len(roles)
			if msg.String() == "right" {
				v.editRoleIdx = (v.editRoleIdx + 1) % n
			} else {
				v.editRoleIdx = (v.editRoleIdx + n - 1) % n
			}
			return v, nil
		}
	}

	var cmd tea.Cmd
	switch v.editFocusIdx {
	case 0:
		v.editName, cmd = v.editName.Update(msg)
	case 1:
		v.editLogin, cmd = v.editLogin.Update(msg)
	case 2:
		v.editPassword, cmd = v.editPassword.Update(msg)
	}
	return v, cmd
}

func (v *UserListView) updateFormFocus() {
	v.editName.Blur()
	v.editLogin.Blur()
	v.editPassword.Blur()

	switch v.editFocusIdx {
	case 0:
		v.editName.Focus()
	case 1:
		v.editLogin.Focus()
	case 2:
		v.editPassword.Focus()
	}
}

func (v *UserListView) startCreate() {
	v.editing = true
	v.editingNew = true
	v.editUserID = 0
	v.editFocusIdx = 0
	v.editRoleIdx = int(models.RoleUser)
	v.editName.Reset()
	v.editLogin.Reset()
	v.editPassword.Reset()
	v.errText = ""
	v.updateFormFocus()
}

func (v *UserListView) startEdit(user models.User) {
	v.editing = true
	v.editingNew = false
	v.editUserID = user.ID
	v.editFocusIdx = 0
	v.editRoleIdx = int(user.Role)
	v.editName.SetValue(user.Name)
	v.editLogin.SetValue(user.Login)
	v.editPassword.Reset()
	v.errText = ""
	v.updateFormFocus()
}

// canSave requires name and login; the password only when registering a
// new account. A blank password on edit means "keep the current one".
func (v *UserListView) canSave() bool {
	if v.busy {
		return false
	}
	if strings.TrimSpace(v.editName.Value()) == "" || strings.TrimSpace(v.editLogin.Value()) == "" {
		return false
	}
	return !v.editingNew || strings.TrimSpace(v.editPassword.Value()) != ""
}

func (v *UserListView) saveUser() tea.Cmd {
	if !v.canSave() {
		return nil
	}

	v.errText = ""
	v.busy = true

	var (
		id       = v.editUserID
		name     = strings.TrimSpace(v.editName.Value())
		login    = strings.TrimSpace(v.editLogin.Value())
		password = v.editPassword.Value()
		role     = roles[v.editRoleIdx]
		creating = v.editingNew
	)

	return func() tea.Msg {
		ctx := context.Background()
		var err error
		if creating {
			_, err = v.userSvc.Create(ctx, name, login, password, role)
		} else {
			err = v.userSvc.Update(ctx, id, name, login, password, role)
		}
		return userSavedMsg{err: err}
	}
}

func (v *UserListView) closeForm() {
	v.editing = false
	v.editingNew = false
	v.editUserID = 0
	v.errText = ""
}

func (v *UserListView) applyFilter() {
	v.visible = filterUsers(v.users, v.searchInput.Value())
	if v.cursor >= len(v.visible) {
		v.cursor = max(0, len(v.visible)-1)
	}
	v.ensureVisible()
}

func (v *UserListView) ensureVisible() {
	visibleItems := v.listHeight()
	if v.cursor < v.scrollY {
		v.scrollY = v.cursor
	} else if v.cursor >= v.scrollY+visibleItems {
		v.scrollY = v.cursor - visibleItems + 1
	}
}

func (v *UserListView) listHeight() int {
	available := v.height - 9
	if available < 1 {
		available = 1
	}
	return available
}

func (v *UserListView) View() string {
	if v.confirmingDelete {
		return v.renderDeleteConfirm()
	}
	if v.editing {
		return v.renderForm()
	}

	var b strings.Builder
	b.WriteString(v.renderHeader())
	b.WriteString("\n\n")
	b.WriteString(v.renderList())
	b.WriteString("\n")
	if v.errText != "" {
		b.WriteString(v.styles.ErrorText.Render(v.errText))
		b.WriteString("\n")
	}
	b.WriteString(v.styles.Help.Render("↑↓ move • n new • e/↵ edit • d delete • / search • t tasks • q quit"))

	return styles.CenterView(b.String(), v.width, v.height)
}

func (v *UserListView) renderHeader() string {
	s := v.styles

	title := s.Title.Render("Users")
	if v.busy {
		title += s.TitleMuted.Render("  loading…")
	}

	searchStyle := s.Input
	if v.searching {
		searchStyle = s.InputFocused
	}
	searchWidth := min(max(styles.ContentWidth(v.width)-8, 10), 30)
	searchBox := searchStyle.Width(searchWidth).Render(v.searchInput.View())

	return lipgloss.JoinVertical(lipgloss.Left, title, searchBox)
}

func (v *UserListView) renderList() string {
	s := v.styles

	if len(v.visible) == 0 {
		if strings.TrimSpace(v.searchInput.Value()) != "" {
			return s.TitleMuted.Render("No users match the search.")
		}
		return s.TitleMuted.Render("No users. Press 'n' to register one.")
	}

	width := max(styles.ContentWidth(v.width)-4, 20)

	var items []string
	endIdx := min(v.scrollY+v.listHeight(), len(v.visible))
	for i := v.scrollY; i < endIdx; i++ {
		u := v.visible[i]
		line := fmt.Sprintf("%s (%s) — %s", u.Name, u.Login, u.Role)

		itemStyle := s.ListItem.Width(width)
		if i == v.cursor {
			itemStyle = s.ListSelected.Width(width)
		}
		items = append(items, itemStyle.Render(line))
	}
	return lipgloss.JoinVertical(lipgloss.Left, items...)
}

func (v *UserListView) renderForm() string {
	s := v.styles
	inputWidth := min(max(styles.ContentWidth(v.width)-6, 20), 40)

	formTitle := "New User"
	passwordLabel := "Password:"
	if !v.editingNew {
		formTitle = "Edit User"
		passwordLabel = "Password (blank keeps current):"
	}

	nameStyle := s.Input
	loginStyle := s.Input
	passStyle := s.Input
	roleStyle := s.Input
	btnStyle := s.Button
	switch v.editFocusIdx {
	case 0:
		nameStyle = s.InputFocused
	case 1:
		loginStyle = s.InputFocused
	case 2:
		passStyle = s.InputFocused
	case 3:
		roleStyle = s.InputFocused
	case 4:
		if v.canSave() {
			btnStyle = s.ButtonFocused
		}
	}

	parts := []string{
		s.Title.Render(formTitle),
		"",
		"Name:",
		nameStyle.Width(inputWidth).Render(v.editName.View()),
		"",
		"Login:",
		loginStyle.Width(inputWidth).Render(v.editLogin.View()),
		"",
		passwordLabel,
		passStyle.Width(inputWidth).Render(v.editPassword.View()),
		"",
		"Role:",
		roleStyle.Render(fmt.Sprintf("◀ %s ▶", roles[v.editRoleIdx])),
		"",
		btnStyle.Render(" Save "),
	}
	if v.errText != "" {
		parts = append(parts, "", s.ErrorText.Render(v.errText))
	}
	parts = append(parts, "", s.TitleMuted.Render("Tab: next • ◀▶: role • Ctrl+S: save • Esc: cancel"))

	return styles.CenterView(lipgloss.JoinVertical(lipgloss.Left, parts...), v.width, v.height)
}

func (v *UserListView) renderDeleteConfirm() string {
	s := v.styles
	content := lipgloss.JoinVertical(lipgloss.Left,
		s.Title.Render("Delete user?"),
		"",
		fmt.Sprintf("Delete '%s'?", v.deleteTarget),
		"",
		s.TitleMuted.Render("y: delete • n/esc: cancel"),
	)
	return styles.CenterView(content, v.width, v.height)
}
