package views

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"

	"taskdesk/internal/models"
	"taskdesk/internal/service"
	"taskdesk/internal/session"
	"taskdesk/internal/ui/keys"
	"taskdesk/internal/ui/styles"
)

// ShowUsers asks the shell to switch to the user management view.
type ShowUsers struct{}

// LoggedOut asks the shell to clear the session and return to login.
type LoggedOut struct{}

type tasksLoadedMsg struct {
	tasks []models.Task
	err   error
}

type executorsLoadedMsg struct {
	users []models.User
	err   error
}

type taskSavedMsg struct {
	err error
}

type taskDeletedMsg struct {
	err error
}

// TaskListView shows tasks scoped by the session's capabilities and hosts
// the embedded create/edit form. It is a two-state machine: idle, or busy
// while exactly one store round-trip is in flight.
type TaskListView struct {
	taskSvc *service.TaskService
	userSvc *service.UserService
	session *session.Session
	caps    models.Capabilities
	styles  *styles.Styles
	keys    keys.KeyMap
	log     zerolog.Logger

	width  int
	height int

	tasks   []models.Task // loaded set
	visible []models.Task // after in-memory filter
	cursor  int
	scrollY int

	searching   bool
	searchInput textinput.Model

	busy    bool
	errText string

	// Create/edit form. When caps.EditTaskFields is false the form is the
	// status-only card: title, description and executor are read-only.
	editing       bool
	editingNew    bool
	editTaskID    int64
	origStatus    models.Status
	editTitle     textinput.Model
	editDesc      textarea.Model
	editStatusIdx int
	executors     []models.User
	editExecIdx   int
	editFocusIdx  int

	confirmingDelete bool
	deleteTargetID   int64
	deleteTargetName string
}

func NewTaskListView(
	taskSvc *service.TaskService,
	userSvc *service.UserService,
	sess *session.Session,
	caps models.Capabilities,
	log zerolog.Logger,
) *TaskListView {
	search := textinput.New()
	search.Placeholder = "Search tasks..."
	search.CharLimit = 100

	editTitle := textinput.New()
	editTitle.Placeholder = "Task title"
	editTitle.CharLimit = 200

	editDesc := textarea.New()
	editDesc.Placeholder = "Description"
	editDesc.CharLimit = 1000
	editDesc.SetWidth(50)
	editDesc.SetHeight(3)
	editDesc.ShowLineNumbers = false

	return &TaskListView{
		taskSvc:     taskSvc,
		userSvc:     userSvc,
		session:     sess,
		caps:        caps,
		styles:      styles.NewStyles(),
		keys:        keys.DefaultKeyMap(),
		log:         log,
		searchInput: search,
		editTitle:   editTitle,
		editDesc:    editDesc,
	}
}

// Init loads the task list.
func (v *TaskListView) Init() tea.Cmd {
	v.busy = true
	return v.loadTasks
}

func (v *TaskListView) loadTasks() tea.Msg {
	ctx := context.Background()
	identity := v.session.Current()

	var (
		tasks []models.Task
		err   error
	)
	switch v.caps.Scope {
	case models.ScopeAll:
		tasks, err = v.taskSvc.All(ctx)
	case models.ScopeOwn:
		var authored, assigned []models.Task
		authored, err = v.taskSvc.ByAuthor(ctx, identity.ID)
		if err == nil {
			assigned, err = v.taskSvc.ByExecutor(ctx, identity.ID)
			tasks = mergeTasks(authored, assigned)
		}
	case models.ScopeAssigned:
		tasks, err = v.taskSvc.ByExecutor(ctx, identity.ID)
	}

	return tasksLoadedMsg{tasks: tasks, err: err}
}

func (v *TaskListView) loadExecutors() tea.Msg {
	users, err := v.userSvc.All(context.Background())
	return executorsLoadedMsg{users: users, err: err}
}

// Update handles messages
func (v *TaskListView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.width = msg.Width
		v.height = msg.Height
		inputWidth := min(max(styles.ContentWidth(v.width)-10, 20), 50)
		v.editDesc.SetWidth(inputWidth)
		return v, nil

	case tasksLoadedMsg:
		v.busy = false
		if msg.err != nil {
			v.log.Error().Err(msg.err).Msg("load tasks")
			v.errText = "Could not load tasks."
			return v, nil
		}
		v.tasks = msg.tasks
		v.applyFilter()
		return v, nil

	case executorsLoadedMsg:
		v.busy = false
		if msg.err != nil {
			v.log.Error().Err(msg.err).Msg("load executors")
			v.errText = "Could not load users."
			return v, nil
		}
		v.executors = msg.users
		v.defaultExecutorSelection()
		return v, nil

	case taskSavedMsg:
		v.busy = false
		if msg.err != nil {
			v.log.Error().Err(msg.err).Msg("save task")
			v.errText = saveTaskErrText(msg.err)
			return v, nil
		}
		v.closeForm()
		v.busy = true
		return v, v.loadTasks

	case taskDeletedMsg:
		v.busy = false
		if msg.err != nil {
			v.log.Error().Err(msg.err).Msg("delete task")
			v.errText = "Could not delete the task."
			return v, nil
		}
		v.busy = true
		return v, v.loadTasks

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

func saveTaskErrText(err error) string {
	if errors.Is(err, models.ErrInvalidArgument) {
		return "Title and description are required."
	}
	return "Could not save the task."
}

func (v *TaskListView) updateNormal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, v.keys.Quit):
		return v, tea.Quit

	case key.Matches(msg, v.keys.Logout):
		return v, func() tea.Msg { return LoggedOut{} }

	case key.Matches(msg, v.keys.Users):
		if v.caps.ManageUsers {
			return v, func() tea.Msg { return ShowUsers{} }
		}
		return v, nil

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
		if v.caps.SearchTasks {
			v.searching = true
			v.searchInput.Focus()
			return v, textinput.Blink
		}
		return v, nil

	case key.Matches(msg, v.keys.Reload):
		if v.busy {
			return v, nil
		}
		v.errText = ""
		v.busy = true
		return v, v.loadTasks

	case key.Matches(msg, v.keys.New):
		if v.caps.CreateTasks && !v.busy {
			return v, v.startCreate()
		}
		return v, nil

	case key.Matches(msg, v.keys.Edit), key.Matches(msg, v.keys.Enter):
		if len(v.visible) > 0 && !v.busy {
			return v, v.startEdit(v.visible[v.cursor])
		}
		return v, nil

	case key.Matches(msg, v.keys.Delete):
		if v.caps.DeleteTasks && len(v.visible) > 0 && !v.busy {
			v.confirmingDelete = true
			v.deleteTargetID = v.visible[v.cursor].ID
			v.deleteTargetName = v.visible[v.cursor].Title
		}
		return v, nil
	}

	return v, nil
}

func (v *TaskListView) updateSearching(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, v.keys.Back), key.Matches(msg, v.keys.Enter):
		v.searching = false
		v.searchInput.Blur()
		return v, nil
	}

	var cmd tea.Cmd
	v.searchInput, cmd = v.searchInput.Update(msg)
	// The filter runs over the already-loaded set on every keystroke.
	v.applyFilter()
	return v, cmd
}

func (v *TaskListView) updateConfirmDelete(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		v.confirmingDelete = false
		v.errText = ""
		v.busy = true
		id := v.deleteTargetID
		return v, func() tea.Msg {
			return taskDeletedMsg{err: v.taskSvc.Delete(context.Background(), id)}
		}
	case "n", "N", "esc":
		v.confirmingDelete = false
		return v, nil
	}
	return v, nil
}

func (v *TaskListView) updateEditing(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	fields := v.formFieldCount()

	switch {
	case key.Matches(msg, v.keys.Back):
		v.closeForm()
		return v, nil

	case msg.String() == "ctrl+s":
		return v, v.saveTask()

	case key.Matches(msg, v.keys.Tab):
		v.editFocusIdx = (v.editFocusIdx + 1) % fields
		v.updateFormFocus()
		return v, nil

	case msg.String() == "shift+tab":
		v.editFocusIdx = (v.editFocusIdx + fields - 1) % fields
		v.updateFormFocus()
		return v, nil

	case key.Matches(msg, v.keys.Enter):
		if v.editFocusIdx == fields-1 {
			return v, v.saveTask()
		}
		if v.fullForm() && v.editFocusIdx == 0 {
			v.editFocusIdx++
			v.updateFormFocus()
			return v, nil
		}
		// Let enter pass through to the description textarea.

	case msg.String() == "left", msg.String() == "right":
		if v.onStatusField() {
			v.cycleStatus(msg.String())
			return v, nil
		}
		if v.fullForm() && v.editFocusIdx == 3 {
			v.cycleExecutor(msg.String())
			return v, nil
		}
	}

	if v.fullForm() {
		var cmd tea.Cmd
		switch v.editFocusIdx {
		case 0:
			v.editTitle, cmd = v.editTitle.Update(msg)
		case 1:
			v.editDesc, cmd = v.editDesc.Update(msg)
		}
		return v, cmd
	}
	return v, nil
}

// fullForm reports whether all task fields are editable, as opposed to the
// status-only card.
func (v *TaskListView) fullForm() bool {
	return v.caps.EditTaskFields
}

// formFieldCount is the number of focusable form fields including the
// save button.
func (v *TaskListView) formFieldCount() int {
	if v.fullForm() {
		return 5 // title, description, status, executor, save
	}
	return 2 // status, save
}

func (v *TaskListView) onStatusField() bool {
	if v.fullForm() {
		return v.editFocusIdx == 2
	}
	return v.editFocusIdx == 0
}

func (v *TaskListView) cycleStatus(dir string) {
	n := len(models.Statuses)
	if dir == "right" {
		v.editStatusIdx = (v.editStatusIdx + 1) % n
	} else {
		v.editStatusIdx = (v.editStatusIdx + n - 1) % n
	}
}

func (v *TaskListView) cycleExecutor(dir string) {
	if len(v.executors) == 0 {
		return
	}
	n := len(v.executors)
	if dir == "right" {
		v.editExecIdx = (v.editExecIdx + 1) % n
	} else {
		v.editExecIdx = (v.editExecIdx + n - 1) % n
	}
}

func (v *TaskListView) updateFormFocus() {
	v.editTitle.Blur()
	v.editDesc.Blur()

	if !v.fullForm() {
		return
	}
	switch v.editFocusIdx {
	case 0:
		v.editTitle.Focus()
	case 1:
		v.editDesc.Focus()
	}
}

func (v *TaskListView) startCreate() tea.Cmd {
	v.editing = true
	v.editingNew = true
	v.editTaskID = 0
	v.editFocusIdx = 0
	v.editStatusIdx = int(models.StatusNew)
	v.editExecIdx = 0
	v.editTitle.Reset()
	v.editDesc.Reset()
	v.errText = ""
	v.updateFormFocus()

	v.busy = true
	return tea.Batch(textinput.Blink, v.loadExecutors)
}

func (v *TaskListView) startEdit(task models.Task) tea.Cmd {
	v.editing = true
	v.editingNew = false
	v.editTaskID = task.ID
	v.editFocusIdx = 0
	v.origStatus = task.Status
	v.editStatusIdx = int(task.Status)
	v.editTitle.SetValue(task.Title)
	v.editDesc.SetValue(task.Description)
	v.errText = ""
	v.updateFormFocus()

	if !v.fullForm() {
		// Status-only card needs no executor list.
		return nil
	}

	v.busy = true
	return tea.Batch(textinput.Blink, v.loadExecutors)
}

// defaultExecutorSelection points the picker at the edited task's current
// executor, falling back to the first user.
func (v *TaskListView) defaultExecutorSelection() {
	v.editExecIdx = 0
	if v.editingNew {
		current := v.session.Current().ID
		for i, u := range v.executors {
			if u.ID == current {
				v.editExecIdx = i
				return
			}
		}
		return
	}
	for _, t := range v.tasks {
		if t.ID == v.editTaskID && t.ExecutorID != nil {
			for i, u := range v.executors {
				if u.ID == *t.ExecutorID {
					v.editExecIdx = i
					return
				}
			}
		}
	}
}

func (v *TaskListView) canSave() bool {
	if v.busy {
		return false
	}
	if !v.fullForm() {
		return v.editTaskID > 0 && models.Status(v.editStatusIdx) != v.origStatus
	}
	return strings.TrimSpace(v.editTitle.Value()) != "" && len(v.executors) > 0
}

func (v *TaskListView) saveTask() tea.Cmd {
	if !v.canSave() {
		return nil
	}

	v.errText = ""
	v.busy = true

	if !v.fullForm() {
		id := v.editTaskID
		status := models.Status(v.editStatusIdx)
		return func() tea.Msg {
			return taskSavedMsg{err: v.taskSvc.UpdateStatus(context.Background(), id, status)}
		}
	}

	executorID := v.executors[v.editExecIdx].ID
	task := models.Task{
		ID:          v.editTaskID,
		Title:       strings.TrimSpace(v.editTitle.Value()),
		Description: strings.TrimSpace(v.editDesc.Value()),
		Status:      models.Status(v.editStatusIdx),
		AuthorID:    v.session.Current().ID,
		ExecutorID:  &executorID,
	}

	creating := v.editingNew
	return func() tea.Msg {
		ctx := context.Background()
		var err error
		if creating {
			task.Status = models.StatusNew
			_, err = v.taskSvc.Create(ctx, task)
		} else {
			err = v.taskSvc.Update(ctx, task)
		}
		return taskSavedMsg{err: err}
	}
}

func (v *TaskListView) closeForm() {
	v.editing = false
	v.editingNew = false
	v.editTaskID = 0
	v.executors = nil
	v.errText = ""
}

func (v *TaskListView) applyFilter() {
	v.visible = filterTasks(v.tasks, v.searchInput.Value())
	if v.cursor >= len(v.visible) {
		v.cursor = max(0, len(v.visible)-1)
	}
	v.ensureVisible()
}

func (v *TaskListView) ensureVisible() {
	visibleItems := v.listHeight()
	if v.cursor < v.scrollY {
		v.scrollY = v.cursor
	} else if v.cursor >= v.scrollY+visibleItems {
		v.scrollY = v.cursor - visibleItems + 1
	}
}

func (v *TaskListView) listHeight() int {
	available := v.height - 9
	if available < 2 {
		available = 2
	}
	items := available / 2
	if items < 1 {
		items = 1
	}
	return items
}

// View renders the view
func (v *TaskListView) View() string {
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
	b.WriteString(v.renderHelp())

	return styles.CenterView(b.String(), v.width, v.height)
}

func (v *TaskListView) renderHeader() string {
	s := v.styles
	identity := v.session.Current()

	title := s.Title.Render(fmt.Sprintf("Tasks — %s (%s)", identity.Login, identity.Role))
	if v.busy {
		title += s.TitleMuted.Render("  loading…")
	}

	if !v.caps.SearchTasks {
		return title
	}

	searchStyle := s.Input
	if v.searching {
		searchStyle = s.InputFocused
	}
	searchWidth := min(max(styles.ContentWidth(v.width)-8, 10), 30)
	searchBox := searchStyle.Width(searchWidth).Render(v.searchInput.View())

	return lipgloss.JoinVertical(lipgloss.Left, title, searchBox)
}

func (v *TaskListView) renderList() string {
	s := v.styles

	if len(v.visible) == 0 {
		if strings.TrimSpace(v.searchInput.Value()) != "" {
			return s.TitleMuted.Render("No tasks match the search.")
		}
		return s.TitleMuted.Render("No tasks.")
	}

	var items []string
	endIdx := min(v.scrollY+v.listHeight(), len(v.visible))
	for i := v.scrollY; i < endIdx; i++ {
		items = append(items, v.renderTaskItem(v.visible[i], i == v.cursor))
	}
	return lipgloss.JoinVertical(lipgloss.Left, items...)
}

func (v *TaskListView) renderTaskItem(task models.Task, selected bool) string {
	s := v.styles
	width := max(styles.ContentWidth(v.width)-4, 20)

	statusStyle := lipgloss.NewStyle().Foreground(styles.StatusColor(task.Status))
	titleLine := statusStyle.Render("● ") + task.Title

	executor := task.ExecutorLogin
	if executor == "" {
		executor = "unassigned"
	}
	detail := fmt.Sprintf("%s • %s • %s", task.Status, executor, task.CreateDate.Format("2006-01-02"))

	var titleStyle, detailStyle lipgloss.Style
	if selected {
		titleStyle = s.ListSelected.Width(width)
		detailStyle = s.ListSelected.Foreground(styles.Current.ForegroundDim).Width(width)
	} else {
		titleStyle = s.ListItem.Width(width)
		detailStyle = s.ListItem.Foreground(styles.Current.ForegroundDim).Width(width)
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render(titleLine),
		detailStyle.Render(detail),
	)
}

func (v *TaskListView) renderForm() string {
	s := v.styles
	inputWidth := min(max(styles.ContentWidth(v.width)-6, 20), 50)

	status := models.Status(v.editStatusIdx)
	statusLine := fmt.Sprintf("◀ %s ▶", status)

	if !v.fullForm() {
		return v.renderStatusCard(statusLine)
	}

	formTitle := "New Task"
	if !v.editingNew {
		formTitle = "Edit Task"
	}

	titleStyle := s.Input
	descStyle := s.Input
	statusStyle := s.Input
	execStyle := s.Input
	btnStyle := s.Button
	switch v.editFocusIdx {
	case 0:
		titleStyle = s.InputFocused
	case 1:
		descStyle = s.InputFocused
	case 2:
		statusStyle = s.InputFocused
	case 3:
		execStyle = s.InputFocused
	case 4:
		if v.canSave() {
			btnStyle = s.ButtonFocused
		}
	}

	execLabel := "no users"
	if len(v.executors) > 0 {
		u := v.executors[v.editExecIdx]
		execLabel = fmt.Sprintf("◀ %s (%s) ▶", u.Name, u.Login)
	}

	parts := []string{
		s.Title.Render(formTitle),
		"",
		"Title:",
		titleStyle.Width(inputWidth).Render(v.editTitle.View()),
		"",
		"Description:",
		descStyle.Render(v.editDesc.View()),
		"",
		"Status:",
		statusStyle.Render(statusLine),
		"",
		"Executor:",
		execStyle.Render(execLabel),
		"",
		btnStyle.Render(" Save "),
	}
	if v.errText != "" {
		parts = append(parts, "", s.ErrorText.Render(v.errText))
	}
	parts = append(parts, "", s.TitleMuted.Render("Tab: next • ◀▶: choose • Ctrl+S: save • Esc: cancel"))

	return styles.CenterView(lipgloss.JoinVertical(lipgloss.Left, parts...), v.width, v.height)
}

// renderStatusCard is the read-only task card with a status picker, shown
// to executors without edit rights.
func (v *TaskListView) renderStatusCard(statusLine string) string {
	s := v.styles

	statusStyle := s.Input
	btnStyle := s.Button
	switch v.editFocusIdx {
	case 0:
		statusStyle = s.InputFocused
	case 1:
		if v.canSave() {
			btnStyle = s.ButtonFocused
		}
	}

	var task models.Task
	for _, t := range v.tasks {
		if t.ID == v.editTaskID {
			task = t
			break
		}
	}

	parts := []string{
		s.Title.Render("Task Card"),
		"",
		s.TitleMuted.Render("Title: ") + task.Title,
		s.TitleMuted.Render("Description: ") + task.Description,
		s.TitleMuted.Render("Author: ") + task.AuthorLogin,
		s.TitleMuted.Render("Created: ") + task.CreateDate.Format("2006-01-02 15:04"),
		"",
		"Status:",
		statusStyle.Render(statusLine),
		"",
		btnStyle.Render(" Save "),
	}
	if v.errText != "" {
		parts = append(parts, "", s.ErrorText.Render(v.errText))
	}
	parts = append(parts, "", s.TitleMuted.Render("◀▶: status • Ctrl+S: save • Esc: close"))

	return styles.CenterView(lipgloss.JoinVertical(lipgloss.Left, parts...), v.width, v.height)
}

func (v *TaskListView) renderDeleteConfirm() string {
	s := v.styles
	content := lipgloss.JoinVertical(lipgloss.Left,
		s.Title.Render("Delete task?"),
		"",
		fmt.Sprintf("Delete '%s'?", v.deleteTargetName),
		"",
		s.TitleMuted.Render("y: delete • n/esc: cancel"),
	)
	return styles.CenterView(content, v.width, v.height)
}

func (v *TaskListView) renderHelp() string {
	s := v.styles

	entries := []string{"↑↓ move", "e/↵ edit"}
	if v.caps.CreateTasks {
		entries = append(entries, "n new")
	}
	if v.caps.DeleteTasks {
		entries = append(entries, "d delete")
	}
	if v.caps.SearchTasks {
		entries = append(entries, "/ search")
	}
	if v.caps.ManageUsers {
		entries = append(entries, "u users")
	}
	entries = append(entries, "r reload", "ctrl+l log out", "q quit")

	return s.Help.Render(strings.Join(entries, " • "))
}
