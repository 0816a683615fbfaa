package views

import (
	"strings"

	"taskdesk/internal/models"
)

// filterTasks returns tasks whose title, description or executor login
// contains the search text, case-insensitively. Blank search returns the
// input unchanged. The match runs over the already-loaded set; nothing is
// re-queried.
func filterTasks(tasks []models.Task, search string) []models.Task {
	search = strings.ToLower(strings.TrimSpace(search))
	if search == "" {
		return tasks
	}

	var out []models.Task
	for _, t := range tasks {
		if strings.Contains(strings.ToLower(t.Title), search) ||
			strings.Contains(strings.ToLower(t.Description), search) ||
			strings.Contains(strings.ToLower(t.ExecutorLogin), search) {
			out = append(out, t)
		}
	}
	return out
}

// filterUsers matches the search text against name and login.
func filterUsers(users []models.User, search string) []models.User {
	search = strings.ToLower(strings.TrimSpace(search))
	if search == "" {
		return users
	}

	var out []models.User
	for _, u := range users {
		if strings.Contains(strings.ToLower(u.Name), search) ||
			strings.Contains(strings.ToLower(u.Login), search) {
			out = append(out, u)
		}
	}
	return out
}

// mergeTasks appends b to a, dropping tasks already present by id. Used
// for the unified authored-or-assigned list.
func mergeTasks(a, b []models.Task) []models.Task {
	seen := make(map[int64]bool, len(a))
	for _, t := range a {
		seen[t.ID] = true
	}
	out := a
	for _, t := range b {
		if !seen[t.ID] {
			out = append(out, t)
		}
	}
	return out
}
