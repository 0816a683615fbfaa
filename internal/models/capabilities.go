package models

// TaskScope selects which tasks a view loads.
type TaskScope int

const (
	// ScopeAll loads every task.
	ScopeAll TaskScope = iota
	// ScopeOwn loads tasks the current user authored or executes.
	ScopeOwn
	// ScopeAssigned loads only tasks assigned to the current user.
	ScopeAssigned
)

// Capabilities describes what a role may do. It is selected once per
// session from the authenticated identity's role, so the UI never switches
// on the role itself.
type Capabilities struct {
	ManageUsers    bool
	CreateTasks    bool
	DeleteTasks    bool
	EditTaskFields bool // false means the edit form only changes status
	SearchTasks    bool
	Scope          TaskScope
}

// CapabilitiesFor maps a role to its capability set.
func CapabilitiesFor(role Role) Capabilities {
	switch role {
	case RoleAdmin:
		return Capabilities{
			ManageUsers:    true,
			CreateTasks:    true,
			DeleteTasks:    true,
			EditTaskFields: true,
			SearchTasks:    true,
			Scope:          ScopeAll,
		}
	case RoleManager:
		return Capabilities{
			CreateTasks:    true,
			DeleteTasks:    true,
			EditTaskFields: true,
			Scope:          ScopeOwn,
		}
	default:
		return Capabilities{Scope: ScopeAssigned}
	}
}
