package models

import "time"

// Role is the closed set of session roles the portal recognises.
type Role string

const (
	RoleUnauthenticated Role = "unauthenticated"
	RolePending         Role = "pending"
	RoleVisitor         Role = "visitor"
	RoleStudent         Role = "student"
	RoleStudentEditor   Role = "studentEditor"
	RoleAdmin           Role = "admin"
)

// ParseRole maps an arbitrary string onto the role enum. Unknown values fail
// closed to unauthenticated.
func ParseRole(raw string) Role {
	switch Role(raw) {
	case RolePending, RoleVisitor, RoleStudent, RoleStudentEditor, RoleAdmin:
		return Role(raw)
	default:
		return RoleUnauthenticated
	}
}

// Authenticated reports whether the role represents a logged-in session.
func (r Role) Authenticated() bool {
	switch r {
	case RoleVisitor, RoleStudent, RoleStudentEditor, RoleAdmin:
		return true
	default:
		return false
	}
}

// EditorCapable reports whether the role may author content absent any lock.
func (r Role) EditorCapable() bool {
	return r == RoleStudentEditor || r == RoleAdmin
}

// Session is the durable local session record.
type Session struct {
	Role      Role      `json:"role"`
	Username  string    `json:"username,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
