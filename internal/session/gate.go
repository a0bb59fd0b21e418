package session

import "github.com/campusboard/portal-api/internal/models"

// Route classes the gate distinguishes between.
type RouteClass int

const (
	// RouteEntry covers the role-select and login screens.
	RouteEntry RouteClass = iota
	// RouteHome covers content screens available to any authenticated role.
	RouteHome
	// RouteAdmin covers the admin console.
	RouteAdmin
)

// Well-known route paths.
const (
	EntryPath = "/"
	HomePath  = "/home"
)

// Decision is the gate outcome for a navigation attempt.
type Decision struct {
	Allowed    bool   `json:"allowed"`
	RedirectTo string `json:"redirect_to,omitempty"`
}

var allow = Decision{Allowed: true}

// Resolve decides route accessibility from the session role alone,
// independent of content locks. Exhaustive over the role enum: unknown roles
// are gated like unauthenticated ones.
func Resolve(role models.Role, class RouteClass) Decision {
	switch class {
	case RouteEntry:
		// Authenticated callers skip the entry screens.
		if role.Authenticated() {
			return Decision{RedirectTo: HomePath}
		}
		return allow
	case RouteAdmin:
		switch role {
		case models.RoleAdmin:
			return allow
		case models.RoleVisitor, models.RoleStudent, models.RoleStudentEditor:
			return Decision{RedirectTo: HomePath}
		default:
			return Decision{RedirectTo: EntryPath}
		}
	default: // RouteHome
		if role.Authenticated() {
			return allow
		}
		return Decision{RedirectTo: EntryPath}
	}
}
