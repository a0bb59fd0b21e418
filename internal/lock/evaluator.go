// Package lock holds the pure edit-permission decision logic shared by every
// content view and by the admin console. It performs no I/O; callers feed it
// the lock flags they fetched and the session role they hold.
package lock

import "github.com/campusboard/portal-api/internal/models"

// CanEdit decides whether a caller may edit a specific item. The master flag
// dominates: when it is set nothing below it matters. Then the section flag,
// then the item flag, and only for an unlocked item does the role decide.
func CanEdit(role models.Role, masterLocked, sectionLocked, itemLocked bool) bool {
	if masterLocked {
		return false
	}
	if sectionLocked {
		return false
	}
	if itemLocked {
		return false
	}
	return roleMayEdit(role)
}

// CanEditSection is CanEdit with no item in play.
func CanEditSection(role models.Role, masterLocked, sectionLocked bool) bool {
	return CanEdit(role, masterLocked, sectionLocked, false)
}

// CanEditMaster is CanEdit with neither section nor item in play.
func CanEditMaster(role models.Role, masterLocked bool) bool {
	return CanEdit(role, masterLocked, false, false)
}

// Verdict evaluates a full section snapshot for one item id.
func Verdict(role models.Role, snap models.SectionSnapshot, itemID int64) bool {
	return CanEdit(role, snap.Master, snap.Locked, snap.ItemLocked(itemID))
}

// roleMayEdit is exhaustive over the role enum; anything unrecognised is
// treated as a non-editor.
func roleMayEdit(role models.Role) bool {
	switch role {
	case models.RoleStudentEditor, models.RoleAdmin:
		return true
	case models.RoleUnauthenticated, models.RolePending, models.RoleVisitor, models.RoleStudent:
		return false
	default:
		return false
	}
}
