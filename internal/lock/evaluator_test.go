package lock

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/campusboard/portal-api/internal/models"
)

var allRoles = []models.Role{
	models.RoleUnauthenticated,
	models.RolePending,
	models.RoleVisitor,
	models.RoleStudent,
	models.RoleStudentEditor,
	models.RoleAdmin,
}

func TestCanEditMasterLockDominates(t *testing.T) {
	for _, role := range allRoles {
		for _, sectionLocked := range []bool{false, true} {
			for _, itemLocked := range []bool{false, true} {
				assert.False(t, CanEdit(role, true, sectionLocked, itemLocked),
					"role=%s section=%v item=%v", role, sectionLocked, itemLocked)
			}
		}
	}
}

func TestCanEditUnlockedRequiresEditorRole(t *testing.T) {
	for _, role := range allRoles {
		want := role == models.RoleStudentEditor || role == models.RoleAdmin
		assert.Equal(t, want, CanEdit(role, false, false, false), "role=%s", role)
	}
}

func TestCanEditSectionLockFlipsEditorsOnly(t *testing.T) {
	for _, role := range allRoles {
		before := CanEdit(role, false, false, false)
		after := CanEdit(role, false, true, false)

		assert.False(t, after, "role=%s", role)
		if !role.EditorCapable() {
			assert.Equal(t, before, after, "non-editor role %s should be unaffected", role)
		}
	}
}

func TestCanEditItemLock(t *testing.T) {
	assert.False(t, CanEdit(models.RoleAdmin, false, false, true))
	assert.False(t, CanEdit(models.RoleStudentEditor, false, false, true))
	assert.True(t, CanEdit(models.RoleAdmin, false, false, false))
}

func TestCanEditUnknownRoleFailsClosed(t *testing.T) {
	assert.False(t, CanEdit(models.Role("superuser"), false, false, false))
	assert.False(t, CanEdit(models.Role(""), false, false, false))
}

func TestCanEditSectionAndMasterVariants(t *testing.T) {
	assert.True(t, CanEditSection(models.RoleStudentEditor, false, false))
	assert.False(t, CanEditSection(models.RoleStudentEditor, false, true))
	assert.False(t, CanEditSection(models.RoleStudentEditor, true, false))

	assert.True(t, CanEditMaster(models.RoleAdmin, false))
	assert.False(t, CanEditMaster(models.RoleAdmin, true))
	assert.False(t, CanEditMaster(models.RoleStudent, false))
}

func TestVerdictScopedToItem(t *testing.T) {
	snap := models.SectionSnapshot{
		Section: models.SectionHomework,
		Items:   map[int64]bool{5: true},
	}

	assert.False(t, Verdict(models.RoleStudentEditor, snap, 5))
	assert.True(t, Verdict(models.RoleStudentEditor, snap, 6))

	other := models.SectionSnapshot{Section: models.SectionNotices}
	assert.True(t, Verdict(models.RoleStudentEditor, other, 5))
}

func TestVerdictMasterNeedsNoItemLookup(t *testing.T) {
	// A snapshot with only the master flag set must lock every item even
	// though the item map is empty.
	snap := models.SectionSnapshot{Section: models.SectionNotices, Master: true}
	for id := int64(1); id <= 10; id++ {
		assert.False(t, Verdict(models.RoleStudentEditor, snap, id))
		assert.False(t, Verdict(models.RoleAdmin, snap, id))
	}
}
