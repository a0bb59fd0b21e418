package session

import (
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campusboard/portal-api/internal/models"
)

func TestManagerInitReadsStorageOnce(t *testing.T) {
	fs := afero.NewMemMapFs()
	store := NewStore(fs, "/data/session.json", nil)
	store.Save(Record{Role: models.RoleStudent, Username: "rafi"})

	mgr := NewManager(store)
	assert.Equal(t, models.RoleStudent, mgr.Role())
	assert.Equal(t, "rafi", mgr.Current().Username)
}

func TestManagerInitWithoutSession(t *testing.T) {
	mgr := NewManager(NewStore(afero.NewMemMapFs(), "/s.json", nil))
	assert.Equal(t, models.RoleUnauthenticated, mgr.Role())
}

func TestManagerInitNormalisesUnknownRole(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/s.json", []byte(`{"role":"owner","username":"x"}`), 0o600))

	mgr := NewManager(NewStore(fs, "/s.json", nil))
	assert.Equal(t, models.RoleUnauthenticated, mgr.Role())
}

func TestManagerLoginPersists(t *testing.T) {
	store := NewStore(afero.NewMemMapFs(), "/s.json", nil)
	mgr := NewManager(store)

	rec, ok := mgr.Login(models.RoleStudentEditor, "nadia")
	require.True(t, ok)
	assert.Equal(t, models.RoleStudentEditor, rec.Role)
	assert.False(t, rec.CreatedAt.IsZero())

	stored, ok := store.Load()
	require.True(t, ok)
	assert.Equal(t, rec, stored)
}

func TestManagerLoginRejectsUnauthenticated(t *testing.T) {
	mgr := NewManager(nil)
	_, ok := mgr.Login(models.RoleUnauthenticated, "")
	assert.False(t, ok)
	_, ok = mgr.Login(models.Role("bogus"), "")
	assert.False(t, ok)
}

func TestManagerLogoutFromAnyState(t *testing.T) {
	store := NewStore(afero.NewMemMapFs(), "/s.json", nil)
	mgr := NewManager(store)

	for _, role := range []models.Role{models.RoleVisitor, models.RolePending, models.RoleAdmin} {
		_, _ = mgr.Login(role, "u")
		mgr.Logout()
		assert.Equal(t, models.RoleUnauthenticated, mgr.Role())
		_, ok := store.Load()
		assert.False(t, ok)
	}
}

func TestGatePendingRedirectedUntilApproved(t *testing.T) {
	// A pending session cannot reach home; after approval and re-login as
	// student the same navigation succeeds.
	decision := Resolve(models.RolePending, RouteHome)
	assert.False(t, decision.Allowed)
	assert.Equal(t, EntryPath, decision.RedirectTo)

	decision = Resolve(models.RoleStudent, RouteHome)
	assert.True(t, decision.Allowed)
}

func TestGateAdminRoutes(t *testing.T) {
	assert.True(t, Resolve(models.RoleAdmin, RouteAdmin).Allowed)

	decision := Resolve(models.RoleStudentEditor, RouteAdmin)
	assert.False(t, decision.Allowed)
	assert.Equal(t, HomePath, decision.RedirectTo)

	decision = Resolve(models.RoleUnauthenticated, RouteAdmin)
	assert.Equal(t, EntryPath, decision.RedirectTo)
}

func TestGateEntryRedirectsAuthenticated(t *testing.T) {
	decision := Resolve(models.RoleVisitor, RouteEntry)
	assert.False(t, decision.Allowed)
	assert.Equal(t, HomePath, decision.RedirectTo)

	assert.True(t, Resolve(models.RoleUnauthenticated, RouteEntry).Allowed)
	assert.True(t, Resolve(models.RolePending, RouteEntry).Allowed)
}
