package manager

import (
	"context"
	"testing"

	"github.com/poiesic/cookbook/core"
	"github.com/poiesic/cookbook/storage/collection"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newUserManager(t *testing.T) (*UserManager, *collection.MemoryPersister) {
	t.Helper()
	ctx := context.Background()
	p := collection.NewMemoryPersister()
	repo := collection.NewUserRepository(p)
	require.NoError(t, repo.Load(ctx))
	m, err := NewUserManager(ctx, repo)
	require.NoError(t, err)
	return m, p
}

func TestUserManager_BootstrapOnlyOnce(t *testing.T) {
	ctx := context.Background()
	m, _ := newUserManager(t)

	admin, err := m.Bootstrap(ctx, "root", "s3cret")
	require.NoError(t, err)
	assert.Equal(t, core.RoleAdmin, admin.Role)
	assert.True(t, core.IsPasswordDigest(admin.Password))

	_, err = m.Bootstrap(ctx, "other", "pw")
	assert.ErrorIs(t, err, ErrAlreadyBootstrapped)
}

func TestUserManager_LastAdminProtection(t *testing.T) {
	ctx := context.Background()
	m, p := newUserManager(t)

	admin, err := m.AddUser(ctx, "root", "pw", core.RoleAdmin)
	require.NoError(t, err)
	writes := p.Writes()

	assert.ErrorIs(t, m.DeleteUser(ctx, admin.Id), ErrLastAdmin)
	_, err = m.SetRole(ctx, admin.Id, core.RoleNormal)
	assert.ErrorIs(t, err, ErrLastAdmin)
	assert.Equal(t, writes, p.Writes())

	second, err := m.AddUser(ctx, "alice", "pw", core.RoleAdmin)
	require.NoError(t, err)

	_, err = m.SetRole(ctx, admin.Id, core.RoleNormal)
	require.NoError(t, err)

	assert.ErrorIs(t, m.DeleteUser(ctx, second.Id), ErrLastAdmin)
	require.NoError(t, m.DeleteUser(ctx, admin.Id))

	users, err := m.ListUsers(ctx)
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, "alice", users[0].Username)
}

func TestUserManager_UsernamesUniqueIgnoringCase(t *testing.T) {
	ctx := context.Background()
	m, _ := newUserManager(t)

	_, err := m.AddUser(ctx, "Alice", "pw", core.RoleNormal)
	require.NoError(t, err)
	_, err = m.AddUser(ctx, "alice", "pw", core.RoleNormal)
	assert.ErrorIs(t, err, ErrDuplicateName)

	_, err = m.FindUserByUsername(ctx, "alice")
	assert.ErrorIs(t, err, ErrNotFound)
	u, err := m.FindUserByUsername(ctx, "Alice")
	require.NoError(t, err)
	assert.Equal(t, core.ID(1), u.Id)
}

func TestUserManager_UsernamesAreTrimmed(t *testing.T) {
	ctx := context.Background()
	m, _ := newUserManager(t)

	added, err := m.AddUser(ctx, "  bob ", "hunter2", core.RoleNormal)
	require.NoError(t, err)
	assert.Equal(t, "bob", added.Username)

	_, err = m.AddUser(ctx, "bob", "pw", core.RoleNormal)
	assert.ErrorIs(t, err, ErrDuplicateName)

	u, err := m.Authenticate(ctx, "bob", "hunter2")
	require.NoError(t, err)
	assert.Equal(t, added.Id, u.Id)

	added.Username = "robert\t"
	updated, err := m.UpdateUser(ctx, added)
	require.NoError(t, err)
	assert.Equal(t, "robert", updated.Username)
	_, err = m.FindUserByUsername(ctx, "robert")
	assert.NoError(t, err)
}

func TestUserManager_Authenticate(t *testing.T) {
	ctx := context.Background()
	m, _ := newUserManager(t)

	_, err := m.AddUser(ctx, "bob", "hunter2", core.RoleNormal)
	require.NoError(t, err)

	u, err := m.Authenticate(ctx, "bob", "hunter2")
	require.NoError(t, err)
	assert.Equal(t, "bob", u.Username)

	_, err = m.Authenticate(ctx, "bob", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = m.Authenticate(ctx, "nobody", "hunter2")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestUserManager_LegacyPasswordIsRedigestedOnSave(t *testing.T) {
	ctx := context.Background()
	doc := `{"users": [{"id": 1, "username": "old", "password": "plain", "role": "Admin"}]}`
	p := collection.NewMemoryPersisterWith([]byte(doc))
	repo := collection.NewUserRepository(p)
	require.NoError(t, repo.Load(ctx))
	m, err := NewUserManager(ctx, repo)
	require.NoError(t, err)

	u, err := m.Authenticate(ctx, "old", "plain")
	require.NoError(t, err)
	assert.False(t, core.IsPasswordDigest(u.Password))

	u, err = m.SetRole(ctx, u.Id, core.RoleAdmin)
	require.NoError(t, err)
	assert.True(t, core.IsPasswordDigest(u.Password))
	assert.NotContains(t, string(p.Document()), `"plain"`)

	_, err = m.Authenticate(ctx, "old", "plain")
	require.NoError(t, err)
}

func TestUserManager_ChangePassword(t *testing.T) {
	ctx := context.Background()
	m, _ := newUserManager(t)

	u, err := m.AddUser(ctx, "bob", "one", core.RoleNormal)
	require.NoError(t, err)

	_, err = m.ChangePassword(ctx, u.Id, "")
	assert.ErrorIs(t, err, core.ErrEmptyPassword)

	_, err = m.ChangePassword(ctx, u.Id, "two")
	require.NoError(t, err)

	_, err = m.Authenticate(ctx, "bob", "one")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = m.Authenticate(ctx, "bob", "two")
	require.NoError(t, err)

	_, err = m.ChangePassword(ctx, 99, "x")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUserManager_AddValidates(t *testing.T) {
	ctx := context.Background()
	m, p := newUserManager(t)

	_, err := m.AddUser(ctx, "", "pw", core.RoleNormal)
	assert.ErrorIs(t, err, core.ErrEmptyUsername)
	_, err = m.AddUser(ctx, "bob", "", core.RoleNormal)
	assert.ErrorIs(t, err, core.ErrEmptyPassword)
	_, err = m.AddUser(ctx, "bob", "pw", core.Role("Chef"))
	assert.ErrorIs(t, err, core.ErrInvalidRole)
	assert.Zero(t, p.Writes())
}

func TestAuthorize(t *testing.T) {
	admin := core.User{Username: "root", Role: core.RoleAdmin}
	normal := core.User{Username: "bob", Role: core.RoleNormal}

	tests := []struct {
		name    string
		user    core.User
		action  Action
		allowed bool
	}{
		{"admin manages users", admin, ActionManageUsers, true},
		{"admin manages recipes", admin, ActionManageRecipes, true},
		{"normal reads", normal, ActionRead, true},
		{"normal manages recipes", normal, ActionManageRecipes, true},
		{"normal manages restaurants", normal, ActionManageRestaurants, true},
		{"normal manages users", normal, ActionManageUsers, false},
		{"unknown role", core.User{Username: "x", Role: "Chef"}, ActionRead, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Authorize(tt.user, tt.action)
			if tt.allowed {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, ErrPermissionDenied)
			}
		})
	}
}
