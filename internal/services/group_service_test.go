package services

import (
	"testing"

	"github.com/pferate/puppy-website/internal/identity"
	"github.com/pferate/puppy-website/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func groupNames(groups []models.Group) []string {
	names := make([]string, len(groups))
	for i, g := range groups {
		names[i] = g.Name
	}
	return names
}

func TestGroupService_GroupsFromList(t *testing.T) {
	env := setupServiceTestEnv(t)
	createTestGroup(t, env.db, "User")
	createTestGroup(t, env.db, "Moderator")
	createTestGroup(t, env.db, "Administrator")

	groups, err := env.groups.GroupsFromList([]string{"Administrator", "User", "Nonexistent"})
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"User", "Administrator"}, groupNames(groups))

	groups, err = env.groups.GroupsFromList(nil)
	require.NoError(t, err)
	assert.Empty(t, groups)
}

func TestGroupService_InGroups(t *testing.T) {
	env := setupServiceTestEnv(t)
	user := createTestUser(t, env.db, "john@example.com")
	createTestGroup(t, env.db, "User", user)
	createTestGroup(t, env.db, "Moderator")
	createTestGroup(t, env.db, "Administrator", user)

	p := identity.Authenticated{User: user}

	tests := []struct {
		name       string
		groups     []string
		requireAll bool
		want       []string
	}{
		{"any member of both", []string{"User", "Administrator"}, false, []string{"User", "Administrator"}},
		{"any returns the matched subset", []string{"User", "Moderator"}, false, []string{"User"}},
		{"all satisfied", []string{"User", "Administrator"}, true, []string{"User", "Administrator"}},
		{"unknown names are ignored", []string{"User", "Nonexistent"}, false, []string{"User"}},
		{"none matched", []string{"Moderator"}, false, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			groups, err := env.groups.InGroups(p, tt.groups, tt.requireAll)
			require.NoError(t, err)
			assert.ElementsMatch(t, tt.want, groupNames(groups))
		})
	}
}

func TestGroupService_InGroupsRequireAllFailsOnFirstMiss(t *testing.T) {
	env := setupServiceTestEnv(t)
	user := createTestUser(t, env.db, "john@example.com")
	createTestGroup(t, env.db, "User", user)
	createTestGroup(t, env.db, "Moderator")

	groups, err := env.groups.InGroups(identity.Authenticated{User: user}, []string{"User", "Moderator"}, true)
	require.NoError(t, err)
	assert.Nil(t, groups)
}

func TestGroupService_InGroupsAnonymous(t *testing.T) {
	env := setupServiceTestEnv(t)
	createTestGroup(t, env.db, "User")

	groups, err := env.groups.InGroups(identity.Anonymous{}, []string{"User"}, false)
	require.NoError(t, err)
	assert.Empty(t, groups)

	isAdmin, err := env.groups.IsAdministrator(identity.Anonymous{})
	require.NoError(t, err)
	assert.False(t, isAdmin)
}

func TestGroupService_IsAdministrator(t *testing.T) {
	env := setupServiceTestEnv(t)
	admin := createTestUser(t, env.db, "admin@puppy")
	user := createTestUser(t, env.db, "pat@puppy")
	createTestGroup(t, env.db, "Administrator", admin)
	createTestGroup(t, env.db, "User", user)

	isAdmin, err := env.groups.IsAdministrator(identity.Authenticated{User: admin})
	require.NoError(t, err)
	assert.True(t, isAdmin)

	isAdmin, err = env.groups.IsAdministrator(identity.Authenticated{User: user})
	require.NoError(t, err)
	assert.False(t, isAdmin)
}

func TestGroupService_GetAdminUsersIsDuplicateFree(t *testing.T) {
	previous := models.AdministrativeGroups
	models.AdministrativeGroups = []string{"Administrator", "Superuser"}
	t.Cleanup(func() { models.AdministrativeGroups = previous })

	env := setupServiceTestEnv(t)
	alice := createTestUser(t, env.db, "alice@puppy")
	bob := createTestUser(t, env.db, "bob@puppy")
	createTestUser(t, env.db, "carol@puppy")
	createTestGroup(t, env.db, "Administrator", alice, bob)
	createTestGroup(t, env.db, "Superuser", alice)

	admins, err := env.groups.GetAdminUsers()
	require.NoError(t, err)
	require.Len(t, admins, 2)

	emails := []string{admins[0].Email, admins[1].Email}
	assert.ElementsMatch(t, []string{"alice@puppy", "bob@puppy"}, emails)
}

func TestGroupService_GetAdminUsersWithoutGroups(t *testing.T) {
	env := setupServiceTestEnv(t)

	admins, err := env.groups.GetAdminUsers()
	require.NoError(t, err)
	assert.NotNil(t, admins)
	assert.Empty(t, admins)
}

func TestGroupService_Membership(t *testing.T) {
	env := setupServiceTestEnv(t)
	user := createTestUser(t, env.db, "john@example.com")

	_, err := env.groups.CreateGroup(CreateGroupInput{Name: "  "})
	assert.ErrorIs(t, err, ErrInvalidGroupName)

	group, err := env.groups.CreateGroup(CreateGroupInput{Name: "Moderator", Description: "Moderators", Default: true})
	require.NoError(t, err)
	assert.True(t, group.Default)

	_, err = env.groups.CreateGroup(CreateGroupInput{Name: "Moderator"})
	assert.ErrorIs(t, err, ErrGroupExists)

	require.NoError(t, env.groups.AddMember("Moderator", user.ID))
	require.NoError(t, env.groups.AddMember("Moderator", user.ID))

	groups, err := env.groups.ListGroups()
	require.NoError(t, err)
	require.Len(t, groups, 1)
	assert.Len(t, groups[0].Users, 1)

	assert.ErrorIs(t, env.groups.AddMember("Nope", user.ID), ErrGroupNotFound)
	assert.ErrorIs(t, env.groups.AddMember("Moderator", 999), ErrUserNotFound)

	require.NoError(t, env.groups.RemoveMember("Moderator", user.ID))
	groups, err = env.groups.ListGroups()
	require.NoError(t, err)
	assert.Empty(t, groups[0].Users)
}
