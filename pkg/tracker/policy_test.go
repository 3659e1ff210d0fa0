package tracker_test

import (
	"context"
	"testing"

	"github.com/matt-steen/project-tracker/pkg/tracker"
	"github.com/stretchr/testify/assert"
)

func TestPolicyRequiresSession(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)

	project := &tracker.Project{ID: "p", ManagerID: 2}

	assert.False(tracker.CanView(nil))
	assert.False(tracker.CanCreateProject(nil))
	assert.False(tracker.CanEditProject(nil, project))
	assert.False(tracker.CanDeleteProject(nil))
	assert.False(tracker.CanManageTeam(nil))
	assert.False(tracker.CanModifyTasks(nil))
	assert.False(tracker.CanDeleteUser(nil, 2))
}

func TestPolicyMemberSession(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)

	member := &tracker.Session{UserID: 2, Role: tracker.RoleMember}
	managed := &tracker.Project{ID: "p", ManagerID: 2}
	other := &tracker.Project{ID: "q", ManagerID: 3}

	assert.True(tracker.CanView(member))
	assert.True(tracker.CanModifyTasks(member))

	assert.False(tracker.CanCreateProject(member))
	assert.False(tracker.CanDeleteProject(member))
	assert.False(tracker.CanManageTeam(member))

	// a manager can edit their own project but nobody else's
	assert.True(tracker.CanEditProject(member, managed))
	assert.False(tracker.CanEditProject(member, other))

	// members never delete users
	assert.False(tracker.CanDeleteUser(member, 3))
}

func TestPolicyAdminSession(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)

	admin := &tracker.Session{UserID: 1, Role: tracker.RoleAdmin}
	project := &tracker.Project{ID: "p", ManagerID: 2}

	assert.True(tracker.CanView(admin))
	assert.True(tracker.CanCreateProject(admin))
	assert.True(tracker.CanEditProject(admin, project))
	assert.True(tracker.CanDeleteProject(admin))
	assert.True(tracker.CanManageTeam(admin))
	assert.True(tracker.CanModifyTasks(admin))
	assert.True(tracker.CanDeleteUser(admin, 2))

	// even an admin cannot delete themself
	assert.False(tracker.CanDeleteUser(admin, 1))
}

// TestManagerEditScenario walks the full flow: an admin creates a project
// managed by a member, the manager may edit it, and a third unrelated member
// is denied.
func TestManagerEditScenario(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)

	_, auth, projects := getComponents(assert)
	ctx := context.Background()

	loginAdmin(assert, auth)

	// manager = Member Alpha (id 2)
	project, err := projects.Create(ctx, "Website Redesign", "rebuild the landing pages", 2)
	assert.Nil(err)
	assert.Nil(auth.Logout(ctx))

	manager, err := auth.Login(ctx, "member", "member")
	assert.Nil(err)
	assert.True(tracker.CanEditProject(manager, project))

	assert.Nil(projects.Update(ctx, project.ID, project.Name, "scoped down to two pages", project.ManagerID))

	updated, err := projects.FindByID(ctx, project.ID)
	assert.Nil(err)
	assert.Equal("scoped down to two pages", updated.Description)
	assert.Nil(auth.Logout(ctx))

	stranger, err := auth.Login(ctx, "dev_beta", "dev")
	assert.Nil(err)
	assert.False(tracker.CanEditProject(stranger, updated))
}
