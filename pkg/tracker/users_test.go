package tracker_test

import (
	"context"
	"testing"

	"github.com/matt-steen/project-tracker/pkg/tracker"
	"github.com/stretchr/testify/assert"
)

func TestListSeedsBuiltInAccounts(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)

	users, _, _ := getComponents(assert)

	all, err := users.List(context.Background())
	assert.Nil(err)
	assert.Len(all, 3)

	assert.Equal("admin", all[0].Username)
	assert.Equal(tracker.RoleAdmin, all[0].Role)
	assert.Equal(tracker.RoleMember, all[1].Role)
	assert.Equal(tracker.RoleMember, all[2].Role)
}

func TestListSeedsOnlyOnce(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)

	users, _, _ := getComponents(assert)
	ctx := context.Background()

	_, err := users.Create(ctx, "Someone New", "someone", "pw", tracker.RoleMember)
	assert.Nil(err)

	all, err := users.List(ctx)
	assert.Nil(err)
	assert.Len(all, 4)
}

func TestCreateAssignsNextID(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)

	users, _, _ := getComponents(assert)
	ctx := context.Background()

	user, err := users.Create(ctx, "Someone New", "someone", "pw", tracker.RoleMember)
	assert.Nil(err)
	assert.Equal(4, user.ID)
}

func TestCreateDuplicateUsername(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)

	users, _, _ := getComponents(assert)
	ctx := context.Background()

	before, err := users.List(ctx)
	assert.Nil(err)

	user, err := users.Create(ctx, "Impostor", "admin", "pw", tracker.RoleMember)
	assert.Nil(user)

	var verr *tracker.ValidationError
	assert.ErrorAs(err, &verr)

	after, err := users.List(ctx)
	assert.Nil(err)
	assert.Len(after, len(before))
}

func TestCreateEmptyPassword(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)

	users, _, _ := getComponents(assert)

	user, err := users.Create(context.Background(), "No Password", "nopw", "", tracker.RoleMember)
	assert.Nil(user)

	var verr *tracker.ValidationError
	assert.ErrorAs(err, &verr)
}

func TestFindByCredentials(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)

	users, _, _ := getComponents(assert)
	ctx := context.Background()

	user, err := users.FindByCredentials(ctx, "dev_beta", "dev")
	assert.Nil(err)
	assert.Equal("Developer Beta", user.Name)

	// both fields must match exactly
	_, err = users.FindByCredentials(ctx, "dev_beta", "Dev")
	assert.ErrorIs(err, tracker.ErrInvalidCredentials)

	_, err = users.FindByCredentials(ctx, "DEV_BETA", "dev")
	assert.ErrorIs(err, tracker.ErrInvalidCredentials)
}

func TestUpdateKeepsPasswordWhenEmpty(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)

	users, _, _ := getComponents(assert)
	ctx := context.Background()

	err := users.Update(ctx, 2, tracker.UserUpdate{Name: "Member Renamed", Role: tracker.RoleAdmin})
	assert.Nil(err)

	user, err := users.FindByID(ctx, 2)
	assert.Nil(err)
	assert.Equal("Member Renamed", user.Name)
	assert.Equal(tracker.RoleAdmin, user.Role)
	assert.Equal("member", user.Password)
	assert.Equal("member", user.Username)
}

func TestUpdatePassword(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)

	users, _, _ := getComponents(assert)
	ctx := context.Background()

	err := users.Update(ctx, 2, tracker.UserUpdate{Password: "changed"})
	assert.Nil(err)

	_, err = users.FindByCredentials(ctx, "member", "changed")
	assert.Nil(err)
}

func TestUpdateUsernameCollision(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)

	users, _, _ := getComponents(assert)
	ctx := context.Background()

	err := users.Update(ctx, 2, tracker.UserUpdate{Username: "admin"})

	var verr *tracker.ValidationError
	assert.ErrorAs(err, &verr)

	// keeping one's own username is not a collision
	err = users.Update(ctx, 2, tracker.UserUpdate{Username: "member"})
	assert.Nil(err)
}

func TestUpdateMissingUser(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)

	users, _, _ := getComponents(assert)

	err := users.Update(context.Background(), 99, tracker.UserUpdate{Name: "Ghost"})
	assert.ErrorIs(err, tracker.ErrNotFound)
}

func TestDeleteSelfForbidden(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)

	users, _, _ := getComponents(assert)
	ctx := context.Background()

	before, err := users.List(ctx)
	assert.Nil(err)

	err = users.Delete(ctx, 1, 1)
	assert.ErrorIs(err, tracker.ErrForbidden)

	after, err := users.List(ctx)
	assert.Nil(err)
	assert.Len(after, len(before))
}

func TestDeleteRemovesExactlyOne(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)

	users, _, _ := getComponents(assert)
	ctx := context.Background()

	before, err := users.List(ctx)
	assert.Nil(err)

	err = users.Delete(ctx, 2, 1)
	assert.Nil(err)

	after, err := users.List(ctx)
	assert.Nil(err)
	assert.Len(after, len(before)-1)

	_, err = users.FindByID(ctx, 2)
	assert.ErrorIs(err, tracker.ErrNotFound)
}
