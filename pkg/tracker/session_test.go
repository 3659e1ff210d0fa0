package tracker_test

import (
	"context"
	"testing"

	"github.com/matt-steen/project-tracker/pkg/store"
	"github.com/matt-steen/project-tracker/pkg/tracker"
	"github.com/stretchr/testify/assert"
)

func TestLoginSeededAdmin(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)

	_, auth, _ := getComponents(assert)

	session := loginAdmin(assert, auth)
	assert.Equal(tracker.RoleAdmin, session.Role)
	assert.True(auth.IsAdmin())
	assert.Equal(session, auth.Current())
}

func TestLoginWrongPassword(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)

	_, auth, _ := getComponents(assert)

	session, err := auth.Login(context.Background(), "admin", "wrong")
	assert.Nil(session)
	assert.ErrorIs(err, tracker.ErrInvalidCredentials)

	// the session stays absent
	assert.Nil(auth.Current())
	assert.False(auth.IsAdmin())
}

func TestRestoreRoundTrip(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)

	st, filename := getStore(assert)
	ctx := context.Background()

	users := tracker.NewDirectory(st)
	auth := tracker.NewAuth(st, users)

	loginAdmin(assert, auth)
	assert.Nil(st.Close())

	// a fresh process over the same file restores the session
	st2, err := store.Open(ctx, filename)
	assert.Nil(err)

	users2 := tracker.NewDirectory(st2)
	auth2 := tracker.NewAuth(st2, users2)

	session, err := auth2.Restore(ctx)
	assert.Nil(err)
	assert.NotNil(session)
	assert.Equal(1, session.UserID)
	assert.Equal(tracker.RoleAdmin, session.Role)
}

func TestRestoreWithoutLogin(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)

	_, auth, _ := getComponents(assert)

	session, err := auth.Restore(context.Background())
	assert.Nil(err)
	assert.Nil(session)
}

func TestRestoreDeletedUser(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)

	users, auth, _ := getComponents(assert)
	ctx := context.Background()

	_, err := auth.Login(ctx, "member", "member")
	assert.Nil(err)

	// delete the logged-in member from an admin's point of view (id 1)
	assert.Nil(users.Delete(ctx, 2, 1))

	session, err := auth.Restore(ctx)
	assert.Nil(err)
	assert.Nil(session)
}

func TestLogoutClearsSession(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)

	_, auth, _ := getComponents(assert)
	ctx := context.Background()

	loginAdmin(assert, auth)

	assert.Nil(auth.Logout(ctx))
	assert.Nil(auth.Current())

	session, err := auth.Restore(ctx)
	assert.Nil(err)
	assert.Nil(session)
}

func TestRefreshPicksUpEdits(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)

	users, auth, _ := getComponents(assert)
	ctx := context.Background()

	loginAdmin(assert, auth)

	assert.Nil(users.Update(ctx, 1, tracker.UserUpdate{Name: "Renamed Admin"}))
	assert.Nil(auth.Refresh(ctx))
	assert.Equal("Renamed Admin", auth.Current().Name)
}
