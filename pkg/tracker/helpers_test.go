package tracker_test

import (
	"context"
	"os"

	"github.com/matt-steen/project-tracker/pkg/store"
	"github.com/matt-steen/project-tracker/pkg/tracker"
	"github.com/stretchr/testify/assert"
)

// getStore opens a store over a fresh temp sqlite file and returns its
// filename so round-trip tests can reopen it.
func getStore(assert *assert.Assertions) (*store.Store, string) {
	tempFile, err := os.CreateTemp("", "test_tracker*.sqlite")
	assert.Nil(err)

	st, err := store.Open(context.Background(), tempFile.Name())
	assert.NotNil(st)
	assert.Nil(err)

	return st, tempFile.Name()
}

// getComponents wires a directory, auth, and repository over one store.
func getComponents(assert *assert.Assertions) (*tracker.Directory, *tracker.Auth, *tracker.Repository) {
	st, _ := getStore(assert)

	users := tracker.NewDirectory(st)
	auth := tracker.NewAuth(st, users)
	projects := tracker.NewRepository(st, auth)

	return users, auth, projects
}

// loginAdmin authenticates the seeded admin account.
func loginAdmin(assert *assert.Assertions, auth *tracker.Auth) *tracker.Session {
	session, err := auth.Login(context.Background(), "admin", "admin")
	assert.Nil(err)
	assert.NotNil(session)

	return session
}
