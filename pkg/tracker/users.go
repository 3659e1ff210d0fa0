package tracker

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/matt-steen/project-tracker/pkg/store"
	"github.com/rs/zerolog/log"
)

// usersKey is the record holding the flat array of users.
const usersKey = "users"

// seedUsers returns the built-in accounts installed when the user record is
// empty, so the app is usable on first run.
func seedUsers() []User {
	return []User{
		{ID: 1, Name: "Admin User", Username: "admin", Password: "admin", Role: RoleAdmin},
		{ID: 2, Name: "Member Alpha", Username: "member", Password: "member", Role: RoleMember},
		{ID: 3, Name: "Developer Beta", Username: "dev_beta", Password: "dev", Role: RoleMember},
	}
}

// Directory owns the set of team members: lookup, create, update, delete.
type Directory struct {
	store *store.Store
}

// NewDirectory creates a Directory over the given store.
func NewDirectory(s *store.Store) *Directory {
	return &Directory{store: s}
}

// List returns all users in stored order. When the record is absent or
// empty, the built-in accounts are seeded and persisted first.
func (d *Directory) List(ctx context.Context) ([]User, error) {
	raw, ok, err := d.store.Get(ctx, usersKey)
	if err != nil {
		return nil, err
	}

	var users []User

	if ok {
		if err := json.Unmarshal(raw, &users); err != nil {
			return nil, fmt.Errorf("error decoding users record: %w", err)
		}
	}

	if len(users) == 0 {
		users = seedUsers()

		log.Info().Int("count", len(users)).Msg("seeding built-in user accounts")

		if err := d.save(ctx, users); err != nil {
			return nil, err
		}
	}

	return users, nil
}

func (d *Directory) save(ctx context.Context, users []User) error {
	raw, err := json.Marshal(users)
	if err != nil {
		return fmt.Errorf("error encoding users record: %w", err)
	}

	return d.store.Set(ctx, usersKey, raw)
}

// FindByID returns the user with the given id, or ErrNotFound.
func (d *Directory) FindByID(ctx context.Context, id int) (*User, error) {
	users, err := d.List(ctx)
	if err != nil {
		return nil, err
	}

	for i := range users {
		if users[i].ID == id {
			return &users[i], nil
		}
	}

	return nil, fmt.Errorf("user %d: %w", id, ErrNotFound)
}

// FindByCredentials returns the user matching both username and password
// exactly (case-sensitive), or ErrInvalidCredentials.
func (d *Directory) FindByCredentials(ctx context.Context, username, password string) (*User, error) {
	users, err := d.List(ctx)
	if err != nil {
		return nil, err
	}

	for i := range users {
		if users[i].Username == username && users[i].Password == password {
			return &users[i], nil
		}
	}

	return nil, ErrInvalidCredentials
}

// Create adds a new user. The username must not already be taken and the
// password must not be empty. The new id is one more than the highest
// existing id, or 1 for an empty directory.
func (d *Directory) Create(ctx context.Context, name, username, password, role string) (*User, error) {
	users, err := d.List(ctx)
	if err != nil {
		return nil, err
	}

	for _, u := range users {
		if u.Username == username {
			return nil, validationf("username '%s' is already taken", username)
		}
	}

	if password == "" {
		return nil, validationf("a password is required for a new member")
	}

	id := 1

	for _, u := range users {
		if u.ID >= id {
			id = u.ID + 1
		}
	}

	user := User{ID: id, Name: name, Username: username, Password: password, Role: role}
	users = append(users, user)

	if err := d.save(ctx, users); err != nil {
		return nil, err
	}

	log.Info().Int("id", user.ID).Str("username", user.Username).Msg("created user")

	return &user, nil
}

// UserUpdate carries the fields Update may change. Empty fields leave the
// corresponding attribute unchanged; in particular an empty password keeps
// the current one.
type UserUpdate struct {
	Name     string
	Username string
	Role     string
	Password string
}

// Update modifies an existing user. Changing the username to one held by a
// different user fails with a ValidationError.
func (d *Directory) Update(ctx context.Context, id int, upd UserUpdate) error {
	users, err := d.List(ctx)
	if err != nil {
		return err
	}

	idx := -1

	for i := range users {
		if users[i].ID == id {
			idx = i

			break
		}
	}

	if idx == -1 {
		return fmt.Errorf("user %d: %w", id, ErrNotFound)
	}

	if upd.Username != "" {
		for _, u := range users {
			if u.Username == upd.Username && u.ID != id {
				return validationf("username '%s' is already taken by another member", upd.Username)
			}
		}

		users[idx].Username = upd.Username
	}

	if upd.Name != "" {
		users[idx].Name = upd.Name
	}

	if upd.Role != "" {
		users[idx].Role = upd.Role
	}

	if upd.Password != "" {
		users[idx].Password = upd.Password
	}

	return d.save(ctx, users)
}

// Delete removes the user with the given id. The currently authenticated
// user (currentID) may not delete themself. There is no cascade: projects
// and tasks referencing the user keep their dangling ids.
func (d *Directory) Delete(ctx context.Context, id, currentID int) error {
	if id == currentID {
		return fmt.Errorf("you cannot delete your own account: %w", ErrForbidden)
	}

	users, err := d.List(ctx)
	if err != nil {
		return err
	}

	kept := make([]User, 0, len(users))

	for _, u := range users {
		if u.ID != id {
			kept = append(kept, u)
		}
	}

	if err := d.save(ctx, kept); err != nil {
		return err
	}

	log.Info().Int("id", id).Msg("deleted user")

	return nil
}
