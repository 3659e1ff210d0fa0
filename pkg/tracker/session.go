package tracker

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/matt-steen/project-tracker/pkg/store"
	"github.com/rs/zerolog/log"
)

// Session record keys: a boolean flag plus the id of the logged-in user.
const (
	authenticatedKey = "authenticated"
	userIDKey        = "user_id"
)

// Session is the currently authenticated identity. It is a snapshot of the
// user at login/restore time; Auth.Refresh re-reads it after the directory
// changes.
type Session struct {
	UserID   int
	Name     string
	Username string
	Role     string
}

// IsAdmin reports whether the session holds the admin role. It is safe to
// call on a nil session.
func (s *Session) IsAdmin() bool {
	return s != nil && s.Role == RoleAdmin
}

// Auth owns the process-wide session: it validates credentials against the
// directory and persists the session so a restart can restore it.
type Auth struct {
	store   *store.Store
	users   *Directory
	current *Session
}

// NewAuth creates an Auth over the given store and directory.
func NewAuth(s *store.Store, users *Directory) *Auth {
	return &Auth{store: s, users: users}
}

// Login validates the credentials and establishes the session, persisting
// the authenticated flag and user id. A mismatch returns
// ErrInvalidCredentials and leaves any existing session untouched.
func (a *Auth) Login(ctx context.Context, username, password string) (*Session, error) {
	user, err := a.users.FindByCredentials(ctx, username, password)
	if err != nil {
		return nil, err
	}

	if err := a.persist(ctx, user.ID); err != nil {
		return nil, err
	}

	a.current = sessionFor(user)

	log.Info().Str("username", user.Username).Str("role", user.Role).Msg("logged in")

	return a.current, nil
}

// Restore re-establishes the session persisted by a previous Login. It
// returns nil (logged out) when the flag is absent or the referenced user no
// longer exists.
func (a *Auth) Restore(ctx context.Context) (*Session, error) {
	flagRaw, ok, err := a.store.Get(ctx, authenticatedKey)
	if err != nil {
		return nil, err
	}

	if !ok {
		return nil, nil
	}

	var authenticated bool
	if err := json.Unmarshal(flagRaw, &authenticated); err != nil || !authenticated {
		return nil, nil
	}

	idRaw, ok, err := a.store.Get(ctx, userIDKey)
	if err != nil {
		return nil, err
	}

	if !ok {
		return nil, nil
	}

	var id int
	if err := json.Unmarshal(idRaw, &id); err != nil {
		return nil, nil
	}

	user, err := a.users.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, nil
		}

		return nil, err
	}

	a.current = sessionFor(user)

	return a.current, nil
}

// Logout clears the persisted session state unconditionally. The yes/no gate
// for the user lives at the view boundary, not here.
func (a *Auth) Logout(ctx context.Context) error {
	if err := a.store.Delete(ctx, authenticatedKey); err != nil {
		return err
	}

	if err := a.store.Delete(ctx, userIDKey); err != nil {
		return err
	}

	if a.current != nil {
		log.Info().Str("username", a.current.Username).Msg("logged out")
	}

	a.current = nil

	return nil
}

// Current returns the active session, or nil when logged out.
func (a *Auth) Current() *Session {
	return a.current
}

// IsAdmin reports whether the active session holds the admin role.
func (a *Auth) IsAdmin() bool {
	return a.current.IsAdmin()
}

// Refresh re-reads the logged-in user from the directory so name and role
// edits to one's own account show up without a re-login.
func (a *Auth) Refresh(ctx context.Context) error {
	if a.current == nil {
		return nil
	}

	user, err := a.users.FindByID(ctx, a.current.UserID)
	if err != nil {
		return err
	}

	a.current = sessionFor(user)

	return nil
}

func (a *Auth) persist(ctx context.Context, userID int) error {
	if err := a.store.Set(ctx, authenticatedKey, []byte("true")); err != nil {
		return err
	}

	return a.store.Set(ctx, userIDKey, []byte(fmt.Sprintf("%d", userID)))
}

func sessionFor(user *User) *Session {
	return &Session{
		UserID:   user.ID,
		Name:     user.Name,
		Username: user.Username,
		Role:     user.Role,
	}
}
