package services

import (
	"context"

	"github.com/mailio/go-campaign-console/global"
	"github.com/mailio/go-campaign-console/repository"
	"github.com/mailio/go-campaign-console/types"
)

// View chosen by the console for the current session
type View int

const (
	ViewAuth View = iota
	ViewAdmin
	ViewUser
)

func (v View) String() string {
	switch v {
	case ViewAdmin:
		return "admin"
	case ViewUser:
		return "user"
	}
	return "auth"
}

// Console is the root: it holds the session and picks the auth flow,
// the admin console or the user console
type Console struct {
	Session *SessionHolder
	Library *LibraryService
	Auth    *AuthService
	Admin   *AdminService
	Shell   *ShellService

	api *repository.APIClient
}

func NewConsole(api *repository.APIClient, storage repository.Storage, conf global.Config) *Console {
	session := NewSessionHolder()
	library := NewLibraryService(storage)
	return &Console{
		Session: session,
		Library: library,
		Auth:    NewAuthService(api, conf.Auth),
		Admin:   NewAdminService(api, session),
		Shell:   NewShellService(api, session, library),
		api:     api,
	}
}

func (c *Console) API() *repository.APIClient {
	return c.api
}

// Login authenticates and keeps the session in memory
func (c *Console) Login(ctx context.Context, email, password string) (*types.Session, error) {
	session, err := c.Auth.Login(ctx, email, password)
	if err != nil {
		return nil, err
	}
	c.Session.Set(session)
	return session, nil
}

// UseToken starts a session from an existing token (scripts). The admin flag is
// resolved the same way as on login.
func (c *Console) UseToken(ctx context.Context, token string) *types.Session {
	session := &types.Session{Token: token}
	claims := readClaims(token)
	if claims != nil {
		if !claims.Expiration().IsZero() {
			exp := claims.Expiration()
			session.ExpiresAt = &exp
		}
		if sub := claims.Subject(); sub != "" {
			session.Email = sub
		}
	}
	if isAdmin, ok := adminFromClaims(claims); ok {
		session.IsAdmin = isAdmin
	} else {
		session.IsAdmin = c.Auth.probeAdmin(ctx, token)
	}
	c.Session.Set(session)
	return session
}

// Logout forgets the session and unmounts the current panel
func (c *Console) Logout() {
	c.Session.Clear()
	c.Shell.unmount()
	c.Auth.SwitchToLogin()
}

func (c *Console) View() View {
	session := c.Session.Get()
	if !session.IsValid() {
		return ViewAuth
	}
	if session.IsAdmin {
		return ViewAdmin
	}
	return ViewUser
}
