package services

import (
	"context"
	"net/http"
	"sync"

	"github.com/go-kit/log/level"
	"github.com/mailio/go-campaign-console/global"
	"github.com/mailio/go-campaign-console/repository"
	"github.com/mailio/go-campaign-console/types"
	"golang.org/x/sync/errgroup"
)

// AdminService lists users with their usage and updates their permissions.
// The table only reflects server state after a re-fetch.
type AdminService struct {
	inFlight
	api     *repository.APIClient
	session *SessionHolder

	mu    sync.RWMutex
	users []types.User
	usage []types.UserUsage
}

func NewAdminService(api *repository.APIClient, session *SessionHolder) *AdminService {
	return &AdminService{api: api, session: session}
}

// Refresh fetches users and usage independently and joins them by user id.
// A failing usage list leaves the rows without usage.
func (s *AdminService) Refresh(ctx context.Context) ([]types.UserRow, error) {
	token, err := s.session.Token()
	if err != nil {
		return nil, err
	}

	var users []types.User
	var usage []types.UserUsage
	var usageErr error

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		resp, err := s.api.Call(gctx, "/admin/users", repository.CallOptions{Token: token})
		if err != nil {
			return err
		}
		users, err = repository.MapToList[types.User](resp, "users", "data")
		return err
	})
	g.Go(func() error {
		resp, err := s.api.Call(gctx, "/admin/email-usage", repository.CallOptions{Token: token})
		if err == nil {
			usage, err = repository.MapToList[types.UserUsage](resp, "usage", "users", "data")
		}
		// never cancels the users call
		usageErr = err
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if usageErr != nil {
		level.Warn(global.Logger).Log("msg", "failed to load email usage", "err", usageErr)
		usage = []types.UserUsage{}
	}

	s.mu.Lock()
	s.users = users
	s.usage = usage
	s.mu.Unlock()
	return JoinUsage(users, usage), nil
}

// Rows returns the last fetched table
func (s *AdminService) Rows() []types.UserRow {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return JoinUsage(s.users, s.usage)
}

// FindUser returns a user of the last fetched list
func (s *AdminService) FindUser(id int64) (*types.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.users {
		if u.ID == id {
			user := u
			return &user, nil
		}
	}
	return nil, types.ErrNotFound
}

// JoinUsage attaches the usage row with the same user id to every user
func JoinUsage(users []types.User, usage []types.UserUsage) []types.UserRow {
	byID := make(map[int64]*types.UserUsage, len(usage))
	for i := range usage {
		byID[usage[i].UserID] = &usage[i]
	}
	rows := make([]types.UserRow, 0, len(users))
	for _, u := range users {
		rows = append(rows, types.UserRow{User: u, Usage: byID[u.ID]})
	}
	return rows
}

// NewPermissionForm pre-populates the edit form from a user: pending becomes approved
// and an empty API set becomes the default set
func NewPermissionForm(user types.User) types.InputUpdatePermissions {
	form := types.InputUpdatePermissions{
		UserID: user.ID,
		Status: user.Status,
	}
	if form.Status == "" || form.Status == types.UserStatusPending {
		form.Status = types.UserStatusApproved
	}
	if len(user.AllowedAPIs) == 0 {
		form.AllowedAPIs = append([]string{}, types.DefaultAllowedAPIs...)
	} else {
		form.AllowedAPIs = append([]string{}, user.AllowedAPIs...)
	}
	if user.AccessDays != nil {
		form.AccessDays = *user.AccessDays
	}
	if user.MonthlyEmailLimit != nil {
		form.MonthlyEmailLimit = *user.MonthlyEmailLimit
	}
	return form
}

// UpdatePermissions sends the whole form and re-fetches the table on success
func (s *AdminService) UpdatePermissions(ctx context.Context, form types.InputUpdatePermissions) (string, error) {
	if err := s.begin(); err != nil {
		return "", err
	}
	defer s.end()

	if err := validateInput(form); err != nil {
		return "", err
	}
	token, err := s.session.Token()
	if err != nil {
		return "", err
	}
	message, err := callMessage(ctx, s.api, "/admin/update-permissions", repository.CallOptions{
		Method: http.MethodPost,
		Body:   form,
		Token:  token,
	})
	if err != nil {
		return "", err
	}
	if _, rErr := s.Refresh(ctx); rErr != nil {
		level.Warn(global.Logger).Log("msg", "permissions updated but refresh failed", "err", rErr)
	}
	if message == "" {
		message = "Permissions updated"
	}
	return message, nil
}
