package services

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"testing"

	"github.com/jarcoal/httpmock"
	"github.com/mailio/go-campaign-console/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const usersJSON = `{"users": [
	{"id": 1, "email": "ann@acme.com", "status": "approved", "allowed_apis": ["schedule"], "access_days": 30, "monthly_email_limit": 1000},
	{"id": 2, "email": "bob@acme.com", "status": "pending", "allowed_apis": [], "access_days": null, "monthly_email_limit": null}
]}`

const usageJSON = `[{"user_id": 1, "email": "ann@acme.com", "monthly_email_limit": 1000, "sent_this_month": 10, "remaining": 990}]`

func registerAdminLists() {
	httpmock.RegisterResponder("GET", url+"/admin/users", jsonResponder(200, usersJSON))
	httpmock.RegisterResponder("GET", url+"/admin/email-usage", jsonResponder(200, usageJSON))
}

func TestAdminRefreshJoinsUsage(t *testing.T) {
	api := InitMockAPI()
	defer deactivateMock()
	registerAdminLists()

	admin := NewAdminService(api, loggedIn())
	rows, err := admin.Refresh(context.Background())
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "ann@acme.com", rows[0].User.Email)
	require.NotNil(t, rows[0].Usage)
	assert.Equal(t, 10, rows[0].Usage.SentThisMonth)
	assert.Nil(t, rows[1].Usage)
	assert.Len(t, admin.Rows(), 2)

	user, err := admin.FindUser(2)
	require.NoError(t, err)
	assert.Equal(t, "bob@acme.com", user.Email)
	_, err = admin.FindUser(3)
	assert.ErrorIs(t, err, types.ErrNotFound)
}

func TestAdminRefreshUsageFailure(t *testing.T) {
	api := InitMockAPI()
	defer deactivateMock()

	httpmock.RegisterResponder("GET", url+"/admin/users", jsonResponder(200, usersJSON))
	httpmock.RegisterResponder("GET", url+"/admin/email-usage", httpmock.NewStringResponder(500, "boom"))

	rows, err := NewAdminService(api, loggedIn()).Refresh(context.Background())
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Nil(t, rows[0].Usage)
}

func TestAdminRefreshUsersFailure(t *testing.T) {
	api := InitMockAPI()
	defer deactivateMock()

	mk, _ := httpmock.NewJsonResponder(403, map[string]string{"error": "Admin only"})
	httpmock.RegisterResponder("GET", url+"/admin/users", mk)
	httpmock.RegisterResponder("GET", url+"/admin/email-usage", jsonResponder(200, usageJSON))

	_, err := NewAdminService(api, loggedIn()).Refresh(context.Background())
	assert.EqualError(t, err, "Admin only")
}

func TestAdminRequiresSession(t *testing.T) {
	api := InitMockAPI()
	defer deactivateMock()

	_, err := NewAdminService(api, NewSessionHolder()).Refresh(context.Background())
	assert.Equal(t, types.ErrNotAuthenticated, err)
	assert.Equal(t, 0, httpmock.GetTotalCallCount())
}

func TestNewPermissionFormDefaults(t *testing.T) {
	form := NewPermissionForm(types.User{ID: 2, Status: types.UserStatusPending})
	assert.Equal(t, int64(2), form.UserID)
	assert.Equal(t, types.UserStatusApproved, form.Status)
	assert.Equal(t, []string{"schedule", "auto_schedule", "master_schedule", "extract_emails"}, form.AllowedAPIs)
	assert.Equal(t, 0, form.AccessDays)
	assert.Equal(t, 0, form.MonthlyEmailLimit)

	// the default set is copied
	form.AllowedAPIs[0] = "changed"
	assert.Equal(t, "schedule", types.DefaultAllowedAPIs[0])

	days, limit := 30, 500
	form = NewPermissionForm(types.User{ID: 1, Status: types.UserStatusRejected, AllowedAPIs: []string{"extract_emails"}, AccessDays: &days, MonthlyEmailLimit: &limit})
	assert.Equal(t, types.UserStatusRejected, form.Status)
	assert.Equal(t, []string{"extract_emails"}, form.AllowedAPIs)
	assert.Equal(t, 30, form.AccessDays)
	assert.Equal(t, 500, form.MonthlyEmailLimit)
}

func TestUpdatePermissions(t *testing.T) {
	api := InitMockAPI()
	defer deactivateMock()
	registerAdminLists()

	var sent map[string]interface{}
	httpmock.RegisterResponder("POST", url+"/admin/update-permissions", func(req *http.Request) (*http.Response, error) {
		assert.Equal(t, "Bearer "+testToken, req.Header.Get("Authorization"))
		body, _ := io.ReadAll(req.Body)
		_ = json.Unmarshal(body, &sent)
		return httpmock.NewJsonResponse(200, map[string]string{"message": "User updated"})
	})

	admin := NewAdminService(api, loggedIn())
	form := NewPermissionForm(types.User{ID: 2, Status: types.UserStatusPending})
	form.MonthlyEmailLimit = 200
	msg, err := admin.UpdatePermissions(context.Background(), form)
	require.NoError(t, err)
	assert.Equal(t, "User updated", msg)

	assert.Equal(t, float64(2), sent["user_id"])
	assert.Equal(t, "approved", sent["status"])
	assert.Equal(t, float64(200), sent["monthly_email_limit"])
	assert.Equal(t, float64(0), sent["access_days"])
	assert.Len(t, sent["allowed_apis"], 4)

	// both lists are re-fetched
	assert.Equal(t, 1, callCount("GET", "/admin/users"))
	assert.Equal(t, 1, callCount("GET", "/admin/email-usage"))
	assert.Len(t, admin.Rows(), 2)
}

func TestUpdatePermissionsFailureKeepsTable(t *testing.T) {
	api := InitMockAPI()
	defer deactivateMock()

	mk, _ := httpmock.NewJsonResponder(400, map[string]string{"message": "Invalid limit"})
	httpmock.RegisterResponder("POST", url+"/admin/update-permissions", mk)

	admin := NewAdminService(api, loggedIn())
	_, err := admin.UpdatePermissions(context.Background(), NewPermissionForm(types.User{ID: 1}))
	assert.EqualError(t, err, "Invalid limit")
	assert.Equal(t, 0, callCount("GET", "/admin/users"))
}

func TestUpdatePermissionsValidation(t *testing.T) {
	api := InitMockAPI()
	defer deactivateMock()

	admin := NewAdminService(api, loggedIn())
	form := NewPermissionForm(types.User{ID: 1})
	form.MonthlyEmailLimit = -5
	_, err := admin.UpdatePermissions(context.Background(), form)
	var ve *types.ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Equal(t, "monthly_email_limit must be at least 0", ve.Message)
	assert.Equal(t, 0, httpmock.GetTotalCallCount())
}
