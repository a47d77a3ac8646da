package services

import (
	"context"
	"testing"

	"github.com/jarcoal/httpmock"
	"github.com/mailio/go-campaign-console/global"
	"github.com/mailio/go-campaign-console/repository"
	"github.com/mailio/go-campaign-console/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestConsole(api *repository.APIClient) *Console {
	return NewConsole(api, repository.NewMemoryStorage(), global.DefaultConfig())
}

func TestConsoleLoginNonAdmin(t *testing.T) {
	api := InitMockAPI()
	defer deactivateMock()

	mk, _ := httpmock.NewJsonResponder(200, map[string]string{"token": "opaque-token"})
	httpmock.RegisterResponder("POST", url+"/login", mk)
	probe, _ := httpmock.NewJsonResponder(403, map[string]string{"error": "Admin access required"})
	httpmock.RegisterResponder("GET", url+"/admin/users", probe)
	health, _ := httpmock.NewJsonResponder(200, map[string]string{"status": "ok"})
	httpmock.RegisterResponder("GET", url+"/health", health)

	console := newTestConsole(api)
	assert.Equal(t, ViewAuth, console.View())

	session, err := console.Login(context.Background(), "user@acme.com", "secret")
	require.NoError(t, err)
	assert.Equal(t, "opaque-token", session.Token)
	assert.False(t, session.IsAdmin)
	assert.Equal(t, ViewUser, console.View())

	assert.True(t, console.Shell.CheckHealth(context.Background()))
	assert.Equal(t, []Tab{TabSchedule, TabAutoSchedule, TabMasterSchedule, TabDomains, TabExtract}, FeatureTabs())
	assert.Len(t, FeatureTabs(), 5)

	console.Logout()
	assert.Equal(t, ViewAuth, console.View())
}

func TestConsoleLoginAdmin(t *testing.T) {
	api := InitMockAPI()
	defer deactivateMock()

	mk, _ := httpmock.NewJsonResponder(200, map[string]string{"token": "opaque-token"})
	httpmock.RegisterResponder("POST", url+"/login", mk)
	httpmock.RegisterResponder("GET", url+"/admin/users", jsonResponder(200, `[]`))

	console := newTestConsole(api)
	_, err := console.Login(context.Background(), "root@acme.com", "secret")
	require.NoError(t, err)
	assert.Equal(t, ViewAdmin, console.View())
}

func TestConsoleUseToken(t *testing.T) {
	api := InitMockAPI()
	defer deactivateMock()

	console := newTestConsole(api)
	session := console.UseToken(context.Background(), signedToken(t, map[string]interface{}{"is_admin": true}))
	assert.True(t, session.IsAdmin)
	assert.Equal(t, "user@acme.com", session.Email)
	assert.Equal(t, 0, httpmock.GetTotalCallCount())
}

func TestShellSelectDiscardsPanel(t *testing.T) {
	api := InitMockAPI()
	defer deactivateMock()

	console := newTestConsole(api)
	panel, err := console.Shell.Select(TabSchedule)
	require.NoError(t, err)
	schedule := panel.(*ScheduleService)
	schedule.Subject = "draft"

	_, err = console.Shell.Select(TabStats)
	require.NoError(t, err)
	tab, current := console.Shell.Active()
	assert.Equal(t, TabStats, tab)
	assert.IsType(t, &StatisticsService{}, current)

	panel, err = console.Shell.Select(TabSchedule)
	require.NoError(t, err)
	assert.Empty(t, panel.(*ScheduleService).Subject)

	_, err = console.Shell.Select("reports")
	assert.ErrorIs(t, err, types.ErrUnknownTab)
}

func TestParseTab(t *testing.T) {
	tab, err := ParseTab("Auto Schedule")
	require.NoError(t, err)
	assert.Equal(t, TabAutoSchedule, tab)
	tab, err = ParseTab("domains")
	require.NoError(t, err)
	assert.Equal(t, TabDomains, tab)
	_, err = ParseTab("admin")
	assert.ErrorIs(t, err, types.ErrUnknownTab)
	assert.Len(t, Tabs(), 6)
}

func TestShellHealthOffline(t *testing.T) {
	api := InitMockAPI()
	defer deactivateMock()

	shell := newTestConsole(api).Shell
	// no responder: transport failure
	assert.False(t, shell.CheckHealth(context.Background()))

	httpmock.RegisterResponder("GET", url+"/health", httpmock.NewStringResponder(503, "maintenance"))
	assert.False(t, shell.CheckHealth(context.Background()))

	httpmock.RegisterResponder("GET", url+"/health", jsonResponder(200, `{"status": "degraded"}`))
	assert.False(t, shell.CheckHealth(context.Background()))

	httpmock.RegisterResponder("GET", url+"/health", httpmock.NewStringResponder(200, "OK"))
	assert.True(t, shell.CheckHealth(context.Background()))
	assert.True(t, shell.Online())
}
