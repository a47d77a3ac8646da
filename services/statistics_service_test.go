package services

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"testing"

	"github.com/jarcoal/httpmock"
	"github.com/mailio/go-campaign-console/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const logsJSON = `{"logs": [
	{"id": 7, "job_id": "j1", "sender": "me@acme.com", "receiver": "ann@acme.com", "status": "sent", "scheduled_at": "2024-05-01 10:00", "executed_at": "2024-05-01 10:00", "error": null},
	{"id": 8, "job_id": "j1", "sender": "me@acme.com", "receiver": "bob@acme.com", "status": "failed", "scheduled_at": "2024-05-01 10:05", "executed_at": null, "error": "mailbox full"}
]}`

func registerStats() {
	httpmock.RegisterResponder("GET", url+"/emails/usage", jsonResponder(200, `{"monthly_email_limit": 1000, "sent_this_month": 2, "remaining": 998}`))
	httpmock.RegisterResponder("GET", url+"/emails/logs", jsonResponder(200, logsJSON))
}

func TestStatisticsRefresh(t *testing.T) {
	api := InitMockAPI()
	defer deactivateMock()
	registerStats()

	stats := NewStatisticsService(api, loggedIn())
	require.NoError(t, stats.Refresh(context.Background()))

	usage := stats.Usage()
	require.NotNil(t, usage)
	assert.Equal(t, 2, usage.SentThisMonth)
	assert.Equal(t, 998, *usage.Remaining)

	logs := stats.Logs()
	require.Len(t, logs, 2)
	assert.Equal(t, types.LogID("7"), logs[0].ID)
	assert.Nil(t, logs[0].Error)
	assert.Equal(t, "mailbox full", *logs[1].Error)
	assert.Equal(t, []types.LogID{"7", "8"}, stats.LogIDs())
}

func TestStatisticsRefreshKeepsSuccessfulPart(t *testing.T) {
	api := InitMockAPI()
	defer deactivateMock()

	httpmock.RegisterResponder("GET", url+"/emails/usage", httpmock.NewStringResponder(500, "usage unavailable"))
	httpmock.RegisterResponder("GET", url+"/emails/logs", jsonResponder(200, logsJSON))

	stats := NewStatisticsService(api, loggedIn())
	err := stats.Refresh(context.Background())
	assert.EqualError(t, err, "usage unavailable")
	assert.Nil(t, stats.Usage())
	assert.Len(t, stats.Logs(), 2)
}

func TestSelection(t *testing.T) {
	ids := []types.LogID{"1", "2", "3"}
	s := NewSelection()
	assert.False(t, s.AllSelected(ids))

	s.Toggle("2")
	assert.True(t, s.IsSelected("2"))
	s.ToggleAll(ids)
	assert.True(t, s.AllSelected(ids))
	assert.Equal(t, 3, s.Len())

	// toggling again when everything is selected clears it
	s.ToggleAll(ids)
	assert.Equal(t, 0, s.Len())

	// an empty list is never "all selected"
	assert.False(t, s.AllSelected(nil))

	s.Toggle("1")
	s.Toggle("3")
	s.Toggle("1")
	assert.Equal(t, []types.LogID{"3"}, s.IDs())

	s.Retain([]types.LogID{"1", "2"})
	assert.Equal(t, 0, s.Len())
}

func TestDeleteLog(t *testing.T) {
	api := InitMockAPI()
	defer deactivateMock()
	registerStats()
	httpmock.RegisterResponder("DELETE", url+"/emails/logs/8", jsonResponder(200, `{"message": "deleted"}`))

	stats := NewStatisticsService(api, loggedIn())
	require.NoError(t, stats.Refresh(context.Background()))

	var question string
	confirmer := ConfirmFunc(func(ctx context.Context, message string) (bool, error) {
		question = message
		return true, nil
	})
	require.NoError(t, stats.DeleteLog(context.Background(), "8", confirmer))
	assert.Contains(t, question, "bob@acme.com")
	assert.Equal(t, 1, callCount("DELETE", "/emails/logs/8"))
	// logs re-fetched, usage not
	assert.Equal(t, 2, callCount("GET", "/emails/logs"))
	assert.Equal(t, 1, callCount("GET", "/emails/usage"))
}

func TestDeleteLogDeclined(t *testing.T) {
	api := InitMockAPI()
	defer deactivateMock()

	err := NewStatisticsService(api, loggedIn()).DeleteLog(context.Background(), "8", declineAll())
	assert.ErrorIs(t, err, types.ErrNotConfirmed)
	assert.Equal(t, 0, httpmock.GetTotalCallCount())
}

func TestDeleteSelected(t *testing.T) {
	api := InitMockAPI()
	defer deactivateMock()
	registerStats()

	var sent map[string]interface{}
	httpmock.RegisterResponder("POST", url+"/emails/logs/bulk-delete", func(req *http.Request) (*http.Response, error) {
		body, _ := io.ReadAll(req.Body)
		_ = json.Unmarshal(body, &sent)
		return httpmock.NewJsonResponse(200, map[string]string{"message": "deleted"})
	})

	stats := NewStatisticsService(api, loggedIn())
	err := stats.DeleteSelected(context.Background(), AlwaysConfirm)
	assert.Error(t, err, "nothing selected")

	require.NoError(t, stats.Refresh(context.Background()))
	stats.ToggleAll()
	require.NoError(t, stats.DeleteSelected(context.Background(), AlwaysConfirm))

	// numeric ids are sent back as numbers
	assert.Equal(t, []interface{}{float64(7), float64(8)}, sent["ids"])
	assert.Equal(t, 0, stats.Selection.Len())
}

func TestDeleteAllFailureLeavesState(t *testing.T) {
	api := InitMockAPI()
	defer deactivateMock()
	registerStats()
	mk, _ := httpmock.NewJsonResponder(500, map[string]string{"error": "try later"})
	httpmock.RegisterResponder("DELETE", url+"/emails/logs/delete-all", mk)

	stats := NewStatisticsService(api, loggedIn())
	require.NoError(t, stats.Refresh(context.Background()))
	stats.Selection.Toggle("7")

	err := stats.DeleteAll(context.Background(), AlwaysConfirm)
	assert.EqualError(t, err, "try later")
	assert.Len(t, stats.Logs(), 2)
	assert.True(t, stats.Selection.IsSelected("7"))
	assert.Equal(t, 1, callCount("GET", "/emails/logs"))
}

func TestDeleteSelectedKeepsStringIDs(t *testing.T) {
	api := InitMockAPI()
	defer deactivateMock()

	httpmock.RegisterResponder("GET", url+"/emails/logs", jsonResponder(200, `[{"id":"007","status":"sent"},{"id":"42","status":"failed"}]`))
	var sent string
	httpmock.RegisterResponder("POST", url+"/emails/logs/bulk-delete", func(req *http.Request) (*http.Response, error) {
		body, _ := io.ReadAll(req.Body)
		sent = string(body)
		return httpmock.NewJsonResponse(200, map[string]string{"message": "deleted"})
	})

	stats := NewStatisticsService(api, loggedIn())
	require.NoError(t, stats.RefreshLogs(context.Background()))
	assert.Equal(t, []types.LogID{"007", "42"}, stats.LogIDs())

	stats.Selection.Toggle("42")
	stats.Selection.Toggle("007")
	assert.Equal(t, []types.LogID{"007", "42"}, stats.Selection.IDs())
	require.NoError(t, stats.DeleteSelected(context.Background(), AlwaysConfirm))

	assert.JSONEq(t, `{"ids":["007","42"]}`, sent)
}
