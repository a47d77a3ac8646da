package repository

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/jarcoal/httpmock"
	"github.com/mailio/go-campaign-console/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var url = "http://console.test"

func InitMockAPI() *APIClient {
	api := NewAPIClient(url, 0, "test-agent")
	httpmock.ActivateNonDefault(api.GetClient().GetClient())
	return api
}

func deactivateMock() {
	httpmock.DeactivateAndReset()
}

func TestCallJSONSuccess(t *testing.T) {
	api := InitMockAPI()
	defer deactivateMock()

	body := map[string]interface{}{
		"token": "abc",
		"nested": map[string]interface{}{
			"count": 3,
			"items": []string{"a", "b"},
		},
	}
	mk, _ := httpmock.NewJsonResponder(200, body)
	httpmock.RegisterResponder("POST", url+"/login", mk)

	resp, err := api.Call(context.Background(), "/login", CallOptions{Method: http.MethodPost, Body: map[string]string{"email": "a@b.com"}})
	require.NoError(t, err)
	assert.True(t, resp.IsJSON)

	v, err := resp.Value()
	require.NoError(t, err)
	assert.Equal(t, map[string]interface{}{
		"token": "abc",
		"nested": map[string]interface{}{
			"count": float64(3),
			"items": []interface{}{"a", "b"},
		},
	}, v)
}

func TestCallTextSuccess(t *testing.T) {
	api := InitMockAPI()
	defer deactivateMock()

	httpmock.RegisterResponder("GET", url+"/health", httpmock.NewStringResponder(200, "OK"))

	resp, err := api.Call(context.Background(), "/health", CallOptions{})
	require.NoError(t, err)
	assert.False(t, resp.IsJSON)
	v, err := resp.Value()
	require.NoError(t, err)
	assert.Equal(t, "OK", v)
}

func TestCallSendsHeaders(t *testing.T) {
	api := InitMockAPI()
	defer deactivateMock()

	httpmock.RegisterResponder("GET", url+"/emails/usage", func(req *http.Request) (*http.Response, error) {
		assert.Equal(t, "Bearer secret-token", req.Header.Get("Authorization"))
		assert.Equal(t, "application/json", req.Header.Get("Accept"))
		assert.Equal(t, "application/json", req.Header.Get("Content-Type"))
		assert.Equal(t, "yes", req.Header.Get("X-Extra"))
		return httpmock.NewJsonResponse(200, map[string]int{"sent_this_month": 1})
	})

	_, err := api.Call(context.Background(), "/emails/usage", CallOptions{
		Token:   "secret-token",
		Headers: map[string]string{"X-Extra": "yes"},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, httpmock.GetTotalCallCount())
}

func TestErrorFieldHasPriority(t *testing.T) {
	api := InitMockAPI()
	defer deactivateMock()

	mk, _ := httpmock.NewJsonResponder(400, map[string]string{"error": "invalid credentials", "message": "ignored"})
	httpmock.RegisterResponder("POST", url+"/login", mk)

	_, err := api.Call(context.Background(), "/login", CallOptions{Method: http.MethodPost, SilenceErrors: true})
	require.Error(t, err)
	var apiErr *types.ApiError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, 400, apiErr.Code)
	assert.Equal(t, "invalid credentials", err.Error())
}

func TestMessageFieldFallback(t *testing.T) {
	api := InitMockAPI()
	defer deactivateMock()

	mk, _ := httpmock.NewJsonResponder(403, map[string]string{"message": "forbidden area"})
	httpmock.RegisterResponder("GET", url+"/admin/users", mk)

	_, err := api.Call(context.Background(), "/admin/users", CallOptions{SilenceErrors: true})
	require.Error(t, err)
	assert.Equal(t, "forbidden area", err.Error())
}

func TestPlainTextError(t *testing.T) {
	api := InitMockAPI()
	defer deactivateMock()

	httpmock.RegisterResponder("GET", url+"/domains", httpmock.NewStringResponder(500, "database is down\n"))

	_, err := api.Call(context.Background(), "/domains", CallOptions{SilenceErrors: true})
	require.Error(t, err)
	assert.Equal(t, "database is down", err.Error())
}

func TestJSONStringError(t *testing.T) {
	api := InitMockAPI()
	defer deactivateMock()

	mk, _ := httpmock.NewJsonResponder(429, "Quota exceeded")
	httpmock.RegisterResponder("POST", url+"/scheduleEmails", mk)

	_, err := api.Call(context.Background(), "/scheduleEmails", CallOptions{Method: http.MethodPost, SilenceErrors: true})
	require.Error(t, err)
	var apiErr *types.ApiError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, 429, apiErr.Code)
	assert.Equal(t, "Quota exceeded", err.Error())
}

func TestSynthesizedError(t *testing.T) {
	api := InitMockAPI()
	defer deactivateMock()

	httpmock.RegisterResponder("GET", url+"/domains", httpmock.NewStringResponder(502, ""))
	_, err := api.Call(context.Background(), "/domains", CallOptions{SilenceErrors: true})
	require.Error(t, err)
	assert.Equal(t, "Server Error: 502 Bad Gateway", err.Error())

	// structured body without error/message
	mk, _ := httpmock.NewJsonResponder(404, map[string]string{"detail": "x"})
	httpmock.RegisterResponder("GET", url+"/emails/logs", mk)
	_, err = api.Call(context.Background(), "/emails/logs", CallOptions{SilenceErrors: true})
	require.Error(t, err)
	assert.Equal(t, "Server Error: 404 Not Found", err.Error())
}

func TestNetworkError(t *testing.T) {
	api := InitMockAPI()
	defer deactivateMock()

	httpmock.RegisterResponder("GET", url+"/health", httpmock.NewErrorResponder(errors.New("dial tcp 10.0.0.1:443: connect: connection refused")))

	_, err := api.Call(context.Background(), "/health", CallOptions{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, types.ErrNetwork))
	assert.Equal(t, types.NetworkErrorMessage, err.Error())
	assert.NotContains(t, err.Error(), "connection refused")
}

func TestCancelledContextIsNotANetworkError(t *testing.T) {
	api := InitMockAPI()
	defer deactivateMock()

	ctx, cancel := context.WithCancel(context.Background())
	httpmock.RegisterResponder("GET", url+"/health", func(req *http.Request) (*http.Response, error) {
		cancel()
		<-req.Context().Done()
		return nil, req.Context().Err()
	})

	_, err := api.Call(ctx, "/health", CallOptions{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled))
	assert.False(t, errors.Is(err, types.ErrNetwork))
}

func TestPathAndQueryParams(t *testing.T) {
	api := InitMockAPI()
	defer deactivateMock()

	httpmock.RegisterResponder("DELETE", url+"/emails/logs/42", httpmock.NewStringResponder(204, ""))
	mk, _ := httpmock.NewJsonResponder(200, map[string]string{"domain": "acme.com", "status": "pending"})
	httpmock.RegisterResponder("GET", url+"/domains/check-status?domain=acme.com", mk)

	_, err := api.Call(context.Background(), "/emails/logs/{id}", CallOptions{
		Method:     http.MethodDelete,
		PathParams: map[string]string{"id": "42"},
	})
	require.NoError(t, err)

	var out types.DomainVerification
	err = api.CallJSON(context.Background(), "/domains/check-status", CallOptions{
		QueryParams: map[string]string{"domain": "acme.com"},
	}, &out)
	require.NoError(t, err)
	assert.Equal(t, "pending", out.Status)
}
