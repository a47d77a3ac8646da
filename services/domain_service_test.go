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

const domainsJSON = `{"domains": [{"domain": "acme.com", "status": "pending", "provider": "ses"}]}`

func TestRequestVerificationPublicDomain(t *testing.T) {
	api := InitMockAPI()
	defer deactivateMock()

	domains := NewDomainService(api, loggedIn())
	_, err := domains.RequestVerification(context.Background(), "user@gmail.com")
	assert.ErrorIs(t, err, types.ErrPublicDomain)
	assert.Equal(t, 0, httpmock.GetTotalCallCount())
}

func TestRequestVerificationCustomDomain(t *testing.T) {
	api := InitMockAPI()
	defer deactivateMock()

	var sent map[string]interface{}
	captureBody("POST", "/domains/request-verification", 200, `{
		"domain": "customdomain.com",
		"status": "verification_required",
		"dns_records": {
			"txt": {"name": "_verify.customdomain.com", "value": "token-123"},
			"dkim": [{"name": "k1._domainkey.customdomain.com", "value": "k1.dkim.example.net"}]
		}}`, &sent)

	domains := NewDomainService(api, loggedIn())
	verification, err := domains.RequestVerification(context.Background(), "user@customdomain.com")
	require.NoError(t, err)
	assert.Equal(t, 1, callCount("POST", "/domains/request-verification"))
	assert.Equal(t, "customdomain.com", sent["domain"])
	assert.Equal(t, "user@customdomain.com", sent["email"])

	assert.False(t, verification.IsVerified())
	require.NotNil(t, domains.Records())
	assert.Equal(t, []string{
		"_verify.customdomain.com.\tIN\tTXT\t\"token-123\"",
		"k1._domainkey.customdomain.com.\tIN\tCNAME\tk1.dkim.example.net",
	}, domains.FormattedRecords())
}

func TestRequestVerificationAlreadyVerified(t *testing.T) {
	api := InitMockAPI()
	defer deactivateMock()

	mk, _ := httpmock.NewJsonResponder(200, map[string]string{"domain": "acme.com", "status": "verified"})
	httpmock.RegisterResponder("POST", url+"/domains/request-verification", mk)
	httpmock.RegisterResponder("GET", url+"/domains", jsonResponder(200, `[{"domain": "acme.com", "status": "verified"}]`))

	domains := NewDomainService(api, loggedIn())
	verification, err := domains.RequestVerification(context.Background(), "acme.com")
	require.NoError(t, err)
	assert.True(t, verification.IsVerified())
	assert.Nil(t, domains.Records())
	assert.Equal(t, 1, callCount("GET", "/domains"))
	require.Len(t, domains.Domains(), 1)
	assert.Equal(t, types.DomainStatusVerified, domains.Domains()[0].Status)
}

func TestDomainsRefreshAndCheckStatus(t *testing.T) {
	api := InitMockAPI()
	defer deactivateMock()

	httpmock.RegisterResponder("GET", url+"/domains", jsonResponder(200, domainsJSON))
	mk, _ := httpmock.NewJsonResponder(200, map[string]string{"domain": "acme.com", "status": "verified"})
	httpmock.RegisterResponder("GET", url+"/domains/check-status?domain=acme.com", mk)

	domains := NewDomainService(api, loggedIn())
	list, err := domains.Refresh(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "pending", list[0].Status)

	verification, err := domains.CheckStatus(context.Background(), "ACME.com")
	require.NoError(t, err)
	assert.True(t, verification.IsVerified())
	assert.Equal(t, types.DomainStatusVerified, domains.Domains()[0].Status)
}

func TestDeleteDomainDeclined(t *testing.T) {
	api := InitMockAPI()
	defer deactivateMock()

	err := NewDomainService(api, loggedIn()).Delete(context.Background(), "acme.com", declineAll())
	assert.ErrorIs(t, err, types.ErrNotConfirmed)
	assert.Equal(t, 0, httpmock.GetTotalCallCount())
}

func TestDeleteDomain(t *testing.T) {
	api := InitMockAPI()
	defer deactivateMock()

	var deleted map[string]interface{}
	httpmock.RegisterResponder("DELETE", url+"/domains", func(req *http.Request) (*http.Response, error) {
		body, _ := io.ReadAll(req.Body)
		_ = json.Unmarshal(body, &deleted)
		return httpmock.NewJsonResponse(200, map[string]string{"message": "deleted"})
	})
	httpmock.RegisterResponder("GET", url+"/domains", jsonResponder(200, `{"domains": []}`))

	var question string
	confirmer := ConfirmFunc(func(ctx context.Context, message string) (bool, error) {
		question = message
		return true, nil
	})
	domains := NewDomainService(api, loggedIn())
	require.NoError(t, domains.Delete(context.Background(), "acme.com", confirmer))
	assert.Contains(t, question, "acme.com")
	assert.Equal(t, "acme.com", deleted["domain"])
	assert.Equal(t, 1, callCount("GET", "/domains"))
	assert.Empty(t, domains.Domains())
}

func TestDeleteDomainFailure(t *testing.T) {
	api := InitMockAPI()
	defer deactivateMock()

	httpmock.RegisterResponder("GET", url+"/domains", jsonResponder(200, domainsJSON))
	mk, _ := httpmock.NewJsonResponder(500, map[string]string{"error": "cannot delete"})
	httpmock.RegisterResponder("DELETE", url+"/domains", mk)

	domains := NewDomainService(api, loggedIn())
	_, err := domains.Refresh(context.Background())
	require.NoError(t, err)

	err = domains.Delete(context.Background(), "acme.com", AlwaysConfirm)
	assert.EqualError(t, err, "cannot delete")
	// list untouched, no re-fetch
	assert.Len(t, domains.Domains(), 1)
	assert.Equal(t, 1, callCount("GET", "/domains"))
}
