package util

import (
	"testing"

	"github.com/mailio/go-campaign-console/types"
	"github.com/stretchr/testify/assert"
)

func TestIsPublicDomain(t *testing.T) {
	for _, email := range []string{"user@gmail.com", "USER@Yahoo.com", "a@hotmail.com", "a@outlook.com",
		"a@icloud.com", "a@aol.com", "a@live.com", "a@msn.com", "a@yahoo.co.uk", "a@mail.yahoo.com", "gmail.com"} {
		assert.True(t, IsPublicDomain(email), email)
	}
	for _, email := range []string{"user@customdomain.com", "a@gmail.acme.io", "", "a@livemail.org"} {
		assert.False(t, IsPublicDomain(email), email)
	}
}

func TestDomainOf(t *testing.T) {
	assert.Equal(t, "acme.com", DomainOf("John <John@Acme.com>"))
	assert.Equal(t, "acme.com", DomainOf("acme.com."))
	assert.Equal(t, "acme.com", DomainOf(" a@acme.com "))
}

func TestVerifiableDomain(t *testing.T) {
	_, err := VerifiableDomain("user@gmail.com")
	assert.ErrorIs(t, err, types.ErrPublicDomain)

	d, err := VerifiableDomain("user@customdomain.com")
	assert.NoError(t, err)
	assert.Equal(t, "customdomain.com", d)

	_, err = VerifiableDomain("  ")
	assert.ErrorIs(t, err, types.ErrInvalidEmail)
}

func TestFormatDNSRecords(t *testing.T) {
	lines := FormatDNSRecords(&types.DNSRecords{
		TXT: &types.DNSRecord{Name: "_verify.acme.com", Value: "token-123"},
		DKIM: []types.DNSRecord{
			{Name: "s1._domainkey.acme.com", Value: "s1.dkim.sender.net."},
			{Type: "cname", Name: "s2._domainkey.acme.com.", Value: "s2.dkim.sender.net."},
		},
	})
	assert.Equal(t, []string{
		"_verify.acme.com.\tIN\tTXT\t\"token-123\"",
		"s1._domainkey.acme.com.\tIN\tCNAME\ts1.dkim.sender.net.",
		"s2._domainkey.acme.com.\tIN\tCNAME\ts2.dkim.sender.net.",
	}, lines)
	assert.Nil(t, FormatDNSRecords(nil))
}
