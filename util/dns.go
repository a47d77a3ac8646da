package util

import (
	"fmt"
	"net/mail"
	"strings"

	"github.com/mailio/go-campaign-console/types"
	"golang.org/x/net/publicsuffix"
)

// public email providers: their senders need a password and their domains can't be verified
var publicProviders = map[string]bool{
	"gmail":   true,
	"yahoo":   true,
	"outlook": true,
	"hotmail": true,
	"icloud":  true,
	"aol":     true,
	"live":    true,
	"msn":     true,
}

// PublicProviders returns the provider names (gmail, yahoo, ...)
func PublicProviders() []string {
	return []string{"gmail", "yahoo", "outlook", "hotmail", "icloud", "aol", "live", "msn"}
}

// DomainOf returns the lowercased domain of an email address, or the input
// itself when it is already a domain
func DomainOf(emailOrDomain string) string {
	s := strings.ToLower(strings.TrimSpace(emailOrDomain))
	if addr, err := mail.ParseAddress(s); err == nil {
		s = addr.Address
	}
	if at := strings.LastIndex(s, "@"); at >= 0 {
		s = s[at+1:]
	}
	return strings.TrimSuffix(s, ".")
}

// IsPublicDomain reports whether the email (or domain) belongs to a public provider.
// Matching is done on the registrable domain, so yahoo.co.uk and mail.yahoo.com are public too.
func IsPublicDomain(emailOrDomain string) bool {
	domain := DomainOf(emailOrDomain)
	if domain == "" {
		return false
	}
	registrable, err := publicsuffix.EffectiveTLDPlusOne(domain)
	if err != nil {
		registrable = domain
	}
	label := registrable
	if dot := strings.Index(registrable, "."); dot > 0 {
		label = registrable[:dot]
	}
	return publicProviders[label]
}

// SenderNeedsPassword: public provider senders authenticate with a password,
// custom domain senders are managed through the verified domain
func SenderNeedsPassword(email string) bool {
	return IsPublicDomain(email)
}

// VerifiableDomain returns the domain to verify or ErrPublicDomain
func VerifiableDomain(emailOrDomain string) (string, error) {
	domain := DomainOf(emailOrDomain)
	if domain == "" {
		return "", types.ErrInvalidEmail
	}
	if IsPublicDomain(domain) {
		return "", types.ErrPublicDomain
	}
	return domain, nil
}

// FormatDNSRecords renders verification records as zone file lines, e.g.
// _verify.acme.com.	IN	TXT	"token"
func FormatDNSRecords(records *types.DNSRecords) []string {
	if records == nil {
		return nil
	}
	lines := []string{}
	if records.TXT != nil {
		lines = append(lines, formatRecord("TXT", *records.TXT))
	}
	for _, dkim := range records.DKIM {
		lines = append(lines, formatRecord("CNAME", dkim))
	}
	return lines
}

func formatRecord(defaultType string, r types.DNSRecord) string {
	rrType := strings.ToUpper(r.Type)
	if rrType == "" {
		rrType = defaultType
	}
	name := r.Name
	if !strings.HasSuffix(name, ".") {
		name += "."
	}
	value := r.Value
	if rrType == "TXT" {
		value = fmt.Sprintf("\"%s\"", strings.Trim(value, "\""))
	}
	return fmt.Sprintf("%s\tIN\t%s\t%s", name, rrType, value)
}
