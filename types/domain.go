package types

const (
	DomainStatusVerified             = "verified"
	DomainStatusPending              = "pending"
	DomainStatusVerificationRequired = "verification_required"
)

type Domain struct {
	Domain     string  `json:"domain"`
	Status     string  `json:"status"`
	Provider   string  `json:"provider,omitempty"`
	CreatedAt  string  `json:"created_at,omitempty"`
	VerifiedAt *string `json:"verified_at,omitempty"`
}

// DNSRecord is one record the user has to publish to verify a domain
type DNSRecord struct {
	Type  string `json:"type,omitempty"`
	Name  string `json:"name"`
	Value string `json:"value"`
}

// DNSRecords is the transient set returned by a verification request (one TXT, zero or more DKIM CNAMEs)
type DNSRecords struct {
	TXT  *DNSRecord  `json:"txt,omitempty"`
	DKIM []DNSRecord `json:"dkim,omitempty"`
}

// DomainVerification is the body of POST /domains/request-verification and GET /domains/check-status
type DomainVerification struct {
	Domain     string      `json:"domain"`
	Status     string      `json:"status"`
	Message    string      `json:"message,omitempty"`
	DNSRecords *DNSRecords `json:"dns_records,omitempty"`
}

func (d *DomainVerification) IsVerified() bool {
	return d.Status == DomainStatusVerified
}
