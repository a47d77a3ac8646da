package services

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"sync"

	"github.com/go-kit/log/level"
	"github.com/mailio/go-campaign-console/global"
	"github.com/mailio/go-campaign-console/repository"
	"github.com/mailio/go-campaign-console/types"
	"github.com/mailio/go-campaign-console/util"
)

// DomainService manages the sender domains of the user. Status is polled manually.
type DomainService struct {
	inFlight
	api     *repository.APIClient
	session *SessionHolder

	mu      sync.RWMutex
	domains []types.Domain
	// records of the last verification request (not persisted)
	records *types.DNSRecords
}

func NewDomainService(api *repository.APIClient, session *SessionHolder) *DomainService {
	return &DomainService{api: api, session: session}
}

// Refresh lists the domains (GET /domains)
func (s *DomainService) Refresh(ctx context.Context) ([]types.Domain, error) {
	token, err := s.session.Token()
	if err != nil {
		return nil, err
	}
	resp, err := s.api.Call(ctx, "/domains", repository.CallOptions{Token: token})
	if err != nil {
		return nil, err
	}
	domains, err := repository.MapToList[types.Domain](resp, "domains", "data")
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	s.domains = domains
	s.mu.Unlock()
	return domains, nil
}

func (s *DomainService) Domains() []types.Domain {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]types.Domain{}, s.domains...)
}

// Records returns the DNS records of the last pending verification
func (s *DomainService) Records() *types.DNSRecords {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.records
}

// RequestVerification asks the API for the DNS records proving ownership of the domain
// of emailOrDomain. Public providers are refused before any call. A domain that is
// already verified refreshes the list and returns no records.
func (s *DomainService) RequestVerification(ctx context.Context, emailOrDomain string) (*types.DomainVerification, error) {
	domain, err := util.VerifiableDomain(emailOrDomain)
	if err != nil {
		return nil, err
	}
	input := types.InputDomain{Domain: domain}
	if strings.Contains(emailOrDomain, "@") {
		input.Email = strings.TrimSpace(emailOrDomain)
	}
	if err := validateInput(input); err != nil {
		return nil, err
	}

	if err := s.begin(); err != nil {
		return nil, err
	}
	defer s.end()

	token, err := s.session.Token()
	if err != nil {
		return nil, err
	}
	var verification types.DomainVerification
	err = s.api.CallJSON(ctx, "/domains/request-verification", repository.CallOptions{
		Method: http.MethodPost,
		Body:   input,
		Token:  token,
	}, &verification)
	if err != nil {
		return nil, err
	}
	if verification.Domain == "" {
		verification.Domain = domain
	}

	if verification.IsVerified() {
		verification.DNSRecords = nil
		s.mu.Lock()
		s.records = nil
		s.mu.Unlock()
		if _, rErr := s.Refresh(ctx); rErr != nil {
			level.Warn(global.Logger).Log("msg", "failed to refresh domains", "err", rErr)
		}
		return &verification, nil
	}
	s.mu.Lock()
	s.records = verification.DNSRecords
	s.mu.Unlock()
	return &verification, nil
}

// CheckStatus re-queries one domain and updates it in the list
func (s *DomainService) CheckStatus(ctx context.Context, domain string) (*types.DomainVerification, error) {
	domain = util.DomainOf(domain)
	if domain == "" {
		return nil, types.ErrInvalidEmail
	}
	token, err := s.session.Token()
	if err != nil {
		return nil, err
	}
	var verification types.DomainVerification
	err = s.api.CallJSON(ctx, "/domains/check-status", repository.CallOptions{
		Token:       token,
		QueryParams: map[string]string{"domain": domain},
	}, &verification)
	if err != nil {
		return nil, err
	}
	if verification.Domain == "" {
		verification.Domain = domain
	}
	s.mu.Lock()
	for i := range s.domains {
		if strings.EqualFold(s.domains[i].Domain, domain) && verification.Status != "" {
			s.domains[i].Status = verification.Status
		}
	}
	s.mu.Unlock()
	return &verification, nil
}

// Delete removes a domain after confirmation and refreshes the list
func (s *DomainService) Delete(ctx context.Context, domain string, confirmer Confirmer) error {
	domain = util.DomainOf(domain)
	if domain == "" {
		return types.ErrInvalidEmail
	}
	message := fmt.Sprintf("Delete domain %s? Senders on this domain can't be used until it is verified again.", domain)
	if err := confirm(ctx, confirmer, message); err != nil {
		return err
	}
	if err := s.begin(); err != nil {
		return err
	}
	defer s.end()

	token, err := s.session.Token()
	if err != nil {
		return err
	}
	_, err = s.api.Call(ctx, "/domains", repository.CallOptions{
		Method: http.MethodDelete,
		Body:   types.InputDomain{Domain: domain},
		Token:  token,
	})
	if err != nil {
		return err
	}
	if _, rErr := s.Refresh(ctx); rErr != nil {
		level.Warn(global.Logger).Log("msg", "failed to refresh domains", "err", rErr)
	}
	return nil
}

// FormattedRecords renders the records of the last verification as zone lines
func (s *DomainService) FormattedRecords() []string {
	return util.FormatDNSRecords(s.Records())
}
