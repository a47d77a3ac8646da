package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/go-kit/log/level"
	"github.com/lestrrat-go/jwx/v2/jwt"
	"github.com/mailio/go-campaign-console/global"
	"github.com/mailio/go-campaign-console/repository"
	"github.com/mailio/go-campaign-console/types"
)

type AuthState int

const (
	AuthLogin AuthState = iota
	AuthSignupRequestOTP
	AuthSignupComplete
)

func (s AuthState) String() string {
	switch s {
	case AuthLogin:
		return "login"
	case AuthSignupRequestOTP:
		return "signup-request-otp"
	case AuthSignupComplete:
		return "signup-complete"
	}
	return "unknown"
}

const adminRole = "admin"

// AuthService drives login and the two step signup
type AuthService struct {
	inFlight
	api               *repository.APIClient
	signupReturnDelay time.Duration

	mu          sync.Mutex
	state       AuthState
	signupEmail string
	returnTimer *time.Timer
}

func NewAuthService(api *repository.APIClient, conf global.AuthConfig) *AuthService {
	return &AuthService{api: api, signupReturnDelay: conf.SignupReturnDelay, state: AuthLogin}
}

func (s *AuthService) State() AuthState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// SignupEmail is the email an OTP was requested for
func (s *AuthService) SignupEmail() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.signupEmail
}

func (s *AuthService) setState(state AuthState) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = state
	if s.returnTimer != nil {
		s.returnTimer.Stop()
		s.returnTimer = nil
	}
}

func (s *AuthService) SwitchToSignup() {
	s.setState(AuthSignupRequestOTP)
}

func (s *AuthService) SwitchToLogin() {
	s.setState(AuthLogin)
}

// Back goes one signup step back
func (s *AuthService) Back() {
	switch s.State() {
	case AuthSignupComplete:
		s.setState(AuthSignupRequestOTP)
	default:
		s.setState(AuthLogin)
	}
}

// Login authenticates and derives the admin flag. The flag comes from the login
// response or the token claims; only when neither carries it an admin-only
// endpoint is probed.
func (s *AuthService) Login(ctx context.Context, email, password string) (*types.Session, error) {
	if err := s.begin(); err != nil {
		return nil, err
	}
	defer s.end()

	input := types.InputEmailPassword{Email: strings.TrimSpace(email), Password: password}
	if err := validateInput(input); err != nil {
		return nil, err
	}

	var loginResp types.LoginResponse
	err := s.api.CallJSON(ctx, "/login", repository.CallOptions{Method: http.MethodPost, Body: input}, &loginResp)
	if err != nil {
		var apiErr *types.ApiError
		if errors.As(err, &apiErr) && isPendingApproval(apiErr.Message) {
			return nil, fmt.Errorf("%w: %s", types.ErrPendingApproval, apiErr.Message)
		}
		return nil, err
	}
	token := loginResp.BearerToken()
	if token == "" {
		return nil, errors.New("login succeeded but no token was returned")
	}

	session := &types.Session{Token: token, Email: input.Email}
	claims := readClaims(token)
	if claims != nil && !claims.Expiration().IsZero() {
		exp := claims.Expiration()
		session.ExpiresAt = &exp
	}
	if isAdmin, ok := adminFromResponse(&loginResp); ok {
		session.IsAdmin = isAdmin
	} else if isAdmin, ok := adminFromClaims(claims); ok {
		session.IsAdmin = isAdmin
	} else {
		session.IsAdmin = s.probeAdmin(ctx, token)
	}
	s.setState(AuthLogin)
	level.Info(global.Logger).Log("msg", "logged in", "email", session.Email, "admin", session.IsAdmin)
	return session, nil
}

// probeAdmin calls an admin-only endpoint; any failure means non-admin
func (s *AuthService) probeAdmin(ctx context.Context, token string) bool {
	_, err := s.api.Call(ctx, "/admin/users", repository.CallOptions{Token: token, SilenceErrors: true})
	return err == nil
}

// RequestOTP is the first signup step
func (s *AuthService) RequestOTP(ctx context.Context, email string) (string, error) {
	if err := s.begin(); err != nil {
		return "", err
	}
	defer s.end()

	input := types.InputSignupRequest{Email: strings.TrimSpace(email)}
	if err := validateInput(input); err != nil {
		return "", err
	}
	message, err := callMessage(ctx, s.api, "/signup", repository.CallOptions{Method: http.MethodPost, Body: input})
	if err != nil {
		return "", err
	}
	s.setState(AuthSignupComplete)
	s.mu.Lock()
	s.signupEmail = input.Email
	s.mu.Unlock()
	return message, nil
}

// CompleteSignup is the second signup step. On success the flow returns to login
// after the configured delay; there is no automatic login.
func (s *AuthService) CompleteSignup(ctx context.Context, input types.InputSignupComplete) (string, error) {
	if err := s.begin(); err != nil {
		return "", err
	}
	defer s.end()

	if input.Email == "" {
		input.Email = s.SignupEmail()
	}
	input.Email = strings.TrimSpace(input.Email)
	input.OTP = strings.TrimSpace(input.OTP)
	if err := validateInput(input); err != nil {
		return "", err
	}
	message, err := callMessage(ctx, s.api, "/verify-signup-otp", repository.CallOptions{Method: http.MethodPost, Body: input})
	if err != nil {
		return "", err
	}
	if message == "" {
		message = "Account created. Your account will be active once an administrator approves it."
	}

	s.mu.Lock()
	s.signupEmail = ""
	s.returnTimer = time.AfterFunc(s.signupReturnDelay, func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		s.state = AuthLogin
		s.returnTimer = nil
	})
	s.mu.Unlock()
	return message, nil
}

// SignupReturnDelay is how long the signup confirmation is displayed
func (s *AuthService) SignupReturnDelay() time.Duration {
	return s.signupReturnDelay
}

func isPendingApproval(message string) bool {
	m := strings.ToLower(message)
	return strings.Contains(m, "pending") && (strings.Contains(m, "approv") || strings.Contains(m, "admin"))
}

func adminFromResponse(resp *types.LoginResponse) (bool, bool) {
	if resp.IsAdmin != nil {
		return *resp.IsAdmin, true
	}
	if resp.Role != "" {
		return strings.EqualFold(resp.Role, adminRole), true
	}
	return false, false
}

// readClaims parses a JWT without verifying it. Opaque tokens return nil.
func readClaims(token string) jwt.Token {
	tok, err := jwt.ParseString(token, jwt.WithVerify(false), jwt.WithValidate(false))
	if err != nil {
		return nil
	}
	return tok
}

func adminFromClaims(tok jwt.Token) (bool, bool) {
	if tok == nil {
		return false, false
	}
	if v, ok := tok.Get("is_admin"); ok {
		if b, isBool := v.(bool); isBool {
			return b, true
		}
	}
	if v, ok := tok.Get("role"); ok {
		if role, isString := v.(string); isString && role != "" {
			return strings.EqualFold(role, adminRole), true
		}
	}
	return false, false
}
