package types

import "time"

// Session is held in memory only, it's never written to a Storage
type Session struct {
	Token     string
	Email     string
	IsAdmin   bool
	ExpiresAt *time.Time
}

// IsValid reports whether a token is present and not expired
func (s *Session) IsValid() bool {
	if s == nil || s.Token == "" {
		return false
	}
	if s.ExpiresAt != nil && time.Now().After(*s.ExpiresAt) {
		return false
	}
	return true
}

// LoginResponse is the body of POST /login. Role and IsAdmin are optional.
type LoginResponse struct {
	Token       string `json:"token,omitempty"`
	AccessToken string `json:"access_token,omitempty"`
	Role        string `json:"role,omitempty"`
	IsAdmin     *bool  `json:"is_admin,omitempty"`
	Message     string `json:"message,omitempty"`
}

// BearerToken returns whichever token field the server filled in
func (l *LoginResponse) BearerToken() string {
	if l.Token != "" {
		return l.Token
	}
	return l.AccessToken
}
