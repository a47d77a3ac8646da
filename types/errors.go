package types

import (
	"errors"
	"fmt"
)

// NetworkErrorMessage is shown whenever no response was obtained from the API
const NetworkErrorMessage = "Network error: unable to reach the server. Please check your connection and try again."

var (
	// ErrNotFound is returned when a stored collection or remote resource doesn't exist
	ErrNotFound = errors.New("not found")

	// ErrInvalidEmail is returned when the email is invalid
	ErrInvalidEmail = errors.New("invalid email address")

	// ErrNetwork matches every *NetworkError (errors.Is)
	ErrNetwork = errors.New(NetworkErrorMessage)

	// ErrNotAuthenticated is returned when a privileged call is attempted without a session
	ErrNotAuthenticated = errors.New("not logged in")

	// ErrPendingApproval is returned on login when the account still waits for an admin
	ErrPendingApproval = errors.New("your account is pending admin approval")

	// ErrBusy is returned when a submit is attempted while the previous one is still in flight
	ErrBusy = errors.New("a request is already in progress")

	// ErrNotConfirmed is returned when the user declines a destructive action
	ErrNotConfirmed = errors.New("action cancelled")

	// ErrPublicDomain is returned when a public email provider is used where a custom domain is required
	ErrPublicDomain = errors.New("public email domains (gmail, yahoo, outlook, ...) cannot be verified, use your own domain")

	// campaign form validation
	ErrMissingSubjectOrBody = errors.New("subject and body are required")
	ErrNoValidReceiver      = errors.New("no valid receiver: add at least one receiver with an email and a schedule time")
	ErrMissingCSV           = errors.New("please select a CSV file")
	ErrMissingStartTime     = errors.New("start time is required")
	ErrGapOutOfRange        = errors.New("gap minutes must be between 1 and 60")
	ErrNoSender             = errors.New("add at least one sender")
	ErrSenderPassword       = errors.New("public domain senders (gmail, yahoo, outlook, ...) require a password")
	ErrInvalidTimestamp     = errors.New("invalid date/time, expected YYYY-MM-DD HH:MM")
	ErrInvalidFileType      = errors.New("only .csv files are supported")
	ErrEmptyFile            = errors.New("file is empty")
	ErrUnknownTab           = errors.New("unknown tab")
	ErrInvalidSelection     = errors.New("invalid text selection")
)

// ApiError is a failure reported by the remote API (non-2xx response)
type ApiError struct {
	// Code is the HTTP status code
	Code int `json:"code"`
	// Message is the error message extracted from the response body
	Message string `json:"message"`
}

func (e *ApiError) Error() string {
	return e.Message
}

// NetworkError wraps a transport failure. Its message is always NetworkErrorMessage,
// the underlying error is only reachable through Unwrap.
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string {
	return NetworkErrorMessage
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

func (e *NetworkError) Is(target error) bool {
	return target == ErrNetwork
}

// ValidationError is a client-side validation failure (no network call was made)
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func NewValidationError(format string, args ...interface{}) *ValidationError {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}
