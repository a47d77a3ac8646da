package services

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/go-playground/validator/v10"
	"github.com/mailio/go-campaign-console/repository"
	"github.com/mailio/go-campaign-console/types"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// report json field names (user_id instead of UserID)
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})
	return v
}

// ValidatorErrorToUser turns validator errors into one readable sentence
func ValidatorErrorToUser(err validator.ValidationErrors) string {
	var errorMessages []string
	for _, err := range err {
		switch err.Tag() {
		case "required":
			errorMessages = append(errorMessages, fmt.Sprintf("%s is required", err.Field()))
		case "email":
			errorMessages = append(errorMessages, fmt.Sprintf("%s is not a valid email", err.Field()))
		case "fqdn":
			errorMessages = append(errorMessages, fmt.Sprintf("%s is not a valid domain name", err.Field()))
		case "min", "gte":
			errorMessages = append(errorMessages, fmt.Sprintf("%s must be at least %s", err.Field(), err.Param()))
		case "max", "lte":
			errorMessages = append(errorMessages, fmt.Sprintf("%s must be at most %s", err.Field(), err.Param()))
		case "oneof":
			errorMessages = append(errorMessages, fmt.Sprintf("%s must be one of: %s", err.Field(), err.Param()))
		default:
			errorMessages = append(errorMessages, fmt.Sprintf("validation failed on field %s", err.Field()))
		}
	}
	return strings.Join(errorMessages, ". ")
}

// validateInput runs the struct validation and converts failures into *types.ValidationError
func validateInput(input interface{}) error {
	err := validate.Struct(input)
	if err == nil {
		return nil
	}
	var ve validator.ValidationErrors
	if errors.As(err, &ve) {
		return &types.ValidationError{Message: ValidatorErrorToUser(ve)}
	}
	return err
}

// inFlight disables resubmission while a call is running
type inFlight struct {
	busy atomic.Bool
}

func (f *inFlight) begin() error {
	if !f.busy.CompareAndSwap(false, true) {
		return types.ErrBusy
	}
	return nil
}

func (f *inFlight) end() {
	f.busy.Store(false)
}

// InFlight reports whether a submit is currently running
func (f *inFlight) InFlight() bool {
	return f.busy.Load()
}

// Confirmer asks the user to approve a destructive action described by message
type Confirmer interface {
	Confirm(ctx context.Context, message string) (bool, error)
}

// ConfirmFunc adapts a function to Confirmer
type ConfirmFunc func(ctx context.Context, message string) (bool, error)

func (f ConfirmFunc) Confirm(ctx context.Context, message string) (bool, error) {
	return f(ctx, message)
}

// AlwaysConfirm approves everything (--yes)
var AlwaysConfirm = ConfirmFunc(func(ctx context.Context, message string) (bool, error) {
	return true, nil
})

func confirm(ctx context.Context, c Confirmer, message string) error {
	if c == nil {
		return types.ErrNotConfirmed
	}
	ok, err := c.Confirm(ctx, message)
	if err != nil {
		return err
	}
	if !ok {
		return types.ErrNotConfirmed
	}
	return nil
}

// SessionHolder keeps the current session in memory. It is shared by every panel.
type SessionHolder struct {
	mu      sync.RWMutex
	session *types.Session
}

func NewSessionHolder() *SessionHolder {
	return &SessionHolder{}
}

func (h *SessionHolder) Set(session *types.Session) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.session = session
}

func (h *SessionHolder) Clear() {
	h.Set(nil)
}

// Get returns a copy of the session or nil
func (h *SessionHolder) Get() *types.Session {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if h.session == nil {
		return nil
	}
	s := *h.session
	return &s
}

// Token returns the bearer token of a valid session
func (h *SessionHolder) Token() (string, error) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if !h.session.IsValid() {
		return "", types.ErrNotAuthenticated
	}
	return h.session.Token, nil
}

// callMessage runs a call whose answer is a message, JSON ({"message": ...}) or plain text
func callMessage(ctx context.Context, api *repository.APIClient, endpoint string, opts repository.CallOptions) (string, error) {
	resp, err := api.Call(ctx, endpoint, opts)
	if err != nil {
		return "", err
	}
	if !resp.IsJSON {
		return strings.TrimSpace(resp.Text()), nil
	}
	var out types.OutputMessage
	if len(resp.Body) > 0 {
		if err := resp.Decode(&out); err != nil {
			return "", err
		}
	}
	if out.Message == "" {
		return out.Error, nil
	}
	return out.Message, nil
}
