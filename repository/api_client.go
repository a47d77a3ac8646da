package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-kit/log/level"
	"github.com/go-resty/resty/v2"
	"github.com/mailio/go-campaign-console/global"
	"github.com/mailio/go-campaign-console/metrics"
	"github.com/mailio/go-campaign-console/types"
)

// CallOptions of a single API call. Headers are merged with the default JSON headers.
type CallOptions struct {
	Method      string
	Body        interface{}
	Headers     map[string]string
	Token       string
	PathParams  map[string]string
	QueryParams map[string]string
	// SilenceErrors skips the diagnostic error log (used by the admin probe)
	SilenceErrors bool
}

// Response is the normalized body of a call: JSON when the server declared
// application/json, plain text otherwise
type Response struct {
	StatusCode int
	Body       []byte
	IsJSON     bool
}

// Decode unmarshals a JSON body into v
func (r *Response) Decode(v interface{}) error {
	if !r.IsJSON {
		return fmt.Errorf("expected a JSON response, got: %s", r.Text())
	}
	if err := json.Unmarshal(r.Body, v); err != nil {
		return fmt.Errorf("%s cannot be mapped to the given object: %w", r.Body, err)
	}
	return nil
}

func (r *Response) Text() string {
	return string(r.Body)
}

// Value returns the parsed body: a generic JSON value or a string
func (r *Response) Value() (interface{}, error) {
	if !r.IsJSON {
		return r.Text(), nil
	}
	if len(r.Body) == 0 {
		return nil, nil
	}
	var v interface{}
	if err := json.Unmarshal(r.Body, &v); err != nil {
		return nil, err
	}
	return v, nil
}

// APIClient is the single access point to the remote campaign API.
// No retries and no caching; the timeout is whatever was configured (0 = none).
type APIClient struct {
	client  *resty.Client
	baseURL string
}

func NewAPIClient(baseURL string, timeout time.Duration, userAgent string) *APIClient {
	cl := resty.New().SetBaseURL(baseURL).SetTimeout(timeout)
	cl.SetHeader("Content-Type", "application/json")
	cl.SetHeader("Accept", "application/json")
	if userAgent != "" {
		cl.SetHeader("User-Agent", userAgent)
	}
	cl.SetLogger(&restyLogger{})

	return &APIClient{client: cl, baseURL: baseURL}
}

// Call executes endpoint (relative to the base URL) and returns the parsed body.
// Non-2xx responses return *types.ApiError, transport failures *types.NetworkError.
func (c *APIClient) Call(ctx context.Context, endpoint string, opts CallOptions) (*Response, error) {
	method := opts.Method
	if method == "" {
		method = http.MethodGet
	}

	req := c.client.R().SetContext(ctx)
	for k, v := range opts.Headers {
		req.SetHeader(k, v)
	}
	if opts.Token != "" {
		req.SetAuthToken(opts.Token)
	}
	if len(opts.PathParams) > 0 {
		req.SetPathParams(opts.PathParams)
	}
	if len(opts.QueryParams) > 0 {
		req.SetQueryParams(opts.QueryParams)
	}
	size := 0
	if opts.Body != nil {
		body, err := marshalBody(opts.Body)
		if err != nil {
			return nil, err
		}
		size = len(body)
		req.SetBody(body)
	}

	start := time.Now()
	resp, err := req.Execute(method, endpoint)
	if err != nil {
		metrics.ObserveCall(method, endpoint, 0, time.Since(start), size)
		if ctxErr := ctx.Err(); ctxErr != nil && errors.Is(err, ctxErr) {
			return nil, ctxErr
		}
		if !opts.SilenceErrors {
			level.Error(global.Logger).Log("msg", "API call failed", "method", method, "endpoint", endpoint, "err", err)
		}
		return nil, &types.NetworkError{Err: err}
	}
	metrics.ObserveCall(method, endpoint, resp.StatusCode(), resp.Time(), size)

	out := &Response{
		StatusCode: resp.StatusCode(),
		Body:       resp.Body(),
		IsJSON:     strings.Contains(resp.Header().Get("Content-Type"), "application/json"),
	}
	if !resp.IsSuccess() {
		apiErr := handleError(out)
		if !opts.SilenceErrors {
			level.Error(global.Logger).Log("msg", "API call failed", "method", method, "endpoint", endpoint, "status", out.StatusCode, "err", apiErr.Message)
		}
		return out, apiErr
	}
	return out, nil
}

// CallJSON is Call followed by decoding the JSON body into out (out may be nil)
func (c *APIClient) CallJSON(ctx context.Context, endpoint string, opts CallOptions, out interface{}) error {
	resp, err := c.Call(ctx, endpoint, opts)
	if err != nil {
		return err
	}
	if out == nil || len(resp.Body) == 0 {
		return nil
	}
	return resp.Decode(out)
}

// returns the base URL of the API
func (c *APIClient) BaseURL() string {
	return c.baseURL
}

// returns a resty client
func (c *APIClient) GetClient() *resty.Client {
	return c.client
}

func marshalBody(body interface{}) ([]byte, error) {
	switch b := body.(type) {
	case []byte:
		return b, nil
	case string:
		return []byte(b), nil
	case json.RawMessage:
		return b, nil
	}
	data, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request body: %w", err)
	}
	return data, nil
}

// routes resty's own warnings into the console logger
type restyLogger struct{}

func (l *restyLogger) Errorf(format string, v ...interface{}) {
	level.Error(global.Logger).Log("msg", fmt.Sprintf(format, v...), "component", "resty")
}

func (l *restyLogger) Warnf(format string, v ...interface{}) {
	level.Warn(global.Logger).Log("msg", fmt.Sprintf(format, v...), "component", "resty")
}

func (l *restyLogger) Debugf(format string, v ...interface{}) {
	level.Debug(global.Logger).Log("msg", fmt.Sprintf(format, v...), "component", "resty")
}
