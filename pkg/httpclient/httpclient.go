package httpclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/alimikegami/perfume-store/pkg/errs"
	"github.com/sony/gobreaker/v2"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// HttpRequest is a struct to hold request parameters
type HttpRequest struct {
	Path    string
	Method  string
	Body    []byte
	Headers map[string]string
}

// TokenSource returns the bearer token to attach, or "" when there is none.
type TokenSource func(ctx context.Context) (string, error)

// UnauthorizedHook runs whenever the remote side answers 401.
type UnauthorizedHook func(ctx context.Context)

type Client struct {
	baseURL        string
	httpClient     *http.Client
	circuitBreaker *gobreaker.CircuitBreaker[[]byte]
	token          TokenSource
	onUnauthorized UnauthorizedHook
}

type Option func(*Client)

func WithTokenSource(token TokenSource) Option {
	return func(c *Client) { c.token = token }
}

func WithUnauthorizedHook(hook UnauthorizedHook) Option {
	return func(c *Client) { c.onUnauthorized = hook }
}

func WithCircuitBreaker(cb *gobreaker.CircuitBreaker[[]byte]) Option {
	return func(c *Client) { c.circuitBreaker = cb }
}

// WithTimeout sets a client-wide timeout. Zero keeps the http.Client default (none).
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) { c.httpClient.Timeout = timeout }
}

func CreateClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// statusError carries a completed non-2xx answer through the circuit breaker.
type statusError struct {
	status int
	body   []byte
}

func (e *statusError) Error() string {
	return fmt.Sprintf("remote returned status %d", e.status)
}

// IsRemoteFault reports whether err should count against the circuit breaker.
// Answers below 500 are the remote side working as intended.
func IsRemoteFault(err error) bool {
	if err == nil {
		return false
	}

	var stErr *statusError
	if errors.As(err, &stErr) {
		return stErr.status >= http.StatusInternalServerError
	}

	return true
}

// SendRequest sends req and returns the raw body of a 2xx response. Any other
// outcome is translated into an error from pkg/errs.
func (c *Client) SendRequest(ctx context.Context, req HttpRequest) ([]byte, error) {
	send := func() ([]byte, error) {
		return c.do(ctx, req)
	}

	var (
		body []byte
		err  error
	)
	if c.circuitBreaker != nil {
		body, err = c.circuitBreaker.Execute(send)
	} else {
		body, err = send()
	}

	if err == nil {
		return body, nil
	}

	var stErr *statusError
	if errors.As(err, &stErr) {
		if stErr.status == http.StatusUnauthorized && c.onUnauthorized != nil {
			c.onUnauthorized(ctx)
		}
		return nil, errs.NewRemoteError(stErr.status, ExtractErrorMessage(stErr.body))
	}

	return nil, errs.Unavailable(err)
}

// SendJSON marshals payload as the request body and decodes the response into out.
// out may be nil when the body is not needed.
func (c *Client) SendJSON(ctx context.Context, method, path string, payload interface{}, out interface{}) error {
	req := HttpRequest{
		Path:   path,
		Method: method,
		Headers: map[string]string{
			"Accept": "application/json",
		},
	}

	if payload != nil {
		body, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		req.Body = body
		req.Headers["Content-Type"] = "application/json"
	}

	respBody, err := c.SendRequest(ctx, req)
	if err != nil {
		return err
	}

	return DecodeData(respBody, out)
}

func (c *Client) do(ctx context.Context, req HttpRequest) ([]byte, error) {
	request, err := http.NewRequestWithContext(ctx, req.Method, c.baseURL+req.Path, bytes.NewReader(req.Body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %v", err)
	}

	for key, value := range req.Headers {
		request.Header.Set(key, value)
	}

	if c.token != nil {
		token, err := c.token(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to load token: %v", err)
		}
		if token != "" {
			request.Header.Set("Authorization", "Bearer "+token)
		}
	}

	response, err := c.httpClient.Do(request)
	if err != nil {
		return nil, fmt.Errorf("request failed: %v", err)
	}
	defer response.Body.Close()

	body, err := io.ReadAll(response.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %v", err)
	}

	if response.StatusCode < 200 || response.StatusCode > 299 {
		return nil, &statusError{status: response.StatusCode, body: body}
	}

	return body, nil
}

// DecodeData unmarshals body into out, unwrapping a top-level {"data": ...}
// envelope when present.
func DecodeData(body []byte, out interface{}) error {
	if out == nil || len(bytes.TrimSpace(body)) == 0 {
		return nil
	}

	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(body, &envelope); err == nil {
		if data, ok := envelope["data"]; ok {
			body = data
		}
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("failed to decode response body: %w", err)
	}

	return nil
}

// ExtractErrorMessage pulls a human readable reason out of an error body.
// It understands {"message": "..."} and {"errors": {"field": ["..."]}}.
func ExtractErrorMessage(body []byte) string {
	var payload struct {
		Message string                     `json:"message"`
		Error   string                     `json:"error"`
		Errors  map[string]json.RawMessage `json:"errors"`
	}

	if err := json.Unmarshal(body, &payload); err != nil {
		return ""
	}

	if payload.Message != "" {
		return payload.Message
	}

	if payload.Error != "" {
		return payload.Error
	}

	for _, raw := range payload.Errors {
		var list []string
		if err := json.Unmarshal(raw, &list); err == nil && len(list) > 0 {
			return list[0]
		}
		var single string
		if err := json.Unmarshal(raw, &single); err == nil && single != "" {
			return single
		}
	}

	return ""
}
