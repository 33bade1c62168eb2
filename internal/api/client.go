// Package api is the REST client for the storefront backend. Every durable
// state change (cart, orders, users, discounts) goes through here; the client
// attaches the bearer token when one is present and maps authentication
// rejections to ErrLoginRequired so callers can prompt re-login.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/sony/gobreaker/v2"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"golang.org/x/sync/singleflight"
	"golang.org/x/time/rate"
)

// ErrLoginRequired distinguishes "the server wants credentials" from generic
// request failures, so the caller can prompt for login instead of showing an
// opaque error.
var ErrLoginRequired = errors.New("login required")

// Error carries a non-2xx backend response.
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("backend returned %d: %s", e.Status, e.Message)
}

// TokenSource supplies the current bearer token, or "" when the visitor is
// unauthenticated.
type TokenSource interface {
	Token(ctx context.Context) string
}

// StaticToken is a fixed-token TokenSource for tests and scripts.
type StaticToken string

func (s StaticToken) Token(context.Context) string { return string(s) }

type Config struct {
	BaseURL           string
	Timeout           time.Duration
	RequestsPerSecond float64
}

// Client wraps the backend HTTP API. Outgoing requests are rate limited and
// pass through a circuit breaker so a struggling backend is not hammered.
type Client struct {
	baseURL string
	http    *http.Client
	tokens  TokenSource
	timeout time.Duration
	limiter *rate.Limiter
	breaker *gobreaker.CircuitBreaker[wireResponse]
	sfg     singleflight.Group // dedupes concurrent cart summary reads
}

// wireResponse is what crosses the circuit breaker: status and raw body.
// Returning an error for 5xx responses lets the breaker count them as
// failures even though the transport succeeded.
type wireResponse struct {
	status int
	body   []byte
}

var errServerFailure = errors.New("server failure")

func New(cfg Config, tokens TokenSource) *Client {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	if cfg.RequestsPerSecond <= 0 {
		cfg.RequestsPerSecond = 20
	}

	settings := gobreaker.Settings{
		Name:    "storefront-backend",
		Timeout: 15 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
	}

	burst := int(cfg.RequestsPerSecond * 2)
	if burst < 1 {
		burst = 1
	}

	return &Client{
		baseURL: cfg.BaseURL,
		http: &http.Client{
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		tokens:  tokens,
		timeout: cfg.Timeout,
		limiter: rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), burst),
		breaker: gobreaker.NewCircuitBreaker[wireResponse](settings),
	}
}

// do issues one request and returns the raw response body. Authentication
// rejections come back wrapped around ErrLoginRequired.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body any) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter: %w", err)
	}

	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reqBody io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request body: %w", err)
		}
		reqBody = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := c.tokens.Token(ctx); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	res, err := c.breaker.Execute(func() (wireResponse, error) {
		resp, doErr := c.http.Do(req)
		if doErr != nil {
			return wireResponse{}, doErr
		}
		defer resp.Body.Close()

		data, readErr := io.ReadAll(resp.Body)
		if readErr != nil {
			return wireResponse{}, fmt.Errorf("failed to read response: %w", readErr)
		}

		wr := wireResponse{status: resp.StatusCode, body: data}
		if resp.StatusCode >= http.StatusInternalServerError {
			return wr, errServerFailure
		}
		return wr, nil
	})
	if err != nil && !errors.Is(err, errServerFailure) {
		return nil, fmt.Errorf("%s %s: %w", method, path, err)
	}

	switch {
	case res.status == http.StatusUnauthorized:
		return nil, fmt.Errorf("%s: %w", errorMessage(res.body, "unauthorized"), ErrLoginRequired)
	case res.status >= http.StatusBadRequest:
		return nil, &Error{Status: res.status, Message: errorMessage(res.body, http.StatusText(res.status))}
	}
	return res.body, nil
}

// errorMessage pulls the backend's message field out of an error body,
// falling back when the body is not the expected JSON.
func errorMessage(body []byte, fallback string) string {
	var payload struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &payload); err == nil && payload.Message != "" {
		return payload.Message
	}
	return fallback
}

// envelope is the backend's standard response wrapper. Cart endpoints return
// their DTO bare; everything else goes through this.
type envelope[T any] struct {
	Success    bool        `json:"success"`
	Message    string      `json:"message"`
	Data       T           `json:"data"`
	Pagination *Pagination `json:"pagination"`
}

type Pagination struct {
	PageNumber    int   `json:"pageNumber"`
	PageSize      int   `json:"pageSize"`
	TotalElements int64 `json:"totalElements"`
	TotalPages    int   `json:"totalPages"`
	First         bool  `json:"first"`
	Last          bool  `json:"last"`
	HasNext       bool  `json:"hasNext"`
	HasPrevious   bool  `json:"hasPrevious"`
}

// requestBare decodes a response that is the DTO itself.
func requestBare[T any](ctx context.Context, c *Client, method, path string, query url.Values, body any) (T, error) {
	var out T
	data, err := c.do(ctx, method, path, query, body)
	if err != nil {
		return out, err
	}
	if len(data) == 0 {
		return out, nil
	}
	if err := json.Unmarshal(data, &out); err != nil {
		return out, fmt.Errorf("failed to decode response: %w", err)
	}
	return out, nil
}

// requestData decodes an enveloped response and returns its data field.
func requestData[T any](ctx context.Context, c *Client, method, path string, query url.Values, body any) (T, error) {
	env, err := requestBare[envelope[T]](ctx, c, method, path, query, body)
	return env.Data, err
}

// requestPaged is requestData for list endpoints that carry pagination
// metadata.
func requestPaged[T any](ctx context.Context, c *Client, method, path string, query url.Values) ([]T, *Pagination, error) {
	env, err := requestBare[envelope[[]T]](ctx, c, method, path, query, nil)
	if err != nil {
		return nil, nil, err
	}
	return env.Data, env.Pagination, nil
}
