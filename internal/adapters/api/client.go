package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/andrescamacho/homestead-go/internal/application/mediator"
	"github.com/andrescamacho/homestead-go/internal/domain/shared"
)

const (
	defaultTimeout     = 30 * time.Second
	defaultMaxRetries  = 3
	defaultBackoffBase = 500 * time.Millisecond
)

// Client sends mediator requests to a running homestead server. It satisfies the same
// Send signature as the mediator, so callers can switch between local and remote play.
type Client struct {
	httpClient  *http.Client
	rateLimiter *rate.Limiter
	breaker     *circuitBreaker
	baseURL     string
	actor       string
	maxRetries  int
	backoffBase time.Duration
	sleep       func(time.Duration)
}

// ClientOption customizes a Client
type ClientOption func(*Client)

// WithRetries sets the retry budget and the first backoff delay
func WithRetries(maxRetries int, backoffBase time.Duration) ClientOption {
	return func(c *Client) {
		c.maxRetries = maxRetries
		c.backoffBase = backoffBase
	}
}

// WithSleep replaces the backoff sleep, for tests
func WithSleep(sleep func(time.Duration)) ClientOption {
	return func(c *Client) { c.sleep = sleep }
}

// WithHTTPClient replaces the underlying HTTP client
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) { c.httpClient = hc }
}

// NewClient creates a client acting as actor against baseURL.
// Rate limit: 10 requests per second with burst of 10.
func NewClient(baseURL, actor string, clock shared.Clock, opts ...ClientOption) *Client {
	c := &Client{
		httpClient:  &http.Client{Timeout: defaultTimeout},
		rateLimiter: rate.NewLimiter(rate.Limit(10), 10),
		breaker:     newCircuitBreaker(5, 30*time.Second, clock),
		baseURL:     strings.TrimRight(baseURL, "/"),
		actor:       actor,
		maxRetries:  defaultMaxRetries,
		backoffBase: defaultBackoffBase,
		sleep:       time.Sleep,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Send posts request as its wire operation and decodes the typed response
func (c *Client) Send(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	op, err := OperationFor(request)
	if err != nil {
		return nil, err
	}
	response := op.NewResponse()
	if err := c.do(ctx, op, request, response); err != nil {
		return nil, err
	}
	return response, nil
}

func (c *Client) do(ctx context.Context, op Operation, body, result interface{}) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed to marshal request body: %w", err)
	}
	url := c.baseURL + "/v1/ops/" + op.Name

	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if attempt > 0 {
			if ctx.Err() != nil {
				return fmt.Errorf("context cancelled: %w", ctx.Err())
			}
			c.sleep(c.backoff(attempt-1, lastErr))
		}
		if err := c.rateLimiter.Wait(ctx); err != nil {
			return fmt.Errorf("rate limiter error: %w", err)
		}
		if err := c.breaker.allow(); err != nil {
			return err
		}

		retry, err := c.attempt(ctx, url, op, payload, result)
		_, transport := err.(*retryableError)
		c.breaker.record(transport)
		if err == nil {
			return nil
		}
		if !retry {
			return err
		}
		lastErr = err
	}
	return fmt.Errorf("max retries exceeded: %w", lastErr)
}

// attempt performs one round trip and reports whether a failure may be retried.
// A command whose connection broke mid-flight may have committed, so only queries retry
// transport errors.
func (c *Client) attempt(ctx context.Context, url string, op Operation, payload []byte, result interface{}) (bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return false, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(ActorHeader, c.actor)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return !op.Command, &retryableError{message: fmt.Sprintf("network error: %v", err)}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return false, fmt.Errorf("failed to read response: %w", err)
	}

	switch {
	case resp.StatusCode == http.StatusTooManyRequests:
		return true, &retryableError{message: "rate limited (429)", retryAfter: retryAfter(resp)}
	case resp.StatusCode >= 500:
		return true, &retryableError{message: fmt.Sprintf("server error (%d): %s", resp.StatusCode, decodeError(respBody).Error)}
	case resp.StatusCode >= 400:
		return false, rejection(resp.StatusCode, respBody)
	}

	if err := json.Unmarshal(respBody, result); err != nil {
		return false, fmt.Errorf("failed to unmarshal response: %w", err)
	}
	return false, nil
}

// backoff doubles per attempt with 50%..150% jitter, unless the server named a delay
func (c *Client) backoff(attempt int, lastErr error) time.Duration {
	if re, ok := lastErr.(*retryableError); ok && re.retryAfter > 0 {
		return re.retryAfter
	}
	d := c.backoffBase * time.Duration(1<<attempt)
	return time.Duration(float64(d) * (0.5 + rand.Float64()))
}

// rejection rebuilds the game's error so callers can branch on its kind
func rejection(status int, body []byte) error {
	eb := decodeError(body)
	kind := shared.ErrorKind(eb.Kind)
	if kind == "" {
		kind = kindForStatus(status)
	}
	if kind == "" {
		return fmt.Errorf("API error (status %d): %s", status, eb.Error)
	}
	return shared.NewDomainError(kind, eb.Error)
}

func decodeError(body []byte) ErrorBody {
	var eb ErrorBody
	if err := json.Unmarshal(body, &eb); err != nil || eb.Error == "" {
		eb.Error = strings.TrimSpace(string(body))
	}
	return eb
}

func retryAfter(resp *http.Response) time.Duration {
	if raw := resp.Header.Get("Retry-After"); raw != "" {
		if seconds, err := strconv.Atoi(raw); err == nil {
			return time.Duration(seconds) * time.Second
		}
	}
	return 0
}

// retryableError represents an error that should trigger a retry
type retryableError struct {
	message    string
	retryAfter time.Duration
}

func (e *retryableError) Error() string {
	return e.message
}
