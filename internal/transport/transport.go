// Package transport performs the HTTP calls for the Notion client: pooled
// connections, a bounded retry-with-backoff loop for retryable statuses
// and transient network failures, and per-request timeouts.
//
// The package deliberately knows nothing about caches or the public error
// taxonomy. It hands back the final status code and raw body (even for
// non-2xx outcomes) and reports only transport-level failures as errors;
// classification happens in the notion package.
package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// Transport-level failure classes. These fire only when no HTTP status was
// obtained; callers match them with errors.Is.
var (
	// ErrTimeout marks a request that exceeded the configured timeout.
	ErrTimeout = errors.New("request timed out")

	// ErrConnection marks a request that failed before or during transfer
	// (DNS, refused connection, reset, malformed response).
	ErrConnection = errors.New("connection failed")
)

// Config configures the HTTP layer.
type Config struct {
	BaseURL       string
	APIKey        string
	NotionVersion string

	// Timeout bounds each request, including every retry attempt's
	// connection and body read.
	Timeout time.Duration

	// MaxRetries is the number of additional attempts after the first.
	MaxRetries int

	// RetryBackoff is the base delay between attempts; the delay grows
	// exponentially from it.
	RetryBackoff time.Duration

	// RetryableStatuses lists the HTTP status codes that trigger a retry.
	RetryableStatuses []int

	// PoolConnections and PoolMaxSize bound the idle connection pool.
	PoolConnections int
	PoolMaxSize     int

	// HTTPClient overrides the built client when set. Used by tests.
	HTTPClient *http.Client

	Logger *logrus.Logger
}

// Response is the outcome of a completed HTTP exchange.
type Response struct {
	StatusCode int
	Body       []byte
}

// Client executes requests against the Notion API.
type Client struct {
	cfg       Config
	http      *http.Client
	retryable map[int]bool
	log       *logrus.Logger
}

// New builds a Client from cfg.
func New(cfg Config) *Client {
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{
			Timeout: cfg.Timeout,
			Transport: &http.Transport{
				MaxIdleConns:        cfg.PoolConnections,
				MaxIdleConnsPerHost: cfg.PoolMaxSize,
				MaxConnsPerHost:     cfg.PoolMaxSize,
				IdleConnTimeout:     90 * time.Second,
			},
		}
	}

	log := cfg.Logger
	if log == nil {
		log = logrus.New()
		log.SetOutput(io.Discard)
	}

	retryable := make(map[int]bool, len(cfg.RetryableStatuses))
	for _, status := range cfg.RetryableStatuses {
		retryable[status] = true
	}

	return &Client{cfg: cfg, http: httpClient, retryable: retryable, log: log}
}

// retryStatusError carries a retryable-status response through the retry
// loop. If the attempt budget runs out the wrapped response is returned to
// the caller as a normal outcome.
type retryStatusError struct {
	resp *Response
}

func (e *retryStatusError) Error() string {
	return fmt.Sprintf("retryable status %d", e.resp.StatusCode)
}

// Do sends one logical request and returns the final response. Retryable
// statuses and transient transport failures are retried with exponential
// backoff up to the attempt cap; the last response is returned even when
// its status is non-2xx. An error is returned only for transport-level
// failures, wrapped with ErrTimeout or ErrConnection.
func (c *Client) Do(ctx context.Context, method, endpoint string, body any, query url.Values) (*Response, error) {
	u := strings.TrimRight(c.cfg.BaseURL, "/") + "/" + strings.TrimLeft(endpoint, "/")
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var payload []byte
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode request body: %w", err)
		}
		payload = data
	}

	requestID := uuid.NewString()
	logger := c.log.WithFields(logrus.Fields{
		"method":     method,
		"url":        u,
		"request_id": requestID,
	})
	logger.Debug("sending request")

	resp, err := retry.DoWithData(
		func() (*Response, error) {
			return c.attempt(ctx, method, u, payload, requestID)
		},
		retry.Attempts(uint(c.cfg.MaxRetries)+1),
		retry.Delay(c.cfg.RetryBackoff),
		retry.MaxDelay(30*time.Second),
		retry.DelayType(retry.BackOffDelay),
		retry.LastErrorOnly(true),
		retry.Context(ctx),
		retry.RetryIf(c.shouldRetry),
		retry.OnRetry(func(n uint, err error) {
			logger.WithFields(logrus.Fields{"attempt": n + 1, "reason": err.Error()}).Warn("retrying request")
		}),
	)
	if err != nil {
		var statusErr *retryStatusError
		if errors.As(err, &statusErr) {
			// Retry budget exhausted on a retryable status. Hand the
			// response back for classification.
			return statusErr.resp, nil
		}
		logger.WithError(err).Error("request failed")
		return nil, err
	}

	logger.WithField("status", resp.StatusCode).Debug("request completed")
	return resp, nil
}

// attempt performs a single HTTP exchange.
func (c *Client) attempt(ctx context.Context, method, u string, payload []byte, requestID string) (*Response, error) {
	var reader io.Reader
	if payload != nil {
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)
	req.Header.Set("Notion-Version", c.cfg.NotionVersion)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-Id", requestID)

	httpResp, err := c.http.Do(req)
	if err != nil {
		return nil, classifyTransportError(err)
	}
	defer httpResp.Body.Close()

	data, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, classifyTransportError(err)
	}

	resp := &Response{StatusCode: httpResp.StatusCode, Body: data}
	if c.retryable[resp.StatusCode] {
		return nil, &retryStatusError{resp: resp}
	}
	return resp, nil
}

// shouldRetry reports whether an attempt error is worth another try.
func (c *Client) shouldRetry(err error) bool {
	var statusErr *retryStatusError
	if errors.As(err, &statusErr) {
		return true
	}
	if errors.Is(err, context.Canceled) {
		return false
	}
	return errors.Is(err, ErrTimeout) || errors.Is(err, ErrConnection)
}

// CloseIdleConnections releases the pooled connections.
func (c *Client) CloseIdleConnections() {
	c.http.CloseIdleConnections()
}

// classifyTransportError maps a raw net/http failure to one of the two
// transport failure classes, keeping the original error in the chain.
func classifyTransportError(err error) error {
	if errors.Is(err, context.Canceled) {
		return err
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %v", ErrTimeout, err)
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return fmt.Errorf("%w: %v", ErrTimeout, err)
	}
	return fmt.Errorf("%w: %v", ErrConnection, err)
}
