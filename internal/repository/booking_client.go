package repository

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	appErrors "github.com/noah-isme/booking-admin/pkg/errors"
	"github.com/noah-isme/booking-admin/pkg/middleware/requestid"
)

// TokenSource yields the bearer token for the caller bound to ctx. It is consulted before every call.
type TokenSource interface {
	Token(ctx context.Context) (string, error)
}

// UpstreamObserver receives timing for each booking API call.
type UpstreamObserver interface {
	ObserveUpstream(resource, method string, status int, duration time.Duration)
}

// BookingClient performs authenticated JSON calls against the remote booking API.
type BookingClient struct {
	baseURL  string
	http     *http.Client
	tokens   TokenSource
	observer UpstreamObserver
	logger   *zap.Logger
}

// NewBookingClient constructs a client whose calls time out after timeout (10s when unset).
func NewBookingClient(baseURL string, timeout time.Duration, tokens TokenSource, observer UpstreamObserver, logger *zap.Logger) *BookingClient {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &BookingClient{
		baseURL:  strings.TrimRight(baseURL, "/"),
		http:     &http.Client{Timeout: timeout},
		tokens:   tokens,
		observer: observer,
		logger:   logger,
	}
}

// WithHTTPClient swaps the transport, mainly for tests.
func (c *BookingClient) WithHTTPClient(client *http.Client) *BookingClient {
	if client != nil {
		c.http = client
	}
	return c
}

// Do sends method+path with an optional JSON body and decodes a JSON response into out (if non-nil).
func (c *BookingClient) Do(ctx context.Context, method, path string, body, out interface{}) error {
	token, err := c.tokens.Token(ctx)
	if err != nil {
		return err
	}
	if token == "" {
		return appErrors.ErrMissingToken
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to encode request body")
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to build request")
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if reqID := requestid.FromContext(ctx); reqID != "" {
		req.Header.Set(requestid.HeaderKey, reqID)
	}

	resource := resourceOf(path)
	start := time.Now()
	resp, err := c.http.Do(req)
	duration := time.Since(start)
	if err != nil {
		c.observe(resource, method, 0, duration)
		c.logger.Warn("booking api call failed",
			zap.String("method", method), zap.String("path", path), zap.Duration("latency", duration), zap.Error(err))
		return appErrors.Wrap(err, appErrors.ErrUpstream.Code, appErrors.ErrUpstream.Status, appErrors.ErrUpstream.Message)
	}
	defer resp.Body.Close()
	c.observe(resource, method, resp.StatusCode, duration)

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrUpstream.Code, appErrors.ErrUpstream.Status, "failed to read booking API response")
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.logger.Warn("booking api returned error status",
			zap.String("method", method), zap.String("path", path), zap.Int("status", resp.StatusCode), zap.Duration("latency", duration))
		return statusError(resp.StatusCode, raw)
	}

	if out == nil || len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return appErrors.Wrap(err, appErrors.ErrUpstream.Code, appErrors.ErrUpstream.Status, "unexpected booking API response")
	}
	return nil
}

func (c *BookingClient) observe(resource, method string, status int, duration time.Duration) {
	if c.observer != nil {
		c.observer.ObserveUpstream(resource, method, status, duration)
	}
}

func statusError(status int, body []byte) error {
	cause := fmt.Errorf("status %d: %s", status, truncate(string(body), 200))
	switch status {
	case http.StatusUnauthorized, http.StatusForbidden:
		return appErrors.Wrap(cause, appErrors.ErrUnauthorized.Code, appErrors.ErrUnauthorized.Status, "booking API rejected the token")
	case http.StatusNotFound:
		return appErrors.Wrap(cause, appErrors.ErrNotFound.Code, appErrors.ErrNotFound.Status, appErrors.ErrNotFound.Message)
	default:
		return appErrors.Wrap(cause, appErrors.ErrUpstream.Code, appErrors.ErrUpstream.Status, appErrors.ErrUpstream.Message)
	}
}

// itemPath joins a collection and an escaped identifier: /subject/7.
func itemPath(collection, id string) string {
	return collection + "/" + url.PathEscape(id)
}

// resourceOf keeps metric label cardinality bounded: /teacher/42 -> teacher.
func resourceOf(path string) string {
	trimmed := strings.Trim(path, "/")
	if i := strings.IndexByte(trimmed, '/'); i >= 0 {
		trimmed = trimmed[:i]
	}
	return trimmed
}

func truncate(s string, n int) string {
	s = strings.TrimSpace(s)
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
