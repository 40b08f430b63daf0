// Package backend is the live transport to the restaurant REST backend.
//
// Requests are plain verb/path/JSON. 2xx answers decode into domain entities;
// error answers carry { "error": string } and are mapped onto the errs taxonomy:
//   - no response, a 5xx status or an undecodable body: errs.NetworkError
//   - 404: errs.ObjectNotFoundError
//   - any other 4xx: errs.ValueIsInvalidError with the backend message
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"restaurantops/internal/pkg/errs"
)

const (
	// HealthPath is probed to decide whether the backend is reachable.
	HealthPath = "/api/health"

	// DefaultAPIPrefix is prepended to order and delivery paths.
	DefaultAPIPrefix = "/api"

	// DefaultTimeout bounds every request.
	DefaultTimeout = 10 * time.Second
)

// Client performs JSON requests against the backend.
type Client struct {
	baseURL    string
	apiPrefix  string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient creates a client for baseURL. apiPrefix is joined in front of
// order and delivery paths; reservation and health paths are absolute.
func NewClient(baseURL, apiPrefix string, timeout time.Duration, logger *slog.Logger) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if logger == nil {
		logger = slog.Default()
	}
	prefix := strings.Trim(apiPrefix, "/")
	if prefix != "" {
		prefix = "/" + prefix
	}
	return &Client{
		baseURL:   strings.TrimRight(baseURL, "/"),
		apiPrefix: prefix,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: logger.With("component", "backend-client"),
	}
}

// BaseURL returns the backend root the client talks to.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Health probes HealthPath. Any 2xx answer means the backend is connected.
func (c *Client) Health(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, HealthPath, nil, nil, nil)
}

// api joins the configured prefix with path segments, escaping each segment.
func (c *Client) api(segments ...string) string {
	return c.apiPrefix + join(segments...)
}

func join(segments ...string) string {
	var b strings.Builder
	for _, s := range segments {
		b.WriteByte('/')
		b.WriteString(url.PathEscape(s))
	}
	return b.String()
}

type errorBody struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	op := method + " " + path

	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode %s: %w", op, err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return fmt.Errorf("create request %s: %w", op, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return errs.NewNetworkErrorWithCause(op, err)
	}
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil {
			c.logger.DebugContext(ctx, "failed to close response body", "op", op, "error", closeErr)
		}
	}()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return c.statusError(op, path, resp)
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err = json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &errs.NetworkError{Op: op, StatusCode: resp.StatusCode, Cause: fmt.Errorf("decode response: %w", err)}
	}
	return nil
}

func (c *Client) statusError(op, path string, resp *http.Response) error {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))

	var eb errorBody
	message := strings.TrimSpace(string(raw))
	if json.Unmarshal(raw, &eb) == nil {
		if eb.Error != "" {
			message = eb.Error
		} else if eb.Message != "" {
			message = eb.Message
		}
	}
	if message == "" {
		message = http.StatusText(resp.StatusCode)
	}
	cause := errors.New(message)

	switch {
	case resp.StatusCode >= http.StatusInternalServerError:
		return &errs.NetworkError{Op: op, StatusCode: resp.StatusCode, Cause: cause}
	case resp.StatusCode == http.StatusNotFound:
		return errs.NewObjectNotFoundErrorWithCause("path", path, cause)
	default:
		return errs.NewValueIsInvalidErrorWithCause(op, cause)
	}
}
