// Package client is the HTTP transport of the console client. Each method
// performs exactly one request against the student-record API and folds the
// outcome into a record, an expected-failure sentinel (ErrNotFound,
// ErrConflict) or an *APIError.
package client

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

	"github.com/google/uuid"

	"github.com/aanand-mishra/mahasiswa/internal/config"
	"github.com/aanand-mishra/mahasiswa/internal/types"
	"github.com/aanand-mishra/mahasiswa/internal/validate"
)

const (
	defaultTimeout = 30 * time.Second
	userAgent      = "mahasiswa-cli/1.0"

	// maxErrorBody caps how much of an error response is read for its message.
	maxErrorBody = 64 << 10
)

// ErrNoBaseURL is returned by New when the configuration has no base URL.
var ErrNoBaseURL = errors.New("API base URL is not configured")

// Filter narrows List. Blank fields are not sent.
type Filter struct {
	ID   string
	Name string
}

// errorResponse mirrors the API's error envelope.
type errorResponse struct {
	Status string `json:"status"`
	Error  string `json:"error"`
}

// Client is the HTTP client for the student-record API.
// It is created once at startup and reused for the process lifetime.
type Client struct {
	baseURL    *url.URL
	httpClient *http.Client
	log        *slog.Logger
}

// New validates cfg and creates the client. Any error here is fatal for
// the caller: there is nothing to talk to.
func New(cfg config.API, log *slog.Logger) (*Client, error) {
	raw := strings.TrimSpace(cfg.BaseURL)
	if raw == "" {
		return nil, ErrNoBaseURL
	}

	u, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("client.New: parse base url: %w", err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, fmt.Errorf("client.New: base url must be an absolute http(s) url, got %q", raw)
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	return &Client{
		baseURL:    u,
		httpClient: &http.Client{Timeout: timeout},
		log:        log,
	}, nil
}

// BaseURL returns the configured API address.
func (c *Client) BaseURL() string {
	return c.baseURL.String()
}

// List returns the records matching f. An empty result is not an error.
func (c *Client) List(ctx context.Context, f Filter) ([]types.Mahasiswa, error) {
	const op = "list"

	u := c.endpoint()
	params := url.Values{}
	if id := strings.TrimSpace(f.ID); id != "" {
		params.Set("id", id)
	}
	if name := strings.TrimSpace(f.Name); name != "" {
		params.Set("name", name)
	}
	u.RawQuery = params.Encode()

	resp, err := c.do(ctx, op, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	defer closeBody(resp)

	if resp.StatusCode != http.StatusOK {
		return nil, unexpected(op, resp)
	}

	var list []types.Mahasiswa
	if err := decode(op, resp, &list); err != nil {
		return nil, err
	}
	if list == nil {
		list = []types.Mahasiswa{}
	}
	return list, nil
}

// Get fetches one record. An invalid id is rejected without a request.
func (c *Client) Get(ctx context.Context, id string) (types.Mahasiswa, error) {
	const op = "get"

	if !validate.IsValidID(id) {
		return types.Mahasiswa{}, fmt.Errorf("%s %q: %w", op, id, ErrInvalidID)
	}

	resp, err := c.do(ctx, op, http.MethodGet, c.endpoint(id), nil)
	if err != nil {
		return types.Mahasiswa{}, err
	}
	defer closeBody(resp)

	switch resp.StatusCode {
	case http.StatusOK:
		var m types.Mahasiswa
		if err := decode(op, resp, &m); err != nil {
			return types.Mahasiswa{}, err
		}
		return m, nil
	case http.StatusNotFound:
		return types.Mahasiswa{}, fmt.Errorf("%s %s: %w", op, id, ErrNotFound)
	default:
		return types.Mahasiswa{}, unexpected(op, resp)
	}
}

// Create sends m and returns the record as stored by the API.
func (c *Client) Create(ctx context.Context, m types.Mahasiswa) (types.Mahasiswa, error) {
	const op = "create"

	resp, err := c.do(ctx, op, http.MethodPost, c.endpoint(), m)
	if err != nil {
		return types.Mahasiswa{}, err
	}
	defer closeBody(resp)

	switch resp.StatusCode {
	case http.StatusCreated, http.StatusOK:
		var created types.Mahasiswa
		if err := decode(op, resp, &created); err != nil {
			return types.Mahasiswa{}, err
		}
		return created, nil
	case http.StatusConflict:
		return types.Mahasiswa{}, fmt.Errorf("%s %s: %w", op, m.ID, ErrConflict)
	default:
		return types.Mahasiswa{}, unexpected(op, resp)
	}
}

// Update replaces the record id with m. id must equal m.ID, ignoring case.
func (c *Client) Update(ctx context.Context, id string, m types.Mahasiswa) error {
	const op = "update"

	if !validate.IsValidID(id) {
		return fmt.Errorf("%s %q: %w", op, id, ErrInvalidID)
	}
	if !strings.EqualFold(id, m.ID) {
		return fmt.Errorf("%s %s (record %s): %w", op, id, m.ID, ErrIDMismatch)
	}

	resp, err := c.do(ctx, op, http.MethodPut, c.endpoint(id), m)
	if err != nil {
		return err
	}
	defer closeBody(resp)

	return expectNoContent(op, id, resp)
}

// Delete removes the record id. An invalid id is rejected without a request.
func (c *Client) Delete(ctx context.Context, id string) error {
	const op = "delete"

	if !validate.IsValidID(id) {
		return fmt.Errorf("%s %q: %w", op, id, ErrInvalidID)
	}

	resp, err := c.do(ctx, op, http.MethodDelete, c.endpoint(id), nil)
	if err != nil {
		return err
	}
	defer closeBody(resp)

	return expectNoContent(op, id, resp)
}

// --- HTTP helpers ---

// endpoint returns the collection URL, or the item URL when id is given.
func (c *Client) endpoint(id ...string) *url.URL {
	return c.baseURL.JoinPath(append([]string{"api", "mahasiswa"}, id...)...)
}

func (c *Client) do(ctx context.Context, op, method string, u *url.URL, body any) (*http.Response, error) {
	var bodyReader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, &APIError{Op: op, Err: fmt.Errorf("marshal request: %w", err)}
		}
		bodyReader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), bodyReader)
	if err != nil {
		return nil, &APIError{Op: op, Err: fmt.Errorf("create request: %w", err)}
	}

	requestID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("X-Request-ID", requestID)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	log := c.log.With(
		slog.String("method", method),
		slog.String("url", u.String()),
		slog.String("request_id", requestID),
	)
	log.Debug("calling api")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Warn("api request failed", slog.String("error", err.Error()))
		return nil, &APIError{Op: op, Err: err}
	}

	log.Debug("api responded",
		slog.Int("status", resp.StatusCode),
		slog.Duration("duration", time.Since(start)),
	)
	return resp, nil
}

func decode(op string, resp *http.Response, v any) error {
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return &APIError{Op: op, StatusCode: resp.StatusCode, Err: fmt.Errorf("decode response: %w", err)}
	}
	return nil
}

func expectNoContent(op, id string, resp *http.Response) error {
	switch resp.StatusCode {
	case http.StatusOK, http.StatusNoContent:
		return nil
	case http.StatusNotFound:
		return fmt.Errorf("%s %s: %w", op, id, ErrNotFound)
	default:
		return unexpected(op, resp)
	}
}

// unexpected builds the APIError for a status the operation does not expect,
// picking up the message from the error envelope when there is one.
func unexpected(op string, resp *http.Response) error {
	apiErr := &APIError{Op: op, StatusCode: resp.StatusCode}

	var er errorResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxErrorBody)).Decode(&er); err == nil {
		apiErr.Message = er.Error
	}
	return apiErr
}

// closeBody drains and closes the body so the connection can be reused.
func closeBody(resp *http.Response) {
	_, _ = io.Copy(io.Discard, resp.Body)
	_ = resp.Body.Close()
}
