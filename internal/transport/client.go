package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"koda/internal/logging"
)

// DefaultTimeout bounds every backend call. The client never retries;
// retry policy belongs to callers (none implement one).
const DefaultTimeout = 10 * time.Second

// Client wraps outbound HTTP calls to the completion backend. All requests
// get JSON default headers and the fixed timeout; all failures come back as
// a *Error.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New creates a client against baseURL. A zero timeout falls back to
// DefaultTimeout.
func New(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// BaseURL returns the backend base URL the client was built with.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// errorBody is the backend's failure envelope.
type errorBody struct {
	Error  string `json:"error"`
	Detail string `json:"detail,omitempty"`
}

// Post sends payload as JSON to the endpoint path (e.g. "api/complete") and
// returns the raw response body on 2xx.
func (c *Client) Post(ctx context.Context, endpoint string, payload any) (json.RawMessage, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, &Error{Kind: KindUnknown, Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url(endpoint), bytes.NewReader(body))
	if err != nil {
		return nil, &Error{Kind: KindUnknown, Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		kind := classifyNetError(err)
		logging.Warn("backend request failed", "endpoint", endpoint, "kind", kind.String(), "error", err)
		return nil, &Error{Kind: kind, Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &Error{Kind: KindNoResponse, Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, c.serverError(resp.StatusCode, raw)
	}

	return json.RawMessage(raw), nil
}

// Get fetches the endpoint path and returns the raw body on 2xx.
func (c *Client) Get(ctx context.Context, endpoint string) (json.RawMessage, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url(endpoint), nil)
	if err != nil {
		return nil, &Error{Kind: KindUnknown, Err: err}
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &Error{Kind: classifyNetError(err), Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &Error{Kind: KindNoResponse, Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, c.serverError(resp.StatusCode, raw)
	}

	return json.RawMessage(raw), nil
}

// Ping probes the backend root endpoint. The response body carries no
// contract; it is logged and discarded.
func (c *Client) Ping(ctx context.Context) error {
	raw, err := c.Get(ctx, "")
	if err != nil {
		return err
	}
	logging.Info("backend liveness probe", "url", c.baseURL, "body", string(raw))
	return nil
}

// serverError builds a KindServerError carrying the body's "error" field
// verbatim. Bodies that are not the JSON envelope fall back to the raw text.
func (c *Client) serverError(status int, raw []byte) *Error {
	var eb errorBody
	msg := strings.TrimSpace(string(raw))
	if err := json.Unmarshal(raw, &eb); err == nil && eb.Error != "" {
		msg = eb.Error
	}
	return &Error{
		Kind:       KindServerError,
		StatusCode: status,
		Message:    msg,
	}
}

func (c *Client) url(endpoint string) string {
	if endpoint == "" {
		return c.baseURL + "/"
	}
	return c.baseURL + "/" + strings.TrimLeft(endpoint, "/")
}
