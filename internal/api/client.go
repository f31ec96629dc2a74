// Package api is a typed client for the geography REST backend.
//
// Every call takes a context; cancelling it (for example because the
// browser went away) aborts the request in flight. Non-2xx answers come
// back as *StatusError, transport failures as wrapped net/http errors.
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
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// DefaultTimeout bounds each backend request when no other timeout is set.
const DefaultTimeout = 10 * time.Second

// maxErrorBody caps how much of an error response is kept for messages.
const maxErrorBody = 4 << 10

var (
	ErrInvalidBaseURL = errors.New("api: invalid base url")
	ErrNotFound       = errors.New("api: not found")
)

// UpdateEncoding selects how update (PUT) requests carry their fields.
type UpdateEncoding string

const (
	// EncodingQuery sends fields as query parameters. The geography
	// backend binds update fields from request parameters, so this is
	// the default.
	EncodingQuery UpdateEncoding = "query"
	// EncodingJSON sends fields as a JSON body, for backends that bind
	// update bodies.
	EncodingJSON UpdateEncoding = "json"
)

// ParseUpdateEncoding validates s. An empty string means EncodingQuery.
func ParseUpdateEncoding(s string) (UpdateEncoding, error) {
	switch UpdateEncoding(strings.ToLower(s)) {
	case "", EncodingQuery:
		return EncodingQuery, nil
	case EncodingJSON:
		return EncodingJSON, nil
	}
	return "", fmt.Errorf("api: unknown update encoding %q (want json or query)", s)
}

type Client struct {
	httpclient *http.Client
	base       string
	update     UpdateEncoding
	logger     zerolog.Logger
}

type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpclient = hc }
}

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.httpclient.Timeout = d }
}

func WithUpdateEncoding(e UpdateEncoding) Option {
	return func(c *Client) { c.update = e }
}

// WithLogger sets the logger used when the request context carries none.
func WithLogger(l zerolog.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// New creates a client for the backend rooted at baseURL
// (for example "http://localhost:8080").
func New(baseURL string, opts ...Option) (*Client, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidBaseURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" || u.Host == "" {
		return nil, fmt.Errorf("%w: %q", ErrInvalidBaseURL, baseURL)
	}

	c := &Client{
		httpclient: &http.Client{Timeout: DefaultTimeout},
		base:       strings.TrimSuffix(baseURL, "/"),
		update:     EncodingQuery,
		logger:     zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// UpdateEncoding reports how the client sends updates.
func (c *Client) UpdateEncoding() UpdateEncoding {
	return c.update
}

func (c *Client) apipath(path ...string) string {
	for i, p := range path {
		path[i] = strings.Trim(p, "/")
	}
	return strings.Join(append([]string{c.base}, path...), "/")
}

// log returns the request-scoped logger if there is one.
func (c *Client) log(ctx context.Context) *zerolog.Logger {
	if l := zerolog.Ctx(ctx); l.GetLevel() != zerolog.Disabled {
		return l
	}
	return &c.logger
}

type request struct {
	method string
	path   []string
	query  url.Values
	body   any
}

// do sends req and decodes a JSON response into out (when out is non-nil
// and the response has content). It returns the status code on success.
func (c *Client) do(ctx context.Context, req request, out any) (int, error) {
	target := c.apipath(req.path...)
	if len(req.query) > 0 {
		target += "?" + req.query.Encode()
	}

	var body io.Reader
	if req.body != nil {
		b, err := json.Marshal(req.body)
		if err != nil {
			return 0, fmt.Errorf("encode %s %s: %w", req.method, target, err)
		}
		body = bytes.NewReader(b)
	}

	hreq, err := http.NewRequestWithContext(ctx, req.method, target, body)
	if err != nil {
		return 0, err
	}
	hreq.Header.Set("Accept", "application/json")
	if body != nil {
		hreq.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpclient.Do(hreq)
	if err != nil {
		return 0, fmt.Errorf("%s %s: %w", req.method, target, err)
	}
	defer resp.Body.Close()

	c.log(ctx).Debug().Str("method", req.method).Str("url", target).Int("status", resp.StatusCode).Msg("backend call")

	if StatusCodeRangeOf(resp.StatusCode) != Status2xx {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return resp.StatusCode, &StatusError{
			Method:     req.method,
			Path:       "/" + strings.Join(req.path, "/"),
			StatusCode: resp.StatusCode,
			Body:       strings.TrimSpace(string(msg)),
		}
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		_, _ = io.Copy(io.Discard, resp.Body)
		return resp.StatusCode, nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return resp.StatusCode, fmt.Errorf("decode %s %s: %w", req.method, target, err)
	}
	return resp.StatusCode, nil
}

// getOne fetches a single record; anything but 200 is an error.
func getOne[T any](ctx context.Context, c *Client, path ...string) (T, error) {
	var v T
	code, err := c.do(ctx, request{method: http.MethodGet, path: path}, &v)
	if err != nil {
		return v, err
	}
	if code != http.StatusOK {
		return v, &StatusError{Method: http.MethodGet, Path: "/" + strings.Join(path, "/"), StatusCode: code}
	}
	return v, nil
}

// getList fetches a collection. 204 means an empty collection; any other
// status but 200 is an error. The result is never nil on success.
func getList[T any](ctx context.Context, c *Client, query url.Values, path ...string) ([]T, error) {
	var v []T
	code, err := c.do(ctx, request{method: http.MethodGet, path: path, query: query}, &v)
	if err != nil {
		return nil, err
	}
	if code != http.StatusOK && code != http.StatusNoContent {
		return nil, &StatusError{Method: http.MethodGet, Path: "/" + strings.Join(path, "/"), StatusCode: code}
	}
	if v == nil {
		v = []T{}
	}
	return v, nil
}

func (c *Client) send(ctx context.Context, method string, body any, path ...string) error {
	_, err := c.do(ctx, request{method: method, path: path, body: body}, nil)
	return err
}

// put sends an update in the configured encoding.
func (c *Client) put(ctx context.Context, fields url.Values, body any, path ...string) error {
	req := request{method: http.MethodPut, path: path}
	if c.update == EncodingQuery {
		req.query = fields
	} else {
		req.body = body
	}
	_, err := c.do(ctx, req, nil)
	return err
}
