package redisrest

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/cosmez/redisrest-go/internal/httpx"
	"github.com/sirupsen/logrus"
)

// Client issues commands to the REST endpoint of a Redis-compatible store.
//
// A Client holds no per-call state and is safe for concurrent use. Each
// method performs exactly one HTTP exchange and never retries; cancellation
// and timeouts come from the context and the underlying http.Client.
type Client struct {
	host string
	http *httpx.Client
}

// Option configures a Client.
type Option func(*clientOptions)

type clientOptions struct {
	httpClient *http.Client
	logger     logrus.FieldLogger
	headers    http.Header
}

// WithHTTPClient overrides the http.Client, e.g. to set a timeout or a
// caching transport.
func WithHTTPClient(h *http.Client) Option {
	return func(o *clientOptions) { o.httpClient = h }
}

// WithLogger routes per-request debug logging to l. The default is silent.
func WithLogger(l logrus.FieldLogger) Option {
	return func(o *clientOptions) { o.logger = l }
}

// WithHeader adds a header sent with every request.
func WithHeader(key, value string) Option {
	return func(o *clientOptions) { o.headers.Add(key, value) }
}

// New creates a Client for host, authenticating with the bearer token.
// Any scheme prefix on host is dropped; requests always go over https.
func New(host, token string, opts ...Option) (*Client, error) {
	host = stripScheme(strings.TrimSpace(host))
	if host == "" {
		return nil, ErrHostRequired
	}
	if strings.TrimSpace(token) == "" {
		return nil, ErrTokenRequired
	}

	o := &clientOptions{headers: make(http.Header)}
	for _, opt := range opts {
		opt(o)
	}
	o.headers.Set("Authorization", "Bearer "+token)

	httpOpts := []httpx.Option{
		httpx.WithHeaders(o.headers),
		httpx.WithHTTPClient(o.httpClient),
		httpx.WithLogger(o.logger),
	}
	hc, err := httpx.NewClient("https://"+host, httpOpts...)
	if err != nil {
		return nil, fmt.Errorf("redisrest: %w", err)
	}
	return &Client{host: host, http: hc}, nil
}

// Host returns the configured host without scheme.
func (c *Client) Host() string { return c.host }

func stripScheme(host string) string {
	if idx := strings.Index(host, "://"); idx >= 0 {
		host = host[idx+3:]
	}
	return strings.TrimRight(host, "/")
}

// Exec sends one command and returns its result.
func (c *Client) Exec(ctx context.Context, cmd Command) (Result, error) {
	body, err := encodeJSON(cmd.Render())
	if err != nil {
		return Result{}, fmt.Errorf("redisrest: encode command %s: %w", strings.ToUpper(cmd.Name()), err)
	}
	resp, err := c.send(ctx, http.MethodPost, "/", body, nil)
	if err != nil {
		return Result{}, err
	}
	return decodeResult(resp)
}

// Do is shorthand for Exec(ctx, NewCommand(name, args...)).
func (c *Client) Do(ctx context.Context, name string, args ...any) (Result, error) {
	return c.Exec(ctx, NewCommand(name, args...))
}

// Get reads key through the GET /get/{key} endpoint. The cache policy is
// forwarded as a Cache-Control header for any HTTP cache in between.
func (c *Client) Get(ctx context.Context, key string, policy CachePolicy) (Result, error) {
	header := make(http.Header)
	if directive := policy.Directive(); directive != "" {
		header.Set("Cache-Control", directive)
	}
	resp, err := c.send(ctx, http.MethodGet, "/get/"+escapeKey(key), nil, header)
	if err != nil {
		return Result{}, err
	}
	return decodeResult(resp)
}

// Pipeline sends several commands in one request. Each command succeeds or
// fails on its own; the returned slice has one Response per command, in order.
func (c *Client) Pipeline(ctx context.Context, cmds []Command) ([]Response, error) {
	return c.batch(ctx, "/pipeline", cmds)
}

// Transaction is Pipeline over /multi-exec: the service applies the commands
// atomically.
func (c *Client) Transaction(ctx context.Context, cmds []Command) ([]Response, error) {
	return c.batch(ctx, "/multi-exec", cmds)
}

func (c *Client) batch(ctx context.Context, path string, cmds []Command) ([]Response, error) {
	body, err := encodeJSON(renderAll(cmds))
	if err != nil {
		return nil, fmt.Errorf("redisrest: encode commands: %w", err)
	}
	resp, err := c.send(ctx, http.MethodPost, path, body, nil)
	if err != nil {
		return nil, err
	}
	if !resp.OK() {
		return nil, decodeFailure(resp)
	}
	if redisErr := errorEnvelope(resp.Body); redisErr != nil {
		return nil, redisErr
	}
	responses, err := ParseResponses(resp.Body)
	if err != nil {
		return nil, &TransportError{StatusCode: resp.StatusCode, Body: resp.Body, Err: err}
	}
	if len(responses) != len(cmds) {
		return nil, &TransportError{
			StatusCode: resp.StatusCode,
			Body:       resp.Body,
			Err:        fmt.Errorf("expected %d responses, got %d", len(cmds), len(responses)),
		}
	}
	return responses, nil
}

func (c *Client) send(ctx context.Context, method, path string, body []byte, header http.Header) (*httpx.Response, error) {
	if header == nil {
		header = make(http.Header)
	}
	if body != nil {
		header.Set("Content-Type", "application/json")
	}
	resp, err := c.http.Do(ctx, &httpx.Request{
		Method: method,
		Path:   path,
		Header: header,
		Body:   body,
	})
	if err != nil {
		return nil, &TransportError{Err: err}
	}
	return resp, nil
}

func decodeResult(resp *httpx.Response) (Result, error) {
	if !resp.OK() {
		return Result{}, decodeFailure(resp)
	}
	if redisErr := errorEnvelope(resp.Body); redisErr != nil {
		return Result{}, redisErr
	}
	result, err := ParseResult(resp.Body)
	if err != nil {
		return Result{}, &TransportError{StatusCode: resp.StatusCode, Body: resp.Body, Err: err}
	}
	return result, nil
}

// decodeFailure turns a non-2xx reply into *Error when the body carries the
// service's error shape, and into *TransportError otherwise.
func decodeFailure(resp *httpx.Response) error {
	if redisErr := errorEnvelope(resp.Body); redisErr != nil {
		return redisErr
	}
	return &TransportError{
		StatusCode: resp.StatusCode,
		Body:       resp.Body,
		Err:        errors.New(http.StatusText(resp.StatusCode)),
	}
}

// errorEnvelope returns the *Error carried by an {"error": ...} body that
// has no result member, or nil.
func errorEnvelope(body []byte) *Error {
	var payload struct {
		Error  *string         `json:"error"`
		Result json.RawMessage `json:"result"`
	}
	if err := json.Unmarshal(body, &payload); err != nil || payload.Error == nil || payload.Result != nil {
		return nil
	}
	return &Error{Message: *payload.Error}
}

// escapeKey path-escapes key. "." and ".." are percent-encoded as well,
// since a bare dot segment would be read as a relative path.
func escapeKey(key string) string {
	switch key {
	case ".":
		return "%2E"
	case "..":
		return "%2E%2E"
	}
	return url.PathEscape(key)
}
