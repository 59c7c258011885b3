// Package api is the client for the remote content and auth APIs.
//
// Every call is a single request/response round trip with no retries. A
// response is a JSON envelope {success, message, data}; an explicit
// success:false or an HTTP error status is returned as *Error carrying the
// server's message, anything that fails before a usable envelope arrives
// wraps ErrTransport.
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

	"github.com/prometheus/client_golang/prometheus"
)

const (
	// DefaultTimeout bounds a single upstream call.
	DefaultTimeout = 15 * time.Second

	// GenericMessage is shown when a call failed without a server message.
	GenericMessage = "Something went wrong. Please try again."

	maxResponseBytes = 32 << 20
)

var (
	// ErrTransport wraps network, timeout and decode failures.
	ErrTransport = errors.New("api: upstream request failed")
	// ErrUnauthorized matches an *Error with status 401.
	ErrUnauthorized = errors.New("api: unauthorized")
	// ErrNotFound matches an *Error with status 404.
	ErrNotFound = errors.New("api: not found")
)

// Error is a request the upstream API answered and rejected.
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("api: %d: %s", e.Status, e.Message)
}

// Is lets errors.Is match ErrUnauthorized and ErrNotFound by status.
func (e *Error) Is(target error) bool {
	switch target {
	case ErrUnauthorized:
		return e.Status == http.StatusUnauthorized
	case ErrNotFound:
		return e.Status == http.StatusNotFound
	}
	return false
}

// Config configures a Client.
type Config struct {
	BaseURL    string        // content API root, e.g. https://api.example.com/v1
	AuthURL    string        // auth API root; defaults to BaseURL
	Timeout    time.Duration // per call; default DefaultTimeout
	HTTPClient *http.Client  // optional; Timeout is ignored when set
	// Registerer receives the upstream request counter. Nil disables it.
	Registerer prometheus.Registerer
}

// Client talks to the content and auth APIs. It is safe for concurrent use.
type Client struct {
	baseURL  *url.URL
	authURL  *url.URL
	http     *http.Client
	requests *prometheus.CounterVec
}

// New builds a Client from cfg.
func New(cfg Config) (*Client, error) {
	base, err := parseRoot(cfg.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("api: base url: %w", err)
	}
	auth := base
	if cfg.AuthURL != "" {
		if auth, err = parseRoot(cfg.AuthURL); err != nil {
			return nil, fmt.Errorf("api: auth url: %w", err)
		}
	}
	hc := cfg.HTTPClient
	if hc == nil {
		timeout := cfg.Timeout
		if timeout == 0 {
			timeout = DefaultTimeout
		}
		hc = &http.Client{Timeout: timeout}
	}
	c := &Client{baseURL: base, authURL: auth, http: hc}
	if cfg.Registerer != nil {
		c.requests = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "pubdesk_upstream_requests_total",
			Help: "Requests sent to the content and auth APIs by operation and outcome.",
		}, []string{"op", "outcome"})
		if err := cfg.Registerer.Register(c.requests); err != nil {
			var are prometheus.AlreadyRegisteredError
			if !errors.As(err, &are) {
				return nil, fmt.Errorf("api: register metrics: %w", err)
			}
			c.requests = are.ExistingCollector.(*prometheus.CounterVec)
		}
	}
	return c, nil
}

func parseRoot(raw string) (*url.URL, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, errors.New("empty url")
	}
	u, err := url.Parse(raw)
	if err != nil {
		return nil, err
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("unsupported scheme %q", u.Scheme)
	}
	return u, nil
}

// envelope is the response wrapper every endpoint uses.
type envelope struct {
	Success *bool           `json:"success"`
	Message string          `json:"message"`
	Error   string          `json:"error"`
	Data    json.RawMessage `json:"data"`
}

// call describes one upstream request.
type call struct {
	op     string
	root   *url.URL
	method string
	path   []string
	token  string
	body   any
}

func endpoint(root *url.URL, segments ...string) string {
	escaped := make([]string, len(segments))
	for i, s := range segments {
		escaped[i] = url.PathEscape(s)
	}
	return root.JoinPath(escaped...).String()
}

// do sends the call and returns the decoded envelope along with the raw
// body, so callers that need the untouched payload can decode it
// themselves.
func (c *Client) do(ctx context.Context, cl call) (*http.Response, envelope, []byte, error) {
	resp, env, raw, err := c.send(ctx, cl)
	c.observe(cl.op, err)
	return resp, env, raw, err
}

func (c *Client) send(ctx context.Context, cl call) (*http.Response, envelope, []byte, error) {
	var env envelope
	var body io.Reader = http.NoBody
	if cl.body != nil {
		b, err := json.Marshal(cl.body)
		if err != nil {
			return nil, env, nil, fmt.Errorf("api: encode %s: %w", cl.op, err)
		}
		body = bytes.NewReader(b)
	}
	req, err := http.NewRequestWithContext(ctx, cl.method, endpoint(cl.root, cl.path...), body)
	if err != nil {
		return nil, env, nil, fmt.Errorf("api: build %s: %w", cl.op, err)
	}
	req.Header.Set("Accept", "application/json")
	if cl.body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if cl.token != "" {
		req.Header.Set("Authorization", "Bearer "+cl.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, env, nil, fmt.Errorf("%w: %s: %w", ErrTransport, cl.op, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return resp, env, nil, fmt.Errorf("%w: %s: read body: %w", ErrTransport, cl.op, err)
	}
	if len(bytes.TrimSpace(raw)) > 0 {
		if err := json.Unmarshal(raw, &env); err != nil {
			if resp.StatusCode >= 400 {
				return resp, env, raw, &Error{Status: resp.StatusCode, Message: http.StatusText(resp.StatusCode)}
			}
			return resp, env, raw, fmt.Errorf("%w: %s: decode body: %w", ErrTransport, cl.op, err)
		}
	}
	rejected := env.Success != nil && !*env.Success
	if resp.StatusCode >= 400 || rejected {
		status := resp.StatusCode
		if status < 400 {
			status = http.StatusUnprocessableEntity
		}
		msg := env.Message
		if msg == "" {
			msg = env.Error
		}
		if msg == "" {
			msg = http.StatusText(status)
		}
		return resp, env, raw, &Error{Status: status, Message: msg}
	}
	return resp, env, raw, nil
}

func (c *Client) observe(op string, err error) {
	if c.requests == nil {
		return
	}
	outcome := "ok"
	var apiErr *Error
	switch {
	case err == nil:
	case errors.As(err, &apiErr):
		outcome = "rejected"
	default:
		outcome = "transport"
	}
	c.requests.WithLabelValues(op, outcome).Inc()
}

// decodeData unmarshals the envelope's data into out. A missing or null
// data field leaves out untouched.
func decodeData(op string, env envelope, out any) error {
	data := bytes.TrimSpace(env.Data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return wrapDecode(op, err)
	}
	return nil
}

func wrapDecode(op string, err error) error {
	return fmt.Errorf("%w: %s: decode: %w", ErrTransport, op, err)
}

// Message returns the text to show a user for err: the server's own
// message when it rejected the request, a generic one otherwise.
func Message(err error) string {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Message
	}
	return GenericMessage
}
