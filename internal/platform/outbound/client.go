// Package outbound performs the calls the gateway makes to its backend services.
//
// Every backend shares the same contract: a base URI, an optional shared secret sent
// verbatim as the Authorization header, parameters placed in the query string for
// GET and DELETE and in a form body otherwise, and responses that may be wrapped in
// a single-key {"data": ...} envelope.
package outbound

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

	"bookgateway/internal/metrics"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// DefaultTimeout bounds connect plus read for a single call.
const DefaultTimeout = 10 * time.Second

const (
	maxSuccessBody = 8 << 20
	maxErrorBody   = 64 << 10
)

// Descriptor identifies one backend service. It is immutable after construction.
type Descriptor struct {
	Name    string
	BaseURI string
	// Secret is sent as the Authorization header value when non-empty.
	Secret  string
	Timeout time.Duration
}

func (d Descriptor) timeout() time.Duration {
	if d.Timeout <= 0 {
		return DefaultTimeout
	}
	return d.Timeout
}

// Request describes one outbound call. Build a new one per call.
type Request struct {
	Method string
	Path   string
	Params url.Values
}

type Client struct {
	httpClient *http.Client
	userAgent  string
	limiter    *rate.Limiter
	logger     *zap.Logger
	maxBody    int64
	requestID  func(context.Context) string
}

type Option func(*Client)

// WithHTTPClient replaces the underlying http.Client. Timeouts still come from the descriptor.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

func WithUserAgent(ua string) Option {
	return func(c *Client) { c.userAgent = ua }
}

// WithRateLimit caps outbound calls per second across all backends. rps <= 0 disables it.
func WithRateLimit(rps float64) Option {
	return func(c *Client) {
		if rps <= 0 {
			c.limiter = nil
			return
		}
		burst := int(rps)
		if burst < 1 {
			burst = 1
		}
		c.limiter = rate.NewLimiter(rate.Limit(rps), burst)
	}
}

func WithLogger(l *zap.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithRequestID forwards the id returned by fn as X-Request-Id on every call, so
// that backend logs line up with the request that caused the call.
func WithRequestID(fn func(context.Context) string) Option {
	return func(c *Client) { c.requestID = fn }
}

func NewClient(opts ...Option) *Client {
	c := &Client{
		httpClient: &http.Client{},
		userAgent:  "bookgateway/1.0",
		logger:     zap.NewNop(),
		maxBody:    maxSuccessBody,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Call executes req against the backend d. On success it returns the decoded payload,
// unwrapped from a {"data": ...} envelope when the body is exactly that, or the raw
// body text when it is not JSON. Any failure is an *Error.
func (c *Client) Call(ctx context.Context, d Descriptor, req Request) (any, error) {
	start := time.Now()
	method := strings.ToUpper(strings.TrimSpace(req.Method))
	if method == "" {
		method = http.MethodGet
	}
	endpoint := joinURL(d.BaseURI, req.Path)

	payload, err := c.do(ctx, d, method, endpoint, req.Params)

	outcome := outcomeOf(ctx, err)
	metrics.ObserveOutbound(d.Name, outcome, time.Since(start))
	c.logger.Debug("outbound call",
		zap.String("backend", d.Name),
		zap.String("method", method),
		zap.String("url", endpoint),
		zap.String("outcome", outcome),
		zap.Duration("duration", time.Since(start)),
	)
	return payload, err
}

func (c *Client) do(ctx context.Context, d Descriptor, method, endpoint string, params url.Values) (any, error) {
	fail := func(err error) error {
		return &Error{Kind: KindConnection, Backend: d.Name, Method: method, URL: endpoint, Err: err}
	}

	u, err := url.Parse(endpoint)
	if err != nil {
		return nil, fail(fmt.Errorf("invalid backend url: %w", err))
	}

	var body io.Reader
	if len(params) > 0 {
		if method == http.MethodGet || method == http.MethodDelete {
			q := u.Query()
			for key, values := range params {
				for _, v := range values {
					q.Add(key, v)
				}
			}
			u.RawQuery = q.Encode()
		} else {
			body = strings.NewReader(params.Encode())
		}
	}

	ctx, cancel := context.WithTimeout(ctx, d.timeout())
	defer cancel()

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, fail(err)
		}
	}

	httpReq, err := http.NewRequestWithContext(ctx, method, u.String(), body)
	if err != nil {
		return nil, fail(err)
	}
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("User-Agent", c.userAgent)
	if body != nil {
		httpReq.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	if d.Secret != "" {
		httpReq.Header.Set("Authorization", d.Secret)
	}
	if c.requestID != nil {
		if id := c.requestID(ctx); id != "" {
			httpReq.Header.Set("X-Request-Id", id)
		}
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fail(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, &Error{
			Kind:       KindHTTP,
			Backend:    d.Name,
			Method:     method,
			URL:        endpoint,
			StatusCode: resp.StatusCode,
			Body:       strings.TrimSpace(string(raw)),
		}
	}

	raw, err := io.ReadAll(io.LimitReader(resp.Body, c.maxBody+1))
	if err != nil {
		return nil, fail(fmt.Errorf("read response body: %w", err))
	}
	if int64(len(raw)) > c.maxBody {
		return nil, fail(fmt.Errorf("%w: more than %d bytes", ErrBodyTooLarge, c.maxBody))
	}
	return DecodePayload(raw), nil
}

// outcomeOf labels a finished call for metrics and logs. A call abandoned because
// the caller cancelled it is "cancelled", not a backend failure.
func outcomeOf(ctx context.Context, err error) string {
	switch {
	case err == nil:
		return "success"
	case errors.Is(ctx.Err(), context.Canceled):
		return "cancelled"
	}
	return string(KindOf(err))
}

// DecodePayload turns a 2xx body into a payload. A JSON object whose only key is
// "data" yields that value; other JSON yields the decoded value with numbers kept
// as json.Number; anything that is not JSON yields the body as a string.
func DecodePayload(raw []byte) any {
	if !json.Valid(raw) {
		return string(raw)
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return string(raw)
	}
	if obj, ok := v.(map[string]any); ok && len(obj) == 1 {
		if data, ok := obj["data"]; ok {
			return data
		}
	}
	return v
}

func joinURL(base, path string) string {
	base = strings.TrimRight(base, "/")
	path = strings.TrimLeft(path, "/")
	if path == "" {
		return base
	}
	return base + "/" + path
}
