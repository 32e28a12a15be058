// Package adminclient is a typed client for the botdesk admin and filter endpoints.
// GETs are cached by URL until a caller refreshes them; mutations never touch the cache
package adminclient

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/sync/singleflight"

	perr "botdesk/internal/platform/errors"
	"botdesk/internal/platform/logger"
)

const (
	baseURLDefault   = "http://localhost:4000"
	defaultTimeout   = 10 * time.Second
	defaultUA        = "botdesk-adminclient"
	defaultCacheSize = 256

	// HeaderRequestID carries the per request correlation id
	HeaderRequestID = "X-Request-ID"
)

// Options configures the Client
type Options struct {
	BaseURL   string
	UserAgent string
	Timeout   time.Duration

	// Token is the admin bearer token; empty sends no Authorization header
	Token string

	// CacheSize bounds the number of cached GET responses
	CacheSize int

	// HTTPClient overrides the transport; Timeout is ignored when set
	HTTPClient *http.Client
}

// Client talks to one botdesk API
type Client struct {
	http  *http.Client
	opts  Options
	cache *lru.Cache[string, json.RawMessage]
	group singleflight.Group
	log   logger.Logger
	newID func() string
	now   func() time.Time
}

// New creates a Client with sane defaults
func New(o Options) (*Client, error) {
	if o.BaseURL == "" {
		o.BaseURL = baseURLDefault
	}
	o.BaseURL = strings.TrimSuffix(o.BaseURL, "/")
	if o.UserAgent == "" {
		o.UserAgent = defaultUA
	}
	if o.Timeout <= 0 {
		o.Timeout = defaultTimeout
	}
	if o.CacheSize <= 0 {
		o.CacheSize = defaultCacheSize
	}
	hc := o.HTTPClient
	if hc == nil {
		hc = &http.Client{Timeout: o.Timeout}
	}
	cache, err := lru.New[string, json.RawMessage](o.CacheSize)
	if err != nil {
		return nil, perr.Wrapf(err, perr.ErrorCodeInvalidArgument, "adminclient cache")
	}
	return &Client{
		http:  hc,
		opts:  o,
		cache: cache,
		log:   *logger.Named("adminclient"),
		newID: uuid.NewString,
		now:   time.Now,
	}, nil
}

// envelope is the response body every endpoint writes
type envelope struct {
	StatusCode int             `json:"status_code"`
	Status     string          `json:"status"`
	Code       perr.ErrorCode  `json:"code"`
	Error      string          `json:"error"`
	RequestID  string          `json:"request_id"`
	Data       json.RawMessage `json:"data"`
}

// url joins a path onto the base url; the result is also the cache key
func (c *Client) url(path string) string { return c.opts.BaseURL + path }

// get returns data for path from the cache, or fetches it once for all concurrent callers
func (c *Client) get(ctx context.Context, path string, out any) error {
	key := c.url(path)
	if raw, ok := c.cache.Get(key); ok {
		return decodeData(raw, out, path)
	}

	v, err, _ := c.group.Do(key, func() (any, error) {
		// a caller that lost the race to an earlier flight finds the result here
		if raw, ok := c.cache.Get(key); ok {
			return raw, nil
		}
		raw, err := c.send(ctx, http.MethodGet, path, nil)
		if err != nil {
			return nil, err
		}
		c.cache.Add(key, raw)
		return raw, nil
	})
	if err != nil {
		return err
	}
	return decodeData(v.(json.RawMessage), out, path)
}

// do sends a mutation and decodes the response data into out when out is non-nil
func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	raw, err := c.send(ctx, method, path, in)
	if err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	return decodeData(raw, out, path)
}

// send issues one request and unwraps the envelope
func (c *Client) send(ctx context.Context, method, path string, in any) (json.RawMessage, error) {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return nil, perr.Wrapf(err, perr.ErrorCodeJSON, "adminclient encode %s %s", method, path)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.url(path), body)
	if err != nil {
		return nil, perr.Wrapf(err, perr.ErrorCodeUnknown, "adminclient new request failed")
	}
	reqID := c.newID()
	req.Header.Set("User-Agent", c.opts.UserAgent)
	req.Header.Set("Accept", "application/json")
	req.Header.Set(HeaderRequestID, reqID)
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.opts.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.opts.Token)
	}

	start := c.now()
	resp, err := c.http.Do(req)
	lat := c.now().Sub(start)
	if err != nil {
		c.log.Debug().Err(err).Str("method", method).Str("path", path).Str("request_id", reqID).Msg("adminclient transport error")
		return nil, perr.Wrapf(err, perr.ErrorCodeUnavailable, "adminclient %s %s failed", method, path)
	}
	defer func() { _ = resp.Body.Close() }()

	c.log.Debug().
		Str("method", method).
		Str("path", path).
		Str("request_id", reqID).
		Int("status", resp.StatusCode).
		Dur("latency", lat).
		Msg("adminclient http response")

	if resp.StatusCode == http.StatusNoContent {
		return nil, nil
	}

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 8<<20))
	if err != nil {
		return nil, perr.Wrapf(err, perr.ErrorCodeUnavailable, "adminclient read %s %s", method, path)
	}

	var env envelope
	decErr := json.Unmarshal(raw, &env)

	if resp.StatusCode >= http.StatusBadRequest {
		return nil, remoteError(resp.StatusCode, env, decErr, raw)
	}
	if decErr != nil {
		return nil, perr.Wrapf(decErr, perr.ErrorCodeJSON, "adminclient decode %s %s", method, path)
	}
	return env.Data, nil
}

// remoteError rebuilds a platform error from an error envelope, falling back to the status
func remoteError(status int, env envelope, decErr error, raw []byte) error {
	if decErr == nil && env.Error != "" {
		code := env.Code
		if code == perr.ErrorCodeUnknown {
			code = codeForStatus(status)
		}
		return perr.New(code, env.Error)
	}
	tail := strings.TrimSpace(string(raw))
	if len(tail) > 256 {
		tail = tail[:256]
	}
	return perr.Newf(codeForStatus(status), "unexpected status %d body %s", status, tail)
}

func codeForStatus(status int) perr.ErrorCode {
	switch status {
	case http.StatusBadRequest:
		return perr.ErrorCodeValidation
	case http.StatusUnauthorized:
		return perr.ErrorCodeUnauthorized
	case http.StatusForbidden:
		return perr.ErrorCodeForbidden
	case http.StatusNotFound:
		return perr.ErrorCodeNotFound
	case http.StatusConflict:
		return perr.ErrorCodeConflict
	case http.StatusUnprocessableEntity:
		return perr.ErrorCodeInvalidArgument
	case http.StatusTooManyRequests:
		return perr.ErrorCodeTooManyRequests
	case http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
		return perr.ErrorCodeUnavailable
	default:
		return perr.ErrorCodeUnknown
	}
}

func decodeData(raw json.RawMessage, out any, path string) error {
	if out == nil || len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return perr.Wrapf(err, perr.ErrorCodeJSON, "adminclient decode %s", path)
	}
	return nil
}
