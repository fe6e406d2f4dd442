// internal/adapters/api/client.go
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"

	"hotel_booking/internal/adapters/checkout"
	"hotel_booking/internal/adapters/observability"
	"hotel_booking/internal/domain"
)

const (
	defaultTimeout   = 20 * time.Second
	maxErrorBody     = 64 << 10
	defaultUserAgent = "hotel-booking-client/1.0"
)

type Options struct {
	BaseURL   string        // stands in for the browser origin, e.g. http://localhost:7000
	Timeout   time.Duration // per round trip; 0 means 20s
	RPS       int           // outbound rate limit; <=0 disables it
	UserAgent string

	// Scripts loads the checkout script; nil uses checkout.New with its defaults.
	Scripts *checkout.Loader

	// Transport overrides http.DefaultTransport (tests).
	Transport http.RoundTripper
}

// Client talks to the hotel booking API. It is safe for concurrent use and
// keeps session cookies in its own jar.
type Client struct {
	base    *url.URL
	hc      *http.Client
	jar     http.CookieJar
	rl      *rate.Limiter
	ua      string
	scripts *checkout.Loader
}

var (
	_ domain.Gateway      = (*Client)(nil)
	_ domain.ScriptLoader = (*Client)(nil)
	_ domain.CookieJar    = (*Client)(nil)
)

func New(opts Options) (*Client, error) {
	if opts.BaseURL == "" {
		return nil, fmt.Errorf("base URL is required")
	}
	base, err := url.Parse(strings.TrimRight(opts.BaseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("parse base URL: %w", err)
	}
	if base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("base URL %q must be absolute", opts.BaseURL)
	}
	// JoinPath yields a relative path on an empty base, which the jar never matches.
	if base.Path == "" {
		base.Path = "/"
	}
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, err
	}
	if opts.Timeout <= 0 {
		opts.Timeout = defaultTimeout
	}
	if opts.UserAgent == "" {
		opts.UserAgent = defaultUserAgent
	}
	rl := rate.NewLimiter(rate.Inf, 0)
	if opts.RPS > 0 {
		rl = rate.NewLimiter(rate.Limit(opts.RPS), opts.RPS)
	}
	scripts := opts.Scripts
	if scripts == nil {
		scripts = checkout.New(checkout.Options{Timeout: opts.Timeout})
	}
	return &Client{
		base:    base,
		hc:      &http.Client{Timeout: opts.Timeout, Transport: opts.Transport}, // no Jar: cookies go per endpoint
		jar:     jar,
		rl:      rl,
		ua:      opts.UserAgent,
		scripts: scripts,
	}, nil
}

// Cookies returns the session cookies held for the API origin.
func (c *Client) Cookies() []*http.Cookie { return c.jar.Cookies(c.base) }

// RestoreCookies puts previously saved session cookies back into the jar.
func (c *Client) RestoreCookies(cookies []*http.Cookie) {
	if len(cookies) > 0 {
		c.jar.SetCookies(c.base, cookies)
	}
}

// ---- Internals ----

// endpoint describes one remote capability.
type endpoint struct {
	method      string
	path        string // escaped path, ids already substituted
	query       string // encoded, order preserved
	route       string // metrics/log label, e.g. /api/hotels/{id}
	credentials bool   // send and accept the session cookie
	failure     string // message when the server gives none
}

// body is a request payload ready to send.
type body struct {
	data        []byte
	contentType string
}

func jsonBody(v any) (*body, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return &body{data: b, contentType: "application/json"}, nil
}

func formBody(fd *domain.FormData) (*body, error) {
	var buf bytes.Buffer
	ct, err := fd.Encode(&buf)
	if err != nil {
		return nil, err
	}
	return &body{data: buf.Bytes(), contentType: ct}, nil
}

// errorBody is the JSON shape of a failed answer.
type errorBody struct {
	Message string `json:"message"`
}

// call runs one request/response cycle for ep. A nil out discards the
// success body unread.
func (c *Client) call(ctx context.Context, ep endpoint, b *body, out any) error {
	start := time.Now()
	status, err := c.roundTrip(ctx, ep, b, out)
	observability.ObserveExternal("api", ep.route, status, time.Since(start))
	if err != nil {
		log.Warn().
			Str("endpoint", ep.route).
			Str("method", ep.method).
			Int("status", status).
			Str("kind", observability.LabelErr(err)).
			Err(err).
			Msg("api call failed")
	}
	return err
}

func (c *Client) roundTrip(ctx context.Context, ep endpoint, b *body, out any) (int, error) {
	// client-side rate limiting
	if err := c.rl.Wait(ctx); err != nil {
		return 0, c.fail(domain.KindTransport, 0, ep.failure, err)
	}

	u := c.base.JoinPath(ep.path)
	u.RawQuery = ep.query

	var rd io.Reader
	if b != nil {
		rd = bytes.NewReader(b.data)
	}
	req, err := http.NewRequestWithContext(ctx, ep.method, u.String(), rd)
	if err != nil {
		return 0, c.fail(domain.KindTransport, 0, ep.failure, err)
	}
	reqID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.ua)
	req.Header.Set("X-Request-ID", reqID)
	if b != nil {
		req.Header.Set("Content-Type", b.contentType)
	}
	if ep.credentials {
		for _, ck := range c.jar.Cookies(u) {
			req.AddCookie(ck)
		}
	}

	start := time.Now()
	resp, err := c.hc.Do(req)
	if err != nil {
		// network error or context canceled
		return 0, c.fail(domain.KindTransport, 0, ep.failure, err)
	}
	defer resp.Body.Close()

	if ep.credentials {
		if cks := resp.Cookies(); len(cks) > 0 {
			c.jar.SetCookies(u, cks)
		}
	}

	log.Debug().
		Str("endpoint", ep.route).
		Str("method", ep.method).
		Int("status", resp.StatusCode).
		Dur("duration", time.Since(start)).
		Str("request_id", reqID).
		Msg("api round trip")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		msg := ep.failure
		var eb errorBody
		if json.Unmarshal(raw, &eb) == nil && eb.Message != "" {
			msg = eb.Message
		}
		return resp.StatusCode, c.fail(domain.KindApplication, resp.StatusCode, msg,
			fmt.Errorf("%s %s: status %d", ep.method, ep.route, resp.StatusCode))
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return resp.StatusCode, nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		if errors.Is(err, io.EOF) {
			err = io.ErrUnexpectedEOF
		}
		return resp.StatusCode, c.fail(domain.KindDecode, 0, ep.failure, fmt.Errorf("decode %s: %w", ep.route, err))
	}
	return resp.StatusCode, nil
}

func (c *Client) fail(kind domain.Kind, status int, msg string, err error) error {
	return &domain.Error{Kind: kind, Status: status, Message: msg, Err: err}
}
