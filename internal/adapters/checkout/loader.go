// Package checkout makes the third-party payment checkout script available
// before checkout code depends on it.
package checkout

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/singleflight"

	"hotel_booking/internal/adapters/observability"
	"hotel_booking/internal/domain"
)

const (
	DefaultURL = "https://checkout.razorpay.com/v1/checkout.js"

	msgLoad   = "Error loading Razorpay script"
	maxScript = 8 << 20
)

type Script struct {
	Src      string
	Async    bool
	Size     int
	LoadedAt time.Time
}

// Document holds the scripts appended to the page head, each source once.
type Document struct {
	mu   sync.Mutex
	head []Script
}

func NewDocument() *Document { return &Document{} }

// Append adds s unless a script with the same source is already present.
func (d *Document) Append(s Script) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	for _, h := range d.head {
		if h.Src == s.Src {
			return false
		}
	}
	d.head = append(d.head, s)
	return true
}

func (d *Document) Lookup(src string) (Script, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	for _, h := range d.head {
		if h.Src == src {
			return h, true
		}
	}
	return Script{}, false
}

func (d *Document) Scripts() []Script {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]Script, len(d.head))
	copy(out, d.head)
	return out
}

type Options struct {
	URL       string // defaults to DefaultURL
	Timeout   time.Duration
	Document  *Document // defaults to a fresh Document
	Transport http.RoundTripper
}

type Loader struct {
	url string
	hc  *http.Client
	doc *Document
	sf  singleflight.Group
}

func New(opts Options) *Loader {
	if opts.URL == "" {
		opts.URL = DefaultURL
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 20 * time.Second
	}
	if opts.Document == nil {
		opts.Document = NewDocument()
	}
	return &Loader{
		url: opts.URL,
		hc:  &http.Client{Timeout: opts.Timeout, Transport: opts.Transport},
		doc: opts.Document,
	}
}

func (l *Loader) URL() string { return l.url }

func (l *Loader) Document() *Document { return l.doc }

// Load returns when the script has loaded or failed to. Concurrent callers
// share a single fetch; later callers get the already loaded script.
func (l *Loader) Load(ctx context.Context) (Script, error) {
	if s, ok := l.doc.Lookup(l.url); ok {
		observability.ObserveScript("cached")
		return s, nil
	}
	// the shared fetch outlives any single caller's cancellation
	ch := l.sf.DoChan(l.url, func() (any, error) {
		return l.fetch(context.WithoutCancel(ctx))
	})
	select {
	case <-ctx.Done():
		return Script{}, &domain.Error{Kind: domain.KindResource, Message: msgLoad, Err: ctx.Err()}
	case r := <-ch:
		if r.Err != nil {
			observability.ObserveScript("error")
			log.Warn().Str("src", l.url).Err(r.Err).Msg("checkout script load failed")
			return Script{}, &domain.Error{Kind: domain.KindResource, Message: msgLoad, Err: r.Err}
		}
		return r.Val.(Script), nil
	}
}

func (l *Loader) fetch(ctx context.Context) (Script, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, l.url, nil)
	if err != nil {
		return Script{}, err
	}
	req.Header.Set("Accept", "application/javascript, */*;q=0.8")
	resp, err := l.hc.Do(req)
	if err != nil {
		return Script{}, err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return Script{}, fmt.Errorf("GET %s: status %d", l.url, resp.StatusCode)
	}
	n, err := io.Copy(io.Discard, io.LimitReader(resp.Body, maxScript))
	if err != nil {
		return Script{}, fmt.Errorf("read %s: %w", l.url, err)
	}
	if n == 0 {
		return Script{}, fmt.Errorf("GET %s: empty script", l.url)
	}
	s := Script{Src: l.url, Async: true, Size: int(n), LoadedAt: time.Now()}
	if !l.doc.Append(s) {
		// another loader sharing the document got there first
		s, _ = l.doc.Lookup(l.url)
	}
	observability.ObserveScript("ok")
	log.Debug().Str("src", l.url).Int("bytes", int(n)).Msg("checkout script loaded")
	return s, nil
}
