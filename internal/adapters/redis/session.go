package redisad

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"

	"hotel_booking/internal/adapters/observability"
	"hotel_booking/internal/domain"
)

var _ domain.SessionStore = (*SessionStore)(nil)

// SessionStore keeps one profile's API cookies under session:<profile>.
type SessionStore struct {
	c   redis.UniversalClient
	key string
	ttl time.Duration
}

func New(addr, pass string, db int, profile string, ttl time.Duration) *SessionStore {
	return NewWithClient(redis.NewClient(&redis.Options{Addr: addr, Password: pass, DB: db}), profile, ttl)
}

func NewWithClient(c redis.UniversalClient, profile string, ttl time.Duration) *SessionStore {
	if profile == "" {
		profile = "default"
	}
	return &SessionStore{c: c, key: "session:" + profile, ttl: ttl}
}

// storedCookie is the persisted form; the jar only hands out name and value.
type storedCookie struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// Load returns nil, nil when nothing is stored.
func (s *SessionStore) Load(ctx context.Context) ([]*http.Cookie, error) {
	v, err := s.c.Get(ctx, s.key).Bytes()
	if err == redis.Nil {
		observability.ObserveSession("redis", "miss")
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	observability.ObserveSession("redis", "hit")
	var stored []storedCookie
	if err := json.Unmarshal(v, &stored); err != nil {
		return nil, err
	}
	out := make([]*http.Cookie, 0, len(stored))
	for _, sc := range stored {
		out = append(out, &http.Cookie{Name: sc.Name, Value: sc.Value})
	}
	return out, nil
}

// Save replaces the stored cookies; an empty set clears the key.
func (s *SessionStore) Save(ctx context.Context, cookies []*http.Cookie) error {
	if len(cookies) == 0 {
		return s.Clear(ctx)
	}
	stored := make([]storedCookie, 0, len(cookies))
	for _, c := range cookies {
		stored = append(stored, storedCookie{Name: c.Name, Value: c.Value})
	}
	b, err := json.Marshal(stored)
	if err != nil {
		return err
	}
	observability.ObserveSession("redis", "set")
	return s.c.Set(ctx, s.key, b, s.ttl).Err()
}

func (s *SessionStore) Clear(ctx context.Context) error {
	observability.ObserveSession("redis", "del")
	return s.c.Del(ctx, s.key).Err()
}

func (s *SessionStore) Close() error { return s.c.Close() }
