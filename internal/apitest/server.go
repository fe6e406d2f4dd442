// Package apitest is an in-process fake of the hotel booking API. It answers
// every endpoint with scripted responses and records what it received.
package apitest

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
)

type Server struct {
	ts  *httptest.Server
	mux *chi.Mux

	mu        sync.Mutex
	responses map[string]Response // "METHOD route"
	requests  []Request
}

// NewServer starts a fake API that is closed when t finishes.
func NewServer(t testing.TB) *Server {
	t.Helper()
	m := chi.NewRouter()
	m.Use(chimw.Recoverer)
	m.Use(Logger(zerolog.New(zerolog.NewTestWriter(t)).Level(zerolog.DebugLevel)))

	s := &Server{mux: m, responses: map[string]Response{}}
	s.mountRoutes()
	s.ts = httptest.NewServer(m)
	t.Cleanup(s.ts.Close)
	return s
}

// URL is the origin to hand to the client.
func (s *Server) URL() string { return s.ts.URL }

// Mount attaches an extra handler, e.g. a checkout script.
func (s *Server) Mount(path string, h http.Handler) {
	s.mux.Handle(path, h)
}

// Close shuts the server down early, for transport failure tests.
func (s *Server) Close() { s.ts.Close() }
