package apitest

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"
)

// Routes lists every endpoint of the remote API as "METHOD pattern".
var Routes = []struct{ Method, Pattern string }{
	{http.MethodGet, "/api/users/me"},
	{http.MethodPost, "/api/users/register"},
	{http.MethodPost, "/api/auth/login"},
	{http.MethodGet, "/api/auth/validate-token"},
	{http.MethodPost, "/api/auth/logout"},
	{http.MethodPost, "/api/my-hotels"},
	{http.MethodGet, "/api/my-hotels"},
	{http.MethodGet, "/api/my-hotels/{id}"},
	{http.MethodPut, "/api/my-hotels/{id}"},
	{http.MethodGet, "/api/hotels/search"},
	{http.MethodGet, "/api/hotels"},
	{http.MethodGet, "/api/hotels/{id}"},
	{http.MethodPost, "/api/hotels/{id}/bookings/payment-intent"},
	{http.MethodPost, "/api/hotels/{id}/bookings"},
	{http.MethodGet, "/api/my-booking"},
}

// Response is what the fake answers on one route.
type Response struct {
	Status  int
	Body    string
	Header  http.Header
	Cookies []*http.Cookie
}

// Request is one recorded call.
type Request struct {
	Method   string
	Route    string // chi pattern, e.g. /api/hotels/{id}
	Path     string
	RawQuery string
	ID       string // {id} URL parameter, if any
	Header   http.Header
	Cookies  []*http.Cookie
	Body     []byte
}

// Query parses RawQuery. Order of repeated keys is preserved per key.
func (r Request) Query() url.Values {
	q, _ := url.ParseQuery(r.RawQuery)
	return q
}

func (r Request) Cookie(name string) (string, bool) {
	for _, c := range r.Cookies {
		if c.Name == name {
			return c.Value, true
		}
	}
	return "", false
}

func key(method, route string) string { return method + " " + route }

// Respond scripts the answer for method and route pattern.
func (s *Server) Respond(method, route string, r Response) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.responses[key(method, route)] = r
}

// RespondJSON scripts a JSON answer.
func (s *Server) RespondJSON(method, route string, status int, v any) {
	b, err := json.Marshal(v)
	if err != nil {
		panic(fmt.Sprintf("apitest: marshal response: %v", err))
	}
	s.Respond(method, route, Response{Status: status, Body: string(b)})
}

// Requests returns every request received so far.
func (s *Server) Requests() []Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Request, len(s.requests))
	copy(out, s.requests)
	return out
}

// Last returns the most recent request.
func (s *Server) Last() (Request, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.requests) == 0 {
		return Request{}, false
	}
	return s.requests[len(s.requests)-1], true
}

func (s *Server) mountRoutes() {
	for _, rt := range Routes {
		s.mux.Method(rt.Method, rt.Pattern, http.HandlerFunc(s.serve))
	}
}

func (s *Server) serve(w http.ResponseWriter, r *http.Request) {
	route := chi.RouteContext(r.Context()).RoutePattern()
	body, _ := io.ReadAll(r.Body)
	rec := Request{
		Method:   r.Method,
		Route:    route,
		Path:     r.URL.Path,
		RawQuery: r.URL.RawQuery,
		ID:       chi.URLParam(r, "id"),
		Header:   r.Header.Clone(),
		Cookies:  r.Cookies(),
		Body:     body,
	}

	s.mu.Lock()
	s.requests = append(s.requests, rec)
	resp, ok := s.responses[key(r.Method, route)]
	s.mu.Unlock()

	if !ok {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotImplemented)
		_, _ = fmt.Fprintf(w, `{"message":"no response scripted for %s %s"}`, r.Method, route)
		return
	}
	for k, vs := range resp.Header {
		for _, v := range vs {
			w.Header().Add(k, v)
		}
	}
	if w.Header().Get("Content-Type") == "" {
		w.Header().Set("Content-Type", "application/json")
	}
	for _, c := range resp.Cookies {
		http.SetCookie(w, c)
	}
	status := resp.Status
	if status == 0 {
		status = http.StatusOK
	}
	w.WriteHeader(status)
	_, _ = io.WriteString(w, resp.Body)
}
