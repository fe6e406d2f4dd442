package integration

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"hotel_booking/internal/adapters/api"
	"hotel_booking/internal/adapters/checkout"
	redisad "hotel_booking/internal/adapters/redis"
	"hotel_booking/internal/apitest"
	"hotel_booking/internal/app"
	"hotel_booking/internal/domain"
)

// ---------- helpers ----------

func newClient(t *testing.T, fake *apitest.Server) *api.Client {
	t.Helper()
	cl, err := api.New(api.Options{
		BaseURL: fake.URL(),
		Timeout: 2 * time.Second,
		Scripts: checkout.New(checkout.Options{URL: fake.URL() + "/v1/checkout.js"}),
	})
	if err != nil {
		t.Fatalf("api.New: %v", err)
	}
	return cl
}

// ---------- the test ----------

// A session opened by one process is picked up by the next one through Redis,
// then used for a full intent-based checkout.
func TestEndToEnd_SessionSurvivesRestartAndBooks(t *testing.T) {
	fake := apitest.NewServer(t)
	fake.Respond("POST", "/api/auth/login", apitest.Response{
		Body:    `{"userId":"u1"}`,
		Cookies: []*http.Cookie{{Name: "auth_token", Value: "jwt-abc", Path: "/", HttpOnly: true}},
	})
	fake.RespondJSON("GET", "/api/auth/validate-token", http.StatusOK, map[string]string{"userId": "u1"})
	fake.RespondJSON("POST", "/api/hotels/{id}/bookings/payment-intent", http.StatusOK, domain.PaymentIntentResponse{
		PaymentIntentID: "pi_42", ClientSecret: "secret", TotalCost: 240,
	})
	fake.Respond("POST", "/api/hotels/{id}/bookings", apitest.Response{Status: http.StatusOK})

	mr := miniredis.RunT(t)
	rc := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rc.Close() })
	store := redisad.NewWithClient(rc, "e2e", time.Hour)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	// first run: sign in and persist
	first := newClient(t, fake)
	if _, err := first.SignIn(ctx, domain.SignInForm{Email: "ana@example.com", Password: "pw"}); err != nil {
		t.Fatalf("SignIn: %v", err)
	}
	if err := app.NewSessionService(first, first, store).Persist(ctx); err != nil {
		t.Fatalf("Persist: %v", err)
	}

	// second run: restore, validate, book
	second := newClient(t, fake)
	sessions := app.NewSessionService(second, second, store)
	sessions.Restore(ctx)

	info, err := second.ValidateToken(ctx)
	if err != nil {
		t.Fatalf("ValidateToken: %v", err)
	}
	if info.UserID() != "u1" {
		t.Fatalf("unexpected session: %+v", info)
	}
	last, _ := fake.Last()
	if v, _ := last.Cookie("auth_token"); v != "jwt-abc" {
		t.Fatalf("restored cookie not sent: %+v", last.Cookies)
	}

	rcpt, err := app.NewCheckoutService(second, second).PayWithIntent(ctx, app.BookingRequest{
		HotelID:    "h42",
		FirstName:  "Ana",
		LastName:   "Silva",
		Email:      "ana@example.com",
		AdultCount: 2,
		CheckIn:    time.Date(2026, 11, 1, 0, 0, 0, 0, time.UTC),
		CheckOut:   time.Date(2026, 11, 3, 0, 0, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("PayWithIntent: %v", err)
	}
	if rcpt.PaymentIntentID != "pi_42" || rcpt.Nights != 2 {
		t.Fatalf("unexpected receipt: %+v", rcpt)
	}

	booking, _ := fake.Last()
	if booking.Route != "/api/hotels/{id}/bookings" || booking.ID != "h42" {
		t.Fatalf("unexpected booking request: %+v", booking)
	}
	var body domain.BookingForm
	if err := json.Unmarshal(booking.Body, &body); err != nil {
		t.Fatalf("decode booking body: %v", err)
	}
	if body.PaymentIntentID != "pi_42" || body.TotalCost != 240 {
		t.Fatalf("unexpected booking body: %+v", body)
	}
	if v, _ := booking.Cookie("auth_token"); v != "jwt-abc" {
		t.Fatalf("booking sent without session")
	}
}

func TestEndToEnd_OrderCheckoutWaitsForScript(t *testing.T) {
	fake := apitest.NewServer(t)
	fake.Mount("/v1/checkout.js", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/javascript")
		_, _ = w.Write([]byte("window.Razorpay = function(){};"))
	}))
	fake.Respond("POST", "/api/hotels/{id}/bookings/payment-intent", apitest.Response{Body: `{"orderId":"order_77","amount":100}`})

	cl := newClient(t, fake)
	id, err := app.NewCheckoutService(cl, cl).PayWithOrder(context.Background(), "h1", 1)
	if err != nil {
		t.Fatalf("PayWithOrder: %v", err)
	}
	if id != "order_77" {
		t.Fatalf("order id: %q", id)
	}
}

func TestEndToEnd_SignOutClearsSavedSession(t *testing.T) {
	fake := apitest.NewServer(t)
	fake.Respond("POST", "/api/auth/logout", apitest.Response{
		Cookies: []*http.Cookie{{Name: "auth_token", Value: "", Path: "/", MaxAge: -1}},
	})

	mr := miniredis.RunT(t)
	rc := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rc.Close() })
	store := redisad.NewWithClient(rc, "bye", time.Hour)

	ctx := context.Background()
	if err := store.Save(ctx, []*http.Cookie{{Name: "auth_token", Value: "old"}}); err != nil {
		t.Fatalf("seed: %v", err)
	}

	cl := newClient(t, fake)
	sessions := app.NewSessionService(cl, cl, store)
	sessions.Restore(ctx)
	if err := sessions.SignOut(ctx); err != nil {
		t.Fatalf("SignOut: %v", err)
	}
	if mr.Exists("session:bye") {
		t.Fatalf("saved session must be cleared")
	}
	if n := len(cl.Cookies()); n != 0 {
		t.Fatalf("expired cookie must leave the jar, got %d", n)
	}
}
