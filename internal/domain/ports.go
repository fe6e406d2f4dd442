package domain

import (
	"context"
	"net/http"
)

// Gateway is the remote booking API as seen by the application services.
type Gateway interface {
	// Account
	CurrentUser(ctx context.Context) (User, error)
	Register(ctx context.Context, f RegisterForm) error
	SignIn(ctx context.Context, f SignInForm) (SessionInfo, error)
	ValidateToken(ctx context.Context) (SessionInfo, error)
	SignOut(ctx context.Context) error

	// Hotels owned by the signed-in user
	AddMyHotel(ctx context.Context, f *FormData) (Hotel, error)
	MyHotels(ctx context.Context) ([]Hotel, error)
	MyHotelByID(ctx context.Context, id string) (Hotel, error)
	UpdateMyHotel(ctx context.Context, f *FormData) (Hotel, error)

	// Public catalogue
	SearchHotels(ctx context.Context, p SearchParams) (HotelSearchResponse, error)
	Hotels(ctx context.Context) ([]Hotel, error)
	HotelByID(ctx context.Context, id string) (Hotel, error)

	// Bookings and payments
	CreatePaymentIntent(ctx context.Context, hotelID, numberOfNights string) (PaymentIntentResponse, error)
	CreateRoomBooking(ctx context.Context, f BookingForm) error
	MyBookings(ctx context.Context) ([]Hotel, error)
	CreatePaymentOrder(ctx context.Context, hotelID string, nights int) (string, error)
}

// ScriptLoader makes the third-party checkout script available.
type ScriptLoader interface {
	LoadPaymentScript(ctx context.Context) error
}

// SessionStore keeps the API session cookies between process runs.
type SessionStore interface {
	Load(ctx context.Context) ([]*http.Cookie, error)
	Save(ctx context.Context, cookies []*http.Cookie) error
	Clear(ctx context.Context) error
}

// CookieJar is the part of the gateway client that holds session cookies.
type CookieJar interface {
	Cookies() []*http.Cookie
	RestoreCookies(cookies []*http.Cookie)
}
