package api

import (
	"context"
	"net/http"
	"net/url"

	"hotel_booking/internal/domain"
)

const (
	msgPaymentIntent = "Error fetching payment intent"
	msgBookRoom      = "Error booking room"
	msgMyBookings    = "Unable to fetch bookings"
	msgCreateOrder   = "Error creating Razorpay order"
)

func paymentIntentPath(hotelID string) string {
	return "/api/hotels/" + url.PathEscape(hotelID) + "/bookings/payment-intent"
}

// CreatePaymentIntent asks the server to price the stay and open a payment.
// numberOfNights is sent as a JSON string.
func (c *Client) CreatePaymentIntent(ctx context.Context, hotelID, numberOfNights string) (domain.PaymentIntentResponse, error) {
	b, err := jsonBody(map[string]string{"numberOfNights": numberOfNights})
	if err != nil {
		return domain.PaymentIntentResponse{}, c.fail(domain.KindTransport, 0, msgPaymentIntent, err)
	}
	var out domain.PaymentIntentResponse
	ep := endpoint{
		method:      http.MethodPost,
		path:        paymentIntentPath(hotelID),
		route:       "/api/hotels/{id}/bookings/payment-intent",
		credentials: true,
		failure:     msgPaymentIntent,
	}
	if err := c.call(ctx, ep, b, &out); err != nil {
		return domain.PaymentIntentResponse{}, err
	}
	return out, nil
}

// CreateRoomBooking books f.HotelID. The response body is not read.
func (c *Client) CreateRoomBooking(ctx context.Context, f domain.BookingForm) error {
	b, err := jsonBody(f)
	if err != nil {
		return c.fail(domain.KindTransport, 0, msgBookRoom, err)
	}
	ep := endpoint{
		method:      http.MethodPost,
		path:        "/api/hotels/" + url.PathEscape(f.HotelID) + "/bookings",
		route:       "/api/hotels/{id}/bookings",
		credentials: true,
		failure:     msgBookRoom,
	}
	return c.call(ctx, ep, b, nil)
}

// MyBookings lists the hotels the user has booked, each carrying only the
// user's own bookings.
func (c *Client) MyBookings(ctx context.Context) ([]domain.Hotel, error) {
	var out []domain.Hotel
	ep := endpoint{method: http.MethodGet, path: "/api/my-booking", route: "/api/my-booking", credentials: true, failure: msgMyBookings}
	if err := c.call(ctx, ep, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CreatePaymentOrder opens an order for the external checkout and returns its
// id. Every failure is reported with the same message; the underlying error
// stays reachable through errors.As.
func (c *Client) CreatePaymentOrder(ctx context.Context, hotelID string, nights int) (string, error) {
	orderID, err := c.createPaymentOrder(ctx, hotelID, nights)
	if err != nil {
		return "", &domain.Error{Kind: domain.KindOf(err), Status: domain.StatusOf(err), Message: msgCreateOrder, Err: err}
	}
	return orderID, nil
}

func (c *Client) createPaymentOrder(ctx context.Context, hotelID string, nights int) (string, error) {
	b, err := jsonBody(map[string]int{"numberOfNights": nights})
	if err != nil {
		return "", err
	}
	var out struct {
		OrderID string `json:"orderId"`
	}
	ep := endpoint{
		method:      http.MethodPost,
		path:        paymentIntentPath(hotelID),
		route:       "/api/hotels/{id}/bookings/payment-intent",
		credentials: true,
		failure:     msgCreateOrder,
	}
	if err := c.call(ctx, ep, b, &out); err != nil {
		return "", err
	}
	return out.OrderID, nil
}

// LoadPaymentScript returns once the checkout script has loaded, or with the
// reason it could not.
func (c *Client) LoadPaymentScript(ctx context.Context) error {
	_, err := c.scripts.Load(ctx)
	return err
}
