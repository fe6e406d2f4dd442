package app

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"

	"hotel_booking/internal/domain"
)

type CheckoutService struct {
	api     domain.Gateway
	scripts domain.ScriptLoader
}

func NewCheckoutService(api domain.Gateway, scripts domain.ScriptLoader) *CheckoutService {
	return &CheckoutService{api: api, scripts: scripts}
}

// BookingRequest is the guest's side of a booking; payment fields are filled
// in by the checkout.
type BookingRequest struct {
	HotelID    string
	FirstName  string
	LastName   string
	Email      string
	AdultCount int
	ChildCount int
	CheckIn    time.Time
	CheckOut   time.Time
}

// Nights counts calendar nights between check-in and check-out.
func (r BookingRequest) Nights() int {
	in := time.Date(r.CheckIn.Year(), r.CheckIn.Month(), r.CheckIn.Day(), 0, 0, 0, 0, time.UTC)
	out := time.Date(r.CheckOut.Year(), r.CheckOut.Month(), r.CheckOut.Day(), 0, 0, 0, 0, time.UTC)
	return int(out.Sub(in).Hours() / 24)
}

func (r BookingRequest) validate() error {
	if r.HotelID == "" {
		return fmt.Errorf("hotel id is required")
	}
	if r.CheckIn.IsZero() || r.CheckOut.IsZero() {
		return fmt.Errorf("check-in and check-out are required")
	}
	if r.Nights() < 1 {
		return fmt.Errorf("check-out %s must be after check-in %s", r.CheckOut.Format(time.DateOnly), r.CheckIn.Format(time.DateOnly))
	}
	if r.AdultCount < 1 {
		return fmt.Errorf("at least one adult is required")
	}
	return nil
}

// Receipt is the outcome of an intent-based checkout.
type Receipt struct {
	HotelID         string  `json:"hotelId"`
	PaymentIntentID string  `json:"paymentIntentId"`
	TotalCost       float64 `json:"totalCost"`
	Nights          int     `json:"nights"`
}

// PayWithIntent opens a payment intent for the stay and books the room
// against it. Gateway errors are returned unchanged.
func (s *CheckoutService) PayWithIntent(ctx context.Context, r BookingRequest) (Receipt, error) {
	if err := r.validate(); err != nil {
		return Receipt{}, err
	}
	nights := r.Nights()
	pi, err := s.api.CreatePaymentIntent(ctx, r.HotelID, strconv.Itoa(nights))
	if err != nil {
		return Receipt{}, err
	}
	form := domain.BookingForm{
		FirstName:       r.FirstName,
		LastName:        r.LastName,
		Email:           r.Email,
		AdultCount:      r.AdultCount,
		ChildCount:      r.ChildCount,
		CheckIn:         r.CheckIn,
		CheckOut:        r.CheckOut,
		HotelID:         r.HotelID,
		PaymentIntentID: pi.PaymentIntentID,
		TotalCost:       pi.TotalCost,
	}
	if err := s.api.CreateRoomBooking(ctx, form); err != nil {
		return Receipt{}, err
	}
	log.Info().
		Str("hotel", r.HotelID).
		Str("payment_intent", pi.PaymentIntentID).
		Int("nights", nights).
		Msg("room booked")
	return Receipt{HotelID: r.HotelID, PaymentIntentID: pi.PaymentIntentID, TotalCost: pi.TotalCost, Nights: nights}, nil
}

// PayWithOrder waits for the checkout script, then opens an order for it.
func (s *CheckoutService) PayWithOrder(ctx context.Context, hotelID string, nights int) (string, error) {
	if nights < 1 {
		return "", fmt.Errorf("nights must be positive, got %d", nights)
	}
	if err := s.scripts.LoadPaymentScript(ctx); err != nil {
		return "", err
	}
	return s.api.CreatePaymentOrder(ctx, hotelID, nights)
}
