package domain

import "time"

type Booking struct {
	ID         string    `json:"_id"`
	UserID     string    `json:"userId"`
	FirstName  string    `json:"firstName"`
	LastName   string    `json:"lastName"`
	Email      string    `json:"email"`
	AdultCount int       `json:"adultCount"`
	ChildCount int       `json:"childCount"`
	CheckIn    time.Time `json:"checkIn"`
	CheckOut   time.Time `json:"checkOut"`
	TotalCost  float64   `json:"totalCost"`
}

// BookingForm is the body of POST /api/hotels/{id}/bookings.
// HotelID selects the endpoint and is sent along with the rest.
type BookingForm struct {
	FirstName       string    `json:"firstName"`
	LastName        string    `json:"lastName"`
	Email           string    `json:"email"`
	AdultCount      int       `json:"adultCount"`
	ChildCount      int       `json:"childCount"`
	CheckIn         time.Time `json:"checkIn"`
	CheckOut        time.Time `json:"checkOut"`
	HotelID         string    `json:"hotelId"`
	PaymentIntentID string    `json:"paymentIntentId"`
	TotalCost       float64   `json:"totalCost"`
}

type PaymentIntentResponse struct {
	PaymentIntentID string  `json:"paymentIntentId"`
	ClientSecret    string  `json:"clientSecret"`
	TotalCost       float64 `json:"totalCost"`
	OrderID         string  `json:"orderId,omitempty"` // only set by order-based checkouts
}
