package domain

import "time"

type Hotel struct {
	ID            string    `json:"_id"`
	UserID        string    `json:"userId"`
	Name          string    `json:"name"`
	City          string    `json:"city"`
	Country       string    `json:"country"`
	Description   string    `json:"description"`
	Type          string    `json:"type"`
	AdultCount    int       `json:"adultCount"`
	ChildCount    int       `json:"childCount"`
	Facilities    []string  `json:"facilities"`
	PricePerNight float64   `json:"pricePerNight"`
	StarRating    int       `json:"starRating"`
	ImageURLs     []string  `json:"imageUrls"`
	LastUpdated   time.Time `json:"lastUpdated"`
	Bookings      []Booking `json:"bookings,omitempty"`
}

type Pagination struct {
	Total int `json:"total"`
	Page  int `json:"page"`
	Pages int `json:"pages"`
}

// HotelSearchResponse is one page of /api/hotels/search results.
type HotelSearchResponse struct {
	Data       []Hotel    `json:"data"`
	Pagination Pagination `json:"pagination"`
}
