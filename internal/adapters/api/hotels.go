package api

import (
	"context"
	"net/http"
	"net/url"

	"hotel_booking/internal/domain"
)

const (
	msgFetchHotels = "Error fetching hotels"
	msgAddHotel    = "Failed to add hotel"
	msgUpdateHotel = "Failed to update Hotel"
)

// ---- hotels owned by the signed-in user ----

func (c *Client) AddMyHotel(ctx context.Context, f *domain.FormData) (domain.Hotel, error) {
	b, err := formBody(f)
	if err != nil {
		return domain.Hotel{}, c.fail(domain.KindTransport, 0, msgAddHotel, err)
	}
	var out domain.Hotel
	ep := endpoint{method: http.MethodPost, path: "/api/my-hotels", route: "/api/my-hotels", credentials: true, failure: msgAddHotel}
	if err := c.call(ctx, ep, b, &out); err != nil {
		return domain.Hotel{}, err
	}
	return out, nil
}

func (c *Client) MyHotels(ctx context.Context) ([]domain.Hotel, error) {
	var out []domain.Hotel
	ep := endpoint{method: http.MethodGet, path: "/api/my-hotels", route: "/api/my-hotels", credentials: true, failure: msgFetchHotels}
	if err := c.call(ctx, ep, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) MyHotelByID(ctx context.Context, id string) (domain.Hotel, error) {
	var out domain.Hotel
	ep := endpoint{method: http.MethodGet, path: "/api/my-hotels/" + url.PathEscape(id), route: "/api/my-hotels/{id}", credentials: true, failure: msgFetchHotels}
	if err := c.call(ctx, ep, nil, &out); err != nil {
		return domain.Hotel{}, err
	}
	return out, nil
}

// UpdateMyHotel sends f to the hotel named by its "hotelId" field.
func (c *Client) UpdateMyHotel(ctx context.Context, f *domain.FormData) (domain.Hotel, error) {
	b, err := formBody(f)
	if err != nil {
		return domain.Hotel{}, c.fail(domain.KindTransport, 0, msgUpdateHotel, err)
	}
	var out domain.Hotel
	ep := endpoint{
		method:      http.MethodPut,
		path:        "/api/my-hotels/" + url.PathEscape(f.Get("hotelId")),
		route:       "/api/my-hotels/{id}",
		credentials: true,
		failure:     msgUpdateHotel,
	}
	if err := c.call(ctx, ep, b, &out); err != nil {
		return domain.Hotel{}, err
	}
	return out, nil
}

// ---- public catalogue (no session cookie) ----

func (c *Client) SearchHotels(ctx context.Context, p domain.SearchParams) (domain.HotelSearchResponse, error) {
	var out domain.HotelSearchResponse
	ep := endpoint{method: http.MethodGet, path: "/api/hotels/search", query: p.Query(), route: "/api/hotels/search", failure: msgFetchHotels}
	if err := c.call(ctx, ep, nil, &out); err != nil {
		return domain.HotelSearchResponse{}, err
	}
	return out, nil
}

func (c *Client) Hotels(ctx context.Context) ([]domain.Hotel, error) {
	var out []domain.Hotel
	ep := endpoint{method: http.MethodGet, path: "/api/hotels", route: "/api/hotels", failure: msgFetchHotels}
	if err := c.call(ctx, ep, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) HotelByID(ctx context.Context, id string) (domain.Hotel, error) {
	var out domain.Hotel
	ep := endpoint{method: http.MethodGet, path: "/api/hotels/" + url.PathEscape(id), route: "/api/hotels/{id}", failure: msgFetchHotels}
	if err := c.call(ctx, ep, nil, &out); err != nil {
		return domain.Hotel{}, err
	}
	return out, nil
}
