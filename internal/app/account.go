package app

import (
	"context"

	"golang.org/x/sync/errgroup"

	"hotel_booking/internal/domain"
)

type AccountService struct {
	api domain.Gateway
}

func NewAccountService(api domain.Gateway) *AccountService {
	return &AccountService{api: api}
}

// Overview is what the account page shows.
type Overview struct {
	User     domain.User    `json:"user"`
	Hotels   []domain.Hotel `json:"hotels"`
	Bookings []domain.Hotel `json:"bookings"`
}

// Overview loads the user, their hotels and their bookings concurrently. The
// first failure cancels the remaining calls and is returned as is.
func (s *AccountService) Overview(ctx context.Context) (Overview, error) {
	var out Overview
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		u, err := s.api.CurrentUser(ctx)
		out.User = u
		return err
	})
	g.Go(func() error {
		hs, err := s.api.MyHotels(ctx)
		out.Hotels = hs
		return err
	})
	g.Go(func() error {
		bs, err := s.api.MyBookings(ctx)
		out.Bookings = bs
		return err
	})
	if err := g.Wait(); err != nil {
		return Overview{}, err
	}
	return out, nil
}
