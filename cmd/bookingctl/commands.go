package main

import (
	"fmt"
	"mime"
	"os"
	"path/filepath"
	"time"

	"github.com/urfave/cli/v2"

	"hotel_booking/internal/app"
	"hotel_booking/internal/domain"
)

func commands(rt *runtime) []*cli.Command {
	return []*cli.Command{
		{
			Name:  "me",
			Usage: "show the signed-in user",
			Action: func(c *cli.Context) error {
				u, err := rt.client.CurrentUser(c.Context)
				if err != nil {
					return err
				}
				return printJSON(u)
			},
		},
		{
			Name:  "register",
			Usage: "create an account and sign in",
			Flags: []cli.Flag{
				&cli.StringFlag{Name: "first-name", Required: true},
				&cli.StringFlag{Name: "last-name", Required: true},
				&cli.StringFlag{Name: "email", Required: true},
				&cli.StringFlag{Name: "password", Required: true, EnvVars: []string{"BOOKING_PASSWORD"}},
			},
			Action: func(c *cli.Context) error {
				return rt.client.Register(c.Context, domain.RegisterForm{
					FirstName:       c.String("first-name"),
					LastName:        c.String("last-name"),
					Email:           c.String("email"),
					Password:        c.String("password"),
					ConfirmPassword: c.String("password"),
				})
			},
		},
		{
			Name:  "login",
			Usage: "sign in and keep the session",
			Flags: []cli.Flag{
				&cli.StringFlag{Name: "email", Required: true},
				&cli.StringFlag{Name: "password", Required: true, EnvVars: []string{"BOOKING_PASSWORD"}},
			},
			Action: func(c *cli.Context) error {
				s, err := rt.client.SignIn(c.Context, domain.SignInForm{Email: c.String("email"), Password: c.String("password")})
				if err != nil {
					return err
				}
				return printJSON(s)
			},
		},
		{
			Name:  "validate",
			Usage: "check that the saved session is still valid",
			Action: func(c *cli.Context) error {
				s, err := rt.client.ValidateToken(c.Context)
				if err != nil {
					return err
				}
				return printJSON(s)
			},
		},
		{
			Name:  "logout",
			Usage: "sign out and forget the saved session",
			Action: func(c *cli.Context) error {
				rt.skipPersist = true
				return rt.sessions.SignOut(c.Context)
			},
		},
		{
			Name:        "hotels",
			Usage:       "browse the public catalogue",
			Subcommands: hotelCommands(rt),
		},
		{
			Name:        "my-hotels",
			Usage:       "manage hotels you own",
			Subcommands: myHotelCommands(rt),
		},
		{
			Name:        "book",
			Usage:       "pay for and book a stay",
			Subcommands: bookCommands(rt),
		},
		{
			Name:  "bookings",
			Usage: "list your bookings",
			Action: func(c *cli.Context) error {
				bs, err := rt.client.MyBookings(c.Context)
				if err != nil {
					return err
				}
				return printJSON(bs)
			},
		},
		{
			Name:  "overview",
			Usage: "user, owned hotels and bookings in one call",
			Action: func(c *cli.Context) error {
				o, err := rt.account.Overview(c.Context)
				if err != nil {
					return err
				}
				return printJSON(o)
			},
		},
		{
			Name:  "script",
			Usage: "check that the checkout script can be loaded",
			Action: func(c *cli.Context) error {
				return rt.client.LoadPaymentScript(c.Context)
			},
		},
	}
}

func hotelCommands(rt *runtime) []*cli.Command {
	return []*cli.Command{
		{
			Name: "list",
			Action: func(c *cli.Context) error {
				hs, err := rt.client.Hotels(c.Context)
				if err != nil {
					return err
				}
				return printJSON(hs)
			},
		},
		{
			Name:      "get",
			ArgsUsage: "<hotel-id>",
			Action: func(c *cli.Context) error {
				id, err := firstArg(c, "hotel-id")
				if err != nil {
					return err
				}
				h, err := rt.client.HotelByID(c.Context, id)
				if err != nil {
					return err
				}
				return printJSON(h)
			},
		},
		{
			Name: "search",
			Flags: []cli.Flag{
				&cli.StringFlag{Name: "destination"},
				&cli.StringFlag{Name: "check-in"},
				&cli.StringFlag{Name: "check-out"},
				&cli.StringFlag{Name: "adults"},
				&cli.StringFlag{Name: "children"},
				&cli.StringFlag{Name: "page"},
				&cli.StringFlag{Name: "max-price"},
				&cli.StringFlag{Name: "sort", Usage: "starRating, pricePerNightAsc or pricePerNightDesc"},
				&cli.StringSliceFlag{Name: "facility"},
				&cli.StringSliceFlag{Name: "type"},
				&cli.StringSliceFlag{Name: "star"},
			},
			Action: func(c *cli.Context) error {
				res, err := rt.client.SearchHotels(c.Context, domain.SearchParams{
					Destination: c.String("destination"),
					CheckIn:     c.String("check-in"),
					CheckOut:    c.String("check-out"),
					AdultCount:  c.String("adults"),
					ChildCount:  c.String("children"),
					Page:        c.String("page"),
					MaxPrice:    c.String("max-price"),
					SortOption:  c.String("sort"),
					Facilities:  c.StringSlice("facility"),
					Types:       c.StringSlice("type"),
					Stars:       c.StringSlice("star"),
				})
				if err != nil {
					return err
				}
				return printJSON(res)
			},
		},
	}
}

func hotelFormFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{Name: "name", Required: true},
		&cli.StringFlag{Name: "city", Required: true},
		&cli.StringFlag{Name: "country", Required: true},
		&cli.StringFlag{Name: "description"},
		&cli.StringFlag{Name: "type", Value: "Hotel"},
		&cli.Float64Flag{Name: "price", Required: true},
		&cli.IntFlag{Name: "stars", Value: 3},
		&cli.IntFlag{Name: "adults", Value: 2},
		&cli.IntFlag{Name: "children"},
		&cli.StringSliceFlag{Name: "facility"},
		&cli.StringSliceFlag{Name: "image-url", Usage: "already uploaded image to keep"},
		&cli.StringSliceFlag{Name: "image", Usage: "local image file to upload"},
	}
}

func hotelForm(c *cli.Context, id string) (domain.HotelForm, error) {
	f := domain.HotelForm{
		HotelID:       id,
		Name:          c.String("name"),
		City:          c.String("city"),
		Country:       c.String("country"),
		Description:   c.String("description"),
		Type:          c.String("type"),
		PricePerNight: c.Float64("price"),
		StarRating:    c.Int("stars"),
		AdultCount:    c.Int("adults"),
		ChildCount:    c.Int("children"),
		Facilities:    c.StringSlice("facility"),
		ImageURLs:     c.StringSlice("image-url"),
	}
	for _, path := range c.StringSlice("image") {
		b, err := os.ReadFile(path)
		if err != nil {
			return domain.HotelForm{}, err
		}
		f.ImageFiles = append(f.ImageFiles, domain.FormFile{
			Filename:    filepath.Base(path),
			ContentType: mime.TypeByExtension(filepath.Ext(path)),
			Content:     b,
		})
	}
	return f, nil
}

func myHotelCommands(rt *runtime) []*cli.Command {
	return []*cli.Command{
		{
			Name: "list",
			Action: func(c *cli.Context) error {
				hs, err := rt.client.MyHotels(c.Context)
				if err != nil {
					return err
				}
				return printJSON(hs)
			},
		},
		{
			Name:      "get",
			ArgsUsage: "<hotel-id>",
			Action: func(c *cli.Context) error {
				id, err := firstArg(c, "hotel-id")
				if err != nil {
					return err
				}
				h, err := rt.client.MyHotelByID(c.Context, id)
				if err != nil {
					return err
				}
				return printJSON(h)
			},
		},
		{
			Name:  "add",
			Flags: hotelFormFlags(),
			Action: func(c *cli.Context) error {
				f, err := hotelForm(c, "")
				if err != nil {
					return err
				}
				h, err := rt.client.AddMyHotel(c.Context, f.FormData())
				if err != nil {
					return err
				}
				return printJSON(h)
			},
		},
		{
			Name:      "update",
			ArgsUsage: "<hotel-id>",
			Flags:     hotelFormFlags(),
			Action: func(c *cli.Context) error {
				id, err := firstArg(c, "hotel-id")
				if err != nil {
					return err
				}
				f, err := hotelForm(c, id)
				if err != nil {
					return err
				}
				h, err := rt.client.UpdateMyHotel(c.Context, f.FormData())
				if err != nil {
					return err
				}
				return printJSON(h)
			},
		},
	}
}

func bookCommands(rt *runtime) []*cli.Command {
	return []*cli.Command{
		{
			Name:      "intent",
			Usage:     "open a payment intent for a stay",
			ArgsUsage: "<hotel-id>",
			Flags:     []cli.Flag{&cli.IntFlag{Name: "nights", Value: 1}},
			Action: func(c *cli.Context) error {
				id, err := firstArg(c, "hotel-id")
				if err != nil {
					return err
				}
				pi, err := rt.client.CreatePaymentIntent(c.Context, id, fmt.Sprint(c.Int("nights")))
				if err != nil {
					return err
				}
				return printJSON(pi)
			},
		},
		{
			Name:      "room",
			Usage:     "pay through a payment intent and book the room",
			ArgsUsage: "<hotel-id>",
			Flags: []cli.Flag{
				&cli.StringFlag{Name: "first-name", Required: true},
				&cli.StringFlag{Name: "last-name", Required: true},
				&cli.StringFlag{Name: "email", Required: true},
				&cli.StringFlag{Name: "check-in", Required: true, Usage: "YYYY-MM-DD"},
				&cli.StringFlag{Name: "check-out", Required: true, Usage: "YYYY-MM-DD"},
				&cli.IntFlag{Name: "adults", Value: 1},
				&cli.IntFlag{Name: "children"},
			},
			Action: func(c *cli.Context) error {
				id, err := firstArg(c, "hotel-id")
				if err != nil {
					return err
				}
				in, err := time.Parse(time.DateOnly, c.String("check-in"))
				if err != nil {
					return fmt.Errorf("check-in: %w", err)
				}
				out, err := time.Parse(time.DateOnly, c.String("check-out"))
				if err != nil {
					return fmt.Errorf("check-out: %w", err)
				}
				rc, err := rt.checkout.PayWithIntent(c.Context, app.BookingRequest{
					HotelID:    id,
					FirstName:  c.String("first-name"),
					LastName:   c.String("last-name"),
					Email:      c.String("email"),
					AdultCount: c.Int("adults"),
					ChildCount: c.Int("children"),
					CheckIn:    in,
					CheckOut:   out,
				})
				if err != nil {
					return err
				}
				return printJSON(rc)
			},
		},
		{
			Name:      "order",
			Usage:     "load the checkout script and open an order for it",
			ArgsUsage: "<hotel-id>",
			Flags:     []cli.Flag{&cli.IntFlag{Name: "nights", Value: 1}},
			Action: func(c *cli.Context) error {
				id, err := firstArg(c, "hotel-id")
				if err != nil {
					return err
				}
				orderID, err := rt.checkout.PayWithOrder(c.Context, id, c.Int("nights"))
				if err != nil {
					return err
				}
				return printJSON(map[string]string{"orderId": orderID})
			},
		},
	}
}

func firstArg(c *cli.Context, name string) (string, error) {
	if c.NArg() < 1 || c.Args().First() == "" {
		return "", cli.Exit(fmt.Sprintf("missing <%s>", name), 2)
	}
	return c.Args().First(), nil
}
