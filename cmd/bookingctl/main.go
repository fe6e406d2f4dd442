package main

import (
	"context"
	"encoding/json"
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"

	"hotel_booking/internal/adapters/api"
	"hotel_booking/internal/adapters/checkout"
	"hotel_booking/internal/adapters/observability"
	redisad "hotel_booking/internal/adapters/redis"
	"hotel_booking/internal/app"
	"hotel_booking/internal/shared"
)

// runtime is everything a command needs, built once in Before.
type runtime struct {
	cfg      shared.Config
	client   *api.Client
	store    *redisad.SessionStore
	sessions *app.SessionService
	account  *app.AccountService
	checkout *app.CheckoutService

	// set by logout so After does not save the session back
	skipPersist bool
}

func main() {
	// .env is optional
	_ = godotenv.Load()

	rt := &runtime{}
	cliApp := &cli.App{
		Name:  "bookingctl",
		Usage: "work with the hotel booking API from the terminal",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "profile-file", Usage: "YAML profile overriding the environment", EnvVars: []string{"BOOKING_PROFILE_FILE"}},
		},
		Before:   rt.setup,
		After:    rt.teardown,
		Commands: commands(rt),
	}
	if err := cliApp.Run(os.Args); err != nil {
		log.Error().Err(err).Str("kind", observability.LabelErr(err)).Msg("command failed")
		os.Exit(1)
	}
}

func (rt *runtime) setup(c *cli.Context) error {
	cfg := shared.Load()
	if path := c.String("profile-file"); path != "" {
		p, err := shared.LoadProfile(path)
		if err != nil {
			return err
		}
		cfg = p.Apply(cfg)
	}
	rt.cfg = cfg

	// set global logger (console in dev, JSON otherwise)
	log.Logger = observability.NewLogger(cfg.AppEnv)

	observability.Serve(cfg.MetricsAddr)

	client, err := api.New(api.Options{
		BaseURL: cfg.APIBaseURL,
		Timeout: cfg.APITimeout,
		RPS:     cfg.APIRPS,
		Scripts: checkout.New(checkout.Options{URL: cfg.CheckoutScript, Timeout: cfg.APITimeout}),
	})
	if err != nil {
		return err
	}
	rt.client = client
	rt.store = redisad.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB, cfg.SessionProfile, cfg.SessionTTL)
	rt.sessions = app.NewSessionService(client, client, rt.store)
	rt.account = app.NewAccountService(client)
	rt.checkout = app.NewCheckoutService(client, client)

	rt.sessions.Restore(c.Context)
	log.Debug().Str("api", cfg.APIBaseURL).Str("profile", cfg.SessionProfile).Msg("client ready")
	return nil
}

func (rt *runtime) teardown(c *cli.Context) error {
	if rt.store == nil {
		return nil
	}
	defer rt.store.Close()
	if rt.skipPersist {
		return nil
	}
	if err := rt.sessions.Persist(context.WithoutCancel(c.Context)); err != nil {
		log.Warn().Err(err).Msg("session not saved")
	}
	return nil
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
