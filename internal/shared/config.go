package shared

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"
)

type Config struct {
	AppEnv         string
	APIBaseURL     string
	APITimeout     time.Duration
	APIRPS         int
	CheckoutScript string
	RedisAddr      string
	RedisDB        int
	RedisPass      string
	SessionProfile string
	SessionTTL     time.Duration
	MetricsAddr    string
}

func Load() Config {
	atoi := func(k string, def int) int {
		if v := os.Getenv(k); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				return n
			}
			log.Warn().Str("key", k).Str("value", v).Msg("ignoring non-numeric setting")
		}
		return def
	}
	c := Config{
		AppEnv:         env("APP_ENV", "prod"),
		APIBaseURL:     env("API_BASE_URL", "http://localhost:7000"),
		APITimeout:     time.Duration(atoi("API_TIMEOUT_SECONDS", 20)) * time.Second,
		APIRPS:         atoi("API_RPS", 0),
		CheckoutScript: env("CHECKOUT_SCRIPT_URL", "https://checkout.razorpay.com/v1/checkout.js"),
		RedisAddr:      env("REDIS_ADDR", "localhost:6379"),
		RedisDB:        atoi("REDIS_DB", 0),
		RedisPass:      env("REDIS_PASSWORD", ""),
		SessionProfile: env("SESSION_PROFILE", "default"),
		SessionTTL:     time.Duration(atoi("SESSION_TTL_SECONDS", 86400)) * time.Second,
		MetricsAddr:    env("METRICS_ADDR", ""),
	}
	return c
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

// Profile is a YAML file of per-user overrides. Empty values keep the
// environment's setting.
type Profile struct {
	APIBaseURL     string `yaml:"api_base_url"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
	RPS            int    `yaml:"rps"`
	CheckoutScript string `yaml:"checkout_script_url"`
	MetricsAddr    string `yaml:"metrics_addr"`
	Redis          struct {
		Addr     string `yaml:"addr"`
		Password string `yaml:"password"`
		DB       *int   `yaml:"db"`
	} `yaml:"redis"`
	Session struct {
		Profile    string `yaml:"profile"`
		TTLSeconds int    `yaml:"ttl_seconds"`
	} `yaml:"session"`
}

func LoadProfile(path string) (*Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var p Profile
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("parse profile %s: %w", path, err)
	}
	return &p, nil
}

// Apply returns c with p's non-empty values laid over it.
func (p *Profile) Apply(c Config) Config {
	if p == nil {
		return c
	}
	if p.APIBaseURL != "" {
		c.APIBaseURL = p.APIBaseURL
	}
	if p.TimeoutSeconds > 0 {
		c.APITimeout = time.Duration(p.TimeoutSeconds) * time.Second
	}
	if p.RPS > 0 {
		c.APIRPS = p.RPS
	}
	if p.CheckoutScript != "" {
		c.CheckoutScript = p.CheckoutScript
	}
	if p.Redis.Addr != "" {
		c.RedisAddr = p.Redis.Addr
	}
	if p.Redis.Password != "" {
		c.RedisPass = p.Redis.Password
	}
	if p.Redis.DB != nil {
		c.RedisDB = *p.Redis.DB
	}
	if p.Session.Profile != "" {
		c.SessionProfile = p.Session.Profile
	}
	if p.Session.TTLSeconds > 0 {
		c.SessionTTL = time.Duration(p.Session.TTLSeconds) * time.Second
	}
	if p.MetricsAddr != "" {
		c.MetricsAddr = p.MetricsAddr
	}
	return c
}
