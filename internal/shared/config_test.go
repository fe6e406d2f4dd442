package shared_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"hotel_booking/internal/shared"
)

func TestLoad_DefaultsAndEnv(t *testing.T) {
	t.Setenv("API_BASE_URL", "https://booking.example.com")
	t.Setenv("API_TIMEOUT_SECONDS", "5")
	t.Setenv("API_RPS", "not-a-number")
	t.Setenv("SESSION_PROFILE", "")

	c := shared.Load()
	if c.APIBaseURL != "https://booking.example.com" {
		t.Fatalf("base: %q", c.APIBaseURL)
	}
	if c.APITimeout != 5*time.Second {
		t.Fatalf("timeout: %v", c.APITimeout)
	}
	if c.APIRPS != 0 {
		t.Fatalf("bad number must fall back to default, got %d", c.APIRPS)
	}
	if c.SessionProfile != "default" {
		t.Fatalf("profile: %q", c.SessionProfile)
	}
}

func TestLoadProfile_Overrides(t *testing.T) {
	t.Setenv("REDIS_DB", "3")
	path := filepath.Join(t.TempDir(), "profile.yaml")
	yml := `
api_base_url: http://staging:7000
timeout_seconds: 9
metrics_addr: 127.0.0.1:9100
redis:
  addr: cache:6379
  db: 0
session:
  profile: ana
`
	if err := os.WriteFile(path, []byte(yml), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	p, err := shared.LoadProfile(path)
	if err != nil {
		t.Fatalf("LoadProfile: %v", err)
	}
	c := p.Apply(shared.Load())
	if c.APIBaseURL != "http://staging:7000" || c.APITimeout != 9*time.Second {
		t.Fatalf("api overrides: %+v", c)
	}
	if c.MetricsAddr != "127.0.0.1:9100" {
		t.Fatalf("metrics addr: %q", c.MetricsAddr)
	}
	if c.RedisAddr != "cache:6379" || c.RedisDB != 0 {
		t.Fatalf("redis overrides: addr=%q db=%d", c.RedisAddr, c.RedisDB)
	}
	if c.SessionProfile != "ana" || c.SessionTTL != 24*time.Hour {
		t.Fatalf("session: %+v", c)
	}
}

func TestLoadProfile_Missing(t *testing.T) {
	if _, err := shared.LoadProfile(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}
