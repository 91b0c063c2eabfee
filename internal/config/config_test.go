package config

import "testing"

func TestLoadIncludesTrafficControlDefaults(t *testing.T) {
	t.Setenv("API_RATE_LIMIT_RPS", "")
	t.Setenv("API_RATE_LIMIT_BURST", "")
	t.Setenv("API_MAX_INFLIGHT_REQUESTS", "")

	cfg := Load()
	if cfg.APIRateLimitRPS != 50 {
		t.Fatalf("expected default rate limit 50 rps, got %v", cfg.APIRateLimitRPS)
	}
	if cfg.APIRateLimitBurst != 100 {
		t.Fatalf("expected default burst 100, got %d", cfg.APIRateLimitBurst)
	}
	if cfg.APIMaxInflightRequests != 256 {
		t.Fatalf("expected default inflight cap 256, got %d", cfg.APIMaxInflightRequests)
	}
}

func TestLoadParsesOverrides(t *testing.T) {
	t.Setenv("API_RATE_LIMIT_RPS", "2.5")
	t.Setenv("API_RATE_LIMIT_BURST", "5")
	t.Setenv("NATS_SUBJECT", "schemes.import.test")
	t.Setenv("GEMINI_MODEL", "gemini-2.5-pro")

	cfg := Load()
	if cfg.APIRateLimitRPS != 2.5 {
		t.Fatalf("expected rate limit override, got %v", cfg.APIRateLimitRPS)
	}
	if cfg.APIRateLimitBurst != 5 {
		t.Fatalf("expected burst override, got %d", cfg.APIRateLimitBurst)
	}
	if cfg.NATSSubject != "schemes.import.test" {
		t.Fatalf("expected subject override, got %q", cfg.NATSSubject)
	}
	if cfg.GeminiModel != "gemini-2.5-pro" {
		t.Fatalf("expected model override, got %q", cfg.GeminiModel)
	}
}

func TestLoadIgnoresMalformedNumbers(t *testing.T) {
	t.Setenv("API_RATE_LIMIT_RPS", "lots")
	t.Setenv("API_RATE_LIMIT_BURST", "many")

	cfg := Load()
	if cfg.APIRateLimitRPS != 50 {
		t.Fatalf("expected fallback rate limit, got %v", cfg.APIRateLimitRPS)
	}
	if cfg.APIRateLimitBurst != 100 {
		t.Fatalf("expected fallback burst, got %d", cfg.APIRateLimitBurst)
	}
}
