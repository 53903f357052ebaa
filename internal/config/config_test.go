package config

import (
	"testing"
	"time"
)

func TestParseBasicClients(t *testing.T) {
	clients := ParseBasicClients("app:secret, admin:pa:ss,broken,:nouser,")

	if len(clients) != 2 {
		t.Fatalf("clients = %+v, want 2", clients)
	}
	if clients[0].Username != "app" || clients[0].Password != "secret" {
		t.Errorf("first client = %+v", clients[0])
	}
	// Пароль может содержать двоеточие
	if clients[1].Username != "admin" || clients[1].Password != "pa:ss" {
		t.Errorf("second client = %+v", clients[1])
	}
}

func TestNewConfigDefaults(t *testing.T) {
	t.Setenv("APP_ENV", "PRODUCTION")
	t.Setenv("APP_TIMEZONE", "Not/AZone")
	t.Setenv("CACHE_MONTHS_SIZE", "0")
	t.Setenv("CACHE_BACKEND", "Redis")

	cfg, err := NewConfig()
	if err != nil {
		t.Fatalf("NewConfig: %v", err)
	}

	if cfg.App.Env != EnvProduction || !cfg.IsNotLocal() || cfg.IsLocal() {
		t.Errorf("env = %s", cfg.App.Env)
	}
	if cfg.App.Location == nil || cfg.App.Location.String() != "UTC" {
		t.Errorf("location = %v, want UTC fallback", cfg.App.Location)
	}
	if cfg.Cache.MonthsSize != 1 {
		t.Errorf("months size = %d, want 1", cfg.Cache.MonthsSize)
	}
	if cfg.Cache.Backend != CacheBackendRedis {
		t.Errorf("cache backend = %s", cfg.Cache.Backend)
	}
	if cfg.HTTP.RateLimitClients != 10000 || cfg.HTTP.RateLimitClientTTL != 10*time.Minute {
		t.Errorf("rate limit clients = %d ttl %s", cfg.HTTP.RateLimitClients, cfg.HTTP.RateLimitClientTTL)
	}
	if len(cfg.Auth.BasicClients) != 1 || cfg.Auth.BasicClients[0].Username != "slot_picker" {
		t.Errorf("basic clients = %+v", cfg.Auth.BasicClients)
	}
}
