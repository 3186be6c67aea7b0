package config

import (
	"testing"
	"time"
)

func TestGetEnv(t *testing.T) {
	t.Run("returns value when set", func(t *testing.T) {
		t.Setenv("TEST_KEY", "hello")
		if got := GetEnv("TEST_KEY", "fallback"); got != "hello" {
			t.Errorf("got %q, want %q", got, "hello")
		}
	})

	t.Run("returns fallback when unset", func(t *testing.T) {
		if got := GetEnv("UNSET_KEY_12345", "fb"); got != "fb" {
			t.Errorf("got %q, want %q", got, "fb")
		}
	})

	t.Run("treats whitespace as unset", func(t *testing.T) {
		t.Setenv("TEST_KEY", "   ")
		if got := GetEnv("TEST_KEY", "fb"); got != "fb" {
			t.Errorf("got %q, want %q", got, "fb")
		}
	})
}

func TestGetEnvInt(t *testing.T) {
	t.Run("parses valid int", func(t *testing.T) {
		t.Setenv("TEST_INT", "42")
		if got := GetEnvInt("TEST_INT", 7); got != 42 {
			t.Errorf("got %d, want 42", got)
		}
	})

	t.Run("falls back on garbage", func(t *testing.T) {
		t.Setenv("TEST_INT", "not-a-number")
		if got := GetEnvInt("TEST_INT", 7); got != 7 {
			t.Errorf("got %d, want 7", got)
		}
	})
}

func TestGetEnvDuration(t *testing.T) {
	t.Run("parses valid duration", func(t *testing.T) {
		t.Setenv("TEST_DUR", "2m30s")
		if got := GetEnvDuration("TEST_DUR", time.Second); got != 2*time.Minute+30*time.Second {
			t.Errorf("got %s", got)
		}
	})

	t.Run("falls back on invalid duration", func(t *testing.T) {
		t.Setenv("TEST_DUR", "soon")
		if got := GetEnvDuration("TEST_DUR", 5*time.Second); got != 5*time.Second {
			t.Errorf("got %s", got)
		}
	})
}

func TestLoad(t *testing.T) {
	t.Run("defaults are valid", func(t *testing.T) {
		cfg, err := Load()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cfg.API.BaseURL == "" {
			t.Error("expected a default base URL")
		}
		if cfg.API.Timeout <= 0 {
			t.Error("expected a positive default timeout")
		}
	})

	t.Run("rejects relative base URL", func(t *testing.T) {
		t.Setenv("SNIP_API_URL", "/api")
		if _, err := Load(); err == nil {
			t.Fatal("expected error for relative base URL")
		}
	})

	t.Run("rejects non-positive timeout", func(t *testing.T) {
		t.Setenv("SNIP_API_TIMEOUT", "-1s")
		if _, err := Load(); err == nil {
			t.Fatal("expected error for negative timeout")
		}
	})

	t.Run("strips trailing slash from base URL", func(t *testing.T) {
		t.Setenv("SNIP_API_URL", "https://snip.example.com/api/")
		cfg, err := Load()
		if err != nil {
			t.Fatal(err)
		}
		if cfg.API.BaseURL != "https://snip.example.com/api" {
			t.Errorf("got %q", cfg.API.BaseURL)
		}
	})

	t.Run("derives short base from api url", func(t *testing.T) {
		t.Setenv("SNIP_API_URL", "https://snip.example.com/api")
		cfg, err := Load()
		if err != nil {
			t.Fatal(err)
		}
		if cfg.API.ShortBase != "https://snip.example.com" {
			t.Errorf("got %q", cfg.API.ShortBase)
		}
	})

	t.Run("explicit short base wins", func(t *testing.T) {
		t.Setenv("SNIP_API_URL", "https://snip.example.com/api")
		t.Setenv("SNIP_SHORT_BASE", "https://sn.ip/")
		cfg, err := Load()
		if err != nil {
			t.Fatal(err)
		}
		if cfg.API.ShortBase != "https://sn.ip" {
			t.Errorf("got %q", cfg.API.ShortBase)
		}
	})
}
