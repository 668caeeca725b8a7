package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"PORT", "ARK_TEMPERATURE", "ARK_MAX_TOKENS", "AI_TIMEOUT_SECONDS", "SESSION_TTL"} {
		t.Setenv(key, "")
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load err: %v", err)
	}
	if cfg.Server.Addr != ":8080" {
		t.Fatalf("unexpected default addr %q", cfg.Server.Addr)
	}
	if cfg.AI.Temperature != 0.3 || cfg.AI.MaxTokens != 300 {
		t.Fatalf("unexpected AI defaults: %+v", cfg.AI)
	}
	if cfg.AI.Timeout != 30*time.Second {
		t.Fatalf("unexpected AI timeout: %v", cfg.AI.Timeout)
	}
	if cfg.Chat.SessionTTL != 0 {
		t.Fatalf("session ttl should default to disabled, got %v", cfg.Chat.SessionTTL)
	}
}

func TestLoadPortForms(t *testing.T) {
	t.Setenv("PORT", "9000")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load err: %v", err)
	}
	if cfg.Server.Addr != ":9000" {
		t.Fatalf("unexpected addr %q", cfg.Server.Addr)
	}

	t.Setenv("PORT", "127.0.0.1:9001")
	cfg, err = Load()
	if err != nil {
		t.Fatalf("Load err: %v", err)
	}
	if cfg.Server.Addr != "127.0.0.1:9001" {
		t.Fatalf("unexpected addr %q", cfg.Server.Addr)
	}
}

func TestLoadSessionTTL(t *testing.T) {
	t.Setenv("SESSION_TTL", "45m")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load err: %v", err)
	}
	if cfg.Chat.SessionTTL != 45*time.Minute {
		t.Fatalf("unexpected session ttl %v", cfg.Chat.SessionTTL)
	}

	t.Setenv("SESSION_TTL", "soon")
	if _, err := Load(); err == nil {
		t.Fatal("expected error for malformed SESSION_TTL")
	}
}

func TestAIConfigEnabled(t *testing.T) {
	cfg := AIConfig{}
	if cfg.Enabled() {
		t.Fatal("empty config must not be enabled")
	}

	cfg = AIConfig{Model: "m", APIKey: "k"}
	if !cfg.Enabled() {
		t.Fatal("api key + model should enable the provider")
	}

	cfg = AIConfig{Model: "m", AccessKey: "ak", SecretKey: "sk"}
	if !cfg.Enabled() {
		t.Fatal("ak/sk + model should enable the provider")
	}
}

func TestSMTPConfigEnabled(t *testing.T) {
	if (SMTPConfig{}).Enabled() {
		t.Fatal("empty smtp config must not be enabled")
	}
	if !(SMTPConfig{Host: "smtp.example.dev", From: "folio@example.dev"}).Enabled() {
		t.Fatal("host + from should enable smtp")
	}
}
