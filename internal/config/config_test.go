package config

import (
	"errors"
	"testing"

	"github.com/macatibm/jwtgenerator/internal/issuer"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	if cfg.ExpiresIn != 600 {
		t.Fatalf("expected default expires-in 600, got %d", cfg.ExpiresIn)
	}
	if cfg.Format != "text" || cfg.LogLevel != "error" || cfg.LogFormat != "text" {
		t.Fatalf("unexpected defaults %#v", cfg)
	}
}

func TestNormalizeFillsBlanks(t *testing.T) {
	cfg := Config{KeyPath: "key.pem", ExpiresIn: 60, Format: " JSON "}
	if err := Normalize(&cfg); err != nil {
		t.Fatal(err)
	}
	if cfg.Format != "json" {
		t.Fatalf("expected normalized format json, got %q", cfg.Format)
	}
	if cfg.LogLevel != DefaultLogLevel || cfg.LogFormat != DefaultLogFormat {
		t.Fatalf("expected log defaults, got %q/%q", cfg.LogLevel, cfg.LogFormat)
	}
}

const maxInt = int(^uint(0) >> 1)

func TestNormalizeCanonicalizesNames(t *testing.T) {
	cfg := Config{KeyPath: "key.pem", ExpiresIn: 60, Format: "YAML", LogLevel: "Warning", LogFormat: " JSON"}
	if err := Normalize(&cfg); err != nil {
		t.Fatal(err)
	}
	if cfg.Format != "yaml" || cfg.LogLevel != "warn" || cfg.LogFormat != "json" {
		t.Fatalf("unexpected canonical names %q/%q/%q", cfg.Format, cfg.LogLevel, cfg.LogFormat)
	}
}

func TestValidateRejects(t *testing.T) {
	base := func() Config {
		c := Default()
		c.KeyPath = "key.pem"
		return c
	}
	cases := map[string]func(*Config){
		"missing key":    func(c *Config) { c.KeyPath = "" },
		"zero ttl":       func(c *Config) { c.ExpiresIn = 0 },
		"negative ttl":   func(c *Config) { c.ExpiresIn = -5 },
		"huge ttl":       func(c *Config) { c.ExpiresIn = maxInt },
		"bad output":     func(c *Config) { c.Format = "xml" },
		"bad log level":  func(c *Config) { c.LogLevel = "trace" },
		"bad log format": func(c *Config) { c.LogFormat = "logfmt" },
	}
	for name, mutate := range cases {
		cfg := base()
		mutate(&cfg)
		err := Validate(&cfg)
		if !errors.Is(err, issuer.ErrInvalidConfiguration) {
			t.Fatalf("%s: expected ErrInvalidConfiguration, got %v", name, err)
		}
	}

	if err := Validate(nil); !errors.Is(err, issuer.ErrInvalidConfiguration) {
		t.Fatalf("nil config: expected ErrInvalidConfiguration, got %v", err)
	}
}

func TestValidateTTLBoundaries(t *testing.T) {
	cfg := Default()
	cfg.KeyPath = "key.pem"

	cfg.ExpiresIn = 1
	if err := Validate(&cfg); err != nil {
		t.Fatalf("ttl 1: expected ok, got %v", err)
	}

	limit := issuer.MaxExpiresIn
	if int64(int(limit)) != limit {
		t.Skip("int is too small for the upper boundary")
	}
	cfg.ExpiresIn = int(limit)
	if err := Validate(&cfg); err != nil {
		t.Fatalf("ttl %d: expected ok, got %v", limit, err)
	}
	cfg.ExpiresIn = int(limit + 1)
	if err := Validate(&cfg); !errors.Is(err, issuer.ErrInvalidConfiguration) {
		t.Fatalf("ttl %d: expected ErrInvalidConfiguration, got %v", limit+1, err)
	}
}

func TestValidateAllowsWhitespaceKeyPath(t *testing.T) {
	cfg := Default()
	cfg.KeyPath = " "
	if err := Validate(&cfg); err != nil {
		t.Fatalf("expected the issuer to decide on %q, got %v", cfg.KeyPath, err)
	}
}

func TestValidateAcceptsDefaults(t *testing.T) {
	cfg := Default()
	cfg.KeyPath = "key.pem"
	if err := Validate(&cfg); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}
}
