package config

import (
	"fmt"
	"strings"

	"github.com/macatibm/jwtgenerator/internal/issuer"
	"github.com/macatibm/jwtgenerator/internal/logging"
	"github.com/macatibm/jwtgenerator/internal/output"
)

const (
	DefaultExpiresIn = 600 // seconds
	DefaultFormat    = string(output.FormatText)
	DefaultLogLevel  = "error"
	DefaultLogFormat = logging.FormatText
)

// Config is everything one invocation needs. It is filled from the command
// line only; there are no config files or environment variables.
type Config struct {
	KeyPath         string
	ExpiresIn       int
	Format          string // "text" | "json" | "yaml"
	LogLevel        string // "debug" | "info" | "warn" | "error"
	LogFormat       string // "text" | "json"
	MetricsTextfile string // optional; empty disables the export
}

// Default returns a Config carrying the documented defaults.
func Default() Config {
	return Config{
		ExpiresIn: DefaultExpiresIn,
		Format:    DefaultFormat,
		LogLevel:  DefaultLogLevel,
		LogFormat: DefaultLogFormat,
	}
}

// Normalize validates cfg and rewrites the format and level fields in their
// canonical form, blanks becoming defaults. ExpiresIn is not defaulted: zero
// is an explicit, invalid choice.
func Normalize(cfg *Config) error {
	if err := validateScalars(cfg); err != nil {
		return err
	}
	format, level, logFormat, err := parseNames(cfg)
	if err != nil {
		return err
	}
	cfg.Format = format
	cfg.LogLevel = level
	cfg.LogFormat = logFormat
	return nil
}

// Validate reports the first invalid field. Every error wraps
// issuer.ErrInvalidConfiguration.
func Validate(cfg *Config) error {
	if err := validateScalars(cfg); err != nil {
		return err
	}
	_, _, _, err := parseNames(cfg)
	return err
}

func validateScalars(cfg *Config) error {
	if cfg == nil {
		return invalid("nil config")
	}
	// Whitespace is a legal file name; reading it is the issuer's job.
	if cfg.KeyPath == "" {
		return invalid("private key path is required")
	}
	if cfg.ExpiresIn < 1 {
		return invalid("expires-in must be >= 1 second (got %d)", cfg.ExpiresIn)
	}
	if int64(cfg.ExpiresIn) > issuer.MaxExpiresIn {
		return invalid("expires-in must be <= %d seconds (got %d)", issuer.MaxExpiresIn, cfg.ExpiresIn)
	}
	return nil
}

// parseNames delegates to the packages that consume each name so the
// accepted spellings live in one place.
func parseNames(cfg *Config) (format, level, logFormat string, err error) {
	f, err := output.ParseFormat(cfg.Format)
	if err != nil {
		return "", "", "", invalid("output: %v", err)
	}
	lvl, err := logging.ParseLevel(cfg.LogLevel)
	if err != nil {
		return "", "", "", invalid("log-level: %v", err)
	}
	lf, err := logging.ParseFormat(cfg.LogFormat)
	if err != nil {
		return "", "", "", invalid("log-format: %v", err)
	}
	return string(f), strings.ToLower(lvl.String()), lf, nil
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", issuer.ErrInvalidConfiguration, fmt.Sprintf(format, args...))
}
