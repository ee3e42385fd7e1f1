// Package issuer mints RS256 JWTs for the notification agent principal.
package issuer

import (
	"fmt"
	"io"
	"log/slog"
	"math"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Observer receives the outcome of every construction and issuance attempt.
type Observer interface {
	ObserveIssued(expiresAt time.Time, took time.Duration)
	ObserveFailure(kind string)
}

type Option func(*Issuer)

// MaxExpiresIn is the largest time-to-live, in seconds, that fits a
// time.Duration.
const MaxExpiresIn = math.MaxInt64 / int64(time.Second)

// WithClock overrides the time source used to compute exp.
func WithClock(now func() time.Time) Option {
	return func(i *Issuer) {
		if now != nil {
			i.now = now
		}
	}
}

func WithLogger(log *slog.Logger) Option {
	return func(i *Issuer) {
		if log != nil {
			i.log = log
		}
	}
}

func WithObserver(o Observer) Option {
	return func(i *Issuer) {
		if o != nil {
			i.obs = o
		}
	}
}

// Issuer holds a loaded private key and a time-to-live. It keeps no state
// between calls to Issue, so one instance may be shared across goroutines.
type Issuer struct {
	key []byte
	ttl time.Duration

	now func() time.Time
	log *slog.Logger
	obs Observer
}

// New validates expiresIn (seconds) and reads the key file at keyPath.
// The key content is not parsed until Issue is called.
func New(keyPath string, expiresIn int, opts ...Option) (*Issuer, error) {
	i := &Issuer{
		now: time.Now,
		log: slog.New(slog.NewTextHandler(io.Discard, nil)),
		obs: nopObserver{},
	}
	for _, opt := range opts {
		opt(i)
	}

	if expiresIn < 1 {
		err := fmt.Errorf("%w: expiration below 1 second is illegal (got %d)", ErrInvalidConfiguration, expiresIn)
		i.obs.ObserveFailure(Kind(err))
		return nil, err
	}
	if int64(expiresIn) > MaxExpiresIn {
		err := fmt.Errorf("%w: expiration above %d seconds is illegal (got %d)", ErrInvalidConfiguration, MaxExpiresIn, expiresIn)
		i.obs.ObserveFailure(Kind(err))
		return nil, err
	}
	i.ttl = time.Duration(expiresIn) * time.Second

	key, err := os.ReadFile(keyPath)
	if err != nil {
		err = fmt.Errorf("%w: %w", ErrKeyUnavailable, err)
		i.obs.ObserveFailure(Kind(err))
		return nil, err
	}
	i.key = key

	i.log.Debug("private key loaded",
		slog.String("path", keyPath),
		slog.Int("bytes", len(key)),
		slog.Duration("ttl", i.ttl),
	)
	return i, nil
}

// Issue signs a fresh claim set and returns the compact token.
func (i *Issuer) Issue() (string, error) {
	tok, err := i.IssueToken()
	if err != nil {
		return "", err
	}
	return tok.Value, nil
}

// IssueToken is Issue but also returns the claims that were signed.
func (i *Issuer) IssueToken() (*Token, error) {
	began := time.Now()
	start := i.now()

	key, err := jwt.ParseRSAPrivateKeyFromPEM(i.key)
	if err != nil {
		err = fmt.Errorf("%w: parse private key: %w", ErrSigningFailure, err)
		i.obs.ObserveFailure(Kind(err))
		return nil, err
	}

	claims := newClaims(start, i.ttl)
	s, err := jwt.NewWithClaims(jwt.SigningMethodRS256, claims).SignedString(key)
	if err != nil {
		err = fmt.Errorf("%w: sign token: %w", ErrSigningFailure, err)
		i.obs.ObserveFailure(Kind(err))
		return nil, err
	}

	tok := &Token{Value: s, Claims: claims}
	i.obs.ObserveIssued(tok.ExpiresAt(), time.Since(began))
	i.log.Debug("token issued",
		slog.String("sub", claims.Subject),
		slog.String("iss", claims.Issuer),
		slog.Int64("exp", claims.ExpiresAt.Unix()),
	)
	return tok, nil
}

type nopObserver struct{}

func (nopObserver) ObserveIssued(time.Time, time.Duration) {}
func (nopObserver) ObserveFailure(string)                  {}
