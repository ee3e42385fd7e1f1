package issuer

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	// Subject is the principal every token is minted for.
	Subject = "notification-agent"
	// IssuerName identifies the system that minted the token.
	IssuerName = "mac-at-ibm"
)

// Claims is the fixed payload: sub, iss and exp. The remaining registered
// claims stay zero and are omitted from the encoded JSON.
type Claims struct {
	jwt.RegisteredClaims
}

func newClaims(now time.Time, ttl time.Duration) Claims {
	return Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   Subject,
			Issuer:    IssuerName,
			ExpiresAt: jwt.NewNumericDate(now.UTC().Add(ttl)),
		},
	}
}

// Token is a signed compact JWT together with the claims it carries.
type Token struct {
	Value  string
	Claims Claims
}

// ExpiresAt returns the exp claim, or the zero time when unset.
func (t *Token) ExpiresAt() time.Time {
	if t == nil || t.Claims.ExpiresAt == nil {
		return time.Time{}
	}
	return t.Claims.ExpiresAt.Time.UTC()
}
