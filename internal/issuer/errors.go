package issuer

import "errors"

var (
	// ErrInvalidConfiguration is returned when the issuer is built with an
	// out-of-range setting, such as a time-to-live below one second.
	ErrInvalidConfiguration = errors.New("invalid configuration")
	// ErrKeyUnavailable is returned when the private key file cannot be read.
	ErrKeyUnavailable = errors.New("key unavailable")
	// ErrSigningFailure is returned when the key material is not a usable RSA
	// private key or the signature cannot be computed.
	ErrSigningFailure = errors.New("signing failure")
)

const (
	KindInvalidConfiguration = "invalid_configuration"
	KindKeyUnavailable       = "key_unavailable"
	KindSigningFailure       = "signing_failure"
	KindUnknown              = "unknown"
)

// Kind maps err to a stable label for metrics and exit codes.
func Kind(err error) string {
	switch {
	case errors.Is(err, ErrInvalidConfiguration):
		return KindInvalidConfiguration
	case errors.Is(err, ErrKeyUnavailable):
		return KindKeyUnavailable
	case errors.Is(err, ErrSigningFailure):
		return KindSigningFailure
	default:
		return KindUnknown
	}
}
