package firebase

import "errors"

var (
	// ErrMalformedToken is returned when the token cannot be decoded or its header carries no kid
	ErrMalformedToken = errors.New("malformed token")

	// ErrKeySetUnavailable is returned when the signing key set cannot be fetched or decoded
	ErrKeySetUnavailable = errors.New("signing key set unavailable")

	// ErrUnknownKey is returned when the token's kid is not in the key set
	ErrUnknownKey = errors.New("unknown signing key")

	// ErrInvalidKeyMaterial is returned when the located key is not a usable RSA public key
	ErrInvalidKeyMaterial = errors.New("invalid key material")

	// ErrClaimsInvalid is returned when signature or standard claim validation fails.
	// It is always wrapped together with one of the finer causes below when one applies.
	ErrClaimsInvalid = errors.New("token claims invalid")

	ErrInvalidSignature = errors.New("invalid signature")
	ErrTokenExpired     = errors.New("token expired")
	ErrInvalidAudience  = errors.New("invalid audience")
	ErrInvalidIssuer    = errors.New("invalid issuer")
)

// ErrorKind classifies a verification failure for logging
type ErrorKind string

const (
	KindMalformedToken     ErrorKind = "MalformedToken"
	KindKeySetUnavailable  ErrorKind = "KeySetUnavailable"
	KindUnknownKey         ErrorKind = "UnknownKey"
	KindInvalidKeyMaterial ErrorKind = "InvalidKeyMaterial"
	KindClaimsInvalid      ErrorKind = "ClaimsInvalid"
)

// KindOf returns the kind of a verification error. Errors that match no
// sentinel are reported as ClaimsInvalid.
func KindOf(err error) ErrorKind {
	switch {
	case errors.Is(err, ErrMalformedToken):
		return KindMalformedToken
	case errors.Is(err, ErrKeySetUnavailable):
		return KindKeySetUnavailable
	case errors.Is(err, ErrUnknownKey):
		return KindUnknownKey
	case errors.Is(err, ErrInvalidKeyMaterial):
		return KindInvalidKeyMaterial
	default:
		return KindClaimsInvalid
	}
}

// CauseOf names the finer claim failure behind an ErrClaimsInvalid error, or
// returns an empty string when there is none.
func CauseOf(err error) string {
	switch {
	case errors.Is(err, ErrInvalidSignature):
		return "signature"
	case errors.Is(err, ErrTokenExpired):
		return "expired"
	case errors.Is(err, ErrInvalidAudience):
		return "audience"
	case errors.Is(err, ErrInvalidIssuer):
		return "issuer"
	default:
		return ""
	}
}
