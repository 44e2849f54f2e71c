package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Verification failures all wrap ErrInvalidToken so callers can collapse them
// into a single unauthenticated response while logging the specific cause.
var (
	ErrInvalidToken   = errors.New("invalid or expired token")
	ErrTokenExpired   = fmt.Errorf("token expired: %w", ErrInvalidToken)
	ErrTokenSignature = fmt.Errorf("token signature invalid: %w", ErrInvalidToken)
	ErrTokenMalformed = fmt.Errorf("token malformed: %w", ErrInvalidToken)
)

// Codec signs and verifies time-bound subject claims for one signing domain.
// The service runs two instances with independent secrets, one for access
// tokens and one for refresh tokens.
type Codec struct {
	secret []byte
	method jwt.SigningMethod
	ttl    time.Duration
}

func NewCodec(secret, algorithm string, ttl time.Duration) (*Codec, error) {
	if secret == "" {
		return nil, errors.New("signing secret is required")
	}
	method := jwt.GetSigningMethod(algorithm)
	if method == nil {
		return nil, fmt.Errorf("unknown signing algorithm %q", algorithm)
	}
	if _, ok := method.(*jwt.SigningMethodHMAC); !ok {
		return nil, fmt.Errorf("signing algorithm %q is not an HMAC method", algorithm)
	}
	return &Codec{secret: []byte(secret), method: method, ttl: ttl}, nil
}

// Issue builds and signs a token for subject expiring at now+ttl. The expiry
// is an absolute UTC timestamp. An optional ttl overrides the codec default.
func (c *Codec) Issue(subject string, ttl ...time.Duration) (string, error) {
	d := c.ttl
	if len(ttl) > 0 {
		d = ttl[0]
	}
	now := time.Now().UTC()
	claims := jwt.RegisteredClaims{
		Subject:   subject,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(d)),
	}
	return jwt.NewWithClaims(c.method, claims).SignedString(c.secret)
}

// Verify checks signature and expiry and returns the claims. Tokens signed
// with a different key or algorithm, expired tokens, undecodable strings and
// tokens without a subject all fail with an error wrapping ErrInvalidToken.
func (c *Codec) Verify(tokenString string) (*jwt.RegisteredClaims, error) {
	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != c.method.Alg() {
			return nil, ErrTokenSignature
		}
		return c.secret, nil
	})
	switch {
	case err == nil:
	case errors.Is(err, jwt.ErrTokenExpired):
		return nil, ErrTokenExpired
	case errors.Is(err, jwt.ErrTokenSignatureInvalid), errors.Is(err, ErrTokenSignature):
		return nil, ErrTokenSignature
	default:
		return nil, ErrTokenMalformed
	}
	if !token.Valid {
		return nil, ErrInvalidToken
	}
	if claims.Subject == "" {
		return nil, ErrTokenMalformed
	}
	return claims, nil
}
