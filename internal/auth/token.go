package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims is the session token payload: subject id, email and the standard
// iat/exp timestamps.
type Claims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// SubjectID returns the authenticated principal's identifier.
func (c Claims) SubjectID() string {
	return c.Subject
}

// TokenCodec signs and verifies compact HS256 session tokens. The secret and
// TTL are fixed at construction; concurrent use requires no coordination.
type TokenCodec struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// CodecOption customizes a TokenCodec.
type CodecOption func(*TokenCodec)

// WithTimeFunc overrides the codec's clock. Used in tests to issue or verify
// tokens at a fixed point in time.
func WithTimeFunc(now func() time.Time) CodecOption {
	return func(c *TokenCodec) {
		c.now = now
	}
}

// NewTokenCodec builds a codec around the given signing secret and token
// lifetime. An empty secret is a configuration error, never defaulted.
func NewTokenCodec(secret []byte, ttl time.Duration, opts ...CodecOption) (*TokenCodec, error) {
	if len(secret) == 0 {
		return nil, ErrMissingSecret
	}
	c := &TokenCodec{secret: secret, ttl: ttl, now: time.Now}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Issue signs a fresh token for the subject, expiring after the configured TTL.
func (c *TokenCodec) Issue(subjectID, email string) (string, error) {
	now := c.now()
	claims := Claims{
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subjectID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(c.ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(c.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Verify parses the token, checks the signature, rejects any signing method
// other than HS256 and enforces expiry. Expired tokens fail with
// ErrTokenExpired; every other failure is ErrTokenInvalid.
func (c *TokenCodec) Verify(tokenStr string) (Claims, error) {
	claims := Claims{}
	_, err := jwt.ParseWithClaims(tokenStr, &claims, func(t *jwt.Token) (interface{}, error) {
		return c.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(c.now),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return Claims{}, ErrTokenExpired
		}
		return Claims{}, ErrTokenInvalid
	}
	return claims, nil
}
