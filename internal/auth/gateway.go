package auth

import "fmt"

// Gateway is the single entry point for authenticating a request. Every
// protected endpoint goes through Authenticate; none parses the
// Authorization header on its own.
type Gateway struct {
	codec *TokenCodec
}

// NewGateway builds a gateway around the given token codec.
func NewGateway(codec *TokenCodec) *Gateway {
	return &Gateway{codec: codec}
}

// Authenticate turns an Authorization header value into verified session
// claims. An empty value fails with ErrMissingCredentials, a non-bearer value
// with ErrMalformedHeader, and any token that does not verify with
// ErrUnauthorized wrapping the codec's failure kind. Pure: no persistence,
// no side effects.
func (g *Gateway) Authenticate(headerValue string) (Claims, error) {
	if headerValue == "" {
		return Claims{}, ErrMissingCredentials
	}

	token, err := ExtractBearer(headerValue)
	if err != nil {
		return Claims{}, err
	}

	claims, err := g.codec.Verify(token)
	if err != nil {
		return Claims{}, fmt.Errorf("%w: %w", ErrUnauthorized, err)
	}
	return claims, nil
}
