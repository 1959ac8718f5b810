package auth

import "strings"

const bearerPrefix = "Bearer "

// ExtractBearer returns the token portion of an Authorization header value.
// The "Bearer " prefix is matched case-sensitively with exactly one space,
// and the remainder must be non-empty.
func ExtractBearer(headerValue string) (string, error) {
	token, ok := strings.CutPrefix(headerValue, bearerPrefix)
	if !ok || token == "" {
		return "", ErrMalformedHeader
	}
	return token, nil
}
