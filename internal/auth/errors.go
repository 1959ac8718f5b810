package auth

import "errors"

// Sentinel errors for the authentication pipeline. Handlers collapse all of
// them into a single 401 response; the distinctions exist for logging only.
var (
	// ErrMissingSecret indicates no signing secret was configured. Fatal:
	// the process cannot serve authenticated routes without one.
	ErrMissingSecret = errors.New("signing secret is not configured")

	// ErrMissingCredentials indicates the Authorization header was absent.
	ErrMissingCredentials = errors.New("missing credentials")

	// ErrMalformedHeader indicates an Authorization header that is not a
	// well-formed bearer credential.
	ErrMalformedHeader = errors.New("malformed authorization header")

	// ErrTokenInvalid covers signature mismatch, malformed structure and
	// algorithm mismatch.
	ErrTokenInvalid = errors.New("invalid token")

	// ErrTokenExpired indicates a structurally valid token past its expiry.
	ErrTokenExpired = errors.New("token expired")

	// ErrUnauthorized is the merged failure the gateway reports for any
	// token that did not verify, expired or otherwise.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrHashing indicates the stored password hash is not in a recognized
	// encoded format, or hashing itself failed.
	ErrHashing = errors.New("password hashing failure")
)
