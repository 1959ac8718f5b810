package user

import (
	"context"
	"errors"
)

var (
	// ErrDuplicateUser indicates the email or username is already taken.
	ErrDuplicateUser = errors.New("user with this email or username already exists")

	// ErrNotFound indicates no account matches the lookup.
	ErrNotFound = errors.New("user not found")
)

// Repository persists user accounts. Implementations must enforce email and
// username uniqueness atomically at insert time (a unique constraint, not a
// pre-check), reporting violations as ErrDuplicateUser; the service's own
// duplicate check is advisory and does not prevent races.
type Repository interface {
	Create(ctx context.Context, user UserWithHash) error
	FindByID(ctx context.Context, id string) (User, error)
	FindByEmailWithHash(ctx context.Context, email string) (UserWithHash, error)
	ExistsByEmailOrUsername(ctx context.Context, email, username string) (bool, error)
}
