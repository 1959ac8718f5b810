package user

import (
	"context"
	"errors"
	"fmt"
	"time"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/google/uuid"

	"github.com/shoplite/shoplite/internal/auth"
)

const minPasswordLength = 6

var (
	// ErrValidation indicates a request that fails the signup/signin input policy.
	ErrValidation = errors.New("invalid input")

	// ErrInvalidCredentials is returned for signin failures. It is identical
	// whether the email is unknown or the password is wrong.
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// Service manages the account lifecycle: signup, signin and profile lookup.
type Service struct {
	repo   Repository
	hasher *auth.Hasher

	// dummyHash soaks up a bcrypt compare when the signin email is unknown,
	// keeping the unknown-email and wrong-password paths the same shape.
	dummyHash string
}

// NewService creates a user service around the given store and hasher.
func NewService(repo Repository, hasher *auth.Hasher) *Service {
	dummy, err := hasher.Hash(uuid.NewString())
	if err != nil {
		dummy = ""
	}
	return &Service{repo: repo, hasher: hasher, dummyHash: dummy}
}

// SignupInput is the transient signup credential set. The password is
// consumed once by the hasher and never persisted or logged.
type SignupInput struct {
	Email    string `json:"email"`
	Username string `json:"username"`
	Password string `json:"password"`
}

// Validate enforces the signup input policy.
func (in SignupInput) Validate() error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.Email, validation.Required),
		validation.Field(&in.Username, validation.Required),
		validation.Field(&in.Password, validation.Required, validation.Length(minPasswordLength, 0)),
	)
}

// SigninInput is the transient signin credential set.
type SigninInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Validate enforces the signin input policy.
func (in SigninInput) Validate() error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.Email, validation.Required),
		validation.Field(&in.Password, validation.Required),
	)
}

// Signup registers a new account: validates input, rejects duplicates, hashes
// the password and persists the user under a fresh subject id. The store's
// unique constraint backs the duplicate pre-check under concurrency.
func (s *Service) Signup(ctx context.Context, in SignupInput) (User, error) {
	if err := in.Validate(); err != nil {
		return User{}, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	exists, err := s.repo.ExistsByEmailOrUsername(ctx, in.Email, in.Username)
	if err != nil {
		return User{}, err
	}
	if exists {
		return User{}, ErrDuplicateUser
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return User{}, err
	}

	now := time.Now().UTC()
	record := UserWithHash{
		User: User{
			ID:        uuid.New().String(),
			Email:     in.Email,
			Username:  in.Username,
			CreatedAt: now,
			UpdatedAt: now,
		},
		PasswordHash: hash,
	}

	if err := s.repo.Create(ctx, record); err != nil {
		return User{}, err
	}

	return record.User, nil
}

// Signin verifies credentials. Unknown email and wrong password both return
// ErrInvalidCredentials, with a dummy hash compare on the unknown-email path
// so the two cases take comparable time.
func (s *Service) Signin(ctx context.Context, in SigninInput) (User, error) {
	if err := in.Validate(); err != nil {
		return User{}, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	record, err := s.repo.FindByEmailWithHash(ctx, in.Email)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			_, _ = s.hasher.Verify(in.Password, s.dummyHash)
			return User{}, ErrInvalidCredentials
		}
		return User{}, err
	}

	ok, err := s.hasher.Verify(in.Password, record.PasswordHash)
	if err != nil {
		return User{}, err
	}
	if !ok {
		return User{}, ErrInvalidCredentials
	}

	return record.User, nil
}

// GetByID fetches the account behind a verified subject id.
func (s *Service) GetByID(ctx context.Context, id string) (User, error) {
	return s.repo.FindByID(ctx, id)
}
