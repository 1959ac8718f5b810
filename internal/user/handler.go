package user

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/shoplite/shoplite/internal/auth"
	"github.com/shoplite/shoplite/internal/middleware"
)

// Handler exposes the signup/signin/me endpoints.
type Handler struct {
	svc    *Service
	codec  *auth.TokenCodec
	logger *slog.Logger
}

// NewHandler constructs a user HTTP handler.
func NewHandler(svc *Service, codec *auth.TokenCodec, logger *slog.Logger) *Handler {
	return &Handler{svc: svc, codec: codec, logger: logger}
}

// AuthResponse is the shared signup/signin success shape.
type AuthResponse struct {
	User  User   `json:"user"`
	Token string `json:"token"`
}

// Signup registers an account and returns it with a fresh session token.
func (h *Handler) Signup(c *fiber.Ctx) error {
	var req SignupInput
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "Invalid request body")
	}

	created, err := h.svc.Signup(c.UserContext(), req)
	if err != nil {
		switch {
		case errors.Is(err, ErrValidation):
			return fiber.NewError(http.StatusBadRequest, err.Error())
		case errors.Is(err, ErrDuplicateUser):
			return fiber.NewError(http.StatusBadRequest, ErrDuplicateUser.Error())
		default:
			return fiber.NewError(http.StatusInternalServerError, "Database error")
		}
	}

	token, err := h.codec.Issue(created.ID, created.Email)
	if err != nil {
		return fiber.NewError(http.StatusInternalServerError, "Failed to generate token")
	}

	h.logger.Info("user signed up",
		slog.String("user_id", created.ID),
		slog.String("username", created.Username),
	)

	return c.Status(http.StatusCreated).JSON(AuthResponse{User: created, Token: token})
}

// Signin verifies credentials and returns the account with a fresh token.
// The failure response is identical whether the email is unknown or the
// password is wrong.
func (h *Handler) Signin(c *fiber.Ctx) error {
	var req SigninInput
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "Invalid request body")
	}

	account, err := h.svc.Signin(c.UserContext(), req)
	if err != nil {
		switch {
		case errors.Is(err, ErrValidation):
			return fiber.NewError(http.StatusBadRequest, err.Error())
		case errors.Is(err, ErrInvalidCredentials):
			return fiber.NewError(http.StatusUnauthorized, "Invalid credentials")
		default:
			return fiber.NewError(http.StatusInternalServerError, "Database error")
		}
	}

	token, err := h.codec.Issue(account.ID, account.Email)
	if err != nil {
		return fiber.NewError(http.StatusInternalServerError, "Failed to generate token")
	}

	h.logger.Info("user signed in", slog.String("user_id", account.ID))

	return c.Status(http.StatusOK).JSON(AuthResponse{User: account, Token: token})
}

// Me returns the account behind the verified token. A subject id that is not
// a valid identifier gets the same 401 as every other credential failure.
func (h *Handler) Me(c *fiber.Ctx) error {
	subject, _ := c.Locals(middleware.SubjectLocal).(string)
	if uuid.Validate(subject) != nil {
		return fiber.NewError(http.StatusUnauthorized, "Unauthorized")
	}

	account, err := h.svc.GetByID(c.UserContext(), subject)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return fiber.NewError(http.StatusNotFound, "User not found")
		}
		return fiber.NewError(http.StatusInternalServerError, "Database error")
	}

	return c.Status(http.StatusOK).JSON(account)
}
