package routes

import (
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/shoplite/shoplite/internal/auth"
	"github.com/shoplite/shoplite/internal/config"
	"github.com/shoplite/shoplite/internal/middleware"
	"github.com/shoplite/shoplite/internal/product"
	"github.com/shoplite/shoplite/internal/user"
)

// Deps aggregates shared dependencies required to wire routes.
type Deps struct {
	Cfg    config.Config
	DB     *pgxpool.Pool
	Cache  *redis.Client
	Logger *slog.Logger
}

// Setup configures middlewares and all application routes.
func Setup(app *fiber.App, d Deps) error {
	// Middlewares
	app.Use(recover.New())
	app.Use(middleware.RequestID())
	// Plain text access log: [HH:MM:SS] 200 -  145ms METHOD /path
	app.Use(logger.New(logger.Config{
		Format:     "[${time}] ${status} -  ${latency} ${method} ${path}\n",
		TimeFormat: "15:04:05",
		TimeZone:   "Local",
	}))

	// Health
	RegisterHealthRoutes(app, d)

	// Core auth pipeline. The codec refuses to build without a secret, which
	// keeps a misconfigured process from serving any authenticated route.
	codec, err := auth.NewTokenCodec([]byte(d.Cfg.JWTSecret), d.Cfg.TokenTTL)
	if err != nil {
		return err
	}
	gateway := auth.NewGateway(codec)
	hasher := auth.NewHasher(d.Cfg.BcryptCost)

	var userRepo user.Repository
	if d.DB != nil {
		userRepo = user.NewPostgresRepository(d.DB)
	} else {
		userRepo = user.NewMemoryRepository()
	}
	userSvc := user.NewService(userRepo, hasher)
	userHandler := user.NewHandler(userSvc, codec, d.Logger)
	productHandler := product.NewHandler()

	requireAuth := middleware.RequireAuth(gateway, d.Logger)
	rateLimiter := middleware.SigninRateLimit(d.Cache, d.Cfg.SigninRateLimit)

	RegisterAuthRoutes(app, userHandler, requireAuth, rateLimiter)
	RegisterProductRoutes(app, productHandler, requireAuth)

	return nil
}

// methodNotAllowed backs the catch-all registrations so that a known path hit
// with the wrong verb gets a 405 through the JSON error envelope.
func methodNotAllowed(*fiber.Ctx) error {
	return fiber.ErrMethodNotAllowed
}
