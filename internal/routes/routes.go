package routes

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"

	"github.com/ahmetcoskunkizilkaya/tasklist-backend/internal/config"
	"github.com/ahmetcoskunkizilkaya/tasklist-backend/internal/handlers"
	"github.com/ahmetcoskunkizilkaya/tasklist-backend/internal/middleware"
	"github.com/ahmetcoskunkizilkaya/tasklist-backend/internal/services"
)

func Setup(
	app *fiber.App,
	cfg *config.Config,
	authService *services.AuthService,
	authHandler *handlers.AuthHandler,
	todoHandler *handlers.TodoHandler,
	healthHandler *handlers.HealthHandler,
) {
	api := app.Group("/api")

	// General API rate limiter: 60 req/min per IP
	api.Use(limiter.New(limiter.Config{
		Max:               60,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))

	api.Get("/health", healthHandler.Check)

	// Auth — public, with a stricter limit: 10 req/min per IP
	auth := api.Group("/auth")
	auth.Use(limiter.New(limiter.Config{
		Max:               10,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))
	auth.Post("/register", authHandler.Register)
	auth.Post("/login", authHandler.Login)
	auth.Post("/refresh", authHandler.Refresh)

	// Protected routes: token verification, then current-user resolution.
	// Middleware is applied per group so the public routes stay untouched.
	guard := []fiber.Handler{
		middleware.JWTProtected(cfg),
		middleware.LoadCurrentUser(authService),
	}

	users := api.Group("/users", guard...)
	users.Get("/me", authHandler.Me)
	users.Delete("/me", authHandler.DeleteAccount)

	todos := api.Group("/todos", guard...)
	todos.Post("/", todoHandler.Create)
	todos.Get("/", todoHandler.List)
	todos.Get("/:id", todoHandler.Get)
	todos.Put("/:id", todoHandler.Update)
	todos.Delete("/:id", todoHandler.Delete)
}
