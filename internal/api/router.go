package api

import (
	"database/sql"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/inkpress/blog-api/internal/api/handler"
	"github.com/inkpress/blog-api/internal/api/middleware"
	"github.com/inkpress/blog-api/internal/core/service"
	"github.com/inkpress/blog-api/internal/infrastructure/db/postgres"
	redisinfra "github.com/inkpress/blog-api/internal/infrastructure/db/redis"
	"github.com/inkpress/blog-api/internal/pkg/config"
)

const authRouteRPS = 5

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(db *sql.DB, rdb *redis.Client, cfg *config.Config, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: cfg.AllowedOrigins,
	}))
	e.Use(echoprometheus.NewMiddleware("blog"))

	// --- Dependencies ---
	userRepo := postgres.NewUserRepository(db)
	articleRepo := postgres.NewArticleRepository(db)

	tokenService := service.NewTokenService(cfg.JWTSecret, cfg.JWTTTL)
	throttle := redisinfra.NewLoginThrottle(rdb, log)
	authService := service.NewAuthService(userRepo, tokenService, throttle, log)
	articleService := service.NewArticleService(articleRepo, log)
	userService := service.NewUserService(userRepo, log)

	authHandler := handler.NewAuthHandler(authService)
	articleHandler := handler.NewArticleHandler(articleService)
	userHandler := handler.NewUserHandler(userService)
	authGate := middleware.Auth(tokenService)

	// --- Auth routes (rate limited) ---
	auth := e.Group("/api/auth", middleware.RateLimit(authRouteRPS, 2*authRouteRPS))
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)
	auth.POST("/change-password-by-email", authHandler.ChangePasswordByEmail)

	// --- Article routes ---
	articles := e.Group("/api/articles")
	articles.GET("", articleHandler.List)
	articles.GET("/recent", articleHandler.Recent)
	articles.GET("/new", articleHandler.New)
	articles.GET("/featured", articleHandler.Featured)
	articles.GET("/:id", articleHandler.Get)
	articles.GET("/:id/image", articleHandler.GetImage)
	articles.POST("", articleHandler.Create, authGate)
	articles.PUT("/:id", articleHandler.Update, authGate)
	articles.DELETE("/:id", articleHandler.Delete, authGate)

	// --- User routes ---
	users := e.Group("/api/users", authGate)
	users.GET("/profile", userHandler.GetProfile)
	users.PUT("/profile", userHandler.UpdateProfile)

	// --- Observability ---
	e.GET("/metrics", echoprometheus.NewHandler())

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?

	return e
}
