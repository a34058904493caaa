package api

import (
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/offcampus/housing-api/internal/api/handler"
	"github.com/offcampus/housing-api/internal/api/middleware"
	"github.com/offcampus/housing-api/internal/core/domain"
	"github.com/offcampus/housing-api/internal/core/ports"
	"github.com/offcampus/housing-api/internal/core/service"
	mongostore "github.com/offcampus/housing-api/internal/infrastructure/db/mongo"
	redisstore "github.com/offcampus/housing-api/internal/infrastructure/db/redis"
)

// RouterConfig carries the settings the HTTP layer needs.
type RouterConfig struct {
	JWTSecret   string
	TokenTTL    time.Duration
	InterestTTL time.Duration
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(db *mongo.Database, rdb *redis.Client, notifier ports.Notifier, cfg RouterConfig, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echoprometheus.NewMiddleware("marketplace"))

	// --- Dependencies ---
	userRepo := mongostore.NewUserRepository(db)
	propertyRepo := mongostore.NewPropertyRepository(db)
	interestGuard := redisstore.NewInterestGuard(rdb, cfg.InterestTTL)

	userService := service.NewUserService(userRepo, propertyRepo, notifier, interestGuard, cfg.JWTSecret, cfg.TokenTTL, log)
	propertyService := service.NewPropertyService(propertyRepo, userRepo, log)

	userHandler := handler.NewUserHandler(userService)
	propertyHandler := handler.NewPropertyHandler(propertyService)

	auth := middleware.Auth(cfg.JWTSecret)
	brokerOnly := middleware.RBAC(string(domain.TypeBroker))
	studentOnly := middleware.RBAC(string(domain.TypeStudent))
	anyUser := middleware.RBAC(string(domain.TypeBroker), string(domain.TypeStudent))

	// --- Auth routes ---
	e.POST("/auth/register", userHandler.Register)
	e.POST("/auth/login", userHandler.Login)

	// --- Account routes ---
	users := e.Group("/v1/users", auth, anyUser)
	users.GET("/me", userHandler.GetProfile)
	users.PUT("/me", userHandler.UpdateProfile)
	users.DELETE("/me", userHandler.Remove)

	// --- Listing routes ---
	properties := e.Group("/v1/properties", auth)
	properties.GET("", propertyHandler.List, anyUser)
	properties.POST("", propertyHandler.Create, brokerOnly)
	properties.DELETE("", propertyHandler.Remove, brokerOnly)
	properties.GET("/:id", propertyHandler.Get, anyUser)
	properties.PUT("/:id", propertyHandler.Update, brokerOnly)
	properties.POST("/:id/rental", propertyHandler.ToggleRental, brokerOnly)
	properties.POST("/:id/ownership", userHandler.ToggleOwnership, brokerOnly)
	properties.POST("/:id/bookmark", userHandler.ToggleBookmark, studentOnly)
	properties.POST("/:id/interest", userHandler.ShowInterest, studentOnly)

	// --- Health probes and metrics (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", healthDepsHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())

	return e
}
