package api

import (
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/freightline/quoting-system/internal/api/handler"
	"github.com/freightline/quoting-system/internal/api/middleware"
	"github.com/freightline/quoting-system/internal/core/domain"
	"github.com/freightline/quoting-system/internal/core/service"
	mongodb "github.com/freightline/quoting-system/internal/infrastructure/db/mongo"
	redisdb "github.com/freightline/quoting-system/internal/infrastructure/db/redis"
)

// RouterConfig carries the settings the router needs beyond its connections.
type RouterConfig struct {
	JWTSecret    string
	RateCacheTTL time.Duration
}

// NewRouter builds the Echo instance with all dependencies wired and routes
// registered. sink is the asynchronous persistence dispatcher shared with the
// quote pipeline.
func NewRouter(db *mongo.Database, rdb *redis.Client, sink service.PersistenceDispatcher, cfg RouterConfig, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("quoting"))

	// --- Dependencies ---
	rateRepo := mongodb.NewRateRepository(db)
	quoteRepo := mongodb.NewQuoteRepository(db)
	authRepo := mongodb.NewAuthRepository(db)
	rateCache := redisdb.NewRateCache(rdb, cfg.RateCacheTTL)

	rateService := service.NewRateService(rateRepo, rateCache, log)
	transitService := service.NewTransitService(rateRepo, log)
	quoteService := service.NewQuoteService(rateService, transitService, quoteRepo, sink, log)
	authService := service.NewAuthService(authRepo, cfg.JWTSecret, 24*time.Hour)

	quoteHandler := handler.NewQuoteHandler(quoteService)
	rateHandler := handler.NewRateHandler(rateService)
	transitHandler := handler.NewTransitHandler(transitService)
	authHandler := handler.NewAuthHandler(authService)

	authMiddleware := middleware.Auth(cfg.JWTSecret)

	// --- Auth routes ---
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/login", authHandler.Login)

	// --- Health probes and metrics (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandler())

	// --- Authenticated API ---
	v1 := e.Group("/v1", authMiddleware)

	v1.POST("/quotes", quoteHandler.Create)
	v1.GET("/quotes", quoteHandler.List)
	v1.GET("/quotes/:id", quoteHandler.Get)
	v1.GET("/transit-estimates", transitHandler.Get)
	v1.GET("/rates", rateHandler.Get)

	// Rate management is admin only.
	admin := v1.Group("/admin", middleware.RBAC(domain.RoleAdmin))
	admin.PUT("/rates", rateHandler.Update)
	admin.DELETE("/rates", rateHandler.Deactivate)

	return e
}
