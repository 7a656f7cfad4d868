package api

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/postboard/api/internal/api/handler"
	"github.com/postboard/api/internal/api/middleware"
	"github.com/postboard/api/internal/core/ports"
	"github.com/postboard/api/internal/core/service"
	mongorepo "github.com/postboard/api/internal/infrastructure/db/mongo"
	redisstore "github.com/postboard/api/internal/infrastructure/db/redis"
	"github.com/postboard/api/internal/infrastructure/security"
	"github.com/postboard/api/internal/infrastructure/validation"
	"github.com/postboard/api/internal/pkg/config"
	"github.com/postboard/api/pkg/logger"
)

const maxBodySize = "1M"

// Services groups the core use cases the HTTP layer exposes.
type Services struct {
	Auth     ports.AuthService
	Posts    ports.PostService
	Resolver ports.IdentityResolver
}

// Options tunes the HTTP surface. Zero values are usable.
type Options struct {
	CORSOrigin string
	// RateLimiter disables rate limiting when nil.
	RateLimiter echomiddleware.RateLimiterStore
	// Readiness defaults to an always-ready probe when nil.
	Readiness *handler.ReadinessHandler
	Logger    zerolog.Logger
	// MetricsRegisterer defaults to prometheus.DefaultRegisterer. The handler
	// on /metrics gathers from MetricsGatherer, or the default gatherer.
	MetricsRegisterer prometheus.Registerer
	MetricsGatherer   prometheus.Gatherer
}

// NewRouter wires the repositories, security primitives and services onto
// the given connections and returns the ready-to-serve Echo instance.
// logger.Init must have been called.
func NewRouter(cfg *config.Config, db *mongo.Database, rdb *redis.Client) *echo.Echo {
	log := logger.Get()

	users := mongorepo.NewUserRepository(db)
	posts := mongorepo.NewPostRepository(db)

	hasher := security.NewBcryptHasher(cfg.Auth.BcryptCost)
	tokens := security.NewJWTService(cfg.Auth.JWTSecret, cfg.Auth.JWTExpiresIn)
	v := validation.New()

	svc := Services{
		Auth:     service.NewAuthService(users, hasher, tokens, v, log),
		Posts:    service.NewPostService(posts, users, v, log),
		Resolver: service.NewIdentityResolver(tokens, users, log),
	}

	return New(svc, Options{
		CORSOrigin:  cfg.CORSOrigin,
		RateLimiter: redisstore.NewRateLimitStore(rdb, cfg.RateLimit.Max, cfg.RateLimit.Window, log),
		Readiness:   handler.NewReadinessHandler(db, rdb, log),
		Logger:      log,
	})
}

// New builds the Echo instance with all middleware and routes registered.
func New(svc Services, opts Options) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = NewHTTPErrorHandler(opts.Logger)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestIDWithConfig(echomiddleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	e.Use(requestLogger(opts.Logger))
	e.Use(echomiddleware.Secure())
	e.Use(echomiddleware.BodyLimit(maxBodySize))
	e.Use(middleware.CORS(opts.CORSOrigin))
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Namespace:  "postboard",
		Subsystem:  "http",
		Registerer: opts.MetricsRegisterer,
		Skipper: func(c echo.Context) bool {
			return c.Path() == "/metrics"
		},
	}))
	if opts.RateLimiter != nil {
		e.Use(middleware.RateLimit(opts.RateLimiter))
	}
	e.Use(middleware.Identity(svc.Resolver))

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(svc.Auth)
	postHandler := handler.NewPostHandler(svc.Posts)
	healthHandler := handler.NewHealthHandler()
	readiness := opts.Readiness
	if readiness == nil {
		readiness = handler.NewReadinessHandlerWithChecks(nil, opts.Logger)
	}

	// --- Health probes and tooling ---
	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", readiness.Readiness)
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{
		Gatherer: opts.MetricsGatherer,
	}))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	v1 := e.Group("/v1")

	// --- Auth routes ---
	v1.POST("/auth/register", authHandler.Register)
	v1.POST("/auth/login", authHandler.Login)
	v1.POST("/auth/logout", authHandler.Logout)
	v1.GET("/me", authHandler.Me)

	// --- Post routes ---
	v1.GET("/posts", postHandler.List)
	v1.GET("/posts/:id", postHandler.Get)
	v1.POST("/posts", postHandler.Create)
	v1.PATCH("/posts/:id", postHandler.Update)
	v1.DELETE("/posts/:id", postHandler.Delete)

	return e
}

func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogRemoteIP:  true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v echomiddleware.RequestLoggerValues) error {
			event := log.Info()
			switch {
			case v.Status >= http.StatusInternalServerError:
				event = log.Error().Err(v.Error)
			case v.Status >= http.StatusBadRequest:
				event = log.Warn()
			}
			event.
				Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("request_id", v.RequestID).
				Str("remote_ip", v.RemoteIP).
				Msg("request")
			return nil
		},
	})
}
