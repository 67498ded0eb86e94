package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/boostpay/server/internal/infra/config"
	"github.com/boostpay/server/internal/utils/middleware"
)

// App represents the application.
type App struct {
	config  *config.Config
	deps    *Dependencies
	router  *gin.Engine
	cleanup func()
}

// New creates a new application instance.
func New(cfg *config.Config) (*App, error) {
	deps, cleanup, err := InitializeDependencies(cfg)
	if err != nil {
		return nil, fmt.Errorf("init dependencies: %w", err)
	}
	return NewWithDependencies(deps, cleanup), nil
}

// NewWithDependencies builds the application around already wired dependencies.
func NewWithDependencies(deps *Dependencies, cleanup func()) *App {
	if cleanup == nil {
		cleanup = func() {}
	}
	a := &App{
		config:  deps.Config,
		deps:    deps,
		cleanup: cleanup,
	}
	a.router = a.setupRouter()
	a.registerRoutes()
	return a
}

// Router returns the HTTP handler.
func (a *App) Router() *gin.Engine {
	return a.router
}

// Logger returns the application logger.
func (a *App) Logger() *zap.Logger {
	return a.deps.ZapLogger
}

// Stop releases database and Redis connections.
func (a *App) Stop() {
	a.cleanup()
	_ = a.deps.ZapLogger.Sync()
}

// setupRouter creates and configures the Gin router.
func (a *App) setupRouter() *gin.Engine {
	if a.config.Server.Mode != "" {
		gin.SetMode(a.config.Server.Mode)
	} else if a.config.Log.Level == "debug" {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Apply global middleware
	r.Use(middleware.RequestID())
	r.Use(middleware.Recovery(a.deps.Logger))
	r.Use(middleware.Logging(a.deps.Logger))
	r.Use(middleware.Metrics(a.deps.Metrics))

	corsCfg := middleware.DefaultCORSConfig()
	if len(a.config.CORS.AllowOrigins) > 0 {
		corsCfg.AllowOrigins = a.config.CORS.AllowOrigins
	}
	r.Use(middleware.CORS(corsCfg))

	r.GET("/health", a.health)

	if a.config.Metrics.Enabled {
		path := a.config.Metrics.Path
		if path == "" {
			path = "/metrics"
		}
		r.GET(path, gin.WrapH(promhttp.Handler()))
	}

	return r
}

// registerRoutes registers all API routes.
func (a *App) registerRoutes() {
	v1 := a.router.Group("/api/v1")
	a.deps.WebhookHandler.RegisterRoutes(v1)
	a.deps.OpsHandler.RegisterRoutes(v1)
}

// health reports liveness plus the reachability of the configured stores.
func (a *App) health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	checks := gin.H{"storage": a.config.Database.Driver}
	status := http.StatusOK

	if a.deps.DB != nil {
		if sqlDB, err := a.deps.DB.DB(); err != nil || sqlDB.PingContext(ctx) != nil {
			checks["database"] = "unreachable"
			status = http.StatusServiceUnavailable
		} else {
			checks["database"] = "ok"
		}
	}
	if a.deps.Redis != nil {
		if err := a.deps.Redis.Ping(ctx).Err(); err != nil {
			// Redis only backs push delivery; the webhook path still works.
			checks["redis"] = "degraded"
		} else {
			checks["redis"] = "ok"
		}
	}

	if status == http.StatusOK {
		checks["status"] = "ok"
	} else {
		checks["status"] = "unavailable"
	}
	c.JSON(status, checks)
}
