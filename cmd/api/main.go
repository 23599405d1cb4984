package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"commerce_agent_backend/internal/cart"
	"commerce_agent_backend/internal/catalog"
	catalogcache "commerce_agent_backend/internal/catalog/cache"
	"commerce_agent_backend/internal/handoff"
	"commerce_agent_backend/internal/rpc"
	"commerce_agent_backend/platform/apperr"
	"commerce_agent_backend/platform/config"
	"commerce_agent_backend/platform/db"
	"commerce_agent_backend/platform/httpkit"
	"commerce_agent_backend/platform/logger"
	"commerce_agent_backend/platform/validator"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/time/rate"
)

const (
	serverName    = "commerce-agent"
	serverVersion = "1.0.0"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	// Initialize structured logger
	log := logger.New(cfg.Env)
	log.Info("starting server", "env", cfg.Env, "addr", cfg.HTTPAddr)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// ========================================================================
	// Infrastructure Layer
	// ========================================================================

	if err := withRetry(ctx, log, "database migrations", 5, 2*time.Second, func() error {
		return db.RunMigrations(ctx, cfg, "migrations")
	}); err != nil {
		log.Error("failed to run database migrations", "error", err)
		panic("failed to run database migrations: " + err.Error())
	}
	log.Info("database migrations complete")

	var pool *pgxpool.Pool
	if err := withRetry(ctx, log, "database connection", 5, 2*time.Second, func() error {
		p, err := db.NewPool(ctx, cfg)
		if err != nil {
			return err
		}
		pool = p
		return nil
	}); err != nil {
		log.Error("failed to connect to database", "error", err)
		panic("failed to connect to database: " + err.Error())
	}
	defer pool.Close()
	log.Info("database connection established")

	searchCache, closeCache := initSearchCache(cfg, log)
	if closeCache != nil {
		defer closeCache()
	}

	// Shared validator instance for dependency injection
	val := validator.New()

	// ========================================================================
	// Domain Modules (Composition Root)
	// ========================================================================

	catalogModule := catalog.NewModule(pool, searchCache, val, log)
	cartModule := cart.NewModule(pool, val, log)
	handoffModule := handoff.NewModule(cfg, val, log)

	server := rpc.NewServer(serverName, serverVersion, log, catalogModule, cartModule, handoffModule)

	// ========================================================================
	// HTTP Layer
	// ========================================================================

	engine := newEngine(cfg, log, server, db.NewPoolAdapter(pool))

	srvErr := make(chan error, 1)
	go func() {
		log.Info("server listening", "addr", cfg.HTTPAddr)
		srvErr <- engine.Run(cfg.HTTPAddr)
	}()

	select {
	case <-ctx.Done():
		log.Info("shutdown signal received, gracefully shutting down")
	case err := <-srvErr:
		if err != nil {
			log.Error("server error", "error", err)
			panic("server error: " + err.Error())
		}
	}
}

func newEngine(cfg *config.Config, log *logger.Logger, server *rpc.Server, health *db.PoolAdapter) *gin.Engine {
	if cfg.Env != "development" {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(httpkit.RequestLogger(log))
	engine.Use(httpkit.SecurityHeaders())
	engine.Use(cors.New(corsConfig(cfg)))

	limiter := httpkit.NewIPRateLimiter(rate.Limit(cfg.GetRPCRateRPS()), cfg.GetRPCRateBurst(), log)

	engine.GET("/healthz", func(c *gin.Context) {
		if err := health.Ping(c.Request.Context()); err != nil {
			httpkit.HandleError(c, apperr.Wrap(apperr.KindUnavailable, "database unreachable", err))
			return
		}
		httpkit.OK(c, gin.H{"status": "ok"})
	})

	engine.POST("/rpc", limiter.RateLimit(), server.Handle)

	return engine
}

func corsConfig(cfg config.HTTPConfig) cors.Config {
	corsCfg := cors.DefaultConfig()
	corsCfg.AllowMethods = []string{"POST", "GET", "OPTIONS"}
	corsCfg.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "Authorization"}

	if cfg.GetCORSAllowAll() {
		corsCfg.AllowAllOrigins = true
		return corsCfg
	}

	corsCfg.AllowOrigins = cfg.GetCORSOrigins()
	corsCfg.AllowCredentials = cfg.GetCORSAllowCreds()
	return corsCfg
}

func initSearchCache(cfg config.CacheConfig, log *logger.Logger) (*catalogcache.Cache, func()) {
	if !cfg.IsCacheEnabled() {
		log.Warn("REDIS_URL not configured; search cache disabled")
		return nil, nil
	}

	searchCache, err := catalogcache.New(cfg.GetRedisURL(), cfg.GetSearchCacheTTL())
	if err != nil {
		log.Error("failed to initialize search cache", "error", err)
		return nil, nil
	}

	log.Info("search cache initialized", "ttl", cfg.GetSearchCacheTTL())
	return searchCache, func() {
		_ = searchCache.Close()
	}
}

func withRetry(ctx context.Context, log *logger.Logger, name string, attempts int, baseDelay time.Duration, fn func() error) error {
	if attempts < 1 {
		return fmt.Errorf("%s: invalid retry attempts", name)
	}

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if err := fn(); err == nil {
			return nil
		} else {
			lastErr = err
			log.Warn("retryable operation failed", "operation", name, "attempt", attempt, "error", err)
		}

		if attempt < attempts {
			delay := time.Duration(attempt*attempt) * baseDelay
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
			}
		}
	}

	return errors.New(name + ": " + lastErr.Error())
}
