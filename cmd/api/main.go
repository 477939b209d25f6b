package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/therealutkarshpriyadarshi/vidtube/internal/cache"
	"github.com/therealutkarshpriyadarshi/vidtube/internal/config"
	"github.com/therealutkarshpriyadarshi/vidtube/internal/database"
	"github.com/therealutkarshpriyadarshi/vidtube/internal/logging"
	"github.com/therealutkarshpriyadarshi/vidtube/internal/middleware"
	"github.com/therealutkarshpriyadarshi/vidtube/internal/ratelimit"
	"github.com/therealutkarshpriyadarshi/vidtube/internal/storage"
	"github.com/therealutkarshpriyadarshi/vidtube/internal/tracing"
	"github.com/therealutkarshpriyadarshi/vidtube/internal/videoplatform"
	"github.com/therealutkarshpriyadarshi/vidtube/internal/webhook"
	"github.com/therealutkarshpriyadarshi/vidtube/internal/workflow"
)

// API holds the stores and collaborators the handlers work against.
type API struct {
	videos        VideoStore
	users         UserStore
	comments      CommentStore
	reactions     ReactionStore
	subscriptions SubscriptionStore
	views         ViewStore
	categories    CategoryStore
	playlists     PlaylistStore

	platform  VideoPlatform
	storage   ObjectStorage
	workflows WorkflowTrigger
	cache     CategoryCache
	health    HealthChecker

	imageBaseURL string
	logger       *logging.Logger
}

func main() {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config.yaml"
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		logging.NewDefaultLogger().Fatalf("Failed to load config: %v", err)
	}

	logger, err := logging.NewLogger(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
	})
	if err != nil {
		logging.NewDefaultLogger().Fatalf("Failed to initialize logging: %v", err)
	}

	db, err := database.New(cfg.Database)
	if err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()
	repo := database.NewRepository(db)

	redisClient, err := cache.NewClient(cfg.Redis)
	if err != nil {
		logger.Fatalf("Failed to connect to Redis: %v", err)
	}
	defer redisClient.Close()

	stor, err := storage.New(cfg.Storage)
	if err != nil {
		logger.Fatalf("Failed to initialize storage: %v", err)
	}

	platform := videoplatform.New(cfg.Mux, cfg.App.BaseURL)
	workflows := workflow.New(cfg.Workflow)

	api := &API{
		videos:        repo,
		users:         repo,
		comments:      repo,
		reactions:     repo,
		subscriptions: repo,
		views:         repo,
		categories:    repo,
		playlists:     repo,
		platform:      platform,
		storage:       stor,
		workflows:     workflows,
		cache:         cache.New(redisClient),
		health:        repo,
		imageBaseURL:  cfg.Mux.ImageBaseURL,
		logger:        logger,
	}

	auth := middleware.NewAuth(cfg.Auth.JWTSecret, repo)
	userLimiter := ratelimit.New(redisClient, cfg.RateLimit)
	ipLimiter := middleware.NewIPRateLimiter(cfg.RateLimit.IPRate, cfg.RateLimit.IPBurst)

	muxHook := webhook.NewMuxHandler(repo, cfg.Mux.WebhookSecret, cfg.Mux.ImageBaseURL, logger)
	userHook := webhook.NewUserHandler(repo, cfg.Auth.WebhookSecret, logger)

	deps := routeDeps{
		auth:        auth,
		userLimit:   middleware.UserRateLimit(userLimiter),
		ipLimit:     middleware.IPRateLimit(ipLimiter),
		muxWebhook:  muxHook.Handle,
		userWebhook: userHook.Handle,
		logging:     middleware.RequestLogger(logger),
	}

	if cfg.Tracing.Enabled {
		tracer, closer, err := tracing.InitTracer(cfg.Tracing.ServiceName, cfg.Tracing.JaegerEndpoint)
		if err != nil {
			logger.Fatalf("Failed to initialize tracing: %v", err)
		}
		defer closer.Close()
		deps.tracing = tracing.Middleware(tracer)
	}

	gin.SetMode(gin.ReleaseMode)
	router := setupRouter(api, deps)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		logger.Infof("Starting API server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatalf("Failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatalf("Server forced to shutdown: %v", err)
	}

	logger.Info("Server stopped")
}

// healthCheck reports database and cache liveness.
func (api *API) healthCheck(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	if err := api.health.Health(ctx); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status": "unhealthy",
			"error":  err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}
