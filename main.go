package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/inkling-notes/inkling-server/handlers"
	"github.com/inkling-notes/inkling-server/internal/ai"
	"github.com/inkling-notes/inkling-server/internal/config"
	"github.com/inkling-notes/inkling-server/internal/database"
	"github.com/inkling-notes/inkling-server/internal/note/repository"
	"github.com/inkling-notes/inkling-server/internal/note/service"
	"github.com/inkling-notes/inkling-server/pkg/logger"
	"github.com/inkling-notes/inkling-server/pkg/metrics"
	"github.com/inkling-notes/inkling-server/pkg/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
)

var startTime = time.Now()

func main() {
	// logging is controlled with LOG_LEVEL env: debug|info|warn|error|fatal
	logger.Init(os.Getenv("LOG_LEVEL"))
	logger.Debugf("startup: LOG_LEVEL=%s", logger.LevelString())

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Fatalf("failed to load config: %v", err)
	}
	logger.Infof("config loaded: mongo=%v redis=%v provider=%s ai_key_set=%v",
		cfg.MongoDB.URI != "", cfg.Redis.Host != "", cfg.Provider.Name, cfg.Provider.APIKey != "")

	r := gin.New()

	// CORS scoped to the configured client origin
	r.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", cfg.Server.ClientURL)
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Origin, Content-Type, Accept, Authorization, X-Request-ID")
		c.Writer.Header().Set("Access-Control-Expose-Headers", "Content-Length")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusOK)
			return
		}
		c.Next()
	})

	r.Use(gin.Logger(), gin.Recovery(), middleware.RequestID())

	// Connect to Redis early so the rate limiter can use it when configured
	var redisClient *redis.Client
	if cfg.Redis.Host != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Host + ":" + cfg.Redis.Port,
			Password: cfg.Redis.Password,
		})
		if err := redisClient.Ping(context.Background()).Err(); err != nil {
			logger.Warnf("failed to connect to Redis (%s:%s): %v", cfg.Redis.Host, cfg.Redis.Port, err)
			redisClient = nil
		} else {
			logger.Infof("Connected to Redis: %s:%s", cfg.Redis.Host, cfg.Redis.Port)
		}
	}
	if cfg.RateLimit.Enabled {
		if cfg.RateLimit.UseRedis && redisClient != nil {
			win := time.Duration(cfg.RateLimit.WindowSeconds) * time.Second
			r.Use(middleware.RedisRateLimit(redisClient, cfg.RateLimit.RPS, cfg.RateLimit.Burst, win))
		} else {
			r.Use(middleware.RateLimit(cfg.RateLimit.RPS, cfg.RateLimit.Burst))
		}
	}

	// Connect to MongoDB with retry/backoff to tolerate startup races; fall
	// back to the in-memory store when Mongo is not configured.
	ctx := context.Background()
	var repo repository.NoteRepository
	var mongoClient *mongo.Client
	if cfg.MongoDB.URI != "" {
		const maxAttempts = 5
		backoff := time.Second
		var errConn error
		for attempt := 1; attempt <= maxAttempts; attempt++ {
			mongoClient, errConn = database.ConnectMongo(ctx, cfg.MongoDB.URI, cfg.MongoDB.Timeout)
			if errConn == nil {
				break
			}
			logger.Warnf("attempt %d/%d: failed to connect to MongoDB: %v", attempt, maxAttempts, errConn)
			if attempt < maxAttempts {
				time.Sleep(backoff)
				backoff *= 2
			}
		}
		if errConn != nil {
			logger.Fatalf("could not connect to MongoDB after %d attempts: %v", maxAttempts, errConn)
		}
		defer func() { _ = mongoClient.Disconnect(ctx) }()
		col := mongoClient.Database(cfg.MongoDB.Database).Collection("notes")
		repo = repository.NewMongoRepo(col)
		logger.Infof("Using MongoDB note storage: db=%s", cfg.MongoDB.Database)
	} else {
		repo = repository.NewMemoryRepo()
		logger.Warn("MONGODB_URI not set; using in-memory note storage")
	}

	noteSvc := service.New(repo)
	aiSvc := ai.NewService(ai.NewCompletionClient(cfg.Provider), repo)

	if cfg.Auth.CredentialSecret == "" {
		logger.Warn("CREDENTIAL_SECRET not set; all authenticated routes will reject")
	}
	authed := middleware.Auth(middleware.NewHMACVerifier(cfg.Auth.CredentialSecret))

	handlers.NewNotesHandler(noteSvc).Register(r.Group("/notes", authed))
	handlers.NewAIHandler(aiSvc).Register(r.Group("/ai", authed))

	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "healthy")
	})

	// readiness reflects critical dependencies only; the AI provider is
	// surfaced for visibility but a missing key doesn't gate readiness
	r.GET("/ready", func(c *gin.Context) {
		ready := true
		deps := map[string]bool{}

		deps["storage"] = repo != nil
		if mongoClient != nil {
			pingCtx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
			defer cancel()
			deps["mongodb"] = mongoClient.Ping(pingCtx, nil) == nil
			if !deps["mongodb"] {
				ready = false
			}
		}
		if cfg.RateLimit.UseRedis {
			deps["redis"] = redisClient != nil
			if !deps["redis"] {
				ready = false
			}
		}
		deps["ai_provider"] = cfg.Provider.APIKey != ""

		status := http.StatusOK
		label := "ready"
		if !ready {
			status = http.StatusServiceUnavailable
			label = "not_ready"
		}
		c.JSON(status, gin.H{"status": label, "deps": deps, "uptime": time.Since(startTime).String()})
	})

	metrics.RegisterCollectors(prometheus.DefaultRegisterer)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
	logger.Infof("Starting notes service on %s", addr)
	if err := r.Run(addr); err != nil {
		logger.Fatalf("server failed: %v", err)
	}
}
