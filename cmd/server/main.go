package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	apperrors "github.com/devlink-kr/idea-insight/internal/errors"
	"github.com/devlink-kr/idea-insight/internal/events"
	"github.com/devlink-kr/idea-insight/internal/llm"
	"github.com/devlink-kr/idea-insight/internal/monitoring"
	"github.com/devlink-kr/idea-insight/internal/prediction"
	"github.com/devlink-kr/idea-insight/internal/ratelimit"
	"github.com/devlink-kr/idea-insight/internal/recommend"
	"github.com/devlink-kr/idea-insight/internal/store"
	"github.com/devlink-kr/idea-insight/internal/textfeat"
	"github.com/devlink-kr/idea-insight/internal/types"
)

// requestTimeout bounds every scoring request end to end.
const requestTimeout = 30 * time.Second

func main() {
	// Structured logging setup
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	// Configuration from environment with defaults
	dataDir := getEnvOrDefault("DATA_DIR", "./data")
	port := getEnvOrDefault("PORT", "8080")
	llmAPIKey := os.Getenv("LLM_API_KEY")
	llmModel := os.Getenv("LLM_MODEL")
	redisAddr := os.Getenv("REDIS_ADDR")
	redisPassword := os.Getenv("REDIS_PASSWORD")

	gin.SetMode(getEnvOrDefault("GIN_MODE", gin.ReleaseMode))

	// Initialize database and repository
	db, err := store.NewDB(dataDir)
	if err != nil {
		slog.Error("Failed to initialize database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	repo := store.NewRepository(db)

	// Text feature extraction with persistent content-hash cache
	featureCache := textfeat.NewCache(repo)
	completer := llm.NewClient(llmAPIKey, llmModel)
	if !completer.Configured() {
		slog.Warn("LLM API key not configured, categorization will use keyword fallback")
	}
	extractor := textfeat.NewExtractor(completer, featureCache)

	// Warm the extraction cache from persisted entries
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		entries, err := repo.LoadTextFeatureCache(ctx)
		if err != nil {
			slog.Error("Failed to warm feature cache", "error", err)
			return
		}
		for hash, features := range entries {
			featureCache.Warm(hash, features)
		}
		slog.Info("Feature cache warmed", "entries", len(entries))
	}()

	// Event bus and history recorder
	bus := events.NewBus(logger)
	defer bus.Close()

	recorder := events.NewRecorder(bus, repo)
	recorderCtx, stopRecorder := context.WithCancel(context.Background())
	defer stopRecorder()
	if err := recorder.Run(recorderCtx); err != nil {
		slog.Error("Failed to start event recorder", "error", err)
		os.Exit(1)
	}

	// Scoring engines
	predictor := prediction.NewEngine(repo, extractor, bus)
	recommender := recommend.NewEngine(repo, bus)

	// Monitoring and rate limiting
	appMetrics := monitoring.NewMetrics()

	redisClient, err := ratelimit.NewRedisClient(redisAddr, redisPassword, 0)
	if err != nil {
		slog.Warn("Redis unavailable", "error", err)
	}
	defer redisClient.Close()

	limiter := ratelimit.NewRateLimiter(redisClient, ratelimit.DefaultConfig(), appMetrics)

	r := gin.New()

	r.Use(monitoring.Middleware(appMetrics, logger))
	r.Use(apperrors.ErrorHandler())
	r.Use(apperrors.RecoveryHandler())

	// Every request carries a deadline so downstream store reads and LLM
	// calls cannot hang a response.
	r.Use(func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
		defer cancel()
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	})

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Accept"}
	r.Use(cors.New(corsConfig))

	r.Use(limiter.IPRateLimitMiddleware())

	r.GET("/health", func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		status := "ok"
		checks := gin.H{
			"database": "ok",
			"redis":    "disabled",
			"llm":      "fallback",
		}
		if err := db.HealthCheck(ctx); err != nil {
			checks["database"] = "unreachable"
			status = "degraded"
		}
		if redisClient.IsEnabled() {
			if err := redisClient.HealthCheck(ctx); err != nil {
				checks["redis"] = "unreachable"
				status = "degraded"
			} else {
				checks["redis"] = "ok"
			}
		}
		if completer.Configured() {
			checks["llm"] = "ok"
		}

		c.JSON(http.StatusOK, gin.H{
			"status":    status,
			"timestamp": time.Now().Format(time.RFC3339),
			"version":   "1.0.0",
			"checks":    checks,
			"metrics":   appMetrics.GetStats(),
			"db_pool":   db.PoolStats(),
			"ratelimit": limiter.GetStats(),
		})
	})

	r.GET("/metrics", func(c *gin.Context) {
		c.JSON(http.StatusOK, appMetrics.GetStats())
	})

	r.GET("/cache/stats", func(c *gin.Context) {
		c.JSON(http.StatusOK, featureCache.Stats())
	})

	// Analyze idea text into features
	r.POST("/analyze", func(c *gin.Context) {
		var req types.AnalyzeRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			appErr := apperrors.NewValidationError("invalid request body", err)
			apperrors.LogError(c, appErr)
			c.JSON(appErr.HTTPStatus, appErr)
			return
		}

		if strings.TrimSpace(req.Text) == "" && strings.TrimSpace(req.Title) == "" {
			appErr := apperrors.NewValidationError("title or text is required", nil)
			apperrors.LogError(c, appErr)
			c.JSON(appErr.HTTPStatus, appErr)
			return
		}

		features := extractor.Extract(c.Request.Context(), req.Title, req.Text)

		appMetrics.IncrementAnalyze()
		if features.CategorySource == textfeat.SourceFallback {
			appMetrics.IncrementCompletionFallback()
		} else {
			appMetrics.IncrementCompletionCall()
		}

		c.JSON(http.StatusOK, features)
	})

	// Predict success score for an idea/developer pairing
	r.POST("/predict", func(c *gin.Context) {
		var req types.PredictRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			appErr := apperrors.NewValidationError("idea_id and developer_id are required", err)
			apperrors.LogError(c, appErr)
			c.JSON(appErr.HTTPStatus, appErr)
			return
		}

		result, err := predictor.Predict(c.Request.Context(), req.IdeaID, req.DeveloperID)
		if err != nil {
			appErr := apperrors.ToAppError(err)
			apperrors.LogError(c, appErr)
			c.JSON(appErr.HTTPStatus, appErr)
			return
		}

		appMetrics.IncrementPrediction()
		c.JSON(http.StatusOK, result)
	})

	// Rank ideas for a user
	r.POST("/recommend", func(c *gin.Context) {
		var req types.RecommendRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			appErr := apperrors.NewValidationError("user_id is required", err)
			apperrors.LogError(c, appErr)
			c.JSON(appErr.HTTPStatus, appErr)
			return
		}

		results, err := recommender.Recommend(c.Request.Context(), req.UserID, req.Limit, req.ExcludeIDs)
		if err != nil {
			appErr := apperrors.ToAppError(err)
			apperrors.LogError(c, appErr)
			c.JSON(appErr.HTTPStatus, appErr)
			return
		}

		appMetrics.IncrementRecommendation()
		c.JSON(http.StatusOK, gin.H{
			"user_id":         req.UserID,
			"recommendations": results,
		})
	})

	// Record a recommendation click impression
	r.POST("/recommend/click", func(c *gin.Context) {
		var req types.ClickRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			appErr := apperrors.NewValidationError("user_id and idea_id are required", err)
			apperrors.LogError(c, appErr)
			c.JSON(appErr.HTTPStatus, appErr)
			return
		}

		recommender.RecordClick(req.UserID, req.IdeaID, req.Position)

		appMetrics.IncrementClick()
		c.JSON(http.StatusAccepted, gin.H{"status": "recorded"})
	})

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Start server with graceful shutdown
	srv := &http.Server{
		Addr:    ":" + port,
		Handler: r,
	}

	go func() {
		slog.Info("Starting server", "port", port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("Server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	slog.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	stopRecorder()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("Server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("Server exited")
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
