package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/lmittmann/tint"

	"casa-certa-portal/internal/auth"
	"casa-certa-portal/internal/cleanup"
	"casa-certa-portal/internal/config"
	"casa-certa-portal/internal/database"
	"casa-certa-portal/internal/handlers"
	"casa-certa-portal/internal/middleware"
	"casa-certa-portal/internal/ratelimit"
	"casa-certa-portal/internal/scheduler"
	"casa-certa-portal/internal/search"
	"casa-certa-portal/internal/services"
	"casa-certa-portal/internal/staging"
	"casa-certa-portal/internal/storage"
	"casa-certa-portal/internal/uploads"
)

func main() {
	_ = godotenv.Load()

	configPath := getEnv("CONFIG_PATH", "config/portal.yaml")
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		slog.Warn("failed to load config, using defaults", "path", configPath, "error", err)
		cfg = config.DefaultConfig()
	}

	setupLogger(cfg.Logging.Level)

	db, err := database.NewGormDB(cfg.Database)
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := db.InitSchema(); err != nil {
		slog.Error("failed to migrate schema", "error", err)
		os.Exit(1)
	}

	seedAdmin(db)

	ctx := context.Background()
	objects, err := storage.NewS3Store(ctx, cfg.Storage)
	if err != nil {
		slog.Error("failed to initialize object storage", "error", err)
		os.Exit(1)
	}

	var searchClient *search.SearchClient
	if cfg.Search.Meilisearch.Enabled {
		searchClient = search.NewSearchClient(cfg.Search.Meilisearch.Host, cfg.Search.Meilisearch.APIKey)
		if err := searchClient.InitIndex(); err != nil {
			slog.Warn("search index unavailable, catalog falls back to SQL", "error", err)
			searchClient = nil
		} else {
			reindexCatalog(db, searchClient)
		}
	}

	uploadWorkflow := uploads.NewWorkflow(objects, db)
	propertyService := services.NewPropertyService(db, uploadWorkflow, searchClient, objects)
	leadService := services.NewLeadService(db)
	authService := services.NewAuthService(db)

	leadLimiter := ratelimit.NewRateLimiter(
		cfg.Leads.RequestsPerMinute,
		cfg.Leads.RequestsPerHour,
		cfg.Leads.RateLimitEnabled,
	)

	janitor := cleanup.NewService(objects, db, cfg.Cleanup)
	sched := scheduler.NewScheduler(janitor, cfg.Cleanup)
	if err := sched.Start(); err != nil {
		slog.Warn("failed to start scheduler", "error", err)
	}
	defer sched.Stop()

	staged := staging.NewStore(cfg.Auth.SessionTTL())

	r := gin.Default()
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.Server.AllowOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE"},
		AllowHeaders:     []string{"Origin", "Content-Type"},
		AllowCredentials: true,
	}))

	catalogHandler := handlers.NewCatalogHandler(propertyService)
	leadHandler := handlers.NewLeadHandler(leadService, leadLimiter)
	authHandler := handlers.NewAuthHandler(authService, staged, cfg.Auth)
	adminHandler := handlers.NewAdminHandler(propertyService, staged, sched)
	stagingHandler := handlers.NewStagingHandler(staged)

	r.GET("/health", healthCheck)

	r.GET("/api/properties", catalogHandler.List)
	r.GET("/api/properties/featured", catalogHandler.Featured)
	r.GET("/api/properties/:slug", catalogHandler.Detail)
	r.POST("/api/leads", leadHandler.Create)

	r.POST("/admin/login", authHandler.Login)

	admin := r.Group("/admin", middleware.AdminGate(cfg.Auth))
	{
		admin.POST("/logout", authHandler.Logout)

		admin.GET("/api/properties", adminHandler.ListProperties)
		admin.GET("/api/properties/:id", adminHandler.GetProperty)
		admin.POST("/api/properties", adminHandler.SaveProperty)
		admin.DELETE("/api/properties/:id", adminHandler.DeleteProperty)

		admin.GET("/api/leads", leadHandler.List)
		admin.GET("/api/ratelimit/stats", leadHandler.RateLimitStats)

		admin.GET("/api/staging", stagingHandler.List)
		admin.POST("/api/staging/images", stagingHandler.AddImages)
		admin.DELETE("/api/staging/images/:id", stagingHandler.RemoveImage)
		admin.POST("/api/staging/clear", stagingHandler.Clear)
		admin.POST("/api/staging/cover", stagingHandler.SetCover)
		admin.GET("/api/staging/images/:id/preview", stagingHandler.Preview)

		admin.POST("/api/cleanup/run", adminHandler.RunCleanup)
	}

	port := getEnv("PORT", strconv.Itoa(cfg.Server.Port))
	slog.Info("server starting", "port", port)
	if err := r.Run(":" + port); err != nil {
		slog.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}

// seedAdmin creates the initial admin account from the environment so
// a fresh deployment has a way into the admin area.
func seedAdmin(db *database.GormDB) {
	email := os.Getenv("ADMIN_EMAIL")
	password := os.Getenv("ADMIN_PASSWORD")
	if email == "" || password == "" {
		return
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		slog.Error("failed to hash admin password", "error", err)
		return
	}
	if err := db.EnsureAdminUser(email, hash); err != nil {
		slog.Error("failed to seed admin user", "email", email, "error", err)
		return
	}
	slog.Info("admin user ensured", "email", email)
}

// reindexCatalog pushes every stored property into the search index at
// startup so the index survives Meilisearch data loss.
func reindexCatalog(db *database.GormDB, searchClient *search.SearchClient) {
	props, err := db.ListProperties(database.FilterParams{})
	if err != nil {
		slog.Warn("failed to load properties for reindex", "error", err)
		return
	}
	if err := searchClient.IndexProperties(props); err != nil {
		slog.Warn("failed to reindex properties", "error", err)
		return
	}
	slog.Info("catalog reindexed", "count", len(props))
}

func setupLogger(level string) {
	var lvl slog.Level
	switch level {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}

	slog.SetDefault(slog.New(tint.NewHandler(os.Stderr, &tint.Options{
		Level:      lvl,
		TimeFormat: time.Kitchen,
	})))
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
