package main

import (
	"context"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"dropship-service/internal/cache"
	"dropship-service/internal/clients"
	"dropship-service/internal/config"
	"dropship-service/internal/handlers"
	localMiddleware "dropship-service/internal/middleware"
	"dropship-service/internal/services"
	"dropship-service/internal/tenants"
)

// @title Dropship Check API
// @version 1.0.0
// @description Multi-tenant service that checks orders for dropship vendors
// @BasePath /
// @schemes http https

// Global logger
var log *logrus.Logger

func main() {
	// Initialize structured logger
	log = logrus.New()
	log.SetFormatter(&logrus.JSONFormatter{})
	log.SetLevel(logrus.InfoLevel)

	// Check if running health check
	if len(os.Args) > 1 && os.Args[1] == "health" {
		resp, err := http.Get("http://localhost:8080/health")
		if err != nil || resp.StatusCode != http.StatusOK {
			os.Exit(1)
		}
		os.Exit(0)
	}

	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Warn("Warning: .env file not found, using system environment variables")
	}

	// Initialize configuration
	cfg := config.Load()

	if level, err := logrus.ParseLevel(cfg.App.LogLevel); err == nil {
		log.SetLevel(level)
	}

	// Set Gin mode
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	// Load the tenant directory once; resolvers take it as an explicit
	// dependency
	records, err := loadTenantRecords(cfg)
	if err != nil {
		log.WithError(err).Fatal("Failed to load tenant table")
	}
	directory := tenants.Load(records, tenants.EnvCredentialLookup)
	resolver := tenants.NewResolver(directory, tenants.EnvCredentialLookup)
	originGuard := tenants.NewOriginGuard(directory)
	log.WithField("tenants", len(directory.Records())).Info("✓ Tenant directory loaded")

	// Initialize vendor lookup cache (Redis when configured, in-process otherwise)
	vendorCache := initializeCache(cfg)

	// Initialize dependencies
	vendorClient := clients.NewVendorClient(cfg.Vendor.BaseURLTemplate, cfg.Vendor.APIVersion, cfg.Vendor.Timeout, vendorCache)
	classifier := services.NewOrderClassifier(vendorClient, log)
	dropshipHandler := handlers.NewDropshipHandler(resolver, classifier, log)
	healthHandler := handlers.NewHealthHandler()

	// Initialize Gin router
	router := setupRouter(originGuard, dropshipHandler, healthHandler)

	// Start server
	serverAddr := cfg.GetServerAddress()
	log.WithFields(logrus.Fields{
		"addr":        serverAddr,
		"environment": cfg.App.Environment,
	}).Info("🚀 Dropship Service starting")

	if err := router.Run(serverAddr); err != nil {
		log.WithError(err).Fatal("Failed to start server")
	}
}

// loadTenantRecords reads the tenant table, preferring an external file when
// configured over the embedded default
func loadTenantRecords(cfg *config.Config) ([]tenants.TenantRecord, error) {
	if cfg.App.TenantTablePath != "" {
		return tenants.RecordsFromFile(cfg.App.TenantTablePath)
	}
	return tenants.DefaultRecords()
}

// initializeCache picks the vendor lookup cache backend. Redis failures fall
// back to the in-process cache so classification keeps working.
func initializeCache(cfg *config.Config) cache.VendorCache {
	if cfg.Redis.Addr == "" {
		return cache.NewMemoryCache(cfg.Vendor.CacheTTL)
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		log.WithError(err).Warn("Redis unavailable, falling back to in-process vendor cache")
		return cache.NewMemoryCache(cfg.Vendor.CacheTTL)
	}

	log.WithField("addr", cfg.Redis.Addr).Info("✓ Redis vendor cache initialized")
	return cache.NewRedisCache(client, cfg.Vendor.CacheTTL)
}

// setupRouter configures the Gin router with middleware and routes
func setupRouter(originGuard *tenants.OriginGuard, dropshipHandler *handlers.DropshipHandler, healthHandler *handlers.HealthHandler) *gin.Engine {
	router := gin.New()

	// Global middleware
	router.Use(gin.Logger())
	router.Use(localMiddleware.Recovery())
	router.Use(localMiddleware.RequestID())

	// CORS backed by the tenant origin allow-list
	router.Use(localMiddleware.SetupCORS(originGuard))

	// Health check endpoints (no auth required)
	router.GET("/health", healthHandler.HealthCheck)
	router.GET("/ready", healthHandler.ReadinessCheck)

	// Order classification. GET carries the legacy query-parameter form;
	// POST the JSON body form.
	router.GET("/api/check-order-dropship", dropshipHandler.CheckOrderDropship)
	router.POST("/api/check-order-dropship", dropshipHandler.CheckOrderDropship)

	return router
}
