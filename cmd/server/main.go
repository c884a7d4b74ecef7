package main

import (
	"context"                           // context package is needed for Redis and AWS set-up
	"project_showcase/internal/api"     // Custom package for API handlers
	"project_showcase/internal/config"  // Custom package for configuration
	"project_showcase/internal/db"      // Custom package for database connection
	"project_showcase/internal/service" // Custom package for business rules
	"project_showcase/internal/storage" // Custom package for object storage
	"project_showcase/internal/store"   // Custom package for persistence
	"project_showcase/internal/utils"   // Custom package for the cache
	"time"                              // CORS max age

	"github.com/gin-contrib/cors"  // CORS middleware for Gin
	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"github.com/sirupsen/logrus"   // Logrus for structured logging
)

// Main function to set up and run the server
func main() {
	cfg, err := config.LoadConfig() // Load configuration
	if err != nil {
		logrus.Fatalf("failed to load config: %v", err)
	}

	// Setup logger
	if cfg.IsProd {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	// Connect to the database, one handle for the whole process
	gdb, err := db.Open(cfg)
	if err != nil {
		logrus.Fatalf("failed to connect to DB: %v", err) // Fatal error if DB connection fails
	}

	// Setup Redis client when configured, the cache is optional
	var redisClient *redis.Client
	if cfg.RedisAddr != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr, // Redis server address
			Password: cfg.RedisPass, // Redis password
			DB:       cfg.RedisDB,   // Redis database number
		})
		// Test Redis connection
		if _, err := redisClient.Ping(context.Background()).Result(); err != nil {
			logrus.Fatalf("failed to connect to Redis: %v", err)
		}
	} else {
		logrus.Warn("REDIS_ADDR not set, caching disabled")
	}

	// Business rules over the store
	svc := service.New(store.New(gdb), service.Options{
		Cache:          utils.NewCache(redisClient, cfg.CacheTTL), // Admin listing cache
		RootAdminEmail: cfg.RootAdminEmail,                        // Protected account
		JWTSecret:      cfg.JWTSecret,                             // Token signing key
		JWTTTL:         cfg.JWTTTL,                                // Token lifetime
	})

	// Setup object storage when a bucket is configured
	var uploader api.Uploader
	if cfg.S3Bucket != "" {
		s3Uploader, err := storage.NewS3Uploader(context.Background(), cfg)
		if err != nil {
			logrus.Fatalf("failed to set up S3: %v", err)
		}
		uploader = s3Uploader
	} else {
		logrus.Warn("S3_BUCKET not set, uploads disabled")
	}

	// Set Mode to Release if in production
	if cfg.IsProd {
		gin.SetMode(gin.ReleaseMode)
	}

	// Setup Gin
	r := gin.Default() // Gin router instance

	// Set trusted proxies for Gin
	if err := r.SetTrustedProxies([]string{"127.0.0.1"}); err != nil {
		logrus.Fatalf("failed to set trusted proxies: %v", err)
	}

	// Allow the browser front-end to call the API
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSOrigins,                                       // Allowed origins
		AllowMethods:     []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"}, // Allowed methods
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},   // Allowed headers
		AllowCredentials: len(cfg.CORSOrigins) > 0 && cfg.CORSOrigins[0] != "*", // Credentials only with explicit origins
		MaxAge:           12 * time.Hour,                                        // Preflight cache
	}))

	api.RegisterRoutes(r, svc, uploader, cfg.JWTSecret) // Mount all endpoints

	logrus.Info("Server running on " + cfg.AppPort)  // Log server start
	if err := r.Run(":" + cfg.AppPort); err != nil { // Start the server on port cfg.AppPort
		logrus.Fatalf("server stopped: %v", err)
	}
}
