package main

import (
	"context" // context package is needed for Redis operations
	"log"     // log package is needed for logging

	"plant_journal/internal/api"        // Custom package for API handlers
	"plant_journal/internal/auth"       // Custom package for authentication
	"plant_journal/internal/config"     // Custom package for configuration
	"plant_journal/internal/middleware" // Custom package for middleware
	"plant_journal/internal/session"    // Custom package for session records
	"plant_journal/internal/store"      // Custom package for persistence

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"github.com/sirupsen/logrus"   // Logrus for structured logging
	"gorm.io/driver/mysql"         // MySQL driver for GORM
	"gorm.io/gorm"                 // GORM ORM library
)

// Main function to set up and run the server
func main() {
	cfg := config.LoadConfig() // Load configuration

	// Setup logger
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	// Setup Data Source Name (DSN) and connect to the database
	dsn := cfg.DBUser + ":" + cfg.DBPassword + "@tcp(" + cfg.DBHost + ":" + cfg.DBPort + ")/" + cfg.DBName + "?parseTime=true"
	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{})
	if err != nil {
		logrus.Fatalf("failed to connect to DB: %v", err) // Fatal error if DB connection fails
	}

	// Setup Redis client
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr, // Redis server address
		Password: cfg.RedisPass, // Redis password
		DB:       cfg.RedisDB,   // Redis database number
	})

	// Test Redis connection
	_, err = redisClient.Ping(context.Background()).Result()
	if err != nil {
		logrus.Fatalf("failed to connect to Redis: %v", err)
	}

	// Set Mode to Release if in production
	if cfg.IsProd {
		gin.SetMode(gin.ReleaseMode)
	}

	// Wire the store, session records and authentication service
	st := store.New(db)                                                // Persistence behind the Store interface
	sessions := session.NewRedisManager(redisClient, cfg.SessionTTL)   // Redis-backed sessions
	authSvc := auth.NewService(st, sessions, cfg.JWTSecret, cfg.SessionTTL) // Login/logout/session resolution

	// Setup Gin
	r := gin.Default() // Gin router instance

	// Set trusted proxies for Gin
	if err := r.SetTrustedProxies([]string{"127.0.0.1"}); err != nil {
		logrus.Fatalf("failed to set trusted proxies: %v", err)
	}

	// Public routes (combined GET form / POST submit, as on the form surface)
	register := api.RegisterHandler(st)
	r.GET("/register", register) // Registration form
	r.POST("/register", register)
	login := api.LoginHandler(authSvc, cfg.SessionTTL, cfg.IsProd)
	r.GET("/login", login) // Login form
	r.POST("/login", login)

	// Protected routes (session cookie required; anonymous requests are
	// redirected to /login by the middleware)
	protected := r.Group("/")
	protected.Use(middleware.SessionAuth(authSvc))
	protected.GET("/logout", api.LogoutHandler(authSvc, cfg.IsProd)) // Logout endpoint
	index := api.IndexHandler(st, redisClient)
	protected.GET("", index) // Plant list + creation
	protected.POST("", index)
	entries := api.EntriesHandler(st, redisClient)
	protected.GET("/entries/:plantID", entries) // Entry list + creation per plant
	protected.POST("/entries/:plantID", entries)

	log.Println("Server running on " + cfg.AppPort) // Log server start
	r.Run(":" + cfg.AppPort)                        // Start the server on port cfg.AppPort
}
