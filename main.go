package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/kendall-kelly/driver-dashboard-api/config"
	"github.com/kendall-kelly/driver-dashboard-api/controllers"
	"github.com/kendall-kelly/driver-dashboard-api/middleware"
	"github.com/kendall-kelly/driver-dashboard-api/models"
	"github.com/kendall-kelly/driver-dashboard-api/services"
)

func main() {
	log.Println("Starting Driver Dashboard API server...")

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	gin.SetMode(cfg.GinMode())

	// Connect to database
	if err := config.ConnectDatabase(cfg.DatabaseURL, cfg.LogLevel); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	db := config.GetDB()
	if err := services.MigrateDatabase(db); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}
	log.Println("Database migration completed successfully")

	staff := []models.Staff{{Username: cfg.StaffUsername, Password: cfg.StaffPassword}}
	if err := services.SeedDatabase(db, services.SeedOrders(), staff); err != nil {
		log.Fatalf("Failed to seed database: %v", err)
	}

	services.InitOrderStore(db)
	services.InitStaffStore(db)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	notifier, err := setupNotifier(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to set up notifications: %v", err)
	}
	dispatcher := services.InitDispatcher(notifier, cfg.NotificationQueue, cfg.NotificationTimeout)

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           setupRouter(cfg),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Printf("Server running on http://localhost:%s", cfg.Port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server shutdown failed: %v", err)
	}
	if err := dispatcher.Close(shutdownCtx); err != nil {
		log.Printf("Notifications still queued at shutdown were dropped: %v", err)
	}
	log.Println("Server stopped")
}

// setupNotifier builds the notification chain from configuration. Logging is
// always on; the webhook and the S3 archive are added when configured.
func setupNotifier(ctx context.Context, cfg *config.Config) (services.Notifier, error) {
	notifiers := services.MultiNotifier{services.LogNotifier{}}

	if cfg.WebhookEnabled() {
		notifiers = append(notifiers, services.NewWebhookNotifier(cfg.WebhookURL))
		log.Println("Webhook notifications enabled")
	}

	if cfg.ArchiveEnabled() {
		s3Service, err := services.InitS3Service(ctx, cfg)
		if err != nil {
			return nil, err
		}
		notifiers = append(notifiers, services.NewArchiveNotifier(s3Service))
		log.Printf("Archiving notifications to s3://%s", cfg.AWSS3Bucket)
	}

	return notifiers, nil
}

// setupRouter registers middleware and every API route
func setupRouter(cfg *config.Config) *gin.Engine {
	router := gin.Default()
	router.Use(cors.New(corsConfig(cfg.CORSAllowedOrigins)))

	api := router.Group("/api", middleware.CaptureBearerToken())
	{
		api.GET("/health", healthCheck)
		api.GET("/database/status", databaseStatus)

		api.POST("/login", controllers.Login)

		api.GET("/orders", controllers.ListOrders)
		api.GET("/orders/:id", controllers.GetOrder)
		api.POST("/update-order", controllers.UpdateOrderStatus)

		api.POST("/send-location", controllers.SendLocation)
		api.POST("/trigger-webhook", controllers.TriggerWebhook)
	}

	return router
}

// corsConfig allows every origin when origins is empty or contains "*"
func corsConfig(origins []string) cors.Config {
	corsCfg := cors.Config{
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowHeaders: []string{"Origin", "Content-Type", "Authorization"},
		MaxAge:       12 * time.Hour,
	}

	allowAll := len(origins) == 0
	for _, origin := range origins {
		if origin == "*" {
			allowAll = true
		}
	}

	if allowAll {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = origins
	}
	return corsCfg
}

// healthCheck handles the health check endpoint
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Driver Dashboard API is running",
	})
}

// databaseStatus checks database connectivity and returns table information
func databaseStatus(c *gin.Context) {
	db := config.GetDB()
	if db == nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Database is not initialized",
			},
		})
		return
	}

	// Get the underlying SQL database to check connection
	sqlDB, err := db.DB()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to get database instance",
			},
		})
		return
	}

	// Ping the database to verify connection
	if err := sqlDB.PingContext(c.Request.Context()); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_CONNECTION_ERROR",
				"message": "Database connection failed",
			},
		})
		return
	}

	// Get list of tables
	tables, err := db.Migrator().GetTables()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_QUERY_ERROR",
				"message": "Failed to query tables",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Database connected",
		"tables":  tables,
	})
}
