package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"wattwise/api/catalog"
	"wattwise/api/database"
	"wattwise/api/handlers"
	"wattwise/api/mailer"
	"wattwise/api/middleware"
	"wattwise/api/store"
)

func main() {
	// Load .env file at the very start
	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file found or error loading .env: %v", err)
	}

	if os.Getenv("GIN_MODE") == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	// --- Initialize PostgreSQL Database (users, audits, sessions, catalog) ---
	dbClient, err := database.NewPostgresDB()
	if err != nil {
		log.Fatalf("Failed to initialize PostgreSQL database: %v", err)
	}
	defer dbClient.Close()

	if err := database.RunMigrations(dbClient.DB); err != nil {
		log.Fatalf("Failed to run database migrations: %v", err)
	}

	// --- Initialize ClickHouse Database (analytics events) ---
	chClient, err := database.NewClickHouseDB()
	if err != nil {
		log.Fatalf("Failed to initialize ClickHouse database: %v", err)
	}
	defer chClient.Close()

	// --- Initialize Stores ---
	userStore := store.NewUserStore(dbClient.DB)
	auditStore := store.NewAuditStore(dbClient.DB)
	recStore := store.NewRecommendationStore(dbClient.DB)
	badgeStore := store.NewBadgeStore(dbClient.DB)
	surveyStore := store.NewSurveyStore(dbClient.DB)
	productStore := store.NewProductStore(dbClient.DB)
	weatherStore := store.NewWeatherStore(dbClient.DB)
	sessionStore := store.NewSessionStore(dbClient.DB)
	eventStore := store.NewEventStore(chClient)
	metricsStore := store.NewMetricsStore(dbClient.DB, eventStore, sessionStore)

	// Optional catalog refresh from CSV at startup.
	if catalogPath := os.Getenv("CATALOG_CSV"); catalogPath != "" {
		if _, err := catalog.LoadFromFile(context.Background(), catalogPath, productStore); err != nil {
			log.Printf("Catalog load from %s failed: %v", catalogPath, err)
		}
	}

	smtpMailer := mailer.NewMailerFromEnv()

	// --- Initialize Handlers ---
	authHandlers := handlers.NewAuthHandlers(userStore, smtpMailer)
	auditHandlers := handlers.NewAuditHandlers(auditStore, recStore, badgeStore, weatherStore, smtpMailer)
	recHandlers := handlers.NewRecommendationHandlers(recStore, badgeStore)
	analyticsHandlers := handlers.NewAnalyticsHandlers(eventStore, sessionStore, metricsStore)
	searchHandlers := handlers.NewSearchHandlers(productStore)
	badgeHandlers := handlers.NewBadgeHandlers(badgeStore)
	surveyHandlers := handlers.NewSurveyHandlers(surveyStore, badgeStore)
	reportHandlers := handlers.NewReportHandlers(auditStore, recStore, weatherStore)
	dashboardHandlers := handlers.NewDashboardHandlers(auditStore, recStore, badgeStore, surveyStore)

	r := gin.Default()

	r.Use(middleware.CORSMiddleware())

	api := r.Group("/api")
	{
		// Authentication Endpoints (no authentication required)
		api.POST("/signup", authHandlers.Signup)
		api.POST("/login", authHandlers.Login)
		api.POST("/logout", authHandlers.Logout)

		// Protected Routes (require a valid JWT token)
		protected := api.Group("/")
		protected.Use(middleware.AuthRequired())
		{
			protected.GET("/profile", func(c *gin.Context) {
				userID, exists := c.Get("user_id")
				if !exists {
					c.JSON(http.StatusForbidden, gin.H{"error": "A user token is required for this endpoint"})
					return
				}
				c.JSON(http.StatusOK, gin.H{
					"user_id":    userID,
					"user_email": c.GetString("user_email"),
					"ip_address": c.ClientIP(),
				})
			})

			protected.POST("/audits", auditHandlers.CreateAudit)
			protected.GET("/audits", auditHandlers.ListAudits)
			protected.GET("/audits/:id", auditHandlers.GetAudit)
			protected.DELETE("/audits/:id", auditHandlers.DeleteAudit)
			protected.GET("/audits/:id/report", reportHandlers.GetAuditReport)

			protected.PUT("/recommendations/:id/status", recHandlers.UpdateStatus)
			protected.PUT("/recommendations/:id/savings", recHandlers.UpdateSavings)

			protected.POST("/track", analyticsHandlers.TrackEvent)

			protected.GET("/search/products", searchHandlers.SearchProducts)
			protected.GET("/badges", badgeHandlers.ListBadges)
			protected.POST("/surveys", surveyHandlers.SubmitSurvey)
			protected.GET("/surveys", surveyHandlers.ListSurveys)
			protected.GET("/dashboard", dashboardHandlers.GetDashboard)

			analyticsGroup := protected.Group("/stats")
			{
				analyticsGroup.GET("/event-counts", analyticsHandlers.GetEventCountsOverTime)
				analyticsGroup.GET("/average-event-duration", analyticsHandlers.GetAverageEventDuration)
				analyticsGroup.GET("/average-custom-param", analyticsHandlers.GetAverageCustomEventParameter)
				analyticsGroup.GET("/unique-users", analyticsHandlers.GetUniqueUsersOverTime)
				analyticsGroup.GET("/top-paths", analyticsHandlers.GetTopNPagePaths)
				analyticsGroup.GET("/platform-metrics", analyticsHandlers.GetPlatformMetrics)
			}
		}
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	srv := &http.Server{
		Addr:    ":" + port,
		Handler: r,
	}

	go func() {
		log.Printf("WattWise API server starting on http://localhost:%s", port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("API server failed to start: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exiting.")
}
