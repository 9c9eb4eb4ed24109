package main

import (
	"log/slog"
	"os"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// Local development convenience; missing .env is fine
	_ = godotenv.Load()

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	backend := newBackendClient(logger)
	market := newMarketClient(logger)

	// Optional chart-response cache
	cache, err := initRedis()
	if err != nil {
		logger.Warn("failed to initialize Redis, continuing without cache", "error", err)
		cache = nil
	}

	a := newApp(backend, market, cache, logger)

	r := setupRouter(a)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	logger.Info("server starting", "port", port, "backend", backend.baseURL)
	if err := r.Run(":" + port); err != nil {
		logger.Error("failed to start server", "error", err)
		os.Exit(1)
	}
}

// setupRouter wires CORS and the widget routes.
func setupRouter(a *app) *gin.Engine {
	r := gin.Default()

	// CORS middleware
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Routes
	r.GET("/health", a.healthCheck)
	r.GET("/security_types", a.securityTypes)
	r.GET("/top_industries", a.topIndustries)
	r.GET("/monthly_activity", a.monthlyActivity)
	r.GET("/top_fundraisers", a.topFundraisers)
	r.GET("/location_distribution", a.locationDistribution)
	r.GET("/yearly_statistics", a.yearlyStatistics)
	r.GET("/latest_filings", a.latestFilings)
	r.GET("/market_overview", a.marketOverview)
	r.GET("/stats", a.statsSummary)
	r.GET("/api/available_years", a.availableYears)
	r.GET("/widgets.json", serveConfigFile("widgets.json"))
	r.GET("/apps.json", serveConfigFile("apps.json"))

	return r
}
