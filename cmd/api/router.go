package main

import (
	"github.com/gin-contrib/pprof"
	"github.com/gin-gonic/gin"

	"bookstore-ranking/internal/shared/middleware"
	"bookstore-ranking/internal/shared/response"
	"bookstore-ranking/pkg/container"
)

func SetupRouter(c *container.Container) *gin.Engine {
	router := gin.New()
	router.MaxMultipartMemory = c.Config.Ingest.MaxUploadBytes

	// Global middlewares
	router.Use(
		middleware.Recovery(),
		middleware.RequestID(),
		middleware.Logger(),
		middleware.CORS(c.Config.CORS.AllowedOrigins),
	)

	router.GET("/health", healthCheckHandler(c.DB, c.Cache, c.Config.App.Version))

	setupUploadRoutes(router, c)
	setupBookRoutes(router, c)
	setupRankingRoutes(router, c)

	if c.Config.App.Environment == "development" {
		pprof.Register(router)
	}

	router.NoRoute(func(ctx *gin.Context) {
		response.NotFound(ctx, "route not found")
	})

	return router
}

// ========================================
// UPLOAD ROUTES
// ========================================
func setupUploadRoutes(router *gin.Engine, c *container.Container) {
	limit := middleware.BodyLimit(c.Config.Ingest.MaxUploadBytes)

	router.POST("/upload", limit, c.UploadHandler.UploadCatalog)
	router.POST("/upload-sales", limit, c.UploadHandler.UploadSales)
}

// ========================================
// BOOK ROUTES
// ========================================
func setupBookRoutes(router *gin.Engine, c *container.Container) {
	books := router.Group("/books")
	{
		books.GET("", c.BookHandler.ListBooks)
		books.GET("/export", c.BookHandler.ExportBooks)
	}
}

// ========================================
// RANKING ROUTES
// ========================================
func setupRankingRoutes(router *gin.Engine, c *container.Container) {
	ranking := router.Group("/sales-ranking")
	{
		ranking.GET("/weekly/:week/:category", c.RankingHandler.WeeklyRanking)
		ranking.GET("/monthly/:month/:category", c.RankingHandler.MonthlyRanking)
		ranking.GET("/yearly/:category", c.RankingHandler.YearlyRanking)
	}

	router.GET("/weeks", c.RankingHandler.ListWeeks)
	router.GET("/months", c.RankingHandler.ListMonths)
}
