package main

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"bookstore-ranking/internal/shared/response"
)

// healthChecker is satisfied by *database.PostgresDB.
type healthChecker interface {
	HealthCheck(ctx context.Context) error
}

type pinger interface {
	Ping(ctx context.Context) error
}

// healthCheckHandler - GET /health
// 503 when the database is unreachable; a failing cache only degrades.
func healthCheckHandler(db healthChecker, cache pinger, version string) gin.HandlerFunc {
	return func(c *gin.Context) {
		status := "ok"

		dbStatus := "ok"
		if db == nil {
			dbStatus = "disconnected"
		} else {
			ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
			if err := db.HealthCheck(ctx); err != nil {
				dbStatus = "error: " + err.Error()
			}
			cancel()
		}

		cacheStatus := "ok"
		if cache != nil {
			ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
			if err := cache.Ping(ctx); err != nil {
				cacheStatus = "error: " + err.Error()
				status = "degraded"
			}
			cancel()
		}

		statusCode := http.StatusOK
		if dbStatus != "ok" {
			status = "unavailable"
			statusCode = http.StatusServiceUnavailable
		}

		data := gin.H{
			"status":    status,
			"timestamp": time.Now().Format(time.RFC3339),
			"version":   version,
			"services": gin.H{
				"database": dbStatus,
				"cache":    cacheStatus,
			},
		}
		if statusCode != http.StatusOK {
			response.ErrorResponse(c, statusCode, "UNAVAILABLE", dbStatus)
			return
		}
		response.Success(c, statusCode, data)
	}
}
