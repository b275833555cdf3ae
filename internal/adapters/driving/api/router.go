// Package api serves the archive over HTTP with gin.
package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/cors"

	"github.com/custodia-labs/crhp-archive/internal/core/ports/driving"
	"github.com/custodia-labs/crhp-archive/internal/logger"
)

// Ports aggregates the driving ports served over HTTP.
type Ports struct {
	Archive driving.ArchiveService
	Lesson  driving.LessonPlanService
}

// NewRouter builds the gin engine with all routes registered.
func NewRouter(ports Ports) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), RequestLogging())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	h := &handlers{ports: ports}
	api := r.Group("/api")
	{
		api.GET("/collection", h.collection)
		api.GET("/interviews/:id", h.interview)
		api.GET("/interviews/:id/clips/:clipId", h.clip)
		api.GET("/terms/:id", h.term)
		if ports.Lesson != nil {
			api.GET("/lesson", h.lesson)
		}
	}

	return r
}

// NewHandler wraps the router with CORS for the given origins.
// An empty list allows any origin.
func NewHandler(ports Ports, origins []string) http.Handler {
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	c := cors.New(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	})
	return c.Handler(NewRouter(ports))
}

// RequestLogging logs method, path, status and duration of each request.
func RequestLogging() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		logger.Debug("api_request method=%s path=%s status=%d duration_ms=%d",
			c.Request.Method,
			c.Request.URL.Path,
			c.Writer.Status(),
			time.Since(start).Milliseconds(),
		)
	}
}
