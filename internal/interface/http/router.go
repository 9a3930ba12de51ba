package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yanqian/cycle-advisor/internal/infra/config"
)

// NewRouter wires up the HTTP handlers and returns a configured server.
// A nil limiter disables rate limiting.
func NewRouter(cfg *config.Config, handler *Handler, limiter Limiter) *http.Server {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()
	router.Use(
		gin.Recovery(),
		requestIDMiddleware(),
		requestLogger(handler.logger),
		corsMiddleware(cfg.HTTP.CORSOrigins),
		errorHandlingMiddleware(handler.logger),
	)

	router.GET("/healthz", handler.Health)

	limited := rateLimitMiddleware(cfg.HTTP.RateLimit, limiter, handler.logger)
	api := router.Group("/api/v1", limited)
	{
		api.POST("/cycle/evaluate", handler.Evaluate)
		api.POST("/cycle/timeline", handler.Timeline)
		api.POST("/cycle/status", handler.Status)
		api.GET("/content", handler.Content)
	}
	router.POST("/api/evaluate", limited, handler.Evaluate)

	return &http.Server{
		Addr:           cfg.HTTP.Address,
		Handler:        withRetry(router, cfg.HTTP.Retry, handler.logger),
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		MaxHeaderBytes: 1 << 20,
	}
}
