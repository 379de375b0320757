package server

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	navigator "github.com/UtkershBasnet/CityNavigator"
	"github.com/UtkershBasnet/CityNavigator/internal/service"
)

const requestIDHeader = "X-Request-ID"

// RouterDependencies collects handler dependencies.
type RouterDependencies struct {
	Service        *service.RouteService
	AllowedOrigins []string
}

// NewRouter wires the HTTP routes exposed by the API.
func NewRouter(logger *slog.Logger, deps RouterDependencies) *gin.Engine {
	registerValidators()

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(requestIDMiddleware())
	r.Use(loggingMiddleware(logger))
	r.Use(cors.New(corsConfig(deps.AllowedOrigins)))

	h := &APIHandlers{logger: logger, service: deps.Service}

	r.GET("/health", h.health)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api")
	{
		api.GET("/nodes", h.listNodes)
		api.GET("/nodes/:id", h.getNode)
		api.GET("/nodes/:id/neighbors", h.getNeighbors)
		api.GET("/edges", h.listEdges)
		api.GET("/nearest", h.nearest)
		api.GET("/algorithms", h.listAlgorithms)
		api.POST("/route", h.route)
		api.POST("/route/compare", h.compare)
		api.GET("/route/geojson", h.routeGeoJSON)
		api.GET("/graph/geojson", h.graphGeoJSON)
	}

	return r
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.DefaultConfig()
	if len(origins) == 0 {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
	}
	cfg.AllowMethods = []string{http.MethodGet, http.MethodPost, http.MethodOptions}
	cfg.AllowHeaders = []string{"Origin", "Content-Type", requestIDHeader}
	cfg.ExposeHeaders = []string{requestIDHeader}
	return cfg
}

func registerValidators() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("algorithm", validateAlgorithm)
	}
}

// validateAlgorithm accepts anything navigator.ParseAlgorithm accepts.
func validateAlgorithm(fl validator.FieldLevel) bool {
	_, err := navigator.ParseAlgorithm(fl.Field().String())
	return err == nil
}

func requestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(requestIDHeader)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Set("request_id", requestID)
		c.Header(requestIDHeader, requestID)
		c.Next()
	}
}

func loggingMiddleware(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.Info("request completed",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration_ms", time.Since(start).Milliseconds(),
			"request_id", c.GetString("request_id"),
		)
	}
}
