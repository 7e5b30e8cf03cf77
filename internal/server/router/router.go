package router

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/vebops/store/internal/metrics"
	"github.com/vebops/store/internal/server/handlers"
)

// Handlers bundles the HTTP adapters the router wires up.
type Handlers struct {
	Auth    *handlers.AuthHandler
	History *handlers.HistoryHandler
	Stock   *handlers.StockHandler
	Catalog *handlers.CatalogHandler
	Intake  *handlers.IntakeHandler
}

// New wires the Gin engine with required routes and middlewares.
func New(h Handlers, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(zapLoggerMiddleware(logger))
	r.Use(metricsMiddleware())

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api")
	api.POST("/auth/login", h.Auth.Login)

	authed := api.Group("")
	authed.Use(h.Auth.RequireAuth())
	{
		authed.GET("/history/inwards", h.History.Inwards)
		authed.GET("/history/outwards", h.History.Outwards)
		authed.GET("/history/transfers", h.History.Transfers)
		authed.GET("/stock/summary", h.Stock.Summary)
		authed.GET("/materials", h.Catalog.Materials)
		authed.GET("/projects", h.Catalog.Projects)
	}

	writer := authed.Group("")
	writer.Use(h.Auth.RequireWriter())
	{
		writer.POST("/inwards", h.Intake.CreateInward)
		writer.POST("/outwards", h.Intake.CreateOutward)
		writer.POST("/outwards/:id/close", h.Intake.CloseOutward)
		writer.POST("/transfers", h.Intake.CreateTransfer)
		writer.PUT("/allocations", h.Intake.PutAllocation)
		writer.POST("/projects", h.Intake.CreateProject)
		writer.POST("/materials", h.Intake.CreateMaterial)
	}

	admin := authed.Group("")
	admin.Use(h.Auth.RequireAdmin())
	{
		admin.GET("/users", h.Catalog.Users)
		admin.POST("/users", h.Auth.CreateUser)
	}

	if logger != nil {
		logger.Info("router initialized")
	}

	return r
}

func zapLoggerMiddleware(logger *zap.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = zap.NewNop()
	}

	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		logger.Info("request completed",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("duration", time.Since(start)),
			zap.String("client_ip", c.ClientIP()))
	}
}

func metricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		metrics.HTTPRequests.WithLabelValues(
			c.Request.Method, path, strconv.Itoa(c.Writer.Status())).Inc()
	}
}
