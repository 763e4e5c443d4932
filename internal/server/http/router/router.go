package router

import (
	"log/slog"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"

	"github.com/polkiloo/ecocoleta/internal/domain/model"
	"github.com/polkiloo/ecocoleta/internal/metrics"
	"github.com/polkiloo/ecocoleta/internal/server/http/handlers"
	"github.com/polkiloo/ecocoleta/internal/server/http/middleware"
)

// Setup configures gin router with handlers and middleware.
func Setup(facade handlers.CollectionFacade, health handlers.HealthChecker, m *metrics.Metrics, logger *slog.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	middleware.RegisterValidators()
	engine := gin.New()

	engine.Use(gin.Recovery())
	engine.Use(middleware.RequestLogger(logger))
	engine.Use(middleware.Metrics(m))
	engine.Use(middleware.DecompressRequest())
	engine.Use(gzip.Gzip(gzip.DefaultCompression, gzip.WithExcludedPaths([]string{"/metrics"})))

	engine.GET("/metrics", gin.WrapH(m.Handler()))
	engine.GET("/healthz", handlers.Health(health))

	authHandler := handlers.NewAuthHandler(facade)
	orderHandler := handlers.NewOrderHandler(facade)
	queueHandler := handlers.NewQueueHandler(facade)
	staffHandler := handlers.NewStaffHandler(facade)

	api := engine.Group("/api")
	auth := api.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)
	api.GET("/catalog", handlers.Catalog)

	private := api.Group("")
	private.Use(middleware.AuthRequired(facade))

	orders := private.Group("/orders")
	orders.POST("", middleware.RequireRole(model.RoleCitizen), orderHandler.Create)
	orders.GET("/:number", orderHandler.Get)
	orders.GET("/:number/history", orderHandler.History)
	orders.POST("/:number/transitions", middleware.RequireRole(model.RoleAgent, model.RoleDriver), orderHandler.Transition)

	queues := private.Group("")
	queues.Use(middleware.RequireRole(model.RoleCitizen, model.RoleAgent, model.RoleDriver))
	queues.GET("/queue", queueHandler.Default)
	queues.GET("/queues/:name", queueHandler.Named)

	private.GET("/lookup", middleware.RequireRole(model.RoleAgent, model.RoleDriver), queueHandler.Lookup)

	staff := private.Group("/staff")
	staff.Use(middleware.RequireRole(model.RoleAdmin))
	staff.POST("", staffHandler.Create)
	staff.GET("", staffHandler.List)
	staff.DELETE("/:id", staffHandler.Delete)

	return engine
}
