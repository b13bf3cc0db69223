package app

import (
	"github.com/gin-gonic/gin"
	"github.com/newrelic/go-agent/v3/integrations/nrgin"
	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/redis/go-redis/v9"

	"github.com/aqabadeal-png/canroad/internal/domain"
	"github.com/aqabadeal-png/canroad/internal/handler"
	"github.com/aqabadeal-png/canroad/internal/middleware"
	"github.com/aqabadeal-png/canroad/internal/service"
)

// RouterDeps contains all dependencies needed for the router.
type RouterDeps struct {
	AuthHandler     *handler.AuthHandler
	PricingHandler  *handler.PricingHandler
	JobHandler      *handler.JobHandler
	MechanicHandler *handler.MechanicHandler
	CatalogHandler  *handler.CatalogHandler
	UserHandler     *handler.UserHandler
	ReportHandler   *handler.ReportHandler
	AuthService     *service.AuthService
	RedisClient     *redis.Client
	NewRelicApp     *newrelic.Application
}

// NewRouter creates a new Gin router with all routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	router := gin.New()

	// Global middleware.
	router.Use(gin.Recovery())
	router.Use(gin.Logger())
	router.Use(middleware.CORSMiddleware())

	// Add New Relic middleware if enabled.
	if deps.NewRelicApp != nil {
		router.Use(nrgin.Middleware(deps.NewRelicApp))
	}

	router.Use(middleware.IdempotencyMiddleware(deps.RedisClient))

	// Health check.
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	staffOnly := middleware.RequireRole(deps.AuthService, domain.RoleAdmin, domain.RoleAccounting)
	adminOnly := middleware.RequireRole(deps.AuthService, domain.RoleAdmin)
	mechanicOnly := middleware.RequireRole(deps.AuthService, domain.RoleMechanic, domain.RoleAdmin)
	jobsReadOnly := middleware.RequireRole(deps.AuthService, domain.RoleMechanic, domain.RoleAdmin, domain.RoleAccounting)

	// API v1 routes.
	v1 := router.Group("/v1")
	{
		// Auth routes.
		auth := v1.Group("/auth")
		{
			auth.POST("/login", deps.AuthHandler.Login)
			auth.POST("/logout", deps.AuthHandler.Logout)
			auth.GET("/me", deps.AuthHandler.Me)
		}

		// Pricing session routes.
		estimates := v1.Group("/estimates")
		{
			estimates.POST("", deps.PricingHandler.CreateSession)
			estimates.GET("/:id", deps.PricingHandler.GetSession)
			estimates.PATCH("/:id", deps.PricingHandler.UpdateSession)
			estimates.POST("/:id/lock", deps.PricingHandler.LockPrice)
			estimates.DELETE("/:id", deps.PricingHandler.RemoveSession)
		}

		// Job routes.
		jobs := v1.Group("/jobs")
		{
			jobs.POST("", deps.JobHandler.CreateJob)
			jobs.GET("", jobsReadOnly, deps.JobHandler.GetAll)
			jobs.GET("/active", deps.JobHandler.GetActive)
			jobs.GET("/:id", deps.JobHandler.GetJob)
			jobs.POST("/:id/cancel", deps.JobHandler.CancelJob)
			jobs.POST("/:id/evaluate", deps.JobHandler.EvaluateJob)
			jobs.GET("/:id/invoice", deps.JobHandler.GetInvoice)
		}

		// Mechanic routes.
		mechanics := v1.Group("/mechanics")
		{
			mechanics.GET("/locations", deps.MechanicHandler.GetRoster)
			mechanics.GET("/:id/location", deps.MechanicHandler.GetLocation)
			mechanics.POST("/:id/location", mechanicOnly, deps.MechanicHandler.UpdateLocation)
			mechanics.POST("/:id/accept", mechanicOnly, deps.MechanicHandler.AcceptJob)
			mechanics.POST("/:id/jobs/:jobID/arrived", mechanicOnly, deps.MechanicHandler.MarkArrived)
			mechanics.POST("/:id/jobs/:jobID/start", mechanicOnly, deps.MechanicHandler.StartWork)
			mechanics.POST("/:id/jobs/:jobID/complete", mechanicOnly, deps.MechanicHandler.CompleteJob)
		}

		// Service catalog routes.
		services := v1.Group("/services")
		{
			services.GET("", deps.CatalogHandler.GetAll)
			services.GET("/:id", deps.CatalogHandler.Get)
			services.POST("", adminOnly, deps.CatalogHandler.Create)
			services.PUT("/:id", adminOnly, deps.CatalogHandler.Update)
		}

		// Accounting report routes.
		reports := v1.Group("/reports")
		{
			reports.GET("/revenue", staffOnly, deps.ReportHandler.GetRevenue)
		}

		// User routes.
		users := v1.Group("/users")
		{
			users.GET("", staffOnly, deps.UserHandler.GetAll)
			users.GET("/:id", staffOnly, deps.UserHandler.Get)
			users.PATCH("/:id", adminOnly, deps.UserHandler.Update)
		}
	}

	return router
}
