package routes

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/sangkips/shopdash-api/internal/application/service"
	"github.com/sangkips/shopdash-api/internal/config"
	"github.com/sangkips/shopdash-api/internal/presentation/http/handler"
	"github.com/sangkips/shopdash-api/internal/presentation/http/middleware"
	"github.com/sangkips/shopdash-api/pkg/utils"
)

// Handlers holds all the HTTP handlers used for route registration.
type Handlers struct {
	Auth      *handler.AuthHandler
	Order     *handler.OrderHandler
	Dashboard *handler.DashboardHandler
	Shop      *handler.ShopHandler
}

// Deps holds shared dependencies needed by the routes. The caller owns
// RateLimiter and stops it on shutdown.
type Deps struct {
	JWTManager  *utils.JWTManager
	Cfg         *config.Config
	Logger      *slog.Logger
	RateLimiter *middleware.RateLimiter
}

// Setup creates the Gin router and registers all routes.
func Setup(h *Handlers, deps *Deps) *gin.Engine {
	router := gin.New()

	// Global middleware
	router.Use(gin.Recovery())
	router.Use(middleware.LoggerMiddleware(deps.Logger))
	router.Use(middleware.CORSMiddleware(&deps.Cfg.CORS))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"service": deps.Cfg.App.Name,
			"source":  deps.Cfg.Upstream.Source,
		})
	})

	// Anonymous requests are limited by client IP, authenticated ones by user
	rateLimiter := deps.RateLimiter

	v1 := router.Group("/api/v1")
	{
		public := v1.Group("")
		public.Use(rateLimiter.Middleware())
		registerAuthRoutes(public, h)

		protected := v1.Group("")
		protected.Use(middleware.AuthMiddleware(deps.JWTManager))
		protected.Use(rateLimiter.Middleware())
		registerProtectedRoutes(protected, h)
	}

	return router
}

// NewRateLimiter builds the API rate limiter from config
func NewRateLimiter(cfg config.RateLimitConfig) *middleware.RateLimiter {
	return middleware.NewRateLimiter(rateLimiterConfig(cfg))
}

func rateLimiterConfig(cfg config.RateLimitConfig) middleware.RateLimiterConfig {
	rlc := middleware.DefaultRateLimiterConfig()
	if cfg.Requests > 0 && cfg.Duration > 0 {
		rlc.RequestsPerSecond = float64(cfg.Requests) / float64(cfg.Duration)
		rlc.BurstSize = cfg.Requests
	}
	rlc.CleanupInterval = 5 * time.Minute
	rlc.EntryTTL = 10 * time.Minute
	return rlc
}

func registerAuthRoutes(v1 *gin.RouterGroup, h *Handlers) {
	auth := v1.Group("/auth")
	{
		auth.POST("/login", h.Auth.Login)
		auth.POST("/refresh", h.Auth.RefreshToken)
	}
}

func registerProtectedRoutes(protected *gin.RouterGroup, h *Handlers) {
	// Auth/Profile routes
	protected.POST("/auth/logout", h.Auth.Logout)
	protected.GET("/profile", h.Auth.GetProfile)

	// Dashboard
	protected.GET("/dashboard", h.Dashboard.GetStats)

	// Orders
	registerOrderRoutes(protected, h)

	// Shops
	registerShopRoutes(protected, h)
}

func registerOrderRoutes(protected *gin.RouterGroup, h *Handlers) {
	orders := protected.Group("/orders")
	{
		orders.GET("", h.Order.List)
		orders.GET("/export", h.Order.Export)
		orders.GET("/:receipt_id", h.Order.Get)
		orders.GET("/:receipt_id/images", h.Order.Images)
	}
}

func registerShopRoutes(protected *gin.RouterGroup, h *Handlers) {
	shops := protected.Group("/shops")
	{
		shops.GET("", h.Shop.List)
		shops.GET("/login-link", h.Shop.LoginLink)
		shops.DELETE("/:user_id", middleware.RequireRole(service.AdminRole), h.Shop.Delete)
	}
}
