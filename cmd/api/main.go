package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/sangkips/shopdash-api/internal/application/finance"
	"github.com/sangkips/shopdash-api/internal/application/service"
	"github.com/sangkips/shopdash-api/internal/config"
	"github.com/sangkips/shopdash-api/internal/domain/repository"
	"github.com/sangkips/shopdash-api/internal/infrastructure/etsy"
	"github.com/sangkips/shopdash-api/internal/presentation/http/handler"
	"github.com/sangkips/shopdash-api/internal/presentation/http/routes"
	"github.com/sangkips/shopdash-api/pkg/utils"
)

func main() {
	// Load configuration
	cfg := config.Load()

	level := slog.LevelInfo
	if cfg.App.Debug {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	policy, err := finance.NewFeePolicy(cfg.Finance)
	if err != nil {
		logger.Error("config.finance.invalid", "error", err)
		os.Exit(1)
	}

	// Receipts come from the upstream API unless the bundled fixture is selected
	var source repository.ReceiptSource
	if cfg.Upstream.IsMockSource() {
		mock, err := etsy.NewMockSource()
		if err != nil {
			logger.Error("etsy.mock.load_failed", "error", err)
			os.Exit(1)
		}
		source = mock
	} else {
		source = etsy.NewClient(cfg.Upstream, logger)
	}

	jwtManager := utils.NewJWTManager(
		cfg.JWT.Secret,
		cfg.JWT.ExpiryHours,
		cfg.JWT.RefreshExpiryHours,
	)

	// Initialize services
	receiptService := service.NewReceiptService(source, finance.NewDeriver(policy), cfg.Upstream.Concurrency, logger)
	orderService := service.NewOrderService(receiptService, cfg.Images.PreferredSize, logger)
	exportService := service.NewExportService(orderService, logger)
	dashboardService := service.NewDashboardService(receiptService)
	shopService := service.NewShopService(source, cfg.Upstream.Concurrency, logger)
	authService := service.NewAuthService(cfg.Admin, jwtManager)
	if !authService.HasPassword() {
		logger.Warn("auth.admin.no_password", "hint", "set ADMIN_PASSWORD_HASH, see cmd/hashpw")
	}

	// Initialize handlers
	handlers := &routes.Handlers{
		Auth:      handler.NewAuthHandler(authService),
		Order:     handler.NewOrderHandler(orderService, exportService),
		Dashboard: handler.NewDashboardHandler(dashboardService),
		Shop:      handler.NewShopHandler(shopService),
	}

	rateLimiter := routes.NewRateLimiter(cfg.RateLimit)
	defer rateLimiter.Stop()

	router := routes.Setup(handlers, &routes.Deps{
		JWTManager:  jwtManager,
		Cfg:         cfg,
		Logger:      logger,
		RateLimiter: rateLimiter,
	})

	port := cfg.App.Port
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Info("server.starting",
			"service", cfg.App.Name,
			"port", port,
			"env", cfg.App.Env,
			"source", cfg.Upstream.Source,
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server.failed", "error", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server.shutdown_failed", "error", err)
	}
	logger.Info("server.stopped")
}
