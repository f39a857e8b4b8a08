package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Motasaith/Abdul-Shop-sub001/app/echo-server/metrics"
	"github.com/Motasaith/Abdul-Shop-sub001/app/echo-server/router"
	"github.com/Motasaith/Abdul-Shop-sub001/business/category"
	"github.com/Motasaith/Abdul-Shop-sub001/business/currency"
	"github.com/Motasaith/Abdul-Shop-sub001/business/orders"
	"github.com/Motasaith/Abdul-Shop-sub001/business/product"
	userService "github.com/Motasaith/Abdul-Shop-sub001/business/user"
	"github.com/Motasaith/Abdul-Shop-sub001/business/vendor"
	"github.com/Motasaith/Abdul-Shop-sub001/internal/middleware"
	"github.com/Motasaith/Abdul-Shop-sub001/internal/repository/exchange"
	"github.com/Motasaith/Abdul-Shop-sub001/internal/repository/notification"
	psqlRepo "github.com/Motasaith/Abdul-Shop-sub001/internal/repository/postgres"
	redisRepo "github.com/Motasaith/Abdul-Shop-sub001/internal/repository/redis"
	"github.com/Motasaith/Abdul-Shop-sub001/internal/rest"
	"github.com/Motasaith/Abdul-Shop-sub001/pkg/config"
	"github.com/Motasaith/Abdul-Shop-sub001/pkg/database"
	redisdb "github.com/Motasaith/Abdul-Shop-sub001/pkg/database/redis"
	"github.com/Motasaith/Abdul-Shop-sub001/pkg/logger"
	"github.com/Motasaith/Abdul-Shop-sub001/pkg/utils"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger.Init(cfg.App.Environment)
	logger.Info("Starting Abdul Shop API", "version", cfg.App.Version)

	utils.InitJWT(cfg.JWT.SecretKey)

	db, err := database.InitPostgres(cfg)
	if err != nil {
		logger.Fatal("Failed to connect to database", "error", err)
	}

	logger.Info("Database connected successfully")

	redisClient, err := redisdb.NewRedisClient(cfg)
	if err != nil {
		logger.Fatal("Failed to connect to redis", "error", err)
	}

	logger.Info("Redis connected successfully")

	// Init notification from mailjet
	mailjetEmail := notification.NewMailjetRepository(
		notification.MailjetConfig{
			MailjetBaseURL:           cfg.Mailjet.MailjetBaseUrl,
			MailjetBasicAuthUsername: cfg.Mailjet.MailjetBasicAuthUsername,
			MailjetBasicAuthPassword: cfg.Mailjet.MailjetBasicAuthPassword,
			MailjetSenderEmail:       cfg.Mailjet.MailjetSenderEmail,
			MailjetSenderName:        cfg.Mailjet.MailjetSenderName,
		},
	)

	exchangeRepo := exchange.NewExchangeRepository(
		exchange.ExchangeConfig{
			BaseUrl: cfg.Exchange.BaseUrl,
			ApiKey:  cfg.Exchange.ApiKey,
		},
	)

	// Init validate
	validate := validator.New()

	// Init repo
	userRepo := psqlRepo.NewUserRepository(db)
	productRepo := psqlRepo.NewProductRepository(db)
	categoryRepo := psqlRepo.NewCategoryRepository(db)
	ordersRepo := psqlRepo.NewOrdersRepository(db)
	tokenRepo := redisRepo.NewTokenRepository(redisClient)
	ratesCache := redisRepo.NewRatesCache(redisClient)

	// Init service
	usrService := userService.NewUserService(userRepo, validate, mailjetEmail, tokenRepo, cfg.App.AppEmailVerificationKey, cfg.App.AppDeploymentUrl)
	productService := product.NewProductService(productRepo)
	categoryService := category.NewCategoryService(categoryRepo)
	ordersService := orders.NewOrdersService(ordersRepo, productRepo, userRepo, mailjetEmail)
	vendorService := vendor.NewVendorService(userRepo, ordersRepo, productRepo, mailjetEmail)
	ratesService := currency.NewRatesService(ratesCache, exchangeRepo, cfg.Exchange.RatesCacheTTL)

	// Init handler
	userHandler := rest.NewUserHandler(usrService)
	productHandler := rest.NewProductHandler(productService)
	categoryHandler := rest.NewCategoryHandler(categoryService)
	ordersHandler := rest.NewOrdersHandler(ordersService)
	vendorHandler := rest.NewVendorHandler(vendorService)
	adminHandler := rest.NewAdminHandler(vendorService)
	currencyHandler := rest.NewCurrencyHandler(ratesService)

	// Init echo
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// HTTP error handler
	e.HTTPErrorHandler = middleware.ErrorHandler

	// Global middleware
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: []string{"http://localhost:3000", "http://localhost:8080"},
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodPatch},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
	}))

	// Metrics and health
	metrics.Init()
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	// Auth middleware
	authRequired := middleware.AuthMiddlewareWithRedis(usrService)
	adminOnly := middleware.AdminOnly()
	vendorOrAdmin := middleware.VendorOrAdmin()
	selfOrAdmin := middleware.SelfOrAdmin()

	// Setup routes
	api := e.Group("/api/v1")
	router.SetupUserRoutes(api, userHandler, authRequired, adminOnly, selfOrAdmin)
	router.SetupProductRoutes(api, productHandler, authRequired, vendorOrAdmin)
	router.SetupCategoryRoutes(api, categoryHandler, authRequired, adminOnly)
	router.SetupOrdersRoutes(api, ordersHandler, authRequired, adminOnly, vendorOrAdmin)
	router.SetupVendorRoutes(api, vendorHandler, ordersHandler, authRequired, vendorOrAdmin)
	router.SetupAdminRoutes(api, adminHandler, authRequired, adminOnly)
	router.SetupCurrencyRoutes(api, currencyHandler)

	// Goroutine server
	go func() {
		addr := fmt.Sprintf(":%s", cfg.Server.Port)
		logger.Info("Server starting", "address", addr)
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", "error", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Shutdown server
	if err := e.Shutdown(ctx); err != nil {
		logger.Error("Server shutdown error", "error", err)
	}

	logger.Info("Server stopped")
}
