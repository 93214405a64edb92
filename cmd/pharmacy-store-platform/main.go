package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/pharmakart/pharmacy-store-platform/internal/api/handlers"
	"github.com/pharmakart/pharmacy-store-platform/internal/api/middleware"
	"github.com/pharmakart/pharmacy-store-platform/internal/cache"
	"github.com/pharmakart/pharmacy-store-platform/internal/config"
	"github.com/pharmakart/pharmacy-store-platform/internal/health"
	"github.com/pharmakart/pharmacy-store-platform/internal/metrics"
	repository "github.com/pharmakart/pharmacy-store-platform/internal/repositories"
	service "github.com/pharmakart/pharmacy-store-platform/internal/services"
	"github.com/pharmakart/pharmacy-store-platform/internal/tracing"
	"github.com/pharmakart/pharmacy-store-platform/pkg/email"
	"github.com/pharmakart/pharmacy-store-platform/pkg/openfda"
)

func main() {

	// Logger setup
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	// Load config
	if err := godotenv.Load(); err != nil {
		slog.Debug("No .env file found, relying on environment")
	}

	cfg := config.MustLoad()

	// Tracing setup
	if cfg.Tracing.Enabled {
		shutdownTracing, err := tracing.Init(context.Background(), &cfg.Tracing)
		if err != nil {
			slog.Error("❌ Error initializing tracing", "error", err.Error())
			os.Exit(1)
		}

		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()

			if err := shutdownTracing(ctx); err != nil {
				slog.Error("⚠️ Error flushing traces", slog.String("error", err.Error()))
			}
		}()
	}

	// Database setup
	repos, err := repository.New(cfg)
	if err != nil {
		slog.Error("❌ Error accessing the database", "error", err.Error())
		os.Exit(1)
	}

	defer func() {
		if err := repos.Close(); err != nil {
			slog.Error("⚠️ Error closing database connection", slog.String("error", err.Error()))
		} else {
			slog.Info("✅ Database connection closed")
		}
	}()

	// Redis setup
	redisClient, err := repository.NewRedisClient(cfg)
	if err != nil {
		slog.Error("❌ Error accessing the redis instance", "error", err.Error())
		os.Exit(1)
	}

	cartRepo := repository.NewCartRepo(redisClient, &cfg.Session)
	rateLimitRepo := repository.NewRateLimitRepo(redisClient, cfg)
	drugInfoCache := cache.NewRedisCache(redisClient, &cfg.Cache)

	healthHandler, err := health.NewHealthHandler(cfg)
	if err != nil {
		slog.Error("❌ Error setting up health checks", "error", err.Error())
		os.Exit(1)
	}

	jwtKey := []byte(cfg.Security.JWTKey)
	fdaClient := openfda.NewClient(cfg.OpenFDA.BaseURL, &http.Client{Timeout: cfg.OpenFDA.Timeout})
	emailSender := email.NewSendGridSender(cfg.SendGrid.APIKey, cfg.SendGrid.FromEmail, cfg.SendGrid.FromName)
	userService := service.NewUserService(repos.User, rateLimitRepo, jwtKey, cfg.Security.TokenTTL)
	userHandler := handlers.NewUserHandler(userService)
	medicineService := service.NewMedicineService(repos.Medicine)
	drugInfoService := service.NewDrugInfoService(fdaClient, drugInfoCache, cfg.Cache.DrugInfoTTL)
	medicineHandler := handlers.NewMedicineHandler(medicineService, drugInfoService)
	cartService := service.NewCartService(cartRepo, repos.Medicine)
	cartHandler := handlers.NewCartHandler(cartService)
	checkoutService := service.NewCheckoutService(repos, cartRepo, emailSender)
	orderService := service.NewOrderService(repos.Order)
	orderHandler := handlers.NewOrderHandler(checkoutService, orderService)
	authMiddleware := middleware.NewAuthMiddleware(jwtKey)

	slog.Info("storage initialized", slog.String("env", cfg.Env), slog.String("version", "1.0.0"))

	// Setup router
	routerMux := http.NewServeMux()
	routerMux.HandleFunc("POST /api/v1/users/register", userHandler.Register())
	routerMux.HandleFunc("POST /api/v1/users/login", userHandler.Login())
	routerMux.HandleFunc("GET /api/v1/users/profile", authMiddleware.Authenticate(userHandler.Profile()))
	routerMux.HandleFunc("GET /api/v1/medicines", medicineHandler.ListMedicines())
	routerMux.HandleFunc("GET /api/v1/medicines/{id}", medicineHandler.GetMedicine())
	routerMux.HandleFunc("POST /api/v1/medicines", authMiddleware.Authenticate(authMiddleware.RequireStaff(medicineHandler.CreateMedicine())))
	routerMux.HandleFunc("PATCH /api/v1/medicines/{id}", authMiddleware.Authenticate(authMiddleware.RequireStaff(medicineHandler.UpdateMedicine())))
	routerMux.HandleFunc("DELETE /api/v1/medicines/{id}", authMiddleware.Authenticate(authMiddleware.RequireStaff(medicineHandler.DeleteMedicine())))
	routerMux.HandleFunc("GET /api/v1/carts", authMiddleware.Authenticate(cartHandler.GetCart()))
	routerMux.HandleFunc("POST /api/v1/carts/items", authMiddleware.Authenticate(cartHandler.AddItem()))
	routerMux.HandleFunc("PUT /api/v1/carts/items", authMiddleware.Authenticate(cartHandler.UpdateQuantity()))
	routerMux.HandleFunc("DELETE /api/v1/carts/items", authMiddleware.Authenticate(cartHandler.RemoveItem()))
	routerMux.HandleFunc("POST /api/v1/orders", authMiddleware.Authenticate(orderHandler.Checkout()))
	routerMux.HandleFunc("GET /api/v1/orders/{id}", authMiddleware.Authenticate(orderHandler.GetOrder()))
	routerMux.HandleFunc("GET /api/v1/orders", authMiddleware.Authenticate(orderHandler.ListOrders()))
	routerMux.Handle("GET /health", healthHandler.Handler())
	routerMux.Handle("GET /metrics", metrics.Handler())

	// Middleware chaining
	var handler http.Handler = routerMux
	handler = metrics.Middleware(handler)
	handler = middleware.Logging(handler)

	// Setup http server
	server := http.Server{
		Addr:    cfg.Addr,
		Handler: handler,
	}

	slog.Info("🚀 Server is starting...", slog.String("address", cfg.Addr))

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	go func() {

		if err := server.ListenAndServe(); err != http.ErrServerClosed {
			slog.Error("❌ Failed to start server", slog.Any("error", err.Error()))
		}
	}()

	<-done

	slog.Warn("🛑 Shutdown signal received. Preparing to stop the server...")

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("⚠️ Server shutdown encountered an issue", slog.String("error", err.Error()))
	} else {
		slog.Info("✅ Server shut down gracefully. All connections closed.")
	}

}
