package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"shuno-backend/config"
	"shuno-backend/controllers"
	"shuno-backend/metrics"
	"shuno-backend/routes"
	"shuno-backend/services"
	"shuno-backend/store"
	"shuno-backend/utils"
)

func newLogger() zerolog.Logger {
	level, err := zerolog.ParseLevel(strings.ToLower(os.Getenv("LOG_LEVEL")))
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}

	var out = zerolog.New(os.Stdout)
	if strings.EqualFold(os.Getenv("LOG_PRETTY"), "true") {
		out = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339})
	}
	return out.Level(level).With().Timestamp().Str("service", "shuno-backend").Logger()
}

func buildTokenStore(logger zerolog.Logger) store.TokenStore {
	addr := strings.TrimSpace(os.Getenv("REDIS_ADDR"))
	if addr == "" {
		logger.Info().Msg("REDIS_ADDR not set, using in-memory token store")
		return store.NewMemoryTokenStore()
	}

	client := store.NewRedisClient(addr, os.Getenv("REDIS_PASSWORD"), 0)
	primary := store.NewRedisTokenStore(client)
	logger.Info().Str("addr", addr).Msg("using redis token store with in-memory failover")
	return store.NewFailoverTokenStore(primary, store.NewMemoryTokenStore(), logger)
}

func envDuration(key string, def time.Duration) time.Duration {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		return def
	}
	return d
}

func main() {
	// Load .env (optional)
	_ = godotenv.Load()

	logger := newLogger()

	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		logger.Fatal().Msg("JWT_SECRET environment variable is not set, cannot sign tokens")
	}

	metrics.Register()

	if err := config.ConnectDatabase(); err != nil {
		logger.Fatal().Err(err).Msg("database connect failed")
	}
	db := config.DB
	logger.Info().Msg("database connected, migrations applied")

	tokens := buildTokenStore(logger)
	reporter := metrics.NewErrorReporter()

	// Services
	priceService := services.NewPriceService(db)
	orderService := services.NewOrderService(db, priceService, logger, reporter)
	productService := services.NewProductService(db)
	periodService := services.NewPricePeriodService(db)
	userService := services.NewUserService(db)
	settingsService := services.NewSettingsService(db)
	autoConfirmService := services.NewAutoConfirmService(db, logger)
	reportService := services.NewReportService(db)

	retryClient := utils.NewRetryClient(3, 500*time.Millisecond, reporter, logger)
	paymentService := services.NewPaymentService(retryClient, os.Getenv("PAYMENT_API_URL"), logger)

	// Controllers
	deps := routes.Deps{
		Auth:         controllers.NewAuthController(userService, tokens, secret, logger),
		Products:     controllers.NewProductController(productService),
		Orders:       controllers.NewOrderController(orderService, paymentService, logger),
		PricePeriods: controllers.NewPricePeriodController(periodService, priceService),
		Users:        controllers.NewUserController(userService),
		Settings:     controllers.NewSettingsController(settingsService, autoConfirmService),
		Reports:      controllers.NewReportController(reportService),

		Tokens:   tokens,
		Secret:   secret,
		Reporter: reporter,
		Logger:   logger,
	}
	router := routes.SetupRouter(deps)

	// Background auto-confirm worker, gated by the settings toggle.
	workerCtx, stopWorker := context.WithCancel(context.Background())
	defer stopWorker()
	go services.RunAutoConfirmWorker(
		workerCtx,
		autoConfirmService,
		settingsService,
		envDuration("AUTO_CONFIRM_INTERVAL", 5*time.Minute),
		logger,
	)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	addr := ":" + port

	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadTimeout:       10 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      20 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		logger.Info().Str("addr", addr).Msg("server starting")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("listen failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	logger.Info().Msg("shutdown signal received")

	stopWorker()

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal().Err(err).Msg("forced shutdown")
	}

	logger.Info().Msg("server stopped gracefully")
}
