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
	"github.com/sangkips/reservation-invoicing/internal/application/service"
	"github.com/sangkips/reservation-invoicing/internal/config"
	domainRepo "github.com/sangkips/reservation-invoicing/internal/domain/repository"
	"github.com/sangkips/reservation-invoicing/internal/infrastructure/cache"
	"github.com/sangkips/reservation-invoicing/internal/infrastructure/database"
	"github.com/sangkips/reservation-invoicing/internal/infrastructure/repository"
	"github.com/sangkips/reservation-invoicing/internal/infrastructure/upstream"
	"github.com/sangkips/reservation-invoicing/internal/metrics"
	"github.com/sangkips/reservation-invoicing/internal/presentation/http/handler"
	"github.com/sangkips/reservation-invoicing/internal/presentation/http/middleware"
	"github.com/sangkips/reservation-invoicing/internal/presentation/http/routes"
	"github.com/sangkips/reservation-invoicing/internal/render"
	"github.com/sangkips/reservation-invoicing/pkg/logging"
	"github.com/sangkips/reservation-invoicing/pkg/printer"
	"github.com/sangkips/reservation-invoicing/pkg/utils"
	"gorm.io/gorm"
)

func main() {
	// Load configuration
	cfg := config.Load()
	logging.Setup(cfg.Log.Level)
	logger := slog.Default()

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// The database is required when reservations are read from it, and
	// optional otherwise (it then only persists idempotency keys).
	db, err := database.NewPostgresDB(&cfg.Database, cfg.App.Debug)
	if err != nil {
		if cfg.Invoice.Source == "database" {
			logger.Error("failed to connect to database", "error", err)
			os.Exit(1)
		}
		logger.Warn("database unavailable, idempotency keys kept in memory", "error", err)
		db = nil
	}
	if db != nil {
		if err := database.AutoMigrate(db); err != nil {
			logger.Error("failed to run migrations", "error", err)
			os.Exit(1)
		}
	}

	m := metrics.New()

	// Reservation sources
	var (
		reservationSource domainRepo.ReservationSource
		detailSource      domainRepo.InvoiceDetailSource
		hotelDirectory    domainRepo.AccommodationDirectory
	)
	switch cfg.Invoice.Source {
	case "database":
		reservationSource = repository.NewReservationRepository(db)
		hotelDirectory = repository.NewHotelRepository(db)
	default:
		client := upstream.NewClient(cfg.Upstream.BaseURL, cfg.Upstream.Timeout)
		api := upstream.NewReservationAPI(client)
		reservationSource = api
		detailSource = api
		hotelDirectory = upstream.NewHotelAPI(client, upstream.ServiceCredential(ctx, &cfg.Upstream))
	}
	locationCache := cache.NewLocationCache(hotelDirectory, cfg.Invoice.LocationCacheTTL)

	var idempotencyRepo domainRepo.IdempotencyRepository = cache.NewIdempotencyStore()
	if db != nil {
		idempotencyRepo = repository.NewIdempotencyRepository(db)
	}

	// Initialize thermal printer
	thermalPrinter, err := printer.NewPrinterFromConfig(
		cfg.Printer.Type,
		cfg.Printer.USBPath,
		cfg.Printer.Address,
		cfg.Printer.Timeout,
	)
	if err != nil {
		logger.Warn("failed to initialize printer", "error", err)
		thermalPrinter = printer.NewNullPrinter()
		cfg.Printer.Type = printer.TypeNone
	}
	defer thermalPrinter.Close()

	// Initialize services
	renderers := render.NewSet(
		render.NewThermalRenderer(cfg.Printer.CharWidth, cfg.Invoice.CompanyName),
		render.NewXLSXRenderer(cfg.Invoice.XLSXRowsPerPage, cfg.Invoice.CompanyName),
	)
	printerService := service.NewPrinterService(thermalPrinter, cfg.Printer.Type, logger)
	reservationService := service.NewReservationService(reservationSource, locationCache, m, logger)
	invoiceService := service.NewInvoiceService(reservationService, detailSource, renderers, printerService, m, logger)

	rateLimiter := middleware.NewSubjectRateLimiter(middleware.RateLimiterConfig{
		RequestsPerSecond: cfg.RateLimit.RequestsPerSecond,
		BurstSize:         cfg.RateLimit.Burst,
		CleanupInterval:   5 * time.Minute,
		EntryTTL:          10 * time.Minute,
	})
	defer rateLimiter.Stop()

	handlers := &routes.Handlers{
		Reservation: handler.NewReservationHandler(reservationService),
		Invoice:     handler.NewInvoiceHandler(invoiceService),
		Printer:     handler.NewPrinterHandler(printerService),
	}

	router := routes.Setup(handlers, &routes.Deps{
		JWTManager:      utils.NewJWTManager(cfg.JWT.Secret, cfg.JWT.Issuer),
		Cfg:             cfg,
		IdempotencyRepo: idempotencyRepo,
		RateLimiter:     rateLimiter,
		Metrics:         m,
		Logger:          logger,
	})

	go housekeeping(ctx, idempotencyRepo, locationCache, logger)

	port := cfg.App.Port
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("starting server",
			"name", cfg.App.Name,
			"port", port,
			"env", cfg.App.Env,
			"source", cfg.Invoice.Source,
			"printer", cfg.Printer.Type,
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server failed", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", "error", err)
	}
	closeDB(db, logger)
}

// housekeeping purges expired idempotency keys and cached locations
func housekeeping(ctx context.Context, keys domainRepo.IdempotencyRepository, locations *cache.LocationCache, logger *slog.Logger) {
	ticker := time.NewTicker(time.Hour)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			if err := keys.DeleteExpired(ctx, now); err != nil {
				logger.Warn("failed to purge idempotency keys", "error", err)
			}
			locations.Purge()
		}
	}
}

func closeDB(db *gorm.DB, logger *slog.Logger) {
	if db == nil {
		return
	}
	sqlDB, err := db.DB()
	if err != nil {
		return
	}
	if err := sqlDB.Close(); err != nil {
		logger.Warn("failed to close database", "error", err)
	}
}
