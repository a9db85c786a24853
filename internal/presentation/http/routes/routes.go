package routes

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/reservation-invoicing/internal/config"
	domainRepo "github.com/sangkips/reservation-invoicing/internal/domain/repository"
	"github.com/sangkips/reservation-invoicing/internal/metrics"
	"github.com/sangkips/reservation-invoicing/internal/presentation/http/handler"
	"github.com/sangkips/reservation-invoicing/internal/presentation/http/middleware"
	"github.com/sangkips/reservation-invoicing/internal/render"
	"github.com/sangkips/reservation-invoicing/pkg/utils"
)

// Handlers holds all the HTTP handlers used for route registration.
type Handlers struct {
	Reservation *handler.ReservationHandler
	Invoice     *handler.InvoiceHandler
	Printer     *handler.PrinterHandler
}

// Deps holds shared dependencies needed by the routes.
type Deps struct {
	JWTManager      *utils.JWTManager
	Cfg             *config.Config
	IdempotencyRepo domainRepo.IdempotencyRepository
	RateLimiter     *middleware.SubjectRateLimiter
	Metrics         *metrics.Metrics
	Logger          *slog.Logger
}

// Setup creates the Gin router and registers all routes.
func Setup(h *Handlers, deps *Deps) *gin.Engine {
	router := gin.New()

	// Global middleware
	router.Use(gin.Recovery())
	router.Use(middleware.LoggerMiddleware(deps.Logger))
	router.Use(middleware.CORSMiddleware(&deps.Cfg.CORS))

	router.GET("/health", func(c *gin.Context) {
		body := gin.H{
			"status":  "ok",
			"service": deps.Cfg.App.Name,
			"source":  deps.Cfg.Invoice.Source,
			"time":    time.Now().UTC().Format(time.RFC3339),
		}
		if deps.RateLimiter != nil {
			body["rate_limiter"] = deps.RateLimiter.Stats()
		}
		c.JSON(http.StatusOK, body)
	})
	if deps.Metrics != nil {
		router.GET("/metrics", gin.WrapH(deps.Metrics.Handler()))
	}

	v1 := router.Group("/api/v1")
	{
		admin := v1.Group("/admin")
		admin.Use(middleware.AuthMiddleware(deps.JWTManager))
		admin.Use(middleware.RequireRole(deps.Cfg.JWT.AdminRole))
		if deps.RateLimiter != nil {
			admin.Use(deps.RateLimiter.Middleware())
		}

		registerReservationRoutes(admin, h, deps)
		registerPrinterRoutes(admin, h)
	}

	return router
}

func registerReservationRoutes(admin *gin.RouterGroup, h *Handlers, deps *Deps) {
	reservations := admin.Group("/reservations/:kind")
	{
		reservations.GET("", h.Reservation.List)
		reservations.GET("/:id", h.Reservation.Get)
		reservations.GET("/:id/invoice", h.Invoice.Get)
		reservations.GET("/:id/invoice.xlsx", h.Invoice.Download(render.FormatXLSX))
		reservations.GET("/:id/invoice.bin", h.Invoice.Download(render.FormatESCPOS))

		printChain := []gin.HandlerFunc{}
		if deps.IdempotencyRepo != nil {
			printChain = append(printChain, middleware.Idempotency(middleware.IdempotencyConfig{
				Repo:   deps.IdempotencyRepo,
				Logger: deps.Logger,
			}))
		}
		printChain = append(printChain, h.Invoice.Print)
		reservations.POST("/:id/invoice/print", printChain...)
	}
}

func registerPrinterRoutes(admin *gin.RouterGroup, h *Handlers) {
	admin.GET("/printer/status", h.Printer.GetStatus)
}
