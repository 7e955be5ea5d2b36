package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/mubiru-dev/school-fees-api/cmd/docs"
	portssvc "github.com/mubiru-dev/school-fees-api/internal/core/ports/services"
	"github.com/mubiru-dev/school-fees-api/internal/middleware"
	"github.com/mubiru-dev/school-fees-api/internal/platform/config"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// calendarMonths are the only values the month binding accepts; the frontend
// sends month names, never numbers.
var calendarMonths = map[string]struct{}{
	"January": {}, "February": {}, "March": {}, "April": {},
	"May": {}, "June": {}, "July": {}, "August": {},
	"September": {}, "October": {}, "November": {}, "December": {},
}

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
	rateLimit gin.HandlerFunc,
) {
	registerCustomValidators()

	// Add health check route
	r.GET("/health", func(c *gin.Context) {
		c.String(200, "OK")
	})
	r.GET("/", getHome)

	// Ledger routes are registered at the root so existing frontend paths keep
	// working, with the auth middleware applied to the whole group.
	setupLedgerRoutes(r, cfg, services, rateLimit)

	// Swagger routes (typically public or conditionally available)
	setupSwaggerRoutes(r, cfg)
}

// setupLedgerRoutes configures the auth-guarded route groups and delegates to
// specific entity route registrations
func setupLedgerRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
	rateLimit gin.HandlerFunc,
) {
	guarded := r.Group("", middleware.AuthMiddleware(cfg.JWTSecret))

	registerFeePaymentRoutes(guarded, services.Payment, services.Reporting, rateLimit)
	registerFinancialReportRoutes(guarded, services.Reporting, services.Export)
	registerFeeSettingRoutes(guarded, services.FeeSchedule)
}

// registerCustomValidators wires the "month" binding tag used by payment requests.
func registerCustomValidators() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("month", func(fl validator.FieldLevel) bool {
			_, ok := calendarMonths[fl.Field().String()]
			return ok
		})
	}
}

// setupSwaggerRoutes configures the swagger documentation routes
func setupSwaggerRoutes(r *gin.Engine, cfg *config.Config) {
	// Swagger setup
	if cfg.IsProduction {
		//no swagger in prod
		return
	}
	docs.SwaggerInfo.BasePath = "/"
	swagger := r.Group("/swagger")
	swagger.GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}
