package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/stabulum/stabulum/internal/core/services"
	"github.com/stabulum/stabulum/internal/middleware"
	"github.com/stabulum/stabulum/pkg/config"
)

// RegisterRoutes sets up all application routes, injecting dependencies
// through the service container.
func RegisterRoutes(r *gin.Engine, cfg *config.Config, svcs *services.Container) {
	registerCustomValidations()

	r.GET("/health", func(c *gin.Context) {
		c.String(200, "OK")
	})

	setupAPIV1Routes(r, cfg, svcs)
}

// setupAPIV1Routes configures the /api/v1 group and delegates to specific
// entity route registrations. Everything ledger-scoped nests under an
// organization.
func setupAPIV1Routes(r *gin.Engine, cfg *config.Config, svcs *services.Container) {
	v1 := r.Group("/api/v1", middleware.AuthMiddleware(cfg.JWTSecret))

	registerOrganizationRoutes(v1, svcs.Organization)

	org := v1.Group("/organizations/:orgID")
	registerAccountRoutes(org, svcs.Account)
	registerEntryRoutes(org, svcs.Entry, svcs.Posting)
	registerReportingRoutes(org, svcs.Reporting)
	registerPaymentRoutes(org, svcs.Payment)
}
