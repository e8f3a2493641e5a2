package http

import (
	"github.com/ArtLegends/medtravel-main-sub002/internal/domain/model"
	"github.com/ArtLegends/medtravel-main-sub002/internal/middleware/auth"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// Handlers groups the HTTP handlers of the referral service
type Handlers struct {
	Referral    *ReferralHandler
	Attribution *AttributionHandler
	Lead        *LeadHandler
	Conversion  *ConversionHandler
	Report      *ReportHandler
}

// RegisterRoutes mounts the public referral links and the authenticated API.
// authn must be the JWT middleware; roles backs the per-route role guards.
func RegisterRoutes(e *echo.Echo, h Handlers, authn echo.MiddlewareFunc, roles auth.RoleChecker, logger *zap.Logger) {
	e.GET("/ref/:code", h.Referral.Redirect)
	e.GET("/:locale/:campaign/lp/:code", h.Referral.LandingRedirect)

	v1 := e.Group("/api/v1", authn)

	v1.POST("/referrals/bind", h.Attribution.Bind)
	v1.POST("/leads/attach", h.Lead.Attach)
	v1.POST("/referrals/:patient_id/conversion", h.Conversion.Transition,
		auth.RequireRole(roles, logger, model.RoleAdmin, model.RoleCustomer))

	v1.GET("/partners/me/clicks", h.Report.ListClicks,
		auth.RequireRole(roles, logger, model.RolePartner))
	v1.GET("/admin/leads", h.Report.ListLeads,
		auth.RequireRole(roles, logger, model.RoleAdmin))
}
