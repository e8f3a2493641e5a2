package http

import (
	"net/http"

	"github.com/ArtLegends/medtravel-main-sub002/internal/domain/entity"
	"github.com/ArtLegends/medtravel-main-sub002/internal/usecase"
	apperrors "github.com/ArtLegends/medtravel-main-sub002/pkg/errors"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// AttributionHandler binds a freshly authenticated principal to its referral
type AttributionHandler struct {
	binder  *usecase.SignupBinder
	cookies usecase.AttributionCookies
	logger  *zap.Logger
}

func NewAttributionHandler(binder *usecase.SignupBinder, cookies usecase.AttributionCookies, logger *zap.Logger) *AttributionHandler {
	return &AttributionHandler{binder: binder, cookies: cookies, logger: logger}
}

type bindRequest struct {
	RefCode string `json:"ref_code" validate:"omitempty,max=64"`
}

// Bind handles POST /api/v1/referrals/bind
func (h *AttributionHandler) Bind(c echo.Context) error {
	principal, err := requirePrincipal(c)
	if err != nil {
		return err
	}

	var req bindRequest
	if err := c.Bind(&req); err != nil {
		return invalidRequest(err)
	}
	if err := c.Validate(req); err != nil {
		return invalidRequest(err)
	}

	cookies := c.Cookies()
	cookieCode, _ := h.cookies.Read(cookies)
	result, err := h.binder.BindOnAuth(c.Request().Context(), entity.BindInput{
		PatientPrincipalID: principal.ID,
		ExplicitCode:       req.RefCode,
		CookieCode:         cookieCode,
	})
	if err != nil {
		apperrors.LogError(h.logger, err, "Referral bind failed", zap.String("principal_id", principal.ID))
		return apperrors.ToHTTPError(err)
	}

	// a malformed cookie never reaches the binder but must not linger either
	if result.ClearCookie || (cookieCode == "" && h.cookies.Has(cookies)) {
		c.SetCookie(h.cookies.Clear())
	}
	return c.JSON(http.StatusOK, result)
}
