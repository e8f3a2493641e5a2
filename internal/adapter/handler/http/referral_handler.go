package http

import (
	"net/http"
	"net/url"

	"github.com/ArtLegends/medtravel-main-sub002/internal/domain/entity"
	"github.com/ArtLegends/medtravel-main-sub002/internal/usecase"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// ReferralHandler serves the public referral redirect links
type ReferralHandler struct {
	recorder      *usecase.ClickRecorder
	loginRedirect string
	logger        *zap.Logger
}

func NewReferralHandler(recorder *usecase.ClickRecorder, loginRedirect string, logger *zap.Logger) *ReferralHandler {
	if loginRedirect == "" {
		loginRedirect = "/login"
	}
	return &ReferralHandler{recorder: recorder, loginRedirect: loginRedirect, logger: logger}
}

// Redirect handles GET /ref/:code
func (h *ReferralHandler) Redirect(c echo.Context) error {
	return h.recordAndRedirect(c, c.Param("code"), h.loginRedirect, "", "")
}

// LandingRedirect handles GET /:locale/:campaign/lp/:code
func (h *ReferralHandler) LandingRedirect(c echo.Context) error {
	locale := c.Param("locale")
	campaign := c.Param("campaign")
	target := "/" + url.PathEscape(locale) + "/" + url.PathEscape(campaign)
	return h.recordAndRedirect(c, c.Param("code"), target, locale, campaign)
}

// recordAndRedirect always redirects. The click is written before the response,
// and the cookie rides on the redirect itself whenever the recorder issued one.
func (h *ReferralHandler) recordAndRedirect(c echo.Context, code, target, locale, campaign string) error {
	req := c.Request()
	meta := entity.RequestMeta{
		ClientIP:  c.RealIP(),
		UserAgent: req.UserAgent(),
		Referer:   req.Referer(),
		Path:      req.URL.Path,
		Locale:    locale,
		Campaign:  campaign,
	}

	result := h.recorder.RecordClick(req.Context(), code, meta)
	if result.Cookie != nil {
		c.SetCookie(result.Cookie)
	}

	h.logger.Debug("Referral redirect",
		zap.String("outcome", string(result.Outcome)),
		zap.Bool("recorded", result.Recorded),
		zap.String("target", target))

	c.Response().Header().Set("Cache-Control", "no-store")
	return c.Redirect(http.StatusFound, target)
}
