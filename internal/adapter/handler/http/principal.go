package http

import (
	"github.com/ArtLegends/medtravel-main-sub002/internal/middleware/auth"
	apperrors "github.com/ArtLegends/medtravel-main-sub002/pkg/errors"
	"github.com/labstack/echo/v4"
)

// requirePrincipal returns the JWT principal or the 401 to send back
func requirePrincipal(c echo.Context) (*auth.Principal, error) {
	principal, err := auth.GetPrincipalFromContext(c)
	if err != nil {
		return nil, apperrors.ToHTTPError(apperrors.NewAppError(apperrors.ErrUnauthenticated, "authentication required", err))
	}
	return principal, nil
}
