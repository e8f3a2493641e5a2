package http

import (
	"fmt"
	"net/http"
	"strings"

	apperrors "github.com/ArtLegends/medtravel-main-sub002/pkg/errors"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

// RequestValidator plugs go-playground/validator into echo's c.Validate
type RequestValidator struct {
	validate *validator.Validate
}

func NewRequestValidator() *RequestValidator {
	return &RequestValidator{validate: validator.New(validator.WithRequiredStructEnabled())}
}

// Validate implements echo.Validator
func (v *RequestValidator) Validate(i interface{}) error {
	return v.validate.Struct(i)
}

// invalidRequest builds the 400 response body used for bind and validation failures
func invalidRequest(err error) error {
	msg := "invalid request body"
	var verrs validator.ValidationErrors
	if apperrors.As(err, &verrs) && len(verrs) > 0 {
		fields := make([]string, 0, len(verrs))
		for _, fe := range verrs {
			fields = append(fields, fmt.Sprintf("%s (%s)", strings.ToLower(fe.Field()), fe.Tag()))
		}
		msg = "invalid fields: " + strings.Join(fields, ", ")
	}
	return echo.NewHTTPError(http.StatusBadRequest, map[string]string{
		"error": msg,
		"code":  apperrors.ErrInvalidArgument,
	})
}
