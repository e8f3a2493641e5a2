package http

import (
	"net/http"

	"github.com/ArtLegends/medtravel-main-sub002/internal/domain/entity"
	"github.com/ArtLegends/medtravel-main-sub002/internal/domain/model"
	"github.com/ArtLegends/medtravel-main-sub002/internal/usecase"
	apperrors "github.com/ArtLegends/medtravel-main-sub002/pkg/errors"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type ConversionHandler struct {
	conversions *usecase.ConversionService
	logger      *zap.Logger
}

func NewConversionHandler(conversions *usecase.ConversionService, logger *zap.Logger) *ConversionHandler {
	return &ConversionHandler{conversions: conversions, logger: logger}
}

type conversionRequest struct {
	Status   string           `json:"status" validate:"required,oneof=pending confirmed rejected"`
	Value    *decimal.Decimal `json:"value"`
	Currency string           `json:"currency" validate:"omitempty,len=3,alpha"`
	Reason   string           `json:"reason" validate:"omitempty,max=1000"`
}

// Transition handles POST /api/v1/referrals/:patient_id/conversion
func (h *ConversionHandler) Transition(c echo.Context) error {
	actor, err := requirePrincipal(c)
	if err != nil {
		return err
	}

	var req conversionRequest
	if err := c.Bind(&req); err != nil {
		return invalidRequest(err)
	}
	if err := c.Validate(req); err != nil {
		return invalidRequest(err)
	}

	patientID := c.Param("patient_id")
	result, err := h.conversions.Transition(c.Request().Context(), entity.ConversionInput{
		PatientPrincipalID: patientID,
		Target:             model.ConversionStatus(req.Status),
		Value:              req.Value,
		Currency:           req.Currency,
		Reason:             req.Reason,
		ActorPrincipalID:   actor.ID,
	})
	if err != nil {
		apperrors.LogError(h.logger, err, "Conversion transition failed",
			zap.String("patient_principal_id", patientID),
			zap.String("target", req.Status),
			zap.String("actor", actor.ID))
		return apperrors.ToHTTPError(err)
	}

	return c.JSON(http.StatusOK, result)
}
