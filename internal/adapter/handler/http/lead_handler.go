package http

import (
	"net/http"

	"github.com/ArtLegends/medtravel-main-sub002/internal/domain/entity"
	"github.com/ArtLegends/medtravel-main-sub002/internal/usecase"
	apperrors "github.com/ArtLegends/medtravel-main-sub002/pkg/errors"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type LeadHandler struct {
	reconciler *usecase.LeadReconciler
	logger     *zap.Logger
}

func NewLeadHandler(reconciler *usecase.LeadReconciler, logger *zap.Logger) *LeadHandler {
	return &LeadHandler{reconciler: reconciler, logger: logger}
}

type attachLeadRequest struct {
	LeadID   string `json:"lead_id" validate:"required,uuid"`
	FullName string `json:"full_name" validate:"omitempty,max=200"`
	Phone    string `json:"phone" validate:"omitempty,max=40"`
	Email    string `json:"email" validate:"omitempty,email,max=320"`
}

// Attach handles POST /api/v1/leads/attach
func (h *LeadHandler) Attach(c echo.Context) error {
	principal, err := requirePrincipal(c)
	if err != nil {
		return err
	}

	var req attachLeadRequest
	if err := c.Bind(&req); err != nil {
		return invalidRequest(err)
	}
	if err := c.Validate(req); err != nil {
		return invalidRequest(err)
	}
	leadID, err := uuid.Parse(req.LeadID)
	if err != nil {
		return invalidRequest(err)
	}

	result, err := h.reconciler.Reconcile(c.Request().Context(), entity.ReconcileInput{
		LeadID:             leadID,
		PatientPrincipalID: principal.ID,
		Contact: entity.ContactFields{
			FullName: req.FullName,
			Phone:    req.Phone,
			Email:    req.Email,
		},
	})
	if err != nil {
		apperrors.LogError(h.logger, err, "Lead reconciliation failed",
			zap.String("lead_id", req.LeadID),
			zap.String("principal_id", principal.ID))
		return apperrors.ToHTTPError(err)
	}

	return c.JSON(http.StatusOK, result)
}
