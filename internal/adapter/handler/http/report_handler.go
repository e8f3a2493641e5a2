package http

import (
	"net/http"
	"strings"
	"time"

	"github.com/ArtLegends/medtravel-main-sub002/internal/domain/dto"
	"github.com/ArtLegends/medtravel-main-sub002/internal/domain/entity"
	"github.com/ArtLegends/medtravel-main-sub002/internal/domain/model"
	"github.com/ArtLegends/medtravel-main-sub002/internal/usecase"
	apperrors "github.com/ArtLegends/medtravel-main-sub002/pkg/errors"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// ReportHandler serves the partner click report and the admin lead list
type ReportHandler struct {
	reports *usecase.ReportService
	logger  *zap.Logger
}

func NewReportHandler(reports *usecase.ReportService, logger *zap.Logger) *ReportHandler {
	return &ReportHandler{reports: reports, logger: logger}
}

// ListClicks handles GET /api/v1/partners/me/clicks
func (h *ReportHandler) ListClicks(c echo.Context) error {
	principal, err := requirePrincipal(c)
	if err != nil {
		return err
	}

	var code, program, country string
	var from, to time.Time
	var page entity.PaginationParams
	if err := echo.QueryParamsBinder(c).
		String("code", &code).
		String("program_key", &program).
		String("country", &country).
		Time("from", &from, time.RFC3339).
		Time("to", &to, time.RFC3339).
		Int("page", &page.Page).
		Int("limit", &page.Limit).
		BindError(); err != nil {
		return invalidRequest(err)
	}
	page.Validate()

	resp, err := h.reports.ListClicks(c.Request().Context(), dto.ClickFilters{
		OwnerPrincipalID: principal.ID,
		Code:             optional(entity.NormalizeCode(code)),
		ProgramKey:       optional(program),
		CountryCode:      optional(strings.ToUpper(strings.TrimSpace(country))),
		From:             optionalTime(from),
		To:               optionalTime(to),
		Limit:            page.Limit,
		Offset:           page.CalculateOffset(),
	})
	if err != nil {
		apperrors.LogError(h.logger, err, "Failed to list clicks", zap.String("principal_id", principal.ID))
		return apperrors.ToHTTPError(err)
	}
	return c.JSON(http.StatusOK, resp)
}

// ListLeads handles GET /api/v1/admin/leads
func (h *ReportHandler) ListLeads(c echo.Context) error {
	var status, owner, email, reconciled string
	var from, to time.Time
	var page entity.PaginationParams
	if err := echo.QueryParamsBinder(c).
		String("status", &status).
		String("owner", &owner).
		String("email", &email).
		String("reconciled", &reconciled).
		Time("from", &from, time.RFC3339).
		Time("to", &to, time.RFC3339).
		Int("page", &page.Page).
		Int("limit", &page.Limit).
		BindError(); err != nil {
		return invalidRequest(err)
	}
	page.Validate()

	filters := dto.LeadFilters{
		AssignedOwnerPrincipalID: optional(owner),
		Email:                    optional(email),
		From:                     optionalTime(from),
		To:                       optionalTime(to),
		Limit:                    page.Limit,
		Offset:                   page.CalculateOffset(),
	}
	if status != "" {
		s := model.LeadStatus(status)
		filters.Status = &s
	}
	switch reconciled {
	case "":
	case "true", "false":
		r := reconciled == "true"
		filters.Reconciled = &r
	default:
		return invalidRequest(apperrors.New("reconciled must be true or false"))
	}

	resp, err := h.reports.ListLeads(c.Request().Context(), filters)
	if err != nil {
		apperrors.LogError(h.logger, err, "Failed to list leads")
		return apperrors.ToHTTPError(err)
	}
	return c.JSON(http.StatusOK, resp)
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func optionalTime(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}
