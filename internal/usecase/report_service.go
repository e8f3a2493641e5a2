package usecase

import (
	"context"
	"fmt"

	"github.com/ArtLegends/medtravel-main-sub002/internal/domain/dto"
	"github.com/ArtLegends/medtravel-main-sub002/internal/domain/entity"
	"github.com/ArtLegends/medtravel-main-sub002/internal/domain/model"
	domainRepo "github.com/ArtLegends/medtravel-main-sub002/internal/domain/repository"
	"go.uber.org/zap"
)

// ReportService serves the partner click report and admin lead list
type ReportService struct {
	clicks domainRepo.ClickRepository
	leads  domainRepo.LeadRepository
	logger *zap.Logger
}

func NewReportService(clicks domainRepo.ClickRepository, leads domainRepo.LeadRepository, logger *zap.Logger) *ReportService {
	return &ReportService{clicks: clicks, leads: leads, logger: logger}
}

// ListClicks returns the owner's clicks. filters.OwnerPrincipalID must be set.
func (s *ReportService) ListClicks(ctx context.Context, filters dto.ClickFilters) (*dto.ClickListResponse, error) {
	filters.SetDefaults()

	clicks, total, err := s.clicks.ListByOwner(ctx, filters)
	if err != nil {
		return nil, err
	}

	out := make([]dto.ClickDTO, 0, len(clicks))
	for _, c := range clicks {
		out = append(out, toClickDTO(c))
	}
	return &dto.ClickListResponse{
		Clicks:     out,
		Pagination: pagination(total, filters.Limit, filters.Offset),
	}, nil
}

// ListLeads returns leads matching the filters
func (s *ReportService) ListLeads(ctx context.Context, filters dto.LeadFilters) (*dto.LeadListResponse, error) {
	filters.SetDefaults()

	leads, total, err := s.leads.List(ctx, filters)
	if err != nil {
		return nil, err
	}

	out := make([]dto.LeadDTO, 0, len(leads))
	for _, l := range leads {
		out = append(out, toLeadDTO(l))
	}
	return &dto.LeadListResponse{
		Leads:      out,
		Pagination: pagination(total, filters.Limit, filters.Offset),
	}, nil
}

func pagination(total int64, limit, offset int) dto.PaginationInfo {
	return dto.PaginationInfo{
		Total:   total,
		Limit:   limit,
		Offset:  offset,
		HasMore: entity.HasMore(total, limit, offset),
	}
}

func toClickDTO(c *model.ReferralClick) dto.ClickDTO {
	out := dto.ClickDTO{
		ID:         c.ID,
		Code:       c.Code,
		ProgramKey: c.ProgramKey,
		CreatedAt:  c.CreatedAt,
	}
	if c.CountryCode != nil {
		out.CountryCode = *c.CountryCode
	}
	if len(c.Landing) > 0 {
		out.Landing = make(map[string]string, len(c.Landing))
		for k, v := range c.Landing {
			out.Landing[k] = fmt.Sprint(v)
		}
	}
	return out
}

func toLeadDTO(l *model.Lead) dto.LeadDTO {
	out := dto.LeadDTO{
		ID:           l.ID.String(),
		FullName:     l.FullName,
		Email:        l.Email,
		Phone:        l.Phone,
		Status:       string(l.Status),
		ReconciledAt: l.ReconciledAt,
		CreatedAt:    l.CreatedAt,
	}
	if l.AssignedOwnerPrincipalID != nil {
		out.AssignedOwnerPrincipalID = *l.AssignedOwnerPrincipalID
	}
	if l.PatientPrincipalID != nil {
		out.PatientPrincipalID = *l.PatientPrincipalID
	}
	return out
}
