package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/ArtLegends/medtravel-main-sub002/internal/domain/dto"
	"github.com/ArtLegends/medtravel-main-sub002/internal/domain/model"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/datatypes"
)

func TestReportService_ListClicks(t *testing.T) {
	clicks := new(MockClickRepository)
	country := "DE"
	rows := []*model.ReferralClick{
		{ID: 1, Code: "ABC1234", ProgramKey: "patient", IPHash: "deadbeef", CountryCode: &country, Landing: datatypes.JSONMap{"path": "/r/ABC1234"}, CreatedAt: time.Now()},
		{ID: 2, Code: "ABC1234", ProgramKey: "patient", IPHash: "cafebabe", CreatedAt: time.Now()},
	}
	clicks.On("ListByOwner", mock.Anything, mock.MatchedBy(func(f dto.ClickFilters) bool {
		return f.OwnerPrincipalID == "partner-1" && f.Limit == 20 && f.Offset == 0
	})).Return(rows, int64(45), nil)

	svc := NewReportService(clicks, nil, zap.NewNop())
	resp, err := svc.ListClicks(context.Background(), dto.ClickFilters{OwnerPrincipalID: "partner-1"})
	require.NoError(t, err)

	require.Len(t, resp.Clicks, 2)
	assert.Equal(t, "DE", resp.Clicks[0].CountryCode)
	assert.Equal(t, "/r/ABC1234", resp.Clicks[0].Landing["path"])
	assert.Nil(t, resp.Clicks[1].Landing)
	assert.Equal(t, dto.PaginationInfo{Total: 45, Limit: 20, Offset: 0, HasMore: true}, resp.Pagination)
}

func TestReportService_ListLeads(t *testing.T) {
	leads := new(MockLeadRepository)
	patient := "p-42"
	leads.On("List", mock.Anything, mock.MatchedBy(func(f dto.LeadFilters) bool {
		return f.Limit == 100 && f.Offset == 100
	})).Return([]*model.Lead{{ID: uuid.New(), Email: "jane@example.com", Status: model.LeadStatusNew, PatientPrincipalID: &patient}}, int64(101), nil)

	svc := NewReportService(nil, leads, zap.NewNop())
	resp, err := svc.ListLeads(context.Background(), dto.LeadFilters{Limit: 500, Offset: 100})
	require.NoError(t, err)

	require.Len(t, resp.Leads, 1)
	assert.Equal(t, "p-42", resp.Leads[0].PatientPrincipalID)
	assert.Equal(t, "new", resp.Leads[0].Status)
	assert.False(t, resp.Pagination.HasMore)
}
