package repository

import (
	"context"

	"github.com/ArtLegends/medtravel-main-sub002/internal/domain/dto"
	"github.com/ArtLegends/medtravel-main-sub002/internal/domain/entity"
	"github.com/ArtLegends/medtravel-main-sub002/internal/domain/model"
	"github.com/google/uuid"
)

// LeadRepository manages anonymous leads
type LeadRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*model.Lead, error)

	// BindPrincipal sets the lead's patient principal if it is unset or already equal,
	// merging non-empty contact fields, in one conditional update.
	// bound is false when no row matched (lead missing or bound to another principal).
	BindPrincipal(ctx context.Context, id uuid.UUID, principalID string, contact entity.ContactFields) (bound bool, err error)

	List(ctx context.Context, filters dto.LeadFilters) ([]*model.Lead, int64, error)
}

// PrincipalRepository manages baseline profile and role records
type PrincipalRepository interface {
	// EnsureBaseline creates the profile and role rows when missing; existing rows are left untouched
	EnsureBaseline(ctx context.Context, profile *model.Profile, role model.Role) error

	GetRoles(ctx context.Context, principalID string) ([]model.Role, error)

	GetProfile(ctx context.Context, principalID string) (*model.Profile, error)
}
