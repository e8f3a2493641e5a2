package usecase

import (
	"context"

	"github.com/ArtLegends/medtravel-main-sub002/internal/cache"
	"github.com/ArtLegends/medtravel-main-sub002/internal/domain/model"
	domainRepo "github.com/ArtLegends/medtravel-main-sub002/internal/domain/repository"
	"go.uber.org/zap"
)

// RoleService answers role lookups through a principal-keyed TTL cache
type RoleService struct {
	principals domainRepo.PrincipalRepository
	cache      cache.Cache[string, []model.Role]
	logger     *zap.Logger
}

// NewRoleService creates a role service. A nil cache disables caching.
func NewRoleService(principals domainRepo.PrincipalRepository, roleCache cache.Cache[string, []model.Role], logger *zap.Logger) *RoleService {
	if roleCache == nil {
		roleCache = cache.NoopCache[string, []model.Role]{}
	}
	return &RoleService{principals: principals, cache: roleCache, logger: logger}
}

// Roles returns the principal's roles
func (s *RoleService) Roles(ctx context.Context, principalID string) ([]model.Role, error) {
	if roles, ok := s.cache.Get(principalID); ok {
		return roles, nil
	}
	roles, err := s.principals.GetRoles(ctx, principalID)
	if err != nil {
		return nil, err
	}
	s.cache.Set(principalID, roles)
	return roles, nil
}

// HasAnyRole reports whether the principal holds at least one of roles
func (s *RoleService) HasAnyRole(ctx context.Context, principalID string, roles ...model.Role) (bool, error) {
	held, err := s.Roles(ctx, principalID)
	if err != nil {
		return false, err
	}
	for _, h := range held {
		for _, want := range roles {
			if h == want {
				return true, nil
			}
		}
	}
	return false, nil
}

// Invalidate drops the cached roles of a principal
func (s *RoleService) Invalidate(principalID string) {
	s.cache.Delete(principalID)
}
