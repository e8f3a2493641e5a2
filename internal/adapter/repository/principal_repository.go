package repository

import (
	"context"

	domainErrors "github.com/ArtLegends/medtravel-main-sub002/internal/domain/errors"
	"github.com/ArtLegends/medtravel-main-sub002/internal/domain/model"
	domainRepo "github.com/ArtLegends/medtravel-main-sub002/internal/domain/repository"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type principalRepository struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewPrincipalRepository creates a principal repository
func NewPrincipalRepository(db *gorm.DB, logger *zap.Logger) domainRepo.PrincipalRepository {
	return &principalRepository{db: db, logger: logger}
}

// EnsureBaseline inserts the profile and role rows, ignoring ones that already exist
func (r *principalRepository) EnsureBaseline(ctx context.Context, profile *model.Profile, role model.Role) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		p := *profile
		if err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "principal_id"}},
			DoNothing: true,
		}).Create(&p).Error; err != nil {
			return err
		}

		return tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "principal_id"}, {Name: "role"}},
			DoNothing: true,
		}).Create(&model.PrincipalRole{PrincipalID: profile.PrincipalID, Role: role}).Error
	})
	if err != nil {
		r.logger.Error("Failed to ensure principal baseline",
			zap.String("principal_id", profile.PrincipalID),
			zap.String("role", string(role)),
			zap.Error(err))
		return storageErr("ensure baseline", err, nil)
	}
	return nil
}

// GetRoles returns the principal's roles; an unknown principal has none
func (r *principalRepository) GetRoles(ctx context.Context, principalID string) ([]model.Role, error) {
	var names []string
	err := r.db.WithContext(ctx).
		Model(&model.PrincipalRole{}).
		Where("principal_id = ?", principalID).
		Order("role").
		Pluck("role", &names).Error
	if err != nil {
		return nil, storageErr("get roles", err, nil)
	}

	roles := make([]model.Role, 0, len(names))
	for _, n := range names {
		roles = append(roles, model.Role(n))
	}
	return roles, nil
}

// GetProfile retrieves the principal's profile
func (r *principalRepository) GetProfile(ctx context.Context, principalID string) (*model.Profile, error) {
	var p model.Profile
	if err := r.db.WithContext(ctx).Where("principal_id = ?", principalID).First(&p).Error; err != nil {
		return nil, storageErr("get profile", err, domainErrors.ErrProfileNotFound)
	}
	return &p, nil
}
