package repository

import (
	"context"

	"github.com/ArtLegends/medtravel-main-sub002/internal/domain/dto"
	"github.com/ArtLegends/medtravel-main-sub002/internal/domain/model"
	domainRepo "github.com/ArtLegends/medtravel-main-sub002/internal/domain/repository"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type clickRepository struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewClickRepository creates a click repository
func NewClickRepository(db *gorm.DB, logger *zap.Logger) domainRepo.ClickRepository {
	return &clickRepository{db: db, logger: logger}
}

// Append inserts one click row
func (r *clickRepository) Append(ctx context.Context, click *model.ReferralClick) error {
	if err := r.db.WithContext(ctx).Create(click).Error; err != nil {
		r.logger.Error("Failed to append click",
			zap.String("code", click.Code),
			zap.Error(err))
		return storageErr("append click", err, nil)
	}
	return nil
}

// ListByOwner returns the owner's clicks, newest first
func (r *clickRepository) ListByOwner(ctx context.Context, filters dto.ClickFilters) ([]*model.ReferralClick, int64, error) {
	query := applyPredicates(r.db.WithContext(ctx).Model(&model.ReferralClick{}), filters.Predicates()).
		Session(&gorm.Session{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, storageErr("count clicks", err, nil)
	}

	var clicks []*model.ReferralClick
	err := query.
		Order("created_at DESC").
		Order("id DESC").
		Limit(filters.Limit).
		Offset(filters.Offset).
		Find(&clicks).Error
	if err != nil {
		r.logger.Error("Failed to list clicks",
			zap.String("owner_principal_id", filters.OwnerPrincipalID),
			zap.Error(err))
		return nil, 0, storageErr("list clicks", err, nil)
	}

	return clicks, total, nil
}
