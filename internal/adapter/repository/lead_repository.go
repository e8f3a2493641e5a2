package repository

import (
	"context"
	"time"

	domainErrors "github.com/ArtLegends/medtravel-main-sub002/internal/domain/errors"
	"github.com/ArtLegends/medtravel-main-sub002/internal/domain/dto"
	"github.com/ArtLegends/medtravel-main-sub002/internal/domain/entity"
	"github.com/ArtLegends/medtravel-main-sub002/internal/domain/model"
	domainRepo "github.com/ArtLegends/medtravel-main-sub002/internal/domain/repository"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type leadRepository struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewLeadRepository creates a lead repository
func NewLeadRepository(db *gorm.DB, logger *zap.Logger) domainRepo.LeadRepository {
	return &leadRepository{db: db, logger: logger}
}

// GetByID retrieves a lead
func (r *leadRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Lead, error) {
	var lead model.Lead
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&lead).Error; err != nil {
		return nil, storageErr("get lead", err, domainErrors.ErrLeadNotFound)
	}
	return &lead, nil
}

// BindPrincipal binds the lead with a single conditional UPDATE. The WHERE clause
// matches only unbound rows or rows already bound to principalID, and
// reconciled_at keeps its first value.
func (r *leadRepository) BindPrincipal(ctx context.Context, id uuid.UUID, principalID string, contact entity.ContactFields) (bool, error) {
	now := time.Now().UTC()
	updates := contact.Updates()
	updates["patient_principal_id"] = principalID
	updates["reconciled_at"] = gorm.Expr("COALESCE(reconciled_at, ?)", now)
	updates["updated_at"] = now

	res := r.db.WithContext(ctx).
		Model(&model.Lead{}).
		Where("id = ? AND (patient_principal_id IS NULL OR patient_principal_id = ?)", id, principalID).
		Updates(updates)
	if res.Error != nil {
		r.logger.Error("Failed to bind lead",
			zap.String("lead_id", id.String()),
			zap.String("patient_principal_id", principalID),
			zap.Error(res.Error))
		return false, storageErr("bind lead", res.Error, nil)
	}
	return res.RowsAffected == 1, nil
}

// List returns leads matching the filters, newest first
func (r *leadRepository) List(ctx context.Context, filters dto.LeadFilters) ([]*model.Lead, int64, error) {
	query := applyPredicates(r.db.WithContext(ctx).Model(&model.Lead{}), filters.Predicates()).
		Session(&gorm.Session{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, storageErr("count leads", err, nil)
	}

	var leads []*model.Lead
	err := query.
		Order("created_at DESC").
		Limit(filters.Limit).
		Offset(filters.Offset).
		Find(&leads).Error
	if err != nil {
		r.logger.Error("Failed to list leads", zap.Error(err))
		return nil, 0, storageErr("list leads", err, nil)
	}

	return leads, total, nil
}
