package repository

import (
	"context"

	domainErrors "github.com/ArtLegends/medtravel-main-sub002/internal/domain/errors"
	"github.com/ArtLegends/medtravel-main-sub002/internal/domain/model"
	domainRepo "github.com/ArtLegends/medtravel-main-sub002/internal/domain/repository"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type conversionRepository struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewConversionRepository creates a conversion repository
func NewConversionRepository(db *gorm.DB, logger *zap.Logger) domainRepo.ConversionRepository {
	return &conversionRepository{db: db, logger: logger}
}

// GetByPatient retrieves the patient's conversion record
func (r *conversionRepository) GetByPatient(ctx context.Context, patientPrincipalID string) (*model.ReferralConversion, error) {
	var c model.ReferralConversion
	err := r.db.WithContext(ctx).
		Where("patient_principal_id = ?", patientPrincipalID).
		First(&c).Error
	if err != nil {
		return nil, storageErr("get conversion", err, domainErrors.ErrAttachmentNotFound)
	}
	return &c, nil
}

// CompareAndSetStatus updates the row only while its status is still from
func (r *conversionRepository) CompareAndSetStatus(ctx context.Context, id int64, from model.ConversionStatus, decision *model.ReferralConversion) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&model.ReferralConversion{}).
		Where("id = ? AND status = ?", id, from).
		Updates(map[string]interface{}{
			"status":     decision.Status,
			"value":      decision.Value,
			"currency":   decision.Currency,
			"reason":     decision.Reason,
			"decided_by": decision.DecidedBy,
			"decided_at": decision.DecidedAt,
		})
	if res.Error != nil {
		r.logger.Error("Failed to update conversion status",
			zap.Int64("conversion_id", id),
			zap.String("from", string(from)),
			zap.String("to", string(decision.Status)),
			zap.Error(res.Error))
		return false, storageErr("update conversion", res.Error, nil)
	}
	return res.RowsAffected == 1, nil
}
