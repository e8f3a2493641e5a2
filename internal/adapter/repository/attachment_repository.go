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

type attachmentRepository struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewAttachmentRepository creates an attachment repository
func NewAttachmentRepository(db *gorm.DB, logger *zap.Logger) domainRepo.AttachmentRepository {
	return &attachmentRepository{db: db, logger: logger}
}

// CreateIfAbsent relies on the unique index on patient_principal_id: the insert
// is a no-op when a row exists, and the pending conversion is created in the same
// transaction only when this call inserted the attachment.
func (r *attachmentRepository) CreateIfAbsent(ctx context.Context, attachment *model.ReferralAttachment) (*model.ReferralAttachment, bool, error) {
	var stored model.ReferralAttachment
	created := false

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		row := *attachment
		res := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "patient_principal_id"}},
			DoNothing: true,
		}).Create(&row)
		if res.Error != nil {
			return res.Error
		}

		if res.RowsAffected == 0 {
			return tx.Where("patient_principal_id = ?", attachment.PatientPrincipalID).First(&stored).Error
		}

		created = true
		stored = row
		return tx.Create(&model.ReferralConversion{
			AttachmentID:       row.ID,
			PatientPrincipalID: row.PatientPrincipalID,
			Status:             model.ConversionStatusPending,
		}).Error
	})
	if err != nil {
		r.logger.Error("Failed to create referral attachment",
			zap.String("patient_principal_id", attachment.PatientPrincipalID),
			zap.String("code", attachment.Code),
			zap.Error(err))
		return nil, false, storageErr("create attachment", err, nil)
	}

	return &stored, created, nil
}

// GetByPatient retrieves the patient's attachment
func (r *attachmentRepository) GetByPatient(ctx context.Context, patientPrincipalID string) (*model.ReferralAttachment, error) {
	var a model.ReferralAttachment
	err := r.db.WithContext(ctx).
		Where("patient_principal_id = ?", patientPrincipalID).
		First(&a).Error
	if err != nil {
		return nil, storageErr("get attachment", err, domainErrors.ErrAttachmentNotFound)
	}
	return &a, nil
}
