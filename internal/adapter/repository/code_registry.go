package repository

import (
	"context"

	domainErrors "github.com/ArtLegends/medtravel-main-sub002/internal/domain/errors"
	"github.com/ArtLegends/medtravel-main-sub002/internal/domain/entity"
	"github.com/ArtLegends/medtravel-main-sub002/internal/domain/model"
	domainRepo "github.com/ArtLegends/medtravel-main-sub002/internal/domain/repository"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type codeRegistry struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewCodeRegistry creates a code registry backed by the referral_codes table
func NewCodeRegistry(db *gorm.DB, logger *zap.Logger) domainRepo.CodeRegistry {
	return &codeRegistry{db: db, logger: logger}
}

// Resolve looks up an approved code. Codes are stored uppercased, so the unique
// index serves the lookup. Pending and rejected codes are indistinguishable from unknown ones.
func (r *codeRegistry) Resolve(ctx context.Context, code string) (*entity.ResolvedCode, error) {
	normalized := entity.NormalizeCode(code)
	if normalized == "" {
		return nil, domainErrors.ErrCodeNotFound
	}

	var row model.ReferralCode
	err := r.db.WithContext(ctx).
		Where("code = ? AND status = ?", normalized, model.ApprovalStatusApproved).
		First(&row).Error
	if err != nil {
		err = storageErr("resolve code", err, domainErrors.ErrCodeNotFound)
		if domainErrors.IsStorageUnavailable(err) {
			r.logger.Error("Failed to resolve referral code",
				zap.String("code", normalized),
				zap.Error(err))
		}
		return nil, err
	}

	return &entity.ResolvedCode{
		Code:             entity.NormalizeCode(row.Code),
		OwnerPrincipalID: row.OwnerPrincipalID,
		ProgramKey:       row.ProgramKey,
	}, nil
}
