package repository

import (
	"context"

	"github.com/ArtLegends/medtravel-main-sub002/internal/domain/dto"
	"github.com/ArtLegends/medtravel-main-sub002/internal/domain/entity"
	"github.com/ArtLegends/medtravel-main-sub002/internal/domain/model"
)

// CodeRegistry resolves referral codes to their owner and program
type CodeRegistry interface {
	// Resolve matches an approved code case-insensitively.
	// Unknown, pending and rejected codes return ErrCodeNotFound.
	Resolve(ctx context.Context, code string) (*entity.ResolvedCode, error)
}

// ClickRepository stores click events
type ClickRepository interface {
	// Append inserts one click. Clicks are never updated or deleted.
	Append(ctx context.Context, click *model.ReferralClick) error

	// ListByOwner returns an owner's clicks matching the filters, newest first, with the total count
	ListByOwner(ctx context.Context, filters dto.ClickFilters) ([]*model.ReferralClick, int64, error)
}

// AttachmentRepository stores referral attachments and their conversion records
type AttachmentRepository interface {
	// CreateIfAbsent inserts the attachment and its pending conversion atomically.
	// created is false when the patient already has an attachment; the existing row is returned.
	CreateIfAbsent(ctx context.Context, attachment *model.ReferralAttachment) (existing *model.ReferralAttachment, created bool, err error)

	// GetByPatient retrieves the attachment for a patient principal
	GetByPatient(ctx context.Context, patientPrincipalID string) (*model.ReferralAttachment, error)
}

// ConversionRepository manages conversion status records
type ConversionRepository interface {
	// GetByPatient retrieves the conversion record for a patient principal
	GetByPatient(ctx context.Context, patientPrincipalID string) (*model.ReferralConversion, error)

	// CompareAndSetStatus moves the record to decision.Status only if it is still in from.
	// swapped is false when another writer changed the status first.
	CompareAndSetStatus(ctx context.Context, id int64, from model.ConversionStatus, decision *model.ReferralConversion) (swapped bool, err error)
}
