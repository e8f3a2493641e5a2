package usecase

import (
	"context"
	"strings"
	"time"

	domainErrors "github.com/ArtLegends/medtravel-main-sub002/internal/domain/errors"
	"github.com/ArtLegends/medtravel-main-sub002/internal/domain/entity"
	"github.com/ArtLegends/medtravel-main-sub002/internal/domain/model"
	domainRepo "github.com/ArtLegends/medtravel-main-sub002/internal/domain/repository"
	"go.uber.org/zap"
)

// AttachmentNotifier is told about newly created attachments
type AttachmentNotifier interface {
	AttachmentCreated(ctx context.Context, attachment *model.ReferralAttachment) error
}

// SignupBinder attaches a freshly authenticated principal to the referral that brought them
type SignupBinder struct {
	registry      domainRepo.CodeRegistry
	attachments   domainRepo.AttachmentRepository
	sideEffects   *BestEffort
	notifier      AttachmentNotifier
	minCodeLength int
	logger        *zap.Logger
}

// NewSignupBinder creates a signup binder. sideEffects and notifier may be nil.
func NewSignupBinder(
	registry domainRepo.CodeRegistry,
	attachments domainRepo.AttachmentRepository,
	sideEffects *BestEffort,
	notifier AttachmentNotifier,
	minCodeLength int,
	logger *zap.Logger,
) *SignupBinder {
	if minCodeLength < 1 {
		minCodeLength = entity.DefaultMinCodeLength
	}
	return &SignupBinder{
		registry:      registry,
		attachments:   attachments,
		sideEffects:   sideEffects,
		notifier:      notifier,
		minCodeLength: minCodeLength,
		logger:        logger,
	}
}

// BindOnAuth creates the principal's referral attachment from the explicit code,
// falling back to the cookie code. The first attachment for a principal wins;
// later calls are successful no-ops. Storage failures are returned so the caller
// can retry; an unresolvable code is not an error.
func (b *SignupBinder) BindOnAuth(ctx context.Context, in entity.BindInput) (*entity.BindResult, error) {
	principalID := strings.TrimSpace(in.PatientPrincipalID)
	if principalID == "" {
		return nil, domainErrors.ErrMissingPrincipal
	}

	candidate, source := b.candidate(in)
	if candidate == "" {
		return &entity.BindResult{}, nil
	}

	code := entity.NormalizeCode(candidate)
	if !entity.IsWellFormedCode(code, b.minCodeLength) {
		b.logger.Debug("SignupBinder: discarding malformed code",
			zap.String("patient_principal_id", principalID),
			zap.String("source", string(source)))
		return &entity.BindResult{ClearCookie: true}, nil
	}

	resolved, err := b.registry.Resolve(ctx, code)
	if err != nil {
		if domainErrors.IsNotFound(err) {
			b.logger.Info("SignupBinder: code no longer resolves",
				zap.String("patient_principal_id", principalID),
				zap.String("code", code))
			return &entity.BindResult{ClearCookie: true}, nil
		}
		return nil, err
	}

	attachment := &model.ReferralAttachment{
		PatientPrincipalID: principalID,
		Code:               resolved.Code,
		OwnerPrincipalID:   resolved.OwnerPrincipalID,
		ProgramKey:         resolved.ProgramKey,
		Source:             source,
		CreatedAt:          time.Now().UTC(),
	}

	stored, created, err := b.attachments.CreateIfAbsent(ctx, attachment)
	if err != nil {
		return nil, err
	}

	if !created {
		b.logger.Info("SignupBinder: principal already attached",
			zap.String("patient_principal_id", principalID),
			zap.String("attempted_code", resolved.Code),
			zap.String("attached_code", stored.Code))
		return &entity.BindResult{
			AlreadyAttached: true,
			Code:            stored.Code,
			ClearCookie:     true,
		}, nil
	}

	b.logger.Info("SignupBinder: referral attached",
		zap.String("patient_principal_id", principalID),
		zap.String("code", stored.Code),
		zap.String("owner_principal_id", stored.OwnerPrincipalID),
		zap.String("source", string(source)))

	if b.notifier != nil {
		b.sideEffects.Run(ctx, "notify_attachment_created", func(ctx context.Context) error {
			return b.notifier.AttachmentCreated(ctx, stored)
		})
	}

	return &entity.BindResult{
		Attached:    true,
		Code:        stored.Code,
		ClearCookie: true,
		Resolved:    resolved,
	}, nil
}

func (b *SignupBinder) candidate(in entity.BindInput) (string, model.AttachmentSource) {
	if explicit := strings.TrimSpace(in.ExplicitCode); explicit != "" {
		return explicit, model.AttachmentSourceExplicit
	}
	if cookie := strings.TrimSpace(in.CookieCode); cookie != "" {
		return cookie, model.AttachmentSourceCookie
	}
	return "", ""
}
