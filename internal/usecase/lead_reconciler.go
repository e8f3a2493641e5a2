package usecase

import (
	"context"
	"strings"

	"github.com/ArtLegends/medtravel-main-sub002/internal/cache"
	domainErrors "github.com/ArtLegends/medtravel-main-sub002/internal/domain/errors"
	"github.com/ArtLegends/medtravel-main-sub002/internal/domain/entity"
	"github.com/ArtLegends/medtravel-main-sub002/internal/domain/model"
	domainRepo "github.com/ArtLegends/medtravel-main-sub002/internal/domain/repository"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// LeadNotifier is told when an assigned lead is reconciled
type LeadNotifier interface {
	LeadReconciled(ctx context.Context, lead *model.Lead) error
}

// LeadReconciler binds an anonymous lead to the principal that later authenticated
type LeadReconciler struct {
	leads       domainRepo.LeadRepository
	principals  domainRepo.PrincipalRepository
	baseline    cache.Cache[string, bool]
	roles       *RoleService
	sideEffects *BestEffort
	notifier    LeadNotifier
	logger      *zap.Logger
}

// NewLeadReconciler creates a lead reconciler. baseline caches principals whose
// profile and role rows are known to exist; roles, sideEffects and notifier may be nil.
func NewLeadReconciler(
	leads domainRepo.LeadRepository,
	principals domainRepo.PrincipalRepository,
	baseline cache.Cache[string, bool],
	roles *RoleService,
	sideEffects *BestEffort,
	notifier LeadNotifier,
	logger *zap.Logger,
) *LeadReconciler {
	if baseline == nil {
		baseline = cache.NoopCache[string, bool]{}
	}
	return &LeadReconciler{
		leads:       leads,
		principals:  principals,
		baseline:    baseline,
		roles:       roles,
		sideEffects: sideEffects,
		notifier:    notifier,
		logger:      logger,
	}
}

// Reconcile binds the lead to the principal exactly once. Repeating the call with
// the same principal succeeds; a different principal gets ErrLeadAlreadyBound.
// It does not create a referral attachment: the lead's assigned owner is a
// separate attribution path.
func (r *LeadReconciler) Reconcile(ctx context.Context, in entity.ReconcileInput) (*entity.ReconcileResult, error) {
	principalID := strings.TrimSpace(in.PatientPrincipalID)
	if in.LeadID == uuid.Nil {
		return nil, domainErrors.ErrInvalidLeadID
	}
	if principalID == "" {
		return nil, domainErrors.ErrMissingPrincipal
	}
	contact := in.Contact.Trimmed()

	lead, err := r.leads.GetByID(ctx, in.LeadID)
	if err != nil {
		return nil, err
	}
	if lead.PatientPrincipalID != nil && !lead.BoundTo(principalID) {
		return nil, r.conflict(lead, principalID)
	}
	alreadyBound := lead.BoundTo(principalID)

	bound, err := r.leads.BindPrincipal(ctx, in.LeadID, principalID, contact)
	if err != nil {
		return nil, err
	}
	if !bound {
		// lost a race: re-read to tell a concurrent delete from a concurrent bind
		lead, err = r.leads.GetByID(ctx, in.LeadID)
		if err != nil {
			return nil, err
		}
		if !lead.BoundTo(principalID) {
			return nil, r.conflict(lead, principalID)
		}
		alreadyBound = true
	}

	if err := r.ensureBaseline(ctx, principalID, lead, contact); err != nil {
		return nil, err
	}

	r.logger.Info("LeadReconciler: lead bound to principal",
		zap.String("lead_id", in.LeadID.String()),
		zap.String("patient_principal_id", principalID),
		zap.Bool("already_bound", alreadyBound))

	if !alreadyBound && r.notifier != nil && lead.AssignedOwnerPrincipalID != nil {
		notified := *lead
		notified.PatientPrincipalID = &principalID
		r.sideEffects.Run(ctx, "notify_lead_reconciled", func(ctx context.Context) error {
			return r.notifier.LeadReconciled(ctx, &notified)
		})
	}

	return &entity.ReconcileResult{
		OK:                       true,
		LeadID:                   in.LeadID,
		AlreadyBound:             alreadyBound,
		AssignedOwnerPrincipalID: lead.AssignedOwnerPrincipalID,
	}, nil
}

func (r *LeadReconciler) conflict(lead *model.Lead, principalID string) error {
	r.logger.Warn("LeadReconciler: lead already bound to another principal",
		zap.String("lead_id", lead.ID.String()),
		zap.String("patient_principal_id", principalID))
	return domainErrors.ErrLeadAlreadyBound
}

func (r *LeadReconciler) ensureBaseline(ctx context.Context, principalID string, lead *model.Lead, contact entity.ContactFields) error {
	if _, ok := r.baseline.Get(principalID); ok {
		return nil
	}

	profile := &model.Profile{
		PrincipalID: principalID,
		FullName:    firstNonEmpty(contact.FullName, lead.FullName),
		Phone:       firstNonEmpty(contact.Phone, lead.Phone),
		Email:       firstNonEmpty(contact.Email, lead.Email),
	}
	if err := r.principals.EnsureBaseline(ctx, profile, model.RolePatient); err != nil {
		return err
	}

	r.baseline.Set(principalID, true)
	if r.roles != nil {
		r.roles.Invalidate(principalID)
	}
	return nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
