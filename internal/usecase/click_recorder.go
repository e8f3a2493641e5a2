package usecase

import (
	"context"
	"time"

	domainErrors "github.com/ArtLegends/medtravel-main-sub002/internal/domain/errors"
	"github.com/ArtLegends/medtravel-main-sub002/internal/domain/entity"
	"github.com/ArtLegends/medtravel-main-sub002/internal/domain/model"
	domainRepo "github.com/ArtLegends/medtravel-main-sub002/internal/domain/repository"
	"github.com/ArtLegends/medtravel-main-sub002/internal/infrastructure/crypto"
	"github.com/ArtLegends/medtravel-main-sub002/internal/infrastructure/geoip"
	apperrors "github.com/ArtLegends/medtravel-main-sub002/pkg/errors"
	"go.uber.org/zap"
	"gorm.io/datatypes"
)

// ClickRecorder validates inbound referral codes and durably records clicks
type ClickRecorder struct {
	registry      domainRepo.CodeRegistry
	clicks        domainRepo.ClickRepository
	hasher        crypto.IPHasher
	locator       geoip.Locator
	cookies       AttributionCookies
	minCodeLength int
	timeout       time.Duration
	logger        *zap.Logger
}

const defaultClickTimeout = 5 * time.Second

// NewClickRecorder creates a click recorder. locator may be nil.
func NewClickRecorder(
	registry domainRepo.CodeRegistry,
	clicks domainRepo.ClickRepository,
	hasher crypto.IPHasher,
	locator geoip.Locator,
	cookies AttributionCookies,
	minCodeLength int,
	logger *zap.Logger,
) *ClickRecorder {
	if locator == nil {
		locator = geoip.NoopLocator{}
	}
	if minCodeLength < 1 {
		minCodeLength = entity.DefaultMinCodeLength
	}
	return &ClickRecorder{
		registry:      registry,
		clicks:        clicks,
		hasher:        hasher,
		locator:       locator,
		cookies:       cookies,
		minCodeLength: minCodeLength,
		timeout:       defaultClickTimeout,
		logger:        logger,
	}
}

// RecordClick resolves rawCode and appends a click before producing the cookie.
// It never returns an error: rejected codes, unknown codes and registry outages
// are reported through the result. A registry outage or a failed append still
// yields a cookie; the binder re-resolves the code when it consumes it.
func (r *ClickRecorder) RecordClick(ctx context.Context, rawCode string, meta entity.RequestMeta) entity.ClickResult {
	code := entity.NormalizeCode(rawCode)
	if !entity.IsWellFormedCode(code, r.minCodeLength) {
		return entity.ClickResult{Outcome: entity.ClickOutcomeRejectedInput}
	}

	// the lookup and the append finish even if the visitor has already gone away
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), r.timeout)
	defer cancel()

	resolved, err := r.registry.Resolve(ctx, code)
	if err != nil {
		if domainErrors.IsNotFound(err) {
			r.logger.Debug("Referral code did not resolve", zap.String("code", code))
			return entity.ClickResult{Outcome: entity.ClickOutcomeNotFound}
		}
		apperrors.LogError(r.logger, err, "ClickRecorder: registry lookup failed", zap.String("code", code))
		result := entity.ClickResult{Outcome: entity.ClickOutcomeRegistryUnavailable}
		if domainErrors.IsStorageUnavailable(err) {
			result.Cookie = r.cookies.Issue(code)
		}
		return result
	}

	click := r.buildClick(resolved, meta)

	// the append must complete before the cookie is produced
	recorded := true
	if err := r.clicks.Append(ctx, click); err != nil {
		recorded = false
		r.logger.Error("ClickRecorder: failed to append click",
			zap.String("code", resolved.Code),
			zap.String("owner_principal_id", resolved.OwnerPrincipalID),
			zap.Error(err))
	}

	return entity.ClickResult{
		Accepted: true,
		Outcome:  entity.ClickOutcomeAccepted,
		Resolved: resolved,
		Recorded: recorded,
		ClickID:  click.ID,
		Cookie:   r.cookies.Issue(resolved.Code),
	}
}

func (r *ClickRecorder) buildClick(resolved *entity.ResolvedCode, meta entity.RequestMeta) *model.ReferralClick {
	click := &model.ReferralClick{
		Code:             resolved.Code,
		OwnerPrincipalID: resolved.OwnerPrincipalID,
		ProgramKey:       resolved.ProgramKey,
		IPHash:           r.hasher.HashIP(meta.ClientIP),
		UserAgent:        meta.UserAgent,
		CreatedAt:        time.Now().UTC(),
	}

	if country, ok := r.locator.Country(meta.ClientIP); ok {
		click.CountryCode = &country
	}

	landing := datatypes.JSONMap{}
	for k, v := range map[string]string{
		"path":     meta.Path,
		"locale":   meta.Locale,
		"campaign": meta.Campaign,
		"referer":  meta.Referer,
	} {
		if v != "" {
			landing[k] = v
		}
	}
	if len(landing) > 0 {
		click.Landing = landing
	}
	return click
}
