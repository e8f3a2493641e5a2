package usecase

import (
	"context"
	"strings"
	"time"

	domainErrors "github.com/ArtLegends/medtravel-main-sub002/internal/domain/errors"
	"github.com/ArtLegends/medtravel-main-sub002/internal/domain/entity"
	"github.com/ArtLegends/medtravel-main-sub002/internal/domain/model"
	domainRepo "github.com/ArtLegends/medtravel-main-sub002/internal/domain/repository"
	apperrors "github.com/ArtLegends/medtravel-main-sub002/pkg/errors"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// ConversionNotifier is told about terminal conversion decisions
type ConversionNotifier interface {
	ConversionDecided(ctx context.Context, conversion *model.ReferralConversion) error
}

const maxTransitionAttempts = 3

// ConversionService advances referral conversions through pending -> confirmed | rejected
type ConversionService struct {
	conversions domainRepo.ConversionRepository
	sideEffects *BestEffort
	notifier    ConversionNotifier
	logger      *zap.Logger
	now         func() time.Time
}

// NewConversionService creates a conversion service. sideEffects and notifier may be nil.
func NewConversionService(
	conversions domainRepo.ConversionRepository,
	sideEffects *BestEffort,
	notifier ConversionNotifier,
	logger *zap.Logger,
) *ConversionService {
	return &ConversionService{
		conversions: conversions,
		sideEffects: sideEffects,
		notifier:    notifier,
		logger:      logger,
		now:         time.Now,
	}
}

// Transition moves the patient's conversion to in.Target. Requesting the status
// the record already holds in a terminal state succeeds without changes; any
// other move out of a terminal state, or back to pending, fails with a conflict.
func (s *ConversionService) Transition(ctx context.Context, in entity.ConversionInput) (*entity.ConversionResult, error) {
	principalID := strings.TrimSpace(in.PatientPrincipalID)
	if principalID == "" {
		return nil, domainErrors.ErrMissingPrincipal
	}
	if !in.Target.IsValid() {
		return nil, domainErrors.ErrInvalidStatus
	}
	if err := validateValue(in); err != nil {
		return nil, err
	}

	for attempt := 0; attempt < maxTransitionAttempts; attempt++ {
		current, err := s.conversions.GetByPatient(ctx, principalID)
		if err != nil {
			return nil, err
		}

		if current.Status == in.Target && current.Status.IsTerminal() {
			return &entity.ConversionResult{Conversion: current, Unchanged: true}, nil
		}
		if !current.Status.CanTransition(in.Target) {
			return nil, domainErrors.NewIllegalTransitionError(string(current.Status), string(in.Target))
		}

		decision := s.decision(current, in)
		swapped, err := s.conversions.CompareAndSetStatus(ctx, current.ID, current.Status, decision)
		if err != nil {
			return nil, err
		}
		if !swapped {
			s.logger.Debug("ConversionService: concurrent decision, re-reading",
				zap.String("patient_principal_id", principalID),
				zap.Int("attempt", attempt+1))
			continue
		}

		s.logger.Info("ConversionService: conversion decided",
			zap.String("patient_principal_id", principalID),
			zap.String("from", string(current.Status)),
			zap.String("to", string(decision.Status)),
			zap.String("decided_by", in.ActorPrincipalID))

		if s.notifier != nil {
			s.sideEffects.Run(ctx, "notify_conversion_decided", func(ctx context.Context) error {
				return s.notifier.ConversionDecided(ctx, decision)
			})
		}
		return &entity.ConversionResult{Conversion: decision}, nil
	}

	return nil, apperrors.NewAppError(apperrors.ErrConflict, "conversion changed concurrently", nil)
}

func (s *ConversionService) decision(current *model.ReferralConversion, in entity.ConversionInput) *model.ReferralConversion {
	decided := *current
	decided.Status = in.Target
	now := s.now().UTC()
	decided.DecidedAt = &now

	if in.Value != nil {
		decided.Value = decimal.NullDecimal{Decimal: in.Value.Round(2), Valid: true}
	}
	if c := strings.ToUpper(strings.TrimSpace(in.Currency)); c != "" {
		decided.Currency = &c
	}
	if r := strings.TrimSpace(in.Reason); r != "" {
		decided.Reason = &r
	}
	if a := strings.TrimSpace(in.ActorPrincipalID); a != "" {
		decided.DecidedBy = &a
	}
	return &decided
}

func validateValue(in entity.ConversionInput) error {
	if in.Value == nil {
		return nil
	}
	if in.Value.IsNegative() {
		return apperrors.NewAppError(apperrors.ErrInvalidArgument, "conversion value must not be negative", nil)
	}
	if in.Target != model.ConversionStatusConfirmed {
		return apperrors.NewAppError(apperrors.ErrInvalidArgument, "conversion value is only recorded on confirmation", nil)
	}
	if len(strings.TrimSpace(in.Currency)) != 3 {
		return apperrors.NewAppError(apperrors.ErrInvalidArgument, "currency must be a 3-letter ISO code", nil)
	}
	return nil
}
