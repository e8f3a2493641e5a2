package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ArtLegends/medtravel-main-sub002/internal/domain/model"
	domainRepo "github.com/ArtLegends/medtravel-main-sub002/internal/domain/repository"
	"github.com/ArtLegends/medtravel-main-sub002/pkg/messaging"
	"go.uber.org/zap"
)

// Event types published on the referral events channel
const (
	EventReferralAttached  = "referral.attached"
	EventLeadReconciled    = "lead.reconciled"
	EventConversionDecided = "conversion.decided"
)

// DefaultEventChannel is the Redis channel referral events are published on
const DefaultEventChannel = "referral.events"

// Event is the envelope published for every domain event
type Event struct {
	Type       string      `json:"type"`
	OccurredAt time.Time   `json:"occurred_at"`
	Data       interface{} `json:"data"`
}

// Mailer sends a plain-text email
type Mailer interface {
	Send(ctx context.Context, to, subject, body string) error
}

// PartnerNotifier publishes domain events and emails the owning partner.
// Either transport may be nil, in which case that half is skipped.
type PartnerNotifier struct {
	publisher  messaging.Publisher
	mailer     Mailer
	principals domainRepo.PrincipalRepository
	channel    string
	logger     *zap.Logger
}

// NewPartnerNotifier creates a notifier
func NewPartnerNotifier(
	publisher messaging.Publisher,
	mailer Mailer,
	principals domainRepo.PrincipalRepository,
	channel string,
	logger *zap.Logger,
) *PartnerNotifier {
	if channel == "" {
		channel = DefaultEventChannel
	}
	return &PartnerNotifier{
		publisher:  publisher,
		mailer:     mailer,
		principals: principals,
		channel:    channel,
		logger:     logger,
	}
}

// AttachmentCreated announces a new referral attachment to its partner
func (n *PartnerNotifier) AttachmentCreated(ctx context.Context, attachment *model.ReferralAttachment) error {
	return errors.Join(
		n.publish(ctx, EventReferralAttached, attachment),
		n.mail(ctx, attachment.OwnerPrincipalID,
			"New referral signup",
			fmt.Sprintf("A new patient signed up with your referral code %s (program %s).", attachment.Code, attachment.ProgramKey)),
	)
}

// LeadReconciled announces that a lead assigned to a partner verified its identity
func (n *PartnerNotifier) LeadReconciled(ctx context.Context, lead *model.Lead) error {
	pubErr := n.publish(ctx, EventLeadReconciled, map[string]interface{}{
		"lead_id":                     lead.ID.String(),
		"assigned_owner_principal_id": lead.AssignedOwnerPrincipalID,
		"patient_principal_id":        lead.PatientPrincipalID,
	})
	if lead.AssignedOwnerPrincipalID == nil {
		return pubErr
	}
	return errors.Join(pubErr, n.mail(ctx, *lead.AssignedOwnerPrincipalID,
		"Your lead created an account",
		fmt.Sprintf("Lead %s has verified their identity and is now a registered patient.", lead.ID)))
}

// ConversionDecided announces a terminal conversion decision
func (n *PartnerNotifier) ConversionDecided(ctx context.Context, conversion *model.ReferralConversion) error {
	return n.publish(ctx, EventConversionDecided, conversion)
}

func (n *PartnerNotifier) publish(ctx context.Context, eventType string, data interface{}) error {
	if n.publisher == nil {
		return nil
	}
	err := n.publisher.Publish(ctx, n.channel, Event{Type: eventType, OccurredAt: time.Now().UTC(), Data: data})
	if err != nil {
		return fmt.Errorf("publish %s: %w", eventType, err)
	}
	n.logger.Debug("Event published", zap.String("event_type", eventType), zap.String("channel", n.channel))
	return nil
}

func (n *PartnerNotifier) mail(ctx context.Context, partnerID, subject, body string) error {
	if n.mailer == nil || n.principals == nil {
		return nil
	}
	profile, err := n.principals.GetProfile(ctx, partnerID)
	if err != nil {
		return fmt.Errorf("load partner profile: %w", err)
	}
	if profile.Email == "" {
		n.logger.Debug("Partner has no email, skipping notification", zap.String("partner_id", partnerID))
		return nil
	}
	if err := n.mailer.Send(ctx, profile.Email, subject, body); err != nil {
		return fmt.Errorf("send partner email: %w", err)
	}
	return nil
}
