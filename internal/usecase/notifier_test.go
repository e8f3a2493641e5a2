package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/ArtLegends/medtravel-main-sub002/internal/domain/model"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
)

func TestPartnerNotifier_AttachmentCreated(t *testing.T) {
	publisher := new(MockPublisher)
	mailer := new(MockMailer)
	principals := new(MockPrincipalRepository)

	attachment := &model.ReferralAttachment{ID: 7, PatientPrincipalID: "p-42", Code: "ABC1234", OwnerPrincipalID: "partner-1", ProgramKey: "patient"}

	publisher.On("Publish", mock.Anything, "referral.events", mock.MatchedBy(func(e Event) bool {
		return e.Type == EventReferralAttached && e.Data == attachment && !e.OccurredAt.IsZero()
	})).Return(nil)
	principals.On("GetProfile", mock.Anything, "partner-1").Return(&model.Profile{PrincipalID: "partner-1", Email: "partner@example.com"}, nil)
	mailer.On("Send", mock.Anything, "partner@example.com", "New referral signup", mock.MatchedBy(func(body string) bool {
		return strings.Contains(body, "ABC1234")
	})).Return(nil)

	n := NewPartnerNotifier(publisher, mailer, principals, "", zap.NewNop())
	assert.NoError(t, n.AttachmentCreated(context.Background(), attachment))

	publisher.AssertExpectations(t)
	mailer.AssertExpectations(t)
}

func TestPartnerNotifier_SkipsMissingEmail(t *testing.T) {
	mailer := new(MockMailer)
	principals := new(MockPrincipalRepository)
	principals.On("GetProfile", mock.Anything, "partner-1").Return(&model.Profile{PrincipalID: "partner-1"}, nil)

	n := NewPartnerNotifier(nil, mailer, principals, "", zap.NewNop())
	err := n.AttachmentCreated(context.Background(), &model.ReferralAttachment{OwnerPrincipalID: "partner-1", Code: "ABC1234"})

	assert.NoError(t, err)
	mailer.AssertNotCalled(t, "Send", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestPartnerNotifier_JoinsErrors(t *testing.T) {
	publisher := new(MockPublisher)
	mailer := new(MockMailer)
	principals := new(MockPrincipalRepository)

	pubErr := errors.New("redis down")
	mailErr := errors.New("smtp refused")
	publisher.On("Publish", mock.Anything, "custom", mock.Anything).Return(pubErr)
	principals.On("GetProfile", mock.Anything, "partner-9").Return(&model.Profile{Email: "owner@example.com"}, nil)
	mailer.On("Send", mock.Anything, "owner@example.com", mock.Anything, mock.Anything).Return(mailErr)

	owner := "partner-9"
	patient := "p-42"
	n := NewPartnerNotifier(publisher, mailer, principals, "custom", zap.NewNop())
	err := n.LeadReconciled(context.Background(), &model.Lead{ID: uuid.New(), AssignedOwnerPrincipalID: &owner, PatientPrincipalID: &patient})

	assert.ErrorIs(t, err, pubErr)
	assert.ErrorIs(t, err, mailErr)
}

func TestPartnerNotifier_ConversionDecidedPublishesOnly(t *testing.T) {
	publisher := new(MockPublisher)
	publisher.On("Publish", mock.Anything, "referral.events", mock.MatchedBy(func(e Event) bool {
		return e.Type == EventConversionDecided
	})).Return(nil)

	n := NewPartnerNotifier(publisher, nil, nil, "", zap.NewNop())
	assert.NoError(t, n.ConversionDecided(context.Background(), &model.ReferralConversion{ID: 1, Status: model.ConversionStatusConfirmed}))
	publisher.AssertNumberOfCalls(t, "Publish", 1)
}
