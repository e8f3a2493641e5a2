package usecase

import (
	"context"

	"github.com/ArtLegends/medtravel-main-sub002/internal/domain/dto"
	"github.com/ArtLegends/medtravel-main-sub002/internal/domain/entity"
	"github.com/ArtLegends/medtravel-main-sub002/internal/domain/model"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockCodeRegistry is a mock implementation of CodeRegistry
type MockCodeRegistry struct {
	mock.Mock
}

func (m *MockCodeRegistry) Resolve(ctx context.Context, code string) (*entity.ResolvedCode, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.ResolvedCode), args.Error(1)
}

// MockClickRepository is a mock implementation of ClickRepository
type MockClickRepository struct {
	mock.Mock
}

func (m *MockClickRepository) Append(ctx context.Context, click *model.ReferralClick) error {
	args := m.Called(ctx, click)
	return args.Error(0)
}

func (m *MockClickRepository) ListByOwner(ctx context.Context, filters dto.ClickFilters) ([]*model.ReferralClick, int64, error) {
	args := m.Called(ctx, filters)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*model.ReferralClick), args.Get(1).(int64), args.Error(2)
}

// MockAttachmentRepository is a mock implementation of AttachmentRepository
type MockAttachmentRepository struct {
	mock.Mock
}

func (m *MockAttachmentRepository) CreateIfAbsent(ctx context.Context, attachment *model.ReferralAttachment) (*model.ReferralAttachment, bool, error) {
	args := m.Called(ctx, attachment)
	if args.Get(0) == nil {
		return nil, args.Bool(1), args.Error(2)
	}
	return args.Get(0).(*model.ReferralAttachment), args.Bool(1), args.Error(2)
}

func (m *MockAttachmentRepository) GetByPatient(ctx context.Context, patientPrincipalID string) (*model.ReferralAttachment, error) {
	args := m.Called(ctx, patientPrincipalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ReferralAttachment), args.Error(1)
}

// MockConversionRepository is a mock implementation of ConversionRepository
type MockConversionRepository struct {
	mock.Mock
}

func (m *MockConversionRepository) GetByPatient(ctx context.Context, patientPrincipalID string) (*model.ReferralConversion, error) {
	args := m.Called(ctx, patientPrincipalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ReferralConversion), args.Error(1)
}

func (m *MockConversionRepository) CompareAndSetStatus(ctx context.Context, id int64, from model.ConversionStatus, decision *model.ReferralConversion) (bool, error) {
	args := m.Called(ctx, id, from, decision)
	return args.Bool(0), args.Error(1)
}

// MockLeadRepository is a mock implementation of LeadRepository
type MockLeadRepository struct {
	mock.Mock
}

func (m *MockLeadRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Lead, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Lead), args.Error(1)
}

func (m *MockLeadRepository) BindPrincipal(ctx context.Context, id uuid.UUID, principalID string, contact entity.ContactFields) (bool, error) {
	args := m.Called(ctx, id, principalID, contact)
	return args.Bool(0), args.Error(1)
}

func (m *MockLeadRepository) List(ctx context.Context, filters dto.LeadFilters) ([]*model.Lead, int64, error) {
	args := m.Called(ctx, filters)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*model.Lead), args.Get(1).(int64), args.Error(2)
}

// MockPrincipalRepository is a mock implementation of PrincipalRepository
type MockPrincipalRepository struct {
	mock.Mock
}

func (m *MockPrincipalRepository) EnsureBaseline(ctx context.Context, profile *model.Profile, role model.Role) error {
	args := m.Called(ctx, profile, role)
	return args.Error(0)
}

func (m *MockPrincipalRepository) GetRoles(ctx context.Context, principalID string) ([]model.Role, error) {
	args := m.Called(ctx, principalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Role), args.Error(1)
}

func (m *MockPrincipalRepository) GetProfile(ctx context.Context, principalID string) (*model.Profile, error) {
	args := m.Called(ctx, principalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Profile), args.Error(1)
}

// MockPublisher is a mock implementation of messaging.Publisher
type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) Publish(ctx context.Context, channel string, message interface{}) error {
	args := m.Called(ctx, channel, message)
	return args.Error(0)
}

// MockMailer is a mock implementation of Mailer
type MockMailer struct {
	mock.Mock
}

func (m *MockMailer) Send(ctx context.Context, to, subject, body string) error {
	args := m.Called(ctx, to, subject, body)
	return args.Error(0)
}

// MockAttachmentNotifier is a mock implementation of AttachmentNotifier
type MockAttachmentNotifier struct {
	mock.Mock
}

func (m *MockAttachmentNotifier) AttachmentCreated(ctx context.Context, attachment *model.ReferralAttachment) error {
	args := m.Called(ctx, attachment)
	return args.Error(0)
}
