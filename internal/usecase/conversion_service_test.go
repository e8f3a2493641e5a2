package usecase

import (
	"context"
	"errors"
	"testing"

	domainErrors "github.com/ArtLegends/medtravel-main-sub002/internal/domain/errors"
	"github.com/ArtLegends/medtravel-main-sub002/internal/domain/entity"
	"github.com/ArtLegends/medtravel-main-sub002/internal/domain/model"
	apperrors "github.com/ArtLegends/medtravel-main-sub002/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func conversionIn(status model.ConversionStatus) *model.ReferralConversion {
	return &model.ReferralConversion{ID: 1, AttachmentID: 10, PatientPrincipalID: "p-42", Status: status}
}

func TestConversionService_TransitionTable(t *testing.T) {
	tests := []struct {
		from, to  model.ConversionStatus
		wantErr   error
		unchanged bool
	}{
		{from: model.ConversionStatusPending, to: model.ConversionStatusConfirmed},
		{from: model.ConversionStatusPending, to: model.ConversionStatusRejected},
		{from: model.ConversionStatusPending, to: model.ConversionStatusPending, wantErr: domainErrors.ErrIllegalTransition},
		{from: model.ConversionStatusConfirmed, to: model.ConversionStatusPending, wantErr: domainErrors.ErrIllegalTransition},
		{from: model.ConversionStatusRejected, to: model.ConversionStatusPending, wantErr: domainErrors.ErrIllegalTransition},
		{from: model.ConversionStatusConfirmed, to: model.ConversionStatusRejected, wantErr: domainErrors.ErrIllegalTransition},
		{from: model.ConversionStatusRejected, to: model.ConversionStatusConfirmed, wantErr: domainErrors.ErrIllegalTransition},
		{from: model.ConversionStatusConfirmed, to: model.ConversionStatusConfirmed, unchanged: true},
		{from: model.ConversionStatusRejected, to: model.ConversionStatusRejected, unchanged: true},
	}

	for _, tt := range tests {
		t.Run(string(tt.from)+"->"+string(tt.to), func(t *testing.T) {
			store := newFakeConversionStore(conversionIn(tt.from))
			svc := NewConversionService(store, nil, nil, zap.NewNop())

			result, err := svc.Transition(context.Background(), entity.ConversionInput{PatientPrincipalID: "p-42", Target: tt.to})

			stored, _ := store.GetByPatient(context.Background(), "p-42")
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Equal(t, apperrors.ErrConflict, apperrors.CodeOf(err))
				assert.Equal(t, tt.from, stored.Status, "failed transition must not change the record")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.unchanged, result.Unchanged)
			assert.Equal(t, tt.to, stored.Status)
		})
	}
}

func TestConversionService_ConfirmWithValue(t *testing.T) {
	store := newFakeConversionStore(conversionIn(model.ConversionStatusPending))
	svc := NewConversionService(store, nil, nil, zap.NewNop())

	value := decimal.RequireFromString("4250.005")
	result, err := svc.Transition(context.Background(), entity.ConversionInput{
		PatientPrincipalID: "p-42",
		Target:             model.ConversionStatusConfirmed,
		Value:              &value,
		Currency:           "eur",
		Reason:             "treatment completed",
		ActorPrincipalID:   "clinic-3",
	})
	require.NoError(t, err)

	c := result.Conversion
	assert.True(t, c.Value.Valid)
	assert.Equal(t, "4250.01", c.Value.Decimal.StringFixed(2))
	assert.Equal(t, "EUR", *c.Currency)
	assert.Equal(t, "clinic-3", *c.DecidedBy)
	assert.NotNil(t, c.DecidedAt)

	// a repeated confirmation keeps the first decision
	other := decimal.NewFromInt(1)
	again, err := svc.Transition(context.Background(), entity.ConversionInput{
		PatientPrincipalID: "p-42", Target: model.ConversionStatusConfirmed, Value: &other, Currency: "USD",
	})
	require.NoError(t, err)
	assert.True(t, again.Unchanged)
	assert.Equal(t, "EUR", *again.Conversion.Currency)
}

func TestConversionService_Validation(t *testing.T) {
	svc := NewConversionService(newFakeConversionStore(conversionIn(model.ConversionStatusPending)), nil, nil, zap.NewNop())
	negative := decimal.NewFromInt(-5)
	positive := decimal.NewFromInt(5)

	tests := []struct {
		name string
		in   entity.ConversionInput
	}{
		{"missing principal", entity.ConversionInput{Target: model.ConversionStatusConfirmed}},
		{"unknown status", entity.ConversionInput{PatientPrincipalID: "p-42", Target: "paid"}},
		{"negative value", entity.ConversionInput{PatientPrincipalID: "p-42", Target: model.ConversionStatusConfirmed, Value: &negative, Currency: "EUR"}},
		{"value on rejection", entity.ConversionInput{PatientPrincipalID: "p-42", Target: model.ConversionStatusRejected, Value: &positive, Currency: "EUR"}},
		{"value without currency", entity.ConversionInput{PatientPrincipalID: "p-42", Target: model.ConversionStatusConfirmed, Value: &positive}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Transition(context.Background(), tt.in)
			assert.Equal(t, apperrors.ErrInvalidArgument, apperrors.CodeOf(err))
		})
	}
}

func TestConversionService_LostCompareAndSet(t *testing.T) {
	repo := new(MockConversionRepository)
	repo.On("GetByPatient", mock.Anything, "p-42").Return(conversionIn(model.ConversionStatusPending), nil).Once()
	repo.On("CompareAndSetStatus", mock.Anything, int64(1), model.ConversionStatusPending, mock.Anything).Return(false, nil).Once()
	repo.On("GetByPatient", mock.Anything, "p-42").Return(conversionIn(model.ConversionStatusRejected), nil).Once()

	svc := NewConversionService(repo, nil, nil, zap.NewNop())
	_, err := svc.Transition(context.Background(), entity.ConversionInput{PatientPrincipalID: "p-42", Target: model.ConversionStatusConfirmed})

	assert.ErrorIs(t, err, domainErrors.ErrIllegalTransition)
	repo.AssertExpectations(t)
}

func TestConversionService_Errors(t *testing.T) {
	repo := new(MockConversionRepository)
	repo.On("GetByPatient", mock.Anything, "p-missing").Return(nil, domainErrors.ErrAttachmentNotFound)
	repo.On("GetByPatient", mock.Anything, "p-42").Return(conversionIn(model.ConversionStatusPending), nil)
	repo.On("CompareAndSetStatus", mock.Anything, int64(1), model.ConversionStatusPending, mock.Anything).
		Return(false, domainErrors.NewStorageError("update conversion", errors.New("timeout")))

	svc := NewConversionService(repo, nil, nil, zap.NewNop())

	_, err := svc.Transition(context.Background(), entity.ConversionInput{PatientPrincipalID: "p-missing", Target: model.ConversionStatusConfirmed})
	assert.ErrorIs(t, err, domainErrors.ErrAttachmentNotFound)

	_, err = svc.Transition(context.Background(), entity.ConversionInput{PatientPrincipalID: "p-42", Target: model.ConversionStatusConfirmed})
	assert.True(t, domainErrors.IsStorageUnavailable(err))
}
