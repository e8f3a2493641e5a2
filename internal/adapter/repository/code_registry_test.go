package repository

import (
	"context"
	"testing"
	"time"

	domainErrors "github.com/ArtLegends/medtravel-main-sub002/internal/domain/errors"
	"github.com/ArtLegends/medtravel-main-sub002/internal/domain/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestCodeRegistry_Resolve(t *testing.T) {
	db := newTestDB(t)
	now := time.Now()
	codes := []model.ReferralCode{
		{Code: "ABC1234", OwnerPrincipalID: "partner-1", ProgramKey: "patient", Status: model.ApprovalStatusApproved, ApprovedAt: &now},
		{Code: "PEND001", OwnerPrincipalID: "partner-2", ProgramKey: "patient", Status: model.ApprovalStatusPending},
		{Code: "REJ0001", OwnerPrincipalID: "partner-3", ProgramKey: "patient", Status: model.ApprovalStatusRejected},
	}
	require.NoError(t, db.Create(&codes).Error)

	registry := NewCodeRegistry(db, zap.NewNop())

	resolved, err := registry.Resolve(context.Background(), "  abc1234 ")
	require.NoError(t, err)
	assert.Equal(t, "ABC1234", resolved.Code)
	assert.Equal(t, "partner-1", resolved.OwnerPrincipalID)
	assert.Equal(t, "patient", resolved.ProgramKey)

	for _, code := range []string{"PEND001", "REJ0001", "NOPE999", ""} {
		_, err := registry.Resolve(context.Background(), code)
		assert.ErrorIs(t, err, domainErrors.ErrCodeNotFound, code)
	}
}

func TestCodeRegistry_StoredCodesAreCanonical(t *testing.T) {
	db := newTestDB(t)
	now := time.Now()
	row := model.ReferralCode{Code: " xyz7777 ", OwnerPrincipalID: "partner-9", ProgramKey: "patient", Status: model.ApprovalStatusApproved, ApprovedAt: &now}
	require.NoError(t, db.Create(&row).Error)

	var stored model.ReferralCode
	require.NoError(t, db.First(&stored, row.ID).Error)
	assert.Equal(t, "XYZ7777", stored.Code)

	resolved, err := NewCodeRegistry(db, zap.NewNop()).Resolve(context.Background(), "xyz7777")
	require.NoError(t, err)
	assert.Equal(t, "partner-9", resolved.OwnerPrincipalID)
}

func TestCodeRegistry_StorageUnavailable(t *testing.T) {
	db := newTestDB(t)
	registry := NewCodeRegistry(db, zap.NewNop())
	closeDB(t, db)

	_, err := registry.Resolve(context.Background(), "ABC1234")
	assert.True(t, domainErrors.IsStorageUnavailable(err))
}
