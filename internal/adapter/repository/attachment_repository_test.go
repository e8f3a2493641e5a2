package repository

import (
	"context"
	"fmt"
	"sync"
	"testing"

	domainErrors "github.com/ArtLegends/medtravel-main-sub002/internal/domain/errors"
	"github.com/ArtLegends/medtravel-main-sub002/internal/domain/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func attachmentFor(patient, code string) *model.ReferralAttachment {
	return &model.ReferralAttachment{
		PatientPrincipalID: patient,
		Code:               code,
		OwnerPrincipalID:   "partner-1",
		ProgramKey:         "patient",
		Source:             model.AttachmentSourceCookie,
	}
}

func TestAttachmentRepository_FirstAttributionWins(t *testing.T) {
	db := newTestDB(t)
	repo := NewAttachmentRepository(db, zap.NewNop())
	ctx := context.Background()

	first, created, err := repo.CreateIfAbsent(ctx, attachmentFor("p-42", "ABC1234"))
	require.NoError(t, err)
	assert.True(t, created)
	assert.NotZero(t, first.ID)

	second, created, err := repo.CreateIfAbsent(ctx, attachmentFor("p-42", "ZZZ9999"))
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, "ABC1234", second.Code)

	var conversions []model.ReferralConversion
	require.NoError(t, db.Find(&conversions).Error)
	require.Len(t, conversions, 1)
	assert.Equal(t, model.ConversionStatusPending, conversions[0].Status)
	assert.Equal(t, first.ID, conversions[0].AttachmentID)

	stored, err := repo.GetByPatient(ctx, "p-42")
	require.NoError(t, err)
	assert.Equal(t, "ABC1234", stored.Code)

	_, err = repo.GetByPatient(ctx, "p-unknown")
	assert.ErrorIs(t, err, domainErrors.ErrAttachmentNotFound)
}

func TestAttachmentRepository_ConcurrentCreate(t *testing.T) {
	db := newTestDB(t)
	repo := NewAttachmentRepository(db, zap.NewNop())

	const workers = 16
	var wg sync.WaitGroup
	var mu sync.Mutex
	createdCount := 0

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, created, err := repo.CreateIfAbsent(context.Background(), attachmentFor("p-7", fmt.Sprintf("CODE%04d", i)))
			assert.NoError(t, err)
			if created {
				mu.Lock()
				createdCount++
				mu.Unlock()
			}
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 1, createdCount)

	var attachments, conversions int64
	require.NoError(t, db.Model(&model.ReferralAttachment{}).Count(&attachments).Error)
	require.NoError(t, db.Model(&model.ReferralConversion{}).Count(&conversions).Error)
	assert.Equal(t, int64(1), attachments)
	assert.Equal(t, int64(1), conversions)
}
