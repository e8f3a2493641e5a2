package errors

import (
	"errors"
	"fmt"
	"testing"

	apperrors "github.com/ArtLegends/medtravel-main-sub002/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func TestIllegalTransitionError(t *testing.T) {
	err := NewIllegalTransitionError("confirmed", "pending")

	assert.True(t, errors.Is(err, ErrIllegalTransition))
	assert.Equal(t, apperrors.ErrConflict, apperrors.CodeOf(err))
	assert.Contains(t, err.Error(), "confirmed -> pending")
}

func TestStorageError(t *testing.T) {
	err := fmt.Errorf("append click: %w", NewStorageError("append click", errors.New("dial tcp: refused")))

	assert.True(t, IsStorageUnavailable(err))
	assert.False(t, IsNotFound(err))
	assert.True(t, IsNotFound(ErrCodeNotFound))
}
