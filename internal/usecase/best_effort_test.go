package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestBestEffort_ReportsFailures(t *testing.T) {
	b := NewBestEffort(zap.NewNop(), time.Second, 2)

	ok := b.Run(context.Background(), "notify_partner", func(ctx context.Context) error {
		return errors.New("smtp: connection refused")
	})
	assert.False(t, ok)

	select {
	case r := <-b.Reports():
		assert.Equal(t, "notify_partner", r.Name)
		assert.EqualError(t, r.Err, "smtp: connection refused")
	default:
		t.Fatal("expected a report")
	}

	assert.True(t, b.Run(context.Background(), "publish", func(ctx context.Context) error { return nil }))
	assert.Len(t, b.Reports(), 0)
}

func TestBestEffort_DetachedFromCancellation(t *testing.T) {
	b := NewBestEffort(zap.NewNop(), time.Second, 1)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	ok := b.Run(ctx, "publish", func(ctx context.Context) error {
		return ctx.Err()
	})
	assert.True(t, ok, "a cancelled request must not cancel the side effect")
}

func TestBestEffort_TimeoutAndPanic(t *testing.T) {
	b := NewBestEffort(zap.NewNop(), 20*time.Millisecond, 0)

	ok := b.Run(context.Background(), "slow", func(ctx context.Context) error {
		<-ctx.Done()
		return ctx.Err()
	})
	assert.False(t, ok)

	require.NotPanics(t, func() {
		ok = b.Run(context.Background(), "panics", func(ctx context.Context) error {
			panic("boom")
		})
	})
	assert.False(t, ok)
}
