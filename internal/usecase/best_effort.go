package usecase

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
)

// SideEffectReport describes a failed best-effort step.
type SideEffectReport struct {
	Name     string
	Err      error
	Duration time.Duration
	At       time.Time
}

// BestEffort runs named side effects (events, partner emails) whose failure must
// never fail the primary operation. Each step runs synchronously on a context
// detached from request cancellation and bounded by timeout. Failures are logged
// and delivered on Reports without blocking; when the buffer is full the report
// is dropped.
type BestEffort struct {
	logger  *zap.Logger
	timeout time.Duration
	reports chan SideEffectReport
}

// NewBestEffort creates a runner. buffer is the capacity of the report channel.
func NewBestEffort(logger *zap.Logger, timeout time.Duration, buffer int) *BestEffort {
	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	if buffer < 0 {
		buffer = 0
	}
	return &BestEffort{
		logger:  logger,
		timeout: timeout,
		reports: make(chan SideEffectReport, buffer),
	}
}

// Reports returns the failure report channel
func (b *BestEffort) Reports() <-chan SideEffectReport {
	return b.reports
}

// Run executes fn and swallows its error. It reports whether fn succeeded.
func (b *BestEffort) Run(ctx context.Context, name string, fn func(ctx context.Context) error) bool {
	if b == nil || fn == nil {
		return false
	}

	stepCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), b.timeout)
	defer cancel()

	start := time.Now()
	err := b.call(stepCtx, fn)
	if err == nil {
		return true
	}

	report := SideEffectReport{Name: name, Err: err, Duration: time.Since(start), At: start}
	b.logger.Warn("Side effect failed",
		zap.String("side_effect", name),
		zap.Duration("duration", report.Duration),
		zap.Error(err))

	select {
	case b.reports <- report:
	default:
		b.logger.Debug("Side effect report dropped", zap.String("side_effect", name))
	}
	return false
}

func (b *BestEffort) call(ctx context.Context, fn func(ctx context.Context) error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	return fn(ctx)
}
