package mail

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/ArtLegends/medtravel-main-sub002/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gopkg.in/gomail.v2"
)

func TestSMTPMailer_Send(t *testing.T) {
	var gotFrom string
	var gotTo []string
	var raw bytes.Buffer

	mailer := newSMTPMailer("referrals@medtravel.test", gomail.SendFunc(func(from string, to []string, msg io.WriterTo) error {
		gotFrom, gotTo = from, to
		_, err := msg.WriteTo(&raw)
		return err
	}), zap.NewNop())

	err := mailer.Send(context.Background(), "partner@example.com", "New referral", "A patient signed up with PARTNER01.")
	require.NoError(t, err)

	assert.Equal(t, "referrals@medtravel.test", gotFrom)
	assert.Equal(t, []string{"partner@example.com"}, gotTo)
	assert.Contains(t, raw.String(), "Subject: New referral")
	assert.Contains(t, raw.String(), "A patient signed up with PARTNER01.")
}

func TestSMTPMailer_SendError(t *testing.T) {
	mailer := newSMTPMailer("referrals@medtravel.test", gomail.SendFunc(func(string, []string, io.WriterTo) error {
		return errors.New("relay denied")
	}), zap.NewNop())

	err := mailer.Send(context.Background(), "partner@example.com", "s", "b")
	assert.ErrorContains(t, err, "relay denied")
}

func TestSMTPMailer_ContextBounds(t *testing.T) {
	release := make(chan struct{})
	defer close(release)

	mailer := newSMTPMailer("referrals@medtravel.test", gomail.SendFunc(func(string, []string, io.WriterTo) error {
		<-release
		return nil
	}), zap.NewNop())

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	assert.ErrorIs(t, mailer.Send(ctx, "partner@example.com", "s", "b"), context.DeadlineExceeded)

	canceled, cancelNow := context.WithCancel(context.Background())
	cancelNow()
	assert.ErrorIs(t, mailer.Send(canceled, "partner@example.com", "s", "b"), context.Canceled)
}

func TestNewSMTPMailer_Unreachable(t *testing.T) {
	mailer := NewSMTPMailer(config.MailConfig{
		SenderEmail: "referrals@medtravel.test",
		SMTPHost:    "127.0.0.1",
		SMTPPort:    1,
	}, zap.NewNop())

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	assert.Error(t, mailer.Send(ctx, "partner@example.com", "s", "b"))
}
