package model

import (
	"database/sql/driver"
	"time"

	"github.com/shopspring/decimal"
)

// ConversionStatus represents the payout lifecycle of an attachment
type ConversionStatus string

const (
	ConversionStatusPending   ConversionStatus = "pending"
	ConversionStatusConfirmed ConversionStatus = "confirmed"
	ConversionStatusRejected  ConversionStatus = "rejected"
)

// Scan implements sql.Scanner interface
func (s *ConversionStatus) Scan(src interface{}) error {
	switch v := src.(type) {
	case string:
		*s = ConversionStatus(v)
	case []byte:
		*s = ConversionStatus(v)
	default:
		*s = ConversionStatusPending
	}
	return nil
}

// Value implements driver.Valuer interface
func (s ConversionStatus) Value() (driver.Value, error) {
	return string(s), nil
}

// IsValid reports whether s is a known status
func (s ConversionStatus) IsValid() bool {
	switch s {
	case ConversionStatusPending, ConversionStatusConfirmed, ConversionStatusRejected:
		return true
	}
	return false
}

// IsTerminal reports whether no transition may leave s
func (s ConversionStatus) IsTerminal() bool {
	return s == ConversionStatusConfirmed || s == ConversionStatusRejected
}

// CanTransition reports whether moving from s to next is a legal forward step.
// Only pending -> confirmed and pending -> rejected are legal.
func (s ConversionStatus) CanTransition(next ConversionStatus) bool {
	return s == ConversionStatusPending && next.IsTerminal()
}

// ReferralConversion holds the conversion status of an attachment as a separate
// record so the attachment row itself stays immutable.
type ReferralConversion struct {
	ID                 int64               `gorm:"primaryKey;autoIncrement" json:"id"`
	AttachmentID       int64               `gorm:"not null;uniqueIndex" json:"attachment_id"`
	PatientPrincipalID string              `gorm:"size:64;not null;uniqueIndex" json:"patient_principal_id"`
	Status             ConversionStatus    `gorm:"size:16;not null;default:'pending'" json:"status"`
	Value              decimal.NullDecimal `gorm:"type:decimal(14,2)" json:"value"`
	Currency           *string             `gorm:"size:3" json:"currency,omitempty"`
	Reason             *string             `gorm:"type:text" json:"reason,omitempty"`
	DecidedBy          *string             `gorm:"size:64" json:"decided_by,omitempty"`
	CreatedAt          time.Time           `json:"created_at"`
	DecidedAt          *time.Time          `json:"decided_at,omitempty"`
}

// TableName specifies the table name for GORM
func (ReferralConversion) TableName() string {
	return "referral_conversions"
}
