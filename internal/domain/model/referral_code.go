package model

import (
	"database/sql/driver"
	"strings"
	"time"

	"gorm.io/gorm"
)

// ApprovalStatus represents the moderation state of a referral code
type ApprovalStatus string

const (
	ApprovalStatusPending  ApprovalStatus = "pending"
	ApprovalStatusApproved ApprovalStatus = "approved"
	ApprovalStatusRejected ApprovalStatus = "rejected"
)

// Scan implements sql.Scanner interface
func (s *ApprovalStatus) Scan(src interface{}) error {
	switch v := src.(type) {
	case string:
		*s = ApprovalStatus(v)
	case []byte:
		*s = ApprovalStatus(v)
	default:
		*s = ApprovalStatusPending
	}
	return nil
}

// Value implements driver.Valuer interface
func (s ApprovalStatus) Value() (driver.Value, error) {
	return string(s), nil
}

// ReferralCode is a partner's enrollment in a program. The attribution core only reads it.
type ReferralCode struct {
	ID               int64          `gorm:"primaryKey;autoIncrement" json:"id"`
	Code             string         `gorm:"size:64;not null;uniqueIndex" json:"code"`
	OwnerPrincipalID string         `gorm:"size:64;not null;uniqueIndex:idx_referral_codes_owner_program" json:"owner_principal_id"`
	ProgramKey       string         `gorm:"size:64;not null;uniqueIndex:idx_referral_codes_owner_program" json:"program_key"`
	Status           ApprovalStatus `gorm:"size:16;not null;default:'pending'" json:"status"`
	CreatedAt        time.Time      `json:"created_at"`
	ApprovedAt       *time.Time     `json:"approved_at,omitempty"`
}

// TableName specifies the table name for GORM
func (ReferralCode) TableName() string {
	return "referral_codes"
}

// BeforeSave keeps stored codes in their canonical uppercase form
func (c *ReferralCode) BeforeSave(tx *gorm.DB) error {
	c.Code = strings.ToUpper(strings.TrimSpace(c.Code))
	return nil
}
