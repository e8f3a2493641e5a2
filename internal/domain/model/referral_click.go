package model

import (
	"time"

	"gorm.io/datatypes"
)

// ReferralClick is an append-only click event. IPHash never holds a raw address.
type ReferralClick struct {
	ID               int64             `gorm:"primaryKey;autoIncrement" json:"id"`
	Code             string            `gorm:"size:64;not null;index" json:"code"`
	OwnerPrincipalID string            `gorm:"size:64;not null;index" json:"owner_principal_id"`
	ProgramKey       string            `gorm:"size:64;not null" json:"program_key"`
	IPHash           string            `gorm:"size:64;not null" json:"ip_hash"`
	UserAgent        string            `gorm:"type:text" json:"user_agent"`
	CountryCode      *string           `gorm:"size:2" json:"country_code,omitempty"`
	Landing          datatypes.JSONMap `json:"landing,omitempty"`
	CreatedAt        time.Time         `gorm:"index" json:"created_at"`
}

// TableName specifies the table name for GORM
func (ReferralClick) TableName() string {
	return "referral_clicks"
}
