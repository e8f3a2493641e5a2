package model

import "time"

// AttachmentSource records where the bound code came from
type AttachmentSource string

const (
	AttachmentSourceExplicit AttachmentSource = "explicit"
	AttachmentSourceCookie   AttachmentSource = "cookie"
)

// ReferralAttachment links a patient principal to the referral that brought them.
// At most one row exists per patient; rows are never updated.
type ReferralAttachment struct {
	ID                 int64            `gorm:"primaryKey;autoIncrement" json:"id"`
	PatientPrincipalID string           `gorm:"size:64;not null;uniqueIndex" json:"patient_principal_id"`
	Code               string           `gorm:"size:64;not null;index" json:"code"`
	OwnerPrincipalID   string           `gorm:"size:64;not null;index" json:"owner_principal_id"`
	ProgramKey         string           `gorm:"size:64;not null" json:"program_key"`
	Source             AttachmentSource `gorm:"size:16;not null" json:"source"`
	CreatedAt          time.Time        `json:"created_at"`
}

// TableName specifies the table name for GORM
func (ReferralAttachment) TableName() string {
	return "referral_attachments"
}
