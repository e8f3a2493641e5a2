package model

import (
	"database/sql/driver"
	"time"

	"github.com/google/uuid"
)

// LeadStatus represents the intake pipeline state of a lead
type LeadStatus string

const (
	LeadStatusNew       LeadStatus = "new"
	LeadStatusContacted LeadStatus = "contacted"
	LeadStatusConverted LeadStatus = "converted"
	LeadStatusClosed    LeadStatus = "closed"
)

// Scan implements sql.Scanner interface
func (s *LeadStatus) Scan(src interface{}) error {
	switch v := src.(type) {
	case string:
		*s = LeadStatus(v)
	case []byte:
		*s = LeadStatus(v)
	default:
		*s = LeadStatusNew
	}
	return nil
}

// Value implements driver.Valuer interface
func (s LeadStatus) Value() (driver.Value, error) {
	return string(s), nil
}

// Lead is a pre-authentication record of interest. PatientPrincipalID goes
// from nil to set exactly once and is never reassigned.
type Lead struct {
	ID                       uuid.UUID  `gorm:"type:varchar(36);primaryKey" json:"id"`
	FullName                 string     `gorm:"size:200" json:"full_name"`
	Email                    string     `gorm:"size:320" json:"email"`
	Phone                    string     `gorm:"size:40" json:"phone"`
	ClinicID                 *string    `gorm:"size:64" json:"clinic_id,omitempty"`
	AssignedOwnerPrincipalID *string    `gorm:"size:64;index" json:"assigned_owner_principal_id,omitempty"`
	Status                   LeadStatus `gorm:"size:16;not null;default:'new'" json:"status"`
	PatientPrincipalID       *string    `gorm:"size:64;index" json:"patient_principal_id,omitempty"`
	ReconciledAt             *time.Time `json:"reconciled_at,omitempty"`
	CreatedAt                time.Time  `json:"created_at"`
	UpdatedAt                time.Time  `json:"updated_at"`
}

// TableName specifies the table name for GORM
func (Lead) TableName() string {
	return "leads"
}

// BoundTo reports whether the lead is already bound to principalID
func (l *Lead) BoundTo(principalID string) bool {
	return l.PatientPrincipalID != nil && *l.PatientPrincipalID == principalID
}
