package model

import "time"

// Role is a principal's role in the marketplace
type Role string

const (
	RoleAdmin    Role = "admin"
	RoleCustomer Role = "customer"
	RolePartner  Role = "partner"
	RolePatient  Role = "patient"
)

// Profile is the baseline record every principal has
type Profile struct {
	PrincipalID string    `gorm:"size:64;primaryKey" json:"principal_id"`
	FullName    string    `gorm:"size:200" json:"full_name"`
	Phone       string    `gorm:"size:40" json:"phone"`
	Email       string    `gorm:"size:320" json:"email"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// TableName specifies the table name for GORM
func (Profile) TableName() string {
	return "profiles"
}

// PrincipalRole grants a role to a principal
type PrincipalRole struct {
	ID          int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	PrincipalID string    `gorm:"size:64;not null;uniqueIndex:idx_principal_roles_principal_role" json:"principal_id"`
	Role        Role      `gorm:"size:16;not null;uniqueIndex:idx_principal_roles_principal_role" json:"role"`
	CreatedAt   time.Time `json:"created_at"`
}

// TableName specifies the table name for GORM
func (PrincipalRole) TableName() string {
	return "principal_roles"
}
