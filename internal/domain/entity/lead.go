package entity

import (
	"strings"

	"github.com/google/uuid"
)

// ContactFields are corrected contact details captured at signup.
// Empty fields leave the stored value unchanged.
type ContactFields struct {
	FullName string
	Phone    string
	Email    string
}

// Trimmed returns a copy with surrounding whitespace removed
func (f ContactFields) Trimmed() ContactFields {
	return ContactFields{
		FullName: strings.TrimSpace(f.FullName),
		Phone:    strings.TrimSpace(f.Phone),
		Email:    strings.TrimSpace(f.Email),
	}
}

// Updates returns the non-empty fields as a column map
func (f ContactFields) Updates() map[string]interface{} {
	out := make(map[string]interface{}, 3)
	if f.FullName != "" {
		out["full_name"] = f.FullName
	}
	if f.Phone != "" {
		out["phone"] = f.Phone
	}
	if f.Email != "" {
		out["email"] = f.Email
	}
	return out
}

// ReconcileInput binds an anonymous lead to an authenticated principal.
type ReconcileInput struct {
	LeadID             uuid.UUID
	PatientPrincipalID string
	Contact            ContactFields
}

// ReconcileResult reports the outcome of a reconciliation.
type ReconcileResult struct {
	OK                       bool      `json:"ok"`
	LeadID                   uuid.UUID `json:"lead_id"`
	AlreadyBound             bool      `json:"already_bound"`
	AssignedOwnerPrincipalID *string   `json:"assigned_owner_principal_id,omitempty"`
}
