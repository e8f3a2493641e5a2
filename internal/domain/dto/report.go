package dto

import "time"

// ClickDTO is a click as shown to its owning partner. The IP hash is not exposed.
type ClickDTO struct {
	ID          int64             `json:"id"`
	Code        string            `json:"code"`
	ProgramKey  string            `json:"program_key"`
	CountryCode string            `json:"country_code,omitempty"`
	Landing     map[string]string `json:"landing,omitempty"`
	CreatedAt   time.Time         `json:"created_at"`
}

// LeadDTO is a lead row in the admin list
type LeadDTO struct {
	ID                       string     `json:"id"`
	FullName                 string     `json:"full_name"`
	Email                    string     `json:"email"`
	Phone                    string     `json:"phone"`
	Status                   string     `json:"status"`
	AssignedOwnerPrincipalID string     `json:"assigned_owner_principal_id,omitempty"`
	PatientPrincipalID       string     `json:"patient_principal_id,omitempty"`
	ReconciledAt             *time.Time `json:"reconciled_at,omitempty"`
	CreatedAt                time.Time  `json:"created_at"`
}

// PaginationInfo contains pagination metadata
type PaginationInfo struct {
	Total   int64 `json:"total"`
	Limit   int   `json:"limit"`
	Offset  int   `json:"offset"`
	HasMore bool  `json:"has_more"`
}

// ClickListResponse represents the paginated click report
type ClickListResponse struct {
	Clicks     []ClickDTO     `json:"clicks"`
	Pagination PaginationInfo `json:"pagination"`
}

// LeadListResponse represents the paginated admin lead list
type LeadListResponse struct {
	Leads      []LeadDTO      `json:"leads"`
	Pagination PaginationInfo `json:"pagination"`
}
