package dto

import (
	"strings"
	"time"

	"github.com/ArtLegends/medtravel-main-sub002/internal/domain/model"
)

// Predicate is one SQL condition with its bound arguments.
type Predicate struct {
	Expr string
	Args []interface{}
}

// Predicates is an ordered, AND-joined predicate list.
type Predicates []Predicate

func (p Predicates) add(expr string, args ...interface{}) Predicates {
	return append(p, Predicate{Expr: expr, Args: args})
}

// ClickFilters constrains a partner's click report. OwnerPrincipalID is always set
// by the handler from the authenticated principal.
type ClickFilters struct {
	OwnerPrincipalID string
	Code             *string
	ProgramKey       *string
	CountryCode      *string
	From             *time.Time
	To               *time.Time
	Limit            int
	Offset           int
}

// SetDefaults sets default values for pagination
func (f *ClickFilters) SetDefaults() {
	if f.Limit <= 0 {
		f.Limit = 20
	}
	if f.Limit > 100 {
		f.Limit = 100
	}
	if f.Offset < 0 {
		f.Offset = 0
	}
}

// Predicates composes the filter into a predicate list
func (f ClickFilters) Predicates() Predicates {
	p := Predicates{}.add("owner_principal_id = ?", f.OwnerPrincipalID)
	if f.Code != nil {
		p = p.add("code = ?", strings.ToUpper(strings.TrimSpace(*f.Code)))
	}
	if f.ProgramKey != nil {
		p = p.add("program_key = ?", *f.ProgramKey)
	}
	if f.CountryCode != nil {
		p = p.add("country_code = ?", strings.ToUpper(*f.CountryCode))
	}
	if f.From != nil {
		p = p.add("created_at >= ?", *f.From)
	}
	if f.To != nil {
		p = p.add("created_at < ?", *f.To)
	}
	return p
}

// LeadFilters constrains the admin lead list
type LeadFilters struct {
	Status                   *model.LeadStatus
	AssignedOwnerPrincipalID *string
	Reconciled               *bool
	Email                    *string
	From                     *time.Time
	To                       *time.Time
	Limit                    int
	Offset                   int
}

// SetDefaults sets default values for pagination
func (f *LeadFilters) SetDefaults() {
	if f.Limit <= 0 {
		f.Limit = 20
	}
	if f.Limit > 100 {
		f.Limit = 100
	}
	if f.Offset < 0 {
		f.Offset = 0
	}
}

// Predicates composes the filter into a predicate list
func (f LeadFilters) Predicates() Predicates {
	var p Predicates
	if f.Status != nil {
		p = p.add("status = ?", string(*f.Status))
	}
	if f.AssignedOwnerPrincipalID != nil {
		p = p.add("assigned_owner_principal_id = ?", *f.AssignedOwnerPrincipalID)
	}
	if f.Reconciled != nil {
		if *f.Reconciled {
			p = p.add("patient_principal_id IS NOT NULL")
		} else {
			p = p.add("patient_principal_id IS NULL")
		}
	}
	if f.Email != nil {
		p = p.add("LOWER(email) = ?", strings.ToLower(strings.TrimSpace(*f.Email)))
	}
	if f.From != nil {
		p = p.add("created_at >= ?", *f.From)
	}
	if f.To != nil {
		p = p.add("created_at < ?", *f.To)
	}
	return p
}
