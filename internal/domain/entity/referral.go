package entity

import (
	"net/http"
	"strings"
)

// Code policy
const (
	DefaultMinCodeLength = 6
	MaxCodeLength        = 64
)

// NormalizeCode trims surrounding whitespace and uppercases the code.
func NormalizeCode(raw string) string {
	return strings.ToUpper(strings.TrimSpace(raw))
}

// IsWellFormedCode reports whether an already-normalized code satisfies the
// length policy and uses only A-Z, 0-9, '-' and '_'.
func IsWellFormedCode(code string, minLength int) bool {
	if minLength < 1 {
		minLength = DefaultMinCodeLength
	}
	if len(code) < minLength || len(code) > MaxCodeLength {
		return false
	}
	for i := 0; i < len(code); i++ {
		c := code[i]
		switch {
		case c >= 'A' && c <= 'Z', c >= '0' && c <= '9', c == '-', c == '_':
		default:
			return false
		}
	}
	return true
}

// ResolvedCode is the owner/program a referral code maps to.
type ResolvedCode struct {
	Code             string `json:"code"`
	OwnerPrincipalID string `json:"owner_principal_id"`
	ProgramKey       string `json:"program_key"`
}

// RequestMeta is what the click recorder needs from the inbound request.
type RequestMeta struct {
	ClientIP  string
	UserAgent string
	Referer   string
	Path      string
	Locale    string
	Campaign  string
}

// ClickOutcome describes why a click was or was not accepted.
type ClickOutcome string

const (
	ClickOutcomeAccepted            ClickOutcome = "accepted"
	ClickOutcomeRejectedInput       ClickOutcome = "rejected_input"
	ClickOutcomeNotFound            ClickOutcome = "not_found"
	ClickOutcomeRegistryUnavailable ClickOutcome = "registry_unavailable"
)

// ClickResult is returned by RecordClick. Cookie is set when Accepted, and on a
// registry outage for a well-formed code.
type ClickResult struct {
	Accepted bool
	Outcome  ClickOutcome
	Resolved *ResolvedCode
	// Recorded is false when the click append failed; the cookie is still issued.
	Recorded bool
	ClickID  int64
	Cookie   *http.Cookie
}

// BindInput is the signup/login hook payload.
type BindInput struct {
	PatientPrincipalID string
	ExplicitCode       string
	CookieCode         string
}

// BindResult reports what bindOnAuth did.
type BindResult struct {
	Attached bool `json:"attached"`
	// AlreadyAttached is set when an earlier attachment for the principal exists.
	AlreadyAttached bool          `json:"already_attached"`
	Code            string        `json:"code,omitempty"`
	ClearCookie     bool          `json:"-"`
	Resolved        *ResolvedCode `json:"-"`
}
