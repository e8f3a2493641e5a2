package errors

import (
	"fmt"

	apperrors "github.com/ArtLegends/medtravel-main-sub002/pkg/errors"
)

// Referral attribution errors. Each carries a pkg/errors code so handlers can
// translate them with apperrors.ToHTTPError and callers can match with errors.Is.
var (
	ErrMissingPrincipal   = apperrors.NewAppError(apperrors.ErrInvalidArgument, "patient principal id is required", nil)
	ErrInvalidLeadID      = apperrors.NewAppError(apperrors.ErrInvalidArgument, "lead id must be a uuid", nil)
	ErrInvalidStatus      = apperrors.NewAppError(apperrors.ErrInvalidArgument, "unknown conversion status", nil)
	ErrCodeNotFound       = apperrors.NewAppError(apperrors.ErrNotFound, "referral code not found", nil)
	ErrLeadNotFound       = apperrors.NewAppError(apperrors.ErrNotFound, "lead not found", nil)
	ErrAttachmentNotFound = apperrors.NewAppError(apperrors.ErrNotFound, "referral attachment not found", nil)
	ErrProfileNotFound    = apperrors.NewAppError(apperrors.ErrNotFound, "profile not found", nil)
	ErrLeadAlreadyBound   = apperrors.NewAppError(apperrors.ErrConflict, "lead is bound to another principal", nil)
	ErrIllegalTransition  = apperrors.NewAppError(apperrors.ErrConflict, "illegal conversion transition", nil)
)

// NewIllegalTransitionError wraps ErrIllegalTransition with the attempted states
func NewIllegalTransitionError(from, to string) error {
	return apperrors.NewAppError(apperrors.ErrConflict,
		fmt.Sprintf("illegal conversion transition %s -> %s", from, to), ErrIllegalTransition)
}

// NewStorageError marks a failure to reach the durable store
func NewStorageError(op string, cause error) error {
	return apperrors.NewAppError(apperrors.ErrStorageUnavailable, op+": storage unavailable", cause)
}

// IsNotFound reports whether err carries the NOT_FOUND code
func IsNotFound(err error) bool {
	return apperrors.HasCode(err, apperrors.ErrNotFound)
}

// IsStorageUnavailable reports whether err carries the STORAGE_UNAVAILABLE code
func IsStorageUnavailable(err error) bool {
	return apperrors.HasCode(err, apperrors.ErrStorageUnavailable)
}
