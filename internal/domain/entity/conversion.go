package entity

import (
	"github.com/ArtLegends/medtravel-main-sub002/internal/domain/model"
	"github.com/shopspring/decimal"
)

// ConversionInput requests a conversion status change for a patient's attachment.
type ConversionInput struct {
	PatientPrincipalID string
	Target             model.ConversionStatus
	Value              *decimal.Decimal
	Currency           string
	Reason             string
	ActorPrincipalID   string
}

// ConversionResult is the conversion record after the call.
type ConversionResult struct {
	Conversion *model.ReferralConversion `json:"conversion"`
	// Unchanged is set when the requested status was already the current terminal status.
	Unchanged bool `json:"unchanged"`
}
