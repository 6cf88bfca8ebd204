// Package common defines shared constants and sentinel errors used across
// client layers of clinicadmin. Callers should use errors.Is to match these
// values.
package common

import "errors"

var (
	// Lookup errors.
	ErrorNotFound = errors.New("not found")

	// Auth / session errors.
	ErrorUnauthorized = errors.New("unauthorized")
	ErrNoToken        = errors.New("no access token")
	ErrInvalidToken   = errors.New("invalid token")

	// Payload codec errors.
	ErrDecrypt = errors.New("payload decryption failed")

	// Listing errors.
	ErrPartialDateRange = errors.New("date range needs both from and to")
	ErrUnknownResource  = errors.New("unknown resource")
)
