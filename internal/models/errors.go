package models

import "errors"

// Deterministic, user-visible outcomes of the attendance flows. None
// of these are retryable; they are surfaced to the operator as-is.
// They live next to the token types so both the services and the
// ledger implementations can return them.
var (
	// ErrMalformedPayload means a scanned payload could not be parsed
	// into the token shape (missing or mistyped fields)
	ErrMalformedPayload = errors.New("payload is not a valid attendance token")

	// ErrDuplicateRedemption means a record for this volunteer, event
	// and calendar day already exists in the ledger
	ErrDuplicateRedemption = errors.New("attendance already recorded for this event today")

	// ErrStaleToken means the token's mint timestamp falls outside the
	// configured freshness window
	ErrStaleToken = errors.New("attendance token has expired")

	// ErrInvalidHours rejects a session start with hours outside 1..8
	ErrInvalidHours = errors.New("hours must be between 1 and 8")

	// ErrMissingEvent rejects a session start without an event id
	ErrMissingEvent = errors.New("event id is required")

	// ErrSessionActive rejects starting a session while one is running
	ErrSessionActive = errors.New("a token session is already active")

	// ErrNoActiveSession rejects token export while the issuer is idle
	ErrNoActiveSession = errors.New("no active token session")
)
