package models

import "time"

// Hours a single token may credit. The original portal only issues
// tokens for whole-hour activities between one and eight hours.
const (
	MinTokenHours = 1
	MaxTokenHours = 8
)

// AttendanceToken is the transient payload rendered as a QR code.
// A new token is minted on every refresh cycle; the struct is never
// mutated after minting. Field names are the wire format consumed by
// the scanner app, so they stay camelCase.
type AttendanceToken struct {
	EventID   string `json:"eventId"`
	EventName string `json:"eventName"`
	Timestamp int64  `json:"timestamp"` // unix milliseconds at mint
	Hours     int    `json:"hours"`
	RandomStr string `json:"randomStr,omitempty"`
}

// AttendanceRecord is one credited attendance, created at redemption
// and never updated or deleted
type AttendanceRecord struct {
	ID          string    `json:"id"`
	EventID     string    `json:"event_id"`
	EventName   string    `json:"event_name"`
	Hours       float64   `json:"hours"`
	VolunteerID string    `json:"volunteer_id"`
	Venue       string    `json:"venue,omitempty"`
	RecordedAt  time.Time `json:"recorded_at"`
}

// VolunteerSummary is the aggregate projection over a volunteer's
// ledger. It is always recomputed from the records, never stored.
type VolunteerSummary struct {
	VolunteerID    string  `json:"volunteer_id"`
	TotalHours     float64 `json:"total_hours"`
	EventsAttended int     `json:"events_attended"`
}

// StartSessionRequest is the request body for starting a token session
type StartSessionRequest struct {
	EventID   string `json:"event_id"`
	EventName string `json:"event_name"`
	Hours     int    `json:"hours"`
}

// SessionStatus describes the issuer's current state for the display page
type SessionStatus struct {
	Active           bool             `json:"active"`
	Token            *AttendanceToken `json:"token,omitempty"`
	Payload          string           `json:"payload,omitempty"`
	SecondsRemaining int              `json:"seconds_remaining"`
}

// RedeemRequest is the request body for redeeming a scanned payload
type RedeemRequest struct {
	Payload string `json:"payload"`
}

// ManualAttendanceRequest is the request body for mentor/secretary
// manual attendance entry
type ManualAttendanceRequest struct {
	VolunteerID string  `json:"volunteer_id"`
	EventID     string  `json:"event_id"`
	Hours       float64 `json:"hours"`
	Description string  `json:"description,omitempty"`
}
