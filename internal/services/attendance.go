package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"nss-backend/internal/models"
	"nss-backend/internal/monitoring"
	"nss-backend/internal/timeutil"
)

// AttendanceStore is the ledger the consumer writes to. Append must
// enforce the one-record-per-volunteer-per-event-per-day invariant
// atomically and return ErrDuplicateRedemption on violation; callers
// may probe HasRecordOnDay first but must not rely on it for
// correctness.
type AttendanceStore interface {
	HasRecordOnDay(ctx context.Context, volunteerID, eventID string, day time.Time) (bool, error)
	Append(ctx context.Context, record *models.AttendanceRecord) error
	ListByVolunteer(ctx context.Context, volunteerID string) ([]models.AttendanceRecord, error)
	Summary(ctx context.Context, volunteerID string) (*models.VolunteerSummary, error)
}

// AttendanceService is the token consumer: it turns scanned payloads
// into ledger records and answers history/aggregate queries.
type AttendanceService struct {
	store    AttendanceStore
	tokenTTL time.Duration
	metrics  *monitoring.Metrics
}

// NewAttendanceService creates the consumer. tokenTTL is the freshness
// window applied to scanned payloads; zero disables the check (the
// behavior of the original portal, kept reachable for its tests).
func NewAttendanceService(store AttendanceStore, tokenTTL time.Duration, metrics *monitoring.Metrics) *AttendanceService {
	return &AttendanceService{
		store:    store,
		tokenTTL: tokenTTL,
		metrics:  metrics,
	}
}

// tokenPayload mirrors models.AttendanceToken but with pointer fields,
// so a missing member is distinguishable from a zero value
type tokenPayload struct {
	EventID   *string `json:"eventId"`
	EventName *string `json:"eventName"`
	Timestamp *int64  `json:"timestamp"`
	Hours     *int    `json:"hours"`
	RandomStr string  `json:"randomStr"`
}

// Redeem validates a scanned payload and appends an attendance record
// for the volunteer. Outcomes: the created record, or one of
// ErrMalformedPayload, ErrStaleToken, ErrDuplicateRedemption.
func (s *AttendanceService) Redeem(ctx context.Context, payload string, volunteer models.User) (*models.AttendanceRecord, error) {
	token, err := parseTokenPayload(payload)
	if err != nil {
		s.count(monitoring.OutcomeMalformed)
		return nil, err
	}

	now := timeutil.Now()
	if s.tokenTTL > 0 {
		mintedAt := timeutil.FromUnixMillis(token.Timestamp)
		age := now.Sub(mintedAt)
		if age > s.tokenTTL || age < -s.tokenTTL {
			s.count(monitoring.OutcomeStale)
			return nil, models.ErrStaleToken
		}
	}

	// Fast path: a plain read avoids burning an insert on the common
	// double-scan case. The unique constraint below remains the
	// authority.
	if exists, err := s.store.HasRecordOnDay(ctx, volunteer.ID, token.EventID, now); err == nil && exists {
		s.count(monitoring.OutcomeDuplicate)
		return nil, models.ErrDuplicateRedemption
	}

	record := &models.AttendanceRecord{
		ID:          fmt.Sprintf("%s-%d", token.EventID, now.UnixMilli()),
		EventID:     token.EventID,
		EventName:   token.EventName,
		Hours:       float64(token.Hours),
		VolunteerID: volunteer.ID,
		RecordedAt:  now,
	}

	if err := s.store.Append(ctx, record); err != nil {
		if errors.Is(err, models.ErrDuplicateRedemption) {
			s.count(monitoring.OutcomeDuplicate)
		} else {
			s.count(monitoring.OutcomeError)
		}
		return nil, err
	}

	s.count(monitoring.OutcomeSuccess)
	return record, nil
}

// RecordManual appends an attendance record entered by a mentor or
// secretary, bypassing the token path but not the dedup invariant
func (s *AttendanceService) RecordManual(ctx context.Context, req models.ManualAttendanceRequest, event *models.Event) (*models.AttendanceRecord, error) {
	if req.VolunteerID == "" || req.EventID == "" {
		return nil, models.ErrMalformedPayload
	}
	if req.Hours <= 0 {
		return nil, models.ErrInvalidHours
	}

	now := timeutil.Now()
	record := &models.AttendanceRecord{
		ID:          fmt.Sprintf("%s-%d", req.EventID, now.UnixMilli()),
		EventID:     req.EventID,
		Hours:       req.Hours,
		VolunteerID: req.VolunteerID,
		RecordedAt:  now,
	}
	if event != nil {
		record.EventName = event.Title
		record.Venue = event.Location
	}

	if err := s.store.Append(ctx, record); err != nil {
		return nil, err
	}
	return record, nil
}

// History returns a volunteer's records, most recent first
func (s *AttendanceService) History(ctx context.Context, volunteerID string) ([]models.AttendanceRecord, error) {
	return s.store.ListByVolunteer(ctx, volunteerID)
}

// Summary returns the aggregate projection over a volunteer's ledger
func (s *AttendanceService) Summary(ctx context.Context, volunteerID string) (*models.VolunteerSummary, error) {
	return s.store.Summary(ctx, volunteerID)
}

// parseTokenPayload decodes a scanned payload into a token, reporting
// ErrMalformedPayload for anything that isn't a complete token shape
func parseTokenPayload(payload string) (*models.AttendanceToken, error) {
	var raw tokenPayload
	if err := json.Unmarshal([]byte(payload), &raw); err != nil {
		return nil, models.ErrMalformedPayload
	}
	if raw.EventID == nil || *raw.EventID == "" || raw.EventName == nil || raw.Hours == nil {
		return nil, models.ErrMalformedPayload
	}
	if *raw.Hours < models.MinTokenHours || *raw.Hours > models.MaxTokenHours {
		return nil, models.ErrMalformedPayload
	}

	token := &models.AttendanceToken{
		EventID:   *raw.EventID,
		EventName: *raw.EventName,
		Hours:     *raw.Hours,
		RandomStr: raw.RandomStr,
	}
	if raw.Timestamp != nil {
		token.Timestamp = *raw.Timestamp
	}
	return token, nil
}

func (s *AttendanceService) count(outcome string) {
	if s.metrics != nil {
		s.metrics.RedemptionsTotal.WithLabelValues(outcome).Inc()
	}
}
