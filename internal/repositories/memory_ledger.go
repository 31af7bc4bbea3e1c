package repositories

import (
	"context"
	"sort"
	"sync"
	"time"

	"nss-backend/internal/models"
	"nss-backend/internal/timeutil"
)

// MemoryLedger is a session-scoped, append-only attendance ledger held
// in memory. It mirrors the browser portal's per-session record list
// and backs the demo mode and the service tests. The duplicate check
// and the append happen under one lock, so the per-day invariant holds
// for concurrent callers too.
type MemoryLedger struct {
	mu      sync.Mutex
	records []models.AttendanceRecord
}

func NewMemoryLedger() *MemoryLedger {
	return &MemoryLedger{}
}

func (l *MemoryLedger) Append(_ context.Context, record *models.AttendanceRecord) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	for _, existing := range l.records {
		if existing.VolunteerID == record.VolunteerID &&
			existing.EventID == record.EventID &&
			timeutil.SameDay(existing.RecordedAt, record.RecordedAt) {
			return models.ErrDuplicateRedemption
		}
	}

	l.records = append(l.records, *record)
	return nil
}

func (l *MemoryLedger) HasRecordOnDay(_ context.Context, volunteerID, eventID string, day time.Time) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	for _, rec := range l.records {
		if rec.VolunteerID == volunteerID && rec.EventID == eventID && timeutil.SameDay(rec.RecordedAt, day) {
			return true, nil
		}
	}
	return false, nil
}

func (l *MemoryLedger) ListByVolunteer(_ context.Context, volunteerID string) ([]models.AttendanceRecord, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	var out []models.AttendanceRecord
	for _, rec := range l.records {
		if rec.VolunteerID == volunteerID {
			out = append(out, rec)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].RecordedAt.After(out[j].RecordedAt)
	})
	return out, nil
}

func (l *MemoryLedger) Summary(ctx context.Context, volunteerID string) (*models.VolunteerSummary, error) {
	records, err := l.ListByVolunteer(ctx, volunteerID)
	if err != nil {
		return nil, err
	}

	summary := models.VolunteerSummary{VolunteerID: volunteerID}
	for _, rec := range records {
		summary.TotalHours += rec.Hours
		summary.EventsAttended++
	}
	return &summary, nil
}
