package repositories_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"nss-backend/internal/models"
	"nss-backend/internal/repositories"
	"nss-backend/internal/services"
)

func record(volunteerID, eventID string, hours float64, at time.Time) *models.AttendanceRecord {
	return &models.AttendanceRecord{
		ID:          eventID + "-" + at.Format("20060102150405"),
		EventID:     eventID,
		EventName:   "Event " + eventID,
		Hours:       hours,
		VolunteerID: volunteerID,
		RecordedAt:  at,
	}
}

func TestMemoryLedgerDedup(t *testing.T) {
	ctx := context.Background()
	ledger := repositories.NewMemoryLedger()
	day := time.Date(2026, 3, 14, 10, 0, 0, 0, time.Local)

	if err := ledger.Append(ctx, record("vol-1", "event-001", 2, day)); err != nil {
		t.Fatalf("first append failed: %v", err)
	}

	// Same volunteer, same event, same day: rejected even hours apart
	err := ledger.Append(ctx, record("vol-1", "event-001", 2, day.Add(3*time.Hour)))
	if !errors.Is(err, models.ErrDuplicateRedemption) {
		t.Errorf("expected ErrDuplicateRedemption, got %v", err)
	}

	// Different event, different volunteer, next day: all fine
	if err := ledger.Append(ctx, record("vol-1", "event-002", 3, day)); err != nil {
		t.Errorf("different event should append: %v", err)
	}
	if err := ledger.Append(ctx, record("vol-2", "event-001", 2, day)); err != nil {
		t.Errorf("different volunteer should append: %v", err)
	}
	if err := ledger.Append(ctx, record("vol-1", "event-001", 2, day.AddDate(0, 0, 1))); err != nil {
		t.Errorf("next day should append: %v", err)
	}

	exists, err := ledger.HasRecordOnDay(ctx, "vol-1", "event-001", day.Add(8*time.Hour))
	if err != nil || !exists {
		t.Errorf("HasRecordOnDay = (%v, %v), want (true, nil)", exists, err)
	}
	exists, _ = ledger.HasRecordOnDay(ctx, "vol-2", "event-002", day)
	if exists {
		t.Error("HasRecordOnDay reported a record that was never appended")
	}
}

func TestMemoryLedgerOrdering(t *testing.T) {
	ctx := context.Background()
	ledger := repositories.NewMemoryLedger()
	day := time.Date(2026, 3, 14, 10, 0, 0, 0, time.Local)

	ledger.Append(ctx, record("vol-1", "event-001", 2, day))
	ledger.Append(ctx, record("vol-1", "event-003", 1, day.AddDate(0, 0, 2)))
	ledger.Append(ctx, record("vol-1", "event-002", 3, day.AddDate(0, 0, 1)))
	ledger.Append(ctx, record("vol-2", "event-001", 4, day))

	records, err := ledger.ListByVolunteer(ctx, "vol-1")
	if err != nil {
		t.Fatalf("ListByVolunteer failed: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("expected 3 records for vol-1, got %d", len(records))
	}
	for i := 1; i < len(records); i++ {
		if records[i].RecordedAt.After(records[i-1].RecordedAt) {
			t.Errorf("records not ordered most recent first: %v before %v",
				records[i-1].RecordedAt, records[i].RecordedAt)
		}
	}
	if records[0].EventID != "event-003" {
		t.Errorf("most recent record should come first, got %q", records[0].EventID)
	}
}

func TestMemoryLedgerSummary(t *testing.T) {
	ctx := context.Background()
	ledger := repositories.NewMemoryLedger()
	day := time.Date(2026, 3, 14, 10, 0, 0, 0, time.Local)

	ledger.Append(ctx, record("vol-1", "event-001", 3, day))
	ledger.Append(ctx, record("vol-1", "event-002", 2, day.AddDate(0, 0, 1)))

	summary, err := ledger.Summary(ctx, "vol-1")
	if err != nil {
		t.Fatalf("Summary failed: %v", err)
	}
	if summary.TotalHours != 5 {
		t.Errorf("TotalHours = %v, want 5", summary.TotalHours)
	}
	if summary.EventsAttended != 2 {
		t.Errorf("EventsAttended = %d, want 2", summary.EventsAttended)
	}

	empty, err := ledger.Summary(ctx, "vol-9")
	if err != nil {
		t.Fatalf("Summary for unknown volunteer failed: %v", err)
	}
	if empty.TotalHours != 0 || empty.EventsAttended != 0 {
		t.Errorf("unknown volunteer should have an empty summary: %+v", empty)
	}
}

// TestIssueAndRedeemRoundTrip drives the full path: issuer mints, the
// exported payload is scanned, the consumer appends to the ledger.
func TestIssueAndRedeemRoundTrip(t *testing.T) {
	ctx := context.Background()
	ledger := repositories.NewMemoryLedger()

	issuer := services.NewTokenIssuer(5, nil, nil)
	consumer := services.NewAttendanceService(ledger, time.Minute, nil)

	if err := issuer.StartSession("event-001", "Tree Plantation", 2); err != nil {
		t.Fatalf("StartSession failed: %v", err)
	}
	defer issuer.StopSession()

	payload, err := issuer.ExportCurrentToken()
	if err != nil {
		t.Fatalf("ExportCurrentToken failed: %v", err)
	}

	volunteer := models.User{ID: "vol-1", Role: models.RoleVolunteer}
	rec, err := consumer.Redeem(ctx, payload, volunteer)
	if err != nil {
		t.Fatalf("Redeem failed: %v", err)
	}
	if rec.EventID != "event-001" || rec.Hours != 2 {
		t.Errorf("redeemed record does not match the minted token: %+v", rec)
	}

	// A second scan of the same session is a duplicate, even with a
	// freshly rotated payload
	if _, err := consumer.Redeem(ctx, payload, volunteer); !errors.Is(err, models.ErrDuplicateRedemption) {
		t.Errorf("expected ErrDuplicateRedemption on second scan, got %v", err)
	}

	summary, err := consumer.Summary(ctx, volunteer.ID)
	if err != nil {
		t.Fatalf("Summary failed: %v", err)
	}
	if summary.TotalHours != 2 || summary.EventsAttended != 1 {
		t.Errorf("summary after one redemption = %+v", summary)
	}
}
