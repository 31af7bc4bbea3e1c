package repositories

import (
	"context"
	"errors"
	"time"

	"nss-backend/internal/models"
	"nss-backend/internal/timeutil"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// AttendanceRepository is the durable attendance ledger. The
// one-record-per-day invariant lives in the uq_attendance_per_day
// unique index, so the duplicate check and the insert are one atomic
// statement even with concurrent redeemers.
type AttendanceRepository struct {
	DB *pgxpool.Pool
}

func NewAttendanceRepository(db *pgxpool.Pool) *AttendanceRepository {
	return &AttendanceRepository{DB: db}
}

// Append inserts a record; a same-day duplicate surfaces as
// models.ErrDuplicateRedemption
func (r *AttendanceRepository) Append(ctx context.Context, record *models.AttendanceRecord) error {
	query := `
		INSERT INTO attendance_records(id, event_id, event_name, hours, volunteer_id, venue, recorded_at, attended_on)
		VALUES($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := r.DB.Exec(ctx, query,
		record.ID,
		record.EventID,
		record.EventName,
		record.Hours,
		record.VolunteerID,
		record.Venue,
		record.RecordedAt,
		timeutil.DayOf(record.RecordedAt),
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return models.ErrDuplicateRedemption
		}
		return err
	}
	return nil
}

// HasRecordOnDay reports whether the volunteer already has a record
// for the event on the given local calendar day
func (r *AttendanceRepository) HasRecordOnDay(ctx context.Context, volunteerID, eventID string, day time.Time) (bool, error) {
	query := `
		SELECT EXISTS(
			SELECT 1 FROM attendance_records
			WHERE volunteer_id = $1 AND event_id = $2 AND attended_on = $3
		)
	`

	var exists bool
	err := r.DB.QueryRow(ctx, query, volunteerID, eventID, timeutil.DayOf(day)).Scan(&exists)
	return exists, err
}

// ListByVolunteer returns a volunteer's records, most recent first
func (r *AttendanceRepository) ListByVolunteer(ctx context.Context, volunteerID string) ([]models.AttendanceRecord, error) {
	query := `
		SELECT id, event_id, event_name, hours, volunteer_id, COALESCE(venue, ''), recorded_at
		FROM attendance_records
		WHERE volunteer_id = $1
		ORDER BY recorded_at DESC
	`

	rows, err := r.DB.Query(ctx, query, volunteerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []models.AttendanceRecord
	for rows.Next() {
		var rec models.AttendanceRecord
		if err := rows.Scan(
			&rec.ID,
			&rec.EventID,
			&rec.EventName,
			&rec.Hours,
			&rec.VolunteerID,
			&rec.Venue,
			&rec.RecordedAt,
		); err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// Summary folds a volunteer's ledger into total hours and event count
func (r *AttendanceRepository) Summary(ctx context.Context, volunteerID string) (*models.VolunteerSummary, error) {
	query := `
		SELECT COALESCE(SUM(hours), 0), COUNT(*)
		FROM attendance_records
		WHERE volunteer_id = $1
	`

	summary := models.VolunteerSummary{VolunteerID: volunteerID}
	err := r.DB.QueryRow(ctx, query, volunteerID).Scan(&summary.TotalHours, &summary.EventsAttended)
	if err != nil {
		return nil, err
	}
	return &summary, nil
}

// SummariesFor returns aggregates for a set of volunteers in one query
// (roster views)
func (r *AttendanceRepository) SummariesFor(ctx context.Context, volunteerIDs []string) (map[string]models.VolunteerSummary, error) {
	query := `
		SELECT volunteer_id, COALESCE(SUM(hours), 0), COUNT(*)
		FROM attendance_records
		WHERE volunteer_id = ANY($1)
		GROUP BY volunteer_id
	`

	rows, err := r.DB.Query(ctx, query, volunteerIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	summaries := make(map[string]models.VolunteerSummary, len(volunteerIDs))
	for rows.Next() {
		var s models.VolunteerSummary
		if err := rows.Scan(&s.VolunteerID, &s.TotalHours, &s.EventsAttended); err != nil {
			return nil, err
		}
		summaries[s.VolunteerID] = s
	}
	return summaries, rows.Err()
}
