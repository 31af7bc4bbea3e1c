package repositories

import (
	"context"
	"errors"

	"nss-backend/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type EventRepository struct {
	DB *pgxpool.Pool
}

func NewEventRepository(db *pgxpool.Pool) *EventRepository {
	return &EventRepository{DB: db}
}

// Create inserts a new event
func (r *EventRepository) Create(ctx context.Context, event *models.Event) error {
	query := `
		INSERT INTO events(id, title, description, location, start_time, end_time, hours, created_by)
		VALUES($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING created_at
	`

	return r.DB.QueryRow(ctx, query,
		event.ID,
		event.Title,
		event.Description,
		event.Location,
		event.StartTime,
		event.EndTime,
		event.Hours,
		event.CreatedBy,
	).Scan(&event.CreatedAt)
}

// GetByID returns a single event
func (r *EventRepository) GetByID(ctx context.Context, id string) (*models.Event, error) {
	query := `
		SELECT id, title, COALESCE(description, ''), COALESCE(location, ''), start_time, end_time, hours, COALESCE(created_by, ''), created_at
		FROM events
		WHERE id = $1
	`

	var e models.Event
	err := r.DB.QueryRow(ctx, query, id).Scan(
		&e.ID, &e.Title, &e.Description, &e.Location,
		&e.StartTime, &e.EndTime, &e.Hours, &e.CreatedBy, &e.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &e, nil
}

// List returns all events, newest start first
func (r *EventRepository) List(ctx context.Context) ([]models.Event, error) {
	query := `
		SELECT id, title, COALESCE(description, ''), COALESCE(location, ''), start_time, end_time, hours, COALESCE(created_by, ''), created_at
		FROM events
		ORDER BY start_time DESC
	`

	rows, err := r.DB.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []models.Event
	for rows.Next() {
		var e models.Event
		if err := rows.Scan(
			&e.ID, &e.Title, &e.Description, &e.Location,
			&e.StartTime, &e.EndTime, &e.Hours, &e.CreatedBy, &e.CreatedAt,
		); err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

// Update applies non-nil fields of the request to an event
func (r *EventRepository) Update(ctx context.Context, id string, req *models.UpdateEventRequest) error {
	query := `
		UPDATE events SET
			title = COALESCE($2, title),
			description = COALESCE($3, description),
			location = COALESCE($4, location),
			start_time = COALESCE($5, start_time),
			end_time = COALESCE($6, end_time),
			hours = COALESCE($7, hours)
		WHERE id = $1
	`

	tag, err := r.DB.Exec(ctx, query, id,
		req.Title, req.Description, req.Location,
		req.StartTime, req.EndTime, req.Hours,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes an event
func (r *EventRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.DB.Exec(ctx, `DELETE FROM events WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
