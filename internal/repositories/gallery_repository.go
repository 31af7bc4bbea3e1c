package repositories

import (
	"context"

	"nss-backend/internal/models"

	"github.com/jackc/pgx/v5/pgxpool"
)

type GalleryRepository struct {
	DB *pgxpool.Pool
}

func NewGalleryRepository(db *pgxpool.Pool) *GalleryRepository {
	return &GalleryRepository{DB: db}
}

// Create registers an uploaded object as a gallery item
func (r *GalleryRepository) Create(ctx context.Context, item *models.GalleryItem) error {
	query := `
		INSERT INTO gallery_items(id, title, event_id, object_key, uploaded_by)
		VALUES($1, $2, NULLIF($3, ''), $4, $5)
		RETURNING created_at
	`

	return r.DB.QueryRow(ctx, query,
		item.ID, item.Title, item.EventID, item.ObjectKey, item.UploadedBy,
	).Scan(&item.CreatedAt)
}

// List returns gallery items, newest first
func (r *GalleryRepository) List(ctx context.Context) ([]models.GalleryItem, error) {
	query := `
		SELECT id, title, COALESCE(event_id, ''), object_key, COALESCE(uploaded_by, ''), created_at
		FROM gallery_items
		ORDER BY created_at DESC
	`

	rows, err := r.DB.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []models.GalleryItem
	for rows.Next() {
		var item models.GalleryItem
		if err := rows.Scan(&item.ID, &item.Title, &item.EventID, &item.ObjectKey, &item.UploadedBy, &item.CreatedAt); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}
