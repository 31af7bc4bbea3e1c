package models

import "time"

// GalleryItem is a photo published on the gallery page. The object
// itself lives in R2/S3; ObjectKey points at it.
type GalleryItem struct {
	ID         string    `json:"id"`
	Title      string    `json:"title"`
	EventID    string    `json:"event_id,omitempty"`
	ObjectKey  string    `json:"object_key"`
	URL        string    `json:"url,omitempty"` // presigned, filled on read
	UploadedBy string    `json:"uploaded_by"`
	CreatedAt  time.Time `json:"created_at"`
}

// CreateGalleryItemRequest registers an uploaded object in the gallery
type CreateGalleryItemRequest struct {
	Title     string `json:"title"`
	EventID   string `json:"event_id"`
	ObjectKey string `json:"object_key"`
}

// UploadURLRequest asks for a presigned PUT URL for a new object
type UploadURLRequest struct {
	FileName    string `json:"file_name"`
	ContentType string `json:"content_type"`
}

// UploadURLResponse carries the presigned URL and the object key the
// client must echo back when registering the item
type UploadURLResponse struct {
	UploadURL string `json:"upload_url"`
	ObjectKey string `json:"object_key"`
	ExpiresIn int    `json:"expires_in_seconds"`
}
