package handlers

import (
	"encoding/json"
	"net/http"

	"nss-backend/internal/middleware"
	"nss-backend/internal/models"
	"nss-backend/internal/services"
)

type GalleryHandler struct {
	GalleryService *services.GalleryService
}

func NewGalleryHandler(galleryService *services.GalleryService) *GalleryHandler {
	return &GalleryHandler{GalleryService: galleryService}
}

// List returns gallery items with presigned download URLs
// GET /api/gallery
func (h *GalleryHandler) List(w http.ResponseWriter, r *http.Request) {
	items, err := h.GalleryService.List(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if items == nil {
		items = []models.GalleryItem{}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(items)
}

// RequestUpload returns a presigned PUT URL for a new image
// POST /api/gallery/upload-url
func (h *GalleryHandler) RequestUpload(w http.ResponseWriter, r *http.Request) {
	var req models.UploadURLRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	resp, err := h.GalleryService.RequestUpload(r.Context(), &req)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

// Publish registers an uploaded object as a gallery item
// POST /api/gallery
func (h *GalleryHandler) Publish(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserIDFromContext(r.Context())

	var req models.CreateGalleryItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	item, err := h.GalleryService.Publish(r.Context(), &req, userID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(item)
}
