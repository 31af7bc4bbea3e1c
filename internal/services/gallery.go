package services

import (
	"context"
	"fmt"
	"path"
	"strings"
	"time"

	"nss-backend/internal/models"
	"nss-backend/internal/repositories"

	"github.com/google/uuid"
)

const (
	uploadURLExpiry   = 15 * time.Minute
	downloadURLExpiry = time.Hour
)

type GalleryService struct {
	galleryRepo *repositories.GalleryRepository
	storage     *MediaStorage // nil when object storage is not configured
}

func NewGalleryService(galleryRepo *repositories.GalleryRepository, storage *MediaStorage) *GalleryService {
	return &GalleryService{galleryRepo: galleryRepo, storage: storage}
}

// RequestUpload issues a presigned PUT URL under a fresh object key
func (s *GalleryService) RequestUpload(ctx context.Context, req *models.UploadURLRequest) (*models.UploadURLResponse, error) {
	if s.storage == nil {
		return nil, fmt.Errorf("media storage is not configured")
	}
	if req.FileName == "" {
		return nil, fmt.Errorf("file name is required")
	}
	if !strings.HasPrefix(req.ContentType, "image/") {
		return nil, fmt.Errorf("only image uploads are allowed")
	}

	key := path.Join("gallery", uuid.NewString()+path.Ext(req.FileName))
	url, err := s.storage.PresignUpload(ctx, key, req.ContentType, uploadURLExpiry)
	if err != nil {
		return nil, err
	}

	return &models.UploadURLResponse{
		UploadURL: url,
		ObjectKey: key,
		ExpiresIn: int(uploadURLExpiry.Seconds()),
	}, nil
}

// Publish registers an uploaded object as a gallery item
func (s *GalleryService) Publish(ctx context.Context, req *models.CreateGalleryItemRequest, uploaderID string) (*models.GalleryItem, error) {
	if req.Title == "" || req.ObjectKey == "" {
		return nil, fmt.Errorf("gallery item needs a title and an object key")
	}

	item := &models.GalleryItem{
		ID:         "img-" + uuid.NewString(),
		Title:      req.Title,
		EventID:    req.EventID,
		ObjectKey:  req.ObjectKey,
		UploadedBy: uploaderID,
	}

	if err := s.galleryRepo.Create(ctx, item); err != nil {
		return nil, fmt.Errorf("failed to publish gallery item: %w", err)
	}
	return item, nil
}

// List returns gallery items with presigned download URLs filled in
func (s *GalleryService) List(ctx context.Context) ([]models.GalleryItem, error) {
	items, err := s.galleryRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	if s.storage != nil {
		for i := range items {
			url, err := s.storage.PresignDownload(ctx, items[i].ObjectKey, downloadURLExpiry)
			if err != nil {
				continue // item stays listed, just without a URL
			}
			items[i].URL = url
		}
	}
	return items, nil
}
