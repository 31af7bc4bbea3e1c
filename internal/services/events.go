package services

import (
	"context"
	"fmt"

	"nss-backend/internal/models"
	"nss-backend/internal/repositories"

	"github.com/google/uuid"
)

type EventService struct {
	eventRepo *repositories.EventRepository
}

func NewEventService(eventRepo *repositories.EventRepository) *EventService {
	return &EventService{eventRepo: eventRepo}
}

// CreateEvent validates and inserts a new event
func (s *EventService) CreateEvent(ctx context.Context, req *models.CreateEventRequest, creatorID string) (*models.Event, error) {
	if req.Title == "" {
		return nil, fmt.Errorf("event title is required")
	}
	if req.EndTime.Before(req.StartTime) {
		return nil, fmt.Errorf("event end time precedes start time")
	}
	if req.Hours < models.MinTokenHours || req.Hours > models.MaxTokenHours {
		return nil, models.ErrInvalidHours
	}

	event := &models.Event{
		ID:          "event-" + uuid.NewString(),
		Title:       req.Title,
		Description: req.Description,
		Location:    req.Location,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
		Hours:       req.Hours,
		CreatedBy:   creatorID,
	}

	if err := s.eventRepo.Create(ctx, event); err != nil {
		return nil, fmt.Errorf("failed to create event: %w", err)
	}
	return event, nil
}

// GetEvent returns a single event
func (s *EventService) GetEvent(ctx context.Context, id string) (*models.Event, error) {
	return s.eventRepo.GetByID(ctx, id)
}

// ListEvents returns all events
func (s *EventService) ListEvents(ctx context.Context) ([]models.Event, error) {
	return s.eventRepo.List(ctx)
}

// UpdateEvent applies a partial update
func (s *EventService) UpdateEvent(ctx context.Context, id string, req *models.UpdateEventRequest) (*models.Event, error) {
	if req.Hours != nil && (*req.Hours < models.MinTokenHours || *req.Hours > models.MaxTokenHours) {
		return nil, models.ErrInvalidHours
	}
	if err := s.eventRepo.Update(ctx, id, req); err != nil {
		return nil, err
	}
	return s.eventRepo.GetByID(ctx, id)
}

// DeleteEvent removes an event
func (s *EventService) DeleteEvent(ctx context.Context, id string) error {
	return s.eventRepo.Delete(ctx, id)
}
