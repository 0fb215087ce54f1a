package service

import (
	"context"

	"go-gin-catalog/internal/model"
	"go-gin-catalog/internal/repository"
	apperrors "go-gin-catalog/pkg/app_errors"
	"go-gin-catalog/pkg/logger"

	"go.uber.org/zap"
)

type EventService interface {
	List(ctx context.Context) ([]*model.Event, error)
	// ListByVenue returns an empty list for a venue with no events, including
	// one that does not exist.
	ListByVenue(ctx context.Context, venueID int64) ([]*model.Event, error)
	Count(ctx context.Context) (int64, error)
	GetByID(ctx context.Context, id int64) (*model.Event, error)
	Create(ctx context.Context, event *model.Event) (*model.Event, error)
	Update(ctx context.Context, id int64, event *model.Event) (*model.Event, error)
	Delete(ctx context.Context, id int64) error
}

type EventServiceImpl struct {
	repo      repository.EventRepository
	venueRepo repository.VenueRepository
}

func NewEventService(repo repository.EventRepository, venueRepo repository.VenueRepository) *EventServiceImpl {
	return &EventServiceImpl{repo: repo, venueRepo: venueRepo}
}

func (s *EventServiceImpl) List(ctx context.Context) ([]*model.Event, error) {
	return s.repo.FindAll(ctx)
}

func (s *EventServiceImpl) ListByVenue(ctx context.Context, venueID int64) ([]*model.Event, error) {
	return s.repo.FindByVenueID(ctx, venueID)
}

func (s *EventServiceImpl) Count(ctx context.Context) (int64, error) {
	return s.repo.Count(ctx)
}

func (s *EventServiceImpl) GetByID(ctx context.Context, id int64) (*model.Event, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *EventServiceImpl) Create(ctx context.Context, event *model.Event) (*model.Event, error) {
	if err := s.requireVenue(ctx, event.VenueID); err != nil {
		return nil, err
	}
	event.ID = 0
	created, err := s.repo.Save(ctx, event)
	if err != nil {
		return nil, err
	}
	logger.FromContext(ctx, "service").Info("event created",
		zap.Int64("event_id", created.ID),
		zap.Int64("venue_id", created.VenueID),
	)
	return created, nil
}

func (s *EventServiceImpl) Update(ctx context.Context, id int64, event *model.Event) (*model.Event, error) {
	exists, err := s.repo.ExistsByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, apperrors.NotFound("Event", id)
	}
	if err := s.requireVenue(ctx, event.VenueID); err != nil {
		return nil, err
	}
	event.ID = id
	updated, err := s.repo.Update(ctx, event)
	if err != nil {
		return nil, err
	}
	logger.FromContext(ctx, "service").Info("event updated", zap.Int64("event_id", id))
	return updated, nil
}

func (s *EventServiceImpl) Delete(ctx context.Context, id int64) error {
	deleted, err := s.repo.DeleteByID(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return apperrors.NotFound("Event", id)
	}
	logger.FromContext(ctx, "service").Info("event deleted", zap.Int64("event_id", id))
	return nil
}

func (s *EventServiceImpl) requireVenue(ctx context.Context, venueID int64) error {
	exists, err := s.venueRepo.ExistsByID(ctx, venueID)
	if err != nil {
		return err
	}
	if !exists {
		return apperrors.NotFound("Venue", venueID)
	}
	return nil
}
