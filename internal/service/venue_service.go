package service

import (
	"context"

	"go-gin-catalog/internal/model"
	"go-gin-catalog/internal/repository"
	apperrors "go-gin-catalog/pkg/app_errors"
	"go-gin-catalog/pkg/logger"

	"go.uber.org/zap"
)

type VenueService interface {
	List(ctx context.Context) ([]*model.Venue, error)
	Count(ctx context.Context) (int64, error)
	GetByID(ctx context.Context, id int64) (*model.Venue, error)
	Create(ctx context.Context, venue *model.Venue) (*model.Venue, error)
	// Update replaces every mutable field of an existing venue.
	Update(ctx context.Context, id int64, venue *model.Venue) (*model.Venue, error)
	Delete(ctx context.Context, id int64) error
}

type VenueServiceImpl struct {
	repo repository.VenueRepository
}

func NewVenueService(repo repository.VenueRepository) *VenueServiceImpl {
	return &VenueServiceImpl{repo: repo}
}

func (s *VenueServiceImpl) List(ctx context.Context) ([]*model.Venue, error) {
	return s.repo.FindAll(ctx)
}

func (s *VenueServiceImpl) Count(ctx context.Context) (int64, error) {
	return s.repo.Count(ctx)
}

func (s *VenueServiceImpl) GetByID(ctx context.Context, id int64) (*model.Venue, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *VenueServiceImpl) Create(ctx context.Context, venue *model.Venue) (*model.Venue, error) {
	venue.ID = 0
	created, err := s.repo.Save(ctx, venue)
	if err != nil {
		return nil, err
	}
	logger.FromContext(ctx, "service").Info("venue created", zap.Int64("venue_id", created.ID))
	return created, nil
}

func (s *VenueServiceImpl) Update(ctx context.Context, id int64, venue *model.Venue) (*model.Venue, error) {
	exists, err := s.repo.ExistsByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, apperrors.NotFound("Venue", id)
	}
	venue.ID = id
	updated, err := s.repo.Update(ctx, venue)
	if err != nil {
		return nil, err
	}
	logger.FromContext(ctx, "service").Info("venue updated", zap.Int64("venue_id", id))
	return updated, nil
}

// Delete does not check for events that still reference the venue.
func (s *VenueServiceImpl) Delete(ctx context.Context, id int64) error {
	deleted, err := s.repo.DeleteByID(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return apperrors.NotFound("Venue", id)
	}
	logger.FromContext(ctx, "service").Info("venue deleted", zap.Int64("venue_id", id))
	return nil
}
