package mapper

import (
	"go-gin-catalog/internal/dto"
	"go-gin-catalog/internal/model"
	"go-gin-catalog/internal/repository/entity"
)

func EventFromRequest(req *dto.EventRequest) *model.Event {
	if req == nil {
		return nil
	}
	e := &model.Event{
		Name:        req.Name,
		Description: req.Description,
		Capacity:    derefInt(req.Capacity),
	}
	if req.EventDate != nil {
		e.EventDate = req.EventDate.Time
	}
	if req.Price != nil {
		e.Price = *req.Price
	}
	if req.VenueID != nil {
		e.VenueID = *req.VenueID
	}
	return e
}

func EventToResponse(e *model.Event) *dto.EventResponse {
	if e == nil {
		return nil
	}
	return &dto.EventResponse{
		ID:          e.ID,
		Name:        e.Name,
		Description: e.Description,
		EventDate:   e.EventDate,
		Capacity:    e.Capacity,
		Price:       e.Price,
		VenueID:     e.VenueID,
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   e.UpdatedAt,
	}
}

func EventsToResponse(events []*model.Event) []*dto.EventResponse {
	out := make([]*dto.EventResponse, 0, len(events))
	for _, e := range events {
		out = append(out, EventToResponse(e))
	}
	return out
}

func EventToEntity(e *model.Event) *entity.EventEntity {
	if e == nil {
		return nil
	}
	return &entity.EventEntity{
		ID:          e.ID,
		Name:        e.Name,
		Description: e.Description,
		EventDate:   e.EventDate,
		Capacity:    e.Capacity,
		Price:       e.Price,
		VenueID:     e.VenueID,
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   e.UpdatedAt,
	}
}

func EventFromEntity(e *entity.EventEntity) *model.Event {
	if e == nil {
		return nil
	}
	return &model.Event{
		ID:          e.ID,
		Name:        e.Name,
		Description: e.Description,
		EventDate:   e.EventDate,
		Capacity:    e.Capacity,
		Price:       e.Price,
		VenueID:     e.VenueID,
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   e.UpdatedAt,
	}
}
