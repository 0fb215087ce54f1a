// Package mapper converts between wire DTOs, domain records and persistence
// entities. Every function maps nil to nil.
package mapper

import (
	"go-gin-catalog/internal/dto"
	"go-gin-catalog/internal/model"
	"go-gin-catalog/internal/repository/entity"
)

func VenueFromRequest(req *dto.VenueRequest) *model.Venue {
	if req == nil {
		return nil
	}
	return &model.Venue{
		Name:     req.Name,
		Address:  req.Address,
		City:     req.City,
		Country:  req.Country,
		Capacity: derefInt(req.Capacity),
	}
}

func VenueToResponse(v *model.Venue) *dto.VenueResponse {
	if v == nil {
		return nil
	}
	return &dto.VenueResponse{
		ID:        v.ID,
		Name:      v.Name,
		Address:   v.Address,
		City:      v.City,
		Country:   v.Country,
		Capacity:  v.Capacity,
		CreatedAt: v.CreatedAt,
		UpdatedAt: v.UpdatedAt,
	}
}

// VenuesToResponse always returns a non-nil slice so empty lists encode as [].
func VenuesToResponse(venues []*model.Venue) []*dto.VenueResponse {
	out := make([]*dto.VenueResponse, 0, len(venues))
	for _, v := range venues {
		out = append(out, VenueToResponse(v))
	}
	return out
}

func VenueToEntity(v *model.Venue) *entity.VenueEntity {
	if v == nil {
		return nil
	}
	return &entity.VenueEntity{
		ID:        v.ID,
		Name:      v.Name,
		Address:   v.Address,
		City:      v.City,
		Country:   v.Country,
		Capacity:  v.Capacity,
		CreatedAt: v.CreatedAt,
		UpdatedAt: v.UpdatedAt,
	}
}

func VenueFromEntity(e *entity.VenueEntity) *model.Venue {
	if e == nil {
		return nil
	}
	return &model.Venue{
		ID:        e.ID,
		Name:      e.Name,
		Address:   e.Address,
		City:      e.City,
		Country:   e.Country,
		Capacity:  e.Capacity,
		CreatedAt: e.CreatedAt,
		UpdatedAt: e.UpdatedAt,
	}
}

func derefInt(p *int) int {
	if p == nil {
		return 0
	}
	return *p
}
