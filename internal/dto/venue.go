package dto

import "time"

// VenueRequest is the body of POST and PUT /api/venues. Updates are full
// replacements, so every field is required on both.
type VenueRequest struct {
	Name     string `json:"name" binding:"required,notblank,max=200"`
	Address  string `json:"address" binding:"required,notblank,max=300"`
	City     string `json:"city" binding:"required,notblank,max=100"`
	Country  string `json:"country" binding:"required,notblank,max=100"`
	Capacity *int   `json:"capacity" binding:"required,gt=0,lte=2147483647"`
}

type VenueResponse struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Address   string    `json:"address"`
	City      string    `json:"city"`
	Country   string    `json:"country"`
	Capacity  int       `json:"capacity"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
