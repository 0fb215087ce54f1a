package dto

import "time"

// EventRequest bounds match the storage columns: capacity is a 32-bit
// integer and price a NUMERIC(12,2).
type EventRequest struct {
	Name        string    `json:"name" binding:"required,notblank,max=200"`
	Description *string   `json:"description" binding:"omitempty,max=1000"`
	EventDate   *DateTime `json:"eventDate" binding:"required"`
	Capacity    *int      `json:"capacity" binding:"required,gt=0,lte=2147483647"`
	Price       *float64  `json:"price" binding:"required,gt=0,lt=10000000000,cents"`
	VenueID     *int64    `json:"venueId" binding:"required,gt=0"`
}

type EventResponse struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description,omitempty"`
	EventDate   time.Time `json:"eventDate"`
	Capacity    int       `json:"capacity"`
	Price       float64   `json:"price"`
	VenueID     int64     `json:"venueId"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}
