package model

import "time"

// Event is a scheduled happening held at a Venue.
type Event struct {
	ID          int64
	Name        string
	Description *string
	EventDate   time.Time
	Capacity    int
	Price       float64
	VenueID     int64
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
