// Package entity holds the row shapes stored by the repository adapters.
package entity

import "time"

type VenueEntity struct {
	ID        int64     `db:"id"`
	Name      string    `db:"name"`
	Address   string    `db:"address"`
	City      string    `db:"city"`
	Country   string    `db:"country"`
	Capacity  int       `db:"capacity"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

type EventEntity struct {
	ID          int64     `db:"id"`
	Name        string    `db:"name"`
	Description *string   `db:"description"`
	EventDate   time.Time `db:"event_date"`
	Capacity    int       `db:"capacity"`
	Price       float64   `db:"price"`
	VenueID     int64     `db:"venue_id"`
	CreatedAt   time.Time `db:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"`
}
