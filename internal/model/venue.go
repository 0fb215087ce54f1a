package model

import "time"

// Venue is a physical location where events take place. ID zero means the
// record has not been persisted yet.
type Venue struct {
	ID        int64
	Name      string
	Address   string
	City      string
	Country   string
	Capacity  int
	CreatedAt time.Time
	UpdatedAt time.Time
}
