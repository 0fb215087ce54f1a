package service

var (
	_ VenueService = (*VenueServiceImpl)(nil)
	_ EventService = (*EventServiceImpl)(nil)
)
