package repository

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"go-gin-catalog/internal/model"
	apperrors "go-gin-catalog/pkg/app_errors"
)

// MemoryEventRepository is the event counterpart of MemoryVenueRepository.
// It does not check venue references; that is the service's job.
type MemoryEventRepository struct {
	mu     sync.RWMutex
	events []model.Event
	nextID atomic.Int64
	now    func() time.Time
}

func NewMemoryEventRepository() *MemoryEventRepository {
	return &MemoryEventRepository{now: func() time.Time { return time.Now().UTC() }}
}

func (r *MemoryEventRepository) FindAll(ctx context.Context) ([]*model.Event, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*model.Event, 0, len(r.events))
	for i := range r.events {
		out = append(out, copyEvent(r.events[i]))
	}
	return out, nil
}

func (r *MemoryEventRepository) FindByID(ctx context.Context, id int64) (*model.Event, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if i := r.indexOf(id); i >= 0 {
		return copyEvent(r.events[i]), nil
	}
	return nil, apperrors.NotFound("Event", id)
}

func (r *MemoryEventRepository) FindByVenueID(ctx context.Context, venueID int64) ([]*model.Event, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*model.Event, 0)
	for i := range r.events {
		if r.events[i].VenueID == venueID {
			out = append(out, copyEvent(r.events[i]))
		}
	}
	return out, nil
}

func (r *MemoryEventRepository) Save(ctx context.Context, event *model.Event) (*model.Event, error) {
	if event.ID != 0 {
		return r.Update(ctx, event)
	}
	e := *copyEvent(*event)
	e.ID = r.nextID.Add(1)
	e.CreatedAt = r.now()
	e.UpdatedAt = e.CreatedAt

	r.mu.Lock()
	r.events = append(r.events, e)
	r.mu.Unlock()
	return copyEvent(e), nil
}

func (r *MemoryEventRepository) Update(ctx context.Context, event *model.Event) (*model.Event, error) {
	if event.ID <= 0 {
		return nil, invalidID("event", event.ID)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	i := r.indexOf(event.ID)
	if i < 0 {
		return nil, apperrors.NotFound("Event", event.ID)
	}
	e := *copyEvent(*event)
	e.CreatedAt = r.events[i].CreatedAt
	e.UpdatedAt = r.now()
	r.events[i] = e
	return copyEvent(e), nil
}

func (r *MemoryEventRepository) DeleteByID(ctx context.Context, id int64) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	i := r.indexOf(id)
	if i < 0 {
		return false, nil
	}
	r.events = append(r.events[:i], r.events[i+1:]...)
	return true, nil
}

func (r *MemoryEventRepository) ExistsByID(ctx context.Context, id int64) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.indexOf(id) >= 0, nil
}

func (r *MemoryEventRepository) Count(ctx context.Context) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return int64(len(r.events)), nil
}

func (r *MemoryEventRepository) indexOf(id int64) int {
	for i := range r.events {
		if r.events[i].ID == id {
			return i
		}
	}
	return -1
}

// copyEvent detaches the optional description so callers cannot write
// through to stored state.
func copyEvent(e model.Event) *model.Event {
	if e.Description != nil {
		d := *e.Description
		e.Description = &d
	}
	return &e
}
