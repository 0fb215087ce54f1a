package repository

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"go-gin-catalog/internal/model"
	apperrors "go-gin-catalog/pkg/app_errors"
)

// MemoryVenueRepository keeps venues in insertion order. Ids come from an
// atomic counter and are never reused, even after a delete. Readers get
// copies, never pointers into the live slice.
type MemoryVenueRepository struct {
	mu     sync.RWMutex
	venues []model.Venue
	nextID atomic.Int64
	now    func() time.Time
}

func NewMemoryVenueRepository() *MemoryVenueRepository {
	return &MemoryVenueRepository{now: func() time.Time { return time.Now().UTC() }}
}

func (r *MemoryVenueRepository) FindAll(ctx context.Context) ([]*model.Venue, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*model.Venue, 0, len(r.venues))
	for i := range r.venues {
		v := r.venues[i]
		out = append(out, &v)
	}
	return out, nil
}

func (r *MemoryVenueRepository) FindByID(ctx context.Context, id int64) (*model.Venue, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if i := r.indexOf(id); i >= 0 {
		v := r.venues[i]
		return &v, nil
	}
	return nil, apperrors.NotFound("Venue", id)
}

// Save appends a new venue with the next id. A venue that already carries an
// id is treated as an update.
func (r *MemoryVenueRepository) Save(ctx context.Context, venue *model.Venue) (*model.Venue, error) {
	if venue.ID != 0 {
		return r.Update(ctx, venue)
	}
	v := *venue
	v.ID = r.nextID.Add(1)
	v.CreatedAt = r.now()
	v.UpdatedAt = v.CreatedAt

	r.mu.Lock()
	r.venues = append(r.venues, v)
	r.mu.Unlock()
	return &v, nil
}

func (r *MemoryVenueRepository) Update(ctx context.Context, venue *model.Venue) (*model.Venue, error) {
	if venue.ID <= 0 {
		return nil, invalidID("venue", venue.ID)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	i := r.indexOf(venue.ID)
	if i < 0 {
		return nil, apperrors.NotFound("Venue", venue.ID)
	}
	v := *venue
	v.CreatedAt = r.venues[i].CreatedAt
	v.UpdatedAt = r.now()
	r.venues[i] = v
	return &v, nil
}

func (r *MemoryVenueRepository) DeleteByID(ctx context.Context, id int64) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	i := r.indexOf(id)
	if i < 0 {
		return false, nil
	}
	r.venues = append(r.venues[:i], r.venues[i+1:]...)
	return true, nil
}

func (r *MemoryVenueRepository) ExistsByID(ctx context.Context, id int64) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.indexOf(id) >= 0, nil
}

func (r *MemoryVenueRepository) Count(ctx context.Context) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return int64(len(r.venues)), nil
}

// indexOf must be called with mu held.
func (r *MemoryVenueRepository) indexOf(id int64) int {
	for i := range r.venues {
		if r.venues[i].ID == id {
			return i
		}
	}
	return -1
}
