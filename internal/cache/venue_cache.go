// Package cache keeps hot venue records in Redis in front of a
// VenueRepository. Only FindByID is served from Redis; existence checks and
// writes always reach the wrapped repository.
package cache

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"go-gin-catalog/internal/model"
	"go-gin-catalog/internal/repository"
	"go-gin-catalog/pkg/logger"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const keyPrefix = "catalog:venue"

var errStaleFill = errors.New("venue changed since read")

// CachedVenueRepository is a read-through cache for venue lookups. Redis
// failures are logged and the call falls through to the wrapped repository.
type CachedVenueRepository struct {
	next   repository.VenueRepository
	client *redis.Client
	ttl    time.Duration
}

var _ repository.VenueRepository = (*CachedVenueRepository)(nil)

func NewCachedVenueRepository(next repository.VenueRepository, client *redis.Client, ttl time.Duration) *CachedVenueRepository {
	return &CachedVenueRepository{next: next, client: client, ttl: ttl}
}

// venue hash key
func (r *CachedVenueRepository) venueKey(id int64) string {
	return fmt.Sprintf("%s:%d", keyPrefix, id)
}

// evict counter key
func (r *CachedVenueRepository) versionKey(id int64) string {
	return fmt.Sprintf("%s:%d:version", keyPrefix, id)
}

// versionTTL outlives any entry filled under the old version.
func versionTTL(ttl time.Duration) time.Duration {
	if ttl < time.Hour {
		return time.Hour
	}
	return 2 * ttl
}

func (r *CachedVenueRepository) FindAll(ctx context.Context) ([]*model.Venue, error) {
	return r.next.FindAll(ctx)
}

func (r *CachedVenueRepository) Count(ctx context.Context) (int64, error) {
	return r.next.Count(ctx)
}

// FindByID records the entry's version before reading the wrapped
// repository and only fills when no evict happened in between, so a read
// racing a delete cannot re-cache the deleted venue.
func (r *CachedVenueRepository) FindByID(ctx context.Context, id int64) (*model.Venue, error) {
	if venue, ok := r.get(ctx, id); ok {
		return venue, nil
	}
	version, versionOK := r.version(ctx, id)
	venue, err := r.next.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if versionOK {
		r.fill(ctx, venue, version)
	}
	return venue, nil
}

// ExistsByID guards event writes, so it is never answered from the cache.
func (r *CachedVenueRepository) ExistsByID(ctx context.Context, id int64) (bool, error) {
	return r.next.ExistsByID(ctx, id)
}

// Save does not fill; the first FindByID does.
func (r *CachedVenueRepository) Save(ctx context.Context, venue *model.Venue) (*model.Venue, error) {
	return r.next.Save(ctx, venue)
}

// Update and DeleteByID evict after the write; the next read repopulates it.
func (r *CachedVenueRepository) Update(ctx context.Context, venue *model.Venue) (*model.Venue, error) {
	updated, err := r.next.Update(ctx, venue)
	if err != nil {
		return nil, err
	}
	r.evict(ctx, updated.ID)
	return updated, nil
}

func (r *CachedVenueRepository) DeleteByID(ctx context.Context, id int64) (bool, error) {
	deleted, err := r.next.DeleteByID(ctx, id)
	if err != nil {
		return false, err
	}
	r.evict(ctx, id)
	return deleted, nil
}

func (r *CachedVenueRepository) get(ctx context.Context, id int64) (*model.Venue, bool) {
	result, err := r.client.HGetAll(ctx, r.venueKey(id)).Result()
	if err != nil {
		r.warn(ctx, "get", id, err)
		return nil, false
	}
	// missing key
	if len(result) == 0 {
		return nil, false
	}

	venue, err := decodeVenue(id, result)
	if err != nil {
		r.warn(ctx, "decode", id, err)
		r.evict(ctx, id)
		return nil, false
	}
	return venue, true
}

// version returns the evict counter for id; a missing counter is 0.
func (r *CachedVenueRepository) version(ctx context.Context, id int64) (int64, bool) {
	v, err := r.client.Get(ctx, r.versionKey(id)).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, true
	}
	if err != nil {
		r.warn(ctx, "version", id, err)
		return 0, false
	}
	return v, true
}

func (r *CachedVenueRepository) fill(ctx context.Context, venue *model.Venue, version int64) {
	key := r.venueKey(venue.ID)
	versionKey := r.versionKey(venue.ID)

	err := r.client.Watch(ctx, func(tx *redis.Tx) error {
		current, err := tx.Get(ctx, versionKey).Int64()
		if err != nil && !errors.Is(err, redis.Nil) {
			return err
		}
		if current != version {
			return errStaleFill
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.HSet(ctx, key, map[string]interface{}{
				"name":       venue.Name,
				"address":    venue.Address,
				"city":       venue.City,
				"country":    venue.Country,
				"capacity":   venue.Capacity,
				"created_at": venue.CreatedAt.Format(time.RFC3339Nano),
				"updated_at": venue.UpdatedAt.Format(time.RFC3339Nano),
			})
			pipe.Expire(ctx, key, r.ttl)
			return nil
		})
		return err
	}, versionKey)

	switch {
	case err == nil:
	case errors.Is(err, errStaleFill), errors.Is(err, redis.TxFailedErr):
		logger.FromContext(ctx, "cache").Debug("venue cache fill skipped, entry changed",
			zap.Int64("venue_id", venue.ID))
	default:
		r.warn(ctx, "fill", venue.ID, err)
	}
}

// evict drops the entry and bumps its version so in-flight fills are discarded.
func (r *CachedVenueRepository) evict(ctx context.Context, id int64) {
	versionKey := r.versionKey(id)
	_, err := r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, r.venueKey(id))
		pipe.Incr(ctx, versionKey)
		pipe.Expire(ctx, versionKey, versionTTL(r.ttl))
		return nil
	})
	if err != nil {
		r.warn(ctx, "evict", id, err)
	}
}

func (r *CachedVenueRepository) warn(ctx context.Context, op string, id int64, err error) {
	logger.FromContext(ctx, "cache").Warn("venue cache "+op+" failed",
		zap.Int64("venue_id", id), zap.Error(err))
}

func decodeVenue(id int64, fields map[string]string) (*model.Venue, error) {
	capacity, err := strconv.Atoi(fields["capacity"])
	if err != nil {
		return nil, fmt.Errorf("invalid capacity: %v", err)
	}
	createdAt, err := time.Parse(time.RFC3339Nano, fields["created_at"])
	if err != nil {
		return nil, fmt.Errorf("invalid created_at: %v", err)
	}
	updatedAt, err := time.Parse(time.RFC3339Nano, fields["updated_at"])
	if err != nil {
		return nil, fmt.Errorf("invalid updated_at: %v", err)
	}

	return &model.Venue{
		ID:        id,
		Name:      fields["name"],
		Address:   fields["address"],
		City:      fields["city"],
		Country:   fields["country"],
		Capacity:  capacity,
		CreatedAt: createdAt,
		UpdatedAt: updatedAt,
	}, nil
}
