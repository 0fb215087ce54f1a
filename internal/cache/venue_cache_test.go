package cache_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"go-gin-catalog/internal/cache"
	"go-gin-catalog/internal/model"
	"go-gin-catalog/internal/repository"
	"go-gin-catalog/internal/service"
	apperrors "go-gin-catalog/pkg/app_errors"

	"github.com/alicebob/miniredis/v2"
	"github.com/brianvoe/gofakeit/v7"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newVenue() *model.Venue {
	return &model.Venue{
		Name:     gofakeit.Company(),
		Address:  gofakeit.Street(),
		City:     gofakeit.City(),
		Country:  gofakeit.Country(),
		Capacity: gofakeit.Number(100, 10000),
	}
}

func newEvent(venueID int64) *model.Event {
	return &model.Event{
		Name:      gofakeit.Noun(),
		EventDate: gofakeit.FutureDate().UTC(),
		Capacity:  gofakeit.Number(10, 500),
		Price:     50,
		VenueID:   venueID,
	}
}

func newRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return mr, rdb
}

// hookedVenueRepository runs afterFind once, between the wrapped read and
// the cache fill.
type hookedVenueRepository struct {
	repository.VenueRepository
	once      sync.Once
	afterFind func()
}

func (r *hookedVenueRepository) FindByID(ctx context.Context, id int64) (*model.Venue, error) {
	venue, err := r.VenueRepository.FindByID(ctx, id)
	r.once.Do(r.afterFind)
	return venue, err
}

func TestCachedVenueRepository(t *testing.T) {
	ctx := context.Background()

	t.Run("Reads are served from redis", func(t *testing.T) {
		mr, rdb := newRedis(t)
		backing := repository.NewMemoryVenueRepository()
		repo := cache.NewCachedVenueRepository(backing, rdb, time.Minute)

		saved, err := repo.Save(ctx, newVenue())
		require.NoError(t, err)
		assert.False(t, mr.Exists("catalog:venue:1"))

		_, err = repo.FindByID(ctx, saved.ID)
		require.NoError(t, err)
		require.True(t, mr.Exists("catalog:venue:1"))
		assert.Greater(t, mr.TTL("catalog:venue:1"), time.Duration(0))

		// change the record behind the cache's back
		stale := *saved
		stale.Name = "changed underneath"
		_, err = backing.Update(ctx, &stale)
		require.NoError(t, err)

		got, err := repo.FindByID(ctx, saved.ID)
		require.NoError(t, err)
		assert.Equal(t, saved.Name, got.Name)
		assert.Equal(t, saved.Capacity, got.Capacity)
		assert.True(t, saved.CreatedAt.Equal(got.CreatedAt))
	})

	t.Run("Update evicts", func(t *testing.T) {
		mr, rdb := newRedis(t)
		repo := cache.NewCachedVenueRepository(repository.NewMemoryVenueRepository(), rdb, time.Minute)

		saved, err := repo.Save(ctx, newVenue())
		require.NoError(t, err)
		_, err = repo.FindByID(ctx, saved.ID)
		require.NoError(t, err)

		saved.Name = "renamed"
		_, err = repo.Update(ctx, saved)
		require.NoError(t, err)
		assert.False(t, mr.Exists("catalog:venue:1"))

		got, err := repo.FindByID(ctx, saved.ID)
		require.NoError(t, err)
		assert.Equal(t, "renamed", got.Name)
	})

	t.Run("Delete evicts", func(t *testing.T) {
		_, rdb := newRedis(t)
		repo := cache.NewCachedVenueRepository(repository.NewMemoryVenueRepository(), rdb, time.Minute)

		saved, err := repo.Save(ctx, newVenue())
		require.NoError(t, err)
		_, err = repo.FindByID(ctx, saved.ID)
		require.NoError(t, err)

		deleted, err := repo.DeleteByID(ctx, saved.ID)
		require.NoError(t, err)
		assert.True(t, deleted)

		exists, err := repo.ExistsByID(ctx, saved.ID)
		require.NoError(t, err)
		assert.False(t, exists)

		_, err = repo.FindByID(ctx, saved.ID)
		assert.ErrorIs(t, err, apperrors.ErrNotFound)
	})

	t.Run("Delete during a fill is not re-cached", func(t *testing.T) {
		mr, rdb := newRedis(t)
		backing := repository.NewMemoryVenueRepository()
		hooked := &hookedVenueRepository{VenueRepository: backing}
		repo := cache.NewCachedVenueRepository(hooked, rdb, time.Minute)
		events := service.NewEventService(repository.NewMemoryEventRepository(), repo)

		saved, err := repo.Save(ctx, newVenue())
		require.NoError(t, err)
		hooked.afterFind = func() {
			_, err := repo.DeleteByID(ctx, saved.ID)
			require.NoError(t, err)
		}

		_, err = repo.FindByID(ctx, saved.ID)
		require.NoError(t, err)

		assert.False(t, mr.Exists("catalog:venue:1"))
		_, err = repo.FindByID(ctx, saved.ID)
		assert.ErrorIs(t, err, apperrors.ErrNotFound)
		_, err = events.Create(ctx, newEvent(saved.ID))
		assert.ErrorIs(t, err, apperrors.ErrNotFound)
	})

	t.Run("Existence ignores leftover entries", func(t *testing.T) {
		mr, rdb := newRedis(t)
		// entry left by an earlier process whose store is gone
		mr.HSet("catalog:venue:1",
			"name", "Ghost Hall", "address", "1 Main St", "city", "Lima", "country", "Peru",
			"capacity", "100",
			"created_at", "2025-01-01T00:00:00Z", "updated_at", "2025-01-01T00:00:00Z",
		)
		repo := cache.NewCachedVenueRepository(repository.NewMemoryVenueRepository(), rdb, time.Minute)
		events := service.NewEventService(repository.NewMemoryEventRepository(), repo)

		exists, err := repo.ExistsByID(ctx, 1)
		require.NoError(t, err)
		assert.False(t, exists)

		_, err = events.Create(ctx, newEvent(1))
		assert.ErrorIs(t, err, apperrors.ErrNotFound)
	})

	t.Run("Corrupt entry falls through", func(t *testing.T) {
		mr, rdb := newRedis(t)
		repo := cache.NewCachedVenueRepository(repository.NewMemoryVenueRepository(), rdb, time.Minute)

		saved, err := repo.Save(ctx, newVenue())
		require.NoError(t, err)
		mr.HSet("catalog:venue:1", "capacity", "lots")

		got, err := repo.FindByID(ctx, saved.ID)
		require.NoError(t, err)
		assert.Equal(t, saved.Capacity, got.Capacity)
	})
}

func TestCachedVenueRepository_RedisDown(t *testing.T) {
	ctx := context.Background()
	mr, rdb := newRedis(t)
	mr.Close()
	repo := cache.NewCachedVenueRepository(repository.NewMemoryVenueRepository(), rdb, time.Minute)

	saved, err := repo.Save(ctx, newVenue())
	require.NoError(t, err)

	got, err := repo.FindByID(ctx, saved.ID)
	require.NoError(t, err)
	assert.Equal(t, saved.Name, got.Name)

	exists, err := repo.ExistsByID(ctx, saved.ID)
	require.NoError(t, err)
	assert.True(t, exists)

	_, err = repo.FindByID(ctx, 99)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}
