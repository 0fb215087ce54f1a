package repository

import (
	"context"
	"errors"

	"go-gin-catalog/internal/mapper"
	"go-gin-catalog/internal/model"
	"go-gin-catalog/internal/repository/entity"
	apperrors "go-gin-catalog/pkg/app_errors"

	"github.com/jackc/pgx/v5"
)

const venueColumns = `id, name, address, city, country, capacity, created_at, updated_at`

type VenueRepositoryImpl struct {
	db db
}

// NewVenueRepository returns the Postgres adapter. Pass *pgxpool.Pool in
// production and a pgx.Tx in tests.
func NewVenueRepository(db db) *VenueRepositoryImpl {
	return &VenueRepositoryImpl{db: db}
}

func (r *VenueRepositoryImpl) FindAll(ctx context.Context) ([]*model.Venue, error) {
	rows, err := r.db.Query(ctx, `SELECT `+venueColumns+` FROM venues ORDER BY id`)
	if err != nil {
		return nil, wrapDBError("repository.Venue.FindAll", err)
	}
	entities, err := pgx.CollectRows(rows, pgx.RowToAddrOfStructByName[entity.VenueEntity])
	if err != nil {
		return nil, wrapDBError("repository.Venue.FindAll", err)
	}
	venues := make([]*model.Venue, 0, len(entities))
	for _, e := range entities {
		venues = append(venues, mapper.VenueFromEntity(e))
	}
	return venues, nil
}

func (r *VenueRepositoryImpl) FindByID(ctx context.Context, id int64) (*model.Venue, error) {
	rows, err := r.db.Query(ctx, `SELECT `+venueColumns+` FROM venues WHERE id = $1`, id)
	if err != nil {
		return nil, wrapDBError("repository.Venue.FindByID", err)
	}
	return r.collectOne(rows, "repository.Venue.FindByID", id)
}

// Save inserts a new venue. A venue that already carries an id is treated as
// an update.
func (r *VenueRepositoryImpl) Save(ctx context.Context, venue *model.Venue) (*model.Venue, error) {
	if venue.ID != 0 {
		return r.Update(ctx, venue)
	}
	e := mapper.VenueToEntity(venue)
	rows, err := r.db.Query(ctx, `
		INSERT INTO venues (name, address, city, country, capacity)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING `+venueColumns,
		e.Name, e.Address, e.City, e.Country, e.Capacity,
	)
	if err != nil {
		return nil, wrapDBError("repository.Venue.Save", err)
	}
	return r.collectOne(rows, "repository.Venue.Save", 0)
}

func (r *VenueRepositoryImpl) Update(ctx context.Context, venue *model.Venue) (*model.Venue, error) {
	if venue.ID <= 0 {
		return nil, invalidID("venue", venue.ID)
	}
	e := mapper.VenueToEntity(venue)
	rows, err := r.db.Query(ctx, `
		UPDATE venues
		SET name = $1, address = $2, city = $3, country = $4, capacity = $5, updated_at = NOW()
		WHERE id = $6
		RETURNING `+venueColumns,
		e.Name, e.Address, e.City, e.Country, e.Capacity, e.ID,
	)
	if err != nil {
		return nil, wrapDBError("repository.Venue.Update", err)
	}
	return r.collectOne(rows, "repository.Venue.Update", e.ID)
}

func (r *VenueRepositoryImpl) DeleteByID(ctx context.Context, id int64) (bool, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM venues WHERE id = $1`, id)
	if err != nil {
		return false, wrapDBError("repository.Venue.DeleteByID", err)
	}
	return tag.RowsAffected() > 0, nil
}

func (r *VenueRepositoryImpl) ExistsByID(ctx context.Context, id int64) (bool, error) {
	var exists bool
	if err := r.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM venues WHERE id = $1)`, id).Scan(&exists); err != nil {
		return false, wrapDBError("repository.Venue.ExistsByID", err)
	}
	return exists, nil
}

func (r *VenueRepositoryImpl) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM venues`).Scan(&n); err != nil {
		return 0, wrapDBError("repository.Venue.Count", err)
	}
	return n, nil
}

func (r *VenueRepositoryImpl) collectOne(rows pgx.Rows, op string, id int64) (*model.Venue, error) {
	e, err := pgx.CollectExactlyOneRow(rows, pgx.RowToAddrOfStructByName[entity.VenueEntity])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NotFound("Venue", id)
		}
		return nil, wrapDBError(op, err)
	}
	return mapper.VenueFromEntity(e), nil
}
