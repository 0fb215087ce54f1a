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

const eventColumns = `id, name, description, event_date, capacity, price, venue_id, created_at, updated_at`

type EventRepositoryImpl struct {
	db db
}

func NewEventRepository(db db) *EventRepositoryImpl {
	return &EventRepositoryImpl{db: db}
}

func (r *EventRepositoryImpl) FindAll(ctx context.Context) ([]*model.Event, error) {
	rows, err := r.db.Query(ctx, `SELECT `+eventColumns+` FROM events ORDER BY id`)
	if err != nil {
		return nil, wrapDBError("repository.Event.FindAll", err)
	}
	return r.collect(rows, "repository.Event.FindAll")
}

func (r *EventRepositoryImpl) FindByID(ctx context.Context, id int64) (*model.Event, error) {
	rows, err := r.db.Query(ctx, `SELECT `+eventColumns+` FROM events WHERE id = $1`, id)
	if err != nil {
		return nil, wrapDBError("repository.Event.FindByID", err)
	}
	return r.collectOne(rows, "repository.Event.FindByID", id)
}

func (r *EventRepositoryImpl) FindByVenueID(ctx context.Context, venueID int64) ([]*model.Event, error) {
	rows, err := r.db.Query(ctx, `SELECT `+eventColumns+` FROM events WHERE venue_id = $1 ORDER BY id`, venueID)
	if err != nil {
		return nil, wrapDBError("repository.Event.FindByVenueID", err)
	}
	return r.collect(rows, "repository.Event.FindByVenueID")
}

func (r *EventRepositoryImpl) Save(ctx context.Context, event *model.Event) (*model.Event, error) {
	if event.ID != 0 {
		return r.Update(ctx, event)
	}
	e := mapper.EventToEntity(event)
	rows, err := r.db.Query(ctx, `
		INSERT INTO events (name, description, event_date, capacity, price, venue_id)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING `+eventColumns,
		e.Name, e.Description, e.EventDate, e.Capacity, e.Price, e.VenueID,
	)
	if err != nil {
		return nil, wrapDBError("repository.Event.Save", err)
	}
	return r.collectOne(rows, "repository.Event.Save", 0)
}

func (r *EventRepositoryImpl) Update(ctx context.Context, event *model.Event) (*model.Event, error) {
	if event.ID <= 0 {
		return nil, invalidID("event", event.ID)
	}
	e := mapper.EventToEntity(event)
	rows, err := r.db.Query(ctx, `
		UPDATE events
		SET name = $1, description = $2, event_date = $3, capacity = $4, price = $5, venue_id = $6, updated_at = NOW()
		WHERE id = $7
		RETURNING `+eventColumns,
		e.Name, e.Description, e.EventDate, e.Capacity, e.Price, e.VenueID, e.ID,
	)
	if err != nil {
		return nil, wrapDBError("repository.Event.Update", err)
	}
	return r.collectOne(rows, "repository.Event.Update", e.ID)
}

func (r *EventRepositoryImpl) DeleteByID(ctx context.Context, id int64) (bool, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM events WHERE id = $1`, id)
	if err != nil {
		return false, wrapDBError("repository.Event.DeleteByID", err)
	}
	return tag.RowsAffected() > 0, nil
}

func (r *EventRepositoryImpl) ExistsByID(ctx context.Context, id int64) (bool, error) {
	var exists bool
	if err := r.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM events WHERE id = $1)`, id).Scan(&exists); err != nil {
		return false, wrapDBError("repository.Event.ExistsByID", err)
	}
	return exists, nil
}

func (r *EventRepositoryImpl) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM events`).Scan(&n); err != nil {
		return 0, wrapDBError("repository.Event.Count", err)
	}
	return n, nil
}

func (r *EventRepositoryImpl) collect(rows pgx.Rows, op string) ([]*model.Event, error) {
	entities, err := pgx.CollectRows(rows, pgx.RowToAddrOfStructByName[entity.EventEntity])
	if err != nil {
		return nil, wrapDBError(op, err)
	}
	events := make([]*model.Event, 0, len(entities))
	for _, e := range entities {
		events = append(events, mapper.EventFromEntity(e))
	}
	return events, nil
}

func (r *EventRepositoryImpl) collectOne(rows pgx.Rows, op string, id int64) (*model.Event, error) {
	e, err := pgx.CollectExactlyOneRow(rows, pgx.RowToAddrOfStructByName[entity.EventEntity])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NotFound("Event", id)
		}
		return nil, wrapDBError(op, err)
	}
	return mapper.EventFromEntity(e), nil
}
