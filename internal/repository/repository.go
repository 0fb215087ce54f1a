package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go-gin-catalog/internal/model"
	apperrors "go-gin-catalog/pkg/app_errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

type VenueRepository interface {
	FindAll(ctx context.Context) ([]*model.Venue, error)
	FindByID(ctx context.Context, id int64) (*model.Venue, error)
	Save(ctx context.Context, venue *model.Venue) (*model.Venue, error)
	Update(ctx context.Context, venue *model.Venue) (*model.Venue, error)
	DeleteByID(ctx context.Context, id int64) (bool, error)
	ExistsByID(ctx context.Context, id int64) (bool, error)
	Count(ctx context.Context) (int64, error)
}

type EventRepository interface {
	FindAll(ctx context.Context) ([]*model.Event, error)
	FindByID(ctx context.Context, id int64) (*model.Event, error)
	FindByVenueID(ctx context.Context, venueID int64) ([]*model.Event, error)
	Save(ctx context.Context, event *model.Event) (*model.Event, error)
	Update(ctx context.Context, event *model.Event) (*model.Event, error)
	DeleteByID(ctx context.Context, id int64) (bool, error)
	ExistsByID(ctx context.Context, id int64) (bool, error)
	Count(ctx context.Context) (int64, error)
}

// db is satisfied by *pgxpool.Pool, *pgx.Conn and pgx.Tx, so integration
// tests can run each case inside a rolled-back transaction.
type db interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// integrityViolationClass is the SQLSTATE class for constraint failures
// (unique, foreign key, not-null, check, exclusion).
const integrityViolationClass = "23"

// wrapDBError annotates err with op. Constraint failures become
// apperrors.Integrity so the HTTP layer answers 409 without exposing the
// driver message.
func wrapDBError(op string, err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && strings.HasPrefix(pgErr.Code, integrityViolationClass) {
		return apperrors.Integrity(fmt.Errorf("%s: %w", op, err))
	}
	return fmt.Errorf("%s: %w", op, err)
}

func invalidID(resource string, id int64) error {
	return apperrors.InvalidArgument(fmt.Sprintf("%s id must be positive to update, got %d", resource, id))
}

var (
	_ VenueRepository = (*VenueRepositoryImpl)(nil)
	_ VenueRepository = (*MemoryVenueRepository)(nil)
	_ EventRepository = (*EventRepositoryImpl)(nil)
	_ EventRepository = (*MemoryEventRepository)(nil)
)
