package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/osse101/wwwhero/internal/domain"
	"github.com/osse101/wwwhero/internal/repository"
)

// querier is the subset of pgxpool.Pool and pgx.Tx the repositories use
type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// getOne scans a single row into T. When no row matches it returns notFound,
// or (nil, nil) if notFound is nil.
func getOne[T any](ctx context.Context, q querier, notFound error, errMsg, sql string, args ...any) (*T, error) {
	rows, err := q.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errMsg, err)
	}
	v, err := pgx.CollectOneRow(rows, pgx.RowToAddrOfStructByName[T])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, notFound
		}
		return nil, fmt.Errorf("%s: %w", errMsg, err)
	}
	return v, nil
}

func getAll[T any](ctx context.Context, q querier, errMsg, sql string, args ...any) ([]T, error) {
	rows, err := q.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errMsg, err)
	}
	out, err := pgx.CollectRows(rows, pgx.RowToStructByName[T])
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errMsg, err)
	}
	return out, nil
}

// execOne runs a write that must touch exactly one row
func execOne(ctx context.Context, q querier, notFound error, errMsg, sql string, args ...any) error {
	tag, err := q.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("%s: %w", errMsg, err)
	}
	if tag.RowsAffected() == 0 {
		return notFound
	}
	return nil
}

func asPgError(err error, code string) (*pgconn.PgError, bool) {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == code {
		return pgErr, true
	}
	return nil, false
}

// ---- Shared by Store and gameTx ----

func getAttributes(ctx context.Context, q querier, characterID int64) (*domain.CharacterAttributes, error) {
	return getOne[domain.CharacterAttributes](ctx, q, nil, ErrMsgFailedToGetAttributes, queryGetAttributes, characterID)
}

func getCooldown(ctx context.Context, q querier, characterID int64, cooldownType domain.CooldownType) (*domain.CharacterCooldown, error) {
	return getOne[domain.CharacterCooldown](ctx, q, nil, ErrMsgFailedToGetCooldown, queryGetCooldown, characterID, string(cooldownType))
}

func setCharacterLocation(ctx context.Context, q querier, loc domain.CharacterLocation) error {
	_, err := q.Exec(ctx, querySetCharacterLocation, loc.CharacterID, loc.LocationID)
	if err == nil {
		return nil
	}
	if pgErr, ok := asPgError(err, PgErrorCodeForeignKeyViolation); ok {
		switch pgErr.ConstraintName {
		case ConstraintLocationCharacter:
			return domain.ErrCharacterNotFound
		case ConstraintLocationLocation:
			return domain.ErrLocationNotFound
		}
	}
	return fmt.Errorf("%s: %w", ErrMsgFailedToSetLocation, err)
}

func getBlueprint(ctx context.Context, q querier, blueprintID int64) (*domain.ItemBlueprint, error) {
	return getOne[domain.ItemBlueprint](ctx, q, domain.ErrBlueprintNotFound, ErrMsgFailedToGetBlueprint, queryGetBlueprint, blueprintID)
}

// uniqueViolation maps a unique-key failure to repository.ErrUniqueViolation
func uniqueViolation(err error, errMsg string) error {
	if pgErr, ok := asPgError(err, PgErrorCodeUniqueViolation); ok {
		return fmt.Errorf("%w: %s", repository.ErrUniqueViolation, pgErr.ConstraintName)
	}
	return fmt.Errorf("%s: %w", errMsg, err)
}
