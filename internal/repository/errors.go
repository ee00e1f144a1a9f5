package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
)

// Domain-level errors I prefer to bubble up from repository implementations.
var (
	ErrNotFound      = errors.New("not found")
	ErrAlreadyExists = errors.New("already exists")
	ErrConflict      = errors.New("conflict")
)

// Entity names used in Error.
const (
	EntityPlayer          = "player"
	EntityTeamPlayer      = "team_player"
	EntityPlayerStatistic = "player_statistic"
)

// Error carries the failed operation and the entity it targeted.
// It unwraps to the mapped cause so errors.Is keeps working upstream.
type Error struct {
	Op     string
	Entity string
	ID     int64
	Err    error
}

func (e *Error) Error() string {
	if e.ID != 0 {
		return fmt.Sprintf("%s %s %d: %v", e.Op, e.Entity, e.ID, e.Err)
	}
	return fmt.Sprintf("%s %s: %v", e.Op, e.Entity, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// Wrap maps err through MapPgError and annotates it with the operation context.
// Context cancellation passes through unwrapped so callers can tell it apart.
func Wrap(op, entity string, id int64, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	var re *Error
	if errors.As(err, &re) {
		return err
	}
	return &Error{Op: op, Entity: entity, ID: id, Err: MapPgError(err)}
}

// MapPgError translates common Postgres error codes to domain errors.
// I only map what I expect to handle explicitly at higher layers; everything else passes through.
func MapPgError(err error) error {
	if err == nil {
		return nil
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgerrcode.UniqueViolation:
			return ErrAlreadyExists
		case pgerrcode.ForeignKeyViolation, pgerrcode.CheckViolation:
			return ErrConflict
		case pgerrcode.SerializationFailure, pgerrcode.DeadlockDetected:
			return ErrConflict
		}
	}
	return err
}
