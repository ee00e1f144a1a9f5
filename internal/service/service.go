// Package service holds business logic orchestration across repositories and handlers.
// Every use case returns a Result; this is the only layer that turns errors into outcomes.
package service

import (
	"context"
	"errors"
	"strings"

	"github.com/maxviazov/player-roster-service/internal/dto"
	"github.com/maxviazov/player-roster-service/internal/repository"
	"github.com/maxviazov/player-roster-service/internal/validation"
)

// ErrInvalidInput is the marker error for aggregated validation failures (maps to HTTP 400).
// Field-level details are retrieved via FieldErrors(err).
var ErrInvalidInput = errors.New("invalid input")

// ErrUnauthenticated is returned when a use case runs without a current user.
var ErrUnauthenticated = errors.New("current user is required")

// FieldError describes a single invalid field in a client request.
type FieldError = validation.FieldError

// invalidInputError aggregates multiple FieldError instances and unwraps to ErrInvalidInput.
type invalidInputError struct {
	fields []FieldError
}

func (e *invalidInputError) Error() string        { return ErrInvalidInput.Error() }
func (e *invalidInputError) Unwrap() error        { return ErrInvalidInput }
func (e *invalidInputError) Fields() []FieldError { return e.fields }

// newInvalidInput builds an aggregated validation error if any field errors are present.
func newInvalidInput(fe []FieldError) error {
	if len(fe) == 0 {
		return nil
	}
	return &invalidInputError{fields: fe}
}

// FieldErrors extracts field errors from an aggregated validation error.
func FieldErrors(err error) []FieldError {
	if err == nil {
		return nil
	}
	var v *invalidInputError
	if errors.As(err, &v) {
		return v.Fields()
	}
	return nil
}

func requireUser(userID string) error {
	if strings.TrimSpace(userID) == "" {
		return ErrUnauthenticated
	}
	return nil
}

func requireID(field string, id int64) error {
	if id <= 0 {
		return newInvalidInput([]FieldError{{Field: field, Message: "must be > 0"}})
	}
	return nil
}

// PlayerService defines player-oriented use cases. currentUserID owns what it creates
// and only sees its own players.
type PlayerService interface {
	Create(ctx context.Context, currentUserID string, in dto.CreatePlayerRequest) Result[dto.PlayerResponse]
	Get(ctx context.Context, currentUserID string, id int64) Result[dto.PlayerResponse]
	ListByUser(ctx context.Context, currentUserID string, page repository.Page) Result[dto.Page[dto.PlayerResponse]]
	Update(ctx context.Context, currentUserID string, id int64, in dto.UpdatePlayerRequest) Result[dto.PlayerResponse]
	Delete(ctx context.Context, currentUserID string, id int64) Result[struct{}]
}

// TeamPlayerService defines team assignment use cases.
type TeamPlayerService interface {
	Assign(ctx context.Context, currentUserID string, playerID int64, in dto.CreateTeamPlayerRequest) Result[dto.TeamPlayerResponse]
	Get(ctx context.Context, currentUserID string, id int64) Result[dto.TeamPlayerResponse]
	ListByPlayer(ctx context.Context, currentUserID string, playerID int64, activeOnly bool) Result[[]dto.TeamPlayerResponse]
	Update(ctx context.Context, currentUserID string, id int64, in dto.UpdateTeamPlayerRequest) Result[dto.TeamPlayerResponse]
	MarkAsLeft(ctx context.Context, currentUserID string, id int64, in dto.MarkAsLeftRequest) Result[dto.TeamPlayerResponse]
	Delete(ctx context.Context, currentUserID string, id int64) Result[struct{}]
}

// PlayerStatisticService defines game record use cases.
type PlayerStatisticService interface {
	Record(ctx context.Context, currentUserID string, in dto.CreatePlayerStatisticRequest) Result[dto.PlayerStatisticResponse]
	Get(ctx context.Context, currentUserID string, id int64) Result[dto.PlayerStatisticResponse]
	Update(ctx context.Context, currentUserID string, id int64, in dto.UpdatePlayerStatisticRequest) Result[dto.PlayerStatisticResponse]
	Delete(ctx context.Context, currentUserID string, id int64) Result[struct{}]
	ListByTeamPlayer(ctx context.Context, currentUserID string, teamPlayerID int64) Result[[]dto.PlayerStatisticResponse]
	ListByPlayer(ctx context.Context, currentUserID string, playerID int64) Result[[]dto.PlayerStatisticResponse]
	ListByDateRange(ctx context.Context, currentUserID string, playerID int64, in dto.DateRange) Result[[]dto.PlayerStatisticResponse]
	Aggregates(ctx context.Context, currentUserID string, playerID int64, teamPlayerID *int64) Result[dto.StatisticsSummary]
}
