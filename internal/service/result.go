package service

import (
	"context"
	"errors"
	"strings"

	"github.com/rs/zerolog"

	"github.com/maxviazov/player-roster-service/internal/model"
	"github.com/maxviazov/player-roster-service/internal/repository"
)

type Status string

const (
	StatusSuccess           Status = "success"
	StatusFailure           Status = "failure"
	StatusValidationFailure Status = "validation_failure"
)

// Code classifies a failure for transports that need more than the status.
type Code string

const (
	CodeValidation       Code = "validation"
	CodeInvalidArgument  Code = "invalid_argument"
	CodeNotFound         Code = "not_found"
	CodeInvalidOperation Code = "invalid_operation"
	CodeConflict         Code = "conflict"
	CodeUnauthenticated  Code = "unauthenticated"
	CodeCancelled        Code = "cancelled"
	CodeInternal         Code = "internal_error"
)

// Result is the uniform outcome of a use case: data on success, messages on a
// business failure, field-keyed messages on a validation failure.
type Result[T any] struct {
	Status      Status              `json:"status"`
	Code        Code                `json:"code,omitempty"`
	Data        T                   `json:"data,omitzero"`
	Messages    []string            `json:"messages,omitempty"`
	FieldErrors map[string][]string `json:"field_errors,omitempty"`
}

func (r Result[T]) IsSuccess() bool { return r.Status == StatusSuccess }

func ok[T any](data T) Result[T] {
	return Result[T]{Status: StatusSuccess, Data: data}
}

// errDuplicateAssignment is what callers see for an active assignment collision,
// whether the pre-check or the unique index caught it.
var errDuplicateAssignment = errors.New("player already has an active assignment for this team and championship")

var entityLabels = map[string]string{
	repository.EntityPlayer:          "player",
	repository.EntityTeamPlayer:      "team assignment",
	repository.EntityPlayerStatistic: "player statistic",
}

// failure converts err into a Result. Store text never reaches the caller.
func failure[T any](log zerolog.Logger, op string, err error) Result[T] {
	var re *repository.Error
	errors.As(err, &re)
	ev := func(e *zerolog.Event) *zerolog.Event {
		e = e.Str("op", op)
		if re != nil {
			e = e.Str("repo_op", re.Op).Str("entity", re.Entity).Int64("entity_id", re.ID)
		}
		return e
	}

	switch {
	case errors.Is(err, ErrInvalidInput):
		fields := FieldErrors(err)
		ev(log.Debug()).Interface("field_errors", fields).Msg("validation failed")
		byField := make(map[string][]string, len(fields))
		for _, fe := range fields {
			byField[fe.Field] = append(byField[fe.Field], fe.Message)
		}
		return Result[T]{Status: StatusValidationFailure, Code: CodeValidation, FieldErrors: byField}
	case errors.Is(err, ErrUnauthenticated):
		return fail[T](CodeUnauthenticated, ErrUnauthenticated.Error())
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		ev(log.Warn()).Err(err).Msg("request cancelled")
		return fail[T](CodeCancelled, "the request was cancelled")
	case errors.Is(err, repository.ErrNotFound):
		ev(log.Debug()).Msg("not found")
		return fail[T](CodeNotFound, notFoundMessage(re))
	case errors.Is(err, repository.ErrAlreadyExists), errors.Is(err, errDuplicateAssignment):
		ev(log.Info()).Msg("duplicate active assignment")
		return fail[T](CodeInvalidOperation, errDuplicateAssignment.Error())
	case errors.Is(err, model.ErrInvalidOperation):
		ev(log.Info()).Err(err).Msg("invalid operation")
		return fail[T](CodeInvalidOperation, domainMessage(err, model.ErrInvalidOperation))
	case errors.Is(err, model.ErrInvalidArgument):
		ev(log.Warn()).Err(err).Msg("invalid argument")
		return fail[T](CodeInvalidArgument, domainMessage(err, model.ErrInvalidArgument))
	case errors.Is(err, repository.ErrConflict):
		ev(log.Error()).Err(err).Msg("store conflict")
		return fail[T](CodeConflict, "the record was changed or removed concurrently, please retry")
	default:
		ev(log.Error()).Err(err).Msg("operation failed")
		return fail[T](CodeInternal, "an unexpected error occurred")
	}
}

func fail[T any](code Code, msgs ...string) Result[T] {
	return Result[T]{Status: StatusFailure, Code: code, Messages: msgs}
}

func notFoundMessage(re *repository.Error) string {
	if re != nil {
		if label, ok := entityLabels[re.Entity]; ok {
			return label + " not found"
		}
	}
	return "resource not found"
}

// domainMessage keeps the entity's own wording and drops the repository prefix.
func domainMessage(err, sentinel error) string {
	msg := err.Error()
	if i := strings.Index(msg, sentinel.Error()); i >= 0 {
		msg = msg[i:]
	}
	return msg
}
