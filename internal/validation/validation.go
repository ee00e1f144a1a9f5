// Package validation turns request DTOs into field-keyed error lists.
// Validators never touch the store; cross-entity checks live in the service layer.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
	"github.com/itbasis/go-clock"

	"github.com/maxviazov/player-roster-service/internal/dto"
	"github.com/maxviazov/player-roster-service/internal/model"
)

// FieldError describes a single invalid field in a client request.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Errors accumulates every violated rule, in the order they were found.
type Errors []FieldError

func (e *Errors) Add(field, message string) {
	*e = append(*e, FieldError{Field: field, Message: message})
}

// ByField groups the messages per field.
func (e Errors) ByField() map[string][]string {
	out := make(map[string][]string, len(e))
	for _, fe := range e {
		out[fe.Field] = append(out[fe.Field], fe.Message)
	}
	return out
}

// Validator wraps go-playground/validator with the roster's date rules.
// "now" comes from the injected clock so past/future checks are testable.
type Validator struct {
	v     *validator.Validate
	clock clock.Clock
}

func New(c clock.Clock) *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "" || name == "-" {
			return f.Name
		}
		return name
	})
	out := &Validator{v: v, clock: c}
	mustRegister(v, "notblank", validators.NotBlank)
	mustRegister(v, "date", func(fl validator.FieldLevel) bool {
		t, ok := timeOf(fl.Field())
		return ok && !t.IsZero()
	})
	// past and notfuture compare calendar dates: a date of birth of today is not past.
	mustRegister(v, "past", func(fl validator.FieldLevel) bool {
		t, ok := timeOf(fl.Field())
		return ok && model.DateOf(t).Before(out.today())
	})
	mustRegister(v, "notfuture", func(fl validator.FieldLevel) bool {
		t, ok := timeOf(fl.Field())
		return ok && !model.DateOf(t).After(out.today())
	})
	return out
}

func (v *Validator) today() time.Time { return model.Today(v.clock.Now()) }

func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic(fmt.Sprintf("validation: register %q: %v", tag, err))
	}
}

func timeOf(fv reflect.Value) (time.Time, bool) {
	for fv.Kind() == reflect.Pointer {
		if fv.IsNil() {
			return time.Time{}, false
		}
		fv = fv.Elem()
	}
	t, ok := fv.Interface().(time.Time)
	return t, ok
}

// Struct runs the tag rules on in and converts failures into Errors.
func (v *Validator) Struct(in any) Errors {
	var errs Errors
	err := v.v.Struct(in)
	if err == nil {
		return errs
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		errs.Add("request", "could not be validated")
		return errs
	}
	for _, fe := range verrs {
		errs.Add(fe.Field(), message(fe))
	}
	return errs
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required", "notblank", "date":
		return "is required"
	case "max":
		return "must be at most " + fe.Param() + " characters"
	case "gt":
		return "must be greater than " + fe.Param()
	case "gte":
		return "must be greater than or equal to " + fe.Param()
	case "past":
		return "must be in the past"
	case "notfuture":
		return "must not be in the future"
	case "http_url":
		return "must be an absolute http or https URL"
	default:
		return "is invalid"
	}
}

// Request strings are checked after trimming, as they are stored.

func (v *Validator) CreatePlayer(in dto.CreatePlayerRequest) Errors {
	return v.Struct(in.Trimmed())
}

func (v *Validator) UpdatePlayer(in dto.UpdatePlayerRequest) Errors {
	return v.Struct(in.Trimmed())
}

func (v *Validator) CreateTeamPlayer(in dto.CreateTeamPlayerRequest) Errors {
	errs := v.Struct(in.Trimmed())
	if in.LeftDate != nil && !in.JoinedDate.IsZero() && !model.DateOf(*in.LeftDate).After(model.DateOf(in.JoinedDate)) {
		errs.Add("left_date", "must be after joined_date")
	}
	return errs
}

func (v *Validator) UpdateTeamPlayer(in dto.UpdateTeamPlayerRequest) Errors {
	return v.Struct(in.Trimmed())
}

func (v *Validator) MarkAsLeft(in dto.MarkAsLeftRequest) Errors {
	return v.Struct(in)
}

func (v *Validator) CreatePlayerStatistic(in dto.CreatePlayerStatisticRequest) Errors {
	return v.Struct(in)
}

func (v *Validator) UpdatePlayerStatistic(in dto.UpdatePlayerStatisticRequest) Errors {
	return v.Struct(in)
}

func (v *Validator) DateRange(in dto.DateRange) Errors {
	errs := v.Struct(in)
	if !in.From.IsZero() && !in.To.IsZero() && model.DateOf(in.From).After(model.DateOf(in.To)) {
		errs.Add("from", "must not be after to")
	}
	return errs
}
