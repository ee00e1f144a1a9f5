package model

import (
	"errors"
	"fmt"
)

// Sentinel errors for entity rule violations. Callers match them with errors.Is;
// the wrapped message carries the detail.
var (
	ErrInvalidArgument  = errors.New("invalid argument")
	ErrInvalidOperation = errors.New("invalid operation")

	ErrLeftDateNotAfterJoined = fmt.Errorf("%w: left date must be after joined date", ErrInvalidArgument)
	ErrLeftDateInFuture       = fmt.Errorf("%w: left date must not be in the future", ErrInvalidArgument)
)
