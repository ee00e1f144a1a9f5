// Package model contains the roster entities, their invariants and the
// read-only aggregate shapes computed from them.
package model

import (
	"fmt"
	"strings"
	"time"
)

// Audit is the created/updated quad every persisted entity carries.
type Audit struct {
	CreatedAt time.Time  `json:"created_at"`
	CreatedBy string     `json:"created_by"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
	UpdatedBy *string    `json:"updated_by,omitempty"`
}

// Touch stamps UpdatedAt/UpdatedBy. Each call overwrites the previous stamp.
func (a *Audit) Touch(userID string, now time.Time) error {
	if strings.TrimSpace(userID) == "" {
		return fmt.Errorf("%w: user id must not be empty", ErrInvalidArgument)
	}
	ts := now.UTC()
	a.UpdatedAt = &ts
	a.UpdatedBy = &userID
	return nil
}

func (a Audit) hasCreator() bool {
	return strings.TrimSpace(a.CreatedBy) != ""
}

// DateOf truncates t to midnight UTC of its calendar date.
// DATE columns round-trip through this shape, so entities normalise to it early.
func DateOf(t time.Time) time.Time {
	if t.IsZero() {
		return t
	}
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Today is the UTC calendar date of now. Date rules compare against it, never
// against the raw instant.
func Today(now time.Time) time.Time {
	return DateOf(now.UTC())
}
