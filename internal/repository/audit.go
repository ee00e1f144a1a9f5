package repository

import (
	"fmt"
	"strings"
	"time"

	"github.com/maxviazov/player-roster-service/internal/model"
)

// StampCreated is the mandatory audit step of every Add: it sets CreatedAt and
// clears the update pair. CreatedBy must already be provided by the caller.
func StampCreated(a *model.Audit, now time.Time) error {
	if strings.TrimSpace(a.CreatedBy) == "" {
		return fmt.Errorf("%w: created_by must be set before add", model.ErrInvalidArgument)
	}
	a.CreatedAt = now.UTC()
	a.UpdatedAt = nil
	a.UpdatedBy = nil
	return nil
}

// CheckUpdated is the mandatory audit step of every Update: the entity must carry
// the stamp produced by UpdateLastModified or MarkAsLeft.
func CheckUpdated(a model.Audit) error {
	if a.UpdatedAt == nil || a.UpdatedBy == nil || strings.TrimSpace(*a.UpdatedBy) == "" {
		return fmt.Errorf("%w: updated_at/updated_by must be stamped before update", model.ErrInvalidArgument)
	}
	return nil
}

// ErrInvalidEntity is returned when an entity fails its own Validate guard.
var ErrInvalidEntity = fmt.Errorf("%w: entity failed validation", model.ErrInvalidArgument)
