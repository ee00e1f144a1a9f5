package repository

import (
	"context"
	"time"

	"github.com/maxviazov/player-roster-service/internal/model"
)

// Pinger represents a minimal readiness probe capability.
type Pinger interface {
	Ping(ctx context.Context) error
}

// TxFunc is the unit of work executed within a transaction boundary.
type TxFunc func(ctx context.Context) error

// TxManager runs fn inside one store transaction. Repositories called with the
// ctx handed to fn join that transaction.
type TxManager interface {
	WithinTx(ctx context.Context, fn TxFunc) error
}

// PlayerRepository declares persistence operations for players.
// Reads return detached copies; writes stamp audit fields.
type PlayerRepository interface {
	GetByID(ctx context.Context, id int64) (model.Player, error)
	// GetByUserID lists the players owned by one account, ordered by name.
	GetByUserID(ctx context.Context, userID string, p Page) (PageResult[model.Player], error)
	Add(ctx context.Context, p model.Player) (model.Player, error)
	Update(ctx context.Context, p model.Player) (model.Player, error)
	// Delete removes the player and, through the store cascade, its assignments and their statistics.
	Delete(ctx context.Context, id int64) (bool, error)
	Exists(ctx context.Context, id int64) (bool, error)
}

// TeamPlayerRepository declares persistence operations for team assignments.
// List results are ordered by JoinedDate, most recent first.
type TeamPlayerRepository interface {
	GetByID(ctx context.Context, id int64) (model.TeamPlayer, error)
	// GetByIDWithPlayer additionally attaches the owning player for display.
	GetByIDWithPlayer(ctx context.Context, id int64) (model.TeamPlayer, error)
	GetAllByPlayerID(ctx context.Context, playerID int64) ([]model.TeamPlayer, error)
	GetActiveByPlayerID(ctx context.Context, playerID int64) ([]model.TeamPlayer, error)
	// HasActiveDuplicate reports whether another active assignment exists for the
	// player/team/championship triple. Names compare case-insensitively.
	HasActiveDuplicate(ctx context.Context, playerID int64, teamName, championshipName string, excludeID *int64) (bool, error)
	Add(ctx context.Context, tp model.TeamPlayer) (model.TeamPlayer, error)
	Update(ctx context.Context, tp model.TeamPlayer) (model.TeamPlayer, error)
	// Delete removes the assignment and, through the store cascade, its statistics.
	Delete(ctx context.Context, id int64) (bool, error)
	Exists(ctx context.Context, id int64) (bool, error)
}

// PlayerStatisticRepository declares persistence operations for game records.
// List results are ordered by GameDate, most recent first.
type PlayerStatisticRepository interface {
	GetByID(ctx context.Context, id int64) (model.PlayerStatistic, error)
	GetByTeamPlayerID(ctx context.Context, teamPlayerID int64) ([]model.PlayerStatistic, error)
	GetByPlayerID(ctx context.Context, playerID int64) ([]model.PlayerStatistic, error)
	// GetByDateRange spans every assignment of the player; both bounds are inclusive.
	GetByDateRange(ctx context.Context, playerID int64, start, end time.Time) ([]model.PlayerStatistic, error)
	// GetAggregates covers every assignment of the player, or just teamPlayerID when set.
	GetAggregates(ctx context.Context, playerID int64, teamPlayerID *int64) (model.StatisticsAggregate, error)
	Add(ctx context.Context, s model.PlayerStatistic) (model.PlayerStatistic, error)
	Update(ctx context.Context, s model.PlayerStatistic) (model.PlayerStatistic, error)
	Delete(ctx context.Context, id int64) (bool, error)
	Exists(ctx context.Context, id int64) (bool, error)
}
