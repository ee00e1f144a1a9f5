package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/itbasis/go-clock"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/maxviazov/player-roster-service/internal/model"
	"github.com/maxviazov/player-roster-service/internal/repository"
)

type playerStatisticRepository struct {
	pool  *pgxpool.Pool
	clock clock.Clock
}

func NewPlayerStatisticRepository(pool *pgxpool.Pool, c clock.Clock) repository.PlayerStatisticRepository {
	return &playerStatisticRepository{pool: pool, clock: c}
}

func (r *playerStatisticRepository) GetByID(ctx context.Context, id int64) (model.PlayerStatistic, error) {
	if err := ensurePool(r.pool); err != nil {
		return model.PlayerStatistic{}, err
	}
	row := getQ(ctx, r.pool).QueryRow(ctx,
		`SELECT `+statisticColumns+` FROM player_statistics ps WHERE ps.id = $1`, id)
	out, err := scanStatistic(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			err = repository.ErrNotFound
		}
		return model.PlayerStatistic{}, repository.Wrap("get", repository.EntityPlayerStatistic, id, err)
	}
	return out, nil
}

func (r *playerStatisticRepository) GetByTeamPlayerID(ctx context.Context, teamPlayerID int64) ([]model.PlayerStatistic, error) {
	return r.list(ctx, "list_by_team_player",
		`SELECT `+statisticColumns+`
		 FROM player_statistics ps
		 WHERE ps.team_player_id = $1
		 ORDER BY ps.game_date DESC, ps.id DESC`,
		teamPlayerID,
	)
}

func (r *playerStatisticRepository) GetByPlayerID(ctx context.Context, playerID int64) ([]model.PlayerStatistic, error) {
	return r.list(ctx, "list_by_player",
		`SELECT `+statisticColumns+`
		 FROM player_statistics ps
		 JOIN team_players tp ON tp.id = ps.team_player_id
		 WHERE tp.player_id = $1
		 ORDER BY ps.game_date DESC, ps.id DESC`,
		playerID,
	)
}

func (r *playerStatisticRepository) GetByDateRange(ctx context.Context, playerID int64, start, end time.Time) ([]model.PlayerStatistic, error) {
	start, end = model.DateOf(start), model.DateOf(end)
	if start.After(end) {
		return nil, repository.Wrap("list_by_date_range", repository.EntityPlayerStatistic, 0,
			fmt.Errorf("%w: start %s is after end %s", model.ErrInvalidArgument, start.Format(time.DateOnly), end.Format(time.DateOnly)))
	}
	return r.list(ctx, "list_by_date_range",
		`SELECT `+statisticColumns+`
		 FROM player_statistics ps
		 JOIN team_players tp ON tp.id = ps.team_player_id
		 WHERE tp.player_id = $1 AND ps.game_date BETWEEN $2 AND $3
		 ORDER BY ps.game_date DESC, ps.id DESC`,
		playerID, start, end,
	)
}

func (r *playerStatisticRepository) list(ctx context.Context, op, sql string, args ...any) ([]model.PlayerStatistic, error) {
	if err := ensurePool(r.pool); err != nil {
		return nil, err
	}
	rows, err := getQ(ctx, r.pool).Query(ctx, sql, args...)
	if err != nil {
		return nil, repository.Wrap(op, repository.EntityPlayerStatistic, 0, err)
	}
	out, err := collectStatistics(rows)
	if err != nil {
		return nil, repository.Wrap(op, repository.EntityPlayerStatistic, 0, err)
	}
	return out, nil
}

// GetAggregates sums in SQL and derives averages in Go so the zero-games case
// shares one division guard with the in-memory store.
func (r *playerStatisticRepository) GetAggregates(ctx context.Context, playerID int64, teamPlayerID *int64) (model.StatisticsAggregate, error) {
	if err := ensurePool(r.pool); err != nil {
		return model.StatisticsAggregate{}, err
	}
	var games, goals, assists, minutes int
	err := getQ(ctx, r.pool).QueryRow(ctx,
		`SELECT
			COUNT(ps.id),
			COALESCE(SUM(ps.goals), 0),
			COALESCE(SUM(ps.assists), 0),
			COALESCE(SUM(ps.minutes_played), 0)
		 FROM player_statistics ps
		 JOIN team_players tp ON tp.id = ps.team_player_id
		 WHERE tp.player_id = $1 AND ($2::BIGINT IS NULL OR ps.team_player_id = $2)`,
		playerID, teamPlayerID,
	).Scan(&games, &goals, &assists, &minutes)
	if err != nil {
		return model.StatisticsAggregate{}, repository.Wrap("aggregate", repository.EntityPlayerStatistic, playerID, err)
	}
	return model.NewStatisticsAggregate(games, goals, assists, minutes), nil
}

func (r *playerStatisticRepository) Add(ctx context.Context, s model.PlayerStatistic) (model.PlayerStatistic, error) {
	if err := ensurePool(r.pool); err != nil {
		return model.PlayerStatistic{}, err
	}
	now := storeNow(r.clock.Now())
	if err := repository.StampCreated(&s.Audit, now); err != nil {
		return model.PlayerStatistic{}, repository.Wrap("add", repository.EntityPlayerStatistic, 0, err)
	}
	if !s.ValidateAt(now) {
		return model.PlayerStatistic{}, repository.Wrap("add", repository.EntityPlayerStatistic, 0, repository.ErrInvalidEntity)
	}
	row := getQ(ctx, r.pool).QueryRow(ctx,
		`INSERT INTO player_statistics AS ps (
			team_player_id, game_date, minutes_played, is_starter, jersey_number, goals, assists, created_at, created_by
		 ) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		 RETURNING `+statisticColumns,
		s.TeamPlayerID, s.GameDate, s.MinutesPlayed, s.IsStarter, s.JerseyNumber, s.Goals, s.Assists, s.CreatedAt, s.CreatedBy,
	)
	out, err := scanStatistic(row)
	if err != nil {
		return model.PlayerStatistic{}, repository.Wrap("add", repository.EntityPlayerStatistic, 0, err)
	}
	return out, nil
}

// Update keeps the statistic attached to its original assignment.
func (r *playerStatisticRepository) Update(ctx context.Context, s model.PlayerStatistic) (model.PlayerStatistic, error) {
	if err := ensurePool(r.pool); err != nil {
		return model.PlayerStatistic{}, err
	}
	if err := repository.CheckUpdated(s.Audit); err != nil {
		return model.PlayerStatistic{}, repository.Wrap("update", repository.EntityPlayerStatistic, s.ID, err)
	}
	row := getQ(ctx, r.pool).QueryRow(ctx,
		`UPDATE player_statistics AS ps
		 SET game_date = $2, minutes_played = $3, is_starter = $4, jersey_number = $5,
		     goals = $6, assists = $7, updated_at = $8, updated_by = $9
		 WHERE ps.id = $1
		 RETURNING `+statisticColumns,
		s.ID, s.GameDate, s.MinutesPlayed, s.IsStarter, s.JerseyNumber, s.Goals, s.Assists, s.UpdatedAt, s.UpdatedBy,
	)
	out, err := scanStatistic(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			err = repository.ErrNotFound
		}
		return model.PlayerStatistic{}, repository.Wrap("update", repository.EntityPlayerStatistic, s.ID, err)
	}
	return out, nil
}

func (r *playerStatisticRepository) Delete(ctx context.Context, id int64) (bool, error) {
	if err := ensurePool(r.pool); err != nil {
		return false, err
	}
	tag, err := getQ(ctx, r.pool).Exec(ctx, `DELETE FROM player_statistics WHERE id = $1`, id)
	if err != nil {
		return false, repository.Wrap("delete", repository.EntityPlayerStatistic, id, err)
	}
	return tag.RowsAffected() > 0, nil
}

func (r *playerStatisticRepository) Exists(ctx context.Context, id int64) (bool, error) {
	if err := ensurePool(r.pool); err != nil {
		return false, err
	}
	var exists bool
	err := getQ(ctx, r.pool).QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM player_statistics WHERE id = $1)`, id).Scan(&exists)
	if err != nil {
		return false, repository.Wrap("exists", repository.EntityPlayerStatistic, id, err)
	}
	return exists, nil
}

var _ repository.PlayerStatisticRepository = (*playerStatisticRepository)(nil)
