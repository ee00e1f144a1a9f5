package postgres

import (
	"context"
	"errors"

	"github.com/itbasis/go-clock"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/maxviazov/player-roster-service/internal/model"
	"github.com/maxviazov/player-roster-service/internal/repository"
)

type teamPlayerRepository struct {
	pool  *pgxpool.Pool
	clock clock.Clock
}

func NewTeamPlayerRepository(pool *pgxpool.Pool, c clock.Clock) repository.TeamPlayerRepository {
	return &teamPlayerRepository{pool: pool, clock: c}
}

func (r *teamPlayerRepository) GetByID(ctx context.Context, id int64) (model.TeamPlayer, error) {
	if err := ensurePool(r.pool); err != nil {
		return model.TeamPlayer{}, err
	}
	row := getQ(ctx, r.pool).QueryRow(ctx,
		`SELECT `+teamPlayerColumns+` FROM team_players tp WHERE tp.id = $1`, id)
	out, err := scanTeamPlayer(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			err = repository.ErrNotFound
		}
		return model.TeamPlayer{}, repository.Wrap("get", repository.EntityTeamPlayer, id, err)
	}
	return out, nil
}

func (r *teamPlayerRepository) GetByIDWithPlayer(ctx context.Context, id int64) (model.TeamPlayer, error) {
	if err := ensurePool(r.pool); err != nil {
		return model.TeamPlayer{}, err
	}
	row := getQ(ctx, r.pool).QueryRow(ctx,
		`SELECT `+teamPlayerColumns+`, `+playerColumns+`
		 FROM team_players tp
		 JOIN players p ON p.id = tp.player_id
		 WHERE tp.id = $1`, id)
	var tp model.TeamPlayer
	var p model.Player
	if err := row.Scan(append(teamPlayerDest(&tp), playerDest(&p)...)...); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			err = repository.ErrNotFound
		}
		return model.TeamPlayer{}, repository.Wrap("get", repository.EntityTeamPlayer, id, err)
	}
	normalizeAudit(&tp.Audit)
	normalizeAudit(&p.Audit)
	tp.Player = &p
	return tp, nil
}

func (r *teamPlayerRepository) GetAllByPlayerID(ctx context.Context, playerID int64) ([]model.TeamPlayer, error) {
	return r.listByPlayer(ctx, "list", playerID, false)
}

func (r *teamPlayerRepository) GetActiveByPlayerID(ctx context.Context, playerID int64) ([]model.TeamPlayer, error) {
	return r.listByPlayer(ctx, "list_active", playerID, true)
}

func (r *teamPlayerRepository) listByPlayer(ctx context.Context, op string, playerID int64, activeOnly bool) ([]model.TeamPlayer, error) {
	if err := ensurePool(r.pool); err != nil {
		return nil, err
	}
	rows, err := getQ(ctx, r.pool).Query(ctx,
		`SELECT `+teamPlayerColumns+`
		 FROM team_players tp
		 WHERE tp.player_id = $1 AND (NOT $2::BOOLEAN OR tp.is_active)
		 ORDER BY tp.joined_date DESC, tp.id DESC`,
		playerID, activeOnly,
	)
	if err != nil {
		return nil, repository.Wrap(op, repository.EntityTeamPlayer, 0, err)
	}
	out, err := collectTeamPlayers(rows)
	if err != nil {
		return nil, repository.Wrap(op, repository.EntityTeamPlayer, 0, err)
	}
	return out, nil
}

func (r *teamPlayerRepository) HasActiveDuplicate(ctx context.Context, playerID int64, teamName, championshipName string, excludeID *int64) (bool, error) {
	if err := ensurePool(r.pool); err != nil {
		return false, err
	}
	var exists bool
	err := getQ(ctx, r.pool).QueryRow(ctx,
		`SELECT EXISTS(
			SELECT 1 FROM team_players
			WHERE player_id = $1
			  AND lower(team_name) = lower($2)
			  AND lower(championship_name) = lower($3)
			  AND left_date IS NULL
			  AND ($4::BIGINT IS NULL OR id <> $4)
		)`,
		playerID, teamName, championshipName, excludeID,
	).Scan(&exists)
	if err != nil {
		return false, repository.Wrap("duplicate_check", repository.EntityTeamPlayer, playerID, err)
	}
	return exists, nil
}

func (r *teamPlayerRepository) Add(ctx context.Context, tp model.TeamPlayer) (model.TeamPlayer, error) {
	if err := ensurePool(r.pool); err != nil {
		return model.TeamPlayer{}, err
	}
	now := storeNow(r.clock.Now())
	if err := repository.StampCreated(&tp.Audit, now); err != nil {
		return model.TeamPlayer{}, repository.Wrap("add", repository.EntityTeamPlayer, 0, err)
	}
	if !tp.ValidateAt(now) {
		return model.TeamPlayer{}, repository.Wrap("add", repository.EntityTeamPlayer, 0, repository.ErrInvalidEntity)
	}
	row := getQ(ctx, r.pool).QueryRow(ctx,
		`INSERT INTO team_players AS tp (player_id, team_name, championship_name, joined_date, left_date, created_at, created_by)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING `+teamPlayerColumns,
		tp.PlayerID, tp.TeamName, tp.ChampionshipName, tp.JoinedDate, tp.LeftDate, tp.CreatedAt, tp.CreatedBy,
	)
	out, err := scanTeamPlayer(row)
	if err != nil {
		return model.TeamPlayer{}, repository.Wrap("add", repository.EntityTeamPlayer, 0, err)
	}
	return out, nil
}

// Update persists names, dates and the update stamp; player_id and created_* never change.
func (r *teamPlayerRepository) Update(ctx context.Context, tp model.TeamPlayer) (model.TeamPlayer, error) {
	if err := ensurePool(r.pool); err != nil {
		return model.TeamPlayer{}, err
	}
	if err := repository.CheckUpdated(tp.Audit); err != nil {
		return model.TeamPlayer{}, repository.Wrap("update", repository.EntityTeamPlayer, tp.ID, err)
	}
	row := getQ(ctx, r.pool).QueryRow(ctx,
		`UPDATE team_players AS tp
		 SET team_name = $2, championship_name = $3, joined_date = $4, left_date = $5,
		     updated_at = $6, updated_by = $7
		 WHERE tp.id = $1
		 RETURNING `+teamPlayerColumns,
		tp.ID, tp.TeamName, tp.ChampionshipName, tp.JoinedDate, tp.LeftDate, tp.UpdatedAt, tp.UpdatedBy,
	)
	out, err := scanTeamPlayer(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			err = repository.ErrNotFound
		}
		return model.TeamPlayer{}, repository.Wrap("update", repository.EntityTeamPlayer, tp.ID, err)
	}
	return out, nil
}

func (r *teamPlayerRepository) Delete(ctx context.Context, id int64) (bool, error) {
	if err := ensurePool(r.pool); err != nil {
		return false, err
	}
	tag, err := getQ(ctx, r.pool).Exec(ctx, `DELETE FROM team_players WHERE id = $1`, id)
	if err != nil {
		return false, repository.Wrap("delete", repository.EntityTeamPlayer, id, err)
	}
	return tag.RowsAffected() > 0, nil
}

func (r *teamPlayerRepository) Exists(ctx context.Context, id int64) (bool, error) {
	if err := ensurePool(r.pool); err != nil {
		return false, err
	}
	var exists bool
	err := getQ(ctx, r.pool).QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM team_players WHERE id = $1)`, id).Scan(&exists)
	if err != nil {
		return false, repository.Wrap("exists", repository.EntityTeamPlayer, id, err)
	}
	return exists, nil
}

var _ repository.TeamPlayerRepository = (*teamPlayerRepository)(nil)
