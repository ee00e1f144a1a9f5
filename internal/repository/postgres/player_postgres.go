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

type playerRepository struct {
	pool  *pgxpool.Pool
	clock clock.Clock
}

func NewPlayerRepository(pool *pgxpool.Pool, c clock.Clock) repository.PlayerRepository {
	return &playerRepository{pool: pool, clock: c}
}

func (r *playerRepository) GetByID(ctx context.Context, id int64) (model.Player, error) {
	if err := ensurePool(r.pool); err != nil {
		return model.Player{}, err
	}
	row := getQ(ctx, r.pool).QueryRow(ctx,
		`SELECT `+playerColumns+` FROM players p WHERE p.id = $1`, id)
	out, err := scanPlayer(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			err = repository.ErrNotFound
		}
		return model.Player{}, repository.Wrap("get", repository.EntityPlayer, id, err)
	}
	return out, nil
}

func (r *playerRepository) GetByUserID(ctx context.Context, userID string, p repository.Page) (repository.PageResult[model.Player], error) {
	if err := ensurePool(r.pool); err != nil {
		return repository.PageResult[model.Player]{}, err
	}
	p = p.Normalize()
	rows, err := getQ(ctx, r.pool).Query(ctx,
		`SELECT `+playerColumns+`, COUNT(*) OVER() AS total
		 FROM players p WHERE p.user_id = $1
		 ORDER BY p.name, p.id
		 LIMIT $2 OFFSET $3`,
		userID, p.Limit, p.Offset,
	)
	if err != nil {
		return repository.PageResult[model.Player]{}, repository.Wrap("list", repository.EntityPlayer, 0, err)
	}
	defer rows.Close()
	res := repository.PageResult[model.Player]{Items: make([]model.Player, 0, p.Limit)}
	for rows.Next() {
		var it model.Player
		var total int
		if err := rows.Scan(append(playerDest(&it), &total)...); err != nil {
			return repository.PageResult[model.Player]{}, repository.Wrap("list", repository.EntityPlayer, 0, err)
		}
		normalizeAudit(&it.Audit)
		res.Items = append(res.Items, it)
		res.Total = total
	}
	if err := rows.Err(); err != nil {
		return repository.PageResult[model.Player]{}, repository.Wrap("list", repository.EntityPlayer, 0, err)
	}
	return res, nil
}

func (r *playerRepository) Add(ctx context.Context, p model.Player) (model.Player, error) {
	if err := ensurePool(r.pool); err != nil {
		return model.Player{}, err
	}
	now := storeNow(r.clock.Now())
	if err := repository.StampCreated(&p.Audit, now); err != nil {
		return model.Player{}, repository.Wrap("add", repository.EntityPlayer, 0, err)
	}
	if !p.ValidateAt(now) {
		return model.Player{}, repository.Wrap("add", repository.EntityPlayer, 0, repository.ErrInvalidEntity)
	}
	row := getQ(ctx, r.pool).QueryRow(ctx,
		`INSERT INTO players AS p (user_id, name, date_of_birth, gender, photo_url, created_at, created_by)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING `+playerColumns,
		p.UserID, p.Name, p.DateOfBirth, p.Gender, p.PhotoURL, p.CreatedAt, p.CreatedBy,
	)
	out, err := scanPlayer(row)
	if err != nil {
		return model.Player{}, repository.Wrap("add", repository.EntityPlayer, 0, err)
	}
	return out, nil
}

// Update writes the mutable columns and the update stamp. created_* and user_id
// are not part of the SET list, so the stored values survive.
func (r *playerRepository) Update(ctx context.Context, p model.Player) (model.Player, error) {
	if err := ensurePool(r.pool); err != nil {
		return model.Player{}, err
	}
	if err := repository.CheckUpdated(p.Audit); err != nil {
		return model.Player{}, repository.Wrap("update", repository.EntityPlayer, p.ID, err)
	}
	row := getQ(ctx, r.pool).QueryRow(ctx,
		`UPDATE players AS p
		 SET name = $2, date_of_birth = $3, gender = $4, photo_url = $5, updated_at = $6, updated_by = $7
		 WHERE p.id = $1
		 RETURNING `+playerColumns,
		p.ID, p.Name, p.DateOfBirth, p.Gender, p.PhotoURL, p.UpdatedAt, p.UpdatedBy,
	)
	out, err := scanPlayer(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			err = repository.ErrNotFound
		}
		return model.Player{}, repository.Wrap("update", repository.EntityPlayer, p.ID, err)
	}
	return out, nil
}

func (r *playerRepository) Delete(ctx context.Context, id int64) (bool, error) {
	if err := ensurePool(r.pool); err != nil {
		return false, err
	}
	tag, err := getQ(ctx, r.pool).Exec(ctx, `DELETE FROM players WHERE id = $1`, id)
	if err != nil {
		return false, repository.Wrap("delete", repository.EntityPlayer, id, err)
	}
	return tag.RowsAffected() > 0, nil
}

// Exists performs a lightweight check to see if a player with the given ID exists.
func (r *playerRepository) Exists(ctx context.Context, id int64) (bool, error) {
	if err := ensurePool(r.pool); err != nil {
		return false, err
	}
	var exists bool
	err := getQ(ctx, r.pool).QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM players WHERE id = $1)`, id).Scan(&exists)
	if err != nil {
		return false, repository.Wrap("exists", repository.EntityPlayer, id, err)
	}
	return exists, nil
}

var _ repository.PlayerRepository = (*playerRepository)(nil)
