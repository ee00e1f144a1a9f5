package memory

import (
	"cmp"
	"context"
	"slices"

	"github.com/maxviazov/player-roster-service/internal/model"
	"github.com/maxviazov/player-roster-service/internal/repository"
)

type playerRepository struct{ store *Store }

func NewPlayerRepository(s *Store) repository.PlayerRepository {
	return &playerRepository{store: s}
}

func (r *playerRepository) GetByID(ctx context.Context, id int64) (model.Player, error) {
	if err := ctx.Err(); err != nil {
		return model.Player{}, err
	}
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	p, ok := r.store.players[id]
	if !ok {
		return model.Player{}, repository.Wrap("get", repository.EntityPlayer, id, repository.ErrNotFound)
	}
	return clonePlayer(p), nil
}

func (r *playerRepository) GetByUserID(ctx context.Context, userID string, p repository.Page) (repository.PageResult[model.Player], error) {
	if err := ctx.Err(); err != nil {
		return repository.PageResult[model.Player]{}, err
	}
	p = p.Normalize()
	r.store.mu.RLock()
	owned := make([]model.Player, 0)
	for _, pl := range r.store.players {
		if pl.UserID == userID {
			owned = append(owned, clonePlayer(pl))
		}
	}
	r.store.mu.RUnlock()

	slices.SortFunc(owned, func(a, b model.Player) int {
		if c := cmp.Compare(a.Name, b.Name); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})
	res := repository.PageResult[model.Player]{Items: []model.Player{}, Total: len(owned)}
	if p.Offset < len(owned) {
		end := min(p.Offset+p.Limit, len(owned))
		res.Items = owned[p.Offset:end]
	}
	return res, nil
}

func (r *playerRepository) Add(ctx context.Context, p model.Player) (model.Player, error) {
	if err := ctx.Err(); err != nil {
		return model.Player{}, err
	}
	now := r.store.now()
	if err := repository.StampCreated(&p.Audit, now); err != nil {
		return model.Player{}, repository.Wrap("add", repository.EntityPlayer, 0, err)
	}
	if !p.ValidateAt(now) {
		return model.Player{}, repository.Wrap("add", repository.EntityPlayer, 0, repository.ErrInvalidEntity)
	}
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.playerSeq++
	p.ID = r.store.playerSeq
	undoFrom(ctx).savePlayer(r.store, p.ID)
	p = clonePlayer(p)
	r.store.players[p.ID] = p
	return clonePlayer(p), nil
}

func (r *playerRepository) Update(ctx context.Context, p model.Player) (model.Player, error) {
	if err := ctx.Err(); err != nil {
		return model.Player{}, err
	}
	if err := repository.CheckUpdated(p.Audit); err != nil {
		return model.Player{}, repository.Wrap("update", repository.EntityPlayer, p.ID, err)
	}
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	cur, ok := r.store.players[p.ID]
	if !ok {
		return model.Player{}, repository.Wrap("update", repository.EntityPlayer, p.ID, repository.ErrNotFound)
	}
	undoFrom(ctx).savePlayer(r.store, cur.ID)
	cur.Name = p.Name
	cur.DateOfBirth = p.DateOfBirth
	cur.Gender = cloneString(p.Gender)
	cur.PhotoURL = cloneString(p.PhotoURL)
	cur.UpdatedAt = cloneTime(p.UpdatedAt)
	cur.UpdatedBy = cloneString(p.UpdatedBy)
	r.store.players[cur.ID] = cur
	return clonePlayer(cur), nil
}

func (r *playerRepository) Delete(ctx context.Context, id int64) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	return r.store.deletePlayerLocked(undoFrom(ctx), id), nil
}

func (r *playerRepository) Exists(ctx context.Context, id int64) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	_, ok := r.store.players[id]
	return ok, nil
}

var _ repository.PlayerRepository = (*playerRepository)(nil)
