package memory

import (
	"cmp"
	"context"
	"slices"
	"strings"

	"github.com/maxviazov/player-roster-service/internal/model"
	"github.com/maxviazov/player-roster-service/internal/repository"
)

type teamPlayerRepository struct{ store *Store }

func NewTeamPlayerRepository(s *Store) repository.TeamPlayerRepository {
	return &teamPlayerRepository{store: s}
}

func (r *teamPlayerRepository) GetByID(ctx context.Context, id int64) (model.TeamPlayer, error) {
	if err := ctx.Err(); err != nil {
		return model.TeamPlayer{}, err
	}
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	tp, ok := r.store.teamPlayers[id]
	if !ok {
		return model.TeamPlayer{}, repository.Wrap("get", repository.EntityTeamPlayer, id, repository.ErrNotFound)
	}
	return cloneTeamPlayer(tp), nil
}

func (r *teamPlayerRepository) GetByIDWithPlayer(ctx context.Context, id int64) (model.TeamPlayer, error) {
	if err := ctx.Err(); err != nil {
		return model.TeamPlayer{}, err
	}
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	tp, ok := r.store.teamPlayers[id]
	if !ok {
		return model.TeamPlayer{}, repository.Wrap("get", repository.EntityTeamPlayer, id, repository.ErrNotFound)
	}
	out := cloneTeamPlayer(tp)
	if p, ok := r.store.players[tp.PlayerID]; ok {
		pc := clonePlayer(p)
		out.Player = &pc
	}
	return out, nil
}

func (r *teamPlayerRepository) GetAllByPlayerID(ctx context.Context, playerID int64) ([]model.TeamPlayer, error) {
	return r.list(ctx, playerID, false)
}

func (r *teamPlayerRepository) GetActiveByPlayerID(ctx context.Context, playerID int64) ([]model.TeamPlayer, error) {
	return r.list(ctx, playerID, true)
}

func (r *teamPlayerRepository) list(ctx context.Context, playerID int64, activeOnly bool) ([]model.TeamPlayer, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.store.mu.RLock()
	out := make([]model.TeamPlayer, 0)
	for _, tp := range r.store.teamPlayers {
		if tp.PlayerID != playerID || (activeOnly && !tp.IsActive()) {
			continue
		}
		out = append(out, cloneTeamPlayer(tp))
	}
	r.store.mu.RUnlock()
	slices.SortFunc(out, func(a, b model.TeamPlayer) int {
		if c := b.JoinedDate.Compare(a.JoinedDate); c != 0 {
			return c
		}
		return cmp.Compare(b.ID, a.ID)
	})
	return out, nil
}

func (r *teamPlayerRepository) HasActiveDuplicate(ctx context.Context, playerID int64, teamName, championshipName string, excludeID *int64) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	var exclude int64
	if excludeID != nil {
		exclude = *excludeID
	}
	return r.store.activeDuplicateLocked(playerID, teamName, championshipName, exclude), nil
}

// activeDuplicateLocked emulates ux_team_players_active_assignment. Caller holds mu.
func (s *Store) activeDuplicateLocked(playerID int64, teamName, championshipName string, excludeID int64) bool {
	for _, tp := range s.teamPlayers {
		if tp.ID == excludeID || tp.PlayerID != playerID || !tp.IsActive() {
			continue
		}
		if strings.EqualFold(tp.TeamName, teamName) && strings.EqualFold(tp.ChampionshipName, championshipName) {
			return true
		}
	}
	return false
}

func (r *teamPlayerRepository) Add(ctx context.Context, tp model.TeamPlayer) (model.TeamPlayer, error) {
	if err := ctx.Err(); err != nil {
		return model.TeamPlayer{}, err
	}
	now := r.store.now()
	if err := repository.StampCreated(&tp.Audit, now); err != nil {
		return model.TeamPlayer{}, repository.Wrap("add", repository.EntityTeamPlayer, 0, err)
	}
	if !tp.ValidateAt(now) {
		return model.TeamPlayer{}, repository.Wrap("add", repository.EntityTeamPlayer, 0, repository.ErrInvalidEntity)
	}
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if _, ok := r.store.players[tp.PlayerID]; !ok {
		return model.TeamPlayer{}, repository.Wrap("add", repository.EntityTeamPlayer, 0, repository.ErrConflict)
	}
	if tp.IsActive() && r.store.activeDuplicateLocked(tp.PlayerID, tp.TeamName, tp.ChampionshipName, 0) {
		return model.TeamPlayer{}, repository.Wrap("add", repository.EntityTeamPlayer, 0, repository.ErrAlreadyExists)
	}
	r.store.teamPlayerSeq++
	tp.ID = r.store.teamPlayerSeq
	undoFrom(ctx).saveTeamPlayer(r.store, tp.ID)
	tp = cloneTeamPlayer(tp)
	r.store.teamPlayers[tp.ID] = tp
	return cloneTeamPlayer(tp), nil
}

func (r *teamPlayerRepository) Update(ctx context.Context, tp model.TeamPlayer) (model.TeamPlayer, error) {
	if err := ctx.Err(); err != nil {
		return model.TeamPlayer{}, err
	}
	if err := repository.CheckUpdated(tp.Audit); err != nil {
		return model.TeamPlayer{}, repository.Wrap("update", repository.EntityTeamPlayer, tp.ID, err)
	}
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	cur, ok := r.store.teamPlayers[tp.ID]
	if !ok {
		return model.TeamPlayer{}, repository.Wrap("update", repository.EntityTeamPlayer, tp.ID, repository.ErrNotFound)
	}
	if tp.LeftDate != nil && !model.DateOf(*tp.LeftDate).After(model.DateOf(tp.JoinedDate)) {
		return model.TeamPlayer{}, repository.Wrap("update", repository.EntityTeamPlayer, tp.ID, repository.ErrConflict)
	}
	if tp.LeftDate == nil && r.store.activeDuplicateLocked(cur.PlayerID, tp.TeamName, tp.ChampionshipName, cur.ID) {
		return model.TeamPlayer{}, repository.Wrap("update", repository.EntityTeamPlayer, tp.ID, repository.ErrAlreadyExists)
	}
	undoFrom(ctx).saveTeamPlayer(r.store, cur.ID)
	cur.TeamName = tp.TeamName
	cur.ChampionshipName = tp.ChampionshipName
	cur.JoinedDate = tp.JoinedDate
	cur.LeftDate = cloneTime(tp.LeftDate)
	cur.UpdatedAt = cloneTime(tp.UpdatedAt)
	cur.UpdatedBy = cloneString(tp.UpdatedBy)
	r.store.teamPlayers[cur.ID] = cur
	return cloneTeamPlayer(cur), nil
}

func (r *teamPlayerRepository) Delete(ctx context.Context, id int64) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	return r.store.deleteTeamPlayerLocked(undoFrom(ctx), id), nil
}

func (r *teamPlayerRepository) Exists(ctx context.Context, id int64) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	_, ok := r.store.teamPlayers[id]
	return ok, nil
}

var _ repository.TeamPlayerRepository = (*teamPlayerRepository)(nil)
