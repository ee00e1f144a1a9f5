package memory

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/maxviazov/player-roster-service/internal/model"
	"github.com/maxviazov/player-roster-service/internal/repository"
)

type playerStatisticRepository struct{ store *Store }

func NewPlayerStatisticRepository(s *Store) repository.PlayerStatisticRepository {
	return &playerStatisticRepository{store: s}
}

func (r *playerStatisticRepository) GetByID(ctx context.Context, id int64) (model.PlayerStatistic, error) {
	if err := ctx.Err(); err != nil {
		return model.PlayerStatistic{}, err
	}
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	st, ok := r.store.statistics[id]
	if !ok {
		return model.PlayerStatistic{}, repository.Wrap("get", repository.EntityPlayerStatistic, id, repository.ErrNotFound)
	}
	return cloneStatistic(st), nil
}

func (r *playerStatisticRepository) GetByTeamPlayerID(ctx context.Context, teamPlayerID int64) ([]model.PlayerStatistic, error) {
	return r.filter(ctx, func(st model.PlayerStatistic, _ int64) bool { return st.TeamPlayerID == teamPlayerID })
}

func (r *playerStatisticRepository) GetByPlayerID(ctx context.Context, playerID int64) ([]model.PlayerStatistic, error) {
	return r.filter(ctx, func(_ model.PlayerStatistic, owner int64) bool { return owner == playerID })
}

func (r *playerStatisticRepository) GetByDateRange(ctx context.Context, playerID int64, start, end time.Time) ([]model.PlayerStatistic, error) {
	start, end = model.DateOf(start), model.DateOf(end)
	if start.After(end) {
		return nil, repository.Wrap("list_by_date_range", repository.EntityPlayerStatistic, 0,
			fmt.Errorf("%w: start %s is after end %s", model.ErrInvalidArgument, start.Format(time.DateOnly), end.Format(time.DateOnly)))
	}
	return r.filter(ctx, func(st model.PlayerStatistic, owner int64) bool {
		return owner == playerID && !st.GameDate.Before(start) && !st.GameDate.After(end)
	})
}

func (r *playerStatisticRepository) GetAggregates(ctx context.Context, playerID int64, teamPlayerID *int64) (model.StatisticsAggregate, error) {
	stats, err := r.filter(ctx, func(st model.PlayerStatistic, owner int64) bool {
		return owner == playerID && (teamPlayerID == nil || st.TeamPlayerID == *teamPlayerID)
	})
	if err != nil {
		return model.StatisticsAggregate{}, err
	}
	return model.Aggregate(stats), nil
}

// filter walks the statistics with the owning player id resolved through the assignment.
// Results are ordered by GameDate then ID, newest first.
func (r *playerStatisticRepository) filter(ctx context.Context, keep func(st model.PlayerStatistic, playerID int64) bool) ([]model.PlayerStatistic, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.store.mu.RLock()
	out := make([]model.PlayerStatistic, 0)
	for _, st := range r.store.statistics {
		owner := r.store.teamPlayers[st.TeamPlayerID].PlayerID
		if keep(st, owner) {
			out = append(out, cloneStatistic(st))
		}
	}
	r.store.mu.RUnlock()
	slices.SortFunc(out, func(a, b model.PlayerStatistic) int {
		if c := b.GameDate.Compare(a.GameDate); c != 0 {
			return c
		}
		return cmp.Compare(b.ID, a.ID)
	})
	return out, nil
}

func (r *playerStatisticRepository) Add(ctx context.Context, st model.PlayerStatistic) (model.PlayerStatistic, error) {
	if err := ctx.Err(); err != nil {
		return model.PlayerStatistic{}, err
	}
	now := r.store.now()
	if err := repository.StampCreated(&st.Audit, now); err != nil {
		return model.PlayerStatistic{}, repository.Wrap("add", repository.EntityPlayerStatistic, 0, err)
	}
	if !st.ValidateAt(now) {
		return model.PlayerStatistic{}, repository.Wrap("add", repository.EntityPlayerStatistic, 0, repository.ErrInvalidEntity)
	}
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if _, ok := r.store.teamPlayers[st.TeamPlayerID]; !ok {
		return model.PlayerStatistic{}, repository.Wrap("add", repository.EntityPlayerStatistic, 0, repository.ErrConflict)
	}
	r.store.statisticSeq++
	st.ID = r.store.statisticSeq
	undoFrom(ctx).saveStatistic(r.store, st.ID)
	st = cloneStatistic(st)
	r.store.statistics[st.ID] = st
	return cloneStatistic(st), nil
}

func (r *playerStatisticRepository) Update(ctx context.Context, st model.PlayerStatistic) (model.PlayerStatistic, error) {
	if err := ctx.Err(); err != nil {
		return model.PlayerStatistic{}, err
	}
	if err := repository.CheckUpdated(st.Audit); err != nil {
		return model.PlayerStatistic{}, repository.Wrap("update", repository.EntityPlayerStatistic, st.ID, err)
	}
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	cur, ok := r.store.statistics[st.ID]
	if !ok {
		return model.PlayerStatistic{}, repository.Wrap("update", repository.EntityPlayerStatistic, st.ID, repository.ErrNotFound)
	}
	undoFrom(ctx).saveStatistic(r.store, cur.ID)
	cur.GameDate = st.GameDate
	cur.MinutesPlayed = st.MinutesPlayed
	cur.IsStarter = st.IsStarter
	cur.JerseyNumber = st.JerseyNumber
	cur.Goals = st.Goals
	cur.Assists = st.Assists
	cur.UpdatedAt = cloneTime(st.UpdatedAt)
	cur.UpdatedBy = cloneString(st.UpdatedBy)
	r.store.statistics[cur.ID] = cur
	return cloneStatistic(cur), nil
}

func (r *playerStatisticRepository) Delete(ctx context.Context, id int64) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if _, ok := r.store.statistics[id]; !ok {
		return false, nil
	}
	undoFrom(ctx).saveStatistic(r.store, id)
	delete(r.store.statistics, id)
	return true, nil
}

func (r *playerStatisticRepository) Exists(ctx context.Context, id int64) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	_, ok := r.store.statistics[id]
	return ok, nil
}

var _ repository.PlayerStatisticRepository = (*playerStatisticRepository)(nil)
