// Package contract holds behaviour suites every repository implementation must pass.
// Backends plug in through a Factory; the suites never reach past the interfaces.
package contract

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/itbasis/go-clock"

	"github.com/maxviazov/player-roster-service/internal/model"
	"github.com/maxviazov/player-roster-service/internal/repository"
)

// Now is the instant every suite pins the clock to.
var Now = time.Date(2025, time.June, 15, 12, 0, 0, 0, time.UTC)

const owner = "user-1"

// Backend is one wired set of repositories sharing a store and a clock.
type Backend struct {
	Players     repository.PlayerRepository
	TeamPlayers repository.TeamPlayerRepository
	Statistics  repository.PlayerStatisticRepository
	Tx          repository.TxManager
	Clock       *clock.Mock
}

type Factory func(t *testing.T) (Backend, func())

type PingerFactory func(t *testing.T) (repository.Pinger, func())

func date(y int, m time.Month, d int) time.Time { return time.Date(y, m, d, 0, 0, 0, 0, time.UTC) }

func setup(t *testing.T, makeBackend Factory) (Backend, context.Context) {
	t.Helper()
	b, cleanup := makeBackend(t)
	t.Cleanup(cleanup)
	b.Clock.Set(Now)
	return b, context.Background()
}

func seedPlayer(t *testing.T, ctx context.Context, b Backend, name string) model.Player {
	t.Helper()
	p, err := b.Players.Add(ctx, model.Player{
		UserID:      owner,
		Name:        name,
		DateOfBirth: date(2010, time.March, 15),
		Audit:       model.Audit{CreatedBy: owner},
	})
	if err != nil {
		t.Fatalf("seed player: %v", err)
	}
	return p
}

func seedAssignment(t *testing.T, ctx context.Context, b Backend, playerID int64, team, champ string, joined time.Time) model.TeamPlayer {
	t.Helper()
	tp, err := b.TeamPlayers.Add(ctx, model.TeamPlayer{
		PlayerID:         playerID,
		TeamName:         team,
		ChampionshipName: champ,
		JoinedDate:       joined,
		Audit:            model.Audit{CreatedBy: owner},
	})
	if err != nil {
		t.Fatalf("seed assignment: %v", err)
	}
	return tp
}

func seedStatistic(t *testing.T, ctx context.Context, b Backend, teamPlayerID int64, game time.Time, goals, assists, minutes int) model.PlayerStatistic {
	t.Helper()
	s, err := b.Statistics.Add(ctx, model.PlayerStatistic{
		TeamPlayerID:  teamPlayerID,
		GameDate:      game,
		MinutesPlayed: minutes,
		IsStarter:     true,
		JerseyNumber:  10,
		Goals:         goals,
		Assists:       assists,
		Audit:         model.Audit{CreatedBy: owner},
	})
	if err != nil {
		t.Fatalf("seed statistic: %v", err)
	}
	return s
}

func RunPlayerRepositoryContract(t *testing.T, makeBackend Factory) {
	t.Helper()

	t.Run("add_and_get", func(t *testing.T) {
		b, ctx := setup(t, makeBackend)
		created := seedPlayer(t, ctx, b, "Emma")
		if created.ID <= 0 {
			t.Fatalf("expected store-assigned id, got %d", created.ID)
		}
		if !created.CreatedAt.Equal(Now) || created.CreatedBy != owner {
			t.Fatalf("unexpected audit: %+v", created.Audit)
		}
		if created.UpdatedAt != nil || created.UpdatedBy != nil {
			t.Fatalf("update stamp must be empty after add: %+v", created.Audit)
		}
		got, err := b.Players.GetByID(ctx, created.ID)
		if err != nil {
			t.Fatalf("get: %v", err)
		}
		if got.Name != "Emma" || got.UserID != owner || !got.DateOfBirth.Equal(date(2010, time.March, 15)) {
			t.Fatalf("mismatch: %+v", got)
		}
	})

	t.Run("add_requires_creator", func(t *testing.T) {
		b, ctx := setup(t, makeBackend)
		_, err := b.Players.Add(ctx, model.Player{UserID: owner, Name: "X", DateOfBirth: date(2010, 1, 1)})
		if !errors.Is(err, model.ErrInvalidArgument) {
			t.Fatalf("expected ErrInvalidArgument, got %v", err)
		}
	})

	t.Run("get_not_found", func(t *testing.T) {
		b, ctx := setup(t, makeBackend)
		_, err := b.Players.GetByID(ctx, 424242)
		if !errors.Is(err, repository.ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("update_preserves_creation_audit", func(t *testing.T) {
		b, ctx := setup(t, makeBackend)
		p := seedPlayer(t, ctx, b, "Emma")
		b.Clock.Add(time.Hour)

		p.Name = "Emma Stone"
		p.CreatedBy = "someone-else"
		p.CreatedAt = Now.Add(-24 * time.Hour)
		if err := p.Touch("user-2", b.Clock.Now()); err != nil {
			t.Fatalf("touch: %v", err)
		}
		updated, err := b.Players.Update(ctx, p)
		if err != nil {
			t.Fatalf("update: %v", err)
		}
		if updated.Name != "Emma Stone" {
			t.Fatalf("name not updated: %q", updated.Name)
		}
		if updated.CreatedBy != owner || !updated.CreatedAt.Equal(Now) {
			t.Fatalf("creation audit overwritten: %+v", updated.Audit)
		}
		if updated.UpdatedBy == nil || *updated.UpdatedBy != "user-2" || !updated.UpdatedAt.Equal(Now.Add(time.Hour)) {
			t.Fatalf("update stamp not persisted: %+v", updated.Audit)
		}
	})

	t.Run("update_requires_stamp", func(t *testing.T) {
		b, ctx := setup(t, makeBackend)
		p := seedPlayer(t, ctx, b, "Emma")
		p.Name = "Other"
		_, err := b.Players.Update(ctx, p)
		if !errors.Is(err, model.ErrInvalidArgument) {
			t.Fatalf("expected ErrInvalidArgument, got %v", err)
		}
	})

	t.Run("update_not_found", func(t *testing.T) {
		b, ctx := setup(t, makeBackend)
		p := model.Player{ID: 777777, UserID: owner, Name: "Ghost", DateOfBirth: date(2000, 1, 1)}
		_ = p.Touch(owner, Now)
		_, err := b.Players.Update(ctx, p)
		if !errors.Is(err, repository.ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("list_by_user_paged", func(t *testing.T) {
		b, ctx := setup(t, makeBackend)
		for _, n := range []string{"Carl", "Anna", "Bob"} {
			seedPlayer(t, ctx, b, n)
		}
		if _, err := b.Players.Add(ctx, model.Player{
			UserID: "stranger", Name: "Zed", DateOfBirth: date(2000, 1, 1), Audit: model.Audit{CreatedBy: "stranger"},
		}); err != nil {
			t.Fatalf("seed stranger: %v", err)
		}
		res, err := b.Players.GetByUserID(ctx, owner, repository.Page{Limit: 2})
		if err != nil {
			t.Fatalf("list: %v", err)
		}
		if res.Total != 3 || len(res.Items) != 2 || res.Items[0].Name != "Anna" || res.Items[1].Name != "Bob" {
			t.Fatalf("unexpected page: %+v", res)
		}
		res, err = b.Players.GetByUserID(ctx, owner, repository.Page{Limit: 2, Offset: 2})
		if err != nil {
			t.Fatalf("list page 2: %v", err)
		}
		if len(res.Items) != 1 || res.Items[0].Name != "Carl" {
			t.Fatalf("unexpected page 2: %+v", res)
		}
	})

	t.Run("delete_and_exists", func(t *testing.T) {
		b, ctx := setup(t, makeBackend)
		p := seedPlayer(t, ctx, b, "Emma")
		ok, err := b.Players.Exists(ctx, p.ID)
		if err != nil || !ok {
			t.Fatalf("expected exists, got %v %v", ok, err)
		}
		removed, err := b.Players.Delete(ctx, p.ID)
		if err != nil || !removed {
			t.Fatalf("expected removal, got %v %v", removed, err)
		}
		removed, err = b.Players.Delete(ctx, p.ID)
		if err != nil || removed {
			t.Fatalf("second delete must report false, got %v %v", removed, err)
		}
		ok, err = b.Players.Exists(ctx, p.ID)
		if err != nil || ok {
			t.Fatalf("expected missing, got %v %v", ok, err)
		}
	})

	t.Run("delete_cascades", func(t *testing.T) {
		b, ctx := setup(t, makeBackend)
		p := seedPlayer(t, ctx, b, "Emma")
		sibling := seedPlayer(t, ctx, b, "Mia")
		tp := seedAssignment(t, ctx, b, p.ID, "Lions", "Spring", date(2025, 1, 1))
		keep := seedAssignment(t, ctx, b, sibling.ID, "Lions", "Spring", date(2025, 1, 1))
		s := seedStatistic(t, ctx, b, tp.ID, date(2025, 3, 1), 1, 1, 60)
		kept := seedStatistic(t, ctx, b, keep.ID, date(2025, 3, 1), 1, 1, 60)

		if _, err := b.Players.Delete(ctx, p.ID); err != nil {
			t.Fatalf("delete: %v", err)
		}
		if ok, _ := b.TeamPlayers.Exists(ctx, tp.ID); ok {
			t.Fatalf("assignment survived player delete")
		}
		if ok, _ := b.Statistics.Exists(ctx, s.ID); ok {
			t.Fatalf("statistic survived player delete")
		}
		if ok, _ := b.TeamPlayers.Exists(ctx, keep.ID); !ok {
			t.Fatalf("sibling assignment removed")
		}
		if ok, _ := b.Statistics.Exists(ctx, kept.ID); !ok {
			t.Fatalf("sibling statistic removed")
		}
	})
}

func RunTeamPlayerRepositoryContract(t *testing.T, makeBackend Factory) {
	t.Helper()

	t.Run("add_get_with_player", func(t *testing.T) {
		b, ctx := setup(t, makeBackend)
		p := seedPlayer(t, ctx, b, "Emma")
		tp := seedAssignment(t, ctx, b, p.ID, "Lions", "Spring League", date(2025, 1, 10))
		if !tp.IsActive() || !tp.CreatedAt.Equal(Now) {
			t.Fatalf("unexpected assignment: %+v", tp)
		}
		got, err := b.TeamPlayers.GetByID(ctx, tp.ID)
		if err != nil {
			t.Fatalf("get: %v", err)
		}
		if got.Player != nil {
			t.Fatalf("plain get must not attach the player")
		}
		if !got.JoinedDate.Equal(date(2025, 1, 10)) || got.TeamName != "Lions" {
			t.Fatalf("mismatch: %+v", got)
		}
		withPlayer, err := b.TeamPlayers.GetByIDWithPlayer(ctx, tp.ID)
		if err != nil {
			t.Fatalf("get with player: %v", err)
		}
		if withPlayer.Player == nil || withPlayer.Player.ID != p.ID || withPlayer.Player.Name != "Emma" {
			t.Fatalf("player not attached: %+v", withPlayer.Player)
		}
	})

	t.Run("get_not_found", func(t *testing.T) {
		b, ctx := setup(t, makeBackend)
		if _, err := b.TeamPlayers.GetByID(ctx, 31337); !errors.Is(err, repository.ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
		if _, err := b.TeamPlayers.GetByIDWithPlayer(ctx, 31337); !errors.Is(err, repository.ErrNotFound) {
			t.Fatalf("expected ErrNotFound with player, got %v", err)
		}
	})

	t.Run("list_orders_and_filters_active", func(t *testing.T) {
		b, ctx := setup(t, makeBackend)
		p := seedPlayer(t, ctx, b, "Emma")
		old := seedAssignment(t, ctx, b, p.ID, "Eagles", "Winter", date(2024, 9, 1))
		recent := seedAssignment(t, ctx, b, p.ID, "Lions", "Spring", date(2025, 2, 1))
		if err := old.MarkAsLeftAt(date(2025, 1, 31), owner, b.Clock.Now()); err != nil {
			t.Fatalf("mark as left: %v", err)
		}
		if _, err := b.TeamPlayers.Update(ctx, old); err != nil {
			t.Fatalf("update: %v", err)
		}

		all, err := b.TeamPlayers.GetAllByPlayerID(ctx, p.ID)
		if err != nil {
			t.Fatalf("list all: %v", err)
		}
		if len(all) != 2 || all[0].ID != recent.ID || all[1].ID != old.ID {
			t.Fatalf("unexpected order: %+v", all)
		}
		if all[1].LeftDate == nil || !all[1].LeftDate.Equal(date(2025, 1, 31)) {
			t.Fatalf("left date not persisted: %+v", all[1])
		}
		active, err := b.TeamPlayers.GetActiveByPlayerID(ctx, p.ID)
		if err != nil {
			t.Fatalf("list active: %v", err)
		}
		if len(active) != 1 || active[0].ID != recent.ID {
			t.Fatalf("unexpected active: %+v", active)
		}
		none, err := b.TeamPlayers.GetAllByPlayerID(ctx, 999999)
		if err != nil || len(none) != 0 {
			t.Fatalf("expected empty list, got %v %v", none, err)
		}
	})

	t.Run("has_active_duplicate", func(t *testing.T) {
		b, ctx := setup(t, makeBackend)
		p := seedPlayer(t, ctx, b, "Emma")
		tp := seedAssignment(t, ctx, b, p.ID, "Lions", "Spring League", date(2025, 1, 10))

		dup, err := b.TeamPlayers.HasActiveDuplicate(ctx, p.ID, "LIONS", "spring league", nil)
		if err != nil || !dup {
			t.Fatalf("expected case-insensitive duplicate, got %v %v", dup, err)
		}
		dup, err = b.TeamPlayers.HasActiveDuplicate(ctx, p.ID, "Lions", "Spring League", &tp.ID)
		if err != nil || dup {
			t.Fatalf("excluded id must not count, got %v %v", dup, err)
		}
		dup, err = b.TeamPlayers.HasActiveDuplicate(ctx, p.ID, "Lions", "Autumn League", nil)
		if err != nil || dup {
			t.Fatalf("other championship must not count, got %v %v", dup, err)
		}

		if err := tp.MarkAsLeftAt(date(2025, 5, 1), owner, b.Clock.Now()); err != nil {
			t.Fatalf("mark as left: %v", err)
		}
		if _, err := b.TeamPlayers.Update(ctx, tp); err != nil {
			t.Fatalf("update: %v", err)
		}
		dup, err = b.TeamPlayers.HasActiveDuplicate(ctx, p.ID, "Lions", "Spring League", nil)
		if err != nil || dup {
			t.Fatalf("inactive assignment must not count, got %v %v", dup, err)
		}
	})

	t.Run("update_not_found", func(t *testing.T) {
		b, ctx := setup(t, makeBackend)
		tp := model.TeamPlayer{ID: 888888, PlayerID: 1, TeamName: "X", ChampionshipName: "Y", JoinedDate: date(2025, 1, 1)}
		_ = tp.Touch(owner, Now)
		if _, err := b.TeamPlayers.Update(ctx, tp); !errors.Is(err, repository.ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("delete_cascades_statistics", func(t *testing.T) {
		b, ctx := setup(t, makeBackend)
		p := seedPlayer(t, ctx, b, "Emma")
		tp := seedAssignment(t, ctx, b, p.ID, "Lions", "Spring", date(2025, 1, 1))
		other := seedAssignment(t, ctx, b, p.ID, "Eagles", "Spring", date(2025, 1, 1))
		s := seedStatistic(t, ctx, b, tp.ID, date(2025, 2, 1), 0, 0, 30)
		kept := seedStatistic(t, ctx, b, other.ID, date(2025, 2, 1), 0, 0, 30)

		removed, err := b.TeamPlayers.Delete(ctx, tp.ID)
		if err != nil || !removed {
			t.Fatalf("expected removal, got %v %v", removed, err)
		}
		if ok, _ := b.Statistics.Exists(ctx, s.ID); ok {
			t.Fatalf("statistic survived assignment delete")
		}
		if ok, _ := b.Statistics.Exists(ctx, kept.ID); !ok {
			t.Fatalf("sibling statistic removed")
		}
		if ok, _ := b.Players.Exists(ctx, p.ID); !ok {
			t.Fatalf("player must survive assignment delete")
		}
		removed, err = b.TeamPlayers.Delete(ctx, tp.ID)
		if err != nil || removed {
			t.Fatalf("second delete must report false, got %v %v", removed, err)
		}
	})
}

func RunPlayerStatisticRepositoryContract(t *testing.T, makeBackend Factory) {
	t.Helper()

	t.Run("add_get_update", func(t *testing.T) {
		b, ctx := setup(t, makeBackend)
		p := seedPlayer(t, ctx, b, "Emma")
		tp := seedAssignment(t, ctx, b, p.ID, "Lions", "Spring", date(2025, 1, 1))
		s := seedStatistic(t, ctx, b, tp.ID, date(2025, 3, 1), 2, 1, 80)

		got, err := b.Statistics.GetByID(ctx, s.ID)
		if err != nil {
			t.Fatalf("get: %v", err)
		}
		if got.Goals != 2 || got.Assists != 1 || got.MinutesPlayed != 80 || !got.GameDate.Equal(date(2025, 3, 1)) {
			t.Fatalf("mismatch: %+v", got)
		}

		got.Goals = 3
		_ = got.Touch(owner, b.Clock.Now())
		updated, err := b.Statistics.Update(ctx, got)
		if err != nil {
			t.Fatalf("update: %v", err)
		}
		if updated.Goals != 3 || updated.TeamPlayerID != tp.ID || updated.CreatedBy != owner {
			t.Fatalf("unexpected update: %+v", updated)
		}
	})

	t.Run("get_not_found", func(t *testing.T) {
		b, ctx := setup(t, makeBackend)
		if _, err := b.Statistics.GetByID(ctx, 5555); !errors.Is(err, repository.ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("lists_order_by_game_date_desc", func(t *testing.T) {
		b, ctx := setup(t, makeBackend)
		p := seedPlayer(t, ctx, b, "Emma")
		first := seedAssignment(t, ctx, b, p.ID, "Eagles", "Winter", date(2024, 9, 1))
		second := seedAssignment(t, ctx, b, p.ID, "Lions", "Spring", date(2025, 2, 1))
		s1 := seedStatistic(t, ctx, b, first.ID, date(2024, 10, 1), 1, 0, 60)
		s2 := seedStatistic(t, ctx, b, second.ID, date(2025, 3, 1), 0, 1, 60)
		s3 := seedStatistic(t, ctx, b, first.ID, date(2024, 11, 1), 0, 0, 45)

		byTP, err := b.Statistics.GetByTeamPlayerID(ctx, first.ID)
		if err != nil {
			t.Fatalf("by team player: %v", err)
		}
		if len(byTP) != 2 || byTP[0].ID != s3.ID || byTP[1].ID != s1.ID {
			t.Fatalf("unexpected by team player: %+v", byTP)
		}
		byPlayer, err := b.Statistics.GetByPlayerID(ctx, p.ID)
		if err != nil {
			t.Fatalf("by player: %v", err)
		}
		if len(byPlayer) != 3 || byPlayer[0].ID != s2.ID || byPlayer[1].ID != s3.ID || byPlayer[2].ID != s1.ID {
			t.Fatalf("unexpected by player: %+v", byPlayer)
		}
	})

	t.Run("date_range_inclusive", func(t *testing.T) {
		b, ctx := setup(t, makeBackend)
		p := seedPlayer(t, ctx, b, "Emma")
		first := seedAssignment(t, ctx, b, p.ID, "Eagles", "Winter", date(2024, 9, 1))
		second := seedAssignment(t, ctx, b, p.ID, "Lions", "Spring", date(2025, 2, 1))
		seedStatistic(t, ctx, b, first.ID, date(2024, 12, 31), 0, 0, 10)
		inLow := seedStatistic(t, ctx, b, first.ID, date(2025, 1, 1), 0, 0, 10)
		inHigh := seedStatistic(t, ctx, b, second.ID, date(2025, 3, 31), 0, 0, 10)
		seedStatistic(t, ctx, b, second.ID, date(2025, 4, 1), 0, 0, 10)

		got, err := b.Statistics.GetByDateRange(ctx, p.ID, date(2025, 1, 1), date(2025, 3, 31))
		if err != nil {
			t.Fatalf("range: %v", err)
		}
		if len(got) != 2 || got[0].ID != inHigh.ID || got[1].ID != inLow.ID {
			t.Fatalf("unexpected range: %+v", got)
		}
		single, err := b.Statistics.GetByDateRange(ctx, p.ID, date(2025, 1, 1), date(2025, 1, 1))
		if err != nil || len(single) != 1 {
			t.Fatalf("single-day range: %v %v", single, err)
		}
	})

	t.Run("date_range_rejects_inverted_bounds", func(t *testing.T) {
		b, ctx := setup(t, makeBackend)
		_, err := b.Statistics.GetByDateRange(ctx, 1, date(2025, 2, 1), date(2025, 1, 1))
		if !errors.Is(err, model.ErrInvalidArgument) {
			t.Fatalf("expected ErrInvalidArgument, got %v", err)
		}
	})

	t.Run("aggregates", func(t *testing.T) {
		b, ctx := setup(t, makeBackend)
		p := seedPlayer(t, ctx, b, "Emma")

		empty, err := b.Statistics.GetAggregates(ctx, p.ID, nil)
		if err != nil {
			t.Fatalf("empty aggregate: %v", err)
		}
		if empty != (model.StatisticsAggregate{}) {
			t.Fatalf("expected zero aggregate, got %+v", empty)
		}

		tp := seedAssignment(t, ctx, b, p.ID, "Lions", "Spring", date(2025, 1, 1))
		other := seedAssignment(t, ctx, b, p.ID, "Eagles", "Cup", date(2025, 1, 1))
		seedStatistic(t, ctx, b, tp.ID, date(2025, 3, 1), 2, 1, 90)
		seedStatistic(t, ctx, b, tp.ID, date(2025, 3, 8), 1, 2, 60)
		seedStatistic(t, ctx, b, tp.ID, date(2025, 3, 15), 0, 3, 30)
		seedStatistic(t, ctx, b, other.ID, date(2025, 4, 1), 5, 5, 90)

		agg, err := b.Statistics.GetAggregates(ctx, p.ID, &tp.ID)
		if err != nil {
			t.Fatalf("aggregate: %v", err)
		}
		want := model.StatisticsAggregate{
			GameCount: 3, TotalGoals: 3, TotalAssists: 6, TotalMinutesPlayed: 180,
			AverageGoals: 1, AverageAssists: 2, AverageMinutesPlayed: 60,
		}
		if agg != want {
			t.Fatalf("unexpected aggregate: %+v", agg)
		}

		all, err := b.Statistics.GetAggregates(ctx, p.ID, nil)
		if err != nil {
			t.Fatalf("aggregate all: %v", err)
		}
		if all.GameCount != 4 || all.TotalGoals != 8 || all.TotalAssists != 11 {
			t.Fatalf("unexpected overall aggregate: %+v", all)
		}
	})

	t.Run("delete", func(t *testing.T) {
		b, ctx := setup(t, makeBackend)
		p := seedPlayer(t, ctx, b, "Emma")
		tp := seedAssignment(t, ctx, b, p.ID, "Lions", "Spring", date(2025, 1, 1))
		s := seedStatistic(t, ctx, b, tp.ID, date(2025, 3, 1), 0, 0, 10)
		removed, err := b.Statistics.Delete(ctx, s.ID)
		if err != nil || !removed {
			t.Fatalf("expected removal, got %v %v", removed, err)
		}
		removed, err = b.Statistics.Delete(ctx, s.ID)
		if err != nil || removed {
			t.Fatalf("second delete must report false, got %v %v", removed, err)
		}
	})
}

func RunTxManagerContract(t *testing.T, makeBackend Factory) {
	t.Helper()

	t.Run("commit_on_nil_error", func(t *testing.T) {
		b, ctx := setup(t, makeBackend)
		var createdID int64
		err := b.Tx.WithinTx(ctx, func(ctx context.Context) error {
			p := seedPlayer(t, ctx, b, "TxCommit")
			createdID = p.ID
			return nil
		})
		if err != nil {
			t.Fatalf("WithinTx: %v", err)
		}
		if _, err := b.Players.GetByID(ctx, createdID); err != nil {
			t.Fatalf("expected committed row visible, got err=%v", err)
		}
	})

	t.Run("rollback_on_error", func(t *testing.T) {
		b, ctx := setup(t, makeBackend)
		var createdID int64
		errMarker := errors.New("boom")
		err := b.Tx.WithinTx(ctx, func(ctx context.Context) error {
			p := seedPlayer(t, ctx, b, "TxRollback")
			createdID = p.ID
			return errMarker
		})
		if !errors.Is(err, errMarker) {
			t.Fatalf("expected marker error, got %v", err)
		}
		if _, err := b.Players.GetByID(ctx, createdID); !errors.Is(err, repository.ErrNotFound) {
			t.Fatalf("expected ErrNotFound after rollback, got %v", err)
		}
	})

	t.Run("rollback_keeps_plain_writes", func(t *testing.T) {
		b, ctx := setup(t, makeBackend)
		var plainID, txID int64
		errMarker := errors.New("boom")
		err := b.Tx.WithinTx(ctx, func(txCtx context.Context) error {
			txID = seedPlayer(t, txCtx, b, "InsideTx").ID
			// ctx carries no transaction: this write commits on its own.
			plainID = seedPlayer(t, ctx, b, "OutsideTx").ID
			return errMarker
		})
		if !errors.Is(err, errMarker) {
			t.Fatalf("expected marker error, got %v", err)
		}
		if ok, err := b.Players.Exists(ctx, plainID); err != nil || !ok {
			t.Fatalf("plain write lost by rollback: exists=%v err=%v", ok, err)
		}
		if ok, err := b.Players.Exists(ctx, txID); err != nil || ok {
			t.Fatalf("transactional write survived rollback: exists=%v err=%v", ok, err)
		}
	})

	t.Run("rollback_restores_updates_and_cascades", func(t *testing.T) {
		b, ctx := setup(t, makeBackend)
		p := seedPlayer(t, ctx, b, "Keeper")
		tp := seedAssignment(t, ctx, b, p.ID, "Lions", "Spring", date(2025, time.January, 10))
		errMarker := errors.New("boom")
		err := b.Tx.WithinTx(ctx, func(txCtx context.Context) error {
			p.Name = "Renamed"
			if err := p.Touch(owner, b.Clock.Now()); err != nil {
				t.Fatalf("touch: %v", err)
			}
			if _, err := b.Players.Update(txCtx, p); err != nil {
				t.Fatalf("update: %v", err)
			}
			if _, err := b.TeamPlayers.Delete(txCtx, tp.ID); err != nil {
				t.Fatalf("delete: %v", err)
			}
			return errMarker
		})
		if !errors.Is(err, errMarker) {
			t.Fatalf("expected marker error, got %v", err)
		}
		got, err := b.Players.GetByID(ctx, p.ID)
		if err != nil || got.Name != "Keeper" {
			t.Fatalf("expected original name after rollback, got %q err=%v", got.Name, err)
		}
		if ok, err := b.TeamPlayers.Exists(ctx, tp.ID); err != nil || !ok {
			t.Fatalf("expected assignment restored: exists=%v err=%v", ok, err)
		}
	})
}

func RunPingerContract(t *testing.T, makePinger PingerFactory) {
	t.Helper()
	t.Run("ping_ok", func(t *testing.T) {
		p, cleanup := makePinger(t)
		t.Cleanup(cleanup)
		if err := p.Ping(context.Background()); err != nil {
			t.Fatalf("expected ping ok, got %v", err)
		}
	})
}
