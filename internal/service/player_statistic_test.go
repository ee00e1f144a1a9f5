package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maxviazov/player-roster-service/internal/dto"
	"github.com/maxviazov/player-roster-service/internal/service"
)

func TestPlayerStatisticService_Record(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	p := e.mustPlayer(t, "Emma")
	tp := e.mustAssign(t, p.ID, "Lions", "Cup", date(2025, 1, 10))

	s := e.mustRecord(t, tp.ID, date(2025, 2, 1), 2, 1)
	assert.Equal(t, tp.ID, s.TeamPlayerID)
	assert.Equal(t, owner, s.CreatedBy)

	bad := e.stats.Record(ctx, owner, dto.CreatePlayerStatisticRequest{
		TeamPlayerID: tp.ID, GameDate: date(2025, 7, 1), MinutesPlayed: -1, JerseyNumber: 0, Goals: -1, Assists: -2,
	})
	assert.Equal(t, service.StatusValidationFailure, bad.Status)
	for _, f := range []string{"game_date", "minutes_played", "jersey_number", "goals", "assists"} {
		assert.Contains(t, bad.FieldErrors, f)
	}

	missing := e.stats.Record(ctx, owner, dto.CreatePlayerStatisticRequest{
		TeamPlayerID: 999, GameDate: date(2025, 2, 1), JerseyNumber: 7,
	})
	assert.Equal(t, service.CodeNotFound, missing.Code)
	assert.Equal(t, []string{"team assignment not found"}, missing.Messages)

	foreign := e.stats.Record(ctx, stranger, dto.CreatePlayerStatisticRequest{
		TeamPlayerID: tp.ID, GameDate: date(2025, 2, 1), JerseyNumber: 7,
	})
	assert.Equal(t, service.CodeNotFound, foreign.Code)
}

func TestPlayerStatisticService_UpdateKeepsAssignment(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	p := e.mustPlayer(t, "Emma")
	tp := e.mustAssign(t, p.ID, "Lions", "Cup", date(2025, 1, 10))
	s := e.mustRecord(t, tp.ID, date(2025, 2, 1), 2, 1)

	res := e.stats.Update(ctx, owner, s.ID, dto.UpdatePlayerStatisticRequest{
		GameDate: date(2025, 2, 2), MinutesPlayed: 90, IsStarter: true, JerseyNumber: 10, Goals: 3, Assists: 0,
	})
	require.True(t, res.IsSuccess(), "%+v", res)
	assert.Equal(t, 3, res.Data.Goals)
	assert.Equal(t, tp.ID, res.Data.TeamPlayerID)
	require.NotNil(t, res.Data.UpdatedBy)

	foreign := e.stats.Update(ctx, stranger, s.ID, dto.UpdatePlayerStatisticRequest{
		GameDate: date(2025, 2, 2), JerseyNumber: 10,
	})
	assert.Equal(t, service.CodeNotFound, foreign.Code)
}

func TestPlayerStatisticService_ListByDateRange(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	p := e.mustPlayer(t, "Emma")
	old := e.mustAssign(t, p.ID, "Eagles", "Winter", date(2024, 9, 1))
	cur := e.mustAssign(t, p.ID, "Lions", "Spring", date(2025, 1, 10))
	e.mustRecord(t, old.ID, date(2024, 12, 31), 0, 0)
	a := e.mustRecord(t, old.ID, date(2025, 1, 1), 0, 0)
	b := e.mustRecord(t, cur.ID, date(2025, 3, 1), 0, 0)

	res := e.stats.ListByDateRange(ctx, owner, p.ID, dto.DateRange{From: date(2025, 1, 1), To: date(2025, 3, 1)})
	require.True(t, res.IsSuccess(), "%+v", res)
	require.Len(t, res.Data, 2)
	assert.Equal(t, b.ID, res.Data[0].ID)
	assert.Equal(t, a.ID, res.Data[1].ID)

	inverted := e.stats.ListByDateRange(ctx, owner, p.ID, dto.DateRange{From: date(2025, 3, 1), To: date(2025, 1, 1)})
	assert.Equal(t, service.StatusValidationFailure, inverted.Status)
	assert.Contains(t, inverted.FieldErrors, "from")
}

func TestPlayerStatisticService_Aggregates_Empty(t *testing.T) {
	e := newEnv(t)
	p := e.mustPlayer(t, "Emma")
	res := e.stats.Aggregates(context.Background(), owner, p.ID, nil)
	require.True(t, res.IsSuccess())
	assert.Equal(t, dto.StatisticsSummary{PlayerID: p.ID}, res.Data)
}

func TestPlayerStatisticService_Aggregates_ForeignAssignment(t *testing.T) {
	e := newEnv(t)
	emma := e.mustPlayer(t, "Emma")
	mia := e.mustPlayer(t, "Mia")
	tp := e.mustAssign(t, mia.ID, "Lions", "Cup", date(2025, 1, 10))

	res := e.stats.Aggregates(context.Background(), owner, emma.ID, &tp.ID)
	assert.Equal(t, service.CodeNotFound, res.Code)
}

// Emma's season end to end: duplicate rejection, aggregates, leaving twice and cascade.
func TestRosterScenario_Emma(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	emma := e.mustPlayer(t, "Emma")
	tp := e.mustAssign(t, emma.ID, "Thunder FC", "Spring 2025", date(2025, 1, 10))

	dup := e.teamPlayers.Assign(ctx, owner, emma.ID, dto.CreateTeamPlayerRequest{
		TeamName: "Thunder FC", ChampionshipName: "Spring 2025", JoinedDate: date(2025, 1, 10),
	})
	require.Equal(t, service.CodeInvalidOperation, dup.Code)

	goals := []int{2, 1, 0}
	assists := []int{1, 2, 3}
	for i := range goals {
		e.mustRecord(t, tp.ID, date(2025, 3, 1+7*i), goals[i], assists[i])
	}

	agg := e.stats.Aggregates(ctx, owner, emma.ID, nil)
	require.True(t, agg.IsSuccess())
	assert.Equal(t, 3, agg.Data.GameCount)
	assert.Equal(t, 3, agg.Data.TotalGoals)
	assert.Equal(t, 6, agg.Data.TotalAssists)
	assert.InDelta(t, 1.0, agg.Data.AverageGoals, 1e-9)
	assert.InDelta(t, 2.0, agg.Data.AverageAssists, 1e-9)

	scoped := e.stats.Aggregates(ctx, owner, emma.ID, &tp.ID)
	require.True(t, scoped.IsSuccess())
	assert.Equal(t, agg.Data.GameCount, scoped.Data.GameCount)
	require.NotNil(t, scoped.Data.TeamPlayerID)

	left := e.teamPlayers.MarkAsLeft(ctx, owner, tp.ID, dto.MarkAsLeftRequest{LeftDate: date(2025, 6, 1)})
	require.True(t, left.IsSuccess(), "%+v", left)
	second := e.teamPlayers.MarkAsLeft(ctx, owner, tp.ID, dto.MarkAsLeftRequest{LeftDate: date(2025, 6, 1)})
	assert.Equal(t, service.CodeInvalidOperation, second.Code)

	require.True(t, e.players.Delete(ctx, owner, emma.ID).IsSuccess())
	teams, err := e.teamPlayerRepo.GetAllByPlayerID(ctx, emma.ID)
	require.NoError(t, err)
	assert.Empty(t, teams)
	stats, err := e.statRepo.GetByPlayerID(ctx, emma.ID)
	require.NoError(t, err)
	assert.Empty(t, stats)
	gone, err := e.statRepo.GetByTeamPlayerID(ctx, tp.ID)
	require.NoError(t, err)
	assert.Empty(t, gone)
}
