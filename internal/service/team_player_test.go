package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maxviazov/player-roster-service/internal/dto"
	"github.com/maxviazov/player-roster-service/internal/service"
)

func TestTeamPlayerService_Assign(t *testing.T) {
	e := newEnv(t)
	p := e.mustPlayer(t, "Emma")

	tp := e.mustAssign(t, p.ID, " Thunder FC ", "Spring 2025", date(2025, 1, 10))
	assert.Equal(t, "Thunder FC", tp.TeamName)
	assert.Equal(t, "Emma", tp.PlayerName)
	assert.True(t, tp.IsActive)
	assert.Equal(t, 156, tp.DurationDays)
	assert.Equal(t, owner, tp.CreatedBy)
}

func TestTeamPlayerService_Assign_RejectsActiveDuplicate(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	p := e.mustPlayer(t, "Emma")
	e.mustAssign(t, p.ID, "Thunder FC", "Spring 2025", date(2025, 1, 10))

	res := e.teamPlayers.Assign(ctx, owner, p.ID, dto.CreateTeamPlayerRequest{
		TeamName: "thunder fc", ChampionshipName: "SPRING 2025", JoinedDate: date(2025, 2, 1),
	})
	assert.Equal(t, service.StatusFailure, res.Status)
	assert.Equal(t, service.CodeInvalidOperation, res.Code)

	all := e.teamPlayers.ListByPlayer(ctx, owner, p.ID, false)
	require.True(t, all.IsSuccess())
	assert.Len(t, all.Data, 1)
}

func TestTeamPlayerService_Assign_HistoricalDoesNotCollide(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	p := e.mustPlayer(t, "Emma")
	e.mustAssign(t, p.ID, "Thunder FC", "Spring 2025", date(2025, 1, 10))

	left := date(2024, 12, 1)
	res := e.teamPlayers.Assign(ctx, owner, p.ID, dto.CreateTeamPlayerRequest{
		TeamName: "Thunder FC", ChampionshipName: "Spring 2025", JoinedDate: date(2024, 9, 1), LeftDate: &left,
	})
	require.True(t, res.IsSuccess(), "%+v", res)
	assert.False(t, res.Data.IsActive)
	assert.Equal(t, 91, res.Data.DurationDays)
}

func TestTeamPlayerService_Assign_Validation(t *testing.T) {
	e := newEnv(t)
	left := date(2025, 1, 1)
	res := e.teamPlayers.Assign(context.Background(), owner, 0, dto.CreateTeamPlayerRequest{
		TeamName: "", ChampionshipName: "Cup", JoinedDate: date(2025, 2, 1), LeftDate: &left,
	})
	assert.Equal(t, service.StatusValidationFailure, res.Status)
	assert.Contains(t, res.FieldErrors, "team_name")
	assert.Contains(t, res.FieldErrors, "left_date")
	assert.Contains(t, res.FieldErrors, "player_id")
}

func TestTeamPlayerService_Assign_ForeignPlayer(t *testing.T) {
	e := newEnv(t)
	p := e.mustPlayer(t, "Emma")
	res := e.teamPlayers.Assign(context.Background(), stranger, p.ID, dto.CreateTeamPlayerRequest{
		TeamName: "Lions", ChampionshipName: "Cup", JoinedDate: date(2025, 1, 1),
	})
	assert.Equal(t, service.CodeNotFound, res.Code)
}

func TestTeamPlayerService_MarkAsLeft(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	p := e.mustPlayer(t, "Emma")
	tp := e.mustAssign(t, p.ID, "Thunder FC", "Spring 2025", date(2025, 1, 10))

	early := e.teamPlayers.MarkAsLeft(ctx, owner, tp.ID, dto.MarkAsLeftRequest{LeftDate: date(2025, 1, 10)})
	assert.Equal(t, service.StatusValidationFailure, early.Status)
	assert.Contains(t, early.FieldErrors, "left_date")

	future := e.teamPlayers.MarkAsLeft(ctx, owner, tp.ID, dto.MarkAsLeftRequest{LeftDate: date(2025, 7, 1)})
	assert.Equal(t, service.StatusValidationFailure, future.Status)

	unchanged := e.teamPlayers.Get(ctx, owner, tp.ID)
	require.True(t, unchanged.IsSuccess())
	assert.True(t, unchanged.Data.IsActive)

	res := e.teamPlayers.MarkAsLeft(ctx, owner, tp.ID, dto.MarkAsLeftRequest{LeftDate: date(2025, 6, 1)})
	require.True(t, res.IsSuccess(), "%+v", res)
	assert.False(t, res.Data.IsActive)
	require.NotNil(t, res.Data.LeftDate)
	assert.True(t, res.Data.LeftDate.Equal(date(2025, 6, 1)))
	require.NotNil(t, res.Data.UpdatedBy)
	assert.Equal(t, owner, *res.Data.UpdatedBy)
	assert.Equal(t, "Emma", res.Data.PlayerName)

	again := e.teamPlayers.MarkAsLeft(ctx, owner, tp.ID, dto.MarkAsLeftRequest{LeftDate: date(2025, 6, 2)})
	assert.Equal(t, service.StatusFailure, again.Status)
	assert.Equal(t, service.CodeInvalidOperation, again.Code)

	active := e.teamPlayers.ListByPlayer(ctx, owner, p.ID, true)
	require.True(t, active.IsSuccess())
	assert.Empty(t, active.Data)
}

func TestTeamPlayerService_SameDayLeftDateIsFieldError(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	p := e.mustPlayer(t, "Emma")

	left := date(2025, 1, 10).Add(18 * time.Hour)
	res := e.teamPlayers.Assign(ctx, owner, p.ID, dto.CreateTeamPlayerRequest{
		TeamName: "Thunder FC", ChampionshipName: "Spring 2025", JoinedDate: date(2025, 1, 10), LeftDate: &left,
	})
	assert.Equal(t, service.StatusValidationFailure, res.Status)
	assert.Equal(t, []string{"must be after joined_date"}, res.FieldErrors["left_date"])

	tp := e.mustAssign(t, p.ID, "Thunder FC", "Spring 2025", date(2025, 1, 10))
	closed := e.teamPlayers.MarkAsLeft(ctx, owner, tp.ID, dto.MarkAsLeftRequest{LeftDate: left})
	assert.Equal(t, service.StatusValidationFailure, closed.Status)
	assert.Equal(t, []string{"must be after joined_date"}, closed.FieldErrors["left_date"])
}

func TestTeamPlayerService_MarkAsLeft_FutureOnCallerCalendar(t *testing.T) {
	e := newEnv(t)
	p := e.mustPlayer(t, "Emma")
	tp := e.mustAssign(t, p.ID, "Thunder FC", "Spring 2025", date(2025, 1, 10))

	// 2025-06-16 01:00 at UTC+14 is 2025-06-15 11:00 UTC, before the clock.
	tomorrowLocal := time.Date(2025, 6, 16, 1, 0, 0, 0, time.FixedZone("UTC+14", 14*3600))
	res := e.teamPlayers.MarkAsLeft(context.Background(), owner, tp.ID, dto.MarkAsLeftRequest{LeftDate: tomorrowLocal})
	assert.Equal(t, service.StatusValidationFailure, res.Status)
	assert.Equal(t, []string{"must not be in the future"}, res.FieldErrors["left_date"])
}

func TestTeamPlayerService_Update(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	p := e.mustPlayer(t, "Emma")
	first := e.mustAssign(t, p.ID, "Lions", "Cup", date(2025, 1, 10))
	e.mustAssign(t, p.ID, "Eagles", "Cup", date(2025, 2, 10))

	e.clock.Add(time.Hour)
	res := e.teamPlayers.Update(ctx, owner, first.ID, dto.UpdateTeamPlayerRequest{
		TeamName: "Lions Reserve", ChampionshipName: "Cup", JoinedDate: date(2025, 1, 12),
	})
	require.True(t, res.IsSuccess(), "%+v", res)
	assert.Equal(t, "Lions Reserve", res.Data.TeamName)
	assert.True(t, res.Data.JoinedDate.Equal(date(2025, 1, 12)))
	assert.True(t, res.Data.CreatedAt.Equal(now))

	// renaming onto the other active assignment collides
	dup := e.teamPlayers.Update(ctx, owner, first.ID, dto.UpdateTeamPlayerRequest{
		TeamName: "EAGLES", ChampionshipName: "cup", JoinedDate: date(2025, 1, 12),
	})
	assert.Equal(t, service.CodeInvalidOperation, dup.Code)

	// keeping its own name is not a duplicate of itself
	same := e.teamPlayers.Update(ctx, owner, first.ID, dto.UpdateTeamPlayerRequest{
		TeamName: "Lions Reserve", ChampionshipName: "Cup", JoinedDate: date(2025, 1, 11),
	})
	assert.True(t, same.IsSuccess(), "%+v", same)
}

func TestTeamPlayerService_Update_JoinedAfterLeft(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	p := e.mustPlayer(t, "Emma")
	tp := e.mustAssign(t, p.ID, "Lions", "Cup", date(2025, 1, 10))
	require.True(t, e.teamPlayers.MarkAsLeft(ctx, owner, tp.ID, dto.MarkAsLeftRequest{LeftDate: date(2025, 3, 1)}).IsSuccess())

	res := e.teamPlayers.Update(ctx, owner, tp.ID, dto.UpdateTeamPlayerRequest{
		TeamName: "Lions", ChampionshipName: "Cup", JoinedDate: date(2025, 4, 1),
	})
	assert.Equal(t, service.StatusValidationFailure, res.Status)
	assert.Contains(t, res.FieldErrors, "joined_date")
}

func TestTeamPlayerService_ListByPlayer_Order(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	p := e.mustPlayer(t, "Emma")
	e.mustAssign(t, p.ID, "Old", "Cup", date(2024, 1, 1))
	e.mustAssign(t, p.ID, "New", "Cup", date(2025, 1, 1))
	e.mustAssign(t, p.ID, "Mid", "Cup", date(2024, 6, 1))

	res := e.teamPlayers.ListByPlayer(ctx, owner, p.ID, false)
	require.True(t, res.IsSuccess())
	require.Len(t, res.Data, 3)
	assert.Equal(t, []string{"New", "Mid", "Old"}, []string{res.Data[0].TeamName, res.Data[1].TeamName, res.Data[2].TeamName})
}

func TestTeamPlayerService_Delete(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	p := e.mustPlayer(t, "Emma")
	tp := e.mustAssign(t, p.ID, "Lions", "Cup", date(2025, 1, 10))
	s := e.mustRecord(t, tp.ID, date(2025, 2, 1), 1, 0)

	assert.Equal(t, service.CodeNotFound, e.teamPlayers.Delete(ctx, stranger, tp.ID).Code)
	require.True(t, e.teamPlayers.Delete(ctx, owner, tp.ID).IsSuccess())
	assert.Equal(t, service.CodeNotFound, e.stats.Get(ctx, owner, s.ID).Code)
	assert.Equal(t, service.CodeNotFound, e.teamPlayers.Delete(ctx, owner, tp.ID).Code)
}
