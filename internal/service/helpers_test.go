package service_test

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/itbasis/go-clock"
	"github.com/rs/zerolog"

	"github.com/maxviazov/player-roster-service/internal/dto"
	"github.com/maxviazov/player-roster-service/internal/model"
	"github.com/maxviazov/player-roster-service/internal/repository"
	"github.com/maxviazov/player-roster-service/internal/repository/memory"
	"github.com/maxviazov/player-roster-service/internal/service"
	"github.com/maxviazov/player-roster-service/internal/validation"
)

const (
	owner    = "user-1"
	stranger = "user-2"
)

var now = time.Date(2025, time.June, 15, 12, 0, 0, 0, time.UTC)

func date(y int, m time.Month, d int) time.Time { return time.Date(y, m, d, 0, 0, 0, 0, time.UTC) }

type env struct {
	clock       *clock.Mock
	players     service.PlayerService
	teamPlayers service.TeamPlayerService
	stats       service.PlayerStatisticService

	playerRepo     repository.PlayerRepository
	teamPlayerRepo repository.TeamPlayerRepository
	statRepo       repository.PlayerStatisticRepository
}

func newEnv(t *testing.T) *env {
	t.Helper()
	mock := clock.NewMock()
	mock.Set(now)
	logger := zerolog.New(io.Discard)
	store := memory.NewStore(mock)
	v := validation.New(mock)

	e := &env{
		clock:          mock,
		playerRepo:     memory.NewPlayerRepository(store),
		teamPlayerRepo: memory.NewTeamPlayerRepository(store),
		statRepo:       memory.NewPlayerStatisticRepository(store),
	}
	e.players = service.NewPlayerService(e.playerRepo, v, mock, logger)
	e.teamPlayers = service.NewTeamPlayerService(memory.NewTxManager(store), e.playerRepo, e.teamPlayerRepo, v, mock, logger)
	e.stats = service.NewPlayerStatisticService(e.playerRepo, e.teamPlayerRepo, e.statRepo, v, mock, logger)
	return e
}

func (e *env) mustPlayer(t *testing.T, name string) dto.PlayerResponse {
	t.Helper()
	res := e.players.Create(context.Background(), owner, dto.CreatePlayerRequest{Name: name, DateOfBirth: date(2010, time.March, 15)})
	if !res.IsSuccess() {
		t.Fatalf("create player: %+v", res)
	}
	return res.Data
}

func (e *env) mustAssign(t *testing.T, playerID int64, team, champ string, joined time.Time) dto.TeamPlayerResponse {
	t.Helper()
	res := e.teamPlayers.Assign(context.Background(), owner, playerID, dto.CreateTeamPlayerRequest{
		TeamName: team, ChampionshipName: champ, JoinedDate: joined,
	})
	if !res.IsSuccess() {
		t.Fatalf("assign: %+v", res)
	}
	return res.Data
}

func (e *env) mustRecord(t *testing.T, teamPlayerID int64, game time.Time, goals, assists int) dto.PlayerStatisticResponse {
	t.Helper()
	res := e.stats.Record(context.Background(), owner, dto.CreatePlayerStatisticRequest{
		TeamPlayerID: teamPlayerID, GameDate: game, MinutesPlayed: 60, JerseyNumber: 9, Goals: goals, Assists: assists,
	})
	if !res.IsSuccess() {
		t.Fatalf("record: %+v", res)
	}
	return res.Data
}

// brokenPlayers fails every call the way an unreachable database would.
type brokenPlayers struct{}

var errStoreDown = errors.New("dial tcp 10.0.0.5:5432: connection refused")

func (brokenPlayers) GetByID(context.Context, int64) (model.Player, error) {
	return model.Player{}, repository.Wrap("get", repository.EntityPlayer, 7, errStoreDown)
}
func (brokenPlayers) GetByUserID(context.Context, string, repository.Page) (repository.PageResult[model.Player], error) {
	return repository.PageResult[model.Player]{}, repository.Wrap("list", repository.EntityPlayer, 0, errStoreDown)
}
func (brokenPlayers) Add(context.Context, model.Player) (model.Player, error) {
	return model.Player{}, repository.Wrap("add", repository.EntityPlayer, 0, errStoreDown)
}
func (brokenPlayers) Update(context.Context, model.Player) (model.Player, error) {
	return model.Player{}, repository.Wrap("update", repository.EntityPlayer, 0, errStoreDown)
}
func (brokenPlayers) Delete(context.Context, int64) (bool, error) {
	return false, repository.Wrap("delete", repository.EntityPlayer, 0, errStoreDown)
}
func (brokenPlayers) Exists(context.Context, int64) (bool, error) {
	return false, repository.Wrap("exists", repository.EntityPlayer, 0, errStoreDown)
}

var _ repository.PlayerRepository = brokenPlayers{}
