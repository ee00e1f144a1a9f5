package service

import (
	"context"
	"time"

	"github.com/itbasis/go-clock"
	"github.com/rs/zerolog"

	"github.com/maxviazov/player-roster-service/internal/dto"
	"github.com/maxviazov/player-roster-service/internal/model"
	"github.com/maxviazov/player-roster-service/internal/repository"
	"github.com/maxviazov/player-roster-service/internal/validation"
)

type playerStatisticService struct {
	players     repository.PlayerRepository
	teamPlayers repository.TeamPlayerRepository
	stats       repository.PlayerStatisticRepository
	validate    *validation.Validator
	clock       clock.Clock
	log         zerolog.Logger
}

func NewPlayerStatisticService(
	players repository.PlayerRepository,
	teamPlayers repository.TeamPlayerRepository,
	stats repository.PlayerStatisticRepository,
	v *validation.Validator,
	c clock.Clock,
	logger zerolog.Logger,
) PlayerStatisticService {
	l := logger.With().Str("module", "service").Str("component", "player_statistic").Logger()
	return &playerStatisticService{players: players, teamPlayers: teamPlayers, stats: stats, validate: v, clock: c, log: l}
}

func (s *playerStatisticService) Record(ctx context.Context, currentUserID string, in dto.CreatePlayerStatisticRequest) Result[dto.PlayerStatisticResponse] {
	start := time.Now()
	if err := requireUser(currentUserID); err != nil {
		return failure[dto.PlayerStatisticResponse](s.log, "record", err)
	}
	if err := newInvalidInput(s.validate.CreatePlayerStatistic(in)); err != nil {
		return failure[dto.PlayerStatisticResponse](s.log, "record", err)
	}
	if _, err := ownedTeamPlayer(ctx, s.teamPlayers, in.TeamPlayerID, currentUserID); err != nil {
		return failure[dto.PlayerStatisticResponse](s.log, "record", err)
	}
	out, err := s.stats.Add(ctx, in.ToEntity(currentUserID))
	if err != nil {
		return failure[dto.PlayerStatisticResponse](s.log, "record", err)
	}
	s.log.Info().Dur("took", time.Since(start)).Int64("statistic_id", out.ID).Int64("team_player_id", out.TeamPlayerID).Msg("statistic recorded")
	return ok(dto.PlayerStatisticFromEntity(out))
}

// owned loads a statistic after checking the chain statistic -> assignment -> player.
func (s *playerStatisticService) owned(ctx context.Context, id int64, userID string) (model.PlayerStatistic, error) {
	st, err := s.stats.GetByID(ctx, id)
	if err != nil {
		return model.PlayerStatistic{}, err
	}
	if _, err := ownedTeamPlayer(ctx, s.teamPlayers, st.TeamPlayerID, userID); err != nil {
		return model.PlayerStatistic{}, repository.Wrap("authorize", repository.EntityPlayerStatistic, id, repository.ErrNotFound)
	}
	return st, nil
}

func (s *playerStatisticService) Get(ctx context.Context, currentUserID string, id int64) Result[dto.PlayerStatisticResponse] {
	if err := requireUser(currentUserID); err != nil {
		return failure[dto.PlayerStatisticResponse](s.log, "get", err)
	}
	if err := requireID("id", id); err != nil {
		return failure[dto.PlayerStatisticResponse](s.log, "get", err)
	}
	st, err := s.owned(ctx, id, currentUserID)
	if err != nil {
		return failure[dto.PlayerStatisticResponse](s.log, "get", err)
	}
	return ok(dto.PlayerStatisticFromEntity(st))
}

func (s *playerStatisticService) Update(ctx context.Context, currentUserID string, id int64, in dto.UpdatePlayerStatisticRequest) Result[dto.PlayerStatisticResponse] {
	if err := requireUser(currentUserID); err != nil {
		return failure[dto.PlayerStatisticResponse](s.log, "update", err)
	}
	errs := s.validate.UpdatePlayerStatistic(in)
	if id <= 0 {
		errs.Add("id", "must be > 0")
	}
	if err := newInvalidInput(errs); err != nil {
		return failure[dto.PlayerStatisticResponse](s.log, "update", err)
	}
	st, err := s.owned(ctx, id, currentUserID)
	if err != nil {
		return failure[dto.PlayerStatisticResponse](s.log, "update", err)
	}
	in.ApplyTo(&st)
	if err := st.Touch(currentUserID, s.clock.Now()); err != nil {
		return failure[dto.PlayerStatisticResponse](s.log, "update", err)
	}
	out, err := s.stats.Update(ctx, st)
	if err != nil {
		return failure[dto.PlayerStatisticResponse](s.log, "update", err)
	}
	s.log.Info().Int64("statistic_id", out.ID).Msg("statistic updated")
	return ok(dto.PlayerStatisticFromEntity(out))
}

func (s *playerStatisticService) Delete(ctx context.Context, currentUserID string, id int64) Result[struct{}] {
	if err := requireUser(currentUserID); err != nil {
		return failure[struct{}](s.log, "delete", err)
	}
	if err := requireID("id", id); err != nil {
		return failure[struct{}](s.log, "delete", err)
	}
	if _, err := s.owned(ctx, id, currentUserID); err != nil {
		return failure[struct{}](s.log, "delete", err)
	}
	removed, err := s.stats.Delete(ctx, id)
	if err != nil {
		return failure[struct{}](s.log, "delete", err)
	}
	if !removed {
		return failure[struct{}](s.log, "delete", repository.Wrap("delete", repository.EntityPlayerStatistic, id, repository.ErrNotFound))
	}
	return ok(struct{}{})
}

func (s *playerStatisticService) ListByTeamPlayer(ctx context.Context, currentUserID string, teamPlayerID int64) Result[[]dto.PlayerStatisticResponse] {
	if err := requireUser(currentUserID); err != nil {
		return failure[[]dto.PlayerStatisticResponse](s.log, "list_by_team_player", err)
	}
	if err := requireID("team_player_id", teamPlayerID); err != nil {
		return failure[[]dto.PlayerStatisticResponse](s.log, "list_by_team_player", err)
	}
	if _, err := ownedTeamPlayer(ctx, s.teamPlayers, teamPlayerID, currentUserID); err != nil {
		return failure[[]dto.PlayerStatisticResponse](s.log, "list_by_team_player", err)
	}
	items, err := s.stats.GetByTeamPlayerID(ctx, teamPlayerID)
	if err != nil {
		return failure[[]dto.PlayerStatisticResponse](s.log, "list_by_team_player", err)
	}
	return ok(dto.PlayerStatisticsFromEntities(items))
}

func (s *playerStatisticService) ListByPlayer(ctx context.Context, currentUserID string, playerID int64) Result[[]dto.PlayerStatisticResponse] {
	if err := requireUser(currentUserID); err != nil {
		return failure[[]dto.PlayerStatisticResponse](s.log, "list_by_player", err)
	}
	if err := requireID("player_id", playerID); err != nil {
		return failure[[]dto.PlayerStatisticResponse](s.log, "list_by_player", err)
	}
	if _, err := ownedPlayer(ctx, s.players, playerID, currentUserID); err != nil {
		return failure[[]dto.PlayerStatisticResponse](s.log, "list_by_player", err)
	}
	items, err := s.stats.GetByPlayerID(ctx, playerID)
	if err != nil {
		return failure[[]dto.PlayerStatisticResponse](s.log, "list_by_player", err)
	}
	return ok(dto.PlayerStatisticsFromEntities(items))
}

// ListByDateRange returns the player's games between in.From and in.To inclusive,
// across every assignment.
func (s *playerStatisticService) ListByDateRange(ctx context.Context, currentUserID string, playerID int64, in dto.DateRange) Result[[]dto.PlayerStatisticResponse] {
	if err := requireUser(currentUserID); err != nil {
		return failure[[]dto.PlayerStatisticResponse](s.log, "list_by_date_range", err)
	}
	errs := s.validate.DateRange(in)
	if playerID <= 0 {
		errs.Add("player_id", "must be > 0")
	}
	if err := newInvalidInput(errs); err != nil {
		return failure[[]dto.PlayerStatisticResponse](s.log, "list_by_date_range", err)
	}
	if _, err := ownedPlayer(ctx, s.players, playerID, currentUserID); err != nil {
		return failure[[]dto.PlayerStatisticResponse](s.log, "list_by_date_range", err)
	}
	items, err := s.stats.GetByDateRange(ctx, playerID, in.From, in.To)
	if err != nil {
		return failure[[]dto.PlayerStatisticResponse](s.log, "list_by_date_range", err)
	}
	return ok(dto.PlayerStatisticsFromEntities(items))
}

// Aggregates summarises the player's games, optionally scoped to one of its assignments.
func (s *playerStatisticService) Aggregates(ctx context.Context, currentUserID string, playerID int64, teamPlayerID *int64) Result[dto.StatisticsSummary] {
	if err := requireUser(currentUserID); err != nil {
		return failure[dto.StatisticsSummary](s.log, "aggregate", err)
	}
	var errs validation.Errors
	if playerID <= 0 {
		errs.Add("player_id", "must be > 0")
	}
	if teamPlayerID != nil && *teamPlayerID <= 0 {
		errs.Add("team_player_id", "must be > 0")
	}
	if err := newInvalidInput(errs); err != nil {
		return failure[dto.StatisticsSummary](s.log, "aggregate", err)
	}
	if _, err := ownedPlayer(ctx, s.players, playerID, currentUserID); err != nil {
		return failure[dto.StatisticsSummary](s.log, "aggregate", err)
	}
	if teamPlayerID != nil {
		tp, err := s.teamPlayers.GetByID(ctx, *teamPlayerID)
		if err != nil {
			return failure[dto.StatisticsSummary](s.log, "aggregate", err)
		}
		if tp.PlayerID != playerID {
			return failure[dto.StatisticsSummary](s.log, "aggregate",
				repository.Wrap("aggregate", repository.EntityTeamPlayer, *teamPlayerID, repository.ErrNotFound))
		}
	}
	agg, err := s.stats.GetAggregates(ctx, playerID, teamPlayerID)
	if err != nil {
		return failure[dto.StatisticsSummary](s.log, "aggregate", err)
	}
	return ok(dto.SummaryFromAggregate(playerID, teamPlayerID, agg))
}
