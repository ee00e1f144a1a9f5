package service

import (
	"context"
	"errors"
	"time"

	"github.com/itbasis/go-clock"
	"github.com/rs/zerolog"

	"github.com/maxviazov/player-roster-service/internal/dto"
	"github.com/maxviazov/player-roster-service/internal/model"
	"github.com/maxviazov/player-roster-service/internal/repository"
	"github.com/maxviazov/player-roster-service/internal/validation"
)

type teamPlayerService struct {
	tx          repository.TxManager
	players     repository.PlayerRepository
	teamPlayers repository.TeamPlayerRepository
	validate    *validation.Validator
	clock       clock.Clock
	log         zerolog.Logger
}

func NewTeamPlayerService(
	tx repository.TxManager,
	players repository.PlayerRepository,
	teamPlayers repository.TeamPlayerRepository,
	v *validation.Validator,
	c clock.Clock,
	logger zerolog.Logger,
) TeamPlayerService {
	l := logger.With().Str("module", "service").Str("component", "team_player").Logger()
	return &teamPlayerService{tx: tx, players: players, teamPlayers: teamPlayers, validate: v, clock: c, log: l}
}

// Assign creates an assignment. The duplicate check and the insert share one
// transaction; a historical assignment (LeftDate set) never collides.
func (s *teamPlayerService) Assign(ctx context.Context, currentUserID string, playerID int64, in dto.CreateTeamPlayerRequest) Result[dto.TeamPlayerResponse] {
	start := time.Now()
	if err := requireUser(currentUserID); err != nil {
		return failure[dto.TeamPlayerResponse](s.log, "assign", err)
	}
	errs := s.validate.CreateTeamPlayer(in)
	if playerID <= 0 {
		errs.Add("player_id", "must be > 0")
	}
	if err := newInvalidInput(errs); err != nil {
		return failure[dto.TeamPlayerResponse](s.log, "assign", err)
	}

	var out model.TeamPlayer
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		p, err := ownedPlayer(ctx, s.players, playerID, currentUserID)
		if err != nil {
			return err
		}
		tp := in.ToEntity(playerID, currentUserID)
		if tp.IsActive() {
			dup, err := s.teamPlayers.HasActiveDuplicate(ctx, playerID, tp.TeamName, tp.ChampionshipName, nil)
			if err != nil {
				return err
			}
			if dup {
				return errDuplicateAssignment
			}
		}
		out, err = s.teamPlayers.Add(ctx, tp)
		if err != nil {
			return err
		}
		out.Player = &p
		return nil
	})
	if err != nil {
		return failure[dto.TeamPlayerResponse](s.log, "assign", err)
	}
	s.log.Info().Dur("took", time.Since(start)).Int64("team_player_id", out.ID).Int64("player_id", playerID).Msg("player assigned")
	return ok(dto.TeamPlayerFromEntity(out, s.clock.Now()))
}

func (s *teamPlayerService) Get(ctx context.Context, currentUserID string, id int64) Result[dto.TeamPlayerResponse] {
	if err := requireUser(currentUserID); err != nil {
		return failure[dto.TeamPlayerResponse](s.log, "get", err)
	}
	if err := requireID("id", id); err != nil {
		return failure[dto.TeamPlayerResponse](s.log, "get", err)
	}
	tp, err := ownedTeamPlayer(ctx, s.teamPlayers, id, currentUserID)
	if err != nil {
		return failure[dto.TeamPlayerResponse](s.log, "get", err)
	}
	return ok(dto.TeamPlayerFromEntity(tp, s.clock.Now()))
}

func (s *teamPlayerService) ListByPlayer(ctx context.Context, currentUserID string, playerID int64, activeOnly bool) Result[[]dto.TeamPlayerResponse] {
	if err := requireUser(currentUserID); err != nil {
		return failure[[]dto.TeamPlayerResponse](s.log, "list", err)
	}
	if err := requireID("player_id", playerID); err != nil {
		return failure[[]dto.TeamPlayerResponse](s.log, "list", err)
	}
	if _, err := ownedPlayer(ctx, s.players, playerID, currentUserID); err != nil {
		return failure[[]dto.TeamPlayerResponse](s.log, "list", err)
	}
	var (
		items []model.TeamPlayer
		err   error
	)
	if activeOnly {
		items, err = s.teamPlayers.GetActiveByPlayerID(ctx, playerID)
	} else {
		items, err = s.teamPlayers.GetAllByPlayerID(ctx, playerID)
	}
	if err != nil {
		return failure[[]dto.TeamPlayerResponse](s.log, "list", err)
	}
	return ok(dto.TeamPlayersFromEntities(items, s.clock.Now()))
}

func (s *teamPlayerService) Update(ctx context.Context, currentUserID string, id int64, in dto.UpdateTeamPlayerRequest) Result[dto.TeamPlayerResponse] {
	if err := requireUser(currentUserID); err != nil {
		return failure[dto.TeamPlayerResponse](s.log, "update", err)
	}
	errs := s.validate.UpdateTeamPlayer(in)
	if id <= 0 {
		errs.Add("id", "must be > 0")
	}
	if err := newInvalidInput(errs); err != nil {
		return failure[dto.TeamPlayerResponse](s.log, "update", err)
	}

	var out model.TeamPlayer
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		tp, err := ownedTeamPlayer(ctx, s.teamPlayers, id, currentUserID)
		if err != nil {
			return err
		}
		player := tp.Player
		in.ApplyTo(&tp)
		if tp.LeftDate != nil && !model.DateOf(*tp.LeftDate).After(model.DateOf(tp.JoinedDate)) {
			return newInvalidInput([]FieldError{{Field: "joined_date", Message: "must be before left_date"}})
		}
		if tp.IsActive() {
			dup, err := s.teamPlayers.HasActiveDuplicate(ctx, tp.PlayerID, tp.TeamName, tp.ChampionshipName, &tp.ID)
			if err != nil {
				return err
			}
			if dup {
				return errDuplicateAssignment
			}
		}
		if err := tp.Touch(currentUserID, s.clock.Now()); err != nil {
			return err
		}
		out, err = s.teamPlayers.Update(ctx, tp)
		if err != nil {
			return err
		}
		out.Player = player
		return nil
	})
	if err != nil {
		return failure[dto.TeamPlayerResponse](s.log, "update", err)
	}
	s.log.Info().Int64("team_player_id", out.ID).Msg("assignment updated")
	return ok(dto.TeamPlayerFromEntity(out, s.clock.Now()))
}

// MarkAsLeft closes an active assignment. Closing it twice is an invalid operation.
func (s *teamPlayerService) MarkAsLeft(ctx context.Context, currentUserID string, id int64, in dto.MarkAsLeftRequest) Result[dto.TeamPlayerResponse] {
	if err := requireUser(currentUserID); err != nil {
		return failure[dto.TeamPlayerResponse](s.log, "mark_as_left", err)
	}
	errs := s.validate.MarkAsLeft(in)
	if id <= 0 {
		errs.Add("id", "must be > 0")
	}
	if err := newInvalidInput(errs); err != nil {
		return failure[dto.TeamPlayerResponse](s.log, "mark_as_left", err)
	}

	tp, err := ownedTeamPlayer(ctx, s.teamPlayers, id, currentUserID)
	if err != nil {
		return failure[dto.TeamPlayerResponse](s.log, "mark_as_left", err)
	}
	player := tp.Player
	if err := tp.MarkAsLeftAt(model.DateOf(in.LeftDate), currentUserID, s.clock.Now()); err != nil {
		switch {
		case errors.Is(err, model.ErrLeftDateNotAfterJoined):
			err = newInvalidInput([]FieldError{{Field: "left_date", Message: "must be after joined_date"}})
		case errors.Is(err, model.ErrLeftDateInFuture):
			err = newInvalidInput([]FieldError{{Field: "left_date", Message: "must not be in the future"}})
		}
		return failure[dto.TeamPlayerResponse](s.log, "mark_as_left", err)
	}
	out, err := s.teamPlayers.Update(ctx, tp)
	if err != nil {
		return failure[dto.TeamPlayerResponse](s.log, "mark_as_left", err)
	}
	out.Player = player
	s.log.Info().Int64("team_player_id", out.ID).Time("left_date", *out.LeftDate).Msg("assignment closed")
	return ok(dto.TeamPlayerFromEntity(out, s.clock.Now()))
}

// Delete removes the assignment together with its statistics.
func (s *teamPlayerService) Delete(ctx context.Context, currentUserID string, id int64) Result[struct{}] {
	if err := requireUser(currentUserID); err != nil {
		return failure[struct{}](s.log, "delete", err)
	}
	if err := requireID("id", id); err != nil {
		return failure[struct{}](s.log, "delete", err)
	}
	if _, err := ownedTeamPlayer(ctx, s.teamPlayers, id, currentUserID); err != nil {
		return failure[struct{}](s.log, "delete", err)
	}
	removed, err := s.teamPlayers.Delete(ctx, id)
	if err != nil {
		return failure[struct{}](s.log, "delete", err)
	}
	if !removed {
		return failure[struct{}](s.log, "delete", repository.Wrap("delete", repository.EntityTeamPlayer, id, repository.ErrNotFound))
	}
	s.log.Info().Int64("team_player_id", id).Msg("assignment deleted")
	return ok(struct{}{})
}
