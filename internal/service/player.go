package service

import (
	"context"
	"time"

	"github.com/itbasis/go-clock"
	"github.com/rs/zerolog"

	"github.com/maxviazov/player-roster-service/internal/dto"
	"github.com/maxviazov/player-roster-service/internal/repository"
	"github.com/maxviazov/player-roster-service/internal/validation"
)

type playerService struct {
	players  repository.PlayerRepository
	validate *validation.Validator
	clock    clock.Clock
	log      zerolog.Logger
}

func NewPlayerService(players repository.PlayerRepository, v *validation.Validator, c clock.Clock, logger zerolog.Logger) PlayerService {
	l := logger.With().Str("module", "service").Str("component", "player").Logger()
	return &playerService{players: players, validate: v, clock: c, log: l}
}

func (s *playerService) Create(ctx context.Context, currentUserID string, in dto.CreatePlayerRequest) Result[dto.PlayerResponse] {
	start := time.Now()
	if err := requireUser(currentUserID); err != nil {
		return failure[dto.PlayerResponse](s.log, "create", err)
	}
	if err := newInvalidInput(s.validate.CreatePlayer(in)); err != nil {
		return failure[dto.PlayerResponse](s.log, "create", err)
	}

	out, err := s.players.Add(ctx, in.ToEntity(currentUserID))
	if err != nil {
		return failure[dto.PlayerResponse](s.log, "create", err)
	}
	s.log.Info().Dur("took", time.Since(start)).Int64("player_id", out.ID).Msg("player created")
	return ok(dto.PlayerFromEntity(out, s.clock.Now()))
}

func (s *playerService) Get(ctx context.Context, currentUserID string, id int64) Result[dto.PlayerResponse] {
	if err := requireUser(currentUserID); err != nil {
		return failure[dto.PlayerResponse](s.log, "get", err)
	}
	if err := requireID("id", id); err != nil {
		return failure[dto.PlayerResponse](s.log, "get", err)
	}
	p, err := ownedPlayer(ctx, s.players, id, currentUserID)
	if err != nil {
		return failure[dto.PlayerResponse](s.log, "get", err)
	}
	return ok(dto.PlayerFromEntity(p, s.clock.Now()))
}

func (s *playerService) ListByUser(ctx context.Context, currentUserID string, page repository.Page) Result[dto.Page[dto.PlayerResponse]] {
	if err := requireUser(currentUserID); err != nil {
		return failure[dto.Page[dto.PlayerResponse]](s.log, "list", err)
	}
	p := page.Normalize()
	res, err := s.players.GetByUserID(ctx, currentUserID, p)
	if err != nil {
		return failure[dto.Page[dto.PlayerResponse]](s.log, "list", err)
	}
	now := s.clock.Now()
	items := make([]dto.PlayerResponse, 0, len(res.Items))
	for _, it := range res.Items {
		items = append(items, dto.PlayerFromEntity(it, now))
	}
	return ok(dto.Page[dto.PlayerResponse]{Items: items, Total: res.Total, Limit: p.Limit, Offset: p.Offset})
}

func (s *playerService) Update(ctx context.Context, currentUserID string, id int64, in dto.UpdatePlayerRequest) Result[dto.PlayerResponse] {
	if err := requireUser(currentUserID); err != nil {
		return failure[dto.PlayerResponse](s.log, "update", err)
	}
	errs := s.validate.UpdatePlayer(in)
	if id <= 0 {
		errs.Add("id", "must be > 0")
	}
	if err := newInvalidInput(errs); err != nil {
		return failure[dto.PlayerResponse](s.log, "update", err)
	}

	p, err := ownedPlayer(ctx, s.players, id, currentUserID)
	if err != nil {
		return failure[dto.PlayerResponse](s.log, "update", err)
	}
	in.ApplyTo(&p)
	if err := p.Touch(currentUserID, s.clock.Now()); err != nil {
		return failure[dto.PlayerResponse](s.log, "update", err)
	}
	out, err := s.players.Update(ctx, p)
	if err != nil {
		return failure[dto.PlayerResponse](s.log, "update", err)
	}
	s.log.Info().Int64("player_id", out.ID).Msg("player updated")
	return ok(dto.PlayerFromEntity(out, s.clock.Now()))
}

// Delete removes the player together with its assignments and their statistics.
func (s *playerService) Delete(ctx context.Context, currentUserID string, id int64) Result[struct{}] {
	if err := requireUser(currentUserID); err != nil {
		return failure[struct{}](s.log, "delete", err)
	}
	if err := requireID("id", id); err != nil {
		return failure[struct{}](s.log, "delete", err)
	}
	if _, err := ownedPlayer(ctx, s.players, id, currentUserID); err != nil {
		return failure[struct{}](s.log, "delete", err)
	}
	removed, err := s.players.Delete(ctx, id)
	if err != nil {
		return failure[struct{}](s.log, "delete", err)
	}
	if !removed {
		return failure[struct{}](s.log, "delete", repository.Wrap("delete", repository.EntityPlayer, id, repository.ErrNotFound))
	}
	s.log.Info().Int64("player_id", id).Msg("player deleted")
	return ok(struct{}{})
}
