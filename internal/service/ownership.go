package service

import (
	"context"

	"github.com/maxviazov/player-roster-service/internal/model"
	"github.com/maxviazov/player-roster-service/internal/repository"
)

// Records owned by another user look exactly like missing ones.

func ownedPlayer(ctx context.Context, players repository.PlayerRepository, id int64, userID string) (model.Player, error) {
	p, err := players.GetByID(ctx, id)
	if err != nil {
		return model.Player{}, err
	}
	if p.UserID != userID {
		return model.Player{}, repository.Wrap("authorize", repository.EntityPlayer, id, repository.ErrNotFound)
	}
	return p, nil
}

// ownedTeamPlayer loads the assignment with its player attached.
func ownedTeamPlayer(ctx context.Context, teamPlayers repository.TeamPlayerRepository, id int64, userID string) (model.TeamPlayer, error) {
	tp, err := teamPlayers.GetByIDWithPlayer(ctx, id)
	if err != nil {
		return model.TeamPlayer{}, err
	}
	if tp.Player == nil || tp.Player.UserID != userID {
		return model.TeamPlayer{}, repository.Wrap("authorize", repository.EntityTeamPlayer, id, repository.ErrNotFound)
	}
	return tp, nil
}
