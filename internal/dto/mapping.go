package dto

import (
	"strings"
	"time"

	"github.com/maxviazov/player-roster-service/internal/model"
)

// ToEntity builds a new Player owned and created by userID.
func (r CreatePlayerRequest) ToEntity(userID string) model.Player {
	return model.Player{
		UserID:      userID,
		Name:        strings.TrimSpace(r.Name),
		DateOfBirth: model.DateOf(r.DateOfBirth),
		Gender:      trimmedOrNil(r.Gender),
		PhotoURL:    trimmedOrNil(r.PhotoURL),
		Audit:       model.Audit{CreatedBy: userID},
	}
}

// ApplyTo overwrites the mutable fields of p. Identity and creation audit stay intact.
func (r UpdatePlayerRequest) ApplyTo(p *model.Player) {
	p.Name = strings.TrimSpace(r.Name)
	p.DateOfBirth = model.DateOf(r.DateOfBirth)
	p.Gender = trimmedOrNil(r.Gender)
	p.PhotoURL = trimmedOrNil(r.PhotoURL)
}

func (r CreateTeamPlayerRequest) ToEntity(playerID int64, userID string) model.TeamPlayer {
	tp := model.TeamPlayer{
		PlayerID:         playerID,
		TeamName:         strings.TrimSpace(r.TeamName),
		ChampionshipName: strings.TrimSpace(r.ChampionshipName),
		JoinedDate:       model.DateOf(r.JoinedDate),
		Audit:            model.Audit{CreatedBy: userID},
	}
	if r.LeftDate != nil {
		ld := model.DateOf(*r.LeftDate)
		tp.LeftDate = &ld
	}
	return tp
}

func (r UpdateTeamPlayerRequest) ApplyTo(tp *model.TeamPlayer) {
	tp.TeamName = strings.TrimSpace(r.TeamName)
	tp.ChampionshipName = strings.TrimSpace(r.ChampionshipName)
	tp.JoinedDate = model.DateOf(r.JoinedDate)
}

func (r CreatePlayerStatisticRequest) ToEntity(userID string) model.PlayerStatistic {
	return model.PlayerStatistic{
		TeamPlayerID:  r.TeamPlayerID,
		GameDate:      model.DateOf(r.GameDate),
		MinutesPlayed: r.MinutesPlayed,
		IsStarter:     r.IsStarter,
		JerseyNumber:  r.JerseyNumber,
		Goals:         r.Goals,
		Assists:       r.Assists,
		Audit:         model.Audit{CreatedBy: userID},
	}
}

func (r UpdatePlayerStatisticRequest) ApplyTo(s *model.PlayerStatistic) {
	s.GameDate = model.DateOf(r.GameDate)
	s.MinutesPlayed = r.MinutesPlayed
	s.IsStarter = r.IsStarter
	s.JerseyNumber = r.JerseyNumber
	s.Goals = r.Goals
	s.Assists = r.Assists
}

// PlayerFromEntity shapes a player for callers; Age is computed against now.
func PlayerFromEntity(p model.Player, now time.Time) PlayerResponse {
	return PlayerResponse{
		ID:          p.ID,
		UserID:      p.UserID,
		Name:        p.Name,
		DateOfBirth: p.DateOfBirth,
		Age:         p.CalculateAgeAt(now),
		Gender:      p.Gender,
		PhotoURL:    p.PhotoURL,
		CreatedAt:   p.CreatedAt,
		CreatedBy:   p.CreatedBy,
		UpdatedAt:   p.UpdatedAt,
		UpdatedBy:   p.UpdatedBy,
	}
}

func TeamPlayerFromEntity(tp model.TeamPlayer, now time.Time) TeamPlayerResponse {
	out := TeamPlayerResponse{
		ID:               tp.ID,
		PlayerID:         tp.PlayerID,
		TeamName:         tp.TeamName,
		ChampionshipName: tp.ChampionshipName,
		JoinedDate:       tp.JoinedDate,
		LeftDate:         tp.LeftDate,
		IsActive:         tp.IsActive(),
		DurationDays:     tp.DurationDaysAt(now),
		CreatedAt:        tp.CreatedAt,
		CreatedBy:        tp.CreatedBy,
		UpdatedAt:        tp.UpdatedAt,
		UpdatedBy:        tp.UpdatedBy,
	}
	if tp.Player != nil {
		out.PlayerName = tp.Player.Name
	}
	return out
}

func TeamPlayersFromEntities(items []model.TeamPlayer, now time.Time) []TeamPlayerResponse {
	out := make([]TeamPlayerResponse, 0, len(items))
	for _, tp := range items {
		out = append(out, TeamPlayerFromEntity(tp, now))
	}
	return out
}

func PlayerStatisticFromEntity(s model.PlayerStatistic) PlayerStatisticResponse {
	return PlayerStatisticResponse{
		ID:            s.ID,
		TeamPlayerID:  s.TeamPlayerID,
		GameDate:      s.GameDate,
		MinutesPlayed: s.MinutesPlayed,
		IsStarter:     s.IsStarter,
		JerseyNumber:  s.JerseyNumber,
		Goals:         s.Goals,
		Assists:       s.Assists,
		CreatedAt:     s.CreatedAt,
		CreatedBy:     s.CreatedBy,
		UpdatedAt:     s.UpdatedAt,
		UpdatedBy:     s.UpdatedBy,
	}
}

func PlayerStatisticsFromEntities(items []model.PlayerStatistic) []PlayerStatisticResponse {
	out := make([]PlayerStatisticResponse, 0, len(items))
	for _, s := range items {
		out = append(out, PlayerStatisticFromEntity(s))
	}
	return out
}

func SummaryFromAggregate(playerID int64, teamPlayerID *int64, agg model.StatisticsAggregate) StatisticsSummary {
	return StatisticsSummary{
		PlayerID:             playerID,
		TeamPlayerID:         teamPlayerID,
		GameCount:            agg.GameCount,
		TotalGoals:           agg.TotalGoals,
		TotalAssists:         agg.TotalAssists,
		TotalMinutesPlayed:   agg.TotalMinutesPlayed,
		AverageGoals:         agg.AverageGoals,
		AverageAssists:       agg.AverageAssists,
		AverageMinutesPlayed: agg.AverageMinutesPlayed,
	}
}

// Trimmed returns r with surrounding whitespace removed, the shape that gets stored.
// Length rules apply to this shape.
func (r CreatePlayerRequest) Trimmed() CreatePlayerRequest {
	r.Name = strings.TrimSpace(r.Name)
	r.Gender = trimmedOrNil(r.Gender)
	r.PhotoURL = trimmedOrNil(r.PhotoURL)
	return r
}

func (r UpdatePlayerRequest) Trimmed() UpdatePlayerRequest {
	r.Name = strings.TrimSpace(r.Name)
	r.Gender = trimmedOrNil(r.Gender)
	r.PhotoURL = trimmedOrNil(r.PhotoURL)
	return r
}

func (r CreateTeamPlayerRequest) Trimmed() CreateTeamPlayerRequest {
	r.TeamName = strings.TrimSpace(r.TeamName)
	r.ChampionshipName = strings.TrimSpace(r.ChampionshipName)
	return r
}

func (r UpdateTeamPlayerRequest) Trimmed() UpdateTeamPlayerRequest {
	r.TeamName = strings.TrimSpace(r.TeamName)
	r.ChampionshipName = strings.TrimSpace(r.ChampionshipName)
	return r
}

func trimmedOrNil(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}
